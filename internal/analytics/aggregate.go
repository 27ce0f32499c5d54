package analytics

import (
	"sort"

	"chamber-connect-backend/internal/domain"
)

// DeviceBreakdown holds per-device scan totals.
type DeviceBreakdown struct {
	Mobile  int32 `json:"mobile"`
	Desktop int32 `json:"desktop"`
	Tablet  int32 `json:"tablet"`
}

// SourceBreakdown holds per-channel scan totals. Website is a remainder
// (total minus the tracked channels), clamped at zero when upstream counts
// are inconsistent.
type SourceBreakdown struct {
	Event        int32 `json:"event"`
	Direct       int32 `json:"direct"`
	BusinessCard int32 `json:"business_card"`
	Website      int32 `json:"website"`
}

type CityCount struct {
	City  string `json:"city"`
	Scans int32  `json:"scans"`
}

type DailyTrend struct {
	Date     string `json:"date"` // ISO YYYY-MM-DD
	Scans    int32  `json:"scans"`
	Visitors int32  `json:"visitors"`
}

type BusinessTotals struct {
	BusinessID     int32 `json:"business_id"`
	TotalScans     int32 `json:"total_scans"`
	UniqueVisitors int32 `json:"unique_visitors"`
	Conversions    int32 `json:"conversions"`
}

// Summary is the dashboard-level reduction of a date-range window.
type Summary struct {
	TotalScans        int32            `json:"total_scans"`
	UniqueVisitors    int32            `json:"unique_visitors"`
	AvgConversionRate float64          `json:"avg_conversion_rate"`
	DeviceBreakdown   DeviceBreakdown  `json:"device_breakdown"`
	SourceBreakdown   SourceBreakdown  `json:"source_breakdown"`
	TopCities         []CityCount      `json:"top_cities"`
	DailyTrends       []DailyTrend     `json:"daily_trends"`
	Leaderboard       []BusinessTotals `json:"leaderboard"`
}

const topCitiesLimit = 5

// Aggregate reduces daily summary rows and raw scan rows into a Summary.
// It is pure and re-entrant; callers re-fetch and re-reduce the full window
// on every request.
func Aggregate(summaries []domain.QRDailySummary, scans []domain.QRScan) Summary {
	var out Summary

	var conversions int32
	byDate := make(map[string]*DailyTrend)
	byBusiness := make(map[int32]*BusinessTotals)

	for _, row := range summaries {
		out.TotalScans += row.TotalScans
		out.UniqueVisitors += row.UniqueScans
		conversions += row.ConnectionsMade + row.MessagesSent

		out.DeviceBreakdown.Mobile += row.MobileScans
		out.DeviceBreakdown.Desktop += row.DesktopScans
		out.DeviceBreakdown.Tablet += row.TabletScans

		out.SourceBreakdown.Event += row.EventScans
		out.SourceBreakdown.Direct += row.DirectScans
		out.SourceBreakdown.BusinessCard += row.BusinessCardScans

		trend, ok := byDate[row.Date]
		if !ok {
			trend = &DailyTrend{Date: row.Date}
			byDate[row.Date] = trend
		}
		trend.Scans += row.TotalScans
		trend.Visitors += row.UniqueScans

		biz, ok := byBusiness[row.BusinessID]
		if !ok {
			biz = &BusinessTotals{BusinessID: row.BusinessID}
			byBusiness[row.BusinessID] = biz
		}
		biz.TotalScans += row.TotalScans
		biz.UniqueVisitors += row.UniqueScans
		biz.Conversions += row.ConnectionsMade + row.MessagesSent
	}

	// Guard the zero-visitor window: the rate is 0, never NaN or Inf.
	if out.UniqueVisitors > 0 {
		out.AvgConversionRate = 100 * float64(conversions) / float64(out.UniqueVisitors)
	}

	website := out.TotalScans - out.SourceBreakdown.Event - out.SourceBreakdown.Direct - out.SourceBreakdown.BusinessCard
	if website < 0 {
		website = 0
	}
	out.SourceBreakdown.Website = website

	out.TopCities = topCities(scans)
	out.DailyTrends = sortTrends(byDate)
	out.Leaderboard = sortLeaderboard(byBusiness)

	return out
}

func topCities(scans []domain.QRScan) []CityCount {
	counts := make(map[string]int32)
	for _, scan := range scans {
		if scan.CityName == "" {
			continue
		}
		counts[scan.CityName]++
	}

	cities := make([]CityCount, 0, len(counts))
	for city, n := range counts {
		cities = append(cities, CityCount{City: city, Scans: n})
	}
	sort.Slice(cities, func(i, j int) bool {
		if cities[i].Scans != cities[j].Scans {
			return cities[i].Scans > cities[j].Scans
		}
		return cities[i].City < cities[j].City
	})
	if len(cities) > topCitiesLimit {
		cities = cities[:topCitiesLimit]
	}
	return cities
}

func sortTrends(byDate map[string]*DailyTrend) []DailyTrend {
	trends := make([]DailyTrend, 0, len(byDate))
	for _, t := range byDate {
		trends = append(trends, *t)
	}
	// Lexicographic sort is chronological because dates are ISO YYYY-MM-DD.
	sort.Slice(trends, func(i, j int) bool { return trends[i].Date < trends[j].Date })
	return trends
}

func sortLeaderboard(byBusiness map[int32]*BusinessTotals) []BusinessTotals {
	board := make([]BusinessTotals, 0, len(byBusiness))
	for _, b := range byBusiness {
		board = append(board, *b)
	}
	sort.Slice(board, func(i, j int) bool {
		if board[i].TotalScans != board[j].TotalScans {
			return board[i].TotalScans > board[j].TotalScans
		}
		return board[i].BusinessID < board[j].BusinessID
	})
	return board
}
