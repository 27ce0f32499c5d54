package analytics

import (
	"math"
	"testing"

	"chamber-connect-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAggregateTotalsAndConversionRate(t *testing.T) {
	summaries := []domain.QRDailySummary{
		{BusinessID: 1, Date: "2026-08-01", TotalScans: 40, UniqueScans: 20, MobileScans: 25, DesktopScans: 10, TabletScans: 5, EventScans: 10, DirectScans: 15, BusinessCardScans: 5, ConnectionsMade: 3, MessagesSent: 2},
		{BusinessID: 2, Date: "2026-08-02", TotalScans: 60, UniqueScans: 30, MobileScans: 30, DesktopScans: 20, TabletScans: 10, EventScans: 5, DirectScans: 10, BusinessCardScans: 5, ConnectionsMade: 4, MessagesSent: 1},
	}

	got := Aggregate(summaries, nil)

	assert.Equal(t, int32(100), got.TotalScans)
	assert.Equal(t, int32(50), got.UniqueVisitors)
	assert.InDelta(t, 20.0, got.AvgConversionRate, 1e-9) // 100 * 10 / 50
	assert.Equal(t, DeviceBreakdown{Mobile: 55, Desktop: 30, Tablet: 15}, got.DeviceBreakdown)
	assert.Equal(t, SourceBreakdown{Event: 15, Direct: 25, BusinessCard: 10, Website: 50}, got.SourceBreakdown)
}

func TestAggregateZeroVisitorsNeverNaN(t *testing.T) {
	got := Aggregate([]domain.QRDailySummary{
		{BusinessID: 1, Date: "2026-08-01", ConnectionsMade: 5},
	}, nil)

	assert.Equal(t, float64(0), got.AvgConversionRate)
	assert.False(t, math.IsNaN(got.AvgConversionRate))
	assert.False(t, math.IsInf(got.AvgConversionRate, 0))

	empty := Aggregate(nil, nil)
	assert.Equal(t, float64(0), empty.AvgConversionRate)
}

func TestAggregateWebsiteRemainderClampsAtZero(t *testing.T) {
	// Upstream inconsistency: channel counts exceed the total.
	got := Aggregate([]domain.QRDailySummary{
		{BusinessID: 1, Date: "2026-08-01", TotalScans: 10, EventScans: 6, DirectScans: 4, BusinessCardScans: 3},
	}, nil)

	assert.Equal(t, int32(0), got.SourceBreakdown.Website)
}

func TestAggregateTopCities(t *testing.T) {
	scans := []domain.QRScan{
		{CityName: "Springfield"}, {CityName: "Springfield"}, {CityName: "Springfield"},
		{CityName: "Shelbyville"}, {CityName: "Shelbyville"},
		{CityName: "Ogdenville"}, {CityName: "Ogdenville"},
		{CityName: "North Haverbrook"},
		{CityName: "Capital City"},
		{CityName: "Brockway"},
		{CityName: ""},
	}

	got := Aggregate(nil, scans)

	assert.Len(t, got.TopCities, 5)
	assert.Equal(t, CityCount{City: "Springfield", Scans: 3}, got.TopCities[0])
	assert.Equal(t, int32(2), got.TopCities[1].Scans)
	// ties broken alphabetically for a stable dashboard ordering
	assert.Equal(t, "Ogdenville", got.TopCities[1].City)
	assert.Equal(t, "Shelbyville", got.TopCities[2].City)
}

func TestAggregateDailyTrendsSortedAscending(t *testing.T) {
	summaries := []domain.QRDailySummary{
		{BusinessID: 1, Date: "2026-08-03", TotalScans: 5, UniqueScans: 4},
		{BusinessID: 2, Date: "2026-08-01", TotalScans: 2, UniqueScans: 2},
		{BusinessID: 1, Date: "2026-08-01", TotalScans: 3, UniqueScans: 1},
	}

	got := Aggregate(summaries, nil)

	assert.Equal(t, []DailyTrend{
		{Date: "2026-08-01", Scans: 5, Visitors: 3},
		{Date: "2026-08-03", Scans: 5, Visitors: 4},
	}, got.DailyTrends)
}

func TestAggregateLeaderboardSortedByTotalScans(t *testing.T) {
	summaries := []domain.QRDailySummary{
		{BusinessID: 1, Date: "2026-08-01", TotalScans: 10, UniqueScans: 5, ConnectionsMade: 1},
		{BusinessID: 2, Date: "2026-08-01", TotalScans: 30, UniqueScans: 20, MessagesSent: 2},
		{BusinessID: 1, Date: "2026-08-02", TotalScans: 15, UniqueScans: 8, MessagesSent: 1},
	}

	got := Aggregate(summaries, nil)

	assert.Equal(t, []BusinessTotals{
		{BusinessID: 2, TotalScans: 30, UniqueVisitors: 20, Conversions: 2},
		{BusinessID: 1, TotalScans: 25, UniqueVisitors: 13, Conversions: 2},
	}, got.Leaderboard)
}

func TestAggregateIsReentrant(t *testing.T) {
	summaries := []domain.QRDailySummary{
		{BusinessID: 1, Date: "2026-08-01", TotalScans: 7, UniqueScans: 3},
	}
	first := Aggregate(summaries, nil)
	second := Aggregate(summaries, nil)
	assert.Equal(t, first, second)
}
