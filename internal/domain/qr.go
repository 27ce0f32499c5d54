package domain

import "time"

type DeviceType string

const (
	DeviceTypeMobile  DeviceType = "mobile"
	DeviceTypeDesktop DeviceType = "desktop"
	DeviceTypeTablet  DeviceType = "tablet"
)

type ScanSource string

const (
	ScanSourceEvent        ScanSource = "event"
	ScanSourceDirect       ScanSource = "direct"
	ScanSourceBusinessCard ScanSource = "business_card"
	ScanSourceWebsite      ScanSource = "website"
)

// QRScan is an append-only scan event, consumed read-only for aggregation.
type QRScan struct {
	ID         int64      `json:"id"`
	BusinessID int32      `json:"business_id"`
	ChamberID  int32      `json:"chamber_id"`
	DeviceType DeviceType `json:"device_type"`
	Source     ScanSource `json:"source"`
	CityName   string     `json:"city_name"`
	Region     string     `json:"region"`
	Country    string     `json:"country"`
	ScannedAt  time.Time  `json:"scanned_at"`
}

// QRDailySummary is one rolled-up row per business per day.
type QRDailySummary struct {
	ID                int64  `json:"id"`
	BusinessID        int32  `json:"business_id"`
	ChamberID         int32  `json:"chamber_id"`
	Date              string `json:"date"` // ISO YYYY-MM-DD
	TotalScans        int32  `json:"total_scans"`
	UniqueScans       int32  `json:"unique_scans"`
	MobileScans       int32  `json:"mobile_scans"`
	DesktopScans      int32  `json:"desktop_scans"`
	TabletScans       int32  `json:"tablet_scans"`
	EventScans        int32  `json:"event_scans"`
	DirectScans       int32  `json:"direct_scans"`
	BusinessCardScans int32  `json:"business_card_scans"`
	ConnectionsMade   int32  `json:"connections_made"`
	MessagesSent      int32  `json:"messages_sent"`
}

type ProfileView struct {
	ID         int64     `json:"id"`
	BusinessID int32     `json:"business_id"`
	ViewerID   *int32    `json:"viewer_id,omitempty"`
	Source     string    `json:"source"`
	ViewedAt   time.Time `json:"viewed_at"`
}
