package qr

import (
	"fmt"
	"net/url"

	"chamber-connect-backend/internal/domain"
)

// Generator builds tracking URLs for business profiles and delegates the
// QR image itself to a public image-generation endpoint.
type Generator struct {
	appBaseURL    string // e.g. https://app.chamberconnect.example
	imageEndpoint string // e.g. https://api.qrserver.com/v1/create-qr-code/
}

func NewGenerator(appBaseURL, imageEndpoint string) *Generator {
	return &Generator{appBaseURL: appBaseURL, imageEndpoint: imageEndpoint}
}

// TrackingURL returns the business profile URL carrying UTM-style params so
// the scan recorder can attribute the visit to a source channel.
func (g *Generator) TrackingURL(chamberSlug string, businessID int32, source domain.ScanSource) string {
	q := url.Values{}
	q.Set("utm_source", "qr")
	q.Set("utm_medium", string(source))
	q.Set("utm_campaign", "profile")
	q.Set("ref", fmt.Sprintf("biz-%d", businessID))
	return fmt.Sprintf("%s/c/%s/business/%d?%s", g.appBaseURL, chamberSlug, businessID, q.Encode())
}

// ImageURL returns the external image endpoint URL rendering the tracking
// URL as a QR code of the given pixel size.
func (g *Generator) ImageURL(trackingURL string, size int) string {
	if size <= 0 {
		size = 300
	}
	q := url.Values{}
	q.Set("size", fmt.Sprintf("%dx%d", size, size))
	q.Set("data", trackingURL)
	return g.imageEndpoint + "?" + q.Encode()
}
