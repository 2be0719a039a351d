package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type GeoInfo struct {
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeoClient resolves an IP to country/lat/lon via ip-api.com. Informational
// only: failures degrade to an unavailable result, never an error.
type GeoClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewGeoClient() *GeoClient {
	return &GeoClient{
		BaseURL:    "http://ip-api.com",
		HTTPClient: &http.Client{Timeout: 6 * time.Second},
	}
}

// Lookup returns the geolocation for ip. The second return value is false
// when ip is empty (no call is attempted) or the lookup fails.
func (c *GeoClient) Lookup(ctx context.Context, ip string) (GeoInfo, bool) {
	if ip == "" {
		return GeoInfo{}, false
	}

	reqURL := fmt.Sprintf("%s/json/%s?fields=status,country,lat,lon", c.BaseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return GeoInfo{}, false
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return GeoInfo{}, false
	}
	defer resp.Body.Close()

	var data struct {
		Status  string  `json:"status"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return GeoInfo{}, false
	}
	if data.Status != "success" {
		return GeoInfo{}, false
	}

	return GeoInfo{Country: data.Country, Latitude: data.Lat, Longitude: data.Lon}, true
}
