package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/yourusername/wabot/internal/commands"
)

// PrayerClient fetches daily prayer timings from an aladhan-style endpoint
type PrayerClient struct {
	http     *HTTPClient
	endpoint string
}

// NewPrayerClient creates a prayer-times client against the given endpoint,
// e.g. https://api.aladhan.com
func NewPrayerClient(http *HTTPClient, endpoint string) *PrayerClient {
	return &PrayerClient{http: http, endpoint: endpoint}
}

// TimingsByCity returns today's timings for an Egyptian city using the
// Egyptian General Authority of Survey calculation method
func (c *PrayerClient) TimingsByCity(ctx context.Context, city string) (*commands.PrayerTimings, error) {
	query := url.Values{}
	query.Set("city", city)
	query.Set("country", "Egypt")
	query.Set("method", "5")

	var payload struct {
		Code int `json:"code"`
		Data struct {
			Timings struct {
				Fajr    string `json:"Fajr"`
				Sunrise string `json:"Sunrise"`
				Dhuhr   string `json:"Dhuhr"`
				Asr     string `json:"Asr"`
				Maghrib string `json:"Maghrib"`
				Isha    string `json:"Isha"`
			} `json:"timings"`
		} `json:"data"`
	}
	if err := c.http.GetJSON(ctx, c.endpoint+"/v1/timingsByCity?"+query.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("prayer timings fetch failed: %w", err)
	}
	if payload.Code != 200 {
		return nil, fmt.Errorf("prayer timings response code %d", payload.Code)
	}

	t := payload.Data.Timings
	return &commands.PrayerTimings{
		Fajr:    t.Fajr,
		Sunrise: t.Sunrise,
		Dhuhr:   t.Dhuhr,
		Asr:     t.Asr,
		Maghrib: t.Maghrib,
		Isha:    t.Isha,
	}, nil
}
