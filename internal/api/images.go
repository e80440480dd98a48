package api

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
)

// ImageClient searches Unsplash and downloads a random matching photo
type ImageClient struct {
	http     *HTTPClient
	key      string
	endpoint string
	pick     func(n int) int
}

// NewImageClient creates an Unsplash client with the given access key
func NewImageClient(http *HTTPClient, key string) *ImageClient {
	return &ImageClient{
		http:     http,
		key:      key,
		endpoint: "https://api.unsplash.com",
		pick:     rand.Intn,
	}
}

// RandomImage searches for the query and returns the bytes of one random
// result from the first page
func (c *ImageClient) RandomImage(ctx context.Context, query string) ([]byte, error) {
	if c.key == "" {
		return nil, fmt.Errorf("unsplash access key is not configured")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "10")
	params.Set("client_id", c.key)

	var payload struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	searchURL := c.endpoint + "/search/photos?" + params.Encode()
	if err := c.http.GetJSON(ctx, searchURL, &payload); err != nil {
		return nil, fmt.Errorf("image search failed: %w", err)
	}
	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("no images found for %q", query)
	}

	chosen := payload.Results[c.pick(len(payload.Results))]
	image, err := c.http.Get(ctx, chosen.URLs.Regular)
	if err != nil {
		return nil, fmt.Errorf("image download failed: %w", err)
	}
	return image, nil
}
