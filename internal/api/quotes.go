package api

import (
	"context"
	"fmt"
)

// QuoteClient fetches random quotes from a quotable-style endpoint
type QuoteClient struct {
	http     *HTTPClient
	endpoint string
}

// NewQuoteClient creates a quote client against the given endpoint,
// e.g. https://api.quotable.io
func NewQuoteClient(http *HTTPClient, endpoint string) *QuoteClient {
	return &QuoteClient{http: http, endpoint: endpoint}
}

// Random returns one random quote with its author
func (c *QuoteClient) Random(ctx context.Context) (string, string, error) {
	var payload struct {
		Content string `json:"content"`
		Author  string `json:"author"`
	}
	if err := c.http.GetJSON(ctx, c.endpoint+"/random", &payload); err != nil {
		return "", "", fmt.Errorf("quote fetch failed: %w", err)
	}
	if payload.Content == "" {
		return "", "", fmt.Errorf("quote response carried no content")
	}
	return payload.Content, payload.Author, nil
}
