package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// KnowledgeClient answers free-form questions from the Google Knowledge
// Graph search API
type KnowledgeClient struct {
	http     *HTTPClient
	key      string
	endpoint string
}

// NewKnowledgeClient creates a Knowledge Graph client with the given API key
func NewKnowledgeClient(http *HTTPClient, key string) *KnowledgeClient {
	return &KnowledgeClient{
		http:     http,
		key:      key,
		endpoint: "https://kgsearch.googleapis.com",
	}
}

// Lookup searches the knowledge graph for the question's topic. ok is
// false when the graph has no usable entity for it.
func (c *KnowledgeClient) Lookup(ctx context.Context, question string) (string, bool, error) {
	if c.key == "" {
		return "", false, nil
	}

	params := url.Values{}
	params.Set("query", question)
	params.Set("key", c.key)
	params.Set("limit", "1")
	params.Set("languages", "ar")

	var payload struct {
		Items []struct {
			Result struct {
				Name        string `json:"name"`
				Description string `json:"description"`
				Detailed    struct {
					ArticleBody string `json:"articleBody"`
					URL         string `json:"url"`
				} `json:"detailedDescription"`
			} `json:"result"`
		} `json:"itemListElement"`
	}
	searchURL := c.endpoint + "/v1/entities:search?" + params.Encode()
	if err := c.http.GetJSON(ctx, searchURL, &payload); err != nil {
		return "", false, fmt.Errorf("knowledge graph lookup failed: %w", err)
	}
	if len(payload.Items) == 0 {
		return "", false, nil
	}

	entity := payload.Items[0].Result
	if entity.Name == "" {
		return "", false, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📚 %s:\n\n", entity.Name)
	if entity.Description != "" {
		b.WriteString(entity.Description)
		b.WriteString("\n\n")
	}
	if entity.Detailed.ArticleBody != "" {
		b.WriteString(entity.Detailed.ArticleBody)
		b.WriteString("\n\n")
	}
	if entity.Detailed.URL != "" {
		fmt.Fprintf(&b, "🔗 للمزيد: %s", entity.Detailed.URL)
	}

	answer := strings.TrimSpace(b.String())
	if answer == "📚 "+entity.Name+":" {
		// A bare name with no description answers nothing
		return "", false, nil
	}
	return answer, true, nil
}
