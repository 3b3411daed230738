package websearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.duckduckgo.com/"
	searchTimeout  = 6 * time.Second
	maxFragments   = 4
)

// Client queries the DuckDuckGo Instant Answer API for fallback context
// when nothing in the recipe table matches a visitor query. No API key
// required.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: searchTimeout,
		},
	}
}

// NewClientWithBaseURL is used by tests to point at a fake upstream.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

type instantAnswerResponse struct {
	AbstractText  string         `json:"AbstractText"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

type relatedTopic struct {
	Text   string         `json:"Text"`
	Topics []relatedTopic `json:"Topics"`
}

// Fragments returns up to four short text fragments for the query joined
// with single spaces: the top-level summary first, then related-topic
// texts, then nested sub-topic texts. Any failure (network, non-2xx,
// malformed body) degrades to an empty string; this path never surfaces
// an error to the caller.
func (c *Client) Fragments(ctx context.Context, query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_redirect", "1")
	params.Set("no_html", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return ""
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	var answer instantAnswerResponse
	if err := json.Unmarshal(body, &answer); err != nil {
		return ""
	}

	fragments := make([]string, 0, maxFragments)
	if text := strings.TrimSpace(answer.AbstractText); text != "" {
		fragments = append(fragments, text)
	}

	// Direct related-topic texts before descending into sub-topics.
	for _, topic := range answer.RelatedTopics {
		if len(fragments) == maxFragments {
			break
		}
		if text := strings.TrimSpace(topic.Text); text != "" {
			fragments = append(fragments, text)
		}
	}
	for _, topic := range answer.RelatedTopics {
		if len(fragments) == maxFragments {
			break
		}
		for _, sub := range topic.Topics {
			if len(fragments) == maxFragments {
				break
			}
			if text := strings.TrimSpace(sub.Text); text != "" {
				fragments = append(fragments, text)
			}
		}
	}

	return strings.Join(fragments, " ")
}
