package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"docchat-be/internal/constant"

	"github.com/PuerkitoBio/goquery"
)

// Result is one internet search hit.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Client performs internet searches. Implementations must degrade
// gracefully: a provider outage returns SearchUnavailableError, never
// a panic or hang.
type Client interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// DuckDuckGoClient queries the DuckDuckGo instant answer API first and
// falls back to scraping the HTML results page when the instant answer
// comes back empty.
type DuckDuckGoClient struct {
	httpClient *http.Client
}

func NewDuckDuckGoClient(timeout time.Duration) *DuckDuckGoClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &DuckDuckGoClient{
		httpClient: &http.Client{Timeout: timeout},
	}
}

type instantAnswerResponse struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	Answer        string `json:"Answer"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

func (c *DuckDuckGoClient) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	results, err := c.instantAnswer(ctx, query, maxResults)
	if err != nil {
		return nil, &constant.SearchUnavailableError{Err: err}
	}
	if len(results) > 0 {
		return results, nil
	}

	results, err = c.htmlResults(ctx, query, maxResults)
	if err != nil {
		return nil, &constant.SearchUnavailableError{Err: err}
	}
	return results, nil
}

func (c *DuckDuckGoClient) instantAnswer(ctx context.Context, query string, maxResults int) ([]Result, error) {
	endpoint := fmt.Sprintf(
		"https://api.duckduckgo.com/?q=%s&format=json&no_html=1&skip_disambig=1",
		url.QueryEscape(query),
	)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo instant answer: status %d", resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var ia instantAnswerResponse
	if err := json.Unmarshal(bodyBytes, &ia); err != nil {
		return nil, err
	}

	var results []Result

	if ia.Answer != "" {
		results = append(results, Result{
			Title:   ia.Heading,
			Snippet: ia.Answer,
		})
	}
	if ia.AbstractText != "" {
		results = append(results, Result{
			Title:   ia.Heading,
			URL:     ia.AbstractURL,
			Snippet: ia.AbstractText,
		})
	}
	for _, topic := range ia.RelatedTopics {
		if len(results) >= maxResults {
			break
		}
		if topic.Text == "" {
			continue
		}
		results = append(results, Result{
			Title:   topic.Text,
			URL:     topic.FirstURL,
			Snippet: topic.Text,
		})
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

func (c *DuckDuckGoClient) htmlResults(ctx context.Context, query string, maxResults int) ([]Result, error) {
	endpoint := fmt.Sprintf("https://html.duckduckgo.com/html/?q=%s", url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	// The HTML endpoint rejects requests without a browser-like agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo html search: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var results []Result
	doc.Find(".result").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if len(results) >= maxResults {
			return false
		}

		link := s.Find(".result__a")
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return true
		}
		href, _ := link.Attr("href")
		snippet := strings.TrimSpace(s.Find(".result__snippet").Text())

		results = append(results, Result{
			Title:   title,
			URL:     href,
			Snippet: snippet,
		})
		return true
	})

	return results, nil
}
