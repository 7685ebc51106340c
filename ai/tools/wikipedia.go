package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hrygo/reportsmith/ai/agent"
)

// Wikipedia looks up articles through the public MediaWiki API.
type Wikipedia struct {
	client   *http.Client
	endpoint string
	// ExtractChars caps the length of the returned article extract.
	ExtractChars int
}

// NewWikipedia creates a Wikipedia lookup client against en.wikipedia.org.
func NewWikipedia() *Wikipedia {
	return &Wikipedia{
		client:       &http.Client{Timeout: 15 * time.Second},
		endpoint:     "https://en.wikipedia.org/w/api.php",
		ExtractChars: 1200,
	}
}

type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title  string `json:"title"`
			PageID int    `json:"pageid"`
		} `json:"search"`
	} `json:"query"`
}

type wikiExtractResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Lookup searches for the query and returns the plain-text extract of the top
// matching article. A query with no matching article returns an empty string
// and no error.
func (w *Wikipedia) Lookup(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("query is empty")
	}

	pageID, title, err := w.searchTopPage(ctx, query)
	if err != nil {
		return "", err
	}
	if pageID == 0 {
		return "", nil
	}

	extract, err := w.pageExtract(ctx, pageID)
	if err != nil {
		return "", err
	}
	if extract == "" {
		return "", nil
	}
	return fmt.Sprintf("%s\n\n%s", title, extract), nil
}

func (w *Wikipedia) searchTopPage(ctx context.Context, query string) (int, string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", "1")
	params.Set("format", "json")

	var parsed wikiSearchResponse
	if err := w.get(ctx, params, &parsed); err != nil {
		return 0, "", err
	}
	if len(parsed.Query.Search) == 0 {
		return 0, "", nil
	}
	top := parsed.Query.Search[0]
	return top.PageID, top.Title, nil
}

func (w *Wikipedia) pageExtract(ctx context.Context, pageID int) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("pageids", fmt.Sprintf("%d", pageID))
	params.Set("explaintext", "1")
	params.Set("exintro", "1")
	params.Set("exchars", fmt.Sprintf("%d", w.ExtractChars))
	params.Set("format", "json")

	var parsed wikiExtractResponse
	if err := w.get(ctx, params, &parsed); err != nil {
		return "", err
	}
	for _, page := range parsed.Query.Pages {
		return page.Extract, nil
	}
	return "", nil
}

func (w *Wikipedia) get(ctx context.Context, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "reportsmith/1.0 (research report generator)")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wikipedia http %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// NewWikipediaTool wraps a Wikipedia client as an agent tool.
func NewWikipediaTool(wiki *Wikipedia) agent.ToolWithSchema {
	return agent.NewNativeTool(
		"wikipedia",
		"Look up an encyclopedia article on a topic. Returns the article title and introductory summary.",
		func(ctx context.Context, input string) (string, error) {
			query, err := parseToolQuery(input)
			if err != nil {
				return "", err
			}
			summary, err := wiki.Lookup(ctx, query)
			if err != nil {
				return "", err
			}
			if summary == "" {
				return "No article found.", nil
			}
			return summary, nil
		},
		queryParamsSchema,
	)
}
