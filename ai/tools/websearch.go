// Package tools provides the research tools exposed to the LLM agent:
// web search (DuckDuckGo) and encyclopedia lookup (Wikipedia).
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/hrygo/reportsmith/ai/agent"
)

const maxSearchResults = 5

// SearchResult is a single item returned by the web search.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// WebSearch scrapes DuckDuckGo's HTML lite interface. No API key required.
type WebSearch struct {
	client   *http.Client
	limiter  *rate.Limiter
	endpoint string
}

// NewWebSearch creates a WebSearch with a modest timeout and a global 1 QPS
// rate limit, which is what the lite endpoint tolerates.
func NewWebSearch() *WebSearch {
	return &WebSearch{
		client:   &http.Client{Timeout: 15 * time.Second},
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
		endpoint: "https://lite.duckduckgo.com/lite/",
	}
}

// Search posts the query to the lite endpoint and parses the result table.
func (w *WebSearch) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is empty")
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	formData := url.Values{}
	formData.Set("q", query)

	var resp *http.Response
	delay := 1 * time.Second
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, strings.NewReader(formData.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err = w.client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		resp.Body.Close()

		// Back off and retry on 429, doubling the delay each time up to 30s.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		if delay < 30*time.Second {
			delay *= 2
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return parseLiteResults(body), nil
}

// parseLiteResults extracts search results from the DuckDuckGo lite HTML.
// The lite page is a plain table: links carry class "result-link", snippets
// sit in <td class="result-snippet"> cells.
func parseLiteResults(body []byte) []SearchResult {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil
	}

	var results []SearchResult
	var snippets []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				if hasClass(n, "result-link") {
					href := attrValue(n, "href")
					title := strings.TrimSpace(nodeText(n))
					if href != "" && title != "" {
						results = append(results, SearchResult{Title: title, URL: href})
					}
				}
			case "td":
				if hasClass(n, "result-snippet") {
					snippets = append(snippets, strings.TrimSpace(nodeText(n)))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	for i := range results {
		if i < len(snippets) {
			results[i].Snippet = snippets[i]
		}
	}
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// toolQuery is the JSON input shape shared by both research tools.
type toolQuery struct {
	Query string `json:"query"`
}

func parseToolQuery(input string) (string, error) {
	var q toolQuery
	if err := json.Unmarshal([]byte(input), &q); err != nil {
		// Some models pass the bare query string instead of a JSON object.
		trimmed := strings.TrimSpace(input)
		if trimmed != "" && !strings.HasPrefix(trimmed, "{") {
			return trimmed, nil
		}
		return "", fmt.Errorf("invalid tool input: %w", err)
	}
	if strings.TrimSpace(q.Query) == "" {
		return "", fmt.Errorf("query is empty")
	}
	return q.Query, nil
}

var queryParamsSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"query": map[string]interface{}{
			"type":        "string",
			"description": "The search query",
		},
	},
	"required": []string{"query"},
}

// NewWebSearchTool wraps a WebSearch as an agent tool.
func NewWebSearchTool(search *WebSearch) agent.ToolWithSchema {
	return agent.NewNativeTool(
		"web_search",
		"Search the web for current information on a topic. Returns the top results with titles, URLs and snippets.",
		func(ctx context.Context, input string) (string, error) {
			query, err := parseToolQuery(input)
			if err != nil {
				return "", err
			}
			results, err := search.Search(ctx, query)
			if err != nil {
				return "", err
			}
			if len(results) == 0 {
				return "No results found.", nil
			}
			var sb strings.Builder
			for _, r := range results {
				fmt.Fprintf(&sb, "%s - %s\n", r.Title, r.URL)
				if r.Snippet != "" {
					sb.WriteString(r.Snippet)
					sb.WriteString("\n")
				}
				sb.WriteString("\n")
			}
			return strings.TrimSpace(sb.String()), nil
		},
		queryParamsSchema,
	)
}
