package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWikiTestServer(t *testing.T, searchJSON, extractJSON string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		query := r.URL.Query()
		switch {
		case query.Get("list") == "search":
			_, _ = w.Write([]byte(searchJSON))
		case query.Get("prop") == "extracts":
			_, _ = w.Write([]byte(extractJSON))
		default:
			t.Errorf("unexpected request: %s", r.URL.RawQuery)
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
}

func newTestWikipedia(endpoint string) *Wikipedia {
	return &Wikipedia{
		client:       &http.Client{Timeout: 5 * time.Second},
		endpoint:     endpoint,
		ExtractChars: 1200,
	}
}

func TestWikipedia_Lookup(t *testing.T) {
	searchJSON := `{"query":{"search":[{"title":"Transfer learning","pageid":42}]}}`
	extractJSON := `{"query":{"pages":{"42":{"title":"Transfer learning","extract":"Transfer learning is a machine learning technique."}}}}`
	srv := newWikiTestServer(t, searchJSON, extractJSON)
	defer srv.Close()

	wiki := newTestWikipedia(srv.URL)
	summary, err := wiki.Lookup(context.Background(), "transfer learning")
	require.NoError(t, err)
	assert.Contains(t, summary, "Transfer learning")
	assert.Contains(t, summary, "machine learning technique")
}

func TestWikipedia_NoArticle(t *testing.T) {
	srv := newWikiTestServer(t, `{"query":{"search":[]}}`, `{}`)
	defer srv.Close()

	wiki := newTestWikipedia(srv.URL)
	summary, err := wiki.Lookup(context.Background(), "zxqwv nonsense")
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestWikipedia_EmptyQuery(t *testing.T) {
	wiki := newTestWikipedia("http://invalid.localhost")
	_, err := wiki.Lookup(context.Background(), "")
	require.Error(t, err)
}

func TestWikipediaTool_Run(t *testing.T) {
	searchJSON := `{"query":{"search":[{"title":"Go (programming language)","pageid":7}]}}`
	extractJSON := `{"query":{"pages":{"7":{"title":"Go (programming language)","extract":"Go is a statically typed language."}}}}`
	srv := newWikiTestServer(t, searchJSON, extractJSON)
	defer srv.Close()

	tool := NewWikipediaTool(newTestWikipedia(srv.URL))
	assert.Equal(t, "wikipedia", tool.Name())

	out, err := tool.Run(context.Background(), `{"query":"golang"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Go is a statically typed language.")
}

func TestWikipediaTool_NoArticleFound(t *testing.T) {
	srv := newWikiTestServer(t, `{"query":{"search":[]}}`, `{}`)
	defer srv.Close()

	tool := NewWikipediaTool(newTestWikipedia(srv.URL))
	out, err := tool.Run(context.Background(), `{"query":"zxqwv"}`)
	require.NoError(t, err)
	assert.Equal(t, "No article found.", out)
}
