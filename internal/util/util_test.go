package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPrefixes(t *testing.T) {
	assert.True(t, HasPrefixes("/api/v1/report", "/api", "/metrics"))
	assert.True(t, HasPrefixes("/metrics", "/api", "/metrics"))
	assert.False(t, HasPrefixes("/index.html", "/api", "/metrics"))
	assert.False(t, HasPrefixes("/api", ""))
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten chars!", 18, "exactly ten chars!"},
		{"this one is too long", 7, "this on..."},
		{"механизм внимания", 8, "механизм..."},
		{"anything", 0, ""},
		{"anything", -1, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateString(tt.in, tt.limit), "input %q limit %d", tt.in, tt.limit)
	}
}
