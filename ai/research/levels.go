// Package research drives the report generation flow: depth levels, the
// report prompt, and the agent-backed generator.
package research

import (
	"fmt"
	"strings"
)

// Level is the audience depth preset for a report.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Levels lists the supported depth levels in display order.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// ParseLevel normalizes a user-supplied level string. Empty input defaults to
// Intermediate, matching the UI default.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return LevelIntermediate, nil
	case "beginner":
		return LevelBeginner, nil
	case "intermediate":
		return LevelIntermediate, nil
	case "advanced":
		return LevelAdvanced, nil
	}
	return "", fmt.Errorf("unknown depth level: %q", s)
}

// Description returns the fixed instructional prefix describing the target
// audience and technical depth for this level.
func (l Level) Description() string {
	switch l {
	case LevelBeginner:
		return "Explain as if to a 1st–2nd year student. " +
			"Use simple language, basic examples, and avoid heavy math or jargon."
	case LevelIntermediate:
		return "Explain for a B.Tech AI & DS student in 3rd–4th year. " +
			"Use technical terms where needed, include some depth, and practical examples."
	default: // Advanced
		return "Explain for someone preparing for research or interviews. " +
			"Include deeper technical details, trade-offs, and where relevant, math/architecture."
	}
}
