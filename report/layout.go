// Package report turns semi-structured report text into layout commands and
// renders them as a paginated PDF or as HTML for the browser UI.
package report

import (
	"regexp"
	"strings"
)

// CommandKind identifies the visual block a Command describes.
type CommandKind int

const (
	// KindSpacer is a fixed vertical gap produced by a blank line.
	KindSpacer CommandKind = iota
	// KindHeading is a full-width bold heading.
	KindHeading
	// KindParagraph is a regular text block.
	KindParagraph
	// KindBullet is a bulleted text block.
	KindBullet
	// KindLabeledBlock is a bold label with an optional regular-weight body.
	KindLabeledBlock
)

// Command is one layout instruction for the renderer. Exactly one command is
// produced per input line, in input order.
type Command struct {
	Kind   CommandKind
	Text   string // heading, paragraph, or bullet text
	Label  string // labeled block label, ":" appended when a body is present
	Body   string // labeled block body, empty means no body
	Bullet bool   // labeled block carries a bullet marker
}

var (
	boldSpanPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)
	headingPattern  = regexp.MustCompile(`^\*\*(.+)\*\*$`)
	labelPattern    = regexp.MustCompile(`^\*\*(.+?)\*\*(.*)$`)
)

// stripEmphasis replaces every inline **X** span with its unwrapped content.
// Unmatched markers are left in place as literal text.
func stripEmphasis(s string) string {
	return boldSpanPattern.ReplaceAllString(s, "$1")
}

// lineMatcher classifies one already bullet-stripped line. Matchers run in
// order; the first match wins.
type lineMatcher func(line string, bullet bool) (Command, bool)

// lineMatchers is the ordered classification chain. Order is load-bearing:
// headings outrank labeled blocks, labeled blocks outrank plain bullets.
var lineMatchers = []lineMatcher{
	matchHeading,
	matchLabeledBlock,
	matchBullet,
	matchParagraph,
}

func matchHeading(line string, bullet bool) (Command, bool) {
	if bullet {
		return Command{}, false
	}
	m := headingPattern.FindStringSubmatch(line)
	if m == nil {
		return Command{}, false
	}
	return Command{Kind: KindHeading, Text: strings.TrimSpace(m[1])}, true
}

func matchLabeledBlock(line string, bullet bool) (Command, bool) {
	m := labelPattern.FindStringSubmatch(line)
	if m == nil {
		return Command{}, false
	}
	label := strings.TrimSpace(m[1])
	label = strings.TrimRight(label, ":")
	body := strings.TrimSpace(strings.TrimLeft(m[2], " :"))
	if body != "" {
		label += ":"
		body = stripEmphasis(body)
	}
	return Command{Kind: KindLabeledBlock, Label: label, Body: body, Bullet: bullet}, true
}

func matchBullet(line string, bullet bool) (Command, bool) {
	if !bullet {
		return Command{}, false
	}
	return Command{Kind: KindBullet, Text: stripEmphasis(line)}, true
}

func matchParagraph(line string, _ bool) (Command, bool) {
	return Command{Kind: KindParagraph, Text: stripEmphasis(line)}, true
}

// FormatLine classifies a single raw report line into its layout command.
// It is total: every input produces exactly one command.
func FormatLine(raw string) Command {
	line := strings.TrimSpace(raw)
	if line == "" {
		return Command{Kind: KindSpacer}
	}

	bullet := false
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		bullet = true
		line = strings.TrimSpace(line[2:])
	}

	for _, match := range lineMatchers {
		if cmd, ok := match(line, bullet); ok {
			return cmd
		}
	}
	// Unreachable: matchParagraph always matches.
	return Command{Kind: KindParagraph, Text: line}
}

// Format classifies every line of the report text, preserving line order.
// A single trailing newline terminates the last line without producing a
// phantom spacer; additional trailing blank lines still yield spacers.
func Format(text string) []Command {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	commands := make([]Command, 0, len(lines))
	for _, line := range lines {
		commands = append(commands, FormatLine(line))
	}
	return commands
}
