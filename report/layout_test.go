package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine_Heading(t *testing.T) {
	cmd := FormatLine("**Title**")
	assert.Equal(t, KindHeading, cmd.Kind)
	assert.Equal(t, "Title", cmd.Text)
}

func TestFormatLine_HeadingWithInnerSpaces(t *testing.T) {
	cmd := FormatLine("** Introduction **")
	assert.Equal(t, KindHeading, cmd.Kind)
	assert.Equal(t, "Introduction", cmd.Text)
}

func TestFormatLine_LabeledBlock(t *testing.T) {
	cmd := FormatLine("**Label:** body text")
	assert.Equal(t, KindLabeledBlock, cmd.Kind)
	assert.Equal(t, "Label:", cmd.Label)
	assert.Equal(t, "body text", cmd.Body)
	assert.False(t, cmd.Bullet)
}

func TestFormatLine_LabeledBlockColonOutsideMarkers(t *testing.T) {
	cmd := FormatLine("**Label**: body text")
	assert.Equal(t, KindLabeledBlock, cmd.Kind)
	assert.Equal(t, "Label:", cmd.Label)
	assert.Equal(t, "body text", cmd.Body)
}

func TestFormatLine_LabeledBlockWithoutBody(t *testing.T) {
	// A bare "**Label**" line is a heading (the full-wrap check runs first),
	// so a bodyless labeled block only appears on a bulleted line.
	cmd := FormatLine("- **Term**")
	assert.Equal(t, KindLabeledBlock, cmd.Kind)
	assert.Equal(t, "Term", cmd.Label)
	assert.Empty(t, cmd.Body)
	assert.True(t, cmd.Bullet)
}

func TestFormatLine_BulletedLabeledBlock(t *testing.T) {
	cmd := FormatLine("- **Accuracy:** 94% on the validation set")
	assert.Equal(t, KindLabeledBlock, cmd.Kind)
	assert.Equal(t, "Accuracy:", cmd.Label)
	assert.Equal(t, "94% on the validation set", cmd.Body)
	assert.True(t, cmd.Bullet)
}

func TestFormatLine_Bullet(t *testing.T) {
	for _, line := range []string{"- item", "* item"} {
		cmd := FormatLine(line)
		assert.Equal(t, KindBullet, cmd.Kind, "line %q", line)
		assert.Equal(t, "item", cmd.Text)
	}
}

func TestFormatLine_BulletOutranksHeading(t *testing.T) {
	// A bullet marker disables heading detection even for a full wrap.
	cmd := FormatLine("- **Not a heading**")
	assert.NotEqual(t, KindHeading, cmd.Kind)
	assert.True(t, cmd.Bullet)
}

func TestFormatLine_Paragraph(t *testing.T) {
	cmd := FormatLine("Plain text with **inline bold** in the middle.")
	assert.Equal(t, KindParagraph, cmd.Kind)
	assert.Equal(t, "Plain text with inline bold in the middle.", cmd.Text)
}

func TestFormatLine_BlankLine(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		cmd := FormatLine(line)
		assert.Equal(t, KindSpacer, cmd.Kind, "line %q", line)
		assert.Empty(t, cmd.Text)
	}
}

func TestFormatLine_UnmatchedMarkerIsLiteral(t *testing.T) {
	cmd := FormatLine("an **unclosed marker stays put")
	assert.Equal(t, KindParagraph, cmd.Kind)
	assert.Equal(t, "an **unclosed marker stays put", cmd.Text)
}

func TestFormatLine_BulletStripsInlineEmphasis(t *testing.T) {
	cmd := FormatLine("- uses a **frozen** backbone")
	// "uses" is plain text before the marker, so this is a bullet, not a label.
	assert.Equal(t, KindBullet, cmd.Kind)
	assert.Equal(t, "uses a frozen backbone", cmd.Text)
}

func TestFormatLine_UnicodePassesThrough(t *testing.T) {
	cmd := FormatLine("механизм внимания — attention 机制")
	assert.Equal(t, KindParagraph, cmd.Kind)
	assert.Equal(t, "механизм внимания — attention 机制", cmd.Text)

	heading := FormatLine("**Köppen Climate Classification**")
	assert.Equal(t, KindHeading, heading.Kind)
	assert.Equal(t, "Köppen Climate Classification", heading.Text)
}

func TestFormat_OnePerLineInOrder(t *testing.T) {
	text := strings.Join([]string{
		"**Report Title**",
		"",
		"An introductory paragraph.",
		"- first point",
		"- **Metric:** 42",
		"",
		"Closing remarks.",
	}, "\n")

	commands := Format(text)
	require.Len(t, commands, 7)

	wantKinds := []CommandKind{
		KindHeading,
		KindSpacer,
		KindParagraph,
		KindBullet,
		KindLabeledBlock,
		KindSpacer,
		KindParagraph,
	}
	for i, kind := range wantKinds {
		assert.Equal(t, kind, commands[i].Kind, "command %d", i)
	}

	// Every non-blank input line maps to exactly one non-spacer command.
	nonBlank := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			nonBlank++
		}
	}
	nonSpacer := 0
	for _, cmd := range commands {
		if cmd.Kind != KindSpacer {
			nonSpacer++
		}
	}
	assert.Equal(t, nonBlank, nonSpacer)
}

func TestFormat_TrailingNewlineProducesNoExtraCommand(t *testing.T) {
	assert.Len(t, Format("one line\n"), 1)
	assert.Len(t, Format("one line"), 1)
	assert.Empty(t, Format(""))
}

func TestFormat_TrailingBlankLinesKeepSpacers(t *testing.T) {
	// Only the final newline is a line terminator; blank lines before it
	// still space the document out.
	commands := Format("one line\n\n")
	require.Len(t, commands, 2)
	assert.Equal(t, KindParagraph, commands[0].Kind)
	assert.Equal(t, KindSpacer, commands[1].Kind)

	commands = Format("\n")
	require.Len(t, commands, 1)
	assert.Equal(t, KindSpacer, commands[0].Kind)
}

func TestStripEmphasis(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"**bold**", "bold"},
		{"a **b** c **d** e", "a b c d e"},
		{"no markers", "no markers"},
		{"**unclosed", "**unclosed"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripEmphasis(tt.in), "input %q", tt.in)
	}
}
