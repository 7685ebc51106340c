package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `**Transfer Learning**

Transfer learning reuses a model trained on one task for another.

**Key Ideas**
- **Pretraining:** learn general features on a large dataset
- **Fine-tuning:** adapt the model to the target task
- freeze early layers when data is scarce

**Conclusion**
It is the default starting point for most applied deep learning work.`

func TestRenderPDF_ProducesValidPDF(t *testing.T) {
	data, err := GeneratePDF("Report - Transfer Learning", sampleReport)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"), "output should start with a PDF header")
	assert.Contains(t, string(data[len(data)-32:]), "%%EOF")
}

func TestRenderPDF_Deterministic(t *testing.T) {
	commands := Format(sampleReport)

	first, err := RenderPDF("Title", commands)
	require.NoError(t, err)
	second, err := RenderPDF("Title", commands)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same commands must produce byte-identical output")
}

func TestRenderPDF_OnlyBlankLines(t *testing.T) {
	data, err := GeneratePDF("Empty Report", "\n\n\n\n")
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestRenderPDF_EmptyText(t *testing.T) {
	data, err := GeneratePDF("Bare Title", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestRenderPDF_LongReportPaginates(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 400; i++ {
		sb.WriteString("A reasonably long paragraph line that fills horizontal space on the page.\n")
	}

	data, err := GeneratePDF("Long Report", sb.String())
	require.NoError(t, err)

	// Multiple /Page objects indicate automatic page breaks kicked in.
	pages := strings.Count(string(data), "/Type /Page")
	assert.Greater(t, pages, 2, "long content must flow onto additional pages")
}

func TestRenderPDF_NoErrorOnArbitraryInput(t *testing.T) {
	inputs := []string{
		"**",
		"****",
		"- ",
		"* **",
		strings.Repeat("*", 100),
		"null\x00byte",
		"emoji 🎯 outside the single-byte set",
	}
	for _, input := range inputs {
		data, err := GeneratePDF("Hostile Input", input)
		require.NoError(t, err, "input %q", input)
		assert.True(t, strings.HasPrefix(string(data), "%PDF-"), "input %q", input)
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML("**bold** and a list:\n\n- item one\n- item two")
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, "<li>item one</li>")
}
