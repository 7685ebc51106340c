package research

import (
	"fmt"
	"strings"

	"github.com/hrygo/reportsmith/ai/agent"
)

const reportPromptTemplate = `You are an expert research assistant for a B.Tech AI & DS student.

Adapt your explanation to this level:
%s

Your task:
1. Use the available tools (web search, Wikipedia) to gather information.
2. Then write a clear, well-structured report for the given topic.

Report format:
- Title
- Introduction (3–5 sentences)
- Main Sections with headings and bullet points
- If it's a comparison, include a comparison table (in markdown if needed)
- Conclusion (2–4 sentences)
- References (list the main sources or article titles you used)

Write in simple, professional English according to the chosen level.
Avoid hallucinating. If something is unclear or conflicting, say so.`

// buildSystemPrompt composes the agent system prompt: the research
// instructions plus a description of every available tool.
func buildSystemPrompt(level Level, tools []agent.ToolWithSchema) string {
	prompt := fmt.Sprintf(reportPromptTemplate, level.Description())
	if len(tools) == 0 {
		return prompt
	}

	var descriptions []string
	var names []string
	for _, tool := range tools {
		descriptions = append(descriptions, fmt.Sprintf("- %s: %s", tool.Name(), tool.Description()))
		names = append(names, tool.Name())
	}

	return prompt + fmt.Sprintf(`

Always reason step by step, citing tools when used. Available tools:
%s

Only choose from: %s

At the end, produce a polished report obeying the requested format.`,
		strings.Join(descriptions, "\n"), strings.Join(names, ", "))
}

// buildUserInput phrases the per-request instruction for a topic.
func buildUserInput(topic string) string {
	return fmt.Sprintf("Now generate a detailed report for this topic:\n\nTopic: %s", topic)
}
