package agent

import (
	"context"

	"github.com/hrygo/reportsmith/ai/core/llm"
)

// mockLLM is a test double for llm.Service.
type mockLLM struct {
	chatFunc          func(ctx context.Context, messages []llm.Message) (string, *llm.LLMCallStats, error)
	chatWithToolsFunc func(ctx context.Context, messages []llm.Message, tools []llm.ToolDescriptor) (*llm.ChatResponse, *llm.LLMCallStats, error)
}

func (m *mockLLM) Chat(ctx context.Context, messages []llm.Message) (string, *llm.LLMCallStats, error) {
	if m.chatFunc != nil {
		return m.chatFunc(ctx, messages)
	}
	return "test response", &llm.LLMCallStats{PromptTokens: 10, CompletionTokens: 5}, nil
}

func (m *mockLLM) ChatWithTools(ctx context.Context, messages []llm.Message, tools []llm.ToolDescriptor) (*llm.ChatResponse, *llm.LLMCallStats, error) {
	if m.chatWithToolsFunc != nil {
		return m.chatWithToolsFunc(ctx, messages, tools)
	}
	return &llm.ChatResponse{Content: "test response"}, &llm.LLMCallStats{PromptTokens: 10, CompletionTokens: 5}, nil
}

// Warmup is a no-op for the mock.
func (m *mockLLM) Warmup(ctx context.Context) {}

// mockTool is a test double for ToolWithSchema.
type mockTool struct {
	name        string
	description string
	runFunc     func(ctx context.Context, input string) (string, error)
}

func (t *mockTool) Name() string        { return t.name }
func (t *mockTool) Description() string { return t.description }

func (t *mockTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{"type": "string"},
		},
		"required": []string{"query"},
	}
}

func (t *mockTool) Run(ctx context.Context, input string) (string, error) {
	if t.runFunc != nil {
		return t.runFunc(ctx, input)
	}
	return "mock result", nil
}
