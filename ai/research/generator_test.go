package research

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/reportsmith/ai/agent"
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
	return "direct response", nil, nil
}

func (m *mockLLM) ChatWithTools(ctx context.Context, messages []llm.Message, tools []llm.ToolDescriptor) (*llm.ChatResponse, *llm.LLMCallStats, error) {
	if m.chatWithToolsFunc != nil {
		return m.chatWithToolsFunc(ctx, messages, tools)
	}
	return &llm.ChatResponse{Content: "agent response"}, nil, nil
}

func (m *mockLLM) Warmup(ctx context.Context) {}

func newEchoTool(name string) agent.ToolWithSchema {
	return agent.NewNativeTool(name, "test tool",
		func(_ context.Context, input string) (string, error) { return "tool output", nil },
		map[string]interface{}{"type": "object"},
	)
}

func TestGenerate_WithAgent(t *testing.T) {
	svc := &mockLLM{
		chatWithToolsFunc: func(_ context.Context, messages []llm.Message, tools []llm.ToolDescriptor) (*llm.ChatResponse, *llm.LLMCallStats, error) {
			require.NotEmpty(t, tools)
			assert.Contains(t, messages[0].Content, "gather information")
			return &llm.ChatResponse{Content: "**Report Title**\n\nBody."}, &llm.LLMCallStats{TotalTokens: 99}, nil
		},
	}

	g := NewGenerator(svc, []agent.ToolWithSchema{newEchoTool("web_search")}, 4, nil)
	report, err := g.Generate(context.Background(), "Transfer Learning", LevelIntermediate)
	require.NoError(t, err)
	assert.Equal(t, "**Report Title**\n\nBody.", report)
}

func TestGenerate_FallbackWithoutTools(t *testing.T) {
	chatCalled := false
	svc := &mockLLM{
		chatFunc: func(_ context.Context, messages []llm.Message) (string, *llm.LLMCallStats, error) {
			chatCalled = true
			assert.Contains(t, messages[len(messages)-1].Content, "Topic: CNNs")
			return "plain report", nil, nil
		},
	}

	g := NewGenerator(svc, nil, 4, nil)
	report, err := g.Generate(context.Background(), "CNNs", LevelBeginner)
	require.NoError(t, err)
	assert.True(t, chatCalled, "should fall back to a direct chat call")
	assert.Equal(t, "plain report", report)
}

func TestGenerate_EmptyTopic(t *testing.T) {
	g := NewGenerator(&mockLLM{}, nil, 4, nil)
	_, err := g.Generate(context.Background(), "   ", LevelBeginner)
	require.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerate_EmptyReportIsNotAnError(t *testing.T) {
	svc := &mockLLM{
		chatWithToolsFunc: func(_ context.Context, _ []llm.Message, _ []llm.ToolDescriptor) (*llm.ChatResponse, *llm.LLMCallStats, error) {
			return &llm.ChatResponse{Content: ""}, nil, nil
		},
	}

	g := NewGenerator(svc, []agent.ToolWithSchema{newEchoTool("web_search")}, 4, nil)
	report, err := g.Generate(context.Background(), "quiet topic", LevelAdvanced)
	require.NoError(t, err)
	assert.Empty(t, report)
}

func TestGenerate_ServiceFaultWrapsSentinel(t *testing.T) {
	svc := &mockLLM{
		chatWithToolsFunc: func(_ context.Context, _ []llm.Message, _ []llm.ToolDescriptor) (*llm.ChatResponse, *llm.LLMCallStats, error) {
			return nil, nil, fmt.Errorf("upstream exploded")
		},
	}

	g := NewGenerator(svc, []agent.ToolWithSchema{newEchoTool("web_search")}, 4, nil)
	_, err := g.Generate(context.Background(), "topic", LevelIntermediate)
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "upstream exploded")
}
