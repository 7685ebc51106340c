package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrygo/reportsmith/ai/core/llm"
	"github.com/hrygo/reportsmith/internal/util"
)

/*
Executor - ReAct Loop with Tool Calling

ALGORITHM:
 1. LLM responds to the conversation, optionally calling tools (via ChatWithTools)
 2. If tool calls are present:
    a. Execute each tool
    b. Add results to the messages and continue to the next iteration
 3. If no tool call, the content is the final answer; return it
*/
type Executor struct {
	maxIterations int
}

// NewExecutor creates a new Executor. maxIterations <= 0 selects the default of 8.
func NewExecutor(maxIterations int) *Executor {
	if maxIterations <= 0 {
		maxIterations = 8
	}
	return &Executor{
		maxIterations: maxIterations,
	}
}

// Execute runs the ReAct loop until the LLM produces a final answer or the
// iteration cap is reached.
func (e *Executor) Execute(
	ctx context.Context,
	systemPrompt string,
	input string,
	tools []ToolWithSchema,
	svc llm.Service,
) (string, *AgentStats, error) {
	stats := &AgentStats{}
	startTime := time.Now()
	defer func() {
		stats.RecordDuration(time.Since(startTime))
	}()

	messages := llm.FormatMessages(systemPrompt, input, nil)

	toolDescriptors := make([]llm.ToolDescriptor, len(tools))
	for i, tool := range tools {
		paramsBytes, err := json.Marshal(tool.Parameters())
		if err != nil {
			slog.Error("Failed to marshal tool parameters", "tool", tool.Name(), "error", err)
			return "", stats, fmt.Errorf("marshal tool parameters for tool %s: %w", tool.Name(), err)
		}
		toolDescriptors[i] = llm.ToolDescriptor{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  string(paramsBytes),
		}
	}

	for iteration := 0; iteration < e.maxIterations; iteration++ {
		select {
		case <-ctx.Done():
			return "", stats, ctx.Err()
		default:
		}
		stats.RecordIteration()

		llmStart := time.Now()
		slog.Debug("react: LLM chat started",
			"iteration", iteration+1,
			"message_count", len(messages))

		response, llmStats, err := svc.ChatWithTools(ctx, messages, toolDescriptors)
		if err != nil {
			return "", stats, fmt.Errorf("LLM chat with tools failed: %w", err)
		}
		stats.RecordLLMCall(llmStats)

		slog.Info("react: LLM response",
			"iteration", iteration+1,
			"tool_calls", len(response.ToolCalls),
			"content_length", len(response.Content),
			"duration_ms", time.Since(llmStart).Milliseconds())

		// No tool calls = final answer
		if len(response.ToolCalls) == 0 {
			return response.Content, stats, nil
		}

		// Keep any thinking content in the transcript before the tool results.
		if response.Content != "" {
			messages = append(messages, llm.AssistantMessage(response.Content))
		}

		for _, tc := range response.ToolCalls {
			toolName := tc.Function.Name
			toolInput := tc.Function.Arguments

			toolStart := time.Now()
			stats.RecordToolCall()

			toolResult, toolErr := findAndExecuteTool(ctx, tools, toolName, toolInput)
			status := "success"
			if toolErr != nil {
				status = "error"
				toolResult = fmt.Sprintf("Error: %v", toolErr)
			}

			slog.Info("react: tool execution completed",
				"tool", toolName,
				"status", status,
				"result_preview", util.TruncateString(toolResult, 120),
				"duration_ms", time.Since(toolStart).Milliseconds(),
			)

			messages = append(messages,
				llm.UserMessage(fmt.Sprintf("[Result from %s]: %s", toolName, toolResult)),
			)
		}
	}

	return "", stats, fmt.Errorf("max iterations (%d) exceeded", e.maxIterations)
}

// findAndExecuteTool finds a tool by name in the provided list and executes it.
func findAndExecuteTool(
	ctx context.Context,
	tools []ToolWithSchema,
	toolName string,
	toolInput string,
) (string, error) {
	for _, t := range tools {
		if t != nil && t.Name() == toolName {
			return t.Run(ctx, toolInput)
		}
	}
	return "", fmt.Errorf("tool not found: %s", toolName)
}
