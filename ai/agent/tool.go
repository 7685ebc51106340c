// Package agent provides the tool abstraction and the ReAct execution loop
// used by the research service.
package agent

import (
	"context"
	"sync"
	"time"

	"github.com/hrygo/reportsmith/ai/core/llm"
)

// ToolWithSchema is a tool the LLM can call, including its JSON Schema definition.
type ToolWithSchema interface {
	// Name returns the tool name as exposed to the LLM.
	Name() string

	// Description returns a short description of what the tool does.
	Description() string

	// Parameters returns the JSON Schema for the tool's input parameters.
	Parameters() map[string]interface{}

	// Run executes the tool with the given JSON-encoded input.
	Run(ctx context.Context, input string) (string, error)
}

// NativeTool implements ToolWithSchema with direct function execution.
type NativeTool struct {
	execute     func(ctx context.Context, input string) (string, error)
	params      map[string]interface{}
	name        string
	description string
}

// NewNativeTool creates a new NativeTool.
func NewNativeTool(
	name string,
	description string,
	execute func(ctx context.Context, input string) (string, error),
	parameters map[string]interface{},
) ToolWithSchema {
	return &NativeTool{
		name:        name,
		description: description,
		execute:     execute,
		params:      parameters,
	}
}

// Name returns the tool name.
func (t *NativeTool) Name() string {
	return t.name
}

// Description returns the tool description.
func (t *NativeTool) Description() string {
	return t.description
}

// Parameters returns the JSON Schema for parameters.
func (t *NativeTool) Parameters() map[string]interface{} {
	return t.params
}

// Run executes the tool.
func (t *NativeTool) Run(ctx context.Context, input string) (string, error) {
	return t.execute(ctx, input)
}

// AgentStats accumulates statistics for one agent execution. The executor
// records into it as the loop runs and returns it from Execute.
type AgentStats struct {
	mu               sync.Mutex
	Iterations       int
	LLMCallCount     int
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	ToolCallCount    int
	TotalDurationMs  int64
}

// RecordIteration counts one pass through the execution loop.
func (s *AgentStats) RecordIteration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Iterations++
}

// RecordLLMCall records a single LLM call with its statistics.
func (s *AgentStats) RecordLLMCall(stats *llm.LLMCallStats) {
	if stats == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LLMCallCount++
	s.PromptTokens += stats.PromptTokens
	s.CompletionTokens += stats.CompletionTokens
	s.TotalTokens += stats.TotalTokens
}

// RecordToolCall records a tool invocation.
func (s *AgentStats) RecordToolCall() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ToolCallCount++
}

// RecordDuration sets the total wall-clock time for the execution.
func (s *AgentStats) RecordDuration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalDurationMs = d.Milliseconds()
}

// Snapshot returns a copy of the current stats.
func (s *AgentStats) Snapshot() AgentStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AgentStats{
		Iterations:       s.Iterations,
		LLMCallCount:     s.LLMCallCount,
		PromptTokens:     s.PromptTokens,
		CompletionTokens: s.CompletionTokens,
		TotalTokens:      s.TotalTokens,
		ToolCallCount:    s.ToolCallCount,
		TotalDurationMs:  s.TotalDurationMs,
	}
}
