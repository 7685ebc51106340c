package research

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hrygo/reportsmith/ai/agent"
	"github.com/hrygo/reportsmith/ai/core/llm"
	"github.com/hrygo/reportsmith/ai/metrics"
)

// ErrGenerationFailed is the single failure kind surfaced to callers. The
// underlying service fault is wrapped for logs; callers only branch on this
// sentinel.
var ErrGenerationFailed = errors.New("report generation failed")

// Generator produces research reports by driving the ReAct agent over the
// configured tools. Construct once at process start and share; all
// collaborators are injected, there is no package-level state.
type Generator struct {
	llm      llm.Service
	tools    []agent.ToolWithSchema
	executor *agent.Executor
	exporter *metrics.PrometheusExporter

	group singleflight.Group
}

// NewGenerator creates a Generator. exporter may be nil to disable metrics.
func NewGenerator(svc llm.Service, tools []agent.ToolWithSchema, maxIterations int, exporter *metrics.PrometheusExporter) *Generator {
	if exporter != nil {
		instrumented := make([]agent.ToolWithSchema, len(tools))
		for i, tool := range tools {
			instrumented[i] = &instrumentedTool{ToolWithSchema: tool, exporter: exporter}
		}
		tools = instrumented
	}
	return &Generator{
		llm:      svc,
		tools:    tools,
		executor: agent.NewExecutor(maxIterations),
		exporter: exporter,
	}
}

// instrumentedTool counts invocations of the wrapped tool.
type instrumentedTool struct {
	agent.ToolWithSchema
	exporter *metrics.PrometheusExporter
}

func (t *instrumentedTool) Run(ctx context.Context, input string) (string, error) {
	t.exporter.RecordToolCall(t.Name())
	return t.ToolWithSchema.Run(ctx, input)
}

// Generate researches the topic at the given depth level and returns the raw
// report text. An empty report is a legitimate empty result, not an error.
// Concurrent identical requests are deduplicated into one agent run.
func (g *Generator) Generate(ctx context.Context, topic string, level Level) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("%w: topic is empty", ErrGenerationFailed)
	}

	key := fmt.Sprintf("%s\x00%s", topic, level)
	report, err, shared := g.group.Do(key, func() (interface{}, error) {
		return g.generate(ctx, topic, level)
	})
	if shared {
		slog.Debug("research: request coalesced with an in-flight generation",
			"topic", topic, "level", level)
	}
	if err != nil {
		return "", err
	}
	return report.(string), nil
}

func (g *Generator) generate(ctx context.Context, topic string, level Level) (string, error) {
	startTime := time.Now()

	slog.Info("research: generating report",
		"topic", topic,
		"level", level,
		"tools", len(g.tools),
	)

	report, err := g.run(ctx, topic, level)
	duration := time.Since(startTime)
	if g.exporter != nil {
		g.exporter.RecordGeneration(string(level), err == nil, duration)
	}
	if err != nil {
		slog.Error("research: generation failed",
			"topic", topic,
			"level", level,
			"error", err,
			"duration_ms", duration.Milliseconds(),
		)
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	slog.Info("research: report generated",
		"topic", topic,
		"level", level,
		"report_length", len(report),
		"duration_ms", duration.Milliseconds(),
	)
	return report, nil
}

func (g *Generator) run(ctx context.Context, topic string, level Level) (string, error) {
	systemPrompt := buildSystemPrompt(level, g.tools)
	input := buildUserInput(topic)

	// Without tools there is nothing to iterate over; ask the model directly.
	if len(g.tools) == 0 {
		content, stats, err := g.llm.Chat(ctx, llm.FormatMessages(systemPrompt, input, nil))
		if err != nil {
			return "", err
		}
		if g.exporter != nil && stats != nil {
			g.exporter.RecordTokens(stats.TotalTokens)
		}
		return content, nil
	}

	report, stats, err := g.executor.Execute(ctx, systemPrompt, input, g.tools, g.llm)
	if err != nil {
		return "", err
	}
	if g.exporter != nil && stats != nil {
		g.exporter.RecordTokens(stats.TotalTokens)
	}
	return report, nil
}
