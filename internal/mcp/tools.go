package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/spboyer/pagescore/internal/reporting"
	"github.com/spboyer/pagescore/internal/scoring"
	"github.com/spboyer/pagescore/internal/weights"
)

// Tool names exposed by the server.
const (
	ToolScore = "content_score"
	ToolRules = "content_rules"
)

// ScoreTool handles the content_score MCP tool.
type ScoreTool struct {
	engine *scoring.Engine
	logger *slog.Logger
}

// NewScoreTool creates a ScoreTool.
func NewScoreTool(engine *scoring.Engine, logger *slog.Logger) *ScoreTool {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreTool{engine: engine, logger: logger}
}

// Definition returns the MCP tool definition for content_score.
func (t *ScoreTool) Definition() mcpgo.Tool {
	return mcpgo.NewTool(ToolScore,
		mcpgo.WithDescription(
			"Aggregate content-quality check results into a 0-100 score, a red/yellow/green status "+
				"and an ordered list of recommendations. Each check has id, status (pass|warn|fail), "+
				"weight (0-1), and optional label, fix_hint and details.",
		),
		mcpgo.WithArray("checks",
			mcpgo.Required(),
			mcpgo.Description("Check results, as a list of objects or an object keyed by check id"),
			mcpgo.Items(map[string]any{"type": "object"}),
			orKeyedObject(),
		),
		mcpgo.WithObject("weights",
			mcpgo.Description("Optional per-check weight multipliers (0-10), layered over the server's configuration"),
		),
	)
}

// orKeyedObject widens an array property to also accept an object whose
// values have the item schema, keyed by check id.
func orKeyedObject() mcpgo.PropertyOption {
	return func(schema map[string]any) {
		schema["type"] = []string{"array", "object"}
		schema["additionalProperties"] = map[string]any{"type": "object"}
	}
}

// Handle processes the content_score tool call.
func (t *ScoreTool) Handle(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	args := req.GetArguments()
	raw, ok := args["checks"]
	if !ok || raw == nil {
		return mcpgo.NewToolResultError("'checks' is required"), nil
	}

	// Some clients send nested JSON as a string.
	if s, isString := raw.(string); isString {
		if err := json.Unmarshal([]byte(s), &raw); err != nil {
			return mcpgo.NewToolResultError(fmt.Sprintf("'checks' is not valid JSON: %v", err)), nil
		}
	}
	switch raw.(type) {
	case []any, map[string]any:
	default:
		return mcpgo.NewToolResultError("'checks' must be an array or an object"), nil
	}

	eng := t.engine
	if w := weights.FromAny(args["weights"]); w != nil {
		eng = eng.WithOverrides(w)
	}
	payload := eng.ScoreRaw(raw)

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcpgo.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	t.logger.Debug("mcp score", "checks", len(payload.Breakdown), "score", payload.Score)

	return &mcpgo.CallToolResult{
		Content: []mcpgo.Content{
			mcpgo.NewTextContent(string(data)),
			mcpgo.NewTextContent(reporting.Markdown(payload)),
		},
	}, nil
}

// RulesTool handles the content_rules MCP tool.
type RulesTool struct {
	engine *scoring.Engine
}

// NewRulesTool creates a RulesTool.
func NewRulesTool(engine *scoring.Engine) *RulesTool {
	return &RulesTool{engine: engine}
}

// Definition returns the MCP tool definition for content_rules.
func (t *RulesTool) Definition() mcpgo.Tool {
	return mcpgo.NewTool(ToolRules,
		mcpgo.WithDescription("Show which checks are optional and when checks are treated as not applicable."),
	)
}

// Handle processes the content_rules tool call.
func (t *RulesTool) Handle(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	data, err := json.MarshalIndent(t.engine.Rules(), "", "  ")
	if err != nil {
		return mcpgo.NewToolResultError(fmt.Sprintf("encoding rules: %v", err)), nil
	}
	return mcpgo.NewToolResultText(string(data)), nil
}
