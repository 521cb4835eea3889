package domain

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/rollexpr/internal/core/dice"
	"github.com/louisbranch/rollexpr/internal/services/roller"
)

// Roller evaluates and renders dice expressions.
type Roller interface {
	Roll(ctx context.Context, req roller.Request) (roller.Result, error)
	Render(ctx context.Context, expression, format string) (string, error)
	History(ctx context.Context, limit int) ([]roller.Entry, error)
}

// RollDiceInput represents the MCP tool input for rolling an expression.
type RollDiceInput struct {
	Expression string `json:"expression" jsonschema:"dice expression, e.g. 4d6kh3+2 or d20 adv"`
	Mode       string `json:"mode,omitempty" jsonschema:"evaluation mode: random (default), min, mid or max"`
	Seed       *int64 `json:"seed,omitempty" jsonschema:"optional seed that replays a random roll"`
	Difficulty *int   `json:"difficulty,omitempty" jsonschema:"optional difficulty target for the total"`
	Locale     string `json:"locale,omitempty" jsonschema:"locale for error messages, e.g. en-US or pt-BR"`
}

// DieRollResult represents one rolled die.
type DieRollResult struct {
	Sides  int  `json:"sides" jsonschema:"number of faces on the die"`
	Result int  `json:"result" jsonschema:"face rolled"`
	Kept   bool `json:"kept" jsonschema:"whether the die counts toward the total"`
}

// RngResult represents RNG details used for a random roll.
type RngResult struct {
	SeedUsed   int64  `json:"seed_used" jsonschema:"seed value used for the roll"`
	RngAlgo    string `json:"rng_algo" jsonschema:"rng algorithm identifier"`
	SeedSource string `json:"seed_source" jsonschema:"seed source (CLIENT or SERVER)"`
}

// RangeResult represents the totals under the deterministic modes.
type RangeResult struct {
	Min int `json:"min" jsonschema:"total when every die shows 1"`
	Mid int `json:"mid" jsonschema:"total when every die shows half its faces"`
	Max int `json:"max" jsonschema:"total when every die shows its highest face"`
}

// CheckResult represents a difficulty check of the total.
type CheckResult struct {
	Difficulty  int    `json:"difficulty" jsonschema:"difficulty target"`
	Success     bool   `json:"success" jsonschema:"whether the total meets the difficulty"`
	Margin      int    `json:"margin" jsonschema:"total minus difficulty"`
	Feasibility string `json:"feasibility,omitempty" jsonschema:"impossible, possible or guaranteed across the range"`
}

// RollDiceResult represents the MCP tool output for a roll.
type RollDiceResult struct {
	Expression string          `json:"expression" jsonschema:"canonical form of the expression"`
	Mode       string          `json:"mode" jsonschema:"evaluation mode applied"`
	Total      int             `json:"total" jsonschema:"value of the expression"`
	Rolls      []DieRollResult `json:"rolls" jsonschema:"every die rolled, rerolls included"`
	Rng        *RngResult      `json:"rng,omitempty" jsonschema:"rng details for random rolls"`
	Range      *RangeResult    `json:"range,omitempty" jsonschema:"totals under the min, mid and max modes"`
	Check      *CheckResult    `json:"check,omitempty" jsonschema:"difficulty check, if requested"`
}

// RenderDiceInput represents the MCP tool input for rendering an expression.
type RenderDiceInput struct {
	Expression string `json:"expression" jsonschema:"dice expression to render"`
	Format     string `json:"format,omitempty" jsonschema:"text (default), dot or mermaid"`
	Locale     string `json:"locale,omitempty" jsonschema:"locale for error messages, e.g. en-US or pt-BR"`
}

// RenderDiceResult represents the MCP tool output for a rendered expression.
type RenderDiceResult struct {
	Format string `json:"format" jsonschema:"format rendered"`
	Output string `json:"output" jsonschema:"canonical notation or graph source"`
}

// RollHistoryInput represents the MCP tool input for listing past rolls.
type RollHistoryInput struct {
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum entries to return (default 20)"`
	Locale string `json:"locale,omitempty" jsonschema:"locale for error messages, e.g. en-US or pt-BR"`
}

// RollHistoryEntry represents one past roll.
type RollHistoryEntry struct {
	ID         string          `json:"id" jsonschema:"roll identifier"`
	Expression string          `json:"expression" jsonschema:"canonical form of the expression"`
	Mode       string          `json:"mode" jsonschema:"evaluation mode applied"`
	Total      int             `json:"total" jsonschema:"value of the expression"`
	Seed       int64           `json:"seed" jsonschema:"seed used, 0 for deterministic modes"`
	SeedSource string          `json:"seed_source" jsonschema:"seed source (CLIENT, SERVER or NONE)"`
	Rolls      []DieRollResult `json:"rolls" jsonschema:"every die rolled"`
	RolledAt   string          `json:"rolled_at" jsonschema:"RFC 3339 time of the roll"`
}

// RollHistoryResult represents the MCP tool output for past rolls.
type RollHistoryResult struct {
	Entries []RollHistoryEntry `json:"entries" jsonschema:"past rolls, newest first"`
}

// RollDiceTool defines the MCP tool schema for rolling dice expressions.
func RollDiceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_dice",
		Description: "Rolls a dice expression such as 4d6kh3+2, with keep/drop and advantage selections",
	}
}

// RenderDiceTool defines the MCP tool schema for rendering dice expressions.
func RenderDiceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "render_dice",
		Description: "Renders a dice expression as canonical notation or as a DOT or Mermaid syntax tree",
	}
}

// RollHistoryTool defines the MCP tool schema for listing past rolls.
func RollHistoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_history",
		Description: "Lists recent rolls, newest first, with their seeds for replay",
	}
}

// RollDiceHandler executes a dice expression roll.
func RollDiceHandler(svc Roller) mcp.ToolHandlerFor[RollDiceInput, RollDiceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollDiceInput) (*mcp.CallToolResult, RollDiceResult, error) {
		res, err := svc.Roll(ctx, roller.Request{
			Expression: input.Expression,
			Mode:       input.Mode,
			Seed:       input.Seed,
			Difficulty: input.Difficulty,
		})
		if err != nil {
			return nil, RollDiceResult{}, NewToolError(err, input.Locale)
		}
		return nil, rollDiceResult(res), nil
	}
}

// RenderDiceHandler renders a dice expression.
func RenderDiceHandler(svc Roller) mcp.ToolHandlerFor[RenderDiceInput, RenderDiceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RenderDiceInput) (*mcp.CallToolResult, RenderDiceResult, error) {
		output, err := svc.Render(ctx, input.Expression, input.Format)
		if err != nil {
			return nil, RenderDiceResult{}, NewToolError(err, input.Locale)
		}
		format := input.Format
		if format == "" {
			format = "text"
		}
		return nil, RenderDiceResult{Format: format, Output: output}, nil
	}
}

// RollHistoryHandler lists past rolls.
func RollHistoryHandler(svc Roller) mcp.ToolHandlerFor[RollHistoryInput, RollHistoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollHistoryInput) (*mcp.CallToolResult, RollHistoryResult, error) {
		entries, err := svc.History(ctx, input.Limit)
		if err != nil {
			return nil, RollHistoryResult{}, NewToolError(err, input.Locale)
		}
		result := RollHistoryResult{Entries: make([]RollHistoryEntry, 0, len(entries))}
		for _, entry := range entries {
			result.Entries = append(result.Entries, RollHistoryEntry{
				ID:         entry.ID,
				Expression: entry.Expression,
				Mode:       entry.Mode.String(),
				Total:      entry.Total,
				Seed:       entry.Seed,
				SeedSource: string(entry.SeedSource),
				Rolls:      dieRollResults(entry.Rolls),
				RolledAt:   entry.RolledAt.UTC().Format(time.RFC3339),
			})
		}
		return nil, result, nil
	}
}

func dieRollResults(rolls []dice.DieRoll) []DieRollResult {
	out := make([]DieRollResult, 0, len(rolls))
	for _, r := range rolls {
		out = append(out, DieRollResult{Sides: r.Sides, Result: r.Result, Kept: r.Keep})
	}
	return out
}

func rollDiceResult(res roller.Result) RollDiceResult {
	result := RollDiceResult{
		Expression: res.Expression,
		Mode:       res.Mode.String(),
		Total:      res.Total,
		Rolls:      dieRollResults(res.Rolls),
	}
	if res.RngAlgo != "" {
		result.Rng = &RngResult{
			SeedUsed:   res.Seed,
			RngAlgo:    res.RngAlgo,
			SeedSource: string(res.SeedSource),
		}
	}
	if res.Range != nil {
		result.Range = &RangeResult{Min: res.Range.Min, Mid: res.Range.Mid, Max: res.Range.Max}
	}
	if res.Check != nil {
		result.Check = &CheckResult{
			Difficulty: res.Check.Difficulty,
			Success:    res.Check.Success,
			Margin:     res.Check.Margin,
		}
		if res.Check.Feasibility != nil {
			result.Check.Feasibility = res.Check.Feasibility.String()
		}
	}
	return result
}
