// Package roller is the boundary between front ends and the dice core. It
// enforces input limits, resolves seeds, traces each call and converts core
// errors into coded, localizable errors.
package roller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/rollexpr/internal/core/ast"
	"github.com/louisbranch/rollexpr/internal/core/check"
	"github.com/louisbranch/rollexpr/internal/core/dice"
	"github.com/louisbranch/rollexpr/internal/core/eval"
	"github.com/louisbranch/rollexpr/internal/core/notation"
	"github.com/louisbranch/rollexpr/internal/core/render"
	apperrors "github.com/louisbranch/rollexpr/internal/platform/errors"
	"github.com/louisbranch/rollexpr/internal/platform/config"
	"github.com/louisbranch/rollexpr/internal/random"
)

const tracerName = "github.com/louisbranch/rollexpr/internal/services/roller"

// Config bounds the work a single request may ask for. Zero disables a limit.
type Config struct {
	MaxExpressionLength int `env:"MAX_EXPRESSION_LENGTH" envDefault:"256"`
	MaxDice             int `env:"MAX_DICE" envDefault:"1000"`
}

// LoadConfig reads Config from ROLLEXPR_ environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Request asks for one evaluation of a dice expression.
type Request struct {
	Expression string
	// Mode is random, min, mid or max. Empty means random.
	Mode string
	// Seed replays a random roll. Ignored by the deterministic modes.
	Seed *int64
	// Difficulty, when set, is checked against the total.
	Difficulty *int
}

// Range holds the totals of the expression under the min, mid and max
// strategies.
type Range struct {
	Min int
	Mid int
	Max int
}

// Lowest returns the smaller of the min and max totals. Subtraction can make
// the max strategy produce the lower total.
func (r Range) Lowest() int { return min(r.Min, r.Max) }

// Highest returns the larger of the min and max totals.
func (r Range) Highest() int { return max(r.Min, r.Max) }

// Check is a difficulty check of the rolled total.
type Check struct {
	check.Result
	// Feasibility is nil when the range could not be estimated.
	Feasibility *check.Feasibility
}

// Result is one evaluated expression.
type Result struct {
	// Expression is the canonical form of the request expression.
	Expression string
	Total      int
	Rolls      []dice.DieRoll
	Mode       dice.Mode
	Seed       int64
	SeedSource random.SeedSource
	RngAlgo    string
	// Range is nil when a deterministic evaluation fails, e.g. a divisor
	// that is zero only at one extreme.
	Range *Range
	Check *Check
}

// Service evaluates and renders dice expressions.
type Service struct {
	cfg     Config
	newSeed func() (int64, error)
	tracer  trace.Tracer
	history HistoryStore
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithSeedSource replaces the crypto seed generator used for random rolls
// without a client seed.
func WithSeedSource(fn func() (int64, error)) Option {
	return func(s *Service) {
		s.newSeed = fn
	}
}

// WithTracerProvider traces through tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// New returns a Service with the given limits.
func New(cfg Config, opts ...Option) *Service {
	s := &Service{
		cfg:     cfg,
		newSeed: random.NewSeed,
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Roll parses and evaluates req.Expression.
func (s *Service) Roll(ctx context.Context, req Request) (result Result, err error) {
	ctx, span := s.tracer.Start(ctx, "roller.Roll")
	defer func() { endSpan(span, err) }()

	mode, err := dice.ParseMode(req.Mode)
	if err != nil {
		return Result{}, apperrors.WrapWithMetadata(apperrors.CodeInvalidMode, err.Error(), map[string]string{
			"Mode": req.Mode,
		}, err)
	}

	root, err := s.parse(req.Expression)
	if err != nil {
		return Result{}, err
	}
	canonical, err := render.Print(root)
	if err != nil {
		return Result{}, toDomainError(err)
	}

	result = Result{
		Expression: canonical,
		Mode:       mode,
		SeedSource: random.SeedSourceNone,
	}
	if mode == dice.ModeRandom {
		seed, source, err := random.ResolveSeed(req.Seed, s.newSeed)
		if err != nil {
			return Result{}, apperrors.Wrap(apperrors.CodeSeedUnavailable, "resolve seed", err)
		}
		result.Seed = seed
		result.SeedSource = source
		result.RngAlgo = random.RngAlgoMathRandV1
	}

	strategy, err := dice.StrategyFor(mode, result.Seed)
	if err != nil {
		return Result{}, toDomainError(err)
	}
	evaluator := eval.New(strategy, eval.WithDiceLimit(s.cfg.MaxDice))
	total, err := evaluator.Eval(root)
	if err != nil {
		return Result{}, toDomainError(err)
	}
	result.Total = total
	result.Rolls = evaluator.Rolls()
	result.Range = s.estimate(root)

	if req.Difficulty != nil {
		c := &Check{Result: check.Check(total, *req.Difficulty)}
		if result.Range != nil {
			feasibility := check.Assess(result.Range.Lowest(), result.Range.Highest(), *req.Difficulty)
			c.Feasibility = &feasibility
		}
		result.Check = c
	}

	span.SetAttributes(
		attribute.String("dice.expression", canonical),
		attribute.String("dice.mode", mode.String()),
		attribute.Int("dice.count", len(result.Rolls)),
		attribute.Int("dice.total", total),
		attribute.String("dice.seed_source", string(result.SeedSource)),
	)
	s.record(ctx, result)
	return result, nil
}

// Render parses expression and returns it in format: "text" for the
// canonical notation, "dot" or "mermaid" for a graph of the tree.
func (s *Service) Render(ctx context.Context, expression, format string) (output string, err error) {
	_, span := s.tracer.Start(ctx, "roller.Render")
	defer func() { endSpan(span, err) }()

	f, err := render.ParseFormat(format)
	if err != nil {
		return "", apperrors.WrapWithMetadata(apperrors.CodeInvalidFormat, err.Error(), map[string]string{
			"Format": format,
		}, err)
	}
	span.SetAttributes(attribute.String("render.format", string(f)))

	root, err := s.parse(expression)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, root, f); err != nil {
		return "", toDomainError(err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// parse applies the input limits and parses expression.
func (s *Service) parse(expression string) (ast.Node, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, apperrors.New(apperrors.CodeExpressionEmpty, "dice expression is empty")
	}
	if limit := s.cfg.MaxExpressionLength; limit > 0 {
		if length := utf8.RuneCountInString(expression); length > limit {
			return nil, apperrors.WithMetadata(apperrors.CodeExpressionTooLong,
				fmt.Sprintf("dice expression has %d characters, limit is %d", length, limit),
				map[string]string{
					"Length": strconv.Itoa(length),
					"Limit":  strconv.Itoa(limit),
				})
		}
	}

	root, err := notation.Parse(expression)
	if err != nil {
		return nil, toDomainError(err)
	}
	return root, nil
}

// estimate evaluates root under the deterministic strategies.
func (s *Service) estimate(root ast.Node) *Range {
	var totals [3]int
	for i, strategy := range []dice.Strategy{dice.Min, dice.Mid, dice.Max} {
		total, err := eval.New(strategy, eval.WithDiceLimit(s.cfg.MaxDice)).Eval(root)
		if err != nil {
			return nil
		}
		totals[i] = total
	}
	return &Range{Min: totals[0], Mid: totals[1], Max: totals[2]}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, string(apperrors.GetCode(err)))
	}
	span.End()
}
