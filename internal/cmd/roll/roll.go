// Package roll parses roll command flags and prints dice expression results.
package roll

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/louisbranch/rollexpr/internal/core/dice"
	entrypoint "github.com/louisbranch/rollexpr/internal/platform/cmd"
	apperrors "github.com/louisbranch/rollexpr/internal/platform/errors"
	"github.com/louisbranch/rollexpr/internal/platform/i18n/catalog"
	"github.com/louisbranch/rollexpr/internal/services/roller"
)

const (
	ansiReset   = "\x1b[0m"
	ansiKept    = "\x1b[32m"
	ansiDropped = "\x1b[9;31m"
)

// ErrMissingExpression is returned when no expression follows the flags.
var ErrMissingExpression = errors.New("usage: roll [flags] [min|mid|max|rand|text|dot|mermaid] expression")

// Config holds roll command configuration.
type Config struct {
	Locale     string `env:"LOCALE" envDefault:"en-US"`
	Color      bool   `env:"COLOR" envDefault:"true"`
	Mode       string `env:"MODE"`
	Format     string
	Seed       *int64
	Difficulty *int
	Expression string
	Roller     roller.Config
}

// ParseConfig parses environment and flags into a Config. A leading mode or
// format word in the positional arguments overrides the matching flag, and
// the remaining arguments are joined into the expression.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "evaluation mode: random, min, mid or max")
	fs.StringVar(&cfg.Format, "format", "", "output format: text, dot or mermaid (renders instead of rolling)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for output and errors")
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "color kept and dropped dice")
	fs.IntVar(&cfg.Roller.MaxDice, "max-dice", cfg.Roller.MaxDice, "maximum dice rolled per expression (0 for no limit)")
	fs.Func("seed", "seed that replays a random roll", func(value string) error {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.Seed = &seed
		return nil
	})
	fs.Func("difficulty", "difficulty target checked against the total", func(value string) error {
		difficulty, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Difficulty = &difficulty
		return nil
	})
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	rest := fs.Args()
	if len(rest) > 1 {
		word := strings.ToLower(rest[0])
		if _, err := dice.ParseMode(word); err == nil {
			cfg.Mode = word
			rest = rest[1:]
		} else if word == "text" || word == "dot" || word == "mermaid" {
			cfg.Format = word
			rest = rest[1:]
		}
	}
	cfg.Expression = strings.TrimSpace(strings.Join(rest, " "))
	if cfg.Expression == "" {
		return Config{}, ErrMissingExpression
	}
	return cfg, nil
}

// Run rolls or renders the configured expression and writes the result to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRoll, func(ctx context.Context) error {
		svc := roller.New(cfg.Roller)
		if cfg.Format != "" {
			return render(ctx, svc, cfg, out)
		}
		return roll(ctx, svc, cfg, out)
	})
}

// FormatError returns the localized message printed for err.
func FormatError(err error, locale string) string {
	printer := catalog.Default().Printer(locale)
	return printer.Sprintf("core.error", apperrors.Localize(err, locale))
}

func render(ctx context.Context, svc *roller.Service, cfg Config, out io.Writer) error {
	output, err := svc.Render(ctx, cfg.Expression, cfg.Format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, output)
	return err
}

func roll(ctx context.Context, svc *roller.Service, cfg Config, out io.Writer) error {
	result, err := svc.Roll(ctx, roller.Request{
		Expression: cfg.Expression,
		Mode:       cfg.Mode,
		Seed:       cfg.Seed,
		Difficulty: cfg.Difficulty,
	})
	if err != nil {
		return err
	}

	printer := catalog.Default().Printer(cfg.Locale)
	lines := []string{result.Expression}
	if len(result.Rolls) > 0 {
		lines = append(lines, receipt(result.Rolls, cfg.Color))
	}
	lines = append(lines, printer.Sprintf("core.total", result.Total))
	if result.Range != nil {
		lines = append(lines, printer.Sprintf("core.range", result.Range.Min, result.Range.Max, result.Range.Mid))
	}
	if result.Check != nil {
		if result.Check.Success {
			lines = append(lines, printer.Sprintf("core.check.success", result.Check.Margin))
		} else {
			lines = append(lines, printer.Sprintf("core.check.failure", -result.Check.Margin))
		}
	}
	if result.RngAlgo != "" {
		lines = append(lines, printer.Sprintf("core.seed", strconv.FormatInt(result.Seed, 10), string(result.SeedSource)))
	}

	_, err = fmt.Fprintln(out, strings.Join(lines, "\n"))
	return err
}

// receipt lists every die in roll order. Dropped dice are struck through, or
// wrapped in tildes without color.
func receipt(rolls []dice.DieRoll, color bool) string {
	parts := make([]string, 0, len(rolls))
	for _, r := range rolls {
		switch {
		case color && r.Keep:
			parts = append(parts, ansiKept+r.String()+ansiReset)
		case color:
			parts = append(parts, ansiDropped+r.String()+ansiReset)
		case r.Keep:
			parts = append(parts, r.String())
		default:
			parts = append(parts, "~"+r.String()+"~")
		}
	}
	return strings.Join(parts, " ")
}
