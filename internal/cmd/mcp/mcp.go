// Package mcp parses MCP command flags and serves the dice tools over stdio
// or HTTP.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"

	entrypoint "github.com/louisbranch/rollexpr/internal/platform/cmd"
	mcpservice "github.com/louisbranch/rollexpr/internal/services/mcp/service"
	"github.com/louisbranch/rollexpr/internal/services/roller"
	"github.com/louisbranch/rollexpr/internal/services/roller/storage/sqlite"
)

// Config holds MCP command configuration.
type Config struct {
	Transport string `env:"MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string `env:"MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	// HistoryPath is the SQLite roll history file. Empty disables history.
	HistoryPath string `env:"HISTORY_PATH"`
	Roller      roller.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "SQLite file recording rolls (empty disables history)")
	fs.IntVar(&cfg.Roller.MaxDice, "max-dice", cfg.Roller.MaxDice, "maximum dice rolled per expression (0 for no limit)")
	fs.IntVar(&cfg.Roller.MaxExpressionLength, "max-length", cfg.Roller.MaxExpressionLength, "maximum expression length in characters (0 for no limit)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		var opts []roller.Option
		if cfg.HistoryPath != "" {
			store, err := sqlite.Open(ctx, cfg.HistoryPath)
			if err != nil {
				return fmt.Errorf("open roll history: %w", err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					log.Printf("close roll history: %v", err)
				}
			}()
			opts = append(opts, roller.WithHistory(store))
		}

		return mcpservice.Run(ctx, mcpservice.Config{
			Transport: mcpservice.TransportKind(cfg.Transport),
			HTTPAddr:  cfg.HTTPAddr,
		}, roller.New(cfg.Roller, opts...))
	})
}
