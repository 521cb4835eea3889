// Package cmd holds the startup plumbing shared by every binary: env then
// flag configuration and a telemetry-wrapped run loop.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/louisbranch/rollexpr/internal/platform/config"
	platformotel "github.com/louisbranch/rollexpr/internal/platform/otel"
	"github.com/louisbranch/rollexpr/internal/platform/timeouts"
)

// Service names used for telemetry resources and span prefixes.
const (
	ServiceRoll = "roll"
	ServiceMCP  = "mcp"
)

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// ParseConfigFromArgs loads defaults from env and then parses flags, so flags
// win over the environment.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string) error {
	if err := ParseConfig(cfg); err != nil {
		return err
	}
	return ParseArgs(fs, args)
}

// RunOption adjusts RunWithTelemetry.
type RunOption func(*runSettings)

type runSettings struct {
	flushTimeout time.Duration
}

// WithFlushTimeout bounds the final span export. Non-positive values keep
// the default.
func WithFlushTimeout(d time.Duration) RunOption {
	return func(s *runSettings) {
		if d > 0 {
			s.flushTimeout = d
		}
	}
}

// RunWithTelemetry installs the tracer provider for service, runs run inside
// a "<service>.run" span and flushes telemetry on the way out.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error, opts ...RunOption) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	settings := runSettings{flushTimeout: timeouts.TelemetryFlush}
	for _, opt := range opts {
		opt(&settings)
	}

	shutdown, err := platformotel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), settings.flushTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()

	ctx, span := otel.Tracer("github.com/louisbranch/rollexpr/cmd/"+service).Start(ctx, service+".run")
	defer span.End()
	if err := run(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "run failed")
		return err
	}
	return nil
}
