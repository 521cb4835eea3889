// Package main provides a CLI that rolls or renders a dice expression.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	rollcmd "github.com/louisbranch/rollexpr/internal/cmd/roll"
	"github.com/louisbranch/rollexpr/internal/platform/config"
)

func main() {
	log.SetPrefix("[ROLL] ")
	cfg, err := rollcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rollcmd.Run(ctx, cfg, os.Stdout); err != nil {
		stop()
		config.Exitf("%s", rollcmd.FormatError(err, cfg.Locale))
	}
}
