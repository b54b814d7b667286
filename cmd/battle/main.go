// Package main provides the battle binary: it musters two squads, fights them
// to the end and prints the outcome as a single line on stdout.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cory-johannsen/squadwar/internal/config"
	"github.com/cory-johannsen/squadwar/internal/game/combat"
	"github.com/cory-johannsen/squadwar/internal/game/dice"
	"github.com/cory-johannsen/squadwar/internal/game/headquarters"
	"github.com/cory-johannsen/squadwar/internal/game/report"
	"github.com/cory-johannsen/squadwar/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cfg, err := config.Default()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}

	code := 0
	if err := run(ctx, cfg, os.Stdout, logger); err != nil {
		logger.Error("battle failed", zap.Error(err))
		code = 1
	}
	_ = logger.Sync()
	stop()
	os.Exit(code)
}

// run fights one battle under cfg and reports the outcome to out.
//
// An unresolved battle (time limit or interrupt) is still reported; only
// setup and reporting failures return an error.
func run(ctx context.Context, cfg config.Config, out io.Writer, logger *zap.Logger) error {
	src := dice.NewLoggedSource(newSource(cfg.Battle.Seed), logger)

	tables, err := loadTables(cfg.Battle.RolesFile)
	if err != nil {
		return err
	}
	hq, err := headquarters.New(tables, cfg.Battle, src, logger)
	if err != nil {
		return fmt.Errorf("creating headquarters: %w", err)
	}

	b := combat.NewBattle(hq.CreateSquad("first"), hq.CreateSquad("second"), src, logger)

	if cfg.Battle.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Battle.TimeLimit)
		defer cancel()
	}
	outcome, err := b.RunContext(ctx)
	if err != nil {
		logger.Warn("battle unresolved", zap.Error(err))
	}
	logger.Debug("dice drawn", zap.Int("draws", src.Draws()))

	return report.Multi{report.NewConsole(out), report.NewLogging(logger)}.Report(outcome)
}

func newSource(seed int64) dice.Source {
	if seed == 0 {
		return dice.NewCryptoSource()
	}
	return dice.NewSeededSource(seed)
}

func loadTables(path string) (headquarters.Tables, error) {
	if path == "" {
		return headquarters.DefaultTables(), nil
	}
	return headquarters.LoadTables(path)
}
