// runeguard is a stealth game for the terminal: collect every rune on the
// level without getting caught by the guards.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"runeguard/internal/config"
	"runeguard/internal/game"
	"runeguard/internal/logging"
)

func main() {
	cfgPath := flag.String("config", "", "config file (defaults apply when absent)")
	preset := flag.String("preset", "", "tuning preset: 2d or 3d")
	seed := flag.Int64("seed", 0, "run seed, 0 for random")
	flag.Parse()

	if *preset != "" {
		_ = os.Setenv("RUNEGUARD_PRESET", *preset)
	}
	if err := run(*cfgPath, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string, seed int64) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	logger, err := logging.ForTerminal(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	logger.Info("starting", zap.String("preset", cfg.Preset), zap.Int64("seed", seed))
	return game.New(screen, cfg, logger, game.Options{Name: os.Getenv("USER"), Seed: seed}).Run(ctx)
}
