// runeguard-scenario plays a YAML scenario headlessly and prints one line
// per tick. Build:
//
//	go build -o runeguard-scenario ./cmd/scenario
//
// Usage:
//
//	./runeguard-scenario -file internal/scenario/testdata/lost_sight.yaml [-config runeguard.yaml]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"runeguard/internal/config"
	"runeguard/internal/logging"
	"runeguard/internal/scenario"
	"runeguard/internal/sim"
)

func main() {
	file := flag.String("file", "", "scenario YAML file")
	cfgPath := flag.String("config", "", "optional config file")
	changes := flag.Bool("changes", false, "only print ticks where a guard changes state")
	flag.Parse()

	if err := run(*file, *cfgPath, *changes, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(file, cfgPath string, changesOnly bool, out io.Writer) error {
	if file == "" {
		return fmt.Errorf("-file is required")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sc, err := scenario.Load(file)
	if err != nil {
		return err
	}
	frames, err := scenario.Run(sc, cfg, logger)
	if err != nil {
		return err
	}

	var prev *sim.Frame
	for i := range frames {
		f := &frames[i]
		if !changesOnly || prev == nil || changed(prev, f) || f.Caught {
			fmt.Fprintln(out, formatFrame(f))
		}
		prev = f
	}
	logger.Debug("frames written", zap.Int("count", len(frames)))
	return nil
}

func changed(a, b *sim.Frame) bool {
	for i := range b.Guards {
		if a.Guards[i].State != b.Guards[i].State {
			return true
		}
	}
	return false
}

func formatFrame(f *sim.Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%5d %7.2fs target=%v", f.Tick, f.Time, f.Target)
	for _, g := range f.Guards {
		fmt.Fprintf(&b, " g%d=%s@%v", g.ID, g.State, g.Cell)
		if g.Perceived {
			b.WriteByte('!')
		}
	}
	if f.Caught {
		fmt.Fprintf(&b, " CAUGHT by g%d", f.CaughtBy)
	}
	return b.String()
}
