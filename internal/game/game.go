// Package game is the real-time terminal front-end: the player runs through
// generated levels collecting runes while the guards hunt them.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"runeguard/assets"
	"runeguard/internal/config"
	"runeguard/internal/gamemap"
	"runeguard/internal/level"
	"runeguard/internal/render"
	"runeguard/internal/sim"
)

// Mode tracks the main state machine.
type Mode uint8

const (
	ModePlaying Mode = iota
	ModeLore
	ModeCaught
	ModeVictory
)

const maxMessages = 20

// Options are per-game settings that do not come from the config file.
type Options struct {
	Name string // shown in the status bar
	Seed int64  // 0 falls back to level.seed, then to the clock
}

// Game is the top-level orchestrator for one player.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	cfg      *config.Config
	log      *zap.Logger
	opts     Options
	rng      *rand.Rand

	seed       int64
	level      int
	score      int // banked from cleared levels
	levelScore int
	mode       Mode

	layout   sim.Layout
	session  *sim.Session
	player   *Player
	runes    []gamemap.Cell
	frame    sim.Frame
	messages []string
}

// New creates a Game on an initialised screen. The caller owns the screen.
func New(screen tcell.Screen, cfg *config.Config, logger *zap.Logger, opts Options) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		cfg:      cfg,
		log:      logger,
		opts:     opts,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run is the main game loop. It returns when the player quits, the screen
// goes away or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(events)
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	if err := g.startRun(); err != nil {
		return err
	}
	dt := g.cfg.Sim.TickSeconds()
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			quit, err := g.handleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				g.log.Info("player quit", zap.Int("level", g.level), zap.Int("score", g.score+g.levelScore))
				return nil
			}
		case <-ticker.C:
			if g.mode == ModePlaying {
				g.step(dt)
			}
			g.draw()
		}
	}
}

// startRun begins a fresh campaign at level 1.
func (g *Game) startRun() error {
	g.seed = g.opts.Seed
	if g.seed == 0 {
		g.seed = g.cfg.Level.Seed
	}
	if g.seed == 0 {
		g.seed = g.rng.Int63n(1_000_000)
	}
	g.score = 0
	g.messages = nil
	g.log.Info("run started", zap.Int64("seed", g.seed), zap.String("player", g.opts.Name))
	return g.loadLevel(1)
}

// loadLevel builds level n and resets the per-level state. Retrying a level
// rebuilds the same layout and forfeits the runes collected on it.
func (g *Game) loadLevel(n int) error {
	layout, err := level.Build(n, g.seed, g.cfg)
	if err != nil {
		return fmt.Errorf("build level %d: %w", n, err)
	}
	session, err := sim.NewSession(layout, g.cfg, g.log.With(zap.Int("level", n)))
	if err != nil {
		return fmt.Errorf("start level %d: %w", n, err)
	}
	g.level = n
	g.layout = layout
	g.session = session
	g.player = NewPlayer(layout.Start, g.cfg.Player, g.cfg.Sim.TileSize)
	g.runes = append([]gamemap.Cell(nil), layout.Runes...)
	g.levelScore = 0
	g.frame = sim.Frame{Target: layout.Start, CaughtBy: -1}
	g.mode = ModePlaying

	g.log.Info("level loaded",
		zap.Int("level", n),
		zap.Int("guards", len(layout.Spawns)),
		zap.Int("runes", len(layout.Runes)))
	if level.IsFinal(n, g.cfg) {
		g.addMessage("Something old is awake on this level.")
	}
	g.addMessage(fmt.Sprintf("Level %d. Collect %d runes. Arrows/wasd move, f sprints.", n, len(g.runes)))
	return nil
}

// step runs one fixed tick: the player moves, picks up any rune underfoot,
// then the guards react.
func (g *Game) step(dt float64) {
	g.player.Update(dt, g.layout.Grid)
	g.collectRune(g.player.Cell(g.layout.Grid))

	g.frame = g.session.Step(dt, g.player.Pos)
	switch {
	case g.frame.Caught:
		g.mode = ModeCaught
		g.addMessage("You were caught!")
		g.log.Info("player caught",
			zap.Int("level", g.level),
			zap.Int("guard", g.frame.CaughtBy),
			zap.Float64("time", g.frame.Time))
	case len(g.runes) == 0:
		g.score += g.levelScore
		g.levelScore = 0
		g.mode = ModeLore
		g.log.Info("level cleared", zap.Int("level", g.level), zap.Int("score", g.score))
	}
}

func (g *Game) collectRune(c gamemap.Cell) {
	for i, r := range g.runes {
		if r != c {
			continue
		}
		g.runes = append(g.runes[:i], g.runes[i+1:]...)
		g.levelScore += g.cfg.Level.RuneScore
		g.addMessage(fmt.Sprintf("Rune recovered (+%d). %d left.", g.cfg.Level.RuneScore, len(g.runes)))
		return
	}
}

// handleEvent applies one input event. quit is true when the game should end.
func (g *Game) handleEvent(ev tcell.Event) (quit bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Resize()
	case *tcell.EventKey:
		action := keyToAction(ev)
		if action == ActionQuit {
			return true, nil
		}
		return false, g.apply(action)
	}
	return false, nil
}

func (g *Game) apply(action Action) error {
	switch g.mode {
	case ModePlaying:
		switch action {
		case ActionSprint:
			g.player.ToggleSprint()
		case ActionStop:
			g.player.Stop()
		default:
			if dx, dy := actionToDelta(action); dx != 0 || dy != 0 {
				g.player.Press(dx, dy)
			}
		}
	case ModeCaught:
		if action == ActionRetry || action == ActionContinue {
			g.log.Info("level retried", zap.Int("level", g.level))
			return g.loadLevel(g.level)
		}
	case ModeLore:
		if action != ActionContinue {
			return nil
		}
		if level.IsFinal(g.level, g.cfg) {
			g.mode = ModeVictory
			g.log.Info("campaign complete", zap.Int("score", g.score))
			return nil
		}
		return g.loadLevel(g.level + 1)
	case ModeVictory:
		if action == ActionRetry {
			g.opts.Seed = 0
			return g.startRun()
		}
	}
	return nil
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

// draw renders the current mode and flushes the screen.
func (g *Game) draw() {
	switch g.mode {
	case ModeLore:
		lines := append([]string(nil), level.Lore(g.level)...)
		lines = append(lines, "", fmt.Sprintf("Score: %d", g.score))
		g.renderer.DrawPanel("Level cleared", lines, "[enter] continue  [q] quit")
	case ModeVictory:
		lines := append([]string(nil), assets.Ending...)
		lines = append(lines, "", fmt.Sprintf("Final score: %d", g.score))
		g.renderer.DrawPanel("The scripts are yours", lines, "[r] new run  [q] quit")
	case ModeCaught:
		g.renderer.DrawPanel("Caught", []string{
			fmt.Sprintf("Guard %d caught you on level %d.", g.frame.CaughtBy, g.level),
			fmt.Sprintf("Runes on this level are lost. Banked score: %d", g.score),
		}, "[r] retry level  [q] quit")
	default:
		g.drawLevel()
	}
	g.screen.Show()
}

func (g *Game) drawLevel() {
	cones := make([][]gamemap.Cell, len(g.frame.Guards))
	for i := range g.frame.Guards {
		cones[i] = g.session.VisionCone(i)
	}
	g.renderer.DrawScene(render.Scene{
		Grid:   g.layout.Grid,
		Level:  g.level,
		Runes:  g.runes,
		Target: g.player.Cell(g.layout.Grid),
		Guards: g.frame.Guards,
		Cones:  cones,
		Caught: g.mode == ModeCaught,
	})
	g.renderer.DrawHUD(render.Status{
		Player:     g.opts.Name,
		Level:      g.level,
		Levels:     g.cfg.Level.Count,
		Score:      g.score + g.levelScore,
		RunesLeft:  len(g.runes),
		Stamina:    g.player.Stamina,
		MaxStamina: g.cfg.Player.MaxStamina,
		Sprinting:  g.player.Sprinting,
		Guards:     g.frame.Guards,
		Messages:   g.messages,
	})
}
