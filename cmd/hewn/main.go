// Command hewn plays the jump or snake game in a terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/plus3/hewn/config"
	"github.com/plus3/hewn/ecs"
	"github.com/plus3/hewn/game"
	"github.com/plus3/hewn/game/bird"
	"github.com/plus3/hewn/game/jump"
	"github.com/plus3/hewn/game/snake"
	"github.com/plus3/hewn/level"
	"github.com/plus3/hewn/render/terminal"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	game       string
	levelPath  string
	seed       int64
	autopilot  bool
	debug      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to a TOML config file.")
	flag.StringVar(&opts.game, "game", "", "Game to play: jump, bird or snake.")
	flag.StringVar(&opts.levelPath, "level", "", "Path to a YAML level file.")
	flag.Int64Var(&opts.seed, "seed", 0, "Random seed, 0 picks one from the clock.")
	flag.BoolVar(&opts.autopilot, "autopilot", false, "Let A* steer the snake.")
	flag.BoolVar(&opts.debug, "debug", false, "Show debug information on the status line.")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "hewn: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.game != "" {
		cfg.Runtime.Game = opts.game
	}
	if opts.seed != 0 {
		cfg.Runtime.Seed = opts.seed
	}
	if opts.autopilot {
		cfg.Runtime.Autopilot = true
	}
	if cfg.Runtime.Seed == 0 {
		cfg.Runtime.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}

func newGame(cfg *config.Config, lvl *level.Level, logger *zap.Logger) game.Handler {
	schedulerLogger := ecs.WithLogger(logger.Named("scheduler"))

	switch cfg.Runtime.Game {
	case "bird":
		bc := bird.DefaultConfig()
		if cfg.World.Width > 0 {
			bc.Width = cfg.World.Width
		}
		if cfg.World.Height > 0 {
			bc.Height = cfg.World.Height
		}
		bc.Workers = cfg.Runtime.Workers

		if lvl != nil {
			g := bird.New(bc, cfg.Runtime.Seed, schedulerLogger)
			g.AddWalls(lvl.PositionsOf("wall"))
			return g
		}
		return bird.Create(bc, cfg.Runtime.Seed, schedulerLogger)
	case "snake":
		sc := snake.DefaultConfig()
		if cfg.World.Width > 0 {
			sc.Width = cfg.World.Width
		}
		if cfg.World.Height > 0 {
			sc.Height = cfg.World.Height
		}
		sc.MoveInterval = cfg.Runtime.TickRate
		sc.Autopilot = cfg.Runtime.Autopilot

		g := snake.New(sc, cfg.Runtime.Seed)
		if lvl != nil {
			g.AddWalls(lvl.PositionsOf("wall"))
			g.Start()
		}
		return g
	default:
		jc := jump.DefaultConfig()
		if cfg.World.Width > 0 {
			jc.Width = cfg.World.Width
		}
		if cfg.World.Height > 0 {
			jc.Height = cfg.World.Height
		}
		jc.Workers = cfg.Runtime.Workers

		if lvl != nil {
			g := jump.New(jc, cfg.Runtime.Seed, schedulerLogger)
			g.AddPlatforms(lvl.PositionsOf("platform"))
			return g
		}
		return jump.Create(jc, cfg.Runtime.Seed, schedulerLogger)
	}
}

func run(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run", uuid.NewString()))

	var lvl *level.Level
	if opts.levelPath != "" {
		if lvl, err = level.Load(opts.levelPath); err != nil {
			return err
		}
		logger.Info("level loaded", zap.String("name", lvl.Name), zap.Int("entities", len(lvl.Entities)))
	}

	h := newGame(cfg, lvl, logger)
	if lvl != nil {
		// Entries the game does not interpret are scenery.
		lvl.Spawn(h.Storage(), "scenery")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	renderer := terminal.NewRenderer(screen)
	renderer.SetViewSize(cfg.World.ScreenWidth, cfg.World.ScreenHeight)
	renderer.SetDebug(opts.debug)

	logger.Info("starting",
		zap.String("game", cfg.Runtime.Game),
		zap.Int64("seed", cfg.Runtime.Seed),
		zap.Duration("tick_rate", cfg.Runtime.TickRate),
	)
	loop(screen, renderer, h, cfg.Runtime.TickRate, logger)
	logger.Info("stopped", zap.Int("score", h.State().Score))
	return nil
}

// loop advances h once per tick with the last key pressed in between and
// returns when the player quits.
func loop(screen tcell.Screen, renderer *terminal.Renderer, h game.Handler, tickRate time.Duration, logger *zap.Logger) {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	var pending *game.Key
	last := time.Now()
	renderer.Draw(h)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				key, ok := terminal.KeyFromEvent(ev)
				if !ok {
					continue
				}
				if key == game.KeyEscape {
					return
				}
				if key == game.KeySpace && h.State().Phase != game.PhasePlaying {
					h.Start()
					logger.Debug("game started")
					continue
				}
				pending = &key
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			before := h.State().Phase
			h.Next(now.Sub(last), pending)
			last = now
			pending = nil

			if state := h.State(); before == game.PhasePlaying && state.Phase == game.PhaseLost {
				logger.Info("game over", zap.Int("score", state.Score))
			}
			renderer.Draw(h)
		}
	}
}
