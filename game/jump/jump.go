// Package jump is a vertical platform game: the player bounces from
// platform to platform and loses by falling too far.
package jump

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/plus3/hewn/ecs"
	"github.com/plus3/hewn/game"
)

var (
	playerColor   = ecs.Color{R: 1, G: 0.8, B: 0.2}
	platformColor = ecs.Color{R: 0.4, G: 0.8, B: 0.4}
)

// Config holds the world size and the physics constants, in cells and
// cells per second.
type Config struct {
	Width  int
	Height int

	JumpSpeed float64 // vertical speed after landing
	Gravity   float64 // loss of vertical speed per second
	LoseSpeed float64 // falling faster than this ends the game

	PlatformWidth int
	MaxGap        int // rows between guaranteed platforms

	// Workers above 1 run the collision pass in parallel.
	Workers int
}

// DefaultConfig returns a 10x500 tower with a jump of about ten rows.
func DefaultConfig() Config {
	return Config{
		Width:         10,
		Height:        500,
		JumpSpeed:     20,
		Gravity:       20,
		LoseSpeed:     26,
		PlatformWidth: 3,
		MaxGap:        8,
		Workers:       1,
	}
}

// Game is a jump game backed by an ecs store.
type Game struct {
	cfg       Config
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	rng       *rand.Rand
	player    ecs.EntityId
	platforms map[ecs.EntityId]struct{}
	state     game.State
}

// New creates a game with a player and no platforms.
func New(cfg Config, seed int64, opts ...ecs.SchedulerOption) *Game {
	g := &Game{
		cfg:       cfg,
		storage:   ecs.NewStorage(),
		rng:       rand.New(rand.NewSource(seed)),
		platforms: make(map[ecs.EntityId]struct{}),
	}

	g.scheduler = ecs.NewScheduler(g.storage, opts...)
	g.scheduler.Register(ecs.StepSystem{})
	g.scheduler.Register(ecs.SystemFunc(g.applyGravity))
	g.scheduler.Register(&ecs.CollisionSystem{Workers: cfg.Workers})
	g.scheduler.Register(ecs.SystemFunc(g.land))
	g.player = g.storage.Spawn(ecs.Components{}.
		WithPosition(1, 1).
		WithVelocity(0, cfg.JumpSpeed).
		WithSize(1, 1).
		WithRender('#', playerColor).
		WithCameraFollow())
	return g
}

// Create returns a game with randomly generated platforms.
func Create(cfg Config, seed int64, opts ...ecs.SchedulerOption) *Game {
	g := New(cfg, seed, opts...)
	g.AddPlatforms(g.generatePlatforms())
	return g
}

// AddPlatforms spawns a platform with its bottom-left corner at each position.
func (g *Game) AddPlatforms(positions []ecs.Position) {
	for _, p := range positions {
		id := g.storage.Spawn(ecs.Components{}.
			WithPosition(p.X, p.Y).
			WithVelocity(0, 0).
			WithSize(float64(g.cfg.PlatformWidth), 1).
			WithRender('=', platformColor))
		g.platforms[id] = struct{}{}
	}
}

func (g *Game) generatePlatforms() []ecs.Position {
	span := max(g.cfg.Width-g.cfg.PlatformWidth, 1)

	var platforms []ecs.Position
	sinceLast := 0
	for row := range g.cfg.Height {
		if sinceLast > g.cfg.MaxGap {
			platforms = append(platforms, ecs.Position{X: float64(g.rng.Intn(span)), Y: float64(row)})
			sinceLast = 0
		}
		if g.rng.Intn(10) == 0 {
			platforms = append(platforms, ecs.Position{X: float64(g.rng.Intn(span)), Y: float64(row)})
			sinceLast = 0
		}
		sinceLast++
	}
	return platforms
}

// Storage returns the store holding the player and the platforms.
func (g *Game) Storage() *ecs.Storage { return g.storage }

func (g *Game) State() game.State { return g.state }

// Player returns the tracked player entity.
func (g *Game) Player() *ecs.Entity {
	e, _ := g.storage.Get(g.player)
	return e
}

// Start puts the player back at the bottom, jumping, and resets the score.
func (g *Game) Start() {
	g.state = game.State{Phase: game.PhasePlaying}
	player := g.Player()
	player.Components.Position = &ecs.Position{X: 1, Y: 1}
	player.Components.Velocity = &ecs.Velocity{X: 0, Y: g.cfg.JumpSpeed}
}

// Next moves the player for key and runs one physics frame of length dt.
func (g *Game) Next(dt time.Duration, key *game.Key) {
	if g.state.Phase != game.PhasePlaying {
		return
	}

	g.movePlayer(key)
	g.scheduler.Once(dt)

	player := g.Player()
	pos, vel := player.Components.Position, player.Components.Velocity
	if vel.Y < -g.cfg.LoseSpeed || pos.Y > float64(g.cfg.Height) {
		g.state.Phase = game.PhaseLost
	}
	g.state.Score = max(g.state.Score, int(math.Floor(pos.Y)))
}

func (g *Game) movePlayer(key *game.Key) {
	if key == nil {
		return
	}
	pos := g.Player().Components.Position
	switch *key {
	case game.KeyLeft:
		if pos.X >= 1 {
			pos.X--
		}
	case game.KeyRight:
		if pos.X < float64(g.cfg.Width-1) {
			pos.X++
		}
	}
}

func (g *Game) applyGravity(frame *ecs.UpdateFrame) {
	g.Player().Components.Velocity.Y -= g.cfg.Gravity * frame.DeltaTime.Seconds()
}

// land bounces the player off the first platform it falls onto.
func (g *Game) land(frame *ecs.UpdateFrame) {
	player := g.Player()
	if player.Components.Velocity.Y > 0 {
		return
	}

	for _, pair := range frame.Collisions {
		other, ok := pair.Other(g.player)
		if !ok {
			continue
		}
		if _, isPlatform := g.platforms[other]; !isPlatform {
			continue
		}
		platform, ok := g.storage.Get(other)
		if !ok {
			continue
		}

		player.Components.Velocity.Y = g.cfg.JumpSpeed
		player.Components.Position.Y = platform.Components.Position.Y + platform.Components.Size.Y
		return
	}
}

func (g *Game) DebugString() string {
	player := g.Player()
	pos, vel := player.Components.Position, player.Components.Velocity
	return fmt.Sprintf("v = %5.1f, x = %3.0f, y = %5.1f, score = %d", vel.Y, pos.X, pos.Y, g.state.Score)
}

// SchedulerStats reports per-system timings of the physics frame.
func (g *Game) SchedulerStats() *ecs.SchedulerStats {
	return g.scheduler.GetStats()
}
