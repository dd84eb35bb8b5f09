// Package bird is a side-scrolling game: the player drifts right, flaps to
// stay up and must fly through the gaps between walls.
package bird

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/plus3/hewn/ecs"
	"github.com/plus3/hewn/game"
)

var (
	playerColor = ecs.Color{R: 1, G: 0.9, B: 0.2}
	wallColor   = ecs.Color{R: 0.5, G: 0.7, B: 1}
)

// Config holds the world size and the physics constants, in cells and
// cells per second.
type Config struct {
	Width  int
	Height int

	ForwardSpeed float64 // constant rightward speed
	FlapSpeed    float64 // vertical speed set by a flap
	Gravity      float64 // loss of vertical speed per second
	LoseSpeed    float64 // falling faster than this ends the game

	WallHeight int
	MaxGap     int // columns between guaranteed walls

	// Workers above 1 run the collision pass in parallel.
	Workers int
}

// DefaultConfig returns a 1000 column corridor, 30 rows high.
func DefaultConfig() Config {
	return Config{
		Width:        1000,
		Height:       30,
		ForwardSpeed: 10,
		FlapSpeed:    15,
		Gravity:      30,
		LoseSpeed:    30,
		WallHeight:   5,
		MaxGap:       8,
		Workers:      1,
	}
}

// Game is a side-scrolling game backed by an ecs store.
type Game struct {
	cfg       Config
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	rng       *rand.Rand
	player    ecs.EntityId
	walls     map[ecs.EntityId]struct{}
	state     game.State
}

// New creates a game with a player and no walls.
func New(cfg Config, seed int64, opts ...ecs.SchedulerOption) *Game {
	g := &Game{
		cfg:     cfg,
		storage: ecs.NewStorage(),
		rng:     rand.New(rand.NewSource(seed)),
		walls:   make(map[ecs.EntityId]struct{}),
	}

	g.scheduler = ecs.NewScheduler(g.storage, opts...)
	g.scheduler.Register(ecs.StepSystem{})
	g.scheduler.Register(ecs.SystemFunc(g.applyGravity))
	g.scheduler.Register(&ecs.CollisionSystem{Workers: cfg.Workers})
	g.scheduler.Register(ecs.SystemFunc(g.crash))

	g.player = g.storage.Spawn(ecs.Components{}.
		WithPosition(1, 1).
		WithVelocity(cfg.ForwardSpeed, cfg.FlapSpeed).
		WithSize(1, 1).
		WithRender('#', playerColor).
		WithCameraFollow())
	return g
}

// Create returns a game with randomly generated walls.
func Create(cfg Config, seed int64, opts ...ecs.SchedulerOption) *Game {
	g := New(cfg, seed, opts...)
	g.AddWalls(g.generateWalls())
	return g
}

// AddWalls spawns a wall column with its bottom cell at each position.
func (g *Game) AddWalls(positions []ecs.Position) {
	for _, p := range positions {
		id := g.storage.Spawn(ecs.Components{}.
			WithPosition(p.X, p.Y).
			WithVelocity(0, 0).
			WithSize(1, float64(g.cfg.WallHeight)).
			WithRender('\\', wallColor))
		g.walls[id] = struct{}{}
	}
}

func (g *Game) generateWalls() []ecs.Position {
	span := max(g.cfg.Height-g.cfg.WallHeight, 1)

	var walls []ecs.Position
	sinceLast := 0
	for column := range g.cfg.Width {
		if sinceLast > g.cfg.MaxGap {
			walls = append(walls, ecs.Position{X: float64(column), Y: float64(g.rng.Intn(span))})
			sinceLast = 0
		}
		if g.rng.Intn(10) == 0 {
			walls = append(walls, ecs.Position{X: float64(column), Y: float64(g.rng.Intn(span))})
			sinceLast = 0
		}
		sinceLast++
	}
	return walls
}

// Storage returns the store holding the player and the walls.
func (g *Game) Storage() *ecs.Storage { return g.storage }

func (g *Game) State() game.State { return g.state }

// Player returns the tracked player entity.
func (g *Game) Player() *ecs.Entity {
	e, _ := g.storage.Get(g.player)
	return e
}

// Start puts the player back at the left edge and resets the score.
func (g *Game) Start() {
	g.state = game.State{Phase: game.PhasePlaying}
	player := g.Player()
	player.Components.Position = &ecs.Position{X: 1, Y: 1}
	player.Components.Velocity = &ecs.Velocity{X: g.cfg.ForwardSpeed, Y: g.cfg.FlapSpeed}
}

// Next flaps on Up and runs one physics frame of length dt.
func (g *Game) Next(dt time.Duration, key *game.Key) {
	if g.state.Phase != game.PhasePlaying {
		return
	}

	if key != nil && *key == game.KeyUp {
		g.Player().Components.Velocity.Y = g.cfg.FlapSpeed
	}
	g.scheduler.Once(dt)

	pos, vel := g.Player().Components.Position, g.Player().Components.Velocity
	if vel.Y < -g.cfg.LoseSpeed {
		g.state.Phase = game.PhaseLost
	}
	g.state.Score = max(g.state.Score, int(math.Floor(pos.X)))
}

func (g *Game) applyGravity(frame *ecs.UpdateFrame) {
	g.Player().Components.Velocity.Y -= g.cfg.Gravity * frame.DeltaTime.Seconds()
}

// crash ends the game when the player's path meets a wall.
func (g *Game) crash(frame *ecs.UpdateFrame) {
	for _, pair := range frame.Collisions {
		other, ok := pair.Other(g.player)
		if !ok {
			continue
		}
		if _, isWall := g.walls[other]; isWall {
			g.state.Phase = game.PhaseLost
			return
		}
	}
}

func (g *Game) DebugString() string {
	player := g.Player()
	pos, vel := player.Components.Position, player.Components.Velocity
	return fmt.Sprintf("v = %5.1f, x = %4.0f, y = %4.1f, score = %d", vel.Y, pos.X, pos.Y, g.state.Score)
}
