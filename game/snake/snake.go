// Package snake is the classic snake game on a walled grid. An optional
// autopilot steers the head to the food with A*.
package snake

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/plus3/hewn/ecs"
	"github.com/plus3/hewn/game"
	"github.com/plus3/hewn/pathfinding"
)

var (
	headColor = ecs.Color{R: 0.2, G: 1, B: 0.2}
	bodyColor = ecs.Color{R: 0.1, G: 0.6, B: 0.1}
	wallColor = ecs.Color{R: 0.6, G: 0.6, B: 0.6}
	foodColor = ecs.Color{R: 1, G: 0.2, B: 0.2}
)

// Config sizes the board and sets the pace of the snake.
type Config struct {
	Width  int
	Height int

	// MoveInterval is the game time the head needs to cross one cell.
	MoveInterval time.Duration
	InitialBody  int
	Autopilot    bool
}

// DefaultConfig returns a 30x15 board moving one cell every 100ms.
func DefaultConfig() Config {
	return Config{
		Width:        30,
		Height:       15,
		MoveInterval: 100 * time.Millisecond,
		InitialBody:  2,
	}
}

type direction struct {
	x, y int
}

var (
	up    = direction{0, 1}
	down  = direction{0, -1}
	left  = direction{-1, 0}
	right = direction{1, 0}
)

func (d direction) opposite(o direction) bool {
	return d.x == -o.x && d.y == -o.y
}

// Game is a snake game backed by an ecs store.
type Game struct {
	cfg     Config
	storage *ecs.Storage
	cmds    ecs.Commands
	rng     *rand.Rand

	head  ecs.EntityId
	food  ecs.EntityId
	body  []ecs.EntityId // nearest the head first
	walls map[ecs.EntityId]struct{}

	dir     direction
	next    direction
	elapsed time.Duration
	state   game.State
}

// New builds the walls, the snake and the first food item. A
// non-positive MoveInterval falls back to the default.
func New(cfg Config, seed int64) *Game {
	if cfg.MoveInterval <= 0 {
		cfg.MoveInterval = DefaultConfig().MoveInterval
	}
	g := &Game{
		cfg:     cfg,
		storage: ecs.NewStorage(),
		rng:     rand.New(rand.NewSource(seed)),
		walls:   make(map[ecs.EntityId]struct{}),
	}

	for x := range cfg.Width {
		g.AddWalls([]ecs.Position{{X: float64(x), Y: 0}, {X: float64(x), Y: float64(cfg.Height - 1)}})
	}
	for y := 1; y < cfg.Height-1; y++ {
		g.AddWalls([]ecs.Position{{X: 0, Y: float64(y)}, {X: float64(cfg.Width - 1), Y: float64(y)}})
	}

	g.head = g.storage.Spawn(ecs.Components{}.
		WithPosition(0, 0).
		WithVelocity(0, 0).
		WithSize(1, 1).
		WithRender('O', headColor).
		WithCameraFollow())
	g.food = g.storage.Spawn(ecs.Components{}.
		WithPosition(0, 0).
		WithSize(1, 1).
		WithRender('*', foodColor))
	g.Start()
	return g
}

// AddWalls spawns a one-cell wall at each position.
func (g *Game) AddWalls(positions []ecs.Position) {
	for _, p := range positions {
		id := g.storage.Spawn(ecs.Components{}.
			WithPosition(p.X, p.Y).
			WithSize(1, 1).
			WithRender('#', wallColor))
		g.walls[id] = struct{}{}
	}
}

// Storage returns the store holding walls, food and the snake.
func (g *Game) Storage() *ecs.Storage { return g.storage }

func (g *Game) State() game.State { return g.state }

// Head returns the snake's head entity.
func (g *Game) Head() *ecs.Entity {
	e, _ := g.storage.Get(g.head)
	return e
}

// Food returns the food entity.
func (g *Game) Food() *ecs.Entity {
	e, _ := g.storage.Get(g.food)
	return e
}

// Body returns the segment ids, nearest the head first.
func (g *Game) Body() []ecs.EntityId { return g.body }

// SetAutopilot toggles A* steering.
func (g *Game) SetAutopilot(on bool) { g.cfg.Autopilot = on }

// Start resets the snake to the middle of the board heading right.
func (g *Game) Start() {
	for _, id := range g.body {
		g.cmds.Delete(id)
	}
	g.body = g.body[:0]

	cx, cy := float64(g.cfg.Width/2), float64(g.cfg.Height/2)
	g.cmds.Update(g.head, func(c *ecs.Components) {
		c.Position = &ecs.Position{X: cx, Y: cy}
	})
	for i := range g.cfg.InitialBody {
		g.cmds.Spawn(g.segment(cx-float64(i+1), cy))
	}
	g.body = append(g.body, g.cmds.Flush(g.storage)...)
	g.storage.Compact()

	g.dir, g.next = right, right
	g.elapsed = 0
	g.state = game.State{Phase: game.PhasePlaying}
	g.placeFood()
}

func (g *Game) segment(x, y float64) ecs.Components {
	return ecs.Components{}.
		WithPosition(x, y).
		WithSize(1, 1).
		WithRender('o', bodyColor)
}

// Next applies key and advances the snake one cell per elapsed MoveInterval.
func (g *Game) Next(dt time.Duration, key *game.Key) {
	if g.state.Phase != game.PhasePlaying {
		return
	}
	g.steer(key)

	g.elapsed += dt
	for g.elapsed >= g.cfg.MoveInterval && g.state.Phase == game.PhasePlaying {
		g.elapsed -= g.cfg.MoveInterval
		if g.cfg.Autopilot {
			g.autopilot()
		}
		g.advance()
	}
}

func (g *Game) steer(key *game.Key) {
	if key == nil {
		return
	}
	var d direction
	switch *key {
	case game.KeyUp:
		d = up
	case game.KeyDown:
		d = down
	case game.KeyLeft:
		d = left
	case game.KeyRight:
		d = right
	default:
		return
	}
	if !d.opposite(g.dir) {
		g.next = d
	}
}

// advance moves the head one cell and resolves what it ran into.
func (g *Game) advance() {
	g.dir = g.next

	head := g.Head()
	from := *head.Components.Position
	tail := from

	if n := len(g.body); n > 0 {
		last, _ := g.storage.Get(g.body[n-1])
		tail = *last.Components.Position
		*last.Components.Position = from
		g.body = append([]ecs.EntityId{g.body[n-1]}, g.body[:n-1]...)
	}

	speed := 1 / g.cfg.MoveInterval.Seconds()
	*head.Components.Velocity = ecs.Velocity{X: float64(g.dir.x) * speed, Y: float64(g.dir.y) * speed}
	g.storage.Step(g.cfg.MoveInterval)
	head.Components.Position.X = math.Round(head.Components.Position.X)
	head.Components.Position.Y = math.Round(head.Components.Position.Y)

	ate := false
	for _, pair := range g.storage.CollisionPass(0) {
		other, ok := pair.Other(g.head)
		if !ok {
			continue
		}
		if other == g.food {
			ate = true
			continue
		}
		g.state.Phase = game.PhaseLost
		return
	}

	if ate {
		g.cmds.Spawn(g.segment(tail.X, tail.Y))
		g.body = append(g.body, g.cmds.Flush(g.storage)...)
		g.state.Score++
		g.placeFood()
	}
}

// occupied returns every cell the snake cannot enter.
func (g *Game) occupied() pathfinding.NodeSet {
	blocked := pathfinding.NewNodeSet()
	for id := range g.walls {
		if e, ok := g.storage.Get(id); ok {
			blocked.Add(cell(e))
		}
	}
	for _, id := range g.body {
		if e, ok := g.storage.Get(id); ok {
			blocked.Add(cell(e))
		}
	}
	return blocked
}

func cell(e *ecs.Entity) pathfinding.GridNode {
	return pathfinding.WorldToGrid(e.Components.Position.X, e.Components.Position.Y, pathfinding.Point{}, 1)
}

// placeFood moves the food to a random free cell. A board with no free
// cell left ends the game.
func (g *Game) placeFood() {
	blocked := g.occupied()
	blocked.Add(cell(g.Head()))

	var free []pathfinding.GridNode
	for x := range g.cfg.Width {
		for y := range g.cfg.Height {
			if n := (pathfinding.GridNode{X: x, Y: y}); !blocked.Has(n) {
				free = append(free, n)
			}
		}
	}
	if len(free) == 0 {
		g.state.Phase = game.PhaseLost
		return
	}

	n := free[g.rng.Intn(len(free))]
	*g.Food().Components.Position = ecs.Position{X: float64(n.X), Y: float64(n.Y)}
}

// autopilot points the head along the shortest path to the food. With no
// path it keeps going if it can, or turns to any free neighbour.
func (g *Game) autopilot() {
	blocked := g.occupied()
	start, end := cell(g.Head()), cell(g.Food())

	if path, ok := pathfinding.AStar(start, end, blocked, pathfinding.Bounds{Width: g.cfg.Width, Height: g.cfg.Height}); ok && len(path) > 1 {
		step := path[1]
		dx, dy := step.X-start.X, step.Y-start.Y
		// A diagonal step never cuts a corner, so the horizontal cell is free.
		if dx != 0 {
			g.next = direction{dx, 0}
		} else {
			g.next = direction{0, dy}
		}
		return
	}

	for _, d := range []direction{g.dir, up, right, down, left} {
		if d.opposite(g.dir) {
			continue
		}
		if !blocked.Has(pathfinding.GridNode{X: start.X + d.x, Y: start.Y + d.y}) {
			g.next = d
			return
		}
	}
}

func (g *Game) DebugString() string {
	pos := g.Head().Components.Position
	return fmt.Sprintf("x = %3.0f, y = %3.0f, length = %d, score = %d", pos.X, pos.Y, len(g.body)+1, g.state.Score)
}
