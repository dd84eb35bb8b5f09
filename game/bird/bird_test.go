package bird_test

import (
	"slices"
	"testing"
	"time"

	"github.com/plus3/hewn/ecs"
	"github.com/plus3/hewn/game"
	"github.com/plus3/hewn/game/bird"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One cell per tick keeps the arithmetic exact.
const tick = time.Second

func tickConfig() bird.Config {
	cfg := bird.DefaultConfig()
	cfg.ForwardSpeed = 1
	cfg.FlapSpeed = 5
	cfg.Gravity = 1
	cfg.LoseSpeed = 10
	return cfg
}

func key(k game.Key) *game.Key { return &k }

func started(walls ...ecs.Position) *bird.Game {
	g := bird.New(tickConfig(), 1)
	g.AddWalls(walls)
	g.Start()
	return g
}

func TestNextDoesNothingBeforeStart(t *testing.T) {
	g := bird.New(tickConfig(), 1)
	g.Next(tick, nil)

	assert.Equal(t, game.PhaseMenu, g.State().Phase)
	assert.Equal(t, ecs.Position{X: 1, Y: 1}, *g.Player().Components.Position)
}

func TestGlideAndFlap(t *testing.T) {
	g := started()

	for range 3 {
		g.Next(tick, nil)
	}
	player := g.Player()
	assert.Equal(t, ecs.Position{X: 4, Y: 13}, *player.Components.Position)
	assert.Equal(t, 2.0, player.Components.Velocity.Y)

	g.Next(tick, key(game.KeyUp))
	assert.Equal(t, ecs.Position{X: 5, Y: 18}, *player.Components.Position)
	assert.Equal(t, 4.0, player.Components.Velocity.Y, "flap speed minus one tick of gravity")

	g.Next(tick, key(game.KeyLeft))
	assert.Equal(t, ecs.Position{X: 6, Y: 22}, *player.Components.Position, "other keys are ignored")
}

func TestCrashIntoWall(t *testing.T) {
	g := started(ecs.Position{X: 3, Y: 8})

	g.Next(tick, nil)

	assert.Equal(t, game.PhaseLost, g.State().Phase)
}

func TestFlyOverWall(t *testing.T) {
	g := started(ecs.Position{X: 3, Y: 20})

	for range 3 {
		g.Next(tick, nil)
	}

	assert.Equal(t, game.PhasePlaying, g.State().Phase)
}

func TestLoseWhenFallingTooFast(t *testing.T) {
	g := started()

	for range 30 {
		g.Next(tick, nil)
	}

	assert.Equal(t, game.PhaseLost, g.State().Phase)
	assert.Equal(t, 17, g.State().Score, "score is the furthest column reached")
}

func wallPositions(g *bird.Game) []ecs.Position {
	var walls []ecs.Position
	for e := range g.Storage().Query(ecs.RenderType) {
		if e.Components.Render.Glyph == '\\' {
			walls = append(walls, *e.Components.Position)
		}
	}
	slices.SortFunc(walls, func(a, b ecs.Position) int {
		if a.X < b.X {
			return -1
		}
		if a.X > b.X {
			return 1
		}
		return 0
	})
	return walls
}

func TestCreateGeneratesPassableWalls(t *testing.T) {
	cfg := bird.DefaultConfig()
	g := bird.Create(cfg, 42)

	walls := wallPositions(g)
	require.NotEmpty(t, walls)
	assert.LessOrEqual(t, walls[0].X, float64(cfg.MaxGap+1))
	for i, w := range walls {
		assert.GreaterOrEqual(t, w.Y, 0.0)
		assert.LessOrEqual(t, w.Y+float64(cfg.WallHeight), float64(cfg.Height))
		if i > 0 {
			assert.LessOrEqual(t, w.X-walls[i-1].X, float64(cfg.MaxGap+1))
		}
	}
}

func TestCreateIsSeeded(t *testing.T) {
	cfg := bird.DefaultConfig()

	assert.Equal(t, wallPositions(bird.Create(cfg, 7)), wallPositions(bird.Create(cfg, 7)))
}

func TestStartResetsPlayer(t *testing.T) {
	g := started()
	for range 30 {
		g.Next(tick, nil)
	}
	require.Equal(t, game.PhaseLost, g.State().Phase)

	g.Start()

	assert.Equal(t, game.State{Phase: game.PhasePlaying}, g.State())
	assert.Equal(t, ecs.Position{X: 1, Y: 1}, *g.Player().Components.Position)
	assert.Equal(t, ecs.Velocity{X: 1, Y: 5}, *g.Player().Components.Velocity)
}

func TestParallelCollisionWorkers(t *testing.T) {
	parallelCfg := tickConfig()
	parallelCfg.Workers = 4

	serial := bird.Create(tickConfig(), 3)
	parallel := bird.Create(parallelCfg, 3)
	serial.Start()
	parallel.Start()

	for i := range 40 {
		var k *game.Key
		if i%4 == 0 {
			k = key(game.KeyUp)
		}
		serial.Next(tick, k)
		parallel.Next(tick, k)
	}

	assert.Equal(t, serial.State(), parallel.State())
	assert.Equal(t, *serial.Player().Components.Position, *parallel.Player().Components.Position)
}

func TestDebugString(t *testing.T) {
	g := started()

	assert.Equal(t, "v =   5.0, x =    1, y =  1.0, score = 0", g.DebugString())
}
