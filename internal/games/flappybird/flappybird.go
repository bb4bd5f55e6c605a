// Package flappybird implements a side scrolling game where a bird flaps
// through gaps between pipes.
package flappybird

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

const (
	Width  = 800
	Height = 600

	FramesPerSecond = 60

	birdX      = 100
	birdY      = 250
	birdRadius = 20

	gravity = 0.7

	pipeWidth     = 60
	pipeMinTop    = 100
	pipeMaxTop    = 400
	pipeOffscreen = -50

	ActionFlap = "flap"
)

type Settings struct {
	JumpForce     float64
	PipeSpeed     float64
	PipeGap       float64
	PipeSpawnRate int
}

var difficulties = map[arcade.Difficulty]Settings{
	arcade.Easy:   {JumpForce: -8, PipeSpeed: 2, PipeGap: 180, PipeSpawnRate: 120},
	arcade.Medium: {JumpForce: -9, PipeSpeed: 3, PipeGap: 160, PipeSpawnRate: 100},
	arcade.Hard:   {JumpForce: -10, PipeSpeed: 4, PipeGap: 140, PipeSpawnRate: 80},
}

func init() {
	arcade.Register(arcade.Entry{
		Kind:         arcade.KindFlappyBird,
		Title:        "Flappy Bird",
		Description:  "Flap through the gaps between the pipes.",
		Order:        6,
		Players:      1,
		Realtime:     true,
		Difficulties: []arcade.Difficulty{arcade.Easy, arcade.Medium, arcade.Hard},
		New: func(opts arcade.Options) (arcade.Game, error) {
			return New(opts.Difficulty, opts.Seed), nil
		},
	})
}

type Bird struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Velocity float64 `json:"velocity"`
	Radius   float64 `json:"radius"`
}

type Pipe struct {
	X         float64 `json:"x"`
	TopHeight float64 `json:"topHeight"`
	Gap       float64 `json:"gap"`
	Width     float64 `json:"width"`
	Scored    bool    `json:"scored"`
}

// Hits - whether the bird overlaps the solid parts of the pipe.
func (that Pipe) Hits(bird Bird) bool {
	return bird.X+bird.Radius > that.X &&
		bird.X-bird.Radius < that.X+that.Width &&
		(bird.Y-bird.Radius < that.TopHeight || bird.Y+bird.Radius > that.TopHeight+that.Gap)
}

type Game struct {
	rng        *rand.Rand
	difficulty arcade.Difficulty
	settings   Settings

	bird      Bird
	pipes     []Pipe
	score     int
	highScore int
	frame     int
	status    arcade.Status
}

// New - the game waits for the first flap.
func New(difficulty arcade.Difficulty, seed int64) *Game {
	settings, ok := difficulties[difficulty]
	if !ok {
		difficulty, settings = arcade.Medium, difficulties[arcade.Medium]
	}

	game := &Game{
		rng:        rand.New(rand.NewSource(seed)), //nolint: gosec // game randomness
		difficulty: difficulty,
		settings:   settings,
	}
	game.reset()
	game.status = arcade.StatusWaiting

	return game
}

func (that *Game) reset() {
	that.bird = Bird{X: birdX, Y: birdY, Radius: birdRadius}
	that.pipes = nil
	that.score = 0
	that.frame = 0
	that.status = arcade.StatusOngoing
}

func (that *Game) Kind() arcade.Kind {
	return arcade.KindFlappyBird
}

func (that *Game) Status() arcade.Status {
	return that.status
}

func (that *Game) Score() int {
	return that.score
}

func (that *Game) HighScore() int {
	return that.highScore
}

func (that *Game) TickInterval() time.Duration {
	return time.Second / FramesPerSecond
}

// Apply - a flap starts the game, lifts the bird and restarts after a crash.
func (that *Game) Apply(in arcade.Input) error {
	if in.Action != ActionFlap {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownAction, in.Action)
	}

	switch that.status {
	case arcade.StatusWaiting, arcade.StatusFinished:
		that.reset()
	default:
		that.bird.Velocity = that.settings.JumpForce
	}

	return nil
}

func (that *Game) Tick() bool {
	if that.status != arcade.StatusOngoing {
		return false
	}

	that.bird.Y += that.bird.Velocity
	that.bird.Velocity += gravity

	pipes := that.pipes[:0]
	for _, pipe := range that.pipes {
		if !pipe.Scored && that.bird.X > pipe.X+pipe.Width {
			pipe.Scored = true
			that.score++
		}
		pipe.X -= that.settings.PipeSpeed

		if pipe.X+pipe.Width > pipeOffscreen {
			pipes = append(pipes, pipe)
		}
	}
	that.pipes = pipes

	if that.frame%that.settings.PipeSpawnRate == 0 {
		that.pipes = append(that.pipes, Pipe{
			X:         Width,
			TopHeight: pipeMinTop + that.rng.Float64()*(pipeMaxTop-pipeMinTop),
			Gap:       that.settings.PipeGap,
			Width:     pipeWidth,
		})
	}

	if that.crashed() {
		that.status = arcade.StatusFinished
		that.highScore = max(that.highScore, that.score)
	}

	that.frame++

	return true
}

func (that *Game) crashed() bool {
	if that.bird.Y+that.bird.Radius > Height || that.bird.Y-that.bird.Radius < 0 {
		return true
	}

	for _, pipe := range that.pipes {
		if pipe.Hits(that.bird) {
			return true
		}
	}

	return false
}
