package snake

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

func TestGame_Tick(t *testing.T) {
	t.Run("Moves the head in the current direction", func(t *testing.T) {
		// Given: a new game heading right from (10,10)
		game := New(1)

		// When: one tick passes
		changed := game.Tick()

		// Then: the head moved one column and the length is unchanged
		assert.True(t, changed)
		assert.Equal(t, arcade.Position{Row: 10, Col: 11}, game.Head())
		assert.Equal(t, 1, game.Len())
	})

	t.Run("Eating food grows the snake and scores", func(t *testing.T) {
		// Given: food right in front of the head
		game := New(1)
		game.food = arcade.Position{Row: 10, Col: 11}

		// When: the snake moves onto it
		game.Tick()

		// Then: it grows, scores and new food appears off the body
		assert.Equal(t, 2, game.Len())
		assert.Equal(t, 1, game.Score())
		assert.False(t, game.occupied(game.food))
	})

	t.Run("Hitting the wall ends the game", func(t *testing.T) {
		// Given: a snake at the right edge
		game := New(1)
		game.body.Clear()
		game.body.PushFront(arcade.Position{Row: 3, Col: Size - 1})

		// When: it moves right
		game.Tick()

		// Then: the game is over and further ticks change nothing
		assert.Equal(t, arcade.StatusFinished, game.Status())
		assert.False(t, game.Tick())
	})

	t.Run("Running into its own body ends the game", func(t *testing.T) {
		// Given: a snake curled so that moving up hits a segment
		game := New(1)
		game.body.Clear()
		for _, pos := range []arcade.Position{{Row: 5, Col: 5}, {Row: 5, Col: 4}, {Row: 4, Col: 4}, {Row: 4, Col: 5}, {Row: 4, Col: 6}} {
			game.body.PushBack(pos)
		}
		game.direction = Up
		game.moved = Right

		// When: it moves
		game.Tick()

		// Then: it collided
		assert.Equal(t, arcade.StatusFinished, game.Status())
	})
}

func TestGame_Food(t *testing.T) {
	t.Run("Filling the board wins the game", func(t *testing.T) {
		// Given: a snake covering every cell but the corner, its head next to the food there
		game := New(1)
		game.body.Clear()
		for row := range Size {
			for col := range Size {
				if row == 0 && col <= 1 {
					continue
				}
				game.body.PushBack(arcade.Position{Row: row, Col: col})
			}
		}
		game.body.PushFront(arcade.Position{Row: 0, Col: 1})
		game.direction, game.moved = Left, Left
		game.food = arcade.Position{Row: 0, Col: 0}

		// When: the snake eats the last free cell
		assert.True(t, game.Tick())

		// Then: there is nowhere left for food and the game is won
		assert.Equal(t, Size*Size, game.Len())
		assert.Equal(t, 1, game.Score())
		assert.Equal(t, arcade.StatusFinished, game.Status())
		assert.True(t, game.won)
	})

	t.Run("Food only appears on free cells", func(t *testing.T) {
		// Given: a snake covering everything but three cells
		game := New(7)
		free := map[arcade.Position]bool{
			{Row: 3, Col: 4}:   true,
			{Row: 12, Col: 0}:  true,
			{Row: 19, Col: 19}: true,
		}
		game.body.Clear()
		for row := range Size {
			for col := range Size {
				if pos := (arcade.Position{Row: row, Col: col}); !free[pos] {
					game.body.PushBack(pos)
				}
			}
		}

		for range 50 {
			// When: food is placed again
			require.True(t, game.spawnFood())

			// Then: it is always one of the free cells
			assert.True(t, free[game.food], "food on %v", game.food)
		}
	})
}

func TestGame_Turn(t *testing.T) {
	t.Run("Reversal of the last step is ignored", func(t *testing.T) {
		// Given: a snake that last moved right
		game := New(1)

		// When: the player asks to go left
		err := game.Apply(arcade.Input{Action: "turn", Direction: "left"})

		// Then: the heading stays right
		require.NoError(t, err)
		assert.Equal(t, Right, game.direction)
	})

	t.Run("Two quick turns cannot reverse into the neck", func(t *testing.T) {
		// Given: a snake moving right
		game := New(1)

		// When: up then left are pressed within one tick
		require.NoError(t, game.Turn(Up))
		require.NoError(t, game.Turn(Left))

		// Then: left is dropped since it reverses the last real step
		assert.Equal(t, Up, game.direction)
	})

	t.Run("Unknown direction is rejected", func(t *testing.T) {
		// Given: a new game
		game := New(1)

		// When: turning somewhere odd
		err := game.Turn("sideways")

		// Then: an invalid move error is returned
		assert.ErrorIs(t, err, apperror.ErrInvalidMove)
	})

	t.Run("Unknown action is rejected", func(t *testing.T) {
		// Given: a new game
		game := New(1)

		// When: applying an action snake does not know
		err := game.Apply(arcade.Input{Action: "jump"})

		// Then: an unknown action error is returned
		assert.ErrorIs(t, err, apperror.ErrUnknownAction)
	})
}

func TestGame_JSON(t *testing.T) {
	// Given: a game that has moved and grown
	game := New(7)
	game.food = arcade.Position{Row: 10, Col: 11}
	game.Tick()
	require.NoError(t, game.Turn(Down))
	game.Tick()

	// When: the state is saved and restored into a fresh game
	data, err := json.Marshal(game)
	require.NoError(t, err)

	restored := New(0)
	require.NoError(t, json.Unmarshal(data, restored))

	// Then: the restored game continues from the same place
	assert.Equal(t, game.Snapshot(), restored.Snapshot())
	assert.Equal(t, game.moved, restored.moved)
}
