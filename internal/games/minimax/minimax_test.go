package minimax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subtraction game: take 1..3 stones, whoever takes the last stone wins.
type nim struct{}

type pile struct {
	stones int
	// lastByMax reports who made the previous move
	lastByMax bool
}

func (nim) Moves(state pile, _ bool) []int {
	moves := make([]int, 0, 3)
	for take := 1; take <= 3 && take <= state.stones; take++ {
		moves = append(moves, take)
	}
	return moves
}

func (nim) Play(state pile, take int, maximizing bool) pile {
	return pile{stones: state.stones - take, lastByMax: maximizing}
}

func (nim) Evaluate(state pile, depth int) (int, bool) {
	if state.stones > 0 {
		return 0, false
	}
	if state.lastByMax {
		return 100 - depth, true
	}
	return depth - 100, true
}

type counter struct {
	nim
	evaluated int
}

func (that *counter) Evaluate(state pile, depth int) (int, bool) {
	that.evaluated++
	return that.nim.Evaluate(state, depth)
}

func TestSearch(t *testing.T) {
	t.Run("Finds the winning move", func(t *testing.T) {
		// Given: 5 stones, taking 1 leaves the opponent a losing multiple of 4
		state := pile{stones: 5}

		// When: searching the full tree
		result := Search[pile, int](nim{}, state, 10, true)

		// Then: the maximizer takes one stone and is winning
		require.True(t, result.Found)
		assert.Equal(t, 1, result.Move)
		assert.Positive(t, result.Score)
	})

	t.Run("Prefers the quickest win", func(t *testing.T) {
		// Given: 3 stones, all of them can be taken at once
		state := pile{stones: 3}

		// When: searching
		result := Search[pile, int](nim{}, state, 10, true)

		// Then: it wins immediately
		assert.Equal(t, 3, result.Move)
		assert.Equal(t, 99, result.Score)
	})

	t.Run("Minimizer picks the move that is worst for the maximizer", func(t *testing.T) {
		// Given: 6 stones and the minimizer to move
		state := pile{stones: 6}

		// When: searching for the minimizer
		result := Search[pile, int](nim{}, state, 10, false)

		// Then: it leaves 4 stones behind
		assert.Equal(t, 2, result.Move)
		assert.Negative(t, result.Score)
	})

	t.Run("Depth limit stops the search", func(t *testing.T) {
		// Given: a large pile that cannot be solved in one ply
		state := pile{stones: 20}

		// When: searching a single ply
		result := Search[pile, int](nim{}, state, 1, true)

		// Then: every move scores as non terminal and the first one is kept
		require.True(t, result.Found)
		assert.Equal(t, 1, result.Move)
		assert.Equal(t, 0, result.Score)
	})

	t.Run("Pruning skips part of the tree", func(t *testing.T) {
		// Given: a rules wrapper counting evaluations
		rules := &counter{}

		// When: searching a mid sized pile
		Search[pile, int](rules, pile{stones: 9}, 12, true)

		// Then: fewer nodes are evaluated than the 326 nodes of the full tree
		assert.Less(t, rules.evaluated, 326)
	})

	t.Run("Terminal root returns no move", func(t *testing.T) {
		// Given: an empty pile
		state := pile{stones: 0, lastByMax: true}

		// When: searching
		result := Search[pile, int](nim{}, state, 5, false)

		// Then: nothing to play
		assert.False(t, result.Found)
		assert.Equal(t, 100, result.Score)
	})
}
