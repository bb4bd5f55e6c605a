package games_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
	_ "github.com/rocketscienceinc/arcade-backend/internal/games"
)

func TestCatalog(t *testing.T) {
	t.Run("Lists every game in home screen order", func(t *testing.T) {
		// When: the catalog is read
		catalog := arcade.Catalog()

		// Then: all six games are there in order
		kinds := make([]arcade.Kind, 0, len(catalog))
		for _, entry := range catalog {
			kinds = append(kinds, entry.Kind)
		}
		assert.Equal(t, []arcade.Kind{
			arcade.KindSnake,
			arcade.KindTetris,
			arcade.KindMinesweeper,
			arcade.KindTicTacToe,
			arcade.KindCheckers,
			arcade.KindFlappyBird,
		}, kinds)
	})

	t.Run("Every game survives a save and restore", func(t *testing.T) {
		for _, entry := range arcade.Catalog() {
			// Given: a fresh game of each kind
			game, err := arcade.New(entry.Kind, arcade.Options{Seed: 42})
			require.NoError(t, err, entry.Kind)

			// When: its state is restored into a new instance
			state, err := game.MarshalJSON()
			require.NoError(t, err, entry.Kind)
			restored, err := arcade.Restore(entry.Kind, arcade.Options{Seed: 1}, state)
			require.NoError(t, err, entry.Kind)

			// Then: the player sees the same game
			assert.Equal(t, game.Snapshot(), restored.Snapshot(), entry.Kind)
			assert.Equal(t, entry.Realtime, game.TickInterval() > 0, entry.Kind)
		}
	})
}
