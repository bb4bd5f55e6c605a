package checkers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

func pos(row, col int) arcade.Position {
	return arcade.Position{Row: row, Col: col}
}

func emptyBoard() Board {
	var board Board
	for row := range Size {
		for col := range Size {
			board[row][col] = Empty
		}
	}
	return board
}

// pvpGame returns a hot seat game on a custom board with black to move.
func pvpGame(pieces map[arcade.Position]Piece) *Game {
	game := New(arcade.ModePvP, arcade.Medium, Black, 1)
	game.board = emptyBoard()
	for at, piece := range pieces {
		game.board[at.Row][at.Col] = piece
	}
	return game
}

func TestNewBoard(t *testing.T) {
	t.Run("Pieces start on the dark squares", func(t *testing.T) {
		// When: a board is set up
		board := NewBoard()

		// Then: red holds the top three rows and black the bottom three
		rows := board.rows()
		assert.Equal(t, ".r.r.r.r", rows[0])
		assert.Equal(t, "r.r.r.r.", rows[1])
		assert.Equal(t, "........", rows[3])
		assert.Equal(t, "b.b.b.b.", rows[5])
		assert.Len(t, board.LegalMoves(Black, nil), 7)
	})
}

func TestGame_Move(t *testing.T) {
	t.Run("Captures are mandatory", func(t *testing.T) {
		// Given: black can capture with one piece and step with another
		game := pvpGame(map[arcade.Position]Piece{
			pos(5, 2): BlackMan,
			pos(4, 3): RedMan,
			pos(5, 6): BlackMan,
			pos(0, 7): RedMan,
		})

		// When: black tries a simple move
		err := game.Move(Move{From: pos(5, 6), To: pos(4, 5)})

		// Then: it is refused and only the capture is offered
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, []Move{{From: pos(5, 2), To: pos(3, 4)}}, game.board.LegalMoves(Black, nil))
	})

	t.Run("Multi-jump keeps the turn with the jumping piece", func(t *testing.T) {
		// Given: black can jump twice in a row
		game := pvpGame(map[arcade.Position]Piece{
			pos(6, 1): BlackMan,
			pos(5, 2): RedMan,
			pos(3, 4): RedMan,
			pos(0, 7): RedMan,
		})

		// When: the first jump is made
		require.NoError(t, game.Move(Move{From: pos(6, 1), To: pos(4, 3)}))

		// Then: black must continue with the same piece
		assert.Equal(t, Black, game.Turn())
		assert.Equal(t, &arcade.Position{Row: 4, Col: 3}, game.forced)
		assert.ErrorIs(t, game.Move(Move{From: pos(0, 7), To: pos(1, 6)}), apperror.ErrInvalidMove)

		// When: the second jump is made
		require.NoError(t, game.Move(Move{From: pos(4, 3), To: pos(2, 5)}))

		// Then: both red pieces are gone and red is to move
		assert.Equal(t, Red, game.Turn())
		assert.Nil(t, game.forced)
		assert.Equal(t, Empty, game.board[5][2])
		assert.Equal(t, Empty, game.board[3][4])
	})

	t.Run("Crowning ends the jump sequence", func(t *testing.T) {
		// Given: a black man jumping onto the far row next to another red piece
		game := pvpGame(map[arcade.Position]Piece{
			pos(2, 1): BlackMan,
			pos(1, 2): RedMan,
			pos(1, 4): RedMan,
		})

		// When: it jumps and is crowned
		require.NoError(t, game.Move(Move{From: pos(2, 1), To: pos(0, 3)}))

		// Then: the new king stops and red moves
		assert.Equal(t, BlackKing, game.board[0][3])
		assert.Nil(t, game.forced)
		assert.Equal(t, Red, game.Turn())
	})

	t.Run("Side without moves loses", func(t *testing.T) {
		// Given: the last red piece can be captured
		game := pvpGame(map[arcade.Position]Piece{
			pos(3, 2): BlackMan,
			pos(2, 3): RedMan,
		})

		// When: black captures it
		require.NoError(t, game.Move(Move{From: pos(3, 2), To: pos(1, 4)}))

		// Then: black wins
		assert.Equal(t, arcade.StatusFinished, game.Status())
		assert.Equal(t, Black, game.Winner())
		assert.ErrorIs(t, game.Move(Move{From: pos(1, 4), To: pos(0, 5)}), apperror.ErrGameFinished)
	})

	t.Run("Kings move backwards", func(t *testing.T) {
		// Given: a black king
		game := pvpGame(map[arcade.Position]Piece{
			pos(3, 2): BlackKing,
			pos(0, 7): RedMan,
		})

		// When: it steps back toward its own side
		err := game.Move(Move{From: pos(3, 2), To: pos(4, 3)})

		// Then: the move is legal
		require.NoError(t, err)
		assert.Equal(t, BlackKing, game.board[4][3])
	})
}

func TestGame_Apply(t *testing.T) {
	t.Run("Computer opens when the player takes red", func(t *testing.T) {
		// When: a game against the computer starts with the player on red
		game, err := arcade.New(arcade.KindCheckers, arcade.Options{Difficulty: arcade.Hard, Side: string(Red)})
		require.NoError(t, err)

		// Then: black has already moved one piece
		snapshot, _ := game.Snapshot().(Snapshot)
		assert.Equal(t, Red, snapshot.Turn)
		assert.Equal(t, 1, strings.Count(snapshot.Board[4], "b"))
	})

	t.Run("Computer replies after the player", func(t *testing.T) {
		// Given: a medium game with the player on black
		game := New(arcade.ModeAI, arcade.Medium, Black, 1)

		// When: the player moves
		require.NoError(t, game.Apply(arcade.Input{Action: ActionMove, From: &arcade.Position{Row: 5, Col: 0}, To: &arcade.Position{Row: 4, Col: 1}}))

		// Then: red answered and it is black's turn again
		assert.Equal(t, Black, game.Turn())
		assert.Equal(t, 1, strings.Count(game.board.rows()[3], "r"))
	})

	t.Run("Rejects incomplete input", func(t *testing.T) {
		// Given: a new game
		game := New(arcade.ModePvP, arcade.Medium, Black, 1)

		// When: a move has no target or the action is unknown
		missing := game.Apply(arcade.Input{Action: ActionMove, From: &arcade.Position{Row: 5, Col: 0}})
		unknown := game.Apply(arcade.Input{Action: "resign"})

		// Then: both are refused
		assert.ErrorIs(t, missing, apperror.ErrInvalidMove)
		assert.ErrorIs(t, unknown, apperror.ErrUnknownAction)
	})

	t.Run("Rejects an unknown side", func(t *testing.T) {
		// When: the side option is neither red nor black
		_, err := arcade.New(arcade.KindCheckers, arcade.Options{Side: "white"})

		// Then: creation fails
		assert.ErrorIs(t, err, apperror.ErrInvalidOptions)
	})
}

func TestBestTurn(t *testing.T) {
	t.Run("Prefers capturing a king", func(t *testing.T) {
		// Given: black can take either a red man or a red king
		board := emptyBoard()
		board[5][2] = BlackMan
		board[4][1] = RedMan
		board[4][3] = RedKing

		// When: the computer looks one turn ahead
		turn, ok := BestTurn(board, Black, 1)

		// Then: it takes the king
		require.True(t, ok)
		assert.Equal(t, Turn{{From: pos(5, 2), To: pos(3, 4)}}, turn)
	})

	t.Run("Plays the whole jump sequence", func(t *testing.T) {
		// Given: a double jump is available
		board := emptyBoard()
		board[6][1] = BlackMan
		board[5][2] = RedMan
		board[3][4] = RedMan
		board[0][7] = RedMan

		// When: the best turn is searched
		turn, ok := BestTurn(board, Black, 3)

		// Then: both jumps are part of it
		require.True(t, ok)
		assert.Equal(t, Turn{{From: pos(6, 1), To: pos(4, 3)}, {From: pos(4, 3), To: pos(2, 5)}}, turn)
	})
}

func TestGame_JSON(t *testing.T) {
	t.Run("Restores a game in the middle of a jump", func(t *testing.T) {
		// Given: a game waiting for the second jump
		game := pvpGame(map[arcade.Position]Piece{
			pos(6, 1): BlackMan,
			pos(5, 2): RedMan,
			pos(3, 4): RedMan,
			pos(0, 7): RedMan,
		})
		require.NoError(t, game.Move(Move{From: pos(6, 1), To: pos(4, 3)}))

		// When: it is saved and restored
		data, err := json.Marshal(game)
		require.NoError(t, err)
		restored := New(arcade.ModePvP, arcade.Easy, Black, 2)
		require.NoError(t, json.Unmarshal(data, restored))

		// Then: the restored game offers the same continuation
		assert.Equal(t, game.Snapshot(), restored.Snapshot())
		assert.Equal(t, []Move{{From: pos(4, 3), To: pos(2, 5)}}, restored.Snapshot().(Snapshot).Moves)
	})
}
