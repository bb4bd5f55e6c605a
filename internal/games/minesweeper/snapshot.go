package minesweeper

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

// BoardSnapshot is a human editable board layout, one character per cell:
//
//	#  unrevealed       .  revealed
//	f  flagged          O  mine
//	F  flagged mine     X  revealed mine
//	*  the mine that ended the game
type BoardSnapshot struct {
	Seed  int64  `yaml:"seed"`
	Board string `yaml:"board"`
}

func (that *cell) serialize(losing bool) byte {
	switch {
	case that.mine:
		switch {
		case losing:
			return '*'
		case that.revealed:
			return 'X'
		case that.flagged:
			return 'F'
		default:
			return 'O'
		}
	case that.flagged:
		return 'f'
	case that.revealed:
		return '.'
	default:
		return '#'
	}
}

func (that *cell) deserialize(c rune) bool {
	switch c {
	case '*', 'X':
		that.mine, that.revealed = true, true
	case 'F':
		that.mine, that.flagged = true, true
	case 'O':
		that.mine = true
	case 'f':
		that.flagged = true
	case '.':
		that.revealed = true
	case '#':
	default:
		return false
	}
	return true
}

func (that *Game) serializeBoard() string {
	lines := make([]string, that.rows)
	for row := range that.cells {
		line := make([]byte, that.cols)
		for col := range that.cells[row] {
			line[col] = that.cells[row][col].serialize(that.isLost(row, col))
		}
		lines[row] = string(line)
	}
	return strings.Join(lines, "\n")
}

// Export - returns the board as YAML.
func (that *Game) Export() (string, error) {
	out, err := yaml.Marshal(&BoardSnapshot{Seed: that.seed, Board: that.serializeBoard()})
	if err != nil {
		return "", fmt.Errorf("failed to marshal board snapshot: %w", err)
	}

	return string(out), nil
}

func LoadSnapshot(in []byte) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal(in, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board snapshot: %w", err)
	}
	return &snapshot, nil
}

// Game - builds a game from the layout, fresh hides every cell and drops flags.
func (that *BoardSnapshot) Game(fresh bool) (*Game, error) {
	game, err := parseBoard(that.Board, that.Seed)
	if err != nil {
		return nil, err
	}

	if game.mines == 0 {
		return nil, fmt.Errorf("failed to load board: no mines")
	}

	if fresh {
		for row := range game.cells {
			for col := range game.cells[row] {
				game.cells[row][col].revealed = false
				game.cells[row][col].flagged = false
			}
		}
		game.lost = nil
	}

	game.recount()

	return game, nil
}

// parseBoard reads a serialized layout, a board without mines is left unplaced.
func parseBoard(board string, seed int64) (*Game, error) {
	lines := strings.Split(strings.TrimSpace(board), "\n")
	rows, cols := len(lines), len(strings.TrimSpace(lines[0]))
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("failed to load board: empty layout")
	}
	if rows < minSize || rows > maxSize || cols < minSize || cols > maxSize {
		return nil, fmt.Errorf("failed to load board: %w: board %dx%d", apperror.ErrInvalidOptions, rows, cols)
	}

	game := newGame(rows, cols, 0, seed)
	for row, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) != cols {
			return nil, fmt.Errorf("failed to load board: row %d has %d cells, want %d", row, len(line), cols)
		}

		for col, c := range line {
			if !game.cells[row][col].deserialize(c) {
				return nil, fmt.Errorf("failed to load board: unknown cell %q at %d,%d", c, row, col)
			}
			if c == '*' {
				game.lost = &arcade.Position{Row: row, Col: col}
			}
			if game.cells[row][col].mine {
				game.mines++
			}
		}
	}

	if game.mines >= rows*cols {
		return nil, fmt.Errorf("failed to load board: %w: no safe cell", apperror.ErrInvalidOptions)
	}

	game.placed = game.mines > 0
	game.countNeighbors()

	return game, nil
}

// recount derives counters and status from the cells.
func (that *Game) recount() {
	that.flags, that.revealed = 0, 0
	for row := range that.cells {
		for col := range that.cells[row] {
			current := that.cells[row][col]
			if current.flagged {
				that.flags++
			}
			if current.revealed && !current.mine {
				that.revealed++
			}
		}
	}

	that.won = that.placed && that.revealed == that.rows*that.cols-that.mines
	if that.lost != nil || that.won {
		that.status = arcade.StatusFinished
	} else {
		that.status = arcade.StatusOngoing
	}
}
