// Package games links every game engine into the arcade catalog.
package games

import (
	_ "github.com/rocketscienceinc/arcade-backend/internal/games/checkers"    // registers checkers
	_ "github.com/rocketscienceinc/arcade-backend/internal/games/flappybird"  // registers flappy bird
	_ "github.com/rocketscienceinc/arcade-backend/internal/games/minesweeper" // registers minesweeper
	_ "github.com/rocketscienceinc/arcade-backend/internal/games/snake"       // registers snake
	_ "github.com/rocketscienceinc/arcade-backend/internal/games/tetris"      // registers tetris
	_ "github.com/rocketscienceinc/arcade-backend/internal/games/tictactoe"   // registers tic-tac-toe
)
