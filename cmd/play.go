package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
	_ "github.com/rocketscienceinc/arcade-backend/internal/games"
	"github.com/rocketscienceinc/arcade-backend/internal/games/minesweeper"
	"github.com/rocketscienceinc/arcade-backend/internal/terminal"
)

var errBoardNeedsMinesweeper = errors.New("--board and --save-board only work with minesweeper")

type playConfig struct {
	options   arcade.Options
	boardFile string
	saveBoard string
	logFile   string
}

var playOptions playConfig

var playCmd = &cobra.Command{
	Use:       "play <game>",
	Short:     "Play a game in the terminal",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"snake", "tetris", "minesweeper", "tictactoe", "checkers", "flappybird"},
	RunE: func(_ *cobra.Command, args []string) error {
		return runPlay(arcade.Kind(args[0]), playOptions)
	},
}

func init() {
	flags := playCmd.Flags()
	flags.Var(newDifficultyValue(arcade.Medium, &playOptions.options.Difficulty), "difficulty", "easy, medium or hard")
	flags.Var(newModeValue(arcade.ModeSolo, &playOptions.options.Mode), "mode", "ai or pvp, for tictactoe and checkers")
	flags.StringVar(&playOptions.options.Side, "side", "", "Checkers side to play, black moves first")
	flags.Int64Var(&playOptions.options.Seed, "seed", 0, "Random seed, 0 picks one")
	flags.IntVar(&playOptions.options.Width, "width", 0, "Minesweeper board width")
	flags.IntVar(&playOptions.options.Height, "height", 0, "Minesweeper board height")
	flags.IntVar(&playOptions.options.Mines, "mines", 0, "Minesweeper mine count")
	flags.StringVar(&playOptions.boardFile, "board", "", "Minesweeper YAML board snapshot to replay")
	flags.StringVar(&playOptions.saveBoard, "save-board", "", "Write the minesweeper board as YAML on exit")
	flags.StringVar(&playOptions.logFile, "log-file", "", "Write logs here, the screen owns stdout")
}

func runPlay(kind arcade.Kind, conf playConfig) error {
	logger, closeLog, err := playLogger(conf.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	if conf.options.Seed == 0 {
		conf.options.Seed = seedFromClock()
	}

	game, err := newPlayGame(kind, conf)
	if err != nil {
		return err
	}

	screen, err := terminal.NewScreen()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player := terminal.NewPlayer(logger, screen, game, playRestarter(kind, conf))
	err = player.Run(ctx)
	screen.Close()

	if err != nil {
		return fmt.Errorf("failed to play %s: %w", kind, err)
	}

	if conf.saveBoard != "" {
		return saveBoard(player.Game(), conf.saveBoard)
	}

	return nil
}

func newPlayGame(kind arcade.Kind, conf playConfig) (arcade.Game, error) {
	if conf.boardFile == "" {
		return arcade.New(kind, conf.options)
	}

	if kind != arcade.KindMinesweeper {
		return nil, errBoardNeedsMinesweeper
	}

	data, err := os.ReadFile(conf.boardFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}

	snapshot, err := minesweeper.LoadSnapshot(data)
	if err != nil {
		return nil, err
	}

	game, err := snapshot.Game(true)
	if err != nil {
		return nil, err
	}

	return game, nil
}

// playRestarter - a replayed board restarts on the same layout, anything else on a new seed.
func playRestarter(kind arcade.Kind, conf playConfig) terminal.Restarter {
	if conf.boardFile != "" {
		return func() (arcade.Game, error) {
			return newPlayGame(kind, conf)
		}
	}

	return func() (arcade.Game, error) {
		opts := conf.options
		opts.Seed = seedFromClock()
		return arcade.New(kind, opts)
	}
}

func seedFromClock() int64 {
	return time.Now().UnixNano()
}

func saveBoard(game arcade.Game, path string) error {
	board, ok := game.(*minesweeper.Game)
	if !ok {
		return errBoardNeedsMinesweeper
	}

	data, err := board.Export()
	if err != nil {
		return err
	}

	if err = os.WriteFile(path, []byte(data), 0o600); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}

func playLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return logger, func() { _ = file.Close() }, nil
}
