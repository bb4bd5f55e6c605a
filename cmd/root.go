package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Snake, Tetris, Minesweeper, Tic-Tac-Toe, Checkers and Flappy Bird",
	Long: `arcade bundles six casual games behind one catalog.

Serve them to browser clients over websockets
	arcade serve

Or play one right here in the terminal
	arcade play tetris --difficulty hard
	arcade play checkers --mode ai --side red
`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, playCmd, gamesCmd)
}
