package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
	_ "github.com/rocketscienceinc/arcade-backend/internal/games"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the games in home screen order",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()

		for _, entry := range arcade.Catalog() {
			fmt.Fprintf(out, "%-12s %-12s %s\n", entry.Kind, entry.Title, entry.Description)

			var details []string
			if len(entry.Modes) > 0 {
				details = append(details, "modes: "+joinModes(entry.Modes))
			}
			if entry.Realtime {
				details = append(details, "realtime")
			}
			if len(details) > 0 {
				fmt.Fprintf(out, "%-12s %s\n", "", strings.Join(details, ", "))
			}
		}
	},
}

func joinModes(modes []arcade.Mode) string {
	names := make([]string, 0, len(modes))
	for _, mode := range modes {
		names = append(names, string(mode))
	}
	return strings.Join(names, "/")
}
