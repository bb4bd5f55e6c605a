package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/arcade-backend/internal"
	"github.com/rocketscienceinc/arcade-backend/internal/config"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST and websocket servers",
	RunE: func(_ *cobra.Command, _ []string) error {
		conf, err := initConfig(configPath)
		if err != nil {
			return err
		}

		logger := initLogger(conf.LogLevel)

		if err = app.RunApp(logger, conf); err != nil {
			return fmt.Errorf("app run failed: %w", err)
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config.yml (default ./config.yml)")
}

// initialize config.
func initConfig(path string) (*config.Config, error) {
	if path == "" {
		baseDir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(baseDir, "config.yml")
	}

	conf, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, nil
}

// initialize logger.
func initLogger(logLevel string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(logLevel)}))
}

func parseLevel(logLevel string) slog.Level {
	switch logLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
