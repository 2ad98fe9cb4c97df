package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
	"promptgen.arpa/app/record"
	"promptgen.arpa/app/store"
)

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level",
			Value:   "warn",
			Sources: cli.EnvVars("LOG_LEVEL"),
			Action: func(ctx context.Context, cmd *cli.Command, v string) error {
				options := []string{"error", "warn", "info", "debug", "none"}
				if slices.Contains(options, strings.ToLower(v)) {
					return nil
				}
				return cli.Exit(fmt.Errorf("'log-level' must be %v. Received: %v", strings.Join(options, ", "), v), 2)
			},
		},
		&cli.StringFlag{
			Name:    "env",
			Usage:   "build environment description",
			Value:   "development",
			Sources: cli.EnvVars("ENVIRONMENT"),
			Action: func(ctx context.Context, cmd *cli.Command, v string) error {
				if IsEnvironment(v) {
					return nil
				}
				options := []string{EnvironmentDevelopment.String(), EnvironmentProduction.String()}
				return cli.Exit(fmt.Errorf("'env' must be %v. Received: %v", strings.Join(options, ", "), v), 2)
			},
		},
		&cli.StringFlag{
			Name:    "data-dir",
			Usage:   "Data storage directory, may be relative or absolute. Defaults to the user config directory.",
			Sources: cli.EnvVars("DATA_DIR"),
			Action: func(ctx context.Context, cmd *cli.Command, v string) error {
				if err := validateDirectoryInput(v, 0755); err != nil {
					return cli.Exit(fmt.Errorf("invalid data directory: %v", err), 2)
				}
				return nil
			},
		},
		&cli.StringFlag{
			Name:    "store",
			Usage:   "Persistence backend for history, saved and favorite prompts",
			Value:   store.KindFile.String(),
			Sources: cli.EnvVars("STORE"),
			Action: func(ctx context.Context, cmd *cli.Command, v string) error {
				if store.IsKind(v) {
					return nil
				}
				return cli.Exit(fmt.Errorf("'store' must be one of %v. Received: %v", store.Kinds, v), 2)
			},
		},
		&cli.IntFlag{
			Name:    "history-size",
			Usage:   "Number of generations kept in each category's history",
			Value:   record.DefaultHistorySize,
			Sources: cli.EnvVars("HISTORY_SIZE"),
			Action: func(ctx context.Context, cmd *cli.Command, v int) error {
				if v < 1 {
					return cli.Exit(fmt.Errorf("'history-size' must be at least 1. Received: %d", v), 2)
				}
				return nil
			},
		},
		&cli.Int64Flag{
			Name:    "seed",
			Usage:   "Random seed for reproducible output, 0 seeds from the clock",
			Sources: cli.EnvVars("SEED"),
		},
		&cli.StringFlag{
			Name:    "dictionary-file",
			Usage:   "YAML or JSON file with extra or overriding categories, reloaded on change",
			Sources: cli.EnvVars("DICTIONARY_FILE"),
			Action: func(ctx context.Context, cmd *cli.Command, v string) error {
				if err := validateFileInput(v); err != nil {
					return cli.Exit(fmt.Errorf("invalid dictionary file: %v", err), 2)
				}
				return nil
			},
		},
		&cli.StringFlag{
			Name:    "site-url",
			Usage:   "URL appended as attribution to prompts copied to the clipboard",
			Sources: cli.EnvVars("SITE_URL"),
			Action: func(ctx context.Context, cmd *cli.Command, v string) error {
				if _, err := url.ParseRequestURI(v); err != nil {
					return cli.Exit(fmt.Errorf("invalid site URL: %v", err), 2)
				}
				return nil
			},
		},
		&cli.StringFlag{
			Name:    "server-url",
			Usage:   "Server URL",
			Value:   "http://localhost:4200",
			Sources: cli.EnvVars("SERVER_URL"),
			Action: func(ctx context.Context, cmd *cli.Command, v string) error {
				if err := validateURLInput(v); err != nil {
					return cli.Exit(fmt.Errorf("invalid server URL: %v", err), 2)
				}
				return nil
			},
		},
		&cli.FloatFlag{
			Name:    "rate-limit",
			Usage:   "Generate requests per second allowed by the server, 0 disables limiting",
			Value:   5,
			Sources: cli.EnvVars("RATE_LIMIT"),
			Action: func(ctx context.Context, cmd *cli.Command, v float64) error {
				if v < 0 {
					return cli.Exit(fmt.Errorf("'rate-limit' must not be negative. Received: %v", v), 2)
				}
				return nil
			},
		},
		&cli.IntFlag{
			Name:    "rate-burst",
			Usage:   "Generate requests allowed in a burst",
			Value:   10,
			Sources: cli.EnvVars("RATE_BURST"),
		},
		&cli.StringFlag{
			Name:    "slack-token",
			Usage:   "Slack bot token used to share prompts to a channel",
			Sources: cli.EnvVars("SLACK_TOKEN"),
		},
		&cli.StringFlag{
			Name:    "slack-share-channel",
			Usage:   "Channel ID shared prompts are posted to. Sharing falls back to the clipboard without it.",
			Sources: cli.EnvVars("SLACK_SHARE_CHANNEL"),
		},
		&cli.StringFlag{
			Name:    "slack-api-url",
			Usage:   "Slack Web API base URL",
			Hidden:  true,
			Sources: cli.EnvVars("SLACK_API_URL"),
		},
	}
}

// Ensures the directory input is valid.
//
// The directory must either exist or the parent directory must exist.
// Will create if the directory doesn't exist.
func validateDirectoryInput(dir string, permissions os.FileMode) error {
	if dir == "" {
		return errors.New("directory is required")
	}
	parent := filepath.Dir(dir)
	if _, err := os.Stat(parent); err != nil {
		return err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, permissions); err != nil {
			return err
		}
	}
	return nil
}

// Ensures the file input is valid.
func validateFileInput(file string) error {
	if file == "" {
		return errors.New("file is required")
	}
	info, err := os.Stat(file)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", file)
	}
	return nil
}

func validateURLInput(input string) error {
	if input == "" {
		return errors.New("URL is required")
	}
	u, err := url.ParseRequestURI(input)
	if err != nil {
		return fmt.Errorf("invalid url '%v': %v", input, err)
	}
	host, _, err := net.SplitHostPort(u.Host)
	if err != nil || host == "" {
		return fmt.Errorf("invalid url '%v': %v", input, err)
	}
	return nil
}
