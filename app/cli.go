package app

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"promptgen.arpa/app/config"
)

type cmdWithArgs func(ctx context.Context, cmd *cli.Command, s *App) error

// Wrap subcommands to inject the app dependency
func cmdWithApp(action cmdWithArgs, app *App) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		return action(ctx, cmd, app)
	}
}

type setupWithArgs func(ctx context.Context, cmd *cli.Command) (context.Context, error)

func setup(setup setupWithArgs) cli.BeforeFunc {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		return setup(ctx, cmd)
	}
}

// NewCommandRoot returns the root command and a flag set when the server
// should be started after the command line has been handled.
func NewCommandRoot(s *App) (*bool, *cli.Command) {
	opts := s.BuildOpts
	version := fmt.Sprintf("%s (%s)", opts.BuildVersion, opts.BuildTime)
	if opts.BuildTime == "" {
		version = opts.BuildVersion
	}
	start := new(bool)
	return start, &cli.Command{
		Name:      "promptgen",
		Usage:     "Random writing, art and character prompt generator",
		Version:   version,
		Writer:    s.Stdout,
		ErrWriter: s.Stderr,
		Before:    setup(s.Setup), // runs before any command to initialize the app
		Action: func(ctx context.Context, cmd *cli.Command) error {
			*start = true
			return nil
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			if *start {
				return nil
			}
			return s.Close()
		},
		Commands: Commands(s),
		Flags:    config.Flags(),
	}
}

func Commands(s *App) []*cli.Command {
	return []*cli.Command{
		newCategoriesCommand(s),
		newGenerateCommand(s),
		newHistoryCommand(s),
		newSaveCommand(s),
		newUnsaveCommand(s),
		newFavoriteCommand(s),
		newSavedCommand(s),
		newFavoritesCommand(s),
		newExportCommand(s),
		newShareCommand(s),
	}
}
