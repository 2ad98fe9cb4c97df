package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"promptgen.arpa/app/record"
	"promptgen.arpa/app/session"
	"promptgen.arpa/app/share"
)

var errEmptyHistory = errors.New("no prompts generated yet, run generate first")

func categoryFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "category",
		Aliases:  []string{"c"},
		Usage:    "Category key, see the categories command",
		Required: true,
	}
}

func idFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "id",
		Usage: usage,
	}
}

func jsonFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Print records as JSON",
	}
}

func (s *App) session(category string) (*session.Session, error) {
	sess, err := s.sessions.Session(category)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, s.engine.Catalog().Keys())
	}
	return sess, nil
}

// resolve finds id in the session, or the newest history entry when id is empty.
func resolve(sess *session.Session, id string) (record.Record, error) {
	if id != "" {
		return sess.Find(id)
	}
	history := sess.History()
	if len(history) == 0 {
		return record.Record{}, errEmptyHistory
	}
	return history[0], nil
}

func (s *App) title(category string) string {
	return s.engine.Catalog().Title(category)
}

func (s *App) printRecords(asJSON bool, recs []record.Record, hint string) error {
	if asJSON {
		if recs == nil {
			recs = []record.Record{}
		}
		return s.printJSON(recs)
	}
	return s.render.Records(s.title, recs, hint)
}

func (s *App) printJSON(v any) error {
	enc := json.NewEncoder(s.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newCategoriesCommand(s *App) *cli.Command {
	return &cli.Command{
		Name:   "categories",
		Usage:  "List the available prompt categories",
		Action: cmdWithApp(listCategories, s),
	}
}

func listCategories(ctx context.Context, cmd *cli.Command, s *App) error {
	return s.render.Categories(s.engine.Categories(), s.title)
}

type generateCommandFlags struct {
	Category string
	Batch    int
	Save     bool
	Favorite bool
	JSON     bool
}

func newGenerateCommandFlags(cmd *cli.Command) *generateCommandFlags {
	return &generateCommandFlags{
		Category: cmd.String("category"),
		Batch:    cmd.Int("batch"),
		Save:     cmd.Bool("save"),
		Favorite: cmd.Bool("favorite"),
		JSON:     cmd.Bool("json"),
	}
}

func newGenerateCommand(s *App) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate a prompt, or a batch of prompts, for a category",
		Action:  cmdWithApp(generate, s),
		Flags: []cli.Flag{
			categoryFlag(),
			&cli.IntFlag{
				Name:    "batch",
				Aliases: []string{"n"},
				Usage:   "Number of prompts generated together",
				Value:   1,
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save the result",
			},
			&cli.BoolFlag{
				Name:  "favorite",
				Usage: "Mark the result as a favorite",
			},
			jsonFlag(),
		},
	}
}

func generate(ctx context.Context, cmd *cli.Command, s *App) error {
	f := newGenerateCommandFlags(cmd)
	sess, err := s.session(f.Category)
	if err != nil {
		return err
	}

	rec, err := sess.Generate(f.Batch)
	if err != nil {
		return fmt.Errorf("generate %s: %w", f.Category, err)
	}
	s.log.Debug("Generated prompt", zap.String("category", f.Category), zap.String("id", rec.ID), zap.Int("batch", f.Batch))

	if f.Save {
		sess.Save(rec)
	}
	if f.Favorite {
		sess.ToggleFavorite(rec)
		rec.Favorited = true
	}

	if f.JSON {
		return s.printJSON(rec)
	}
	return s.render.Record(s.title(rec.Category), rec)
}

type historyCommandFlags struct {
	Category string
	Clear    bool
	JSON     bool
}

func newHistoryCommandFlags(cmd *cli.Command) *historyCommandFlags {
	return &historyCommandFlags{
		Category: cmd.String("category"),
		Clear:    cmd.Bool("clear"),
		JSON:     cmd.Bool("json"),
	}
}

func newHistoryCommand(s *App) *cli.Command {
	return &cli.Command{
		Name:   "history",
		Usage:  "Show recent generations for a category, newest first",
		Action: cmdWithApp(history, s),
		Flags: []cli.Flag{
			categoryFlag(),
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "Clear the history instead of showing it",
			},
			jsonFlag(),
		},
	}
}

func history(ctx context.Context, cmd *cli.Command, s *App) error {
	f := newHistoryCommandFlags(cmd)
	sess, err := s.session(f.Category)
	if err != nil {
		return err
	}

	if f.Clear {
		sess.ClearHistory()
		return s.render.Hint("History cleared.")
	}
	return s.printRecords(f.JSON, sess.History(), "No history yet.")
}

type recordCommandFlags struct {
	Category string
	ID       string
}

func newRecordCommandFlags(cmd *cli.Command) *recordCommandFlags {
	return &recordCommandFlags{
		Category: cmd.String("category"),
		ID:       cmd.String("id"),
	}
}

func newSaveCommand(s *App) *cli.Command {
	return &cli.Command{
		Name:   "save",
		Usage:  "Save a generated prompt",
		Action: cmdWithApp(save, s),
		Flags: []cli.Flag{
			categoryFlag(),
			idFlag("Record ID to save, defaults to the newest history entry"),
		},
	}
}

func save(ctx context.Context, cmd *cli.Command, s *App) error {
	f := newRecordCommandFlags(cmd)
	sess, err := s.session(f.Category)
	if err != nil {
		return err
	}
	rec, err := resolve(sess, f.ID)
	if err != nil {
		return err
	}

	if !sess.Save(rec) {
		return s.render.Hint("Already saved: " + rec.ID)
	}
	return s.render.Hint("Saved " + rec.ID)
}

func newUnsaveCommand(s *App) *cli.Command {
	return &cli.Command{
		Name:   "unsave",
		Usage:  "Remove a prompt from the saved collection",
		Action: cmdWithApp(unsave, s),
		Flags: []cli.Flag{
			categoryFlag(),
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Record ID to remove",
				Required: true,
			},
		},
	}
}

func unsave(ctx context.Context, cmd *cli.Command, s *App) error {
	f := newRecordCommandFlags(cmd)
	sess, err := s.session(f.Category)
	if err != nil {
		return err
	}
	if !sess.Unsave(f.ID) {
		return fmt.Errorf("%w: %s is not saved", session.ErrNotFound, f.ID)
	}
	return s.render.Hint("Removed " + f.ID)
}

func newFavoriteCommand(s *App) *cli.Command {
	return &cli.Command{
		Name:   "favorite",
		Usage:  "Toggle a prompt in the favorites",
		Action: cmdWithApp(favorite, s),
		Flags: []cli.Flag{
			categoryFlag(),
			idFlag("Record ID to toggle, defaults to the newest history entry"),
		},
	}
}

func favorite(ctx context.Context, cmd *cli.Command, s *App) error {
	f := newRecordCommandFlags(cmd)
	sess, err := s.session(f.Category)
	if err != nil {
		return err
	}
	rec, err := resolve(sess, f.ID)
	if err != nil {
		return err
	}

	if sess.ToggleFavorite(rec) {
		return s.render.Hint("Added to favorites: " + rec.ID)
	}
	return s.render.Hint("Removed from favorites: " + rec.ID)
}

type listCommandFlags struct {
	Category string
	JSON     bool
}

func newListCommandFlags(cmd *cli.Command) *listCommandFlags {
	return &listCommandFlags{
		Category: cmd.String("category"),
		JSON:     cmd.Bool("json"),
	}
}

func newSavedCommand(s *App) *cli.Command {
	return &cli.Command{
		Name:   "saved",
		Usage:  "List saved prompts for a category",
		Action: cmdWithApp(saved, s),
		Flags:  []cli.Flag{categoryFlag(), jsonFlag()},
	}
}

func saved(ctx context.Context, cmd *cli.Command, s *App) error {
	f := newListCommandFlags(cmd)
	sess, err := s.session(f.Category)
	if err != nil {
		return err
	}
	return s.printRecords(f.JSON, sess.Saved(), "Nothing saved yet.")
}

func newFavoritesCommand(s *App) *cli.Command {
	return &cli.Command{
		Name:   "favorites",
		Usage:  "List favorite prompts for a category",
		Action: cmdWithApp(favorites, s),
		Flags:  []cli.Flag{categoryFlag(), jsonFlag()},
	}
}

func favorites(ctx context.Context, cmd *cli.Command, s *App) error {
	f := newListCommandFlags(cmd)
	sess, err := s.session(f.Category)
	if err != nil {
		return err
	}
	return s.printRecords(f.JSON, sess.Favorites(), "No favorites yet.")
}

type exportCommandFlags struct {
	Category string
	Format   string
	Output   string
}

func newExportCommandFlags(cmd *cli.Command) *exportCommandFlags {
	return &exportCommandFlags{
		Category: cmd.String("category"),
		Format:   cmd.String("format"),
		Output:   cmd.String("output"),
	}
}

func newExportCommand(s *App) *cli.Command {
	return &cli.Command{
		Name:   "export",
		Usage:  "Export saved prompts as json, text or yaml",
		Action: cmdWithApp(exportSaved, s),
		Flags: []cli.Flag{
			categoryFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, text or yaml",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file, - for stdout",
				Value:   "-",
			},
		},
	}
}

func exportSaved(ctx context.Context, cmd *cli.Command, s *App) error {
	f := newExportCommandFlags(cmd)
	sess, err := s.session(f.Category)
	if err != nil {
		return err
	}

	var w io.Writer = s.Stdout
	if f.Output != "-" && f.Output != "" {
		file, err := os.OpenFile(f.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("open export file: %w", err)
		}
		defer file.Close()
		w = file
	}

	e, err := sess.ExportSaved(w, f.Format)
	if err != nil {
		return err
	}
	s.log.Info("Exported saved prompts",
		zap.String("category", f.Category),
		zap.String("format", e.Extension()),
		zap.String("output", f.Output))
	return nil
}

type shareCommandFlags struct {
	Category string
	ID       string
	Print    bool
}

func newShareCommandFlags(cmd *cli.Command) *shareCommandFlags {
	return &shareCommandFlags{
		Category: cmd.String("category"),
		ID:       cmd.String("id"),
		Print:    cmd.Bool("print"),
	}
}

func newShareCommand(s *App) *cli.Command {
	return &cli.Command{
		Name:   "share",
		Usage:  "Share a prompt to Slack, falling back to the clipboard",
		Action: cmdWithApp(sharePrompt, s),
		Flags: []cli.Flag{
			categoryFlag(),
			idFlag("Record ID to share, defaults to the newest history entry"),
			&cli.BoolFlag{
				Name:  "print",
				Usage: "Print the attributed text instead of copying it",
			},
		},
	}
}

func sharePrompt(ctx context.Context, cmd *cli.Command, s *App) error {
	f := newShareCommandFlags(cmd)
	sess, err := s.session(f.Category)
	if err != nil {
		return err
	}
	rec, err := resolve(sess, f.ID)
	if err != nil {
		return err
	}

	sharer := s.sharer
	if f.Print {
		sharer = share.NewSharer(s.log, nil, share.NewWriter(s.Stdout), s.config.SiteURL)
	} else {
		s.startSlack(ctx)
	}

	method := sharer.Share(ctx, rec.Text)
	s.log.Info("Shared prompt", zap.String("id", rec.ID), zap.String("method", string(method)))
	switch method {
	case share.MethodNative:
		return s.render.Hint("Posted to Slack.")
	case share.MethodClipboard:
		if f.Print {
			return nil
		}
		return s.render.Hint("Copied to clipboard.")
	default:
		return s.render.Hint("Sharing is unavailable here, nothing was copied.")
	}
}
