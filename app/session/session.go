// Package session tracks generated records for one category: the current
// record, a bounded history and the saved and favorite collections, all
// persisted through a store.
package session

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"promptgen.arpa/app/export"
	"promptgen.arpa/app/record"
	"promptgen.arpa/app/store"
	"promptgen.arpa/tools/random"
)

// BatchSeparator joins the items of a batch record into its text.
const BatchSeparator = "\n\n"

// MaxBatch is the largest number of strings composed into one record.
const MaxBatch = 100

var ErrNotFound = errors.New("record not found")

// Composer produces one string for a category key.
type Composer interface {
	Compose(key string) (string, error)
}

type Options struct {
	HistorySize int
	Now         func() time.Time
	NewID       func() string
	// Title names a category in text exports.
	Title func(category string) string
}

func (o Options) withDefaults() Options {
	if o.HistorySize < 1 {
		o.HistorySize = record.DefaultHistorySize
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Title == nil {
		o.Title = func(category string) string { return category }
	}
	return o
}

// Keys names the store entries a feature persists to.
type Keys struct {
	History   string
	Saved     string
	Favorites string
}

func KeysFor(feature string) Keys {
	return Keys{
		History:   feature + "-history",
		Saved:     feature + "-saved-prompts",
		Favorites: feature + "-favorites",
	}
}

type Session struct {
	log      *zap.Logger
	feature  string
	composer Composer
	store    store.Store
	opts     Options
	keys     Keys

	mu        sync.Mutex
	current   *record.Record
	history   *record.History
	saved     *record.Collection
	favorites *record.Collection
}

// New restores the feature's collections from st. Missing entries start
// empty; unreadable ones are logged and start empty.
func New(log *zap.Logger, feature string, composer Composer, st store.Store, opts Options) *Session {
	opts = opts.withDefaults()
	s := &Session{
		log:      log.With(zap.String("feature", feature)),
		feature:  feature,
		composer: composer,
		store:    st,
		opts:     opts,
		keys:     KeysFor(feature),
	}

	s.history = record.NewHistory(opts.HistorySize, s.load(s.keys.History))
	s.saved = record.NewCollection(s.load(s.keys.Saved))
	s.favorites = record.NewCollection(s.load(s.keys.Favorites))
	return s
}

func (s *Session) Feature() string {
	return s.feature
}

func (s *Session) load(key string) []record.Record {
	var records []record.Record
	ok, err := store.GetJSON(s.store, key, &records)
	if err != nil {
		s.log.Warn("Failed to load stored records, starting empty", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	return records
}

func (s *Session) persist(key string, records []record.Record) {
	if records == nil {
		records = []record.Record{}
	}
	if err := store.SetJSON(s.store, key, records); err != nil {
		s.log.Error("Failed to persist records", zap.String("key", key), zap.Error(err))
	}
}

// Generate composes batch strings into one record, makes it current and
// pushes it onto the history. A failed composition leaves all state as is.
func (s *Session) Generate(batch int) (record.Record, error) {
	if batch < 1 || batch > MaxBatch {
		return record.Record{}, fmt.Errorf("%w: batch size %d outside [1, %d]", random.ErrInvalidInput, batch, MaxBatch)
	}

	items := make([]string, 0, batch)
	for range batch {
		text, err := s.composer.Compose(s.feature)
		if err != nil {
			return record.Record{}, err
		}
		items = append(items, text)
	}

	r := record.Record{
		ID:        s.opts.NewID(),
		Text:      strings.Join(items, BatchSeparator),
		Items:     items,
		Category:  s.feature,
		Timestamp: s.opts.Now().UTC(),
		IsBatch:   batch > 1,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := r.Clone()
	s.current = &current
	if evicted := s.history.Push(r); len(evicted) > 0 {
		s.log.Debug("History full, evicted oldest records", zap.Int("evicted", len(evicted)))
	}
	s.persist(s.keys.History, s.history.Records())
	return r, nil
}

// Current returns the most recently generated record.
func (s *Session) Current() (record.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return record.Record{}, false
	}
	return s.current.Clone(), true
}

// History returns the history newest first.
func (s *Session) History() []record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Records()
}

func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Clear()
	s.persist(s.keys.History, nil)
}

// Save adds r to the saved collection. Saving an id twice is a no-op and
// reports false.
func (s *Session) Save(r record.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved.Add(r) {
		return false
	}
	s.persist(s.keys.Saved, s.saved.Records())
	return true
}

func (s *Session) Unsave(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved.Remove(id) {
		return false
	}
	s.persist(s.keys.Saved, s.saved.Records())
	return true
}

func (s *Session) Saved() []record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved.Records()
}

// ToggleFavorite removes r from the favorites when present, otherwise adds a
// copy with Favorited set. It reports whether r is a favorite afterwards.
func (s *Session) ToggleFavorite(r record.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorited := !s.favorites.Remove(r.ID)
	if favorited {
		r.Favorited = true
		s.favorites.Add(r)
	}
	s.persist(s.keys.Favorites, s.favorites.Records())
	return favorited
}

func (s *Session) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Contains(id)
}

func (s *Session) Favorites() []record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Records()
}

// Find looks id up in the current record, the history, the saved and the
// favorite collections, in that order.
func (s *Session) Find(id string) (record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.ID == id {
		return s.current.Clone(), nil
	}
	for _, find := range []func(string) (record.Record, bool){
		s.history.Find,
		s.saved.Find,
		s.favorites.Find,
	} {
		if r, ok := find(id); ok {
			return r, nil
		}
	}
	return record.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ExportSaved writes the saved collection to w in the given format and
// returns the exporter used.
func (s *Session) ExportSaved(w io.Writer, format string) (export.Exporter, error) {
	e, err := export.NewExporter(format, func(r record.Record) string {
		return s.opts.Title(r.Category)
	})
	if err != nil {
		return nil, err
	}

	if err := e.Export(s.Saved(), w); err != nil {
		return nil, fmt.Errorf("export %s: %w", s.feature, err)
	}
	return e, nil
}
