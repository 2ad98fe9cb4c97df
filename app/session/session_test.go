package session

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"promptgen.arpa/app/content"
	"promptgen.arpa/app/engine"
	"promptgen.arpa/app/record"
	"promptgen.arpa/app/store"
	"promptgen.arpa/tools/random"
)

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func testOptions() Options {
	return Options{
		Now:   func() time.Time { return fixedTime },
		NewID: sequentialIDs(),
	}
}

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.NewEngine(zap.NewNop(), content.Builtin(), random.New(42))
}

func newTestSession(t *testing.T, feature string, st store.Store) *Session {
	t.Helper()
	if st == nil {
		st = store.NewMemory()
	}
	return New(zaptest.NewLogger(t), feature, newTestEngine(t), st, testOptions())
}

type failingComposer struct{}

func (failingComposer) Compose(key string) (string, error) {
	return "", fmt.Errorf("%w: %q", engine.ErrUnknownCategory, key)
}

type failingStore struct{ store.Memory }

func (*failingStore) Set(string, []byte) error { return errors.New("disk full") }

func TestGenerate_Single(t *testing.T) {
	s := newTestSession(t, "writing", nil)

	r, err := s.Generate(1)
	require.NoError(t, err)

	assert.Equal(t, "id-1", r.ID)
	assert.Equal(t, "writing", r.Category)
	assert.False(t, r.IsBatch)
	assert.Equal(t, []string{r.Text}, r.Items)
	assert.Equal(t, time.UTC, r.Timestamp.Location())
	assert.True(t, r.Timestamp.Equal(fixedTime))

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, r, current)
	assert.Equal(t, []record.Record{r}, s.History())
}

func TestGenerate_Batch(t *testing.T) {
	s := newTestSession(t, "blog", nil)

	r, err := s.Generate(5)
	require.NoError(t, err)

	assert.True(t, r.IsBatch)
	require.Len(t, r.Items, 5)
	for _, item := range r.Items {
		assert.NotEmpty(t, item)
	}
	assert.Equal(t, strings.Join(r.Items, "\n\n"), r.Text)
	assert.Len(t, s.History(), 1, "a batch is one history entry")
}

func TestGenerate_InvalidBatch(t *testing.T) {
	s := newTestSession(t, "writing", nil)

	for _, batch := range []int{0, -1, MaxBatch + 1, 1 << 62} {
		_, err := s.Generate(batch)
		assert.ErrorIs(t, err, random.ErrInvalidInput, "batch %d", batch)
	}
	assert.Empty(t, s.History())

	r, err := s.Generate(MaxBatch)
	require.NoError(t, err)
	assert.Len(t, r.Items, MaxBatch)
}

func TestGenerate_RecordsAreIsolated(t *testing.T) {
	s := newTestSession(t, "writing", nil)
	r, err := s.Generate(2)
	require.NoError(t, err)
	original := r.Items[0]
	require.True(t, s.Save(r))

	r.Items[0] = "changed"
	assert.Equal(t, original, s.History()[0].Items[0])
	assert.Equal(t, original, s.Saved()[0].Items[0])
	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, original, current.Items[0])

	current.Items[1] = "changed"
	found, err := s.Find(r.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", found.Items[1])
}

func TestGenerate_UnknownCategory(t *testing.T) {
	s := newTestSession(t, "writing", nil)
	first, err := s.Generate(1)
	require.NoError(t, err)

	unknown := newTestSession(t, "limericks", nil)
	_, err = unknown.Generate(1)
	assert.ErrorIs(t, err, engine.ErrUnknownCategory)
	assert.Empty(t, unknown.History())
	_, ok := unknown.Current()
	assert.False(t, ok)

	failing := New(zap.NewNop(), "writing", failingComposer{}, store.NewMemory(), testOptions())
	_, err = failing.Generate(3)
	assert.ErrorIs(t, err, engine.ErrUnknownCategory)
	assert.Empty(t, failing.History())

	assert.Equal(t, []record.Record{first}, s.History())
}

func TestHistory_Bound(t *testing.T) {
	const n = record.DefaultHistorySize
	s := newTestSession(t, "hero", nil)

	var last record.Record
	for i := range n + 5 {
		r, err := s.Generate(1)
		require.NoError(t, err)
		require.LessOrEqual(t, len(s.History()), n, "after generation %d", i)
		last = r
	}

	history := s.History()
	require.Len(t, history, n)
	assert.Equal(t, last, history[0])
	assert.Equal(t, "id-6", history[n-1].ID, "the five oldest are evicted")
}

func TestHistory_CustomSize(t *testing.T) {
	opts := testOptions()
	opts.HistorySize = 3
	s := New(zap.NewNop(), "poetry", newTestEngine(t), store.NewMemory(), opts)

	for range 5 {
		_, err := s.Generate(1)
		require.NoError(t, err)
	}
	assert.Len(t, s.History(), 3)
}

func TestClearHistory(t *testing.T) {
	st := store.NewMemory()
	s := newTestSession(t, "story", st)
	_, err := s.Generate(2)
	require.NoError(t, err)

	s.ClearHistory()
	assert.Empty(t, s.History())

	var stored []record.Record
	ok, err := store.GetJSON(st, "story-history", &stored)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, stored)
}

func TestSave(t *testing.T) {
	s := newTestSession(t, "writing", nil)
	r, err := s.Generate(1)
	require.NoError(t, err)

	assert.True(t, s.Save(r))
	assert.False(t, s.Save(r), "saving twice is a no-op")
	assert.Equal(t, []record.Record{r}, s.Saved())

	assert.True(t, s.Unsave(r.ID))
	assert.False(t, s.Unsave(r.ID))
	assert.Empty(t, s.Saved())
}

func TestToggleFavorite(t *testing.T) {
	s := newTestSession(t, "villain", nil)
	r, err := s.Generate(1)
	require.NoError(t, err)

	assert.True(t, s.ToggleFavorite(r))
	favorites := s.Favorites()
	require.Len(t, favorites, 1)
	assert.True(t, favorites[0].Favorited)
	assert.Equal(t, r.Text, favorites[0].Text)
	assert.True(t, s.IsFavorite(r.ID))

	history := s.History()
	assert.False(t, history[0].Favorited, "the history entry is not mutated")

	assert.False(t, s.ToggleFavorite(r))
	assert.Empty(t, s.Favorites())
	assert.False(t, s.IsFavorite(r.ID))
}

func TestToggleFavorite_DoubleToggleRestores(t *testing.T) {
	s := newTestSession(t, "names", nil)
	a, err := s.Generate(1)
	require.NoError(t, err)
	b, err := s.Generate(1)
	require.NoError(t, err)

	s.ToggleFavorite(a)
	before := s.Favorites()

	s.ToggleFavorite(b)
	s.ToggleFavorite(b)
	assert.Equal(t, before, s.Favorites())

	s.ToggleFavorite(a)
	s.ToggleFavorite(a)
	assert.Equal(t, before, s.Favorites())
}

func TestFind(t *testing.T) {
	s := newTestSession(t, "dialogue", nil)
	r, err := s.Generate(1)
	require.NoError(t, err)

	found, err := s.Find(r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, found)

	s.ToggleFavorite(r)
	s.ClearHistory()
	_, err = s.Generate(1)
	require.NoError(t, err)

	found, err = s.Find(r.ID)
	require.NoError(t, err)
	assert.True(t, found.Favorited)

	_, err = s.Find("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersistence_Reload(t *testing.T) {
	st, err := store.NewFile(zap.NewNop(), t.TempDir())
	require.NoError(t, err)

	s := newTestSession(t, "aiArt", st)
	a, err := s.Generate(1)
	require.NoError(t, err)
	b, err := s.Generate(3)
	require.NoError(t, err)
	s.Save(a)
	s.ToggleFavorite(b)

	reloaded := New(zap.NewNop(), "aiArt", newTestEngine(t), st, testOptions())

	history := reloaded.History()
	require.Len(t, history, 2)
	assert.Equal(t, b.ID, history[0].ID)
	assert.Equal(t, b.Items, history[0].Items)
	assert.True(t, history[0].Timestamp.Equal(b.Timestamp))

	require.Len(t, reloaded.Saved(), 1)
	assert.Equal(t, a.ID, reloaded.Saved()[0].ID)
	require.Len(t, reloaded.Favorites(), 1)
	assert.True(t, reloaded.Favorites()[0].Favorited)

	_, ok := reloaded.Current()
	assert.False(t, ok, "current is not persisted")
}

func TestPersistence_Keys(t *testing.T) {
	st := store.NewMemory()
	s := newTestSession(t, "plotTwist", st)
	r, err := s.Generate(1)
	require.NoError(t, err)
	s.Save(r)
	s.ToggleFavorite(r)

	for _, key := range []string{"plotTwist-history", "plotTwist-saved-prompts", "plotTwist-favorites"} {
		_, ok, err := st.Get(key)
		require.NoError(t, err)
		assert.True(t, ok, key)
	}
}

func TestPersistence_CorruptEntry(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.Set("writing-history", []byte("{not json")))

	s := newTestSession(t, "writing", st)
	assert.Empty(t, s.History())

	_, err := s.Generate(1)
	require.NoError(t, err)
	assert.Len(t, s.History(), 1)
}

func TestPersistence_StoreFailureKeepsState(t *testing.T) {
	s := New(zap.NewNop(), "writing", newTestEngine(t), &failingStore{}, testOptions())

	r, err := s.Generate(1)
	require.NoError(t, err)
	assert.True(t, s.Save(r))
	assert.Len(t, s.History(), 1)
	assert.Len(t, s.Saved(), 1)
}

func TestExportSaved(t *testing.T) {
	eng := newTestEngine(t)
	m := NewManager(zap.NewNop(), eng, store.NewMemory(), testOptions())
	s, err := m.Session("poetry")
	require.NoError(t, err)

	r, err := s.Generate(1)
	require.NoError(t, err)
	s.Save(r)

	var buf bytes.Buffer
	e, err := s.ExportSaved(&buf, "text")
	require.NoError(t, err)
	assert.Equal(t, "txt", e.Extension())

	title := eng.Catalog().Title("poetry")
	assert.Equal(t, title+"\n"+r.Text+"\n\n---\n", buf.String())

	buf.Reset()
	_, err = s.ExportSaved(&buf, "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "[\n  {"))

	_, err = s.ExportSaved(&buf, "pdf")
	assert.Error(t, err)
}

func TestManager(t *testing.T) {
	m := NewManager(zap.NewNop(), newTestEngine(t), store.NewMemory(), testOptions())

	a, err := m.Session("writing")
	require.NoError(t, err)
	b, err := m.Session("writing")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, "writing", a.Feature())

	c, err := m.Session("blog")
	require.NoError(t, err)
	assert.NotSame(t, a, c)

	_, err = m.Session("limericks")
	assert.ErrorIs(t, err, engine.ErrUnknownCategory)
}

func TestManager_SessionsShareStoreNotState(t *testing.T) {
	m := NewManager(zap.NewNop(), newTestEngine(t), store.NewMemory(), testOptions())

	w, err := m.Session("writing")
	require.NoError(t, err)
	h, err := m.Session("hero")
	require.NoError(t, err)

	_, err = w.Generate(1)
	require.NoError(t, err)
	assert.Len(t, w.History(), 1)
	assert.Empty(t, h.History())
}
