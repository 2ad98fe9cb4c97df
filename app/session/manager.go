package session

import (
	"sync"

	"go.uber.org/zap"
	"promptgen.arpa/app/engine"
	"promptgen.arpa/app/store"
)

// Manager lazily creates one Session per category over a shared engine and
// store.
type Manager struct {
	log    *zap.Logger
	engine *engine.Engine
	store  store.Store
	opts   Options

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(log *zap.Logger, eng *engine.Engine, st store.Store, opts Options) *Manager {
	if opts.Title == nil {
		opts.Title = func(category string) string {
			return eng.Catalog().Title(category)
		}
	}
	return &Manager{
		log:      log,
		engine:   eng,
		store:    st,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Session returns the session for category, or engine.ErrUnknownCategory
// when the category is not registered.
func (m *Manager) Session(category string) (*Session, error) {
	if _, err := m.engine.Category(category); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[category]; ok {
		return s, nil
	}
	s := New(m.log, category, m.engine, m.store, m.opts)
	m.sessions[category] = s
	m.log.Debug("Session created", zap.String("feature", category))
	return s, nil
}

func (m *Manager) Engine() *engine.Engine {
	return m.engine
}
