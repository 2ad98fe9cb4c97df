package slack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeAPI struct {
	mu       sync.Mutex
	posted   []string
	channels []string
	authOK   bool
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth.test", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !f.authOK {
			w.Write([]byte(`{"ok":false,"error":"invalid_auth"}`))
			return
		}
		w.Write([]byte(`{"ok":true,"team":"Prompts","user":"promptgen","user_id":"U1"}`))
	})
	mux.HandleFunc("/chat.postMessage", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.posted = append(f.posted, r.FormValue("text"))
		f.channels = append(f.channels, r.FormValue("channel"))
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"channel":"C123","ts":"1700000000.000100"}`))
	})
	return mux
}

func newFake(t *testing.T, authOK bool) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{authOK: authOK}
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return f, srv
}

func TestNewSlack(t *testing.T) {
	s := NewSlack(zaptest.NewLogger(t), Config{Token: "xoxb-test", Channel: "prompts", Debug: true})

	require.NotNil(t, s)
	assert.Equal(t, "xoxb-test", s.config.Token)
	assert.True(t, s.config.Debug)
	assert.Nil(t, s.Client(), "client is created by Start")
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.False(t, Config{Token: "x"}.Enabled())
	assert.False(t, Config{Channel: "c"}.Enabled())
	assert.True(t, Config{Token: "x", Channel: "c"}.Enabled())
}

func TestSlack_Start_EmptyToken(t *testing.T) {
	s := NewSlack(zaptest.NewLogger(t), Config{Channel: "prompts"})
	assert.Error(t, s.Start(context.Background()))
}

func TestSlack_Start_AuthFailure(t *testing.T) {
	_, srv := newFake(t, false)
	s := NewSlack(zaptest.NewLogger(t), Config{Token: "xoxb-test", Channel: "prompts", APIURL: srv.URL + "/"})

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authenticate with Slack")
	assert.Nil(t, s.Client())
}

func TestSlack_Post(t *testing.T) {
	f, srv := newFake(t, true)
	s := NewSlack(zaptest.NewLogger(t), Config{Token: "xoxb-test", Channel: "prompts", APIURL: srv.URL + "/"})

	require.NoError(t, s.Start(context.Background()))

	ts, err := s.Post(context.Background(), "A dragon who collects teacups")
	require.NoError(t, err)
	assert.Equal(t, "1700000000.000100", ts)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, []string{"A dragon who collects teacups"}, f.posted)
	assert.Equal(t, []string{"prompts"}, f.channels)
}

func TestSlack_Post_NotStarted(t *testing.T) {
	s := NewSlack(zaptest.NewLogger(t), Config{Token: "xoxb-test", Channel: "prompts"})
	_, err := s.Post(context.Background(), "text")
	assert.ErrorIs(t, err, ErrNotStarted)
}
