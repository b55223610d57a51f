package songs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/DeskShell/backend/internal/infrastructure/resilience"
)

func TestBuiltin(t *testing.T) {
	list := Builtin()
	require.NotEmpty(t, list)

	c := NewCatalog(Config{}, nil)
	hint, ok := c.Lookup("universe")
	require.True(t, ok)
	assert.Equal(t, "Mani Matter", hint.Artist)
	assert.Equal(t, "/media/audio/Mani_Matter.mp3", hint.AudioURL)
}

func TestRefreshWithoutURL(t *testing.T) {
	c := NewCatalog(Config{}, nil)
	require.NoError(t, c.Refresh(context.Background()))
	assert.Len(t, c.Songs(), len(Builtin()))
}

func TestRefreshFromRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"universe","title":"Us emene","artist":"Mani Matter"},{"id":"","title":"broken"}]`))
	}))
	defer srv.Close()

	c := NewCatalog(Config{URL: srv.URL}, nil)
	require.NoError(t, c.Refresh(context.Background()))

	list := c.Songs()
	require.Len(t, list, 1)
	assert.Equal(t, "universe", list[0].ID)
}

func TestRefreshKeepsListOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewCatalog(Config{URL: srv.URL}, nil)
	assert.Error(t, c.Refresh(context.Background()))
	assert.Len(t, c.Songs(), len(Builtin()))
}

func TestRefreshRejectsEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewCatalog(Config{URL: srv.URL}, nil)
	assert.ErrorIs(t, c.Refresh(context.Background()), ErrEmptyCatalog)
	assert.NotEmpty(t, c.Songs())
}

func TestRefreshRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"universe","title":"Us emene","artist":"Mani Matter"}]`))
	}))
	defer srv.Close()

	c := NewCatalog(Config{URL: srv.URL, MaxRetries: 2}, nil)
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, int32(2), hits.Load())
	assert.Len(t, c.Songs(), 1)

	hits.Store(0)
	once := NewCatalog(Config{URL: srv.URL}, nil)
	assert.Error(t, once.Refresh(context.Background()))
	assert.Equal(t, int32(1), hits.Load(), "no retries without MaxRetries")
}

func TestRefreshBreakerOpens(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewCatalog(Config{URL: srv.URL, BreakerTimeout: time.Hour}, nil)
	for range 3 {
		require.Error(t, c.Refresh(context.Background()))
	}
	seen := hits.Load()

	assert.ErrorIs(t, c.Refresh(context.Background()), resilience.ErrCircuitOpen)
	assert.Equal(t, seen, hits.Load())
}

func TestWatchStopsWithContext(t *testing.T) {
	c := NewCatalog(Config{URL: "http://127.0.0.1:1"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, c.Watch(ctx, time.Millisecond))
	assert.NoError(t, NewCatalog(Config{}, nil).Watch(context.Background(), time.Millisecond))
}
