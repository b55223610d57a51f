package songs

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/DeskShell/backend/internal/infrastructure/resilience"
)

//go:embed songs.yaml
var builtinSongs []byte

// ErrEmptyCatalog is returned when a remote catalog holds no usable tracks
var ErrEmptyCatalog = errors.New("song catalog is empty")

// Song is one track
type Song struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Artist   string `yaml:"artist" json:"artist"`
	AudioURL string `yaml:"audio_url" json:"audioUrl,omitempty"`
	EmbedURL string `yaml:"embed_url" json:"embedUrl,omitempty"`
}

// Config controls the remote catalog
type Config struct {
	URL        string
	Timeout    time.Duration
	MaxRetries int
	// BreakerTimeout is how long refreshes are skipped after repeated failures
	BreakerTimeout time.Duration
}

// Catalog holds the current track list
type Catalog struct {
	mu      sync.RWMutex
	songs   []Song
	url     string
	client  *resty.Client
	breaker *resilience.Breaker
	logger  *zap.Logger
}

// Builtin returns the embedded track list
func Builtin() []Song {
	var file struct {
		Songs []Song `yaml:"songs"`
	}
	if err := yaml.Unmarshal(builtinSongs, &file); err != nil {
		panic(fmt.Sprintf("songs: embedded catalog: %v", err))
	}
	return file.Songs
}

// NewCatalog creates a catalog seeded with the embedded list
func NewCatalog(cfg Config, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = nil

	// retries happen in the retryablehttp round tripper, resty sends once
	client := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "DeskShell-Songs/1.0").
		SetJSONUnmarshaler(sonic.Unmarshal)

	breaker := resilience.New("songs", resilience.Settings{
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Info("Song catalog breaker changed state",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	})

	return &Catalog{
		songs:   Builtin(),
		url:     cfg.URL,
		client:  client,
		breaker: breaker,
		logger:  logger,
	}
}

// Songs returns a copy of the current list
func (c *Catalog) Songs() []Song {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Song(nil), c.songs...)
}

// Lookup finds a track by id
func (c *Catalog) Lookup(id string) (Song, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.songs {
		if s.ID == id {
			return s, true
		}
	}
	return Song{}, false
}

// Refresh replaces the list with the remote catalog. Without a URL it is a
// no-op; on failure the current list is kept and the error returned. While
// the breaker is open the fetch is skipped with resilience.ErrCircuitOpen.
func (c *Catalog) Refresh(ctx context.Context) error {
	if c.url == "" {
		return nil
	}
	return c.breaker.Execute(func() error { return c.fetch(ctx) })
}

// Watch refreshes every interval until ctx is done. Failures are logged by
// Refresh and never stop the loop.
func (c *Catalog) Watch(ctx context.Context, interval time.Duration) error {
	if c.url == "" || interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.Refresh(ctx); errors.Is(err, resilience.ErrCircuitOpen) {
				c.logger.Debug("Song catalog refresh skipped", zap.Error(err))
			}
		}
	}
}

func (c *Catalog) fetch(ctx context.Context) error {
	var fetched []Song
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&fetched).
		Get(c.url)
	if err != nil {
		c.logger.Warn("Song catalog fetch failed", zap.String("url", c.url), zap.Error(err))
		return fmt.Errorf("songs: fetch %s: %w", c.url, err)
	}
	if resp.IsError() {
		c.logger.Warn("Song catalog returned error status", zap.String("url", c.url), zap.Int("status", resp.StatusCode()))
		return fmt.Errorf("songs: fetch %s: status %d", c.url, resp.StatusCode())
	}

	valid := fetched[:0]
	for _, s := range fetched {
		if s.ID != "" && s.Title != "" {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return ErrEmptyCatalog
	}

	c.mu.Lock()
	c.songs = valid
	c.mu.Unlock()

	c.logger.Info("Song catalog refreshed", zap.Int("songs", len(valid)))
	return nil
}
