package recording

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store owns the recordings list. It is the only writer of the list and
// flushes the full list to its Persistence after every mutation.
type Store struct {
	*Config

	mu sync.Mutex

	port Persistence

	recordings []Recording
}

type Config struct {
	now func() time.Time
	id  func() string

	logger *slog.Logger
}

type Option func(*Config)

func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.now = now
	}
}

func WithIDGenerator(id func() string) Option {
	return func(c *Config) {
		c.id = id
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.logger = logger
	}
}

func New(port Persistence, options ...Option) *Store {
	cfg := &Config{
		now: time.Now,
		id:  uuid.NewString,

		logger: slog.Default(),
	}

	for _, option := range options {
		option(cfg)
	}

	if port == nil {
		port = NewMemory()
	}

	return &Store{
		Config: cfg,

		port: port,

		recordings: []Recording{},
	}
}

// Load replaces the in-memory list with the persisted one. Missing or
// malformed state leaves the store empty; errors are logged, never returned.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recordings = []Recording{}

	data, err := s.port.Read(ctx)

	if err != nil {
		s.logger.ErrorContext(ctx, "error loading recordings", "error", err)
		return
	}

	if len(data) == 0 {
		return
	}

	var recordings []Recording

	if err := json.Unmarshal(data, &recordings); err != nil {
		s.logger.ErrorContext(ctx, "error parsing recordings", "error", err)
		return
	}

	if recordings == nil {
		return
	}

	s.recordings = recordings
}

func (s *Store) Add(ctx context.Context, entry Entry) Recording {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := Recording{
		ID: s.id(),

		Text:     entry.Text,
		AudioURL: entry.AudioURL,

		LatencyMs: entry.LatencyMs,

		IsRead: false,

		CreatedAt: s.now().UTC(),
	}

	s.recordings = append([]Recording{r}, s.recordings...)
	s.flush(ctx)

	return r
}

func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recordings = slices.DeleteFunc(s.recordings, func(r Recording) bool {
		return r.ID == id
	})

	s.flush(ctx)
}

func (s *Store) MarkRead(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recordings {
		if s.recordings[i].ID == id {
			s.recordings[i].IsRead = true
		}
	}

	s.flush(ctx)
}

func (s *Store) MarkAllRead(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recordings {
		s.recordings[i].IsRead = true
	}

	s.flush(ctx)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recordings = []Recording{}
	s.flush(ctx)
}

func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0

	for _, r := range s.recordings {
		if !r.IsRead {
			count++
		}
	}

	return count
}

// List returns a copy of the recordings, newest first.
func (s *Store) List() []Recording {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.recordings)
}

func (s *Store) Get(id string) (Recording, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.recordings {
		if r.ID == id {
			return r, true
		}
	}

	return Recording{}, false
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.recordings)
}

// flush must be called with s.mu held.
func (s *Store) flush(ctx context.Context) {
	data, err := json.Marshal(s.recordings)

	if err != nil {
		s.logger.ErrorContext(ctx, "error encoding recordings", "error", err)
		return
	}

	if err := s.port.Write(ctx, data); err != nil {
		s.logger.ErrorContext(ctx, "error saving recordings", "error", err)
	}
}
