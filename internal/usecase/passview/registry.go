package passview

import (
	"log/slog"
	"sync"
	"time"

	"loyalty-console/internal/pkg/clock"
	"loyalty-console/internal/pkg/config"
	"loyalty-console/internal/usecase"

	"github.com/google/uuid"
)

// MaxScreensPerSession bounds the open pass screens (tabs) of one session.
// Mounting past it evicts the least recently used screen.
const MaxScreensPerSession = 8

// Registry holds the pass screens of every browser session. Each rendered
// pass page is its own screen, addressed by the id it was mounted with.
type Registry struct {
	api         usecase.PassAPI
	logger      *slog.Logger
	clock       clock.Clock
	idleTimeout time.Duration
	newID       func() string

	mu       sync.Mutex
	sessions map[string]map[string]*screen
}

type screen struct {
	vm       *ViewModel
	lastSeen time.Time
}

func NewRegistry(api usecase.PassAPI, logger *slog.Logger, clk clock.Clock, cfg config.SessionConfig) *Registry {
	return &Registry{
		api:         api,
		logger:      logger,
		clock:       clk,
		idleTimeout: cfg.IdleTimeout,
		newID:       uuid.NewString,
		sessions:    make(map[string]map[string]*screen),
	}
}

// Mount creates a new screen for the session and returns its id.
func (r *Registry) Mount(sessionID string) (string, *ViewModel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	r.sweepLocked(now)

	screens, ok := r.sessions[sessionID]
	if !ok {
		screens = make(map[string]*screen)
		r.sessions[sessionID] = screens
	}
	if len(screens) >= MaxScreensPerSession {
		evictOldest(screens)
	}

	screenID := r.newID()
	screens[screenID] = &screen{
		vm:       New(r.api, r.logger.With("session_id", sessionID, "screen_id", screenID)),
		lastSeen: now,
	}
	return screenID, screens[screenID].vm
}

// Lookup returns a mounted screen of the session.
func (r *Registry) Lookup(sessionID, screenID string) (*ViewModel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	r.sweepLocked(now)

	s, ok := r.sessions[sessionID][screenID]
	if !ok {
		return nil, false
	}
	s.lastSeen = now
	return s.vm, true
}

// Release drops one screen, e.g. when its page navigates away.
func (r *Registry) Release(sessionID, screenID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	screens, ok := r.sessions[sessionID]
	if !ok {
		return
	}
	delete(screens, screenID)
	if len(screens) == 0 {
		delete(r.sessions, sessionID)
	}
}

// Discard drops every screen of the session, e.g. on logout.
func (r *Registry) Discard(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// Len counts the mounted screens across sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, screens := range r.sessions {
		n += len(screens)
	}
	return n
}

func (r *Registry) sweepLocked(now time.Time) {
	if r.idleTimeout <= 0 {
		return
	}
	for sessionID, screens := range r.sessions {
		for id, s := range screens {
			if now.Sub(s.lastSeen) > r.idleTimeout {
				delete(screens, id)
			}
		}
		if len(screens) == 0 {
			delete(r.sessions, sessionID)
		}
	}
}

func evictOldest(screens map[string]*screen) {
	var oldestID string
	var oldest time.Time
	for id, s := range screens {
		if oldestID == "" || s.lastSeen.Before(oldest) {
			oldestID, oldest = id, s.lastSeen
		}
	}
	delete(screens, oldestID)
}
