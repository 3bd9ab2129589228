package models

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
)

// ErrOverlayClosed is returned by overlay operations when no overlay is open.
var ErrOverlayClosed = errors.New("filter overlay is not open")

// SearchSession is the parent view of one user's listing search. It owns the
// applied selection and, while the user edits filters, the open overlay.
// All methods are safe for concurrent use; a session handles one operation at a time.
type SearchSession struct {
	ID string

	lastSeen atomic.Int64 // unix nanos of the last store lookup

	mu        sync.Mutex
	selection *FilterSelection
	pending   *FilterSelection // built up by an Apply, committed on close
	overlay   *FilterOverlay
	renderer  func(FilterDraft) string
	view      string
}

// NewSearchSession returns a session with an empty selection.
func NewSearchSession(id string) *SearchSession {
	return &SearchSession{ID: id, selection: &FilterSelection{}}
}

// SetRenderer installs the function used to redraw the overlay after each
// change. The result is available from View.
func (s *SearchSession) SetRenderer(fn func(FilterDraft) string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer = fn
}

// Selection returns a copy of the applied selection.
func (s *SearchSession) Selection() FilterSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Clone()
}

// SetSelection replaces the applied selection. An open overlay resyncs to it.
func (s *SearchSession) SetSelection(sel FilterSelection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := sel.Clone()
	s.selection = &next
	if s.overlay != nil {
		s.overlay.Observe(s.selection)
	}
}

// OpenFilters mounts the filter overlay over the applied selection. If the
// overlay is already open it is handed the current selection again.
func (s *SearchSession) OpenFilters() FilterDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay == nil {
		s.overlay = NewFilterOverlay(s.selection, OverlayCallbacks{
			OnFilterChange: s.onFilterChange,
			OnClose:        s.onClose,
			OnRender:       s.onRender,
		})
		logger.Debug("Filter overlay opened", "session", s.ID)
	} else {
		s.overlay.Observe(s.selection)
	}
	return s.overlay.Draft()
}

// FiltersOpen reports whether the overlay is mounted.
func (s *SearchSession) FiltersOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay != nil
}

// Draft returns the open overlay's draft.
func (s *SearchSession) Draft() (FilterDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay == nil {
		return FilterDraft{}, ErrOverlayClosed
	}
	return s.overlay.Draft(), nil
}

// View returns the last overlay rendering, or "" when the overlay is closed.
func (s *SearchSession) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay == nil {
		return ""
	}
	return s.view
}

// Edit runs fn against the open overlay and returns the resulting draft.
func (s *SearchSession) Edit(fn func(o *FilterOverlay) error) (FilterDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay == nil {
		return FilterDraft{}, ErrOverlayClosed
	}
	err := fn(s.overlay)
	if s.overlay == nil {
		// fn applied or cancelled
		return FilterDraft{}, ErrOverlayClosed
	}
	return s.overlay.Draft(), err
}

// ApplyFilters commits the draft through the overlay's Apply and returns the
// new applied selection.
func (s *SearchSession) ApplyFilters() (FilterSelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay == nil {
		return FilterSelection{}, ErrOverlayClosed
	}
	s.overlay.Apply()
	return s.selection.Clone(), nil
}

// CancelFilters closes the overlay, leaving the applied selection untouched.
func (s *SearchSession) CancelFilters() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay == nil {
		return ErrOverlayClosed
	}
	s.overlay.Cancel()
	return nil
}

// The callbacks below run inside overlay methods, with s.mu already held.

func (s *SearchSession) onFilterChange(field string, value any) {
	if s.pending == nil {
		next := s.selection.Clone()
		s.pending = &next
	}
	next, err := s.pending.With(field, value)
	if err != nil {
		logger.LogErr(err, "dropping filter change", "session", s.ID, "field", field)
		return
	}
	*s.pending = next
}

func (s *SearchSession) onClose() {
	if s.pending != nil {
		s.selection = s.pending
		s.pending = nil
		logger.Debug("Filters applied", "session", s.ID)
	}
	s.overlay = nil
	s.view = ""
}

func (s *SearchSession) onRender(d FilterDraft) {
	if s.renderer != nil {
		s.view = s.renderer(d)
	}
}

// SessionStore keeps search sessions by id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*SearchSession
	now      func() time.Time
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*SearchSession), now: time.Now}
}

// Sessions is the process-wide store used by the web handlers.
var Sessions = NewSessionStore()

// Get returns the session for id, creating it on first use.
// An empty id gets a freshly generated one.
func (st *SessionStore) Get(id string) *SearchSession {
	if id == "" {
		id = uuid.New().String()
	}

	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		st.mu.Lock()
		if sess, ok = st.sessions[id]; !ok {
			sess = NewSearchSession(id)
			st.sessions[id] = sess
		}
		st.mu.Unlock()
	}
	sess.lastSeen.Store(st.now().UnixNano())
	return sess
}

// Remove drops the session for id.
func (st *SessionStore) Remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions not looked up for longer than idle and returns how many went.
func (st *SessionStore) Sweep(idle time.Duration) int {
	cutoff := st.now().Add(-idle).UnixNano()

	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, sess := range st.sessions {
		if sess.lastSeen.Load() < cutoff {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// StartSweeper sweeps idle sessions every interval until ctx is done.
// A non-positive idle disables it.
func (st *SessionStore) StartSweeper(ctx context.Context, idle, interval time.Duration) {
	if idle <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := st.Sweep(idle); n > 0 {
					logger.Debug("Swept idle search sessions", "count", n, "remaining", st.Len())
				}
			}
		}
	}()
}
