// Package session owns one editing session over a board: the authoritative Board, the
// transient UI state, the committed filter criteria and the active drag. Every intent is
// applied under one mutex and persisted write-through before it returns.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"kanban-cli/internal/debounce"
	"kanban-cli/internal/drag"
	"kanban-cli/internal/filter"
	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/store"
	"kanban-cli/internal/viewsync"
)

// Backend loads and persists the board. *store.Gateway implements it.
type Backend interface {
	Load() model.Board
	Save(model.Board) error
	AppendEvent(typ, entityID string, payload any)
}

type Options struct {
	// Debounce is the text-filter quiet period. Zero means debounce.DefaultDelay.
	Debounce               time.Duration
	LockCardsWhileFiltered bool
	// OnChange runs, without the session lock held, after state changes that happen off the
	// caller's goroutine (a debounced text filter committing).
	OnChange func()
	Logger   *zap.Logger
	// NewID mints entity ids. Defaults to store.NewID.
	NewID mutate.IDFunc
}

// ErrFilteredCommit is returned when a view tries to write back a card order while a filter
// hides part of the board.
var ErrFilteredCommit = errors.New("card order commit refused while a filter is active")

type Session struct {
	backend   Backend
	log       *zap.Logger
	newID     mutate.IDFunc
	onChange  func()
	lockCards bool

	mu       sync.Mutex
	board    model.Board
	ui       viewsync.UIState
	criteria filter.Criteria
	drag     *drag.Engine
	text     *debounce.Debouncer
}

// Open loads the board from backend and starts a session over it.
func Open(backend Backend, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	newID := opts.NewID
	if newID == nil {
		newID = store.NewID
	}
	s := &Session{
		backend:   backend,
		log:       log,
		newID:     newID,
		onChange:  opts.OnChange,
		lockCards: opts.LockCardsWhileFiltered,
		board:     backend.Load(),
		drag:      drag.New(drag.Options{LockCardsWhileFiltered: opts.LockCardsWhileFiltered}),
	}
	s.text = debounce.New(opts.Debounce, s.commitText)
	return s
}

// Close cancels a pending text filter and drops any drag. The board was already persisted by
// the last successful intent, so nothing is saved here.
func (s *Session) Close() {
	s.text.Close()
	s.mu.Lock()
	s.drag.Abort()
	s.mu.Unlock()
}

// Board returns a deep copy of the authoritative board.
func (s *Session) Board() model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

// UI returns the transient selection state.
func (s *Session) UI() viewsync.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui
}

// Criteria returns the committed filter criteria.
func (s *Session) Criteria() filter.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// Snapshot derives the render-ready view. During a drag the transient order is rendered.
func (s *Session) Snapshot() viewsync.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := &s.board
	if s.drag.State() == drag.Dragging {
		projected := s.drag.Project(&s.board)
		b = &projected
	}
	snap := viewsync.Read(b, s.ui, s.criteria)
	snap.CardDragEnabled = !(snap.FilterActive && s.lockCards)
	if kind, id := s.drag.Subject(); kind != 0 {
		snap.DragKind = kind.String()
		snap.DragID = id
	}
	return snap
}

// persistLocked saves the board and records an event. The mutation stays applied in memory
// when the write fails.
func (s *Session) persistLocked(typ, entityID string, payload any) error {
	if err := s.backend.Save(s.board); err != nil {
		s.log.Error("persist board", zap.String("event", typ), zap.Error(err))
		return fmt.Errorf("%s: %w", typ, err)
	}
	s.backend.AppendEvent(typ, entityID, payload)
	return nil
}

func (s *Session) ignored(intent string, err error) {
	s.log.Debug("intent ignored", zap.String("intent", intent), zap.Error(err))
}

// abortDragLocked drops an in-flight drag whose snapshot no longer matches the board.
func (s *Session) abortDragLocked(reason string) {
	if s.drag.State() != drag.Dragging {
		return
	}
	kind, id := s.drag.Subject()
	s.drag.Abort()
	s.log.Debug("drag aborted", zap.String("reason", reason), zap.Stringer("kind", kind), zap.String("id", id))
}
