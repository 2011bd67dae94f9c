// Package session holds the state of one user's visit: which view is shown,
// whether a request is in flight, the last error, and the current batch.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/dashboard"
	"github.com/jonathan/career-compass/internal/logging"
	"github.com/jonathan/career-compass/internal/recommend"
	"github.com/jonathan/career-compass/internal/types"
	"github.com/jonathan/career-compass/internal/wizard"
)

// View is the screen currently shown.
type View string

// Views
const (
	ViewHero    View = "hero"
	ViewWizard  View = "wizard"
	ViewResults View = "results"
)

var (
	// ErrWrongView is returned when an action is not available on the current view.
	ErrWrongView = errors.New("action not available on the current view")
	// ErrStale is returned by Submit when the session moved on before the reply arrived.
	ErrStale = errors.New("result discarded: session changed while the request was in flight")
)

// Submitter sends a profile for recommendations. *recommend.Requester implements it.
type Submitter interface {
	Submit(ctx context.Context, profile types.UserProfile) (*recommend.Result, error)
}

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	View         View               `json:"view"`
	Step         wizard.Step        `json:"step,omitempty"`
	Profile      types.UserProfile  `json:"profile"`
	Loading      bool               `json:"loading"`
	Error        string             `json:"error,omitempty"`
	Paths        []types.CareerPath `json:"paths"`
	ActiveSector types.Sector       `json:"activeSector,omitempty"`
	BatchID      string             `json:"batchId,omitempty"`
}

// Session is safe for concurrent use. Submit releases the lock while the
// request is in flight, so the session can be read or navigated meanwhile.
type Session struct {
	mu        sync.Mutex
	submitter Submitter
	logger    *zap.Logger

	view       View
	wizard     *wizard.Wizard
	loading    bool
	errMsg     string
	paths      []types.CareerPath
	rawText    string
	batchID    string
	sector     types.Sector
	generation uint64
}

// New returns a session on the hero view.
func New(submitter Submitter, logger *zap.Logger) *Session {
	return &Session{
		submitter: submitter,
		logger:    logging.OrNop(logger),
		view:      ViewHero,
		wizard:    wizard.New(),
		paths:     []types.CareerPath{},
	}
}

// Start opens a fresh questionnaire and clears any error. Like Reset, it
// abandons a request still in flight.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view = ViewWizard
	s.wizard = wizard.New()
	s.loading = false
	s.errMsg = ""
	s.generation++
}

// Reset returns to the hero view and drops the current batch. A request still
// in flight will have its result discarded.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view = ViewHero
	s.wizard = wizard.New()
	s.loading = false
	s.errMsg = ""
	s.paths = []types.CareerPath{}
	s.rawText = ""
	s.batchID = ""
	s.sector = ""
	s.generation++
}

// DismissError clears the error message.
func (s *Session) DismissError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
}

// Edit runs fn against the questionnaire while holding the session lock.
func (s *Session) Edit(fn func(w *wizard.Wizard) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewWizard {
		return ErrWrongView
	}
	return fn(s.wizard)
}

// SelectSector switches the results tab.
func (s *Session) SelectSector(sector types.Sector) error {
	if !sector.IsValid() {
		return fmt.Errorf("unknown sector %q", sector)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewResults {
		return ErrWrongView
	}
	s.sector = sector
	return nil
}

// Submit emits the questionnaire's profile and waits for recommendations.
//
// On success the session moves to the results view with the default sector
// selected. On failure it stays on the questionnaire with an empty batch and
// the generic user message; the error is returned for logging. If Reset or
// Start ran while the request was in flight, the result is dropped and ErrStale returned.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.view != ViewWizard {
		s.mu.Unlock()
		return ErrWrongView
	}
	profile, err := s.wizard.Submit()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.generation++
	gen := s.generation
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	result, err := s.submitter.Submit(ctx, profile)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("discarding stale recommendation result", zap.Uint64("generation", gen))
		return ErrStale
	}
	s.loading = false

	if err != nil {
		s.logger.Warn("submission failed",
			zap.String("kind", string(recommend.KindOf(err))),
			zap.Error(err),
		)
		s.errMsg = recommend.UserMessage
		s.paths = []types.CareerPath{}
		s.rawText = ""
		s.batchID = ""
		s.wizard.Reopen()
		return err
	}

	s.paths = result.Paths
	if s.paths == nil {
		s.paths = []types.CareerPath{}
	}
	s.rawText = result.RawText
	s.batchID = result.BatchID
	s.sector = dashboard.DefaultSector(s.paths)
	s.view = ViewResults
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		View:         s.view,
		Profile:      s.wizard.Profile(),
		Loading:      s.loading,
		Error:        s.errMsg,
		Paths:        append([]types.CareerPath{}, s.paths...),
		ActiveSector: s.sector,
		BatchID:      s.batchID,
	}
	if s.view == ViewWizard {
		snap.Step = s.wizard.Step()
	}
	return snap
}

// RawText returns the unmodified reply of the current batch.
func (s *Session) RawText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rawText
}

// Dashboard groups the current batch for the active sector.
func (s *Session) Dashboard() (dashboard.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewResults {
		return dashboard.Dashboard{}, ErrWrongView
	}
	return dashboard.Build(s.paths, s.sector)
}
