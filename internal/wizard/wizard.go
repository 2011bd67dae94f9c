// Package wizard implements the three-step questionnaire that collects a UserProfile.
//
// Step graph:
//
//	Basics ──Next──► Interests ──Next──► Location ──Submit──► Submitted
//	  ◄──Back──────────  ◄──Back────────────
//
// Submitted is terminal until Reopen. Next on Location and Back on Basics are no-ops.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/career-compass/internal/types"
)

// Step identifies the questionnaire page currently shown.
type Step int

const (
	// StepBasics collects education level, stream and subjects.
	StepBasics Step = iota + 1
	// StepInterests collects target domains and the sector preference.
	StepInterests
	// StepLocation collects location scope, state and salary expectation.
	StepLocation
	// StepSubmitted is terminal; the profile has been handed to the caller.
	StepSubmitted
)

// StepCount is the number of interactive steps.
const StepCount = 3

var (
	// ErrSubmitted is returned for any change after Submit succeeded.
	ErrSubmitted = errors.New("wizard already submitted")
	// ErrNotFinalStep is returned when Submit is called before the last step.
	ErrNotFinalStep = errors.New("profile can only be submitted from the last step")
)

// WrongStepError is returned when a field is edited on a step that does not own it.
type WrongStepError struct {
	Field   string
	Current Step
	Owner   Step
}

func (e *WrongStepError) Error() string {
	return fmt.Sprintf("%s can only be changed on step %d (currently on step %d)", e.Field, e.Owner, e.Current)
}

var nextStep = map[Step]Step{
	StepBasics:    StepInterests,
	StepInterests: StepLocation,
}

var prevStep = map[Step]Step{
	StepInterests: StepBasics,
	StepLocation:  StepInterests,
}

func (s Step) String() string {
	switch s {
	case StepBasics:
		return "education"
	case StepInterests:
		return "interests"
	case StepLocation:
		return "location & salary"
	case StepSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Wizard accumulates a profile across the three steps. It is not safe for concurrent use.
type Wizard struct {
	step    Step
	profile types.UserProfile
}

// New returns a wizard on the first step holding the default profile.
func New() *Wizard {
	return &Wizard{step: StepBasics, profile: types.DefaultProfile()}
}

// Step returns the current step.
func (w *Wizard) Step() Step { return w.step }

// Profile returns a copy of the profile accumulated so far.
func (w *Wizard) Profile() types.UserProfile { return w.profile.Clone() }

// Next advances one step. It reports whether the step changed.
func (w *Wizard) Next() bool {
	to, ok := nextStep[w.step]
	if !ok {
		return false
	}
	w.step = to
	return true
}

// Back returns to the previous step. It reports whether the step changed.
func (w *Wizard) Back() bool {
	to, ok := prevStep[w.step]
	if !ok {
		return false
	}
	w.step = to
	return true
}

// Submit validates and emits the accumulated profile, moving to StepSubmitted.
// On a validation error the wizard stays on the last step.
func (w *Wizard) Submit() (types.UserProfile, error) {
	switch w.step {
	case StepSubmitted:
		return types.UserProfile{}, ErrSubmitted
	case StepLocation:
	default:
		return types.UserProfile{}, ErrNotFinalStep
	}

	profile := w.profile.Clone()
	if err := profile.Validate(); err != nil {
		return types.UserProfile{}, fmt.Errorf("incomplete profile: %w", err)
	}
	w.step = StepSubmitted
	return profile, nil
}

// Reopen returns a submitted wizard to the last step with its answers intact,
// so a request that failed can be resubmitted. It reports whether the step changed.
func (w *Wizard) Reopen() bool {
	if w.step != StepSubmitted {
		return false
	}
	w.step = StepLocation
	return true
}

// SetLevel sets the education level (step 1).
func (w *Wizard) SetLevel(level types.EducationLevel) error {
	if err := w.editable("level", StepBasics); err != nil {
		return err
	}
	if !level.IsValid() {
		return fmt.Errorf("unknown education level %q", level)
	}
	w.profile.Level = level
	return nil
}

// SetStream sets the academic stream (step 1).
func (w *Wizard) SetStream(stream types.Stream) error {
	if err := w.editable("stream", StepBasics); err != nil {
		return err
	}
	if !stream.IsValid() {
		return fmt.Errorf("unknown stream %q", stream)
	}
	w.profile.Stream = stream
	return nil
}

// SetSubjects sets the optional free-text subjects (step 1).
func (w *Wizard) SetSubjects(subjects string) error {
	if err := w.editable("subjects", StepBasics); err != nil {
		return err
	}
	w.profile.Subjects = strings.TrimSpace(subjects)
	return nil
}

// ToggleDomain adds the tag when absent and removes it when present (step 2).
// It returns whether the tag is selected afterwards.
func (w *Wizard) ToggleDomain(domain string) (bool, error) {
	if err := w.editable("target domains", StepInterests); err != nil {
		return false, err
	}
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return false, fmt.Errorf("domain tag is empty")
	}

	for i, d := range w.profile.TargetDomains {
		if d == domain {
			w.profile.TargetDomains = append(w.profile.TargetDomains[:i:i], w.profile.TargetDomains[i+1:]...)
			return false, nil
		}
	}
	w.profile.TargetDomains = append(w.profile.TargetDomains, domain)
	return true, nil
}

// SetPreference sets the sector preference (step 2).
func (w *Wizard) SetPreference(pref types.SectorPreference) error {
	if err := w.editable("preference", StepInterests); err != nil {
		return err
	}
	if !pref.IsValid() {
		return fmt.Errorf("unknown sector preference %q", pref)
	}
	w.profile.Preference = pref
	return nil
}

// SetLocation sets the scope and, for State Specific, the state name (step 3).
// The state is kept when switching back to All India so it survives toggling.
func (w *Wizard) SetLocation(scope types.LocationScope, state string) error {
	if err := w.editable("location", StepLocation); err != nil {
		return err
	}
	if !scope.IsValid() {
		return fmt.Errorf("unknown location scope %q", scope)
	}
	w.profile.LocationScope = scope
	if scope == types.ScopeStateSpecific {
		w.profile.TargetState = strings.TrimSpace(state)
	}
	return nil
}

// SetSalary sets the salary expectation bracket (step 3).
func (w *Wizard) SetSalary(bracket types.SalaryBracket) error {
	if err := w.editable("salary expectation", StepLocation); err != nil {
		return err
	}
	if !bracket.IsValid() {
		return fmt.Errorf("unknown salary bracket %q", bracket)
	}
	w.profile.SalaryExpectation = bracket
	return nil
}

func (w *Wizard) editable(field string, owner Step) error {
	if w.step == StepSubmitted {
		return ErrSubmitted
	}
	if w.step != owner {
		return &WrongStepError{Field: field, Current: w.step, Owner: owner}
	}
	return nil
}
