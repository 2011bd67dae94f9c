package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/career-compass/internal/types"
	"github.com/jonathan/career-compass/internal/wizard"
)

// matchOption resolves input to one of options, by 1-based number or by
// case-insensitive label.
func matchOption[T ~string](input string, options []T) (T, bool) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], true
	}
	for _, o := range options {
		if strings.EqualFold(input, string(o)) {
			return o, true
		}
	}
	var zero T
	return zero, false
}

func parseOption[T ~string](what, input string, options []T) (T, error) {
	if o, ok := matchOption(input, options); ok {
		return o, nil
	}
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = fmt.Sprintf("%q", o)
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q (choose one of %s)", what, input, strings.Join(labels, ", "))
}

func parsePreference(input string) (types.SectorPreference, error) {
	if p, ok := types.ParseSectorPreference(input); ok {
		return p, nil
	}
	return parseOption("sector preference", input, types.SectorPreferences())
}

// profileFlags holds profile answers given on the command line. Empty fields
// keep the questionnaire defaults.
type profileFlags struct {
	level      string
	stream     string
	subjects   string
	domains    []string
	preference string
	location   string
	state      string
	salary     string
}

// apply walks the questionnaire from the first step to the last, answering
// each step from the flags.
func (f profileFlags) apply(w *wizard.Wizard) error {
	if f.level != "" {
		level, err := parseOption("education level", f.level, types.EducationLevels())
		if err != nil {
			return err
		}
		if err := w.SetLevel(level); err != nil {
			return err
		}
	}
	if f.stream != "" {
		stream, err := parseOption("stream", f.stream, types.Streams())
		if err != nil {
			return err
		}
		if err := w.SetStream(stream); err != nil {
			return err
		}
	}
	if err := w.SetSubjects(f.subjects); err != nil {
		return err
	}
	w.Next()

	for _, domain := range f.domains {
		selected, err := w.ToggleDomain(domain)
		if err != nil {
			return err
		}
		if !selected {
			// A repeated flag toggles the tag back off; select it again.
			if _, err := w.ToggleDomain(domain); err != nil {
				return err
			}
		}
	}
	if f.preference != "" {
		pref, err := parsePreference(f.preference)
		if err != nil {
			return err
		}
		if err := w.SetPreference(pref); err != nil {
			return err
		}
	}
	w.Next()

	scope := types.ScopeAllIndia
	switch {
	case f.location != "":
		parsed, err := parseOption("location scope", f.location, types.LocationScopes())
		if err != nil {
			return err
		}
		scope = parsed
	case f.state != "":
		scope = types.ScopeStateSpecific
	}
	if err := w.SetLocation(scope, f.state); err != nil {
		return err
	}
	if f.salary != "" {
		salary, err := parseOption("salary bracket", f.salary, types.SalaryBrackets())
		if err != nil {
			return err
		}
		if err := w.SetSalary(salary); err != nil {
			return err
		}
	}
	return nil
}
