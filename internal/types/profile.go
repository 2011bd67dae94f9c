// Package types provides type definitions for the structured data exchanged between the
// questionnaire, the recommendation requester and the dashboard.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// EducationLevel is the highest education level the user has completed.
type EducationLevel string

// Education levels offered by the questionnaire
const (
	LevelClass10      EducationLevel = "10th Pass"
	LevelClass12      EducationLevel = "12th Pass"
	LevelGraduate     EducationLevel = "Graduate"
	LevelPostGraduate EducationLevel = "Post Graduate"
)

// Stream is the user's academic stream or background.
type Stream string

// Streams offered by the questionnaire
const (
	StreamSciencePCM Stream = "Science (PCM)"
	StreamSciencePCB Stream = "Science (PCB)"
	StreamCommerce   Stream = "Commerce"
	StreamArts       Stream = "Arts/Humanities"
	StreamVocational Stream = "Vocational"
	StreamOther      Stream = "Other"
)

// SectorPreference restricts which sectors the recommendations may come from.
type SectorPreference string

// Sector preferences offered by the questionnaire
const (
	PreferenceGovernment SectorPreference = "Government Only"
	PreferencePrivate    SectorPreference = "Private Only"
	PreferenceBoth       SectorPreference = "Both Government & Private"
)

// LocationScope is either nationwide or a single named state.
type LocationScope string

// Location scopes offered by the questionnaire
const (
	ScopeAllIndia      LocationScope = "All India"
	ScopeStateSpecific LocationScope = "State Specific"
)

// SalaryBracket is one of the fixed expected-salary labels.
type SalaryBracket string

// Salary brackets offered by the questionnaire
const (
	SalaryEntry    SalaryBracket = "Start (< 3 LPA)"
	SalaryStandard SalaryBracket = "3-6 LPA"
	SalaryGood     SalaryBracket = "6-10 LPA"
	SalaryHigh     SalaryBracket = "10-15 LPA"
	SalaryVeryHigh SalaryBracket = "15+ LPA"
)

// UserProfile is the questionnaire result sent to the recommendation requester.
// A submitted profile is treated as immutable.
type UserProfile struct {
	Level             EducationLevel   `json:"level" validate:"enum"`
	Stream            Stream           `json:"stream" validate:"enum"`
	Subjects          string           `json:"subjects,omitempty"`
	TargetDomains     []string         `json:"targetDomains" validate:"unique,dive,required"`
	Preference        SectorPreference `json:"preference" validate:"enum"`
	LocationScope     LocationScope    `json:"locationScope" validate:"enum"`
	TargetState       string           `json:"targetState,omitempty"`
	SalaryExpectation SalaryBracket    `json:"salaryExpectation" validate:"enum"`
}

// DefaultProfile returns the profile the questionnaire starts from. Every field has a
// value, so submitting it untouched is valid.
func DefaultProfile() UserProfile {
	return UserProfile{
		Level:             LevelClass12,
		Stream:            StreamSciencePCM,
		TargetDomains:     []string{},
		Preference:        PreferenceBoth,
		LocationScope:     ScopeAllIndia,
		SalaryExpectation: SalaryStandard,
	}
}

// Validate checks enumeration membership and the state requirement.
func (p *UserProfile) Validate() error {
	return validate.Struct(p)
}

// IsStateSpecific reports whether recommendations should focus on TargetState.
func (p *UserProfile) IsStateSpecific() bool {
	return p.LocationScope == ScopeStateSpecific
}

// HasDomain reports whether the domain tag is selected.
func (p *UserProfile) HasDomain(domain string) bool {
	for _, d := range p.TargetDomains {
		if d == domain {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand out profiles without sharing the slice.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.TargetDomains = append([]string{}, p.TargetDomains...)
	return out
}

// IsValid reports whether l is a known education level.
func (l EducationLevel) IsValid() bool {
	switch l {
	case LevelClass10, LevelClass12, LevelGraduate, LevelPostGraduate:
		return true
	}
	return false
}

// IsValid reports whether s is a known stream.
func (s Stream) IsValid() bool {
	switch s {
	case StreamSciencePCM, StreamSciencePCB, StreamCommerce, StreamArts, StreamVocational, StreamOther:
		return true
	}
	return false
}

// IsValid reports whether p is a known sector preference.
func (p SectorPreference) IsValid() bool {
	switch p {
	case PreferenceGovernment, PreferencePrivate, PreferenceBoth:
		return true
	}
	return false
}

// IsValid reports whether s is a known location scope.
func (s LocationScope) IsValid() bool {
	return s == ScopeAllIndia || s == ScopeStateSpecific
}

// IsValid reports whether b is one of the fixed salary brackets.
func (b SalaryBracket) IsValid() bool {
	switch b {
	case SalaryEntry, SalaryStandard, SalaryGood, SalaryHigh, SalaryVeryHigh:
		return true
	}
	return false
}

// ParseSectorPreference accepts the canonical labels plus the short "Both" alias.
func ParseSectorPreference(s string) (SectorPreference, bool) {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, "both") {
		return PreferenceBoth, true
	}
	for _, p := range SectorPreferences() {
		if strings.EqualFold(trimmed, string(p)) {
			return p, true
		}
	}
	return "", false
}

// UnmarshalText accepts the same spellings as ParseSectorPreference. Unknown
// values are kept verbatim so Validate can report them.
func (p *SectorPreference) UnmarshalText(text []byte) error {
	if parsed, ok := ParseSectorPreference(string(text)); ok {
		*p = parsed
		return nil
	}
	*p = SectorPreference(text)
	return nil
}
