//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile_IsValid(t *testing.T) {
	profile := DefaultProfile()

	require.NoError(t, profile.Validate())
	assert.Equal(t, LevelClass12, profile.Level)
	assert.Equal(t, StreamSciencePCM, profile.Stream)
	assert.Equal(t, PreferenceBoth, profile.Preference)
	assert.Equal(t, ScopeAllIndia, profile.LocationScope)
	assert.Equal(t, SalaryStandard, profile.SalaryExpectation)
	assert.Empty(t, profile.TargetDomains)
}

func TestUserProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *UserProfile)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(_ *UserProfile) {},
		},
		{
			name: "state specific with state",
			mutate: func(p *UserProfile) {
				p.LocationScope = ScopeStateSpecific
				p.TargetState = "Bihar"
			},
		},
		{
			name: "state specific without state",
			mutate: func(p *UserProfile) {
				p.LocationScope = ScopeStateSpecific
				p.TargetState = "   "
			},
			wantErr: "TargetState",
		},
		{
			name:    "unknown level",
			mutate:  func(p *UserProfile) { p.Level = "PhD" },
			wantErr: "Level",
		},
		{
			name:    "unknown stream",
			mutate:  func(p *UserProfile) { p.Stream = "Science-PCM" },
			wantErr: "Stream",
		},
		{
			name:    "unknown preference",
			mutate:  func(p *UserProfile) { p.Preference = "Either" },
			wantErr: "Preference",
		},
		{
			name:    "unknown salary bracket",
			mutate:  func(p *UserProfile) { p.SalaryExpectation = "100 LPA" },
			wantErr: "SalaryExpectation",
		},
		{
			name:    "duplicate domains",
			mutate:  func(p *UserProfile) { p.TargetDomains = []string{"Law", "Law"} },
			wantErr: "TargetDomains",
		},
		{
			name:    "empty domain tag",
			mutate:  func(p *UserProfile) { p.TargetDomains = []string{""} },
			wantErr: "TargetDomains",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := DefaultProfile()
			tt.mutate(&profile)

			err := profile.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, strings.Join(FieldErrors(err), ";"), tt.wantErr)
		})
	}
}

func TestUserProfile_JSONKeys(t *testing.T) {
	profile := DefaultProfile()
	profile.TargetDomains = []string{"Banking/Finance"}

	data, err := json.Marshal(profile)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"level", "stream", "targetDomains", "preference", "locationScope", "salaryExpectation"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, raw, "targetState", "empty state should be omitted")
}

func TestUserProfile_Clone(t *testing.T) {
	profile := DefaultProfile()
	profile.TargetDomains = []string{"Law"}

	clone := profile.Clone()
	clone.TargetDomains[0] = "Medical"

	assert.Equal(t, "Law", profile.TargetDomains[0])
	assert.True(t, profile.HasDomain("Law"))
	assert.False(t, profile.HasDomain("Medical"))
}

func TestParseSectorPreference(t *testing.T) {
	tests := []struct {
		input string
		want  SectorPreference
		ok    bool
	}{
		{"Both", PreferenceBoth, true},
		{"both government & private", PreferenceBoth, true},
		{"Government Only", PreferenceGovernment, true},
		{" private only ", PreferencePrivate, true},
		{"neither", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSectorPreference(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllOptions(t *testing.T) {
	options := AllOptions()

	assert.Len(t, options.Levels, 4)
	assert.Len(t, options.Streams, 6)
	assert.Len(t, options.Domains, 8)
	assert.Len(t, options.Preferences, 3)
	assert.Len(t, options.LocationScopes, 2)
	assert.Len(t, options.SalaryBrackets, 5)

	for _, level := range options.Levels {
		assert.True(t, level.IsValid(), level)
	}
	for _, stream := range options.Streams {
		assert.True(t, stream.IsValid(), stream)
	}
	for _, bracket := range options.SalaryBrackets {
		assert.True(t, bracket.IsValid(), bracket)
	}
}

func TestUserProfile_UnmarshalPreferenceAlias(t *testing.T) {
	var profile UserProfile
	require.NoError(t, json.Unmarshal([]byte(`{"preference":"Both"}`), &profile))
	assert.Equal(t, PreferenceBoth, profile.Preference)

	require.NoError(t, json.Unmarshal([]byte(`{"preference":"Sometimes"}`), &profile))
	assert.Equal(t, SectorPreference("Sometimes"), profile.Preference)
	assert.False(t, profile.Preference.IsValid())
}
