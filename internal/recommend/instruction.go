package recommend

import (
	"strconv"
	"strings"

	"github.com/jonathan/career-compass/internal/prompts"
	"github.com/jonathan/career-compass/internal/types"
)

const promptFile = "recommendation.yaml"

// Requested batch size
const (
	MinEntries = 15
	MaxEntries = 20
)

// LocationDirective asks for regional focus on the named state, or for
// nationwide opportunities when the scope is All India.
func LocationDirective(profile types.UserProfile) string {
	if profile.IsStateSpecific() {
		return prompts.Format(prompts.MustGet(promptFile, "location-state"), map[string]string{
			"State": strings.TrimSpace(profile.TargetState),
		})
	}
	return prompts.MustGet(promptFile, "location-all-india")
}

// DomainDirective lists the selected domains, or states openness to all.
func DomainDirective(profile types.UserProfile) string {
	if len(profile.TargetDomains) == 0 {
		return prompts.MustGet(promptFile, "domains-open")
	}
	return prompts.Format(prompts.MustGet(promptFile, "domains-selected"), map[string]string{
		"Domains": strings.Join(profile.TargetDomains, ", "),
	})
}

// BuildInstruction renders the full natural-language instruction for a profile.
func BuildInstruction(profile types.UserProfile) string {
	subjects := strings.TrimSpace(profile.Subjects)
	if subjects == "" {
		subjects = "Not specified"
	}

	return prompts.Format(prompts.MustGet(promptFile, "instruction"), map[string]string{
		"Level":             string(profile.Level),
		"Stream":            string(profile.Stream),
		"Subjects":          subjects,
		"DomainDirective":   DomainDirective(profile),
		"Preference":        string(profile.Preference),
		"LocationDirective": LocationDirective(profile),
		"Salary":            string(profile.SalaryExpectation),
		"MinEntries":        strconv.Itoa(MinEntries),
		"MaxEntries":        strconv.Itoa(MaxEntries),
	})
}
