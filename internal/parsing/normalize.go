package parsing

import (
	"strconv"
	"strings"

	"github.com/jonathan/career-compass/internal/types"
)

// sectorAliases maps lowercase variants the model produces to canonical sectors
var sectorAliases = map[string]types.Sector{
	"government":         types.SectorGovernment,
	"govt":               types.SectorGovernment,
	"govt.":              types.SectorGovernment,
	"gov":                types.SectorGovernment,
	"government sector":  types.SectorGovernment,
	"public":             types.SectorGovernment,
	"public sector":      types.SectorGovernment,
	"psu":                types.SectorGovernment,
	"central government": types.SectorGovernment,
	"state government":   types.SectorGovernment,
	"private":            types.SectorPrivate,
	"private sector":     types.SectorPrivate,
	"corporate":          types.SectorPrivate,
}

// categoryKeywords lists the words that identify each category. A label must
// hit exactly one category to be accepted.
var categoryKeywords = map[types.Category][]string{
	types.CategoryHigh:     {"high", "elite", "difficult", "prestig"},
	types.CategoryModerate: {"moderate", "medium", "stable", "popular", "accessible"},
	types.CategoryHidden:   {"hidden", "gem", "low", "underrated", "niche"},
}

// NormalizeSector maps a free-form sector label onto Government or Private.
// Labels naming both sectors, or neither, are rejected.
func NormalizeSector(label string) (types.Sector, bool) {
	lower := strings.ToLower(strings.Join(strings.Fields(label), " "))
	if lower == "" {
		return "", false
	}
	if s, ok := sectorAliases[lower]; ok {
		return s, true
	}

	gov := strings.Contains(lower, "gov")
	priv := strings.Contains(lower, "private")
	switch {
	case gov && !priv:
		return types.SectorGovernment, true
	case priv && !gov:
		return types.SectorPrivate, true
	}
	return "", false
}

// NormalizeCategory maps a category label such as "high competition / elite"
// onto one of the three categories.
func NormalizeCategory(label string) (types.Category, bool) {
	lower := strings.ToLower(strings.Join(strings.Fields(label), " "))
	if lower == "" {
		return "", false
	}
	for _, c := range types.Categories() {
		if lower == strings.ToLower(string(c)) {
			return c, true
		}
	}

	var match types.Category
	hits := 0
	for _, c := range types.Categories() {
		for _, kw := range categoryKeywords[c] {
			if strings.Contains(lower, kw) {
				match = c
				hits++
				break
			}
		}
	}
	if hits != 1 {
		return "", false
	}
	return match, true
}

// textFields are the optional free-text properties of an entry.
var textFields = []string{
	"eligibility",
	"competitionLevel",
	"estimatedApplicants",
	"officialWebsite",
	"averageSalary",
}

// normalizeEntry rewrites a decoded entry in place so it can be checked
// against the schema: sector and category labels become canonical, hiddenGem
// follows the category, required text is trimmed, and numeric free-text values
// become strings.
func normalizeEntry(entry map[string]any) {
	if s, ok := entry["sector"].(string); ok {
		if sector, ok := NormalizeSector(s); ok {
			entry["sector"] = string(sector)
		}
	}
	if c, ok := entry["category"].(string); ok {
		if category, ok := NormalizeCategory(c); ok {
			entry["category"] = string(category)
			entry["hiddenGem"] = category == types.CategoryHidden
		}
	}
	for _, key := range []string{"title", "description"} {
		if s, ok := entry[key].(string); ok {
			entry[key] = strings.TrimSpace(s)
		}
	}
	for _, key := range textFields {
		switch v := entry[key].(type) {
		case float64:
			entry[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case string:
			entry[key] = strings.TrimSpace(v)
		}
	}
}
