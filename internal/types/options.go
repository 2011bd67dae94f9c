package types

// DomainOption is a selectable interest tag with its display label.
type DomainOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Options lists every choice the questionnaire offers.
type Options struct {
	Levels         []EducationLevel   `json:"levels"`
	Streams        []Stream           `json:"streams"`
	Domains        []DomainOption     `json:"domains"`
	Preferences    []SectorPreference `json:"preferences"`
	LocationScopes []LocationScope    `json:"locationScopes"`
	SalaryBrackets []SalaryBracket    `json:"salaryBrackets"`
}

// CommonDomains returns the predefined interest tags. TargetDomains is free text, so these
// are suggestions rather than an enumeration.
func CommonDomains() []DomainOption {
	return []DomainOption{
		{ID: "Defence/Police", Label: "Army / Police / Defence"},
		{ID: "Banking/Finance", Label: "Banking & Finance"},
		{ID: "Civil Services", Label: "Civil Services (IAS/State)"},
		{ID: "Engineering/IT", Label: "Engineering & IT"},
		{ID: "Medical", Label: "Medical / Healthcare"},
		{ID: "Management", Label: "Management / MBA"},
		{ID: "Law", Label: "Law / Judiciary"},
		{ID: "Teaching", Label: "Teaching / Education"},
	}
}

// EducationLevels returns the levels in questionnaire order.
func EducationLevels() []EducationLevel {
	return []EducationLevel{LevelClass10, LevelClass12, LevelGraduate, LevelPostGraduate}
}

// Streams returns the streams in questionnaire order.
func Streams() []Stream {
	return []Stream{StreamSciencePCM, StreamSciencePCB, StreamCommerce, StreamArts, StreamVocational, StreamOther}
}

// SectorPreferences returns the preferences in questionnaire order.
func SectorPreferences() []SectorPreference {
	return []SectorPreference{PreferenceGovernment, PreferencePrivate, PreferenceBoth}
}

// LocationScopes returns both scopes, nationwide first.
func LocationScopes() []LocationScope {
	return []LocationScope{ScopeAllIndia, ScopeStateSpecific}
}

// SalaryBrackets returns the brackets from lowest to highest.
func SalaryBrackets() []SalaryBracket {
	return []SalaryBracket{SalaryEntry, SalaryStandard, SalaryGood, SalaryHigh, SalaryVeryHigh}
}

// AllOptions returns the complete option catalog.
func AllOptions() Options {
	return Options{
		Levels:         EducationLevels(),
		Streams:        Streams(),
		Domains:        CommonDomains(),
		Preferences:    SectorPreferences(),
		LocationScopes: LocationScopes(),
		SalaryBrackets: SalaryBrackets(),
	}
}
