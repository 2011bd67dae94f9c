package types

// Sector is the employment sector of a recommendation.
type Sector string

// Sectors a recommendation may belong to
const (
	SectorGovernment Sector = "Government"
	SectorPrivate    Sector = "Private"
)

// IsValid reports whether s is Government or Private.
func (s Sector) IsValid() bool {
	return s == SectorGovernment || s == SectorPrivate
}

// Category is the competition-difficulty classification of a recommendation.
type Category string

// Categories, in display order
const (
	CategoryHigh     Category = "High Competition"
	CategoryModerate Category = "Moderate Competition"
	CategoryHidden   Category = "Hidden Gem"
)

// IsValid reports whether c is one of the three categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryHigh, CategoryModerate, CategoryHidden:
		return true
	}
	return false
}

// Sectors returns both sectors, Government first.
func Sectors() []Sector {
	return []Sector{SectorGovernment, SectorPrivate}
}

// Categories returns the three categories in display order.
func Categories() []Category {
	return []Category{CategoryHigh, CategoryModerate, CategoryHidden}
}

// CareerPath is one recommended job within a batch.
type CareerPath struct {
	ID                  string   `json:"id" validate:"required"`
	Title               string   `json:"title" validate:"required"`
	Sector              Sector   `json:"sector" validate:"enum"`
	Category            Category `json:"category" validate:"enum"`
	Description         string   `json:"description" validate:"required"`
	Eligibility         string   `json:"eligibility,omitempty"`
	CompetitionLevel    string   `json:"competitionLevel,omitempty"`
	EstimatedApplicants string   `json:"estimatedApplicants,omitempty"`
	HiddenGem           bool     `json:"hiddenGem"`
	OfficialWebsite     string   `json:"officialWebsite,omitempty"`
	SourceURLs          []string `json:"sourceUrls"`
	AverageSalary       string   `json:"averageSalary,omitempty"`
}

// Validate checks the mandatory fields and enumeration membership.
func (c *CareerPath) Validate() error {
	return validate.Struct(c)
}
