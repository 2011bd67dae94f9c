package recommend

import (
	"google.golang.org/genai"

	"github.com/jonathan/career-compass/internal/types"
)

// responseRequired mirrors the required list of the CareerPath JSON Schema.
var responseRequired = []string{"title", "sector", "category", "description", "hiddenGem"}

// ResponseSchema declares the expected reply: an array of CareerPath objects
// with category limited to the three competition classes.
func ResponseSchema() *genai.Schema {
	categories := make([]string, 0, len(types.Categories()))
	for _, c := range types.Categories() {
		categories = append(categories, string(c))
	}

	text := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":               text(),
				"sector":              text(),
				"category":            {Type: genai.TypeString, Enum: categories},
				"description":         text(),
				"eligibility":         text(),
				"competitionLevel":    text(),
				"estimatedApplicants": text(),
				"hiddenGem":           {Type: genai.TypeBoolean},
				"officialWebsite":     text(),
				"averageSalary":       text(),
			},
			Required: append([]string(nil), responseRequired...),
		},
	}
}
