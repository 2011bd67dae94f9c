package parsing

import (
	"errors"
	"testing"

	"github.com/jonathan/career-compass/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCareerPaths_FencedFallback(t *testing.T) {
	text := "```json\n[{\"title\":\"X\",\"sector\":\"Government\",\"category\":\"Hidden Gem\",\"description\":\"d\",\"hiddenGem\":true}]\n```"

	paths, rejected, err := ParseCareerPaths(text)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, paths, 1)
	assert.Equal(t, "X", paths[0].Title)
	assert.Equal(t, types.SectorGovernment, paths[0].Sector)
	assert.Equal(t, types.CategoryHidden, paths[0].Category)
	assert.True(t, paths[0].HiddenGem)
}

func TestParseCareerPaths_Direct(t *testing.T) {
	text := `[
		{"title":"SSC CGL","sector":"Government","category":"High Competition","description":"Group B and C posts","hiddenGem":false,
		 "eligibility":"Graduate","competitionLevel":"Very High","estimatedApplicants":"30 Lakh+","officialWebsite":"https://ssc.gov.in","averageSalary":"5-9 LPA"},
		{"title":"Data Analyst","sector":"Private","category":"Moderate Competition","description":"Analytics roles","hiddenGem":false}
	]`

	paths, rejected, err := ParseCareerPaths(text)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, paths, 2)

	assert.Equal(t, "SSC CGL", paths[0].Title)
	assert.Equal(t, "Graduate", paths[0].Eligibility)
	assert.Equal(t, "30 Lakh+", paths[0].EstimatedApplicants)
	assert.Equal(t, "https://ssc.gov.in", paths[0].OfficialWebsite)
	assert.Equal(t, "Data Analyst", paths[1].Title)
	assert.Equal(t, types.SectorPrivate, paths[1].Sector)

	for _, p := range paths {
		assert.Empty(t, p.ID)
		assert.Nil(t, p.SourceURLs)
	}
}

func TestParseCareerPaths_FenceInsideProse(t *testing.T) {
	text := "Here are your results.\n```json\n[{\"title\":\"Y\",\"sector\":\"Private\",\"category\":\"Moderate Competition\",\"description\":\"d\",\"hiddenGem\":false}]\n```\nAll the best!"

	paths, _, err := ParseCareerPaths(text)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "Y", paths[0].Title)
}

func TestParseCareerPaths_UnlabelledFence(t *testing.T) {
	text := "```\n[{\"title\":\"Z\",\"sector\":\"Private\",\"category\":\"Hidden Gem\",\"description\":\"d\",\"hiddenGem\":true}]\n```"

	paths, _, err := ParseCareerPaths(text)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "Z", paths[0].Title)
}

func TestParseCareerPaths_Empty(t *testing.T) {
	for _, text := range []string{"", "  \n", "[]", "null"} {
		paths, rejected, err := ParseCareerPaths(text)
		require.NoError(t, err, text)
		assert.Empty(t, paths, text)
		assert.Empty(t, rejected, text)
	}
}

func TestParseCareerPaths_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"prose", "Sorry, I could not complete the search."},
		{"truncated array", `[{"title":"X"`},
		{"object instead of array", `{"title":"X"}`},
		{"broken fence", "```json\n[{\"title\":\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, rejected, err := ParseCareerPaths(tt.text)
			require.Error(t, err)
			assert.Nil(t, paths)
			assert.Nil(t, rejected)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}

func TestParseCareerPaths_DropsInvalidEntries(t *testing.T) {
	text := `[
		{"title":"Keep","sector":"Government","category":"High Competition","description":"d","hiddenGem":false},
		{"sector":"Government","category":"High Competition","description":"no title","hiddenGem":false},
		{"title":"Bad sector","sector":"NGO","category":"Hidden Gem","description":"d","hiddenGem":true},
		{"title":"Bad category","sector":"Private","category":"Competitive","description":"d","hiddenGem":false},
		"not an object",
		{"title":"Also keep","sector":"private","category":"hidden gem","description":"d","hiddenGem":true}
	]`

	paths, rejected, err := ParseCareerPaths(text)
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.Equal(t, "Keep", paths[0].Title)
	assert.Equal(t, "Also keep", paths[1].Title)
	assert.Equal(t, types.SectorPrivate, paths[1].Sector)
	assert.Equal(t, types.CategoryHidden, paths[1].Category)

	require.Len(t, rejected, 4)
	indexes := make([]int, 0, len(rejected))
	for _, r := range rejected {
		var verr *ValidationError
		require.True(t, errors.As(r, &verr))
		indexes = append(indexes, verr.Index)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, indexes)

	var sectorErr *ValidationError
	require.True(t, errors.As(rejected[1], &sectorErr))
	assert.Equal(t, "sector", sectorErr.Field)
}

func TestParseCareerPaths_CategoryIsAuthoritative(t *testing.T) {
	text := `[
		{"title":"A","sector":"Government","category":"Hidden Gem","description":"d","hiddenGem":false},
		{"title":"B","sector":"Government","category":"High Competition","description":"d","hiddenGem":true}
	]`

	paths, _, err := ParseCareerPaths(text)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.True(t, paths[0].HiddenGem)
	assert.False(t, paths[1].HiddenGem)
}

func TestParseCareerPaths_MissingHiddenGemFollowsCategory(t *testing.T) {
	text := `[
		{"title":"A","sector":"Government","category":"High Competition","description":"d"},
		{"title":"B","sector":"Private","category":"Hidden Gem","description":"d","hiddenGem":false}
	]`

	paths, rejected, err := ParseCareerPaths(text)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, paths, 2)
	assert.False(t, paths[0].HiddenGem)
	assert.True(t, paths[1].HiddenGem)
}

func TestNormalizeEntry_SetsHiddenGemOnlyForKnownCategory(t *testing.T) {
	entry := map[string]any{"category": "hidden gem"}
	normalizeEntry(entry)
	assert.Equal(t, true, entry["hiddenGem"])

	entry = map[string]any{"category": "Competitive"}
	normalizeEntry(entry)
	_, ok := entry["hiddenGem"]
	assert.False(t, ok)
}

func TestParseCareerPaths_NullAndNumericOptionals(t *testing.T) {
	text := `[{"title":"A","sector":"Private","category":"Moderate Competition","description":"d","hiddenGem":false,
		"officialWebsite":null,"estimatedApplicants":25000,"id":"model-id","sourceUrls":["https://x"]}]`

	paths, rejected, err := ParseCareerPaths(text)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, paths, 1)
	assert.Equal(t, "", paths[0].OfficialWebsite)
	assert.Equal(t, "25000", paths[0].EstimatedApplicants)
	assert.Empty(t, paths[0].ID, "ids are assigned by the caller")
	assert.Nil(t, paths[0].SourceURLs, "sources come from grounding metadata")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Index: 2, Field: "sector", Message: "must be one of the following"}
	assert.Equal(t, "entry 2: validation error in sector: must be one of the following", err.Error())

	err = &ValidationError{Index: 0, Message: "entry is not an object"}
	assert.Equal(t, "entry 0: validation error: entry is not an object", err.Error())
}

func TestParseError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &ParseError{Message: "reply is not a JSON array", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "parse error: reply is not a JSON array")
}
