package dashboard

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-compass/internal/types"
)

func path(id string, sector types.Sector, category types.Category) types.CareerPath {
	return types.CareerPath{
		ID:          id,
		Title:       "Title " + id,
		Description: "d",
		Sector:      sector,
		Category:    category,
		HiddenGem:   category == types.CategoryHidden,
	}
}

func TestBuild_EndToEndScenario(t *testing.T) {
	paths := []types.CareerPath{
		path("job-0", types.SectorGovernment, types.CategoryHigh),
		path("job-1", types.SectorGovernment, types.CategoryHidden),
		path("job-2", types.SectorPrivate, types.CategoryModerate),
	}

	gov, err := Build(paths, "")
	require.NoError(t, err)
	assert.Equal(t, types.SectorGovernment, gov.Sector)
	require.Len(t, gov.Groups, 3)
	assert.Len(t, gov.Groups[0].Paths, 1)
	assert.True(t, gov.Groups[1].Empty())
	assert.Len(t, gov.Groups[2].Paths, 1)
	assert.True(t, gov.HasGovernment)
	assert.True(t, gov.HasPrivate)

	priv, err := Build(paths, types.SectorPrivate)
	require.NoError(t, err)
	assert.True(t, priv.Groups[0].Empty())
	require.Len(t, priv.Groups[1].Paths, 1)
	assert.Equal(t, "job-2", priv.Groups[1].Paths[0].ID)
	assert.True(t, priv.Groups[2].Empty())
	assert.Equal(t, 1, priv.Total())
}

func TestBuild_GroupHeadings(t *testing.T) {
	d, err := Build(nil, types.SectorGovernment)
	require.NoError(t, err)

	require.Len(t, d.Groups, 3)
	assert.Equal(t, types.CategoryHigh, d.Groups[0].Category)
	assert.Equal(t, "Elite & Difficult", d.Groups[0].Title)
	assert.Equal(t, "High Prestige, High Competition", d.Groups[0].Subtitle)
	assert.Equal(t, types.CategoryModerate, d.Groups[1].Category)
	assert.Equal(t, "Stable & Popular", d.Groups[1].Title)
	assert.Equal(t, types.CategoryHidden, d.Groups[2].Category)
	assert.Equal(t, "Hidden Gems", d.Groups[2].Title)

	for _, g := range d.Groups {
		assert.True(t, g.Empty())
		assert.NotNil(t, g.Paths)
	}
	assert.False(t, d.HasGovernment)
	assert.False(t, d.HasPrivate)
}

func TestBuild_UnknownSector(t *testing.T) {
	_, err := Build(nil, "Both")
	assert.Error(t, err)
}

func TestDefaultSector(t *testing.T) {
	assert.Equal(t, types.SectorPrivate, DefaultSector(nil))
	assert.Equal(t, types.SectorPrivate, DefaultSector([]types.CareerPath{
		path("a", types.SectorPrivate, types.CategoryHigh),
	}))
	assert.Equal(t, types.SectorGovernment, DefaultSector([]types.CareerPath{
		path("a", types.SectorPrivate, types.CategoryHigh),
		path("b", types.SectorGovernment, types.CategoryHigh),
	}))
}

func TestFilter_DisplaysOnlyActiveSector(t *testing.T) {
	// The service ignored a Government Only preference and returned Private entries.
	paths := []types.CareerPath{
		path("a", types.SectorGovernment, types.CategoryHigh),
		path("b", types.SectorPrivate, types.CategoryHigh),
		path("c", types.SectorGovernment, types.CategoryModerate),
	}

	d, err := Build(paths, types.SectorGovernment)
	require.NoError(t, err)
	for _, g := range d.Groups {
		for _, p := range g.Paths {
			assert.Equal(t, types.SectorGovernment, p.Sector)
		}
	}
	assert.Equal(t, 2, d.Total())
}

func TestPartition_PreservesOrder(t *testing.T) {
	paths := []types.CareerPath{
		path("1", types.SectorGovernment, types.CategoryHidden),
		path("2", types.SectorGovernment, types.CategoryHigh),
		path("3", types.SectorGovernment, types.CategoryHidden),
		path("4", types.SectorGovernment, types.CategoryHigh),
	}

	groups := Partition(paths)

	ids := func(g Group) []string {
		out := []string{}
		for _, p := range g.Paths {
			out = append(out, p.ID)
		}
		return out
	}
	assert.Equal(t, []string{"2", "4"}, ids(groups[0]))
	assert.Equal(t, []string{}, ids(groups[1]))
	assert.Equal(t, []string{"1", "3"}, ids(groups[2]))
}

func TestPartition_TotalAndDisjoint(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sectors := types.Sectors()
	categories := types.Categories()

	for run := 0; run < 50; run++ {
		n := rng.Intn(25)
		paths := make([]types.CareerPath, n)
		for i := range paths {
			paths[i] = path(fmt.Sprintf("job-%d", i), sectors[rng.Intn(2)], categories[rng.Intn(3)])
		}

		for _, sector := range sectors {
			d, err := Build(paths, sector)
			require.NoError(t, err)

			filtered := Filter(paths, sector)
			seen := make(map[string]int)
			for _, g := range d.Groups {
				for _, p := range g.Paths {
					assert.Equal(t, g.Category, p.Category)
					seen[p.ID]++
				}
			}
			assert.Len(t, seen, len(filtered))
			for _, p := range filtered {
				assert.Equal(t, 1, seen[p.ID], "entry %s must appear exactly once", p.ID)
			}
		}
	}
}

func TestPartition_UnknownCategoryIsDropped(t *testing.T) {
	groups := Partition([]types.CareerPath{path("x", types.SectorPrivate, "Low Competition")})

	for _, g := range groups {
		assert.True(t, g.Empty())
	}
}

func TestEmptyMessage(t *testing.T) {
	assert.Equal(t, "No jobs found in this specific category for Private.", EmptyMessage(types.SectorPrivate))
}
