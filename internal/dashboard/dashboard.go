// Package dashboard groups a batch of recommendations for display: one sector
// at a time, split into the three competition categories.
package dashboard

import (
	"fmt"

	"github.com/jonathan/career-compass/internal/types"
)

// Group is one category column of the dashboard. It is always present, even
// when it has no entries.
type Group struct {
	Category types.Category     `json:"category"`
	Title    string             `json:"title"`
	Subtitle string             `json:"subtitle"`
	Paths    []types.CareerPath `json:"paths"`
}

// Empty reports whether the group has no entries.
func (g Group) Empty() bool {
	return len(g.Paths) == 0
}

// Dashboard is the grouped view of one sector.
type Dashboard struct {
	Sector        types.Sector `json:"sector"`
	Groups        []Group      `json:"groups"`
	HasGovernment bool         `json:"hasGovernment"`
	HasPrivate    bool         `json:"hasPrivate"`
}

// Total returns the number of entries shown across all groups.
func (d Dashboard) Total() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Paths)
	}
	return n
}

type heading struct {
	title    string
	subtitle string
}

var headings = map[types.Category]heading{
	types.CategoryHigh:     {"Elite & Difficult", "High Prestige, High Competition"},
	types.CategoryModerate: {"Stable & Popular", "Moderate Competition, Accessible"},
	types.CategoryHidden:   {"Hidden Gems", "Low Competition, Underrated"},
}

// EmptyMessage is the text shown in place of an empty group.
func EmptyMessage(sector types.Sector) string {
	return fmt.Sprintf("No jobs found in this specific category for %s.", sector)
}

// HasSector reports whether any entry belongs to sector.
func HasSector(paths []types.CareerPath, sector types.Sector) bool {
	for _, p := range paths {
		if p.Sector == sector {
			return true
		}
	}
	return false
}

// DefaultSector is Government when the batch has any Government entry,
// otherwise Private.
func DefaultSector(paths []types.CareerPath) types.Sector {
	if HasSector(paths, types.SectorGovernment) {
		return types.SectorGovernment
	}
	return types.SectorPrivate
}

// Filter returns the entries of sector in their original order.
func Filter(paths []types.CareerPath, sector types.Sector) []types.CareerPath {
	out := make([]types.CareerPath, 0, len(paths))
	for _, p := range paths {
		if p.Sector == sector {
			out = append(out, p)
		}
	}
	return out
}

// Partition splits paths into the three category groups in display order,
// keeping the relative order of entries. Entries with an unknown category
// belong to no group.
func Partition(paths []types.CareerPath) []Group {
	categories := types.Categories()
	groups := make([]Group, len(categories))
	index := make(map[types.Category]int, len(categories))
	for i, c := range categories {
		h := headings[c]
		groups[i] = Group{Category: c, Title: h.title, Subtitle: h.subtitle, Paths: []types.CareerPath{}}
		index[c] = i
	}

	for _, p := range paths {
		if i, ok := index[p.Category]; ok {
			groups[i].Paths = append(groups[i].Paths, p)
		}
	}
	return groups
}

// Build filters paths to sector and partitions the result. An empty sector
// selects DefaultSector.
func Build(paths []types.CareerPath, sector types.Sector) (Dashboard, error) {
	if sector == "" {
		sector = DefaultSector(paths)
	}
	if !sector.IsValid() {
		return Dashboard{}, fmt.Errorf("unknown sector %q", sector)
	}

	return Dashboard{
		Sector:        sector,
		Groups:        Partition(Filter(paths, sector)),
		HasGovernment: HasSector(paths, types.SectorGovernment),
		HasPrivate:    HasSector(paths, types.SectorPrivate),
	}, nil
}
