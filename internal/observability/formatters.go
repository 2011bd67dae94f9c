// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-compass/internal/dashboard"
	"github.com/jonathan/career-compass/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// wrap breaks text into lines of at most width runes, prefixing each with indent.
func wrap(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	line := indent
	for _, w := range words {
		if utf8.RuneCountInString(line)+utf8.RuneCountInString(w)+1 > width && strings.TrimSpace(line) != "" {
			sb.WriteString(strings.TrimRight(line, " "))
			sb.WriteString("\n")
			line = indent
		}
		line += w + " "
	}
	sb.WriteString(strings.TrimRight(line, " "))
	return sb.String()
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// PrintProfile outputs the questionnaire answers.
func (p *Printer) PrintProfile(profile types.UserProfile) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Education:  %s\n", profile.Level))
	sb.WriteString(fmt.Sprintf("Stream:     %s\n", profile.Stream))
	sb.WriteString(fmt.Sprintf("Subjects:   %s\n", valueOr(profile.Subjects, "-")))
	domains := "Open to all"
	if len(profile.TargetDomains) > 0 {
		domains = strings.Join(profile.TargetDomains, ", ")
	}
	sb.WriteString(fmt.Sprintf("Domains:    %s\n", domains))
	sb.WriteString(fmt.Sprintf("Preference: %s\n", profile.Preference))
	location := string(profile.LocationScope)
	if profile.IsStateSpecific() {
		location = fmt.Sprintf("%s (%s)", location, profile.TargetState)
	}
	sb.WriteString(fmt.Sprintf("Location:   %s\n", location))
	sb.WriteString(fmt.Sprintf("Salary:     %s", profile.SalaryExpectation))

	p.printBox("YOUR PROFILE", sb.String())
}

// PrintDashboard outputs the sector tabs and the three category groups.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintDashboard(d dashboard.Dashboard) {
	var tabs []string
	if d.HasGovernment {
		tabs = append(tabs, tabLabel(types.SectorGovernment, d.Sector))
	}
	if d.HasPrivate {
		tabs = append(tabs, tabLabel(types.SectorPrivate, d.Sector))
	}
	if len(tabs) > 0 {
		fmt.Fprintf(p.out, "%s\n\n", strings.Join(tabs, "   "))
	}

	for _, g := range d.Groups {
		var sb strings.Builder
		sb.WriteString(g.Subtitle)
		sb.WriteString("\n\n")
		if g.Empty() {
			sb.WriteString(dashboard.EmptyMessage(d.Sector))
		}
		for i, path := range g.Paths {
			sb.WriteString(fmt.Sprintf("• %s [%s]\n", path.Title, path.ID))
			sb.WriteString(fmt.Sprintf("    Salary: %s | Competition: %s",
				valueOr(path.AverageSalary, "n/a"), valueOr(path.CompetitionLevel, "n/a")))
			if i < len(g.Paths)-1 {
				sb.WriteString("\n")
			}
		}
		p.printBox(fmt.Sprintf("%s (%d)", strings.ToUpper(g.Title), len(g.Paths)), sb.String())
	}
}

func tabLabel(sector, active types.Sector) string {
	label := strings.ToUpper(string(sector)) + " SECTOR"
	if sector == active {
		return "[" + label + "]"
	}
	return " " + label + " "
}

// PrintCareerPath outputs every field of one recommendation.
func (p *Printer) PrintCareerPath(path types.CareerPath) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s · %s\n", path.Sector, path.Category))
	if path.HiddenGem {
		sb.WriteString("Hidden gem: low competition, good potential\n")
	}
	sb.WriteString("\n")
	sb.WriteString(wrap(path.Description, boxWidth-4, ""))
	sb.WriteString("\n\n")

	sb.WriteString("Eligibility:\n")
	sb.WriteString(wrap(valueOr(path.Eligibility, "Not specified"), boxWidth-4, "  "))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Competition:  %s\n", valueOr(path.CompetitionLevel, "n/a")))
	sb.WriteString(fmt.Sprintf("Applicants:   %s\n", valueOr(path.EstimatedApplicants, "n/a")))
	sb.WriteString(fmt.Sprintf("Avg. salary:  %s\n", valueOr(path.AverageSalary, "n/a")))
	sb.WriteString(fmt.Sprintf("Website:      %s", valueOr(path.OfficialWebsite, "n/a")))

	if len(path.SourceURLs) > 0 {
		sb.WriteString("\n\nSources:")
		count := min(len(path.SourceURLs), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, path.SourceURLs[i]))
		}
		if len(path.SourceURLs) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n  ... and %d more", len(path.SourceURLs)-maxItemsToShow))
		}
	}

	p.printBox(strings.ToUpper(path.Title), sb.String())
}

// PrintRejected outputs why entries were dropped from a batch.
func (p *Printer) PrintRejected(reasons []error) {
	if len(reasons) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d entries failed validation:\n", len(reasons)))
	count := min(len(reasons), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("\n  • %s", reasons[i]))
	}
	if len(reasons) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n  ... and %d more", len(reasons)-maxItemsToShow))
	}

	p.printBox("DROPPED ENTRIES", sb.String())
}

// PrintError outputs a user-facing error message.
func (p *Printer) PrintError(message string) {
	p.printBox("SOMETHING WENT WRONG", wrap(message, boxWidth-4, ""))
}
