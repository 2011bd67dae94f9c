package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/observability"
	"github.com/jonathan/career-compass/internal/session"
	"github.com/jonathan/career-compass/internal/types"
	"github.com/jonathan/career-compass/internal/wizard"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Answer the questionnaire interactively",
	Long:  "Walk through the three questionnaire steps on the terminal, then browse the grouped recommendations.",
	RunE:  runWizard,
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}

func runWizard(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(v, configFile)
	if err != nil {
		return err
	}
	defer rt.sync()

	return runInteractive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), rt.requester(nil), rt.logger)
}

// errInputClosed ends the questionnaire when stdin runs out mid-answer.
var errInputClosed = errors.New("input closed before the questionnaire was finished")

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// ask prints label and returns the trimmed answer, or def for an empty line.
func (p *prompter) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def) //nolint:errcheck
	} else {
		fmt.Fprintf(p.out, "%s: ", label) //nolint:errcheck
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	answer := strings.TrimSpace(p.in.Text())
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// choose lists options and asks until the answer names one of them.
func choose[T ~string](p *prompter, label string, options []T, def T) (T, error) {
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, o) //nolint:errcheck
	}
	for {
		answer, err := p.ask(label, string(def))
		if err != nil {
			var zero T
			return zero, err
		}
		if o, ok := matchOption(answer, options); ok {
			return o, nil
		}
		fmt.Fprintf(p.out, "Please enter a number between 1 and %d.\n", len(options)) //nolint:errcheck
	}
}

func runInteractive(ctx context.Context, in io.Reader, out io.Writer, submitter session.Submitter, logger *zap.Logger) error {
	p := &prompter{in: bufio.NewScanner(in), out: out}
	printer := observability.NewPrinter(out)
	sess := session.New(submitter, logger)

	for {
		sess.Start()
		if err := answerQuestionnaire(p, sess); err != nil {
			return err
		}
		printer.PrintProfile(sess.Snapshot().Profile)

		if err := submitWithRetry(ctx, p, printer, sess); err != nil {
			return err
		}

		again, err := browseResults(p, printer, sess)
		if err != nil || !again {
			return err
		}
		sess.Reset()
	}
}

func answerQuestionnaire(p *prompter, sess *session.Session) error {
	profile := sess.Snapshot().Profile

	fmt.Fprintf(p.out, "\nStep 1 of %d: education\n", wizard.StepCount) //nolint:errcheck
	level, err := choose(p, "Highest education", types.EducationLevels(), profile.Level)
	if err != nil {
		return err
	}
	stream, err := choose(p, "Stream", types.Streams(), profile.Stream)
	if err != nil {
		return err
	}
	subjects, err := p.ask("Subjects or specialization (optional)", "")
	if err != nil {
		return err
	}
	if err := sess.Edit(func(w *wizard.Wizard) error {
		if err := w.SetLevel(level); err != nil {
			return err
		}
		if err := w.SetStream(stream); err != nil {
			return err
		}
		if err := w.SetSubjects(subjects); err != nil {
			return err
		}
		w.Next()
		return nil
	}); err != nil {
		return err
	}

	fmt.Fprintf(p.out, "\nStep 2 of %d: interests\n", wizard.StepCount) //nolint:errcheck
	domains := types.CommonDomains()
	for i, d := range domains {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, d.Label) //nolint:errcheck
	}
	picked, err := p.ask("Domains (comma separated numbers or tags, empty for open to all)", "")
	if err != nil {
		return err
	}
	preference, err := choose(p, "Sector preference", types.SectorPreferences(), profile.Preference)
	if err != nil {
		return err
	}
	if err := sess.Edit(func(w *wizard.Wizard) error {
		for _, tag := range splitDomains(picked, domains) {
			if _, err := w.ToggleDomain(tag); err != nil {
				return err
			}
		}
		if err := w.SetPreference(preference); err != nil {
			return err
		}
		w.Next()
		return nil
	}); err != nil {
		return err
	}

	fmt.Fprintf(p.out, "\nStep 3 of %d: location & salary\n", wizard.StepCount) //nolint:errcheck
	scope, err := choose(p, "Location", types.LocationScopes(), profile.LocationScope)
	if err != nil {
		return err
	}
	state := ""
	for scope == types.ScopeStateSpecific && state == "" {
		if state, err = p.ask("Target state", ""); err != nil {
			return err
		}
	}
	salary, err := choose(p, "Expected salary", types.SalaryBrackets(), profile.SalaryExpectation)
	if err != nil {
		return err
	}
	return sess.Edit(func(w *wizard.Wizard) error {
		if err := w.SetLocation(scope, state); err != nil {
			return err
		}
		return w.SetSalary(salary)
	})
}

// splitDomains resolves a comma separated answer into tags. Numbers pick from
// the common list; anything else is kept as a free-text tag. Duplicates are dropped.
func splitDomains(answer string, common []types.DomainOption) []string {
	ids := make([]string, len(common))
	for i, d := range common {
		ids[i] = d.ID
	}

	seen := make(map[string]bool)
	var tags []string
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tag := part
		if id, ok := matchOption(part, ids); ok {
			tag = id
		}
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

func submitWithRetry(ctx context.Context, p *prompter, printer *observability.Printer, sess *session.Session) error {
	for {
		fmt.Fprintln(p.out, "\nAnalyzing live job trends and competition data...") //nolint:errcheck
		err := sess.Submit(ctx)
		if err == nil {
			return nil
		}
		printer.PrintError(sess.Snapshot().Error)
		answer, askErr := p.ask("Try again? (y/n)", "n")
		if askErr != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			return err
		}
		sess.DismissError()
	}
}

// browseResults shows the dashboard until the user quits or asks for a new
// search, which it reports as true.
func browseResults(p *prompter, printer *observability.Printer, sess *session.Session) (bool, error) {
	for {
		board, err := sess.Dashboard()
		if err != nil {
			return false, err
		}
		fmt.Fprintln(p.out) //nolint:errcheck
		printer.PrintDashboard(board)

		answer, err := p.ask("Job id for details, g/p to switch sector, n for a new search, q to quit", "q")
		if errors.Is(err, errInputClosed) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "q", "quit":
			return false, nil
		case "n", "new":
			return true, nil
		case "g":
			_ = sess.SelectSector(types.SectorGovernment)
		case "p":
			_ = sess.SelectSector(types.SectorPrivate)
		default:
			path, ok := findPath(sess.Snapshot().Paths, answer)
			if !ok {
				fmt.Fprintf(p.out, "No recommendation with id %q.\n", answer) //nolint:errcheck
				continue
			}
			printer.PrintCareerPath(path)
		}
	}
}
