package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/observability"
	"github.com/jonathan/career-compass/internal/recommend"
	"github.com/jonathan/career-compass/internal/session"
	"github.com/jonathan/career-compass/internal/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get recommendations for a profile given as flags",
	Long: `Submit a profile built from flags and print the grouped dashboard.
Options accept either the label (case-insensitive) or its 1-based number, e.g. --level 2 or --level "12th Pass".`,
	Example: `  career_compass recommend --level Graduate --stream Commerce --domain Banking/Finance --preference Both
  career_compass recommend --state Kerala --salary "6-10 LPA" --sector Private --show job-3`,
	RunE: runRecommend,
}

// recommendOptions controls one non-interactive run.
type recommendOptions struct {
	profile  profileFlags
	sector   string
	show     string
	jsonOut  bool
	printRaw bool
}

var recommendOpts recommendOptions

func init() {
	f := recommendCmd.Flags()
	f.StringVar(&recommendOpts.profile.level, "level", "", "Education level (default \"12th Pass\")")
	f.StringVar(&recommendOpts.profile.stream, "stream", "", "Academic stream (default \"Science (PCM)\")")
	f.StringVar(&recommendOpts.profile.subjects, "subjects", "", "Subjects or specialization (free text)")
	f.StringSliceVar(&recommendOpts.profile.domains, "domain", nil, "Target domain tag, repeatable (none means open to all)")
	f.StringVar(&recommendOpts.profile.preference, "preference", "", "Sector preference (default \"Both Government & Private\")")
	f.StringVar(&recommendOpts.profile.location, "location", "", "Location scope (\"All India\" or \"State Specific\")")
	f.StringVar(&recommendOpts.profile.state, "state", "", "Target state; implies State Specific")
	f.StringVar(&recommendOpts.profile.salary, "salary", "", "Expected salary bracket (default \"3-6 LPA\")")
	f.StringVar(&recommendOpts.sector, "sector", "", "Sector tab to show (Government or Private)")
	f.StringVar(&recommendOpts.show, "show", "", "Print the full detail of one recommendation by id, e.g. job-3")
	f.BoolVar(&recommendOpts.jsonOut, "json", false, "Print the batch as JSON instead of the dashboard")
	f.BoolVar(&recommendOpts.printRaw, "raw", false, "Also print the unmodified model reply")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(v, configFile)
	if err != nil {
		return err
	}
	defer rt.sync()

	return recommendOnce(cmd.Context(), cmd.OutOrStdout(), rt.requester(nil), rt.logger, recommendOpts)
}

// capturingSubmitter remembers the last batch so the CLI can show what the
// session does not keep, such as dropped entries.
type capturingSubmitter struct {
	next session.Submitter
	last *recommend.Result
}

func (c *capturingSubmitter) Submit(ctx context.Context, profile types.UserProfile) (*recommend.Result, error) {
	result, err := c.next.Submit(ctx, profile)
	if err == nil {
		c.last = result
	}
	return result, err
}

func recommendOnce(ctx context.Context, out io.Writer, submitter session.Submitter, logger *zap.Logger, opts recommendOptions) error {
	capture := &capturingSubmitter{next: submitter}
	sess := session.New(capture, logger)
	sess.Start()
	if err := sess.Edit(opts.profile.apply); err != nil {
		return err
	}

	printer := observability.NewPrinter(out)
	if !opts.jsonOut {
		printer.PrintProfile(sess.Snapshot().Profile)
	}

	if err := sess.Submit(ctx); err != nil {
		if msg := sess.Snapshot().Error; msg != "" {
			printer.PrintError(msg)
			return fmt.Errorf("recommendation failed (%s)", recommend.KindOf(err))
		}
		return err
	}

	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(capture.last)
	}

	return showResults(sess, printer, out, capture.last.Rejected, opts)
}

// showResults prints the dashboard for the requested sector, then the optional
// detail view and raw reply.
func showResults(sess *session.Session, printer *observability.Printer, out io.Writer, rejected []error, opts recommendOptions) error {
	if opts.sector != "" {
		sector, err := parseOption("sector", opts.sector, types.Sectors())
		if err != nil {
			return err
		}
		if err := sess.SelectSector(sector); err != nil {
			return err
		}
	}

	board, err := sess.Dashboard()
	if err != nil {
		return err
	}
	printer.PrintDashboard(board)
	printer.PrintRejected(rejected)

	if opts.show != "" {
		path, ok := findPath(sess.Snapshot().Paths, opts.show)
		if !ok {
			return fmt.Errorf("no recommendation with id %q in this batch", opts.show)
		}
		printer.PrintCareerPath(path)
	}
	if opts.printRaw {
		fmt.Fprintf(out, "\n--- raw reply ---\n%s\n", sess.RawText()) //nolint:errcheck
	}
	return nil
}

func findPath(paths []types.CareerPath, id string) (types.CareerPath, bool) {
	for _, p := range paths {
		if p.ID == id {
			return p, true
		}
	}
	return types.CareerPath{}, false
}
