package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-compass/internal/dashboard"
	"github.com/jonathan/career-compass/internal/observability"
	"github.com/jonathan/career-compass/internal/parsing"
	"github.com/jonathan/career-compass/internal/recommend"
	"github.com/jonathan/career-compass/internal/types"
)

var parseResponseCmd = &cobra.Command{
	Use:   "parse-response <file|->",
	Short: "Parse a saved model reply and print the grouped dashboard",
	Long:  "Run the reply parser and the dashboard grouping on a saved model reply, without calling the service. Use - to read from stdin.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParseResponse,
}

var (
	parseSector  string
	parseSources []string
)

func init() {
	parseResponseCmd.Flags().StringVar(&parseSector, "sector", "", "Sector tab to show (Government or Private)")
	parseResponseCmd.Flags().StringSliceVar(&parseSources, "source", nil, "Source URL to attach to every entry, repeatable")
	rootCmd.AddCommand(parseResponseCmd)
}

func runParseResponse(cmd *cobra.Command, args []string) error {
	var (
		content []byte
		err     error
	)
	if args[0] == "-" {
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read reply: %w", err)
	}
	return printParsedReply(cmd.OutOrStdout(), string(content), parseSector, parseSources)
}

func printParsedReply(out io.Writer, text, sectorFlag string, sources []string) error {
	paths, rejected, err := parsing.ParseCareerPaths(text)
	if err != nil {
		return err
	}
	recommend.AssignBatch(paths, sources)

	var sector types.Sector
	if sectorFlag != "" {
		if sector, err = parseOption("sector", sectorFlag, types.Sectors()); err != nil {
			return err
		}
	}
	board, err := dashboard.Build(paths, sector)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(out)
	fmt.Fprintf(out, "Parsed %d entries (%d dropped)\n\n", len(paths), len(rejected)) //nolint:errcheck
	printer.PrintDashboard(board)
	printer.PrintRejected(rejected)
	return nil
}
