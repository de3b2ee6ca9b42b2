package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/shelfpost/linkcheck/internal/inject"
	"github.com/shelfpost/linkcheck/internal/service"
)

// errUnmatchedLinks is returned by analyze --strict when a link never matches.
var errUnmatchedLinks = errors.New("unmatched links")

type analyzeOptions struct {
	json   bool
	strict bool
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze DRAFT",
		Short: "Report how many paragraphs resolve to each affiliate link",
		Long: "Report how many paragraphs of DRAFT resolve to each link in the link file.\n" +
			"Use - to read the draft from standard input.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, ctx, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail when any link matches no paragraph")

	return cmd
}

func runAnalyze(cmd *cobra.Command, ctx *commandContext, draftPath string, opts analyzeOptions) error {
	req, err := ctx.draftRequest(cmd, draftPath)
	if err != nil {
		return err
	}

	report, err := ctx.linkHealth(cmd, inject.DefaultMaxPerTitle).Check(cmd.Context(), req)
	if err != nil {
		return err
	}

	if opts.json {
		if err := writeJSON(cmd, report); err != nil {
			return err
		}
	} else {
		printReport(cmd.OutOrStdout(), report)
	}

	if unmatched := len(report.Unmatched()); opts.strict && unmatched > 0 {
		return fmt.Errorf("%w: %d of %d links never matched", errUnmatchedLinks, unmatched, len(report.Results))
	}
	return nil
}

func printReport(out io.Writer, report *service.HealthReport) {
	rows := make([][]string, 0, len(report.Results))
	for _, r := range report.Results {
		status := statusOK
		if !r.Healthy() {
			status = statusUnmatched
		}
		rows = append(rows, []string{r.Title, r.URL, strconv.Itoa(r.Count), status})
	}

	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable([]column{
			{Header: "Title"},
			{Header: "URL"},
			{Header: "Paragraphs", Align: text.AlignRight},
			{Header: "Status", Transform: colorStatus},
		}, rows))
	}

	matched := len(report.Results) - len(report.Unmatched())
	fmt.Fprintf(out, "%d paragraphs, %d of %d links matched\n", report.Paragraphs, matched, len(report.Results))

	for _, c := range report.Collisions {
		fmt.Fprintf(out, "warning: %q links to %s, overriding %s\n", c.Variation, c.URL, c.PreviousURL)
	}
}
