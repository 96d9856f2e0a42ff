package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

const (
	passLabel = "PASS"
	failLabel = "FAIL"
)

// SimpleUI implements UI with plain tables written to the command output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayReports prints one table row per rule and a summary footer.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.VerificationReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		s.printf("No reports found\n")
		return nil
	}

	s.printf("\n%s", renderReportTable(reports))
	s.printf("%s\n", summaryLine(reports))

	return nil
}

// DisplayCorpora prints the files behind each corpus.
func (s *SimpleUI) DisplayCorpora(ctx context.Context, listings []m.CorpusListing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderCorpusTable(listings))

	return nil
}

// DisplayDiff prints a unified verdict diff.
func (s *SimpleUI) DisplayDiff(ctx context.Context, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		s.printf("No verdict changes against baseline\n")
		return nil
	}

	s.printf("\n%s", diff)

	return nil
}

func renderReportTable(reports []m.VerificationReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Scenario", "Rule", "Result", "Detail"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	rules, passed := 0, 0

	for _, report := range reports {
		for _, result := range report.Results {
			table.Append([]string{report.Scenario, result.Rule, resultLabel(result.Passed), firstLine(result.Detail)})

			rules++

			if result.Passed {
				passed++
			}
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Scenarios %d", len(reports)),
		fmt.Sprintf("Rules %d", rules),
		fmt.Sprintf("%d passed", passed),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func renderCorpusTable(listings []m.CorpusListing) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Scenario", "Corpus", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	files := 0

	for _, listing := range listings {
		if len(listing.Files) == 0 {
			table.Append([]string{listing.Scenario, listing.Corpus, "(none)"})
			continue
		}

		for _, file := range listing.Files {
			table.Append([]string{listing.Scenario, listing.Corpus, string(file)})
		}

		files += len(listing.Files)
	}

	table.SetFooter([]string{"", fmt.Sprintf("Corpora %d", len(listings)), fmt.Sprintf("Files %d", files)})
	table.Render()

	return tableBuffer.String()
}

func summaryLine(reports []m.VerificationReport) string {
	failed := make([]string, 0)

	for _, report := range reports {
		if !report.Passed() {
			failed = append(failed, report.Scenario)
		}
	}

	if len(failed) == 0 {
		return fmt.Sprintf("All %d scenario(s) passed", len(reports))
	}

	return fmt.Sprintf("%d of %d scenario(s) failed: %s", len(failed), len(reports), strings.Join(failed, ", "))
}

func resultLabel(passed bool) string {
	if passed {
		return passLabel
	}

	return failLabel
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
