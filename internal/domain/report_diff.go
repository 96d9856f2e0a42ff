package domain

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

// DiffReports renders both report sets as one verdict line per rule and
// returns their unified diff. Identical verdicts yield an empty string.
func DiffReports(baseline, current []m.VerificationReport) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        verdictLines(baseline),
		B:        verdictLines(current),
		FromFile: "baseline",
		ToFile:   "current",
		Context:  1,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff reports: %w", err)
	}

	return text, nil
}

func verdictLines(reports []m.VerificationReport) []string {
	var lines []string

	for _, report := range reports {
		for _, result := range report.Results {
			lines = append(lines, fmt.Sprintf("%s :: %s :: %s\n", report.Scenario, result.Rule, verdict(result.Passed)))
		}
	}

	return lines
}

func verdict(passed bool) string {
	if passed {
		return "PASS"
	}

	return "FAIL"
}
