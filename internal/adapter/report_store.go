package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

const reportExt = ".yaml"

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ReportStore persists verification reports between runs.
type ReportStore interface {
	SaveReports(ctx context.Context, dir m.Path, reports []m.VerificationReport) error
	LoadReports(ctx context.Context, dir m.Path) ([]m.VerificationReport, error)
}

// YAMLReportStore writes one YAML document per scenario into a directory.
type YAMLReportStore struct{}

// NewReportStore constructs the YAML-backed ReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReports writes every report to dir, replacing earlier reports of the
// same scenario.
func (s *YAMLReportStore) SaveReports(ctx context.Context, dir m.Path, reports []m.VerificationReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	for _, report := range reports {
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("encode report %s: %w", report.Scenario, err)
		}

		target := filepath.Join(string(dir), ReportFileName(report.Scenario))
		if err := os.WriteFile(target, data, 0o600); err != nil {
			return fmt.Errorf("write report %s: %w", target, err)
		}
	}

	return nil
}

// LoadReports reads every report in dir, ordered by scenario name.
func (s *YAMLReportStore) LoadReports(ctx context.Context, dir m.Path) ([]m.VerificationReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	reports := make([]m.VerificationReport, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != reportExt {
			continue
		}

		path := filepath.Join(string(dir), entry.Name())

		// #nosec G304 - reports dir is operator supplied
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read report %s: %w", path, err)
		}

		var report m.VerificationReport
		if err := yaml.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("decode report %s: %w", path, err)
		}

		reports = append(reports, report)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Scenario < reports[j].Scenario
	})

	return reports, nil
}

// ReportFileName maps a scenario name to its report file name.
func ReportFileName(scenario string) string {
	name := strings.Trim(unsafeNameChars.ReplaceAllString(scenario, "_"), "_")
	if name == "" {
		name = "scenario"
	}

	return name + reportExt
}
