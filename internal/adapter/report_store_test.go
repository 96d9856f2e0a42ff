package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

func TestYAMLReportStore_SaveAndLoad(t *testing.T) {
	store := NewReportStore()
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))

	reports := []m.VerificationReport{
		{
			Scenario: "b-scenario",
			Results: []m.RuleResult{
				{Rule: "uses after()", Corpus: "app", Passed: true},
			},
		},
		{
			Scenario: "a/scenario",
			Results: []m.RuleResult{
				{Rule: "no useState", Passed: false, Detail: `matched in app/Helper.tsx: "useState"`},
			},
		},
	}

	require.NoError(t, store.SaveReports(context.Background(), dir, reports))

	_, err := os.Stat(filepath.Join(string(dir), "a_scenario.yaml"))
	require.NoError(t, err)

	loaded, err := store.LoadReports(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, reports[1], loaded[0])
	assert.Equal(t, reports[0], loaded[1])
}

func TestYAMLReportStore_LoadIgnoresForeignFiles(t *testing.T) {
	store := NewReportStore()
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "notes.txt"), "hello")
	mustMkdir(t, filepath.Join(dir, "nested.yaml"))

	loaded, err := store.LoadReports(context.Background(), m.Path(dir))
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestYAMLReportStore_LoadMissingDir(t *testing.T) {
	_, err := NewReportStore().LoadReports(context.Background(), m.Path(filepath.Join(t.TempDir(), "missing")))
	require.Error(t, err)
}

func TestReportFileName(t *testing.T) {
	tests := []struct {
		scenario string
		want     string
	}{
		{"agent-036-after-response", "agent-036-after-response.yaml"},
		{"evals/02 api route", "evals_02_api_route.yaml"},
		{"///", "scenario.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			assert.Equal(t, tt.want, ReportFileName(tt.scenario))
		})
	}
}
