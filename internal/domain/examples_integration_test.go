package domain

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cytsaiap-xyz/opencode-evals/internal/adapter"
	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

func examplesDir(name string) m.Path {
	return m.Path(filepath.Join("..", "..", "examples", name))
}

func verifyExample(t *testing.T, name string) m.VerificationReport {
	t.Helper()

	ctx := context.Background()

	scenario, err := adapter.NewYAMLScenarioLoader("").Load(ctx, examplesDir(name))
	require.NoError(t, err)

	report, err := newTestVerifier(nil, VerifierOptions{}).Run(ctx, scenario)
	require.NoError(t, err)

	return report
}

func TestExamplesIntegration(t *testing.T) {
	t.Run("finds every example scenario", func(t *testing.T) {
		ctx := context.Background()
		fsAdapter := adapter.NewLocalSourceFSAdapter()

		found, err := FindScenarios(ctx, fsAdapter, []m.Path{m.Path(filepath.Join("..", "..", "examples")) + "/..."}, adapter.DefaultScenarioFile)
		require.NoError(t, err)

		assert.Equal(t, []m.Path{
			examplesDir("after-response"),
			examplesDir("proxy-migration"),
			examplesDir("server-actions"),
			examplesDir("server-component"),
		}, found)
	})

	t.Run("after-response passes once comments are stripped", func(t *testing.T) {
		report := verifyExample(t, "after-response")

		assert.Equal(t, "after-response", report.Scenario)
		require.Len(t, report.Results, 4)
		assert.True(t, report.Passed(), "%+v", report.Results)
		assert.Equal(t, "page", report.Results[3].Corpus)
		assert.Equal(t, `found "after(() =>" in app/page.tsx`, report.Results[3].Detail)
	})

	t.Run("server-component fails on the hook in the imported helper", func(t *testing.T) {
		report := verifyExample(t, "server-component")

		require.Len(t, report.Results, 2)
		assert.True(t, report.Results[0].Passed)

		hooks := report.Results[1]
		assert.False(t, hooks.Passed)
		assert.Equal(t, "widget", hooks.Corpus)
		assert.Contains(t, hooks.Detail, "app/Helper.tsx")
		assert.Len(t, report.Failed(), 1)
	})

	t.Run("proxy-migration skips the guarded rule", func(t *testing.T) {
		report := verifyExample(t, "proxy-migration")

		require.Len(t, report.Results, 4)
		assert.True(t, report.Passed(), "%+v", report.Results)
		assert.Equal(t, "found src/proxy.ts", report.Results[0].Detail)
		assert.Equal(t, guardSkippedDetail, report.Results[3].Detail)
	})

	t.Run("server-actions checks both markers in one file", func(t *testing.T) {
		report := verifyExample(t, "server-actions")

		require.Len(t, report.Results, 3)
		assert.True(t, report.Passed(), "%+v", report.Results)
		assert.Contains(t, report.Results[0].Detail, "app/posts/actions.ts")
	})
}
