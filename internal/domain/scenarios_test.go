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

func TestFindScenarios(t *testing.T) {
	ctx := context.Background()
	fsAdapter := adapter.NewLocalSourceFSAdapter()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"evals/a/scenario.yaml":                "name: a",
		"evals/a/app/page.tsx":                 "",
		"evals/b/scenario.yaml":                "name: b",
		"evals/b/nested/scenario.yaml":         "name: nested",
		"evals/c/README.md":                    "",
		"evals/node_modules/pkg/scenario.yaml": "name: vendored",
		"evals/a/.git/scenario.yaml":           "name: git",
	})

	evals := filepath.Join(root, "evals")

	t.Run("recursive pattern", func(t *testing.T) {
		dirs, err := FindScenarios(ctx, fsAdapter, []m.Path{m.Path(evals + "/...")}, adapter.DefaultScenarioFile)
		require.NoError(t, err)
		assert.Equal(t, []m.Path{
			m.Path(filepath.Join(evals, "a")),
			m.Path(filepath.Join(evals, "b")),
			m.Path(filepath.Join(evals, "b", "nested")),
		}, dirs)
	})

	t.Run("plain directory", func(t *testing.T) {
		dir := m.Path(filepath.Join(evals, "b"))

		dirs, err := FindScenarios(ctx, fsAdapter, []m.Path{dir}, adapter.DefaultScenarioFile)
		require.NoError(t, err)
		assert.Equal(t, []m.Path{dir}, dirs)
	})

	t.Run("plain directory without scenario file", func(t *testing.T) {
		_, err := FindScenarios(ctx, fsAdapter, []m.Path{m.Path(filepath.Join(evals, "c"))}, adapter.DefaultScenarioFile)
		require.Error(t, err)
	})

	t.Run("missing recursive root", func(t *testing.T) {
		_, err := FindScenarios(ctx, fsAdapter, []m.Path{m.Path(filepath.Join(root, "nope") + "/...")}, adapter.DefaultScenarioFile)
		require.Error(t, err)
	})

	t.Run("repeated arguments collapse", func(t *testing.T) {
		dir := m.Path(filepath.Join(evals, "a"))

		dirs, err := FindScenarios(ctx, fsAdapter, []m.Path{dir, dir}, adapter.DefaultScenarioFile)
		require.NoError(t, err)
		assert.Equal(t, []m.Path{dir}, dirs)
	})

	t.Run("directory already covered by a recursive pattern is kept once", func(t *testing.T) {
		dirs, err := FindScenarios(ctx, fsAdapter, []m.Path{
			m.Path(evals + "/..."),
			m.Path(filepath.Join(evals, "a")),
			m.Path(filepath.Join(evals, "b") + "/"),
		}, adapter.DefaultScenarioFile)
		require.NoError(t, err)
		assert.Equal(t, []m.Path{
			m.Path(filepath.Join(evals, "a")),
			m.Path(filepath.Join(evals, "b")),
			m.Path(filepath.Join(evals, "b", "nested")),
		}, dirs)
	})

	t.Run("custom scenario file name", func(t *testing.T) {
		writeFile(t, filepath.Join(evals, "c", "check.yaml"), "name: c")

		dirs, err := FindScenarios(ctx, fsAdapter, []m.Path{m.Path(evals + "/...")}, "check.yaml")
		require.NoError(t, err)
		assert.Equal(t, []m.Path{m.Path(filepath.Join(evals, "c"))}, dirs)
	})
}
