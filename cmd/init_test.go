package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cytsaiap-xyz/opencode-evals/internal/adapter"
	"github.com/cytsaiap-xyz/opencode-evals/internal/domain"
	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

func TestInitCmd_WritesConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})

	err = cmd.Execute()
	require.NoError(t, err)

	targetPath := filepath.Join(tempDir, configFileName)
	t.Cleanup(func() { _ = os.Remove(targetPath) })
	info, err := os.Stat(targetPath)
	require.NoError(t, err)
	require.False(t, info.IsDir())

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	require.NotEmpty(t, contents)
	require.Contains(t, string(contents), "scenario:")
	require.Contains(t, string(contents), "discovery:")
}

func TestInitCmd_ErrorsWhenFileExists(t *testing.T) {
	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	targetPath := filepath.Join(tempDir, configFileName)
	require.NoError(t, os.WriteFile(targetPath, []byte("existing: true\n"), 0o644))
	t.Cleanup(func() { _ = os.Remove(targetPath) })

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})

	err = cmd.Execute()
	require.Error(t, err)
}

func TestInitCmd_WritesStarterScenario(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "evals", "page")

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", dir})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), filepath.Join(dir, "scenario.yaml"))

	scenario, err := adapter.NewYAMLScenarioLoader("").Load(context.Background(), m.Path(dir))
	require.NoError(t, err)
	require.Equal(t, "page", scenario.Name)
	require.Len(t, scenario.Rules, 2)

	for _, spec := range scenario.Rules {
		_, err := domain.CompileRule(spec)
		require.NoError(t, err, spec.Name)
	}

	// a second run must not clobber the edited scenario
	again := newRootCmd()
	again.AddCommand(newInitCmd())
	again.SetOut(&bytes.Buffer{})
	again.SetErr(&bytes.Buffer{})
	again.SetArgs([]string{"init", dir})
	require.Error(t, again.Execute())
}
