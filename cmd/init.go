package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// starterScenario is written by `init DIR`. The name is left out so it
// defaults to the directory name.
const starterScenario = `# Rules run against the files next to this scenario. EVAL.ts and
# PROMPT.md are never scanned.
corpora:
  - name: source
    strip_comments: c
  # - name: page
  #   mode: file
  #   file: app/page.tsx
rules:
  - name: page has a default export
    match: 'export\s+default\s+function'
  - name: no client directive
    polarity: must-not-hold
    match: "^['\"]use client['\"]"
`

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [scenario-dir]",
		Short: "Generate evalcheck.yaml or a starter scenario",
		Long: `Without arguments, create an evalcheck.yaml in the current working directory
populated with the current CLI defaults so it can be edited manually.

With a directory, write a starter scenario file into it. The scenario lists
the corpora to build (bulk, entry or file) and the rules each must satisfy.
Existing files are never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return writeStarterScenario(cmd, args[0], viper.GetString(scenarioFileConfigKey))
			}

			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("wrote %s\n", targetPath)

			return nil
		},
	}
}

func writeStarterScenario(cmd *cobra.Command, dir, fileName string) error {
	targetPath := filepath.Join(dir, fileName)

	if _, err := os.Stat(targetPath); err == nil {
		return fmt.Errorf("scenario file %s already exists", targetPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("check scenario file: %w", err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create scenario dir: %w", err)
	}

	if err := os.WriteFile(targetPath, []byte(starterScenario), 0o600); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}

	cmd.Printf("wrote %s\n", targetPath)

	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
