package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cytsaiap-xyz/opencode-evals/internal/domain"
	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

var runParallelFlag int

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [scenario-paths...]",
		Short: "Verify scenarios",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Verify(cmd.Context(), domain.VerifyArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Reports: m.Path(viper.GetString(outputFlagName)),
				Save:    !viper.GetBool(noSaveFlagName),
				Threads: viper.GetInt(runParallelConfigKey),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of scenarios verified concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)
}
