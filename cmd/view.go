package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cytsaiap-xyz/opencode-evals/internal/domain"
	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

var viewBaselineFlag string

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously saved verification reports",
		Long: `View previously saved verification reports from the reports directory.
With --baseline, also print a unified diff of rule verdicts against another
reports directory.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{
				Reports:  m.Path(viper.GetString(outputFlagName)),
				Baseline: m.Path(viewBaselineFlag),
			})
		},
	}

	cmd.Flags().StringVar(&viewBaselineFlag, baselineFlagName, "", "reports directory to diff verdicts against")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
