// Package cmd provides the root command and CLI setup for evalcheck.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cytsaiap-xyz/opencode-evals/internal/adapter"
	"github.com/cytsaiap-xyz/opencode-evals/internal/controller"
	"github.com/cytsaiap-xyz/opencode-evals/internal/domain"
	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var scenarioLoader adapter.ScenarioLoader
var reportStore adapter.ReportStore
var commandRunner adapter.CommandRunnerAdapter
var verifier domain.Verifier
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// noSaveFlag skips persisting reports after a run.
var noSaveFlag bool

// excludePatterns is a root-level flag that filters discovered files.
var excludePatterns []string

var verboseFlag bool
var logFileFlag string

func init() {
	scenarioFile := viper.GetString(scenarioFileConfigKey)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	scenarioLoader = adapter.NewYAMLScenarioLoader(scenarioFile)
	reportStore = adapter.NewReportStore()
	commandRunner = adapter.NewLocalCommandRunnerAdapter(commandTimeout())
	verifier = domain.NewVerifier(fsAdapter, commandRunner, domain.VerifierOptions{
		Discovery:    discoverySpec(),
		ScenarioFile: scenarioFile,
	})
	workflow = domain.NewWorkflow(
		fsAdapter,
		scenarioLoader,
		reportStore,
		ui,
		verifier,
		scenarioFile,
	)
}

const pathPatternsHelp = `Scenario paths follow Go-style patterns:
  - ./...             every scenario below the current directory
  - ./evals/...       every scenario below evals
  - ./evals/agent-01  a single scenario directory`

const rootLongDescription = `evalcheck decides pass/fail for agent benchmark scenarios by statically
inspecting the files the agent produced. Each scenario directory holds a
scenario.yaml declaring corpora (bulk walks or entry-point import closures)
and the rules that must or must not hold over them.

` + pathPatternsHelp

const runLongDescription = `Verify the given scenarios (default: every scenario below the current directory).
Exits with status 1 when any rule fails.

` + pathPatternsHelp

const listLongDescription = `List the files every corpus of every scenario would be evaluated against.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evalcheck",
		Short: "Static source-pattern verification for agent benchmarks",
		Long:  rootLongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// flags parsed fine; errors from here on are verdicts, not usage mistakes
			cmd.SilenceUsage = true

			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			if configErr != nil {
				slog.Error("config file rejected", "error", configErr)
				return configErr
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for verification reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVar(&noSaveFlag, noSaveFlagName, viper.GetBool(noSaveFlagName), "do not write reports to the output directory")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noSaveFlagName), noSaveFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
