// Package domain contains the verification engine: file discovery, import
// resolution, rule evaluation and the workflow that drives them.
package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/cytsaiap-xyz/opencode-evals/internal/adapter"
	"github.com/cytsaiap-xyz/opencode-evals/internal/controller"
	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

// VerifyArgs contains the arguments for verifying scenarios.
type VerifyArgs struct {
	Paths   []m.Path
	Exclude []string
	Reports m.Path
	Save    bool
	Threads int
}

// ListArgs contains the arguments for listing scenario corpora.
type ListArgs struct {
	Paths   []m.Path
	Exclude []string
}

// ViewArgs contains the arguments for viewing saved reports.
type ViewArgs struct {
	Reports  m.Path
	Baseline m.Path
}

// Workflow drives whole runs over one or more scenarios.
type Workflow interface {
	Verify(ctx context.Context, args VerifyArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ScenarioLoader
	adapter.ReportStore
	Verifier

	ui           controller.UI
	scenarioFile string
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	loader adapter.ScenarioLoader,
	reportStore adapter.ReportStore,
	ui controller.UI,
	verifier Verifier,
	scenarioFile string,
) Workflow {
	if scenarioFile == "" {
		scenarioFile = adapter.DefaultScenarioFile
	}

	return &workflow{
		SourceFSAdapter: fsAdapter,
		ScenarioLoader:  loader,
		ReportStore:     reportStore,
		Verifier:        verifier,
		ui:              ui,
		scenarioFile:    scenarioFile,
	}
}

// Verify runs every scenario, at most Threads at a time, and reports in
// argument order. It returns ErrVerificationFailed when any rule failed.
func (w *workflow) Verify(ctx context.Context, args VerifyArgs) error {
	exclude, err := CompileExcludes(args.Exclude)
	if err != nil {
		return err
	}

	scenarios, err := w.loadScenarios(ctx, args.Paths)
	if err != nil {
		return err
	}

	reports := make([]m.VerificationReport, len(scenarios))

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Threads > 0 {
		group.SetLimit(args.Threads)
	}

	for i, scenario := range scenarios {
		group.Go(func() error {
			report, err := w.Run(groupCtx, scenario, exclude...)
			if err != nil {
				slog.Error("scenario could not be verified", "scenario", scenario.Name, "error", err)
				return fmt.Errorf("verify %s: %w", scenario.Name, err)
			}

			reports[i] = report

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if err := w.ui.DisplayReports(ctx, reports); err != nil {
		return fmt.Errorf("display reports: %w", err)
	}

	if args.Save {
		if err := w.SaveReports(ctx, args.Reports, reports); err != nil {
			return fmt.Errorf("save reports: %w", err)
		}
	}

	failed := 0

	for _, report := range reports {
		if !report.Passed() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d scenario(s)", ErrVerificationFailed, failed, len(reports))
	}

	return nil
}

// List shows which files each corpus of each scenario would be checked against.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	exclude, err := CompileExcludes(args.Exclude)
	if err != nil {
		return err
	}

	scenarios, err := w.loadScenarios(ctx, args.Paths)
	if err != nil {
		return err
	}

	var listings []m.CorpusListing

	for _, scenario := range scenarios {
		corpora, err := w.Gather(ctx, scenario, exclude...)
		if err != nil {
			return fmt.Errorf("list %s: %w", scenario.Name, err)
		}

		for _, corpus := range corpora {
			listings = append(listings, m.CorpusListing{
				Scenario: scenario.Name,
				Corpus:   corpus.Name,
				Files:    corpus.Paths(),
			})
		}
	}

	return w.ui.DisplayCorpora(ctx, listings)
}

// View displays saved reports and, with a baseline, the verdict diff.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.LoadReports(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.ui.DisplayReports(ctx, reports); err != nil {
		return fmt.Errorf("display reports: %w", err)
	}

	if args.Baseline == "" {
		return nil
	}

	baseline, err := w.LoadReports(ctx, args.Baseline)
	if err != nil {
		return fmt.Errorf("load baseline: %w", err)
	}

	diff, err := DiffReports(baseline, reports)
	if err != nil {
		return err
	}

	return w.ui.DisplayDiff(ctx, diff)
}

func (w *workflow) loadScenarios(ctx context.Context, paths []m.Path) ([]m.Scenario, error) {
	dirs, err := FindScenarios(ctx, w.SourceFSAdapter, paths, w.scenarioFile)
	if err != nil {
		return nil, fmt.Errorf("find scenarios: %w", err)
	}

	if len(dirs) == 0 {
		return nil, fmt.Errorf("no %s found under %v", w.scenarioFile, paths)
	}

	scenarios := make([]m.Scenario, 0, len(dirs))
	byReport := make(map[string]m.Path, len(dirs))

	for _, dir := range dirs {
		scenario, err := w.Load(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("load scenario: %w", err)
		}

		// reports are stored per name; a collision would overwrite one
		key := adapter.ReportFileName(scenario.Name)
		if prev, ok := byReport[key]; ok {
			return nil, fmt.Errorf("%w: %q in %s and %s, set a distinct name", ErrDuplicateScenario, scenario.Name, prev, dir)
		}

		byReport[key] = dir
		scenarios = append(scenarios, scenario)
	}

	slog.Debug("scenarios loaded", "count", len(scenarios))

	return scenarios, nil
}
