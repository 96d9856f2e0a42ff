package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/cytsaiap-xyz/opencode-evals/internal/adapter"
	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

// DefaultCorpusName is used when a scenario declares no corpora.
const DefaultCorpusName = "source"

// VerifierOptions carry the operator-level defaults a scenario can override.
type VerifierOptions struct {
	Discovery m.DiscoverySpec
	// ScenarioFile is always excluded from discovery.
	ScenarioFile string
}

// Verifier gathers the corpora of a scenario and evaluates its rules.
// Discovered files whose project-relative path matches any exclude
// pattern are dropped before a corpus is built.
type Verifier interface {
	Run(ctx context.Context, scenario m.Scenario, exclude ...*regexp.Regexp) (m.VerificationReport, error)
	Gather(ctx context.Context, scenario m.Scenario, exclude ...*regexp.Regexp) ([]Corpus, error)
}

type verifier struct {
	fsAdapter adapter.SourceFSAdapter
	runner    adapter.CommandRunnerAdapter
	catalog   FileCatalog
	opts      VerifierOptions
}

// NewVerifier constructs a Verifier over the given adapters.
func NewVerifier(fsAdapter adapter.SourceFSAdapter, runner adapter.CommandRunnerAdapter, opts VerifierOptions) Verifier {
	return &verifier{
		fsAdapter: fsAdapter,
		runner:    runner,
		catalog:   NewFileCatalog(fsAdapter),
		opts:      opts,
	}
}

type corpusPlan struct {
	spec m.CorpusSpec
	pre  Preprocessor
}

type scenarioPlan struct {
	project   m.Path
	discovery m.DiscoveryConfig
	corpora   []corpusPlan
	rules     []Rule
	externals []ExternalCheck
}

// Run compiles the scenario, builds its corpora, evaluates every rule
// against its routed corpus and appends external check results. Any
// configuration error is returned before a single file is read.
func (v *verifier) Run(ctx context.Context, scenario m.Scenario, exclude ...*regexp.Regexp) (m.VerificationReport, error) {
	plan, err := v.compile(ctx, scenario)
	if err != nil {
		return m.VerificationReport{}, err
	}

	corpora, err := v.build(ctx, plan, exclude)
	if err != nil {
		return m.VerificationReport{}, err
	}

	byName := make(map[string]Corpus, len(corpora))
	for _, c := range corpora {
		byName[c.Name] = c
	}

	report := m.VerificationReport{
		Scenario: scenario.Name,
		Results:  make([]m.RuleResult, 0, len(plan.rules)+len(plan.externals)),
	}

	for _, rule := range plan.rules {
		report.Results = append(report.Results, EvaluateRule(rule, byName[rule.Corpus]))
	}

	for _, check := range plan.externals {
		report.Results = append(report.Results, check.Run(ctx, v.runner, plan.project))
	}

	slog.Info("scenario verified", "scenario", scenario.Name, "rules", len(report.Results), "passed", report.Passed())

	return report, nil
}

// Gather builds the scenario's corpora without evaluating anything.
func (v *verifier) Gather(ctx context.Context, scenario m.Scenario, exclude ...*regexp.Regexp) ([]Corpus, error) {
	plan, err := v.compile(ctx, scenario)
	if err != nil {
		return nil, err
	}

	return v.build(ctx, plan, exclude)
}

func (v *verifier) compile(ctx context.Context, scenario m.Scenario) (scenarioPlan, error) {
	plan := scenarioPlan{
		project:   v.projectRoot(ctx, scenario),
		discovery: v.discoveryConfig(scenario),
	}

	specs := scenario.Corpora
	if len(specs) == 0 {
		specs = []m.CorpusSpec{{Name: DefaultCorpusName, Mode: m.ModeBulk}}
	}

	names := make(map[string]bool, len(specs))

	for _, spec := range specs {
		if spec.Name == "" {
			return plan, fmt.Errorf("%w: scenario %q: corpus without a name", ErrInvalidCorpus, scenario.Name)
		}

		if names[spec.Name] {
			return plan, fmt.Errorf("%w: scenario %q: duplicate corpus %q", ErrInvalidCorpus, scenario.Name, spec.Name)
		}

		names[spec.Name] = true

		if spec.Mode == "" {
			spec.Mode = m.ModeBulk
		}

		switch spec.Mode {
		case m.ModeBulk:
		case m.ModeEntry:
			if spec.Entry == "" {
				return plan, fmt.Errorf("%w: scenario %q: entry corpus %q has no entry file", ErrInvalidCorpus, scenario.Name, spec.Name)
			}
		case m.ModeFile:
			if spec.File == "" {
				return plan, fmt.Errorf("%w: scenario %q: file corpus %q has no file", ErrInvalidCorpus, scenario.Name, spec.Name)
			}
		default:
			return plan, fmt.Errorf("%w: scenario %q: corpus %q has unknown mode %q", ErrInvalidCorpus, scenario.Name, spec.Name, spec.Mode)
		}

		pre, err := PreprocessorByName(spec.StripComments)
		if err != nil {
			return plan, fmt.Errorf("scenario %q corpus %q: %w", scenario.Name, spec.Name, err)
		}

		plan.corpora = append(plan.corpora, corpusPlan{spec: spec, pre: pre})
	}

	for _, ruleSpec := range scenario.Rules {
		rule, err := CompileRule(ruleSpec)
		if err != nil {
			return plan, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		if rule.Corpus == "" {
			rule.Corpus = specs[0].Name
		}

		if !names[rule.Corpus] {
			return plan, fmt.Errorf("%w: scenario %q rule %q routes to %q", ErrUnknownCorpus, scenario.Name, rule.Name, rule.Corpus)
		}

		plan.rules = append(plan.rules, rule)
	}

	for _, extSpec := range scenario.External {
		check, err := CompileExternal(extSpec)
		if err != nil {
			return plan, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		plan.externals = append(plan.externals, check)
	}

	return plan, nil
}

// CompileExcludes compiles exclude patterns, rejecting the first malformed one.
func CompileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: exclude pattern %q: %w", ErrInvalidRule, pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func (v *verifier) build(ctx context.Context, plan scenarioPlan, exclude []*regexp.Regexp) ([]Corpus, error) {
	corpora := make([]Corpus, 0, len(plan.corpora))

	for _, cp := range plan.corpora {
		files, err := v.gatherFiles(ctx, plan, cp.spec)
		if err != nil {
			return nil, fmt.Errorf("corpus %q: %w", cp.spec.Name, err)
		}

		corpora = append(corpora, NewCorpus(cp.spec.Name, filterExcluded(files, exclude), cp.pre))
	}

	return corpora, nil
}

func (v *verifier) gatherFiles(ctx context.Context, plan scenarioPlan, spec m.CorpusSpec) ([]m.SourceFile, error) {
	switch spec.Mode {
	case m.ModeEntry:
		resolver := NewImportResolver(v.fsAdapter, ResolverConfig{Depth: spec.Depth})
		return resolver.ResolveFromEntry(ctx, plan.project, spec.Entry)
	case m.ModeFile:
		resolver := NewImportResolver(v.fsAdapter, ResolverConfig{Depth: EntryOnly})
		return resolver.ResolveFromEntry(ctx, plan.project, spec.File)
	}

	dir := path.Clean(filepath.ToSlash(string(spec.Dir)))
	root := plan.project

	if dir != "." {
		root = v.fsAdapter.JoinPath(ctx, string(plan.project), filepath.FromSlash(dir))
	}

	files, err := v.catalog.Discover(ctx, plan.discovery.WithRoot(root))
	if err != nil {
		return nil, err
	}

	// keep short paths project-relative so has_file globs read naturally
	if dir != "." {
		for i := range files {
			files[i].ShortPath = m.Path(path.Join(dir, string(files[i].ShortPath)))
		}
	}

	return files, nil
}

func filterExcluded(files []m.SourceFile, exclude []*regexp.Regexp) []m.SourceFile {
	if len(exclude) == 0 {
		return files
	}

	kept := make([]m.SourceFile, 0, len(files))

	for _, file := range files {
		if slices.ContainsFunc(exclude, func(re *regexp.Regexp) bool {
			return re.MatchString(string(file.ShortPath))
		}) {
			slog.Debug("excluded by pattern", "path", file.ShortPath)
			continue
		}

		kept = append(kept, file)
	}

	return kept
}

func (v *verifier) projectRoot(ctx context.Context, scenario m.Scenario) m.Path {
	project := scenario.Project
	if project == "" {
		project = "."
	}

	if filepath.IsAbs(string(project)) {
		return project
	}

	return v.fsAdapter.JoinPath(ctx, string(scenario.Dir), string(project))
}

// discoveryConfig layers model defaults, operator options and scenario
// overrides. Non-empty lists replace the layer below, except that ignored
// file names always keep the harness files.
func (v *verifier) discoveryConfig(scenario m.Scenario) m.DiscoveryConfig {
	cfg := m.DefaultDiscoveryConfig("")

	for _, layer := range []m.DiscoverySpec{v.opts.Discovery, scenario.Discovery} {
		if len(layer.Extensions) > 0 {
			cfg.AllowedExtensions = slices.Clone(layer.Extensions)
		}

		if len(layer.IgnoreDirs) > 0 {
			cfg.IgnoredDirNames = slices.Clone(layer.IgnoreDirs)
		}

		if len(layer.IgnoreFiles) > 0 {
			cfg.IgnoredFileNames = slices.Clone(layer.IgnoreFiles)
		}
	}

	scenarioFile := v.opts.ScenarioFile
	if scenarioFile == "" {
		scenarioFile = adapter.DefaultScenarioFile
	}

	// harness files and the scenario itself are never scanned, whatever the layers say
	for _, name := range append(slices.Clone(m.DefaultIgnoredFiles), scenarioFile) {
		if !slices.Contains(cfg.IgnoredFileNames, name) {
			cfg.IgnoredFileNames = append(cfg.IgnoredFileNames, name)
		}
	}

	return cfg
}
