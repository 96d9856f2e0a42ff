package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cytsaiap-xyz/opencode-evals/internal/adapter"
	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

// DefaultSuccessMarker is matched against external output when a check
// names no marker of its own.
const DefaultSuccessMarker = `(?i)pass`

const maxDetailOutput = 2000

// ExternalCheck runs an opaque process and turns its outcome into one
// rule result.
type ExternalCheck struct {
	Name    string
	Dir     m.Path
	Command []string
	Target  string
	Marker  *regexp.Regexp
	Timeout time.Duration
}

// CompileExternal validates an external check definition.
func CompileExternal(spec m.ExternalSpec) (ExternalCheck, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return ExternalCheck{}, fmt.Errorf("%w: external check without a name", ErrInvalidRule)
	}

	if len(spec.Command) == 0 || strings.TrimSpace(spec.Command[0]) == "" {
		return ExternalCheck{}, fmt.Errorf("%w: external check %q has no command", ErrInvalidRule, spec.Name)
	}

	marker := spec.Marker
	if marker == "" {
		marker = DefaultSuccessMarker
	}

	re, err := regexp.Compile(marker)
	if err != nil {
		return ExternalCheck{}, fmt.Errorf("%w: external check %q marker: %w", ErrInvalidRule, spec.Name, err)
	}

	return ExternalCheck{
		Name:    spec.Name,
		Dir:     spec.Dir,
		Command: spec.Command,
		Target:  spec.Target,
		Marker:  re,
		Timeout: spec.Timeout,
	}, nil
}

// Run invokes the process in projectRoot/Dir. A non-zero exit, a crash or
// a missing marker is a failed result carrying the process output; it is
// never returned as an error and never retried.
func (e ExternalCheck) Run(ctx context.Context, runner adapter.CommandRunnerAdapter, projectRoot m.Path) m.RuleResult {
	result := m.RuleResult{Rule: e.Name, Corpus: "external"}

	workDir := string(projectRoot)
	if e.Dir != "" {
		workDir = filepath.Join(workDir, string(e.Dir))
	}

	args := append([]string{}, e.Command[1:]...)
	if e.Target != "" {
		args = append(args, e.Target)
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	output, err := runner.Run(ctx, workDir, e.Command[0], args...)
	if err != nil {
		slog.Warn("external check failed", "check", e.Name, "dir", workDir, "error", err)
		result.Detail = fmt.Sprintf("%v\n%s", err, tail(output, maxDetailOutput))

		return result
	}

	if !e.Marker.MatchString(output) {
		result.Detail = fmt.Sprintf("output does not match /%s/\n%s", e.Marker, tail(output, maxDetailOutput))
		return result
	}

	result.Passed = true
	result.Detail = fmt.Sprintf("output matched /%s/", e.Marker)

	return result
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}

	start := len(s) - n
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}

	return "…" + s[start:]
}
