package domain

import (
	"log/slog"

	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

// RuleSet is an ordered collection of rules.
type RuleSet []Rule

// Evaluate runs every rule against the same corpus in declaration order.
// Nothing short-circuits: N rules always yield N results.
func (rs RuleSet) Evaluate(corpus Corpus) m.VerificationReport {
	report := m.VerificationReport{Results: make([]m.RuleResult, 0, len(rs))}

	for _, rule := range rs {
		report.Results = append(report.Results, EvaluateRule(rule, corpus))
	}

	return report
}

// EvaluateRule checks one rule. A guarded rule whose guard does not hold
// passes without evaluating its predicate.
func EvaluateRule(rule Rule, corpus Corpus) m.RuleResult {
	result := m.RuleResult{Rule: rule.Name, Corpus: corpus.Name}

	if rule.Guard != nil {
		if ok, _ := rule.Guard.Holds(corpus); !ok {
			result.Passed = true
			result.Detail = guardSkippedDetail

			return result
		}
	}

	holds, detail := rule.Predicate.Holds(corpus)
	result.Passed = holds == (rule.Polarity != m.MustNotHold)
	result.Detail = detail

	if !result.Passed {
		slog.Debug("rule failed", "rule", rule.Name, "corpus", corpus.Name, "detail", detail)
	}

	return result
}
