package domain

import (
	"fmt"
	"strings"

	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

const guardSkippedDetail = "skipped: guard not satisfied"

// Rule is a named predicate with the outcome it is required to have.
type Rule struct {
	Name      string
	Corpus    string
	Predicate Predicate
	Polarity  m.Polarity
	// Guard, when set, must hold for the rule to be checked at all.
	Guard Predicate
}

// MustHoldRule builds a rule that passes when p holds.
func MustHoldRule(name string, p Predicate) Rule {
	return Rule{Name: name, Predicate: p, Polarity: m.MustHold}
}

// MustNotHoldRule builds a rule that passes when p does not hold.
func MustNotHoldRule(name string, p Predicate) Rule {
	return Rule{Name: name, Predicate: p, Polarity: m.MustNotHold}
}

// CompileRule turns a declarative rule into a Rule, failing on any
// malformed pattern or ambiguous predicate node.
func CompileRule(spec m.RuleSpec) (Rule, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return Rule{}, fmt.Errorf("%w: rule without a name", ErrInvalidRule)
	}

	polarity := spec.Polarity
	switch polarity {
	case "":
		polarity = m.MustHold
	case m.MustHold, m.MustNotHold:
	default:
		return Rule{}, fmt.Errorf("%w: rule %q: unknown polarity %q", ErrInvalidRule, spec.Name, polarity)
	}

	pred, err := CompilePredicate(spec.PredicateSpec)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", spec.Name, err)
	}

	rule := Rule{
		Name:      spec.Name,
		Corpus:    spec.Corpus,
		Predicate: pred,
		Polarity:  polarity,
	}

	if spec.When != nil {
		guard, err := CompilePredicate(*spec.When)
		if err != nil {
			return Rule{}, fmt.Errorf("rule %q guard: %w", spec.Name, err)
		}

		rule.Guard = guard
	}

	return rule, nil
}

// CompilePredicate builds a predicate tree. Each node must set exactly one field.
//
//nolint:cyclop // one branch per predicate kind
func CompilePredicate(spec m.PredicateSpec) (Predicate, error) {
	if n := countKinds(spec); n != 1 {
		return nil, fmt.Errorf("%w: predicate must set exactly one of match, contains, has_file, all_of, any_of, not, in_same_file (got %d)", ErrInvalidRule, n)
	}

	switch {
	case spec.Match != "":
		return Match(spec.Match)
	case spec.Contains != "":
		return Contains(spec.Contains), nil
	case spec.HasFile != "":
		return HasFile(spec.HasFile)
	case spec.AllOf != nil:
		preds, err := compileAll(spec.AllOf)
		if err != nil {
			return nil, err
		}

		return AllOf(preds...), nil
	case spec.AnyOf != nil:
		preds, err := compileAll(spec.AnyOf)
		if err != nil {
			return nil, err
		}

		return AnyOf(preds...), nil
	case spec.Not != nil:
		inner, err := CompilePredicate(*spec.Not)
		if err != nil {
			return nil, err
		}

		return Not(inner), nil
	default:
		inner, err := CompilePredicate(*spec.InSameFile)
		if err != nil {
			return nil, err
		}

		return InSameFile(inner), nil
	}
}

func compileAll(specs []m.PredicateSpec) ([]Predicate, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: empty predicate list", ErrInvalidRule)
	}

	preds := make([]Predicate, 0, len(specs))

	for _, s := range specs {
		p, err := CompilePredicate(s)
		if err != nil {
			return nil, err
		}

		preds = append(preds, p)
	}

	return preds, nil
}

func countKinds(spec m.PredicateSpec) int {
	n := 0

	for _, set := range []bool{
		spec.Match != "",
		spec.Contains != "",
		spec.HasFile != "",
		spec.AllOf != nil,
		spec.AnyOf != nil,
		spec.Not != nil,
		spec.InSameFile != nil,
	} {
		if set {
			n++
		}
	}

	return n
}
