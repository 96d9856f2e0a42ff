package model

// RuleResult is the outcome of one rule in a verification run.
type RuleResult struct {
	Rule   string `yaml:"rule" json:"rule"`
	Corpus string `yaml:"corpus,omitempty" json:"corpus,omitempty"`
	Passed bool   `yaml:"passed" json:"passed"`
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`
}

// VerificationReport holds every rule result of one scenario run, in
// declaration order.
type VerificationReport struct {
	Scenario string       `yaml:"scenario" json:"scenario"`
	Results  []RuleResult `yaml:"results" json:"results"`
}

// Passed is the logical AND over all results. An empty report passes.
func (r VerificationReport) Passed() bool {
	for _, result := range r.Results {
		if !result.Passed {
			return false
		}
	}

	return true
}

// Failed returns the results that did not pass.
func (r VerificationReport) Failed() []RuleResult {
	var failed []RuleResult

	for _, result := range r.Results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}

	return failed
}

// CorpusListing describes the files one corpus of a scenario was built from.
type CorpusListing struct {
	Scenario string
	Corpus   string
	Files    []Path
}
