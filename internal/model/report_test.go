package model

import "testing"

func TestVerificationReport_Passed(t *testing.T) {
	tests := []struct {
		name    string
		results []RuleResult
		want    bool
		failed  int
	}{
		{name: "empty report passes", want: true},
		{name: "all passing", results: []RuleResult{{Rule: "a", Passed: true}, {Rule: "b", Passed: true}}, want: true},
		{name: "one failing", results: []RuleResult{{Rule: "a", Passed: true}, {Rule: "b"}}, want: false, failed: 1},
		{name: "all failing", results: []RuleResult{{Rule: "a"}, {Rule: "b"}}, want: false, failed: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := VerificationReport{Scenario: "s", Results: tt.results}

			if got := report.Passed(); got != tt.want {
				t.Errorf("Passed() = %v, want %v", got, tt.want)
			}

			if got := len(report.Failed()); got != tt.failed {
				t.Errorf("len(Failed()) = %d, want %d", got, tt.failed)
			}
		})
	}
}
