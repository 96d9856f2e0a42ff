package model

import "time"

// Polarity is the outcome a rule's predicate is required to have.
type Polarity string

const (
	// MustHold passes when the predicate is true.
	MustHold Polarity = "must-hold"
	// MustNotHold passes when the predicate is false.
	MustNotHold Polarity = "must-not-hold"
)

// CorpusMode selects how a corpus gathers its files.
type CorpusMode string

const (
	// ModeBulk scans a whole subtree.
	ModeBulk CorpusMode = "bulk"
	// ModeEntry starts at one file and follows its local imports.
	ModeEntry CorpusMode = "entry"
	// ModeFile is the content of a single file, imports ignored.
	ModeFile CorpusMode = "file"
)

// Scenario is the declarative description of one benchmark task check.
type Scenario struct {
	Name      string         `yaml:"name"`
	Project   Path           `yaml:"project,omitempty"`
	Discovery DiscoverySpec  `yaml:"discovery,omitempty"`
	Corpora   []CorpusSpec   `yaml:"corpora"`
	Rules     []RuleSpec     `yaml:"rules"`
	External  []ExternalSpec `yaml:"external,omitempty"`

	// Dir is the directory the scenario file was loaded from.
	Dir Path `yaml:"-"`
}

// DiscoverySpec overrides the discovery defaults for a scenario.
type DiscoverySpec struct {
	Extensions  []string `yaml:"extensions,omitempty"`
	IgnoreDirs  []string `yaml:"ignore_dirs,omitempty"`
	IgnoreFiles []string `yaml:"ignore_files,omitempty"`
}

// CorpusSpec declares one named body of text rules can be routed to.
type CorpusSpec struct {
	Name          string     `yaml:"name"`
	Mode          CorpusMode `yaml:"mode"`
	Dir           Path       `yaml:"dir,omitempty"`
	Entry         Path       `yaml:"entry,omitempty"`
	File          Path       `yaml:"file,omitempty"`
	Depth         int        `yaml:"depth,omitempty"`
	StripComments string     `yaml:"strip_comments,omitempty"`
}

// PredicateSpec is one node of a predicate tree. Exactly one field is set.
type PredicateSpec struct {
	Match      string          `yaml:"match,omitempty"`
	Contains   string          `yaml:"contains,omitempty"`
	HasFile    string          `yaml:"has_file,omitempty"`
	AllOf      []PredicateSpec `yaml:"all_of,omitempty"`
	AnyOf      []PredicateSpec `yaml:"any_of,omitempty"`
	Not        *PredicateSpec  `yaml:"not,omitempty"`
	InSameFile *PredicateSpec  `yaml:"in_same_file,omitempty"`
}

// RuleSpec is a named predicate with a required polarity.
type RuleSpec struct {
	Name          string         `yaml:"name"`
	Corpus        string         `yaml:"corpus,omitempty"`
	Polarity      Polarity       `yaml:"polarity,omitempty"`
	When          *PredicateSpec `yaml:"when,omitempty"`
	PredicateSpec `yaml:",inline"`
}

// ExternalSpec describes an opaque process whose output yields one result.
type ExternalSpec struct {
	Name    string        `yaml:"name"`
	Dir     Path          `yaml:"dir,omitempty"`
	Command []string      `yaml:"command"`
	Target  string        `yaml:"target,omitempty"`
	Marker  string        `yaml:"marker,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
