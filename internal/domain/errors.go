package domain

import "errors"

var (
	// ErrVerificationFailed is returned when at least one scenario has a failing rule.
	ErrVerificationFailed = errors.New("verification failed")
	// ErrInvalidRule marks a rule definition that cannot be compiled.
	ErrInvalidRule = errors.New("invalid rule")
	// ErrUnknownCorpus marks a rule routed to a corpus the scenario does not declare.
	ErrUnknownCorpus = errors.New("unknown corpus")
	// ErrInvalidCorpus marks a corpus definition that cannot be built.
	ErrInvalidCorpus = errors.New("invalid corpus")
	// ErrDuplicateScenario marks two scenarios whose reports would share a file.
	ErrDuplicateScenario = errors.New("duplicate scenario")
)
