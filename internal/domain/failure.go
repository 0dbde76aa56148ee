package domain

import (
	"errors"
	"fmt"
)

// Detector exit status contract.
const (
	ExitConsistent    = 0
	ExitContradiction = 1
)

// FailureKind classifies why a test case failed.
type FailureKind string

const (
	FailureNone               FailureKind = ""
	FailureSpawn              FailureKind = "spawn_failure"
	FailureUnexpectedExitCode FailureKind = "unexpected_exit_code"
	FailureExitCodeMismatch   FailureKind = "exit_code_mismatch"
	FailureTimeout            FailureKind = "timeout"
)

var (
	// ErrNoTestCases means nothing was scheduled, which is a misconfiguration.
	ErrNoTestCases = errors.New("no test cases were scheduled")
	// ErrVerdictFailed means at least one scheduled test case failed.
	ErrVerdictFailed = errors.New("one or more test cases failed")
)

// MissingExecutableError is fatal: the run cannot proceed without the detector.
type MissingExecutableError struct {
	Path   string
	Reason string
	Hint   string
}

func (e *MissingExecutableError) Error() string {
	msg := fmt.Sprintf("detector executable not found: %s", e.Path)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	if e.Hint != "" {
		msg += "; " + e.Hint
	}
	return msg
}
