package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. Every failure that reaches the process
// boundary carries exactly one kind, which selects the exit code.
type Kind int

const (
	// KindUnclassified is anything not caught by a more specific kind.
	KindUnclassified Kind = iota
	// KindUsage means no or invalid command-line arguments were supplied.
	KindUsage
	// KindConfigNotFound means the config file is missing or not a regular file.
	KindConfigNotFound
	// KindMalformedInput means the config file is not parseable JSON.
	KindMalformedInput
	// KindSchemaViolation means the JSON is structurally invalid.
	KindSchemaViolation
	// KindDomainViolation means the structure is valid but a value is not.
	KindDomainViolation
	// KindMissingField means a required field is absent after decoding.
	KindMissingField
	// KindRemoteUnavailable means one or more remote lookups did not succeed.
	KindRemoteUnavailable
	// KindPersistenceFault means the output file could not be written.
	KindPersistenceFault
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindConfigNotFound:
		return "config not found"
	case KindMalformedInput:
		return "malformed input"
	case KindSchemaViolation:
		return "schema violation"
	case KindDomainViolation:
		return "domain violation"
	case KindMissingField:
		return "missing field"
	case KindRemoteUnavailable:
		return "remote unavailable"
	case KindPersistenceFault:
		return "persistence fault"
	default:
		return "unclassified"
	}
}

// Exit codes are part of the CLI contract and must stay stable across
// releases. Tests assert on these constants, never on raw numbers.
const (
	ExitOK                = 0
	ExitUsage             = 1
	ExitConfigNotFound    = 2
	ExitMalformedInput    = 3
	ExitSchemaViolation   = 4
	ExitDomainViolation   = 5
	ExitMissingField      = 6
	ExitRemoteUnavailable = 7
	ExitPersistenceFault  = 8
	ExitUnclassified      = 99
)

// ExitCode maps a failure kind to its process exit code.
func (k Kind) ExitCode() int {
	switch k {
	case KindUsage:
		return ExitUsage
	case KindConfigNotFound:
		return ExitConfigNotFound
	case KindMalformedInput:
		return ExitMalformedInput
	case KindSchemaViolation:
		return ExitSchemaViolation
	case KindDomainViolation:
		return ExitDomainViolation
	case KindMissingField:
		return ExitMissingField
	case KindRemoteUnavailable:
		return ExitRemoteUnavailable
	case KindPersistenceFault:
		return ExitPersistenceFault
	default:
		return ExitUnclassified
	}
}

// Error is a classified pipeline failure. The message always identifies the
// failing entity (field, repository, path); the kind selects the outcome.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

// E creates a new classified error with a formatted message.
func E(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// WrapE wraps an underlying error with a kind and a context message.
func WrapE(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// KindOf returns the kind carried by err, or KindUnclassified when err has
// no classification anywhere in its chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnclassified
}
