// pkg/core/kind.go
package core

import "strings"

// EntryPoint is the fully-qualified name of the user's entry-point type,
// supplied once per cold start.
type EntryPoint string

func (e EntryPoint) Name() string { return strings.TrimSpace(string(e)) }

// FunctionKind is the closed set of function shapes the runtime recognizes.
// The zero value is not a kind.
type FunctionKind int

const (
	PlainFunction FunctionKind = iota + 1
	PlatformFunction
	ServletStyle
	WebBootstrap
)

func (k FunctionKind) String() string {
	switch k {
	case PlainFunction:
		return "plain"
	case PlatformFunction:
		return "platform"
	case ServletStyle:
		return "servlet"
	case WebBootstrap:
		return "web-bootstrap"
	}
	return "unknown"
}

// capabilityMatch is the outcome of an optional capability check. Absence
// of the capability in the environment is distinct from a mismatch.
type capabilityMatch int

const (
	capabilityAbsent capabilityMatch = iota
	capabilityMismatch
	capabilityPresent
)

func (m capabilityMatch) String() string {
	switch m {
	case capabilityMismatch:
		return "present-mismatch"
	case capabilityPresent:
		return "present-match"
	}
	return "absent"
}
