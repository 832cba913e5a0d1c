package entities

import (
	"fmt"
	"strings"
)

// MalformedRangeError is returned when a dependency's declared version range
// cannot be parsed, or parses to a range without a lower bound.
type MalformedRangeError struct {
	Range  string
	Reason string
	Err    error
}

func (e *MalformedRangeError) Error() string {
	msg := fmt.Sprintf("malformed version range %q: %s", e.Range, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRangeError) Unwrap() error { return e.Err }

// ProjectStructureError aborts the analysis of a single project.
type ProjectStructureError struct {
	Project string
	Reason  string
}

func (e *ProjectStructureError) Error() string {
	return fmt.Sprintf("invalid project %q: %s", e.Project, e.Reason)
}

// RegistryUnavailableError wraps transport and protocol failures talking to the registry.
type RegistryUnavailableError struct {
	Package string
	Err     error
}

func (e *RegistryUnavailableError) Error() string {
	if e.Package == "" {
		return fmt.Sprintf("package registry unavailable: %v", e.Err)
	}
	return fmt.Sprintf("package registry unavailable for %q: %v", e.Package, e.Err)
}

func (e *RegistryUnavailableError) Unwrap() error { return e.Err }

// NoProjectFoundError is a validation error: the given path holds no project or solution.
type NoProjectFoundError struct {
	Path string
}

func (e *NoProjectFoundError) Error() string {
	return fmt.Sprintf("no project or solution file found at %q", e.Path)
}

// MultipleProjectsFoundError is a validation error: the given directory is ambiguous.
type MultipleProjectsFoundError struct {
	Path       string
	Candidates []string
}

func (e *MultipleProjectsFoundError) Error() string {
	return fmt.Sprintf(
		"multiple project or solution files found at %q (%s); specify which one to use",
		e.Path, strings.Join(e.Candidates, ", "),
	)
}

// InvalidOptionError is a validation error for a bad option or configuration value.
type InvalidOptionError struct {
	Option  string
	Value   string
	Allowed []string
}

func (e *InvalidOptionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid value %q for %s", e.Value, e.Option)
	}
	return fmt.Sprintf(
		"invalid value %q for %s (allowed: %s)",
		e.Value, e.Option, strings.Join(e.Allowed, ", "),
	)
}
