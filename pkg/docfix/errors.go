package docfix

import (
	"errors"
	"fmt"
)

// MalformedPackageError reports input that cannot be opened as an OOXML
// package: not a ZIP container, or missing the mandatory document part.
// It is always fatal; no output is produced.
type MalformedPackageError struct {
	Reason string
	Cause  error
}

func (e *MalformedPackageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed package: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("malformed package: %s", e.Reason)
}

func (e *MalformedPackageError) Unwrap() error {
	return e.Cause
}

// NewMalformedPackageError creates a new malformed package error.
func NewMalformedPackageError(reason string, cause error) error {
	return &MalformedPackageError{
		Reason: reason,
		Cause:  cause,
	}
}

// ParseError reports a targeted part whose XML could not be parsed even with
// lenient recovery. It is fatal for the whole invocation: the engine returns
// failure rather than a half-patched document.
type ParseError struct {
	Part  string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error in %s: %v", e.Part, e.Cause)
	}
	return fmt.Sprintf("parse error in %s", e.Part)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error for the named part.
func NewParseError(part string, cause error) error {
	return &ParseError{
		Part:  part,
		Cause: cause,
	}
}

// SkippedElement records a single element a fixer could not safely edit.
// Skips are data, not errors: the element is left unmodified and the rest of
// the document is still patched.
type SkippedElement struct {
	Part    string
	Element string
	Reason  string
}

func (s SkippedElement) String() string {
	return fmt.Sprintf("%s: skipped %s: %s", s.Part, s.Element, s.Reason)
}

// patchLog aggregates per-element skips for one invocation.
type patchLog struct {
	part    string
	skipped []SkippedElement
}

func (l *patchLog) skip(element, reason string) {
	if l == nil {
		return
	}
	l.skipped = append(l.skipped, SkippedElement{
		Part:    l.part,
		Element: element,
		Reason:  reason,
	})
}

// IsMalformedPackage checks if an error is a malformed package error.
func IsMalformedPackage(err error) bool {
	var target *MalformedPackageError
	return errors.As(err, &target)
}

// IsParseError checks if an error is a parse error.
func IsParseError(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}
