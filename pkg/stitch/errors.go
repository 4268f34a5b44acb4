// Package stitch defines the data model shared by every stage of the
// embroidery conversion pipeline: points, stitches, patterns, settings,
// the thread palette, and the error taxonomy stages report through.
package stitch

import (
	"errors"
	"fmt"
)

// Kind identifies which error taxonomy entry a Error belongs to. Every
// stage reports its failures as one of these kinds, unchanged, up to the
// orchestrator.
type Kind string

const (
	KindInvalidInput         Kind = "invalid_input"
	KindInsufficientEdges    Kind = "insufficient_edges"
	KindTooManyEdges         Kind = "too_many_edges"
	KindNoContours           Kind = "no_contours"
	KindInsufficientStitches Kind = "insufficient_stitches"
	KindInvalidCoordinates   Kind = "invalid_coordinates"
	KindFormatLimit          Kind = "format_limit"
	KindEncodingFailure      Kind = "encoding_failure"
	KindCancelled            Kind = "cancelled"
)

// Error is the tagged variant every stage returns instead of an ambient
// exception. Stage is filled in by the orchestrator when it wraps a
// stage's error; a stage itself only needs to set Kind, Message and Cause.
type Error struct {
	Kind    Kind
	Message string
	Stage   string
	Cause   error
}

func (e *Error) Error() string {
	if e.Stage != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s: %s (%v)", e.Stage, e.Kind, e.Message, e.Cause)
		}
		return fmt.Sprintf("%s: %s: %s", e.Stage, e.Kind, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error of the given kind with no stage annotation and no
// underlying cause. Use WithStage / Wrap (or construct the struct
// directly) to add either.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind carrying cause as the underlying error.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// WithStage returns a copy of e annotated with the stage name that produced it.
// Called by the orchestrator, not by stages themselves.
func WithStage(err error, stage string) *Error {
	if se, ok := err.(*Error); ok {
		cp := *se
		if cp.Stage == "" {
			cp.Stage = stage
		}
		return &cp
	}
	return &Error{Kind: KindEncodingFailure, Message: "unexpected error", Stage: stage, Cause: err}
}

// KindOf extracts the Kind from err if it is (or wraps) a *Error, and
// reports whether one was found.
func KindOf(err error) (Kind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}
