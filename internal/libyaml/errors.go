// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"errors"
	"fmt"
	"strings"
)

// MarkedYAMLError is the common shape every positional pipeline error
// (scanner, parser) is built from: a primary Mark plus an optional
// secondary ContextMark describing where the surrounding construct
// started. ParserError and ScannerError are distinct named types
// rather than aliases so that a caller's type switch/errors.As can
// tell which stage raised the error, even though they render
// identically.
type MarkedYAMLError struct {
	ContextMark    Mark
	ContextMessage string

	Mark    Mark
	Message string
}

func (e MarkedYAMLError) Error() string {
	var b strings.Builder
	b.WriteString("yaml: ")
	if e.ContextMessage != "" {
		fmt.Fprintf(&b, "%s at %s: ", e.ContextMessage, e.ContextMark)
	}
	if e.ContextMessage == "" || e.ContextMark != e.Mark {
		fmt.Fprintf(&b, "%s: ", e.Mark)
	}
	b.WriteString(e.Message)
	return b.String()
}

// ParserError is raised while turning tokens into events (grammar
// violations: a token the current parser state didn't expect).
type ParserError MarkedYAMLError

func (e ParserError) Error() string { return MarkedYAMLError(e).Error() }

// ScannerError is raised while turning source bytes into tokens
// (lexical problems: an unterminated scalar, a stray character).
type ScannerError MarkedYAMLError

func (e ScannerError) Error() string { return MarkedYAMLError(e).Error() }

// ReaderError reports a problem decoding the raw input stream itself
// (bad encoding, non-printable character) before scanning begins.
type ReaderError struct {
	Offset int
	Value  int
	Err    error
}

func (e ReaderError) Error() string {
	return fmt.Sprintf("yaml: offset %d: %s", e.Offset, e.Err)
}

func (e ReaderError) Unwrap() error { return e.Err }

// EmitterError reports a problem the Emitter hit while turning events
// back into text (an unrepresentable tag/style combination, typically).
type EmitterError struct {
	Message string
}

func (e EmitterError) Error() string {
	return fmt.Sprintf("yaml: %s", e.Message)
}

// WriterError wraps a failure from the caller-supplied output sink
// (an io.Writer returning an error), distinguishing it from an
// EmitterError raised by the emitter's own logic.
type WriterError struct {
	Err error
}

func (e WriterError) Error() string {
	return fmt.Sprintf("yaml: %s", e.Err)
}

func (e WriterError) Unwrap() error { return e.Err }

// ConstructError is one field-level failure recorded while building a
// Go value out of a decoded Node tree; a load accumulates these rather
// than aborting on the first bad field, the same way the legacy
// TypeError.Errors slice always did.
type ConstructError struct {
	Err    error
	Line   int
	Column int
}

func (e *ConstructError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err.Error())
}

func (e *ConstructError) Unwrap() error { return e.Err }

// LoadErrors collects every ConstructError from one Load call.
type LoadErrors struct {
	Errors []*ConstructError
}

func (e *LoadErrors) Error() string {
	var b strings.Builder
	b.WriteString("yaml: construct errors:")
	for _, ce := range e.Errors {
		b.WriteString("\n  ")
		b.WriteString(ce.Error())
	}
	return b.String()
}

// As backfills errors.As support for callers on Go versions before the
// stdlib understood Unwrap() []error, letting a *LoadErrors match
// either a *ConstructError (the first one recorded) or the legacy
// *TypeError shape.
func (e *LoadErrors) As(target any) bool {
	switch t := target.(type) {
	case **ConstructError:
		if len(e.Errors) == 0 {
			return false
		}
		*t = e.Errors[0]
		return true
	case **TypeError:
		msgs := make([]string, 0, len(e.Errors))
		for _, ce := range e.Errors {
			msgs = append(msgs, ce.Error())
		}
		*t = &TypeError{Errors: msgs}
		return true
	}
	return false
}

// Is backfills errors.Is support the same way As backfills errors.As:
// a *LoadErrors matches target if any of its wrapped errors do.
func (e *LoadErrors) Is(target error) bool {
	for _, ce := range e.Errors {
		if errors.Is(ce, target) {
			return true
		}
	}
	return false
}

// TypeError is the pre-Node-API error shape, kept for callers still on
// the legacy Unmarshal/Decoder surface: a flat list of rendered
// messages rather than structured *ConstructError values. A partially
// decoded value is still usable when this error comes back.
//
// Deprecated: use LoadErrors.
type TypeError struct {
	Errors []string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("yaml: unmarshal errors:\n  %s", strings.Join(e.Errors, "\n  "))
}

// YAMLError is the panic payload every internal failf/fail call
// raises; handleErr at each public entry point recovers it back into
// a normal returned error. Any other panic value is left to propagate,
// since only this type represents an expected, already-classified
// failure.
type YAMLError struct {
	Err error
}

func (e *YAMLError) Error() string { return e.Err.Error() }

// handleErr is deferred by every public entry point (Load, Dump,
// Decode, Encode, ...) to turn a YAMLError panic into the function's
// named error return, without masking panics of any other origin.
func handleErr(err *error) {
	v := recover()
	if v == nil {
		return
	}
	if ye, ok := v.(*YAMLError); ok {
		*err = ye.Err
		return
	}
	panic(v)
}
