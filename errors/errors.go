// Package errors provides error handling for rpctypegen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints for the person running the generator
//   - Marks, so a wrapped error still matches its class sentinel
//
// Usage:
//
//	// Wrap with context
//	if err := compile(file); err != nil {
//	    return errors.Wrapf(err, "failed to compile %s", path)
//	}
//
//	// Classify
//	if errors.Is(err, errors.ErrInsufficientAnnotation) {
//	    // skip the file
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Condition classes raised while turning annotation files into declarations.
// Wrap or Mark these so callers can classify with errors.Is().
var (
	// ErrInsufficientAnnotation means a node was labelled "no schema
	// information available". The owning file is skipped, the run continues.
	ErrInsufficientAnnotation = New("insufficient annotation")

	// ErrInvalidAnnotation covers unknown terminal labels, empty arrays and
	// JSON values of a kind a schema may not contain.
	ErrInvalidAnnotation = New("invalid annotation")

	// ErrMalformedSchema covers a non-array file root, a response union with
	// more variants than there are variant names, and conflicting
	// declarations inside one module.
	ErrMalformedSchema = New("malformed schema")

	// ErrFilesystem covers unreadable files, invalid UTF-8 and undecodable
	// JSON or YAML documents.
	ErrFilesystem = New("filesystem or encoding error")

	// ErrFormatterFailed means the source formatter exited unsuccessfully.
	ErrFormatterFailed = New("formatter failed")
)

// IsInsufficient reports whether err is or wraps ErrInsufficientAnnotation.
func IsInsufficient(err error) bool {
	return err != nil && Is(err, ErrInsufficientAnnotation)
}

// IsFatal reports whether err must abort a generation run.
// Every non-nil error except an insufficient annotation is fatal.
func IsFatal(err error) bool {
	return err != nil && !IsInsufficient(err)
}

// NewFilesystemError marks err as a filesystem/encoding condition for path.
func NewFilesystemError(err error, path string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrapf(err, "%s", path), ErrFilesystem)
}

// NewMalformedSchemaError creates a malformed-schema error with a formatted message
func NewMalformedSchemaError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrMalformedSchema)
}
