package compiler

import (
	"fmt"

	"github.com/teranos/rpctypegen/errors"
)

// AnnotationErrorKind classifies a rejected annotation node.
type AnnotationErrorKind int

const (
	// Insufficient: the node is labelled INSUFFICIENT
	Insufficient AnnotationErrorKind = iota
	// InvalidLabel: a string terminal that names no known type
	InvalidLabel
	// EmptyArray: an array without a representative element
	EmptyArray
	// UnexpectedKind: a number, boolean or null where a schema node belongs
	UnexpectedKind
)

func (k AnnotationErrorKind) String() string {
	switch k {
	case Insufficient:
		return "insufficient annotation"
	case InvalidLabel:
		return "invalid terminal label"
	case EmptyArray:
		return "empty array"
	default:
		return "unexpected value kind"
	}
}

// AnnotationError reports a node the compiler cannot turn into a type.
// It matches errors.ErrInsufficientAnnotation or errors.ErrInvalidAnnotation
// under errors.Is, depending on Kind.
type AnnotationError struct {
	Kind AnnotationErrorKind
	// Location is the name of the declaration or field being compiled
	Location string
	// Detail is the offending label or value kind, if any
	Detail string
}

func (e *AnnotationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s at %s", e.Kind, e.Location)
	}
	return fmt.Sprintf("%s %q at %s", e.Kind, e.Detail, e.Location)
}

// Is lets errors.Is classify the error by its condition class.
func (e *AnnotationError) Is(target error) bool {
	if e.Kind == Insufficient {
		return target == errors.ErrInsufficientAnnotation
	}
	return target == errors.ErrInvalidAnnotation
}

func annotationError(kind AnnotationErrorKind, location, detail string) error {
	class := errors.ErrInvalidAnnotation
	if kind == Insufficient {
		class = errors.ErrInsufficientAnnotation
	}
	return errors.Mark(errors.WithStack(&AnnotationError{Kind: kind, Location: location, Detail: detail}), class)
}
