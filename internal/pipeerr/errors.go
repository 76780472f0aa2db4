// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package pipeerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error. A Kind is itself an error so that it can be
// used as the target of errors.Is.
type Kind string

const (
	KindCyclicInheritance Kind = "CyclicInheritance"
	KindMissingAncestor   Kind = "MissingAncestor"
	KindNoRootFound       Kind = "NoRootFound"
	KindMultipleRoots     Kind = "MultipleRoots"
	KindMultipleParents   Kind = "MultipleParents"
	KindDanglingLink      Kind = "DanglingLink"
	KindLinkCycle         Kind = "LinkCycle"
	KindDuplicateName     Kind = "DuplicateName"
	KindInvalidName       Kind = "InvalidName"
	KindInvalidParent     Kind = "InvalidParent"
	KindInvalidMove       Kind = "InvalidMove"
	KindNotFound          Kind = "NotFound"
	KindUnknownElement    Kind = "UnknownElement"
	KindInvalidValue      Kind = "InvalidValue"
	KindInvalidProperty   Kind = "InvalidProperty"
)

// Error implements the error interface for Kind.
func (k Kind) Error() string {
	return string(k)
}

// Structural reports whether the kind describes a malformed document rather
// than a rejected edit.
func (k Kind) Structural() bool {
	switch k {
	case KindCyclicInheritance, KindMissingAncestor, KindNoRootFound, KindMultipleRoots,
		KindMultipleParents, KindDanglingLink, KindLinkCycle:
		return true
	}
	return false
}

// Error is a typed failure of the pipeline core.
type Error struct {
	Kind Kind
	// ID is the pipeline uuid or element id the error is about, if any.
	ID     string
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.ID != "" {
		msg += fmt.Sprintf(" '%s'", e.ID)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a target Kind against the error's kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New creates an Error of the given kind.
func New(kind Kind, id string, format string, args ...any) *Error {
	return &Error{Kind: kind, ID: id, Detail: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind around a cause.
func Wrap(kind Kind, id string, err error) *Error {
	return &Error{Kind: kind, ID: id, Err: err}
}

// DanglingLink reports a link whose end is not an element of the pipeline.
func DanglingLink(from, to string) *Error {
	return New(KindDanglingLink, from, "link '%s' -> '%s' references a missing element", from, to)
}

// KindOf extracts the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind, true
	}
	return "", false
}
