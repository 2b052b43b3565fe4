package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindDuplicate
	KindAuth
	KindOwnership
	KindNotFound
	KindDependency
)

type metadata struct {
	name          string
	httpStatus    int
	publicMessage string
	// exposeMessage tells whether the error message itself is safe to return to clients
	exposeMessage bool
}

var metadataByKind = map[Kind]metadata{
	KindUnknown:    {name: "unknown", httpStatus: http.StatusInternalServerError, publicMessage: "internal error"},
	KindValidation: {name: "validation", httpStatus: http.StatusBadRequest, publicMessage: "validation failed", exposeMessage: true},
	KindDuplicate:  {name: "duplicate", httpStatus: http.StatusConflict, publicMessage: "already exists", exposeMessage: true},
	KindAuth:       {name: "auth", httpStatus: http.StatusUnauthorized, publicMessage: "unauthorized", exposeMessage: true},
	KindOwnership:  {name: "ownership", httpStatus: http.StatusForbidden, publicMessage: "forbidden", exposeMessage: true},
	KindNotFound:   {name: "not found", httpStatus: http.StatusNotFound, publicMessage: "not found", exposeMessage: true},
	KindDependency: {name: "dependency", httpStatus: http.StatusInternalServerError, publicMessage: "internal error"},
}

func (k Kind) String() string {
	if md, ok := metadataByKind[k]; ok {
		return md.name
	}
	return metadataByKind[KindUnknown].name
}

// Error is an error with a Kind, used at service boundaries.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, apperr.ErrNotFound) works
// regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// kind sentinels for errors.Is
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrDuplicate  = &Error{Kind: KindDuplicate}
	ErrAuth       = &Error{Kind: KindAuth}
	ErrOwnership  = &Error{Kind: KindOwnership}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrDependency = &Error{Kind: KindDependency}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func Duplicate(message string) *Error {
	return New(KindDuplicate, message)
}

func Auth(message string) *Error {
	return New(KindAuth, message)
}

func Ownership(message string) *Error {
	return New(KindOwnership, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Dependency(err error, message string) *Error {
	return Wrap(KindDependency, err, message)
}

// KindOf returns the kind of the outermost *Error in the chain, or KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func HTTPStatus(err error) int {
	return metadataByKind[KindOf(err)].httpStatus
}

// PublicMessage is the text safe to send to clients. Dependency and unknown
// errors never leak their cause.
func PublicMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return metadataByKind[KindUnknown].publicMessage
	}
	md := metadataByKind[appErr.Kind]
	if md.exposeMessage && appErr.Message != "" {
		return appErr.Message
	}
	return md.publicMessage
}
