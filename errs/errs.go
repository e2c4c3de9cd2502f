package errs

import (
	"github.com/pkg/errors"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// ErrRecordNotFound is returned by stores when a lookup or a targeted write matches no document.
var ErrRecordNotFound = errors.New("record not found")

// ErrDuplicateKey is returned by stores when an insert violates a unique index.
var ErrDuplicateKey = errors.New("duplicate key")

// Error carries a Kind and a client-safe message. Err holds the underlying cause, if any,
// and is never shown to clients.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// Internal wraps an unexpected failure. The message is what clients see.
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf reports the Kind of err. Errors outside the taxonomy are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the client-facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}
	if e != nil && e.Msg != "" {
		return e.Msg
	}
	return "internal server error"
}

// IsNotFound reports whether err is a store miss or a NotFound error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound) || KindOf(err) == KindNotFound
}
