package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is returned when the selected domain has no messages to analyze
	ErrNoData = errors.New("no messages found for domain")
	// ErrUnknownProvider is returned for a mail provider outside the supported set
	ErrUnknownProvider = errors.New("unknown mail provider")
	// ErrInvalidLabel is returned when a model label does not carry a 1-5 rating
	ErrInvalidLabel = errors.New("invalid sentiment label")
)

// FetchErrorKind tells which stage of a mailbox fetch failed
type FetchErrorKind int

const (
	ConnectionError FetchErrorKind = iota
	AuthError
	ProtocolError
)

func (k FetchErrorKind) String() string {
	switch k {
	case ConnectionError:
		return "connection"
	case AuthError:
		return "auth"
	case ProtocolError:
		return "protocol"
	default:
		return "unknown"
	}
}

// FetchError is returned by a MailboxFetcher when the fetch did not complete
type FetchError struct {
	Kind FetchErrorKind
	Op   string
	Err  error
}

// NewFetchError wraps err as a fetch failure of the given kind
func NewFetchError(kind FetchErrorKind, op string, err error) *FetchError {
	return &FetchError{Kind: kind, Op: op, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s error during %s: %v", e.Kind, e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchErrorKind reports whether err is a FetchError of the given kind
func IsFetchErrorKind(err error, kind FetchErrorKind) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Kind == kind
}
