package client

import (
	"errors"
	"fmt"
)

// Sentinel errors for API failure classes. Every [*APIError] matches exactly
// one of ErrValidation, ErrAuth, ErrNotFound, ErrServer or ErrUnexpected via
// [errors.Is]; transport failures additionally match ErrTransport.
var (
	ErrValidation = errors.New("devexp: validation error")
	ErrAuth       = errors.New("devexp: authentication/authorization failed")
	ErrNotFound   = errors.New("devexp: resource not found")
	ErrServer     = errors.New("devexp: server error")
	ErrUnexpected = errors.New("devexp: unexpected API error")
	ErrTransport  = errors.New("devexp: transport error")
)

// noErrorInformation is carried in APIMessage when the response body holds
// neither a message nor an id.
const noErrorInformation = "no additional error information"

// unknownResourceID is carried in ResourceID for 404 responses whose body
// names no id.
const unknownResourceID = "unknown"

// ErrorKind identifies the variant of an [APIError].
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	default:
		return "generic"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindAuth:
		return ErrAuth
	case KindNotFound:
		return ErrNotFound
	case KindServer:
		return ErrServer
	default:
		return ErrUnexpected
	}
}

// APIError is the terminal failure of a request. It is created once, when a
// request has failed for good, and is never modified afterwards.
//
// StatusCode is zero when the request never received a response; in that
// case Err holds the underlying transport failure.
type APIError struct {
	Kind         ErrorKind
	StatusCode   int
	Message      string
	ResponseBody string
	APIMessage   string
	// ResourceID is the identifier reported by the server for 404 responses,
	// or "unknown" when the response did not name one. Empty for other kinds.
	ResourceID string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.ResourceID != "":
		return fmt.Sprintf("%s (status %d, id %s): %s", e.Message, e.StatusCode, e.ResourceID, e.APIMessage)
	default:
		return fmt.Sprintf("%s (status %d): %s", e.Message, e.StatusCode, e.APIMessage)
	}
}

// Is reports whether target is the sentinel for e's kind, or ErrTransport for
// failures that never reached the server.
func (e *APIError) Is(target error) bool {
	if target == ErrTransport {
		return e.StatusCode == 0 && e.Err != nil
	}
	return target == e.Kind.sentinel()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newTransportError(err error) *APIError {
	return &APIError{
		Kind:       KindGeneric,
		Message:    "Transport error",
		APIMessage: noErrorInformation,
		Err:        err,
	}
}

// InvalidPhoneNumberError is returned before any request is issued when a
// phone number is not in E.164 format.
type InvalidPhoneNumberError struct {
	Phone string
}

func (e *InvalidPhoneNumberError) Error() string {
	return fmt.Sprintf("the phone number '%s' is not a valid E.164 format", e.Phone)
}
