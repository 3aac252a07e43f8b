// Package errors provides structured error types for GovSimplify.
// These errors provide context about what operation failed and where.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindNetwork
	KindStatus
	KindDecode
	KindConfig
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindStatus:
		return "unexpected status"
	case KindDecode:
		return "malformed response"
	case KindConfig:
		return "configuration error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for GovSimplify.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Backend errors

// RequestFailed wraps a transport error. Deadlines and network timeouts are
// KindTimeout; everything else is KindNetwork.
func RequestFailed(op Op, url string, err error) error {
	kind := KindNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = KindTimeout
	}
	return E(op, kind, fmt.Sprintf("request to %s failed", url), err)
}

func StatusFailed(op Op, url string, err error) error {
	return E(op, KindStatus, fmt.Sprintf("request to %s was rejected", url), err)
}

func DecodeFailed(op Op, url string, err error) error {
	return E(op, KindDecode, fmt.Sprintf("could not decode response from %s", url), err)
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Catalog errors

func CatalogInvalid(reason string) error {
	return E(Op("agency.Load"), KindInvalid, reason)
}

func AgencyNotFound(id string) error {
	return E(Op("agency.Get"), KindNotFound, fmt.Sprintf("agency %s not found", id))
}
