package entry

import "strconv"

// Error represents a domain error from entry operations.
//
// These are the only errors that cross the adapter boundary. Native
// filesystem errors are caught at their call site and mapped to exactly one
// ErrorCode; the underlying cause is retained for logging but is never
// serialized.
type Error struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Path is the filesystem path related to the error (if applicable)
	Path string

	// Err is the underlying native error, if any. It never crosses the
	// boundary; it exists for diagnostics only.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying native error to errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an Error with the given code, message and path.
func NewError(code ErrorCode, message, path string) *Error {
	return &Error{Code: code, Message: message, Path: path}
}

// WrapError builds an Error that retains the native cause.
func WrapError(code ErrorCode, message, path string, err error) *Error {
	return &Error{Code: code, Message: message, Path: path, Err: err}
}

// ErrorCode represents the category of an entry operation error.
//
// The values are the fixed File API error enumeration; they are part of the
// wire contract and must not be renumbered.
type ErrorCode int

const (
	// ErrNotFound indicates the requested file or directory doesn't exist
	ErrNotFound ErrorCode = 1

	// ErrSecurity indicates access was blocked for security reasons
	ErrSecurity ErrorCode = 2

	// ErrAbort indicates the operation was aborted
	ErrAbort ErrorCode = 3

	// ErrNotReadable indicates the entry exists but could not be read
	ErrNotReadable ErrorCode = 4

	// ErrEncoding indicates a malformed URI or path
	ErrEncoding ErrorCode = 5

	// ErrNoModificationAllowed indicates the entry could not be modified
	// or removed (e.g. removing a non-empty directory non-recursively)
	ErrNoModificationAllowed ErrorCode = 6

	// ErrInvalidState indicates the filesystem state could not even be
	// probed (a stat failure that is not "missing")
	ErrInvalidState ErrorCode = 7

	// ErrSyntax indicates a syntactically invalid argument
	ErrSyntax ErrorCode = 8

	// ErrInvalidModification indicates a modification that is illegal for
	// the current state (e.g. creating a file over a directory)
	ErrInvalidModification ErrorCode = 9

	// ErrQuotaExceeded indicates a storage quota was exhausted.
	// Defined for contract completeness; the local engine never produces it.
	ErrQuotaExceeded ErrorCode = 10

	// ErrTypeMismatch indicates the entry exists but is of the wrong kind
	// for the requested operation
	ErrTypeMismatch ErrorCode = 11

	// ErrPathExists indicates an exclusive create hit an existing entry
	ErrPathExists ErrorCode = 12
)

// String returns the tag name used in logs.
func (c ErrorCode) String() string {
	switch c {
	case ErrNotFound:
		return "NOT_FOUND"
	case ErrSecurity:
		return "SECURITY"
	case ErrAbort:
		return "ABORT"
	case ErrNotReadable:
		return "NOT_READABLE"
	case ErrEncoding:
		return "ENCODING"
	case ErrNoModificationAllowed:
		return "NO_MODIFICATION_ALLOWED"
	case ErrInvalidState:
		return "INVALID_STATE"
	case ErrSyntax:
		return "SYNTAX"
	case ErrInvalidModification:
		return "INVALID_MODIFICATION"
	case ErrQuotaExceeded:
		return "QUOTA_EXCEEDED"
	case ErrTypeMismatch:
		return "TYPE_MISMATCH"
	case ErrPathExists:
		return "PATH_EXISTS"
	default:
		return "UNKNOWN(" + strconv.Itoa(int(c)) + ")"
	}
}
