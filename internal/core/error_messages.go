// Package core provides the business logic for lead submissions.
//
// # Storage Error Codes
//
// Store failures are never shown to clients in detail: the response always
// carries the single message "server-side storage failure". The code below
// is what operators see in logs and in the leadsite_storage_failures_total
// metric, so a page can be routed to the right fix without reading stack traces.
//
//	STO001 - Locked: another writer holds the database
//	         Patterns: "database is locked", "busy"
//
//	STO002 - Read-only: the database file or directory is not writable
//	         Patterns: "readonly", "read-only", "permission denied"
//
//	STO003 - Disk full: no space left for the write
//	         Patterns: "disk is full", "no space left"
//
//	STO004 - Corrupt: the file is not a usable database
//	         Patterns: "malformed", "not a database", "corrupt"
//
//	STO005 - Unavailable: the store cannot be reached or is closed
//	         Patterns: "unable to open", "connection refused", "database is closed", "no such table"
//
//	STO006 - Constraint: the row was refused by a table constraint
//	         Patterns: "constraint"
//
//	STO007 - Timeout: the request context expired during the write
//	         Patterns: "context deadline exceeded", "context canceled"
//
//	STO000 - Unknown: no pattern matched; check the logged error
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// StorageFailureMessage is the only detail clients receive about a store fault.
const StorageFailureMessage = "server-side storage failure"

// StorageCode describes a class of store failure for operators.
type StorageCode struct {
	Code        string
	Description string
}

type storagePattern struct {
	pattern string
	code    StorageCode
}

var (
	codeLocked      = StorageCode{Code: "STO001", Description: "database is locked by another writer"}
	codeReadOnly    = StorageCode{Code: "STO002", Description: "database is not writable"}
	codeDiskFull    = StorageCode{Code: "STO003", Description: "no space left for the write"}
	codeCorrupt     = StorageCode{Code: "STO004", Description: "database file is corrupt"}
	codeUnavailable = StorageCode{Code: "STO005", Description: "store is unavailable"}
	codeConstraint  = StorageCode{Code: "STO006", Description: "row refused by a constraint"}
	codeTimeout     = StorageCode{Code: "STO007", Description: "request ended during the write"}
	codeUnknown     = StorageCode{Code: "STO000", Description: "unexpected storage error"}
)

var storagePatterns = []storagePattern{
	{"database is locked", codeLocked},
	{"busy", codeLocked},
	{"readonly", codeReadOnly},
	{"read-only", codeReadOnly},
	{"permission denied", codeReadOnly},
	{"disk is full", codeDiskFull},
	{"no space left", codeDiskFull},
	{"malformed", codeCorrupt},
	{"not a database", codeCorrupt},
	{"corrupt", codeCorrupt},
	{"unable to open", codeUnavailable},
	{"connection refused", codeUnavailable},
	{"database is closed", codeUnavailable},
	{"no such table", codeUnavailable},
	{"constraint", codeConstraint},
	{"context deadline exceeded", codeTimeout},
	{"context canceled", codeTimeout},
}

// ClassifyStorageError maps a driver error to a StorageCode. A nil error
// yields the zero StorageCode.
func ClassifyStorageError(err error) StorageCode {
	if err == nil {
		return StorageCode{}
	}

	errStr := strings.ToLower(err.Error())
	for _, sp := range storagePatterns {
		if strings.Contains(errStr, sp.pattern) {
			return sp.code
		}
	}
	return codeUnknown
}

// StorageError is returned when the store could not complete an operation.
// Callers report it as a server-side failure; it is not retried.
type StorageError struct {
	Op   string
	Code StorageCode
	Err  error
}

// NewStorageError wraps err and classifies it. Returns nil if err is nil.
func NewStorageError(op string, err error) *StorageError {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Code: ClassifyStorageError(err), Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v (%s)", e.Op, e.Err, e.Code.Code)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is or wraps a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// FallbackLogError is a failed append to the fallback log. It never changes
// the outcome of a submission and is only logged.
type FallbackLogError struct {
	Path string
	Err  error
}

func (e *FallbackLogError) Error() string {
	return fmt.Sprintf("fallback log %s: %v", e.Path, e.Err)
}

func (e *FallbackLogError) Unwrap() error {
	return e.Err
}
