// Package errs contains the trusted error types the command layer reports to
// the operator, carrying enough caller info for the logs.
package errs

import (
	"fmt"
	"runtime"
	"strings"
)

// Kind classifies a trusted error so the command runner can pick the right
// exit code and presentation.
type Kind int

const (
	KindValidation Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindInternal
)

var kindNames = [...]string{"validation", "unauthenticated", "forbidden", "not found", "internal"}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ExitCode maps the kind to the process exit code of a failed command.
func (k Kind) ExitCode() int {
	switch k {
	case KindValidation:
		return 2
	case KindUnauthenticated:
		return 3
	case KindForbidden:
		return 4
	case KindNotFound:
		return 5
	default:
		return 1
	}
}

// AppError represents a trusted error inside the system.
type AppError struct {
	Kind     Kind
	Message  string
	Messages []string
	FuncName string
	FileName string
}

func (err *AppError) Error() string {
	if len(err.Messages) > 0 {
		return strings.Join(err.Messages, "\n")
	}
	return err.Message
}

// New creates an *AppError directly from a message.
func New(kind Kind, message string) error {
	//skip one call stack
	pc, filename, line, _ := runtime.Caller(1)
	funcName := runtime.FuncForPC(pc).Name()

	return &AppError{
		Kind:     kind,
		Message:  message,
		FuncName: funcName,
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Newf creates an *AppError with a formatted message.
func Newf(kind Kind, format string, v ...any) error {
	pc, filename, line, _ := runtime.Caller(1)
	funcName := runtime.FuncForPC(pc).Name()
	return &AppError{
		Kind:     kind,
		Message:  fmt.Sprintf(format, v...),
		FuncName: funcName,
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// NewValidation returns an error carrying one message per invalid field.
func NewValidation(messages []string) error {
	pc, filename, line, _ := runtime.Caller(1)
	funcName := runtime.FuncForPC(pc).Name()
	return &AppError{
		Kind:     KindValidation,
		Message:  "invalid input",
		Messages: messages,
		FuncName: funcName,
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// NewInternal is used to make returning internal errors easier.
func NewInternal(err error) error {
	pc, filename, line, _ := runtime.Caller(1)
	funcName := runtime.FuncForPC(pc).Name()
	return &AppError{
		Kind:     KindInternal,
		Message:  err.Error(),
		FuncName: funcName,
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}
