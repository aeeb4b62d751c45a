package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrorCode classifies catalog failures for callers and transports.
type ErrorCode string

const (
	CodeNotFound      ErrorCode = "not_found"
	CodeDuplicateName ErrorCode = "duplicate_name"
	CodeValidation    ErrorCode = "validation"
	CodeInternal      ErrorCode = "internal"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("duplicate name")
	ErrValidation    = errors.New("invalid argument")
)

// Error is the typed outcome returned by catalog operations.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is match the code sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == CodeNotFound
	case ErrDuplicateName:
		return e.Code == CodeDuplicateName
	case ErrValidation:
		return e.Code == CodeValidation
	}
	return false
}

func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates err with a code. A nil err stays nil.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

func ComplexNotFound(op string, id uuid.UUID) error {
	return NewError(CodeNotFound, op, fmt.Sprintf("complex %s not found", id), nil)
}

func PartNotFound(op string, id uuid.UUID) error {
	return NewError(CodeNotFound, op, fmt.Sprintf("part %s not found", id), nil)
}

func DuplicatePartName(op, name string, cause error) error {
	return NewError(CodeDuplicateName, op, fmt.Sprintf("part named %q already exists", name), cause)
}

func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the code, or "" when err carries none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}
