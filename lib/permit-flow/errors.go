package permitflow

import (
	"fmt"

	"github.com/pkg/errors"
)

type Code string

const (
	CodeValidation     Code = "VALIDATION"
	CodeNotAssigned    Code = "NOT_ASSIGNED"
	CodeInvalidState   Code = "INVALID_STATE"
	CodeAlreadyRevoked Code = "ALREADY_REVOKED"
	CodeNotFound       Code = "NOT_FOUND"
	CodeForbidden      Code = "FORBIDDEN"
)

// Error is a rejected transition. Message is safe to show to the user.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func AsError(err error) (*Error, bool) {
	var flowErr *Error
	if errors.As(err, &flowErr) {
		return flowErr, true
	}
	return nil, false
}

func IsCode(err error, code Code) bool {
	flowErr, ok := AsError(err)
	return ok && flowErr.Code == code
}
