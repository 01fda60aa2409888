package errorx

import (
	"errors"
	"fmt"
)

type Error struct {
	Code    Code
	Message string

	cause error
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

// Wrap keeps err reachable through errors.Is/As while exposing only msg to the user.
func Wrap(code Code, err error, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...), cause: err}
}

func (e Error) Error() string {
	return e.Message
}

func (e Error) Unwrap() error {
	return e.cause
}

// Detail includes the wrapped cause, for logs.
func (e Error) Detail() string {
	if e.cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %v", e.Message, e.cause)
}

// CodeOf returns the code of the first Error in err's chain, or Unknown's code.
func CodeOf(err error) Code {
	var e Error
	if errors.As(err, &e) {
		return e.Code
	}

	return Unknown.Code
}

func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
