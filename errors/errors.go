package errors

import (
	"fmt"
)

type Error interface {
	error

	Code() int
	Message() string
	Cause() error
}

// DefaultCode defines the code that will be used when none is given.
// It is set to 500, Internal Server Error.
var DefaultCode = 500

type codedError struct {
	code  int
	msg   string
	cause *codedError
}

func (err *codedError) Error() string {
	if err.cause == nil {
		return err.msg
	}

	return fmt.Sprintf("%s: %v", err.msg, err.cause)
}

func (err *codedError) Code() int {
	return err.code
}

func (err *codedError) Message() string {
	return err.msg
}

func (err *codedError) Cause() error {
	if err.cause == nil {
		return nil
	}
	return err.cause
}

type ErrorEnricher func(error) error

func WithCode(code int) ErrorEnricher {
	return func(err error) error {
		if err == nil {
			return nil
		}

		if err, ok := err.(*codedError); ok {
			err.code = code
			return err
		}

		return &codedError{
			msg:  err.Error(),
			code: code,
		}
	}
}

func WithCause(cause error) ErrorEnricher {
	var codedCause *codedError
	switch cause := cause.(type) {
	case *codedError:
		codedCause = cause
	default:
		codedCause = &codedError{msg: cause.Error(), code: DefaultCode}
	}

	return func(err error) error {
		if err == nil {
			return nil
		}

		if err, ok := err.(*codedError); ok {
			err.cause = codedCause
			return err
		}

		return &codedError{
			msg:   err.Error(),
			code:  codedCause.code,
			cause: codedCause,
		}
	}
}

func New(msg string, fs ...ErrorEnricher) error {
	var err error
	err = &codedError{
		msg:  msg,
		code: DefaultCode,
	}

	for _, f := range fs {
		err = f(err)
	}

	return err
}
