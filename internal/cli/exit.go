// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/pkg/errors"
)

// Exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // propagation failure or no convergence
	ExitCommandError = 2 // bad usage, unreadable file, bad description
)

// ExitError is an error with an exit code.
//
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

func wrapExit(code int, msg string, err error) *ExitError {
	return &ExitError{Code: code, Message: msg, Err: err}
}

// ExitCode returns the exit code for err. Errors that are not an ExitError
// map to ExitCommandError, which covers cobra's own usage errors.
//
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *ExitError
	if errors.As(err, &e) {
		return e.Code
	}
	return ExitCommandError
}
