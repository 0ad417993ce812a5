/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

// Failure classes and the BSD sysexits.h status codes they map to.
package sysexits

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind int

const (
	Usage        Kind = 64
	Data         Kind = 65
	NoUser       Kind = 67
	Software     Kind = 70
	OS           Kind = 71
	CannotCreate Kind = 73
	Config       Kind = 78
)

var kindNames = map[Kind]string{
	Usage:        "usage error",
	Data:         "data error",
	NoUser:       "unknown user",
	Software:     "internal software error",
	OS:           "operating system error",
	CannotCreate: "cannot create output file",
	Config:       "configuration error",
}

func (kind Kind) String() string {
	if name, ok := kindNames[kind]; ok {
		return name
	}

	return fmt.Sprintf("exit status %d", int(kind))
}

type kindError struct {
	kind Kind
	err  error
}

func (err *kindError) Error() string {
	return err.err.Error()
}

func (err *kindError) Cause() error {
	return err.err
}

func (err *kindError) Unwrap() error {
	return err.err
}

// Attaches a kind to err. A nil err stays nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}

	return &kindError{kind, err}
}

func Wrapf(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	return Wrap(kind, errors.Wrapf(err, format, args...))
}

func New(kind Kind, message string) error {
	return Wrap(kind, errors.New(message))
}

func Errorf(kind Kind, format string, args ...interface{}) error {
	return Wrap(kind, errors.Errorf(format, args...))
}

// Returns the outermost kind attached to err, if any.
func KindOf(err error) (Kind, bool) {
	var kerr *kindError
	if errors.As(err, &kerr) {
		return kerr.kind, true
	}

	return 0, false
}

type exitCoder interface {
	ExitCode() int
}

// Converts an error into a process exit status. A kind wins; otherwise a failed child process
// propagates its own status.
func StatusOf(err error) int {
	if err == nil {
		return 0
	}

	if kind, ok := KindOf(err); ok {
		return int(kind)
	}

	var coder exitCoder
	if errors.As(err, &coder) {
		if code := coder.ExitCode(); code > 0 {
			return code
		}
	}

	return 1
}
