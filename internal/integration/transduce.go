/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package integration

import (
	"bufio"
	"io"

	"github.com/eklmt/dizzybox/internal/paths"
	"github.com/eklmt/dizzybox/internal/sysexits"
)

// Runs the command given after it through the user's login shell, so the shell's profile applies.
const shellWrapper = paths.Entrypoint + ` -l -c 'exec "$@"' --`

type Options struct {
	// The container the rewritten entries launch into.
	ContainerID string
	// Launch through the login shell.
	Shell bool
	// Keep the original Exec value after the replacement.
	KeepCommand bool
}

// Rewritten entries can't launch anywhere without a container.
func (opts Options) Validate() error {
	if opts.ContainerID == "" {
		return sysexits.New(sysexits.Config, "failed to get container ID, $CONTAINER_ID must be set")
	}

	return nil
}

// The text written after "Exec=". The trailing space is part of the format: the original value
// (or nothing) follows it.
func (opts Options) Replacement() string {
	// Container names are restricted enough by the manager to need no quoting.
	value := paths.ProductName + " enter " + opts.ContainerID + " "
	if opts.Shell {
		value += shellWrapper + " "
	}

	return value
}

// Copies a desktop entry from src to dst, pointing its Exec key into the container and dropping
// its TryExec key. Everything else is copied unchanged. src is read once, start to end.
func Transduce(dst io.Writer, src io.Reader, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	replacement := opts.Replacement()
	matcher := Matcher{KeepValue: opts.KeepCommand}

	reader := bufio.NewReader(src)
	writer := bufio.NewWriter(dst)

	// Write errors stick to the buffered writer and are reported by the final Flush.
	var readErr error
	for {
		b, err := reader.ReadByte()
		if err != nil {
			if err != io.EOF {
				readErr = err
			}

			break
		}

		step := matcher.Step(b)
		writer.WriteString(step.Flush)

		switch step.Verdict {
		case Pass:
			writer.WriteByte(b)
		case Rewrite:
			writer.WriteByte(b)
			writer.WriteString(replacement)
		}
	}

	writer.WriteString(matcher.Pending())

	if readErr != nil {
		writer.Flush()
		return sysexits.Wrapf(sysexits.Data, readErr, "potentially partial write")
	}

	if err := writer.Flush(); err != nil {
		return sysexits.Wrapf(sysexits.Data, err, "potentially partial write")
	}

	return nil
}
