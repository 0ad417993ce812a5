/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package podman

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/eklmt/dizzybox/internal/log"
	"github.com/eklmt/dizzybox/internal/sysexits"
)

// Runs container manager commands, or only prints them in dry-run mode.
type Manager struct {
	DryRun bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	lookPath func(file string) (string, error)
	exec     func(argv0 string, argv []string, envv []string) error
}

func NewManager(dryRun bool) *Manager {
	return &Manager{
		DryRun:   dryRun,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		lookPath: exec.LookPath,
		exec:     unix.Exec,
	}
}

func (manager *Manager) print(argv []string) {
	fmt.Fprintln(manager.Stdout, strings.Join(argv, " "))
}

func (manager *Manager) command(ctx context.Context, argv []string) *exec.Cmd {
	log.Debug("running", strings.Join(argv, " "))
	return exec.CommandContext(ctx, argv[0], argv[1:]...)
}

// Failures to start are the system's fault. A manager that ran and failed keeps its exit status,
// which becomes ours.
func commandError(argv []string, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return errors.Wrapf(err, "%s %s failed", argv[0], argv[1])
	}

	return sysexits.Wrapf(sysexits.OS, err, "failed to run %s", argv[0])
}

// Runs argv to completion with our standard streams.
func (manager *Manager) Run(ctx context.Context, argv []string) error {
	if manager.DryRun {
		manager.print(argv)
		return nil
	}

	cmd := manager.command(ctx, argv)
	cmd.Stdin = manager.Stdin
	cmd.Stdout = manager.Stdout
	cmd.Stderr = manager.Stderr

	if err := cmd.Run(); err != nil {
		return commandError(argv, err)
	}

	return nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// Runs argv with its output captured, showing a spinner with the given message on a terminal.
// The output is only shown if the command fails.
func (manager *Manager) RunQuiet(ctx context.Context, message string, argv []string) error {
	if manager.DryRun {
		manager.print(argv)
		return nil
	}

	var output bytes.Buffer
	cmd := manager.command(ctx, argv)
	cmd.Stdout = &output
	cmd.Stderr = &output

	var spin *spinner.Spinner
	if isTerminal(manager.Stderr) {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(manager.Stderr))
		spin.Suffix = " " + message
		spin.Start()
	} else {
		log.Debug(message)
	}

	err := cmd.Run()
	if spin != nil {
		spin.Stop()
	}

	if err != nil {
		manager.Stderr.Write(output.Bytes())
		return commandError(argv, err)
	}

	return nil
}

// Replaces this process with argv. Only returns on failure, or in dry-run mode.
func (manager *Manager) Replace(argv []string) error {
	if manager.DryRun {
		manager.print(argv)
		return nil
	}

	path, err := manager.lookPath(argv[0])
	if err != nil {
		return sysexits.Wrapf(sysexits.OS, err, "failed to locate %s", argv[0])
	}

	log.Debug("replacing process with", strings.Join(argv, " "))
	err = manager.exec(path, argv, os.Environ())
	return sysexits.Wrapf(sysexits.OS, err, "failed to execute %s", path)
}
