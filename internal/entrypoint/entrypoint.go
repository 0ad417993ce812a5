/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

// Runs as /usr/bin/entrypoint inside a container. As process 1 it is the container's init; as
// anything else it is the default command of an interactive session, and becomes the user's
// login shell.
package entrypoint

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"

	"github.com/eklmt/dizzybox/internal/log"
	"github.com/eklmt/dizzybox/internal/paths"
	"github.com/eklmt/dizzybox/internal/sysexits"
	"github.com/eklmt/dizzybox/internal/userdata"
	"golang.org/x/sys/unix"
)

type Role int

const (
	NotInit Role = iota
	Init
)

func (role Role) String() string {
	if role == Init {
		return "init"
	}

	return "entry"
}

// Every OS interaction goes through one of these, so that tests can stand in for the kernel.
type Supervisor struct {
	Getpid func() int
	// The user's configured login shell.
	LoginShell func() (string, error)
	// Replaces the process image; only returns on failure.
	Exec func(argv0 string, argv []string, envv []string) error
	Environ func() []string

	InitScript string
	// Whether path exists and is executable.
	Executable func(path string) bool
	// Starts path in the background. The child is never waited for.
	Start func(path string) error

	// Installs the signal dispositions of the init: termination is delivered on the returned
	// channel, and exiting children no longer leave zombies.
	Signals func() <-chan os.Signal
	// Collects any child that already exited.
	Reap func()
	Exit func(code int)
}

func New() *Supervisor {
	return &Supervisor{
		Getpid:     os.Getpid,
		LoginShell: userdata.LoginShell,
		Exec:       unix.Exec,
		Environ:    os.Environ,
		InitScript: paths.InitScript,
		Executable: func(path string) bool {
			return unix.Access(path, unix.X_OK) == nil
		},
		Start: func(path string) error {
			return exec.Command(path).Start()
		},
		Signals: installSignals,
		Reap:    reapExited,
		Exit:    os.Exit,
	}
}

func installSignals() <-chan os.Signal {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, unix.SIGTERM)

	// SIG_IGN on SIGCHLD makes the kernel discard exited children right away.
	signal.Ignore(unix.SIGCHLD)
	return signals
}

func reapExited() {
	for {
		var status unix.WaitStatus
		pid, err := unix.Wait4(-1, &status, unix.WNOHANG, nil)
		if err != nil || pid <= 0 {
			return
		}

		log.Debugf("reaped %d (status %d)", pid, status.ExitStatus())
	}
}

func (sv *Supervisor) Role() Role {
	if sv.Getpid() == 1 {
		return Init
	}

	return NotInit
}

// Runs the role matching the current process. args is the full argument vector, including the
// name the binary was invoked as.
func (sv *Supervisor) Run(ctx context.Context, args []string) error {
	role := sv.Role()
	log.Debug("entrypoint running as", role)

	if role == NotInit {
		return sv.execShell(args)
	}

	sv.launchInitScript()
	return sv.idle(ctx)
}

func (sv *Supervisor) shellCandidates() []string {
	var candidates []string

	shell, err := sv.LoginShell()
	switch {
	case err != nil:
		log.Alertf("Warning: Could not look up user's shell (%v), falling back to %s.", err, paths.FallbackShell)
	case shell == "":
		log.Alertf("Warning: User has no shell set, falling back to %s.", paths.FallbackShell)
	default:
		candidates = append(candidates, shell)
	}

	return append(candidates, paths.FallbackShell)
}

// Replaces the process with the login shell, or the fallback shell if that cannot run. Only
// returns if neither could be executed.
func (sv *Supervisor) execShell(args []string) error {
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	candidates := sv.shellCandidates()

	var err error
	for i, shell := range candidates {
		if i != 0 {
			log.Alertf("Warning: Could not run user's shell, falling back to %s.", shell)
		}

		path := shell
		if filepath.Base(shell) == shell {
			if path, err = exec.LookPath(shell); err != nil {
				log.Debug(err)
				continue
			}
		}

		argv := append([]string{shell}, rest...)
		if err = sv.Exec(path, argv, sv.Environ()); err == nil {
			return nil
		}

		log.Debugf("exec %s failed: %v", path, err)
	}

	return sysexits.Wrapf(sysexits.OS, err,
		"the default entry command failed, try explicitly specifying a command to run")
}

// The check and the start are not atomic; if the script disappears in between, starting it
// fails with a warning.
func (sv *Supervisor) launchInitScript() {
	if sv.InitScript == "" || !sv.Executable(sv.InitScript) {
		log.Debug("no init script at", sv.InitScript)
		return
	}

	if err := sv.Start(sv.InitScript); err != nil {
		log.Alertf("Warning: %s failed to start: %v", sv.InitScript, err)
	}
}

// Sleeps until told to terminate. The init script is started before SIGCHLD is ignored, so it
// doesn't inherit the disposition; anything that exited before then is swept up once here.
func (sv *Supervisor) idle(ctx context.Context) error {
	signals := sv.Signals()
	sv.Reap()

	for {
		select {
		case sig := <-signals:
			if sig == unix.SIGTERM {
				log.Debug("terminating on", sig)
				sv.Exit(0)
				return nil
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
