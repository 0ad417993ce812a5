/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package entrypoint

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"golang.org/x/sys/unix"

	"github.com/eklmt/dizzybox/internal/log"
	"github.com/eklmt/dizzybox/internal/sysexits"
)

type execCall struct {
	argv0 string
	argv  []string
}

type fakeKernel struct {
	pid        int
	shell      string
	shellErr   error
	execErrs   map[string]error
	execs      []execCall
	executable bool
	startErr   error
	started    []string
	reaped     int
	exits      []int
	signals    chan os.Signal
}

func newFakeKernel(pid int) *fakeKernel {
	return &fakeKernel{
		pid:      pid,
		shell:    "/bin/zsh",
		execErrs: map[string]error{},
		signals:  make(chan os.Signal, 1),
	}
}

func (k *fakeKernel) supervisor() *Supervisor {
	return &Supervisor{
		Getpid: func() int { return k.pid },
		LoginShell: func() (string, error) {
			return k.shell, k.shellErr
		},
		Exec: func(argv0 string, argv []string, envv []string) error {
			k.execs = append(k.execs, execCall{argv0, argv})
			return k.execErrs[argv0]
		},
		Environ:    func() []string { return []string{"HOME=/home/alice"} },
		InitScript: "/etc/init.sh",
		Executable: func(string) bool { return k.executable },
		Start: func(path string) error {
			k.started = append(k.started, path)
			return k.startErr
		},
		Signals: func() <-chan os.Signal { return k.signals },
		Reap:    func() { k.reaped++ },
		Exit:    func(code int) { k.exits = append(k.exits, code) },
	}
}

func TestRole(t *testing.T) {
	g := NewWithT(t)

	g.Expect(newFakeKernel(1).supervisor().Role()).To(Equal(Init))
	g.Expect(newFakeKernel(42).supervisor().Role()).To(Equal(NotInit))
}

func TestExecsLoginShellWithArguments(t *testing.T) {
	g := NewWithT(t)

	k := newFakeKernel(42)
	err := k.supervisor().Run(context.Background(), []string{"/usr/bin/entrypoint", "-l", "-c", "ls"})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(k.execs).To(Equal([]execCall{
		{"/bin/zsh", []string{"/bin/zsh", "-l", "-c", "ls"}},
	}))
}

func TestFallsBackToDefaultShell(t *testing.T) {
	g := NewWithT(t)

	k := newFakeKernel(42)
	k.execErrs["/bin/zsh"] = unix.ENOENT

	err := k.supervisor().Run(context.Background(), []string{"/usr/bin/entrypoint", "-l"})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(k.execs).To(Equal([]execCall{
		{"/bin/zsh", []string{"/bin/zsh", "-l"}},
		{"/bin/sh", []string{"/bin/sh", "-l"}},
	}))
}

func TestShellLookupFailureGoesStraightToDefault(t *testing.T) {
	g := NewWithT(t)

	var stderr bytes.Buffer
	defer log.SetOutput(io.Discard, &stderr)()

	k := newFakeKernel(42)
	k.shellErr = errors.New("getent: not found")

	err := k.supervisor().Run(context.Background(), []string{"/usr/bin/entrypoint"})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(k.execs).To(Equal([]execCall{
		{"/bin/sh", []string{"/bin/sh"}},
	}))
	g.Expect(stderr.String()).To(Equal(
		"Warning: Could not look up user's shell (getent: not found), falling back to /bin/sh.\n"))
}

func TestEmptyShellWarns(t *testing.T) {
	g := NewWithT(t)

	var stderr bytes.Buffer
	defer log.SetOutput(io.Discard, &stderr)()

	k := newFakeKernel(42)
	k.shell = ""

	g.Expect(k.supervisor().Run(context.Background(), []string{"/usr/bin/entrypoint"})).To(Succeed())
	g.Expect(k.execs).To(HaveLen(1))
	g.Expect(stderr.String()).To(ContainSubstring("falling back to /bin/sh"))
}

func TestAllShellsFailing(t *testing.T) {
	g := NewWithT(t)

	k := newFakeKernel(42)
	k.execErrs["/bin/zsh"] = unix.ENOENT
	k.execErrs["/bin/sh"] = unix.EACCES

	err := k.supervisor().Run(context.Background(), []string{"/usr/bin/entrypoint"})

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("try explicitly specifying a command"))
	g.Expect(sysexits.StatusOf(err)).To(Equal(int(sysexits.OS)))
	g.Expect(k.execs).To(HaveLen(2))
	g.Expect(k.exits).To(BeEmpty())
}

func TestInitExitsOnTerm(t *testing.T) {
	g := NewWithT(t)

	k := newFakeKernel(1)
	k.signals <- unix.SIGTERM

	err := k.supervisor().Run(context.Background(), []string{"/usr/bin/entrypoint"})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(k.exits).To(Equal([]int{0}))
	g.Expect(k.started).To(BeEmpty())
	g.Expect(k.reaped).To(Equal(1))
	g.Expect(k.execs).To(BeEmpty())
}

func TestInitStartsScript(t *testing.T) {
	g := NewWithT(t)

	k := newFakeKernel(1)
	k.executable = true
	k.signals <- unix.SIGTERM

	g.Expect(k.supervisor().Run(context.Background(), nil)).To(Succeed())
	g.Expect(k.started).To(Equal([]string{"/etc/init.sh"}))
	g.Expect(k.exits).To(Equal([]int{0}))
}

func TestInitScriptStartFailureIsNotFatal(t *testing.T) {
	g := NewWithT(t)

	k := newFakeKernel(1)
	k.executable = true
	k.startErr = unix.ENOENT
	k.signals <- unix.SIGTERM

	g.Expect(k.supervisor().Run(context.Background(), nil)).To(Succeed())
	g.Expect(k.started).To(HaveLen(1))
	g.Expect(k.exits).To(Equal([]int{0}))
}

func TestInitIgnoresOtherSignals(t *testing.T) {
	g := NewWithT(t)

	k := newFakeKernel(1)
	k.signals = make(chan os.Signal, 2)
	k.signals <- unix.SIGHUP
	k.signals <- unix.SIGTERM

	g.Expect(k.supervisor().Run(context.Background(), nil)).To(Succeed())
	g.Expect(k.exits).To(Equal([]int{0}))
}

func TestInitStopsOnCancel(t *testing.T) {
	g := NewWithT(t)

	k := newFakeKernel(1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := k.supervisor().Run(ctx, nil)

	g.Expect(err).To(MatchError(context.DeadlineExceeded))
	g.Expect(k.exits).To(BeEmpty())
}
