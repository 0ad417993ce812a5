/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package log

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
)

// No timestamps: output either lands on a terminal or in the journal, which stamps it already.
// Desktop launchers run us with stderr attached to the journal, in which case alerts are sent
// as proper journal entries so they keep their priority.

var verbose bool
var toJournal = stderrIsJournal()

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func stderrIsJournal() bool {
	if !journal.Enabled() {
		return false
	}

	ok, err := journal.StderrIsJournalStream()
	return err == nil && ok
}

func SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&verbose, "v", verbose, "Be verbose")
}

func Verbose() bool {
	return verbose
}

func SetVerbose(newVerbose bool) {
	verbose = newVerbose
}

// Redirects output, disabling the journal. Returns a function restoring the previous state.
func SetOutput(out, err io.Writer) func() {
	oldOut, oldErr, oldJournal := stdout, stderr, toJournal
	stdout, stderr, toJournal = out, err, false

	return func() {
		stdout, stderr, toJournal = oldOut, oldErr, oldJournal
	}
}

func send(priority journal.Priority, message string) {
	if toJournal {
		if err := journal.Send(strings.TrimSuffix(message, "\n"), priority, nil); err == nil {
			return
		}
	}

	fmt.Fprint(stderr, message)
}

func Info(args ...interface{}) {
	fmt.Fprintln(stdout, args...)
}

func Infof(format string, args ...interface{}) {
	fmt.Fprintf(stdout, format+"\n", args...)
}

func Debug(args ...interface{}) {
	if verbose {
		send(journal.PriDebug, fmt.Sprintln(args...))
	}
}

func Debugf(format string, args ...interface{}) {
	if verbose {
		send(journal.PriDebug, fmt.Sprintf(format+"\n", args...))
	}
}

func Alert(args ...interface{}) {
	send(journal.PriErr, fmt.Sprintln(args...))
}

func Alertf(format string, args ...interface{}) {
	send(journal.PriErr, fmt.Sprintf(format+"\n", args...))
}

func Fatal(args ...interface{}) {
	Alert(args...)
	os.Exit(1)
}

func Fatalf(format string, args ...interface{}) {
	Alertf(format, args...)
	os.Exit(1)
}
