/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package args

import (
	"context"
	"flag"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"github.com/eklmt/dizzybox/internal/log"
	"github.com/eklmt/dizzybox/internal/paths"
	"github.com/eklmt/dizzybox/internal/sysexits"
)

type App interface {
	SetGlobalFlags(fs *flag.FlagSet)
}

func setGlobalFlags(app App, fs *flag.FlagSet) {
	log.SetFlags(fs)
	app.SetGlobalFlags(fs)
}

// A wrapper over subcommands.Command with a slightly simplified API.
type SimpleCommand interface {
	Name() string
	Synopsis() string
	Usage() string
	SetFlags(fs *flag.FlagSet)
	ParsePositional(fs *flag.FlagSet) error
	Execute(app App, fs *flag.FlagSet) subcommands.ExitStatus
}

type simpleCommandWrapper struct {
	app    App
	simple SimpleCommand
}

func WrapSimpleCommand(app App, simple SimpleCommand) subcommands.Command {
	return &simpleCommandWrapper{app, simple}
}

func (wrapper *simpleCommandWrapper) Name() string {
	return wrapper.simple.Name()
}

func (wrapper *simpleCommandWrapper) Synopsis() string {
	return wrapper.simple.Synopsis()
}

func (wrapper *simpleCommandWrapper) Usage() string {
	return wrapper.simple.Usage()
}

func (wrapper *simpleCommandWrapper) SetFlags(fs *flag.FlagSet) {
	setGlobalFlags(wrapper.app, fs)
	wrapper.simple.SetFlags(fs)
}

func (wrapper *simpleCommandWrapper) Execute(_ context.Context, fs *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := wrapper.simple.ParsePositional(fs); err != nil {
		status := HandleError(err)
		fs.Usage()
		return status
	}

	return wrapper.simple.Execute(wrapper.app, fs)
}

func ExpectArgs(fs *flag.FlagSet, args ...*string) error {
	if fs.NArg() != len(args) {
		return sysexits.Errorf(sysexits.Usage, "expected %d arg(s), got %d", len(args), fs.NArg())
	}

	for i, arg := range fs.Args() {
		*args[i] = arg
	}

	return nil
}

// Splits positional arguments into up to maxBefore leading ones and the command after them. A
// "--" is only a separator where a leading argument could go, or directly after the last one;
// everything past that belongs to the command untouched, including any "--" of its own. The flag
// package already consumed a "--" that directly followed the flags.
func SplitCommand(fs *flag.FlagSet, maxBefore int) ([]string, []string) {
	positional := fs.Args()

	for i := 0; i < maxBefore && i < len(positional); i++ {
		if positional[i] == "--" {
			return positional[:i], positional[i+1:]
		}
	}

	if len(positional) <= maxBefore {
		return positional, nil
	}

	command := positional[maxBefore:]
	if command[0] == "--" {
		command = command[1:]
	}

	return positional[:maxBefore], command
}

func HandleError(err error) subcommands.ExitStatus {
	if err != nil {
		log.Alert(err)
	}

	return subcommands.ExitStatus(sysexits.StatusOf(err))
}

// Whether the binary was started as the container entrypoint.
func IsEntrypoint(argv0 string) bool {
	return argv0 == paths.Entrypoint || filepath.Base(argv0) == filepath.Base(paths.Entrypoint)
}

// The arguments to parse, given the full argument vector. Running as "<anything>-<command>" for
// a known command implies that command.
func MultiCallArgs(argv []string, known func(name string) bool) []string {
	if len(argv) == 0 {
		return nil
	}

	rest := argv[1:]

	base := filepath.Base(argv[0])
	if i := strings.LastIndexByte(base, '-'); i != -1 {
		if implied := base[i+1:]; known(implied) {
			log.Debug("implied command", implied)
			return append([]string{implied}, rest...)
		}
	}

	return rest
}

// Whether cdr has a command with the given name.
func HasCommand(cdr *subcommands.Commander, name string) bool {
	found := false
	cdr.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})

	return found
}

// Parses the global flags from argv and runs the selected command. Returns the exit status.
func Execute(ctx context.Context, app App, cdr *subcommands.Commander, fs *flag.FlagSet, argv []string) int {
	setGlobalFlags(app, fs)

	args := MultiCallArgs(argv, func(name string) bool {
		return HasCommand(cdr, name)
	})

	if err := fs.Parse(args); err != nil {
		return int(sysexits.Usage)
	}

	return int(cdr.Execute(ctx))
}
