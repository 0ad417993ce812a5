/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package main

import (
	"flag"

	"github.com/google/subcommands"

	"github.com/eklmt/dizzybox/internal/args"
	"github.com/eklmt/dizzybox/internal/log"
	"github.com/eklmt/dizzybox/internal/paths"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "devel"

type versionCommand struct {
}

func newVersionCommand(app args.App) subcommands.Command {
	return args.WrapSimpleCommand(app, &versionCommand{})
}

func (*versionCommand) Name() string {
	return "version"
}

func (*versionCommand) Synopsis() string {
	return "show the dizzybox version"
}

func (*versionCommand) Usage() string {
	return `version
	Show the current dizzybox version.
`
}

func (*versionCommand) SetFlags(fs *flag.FlagSet) {}

func (cmd *versionCommand) ParsePositional(fs *flag.FlagSet) error {
	return args.ExpectArgs(fs)
}

func (cmd *versionCommand) Execute(app args.App, fs *flag.FlagSet) subcommands.ExitStatus {
	log.Infof("%s version %s", paths.ProductName, version)
	return subcommands.ExitSuccess
}
