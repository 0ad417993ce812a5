/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package main

import (
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/eklmt/dizzybox/internal/args"
	"github.com/eklmt/dizzybox/internal/integration"
	"github.com/eklmt/dizzybox/internal/sysexits"
)

type exportCommand struct {
	opts    integration.Options
	entries []string
}

func newExportCommand(app args.App) subcommands.Command {
	return args.WrapSimpleCommand(app, &exportCommand{})
}

func (*exportCommand) Name() string {
	return "export"
}

func (*exportCommand) Synopsis() string {
	return "export desktop entries to the host"
}

func (*exportCommand) Usage() string {
	return `export [-shell] [-keep-command] <entry>...:
	Copies the given desktop entries into your applications directory on the host, rewritten to
	launch inside this container. Must be run from inside a container.
`
}

func (cmd *exportCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&cmd.opts.Shell, "shell", false, "Make the entries start through the login shell")
	fs.BoolVar(&cmd.opts.KeepCommand, "keep-command", false,
		"Keep the original command after the container prefix instead of replacing it")
}

func (cmd *exportCommand) ParsePositional(fs *flag.FlagSet) error {
	if fs.NArg() == 0 {
		return sysexits.New(sysexits.Usage, "expected at least one desktop entry")
	}

	cmd.entries = fs.Args()
	return nil
}

func (cmd *exportCommand) Execute(app args.App, fs *flag.FlagSet) subcommands.ExitStatus {
	dbapp := app.(*dizzyboxApp)

	cmd.opts.ContainerID = os.Getenv("CONTAINER_ID")
	if err := cmd.opts.Validate(); err != nil {
		return args.HandleError(err)
	}

	usrdata, err := dbapp.userdata()
	if err != nil {
		return args.HandleError(err)
	}

	exporter := integration.NewExporter(usrdata.User.HomeDir, cmd.opts)
	if dbapp.dryRun {
		exporter.DryRun = dbapp.stdout
	}

	return args.HandleError(exporter.Export(cmd.entries))
}
