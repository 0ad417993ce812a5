/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package main

import (
	"flag"

	"github.com/google/subcommands"

	"github.com/eklmt/dizzybox/internal/args"
	"github.com/eklmt/dizzybox/internal/container"
	"github.com/eklmt/dizzybox/internal/podman"
)

type rmCommand struct {
	req *container.Request
}

func newRmCommand(app args.App) subcommands.Command {
	return args.WrapSimpleCommand(app, &rmCommand{
		req: app.(*dizzyboxApp).cfg.Request(),
	})
}

func (*rmCommand) Name() string {
	return "rm"
}

func (*rmCommand) Synopsis() string {
	return "remove a container"
}

func (*rmCommand) Usage() string {
	return `rm [<container>]:
	Removes the given container. It must be stopped first.
`
}

func (*rmCommand) SetFlags(fs *flag.FlagSet) {}

func (cmd *rmCommand) ParsePositional(fs *flag.FlagSet) error {
	return cmd.req.SetName(fs.Args())
}

func (cmd *rmCommand) Execute(app args.App, fs *flag.FlagSet) subcommands.ExitStatus {
	dbapp := app.(*dizzyboxApp)
	return args.HandleError(dbapp.manager().Replace(podman.RemoveCommand(dbapp.managerName(), cmd.req.Name)))
}
