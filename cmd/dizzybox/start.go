/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/eklmt/dizzybox/internal/args"
	"github.com/eklmt/dizzybox/internal/container"
	"github.com/eklmt/dizzybox/internal/podman"
)

type startCommand struct {
	req *container.Request
}

func newStartCommand(app args.App) subcommands.Command {
	return args.WrapSimpleCommand(app, &startCommand{
		req: app.(*dizzyboxApp).cfg.Request(),
	})
}

func (*startCommand) Name() string {
	return "start"
}

func (*startCommand) Synopsis() string {
	return "start a container"
}

func (*startCommand) Usage() string {
	return `start [<container>]:
	Starts the given container, running its init in the background.
`
}

func (*startCommand) SetFlags(fs *flag.FlagSet) {}

func (cmd *startCommand) ParsePositional(fs *flag.FlagSet) error {
	return cmd.req.SetName(fs.Args())
}

func (cmd *startCommand) Execute(app args.App, fs *flag.FlagSet) subcommands.ExitStatus {
	return args.HandleError(app.(*dizzyboxApp).startContainer(context.Background(), cmd.req.Name))
}

func (app *dizzyboxApp) startContainer(ctx context.Context, name string) error {
	return app.manager().Run(ctx, podman.StartCommand(app.managerName(), name))
}
