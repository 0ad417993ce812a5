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
	"github.com/eklmt/dizzybox/internal/selinux"
)

type createCommand struct {
	req *container.Request
}

func newCreateCommand(app args.App) subcommands.Command {
	return args.WrapSimpleCommand(app, &createCommand{
		req: app.(*dizzyboxApp).cfg.Request(),
	})
}

func (*createCommand) Name() string {
	return "create"
}

func (*createCommand) Synopsis() string {
	return "create a new container"
}

func (*createCommand) Usage() string {
	return `create [-image <image>] [<container>]:
	Creates a container sharing the host's network, devices and your home directory, and
	installs the entrypoint into it.
`
}

func (cmd *createCommand) SetFlags(fs *flag.FlagSet) {
	fs.Var(container.ImageFlag{Request: cmd.req}, "image", "The image to create the container from")
}

func (cmd *createCommand) ParsePositional(fs *flag.FlagSet) error {
	return cmd.req.SetName(fs.Args())
}

func (cmd *createCommand) Execute(app args.App, fs *flag.FlagSet) subcommands.ExitStatus {
	return args.HandleError(app.(*dizzyboxApp).createContainer(context.Background(), cmd.req))
}

func (app *dizzyboxApp) createContainer(ctx context.Context, req *container.Request) error {
	usrdata, err := app.userdata()
	if err != nil {
		return err
	}

	runtimeDir, err := usrdata.RuntimeDir()
	if err != nil {
		return err
	}

	builder := &podman.CreateBuilder{
		Manager:         app.managerName(),
		Name:            req.Name,
		Image:           req.Image,
		Home:            usrdata.User.HomeDir,
		RuntimeDir:      runtimeDir,
		DisableLabeling: selinux.LabelingEnabled(),
	}

	if err := app.manager().Run(ctx, builder.Build()); err != nil {
		return err
	}

	return app.installEntrypoint(ctx, req.Name)
}
