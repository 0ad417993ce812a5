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
	"github.com/eklmt/dizzybox/internal/paths"
	"github.com/eklmt/dizzybox/internal/podman"
	"github.com/eklmt/dizzybox/internal/sysexits"
)

type upgradeCommand struct {
	req *container.Request
}

func newUpgradeCommand(app args.App) subcommands.Command {
	return args.WrapSimpleCommand(app, &upgradeCommand{
		req: app.(*dizzyboxApp).cfg.Request(),
	})
}

func (*upgradeCommand) Name() string {
	return "upgrade"
}

func (*upgradeCommand) Synopsis() string {
	return "upgrade the entrypoint of a container"
}

func (*upgradeCommand) Usage() string {
	return `upgrade [<container>]:
	Replaces the container's entrypoint with this binary.
`
}

func (*upgradeCommand) SetFlags(fs *flag.FlagSet) {}

func (cmd *upgradeCommand) ParsePositional(fs *flag.FlagSet) error {
	return cmd.req.SetName(fs.Args())
}

func (cmd *upgradeCommand) Execute(app args.App, fs *flag.FlagSet) subcommands.ExitStatus {
	return args.HandleError(app.(*dizzyboxApp).installEntrypoint(context.Background(), cmd.req.Name))
}

func (app *dizzyboxApp) installEntrypoint(ctx context.Context, name string) error {
	self, err := paths.GetExecutablePath()
	if err != nil {
		return sysexits.Wrapf(sysexits.Software, err, "could not determine path to self")
	}

	argv := podman.InstallEntrypointCommand(app.managerName(), name, self)
	if err := app.manager().RunQuiet(ctx, "Installing the entrypoint", argv); err != nil {
		return sysexits.Wrapf(sysexits.OS, err,
			"failed to set up container entrypoint, calling %s upgrade %s may be able to fix it",
			paths.ProductName, name)
	}

	return nil
}
