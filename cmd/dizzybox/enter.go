/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"golang.org/x/term"

	"github.com/eklmt/dizzybox/internal/args"
	"github.com/eklmt/dizzybox/internal/container"
	"github.com/eklmt/dizzybox/internal/podman"
	"github.com/eklmt/dizzybox/internal/sysexits"
)

type enterCommand struct {
	req      *container.Request
	shareEnv args.ArrayTransformValue
}

func newEnterCommand(app args.App) subcommands.Command {
	return args.WrapSimpleCommand(app, &enterCommand{
		req: app.(*dizzyboxApp).cfg.Request(),
	})
}

func (*enterCommand) Name() string {
	return "enter"
}

func (*enterCommand) Synopsis() string {
	return "run a command or shell inside a container"
}

func (*enterCommand) Usage() string {
	return `enter [-s] [-w <dir>] [-image <image>] [-share-env <transform>] [<container> [--] [<command>...]]:
	Starts the container and enters it as you, in the current directory. Without a command,
	your login shell is run. Passing -image creates the container first.
`
}

func (cmd *enterCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&cmd.req.Su, "s", false, "Become root in the container")
	fs.BoolVar(&cmd.req.Su, "su", false, "Become root in the container")
	fs.StringVar(&cmd.req.Workdir, "w", "", "The working directory")
	fs.StringVar(&cmd.req.Workdir, "workdir", "", "The working directory")
	fs.Var(container.ImageFlag{Request: cmd.req}, "image", "Create the container from this image first")
	fs.Var(&cmd.shareEnv, "share-env",
		"Change the forwarded environment variables: +NAME,... adds, -NAME,... removes, :NAME,... replaces")
}

func (cmd *enterCommand) ParsePositional(fs *flag.FlagSet) error {
	before, command := args.SplitCommand(fs, 1)
	cmd.req.Command = command
	cmd.req.SharedEnv = cmd.shareEnv.Apply(cmd.req.SharedEnv)
	return cmd.req.SetName(before)
}

func (cmd *enterCommand) Execute(app args.App, fs *flag.FlagSet) subcommands.ExitStatus {
	return args.HandleError(app.(*dizzyboxApp).enterContainer(context.Background(), cmd.req))
}

func (app *dizzyboxApp) enterContainer(ctx context.Context, req *container.Request) error {
	usrdata, err := app.userdata()
	if err != nil {
		return err
	}

	if req.ImageSet {
		if err := app.createContainer(ctx, req); err != nil {
			return err
		}
	}

	if err := app.startContainer(ctx, req.Name); err != nil {
		return err
	}

	if req.Workdir == "" {
		if req.Workdir, err = os.Getwd(); err != nil {
			return sysexits.Wrapf(sysexits.OS, err, "failed to get the working directory")
		}
	}

	builder := &podman.ExecBuilder{
		Manager: app.managerName(),
		Name:    req.Name,
		Tty:     term.IsTerminal(int(os.Stdin.Fd())),
		Workdir: req.Workdir,
		User:    req.User(usrdata),
		Env:     usrdata.SharedEnviron(req.SharedEnv),
		Command: req.EntryCommand(),
	}

	return app.manager().Replace(builder.Build())
}
