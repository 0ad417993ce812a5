/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/eklmt/dizzybox/internal/args"
	"github.com/eklmt/dizzybox/internal/config"
	"github.com/eklmt/dizzybox/internal/entrypoint"
	"github.com/eklmt/dizzybox/internal/paths"
	"github.com/eklmt/dizzybox/internal/podman"
	"github.com/eklmt/dizzybox/internal/userdata"
)

type dizzyboxApp struct {
	dryRun bool
	cfg    *config.Config
	stdout io.Writer

	usrdata *userdata.Userdata
}

func (app *dizzyboxApp) SetGlobalFlags(fs *flag.FlagSet) {
	usage := "Print container manager commands instead of running them"
	fs.BoolVar(&app.dryRun, "d", app.dryRun, usage)
	fs.BoolVar(&app.dryRun, "dry-run", app.dryRun, usage)
}

// Looked up on first use, so commands that don't need it can't fail on it.
func (app *dizzyboxApp) userdata() (*userdata.Userdata, error) {
	if app.usrdata == nil {
		usrdata, err := userdata.Current()
		if err != nil {
			return nil, err
		}

		app.usrdata = usrdata
	}

	return app.usrdata, nil
}

func (app *dizzyboxApp) manager() *podman.Manager {
	manager := podman.NewManager(app.dryRun)
	manager.Stdout = app.stdout
	return manager
}

func (app *dizzyboxApp) managerName() string {
	return app.cfg.Defaults.Manager
}

func newCommander(app *dizzyboxApp, fs *flag.FlagSet) *subcommands.Commander {
	cdr := subcommands.NewCommander(fs, paths.ProductName)

	cdr.Register(cdr.HelpCommand(), "")
	cdr.Register(cdr.FlagsCommand(), "")
	cdr.Register(cdr.CommandsCommand(), "")

	cdr.Register(newCreateCommand(app), "containers")
	cdr.Register(newStartCommand(app), "containers")
	cdr.Register(newEnterCommand(app), "containers")
	cdr.Register(newRmCommand(app), "containers")
	cdr.Register(newUpgradeCommand(app), "containers")

	cdr.Register(newExportCommand(app), "inside a container")

	cdr.Register(newVersionCommand(app), "")

	return cdr
}

func main() {
	ctx := context.Background()

	if len(os.Args) != 0 && args.IsEntrypoint(os.Args[0]) {
		err := entrypoint.New().Run(ctx, os.Args)
		os.Exit(int(args.HandleError(err)))
	}

	cfg, err := config.Load()
	if err != nil {
		os.Exit(int(args.HandleError(err)))
	}

	app := &dizzyboxApp{cfg: cfg, stdout: os.Stdout}
	cdr := newCommander(app, flag.CommandLine)

	os.Exit(args.Execute(ctx, app, cdr, flag.CommandLine, os.Args))
}
