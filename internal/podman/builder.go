/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package podman

import (
	"github.com/pkg/errors"

	"github.com/eklmt/dizzybox/internal/paths"
)

type BindMount struct {
	Host string
	Dest string
}

// Host paths every container sees at the same place.
var sharedBinds = []BindMount{
	{Host: "/", Dest: paths.HostMount},
	{Host: "/tmp", Dest: "/tmp"},
	{Host: "/dev", Dest: "/dev"},
}

func addArg(target *[]string, arg string) {
	*target = append(*target, "--"+arg)
}

func addArgValue(target *[]string, arg, value string) {
	addArg(target, arg+"="+value)
}

func addBind(target *[]string, bind BindMount) {
	addArgValue(target, "volume", bind.Host+":"+bind.Dest)
}

// Builds a "create" command line.
type CreateBuilder struct {
	Manager string
	Name    string
	Image   string

	// Shared into the container at the same path.
	Home       string
	RuntimeDir string

	// Turn off SELinux separation, so the container can use the host paths it is given.
	DisableLabeling bool
}

func (builder *CreateBuilder) Build() []string {
	if builder.Name == "" || builder.Image == "" {
		panic(errors.New("Name and Image must be set"))
	}

	args := []string{builder.Manager, "create"}

	addArg(&args, "privileged")
	addArgValue(&args, "net", "host")
	addArgValue(&args, "user", "0:0")

	for _, bind := range sharedBinds {
		addBind(&args, bind)
	}

	addArgValue(&args, "mount", "type=devpts,destination=/dev/pts")
	addArgValue(&args, "entrypoint", paths.Entrypoint)
	addArgValue(&args, "userns", "keep-id")

	if builder.DisableLabeling {
		addArgValue(&args, "security-opt", "label=disable")
	}

	addBind(&args, BindMount{Host: builder.Home, Dest: builder.Home})
	addBind(&args, BindMount{Host: builder.RuntimeDir, Dest: builder.RuntimeDir})

	return append(args, "--name", builder.Name, builder.Image)
}

// Builds an "exec" command line, entering a running container.
type ExecBuilder struct {
	Manager string
	Name    string

	// Allocate a terminal.
	Tty     bool
	Workdir string
	User    string
	// NAME=VALUE pairs.
	Env     []string
	Command []string
}

func (builder *ExecBuilder) Build() []string {
	if builder.Name == "" || len(builder.Command) == 0 {
		panic(errors.New("Name and Command must be set"))
	}

	args := []string{builder.Manager, "exec", "-i"}

	if builder.Tty {
		args = append(args, "-t")
	}

	if builder.Workdir != "" {
		args = append(args, "--workdir", builder.Workdir)
	}

	// Lets the session find its way back, e.g. when exporting applications.
	args = append(args, "--env", "CONTAINER_ID="+builder.Name)

	if builder.User != "" {
		args = append(args, "-u", builder.User)
	}

	for _, env := range builder.Env {
		args = append(args, "-e", env)
	}

	args = append(args, builder.Name)
	return append(args, builder.Command...)
}

func StartCommand(manager, name string) []string {
	return []string{manager, "start", name}
}

func RemoveCommand(manager, name string) []string {
	return []string{manager, "rm", name}
}

// Copies the binary at self into the container as its entrypoint.
func InstallEntrypointCommand(manager, name, self string) []string {
	return []string{manager, "cp", self, name + ":" + paths.Entrypoint}
}
