/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package podman

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestCreateBuilder(t *testing.T) {
	g := NewWithT(t)

	builder := &CreateBuilder{
		Manager:    "podman",
		Name:       "my-dizzybox",
		Image:      "archlinux:latest",
		Home:       "/home/alice",
		RuntimeDir: "/run/user/1000",
	}

	g.Expect(builder.Build()).To(Equal([]string{
		"podman", "create",
		"--privileged", "--net=host", "--user=0:0",
		"--volume=/:/run/host", "--volume=/tmp:/tmp", "--volume=/dev:/dev",
		"--mount=type=devpts,destination=/dev/pts",
		"--entrypoint=/usr/bin/entrypoint",
		"--userns=keep-id",
		"--volume=/home/alice:/home/alice",
		"--volume=/run/user/1000:/run/user/1000",
		"--name", "my-dizzybox", "archlinux:latest",
	}))

	builder.DisableLabeling = true
	g.Expect(builder.Build()).To(ContainElement("--security-opt=label=disable"))
}

func TestExecBuilder(t *testing.T) {
	for name, tc := range map[string]struct {
		builder ExecBuilder
		argv    []string
	}{
		"interactive": {
			builder: ExecBuilder{
				Manager: "podman",
				Name:    "box",
				Tty:     true,
				Workdir: "/home/alice/src",
				User:    "alice",
				Env:     []string{"TERM=xterm", "DISPLAY=:0"},
				Command: []string{"/usr/bin/entrypoint", "-l"},
			},
			argv: []string{
				"podman", "exec", "-i", "-t", "--workdir", "/home/alice/src",
				"--env", "CONTAINER_ID=box", "-u", "alice",
				"-e", "TERM=xterm", "-e", "DISPLAY=:0",
				"box", "/usr/bin/entrypoint", "-l",
			},
		},
		"piped as root": {
			builder: ExecBuilder{
				Manager: "docker",
				Name:    "box",
				User:    "root",
				Command: []string{"pacman", "-Syu"},
			},
			argv: []string{
				"docker", "exec", "-i", "--env", "CONTAINER_ID=box", "-u", "root",
				"box", "pacman", "-Syu",
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			NewWithT(t).Expect(tc.builder.Build()).To(Equal(tc.argv))
		})
	}
}

func TestSimpleCommands(t *testing.T) {
	g := NewWithT(t)

	g.Expect(StartCommand("podman", "box")).To(Equal([]string{"podman", "start", "box"}))
	g.Expect(RemoveCommand("podman", "box")).To(Equal([]string{"podman", "rm", "box"}))
	g.Expect(InstallEntrypointCommand("podman", "box", "/usr/local/bin/dizzybox")).
		To(Equal([]string{"podman", "cp", "/usr/local/bin/dizzybox", "box:/usr/bin/entrypoint"}))
}

func TestBuildersRequireTarget(t *testing.T) {
	g := NewWithT(t)

	g.Expect(func() { (&CreateBuilder{Manager: "podman"}).Build() }).To(Panic())
	g.Expect(func() { (&ExecBuilder{Manager: "podman", Name: "box"}).Build() }).To(Panic())
}
