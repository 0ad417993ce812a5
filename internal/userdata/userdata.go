/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package userdata

import (
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/riywo/loginshell"

	"github.com/eklmt/dizzybox/internal/sysexits"
)

// Environment variables forwarded into a container session unless configured otherwise.
var DefaultSharedEnv = []string{
	"DISPLAY",
	"XAUTHORITY",
	"WAYLAND_DISPLAY",
	"LANG",
	"TERM",
	"XDG_RUNTIME_DIR",
	"DBUS_SESSION_BUS_ADDRESS",
}

// Encapsulates data about the user's session that we're representing.
type Userdata struct {
	User    *user.User
	Environ map[string]string
}

// Little helper to split environment variables.
func SplitEnv(env string) (string, string) {
	parts := strings.SplitN(env, "=", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}

	return parts[0], parts[1]
}

// Parses os.Environ-formatted environment variables into a map.
func ParseEnviron(environ []string) map[string]string {
	result := make(map[string]string)

	for _, env := range environ {
		name, value := SplitEnv(env)
		result[name] = value
	}

	return result
}

func Current() (*Userdata, error) {
	usr, err := user.Current()
	if err != nil {
		return nil, sysexits.Wrapf(sysexits.NoUser, err, "failed to get user information")
	}

	return &Userdata{
		User:    usr,
		Environ: ParseEnviron(os.Environ()),
	}, nil
}

// The current user's login shell, as configured in the user database.
func LoginShell() (string, error) {
	return loginshell.Shell()
}

// NAME=VALUE pairs for each of the given names that is set, in the order given.
func (usrdata *Userdata) SharedEnviron(names []string) []string {
	var result []string

	for _, name := range names {
		if value, ok := usrdata.Environ[name]; ok {
			result = append(result, fmt.Sprintf("%s=%s", name, value))
		}
	}

	return result
}

func (usrdata *Userdata) RuntimeDir() (string, error) {
	if value := usrdata.Environ["XDG_RUNTIME_DIR"]; value != "" {
		return value, nil
	}

	return "", sysexits.New(sysexits.Config, "the XDG_RUNTIME_DIR environment variable must be set")
}
