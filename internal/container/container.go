/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package container

import (
	"regexp"
	"strings"

	"github.com/eklmt/dizzybox/internal/paths"
	"github.com/eklmt/dizzybox/internal/sysexits"
	"github.com/eklmt/dizzybox/internal/userdata"
)

const DefaultName = "my-" + paths.ProductName

// Same rules the container managers apply, checked up front so mistakes don't surface as a
// manager failure halfway through a create.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return sysexits.Errorf(sysexits.Usage, "invalid container name: %s", name)
	}

	return nil
}

// The default command of a session: the entrypoint, acting as a login shell.
func DefaultCommand() []string {
	return []string{paths.Entrypoint, "-l"}
}

// Everything a subcommand needs to know about the container it acts on.
type Request struct {
	Name  string
	Image string
	// Whether Image was given explicitly, rather than left at its configured default.
	ImageSet bool

	// Enter as root instead of the invoking user.
	Su bool
	// Where the session starts; the current directory when empty.
	Workdir string
	Command []string
	// Names of the environment variables forwarded into the session.
	SharedEnv []string
}

// Fills in the name from the positional argument, if there was one, and validates it.
func (req *Request) SetName(positional []string) error {
	if len(positional) > 1 {
		return sysexits.Errorf(sysexits.Usage, "expected at most one container, got %s",
			strings.Join(positional, " "))
	}

	if len(positional) == 1 {
		req.Name = positional[0]
	}

	return ValidateName(req.Name)
}

// The user a session runs as.
func (req *Request) User(usrdata *userdata.Userdata) string {
	if req.Su {
		return "root"
	}

	return usrdata.User.Username
}

func (req *Request) EntryCommand() []string {
	if len(req.Command) == 0 {
		return DefaultCommand()
	}

	return req.Command
}

// A flag.Value setting the image of a request, remembering that it was given.
type ImageFlag struct {
	Request *Request
}

func (value ImageFlag) String() string {
	if value.Request == nil {
		return ""
	}

	return value.Request.Image
}

func (value ImageFlag) Set(image string) error {
	if image == "" {
		return sysexits.New(sysexits.Usage, "the image must not be empty")
	}

	value.Request.Image = image
	value.Request.ImageSet = true
	return nil
}
