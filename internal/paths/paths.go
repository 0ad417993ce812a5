/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package paths

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	ProductName = "dizzybox"

	// Where the binary is installed inside every container. Running under this name makes it
	// act as the container's init and default shell.
	Entrypoint = "/usr/bin/entrypoint"

	// The host's root filesystem, as seen from inside a container.
	HostMount = "/run/host"

	// Optional container-local script launched by the init.
	InitScript = "/etc/init.sh"

	FallbackShell = "/bin/sh"

	// Relative to the user's home directory.
	ApplicationsDir = ".local/share/applications"

	// Prefix of every exported desktop entry, so they can be told apart from the user's own.
	ExportPrefix = ProductName + "-"
)

func GetExecutablePath() (string, error) {
	self, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate executable")
	}

	resolved, err := filepath.EvalSymlinks(self)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", self)
	}

	return resolved, nil
}
