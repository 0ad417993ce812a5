/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package selinux

import (
	"github.com/opencontainers/selinux/go-selinux"

	"github.com/eklmt/dizzybox/internal/log"
)

// Whether the host labels processes and files. A labeled host would deny the container access to
// the host paths mounted into it, so containers are created with labeling disabled.
func LabelingEnabled() bool {
	if !selinux.GetEnabled() {
		log.Debug("SELinux is disabled")
		return false
	}

	log.Debug("SELinux is enabled, mode", modeName(selinux.EnforceMode()))
	return true
}

func modeName(mode int) string {
	switch mode {
	case selinux.Enforcing:
		return "enforcing"
	case selinux.Permissive:
		return "permissive"
	}

	return "disabled"
}
