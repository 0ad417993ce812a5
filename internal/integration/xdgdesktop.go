/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package integration

import (
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/eklmt/dizzybox/internal/log"
	"github.com/eklmt/dizzybox/internal/paths"
	"github.com/eklmt/dizzybox/internal/sysexits"
	"golang.org/x/sys/unix"
)

// Exports desktop entries from inside a container into the host user's applications directory.
// XDG_DATA_DIRS and icons are not handled. Bytes written are counted only for the debug log.
type Exporter struct {
	Options

	// The host filesystem root as seen from here.
	HostRoot string
	// The user's home directory on the host.
	Home string

	// If set, entries are written here instead, and nothing on the host is touched.
	DryRun io.Writer
}

func NewExporter(home string, opts Options) *Exporter {
	return &Exporter{
		Options:  opts,
		HostRoot: paths.HostMount,
		Home:     home,
	}
}

// Where the export of source ends up.
func (exp *Exporter) Destination(source string) string {
	return filepath.Join(exp.HostRoot, exp.Home, paths.ApplicationsDir, paths.ExportPrefix+filepath.Base(source))
}

type countingWriter struct {
	w io.Writer
	n uint64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += uint64(n)
	return n, err
}

// Opens the destination for appending and makes sure it is empty, so that a repeated export
// never duplicates or clobbers anything.
func (exp *Exporter) openDestination(dest string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, sysexits.Wrapf(sysexits.CannotCreate, err, "failed to create %s", filepath.Dir(dest))
	}

	target, err := os.OpenFile(dest, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, sysexits.Wrapf(sysexits.CannotCreate, err, "destination file %s could not be created", dest)
	}

	var st unix.Stat_t
	if err := unix.Fstat(int(target.Fd()), &st); err != nil {
		target.Close()
		return nil, sysexits.Wrapf(sysexits.Data, err, "failed to retrieve the file information for %s", dest)
	}

	if st.Size != 0 {
		target.Close()
		return nil, sysexits.Errorf(sysexits.Data, "refusing to clobber non-empty file %s", dest)
	}

	return target, nil
}

func (exp *Exporter) ExportFile(desktopFilePath string) error {
	log.Debug("Exporting desktop file", desktopFilePath)

	// Before the destination is created, so a bad ID leaves nothing behind.
	if err := exp.Validate(); err != nil {
		return err
	}

	source, err := os.Open(desktopFilePath)
	if err != nil {
		return sysexits.Wrapf(sysexits.Data, err, "failed to open %s for reading", desktopFilePath)
	}
	defer source.Close()

	var output io.Writer
	dest := "standard output"

	if exp.DryRun != nil {
		output = exp.DryRun
	} else {
		dest = exp.Destination(desktopFilePath)

		target, err := exp.openDestination(dest)
		if err != nil {
			return err
		}
		defer target.Close()

		output = target
	}

	counter := &countingWriter{w: output}
	if err := Transduce(counter, source, exp.Options); err != nil {
		return sysexits.Wrapf(sysexits.Data, err, "failed to export %s", desktopFilePath)
	}

	log.Debugf("Exported %s to %s (%s)", desktopFilePath, dest, humanize.Bytes(counter.n))
	return nil
}

// Exports each file in turn, stopping at the first failure.
func (exp *Exporter) Export(desktopFilePaths []string) error {
	for _, path := range desktopFilePaths {
		if err := exp.ExportFile(path); err != nil {
			return err
		}
	}

	return nil
}
