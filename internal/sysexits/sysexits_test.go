/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package sysexits

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

type fakeExit int

func (code fakeExit) Error() string { return "exited" }
func (code fakeExit) ExitCode() int { return int(code) }

func TestStatusOf(t *testing.T) {
	tests := map[string]struct {
		err    error
		status int
	}{
		"nil":            {nil, 0},
		"plain":          {errors.New("boom"), 1},
		"kind":           {New(Data, "bad"), 65},
		"wrapped kind":   {errors.Wrap(New(CannotCreate, "nope"), "export"), 73},
		"child status":   {errors.Wrap(fakeExit(3), "podman"), 3},
		"kind over exit": {Wrap(OS, fakeExit(3)), 71},
		"signaled child": {fakeExit(-1), 1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			NewWithT(t).Expect(StatusOf(tc.err)).To(Equal(tc.status))
		})
	}
}

func TestWrapKeepsMessageAndCause(t *testing.T) {
	g := NewWithT(t)

	base := errors.New("disk on fire")
	err := Wrapf(Data, base, "failed to read %s", "foo.desktop")

	g.Expect(err.Error()).To(Equal("failed to read foo.desktop: disk on fire"))
	g.Expect(errors.Cause(err)).To(BeIdenticalTo(base))

	kind, ok := KindOf(err)
	g.Expect(ok).To(BeTrue())
	g.Expect(kind).To(Equal(Data))
	g.Expect(kind.String()).To(Equal("data error"))
}

func TestWrapNil(t *testing.T) {
	g := NewWithT(t)
	g.Expect(Wrap(OS, nil)).To(BeNil())
	g.Expect(Wrapf(OS, nil, "x")).To(BeNil())
}
