/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package args

import (
	"flag"
	"io"
	"testing"

	. "github.com/onsi/gomega"
)

func TestArrayTransform(t *testing.T) {
	base := []string{"DISPLAY", "TERM", "LANG"}

	for name, tc := range map[string]struct {
		flags  []string
		result []string
	}{
		"none":          {nil, base},
		"add":           {[]string{"+EDITOR,TERM"}, []string{"DISPLAY", "TERM", "LANG", "EDITOR"}},
		"remove":        {[]string{"-TERM,NOPE"}, []string{"DISPLAY", "LANG"}},
		"replace":       {[]string{":PATH"}, []string{"PATH"}},
		"clear":         {[]string{":"}, []string{}},
		"in order":      {[]string{":A", "+B", "-A"}, []string{"B"}},
		"add duplicate": {[]string{"+X,X"}, []string{"DISPLAY", "TERM", "LANG", "X"}},
	} {
		t.Run(name, func(t *testing.T) {
			g := NewWithT(t)

			var value ArrayTransformValue
			for _, arg := range tc.flags {
				g.Expect(value.Set(arg)).To(Succeed())
			}

			g.Expect(value.Apply(base)).To(Equal(tc.result))
			g.Expect(base).To(Equal([]string{"DISPLAY", "TERM", "LANG"}))
		})
	}
}

func TestArrayTransformErrors(t *testing.T) {
	g := NewWithT(t)

	var value ArrayTransformValue
	g.Expect(value.Set("TERM")).NotTo(Succeed())
	g.Expect(value.Set("+A,,B")).NotTo(Succeed())
	g.Expect(value.Set("")).To(Succeed())
	g.Expect(value.transforms).To(BeEmpty())
}

func TestArrayTransformAsFlag(t *testing.T) {
	g := NewWithT(t)

	var value ArrayTransformValue
	fs := flag.NewFlagSet("enter", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&value, "share-env", "")

	g.Expect(fs.Parse([]string{"-share-env", "+EDITOR", "-share-env=-TERM"})).To(Succeed())
	g.Expect(value.String()).To(Equal("+EDITOR -TERM"))
	g.Expect(value.Apply([]string{"TERM"})).To(Equal([]string{"EDITOR"}))
}
