/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package args

import (
	"strings"

	"github.com/eklmt/dizzybox/internal/log"
	"github.com/eklmt/dizzybox/internal/sysexits"
)

type arrayTransformKind int

const (
	arrayTransformAdd arrayTransformKind = iota
	arrayTransformDel
	arrayTransformSet
)

var (
	arrayTransformKindToChar = map[arrayTransformKind]byte{
		arrayTransformAdd: '+',
		arrayTransformDel: '-',
		arrayTransformSet: ':',
	}

	charToArrayTransformKind = map[byte]arrayTransformKind{
		'+': arrayTransformAdd,
		'-': arrayTransformDel,
		':': arrayTransformSet,
	}
)

type arrayTransform struct {
	kind  arrayTransformKind
	items []string
}

func (transform arrayTransform) String() string {
	return string(arrayTransformKindToChar[transform.kind]) + strings.Join(transform.items, ",")
}

// A flag.Value collecting edits to a list: "+A,B" adds, "-A,B" removes, ":A,B" replaces the
// whole list (":" alone empties it). The flag may be repeated; edits apply in order.
type ArrayTransformValue struct {
	transforms []arrayTransform
}

func (value *ArrayTransformValue) String() string {
	if value == nil {
		return ""
	}

	var parts []string
	for _, transform := range value.transforms {
		parts = append(parts, transform.String())
	}

	return strings.Join(parts, " ")
}

func (value *ArrayTransformValue) Set(arg string) error {
	if len(arg) == 0 {
		return nil
	}

	kind, ok := charToArrayTransformKind[arg[0]]
	if !ok {
		return sysexits.Errorf(sysexits.Usage, "invalid array transform %q, must start with one of + - :", arg)
	}

	transform := arrayTransform{kind: kind}

	if len(arg) > 1 {
		transform.items = strings.Split(arg[1:], ",")
		for _, item := range transform.items {
			if len(item) == 0 {
				return sysexits.New(sysexits.Usage, "items must not be empty")
			}
		}
	}

	value.transforms = append(value.transforms, transform)
	return nil
}

// Converts a slice of values to a set.
func sliceToSet(items []string) map[string]struct{} {
	result := map[string]struct{}{}

	for _, item := range items {
		result[item] = struct{}{}
	}

	return result
}

func (transform arrayTransform) apply(target []string) []string {
	switch transform.kind {
	case arrayTransformAdd:
		presentItems := sliceToSet(target)

		for _, item := range transform.items {
			if _, found := presentItems[item]; found {
				log.Debugf("item %s was already present", item)
				continue
			}

			presentItems[item] = struct{}{}
			target = append(target, item)
		}

	case arrayTransformDel:
		givenItems := sliceToSet(transform.items)
		newTarget := []string{}

		for _, item := range target {
			if _, found := givenItems[item]; !found {
				newTarget = append(newTarget, item)
			}
		}

		target = newTarget

	case arrayTransformSet:
		target = append([]string{}, transform.items...)
	}

	return target
}

// Applies every collected edit to a copy of target.
func (value *ArrayTransformValue) Apply(target []string) []string {
	result := append([]string{}, target...)

	for _, transform := range value.transforms {
		result = transform.apply(result)
	}

	return result
}
