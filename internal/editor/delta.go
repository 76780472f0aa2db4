// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package editor

import (
	"slices"

	"github.com/specialistvlad/pipestack/internal/model"
)

// without returns s minus the entries matching fn. The input is not modified.
func without[T any](s []T, fn func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if !fn(v) {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// retract takes a key out of a layer. A local add is dropped; a key that
// is still visible from the ancestors is masked with a remove.
func retract[T any](ar *model.AddRemove[T], match func(T) bool, inherited []T, mask T) {
	ar.Add = without(ar.Add, match)
	if slices.ContainsFunc(inherited, match) && !slices.ContainsFunc(ar.Remove, match) {
		ar.Remove = append(ar.Remove, mask)
	}
}

// restore makes a key visible again. A local remove is dropped; if no
// ancestor supplies the key it is added locally.
func restore[T any](ar *model.AddRemove[T], match func(T) bool, inherited []T, value T) {
	ar.Remove = without(ar.Remove, match)
	if !slices.ContainsFunc(inherited, match) && !slices.ContainsFunc(ar.Add, match) {
		ar.Add = append(ar.Add, value)
	}
}

func elementIs(id string) func(model.Element) bool {
	return func(e model.Element) bool { return e.ID == id }
}

func linkIs(key model.LinkKey) func(model.Link) bool {
	return func(l model.Link) bool { return l.Key() == key }
}

func propertyIs(key model.PropertyKey) func(model.Property) bool {
	return func(p model.Property) bool { return p.Key() == key }
}

func propertyOf(element string) func(model.Property) bool {
	return func(p model.Property) bool { return p.Element == element }
}

func referenceOf(element string) func(model.Reference) bool {
	return func(r model.Reference) bool { return r.Element == element }
}

func referenceIs(key model.PropertyKey) func(model.Reference) bool {
	return func(r model.Reference) bool { return r.Key() == key }
}
