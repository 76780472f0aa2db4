// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package editor

import (
	"slices"

	"github.com/specialistvlad/pipestack/internal/merge"
	"github.com/specialistvlad/pipestack/internal/model"
	"github.com/specialistvlad/pipestack/internal/pipeerr"
)

// SetProperty converts raw to a value of propertyType and sets it on the
// element in the local layer.
func (s *Session) SetProperty(elementID, name, propertyType string, raw any) (*Snapshot, error) {
	v, err := model.NewPropertyValue(propertyType, raw)
	if err != nil {
		return nil, err
	}
	return s.SetPropertyValue(elementID, name, v)
}

// SetPropertyValue sets a property on the element in the local layer,
// replacing any local value or local remove for the same key.
//
// When the catalog declares properties for the element type, the name must
// be one of them and the value must have the declared type.
func (s *Session) SetPropertyValue(elementID, name string, v model.PropertyValue) (*Snapshot, error) {
	e, ok := s.merged.Element(elementID)
	if !ok {
		return nil, pipeerr.New(pipeerr.KindUnknownElement, elementID, "cannot set property '%s'", name)
	}
	if !v.Valid() {
		return nil, pipeerr.New(pipeerr.KindInvalidValue, elementID, "property '%s' must hold exactly one value", name)
	}
	if err := s.checkProperty(e, name, v); err != nil {
		return nil, err
	}

	key := model.PropertyKey{Element: elementID, Name: name}
	local := s.local()
	local.Properties.Add = append(without(local.Properties.Add, propertyIs(key)), model.Property{Element: elementID, Name: name, Value: &v})
	local.Properties.Remove = without(local.Properties.Remove, propertyIs(key))
	return s.commit("set property", local)
}

func (s *Session) checkProperty(e model.Element, name string, v model.PropertyValue) error {
	if s.types == nil {
		return nil
	}
	et, ok := s.types.ElementType(e.Type)
	if !ok || len(et.Properties) == 0 {
		return nil
	}
	pt, ok := et.Property(name)
	if !ok {
		return pipeerr.New(pipeerr.KindInvalidProperty, e.ID, "type '%s' has no property '%s'", e.Type, name)
	}
	if want := model.NormalizeType(pt.Type); want != v.Type() {
		return pipeerr.New(pipeerr.KindInvalidProperty, e.ID, "property '%s' is of type '%s', got '%s'", name, want, v.Type())
	}
	return nil
}

// RevertPropertyToParent drops the local value and any local remove of a
// property so that the nearest ancestor value, or else the catalog
// default, applies.
func (s *Session) RevertPropertyToParent(elementID, name string) (*Snapshot, error) {
	if _, ok := s.merged.Element(elementID); !ok {
		return nil, pipeerr.New(pipeerr.KindUnknownElement, elementID, "cannot revert property '%s'", name)
	}
	key := model.PropertyKey{Element: elementID, Name: name}
	local := s.local()
	local.Properties.Add = without(local.Properties.Add, propertyIs(key))
	local.Properties.Remove = without(local.Properties.Remove, propertyIs(key))
	return s.commit("revert property to parent", local)
}

// RevertPropertyToDefault drops the local value of a property and masks
// any ancestor value, leaving the catalog default in effect.
func (s *Session) RevertPropertyToDefault(elementID, name string) (*Snapshot, error) {
	if _, ok := s.merged.Element(elementID); !ok {
		return nil, pipeerr.New(pipeerr.KindUnknownElement, elementID, "cannot revert property '%s'", name)
	}
	key := model.PropertyKey{Element: elementID, Name: name}
	local := s.local()
	retract(&local.Properties, propertyIs(key), s.inherited().Properties.Add, model.Property{Element: elementID, Name: name})
	return s.commit("revert property to default", local)
}

// ParentProperty returns the value an ancestor layer gives the property,
// searching from the parent towards the root. The search stops at the
// first layer that adds the key or at a layer that removes it.
func (s *Session) ParentProperty(elementID, name string) (model.Property, bool) {
	key := model.PropertyKey{Element: elementID, Name: name}
	ancestors := s.stack.Ancestors()
	for i := len(ancestors) - 1; i >= 0; i-- {
		data := ancestors[i].Data
		if j := slices.IndexFunc(data.Properties.Add, propertyIs(key)); j >= 0 {
			p := data.Properties.Add[j]
			ref := ancestors[i].Pipeline
			p.SourcePipeline = &ref
			return p, true
		}
		if slices.ContainsFunc(data.Properties.Remove, propertyIs(key)) {
			break
		}
	}
	return model.Property{}, false
}

// Origin tells where the effective value of a property comes from.
type Origin int

const (
	OriginUnset Origin = iota
	OriginDefault
	OriginInherited
	OriginLocal
)

func (o Origin) String() string {
	switch o {
	case OriginDefault:
		return "default"
	case OriginInherited:
		return "inherited"
	case OriginLocal:
		return "local"
	}
	return "unset"
}

// Value is the effective value of a property.
type Value struct {
	Value  *model.PropertyValue
	Origin Origin
	// Source is the pipeline that set the value; nil for defaults.
	Source *model.DocRef
}

// PropertyValue resolves the effective value of a property: the merged
// value if any layer sets it, otherwise the catalog default.
func (s *Session) PropertyValue(elementID, name string) (Value, error) {
	e, ok := s.merged.Element(elementID)
	if !ok {
		return Value{}, pipeerr.New(pipeerr.KindUnknownElement, elementID, "cannot read property '%s'", name)
	}
	if p, ok := s.merged.Property(elementID, name); ok {
		origin := OriginInherited
		if merge.Origin(s.stack, elementID, name) == len(s.stack)-1 {
			origin = OriginLocal
		}
		return Value{Value: p.Value, Origin: origin, Source: p.SourcePipeline}, nil
	}
	if s.types != nil {
		if et, ok := s.types.ElementType(e.Type); ok {
			if def, ok := et.Default(name); ok {
				return Value{Value: def, Origin: OriginDefault}, nil
			}
		}
	}
	return Value{Origin: OriginUnset}, nil
}
