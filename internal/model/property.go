// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/specialistvlad/pipestack/internal/pipeerr"
)

// Property value types, as named by the element type catalog.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeLong    = "long"
	TypeBoolean = "boolean"
	TypeEntity  = "entity"
)

// PropertyKey is the identity of a property or a pipeline reference.
type PropertyKey struct {
	Element string
	Name    string
}

func (k PropertyKey) String() string {
	return k.Element + "." + k.Name
}

// Property is a named configuration value attached to one element.
type Property struct {
	Element string         `json:"element"`
	Name    string         `json:"name"`
	Value   *PropertyValue `json:"value,omitempty"`
	// SourcePipeline is set on merged properties to the pipeline that added them.
	SourcePipeline *DocRef `json:"sourcePipeline,omitempty"`
}

// Key returns the identity of the property.
func (p Property) Key() PropertyKey {
	return PropertyKey{Element: p.Element, Name: p.Name}
}

// PropertyValue is a tagged union: exactly one field is set.
type PropertyValue struct {
	String  *string `json:"string"`
	Integer *int32  `json:"integer"`
	Long    *int64  `json:"long"`
	Boolean *bool   `json:"boolean"`
	Entity  *DocRef `json:"entity"`
}

func StringValue(v string) PropertyValue   { return PropertyValue{String: &v} }
func IntegerValue(v int32) PropertyValue   { return PropertyValue{Integer: &v} }
func LongValue(v int64) PropertyValue      { return PropertyValue{Long: &v} }
func BooleanValue(v bool) PropertyValue    { return PropertyValue{Boolean: &v} }
func EntityValue(ref DocRef) PropertyValue { return PropertyValue{Entity: &ref} }

// Type returns the name of the populated field, or "" when the value is not
// exactly one of the union members.
func (v PropertyValue) Type() string {
	var name string
	set := 0
	if v.String != nil {
		name, set = TypeString, set+1
	}
	if v.Integer != nil {
		name, set = TypeInteger, set+1
	}
	if v.Long != nil {
		name, set = TypeLong, set+1
	}
	if v.Boolean != nil {
		name, set = TypeBoolean, set+1
	}
	if v.Entity != nil {
		name, set = TypeEntity, set+1
	}
	if set != 1 {
		return ""
	}
	return name
}

// Valid reports whether exactly one member of the union is set.
func (v PropertyValue) Valid() bool {
	return v.Type() != ""
}

// Raw returns the populated member as a plain Go value.
func (v PropertyValue) Raw() any {
	switch v.Type() {
	case TypeString:
		return *v.String
	case TypeInteger:
		return *v.Integer
	case TypeLong:
		return *v.Long
	case TypeBoolean:
		return *v.Boolean
	case TypeEntity:
		return *v.Entity
	}
	return nil
}

// Equal compares two values member by member.
func (v PropertyValue) Equal(o PropertyValue) bool {
	return v.Type() == o.Type() && v.Raw() == o.Raw()
}

// Format renders the populated member for display.
func (v PropertyValue) Format() string {
	switch v.Type() {
	case "":
		return "<invalid>"
	case TypeEntity:
		return v.Entity.String()
	}
	return fmt.Sprint(v.Raw())
}

// NormalizeType maps catalog spellings of a property type onto the union
// member names. "int" is accepted for "integer".
func NormalizeType(propertyType string) string {
	t := strings.ToLower(strings.TrimSpace(propertyType))
	if t == "int" {
		return TypeInteger
	}
	return t
}

// NewPropertyValue builds a value of the named type from a raw Go value.
// Strings are parsed for the numeric and boolean types.
func NewPropertyValue(propertyType string, raw any) (PropertyValue, error) {
	t := NormalizeType(propertyType)
	invalid := func() (PropertyValue, error) {
		return PropertyValue{}, pipeerr.New(pipeerr.KindInvalidValue, "", "cannot use %v (%T) as a %s value", raw, raw, propertyType)
	}

	switch t {
	case TypeString:
		s, ok := raw.(string)
		if !ok {
			return invalid()
		}
		return StringValue(s), nil
	case TypeInteger:
		n, ok := toInt64(raw)
		if !ok || n < math.MinInt32 || n > math.MaxInt32 {
			return invalid()
		}
		return IntegerValue(int32(n)), nil
	case TypeLong:
		n, ok := toInt64(raw)
		if !ok {
			return invalid()
		}
		return LongValue(n), nil
	case TypeBoolean:
		switch b := raw.(type) {
		case bool:
			return BooleanValue(b), nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return invalid()
			}
			return BooleanValue(parsed), nil
		}
		return invalid()
	case TypeEntity:
		switch ref := raw.(type) {
		case DocRef:
			return EntityValue(ref), nil
		case *DocRef:
			if ref != nil {
				return EntityValue(*ref), nil
			}
		}
		return invalid()
	}
	return PropertyValue{}, pipeerr.New(pipeerr.KindInvalidValue, "", "unknown property type '%s'", propertyType)
}

func toInt64(raw any) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || n >= 1<<63 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return parsed, err == nil
	}
	return 0, false
}
