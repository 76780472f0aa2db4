package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/pipestack/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// propertyValue evaluates a property value given either as an expression or
// as an entity block. With an empty propertyType the type is inferred from
// the value: strings, bools, and numbers that fit an int32 become string,
// boolean and integer values; larger whole numbers become long values.
func propertyValue(propertyType string, expr hcl.Expression, entity *entityBlock, rng hcl.Range) (model.PropertyValue, hcl.Diagnostics) {
	t := model.NormalizeType(propertyType)

	if entity != nil {
		if t != "" && t != model.TypeEntity {
			return model.PropertyValue{}, diagnostic("Invalid property value",
				fmt.Sprintf("An entity block cannot hold a %s value.", propertyType), rng)
		}
		return model.EntityValue(model.DocRef{Type: entity.Type, UUID: entity.UUID, Name: entity.Name}), nil
	}

	if expr == nil {
		return model.PropertyValue{}, diagnostic("Missing property value", "Either a value attribute or an entity block is required.", rng)
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return model.PropertyValue{}, diags
	}
	if val.IsNull() {
		return model.PropertyValue{}, diagnostic("Missing property value", "Either a value attribute or an entity block is required.", rng)
	}
	subject := expr.Range()

	if t == "" {
		switch val.Type() {
		case cty.String:
			t = model.TypeString
		case cty.Bool:
			t = model.TypeBoolean
		case cty.Number:
			var n int32
			if gocty.FromCtyValue(val, &n) == nil {
				t = model.TypeInteger
			} else {
				t = model.TypeLong
			}
		default:
			return model.PropertyValue{}, diagnostic("Unsupported property value",
				fmt.Sprintf("A %s cannot be used as a property value.", val.Type().FriendlyName()), subject)
		}
	}

	var out model.PropertyValue
	var err error
	switch t {
	case model.TypeString:
		var s string
		err = decodeAs(val, cty.String, &s)
		out = model.StringValue(s)
	case model.TypeBoolean:
		var b bool
		err = decodeAs(val, cty.Bool, &b)
		out = model.BooleanValue(b)
	case model.TypeInteger:
		var n int32
		err = decodeAs(val, cty.Number, &n)
		out = model.IntegerValue(n)
	case model.TypeLong:
		var n int64
		err = decodeAs(val, cty.Number, &n)
		out = model.LongValue(n)
	case model.TypeEntity:
		err = fmt.Errorf("entity values must be given as an entity block")
	default:
		err = fmt.Errorf("unknown property type '%s'", propertyType)
	}
	if err != nil {
		return model.PropertyValue{}, diagnostic("Invalid property value", err.Error(), subject)
	}
	return out, nil
}

func decodeAs(val cty.Value, ty cty.Type, target any) error {
	converted, err := convert.Convert(val, ty)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}

func diagnostic(summary, detail string, rng hcl.Range) hcl.Diagnostics {
	return hcl.Diagnostics{&hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  rng.Ptr(),
	}}
}
