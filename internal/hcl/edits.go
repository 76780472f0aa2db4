package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/pipestack/internal/ctxlog"
	"github.com/specialistvlad/pipestack/internal/editor"
)

// LoadEdits reads an edit script. The edits are returned in source order.
func (l *Loader) LoadEdits(ctx context.Context, path string) ([]editor.Edit, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edit script: %w", err)
	}
	edits, diags := ParseEdits(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse edit script %s: %w", path, diags)
	}
	ctxlog.FromContext(ctx).Debug("Loaded edit script.", "path", path, "edits", len(edits))
	return edits, nil
}

// ParseEdits parses an edit script from in-memory HCL source.
func ParseEdits(src []byte, filename string) ([]editor.Edit, hcl.Diagnostics) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, diagnostic("Unsupported edit script", "Edit scripts must use the native HCL syntax.", file.Body.MissingItemRange())
	}
	for name, attr := range body.Attributes {
		diags = append(diags, diagnostic("Unexpected attribute",
			fmt.Sprintf("An edit script holds only edit blocks; found attribute %q.", name), attr.SrcRange)...)
	}

	var edits []editor.Edit
	for _, block := range body.Blocks {
		e, blockDiags := decodeEdit(block)
		diags = append(diags, blockDiags...)
		if !blockDiags.HasErrors() {
			edits = append(edits, e)
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return edits, diags
}

func decodeEdit(block *hclsyntax.Block) (editor.Edit, hcl.Diagnostics) {
	e := editor.Edit{Source: block.DefRange().String()}

	switch block.Type {
	case "add_element":
		var b addElementBody
		diags := decodeBlock(block, &b, "name")
		e.Op, e.Element, e.Parent, e.Type = editor.OpAddElement, label(block, 0), b.Parent, b.Type
		return e, diags

	case "delete_element":
		diags := decodeBlock(block, &emptyBody{}, "id")
		e.Op, e.Element = editor.OpDeleteElement, label(block, 0)
		return e, diags

	case "reinstate_element":
		var b reinstateElementBody
		diags := decodeBlock(block, &b, "id")
		e.Op, e.Element, e.Parent, e.Type = editor.OpReinstateElement, label(block, 0), b.Parent, b.Type
		return e, diags

	case "move_element":
		var b moveElementBody
		diags := decodeBlock(block, &b, "id")
		e.Op, e.Element, e.Parent = editor.OpMoveElement, label(block, 0), b.To
		return e, diags

	case "set_property":
		var b valueBody
		diags := decodeBlock(block, &b, "element", "name")
		if diags.HasErrors() {
			return e, diags
		}
		v, valueDiags := propertyValue(b.Type, b.Value, b.Entity, block.DefRange())
		e.Op, e.Element, e.Property, e.Value = editor.OpSetProperty, label(block, 0), label(block, 1), v
		return e, valueDiags

	case "revert_property":
		var b revertPropertyBody
		diags := decodeBlock(block, &b, "element", "name")
		e.Element, e.Property = label(block, 0), label(block, 1)
		switch b.To {
		case "", "parent":
			e.Op = editor.OpRevertToParent
		case "default":
			e.Op = editor.OpRevertToDefault
		default:
			diags = append(diags, diagnostic("Invalid revert target",
				fmt.Sprintf("The to attribute must be \"parent\" or \"default\", got %q.", b.To), block.DefRange())...)
		}
		return e, diags
	}

	return e, diagnostic("Unsupported edit",
		fmt.Sprintf("Blocks of type %q are not edit operations.", block.Type), block.TypeRange)
}

// decodeBlock checks the block labels and decodes its body into target.
func decodeBlock(block *hclsyntax.Block, target any, labels ...string) hcl.Diagnostics {
	if len(block.Labels) != len(labels) {
		return diagnostic("Wrong number of labels",
			fmt.Sprintf("A %s block needs %d label(s): %v.", block.Type, len(labels), labels), block.DefRange())
	}
	return gohcl.DecodeBody(block.Body, nil, target)
}

func label(block *hclsyntax.Block, i int) string {
	if i < len(block.Labels) {
		return block.Labels[i]
	}
	return ""
}
