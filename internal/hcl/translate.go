// This file translates the decoded HCL schema structs into the catalog and
// model types.

package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/pipestack/internal/catalog"
	"github.com/specialistvlad/pipestack/internal/model"
)

// translateElementType converts an element_type block. Unknown categories
// are kept as written so that catalog validation can report them all.
func translateElementType(b *elementTypeBlock, filePath string) (*catalog.ElementType, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	et := &catalog.ElementType{
		Type:        b.Type,
		Category:    category(b.Category),
		Description: b.Description,
		Roles:       b.Roles,
		MaxChildren: b.MaxChildren,
		Properties:  make(map[string]catalog.PropertyType, len(b.Properties)),
		FilePath:    filePath,
	}
	for _, c := range b.AllowedChildren {
		et.AllowedChildren = append(et.AllowedChildren, category(c))
	}

	for _, p := range b.Properties {
		pt := catalog.PropertyType{
			Name:              p.Name,
			Type:              model.NormalizeType(p.Type),
			Description:       p.Description,
			DocRefTypes:       p.DocRefTypes,
			PipelineReference: p.PipelineReference,
		}
		if hasValue(p.Default) {
			def, defDiags := propertyValue(p.Type, p.Default, nil, p.DefRange)
			diags = append(diags, defDiags...)
			if !defDiags.HasErrors() {
				pt.Default = &def
			}
		}
		et.Properties[p.Name] = pt
	}
	return et, diags
}

func category(s string) catalog.Category {
	c, _ := catalog.ParseCategory(s)
	return c
}

// hasValue reports whether an optional expression attribute was set.
func hasValue(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	val, diags := expr.Value(nil)
	return diags.HasErrors() || !val.IsNull()
}

// translatePipeline converts a pipeline block into a document holding the
// pipeline's own layer.
func translatePipeline(b *pipelineBlock) (*model.Document, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	doc := &model.Document{
		UUID:        b.UUID,
		Name:        b.Name,
		Description: b.Description,
	}
	if b.Parent != "" {
		ref := model.PipelineRef(b.Parent, "")
		doc.ParentPipeline = &ref
	}

	data := &doc.PipelineData
	for _, e := range b.Elements {
		data.Elements.Add = append(data.Elements.Add, model.Element{ID: e.ID, Type: e.Type})
	}
	for _, e := range b.RemovedElements {
		data.Elements.Remove = append(data.Elements.Remove, model.Element{ID: e.ID, Type: e.Type})
	}
	for _, l := range b.Links {
		data.Links.Add = append(data.Links.Add, model.Link{From: l.From, To: l.To})
	}
	for _, l := range b.RemovedLinks {
		data.Links.Remove = append(data.Links.Remove, model.Link{From: l.From, To: l.To})
	}
	for _, p := range b.Properties {
		v, valueDiags := propertyValue(p.Type, p.Value, p.Entity, p.DefRange)
		diags = append(diags, valueDiags...)
		if valueDiags.HasErrors() {
			continue
		}
		data.Properties.Add = append(data.Properties.Add, model.Property{Element: p.Element, Name: p.Name, Value: &v})
	}
	for _, p := range b.RemovedProperties {
		data.Properties.Remove = append(data.Properties.Remove, model.Property{Element: p.Element, Name: p.Name})
	}
	for _, r := range b.References {
		ref := model.Reference{Element: r.Element, Name: r.Name, StreamType: r.StreamType}
		if r.Pipeline != "" {
			p := model.PipelineRef(r.Pipeline, "")
			ref.Pipeline = &p
		}
		if r.Feed != "" {
			ref.Feed = &model.DocRef{Type: "Feed", UUID: r.Feed}
		}
		data.PipelineReferences.Add = append(data.PipelineReferences.Add, ref)
	}
	for _, r := range b.RemovedReferences {
		data.PipelineReferences.Remove = append(data.PipelineReferences.Remove, model.Reference{Element: r.Element, Name: r.Name})
	}
	return doc, diags
}
