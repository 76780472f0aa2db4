// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package merge folds a config stack into the single effective pipeline.
//
// Layers are applied root first. Within a layer every remove is applied
// before any add, so a layer can retract and re-add the same key to
// override an inherited value. When two layers add the same key the later
// (closer to the local pipeline) one wins; that is overriding, not an error.
package merge

import (
	"github.com/specialistvlad/pipestack/internal/model"
)

// Merge folds the stack into the effective pipeline. Every added value in
// the result carries the pipeline that contributed it in SourcePipeline.
// The result only has Add entries; its slices are freshly allocated.
func Merge(stack model.ConfigStack) model.PipelineData {
	elements := newOrdered[string, model.Element]()
	properties := newOrdered[model.PropertyKey, model.Property]()
	references := newOrdered[model.PropertyKey, model.Reference]()
	links := newOrdered[model.LinkKey, model.Link]()

	for _, layer := range stack {
		source := layer.Pipeline
		data := layer.Data

		for _, e := range data.Elements.Remove {
			elements.remove(e.Key())
		}
		for _, p := range data.Properties.Remove {
			properties.remove(p.Key())
		}
		for _, r := range data.PipelineReferences.Remove {
			references.remove(r.Key())
		}
		for _, l := range data.Links.Remove {
			links.remove(l.Key())
		}

		for _, e := range data.Elements.Add {
			elements.put(e.Key(), e)
		}
		for _, p := range data.Properties.Add {
			p.SourcePipeline = sourceRef(source)
			properties.put(p.Key(), p)
		}
		for _, r := range data.PipelineReferences.Add {
			r.SourcePipeline = sourceRef(source)
			references.put(r.Key(), r)
		}
		for _, l := range data.Links.Add {
			l.SourcePipeline = sourceRef(source)
			links.put(l.Key(), l)
		}
	}

	return model.PipelineData{
		Elements:           model.AddRemove[model.Element]{Add: elements.slice()},
		Properties:         model.AddRemove[model.Property]{Add: properties.slice()},
		PipelineReferences: model.AddRemove[model.Reference]{Add: references.slice()},
		Links:              model.AddRemove[model.Link]{Add: links.slice()},
	}
}

// Inherited merges every layer but the local one: the view the pipeline
// would have if its own layer were empty.
func Inherited(stack model.ConfigStack) model.PipelineData {
	return Merge(stack.Ancestors())
}

// Origin reports which layer of the stack supplies the effective value of
// a property, as an index into the stack. It returns -1 when no layer does.
func Origin(stack model.ConfigStack, element, name string) int {
	key := model.PropertyKey{Element: element, Name: name}
	origin := -1
	for i, layer := range stack {
		for _, p := range layer.Data.Properties.Remove {
			if p.Key() == key {
				origin = -1
			}
		}
		for _, p := range layer.Data.Properties.Add {
			if p.Key() == key {
				origin = i
			}
		}
	}
	return origin
}

func sourceRef(ref model.DocRef) *model.DocRef {
	if ref.IsZero() {
		return nil
	}
	return &ref
}
