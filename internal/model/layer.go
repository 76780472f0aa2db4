// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"slices"

	"github.com/goccy/go-json"
)

// AddRemove is the unit of layered change. Remove entries are matched by
// identity only, so they may omit everything but the identity fields.
type AddRemove[T any] struct {
	Add    []T `json:"add,omitempty"`
	Remove []T `json:"remove,omitempty"`
}

// Clone returns a copy whose slices can be modified independently.
func (a AddRemove[T]) Clone() AddRemove[T] {
	return AddRemove[T]{Add: slices.Clone(a.Add), Remove: slices.Clone(a.Remove)}
}

// PipelineData holds one layer's deltas. A merged pipeline uses the same
// shape with only Add populated.
type PipelineData struct {
	Elements           AddRemove[Element]   `json:"elements"`
	Properties         AddRemove[Property]  `json:"properties"`
	PipelineReferences AddRemove[Reference] `json:"pipelineReferences"`
	Links              AddRemove[Link]      `json:"links"`
}

// Clone returns a copy whose slices can be modified independently.
func (p PipelineData) Clone() PipelineData {
	return PipelineData{
		Elements:           p.Elements.Clone(),
		Properties:         p.Properties.Clone(),
		PipelineReferences: p.PipelineReferences.Clone(),
		Links:              p.Links.Clone(),
	}
}

// Element returns the added element with the given id.
func (p PipelineData) Element(id string) (Element, bool) {
	for _, e := range p.Elements.Add {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}

// Property returns the added property with the given key.
func (p PipelineData) Property(element, name string) (Property, bool) {
	for _, prop := range p.Properties.Add {
		if prop.Element == element && prop.Name == name {
			return prop, true
		}
	}
	return Property{}, false
}

// Layer is one pipeline's contribution to a config stack.
type Layer struct {
	Pipeline DocRef       `json:"pipeline"`
	Data     PipelineData `json:"data"`
}

// UnmarshalJSON accepts both the {pipeline, data} form and a bare layer
// data object, which leaves Pipeline empty.
func (l *Layer) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	_, hasPipeline := fields["pipeline"]
	_, hasData := fields["data"]
	if hasPipeline || hasData {
		type layer Layer
		var out layer
		if err := json.Unmarshal(b, &out); err != nil {
			return err
		}
		*l = Layer(out)
		return nil
	}

	var data PipelineData
	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}
	*l = Layer{Data: data}
	return nil
}

// ConfigStack is the root-first sequence of layers of a pipeline. The last
// layer belongs to the pipeline itself.
type ConfigStack []Layer

// Local returns the layer of the pipeline the stack was resolved for.
func (s ConfigStack) Local() (Layer, bool) {
	if len(s) == 0 {
		return Layer{}, false
	}
	return s[len(s)-1], true
}

// Ancestors returns every layer but the local one.
func (s ConfigStack) Ancestors() ConfigStack {
	if len(s) == 0 {
		return nil
	}
	return s[:len(s)-1]
}

// WithLocal returns a copy of the stack whose local layer data is replaced.
func (s ConfigStack) WithLocal(data PipelineData) ConfigStack {
	out := slices.Clone(s)
	if len(out) > 0 {
		out[len(out)-1].Data = data
	}
	return out
}
