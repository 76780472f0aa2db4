// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// Document is a pipeline document as held by the document store.
type Document struct {
	UUID           string       `json:"uuid"`
	Name           string       `json:"name,omitempty"`
	Description    string       `json:"description,omitempty"`
	ParentPipeline *DocRef      `json:"parentPipeline,omitempty"`
	PipelineData   PipelineData `json:"pipelineData"`

	// ConfigStack and Merged are optional precomputed views.
	ConfigStack ConfigStack   `json:"configStack,omitempty"`
	Merged      *PipelineData `json:"merged,omitempty"`
}

// Ref returns a reference to the document.
func (d *Document) Ref() DocRef {
	return PipelineRef(d.UUID, d.Name)
}

// Layer returns the document's own layer.
func (d *Document) Layer() Layer {
	return Layer{Pipeline: d.Ref(), Data: d.PipelineData}
}

// ParentUUID returns the uuid of the parent pipeline, or "" if there is none.
func (d *Document) ParentUUID() string {
	if d.ParentPipeline == nil {
		return ""
	}
	return d.ParentPipeline.UUID
}
