// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// DocRef is a unique reference to a document such as a pipeline or a feed.
type DocRef struct {
	Type string `json:"type"`
	UUID string `json:"uuid"`
	Name string `json:"name,omitempty"`
}

// PipelineType is the DocRef type of pipeline documents.
const PipelineType = "Pipeline"

// PipelineRef returns a DocRef to the pipeline with the given uuid.
func PipelineRef(uuid, name string) DocRef {
	return DocRef{Type: PipelineType, UUID: uuid, Name: name}
}

// IsZero reports whether the reference is empty.
func (d DocRef) IsZero() bool {
	return d.UUID == "" && d.Type == "" && d.Name == ""
}

func (d DocRef) String() string {
	if d.Name != "" {
		return d.Name + " (" + d.UUID + ")"
	}
	return d.UUID
}
