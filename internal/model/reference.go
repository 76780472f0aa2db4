// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// Reference is a typed link from one element to an external document used
// for data lookups at runtime. It shares its identity shape with Property.
type Reference struct {
	Element    string  `json:"element"`
	Name       string  `json:"name"`
	Pipeline   *DocRef `json:"pipeline,omitempty"`
	Feed       *DocRef `json:"feed,omitempty"`
	StreamType string  `json:"streamType,omitempty"`
	// SourcePipeline is set on merged references to the pipeline that added them.
	SourcePipeline *DocRef `json:"sourcePipeline,omitempty"`
}

// Key returns the identity of the reference.
func (r Reference) Key() PropertyKey {
	return PropertyKey{Element: r.Element, Name: r.Name}
}
