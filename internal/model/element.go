// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// Element is a named processing node. The Type is a key into the element
// type catalog.
type Element struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Key returns the identity of the element.
func (e Element) Key() string {
	return e.ID
}

// Link is a directed parent -> child edge between two element ids.
type Link struct {
	From string `json:"from"`
	To   string `json:"to"`
	// SourcePipeline is set on merged links to the pipeline that added them.
	SourcePipeline *DocRef `json:"sourcePipeline,omitempty"`
}

// LinkKey is the identity of a link.
type LinkKey struct {
	From string
	To   string
}

// Key returns the identity of the link.
func (l Link) Key() LinkKey {
	return LinkKey{From: l.From, To: l.To}
}
