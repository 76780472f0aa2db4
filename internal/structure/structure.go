// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package structure answers structural questions about a pipeline tree
// before any edit is accepted: may an element of a type sit under a given
// parent, and may an element be moved under another one.
//
// The predicates are total. They never fail and never perform I/O; an
// unknown id or type simply evaluates to false.
package structure

import (
	"github.com/specialistvlad/pipestack/internal/catalog"
	"github.com/specialistvlad/pipestack/internal/tree"
)

// Catalog is the part of the element type catalog the validator needs.
type Catalog interface {
	ElementType(name string) (*catalog.ElementType, bool)
}

// CanBeChildOf reports whether a new element of candidateType may be added
// directly under parentID.
func CanBeChildOf(candidateType, parentID string, g *tree.Graph, types Catalog) bool {
	parent, ok := g.Node(parentID)
	if !ok || types == nil {
		return false
	}
	return accepts(parent, candidateType, len(parent.Children), types)
}

// CanMove reports whether subjectID may be re-parented under
// destinationID. A move onto the element itself, into its own subtree, or
// onto its current parent is rejected.
func CanMove(subjectID, destinationID string, g *tree.Graph, types Catalog) bool {
	if subjectID == destinationID || types == nil {
		return false
	}
	subject, ok := g.Node(subjectID)
	if !ok {
		return false
	}
	destination, ok := g.Node(destinationID)
	if !ok {
		return false
	}
	if g.IsDescendant(subjectID, destinationID) {
		return false
	}
	if subject.Parent() == destination {
		return false
	}
	return accepts(destination, subject.Element.Type, len(destination.Children), types)
}

func accepts(parent *tree.Node, candidateType string, childCount int, types Catalog) bool {
	parentType, ok := types.ElementType(parent.Element.Type)
	if !ok {
		return false
	}
	childType, ok := types.ElementType(candidateType)
	if !ok {
		return false
	}
	if !parentType.AcceptsChild(childType.Category) {
		return false
	}
	return parentType.MaxChildren == 0 || childCount < parentType.MaxChildren
}
