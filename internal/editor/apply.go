// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package editor

import (
	"fmt"

	"github.com/specialistvlad/pipestack/internal/model"
)

// Op names an edit operation.
type Op string

const (
	OpAddElement       Op = "add_element"
	OpDeleteElement    Op = "delete_element"
	OpReinstateElement Op = "reinstate_element"
	OpMoveElement      Op = "move_element"
	OpSetProperty      Op = "set_property"
	OpRevertToParent   Op = "revert_to_parent"
	OpRevertToDefault  Op = "revert_to_default"
)

// Edit is a declarative edit, as read from an edit script.
type Edit struct {
	Op Op
	// Element is the element the edit is about. For OpAddElement it is the
	// name of the new element.
	Element string
	// Type is the element type for OpAddElement and OpReinstateElement.
	Type string
	// Parent is the new parent for OpAddElement and OpReinstateElement and
	// the destination for OpMoveElement.
	Parent   string
	Property string
	Value    model.PropertyValue
	// Source locates the edit in its script, for error messages.
	Source string
}

// Apply performs a single edit.
func (s *Session) Apply(e Edit) (*Snapshot, error) {
	switch e.Op {
	case OpAddElement:
		return s.AddElement(e.Parent, e.Type, e.Element)
	case OpDeleteElement:
		return s.DeleteElement(e.Element)
	case OpReinstateElement:
		return s.ReinstateElement(e.Parent, model.Element{ID: e.Element, Type: e.Type})
	case OpMoveElement:
		return s.MoveElement(e.Element, e.Parent)
	case OpSetProperty:
		return s.SetPropertyValue(e.Element, e.Property, e.Value)
	case OpRevertToParent:
		return s.RevertPropertyToParent(e.Element, e.Property)
	case OpRevertToDefault:
		return s.RevertPropertyToDefault(e.Element, e.Property)
	}
	return nil, fmt.Errorf("unknown edit operation '%s'", e.Op)
}

// ApplyAll performs the edits in order and stops at the first failure. The
// edits applied before the failure stay applied.
func (s *Session) ApplyAll(edits []Edit) (*Snapshot, error) {
	snap := s.Snapshot()
	for i, e := range edits {
		var err error
		if snap, err = s.Apply(e); err != nil {
			where := e.Source
			if where == "" {
				where = fmt.Sprintf("edit #%d", i+1)
			}
			return nil, fmt.Errorf("%s (%s): %w", where, e.Op, err)
		}
	}
	return snap, nil
}
