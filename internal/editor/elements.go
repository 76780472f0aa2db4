// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package editor

import (
	"maps"
	"slices"
	"strings"

	"github.com/specialistvlad/pipestack/internal/model"
	"github.com/specialistvlad/pipestack/internal/pipeerr"
	"github.com/specialistvlad/pipestack/internal/structure"
)

// AddElement creates a new element of elementType named name under
// parentID. The name becomes the element id and must not collide, ignoring
// case, with any element known to the pipeline or its ancestors.
//
// An empty parentID is only accepted while the pipeline has no elements;
// the new element then becomes the root.
func (s *Session) AddElement(parentID, elementType, name string) (*Snapshot, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pipeerr.New(pipeerr.KindInvalidName, name, "element name must not be empty")
	}
	if slices.Contains(s.ElementNames(), strings.ToLower(name)) {
		return nil, pipeerr.New(pipeerr.KindDuplicateName, name, "an element with this name already exists")
	}
	if !s.acceptsChild(parentID, elementType) {
		return nil, pipeerr.New(pipeerr.KindInvalidParent, name, "'%s' cannot hold an element of type '%s'", parentID, elementType)
	}

	local := s.local()
	local.Elements.Add = append(local.Elements.Add, model.Element{ID: name, Type: elementType})
	if parentID != "" {
		local.Links.Add = append(local.Links.Add, model.Link{From: parentID, To: name})
	}
	return s.commit("add element", local)
}

// DeleteElement removes an element and its whole subtree. Elements, links,
// properties and references that were added locally are dropped; those
// inherited from an ancestor are masked with a local remove so that they
// show up in the recycle bin and can be reinstated.
func (s *Session) DeleteElement(id string) (*Snapshot, error) {
	if _, ok := s.graph.Node(id); !ok {
		return nil, pipeerr.New(pipeerr.KindNotFound, id, "element is not part of the pipeline")
	}

	inherited := s.inherited()
	local := s.local()
	subtree := append([]string{id}, s.graph.Descendants(id)...)
	masked := make(map[string]maskedKeys, len(subtree))
	for _, eid := range subtree {
		n, _ := s.graph.Node(eid)
		retract(&local.Elements, elementIs(eid), inherited.Elements.Add, model.Element{ID: eid, Type: n.Element.Type})

		if parent := n.Parent(); parent != nil {
			key := model.LinkKey{From: parent.ID(), To: eid}
			retract(&local.Links, linkIs(key), inherited.Links.Add, model.Link{From: key.From, To: key.To})
		}

		var keys maskedKeys
		local.Properties.Add = without(local.Properties.Add, propertyOf(eid))
		for _, p := range inherited.Properties.Add {
			if p.Element == eid && !slices.ContainsFunc(local.Properties.Remove, propertyIs(p.Key())) {
				local.Properties.Remove = append(local.Properties.Remove, model.Property{Element: eid, Name: p.Name})
				keys.properties = append(keys.properties, p.Key())
			}
		}
		local.PipelineReferences.Add = without(local.PipelineReferences.Add, referenceOf(eid))
		for _, r := range inherited.PipelineReferences.Add {
			if r.Element == eid && !slices.ContainsFunc(local.PipelineReferences.Remove, referenceIs(r.Key())) {
				local.PipelineReferences.Remove = append(local.PipelineReferences.Remove, model.Reference{Element: eid, Name: r.Name})
				keys.references = append(keys.references, r.Key())
			}
		}
		masked[eid] = keys
	}

	snap, err := s.commit("delete element", local)
	if err != nil {
		return nil, err
	}
	maps.Copy(s.masked, masked)
	return snap, nil
}

// ReinstateElement brings a recycled element back under parentID. The
// local remove that masked it is cleared and the element is linked to
// parentID. An inherited element keeps its inherited type.
//
// The property and reference removes that the delete added are cleared as
// well. When the delete happened in an earlier session they cannot be told
// apart from other removes, and every remove keyed to the element is
// cleared.
func (s *Session) ReinstateElement(parentID string, recycled model.Element) (*Snapshot, error) {
	id := recycled.ID
	if _, ok := s.merged.Element(id); ok {
		return nil, pipeerr.New(pipeerr.KindDuplicateName, id, "element is already part of the pipeline")
	}

	inherited := s.inherited()
	if prior, ok := inherited.Element(id); ok {
		if recycled.Type != "" && recycled.Type != prior.Type {
			return nil, pipeerr.New(pipeerr.KindInvalidParent, id, "element is inherited as type '%s', not '%s'", prior.Type, recycled.Type)
		}
		recycled.Type = prior.Type
	}
	if !s.acceptsChild(parentID, recycled.Type) {
		return nil, pipeerr.New(pipeerr.KindInvalidParent, id, "'%s' cannot hold an element of type '%s'", parentID, recycled.Type)
	}

	local := s.local()
	restore(&local.Elements, elementIs(id), inherited.Elements.Add, model.Element{ID: id, Type: recycled.Type})
	if parentID != "" {
		key := model.LinkKey{From: parentID, To: id}
		restore(&local.Links, linkIs(key), inherited.Links.Add, model.Link{From: parentID, To: id})
	}
	if keys, ok := s.masked[id]; ok {
		for _, k := range keys.properties {
			local.Properties.Remove = without(local.Properties.Remove, propertyIs(k))
		}
		for _, k := range keys.references {
			local.PipelineReferences.Remove = without(local.PipelineReferences.Remove, referenceIs(k))
		}
	} else {
		local.Properties.Remove = without(local.Properties.Remove, propertyOf(id))
		local.PipelineReferences.Remove = without(local.PipelineReferences.Remove, referenceOf(id))
	}

	snap, err := s.commit("reinstate element", local)
	if err != nil {
		return nil, err
	}
	delete(s.masked, id)
	return snap, nil
}

// MoveElement re-parents subjectID under destinationID. Only the subject's
// incoming link changes; its children follow it.
func (s *Session) MoveElement(subjectID, destinationID string) (*Snapshot, error) {
	if !structure.CanMove(subjectID, destinationID, s.graph, s.types) {
		return nil, pipeerr.New(pipeerr.KindInvalidMove, subjectID, "cannot move under '%s'", destinationID)
	}

	inherited := s.inherited()
	local := s.local()
	if parentID, ok := s.graph.ParentID(subjectID); ok {
		old := model.LinkKey{From: parentID, To: subjectID}
		retract(&local.Links, linkIs(old), inherited.Links.Add, model.Link{From: old.From, To: old.To})
	}
	next := model.LinkKey{From: destinationID, To: subjectID}
	restore(&local.Links, linkIs(next), inherited.Links.Add, model.Link{From: next.From, To: next.To})
	return s.commit("move element", local)
}

// RecycleItem is an inherited element masked by the local layer.
type RecycleItem struct {
	Element model.Element
	// Known reports whether the element type is in the catalog.
	Known bool
}

// RecycleBin lists the elements removed by the local layer, in the order
// they were removed.
func (s *Session) RecycleBin() []RecycleItem {
	local, _ := s.stack.Local()
	if len(local.Data.Elements.Remove) == 0 {
		return nil
	}
	inherited := s.inherited()
	items := make([]RecycleItem, 0, len(local.Data.Elements.Remove))
	for _, e := range local.Data.Elements.Remove {
		if e.Type == "" {
			if prior, ok := inherited.Element(e.ID); ok {
				e.Type = prior.Type
			}
		}
		known := false
		if s.types != nil {
			_, known = s.types.ElementType(e.Type)
		}
		items = append(items, RecycleItem{Element: e, Known: known})
	}
	return items
}

// ElementNames returns every element id used by the merged pipeline or
// added by any layer of the stack, lower-cased and without duplicates.
// New element names are checked against this list.
func (s *Session) ElementNames() []string {
	seen := make(map[string]bool)
	var names []string
	collect := func(elements []model.Element) {
		for _, e := range elements {
			name := strings.ToLower(e.ID)
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	collect(s.merged.Elements.Add)
	for _, layer := range s.stack {
		collect(layer.Data.Elements.Add)
	}
	return names
}

// acceptsChild reports whether an element of elementType may be placed
// under parentID. An empty parentID stands for the root of an empty
// pipeline.
func (s *Session) acceptsChild(parentID, elementType string) bool {
	if parentID == "" {
		if s.graph.Root() != nil || s.types == nil {
			return false
		}
		_, ok := s.types.ElementType(elementType)
		return ok
	}
	return structure.CanBeChildOf(elementType, parentID, s.graph, s.types)
}
