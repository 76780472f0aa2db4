// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package docstore

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/specialistvlad/pipestack/internal/ctxlog"
	"github.com/specialistvlad/pipestack/internal/model"
	"github.com/specialistvlad/pipestack/internal/pipeerr"
)

// Store keeps pipeline documents keyed by uuid. Documents are copied on the
// way in and on the way out, so callers never share state with the store.
type Store struct {
	mu    sync.RWMutex
	docs  map[string]*model.Document
	order []string
}

// New creates a new, empty document store.
func New() *Store {
	return &Store{docs: make(map[string]*model.Document)}
}

// Put adds or replaces a document.
func (s *Store) Put(ctx context.Context, doc *model.Document) error {
	if doc == nil || doc.UUID == "" {
		return fmt.Errorf("document must have a uuid")
	}
	if doc.ParentUUID() == doc.UUID {
		return pipeerr.New(pipeerr.KindCyclicInheritance, doc.UUID, "pipeline inherits from itself")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[doc.UUID]; !exists {
		s.order = append(s.order, doc.UUID)
	}
	s.docs[doc.UUID] = clone(doc)
	ctxlog.FromContext(ctx).Debug("Stored pipeline document.", "uuid", doc.UUID, "name", doc.Name)
	return nil
}

// Get returns a copy of the document with the given uuid.
func (s *Store) Get(ctx context.Context, id string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, pipeerr.New(pipeerr.KindNotFound, id, "no such pipeline document")
	}
	return clone(doc), nil
}

// List returns copies of all documents in the order they were first stored.
func (s *Store) List(ctx context.Context) []*model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Document, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.docs[id]))
	}
	return out
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Save replaces the local layer of a stored document. Precomputed stack and
// merged views are dropped because they no longer match.
func (s *Store) Save(ctx context.Context, id string, data model.PipelineData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return pipeerr.New(pipeerr.KindNotFound, id, "no such pipeline document")
	}
	doc.PipelineData = data.Clone()
	doc.ConfigStack = nil
	doc.Merged = nil
	ctxlog.FromContext(ctx).Debug("Saved pipeline layer.", "uuid", id)
	return nil
}

// NewChild creates and stores an empty pipeline that inherits from parentID.
func (s *Store) NewChild(ctx context.Context, parentID, name string) (*model.Document, error) {
	parent, err := s.Get(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("cannot create child pipeline: %w", err)
	}
	ref := parent.Ref()
	child := &model.Document{
		UUID:           uuid.NewString(),
		Name:           name,
		ParentPipeline: &ref,
	}
	if err := s.Put(ctx, child); err != nil {
		return nil, err
	}
	return clone(child), nil
}

func clone(doc *model.Document) *model.Document {
	out := *doc
	if doc.ParentPipeline != nil {
		ref := *doc.ParentPipeline
		out.ParentPipeline = &ref
	}
	out.PipelineData = doc.PipelineData.Clone()
	if doc.ConfigStack != nil {
		out.ConfigStack = slices.Clone(doc.ConfigStack)
		for i := range out.ConfigStack {
			out.ConfigStack[i].Data = out.ConfigStack[i].Data.Clone()
		}
	}
	if doc.Merged != nil {
		merged := doc.Merged.Clone()
		out.Merged = &merged
	}
	return &out
}
