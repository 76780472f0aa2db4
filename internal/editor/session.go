// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package editor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/pipestack/internal/ctxlog"
	"github.com/specialistvlad/pipestack/internal/merge"
	"github.com/specialistvlad/pipestack/internal/model"
	"github.com/specialistvlad/pipestack/internal/stack"
	"github.com/specialistvlad/pipestack/internal/structure"
	"github.com/specialistvlad/pipestack/internal/tree"
)

// State tells whether the local layer has edits that were not saved yet.
type State int

const (
	Clean State = iota
	Dirty
)

func (s State) String() string {
	if s == Dirty {
		return "dirty"
	}
	return "clean"
}

// Snapshot is the result of an edit: the local layer to persist, the merged
// pipeline and the tree to render. Node identity is not stable between
// snapshots.
type Snapshot struct {
	Local  model.PipelineData
	Merged model.PipelineData
	Graph  *tree.Graph
	Dirty  bool
}

// Session is the working copy of one open pipeline.
type Session struct {
	stack  model.ConfigStack
	merged model.PipelineData
	graph  *tree.Graph
	types  structure.Catalog
	state  State
	logger *slog.Logger
	// masked holds, per element deleted in this session, the property and
	// reference removes the delete added.
	masked map[string]maskedKeys
}

type maskedKeys struct {
	properties []model.PropertyKey
	references []model.PropertyKey
}

// Open resolves the config stack of doc and starts a session on it.
func Open(ctx context.Context, doc *model.Document, fetcher stack.Fetcher, types structure.Catalog) (*Session, error) {
	if doc == nil {
		return nil, fmt.Errorf("cannot open a nil document")
	}
	cs, err := stack.FromDocument(ctx, doc, fetcher)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config stack of pipeline '%s': %w", doc.UUID, err)
	}
	return New(ctx, cs, types)
}

// New starts a session on an already resolved config stack. The last layer
// of the stack is the one being edited. A stack whose merged view is not a
// valid tree is rejected with the structural error.
func New(ctx context.Context, cs model.ConfigStack, types structure.Catalog) (*Session, error) {
	if len(cs) == 0 {
		return nil, fmt.Errorf("config stack has no layers")
	}
	cs = cs.WithLocal(cs[len(cs)-1].Data.Clone())
	merged := merge.Merge(cs)
	g, err := tree.Build(merged)
	if err != nil {
		return nil, err
	}

	local, _ := cs.Local()
	logger := ctxlog.FromContext(ctx).With("pipeline", local.Pipeline.UUID)
	logger.Debug("Editing session opened.", "layers", len(cs), "elements", g.Len())

	return &Session{
		stack:  cs,
		merged: merged,
		graph:  g,
		types:  types,
		state:  Clean,
		logger: logger,
		masked: make(map[string]maskedKeys),
	}, nil
}

// Snapshot returns the current working copy.
func (s *Session) Snapshot() *Snapshot {
	return &Snapshot{
		Local:  s.local(),
		Merged: s.merged.Clone(),
		Graph:  s.graph,
		Dirty:  s.state == Dirty,
	}
}

// State returns whether the session has unsaved edits.
func (s *Session) State() State {
	return s.state
}

// MarkSaved records that the current local layer has been persisted.
func (s *Session) MarkSaved() {
	s.state = Clean
}

// Stack returns a copy of the config stack including the edited local layer.
func (s *Session) Stack() model.ConfigStack {
	return s.stack.WithLocal(s.local())
}

// local returns a copy of the local layer data that can be modified freely.
func (s *Session) local() model.PipelineData {
	l, _ := s.stack.Local()
	return l.Data.Clone()
}

func (s *Session) inherited() model.PipelineData {
	return merge.Inherited(s.stack)
}

// commit replaces the local layer with candidate if the resulting pipeline
// is still a valid tree.
func (s *Session) commit(op string, candidate model.PipelineData) (*Snapshot, error) {
	cs := s.stack.WithLocal(candidate)
	merged := merge.Merge(cs)
	g, err := tree.Build(merged)
	if err != nil {
		s.logger.Debug("Edit rejected by tree rebuild.", "op", op, "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.stack = cs
	s.merged = merged
	s.graph = g
	s.state = Dirty
	s.logger.Debug("Edit applied.", "op", op, "elements", g.Len())
	return s.Snapshot(), nil
}
