// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package stack resolves the inheritance chain of a pipeline into its
// config stack: the root-first list of layers ending with the pipeline's
// own layer.
package stack

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/pipestack/internal/ctxlog"
	"github.com/specialistvlad/pipestack/internal/model"
	"github.com/specialistvlad/pipestack/internal/pipeerr"
)

// Fetcher looks up pipeline documents by uuid. It is usually backed by the
// document store and may perform I/O.
type Fetcher interface {
	Get(ctx context.Context, uuid string) (*model.Document, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, uuid string) (*model.Document, error)

// Get implements Fetcher.
func (f FetcherFunc) Get(ctx context.Context, uuid string) (*model.Document, error) {
	return f(ctx, uuid)
}

// Resolve follows the parent references of doc upwards and returns the
// layers root-first. Ancestors are fetched one at a time, parent before
// grandparent, so the result is deterministic.
func Resolve(ctx context.Context, doc *model.Document, fetcher Fetcher) (model.ConfigStack, error) {
	logger := ctxlog.FromContext(ctx)
	if doc == nil {
		return nil, fmt.Errorf("cannot resolve the config stack of a nil document")
	}

	visited := map[string]bool{doc.UUID: true}
	layers := model.ConfigStack{doc.Layer()}

	for parent := doc.ParentUUID(); parent != ""; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if visited[parent] {
			return nil, pipeerr.New(pipeerr.KindCyclicInheritance, parent, "pipeline '%s' appears twice in its own inheritance chain", parent)
		}
		visited[parent] = true

		logger.Debug("Fetching ancestor pipeline.", "pipeline", doc.UUID, "ancestor", parent)
		ancestor, err := fetcher.Get(ctx, parent)
		if err != nil {
			return nil, pipeerr.Wrap(pipeerr.KindMissingAncestor, parent, err)
		}
		if ancestor == nil {
			return nil, pipeerr.New(pipeerr.KindMissingAncestor, parent, "document store returned no document")
		}

		layers = append(layers, ancestor.Layer())
		parent = ancestor.ParentUUID()
	}

	slices.Reverse(layers)
	logger.Debug("Config stack resolved.", "pipeline", doc.UUID, "depth", len(layers))
	return layers, nil
}

// FromDocument returns the precomputed config stack carried by doc when it
// is usable, and resolves it otherwise. The document's current data always
// replaces the local layer.
func FromDocument(ctx context.Context, doc *model.Document, fetcher Fetcher) (model.ConfigStack, error) {
	if doc != nil && precomputedUsable(doc) {
		ctxlog.FromContext(ctx).Debug("Using precomputed config stack.", "pipeline", doc.UUID, "depth", len(doc.ConfigStack))
		out := doc.ConfigStack.WithLocal(doc.PipelineData)
		out[len(out)-1].Pipeline = doc.Ref()
		return out, nil
	}
	return Resolve(ctx, doc, fetcher)
}

// precomputedUsable reports whether the carried stack agrees with the
// document's inheritance: it ends with the document's own layer, every
// ancestor layer names its pipeline, the layer before the local one is the
// parent pipeline, and no pipeline appears twice. A document without a
// parent must carry exactly its own layer.
func precomputedUsable(doc *model.Document) bool {
	local, ok := doc.ConfigStack.Local()
	if !ok || (local.Pipeline.UUID != "" && local.Pipeline.UUID != doc.UUID) {
		return false
	}
	ancestors := doc.ConfigStack.Ancestors()
	parent := doc.ParentUUID()
	if parent == "" {
		return len(ancestors) == 0
	}
	if len(ancestors) == 0 || ancestors[len(ancestors)-1].Pipeline.UUID != parent {
		return false
	}

	seen := map[string]bool{doc.UUID: true}
	for _, layer := range ancestors {
		id := layer.Pipeline.UUID
		if id == "" || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}
