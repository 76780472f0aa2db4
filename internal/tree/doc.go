// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package tree builds the parent/child tree of a merged pipeline.
//
// # Why a separate tree?
//
// The merged pipeline is flat: elements and links keyed by id. Rendering
// and structural validation both need to ask tree questions ("who is the
// parent of X", "is D below X") and answering them from the flat lists
// each time would be quadratic and error prone. Build does the work once.
//
// # Reported, not repaired
//
// A merged pipeline can be malformed while it is being edited or when an
// ancestor changed underneath it. Build reports every such condition as a
// typed pipeerr error and never guesses intent:
//
//   - DanglingLink: a link names an element that does not exist.
//   - MultipleParents: an element has more than one incoming link.
//   - NoRootFound: every element has an incoming link.
//   - MultipleRoots: more than one element lacks an incoming link.
//   - LinkCycle: a root exists but some elements cannot be reached from it.
//
// # Lifecycle
//
// A Graph is rebuilt from scratch after every change. Nodes carry no
// identity across rebuilds and must not be cached by callers.
package tree
