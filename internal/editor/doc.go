// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package editor is the edit API of a pipeline: a Session holds the working
// copy of one pipeline's local layer together with the merged view and the
// tree derived from it.
//
// Every mutation builds a candidate local layer, re-merges the stack and
// rebuilds the tree before anything is committed. If any step fails the
// session is left exactly as it was, so callers never observe a partially
// applied edit.
//
// A Session is not safe for concurrent use.
package editor
