// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the data contracts of the pipeline configuration
// model. It has no behaviour beyond small helpers on the values themselves.
//
// # Core Concepts
//
// A pipeline is not a flat document. It is a chain of inheritance layers: a
// pipeline may extend a parent pipeline, which may extend its own parent,
// and so on. Each layer contributes add and remove operations over four
// collections:
//
//   - Elements: named processing nodes (`Element`).
//   - Links: parent -> child edges between element ids (`Link`).
//   - Properties: configuration values keyed by element and name (`Property`).
//   - Pipeline references: typed lookups to external documents (`Reference`).
//
// One layer's deltas are a `PipelineData`. A `Layer` tags that data with the
// pipeline that owns it, and a `ConfigStack` is the root-first sequence of
// layers ending with the pipeline being edited.
//
// Why ids instead of pointers?
//
// Elements, links and properties refer to each other only through string
// ids. Removing or overriding an inherited value is then a matter of
// deleting or replacing a key, and the model never has to untangle shared
// or cyclic object graphs.
//
// Values of this package are treated as immutable once they are placed in a
// layer. Helpers that produce modified data always copy the slices they
// change.
package model
