// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package catalog holds the element type catalog: the metadata describing
// every kind of element a pipeline can contain.
//
// The catalog is the single authority on structure. It answers three
// questions for the rest of the core:
//
//  1. Which category does an element type belong to (reader, parser,
//     filter, writer, ...)?
//  2. Which categories may sit directly underneath an element of a type,
//     and how many children may it have?
//  3. Which properties does a type declare, and what are their defaults?
//
// Category compatibility is data, not code: a "Writer" cannot sit under a
// "Reader"-only parent only because the reader's type says so. The
// catalog is usually populated from HCL manifests (see internal/hcl) and
// then validated once with Validate.
package catalog
