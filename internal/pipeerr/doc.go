// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package pipeerr defines the typed errors reported by the pipeline
// configuration core.
//
// Every failure the core can report is a *Error carrying a Kind. Callers
// branch on the kind, never on the message:
//
//	if errors.Is(err, pipeerr.KindInvalidMove) {
//	    // reject the drop
//	}
//
// There are two families of kinds:
//
//   - Structural kinds (CyclicInheritance, MissingAncestor, NoRootFound,
//     MultipleRoots, MultipleParents, DanglingLink, LinkCycle) describe a
//     corrupt or partially edited document. They are surfaced to the user
//     and never repaired automatically.
//
//   - Edit kinds (DuplicateName, InvalidName, InvalidParent, InvalidMove,
//     NotFound, UnknownElement, InvalidValue, InvalidProperty) reject a
//     single edit. The working copy is left exactly as it was.
package pipeerr
