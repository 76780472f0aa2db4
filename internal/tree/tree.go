// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package tree

import (
	"strings"

	"github.com/specialistvlad/pipestack/internal/model"
	"github.com/specialistvlad/pipestack/internal/pipeerr"
)

// Node is one element of the tree together with its children.
type Node struct {
	Element  model.Element
	Children []*Node
	parent   *Node
}

// ID returns the element id of the node.
func (n *Node) ID() string {
	return n.Element.ID
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Graph is the tree view of a merged pipeline.
type Graph struct {
	root  *Node
	nodes map[string]*Node
}

// Build constructs the tree of a merged pipeline. An empty pipeline yields
// a graph without a root.
func Build(merged model.PipelineData) (*Graph, error) {
	g := &Graph{nodes: make(map[string]*Node, len(merged.Elements.Add))}

	// First pass: one node per element, in element order.
	order := make([]string, 0, len(merged.Elements.Add))
	for _, e := range merged.Elements.Add {
		if existing, ok := g.nodes[e.ID]; ok {
			existing.Element = e
			continue
		}
		g.nodes[e.ID] = &Node{Element: e}
		order = append(order, e.ID)
	}

	// Second pass: link children to parents.
	for _, l := range merged.Links.Add {
		from, fromOK := g.nodes[l.From]
		to, toOK := g.nodes[l.To]
		if !fromOK || !toOK {
			return nil, pipeerr.DanglingLink(l.From, l.To)
		}
		if to.parent != nil {
			return nil, pipeerr.New(pipeerr.KindMultipleParents, l.To, "linked from both '%s' and '%s'", to.parent.ID(), l.From)
		}
		to.parent = from
		from.Children = append(from.Children, to)
	}

	// Third pass: find the single root.
	var roots []string
	for _, id := range order {
		if g.nodes[id].parent == nil {
			roots = append(roots, id)
		}
	}
	switch {
	case len(order) == 0:
		return g, nil
	case len(roots) == 0:
		return nil, pipeerr.New(pipeerr.KindNoRootFound, "", "every element has an incoming link")
	case len(roots) > 1:
		return nil, pipeerr.New(pipeerr.KindMultipleRoots, roots[0], "elements without a parent: %s", strings.Join(roots, ", "))
	}
	g.root = g.nodes[roots[0]]

	// Every element must hang off the root; the rest can only be cycles.
	reached := 0
	g.Walk(func(_ []*Node, _ *Node) bool {
		reached++
		return true
	})
	if reached < len(order) {
		var unreachable []string
		for _, id := range order {
			if !g.IsDescendant(g.root.ID(), id) && id != g.root.ID() {
				unreachable = append(unreachable, id)
			}
		}
		return nil, pipeerr.New(pipeerr.KindLinkCycle, unreachable[0], "elements unreachable from root '%s': %s", g.root.ID(), strings.Join(unreachable, ", "))
	}

	return g, nil
}

// Root returns the root node, or nil for an empty pipeline.
func (g *Graph) Root() *Node {
	if g == nil {
		return nil
	}
	return g.root
}

// Node looks up a node by element id.
func (g *Graph) Node(id string) (*Node, bool) {
	if g == nil {
		return nil, false
	}
	n, ok := g.nodes[id]
	return n, ok
}

// Len returns the number of elements in the tree.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

// ParentID returns the id of the element's parent.
func (g *Graph) ParentID(id string) (string, bool) {
	n, ok := g.Node(id)
	if !ok || n.parent == nil {
		return "", false
	}
	return n.parent.ID(), true
}

// IsDescendant reports whether id lies strictly below ancestor. It walks
// from id toward the root.
func (g *Graph) IsDescendant(ancestor, id string) bool {
	n, ok := g.Node(id)
	if !ok {
		return false
	}
	// The walk is bounded by the node count in case the parent chain loops.
	for p, steps := n.parent, 0; p != nil && steps <= len(g.nodes); p, steps = p.parent, steps+1 {
		if p.ID() == ancestor {
			return true
		}
	}
	return false
}

// Descendants returns the ids of every element below id, in pre-order.
func (g *Graph) Descendants(id string) []string {
	n, ok := g.Node(id)
	if !ok {
		return nil
	}
	var out []string
	var visit func(*Node)
	visit = func(node *Node) {
		for _, c := range node.Children {
			out = append(out, c.ID())
			visit(c)
		}
	}
	visit(n)
	return out
}

// Walk visits the tree in pre-order. The lineage holds the ancestors of
// the visited node, root first. Returning false skips the node's children.
func (g *Graph) Walk(fn func(lineage []*Node, n *Node) bool) {
	if g.Root() == nil {
		return
	}
	var visit func(lineage []*Node, n *Node)
	visit = func(lineage []*Node, n *Node) {
		if !fn(lineage, n) {
			return
		}
		next := append(lineage[:len(lineage):len(lineage)], n)
		for _, c := range n.Children {
			visit(next, c)
		}
	}
	visit(nil, g.root)
}
