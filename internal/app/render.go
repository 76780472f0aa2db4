package app

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/specialistvlad/pipestack/internal/docstore"
	"github.com/specialistvlad/pipestack/internal/editor"
	"github.com/specialistvlad/pipestack/internal/tree"
)

func (a *App) render(ctx context.Context, id string, s *editor.Session) error {
	switch a.config.Output {
	case OutputJSON:
		doc, err := a.store.Get(ctx, id)
		if err != nil {
			return err
		}
		snap := s.Snapshot()
		doc.ConfigStack = s.Stack()
		doc.Merged = &snap.Merged
		return docstore.WriteJSON(a.outW, doc)
	case OutputGrid:
		return writeGrid(a.outW, tree.Layout(s.Snapshot().Graph))
	default:
		return a.writeTree(a.outW, s)
	}
}

// writeTree prints the pipeline as an indented tree. Every element is
// followed by its effective property values.
func (a *App) writeTree(w io.Writer, s *editor.Session) error {
	snap := s.Snapshot()
	if snap.Graph.Root() == nil {
		_, err := fmt.Fprintln(w, "(empty pipeline)")
		return err
	}

	var werr error
	printf := func(format string, args ...any) {
		if werr == nil {
			_, werr = fmt.Fprintf(w, format, args...)
		}
	}

	snap.Graph.Walk(func(lineage []*tree.Node, n *tree.Node) bool {
		var indent strings.Builder
		for i, anc := range lineage {
			if i == 0 {
				continue
			}
			if isLast(anc) {
				indent.WriteString("   ")
			} else {
				indent.WriteString("│  ")
			}
		}
		branch, below := "", ""
		if len(lineage) > 0 {
			if isLast(n) {
				branch, below = "└─ ", "   "
			} else {
				branch, below = "├─ ", "│  "
			}
		}
		printf("%s%s%s [%s]\n", indent.String(), branch, n.ID(), n.Element.Type)

		for _, name := range a.propertyNames(snap, n) {
			v, err := s.PropertyValue(n.ID(), name)
			if err != nil || v.Value == nil {
				continue
			}
			origin := v.Origin.String()
			if v.Origin == editor.OriginInherited && v.Source != nil {
				origin += " from " + v.Source.String()
			}
			printf("%s%s  %s = %s (%s)\n", indent.String(), below, name, v.Value.Format(), origin)
		}
		return true
	})

	if bin := s.RecycleBin(); len(bin) > 0 {
		ids := make([]string, len(bin))
		for i, item := range bin {
			ids[i] = item.Element.ID
		}
		printf("recycle bin: %s\n", strings.Join(ids, ", "))
	}
	return werr
}

// propertyNames lists the declared and the explicitly set properties of
// an element, sorted by name.
func (a *App) propertyNames(snap *editor.Snapshot, n *tree.Node) []string {
	names := make(map[string]struct{})
	if et, ok := a.model.Catalog.ElementType(n.Element.Type); ok {
		for name := range et.Properties {
			names[name] = struct{}{}
		}
	}
	for _, p := range snap.Merged.Properties.Add {
		if p.Element == n.ID() {
			names[p.Name] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(names))
}

func isLast(n *tree.Node) bool {
	p := n.Parent()
	return p == nil || p.Children[len(p.Children)-1] == n
}

// writeGrid prints the layout grid with one fixed-width column per depth.
func writeGrid(w io.Writer, g tree.Grid) error {
	width := 0
	for _, row := range g.Rows {
		for _, c := range row {
			width = max(width, len(c.ElementID))
		}
	}
	width += 3

	for _, row := range g.Rows {
		var line strings.Builder
		for _, c := range row {
			switch c.Type {
			case tree.CellElement:
				line.WriteString(c.ElementID + strings.Repeat(" ", width-len(c.ElementID)))
			case tree.CellElbow:
				line.WriteString("└" + strings.Repeat("─", width-2) + " ")
			default:
				line.WriteString(strings.Repeat(" ", width))
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
