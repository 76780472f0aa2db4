// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package tree

// CellType says what occupies one cell of a layout grid.
type CellType int

const (
	CellEmpty CellType = iota
	// CellElbow is the connector drawn to the left of a non-first child.
	CellElbow
	CellElement
)

// Cell is one position of the layout grid.
type Cell struct {
	Type      CellType
	ElementID string
}

// Grid lays a tree out in rows and columns. The column of an element is
// its depth; every sideways step to a sibling (at any level) starts a new row.
type Grid struct {
	Rows [][]Cell
}

// Position returns the row and column of an element.
func (g Grid) Position(id string) (row, column int, ok bool) {
	for r, cells := range g.Rows {
		for c, cell := range cells {
			if cell.Type == CellElement && cell.ElementID == id {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Layout computes the layout grid of a graph. An empty graph has no rows.
func Layout(g *Graph) Grid {
	type position struct {
		id          string
		row, column int
	}

	var positions []position
	row, highestColumn, lastColumn := 0, 0, -1
	g.Walk(func(lineage []*Node, n *Node) bool {
		column := len(lineage)
		if column <= lastColumn {
			row++
		}
		highestColumn = max(highestColumn, column)
		lastColumn = column
		positions = append(positions, position{id: n.ID(), row: row, column: column})
		return true
	})
	if len(positions) == 0 {
		return Grid{}
	}

	grid := Grid{Rows: make([][]Cell, row+1)}
	for r := range grid.Rows {
		grid.Rows[r] = make([]Cell, highestColumn+1)
	}
	for _, p := range positions {
		if p.column > 0 && grid.Rows[p.row][p.column-1].Type == CellEmpty {
			grid.Rows[p.row][p.column-1].Type = CellElbow
		}
		grid.Rows[p.row][p.column] = Cell{Type: CellElement, ElementID: p.id}
	}
	return grid
}
