// Package board defines the square letter grid searched by the solver,
// together with its coordinates and 8-directional adjacency.
package board

import (
	"fmt"
	"strings"
)

// DefaultSize is the reference grid dimension.
const DefaultSize = 4

// Coord addresses one cell. Both axes are 0-indexed.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid is a square array of single characters. It is never normalized:
// callers that want case-insensitive matching must fold it themselves.
type Grid [][]rune

// New converts text rows into a Grid, one cell per rune.
func New(rows []string) Grid {
	g := make(Grid, len(rows))
	for i, row := range rows {
		g[i] = []rune(row)
	}
	return g
}

// ShapeError reports a grid that is not Size×Size.
type ShapeError struct {
	Size int
	Rows int
	// Row is the first row with the wrong column count, or -1 when the row
	// count itself is wrong.
	Row  int
	Cols int
}

func (e *ShapeError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("grid must be %dx%d: got %d rows", e.Size, e.Size, e.Rows)
	}
	return fmt.Sprintf("grid must be %dx%d: row %d has %d columns", e.Size, e.Size, e.Row, e.Cols)
}

// Validate checks that the grid has exactly n rows of n cells.
func (g Grid) Validate(n int) error {
	if len(g) != n {
		return &ShapeError{Size: n, Rows: len(g), Row: -1}
	}
	for i, row := range g {
		if len(row) != n {
			return &ShapeError{Size: n, Rows: len(g), Row: i, Cols: len(row)}
		}
	}
	return nil
}

// Size returns the number of rows.
func (g Grid) Size() int {
	return len(g)
}

// At returns the letter at c.
func (g Grid) At(c Coord) rune {
	return g[c.Row][c.Col]
}

// Rows returns the grid as text rows.
func (g Grid) Rows() []string {
	rows := make([]string, len(g))
	for i, row := range g {
		rows[i] = string(row)
	}
	return rows
}

func (g Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

// Cells returns every coordinate of an n×n grid in row-major order.
func Cells(n int) []Coord {
	cells := make([]Coord, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cells = append(cells, Coord{Row: r, Col: c})
		}
	}
	return cells
}

// Neighbors returns the cells adjacent to c on an n×n grid, diagonals
// included. Edge and corner cells have fewer than eight neighbors.
func Neighbors(c Coord, n int) []Coord {
	out := make([]Coord, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, col := c.Row+dr, c.Col+dc
			if r < 0 || r >= n || col < 0 || col >= n {
				continue
			}
			out = append(out, Coord{Row: r, Col: col})
		}
	}
	return out
}

// Adjacent reports whether a and b are distinct 8-directional neighbors.
func Adjacent(a, b Coord) bool {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	if dr == 0 && dc == 0 {
		return false
	}
	return dr >= -1 && dr <= 1 && dc >= -1 && dc <= 1
}
