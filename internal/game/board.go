package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Board is a fixed-size minefield. Geometry never changes after creation;
// mines appear only once PlaceMines has run.
type Board struct {
	Rows, Cols int
	Cells      [][]Cell
}

// NewBoard returns an all-hidden, mine-less grid.
func NewBoard(rows, cols int) *Board {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return &Board{Rows: rows, Cols: cols, Cells: cells}
}

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.Rows && 0 <= col && col < b.Cols
}

// PlaceMines scatters exactly mines mines uniformly over the board by
// rejection sampling, never hitting (excludeRow, excludeCol), then computes
// every neighbor count. The sampling loop only terminates when there are
// spare cells, so mines >= rows*cols panics instead of spinning forever.
func (b *Board) PlaceMines(r *rand.Rand, mines, excludeRow, excludeCol int) {
	if mines >= b.Rows*b.Cols {
		panic(AssertionError{"mine count must be less than cell count"})
	}
	placed := 0
	for placed < mines {
		row, col := r.IntN(b.Rows), r.IntN(b.Cols)
		if row == excludeRow && col == excludeCol {
			continue
		}
		if b.Cells[row][col].Mine {
			continue
		}
		b.Cells[row][col].Mine = true
		placed++
	}
	b.countNeighbors()
}

func (b *Board) countNeighbors() {
	for row := range b.Rows {
		for col := range b.Cols {
			if b.Cells[row][col].Mine {
				continue
			}
			v := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					nr, nc := row+dr, col+dc
					if b.InBounds(nr, nc) && b.Cells[nr][nc].Mine {
						v++
					}
				}
			}
			b.Cells[row][col].Neighbors = v
		}
	}
}

// Reveal opens (row, col). Opening a zero-neighbor cell floods outward
// through the connected zero region and its numbered border, using an
// explicit queue rather than recursion (an expert board is 16x30; deep
// recursion is avoidable here). Flagged cells are never opened by the
// flood, already-revealed cells stop it, and a mine is only ever opened
// by a direct hit on it.
func (b *Board) Reveal(row, col int) {
	cell := &b.Cells[row][col]
	if cell.Revealed || cell.Flagged {
		return
	}
	cell.Revealed = true
	if cell.Mine || cell.Neighbors > 0 {
		return
	}

	queue := [][2]int{{row, col}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				nr, nc := cur[0]+dr, cur[1]+dc
				if !b.InBounds(nr, nc) {
					continue
				}
				next := &b.Cells[nr][nc]
				if next.Revealed || next.Flagged {
					continue
				}
				next.Revealed = true
				// a mine never borders a zero cell, so the flood
				// cannot walk into one
				if next.Neighbors == 0 {
					queue = append(queue, [2]int{nr, nc})
				}
			}
		}
	}
}

// ToggleFlag flips the flag on a hidden cell. Revealed cells cannot be
// flagged.
func (b *Board) ToggleFlag(row, col int) {
	cell := &b.Cells[row][col]
	if cell.Revealed {
		return
	}
	cell.Flagged = !cell.Flagged
}

// UnrevealedSafeCells counts cells that are neither mines nor revealed;
// the game is won when this reaches zero.
func (b *Board) UnrevealedSafeCells() int {
	n := 0
	for row := range b.Rows {
		for col := range b.Cols {
			if !b.Cells[row][col].Mine && !b.Cells[row][col].Revealed {
				n++
			}
		}
	}
	return n
}

// FlaggedCells recounts flags from scratch every call; there is no
// incremental counter to drift.
func (b *Board) FlaggedCells() int {
	n := 0
	for row := range b.Rows {
		for col := range b.Cols {
			if b.Cells[row][col].Flagged {
				n++
			}
		}
	}
	return n
}

// RevealMines exposes every mine, leaving all other cells untouched. Used
// once, on loss.
func (b *Board) RevealMines() {
	for row := range b.Rows {
		for col := range b.Cols {
			if b.Cells[row][col].Mine {
				b.Cells[row][col].Revealed = true
			}
		}
	}
}

// Views flattens the board into row-major per-cell display states.
func (b *Board) Views() []CellView {
	views := make([]CellView, 0, b.Rows*b.Cols)
	for row := range b.Rows {
		for col := range b.Cols {
			views = append(views, b.Cells[row][col].View())
		}
	}
	return views
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.Rows {
		for col := range b.Cols {
			fmt.Fprint(&sb, b.Cells[row][col].View().String()+" ")
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
