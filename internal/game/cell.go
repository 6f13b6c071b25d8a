package game

import "strconv"

// Cell is a single square of the minefield.
type Cell struct {
	Mine      bool
	Revealed  bool
	Flagged   bool
	Neighbors int // count of mined neighbors, meaningful only when !Mine
}

// CellView is what a renderer is allowed to know about a cell. Values 0-8
// are revealed safe cells with the given number of mined neighbors.
type CellView int8

const (
	Hidden CellView = -2
	Flag   CellView = -1
	Mine   CellView = 9
)

// View derives the visible state of a cell. Nothing about an unrevealed,
// unflagged cell leaks through here.
func (c Cell) View() CellView {
	switch {
	case c.Flagged:
		return Flag
	case !c.Revealed:
		return Hidden
	case c.Mine:
		return Mine
	default:
		return CellView(c.Neighbors)
	}
}

func (v CellView) String() string {
	switch {
	case v == Flag:
		return "*"
	case v == Hidden:
		return " "
	case v == Mine:
		return "!"
	case 1 <= v && v <= 8:
		return strconv.Itoa(int(v))
	default:
		return " " // revealed zero renders blank
	}
}
