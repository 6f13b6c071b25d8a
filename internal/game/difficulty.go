package game

import (
	"errors"
	"fmt"
)

var (
	ErrTooManyMines = errors.New("mine count must be less than cell count")
	ErrBadGeometry  = errors.New("rows, cols and mines must be positive")
)

// Difficulty fully determines board geometry and mine count for a session.
type Difficulty struct {
	Label string
	Rows  int
	Cols  int
	Mines int
}

var (
	Beginner     = Difficulty{Label: "beginner", Rows: 9, Cols: 9, Mines: 10}
	Intermediate = Difficulty{Label: "intermediate", Rows: 16, Cols: 16, Mines: 40}
	Expert       = Difficulty{Label: "expert", Rows: 16, Cols: 30, Mines: 99}
)

var Difficulties = []Difficulty{Beginner, Intermediate, Expert}

// ParseDifficulty resolves a preset by label.
func ParseDifficulty(label string) (Difficulty, error) {
	for _, d := range Difficulties {
		if d.Label == label {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("unknown difficulty %q", label)
}

// NewCustomDifficulty validates arbitrary geometry. An overfull board is a
// configuration error and gets rejected here, long before mine placement
// could ever run on it.
func NewCustomDifficulty(rows, cols, mines int) (Difficulty, error) {
	if rows <= 0 || cols <= 0 || mines <= 0 {
		return Difficulty{}, ErrBadGeometry
	}
	if mines >= rows*cols {
		return Difficulty{}, ErrTooManyMines
	}
	return Difficulty{Label: "custom", Rows: rows, Cols: cols, Mines: mines}, nil
}
