package handlers

import (
	"strconv"

	"github.com/gorilla/schema"

	"minesweep/internal/game"
)

// NewGameDTO selects either a preset difficulty by label or a custom
// geometry; the label wins when both are present.
type NewGameDTO struct {
	Difficulty string `schema:"difficulty"`
	Rows       int    `schema:"rows"`
	Cols       int    `schema:"cols"`
	Mines      int    `schema:"mines"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

func (dto NewGameDTO) ToDifficulty() (game.Difficulty, error) {
	if dto.Difficulty != "" {
		return game.ParseDifficulty(dto.Difficulty)
	}
	return game.NewCustomDifficulty(dto.Rows, dto.Cols, dto.Mines)
}

type CellPosDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParseCellPosDTO(src map[string][]string) (CellPosDTO, error) {
	var dto CellPosDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

// GameSessionDTO is the wire shape of a session snapshot.
type GameSessionDTO struct {
	SessionId      string          `json:"session_id"`
	State          string          `json:"state"`
	Rows           int             `json:"rows"`
	Cols           int             `json:"cols"`
	MineCount      int             `json:"mine_count"`
	MinesRemaining int             `json:"mines_remaining"`
	Elapsed        int             `json:"elapsed"`
	Grid           []game.CellView `json:"grid"`
}

func NewGameSessionDTO(id int64, snap game.Snapshot) GameSessionDTO {
	return GameSessionDTO{
		SessionId:      strconv.FormatInt(id, 10),
		State:          snap.State.String(),
		Rows:           snap.Rows,
		Cols:           snap.Cols,
		MineCount:      snap.MineCount,
		MinesRemaining: snap.MinesRemaining,
		Elapsed:        snap.Elapsed,
		Grid:           snap.Grid,
	}
}
