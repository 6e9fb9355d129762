package handlers

import (
	"github.com/gorilla/schema"

	"github.com/vancomm/classic-mines/internal/command"
	"github.com/vancomm/classic-mines/internal/mines"
)

func ParsePosition(src map[string][]string) (mines.Position, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var pos mines.Position
	err := dec.Decode(&pos, src)
	return pos, err
}

type GameDTO struct {
	Grid          mines.Grid       `json:"grid"`
	Params        mines.GameParams `json:"params"`
	Status        mines.Status     `json:"status"`
	Won           bool             `json:"won"`
	Dead          bool             `json:"dead"`
	RevealedCount int              `json:"revealed_count"`
	Flags         int              `json:"flags"`
	StartedAt     int64            `json:"started_at"`
	EndedAt       *int64           `json:"ended_at,omitempty"`
	Revealed      []mines.Position `json:"revealed,omitempty"`
	Mines         []mines.Position `json:"mines,omitempty"`
	Flagged       *bool            `json:"flagged,omitempty"`
	Undone        *mines.Position  `json:"undone,omitempty"`
}

// NewGameDTO describes the board after the given commands ran on it.
func NewGameDTO(s mines.Snapshot, timer command.Timer, results ...command.Result) *GameDTO {
	var endedAt *int64
	if timer.Stopped() {
		e := timer.EndedAt.UnixMilli()
		endedAt = &e
	}
	dto := &GameDTO{
		Grid:          s.Grid,
		Params:        mines.Params(),
		Status:        s.Status,
		Won:           s.Status == mines.Won,
		Dead:          s.Status == mines.Lost,
		RevealedCount: s.RevealedCount,
		Flags:         s.Flags,
		StartedAt:     timer.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
	for _, res := range results {
		if res.Outcome != nil {
			dto.Revealed = append(dto.Revealed, res.Outcome.Revealed...)
			if res.Outcome.Mines != nil {
				dto.Mines = res.Outcome.Mines
			}
		}
		if res.Flagged != nil {
			dto.Flagged = res.Flagged
		}
		if res.Undone != nil {
			dto.Undone = res.Undone
		}
	}
	return dto
}
