package mines

import (
	"strconv"
	"strings"
)

// CellState is what the player sees in one cell.
type CellState int8

const (
	Unknown          CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
	/*
	 * 0 to 8 mean the cell is open and hold its adjacent mine count.
	 *
	 * The values from 64 up only appear once the game is lost:
	 *
	 * 	- 64 is a flagged mine.
	 * 	- 65 is the mine the player stepped on.
	 * 	- 66 is a flag on a cell without a mine.
	 * 	- 67 is a mine nobody flagged.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "."
	case s == Flagged:
		return "F"
	case s == 0:
		return " "
	case 0 < s && s <= 8:
		return strconv.Itoa(int(s))
	case s == CorrectlyFlagged:
		return "F"
	case s == ExplodedMine:
		return "X"
	case s == FalselyFlagged:
		return "x"
	case s == UnflaggedMine:
		return "*"
	default:
		return "?"
	}
}

func (s CellState) Open() bool {
	return 0 <= s && s <= 8
}

// Grid is the player's view of a board in row-major order.
type Grid []CellState

func (g Grid) At(row, col int) CellState {
	return g[row*Size+col]
}

// String renders the grid with row and column headers.
func (g Grid) String() string {
	var b strings.Builder
	b.WriteString("   ")
	for col := range Size {
		b.WriteString(strconv.Itoa(col) + " ")
	}
	b.WriteString("\n")
	for row := range len(g) / Size {
		b.WriteString(strconv.Itoa(row) + "  ")
		for col := range Size {
			b.WriteString(g[row*Size+col].String() + " ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

type Snapshot struct {
	Grid          Grid   `json:"grid"`
	Status        Status `json:"status"`
	RevealedCount int    `json:"revealed_count"`
	Flags         int    `json:"flags"`
}

// Snapshot captures the board as the player should see it. Mines are only
// disclosed once the game is lost.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Grid:          make(Grid, Cells),
		Status:        b.status,
		RevealedCount: b.revealedCount,
	}
	for i := range Cells {
		if b.flagged[i] {
			s.Flags++
		}
		s.Grid[i] = b.cellState(i)
	}
	return s
}

func (b *Board) cellState(i int) CellState {
	switch {
	case b.revealed[i]:
		return CellState(b.adjacent[i])
	case b.status != Lost && b.flagged[i]:
		return Flagged
	case b.status != Lost:
		return Unknown
	case i == b.exploded:
		return ExplodedMine
	case b.flagged[i] && b.mine[i]:
		return CorrectlyFlagged
	case b.flagged[i]:
		return FalselyFlagged
	case b.mine[i]:
		return UnflaggedMine
	default:
		return Unknown
	}
}
