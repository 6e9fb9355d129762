package mines

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

const (
	Size      = 10
	MineCount = 10
	Cells     = Size * Size
	SafeCells = Cells - MineCount
)

type GameParams struct {
	GridSize     int `json:"grid_size"`
	MineCount    int `json:"mine_count"`
	WinThreshold int `json:"win_threshold"`
}

func Params() GameParams {
	return GameParams{
		GridSize:     Size,
		MineCount:    MineCount,
		WinThreshold: SafeCells,
	}
}

type Position struct {
	Row int `json:"row" schema:"row,required"`
	Col int `json:"col" schema:"col,required"`
}

func (p Position) index() int {
	return p.Row*Size + p.Col
}

func positionAt(i int) Position {
	return Position{Row: i / Size, Col: i % Size}
}

func InBounds(row, col int) bool {
	return 0 <= row && row < Size && 0 <= col && col < Size
}

type Status uint8

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, v := range []Status{InProgress, Won, Lost} {
		if string(text) == v.String() {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown game status %q", text)
}

func (s Status) Over() bool {
	return s != InProgress
}

// Board holds the whole state of one game. Per-cell attributes are flat
// arrays indexed by row*Size+col.
//
// A Board is not safe for concurrent use.
type Board struct {
	mine     [Cells]bool
	flagged  [Cells]bool
	revealed [Cells]bool
	adjacent [Cells]uint8

	revealedCount int
	history       []Position
	status        Status
	exploded      int /* index of the mine that ended the game, -1 if none */

	rnd *rand.Rand
}

// New creates a board with a fresh random mine layout drawn from r.
func New(r *rand.Rand) *Board {
	b := &Board{rnd: r}
	b.Reset()
	return b
}

// NewWithMines creates a board with the given mine layout. Reset on such a
// board falls back to a random layout.
func NewWithMines(mines []Position) (*Board, error) {
	if len(mines) != MineCount {
		return nil, fmt.Errorf("expected %d mines, got %d", MineCount, len(mines))
	}
	b := &Board{}
	b.clear()
	for _, p := range mines {
		if !InBounds(p.Row, p.Col) {
			return nil, invalidPosition(p.Row, p.Col)
		}
		if b.mine[p.index()] {
			return nil, fmt.Errorf("duplicate mine at %d:%d", p.Row, p.Col)
		}
		b.mine[p.index()] = true
	}
	b.countAdjacent()
	return b, nil
}

// Reset discards the current game and starts a new one with a fresh mine
// layout.
func (b *Board) Reset() {
	if b.rnd == nil {
		b.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	b.clear()
	b.placeMines()
	b.countAdjacent()
	Log.Debug("board reset", slog.Any("mines", b.Mines()))
}

func (b *Board) clear() {
	b.mine = [Cells]bool{}
	b.flagged = [Cells]bool{}
	b.revealed = [Cells]bool{}
	b.adjacent = [Cells]uint8{}
	b.revealedCount = 0
	b.history = b.history[:0]
	b.status = InProgress
	b.exploded = -1
}

func (b *Board) placeMines() {
	placed := 0
	for placed < MineCount {
		i := b.rnd.IntN(Cells)
		if !b.mine[i] {
			b.mine[i] = true
			placed++
		}
	}
}

func (b *Board) countAdjacent() {
	for i := range Cells {
		if b.mine[i] {
			continue
		}
		var n uint8
		for _, j := range neighbours(positionAt(i)) {
			if b.mine[j] {
				n++
			}
		}
		b.adjacent[i] = n
	}
}

func (b *Board) Status() Status {
	return b.status
}

func (b *Board) RevealedCount() int {
	return b.revealedCount
}

// History returns a copy of the reveal history, oldest first.
func (b *Board) History() []Position {
	h := make([]Position, len(b.history))
	copy(h, b.history)
	return h
}

// Mines lists the mine positions in row-major order.
func (b *Board) Mines() []Position {
	ps := make([]Position, 0, MineCount)
	for i := range Cells {
		if b.mine[i] {
			ps = append(ps, positionAt(i))
		}
	}
	return ps
}

func (b *Board) IsMine(row, col int) bool {
	return InBounds(row, col) && b.mine[row*Size+col]
}

func (b *Board) IsFlagged(row, col int) bool {
	return InBounds(row, col) && b.flagged[row*Size+col]
}

func (b *Board) IsRevealed(row, col int) bool {
	return InBounds(row, col) && b.revealed[row*Size+col]
}

// AdjacentMines returns the number of mines around a cell. The value is
// meaningless for mine cells and out-of-bounds positions yield 0.
func (b *Board) AdjacentMines(row, col int) int {
	if !InBounds(row, col) {
		return 0
	}
	return int(b.adjacent[row*Size+col])
}
