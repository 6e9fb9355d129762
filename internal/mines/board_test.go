package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wallLayout fences off the top-left 3x4 block with mines along row 3 and
// column 4. Opening 0:0 must clear exactly that block.
var wallLayout = []Position{
	{0, 4}, {1, 4}, {2, 4},
	{3, 0}, {3, 1}, {3, 2}, {3, 3}, {3, 4},
	{9, 8}, {9, 9},
}

// cornerLayout packs every mine into the bottom-right corner, so a single
// click far away opens the whole board.
var cornerLayout = []Position{
	{8, 5}, {8, 6}, {8, 7}, {8, 8}, {8, 9},
	{9, 5}, {9, 6}, {9, 7}, {9, 8}, {9, 9},
}

func mustBoard(t *testing.T, layout []Position) *Board {
	t.Helper()
	b, err := NewWithMines(layout)
	require.NoError(t, err)
	return b
}

func bruteForceAdjacent(b *Board, row, col int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.IsMine(row+dr, col+dc) {
				n++
			}
		}
	}
	return n
}

func TestResetPlacesExactlyMineCount(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	b := New(r)
	for range 500 {
		mines := b.Mines()
		require.Len(t, mines, MineCount)

		seen := make(map[Position]bool)
		for _, p := range mines {
			require.True(t, InBounds(p.Row, p.Col))
			require.False(t, seen[p], "duplicate mine at %v", p)
			seen[p] = true
		}
		b.Reset()
	}
}

func TestAdjacentCountsMatchBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for range 1000 {
		b := New(r)
		for row := range Size {
			for col := range Size {
				if b.IsMine(row, col) {
					continue
				}
				require.Equal(t, bruteForceAdjacent(b, row, col), b.AdjacentMines(row, col),
					"cell %d:%d, mines %v", row, col, b.Mines())
			}
		}
	}
}

func TestResetClearsState(t *testing.T) {
	b := New(rand.New(rand.NewPCG(5, 6)))
	for i := range Cells {
		p := positionAt(i)
		if !b.IsMine(p.Row, p.Col) {
			_, err := b.Reveal(p.Row, p.Col)
			require.NoError(t, err)
			break
		}
	}
	for i := range Cells {
		p := positionAt(i)
		if !b.IsRevealed(p.Row, p.Col) {
			_, err := b.ToggleFlag(p.Row, p.Col)
			require.NoError(t, err)
			break
		}
	}

	b.Reset()

	assert.Equal(t, InProgress, b.Status())
	assert.Zero(t, b.RevealedCount())
	assert.Empty(t, b.History())
	assert.Len(t, b.Mines(), MineCount)
	for i := range Cells {
		p := positionAt(i)
		assert.False(t, b.IsRevealed(p.Row, p.Col))
		assert.False(t, b.IsFlagged(p.Row, p.Col))
	}
}

func TestNewWithMinesValidation(t *testing.T) {
	tests := []struct {
		name   string
		layout []Position
	}{
		{"too few", wallLayout[:9]},
		{"too many", append(append([]Position{}, wallLayout...), Position{5, 5})},
		{"duplicate", append(append([]Position{}, wallLayout[:9]...), wallLayout[0])},
		{"out of bounds", append(append([]Position{}, wallLayout[:9]...), Position{10, 0})},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewWithMines(test.layout)
			assert.Error(t, err)
		})
	}
}

func TestRevealFloodFillStopsAtNumbers(t *testing.T) {
	b := mustBoard(t, wallLayout)

	out, err := b.Reveal(0, 0)
	require.NoError(t, err)

	assert.Equal(t, InProgress, out.Status)
	assert.Len(t, out.Revealed, 12)
	assert.Equal(t, 12, b.RevealedCount())
	assert.Nil(t, out.Mines)

	for row := range Size {
		for col := range Size {
			inBlock := row <= 2 && col <= 3
			assert.Equal(t, inBlock, b.IsRevealed(row, col), "cell %d:%d", row, col)
		}
	}
	for _, p := range b.Mines() {
		assert.False(t, b.IsRevealed(p.Row, p.Col))
	}
}

func TestRevealHistoryOrder(t *testing.T) {
	b := mustBoard(t, wallLayout)

	out, err := b.Reveal(0, 0)
	require.NoError(t, err)

	want := []Position{
		{0, 0}, {1, 0}, {2, 0}, {1, 1}, {0, 1}, {0, 2},
		{1, 2}, {2, 2}, {1, 3}, {2, 3}, {0, 3}, {2, 1},
	}
	assert.Equal(t, want, out.Revealed)
	assert.Equal(t, want, b.History())
}

func TestRevealIsIdempotent(t *testing.T) {
	b := mustBoard(t, wallLayout)

	_, err := b.Reveal(2, 0)
	require.NoError(t, err)
	before := b.Snapshot()

	out, err := b.Reveal(2, 0)
	require.NoError(t, err)
	assert.Empty(t, out.Revealed)
	assert.Equal(t, before, b.Snapshot())
	assert.Len(t, b.History(), 1)
}

func TestRevealMineLoses(t *testing.T) {
	b := mustBoard(t, wallLayout)

	out, err := b.Reveal(3, 0)
	require.NoError(t, err)
	assert.Equal(t, Lost, out.Status)
	assert.Equal(t, Lost, b.Status())
	assert.ElementsMatch(t, wallLayout, out.Mines)
	assert.Zero(t, b.RevealedCount())

	_, err = b.Reveal(0, 0)
	assert.ErrorIs(t, err, ErrIllegalOperation)
	assert.False(t, b.IsRevealed(0, 0))

	_, err = b.ToggleFlag(5, 5)
	assert.ErrorIs(t, err, ErrIllegalOperation)
	assert.False(t, b.IsFlagged(5, 5))
}

func TestRevealAllSafeCellsWins(t *testing.T) {
	b := mustBoard(t, wallLayout)

	for i := range Cells {
		p := positionAt(i)
		if b.IsMine(p.Row, p.Col) || b.IsRevealed(p.Row, p.Col) {
			continue
		}
		require.Equal(t, InProgress, b.Status())
		_, err := b.Reveal(p.Row, p.Col)
		require.NoError(t, err)
	}

	assert.Equal(t, Won, b.Status())
	assert.Equal(t, SafeCells, b.RevealedCount())

	_, err := b.Reveal(3, 0)
	assert.ErrorIs(t, err, ErrIllegalOperation)
	assert.Equal(t, Won, b.Status())
}

func TestSingleCascadeWins(t *testing.T) {
	b := mustBoard(t, cornerLayout)

	out, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Won, out.Status)
	assert.Len(t, out.Revealed, SafeCells)
}

func TestRevealOutOfBounds(t *testing.T) {
	b := mustBoard(t, wallLayout)
	for _, p := range []Position{{-1, 0}, {0, -1}, {Size, 0}, {0, Size}} {
		_, err := b.Reveal(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrInvalidPosition)
		_, err = b.ToggleFlag(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrInvalidPosition)
	}
	assert.Zero(t, b.RevealedCount())
}

func TestToggleFlag(t *testing.T) {
	b := mustBoard(t, wallLayout)

	flagged, err := b.ToggleFlag(5, 5)
	require.NoError(t, err)
	assert.True(t, flagged)
	assert.True(t, b.IsFlagged(5, 5))

	flagged, err = b.ToggleFlag(5, 5)
	require.NoError(t, err)
	assert.False(t, flagged)
	assert.False(t, b.IsFlagged(5, 5))

	_, err = b.Reveal(2, 0)
	require.NoError(t, err)
	flagged, err = b.ToggleFlag(2, 0)
	require.NoError(t, err)
	assert.False(t, flagged)
	assert.False(t, b.IsFlagged(2, 0))
	assert.Equal(t, 1, b.RevealedCount())
	assert.Len(t, b.History(), 1)
}

func TestRevealClearsFlag(t *testing.T) {
	b := mustBoard(t, wallLayout)

	_, err := b.ToggleFlag(1, 1)
	require.NoError(t, err)
	_, err = b.Reveal(0, 0)
	require.NoError(t, err)

	assert.True(t, b.IsRevealed(1, 1))
	assert.False(t, b.IsFlagged(1, 1))
}

func TestUndoSingleReveal(t *testing.T) {
	b := mustBoard(t, wallLayout)

	_, err := b.Reveal(2, 0)
	require.NoError(t, err)
	require.True(t, b.IsRevealed(2, 0))

	p, ok := b.UndoLastReveal()
	assert.True(t, ok)
	assert.Equal(t, Position{2, 0}, p)
	assert.False(t, b.IsRevealed(2, 0))
	assert.Zero(t, b.RevealedCount())
	assert.Empty(t, b.History())
}

func TestUndoEmptyHistory(t *testing.T) {
	b := mustBoard(t, wallLayout)
	before := b.Snapshot()

	_, ok := b.UndoLastReveal()
	assert.False(t, ok)
	assert.Equal(t, before, b.Snapshot())
}

func TestUndoCascadeHidesOnlyLastCell(t *testing.T) {
	b := mustBoard(t, wallLayout)

	_, err := b.Reveal(0, 0)
	require.NoError(t, err)

	p, ok := b.UndoLastReveal()
	require.True(t, ok)
	assert.Equal(t, Position{2, 1}, p)
	assert.False(t, b.IsRevealed(2, 1))
	assert.Equal(t, 11, b.RevealedCount())
	assert.Len(t, b.History(), 11)

	// the hidden cell can be opened again
	out, err := b.Reveal(2, 1)
	require.NoError(t, err)
	assert.Equal(t, []Position{{2, 1}}, out.Revealed)
	assert.Equal(t, 12, b.RevealedCount())
}

func TestUndoAfterGameOverIsNoop(t *testing.T) {
	b := mustBoard(t, wallLayout)

	_, err := b.Reveal(2, 0)
	require.NoError(t, err)
	_, err = b.Reveal(3, 0)
	require.NoError(t, err)

	_, ok := b.UndoLastReveal()
	assert.False(t, ok)
	assert.True(t, b.IsRevealed(2, 0))
	assert.Equal(t, Lost, b.Status())
}

func TestHistoryTracksRevealedCount(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	b := New(r)
	for range 200 {
		row, col := r.IntN(Size), r.IntN(Size)
		if b.IsMine(row, col) {
			continue
		}
		_, err := b.Reveal(row, col)
		if err != nil {
			require.ErrorIs(t, err, ErrIllegalOperation)
			break
		}
		if r.IntN(4) == 0 {
			b.UndoLastReveal()
		}
		require.Equal(t, len(b.History()), b.RevealedCount())
		require.LessOrEqual(t, b.RevealedCount(), SafeCells)
	}
}
