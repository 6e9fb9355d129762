package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/classic-mines/internal/mines"
)

var layout = []mines.Position{
	{Row: 0, Col: 4}, {Row: 1, Col: 4}, {Row: 2, Col: 4},
	{Row: 3, Col: 0}, {Row: 3, Col: 1}, {Row: 3, Col: 2}, {Row: 3, Col: 3}, {Row: 3, Col: 4},
	{Row: 9, Col: 8}, {Row: 9, Col: 9},
}

func newBoard(t *testing.T) *mines.Board {
	t.Helper()
	b, err := mines.NewWithMines(layout)
	require.NoError(t, err)
	return b
}

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"g", Command{Kind: Noop}},
		{"o 1 2", Command{Kind: Reveal, Position: mines.Position{Row: 1, Col: 2}}},
		{"  f 9 0  ", Command{Kind: Flag, Position: mines.Position{Row: 9, Col: 0}}},
		{"u", Command{Kind: Undo}},
		{"n", Command{Kind: Reset}},
	}
	for _, test := range tests {
		cmd, err := Parse(test.line)
		require.NoError(t, err, test.line)
		assert.Equal(t, test.want, cmd)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		line string
		err  error
	}{
		{"", ErrUnknownCommand},
		{"x", ErrUnknownCommand},
		{"o 1", ErrBadArguments},
		{"u 1", ErrBadArguments},
		{"o a 1", ErrBadArguments},
		{"f 1 b", ErrBadArguments},
	}
	for _, test := range tests {
		_, err := Parse(test.line)
		assert.ErrorIs(t, err, test.err, test.line)
	}
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "o 3 4", Command{Kind: Reveal, Position: mines.Position{Row: 3, Col: 4}}.String())
	assert.Equal(t, "u", Command{Kind: Undo}.String())
}

func TestLines(t *testing.T) {
	var got []string
	for _, line := range Lines("o 1 1\n\n  f 2 2 \nu\n") {
		got = append(got, line)
	}
	assert.Equal(t, []string{"o 1 1", "f 2 2", "u"}, got)

	n := 0
	for range Lines("  \n") {
		n++
	}
	assert.Zero(t, n)
}

func TestExecute(t *testing.T) {
	b := newBoard(t)

	results, err := Execute(b, "o 0 0\nf 5 5\nu")
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.NotNil(t, results[0].Outcome)
	assert.Len(t, results[0].Outcome.Revealed, 12)
	require.NotNil(t, results[1].Flagged)
	assert.True(t, *results[1].Flagged)
	require.NotNil(t, results[2].Undone)
	assert.Equal(t, mines.Position{Row: 2, Col: 1}, *results[2].Undone)

	assert.Equal(t, 11, b.RevealedCount())
	assert.True(t, b.IsFlagged(5, 5))
}

func TestExecuteStopsWhenGameEnds(t *testing.T) {
	b := newBoard(t)

	results, err := Execute(b, "o 3 0\no 0 0")
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, mines.Lost, b.Status())
	assert.False(t, b.IsRevealed(0, 0))
}

func TestExecuteAfterGameOver(t *testing.T) {
	b := newBoard(t)
	_, err := b.Reveal(3, 0)
	require.NoError(t, err)

	results, err := Execute(b, "o 0 0\nf 1 1\nn")
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Empty(t, results[0].Outcome.Revealed)
	assert.Equal(t, mines.InProgress, b.Status())
	assert.False(t, b.IsFlagged(1, 1))
}

func TestExecuteInvalidPosition(t *testing.T) {
	b := newBoard(t)

	_, err := Execute(b, "o 10 0")
	assert.ErrorIs(t, err, mines.ErrInvalidPosition)

	_, err = Execute(b, "g\nbogus")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}
