package mines

import "log/slog"

// Offsets in the order the neighbours of a cell are visited:
// N, S, W, E, NW, SE, NE, SW.
var neighbourOffsets = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, 1}, {-1, 1}, {1, -1},
}

func neighbours(p Position) []int {
	ns := make([]int, 0, 8)
	for _, d := range neighbourOffsets {
		r, c := p.Row+d[0], p.Col+d[1]
		if InBounds(r, c) {
			ns = append(ns, r*Size+c)
		}
	}
	return ns
}

type RevealOutcome struct {
	Status   Status     `json:"status"`
	Revealed []Position `json:"revealed"`        /* newly revealed, in order */
	Mines    []Position `json:"mines,omitempty"` /* every mine, only on loss */
}

// Reveal opens the cell at row, col. Opening a cell with no adjacent mines
// opens its neighbours too, transitively. Revealing an already revealed cell
// changes nothing.
func (b *Board) Reveal(row, col int) (RevealOutcome, error) {
	if !InBounds(row, col) {
		return RevealOutcome{Status: b.status}, invalidPosition(row, col)
	}
	if b.status.Over() {
		return RevealOutcome{Status: b.status}, ErrIllegalOperation
	}

	start := row*Size + col
	if b.mine[start] {
		b.status = Lost
		b.exploded = start
		Log.Debug("mine hit", slog.Int("row", row), slog.Int("col", col))
		return RevealOutcome{Status: b.status, Mines: b.Mines()}, nil
	}

	var out RevealOutcome

	/*
	 * Depth-first with an explicit stack. Neighbours are pushed in
	 * reverse so they pop in visiting order, and a cell is skipped when
	 * popped if something else already opened it.
	 */
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if b.revealed[i] {
			continue
		}

		p := positionAt(i)
		b.revealed[i] = true
		b.flagged[i] = false
		b.revealedCount++
		b.history = append(b.history, p)
		out.Revealed = append(out.Revealed, p)

		if b.revealedCount == SafeCells {
			b.status = Won
			Log.Debug("board cleared", slog.Int("moves", len(b.history)))
		}

		if b.adjacent[i] == 0 {
			ns := neighbours(p)
			for k := len(ns) - 1; k >= 0; k-- {
				if !b.revealed[ns[k]] {
					stack = append(stack, ns[k])
				}
			}
		}
	}

	out.Status = b.status
	return out, nil
}

// ToggleFlag flips the flag on a hidden cell and reports whether the cell is
// flagged afterwards. Revealed cells cannot carry a flag and are left alone.
func (b *Board) ToggleFlag(row, col int) (bool, error) {
	if !InBounds(row, col) {
		return false, invalidPosition(row, col)
	}
	if b.status.Over() {
		return b.flagged[row*Size+col], ErrIllegalOperation
	}
	i := row*Size + col
	if b.revealed[i] {
		return false, nil
	}
	b.flagged[i] = !b.flagged[i]
	return b.flagged[i], nil
}

// UndoLastReveal hides the most recently revealed cell. Only that single
// cell is hidden again, even when it was opened as part of a cascade. It does
// nothing once the game is over or when nothing has been revealed.
func (b *Board) UndoLastReveal() (Position, bool) {
	if b.status.Over() || len(b.history) == 0 {
		return Position{}, false
	}
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.revealed[last.index()] = false
	b.revealedCount--
	return last, true
}
