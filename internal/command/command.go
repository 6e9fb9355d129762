// Package command implements the line protocol the frontends use to drive a
// board: one command per line, arguments separated by spaces.
//
//	g          refresh, changes nothing
//	o ROW COL  reveal a cell
//	f ROW COL  toggle a flag
//	u          undo the last reveal
//	n          start a new game
package command

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/classic-mines/internal/mines"
)

type Kind string

const (
	Noop   Kind = "g"
	Reveal Kind = "o"
	Flag   Kind = "f"
	Undo   Kind = "u"
	Reset  Kind = "n"
)

// Maps known commands to number of arguments
var commandNargs = map[Kind]int{
	Noop:   0,
	Reveal: 2,
	Flag:   2,
	Undo:   0,
	Reset:  0,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("invalid arguments")
)

type Command struct {
	Kind Kind
	mines.Position
}

func (c Command) String() string {
	if commandNargs[c.Kind] == 2 {
		return fmt.Sprintf("%s %d %d", c.Kind, c.Row, c.Col)
	}
	return string(c.Kind)
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}
	kind := Kind(parts[0])
	nargs, ok := commandNargs[kind]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf("%w: %s takes %d", ErrBadArguments, kind, nargs)
	}
	cmd := Command{Kind: kind}
	if nargs == 2 {
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return Command{}, err
		}
		cmd.Position = mines.Position{Row: row, Col: col}
	}
	return cmd, nil
}

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("%w: row must be an int", ErrBadArguments)
		return
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("%w: column must be an int", ErrBadArguments)
		return
	}
	return
}

type Result struct {
	Command Command
	Outcome *mines.RevealOutcome
	Flagged *bool
	Undone  *mines.Position
}

// Apply runs the command against b. Reveals and flags on a finished game are
// ignored rather than reported.
func (c Command) Apply(b *mines.Board) (Result, error) {
	res := Result{Command: c}
	switch c.Kind {
	case Noop:
	case Reveal:
		out, err := b.Reveal(c.Row, c.Col)
		if err != nil && !errors.Is(err, mines.ErrIllegalOperation) {
			return res, err
		}
		res.Outcome = &out
	case Flag:
		flagged, err := b.ToggleFlag(c.Row, c.Col)
		if err != nil && !errors.Is(err, mines.ErrIllegalOperation) {
			return res, err
		}
		res.Flagged = &flagged
	case Undo:
		if p, ok := b.UndoLastReveal(); ok {
			res.Undone = &p
		}
	case Reset:
		b.Reset()
	default:
		return res, fmt.Errorf("%w %q", ErrUnknownCommand, c.Kind)
	}
	return res, nil
}

func Lines(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, "\n")
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

// Execute applies every line of a message in order. Processing stops at the
// first bad command, or at the command that ends the game.
func Execute(b *mines.Board, message string) ([]Result, error) {
	var results []Result
	for _, line := range Lines(message) {
		cmd, err := Parse(line)
		if err != nil {
			return results, err
		}
		wasOver := b.Status().Over()
		res, err := cmd.Apply(b)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		if !wasOver && b.Status().Over() {
			break
		}
	}
	return results, nil
}
