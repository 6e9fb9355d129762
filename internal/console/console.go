// Package console plays a board in a terminal, reading commands line by line.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/classic-mines/internal/command"
	"github.com/vancomm/classic-mines/internal/mines"
)

const help = `commands:
  o ROW COL  open a cell
  f ROW COL  flag or unflag a cell
  u          undo the last opened cell
  n          new game
  q          quit
`

type Console struct {
	in    *bufio.Scanner
	out   io.Writer
	board *mines.Board
	log   logrus.FieldLogger

	timer command.Timer
	now   func() time.Time
}

func New(in io.Reader, out io.Writer, board *mines.Board, log logrus.FieldLogger) *Console {
	return &Console{
		in:    bufio.NewScanner(in),
		out:   out,
		board: board,
		log:   log,
		timer: command.NewTimer(time.Now()),
		now:   time.Now,
	}
}

// scan feeds input lines to a channel so Run can stop while a read is
// blocked. The goroutine stays parked in Scan until the next line or EOF.
func (c *Console) scan(ctx context.Context) (<-chan string, func() error) {
	lines := make(chan string)
	var err error
	go func() {
		defer close(lines)
		for c.in.Scan() {
			select {
			case lines <- c.in.Text():
			case <-ctx.Done():
				return
			}
		}
		err = c.in.Err()
	}()
	return lines, func() error { return err }
}

// Run renders the board and applies commands until the input ends, the
// player quits or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, scanErr := c.scan(ctx)

	fmt.Fprint(c.out, help)
	c.render(c.now())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, "> ")

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				return scanErr()
			}
			line = strings.TrimSpace(l)
		}

		switch line {
		case "":
			continue
		case "q":
			c.log.Info("player quit")
			return nil
		case "h", "?":
			fmt.Fprint(c.out, help)
			continue
		}

		wasOver := c.board.Status().Over()
		results, err := command.Execute(c.board, line)
		now := c.now()
		c.timer.Track(c.board, results, now)
		if err != nil {
			c.log.WithField("line", line).WithError(err).Debug("rejected command")
			fmt.Fprintf(c.out, "error: %s\n", err)
			continue
		}
		for _, res := range results {
			c.log.WithFields(logrus.Fields{
				"command": res.Command.String(),
				"status":  c.board.Status().String(),
			}).Debug("applied command")
		}

		c.render(now)
		if !wasOver && c.board.Status().Over() {
			c.announce(now)
		}
	}
}

func (c *Console) render(now time.Time) {
	s := c.board.Snapshot()
	fmt.Fprintf(c.out, "\nmines: %d  flags: %d  opened: %d/%d  time: %ds\n",
		mines.MineCount, s.Flags, s.RevealedCount, mines.SafeCells,
		int(c.timer.Elapsed(now).Seconds()))
	fmt.Fprint(c.out, s.Grid.String())
}

func (c *Console) announce(now time.Time) {
	switch c.board.Status() {
	case mines.Won:
		c.log.WithField("seconds", int(c.timer.Elapsed(now).Seconds())).Info("game won")
		fmt.Fprintln(c.out, "You won! n: new game, q: quit")
	case mines.Lost:
		c.log.WithField("mines", c.board.Mines()).Info("game lost")
		fmt.Fprintln(c.out, "Boom! n: new game, q: quit")
	}
}
