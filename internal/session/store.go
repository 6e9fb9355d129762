package session

import (
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/classic-mines/internal/command"
	"github.com/vancomm/classic-mines/internal/mines"
)

var ErrNotFound = errors.New("session not found")

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// Game is one session's board together with its timer.
type Game struct {
	Board *mines.Board
	Timer command.Timer

	now time.Time
}

// Apply runs a single command and keeps the timer in step.
func (g *Game) Apply(cmd command.Command) (command.Result, error) {
	res, err := cmd.Apply(g.Board)
	if err != nil {
		return res, err
	}
	g.Timer.Track(g.Board, []command.Result{res}, g.now)
	return res, nil
}

// Execute runs a protocol message and keeps the timer in step, including for
// the commands that ran before a bad one.
func (g *Game) Execute(message string) ([]command.Result, error) {
	results, err := command.Execute(g.Board, message)
	g.Timer.Track(g.Board, results, g.now)
	return results, err
}

type entry struct {
	mu      sync.Mutex
	game    Game
	touched time.Time

	attached int /* guarded by Store.mu */
}

// Store keeps one game per session in memory. Nothing outlives the process.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry

	NewBoard func() *mines.Board
	Now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		entries:  make(map[string]*entry),
		NewBoard: func() *mines.Board { return mines.New(createRand()) },
		Now:      time.Now,
	}
}

// Create starts a new game and returns its session id.
func (s *Store) Create() string {
	now := s.Now()
	e := &entry{
		game: Game{
			Board: s.NewBoard(),
			Timer: command.NewTimer(now),
		},
		touched: now,
	}
	id := uuid.NewString()

	s.mu.Lock()
	s.entries[id] = e
	s.mu.Unlock()

	return id
}

// Do runs fn with exclusive access to the session's game.
func (s *Store) Do(id string, fn func(*Game) error) error {
	s.mu.Lock()
	e, ok := s.entries[id]
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = s.Now()
	e.game.now = e.touched
	return fn(&e.game)
}

// Attach keeps the session away from Sweep until release is called.
func (s *Store) Attach(id string) (release func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.attached++

	return sync.OnceFunc(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		e.attached--

		e.mu.Lock()
		e.touched = s.Now()
		e.mu.Unlock()
	}), nil
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops detached sessions untouched for longer than maxIdle and
// reports how many were removed.
func (s *Store) Sweep(maxIdle time.Duration) int {
	cutoff := s.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.entries {
		if e.attached > 0 {
			continue
		}
		e.mu.Lock()
		idle := e.touched.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(s.entries, id)
			n++
		}
	}
	return n
}
