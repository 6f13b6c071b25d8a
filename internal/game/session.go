package game

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

type State int8

const (
	Playing State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "invalid"
	}
}

// Snapshot is the read-only view of a session handed to renderers. It is a
// plain copy; holding one never observes later mutations.
type Snapshot struct {
	State          State
	Rows, Cols     int
	MineCount      int
	MinesRemaining int
	Elapsed        int
	Grid           []CellView // row-major
}

// MineCounter renders the mines-remaining readout the classic way, three
// digits. Over-flagging takes it negative and it is shown as-is.
func (s Snapshot) MineCounter() string {
	return fmt.Sprintf("%03d", s.MinesRemaining)
}

// Session owns one game's lifecycle: the board, the state machine, the
// elapsed-time ticker and the first-click bookkeeping. Mines are not placed
// at creation; the first reveal places them, excluding the clicked cell.
//
// All methods are safe for concurrent use. The ticker goroutine takes the
// same mutex as the mutating operations, so a tick never interleaves with a
// reveal or a flag toggle.
type Session struct {
	mu          sync.Mutex
	diff        Difficulty
	board       *Board
	state       State
	elapsed     int
	minesPlaced bool
	rng         *rand.Rand

	tickEvery time.Duration
	stopTick  chan struct{} // non-nil only while the ticker runs
	subs      map[chan Snapshot]struct{}
	closed    bool
}

// NewSession starts a fresh Playing session on an empty board sized per the
// difficulty.
func NewSession(diff Difficulty, rng *rand.Rand) *Session {
	return &Session{
		diff:      diff,
		board:     NewBoard(diff.Rows, diff.Cols),
		rng:       rng,
		tickEvery: time.Second,
		subs:      make(map[chan Snapshot]struct{}),
	}
}

func (s *Session) Difficulty() Difficulty {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.diff
}

// InBounds reports whether (row, col) addresses a cell of this session's
// board. Callers must check it before Reveal or ToggleFlag; the core treats
// an out-of-range coordinate as a defect, not an input.
func (s *Session) InBounds(row, col int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.InBounds(row, col)
}

// Reveal opens (row, col) and advances the state machine. The first reveal
// of a session places the mines, guaranteeing the clicked cell is safe, and
// starts the timer. Revealing a flagged or already-open cell does nothing.
// A direct hit on a mine loses the game and exposes every mine; opening the
// last safe cell wins it. Terminal states ignore further reveals.
func (s *Session) Reveal(row, col int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Playing {
		return s.snapshotLocked()
	}

	if !s.minesPlaced {
		s.board.PlaceMines(s.rng, s.diff.Mines, row, col)
		s.minesPlaced = true
		s.startTimerLocked()
	}

	cell := s.board.Cells[row][col]
	if cell.Flagged || cell.Revealed {
		return s.snapshotLocked()
	}

	s.board.Reveal(row, col)

	if cell.Mine {
		s.state = Lost
		s.board.RevealMines()
		s.stopTimerLocked()
	} else if s.board.UnrevealedSafeCells() == 0 {
		s.state = Won
		s.stopTimerLocked()
	}

	snap := s.snapshotLocked()
	s.broadcastLocked(snap)
	return snap
}

// ToggleFlag flips the flag on (row, col) while the game is in play.
func (s *Session) ToggleFlag(row, col int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Playing {
		return s.snapshotLocked()
	}

	s.board.ToggleFlag(row, col)

	snap := s.snapshotLocked()
	s.broadcastLocked(snap)
	return snap
}

// Reset discards the current game and starts over on diff. Any running
// timer is stopped first; a reset mid-game must never leave two tickers
// alive.
func (s *Session) Reset(diff Difficulty) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.diff = diff
	s.board = NewBoard(diff.Rows, diff.Cols)
	s.state = Playing
	s.elapsed = 0
	s.minesPlaced = false

	snap := s.snapshotLocked()
	s.broadcastLocked(snap)
	return snap
}

// MinesRemaining is the mine counter: total mines minus currently flagged
// cells, recounted from the board each call. Negative when over-flagged.
func (s *Session) MinesRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.diff.Mines - s.board.FlaggedCells()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers a listener that receives a snapshot after every
// mutation and every timer tick. Slow listeners miss updates rather than
// block the game. The returned cancel func is idempotent.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Snapshot, 8)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	s.subs[ch] = struct{}{}

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Close stops the timer and drops all subscribers. The session must not be
// used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.stopTimerLocked()
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		State:          s.state,
		Rows:           s.diff.Rows,
		Cols:           s.diff.Cols,
		MineCount:      s.diff.Mines,
		MinesRemaining: s.diff.Mines - s.board.FlaggedCells(),
		Elapsed:        s.elapsed,
		Grid:           s.board.Views(),
	}
}

func (s *Session) broadcastLocked(snap Snapshot) {
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *Session) startTimerLocked() {
	if s.stopTick != nil {
		return
	}
	stop := make(chan struct{})
	s.stopTick = stop
	go s.runTimer(stop)
}

// stopTimerLocked closes the stop channel exactly once; stopTick goes nil
// immediately so a second stop is a no-op.
func (s *Session) stopTimerLocked() {
	if s.stopTick != nil {
		close(s.stopTick)
		s.stopTick = nil
	}
}

func (s *Session) runTimer(stop chan struct{}) {
	ticker := time.NewTicker(s.tickEvery)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.stopTick != stop {
				// a stop raced this tick; the session may already be
				// running a new timer, so this one must not touch it
				s.mu.Unlock()
				return
			}
			s.elapsed++
			s.broadcastLocked(s.snapshotLocked())
			s.mu.Unlock()
		}
	}
}
