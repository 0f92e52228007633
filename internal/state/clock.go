package state

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Sequencer hands out stroke identities for one board. Sequence numbers
// start at 1 and never repeat for the lifetime of the sequencer.
type Sequencer struct {
	site string
	seq  atomic.Uint64
}

// NewBoardID returns a fresh random board identifier.
func NewBoardID() string {
	return uuid.NewString()
}

func NewSequencer(site string) *Sequencer {
	if site == "" {
		site = NewBoardID()
	}
	return &Sequencer{site: site}
}

// Site is the board identifier the sequencer was created with.
func (s *Sequencer) Site() string { return s.site }

// Begin starts a new stroke at p.
func (s *Sequencer) Begin(p Point, now time.Time) *Stroke {
	return &Stroke{
		ID:      uuid.NewString(),
		Seq:     s.seq.Add(1),
		Points:  []Point{p},
		Started: now,
	}
}
