package ddb

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ChangeID orders appended records within the table. IDs generated from the
// same generator sort in generation order, even within a millisecond.
type ChangeID string

func (id ChangeID) String() string {
	return string(id)
}

type ChangeIDGenerator struct {
	lk      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewChangeIDGenerator() *ChangeIDGenerator {
	t := time.Now()
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)

	return &ChangeIDGenerator{
		entropy: entropy,
	}
}

func (g *ChangeIDGenerator) NewChangeID(t time.Time) ChangeID {
	g.lk.Lock()
	defer g.lk.Unlock()

	return ChangeID(ulid.MustNew(ulid.Timestamp(t), g.entropy).String())
}
