package chat

import (
	"math/rand"
	"sync"
)

// fallbackReply is appended when a character has no usable response pool.
// Selection must always produce something; an unresolved reply would leave
// the conversation showing a typing indicator forever.
const fallbackReply = "Interesting..."

// Selector picks the next simulated reply from a character's response pool.
// The randomness source is injected so tests can seed it deterministically.
type Selector struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSelector creates a selector driven by the given source. A nil source
// gets a time-seeded one.
func NewSelector(rnd *rand.Rand) *Selector {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Selector{rnd: rnd}
}

// Pick returns a uniform-random entry from pool, or the fallback reply when
// the pool is empty.
func (s *Selector) Pick(pool []string) string {
	if len(pool) == 0 {
		return fallbackReply
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return pool[s.rnd.Intn(len(pool))]
}

// delayBetween returns a random count in [min, max]. Used for the simulated
// thinking latency before a reply lands.
func (s *Selector) delayBetween(min, max int64) int64 {
	if max <= min {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rnd.Int63n(max-min+1)
}
