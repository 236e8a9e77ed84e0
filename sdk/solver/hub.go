package solver

import (
	"fmt"
	rand "math/rand/v2"
	"sync"
)

// maxAcquireAttempts bounds how many refill rounds an Acquire will sit
// through before giving up with ErrCapacityExceeded.
const maxAcquireAttempts = 1024

// Pair is one unit of work: exclusive ownership of a small-blind branch and
// a big-blind branch until the pair is released back to the hub.
type Pair struct {
	SB *Branch
	BB *Branch
}

// Hub circulates branches between worker threads. Workers pop one branch
// from each position's out-queue, train against the pair, and push both onto
// the in-queues. When an out-queue drains to its reserve, one worker takes
// the refill lock, gathers everything back, shuffles, and refills — the
// shuffle is what bounds the delay between any two visits to the same pair
// and prevents adjacency bias.
type Hub struct {
	sbOut chan *Branch
	sbIn  chan *Branch
	bbOut chan *Branch
	bbIn  chan *Branch

	reserve int

	// refillMu serializes the refill path; rng is only touched under it.
	refillMu sync.Mutex
	rng      *rand.Rand
}

// NewHub takes ownership of the branches (one per hub key, both positions)
// and loads the out-queues. reserve is the low-water mark that triggers a
// reshuffle; it must leave enough headroom that the workers' in-flight pairs
// can never starve the queues.
func NewHub(branches []*Branch, reserve, workers int, rng *rand.Rand) (*Hub, error) {
	var sb, bb []*Branch
	for _, b := range branches {
		if b.Key.IsSB {
			sb = append(sb, b)
		} else {
			bb = append(bb, b)
		}
	}
	if len(sb) == 0 || len(sb) != len(bb) {
		return nil, fmt.Errorf("hub needs matching sb/bb branch sets, got %d sb and %d bb", len(sb), len(bb))
	}
	if reserve < 0 || reserve+workers >= len(sb) {
		return nil, fmt.Errorf("reserve %d plus %d workers exceeds the %d branches per position", reserve, workers, len(sb))
	}

	h := &Hub{
		sbOut:   make(chan *Branch, len(sb)),
		sbIn:    make(chan *Branch, len(sb)),
		bbOut:   make(chan *Branch, len(bb)),
		bbIn:    make(chan *Branch, len(bb)),
		reserve: reserve,
		rng:     rng,
	}
	for _, b := range sb {
		h.sbOut <- b
	}
	for _, b := range bb {
		h.bbOut <- b
	}
	return h, nil
}

// Acquire hands out a pair of branches, refilling the out-queues when either
// runs low. The caller owns both branches exclusively until Release.
func (h *Hub) Acquire() (Pair, error) {
	for attempt := 0; attempt < maxAcquireAttempts; attempt++ {
		if len(h.sbOut) > h.reserve && len(h.bbOut) > h.reserve {
			sb, ok := tryPop(h.sbOut)
			if !ok {
				h.refill()
				continue
			}
			bb, ok := tryPop(h.bbOut)
			if !ok {
				// Park the lone small-blind branch so the refill sees it.
				if !tryPush(h.sbIn, sb) {
					return Pair{}, ErrCapacityExceeded
				}
				h.refill()
				continue
			}
			return Pair{SB: sb, BB: bb}, nil
		}
		h.refill()
	}
	return Pair{}, ErrCapacityExceeded
}

// Release returns a pair's branches to the in-queues.
func (h *Hub) Release(p Pair) error {
	if !tryPush(h.sbIn, p.SB) || !tryPush(h.bbIn, p.BB) {
		return ErrCapacityExceeded
	}
	return nil
}

// refill drains every queue into local buffers, shuffles each position
// uniformly, and reloads the out-queues. Only one worker runs it at a time;
// everyone else re-checks the reserve condition after the lock.
func (h *Hub) refill() {
	h.refillMu.Lock()
	defer h.refillMu.Unlock()

	if len(h.sbOut) > h.reserve && len(h.bbOut) > h.reserve {
		return
	}

	sb := drain(h.sbIn)
	sb = append(sb, drain(h.sbOut)...)
	bb := drain(h.bbIn)
	bb = append(bb, drain(h.bbOut)...)

	h.rng.Shuffle(len(sb), func(i, j int) { sb[i], sb[j] = sb[j], sb[i] })
	h.rng.Shuffle(len(bb), func(i, j int) { bb[i], bb[j] = bb[j], bb[i] })

	for _, b := range sb {
		h.sbOut <- b
	}
	for _, b := range bb {
		h.bbOut <- b
	}
}

// Drain collects every branch back out of the hub. Only call once all
// workers have stopped; branches still held by a worker are the caller's to
// account for.
func (h *Hub) Drain() []*Branch {
	var out []*Branch
	for _, q := range []chan *Branch{h.sbIn, h.sbOut, h.bbIn, h.bbOut} {
		out = append(out, drain(q)...)
	}
	return out
}

func tryPop(q chan *Branch) (*Branch, bool) {
	select {
	case b := <-q:
		return b, true
	default:
		return nil, false
	}
}

func tryPush(q chan *Branch, b *Branch) bool {
	select {
	case q <- b:
		return true
	default:
		return false
	}
}

func drain(q chan *Branch) []*Branch {
	var out []*Branch
	for {
		b, ok := tryPop(q)
		if !ok {
			return out
		}
		out = append(out, b)
	}
}
