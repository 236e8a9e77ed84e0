package solver

import (
	"fmt"

	"github.com/lox/limitcfr/poker"
)

// HubKey addresses one branch of the strategy store: a preflop hand bucket
// on one side of the blinds. 169 hand buckets times two positions gives
// exactly 338 branches.
type HubKey struct {
	LowRank  poker.Rank
	HighRank poker.Rank
	Suited   bool
	IsSB     bool
}

// HubKeyFor buckets a concrete hole-card pair for the given position.
func HubKeyFor(a, b poker.Card, isSB bool) HubKey {
	bucket := poker.BucketHole(a, b)
	return HubKey{LowRank: bucket.Low, HighRank: bucket.High, Suited: bucket.Suited, IsSB: isSB}
}

// Bucket returns the hand-bucket half of the key.
func (k HubKey) Bucket() poker.HoleBucket {
	return poker.HoleBucket{Low: k.LowRank, High: k.HighRank, Suited: k.Suited}
}

// FileName is the blueprint file this branch persists to, e.g. "9As_sb.bin"
// for nine-ace suited on the small blind.
func (k HubKey) FileName() string {
	suited := "o"
	if k.Suited {
		suited = "s"
	}
	position := "bb"
	if k.IsSB {
		position = "sb"
	}
	return fmt.Sprintf("%s%s%s_%s.bin", k.LowRank, k.HighRank, suited, position)
}

func (k HubKey) String() string {
	return k.FileName()[:len(k.FileName())-4]
}

// AllHubKeys enumerates every branch key: 13 pocket pairs plus 78 suited and
// 78 offsuit combinations, each on both sides of the blinds.
func AllHubKeys() []HubKey {
	keys := make([]HubKey, 0, 338)
	for _, isSB := range []bool{true, false} {
		for low := poker.Two; low <= poker.Ace; low++ {
			keys = append(keys, HubKey{LowRank: low, HighRank: low, IsSB: isSB})
			for high := low + 1; high <= poker.Ace; high++ {
				keys = append(keys, HubKey{LowRank: low, HighRank: high, Suited: true, IsSB: isSB})
				keys = append(keys, HubKey{LowRank: low, HighRank: high, Suited: false, IsSB: isSB})
			}
		}
	}
	return keys
}

// Branch owns every strategy record reachable from one hub key. A branch is
// only ever held by one worker at a time (the hub enforces this), so its map
// needs no locking.
type Branch struct {
	Key HubKey

	records map[string]*TrainingStrategy
}

// NewBranch creates an empty branch.
func NewBranch(key HubKey) *Branch {
	return &Branch{Key: key, records: make(map[string]*TrainingStrategy)}
}

// GetOrCreate returns the record stored under the abstraction key, creating
// it with the given action count on first visit.
func (b *Branch) GetOrCreate(key []byte, actions int) *TrainingStrategy {
	if s, ok := b.records[string(key)]; ok {
		return s
	}
	s := NewTrainingStrategy(actions)
	b.records[string(key)] = s
	return s
}

// Lookup returns the record stored under the abstraction key, if any.
func (b *Branch) Lookup(key []byte) (*TrainingStrategy, bool) {
	s, ok := b.records[string(key)]
	return s, ok
}

// Len reports how many information sets this branch has seen.
func (b *Branch) Len() int { return len(b.records) }

// Each visits every record in the branch, in no particular order. Consumers
// that derive play-time views iterate with this rather than reaching into
// the map.
func (b *Branch) Each(fn func(key string, s *TrainingStrategy)) {
	for k, s := range b.records {
		fn(k, s)
	}
}
