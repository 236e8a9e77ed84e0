package runtime

import (
	"github.com/lox/limitcfr/poker"
	"github.com/lox/limitcfr/poker/table"
	"github.com/lox/limitcfr/sdk/abstraction"
	"github.com/lox/limitcfr/sdk/solver"
)

// PreflopEntry is one row of the human-facing preflop summary: a hand
// bucket, how it categorizes, and the blueprint's opening distribution for
// it from the small blind.
type PreflopEntry struct {
	Bucket       poker.HoleBucket
	Category     poker.HoleCardCategory
	Combinations int
	Weights      [solver.DefaultActionCount]float64
	Found        bool
}

// PreflopStrategies derives the small blind's first-action strategy for each
// of the 169 hand buckets. Buckets the blueprint never trained report
// Found=false with a uniform distribution.
func PreflopStrategies(policy *Policy) []PreflopEntry {
	entries := make([]PreflopEntry, 0, 169)
	for _, hubKey := range solver.AllHubKeys() {
		if !hubKey.IsSB {
			continue
		}

		hole := canonicalHole(hubKey)
		deal := fillDeal(hole)
		enc := abstraction.NewEncoder(deal)
		key := enc.Key(abstraction.SeatTraverser, 0, table.SmallBlind, 0, true)

		weights, found := policy.Weights(hubKey, key, solver.DefaultActionCount)
		entries = append(entries, PreflopEntry{
			Bucket:       hubKey.Bucket(),
			Category:     poker.CategorizeHoleCards(hole[0], hole[1]),
			Combinations: hubKey.Bucket().Combinations(),
			Weights:      weights,
			Found:        found,
		})
	}
	return entries
}

// canonicalHole picks the representative cards for a bucket: spades, or
// spades plus clubs when offsuit.
func canonicalHole(key solver.HubKey) [2]poker.Card {
	low := poker.NewCard(key.LowRank, poker.Spades)
	high := poker.NewCard(key.HighRank, poker.Spades)
	if !key.Suited {
		high = poker.NewCard(key.HighRank, poker.Clubs)
	}
	return [2]poker.Card{low, high}
}

// fillDeal pads a hole pair out to a full nine-card deal with arbitrary
// distinct cards. Only the preflop features of the traverser seat are ever
// read from the result, and those depend on the hole cards alone.
func fillDeal(hole [2]poker.Card) poker.Deal {
	var deal poker.Deal
	deal[poker.DealTraverserHole0] = hole[0]
	deal[poker.DealTraverserHole1] = hole[1]

	next := 2
	for c := poker.Card(0); c < 52 && next < 9; c++ {
		if c != hole[0] && c != hole[1] {
			deal[next] = c
			next++
		}
	}
	return deal
}
