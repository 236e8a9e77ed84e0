package eval

import (
	"sort"

	"github.com/lox/limitcfr/poker"
)

// handPattern is the rank-multiset shape of a 5-card hand. classifyPattern
// tests the most specific shape first, so the first match wins when more
// than one applies (four of a kind beats a full house's triple, etc).
type handPattern int

const (
	patternNone handPattern = iota
	patternPair
	patternTwoPair
	patternThreeOfAKind
	patternFullHouse
	patternFourOfAKind
)

// rankCounts tallies how many of each rank appear among the five cards.
func rankCounts(cards [5]poker.Card) [13]int {
	var counts [13]int
	for _, c := range cards {
		counts[c.Rank()]++
	}
	return counts
}

// classifyPattern looks only at the multiplicities of ranks present,
// highest-count pattern first, and
// reports the ranks carrying each multiplicity (both ranks for two pair,
// ordered bigger pair first).
func classifyPattern(counts [13]int) (pattern handPattern, hi, lo poker.Rank) {
	var pairs, trips []poker.Rank
	var quad poker.Rank
	hasQuad := false
	for r := 12; r >= 0; r-- {
		switch counts[r] {
		case 4:
			quad = poker.Rank(r)
			hasQuad = true
		case 3:
			trips = append(trips, poker.Rank(r))
		case 2:
			pairs = append(pairs, poker.Rank(r))
		}
	}

	switch {
	case hasQuad:
		return patternFourOfAKind, quad, 0
	case len(trips) == 1 && len(pairs) >= 1:
		return patternFullHouse, trips[0], pairs[0]
	case len(trips) == 2:
		// Unreachable with five cards; classified anyway so the switch is
		// total over multiplicity shapes.
		return patternFullHouse, trips[0], trips[1]
	case len(trips) == 1:
		return patternThreeOfAKind, trips[0], 0
	case len(pairs) >= 2:
		return patternTwoPair, pairs[0], pairs[1]
	case len(pairs) == 1:
		return patternPair, pairs[0], 0
	default:
		return patternNone, 0, 0
	}
}

// kickerProduct is the prime product of every card whose rank is not one of
// the pattern's repeated ranks, used as the low bits of a tiebreak score.
func kickerProduct(cards [5]poker.Card, exclude ...poker.Rank) uint32 {
	isExcluded := func(r poker.Rank) bool {
		for _, e := range exclude {
			if r == e {
				return true
			}
		}
		return false
	}
	product := uint32(1)
	for _, c := range cards {
		if !isExcluded(c.Rank()) {
			product *= c.Rank().Prime()
		}
	}
	return product
}

// tiebreakScore packs a pattern's repeated rank(s) into the high bits and
// the kicker prime product into the low bits, and hands are sorted ascending
// by this score. The repeated ranks order hands by strength; among hands
// sharing them, a single kicker also orders by strength, but with two or
// three kickers the prime product does not follow card-by-card kicker
// comparison (K-3-2 scores below Q-J-T).
func tiebreakScore(pattern handPattern, hi, lo poker.Rank, cards [5]poker.Card) uint32 {
	switch pattern {
	case patternFourOfAKind, patternThreeOfAKind, patternPair:
		return uint32(hi)<<16 | kickerProduct(cards, hi)
	case patternTwoPair, patternFullHouse:
		return uint32(hi)<<24 | uint32(lo)<<16 | kickerProduct(cards, hi, lo)
	default:
		return 0
	}
}

// buildRemainingTable fills T_remaining: every 5-card hand containing at
// least one repeated rank (pair, two pair, trips, full house, quads — a hand
// with a repeated rank can never be a flush, since a suit can't hold two
// cards of the same rank) is classified, scored, grouped by pattern, and
// assigned consecutive ranks within its offset range.
func buildRemainingTable() []uint16 {
	table := make([]uint16, remainingLookupSize)

	type entry struct {
		product uint64
		score   uint32
	}
	buckets := map[handPattern][]entry{}

	forEachFiveCardHand(func(cards [5]poker.Card) {
		counts := rankCounts(cards)
		pattern, hi, lo := classifyPattern(counts)
		if pattern == patternNone {
			return
		}
		product := primeProduct(cards)
		score := tiebreakScore(pattern, hi, lo, cards)
		buckets[pattern] = append(buckets[pattern], entry{product: product, score: score})
	})

	assign := func(pattern handPattern, offset int) {
		entries := buckets[pattern]
		sort.Slice(entries, func(i, j int) bool { return entries[i].score < entries[j].score })
		seen := map[uint64]bool{}
		rank := offset
		for _, e := range entries {
			if seen[e.product] {
				continue
			}
			seen[e.product] = true
			table[e.product] = uint16(rank)
			rank++
		}
	}

	assign(patternPair, PairLo)
	assign(patternTwoPair, TwoPairLo)
	assign(patternThreeOfAKind, ThreeOfAKindLo)
	assign(patternFullHouse, FullHouseLo)
	assign(patternFourOfAKind, FourOfAKindLo)

	return table
}

// forEachFiveCardHand calls fn once for every one of the 2,598,960 distinct
// 5-card hands drawable from the 52-card deck.
func forEachFiveCardHand(fn func(cards [5]poker.Card)) {
	for a := 0; a < 52; a++ {
		for b := a + 1; b < 52; b++ {
			for c := b + 1; c < 52; c++ {
				for d := c + 1; d < 52; d++ {
					for e := d + 1; e < 52; e++ {
						fn([5]poker.Card{
							poker.Card(a), poker.Card(b), poker.Card(c), poker.Card(d), poker.Card(e),
						})
					}
				}
			}
		}
	}
}
