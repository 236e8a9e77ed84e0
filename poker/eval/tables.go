// Package eval builds the three perfect-hash-style lookup tables that make
// five-card hand ranking an O(1) operation, and exposes the 5/7/9-card
// ranking built on top of them.
//
// The tables are a process-wide immutable resource: Init (or the first call
// to Evaluate5/7/9) builds them once behind a sync.Once and every later
// lookup reads the resulting slices without synchronization.
package eval

import (
	"errors"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lox/limitcfr/poker"
)

// ErrTableCorruption indicates a lookup-table sanity check failed. Per the
// error handling policy this is fatal: it can only mean a bug in table
// construction, never bad input, so callers are expected to let it surface
// as a panic rather than handle it.
var ErrTableCorruption = errors.New("eval: table corruption")

// Rank boundaries. These are the authoritative offsets; the table
// build assigns every hand a rank inside exactly one of these ranges.
const (
	HighCardLo      = 1
	HighCardHi      = 1277
	PairLo          = 1278
	PairHi          = 4137
	TwoPairLo       = 4138
	TwoPairHi       = 4995
	ThreeOfAKindLo  = 4996
	ThreeOfAKindHi  = 5853
	StraightLo      = 5854
	StraightHi      = 5863
	FlushLo         = 5864
	FlushHi         = 7140
	FullHouseLo     = 7141
	FullHouseHi     = 7296
	FourOfAKindLo   = 7297
	FourOfAKindHi   = 7452
	StraightFlushLo = 7453
	StraightFlushHi = 7462

	// MaxRank is the best possible hand score (royal flush).
	MaxRank = StraightFlushHi
)

// bitRepSize is the size of the rank-mask index space: a 13-bit mask has
// 8192 possible values (index 0..8191).
const bitRepSize = 1 << 13

// remainingLookupSize is one past the highest possible prime product of a
// five-card hand with a repeated rank: four aces (41^4) times the highest
// possible kicker (king, 37).
const remainingLookupSize = 104553157 + 1

var (
	tFlush     [bitRepSize]uint16
	tUnique    [bitRepSize]uint16
	tRemaining []uint16 // allocated lazily: remainingLookupSize entries, ~209MB

	buildOnce sync.Once
	buildErr  error
)

// Init builds all three tables if they have not been built yet. It is safe
// to call concurrently and from multiple places; the build itself happens
// exactly once. Callers that want to control when the (roughly one second,
// ~210MB) build cost is paid should call Init explicitly during startup;
// Evaluate5/7/9 call it lazily otherwise.
func Init() error {
	buildOnce.Do(func() {
		var g errgroup.Group
		g.Go(func() error {
			buildFivesTables()
			return nil
		})
		g.Go(func() error {
			tRemaining = buildRemainingTable()
			return nil
		})
		buildErr = g.Wait()
		if buildErr == nil {
			buildErr = sanityCheck()
		}
	})
	return buildErr
}

func mustInit() {
	if err := Init(); err != nil {
		panic(err)
	}
}

// sanityCheck verifies the bijection property: the three
// tables together must produce exactly 7462 distinct, non-overlapping
// ranks. A failure here is an ErrTableCorruption, fatal per the error
// handling policy.
func sanityCheck() error {
	seen := make([]bool, MaxRank+1)
	count := 0
	check := func(v uint16) error {
		if v == 0 {
			return nil
		}
		if int(v) > MaxRank || seen[v] {
			return ErrTableCorruption
		}
		seen[v] = true
		count++
		return nil
	}
	for _, v := range tFlush {
		if err := check(v); err != nil {
			return err
		}
	}
	for _, v := range tUnique {
		if err := check(v); err != nil {
			return err
		}
	}
	for _, v := range tRemaining {
		if err := check(v); err != nil {
			return err
		}
	}
	if count != MaxRank {
		return ErrTableCorruption
	}
	return nil
}

// rankMask is the 13-bit index shared by T_flush and T_unique: the OR of the
// bit+prime words' rank bits, shifted down to bits 0..12.
func rankMask(cards [5]poker.Card) uint32 {
	var or uint32
	for _, c := range cards {
		or |= c.BitPrime()
	}
	return or >> 12
}

// isFlush reports whether all five cards share a suit, using the AND of
// their bit+prime words' suit nibble.
func isFlush(cards [5]poker.Card) bool {
	and := cards[0].BitPrime()
	for _, c := range cards[1:] {
		and &= c.BitPrime()
	}
	return and&0x0F00 != 0
}

// primeProduct is the index into T_remaining: the product of the five
// ranks' prime encodings, order-independent by construction.
func primeProduct(cards [5]poker.Card) uint64 {
	p := uint64(1)
	for _, c := range cards {
		p *= uint64(c.Rank().Prime())
	}
	return p
}

// buildFivesTables fills T_flush and T_unique. Both share the same
// underlying enumeration: every combination of 5 distinct ranks out of 13
// either forms one of the 10 possible straights (including the wheel) or one
// of the 1277 non-straight "high card" rank patterns. T_unique assigns the
// non-straight patterns ranks [1,1277] and straights [5854,5863]; T_flush
// assigns the same patterns (now known to all share a suit) [5864,7140] and
// [7453,7462] respectively.
func buildFivesTables() {
	type scored struct {
		mask  uint32
		score int
	}
	var highCards, straights []scored

	for _, combo := range combinations(13, 5) {
		var mask uint32
		for _, r := range combo {
			mask |= 1 << uint(r)
		}
		if straightScore, ok := straightScore(combo); ok {
			straights = append(straights, scored{mask: mask, score: straightScore})
		} else {
			// The raw rank mask sorts a non-straight 5-rank combination by
			// strength directly: comparing the integers formed by five set
			// bits among thirteen positions is equivalent to comparing the
			// hands card-by-card from the highest rank down.
			highCards = append(highCards, scored{mask: mask, score: int(mask)})
		}
	}

	sort.Slice(highCards, func(i, j int) bool { return highCards[i].score < highCards[j].score })
	sort.Slice(straights, func(i, j int) bool { return straights[i].score < straights[j].score })

	for i, s := range highCards {
		tUnique[s.mask] = uint16(HighCardLo + i)
		tFlush[s.mask] = uint16(FlushLo + i)
	}
	for i, s := range straights {
		tUnique[s.mask] = uint16(StraightLo + i)
		tFlush[s.mask] = uint16(StraightFlushLo + i)
	}
}

// straightScore reports whether the five distinct ranks form a straight and,
// if so, a score that sorts straights from weakest (the wheel) to strongest
// (Broadway). The score is the product of the
// rank indices plus one, with the ace-low wheel forced to score 0 and sort
// below everything else: the wheel and 2-3-4-5-6 both contain the Two (rank
// index 0), so both products are zero and would otherwise tie.
func straightScore(ranks [5]int) (int, bool) {
	sorted := ranks
	sort.Ints(sorted[:])

	isWheel := sorted == [5]int{0, 1, 2, 3, int(poker.Ace)}
	isSequential := true
	for i := 1; i < 5; i++ {
		if sorted[i] != sorted[i-1]+1 {
			isSequential = false
			break
		}
	}
	if !isWheel && !isSequential {
		return 0, false
	}
	if isWheel {
		return 0, true
	}
	product := 1
	for _, r := range sorted {
		product *= r
	}
	return product + 1, true
}

// combinations enumerates every k-combination of {0,...,n-1}.
func combinations(n, k int) [][5]int {
	var out [][5]int
	var combo [5]int
	var recurse func(start, depth int)
	recurse = func(start, depth int) {
		if depth == k {
			out = append(out, combo)
			return
		}
		for i := start; i < n; i++ {
			combo[depth] = i
			recurse(i+1, depth+1)
		}
	}
	recurse(0, 0)
	return out
}
