package poker

import "fmt"

// Deal is the ordered nine-card tuple every training iteration builds
// around: both hole-card pairs, then the five community cards in reveal
// order. Hole-card pairs are unordered semantically; callers that turn a Deal
// into a key must canonicalize each pair first (SortedHole does this).
type Deal [9]Card

// Index positions within a Deal.
const (
	DealTraverserHole0 = iota
	DealTraverserHole1
	DealOpponentHole0
	DealOpponentHole1
	DealFlop0
	DealFlop1
	DealFlop2
	DealTurn
	DealRiver
)

// Validate checks the distinctness invariant required of every Deal.
func (d Deal) Validate() error {
	var seen uint64
	for _, c := range d {
		bit := uint64(1) << uint(c)
		if seen&bit != 0 {
			return fmt.Errorf("%w: duplicate card %s", ErrInvalidDeal, c)
		}
		seen |= bit
	}
	return nil
}

// TraverserHole returns the traverser's two hole cards.
func (d Deal) TraverserHole() [2]Card { return [2]Card{d[DealTraverserHole0], d[DealTraverserHole1]} }

// OpponentHole returns the opponent's two hole cards.
func (d Deal) OpponentHole() [2]Card { return [2]Card{d[DealOpponentHole0], d[DealOpponentHole1]} }

// Board returns the community cards revealed so far, given the round's
// cards_dealt counter (0, 3, 4, or 5).
func (d Deal) Board(cardsDealt int) []Card {
	return d[DealFlop0 : DealFlop0+cardsDealt]
}

// SortedHole returns a and b ordered low rank first, breaking rank ties by
// the compact byte encoding. This is the canonicalization rule required
// before any hole pair is used to build a key: rank-major ordering is what
// keeps an offsuit hand in a single one of the 169 buckets regardless of
// which suits it was dealt in.
func SortedHole(a, b Card) (lo, hi Card) {
	if a.Rank() < b.Rank() || (a.Rank() == b.Rank() && a.Byte() <= b.Byte()) {
		return a, b
	}
	return b, a
}

// HoleBucket is the (low rank, high rank, suited) hole-card summary used as
// half of a StrategyHubKey. There are
// exactly 169 distinct buckets.
type HoleBucket struct {
	Low    Rank
	High   Rank
	Suited bool
}

// BucketHole classifies a sorted hole-card pair into its bucket.
func BucketHole(a, b Card) HoleBucket {
	lo, hi := SortedHole(a, b)
	return HoleBucket{Low: lo.Rank(), High: hi.Rank(), Suited: lo.Suit() == hi.Suit()}
}

// Combinations returns the number of concrete card combinations this bucket
// represents: 6 for a pocket pair, 4 for suited, 12 for offsuit. Used purely
// for human-facing summaries.
func (b HoleBucket) Combinations() int {
	switch {
	case b.Low == b.High:
		return 6
	case b.Suited:
		return 4
	default:
		return 12
	}
}
