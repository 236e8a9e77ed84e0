package solver

import (
	rand "math/rand/v2"

	"github.com/lox/limitcfr/poker"
)

// sampleHoleCards draws a concrete four-card hole configuration consistent
// with both bucket keys: the small blind's cards are pinned to a canonical
// suit assignment (spades, or spades+clubs when offsuit), and the big
// blind's suits are drawn uniformly over every assignment that matches its
// bucket without colliding with the small blind's cards. Returns
// [sb0, sb1, bb0, bb1].
//
// Both keys describe rank buckets, so a valid assignment always exists; an
// empty candidate set can only mean a programming error and panics.
func sampleHoleCards(rng *rand.Rand, sbKey, bbKey HubKey) [4]poker.Card {
	sb0 := poker.NewCard(sbKey.LowRank, poker.Spades)
	var sb1 poker.Card
	if sbKey.Suited {
		sb1 = poker.NewCard(sbKey.HighRank, poker.Spades)
	} else {
		sb1 = poker.NewCard(sbKey.HighRank, poker.Clubs)
	}

	conflicts := func(c poker.Card) bool { return c == sb0 || c == sb1 }

	var candidates [][2]poker.Card
	if bbKey.Suited {
		for suit := poker.Suit(0); suit < 4; suit++ {
			lo := poker.NewCard(bbKey.LowRank, suit)
			hi := poker.NewCard(bbKey.HighRank, suit)
			if !conflicts(lo) && !conflicts(hi) {
				candidates = append(candidates, [2]poker.Card{lo, hi})
			}
		}
	} else {
		for loSuit := poker.Suit(0); loSuit < 4; loSuit++ {
			for hiSuit := poker.Suit(0); hiSuit < 4; hiSuit++ {
				if loSuit == hiSuit {
					continue
				}
				lo := poker.NewCard(bbKey.LowRank, loSuit)
				hi := poker.NewCard(bbKey.HighRank, hiSuit)
				if lo == hi || conflicts(lo) || conflicts(hi) {
					continue
				}
				candidates = append(candidates, [2]poker.Card{lo, hi})
			}
		}
	}
	if len(candidates) == 0 {
		panic("solver: no hole-card assignment satisfies both buckets")
	}

	bb := candidates[rng.IntN(len(candidates))]
	return [4]poker.Card{sb0, sb1, bb[0], bb[1]}
}

// sampleDeal completes a nine-card deal around the four hole cards: the
// traverser's pair goes first, then the opponent's, then a uniformly drawn
// five-card board.
func sampleDeal(rng *rand.Rand, traverserHole, opponentHole [2]poker.Card) poker.Deal {
	board := poker.RandomCards(rng, 5,
		traverserHole[0], traverserHole[1], opponentHole[0], opponentHole[1])

	var deal poker.Deal
	deal[poker.DealTraverserHole0] = traverserHole[0]
	deal[poker.DealTraverserHole1] = traverserHole[1]
	deal[poker.DealOpponentHole0] = opponentHole[0]
	deal[poker.DealOpponentHole1] = opponentHole[1]
	copy(deal[poker.DealFlop0:], board)
	return deal
}
