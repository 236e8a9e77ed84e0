package abstraction

import "github.com/lox/limitcfr/poker"

// ConnectedCards captures the coarse hand-strength signal that needs a hole
// card to exist: the pattern the actor's two hole cards form together with
// the board, and where that made hand sits relative to the board's other
// ranks. A board rank only counts toward the pattern when the actor actually
// holds a card of that rank — a pair sitting wholly on the board is board
// texture, not connection, and is already described by BoardAbstraction.
type ConnectedCards struct {
	Pattern HandPattern
	// OrderScore positions the made hand against the board: 0 means the
	// connecting rank is the top rank on the board (top pair/set), 1 the
	// second, 2 third or lower. Meaningful for Pair, TwoPair and
	// ThreeOfAKind; zero otherwise.
	OrderScore uint8
	// HighCardIsHouse reports, for a full house only, whether the pair half
	// outranks the trips half.
	HighCardIsHouse bool
}

// AnalyzeConnection classifies how a hole-card pair connects with the board.
// Preflop (empty board) a pocket pair still registers as PatternPair with
// order score 0.
func AnalyzeConnection(hole [2]poker.Card, board []poker.Card) ConnectedCards {
	var counts [13]int
	counts[hole[0].Rank()]++
	counts[hole[1].Rank()]++
	for _, c := range board {
		if counts[c.Rank()] > 0 {
			counts[c.Rank()]++
		}
	}

	var pairs, trips, quads int
	pairRank, tripsRank := -1, -1
	for r := 12; r >= 0; r-- {
		switch counts[r] {
		case 2:
			pairs++
			if pairRank < 0 {
				pairRank = r
			}
		case 3:
			trips++
			if tripsRank < 0 {
				tripsRank = r
			}
		case 4:
			quads++
		}
	}

	switch {
	case quads > 0:
		// Holding part of quads needs no order score: whether the actor
		// started with a pocket pair is already in the hole-card bytes.
		return ConnectedCards{Pattern: PatternFourOfAKind}
	case trips > 0 && pairs > 0:
		return ConnectedCards{
			Pattern:         PatternFullHouse,
			HighCardIsHouse: pairRank > tripsRank,
		}
	case trips > 0:
		return ConnectedCards{
			Pattern:    PatternThreeOfAKind,
			OrderScore: orderScore(tripsRank, board),
		}
	case pairs > 1:
		return ConnectedCards{
			Pattern:    PatternTwoPair,
			OrderScore: orderScore(pairRank, board),
		}
	case pairs == 1:
		return ConnectedCards{
			Pattern:    PatternPair,
			OrderScore: orderScore(pairRank, board),
		}
	default:
		return ConnectedCards{Pattern: PatternNone}
	}
}

// orderScore counts the distinct board ranks strictly above the made rank,
// capped at 2 ("third or more").
func orderScore(madeRank int, board []poker.Card) uint8 {
	var seen [13]bool
	above := 0
	for _, c := range board {
		r := int(c.Rank())
		if r > madeRank && !seen[r] {
			seen[r] = true
			above++
		}
	}
	if above > 2 {
		above = 2
	}
	return uint8(above)
}
