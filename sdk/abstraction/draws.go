package abstraction

import "github.com/lox/limitcfr/poker"

// StraightFeatures summarises straight potential for a hole+board
// combination: the top rank of the longest run formed, bucketed into five
// coarse bands, and how many community cards are still needed to complete a
// five-card straight (0 if one is already made, capped at 2).
type StraightFeatures struct {
	TopRankBucket int
	CardsToDraw   int
}

// AnalyzeStraight computes StraightFeatures for a hole-card pair against a
// board. ok is false when the combination has no straight potential worth
// distinguishing — the longest run is shorter than three cards.
func AnalyzeStraight(hole [2]poker.Card, board []poker.Card) (StraightFeatures, bool) {
	combined := make([]poker.Card, 0, len(board)+2)
	combined = append(combined, board...)
	combined = append(combined, hole[0], hole[1])

	run, topSlot := longestRunWithTop(combined)
	if run < 3 {
		return StraightFeatures{}, false
	}
	toDraw := 5 - run
	if toDraw < 0 {
		toDraw = 0
	}
	return StraightFeatures{
		TopRankBucket: topSlot / 3, // five bands across the 0..13 track
		CardsToDraw:   toDraw,
	}, true
}

// longestRunWithTop is maxConsecutiveRun but also reports the top slot index
// of the best run, used to bucket where the straight potential sits.
func longestRunWithTop(cards []poker.Card) (length, topSlot int) {
	var present [14]bool
	for _, c := range cards {
		r := c.Rank()
		present[int(r)+1] = true
		if r == poker.Ace {
			present[0] = true
		}
	}
	bestLen, bestTop := 0, 0
	run, runTop := 0, 0
	for i, p := range present {
		if p {
			run++
			runTop = i
			if run > bestLen {
				bestLen = run
				bestTop = runTop
			}
		} else {
			run = 0
		}
	}
	return bestLen, bestTop
}

// FlushFeatures summarises flush potential: the top card of the most common
// suit among hole+board, whether that card belongs to the actor, and how
// many more cards of that suit are needed to complete a flush.
type FlushFeatures struct {
	TopSuitTopRank        poker.Rank
	MatchesPlayerHighCard bool
	CardsToDraw           int
}

// AnalyzeFlush computes FlushFeatures for a hole-card pair against a board.
// ok is false when no suit reaches three cards — flushes more than two cards
// away are noise, not a draw.
func AnalyzeFlush(hole [2]poker.Card, board []poker.Card) (FlushFeatures, bool) {
	combined := make([]poker.Card, 0, len(board)+2)
	combined = append(combined, board...)
	combined = append(combined, hole[0], hole[1])

	var counts [4]int
	var topRank [4]poker.Rank
	var topCard [4]poker.Card
	for _, c := range combined {
		s := c.Suit()
		counts[s]++
		if counts[s] == 1 || c.Rank() > topRank[s] {
			topRank[s] = c.Rank()
			topCard[s] = c
		}
	}

	topSuit := poker.Suit(0)
	for s := poker.Suit(1); s < 4; s++ {
		if counts[s] > counts[topSuit] {
			topSuit = s
		}
	}
	if counts[topSuit] < 3 {
		return FlushFeatures{}, false
	}

	toDraw := 5 - counts[topSuit]
	if toDraw < 0 {
		toDraw = 0
	}

	return FlushFeatures{
		TopSuitTopRank:        topRank[topSuit],
		MatchesPlayerHighCard: topCard[topSuit] == hole[0] || topCard[topSuit] == hole[1],
		CardsToDraw:           toDraw,
	}, true
}
