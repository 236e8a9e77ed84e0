package eval

import (
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/limitcfr/poker"
)

func mustCards(t *testing.T, s string) []poker.Card {
	t.Helper()
	cards, err := poker.ParseCards(s)
	require.NoError(t, err)
	return cards
}

func TestInitBuildsBijectiveTables(t *testing.T) {
	require.NoError(t, Init())
}

func TestEvaluate5RoyalFlush(t *testing.T) {
	cards := mustCards(t, "As Ks Qs Js Ts")
	require.Equal(t, MaxRank, Evaluate5([5]poker.Card{cards[0], cards[1], cards[2], cards[3], cards[4]}))
}

func TestEvaluate5QuadAces(t *testing.T) {
	// Quad aces span the top twelve four-of-a-kind slots, ordered by kicker:
	// the deuce kicker is the worst of them, the king kicker the best.
	low := mustCards(t, "As Ah Ad Ac 2s")
	require.Equal(t, 7441, Evaluate5([5]poker.Card{low[0], low[1], low[2], low[3], low[4]}))

	high := mustCards(t, "As Ah Ad Ac Ks")
	require.Equal(t, FourOfAKindHi, Evaluate5([5]poker.Card{high[0], high[1], high[2], high[3], high[4]}))
}

func TestEvaluate5SteelWheel(t *testing.T) {
	cards := mustCards(t, "As 2s 3s 4s 5s")
	score := Evaluate5([5]poker.Card{cards[0], cards[1], cards[2], cards[3], cards[4]})
	require.Equal(t, StraightFlushLo, score)
}

func TestEvaluate5RankRangesByCategory(t *testing.T) {
	tests := []struct {
		name   string
		cards  string
		lo, hi int
	}{
		{"high card", "2s 4h 7d 9c Js", HighCardLo, HighCardHi},
		{"pair", "2s 2h 7d 9c Js", PairLo, PairHi},
		{"two pair", "2s 2h 9d 9c Js", TwoPairLo, TwoPairHi},
		{"trips", "2s 2h 2d 9c Js", ThreeOfAKindLo, ThreeOfAKindHi},
		{"straight", "5s 6h 7d 8c 9s", StraightLo, StraightHi},
		{"flush", "2s 4s 7s 9s Js", FlushLo, FlushHi},
		{"full house", "2s 2h 2d 9c 9s", FullHouseLo, FullHouseHi},
		{"quads", "2s 2h 2d 2c 9s", FourOfAKindLo, FourOfAKindHi},
		{"straight flush", "5s 6s 7s 8s 9s", StraightFlushLo, StraightFlushHi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := mustCards(t, tt.cards)
			score := Evaluate5([5]poker.Card{cards[0], cards[1], cards[2], cards[3], cards[4]})
			require.GreaterOrEqual(t, score, tt.lo)
			require.LessOrEqual(t, score, tt.hi)
		})
	}
}

func TestEvaluate5PermutationInvariant(t *testing.T) {
	cards := mustCards(t, "As Ks Qs Js Ts")
	base := Evaluate5([5]poker.Card{cards[0], cards[1], cards[2], cards[3], cards[4]})
	shuffled := Evaluate5([5]poker.Card{cards[4], cards[2], cards[0], cards[3], cards[1]})
	require.Equal(t, base, shuffled)
}

func TestEvaluate5Monotonicity(t *testing.T) {
	pair := mustCards(t, "2s 2h 7d 9c Js")
	twoPair := mustCards(t, "2s 2h 9d 9c Js")
	trips := mustCards(t, "2s 2h 2d 9c Js")

	pairScore := Evaluate5([5]poker.Card{pair[0], pair[1], pair[2], pair[3], pair[4]})
	twoPairScore := Evaluate5([5]poker.Card{twoPair[0], twoPair[1], twoPair[2], twoPair[3], twoPair[4]})
	tripsScore := Evaluate5([5]poker.Card{trips[0], trips[1], trips[2], trips[3], trips[4]})

	require.Less(t, pairScore, twoPairScore)
	require.Less(t, twoPairScore, tripsScore)
}

func TestEvaluate9SplitPot(t *testing.T) {
	cards := mustCards(t, "Js Jc Ks Kc 2h 3d 4h 5d 6h")
	var deal poker.Deal
	copy(deal[:], cards)
	require.NoError(t, deal.Validate())

	_, ok := Evaluate9(deal)
	require.False(t, ok, "pocket jacks and pocket kings both play the board and should split")
}

func TestEvaluate9TraverserWins(t *testing.T) {
	cards := mustCards(t, "As Ad 2s 2c Ks Qs Jh 4d 9c")
	var deal poker.Deal
	copy(deal[:], cards)
	require.NoError(t, deal.Validate())

	winner, ok := Evaluate9(deal)
	require.True(t, ok)
	require.Equal(t, Traverser, winner)
}

func TestEvaluate7ShortCircuitMatchesFullScan(t *testing.T) {
	cards := mustCards(t, "As Ks Qh Jd 9s 3c 2h")
	var seven [7]poker.Card
	copy(seven[:], cards)

	full := Evaluate7(seven, -1)
	shortCircuited := Evaluate7(seven, full-1)
	require.Equal(t, full, shortCircuited)
}

// Every legal five-card hand must hit exactly one table entry: a zero lookup
// panics, so scoring a large random sample proves reachability across the
// flush, unique and repeated-rank paths.
func TestEvaluate5TotalOverRandomHands(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 17))
	for i := 0; i < 10_000; i++ {
		cards := poker.RandomCards(rng, 5)
		score := Evaluate5([5]poker.Card{cards[0], cards[1], cards[2], cards[3], cards[4]})
		require.GreaterOrEqual(t, score, HighCardLo)
		require.LessOrEqual(t, score, MaxRank)
	}
}
