package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/limitcfr/internal/randutil"
	"github.com/lox/limitcfr/poker"
)

func TestSampleHoleCardsMatchesBothBuckets(t *testing.T) {
	rng := randutil.New(3)

	for _, sbKey := range AllHubKeys()[:20] {
		for _, bbKey := range AllHubKeys()[169:189] {
			for i := 0; i < 10; i++ {
				cards := sampleHoleCards(rng, sbKey, bbKey)

				require.Equal(t, sbKey.Bucket(), poker.BucketHole(cards[0], cards[1]))
				require.Equal(t, bbKey.Bucket(), poker.BucketHole(cards[2], cards[3]))

				seen := map[poker.Card]bool{}
				for _, c := range cards {
					require.False(t, seen[c], "duplicate card %s", c)
					seen[c] = true
				}
			}
		}
	}
}

// The tightest case: both players bucketed to the same pocket pair leaves
// only two cards of that rank for the big blind.
func TestSampleHoleCardsSharedPocketPair(t *testing.T) {
	rng := randutil.New(3)
	key := HubKey{LowRank: poker.Ace, HighRank: poker.Ace, IsSB: true}
	bbKey := key
	bbKey.IsSB = false

	for i := 0; i < 20; i++ {
		cards := sampleHoleCards(rng, key, bbKey)
		for _, c := range cards {
			require.Equal(t, poker.Ace, c.Rank())
		}
		require.NotEqual(t, cards[2].Suit(), cards[3].Suit())
	}
}

func TestSampleDealLayout(t *testing.T) {
	rng := randutil.New(3)
	trav := [2]poker.Card{poker.NewCard(poker.Ace, poker.Spades), poker.NewCard(poker.King, poker.Spades)}
	opp := [2]poker.Card{poker.NewCard(poker.Two, poker.Hearts), poker.NewCard(poker.Seven, poker.Clubs)}

	deal := sampleDeal(rng, trav, opp)
	require.NoError(t, deal.Validate())
	require.Equal(t, trav, deal.TraverserHole())
	require.Equal(t, opp, deal.OpponentHole())
	require.Len(t, deal.Board(5), 5)
}
