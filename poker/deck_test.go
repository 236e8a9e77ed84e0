package poker

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDeckHasAllFiftyTwoCards(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	d := NewDeck(rng)

	seen := make(map[Card]bool)
	for d.CardsRemaining() > 0 {
		seen[d.DealOne()] = true
	}
	require.Len(t, seen, 52)
}

func TestDeckDealReturnsNilWhenExhausted(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	d := NewDeck(rng)

	require.Len(t, d.Deal(50), 50)
	require.Nil(t, d.Deal(5))
	require.Equal(t, 2, d.CardsRemaining())
}

func TestDeckResetReshuffles(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	d := NewDeck(rng)
	d.Deal(10)
	d.Reset()
	require.Equal(t, 52, d.CardsRemaining())
}

func TestRandomCardsExcludesGivenCards(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	exclude := []Card{NewCard(Ace, Spades), NewCard(King, Spades)}

	drawn := RandomCards(rng, 5, exclude...)
	require.Len(t, drawn, 5)

	seen := make(map[Card]bool)
	for _, c := range drawn {
		require.NotContains(t, exclude, c)
		require.False(t, seen[c], "RandomCards must not repeat a card")
		seen[c] = true
	}
}

func TestRandomCardsCoversFullRangeOverManyDraws(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	seen := make(map[Card]bool)
	for i := 0; i < 200; i++ {
		for _, c := range RandomCards(rng, 2) {
			seen[c] = true
		}
	}
	require.Greater(t, len(seen), 40, "200 draws of 2 cards should see most of the deck")
}
