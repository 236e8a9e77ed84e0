package poker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDealValidateDetectsDuplicate(t *testing.T) {
	var d Deal
	cards, err := ParseCards("As Ks Qs Js 2h 3h 4h 5h As")
	require.NoError(t, err)
	copy(d[:], cards)

	err = d.Validate()
	require.ErrorIs(t, err, ErrInvalidDeal)
}

func TestDealValidateAcceptsDistinctCards(t *testing.T) {
	var d Deal
	cards, err := ParseCards("As Ks Qs Js 2h 3h 4h 5h 6h")
	require.NoError(t, err)
	copy(d[:], cards)

	require.NoError(t, d.Validate())
	require.Equal(t, [2]Card{NewCard(Ace, Spades), NewCard(King, Spades)}, d.TraverserHole())
	require.Equal(t, [2]Card{NewCard(Queen, Spades), NewCard(Jack, Spades)}, d.OpponentHole())
	require.Len(t, d.Board(3), 3)
	require.Len(t, d.Board(5), 5)
}

func TestSortedHoleOrdersByRank(t *testing.T) {
	a := NewCard(Two, Clubs)
	b := NewCard(Ace, Spades)
	lo, hi := SortedHole(a, b)
	require.Equal(t, a, lo) // rank orders first, whatever the suits
	require.Equal(t, b, hi)

	lo2, hi2 := SortedHole(b, a)
	require.Equal(t, lo, lo2)
	require.Equal(t, hi, hi2)

	// Equal ranks fall back to the compact byte, so a pair still
	// canonicalizes to a single ordering.
	ph, ps := NewCard(Nine, Hearts), NewCard(Nine, Spades)
	lo3, hi3 := SortedHole(ph, ps)
	require.Equal(t, ps, lo3)
	require.Equal(t, ph, hi3)
}

func TestBucketHoleCombinations(t *testing.T) {
	pair := BucketHole(NewCard(Ace, Spades), NewCard(Ace, Hearts))
	require.Equal(t, 6, pair.Combinations())

	suited := BucketHole(NewCard(Ace, Spades), NewCard(King, Spades))
	require.True(t, suited.Suited)
	require.Equal(t, 4, suited.Combinations())

	offsuit := BucketHole(NewCard(Ace, Spades), NewCard(King, Hearts))
	require.False(t, offsuit.Suited)
	require.Equal(t, 12, offsuit.Combinations())
}
