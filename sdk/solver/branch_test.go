package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/limitcfr/poker"
)

func TestAllHubKeysCoversEveryBucketOnce(t *testing.T) {
	keys := AllHubKeys()
	require.Len(t, keys, 338)

	seen := make(map[HubKey]bool, len(keys))
	files := make(map[string]bool, len(keys))
	for _, k := range keys {
		require.False(t, seen[k], "duplicate key %v", k)
		seen[k] = true
		require.False(t, files[k.FileName()], "duplicate file %s", k.FileName())
		files[k.FileName()] = true

		require.LessOrEqual(t, k.LowRank, k.HighRank)
		if k.LowRank == k.HighRank {
			require.False(t, k.Suited, "pocket pairs cannot be suited")
		}
	}
}

func TestHubKeyFileName(t *testing.T) {
	k := HubKey{LowRank: poker.Nine, HighRank: poker.Ace, Suited: true, IsSB: true}
	require.Equal(t, "9As_sb.bin", k.FileName())

	k = HubKey{LowRank: poker.Two, HighRank: poker.Seven, Suited: false, IsSB: false}
	require.Equal(t, "27o_bb.bin", k.FileName())
}

func TestHubKeyForCanonicalizes(t *testing.T) {
	a := poker.NewCard(poker.Ace, poker.Spades)
	b := poker.NewCard(poker.Nine, poker.Hearts)
	require.Equal(t, HubKeyFor(a, b, true), HubKeyFor(b, a, true))

	k := HubKeyFor(a, b, true)
	require.Equal(t, poker.Nine, k.LowRank)
	require.Equal(t, poker.Ace, k.HighRank)
	require.False(t, k.Suited)
	require.True(t, k.IsSB)
}

func TestBranchGetOrCreate(t *testing.T) {
	b := NewBranch(HubKey{LowRank: poker.Ace, HighRank: poker.Ace, IsSB: true})
	key := []byte{0x01, 2, 3}

	s := b.GetOrCreate(key, 3)
	require.Equal(t, 3, s.Actions)
	require.Equal(t, 1, b.Len())

	// A second visit returns the same record, action count untouched.
	again := b.GetOrCreate(key, 2)
	require.Same(t, s, again)
	require.Equal(t, 3, again.Actions)

	_, ok := b.Lookup([]byte{0x01, 9, 9})
	require.False(t, ok)
	got, ok := b.Lookup(key)
	require.True(t, ok)
	require.Same(t, s, got)
}
