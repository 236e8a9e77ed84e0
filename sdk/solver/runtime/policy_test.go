package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/limitcfr/poker"
	"github.com/lox/limitcfr/sdk/solver"
)

func TestPolicyFromBranchesNormalizes(t *testing.T) {
	branches := solver.NewBranches()
	key := branches[0].Key
	record := branches[0].GetOrCreate([]byte{0x01, 5, 6}, 3)
	record.StrategySum = [solver.DefaultActionCount]float64{1, 1, 2}

	policy := PolicyFromBranches(branches)

	s, ok := policy.Strategy(key, []byte{0x01, 5, 6})
	require.True(t, ok)
	require.InDelta(t, 0.25, s.Probabilities[0], 1e-12)
	require.InDelta(t, 0.25, s.Probabilities[1], 1e-12)
	require.InDelta(t, 0.5, s.Probabilities[2], 1e-12)
}

func TestPolicyWeightsFallBackToUniform(t *testing.T) {
	policy := PolicyFromBranches(solver.NewBranches())

	weights, found := policy.Weights(solver.AllHubKeys()[0], []byte{0x01, 9, 9}, 2)
	require.False(t, found)
	require.InDelta(t, 0.5, weights[0], 1e-12)
	require.InDelta(t, 0.5, weights[1], 1e-12)
	require.Zero(t, weights[2])
}

func TestLoadPolicyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	branches := solver.NewBranches()
	record := branches[3].GetOrCreate([]byte{0x01, 2, 2}, 2)
	record.StrategySum = [solver.DefaultActionCount]float64{3, 1, 0}
	require.NoError(t, solver.SaveBranches(dir, branches))

	policy, err := LoadPolicy(dir)
	require.NoError(t, err)

	s, ok := policy.Strategy(branches[3].Key, []byte{0x01, 2, 2})
	require.True(t, ok)
	require.InDelta(t, 0.75, s.Probabilities[0], 1e-12)
	require.InDelta(t, 0.25, s.Probabilities[1], 1e-12)
}

func TestPreflopStrategiesCoverEveryBucket(t *testing.T) {
	policy := PolicyFromBranches(solver.NewBranches())
	entries := PreflopStrategies(policy)
	require.Len(t, entries, 169)

	seen := map[poker.HoleBucket]bool{}
	total := 0
	for _, e := range entries {
		require.False(t, seen[e.Bucket], "duplicate bucket %v", e.Bucket)
		seen[e.Bucket] = true
		require.False(t, e.Found, "empty store cannot have trained entries")
		total += e.Combinations
	}
	// Every concrete two-card combination accounted for: C(52,2).
	require.Equal(t, 1326, total)
}
