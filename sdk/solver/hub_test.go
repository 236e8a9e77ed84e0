package solver

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/lox/limitcfr/internal/randutil"
)

func newTestHub(t *testing.T, reserve, workers int) *Hub {
	t.Helper()
	hub, err := NewHub(NewBranches(), reserve, workers, randutil.New(1))
	require.NoError(t, err)
	return hub
}

func TestHubAcquireReleaseRoundTrip(t *testing.T) {
	hub := newTestHub(t, 4, 1)

	pair, err := hub.Acquire()
	require.NoError(t, err)
	require.True(t, pair.SB.Key.IsSB)
	require.False(t, pair.BB.Key.IsSB)

	require.NoError(t, hub.Release(pair))
	require.Len(t, hub.Drain(), 338)
}

func TestHubRejectsMismatchedBranchSets(t *testing.T) {
	branches := NewBranches()
	_, err := NewHub(branches[:10], 1, 1, randutil.New(1))
	require.Error(t, err)
}

func TestHubRejectsExcessiveReserve(t *testing.T) {
	_, err := NewHub(NewBranches(), 160, 12, randutil.New(1))
	require.Error(t, err)
}

// Branch ownership must be exclusive between Acquire and Release even with
// many workers hammering the hub through its refill path.
func TestHubOwnershipIsExclusive(t *testing.T) {
	hub := newTestHub(t, 8, 8)

	var mu sync.Mutex
	held := make(map[*Branch]bool)

	checkout := func(b *Branch) {
		mu.Lock()
		defer mu.Unlock()
		require.False(t, held[b], "branch %v already held", b.Key)
		held[b] = true
	}
	checkin := func(b *Branch) {
		mu.Lock()
		defer mu.Unlock()
		held[b] = false
	}

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i := 0; i < 500; i++ {
				pair, err := hub.Acquire()
				if err != nil {
					return err
				}
				checkout(pair.SB)
				checkout(pair.BB)
				checkin(pair.SB)
				checkin(pair.BB)
				if err := hub.Release(pair); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Len(t, hub.Drain(), 338)
}

// The shuffle on refill must eventually rotate every branch through a
// single worker's hands.
func TestHubCirculatesAllBranches(t *testing.T) {
	hub := newTestHub(t, 8, 1)

	seen := make(map[HubKey]bool)
	for i := 0; i < 5000 && len(seen) < 338; i++ {
		pair, err := hub.Acquire()
		require.NoError(t, err)
		seen[pair.SB.Key] = true
		seen[pair.BB.Key] = true
		require.NoError(t, hub.Release(pair))
	}
	require.Len(t, seen, 338)
}
