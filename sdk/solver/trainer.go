package solver

import (
	"context"
	rand "math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/limitcfr/internal/randutil"
	"github.com/lox/limitcfr/poker"
	"github.com/lox/limitcfr/poker/eval"
	"github.com/lox/limitcfr/poker/table"
	"github.com/lox/limitcfr/sdk/abstraction"
)

// Trainer drives the worker pool through the configured number of DCFR
// iterations over a set of branches, typically the full 338-branch store.
type Trainer struct {
	cfg      TrainingConfig
	branches []*Branch
	logger   *log.Logger
	clock    quartz.Clock

	completed atomic.Int64
}

// NewTrainer validates the configuration and prepares a run over the given
// branches. The branches are handed to the hub on Run and returned, trained,
// when it finishes.
func NewTrainer(cfg TrainingConfig, branches []*Branch, logger *log.Logger) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Trainer{
		cfg:      cfg,
		branches: branches,
		logger:   logger,
		clock:    quartz.NewReal(),
	}, nil
}

// SetClock replaces the wall clock backing the progress ticker. Tests
// install a quartz.Mock so they can step virtual time.
func (t *Trainer) SetClock(clock quartz.Clock) { t.clock = clock }

// Iterations reports how many iterations have completed across all workers.
func (t *Trainer) Iterations() int64 { return t.completed.Load() }

// Run builds the evaluator tables, spins up the workers, and blocks until
// every worker has finished its iteration budget (or the context is
// cancelled). It returns every branch, trained, for serialization.
func (t *Trainer) Run(ctx context.Context) ([]*Branch, error) {
	if err := eval.Init(); err != nil {
		return nil, err
	}

	seed := t.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	hub, err := NewHub(t.branches, t.cfg.QueueReserve, t.cfg.Workers, randutil.New(seed))
	if err != nil {
		return nil, err
	}

	t.logger.Info("training started",
		"workers", t.cfg.Workers,
		"iterations", t.cfg.Iterations,
		"branches", len(t.branches),
		"seed", seed)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if t.cfg.ProgressSeconds > 0 {
		interval := time.Duration(t.cfg.ProgressSeconds) * time.Second
		started := time.Now()
		t.clock.TickerFunc(ctx, interval, func() error {
			done := t.completed.Load()
			t.logger.Info("training progress",
				"iterations", done,
				"per_second", float64(done)/time.Since(started).Seconds())
			return nil
		}, "progress")
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < t.cfg.Workers; w++ {
		workerSeed := randutil.WorkerSeed(seed, w)
		g.Go(func() error {
			return t.worker(ctx, hub, workerSeed)
		})
	}
	runErr := g.Wait()
	cancel()

	branches := hub.Drain()
	if runErr != nil {
		return branches, runErr
	}

	records := 0
	for _, b := range branches {
		records += b.Len()
	}
	t.logger.Info("training complete",
		"iterations", t.completed.Load(),
		"information_sets", records)
	return branches, nil
}

func (t *Trainer) worker(ctx context.Context, hub *Hub, seed int64) error {
	rng := randutil.New(seed)
	fast := NewPCG32(seed)

	for i := 1; i <= t.cfg.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		pair, err := hub.Acquire()
		if err != nil {
			return err
		}
		for n := 0; n < t.cfg.PairIterations; n++ {
			t.runPair(pair, i, rng, fast)
		}
		if err := hub.Release(pair); err != nil {
			return err
		}
		t.completed.Add(1)
	}
	return nil
}

// runPair samples a deal consistent with the pair's buckets and traverses it
// from both seats, so neither position's records accumulate a positional
// bias.
func (t *Trainer) runPair(pair Pair, iteration int, rng *rand.Rand, fast *PCG32) {
	holes := sampleHoleCards(rng, pair.SB.Key, pair.BB.Key)
	sbHole := [2]poker.Card{holes[0], holes[1]}
	bbHole := [2]poker.Card{holes[2], holes[3]}
	sbDeal := sampleDeal(rng, sbHole, bbHole)

	for _, sbPlayer := range []table.Player{table.Traverser, table.Opponent} {
		deal := sbDeal
		if sbPlayer == table.Opponent {
			deal[poker.DealTraverserHole0], deal[poker.DealTraverserHole1] = bbHole[0], bbHole[1]
			deal[poker.DealOpponentHole0], deal[poker.DealOpponentHole1] = sbHole[0], sbHole[1]
		}
		state, err := table.New(deal, sbPlayer)
		if err != nil {
			// The sampler deals from a deck with the holes excluded, so a
			// duplicate here is a bug, not bad input.
			panic(err)
		}
		runTraversal(state, abstraction.NewEncoder(deal), pair, iteration, fast)
	}
}
