package solver

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
)

func smallRunConfig(dir string) TrainingConfig {
	cfg := DefaultTrainingConfig()
	cfg.Iterations = 3
	cfg.Workers = 2
	cfg.QueueReserve = 4
	cfg.Seed = 7
	cfg.BlueprintDir = dir
	cfg.ProgressSeconds = 0
	return cfg
}

func TestTrainerRunCompletesItsBudget(t *testing.T) {
	trainer, err := NewTrainer(smallRunConfig(t.TempDir()), NewBranches(), log.New(&bytes.Buffer{}))
	require.NoError(t, err)

	branches, err := trainer.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, branches, 338)
	require.EqualValues(t, 2*3, trainer.Iterations())

	records := 0
	for _, b := range branches {
		records += b.Len()
	}
	require.Positive(t, records, "a run must create strategy records")
}

// A trainer on a mock clock must finish without anyone advancing time: the
// progress ticker is observability, never a dependency of the run itself.
func TestTrainerDoesNotDependOnWallTime(t *testing.T) {
	var buf bytes.Buffer
	cfg := smallRunConfig(t.TempDir())
	cfg.ProgressSeconds = 60

	trainer, err := NewTrainer(cfg, NewBranches(), log.New(&buf))
	require.NoError(t, err)
	trainer.SetClock(quartz.NewMock(t))

	_, err = trainer.Run(context.Background())
	require.NoError(t, err)
	require.Contains(t, buf.String(), "training complete")
}

func TestTrainerRejectsInvalidConfig(t *testing.T) {
	cfg := smallRunConfig(t.TempDir())
	cfg.Workers = 0
	_, err := NewTrainer(cfg, NewBranches(), nil)
	require.Error(t, err)
}

func TestTrainerHonoursCancellation(t *testing.T) {
	cfg := smallRunConfig(t.TempDir())
	cfg.Iterations = 100_000

	trainer, err := NewTrainer(cfg, NewBranches(), log.New(&bytes.Buffer{}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = trainer.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
