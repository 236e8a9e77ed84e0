package main

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/lox/limitcfr/sdk/solver"
)

type TrainCmd struct {
	Config     string `help:"Path to an optional HCL config file" default:"limitcfr.hcl"`
	Iterations int    `help:"Override the per-worker iteration count (0 keeps the config value)" default:"0"`
	Workers    int    `help:"Override the worker count (0 keeps the config value)" default:"0"`
	Blueprint  string `help:"Override the blueprint directory"`
	Seed       int64  `help:"Random seed; 0 seeds from the clock" default:"0"`
}

func (cmd *TrainCmd) Run(logger *log.Logger) error {
	cfg, err := solver.LoadTrainingConfig(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Iterations > 0 {
		cfg.Iterations = cmd.Iterations
	}
	if cmd.Workers > 0 {
		cfg.Workers = cmd.Workers
	}
	if cmd.Blueprint != "" {
		cfg.BlueprintDir = cmd.Blueprint
	}
	if cmd.Seed != 0 {
		cfg.Seed = cmd.Seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	branches, err := solver.LoadBranches(cfg.BlueprintDir)
	if err != nil {
		if !errors.Is(err, solver.ErrBlueprintIO) {
			return err
		}
		logger.Warn("could not load existing blueprint, starting fresh", "error", err)
		branches = solver.NewBranches()
	}

	trainer, err := solver.NewTrainer(cfg, branches, logger)
	if err != nil {
		return err
	}
	trained, err := trainer.Run(context.Background())
	if err != nil {
		return err
	}

	if err := solver.SaveBranches(cfg.BlueprintDir, trained); err != nil {
		return err
	}
	logger.Info("blueprint written", "dir", cfg.BlueprintDir, "branches", len(trained))
	return nil
}
