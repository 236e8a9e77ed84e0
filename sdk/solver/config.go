package solver

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// EnvBlueprintDir overrides the default blueprint directory when set.
const EnvBlueprintDir = "LIMITCFR_BLUEPRINT"

// TrainingConfig carries everything the trainer needs to size a run.
type TrainingConfig struct {
	// Iterations each worker performs. Every iteration acquires a branch
	// pair, samples a deal, and traverses it once per seat.
	Iterations int `hcl:"iterations,optional"`
	// Workers is the number of OS-thread-backed goroutines.
	Workers int `hcl:"workers,optional"`
	// PairIterations is how many deals a worker plays against a pair before
	// returning it to the hub.
	PairIterations int `hcl:"pair_iterations,optional"`
	// QueueReserve is the hub's low-water mark that triggers a reshuffle.
	QueueReserve int `hcl:"queue_reserve,optional"`
	// BlueprintDir is where the strategy store persists.
	BlueprintDir string `hcl:"blueprint_dir,optional"`
	// Seed fixes the run's randomness; 0 seeds from the clock.
	Seed int64 `hcl:"seed,optional"`
	// ProgressSeconds is the interval between progress log lines; 0 disables.
	ProgressSeconds int `hcl:"progress_seconds,optional"`
}

// DefaultTrainingConfig returns the standard run shape.
func DefaultTrainingConfig() TrainingConfig {
	dir := os.Getenv(EnvBlueprintDir)
	if dir == "" {
		dir = "./blueprint/"
	}
	return TrainingConfig{
		Iterations:      1_000_000,
		Workers:         12,
		PairIterations:  1,
		QueueReserve:    8,
		BlueprintDir:    dir,
		ProgressSeconds: 30,
	}
}

// Validate rejects configurations the trainer cannot run.
func (c TrainingConfig) Validate() error {
	if c.Iterations <= 0 {
		return errors.New("iterations must be positive")
	}
	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}
	if c.PairIterations <= 0 {
		return errors.New("pair_iterations must be positive")
	}
	if c.QueueReserve < 0 {
		return errors.New("queue_reserve must not be negative")
	}
	if c.QueueReserve+c.Workers >= 169 {
		return fmt.Errorf("queue_reserve %d plus workers %d must stay below the 169 branches per position", c.QueueReserve, c.Workers)
	}
	if c.BlueprintDir == "" {
		return errors.New("blueprint_dir is required")
	}
	if c.ProgressSeconds < 0 {
		return errors.New("progress_seconds must not be negative")
	}
	return nil
}

type configFile struct {
	Training *TrainingConfig `hcl:"training,block"`
}

// LoadTrainingConfig reads an optional HCL config file. A missing file is
// not an error — defaults apply; attributes present in the file override
// their defaults field by field.
func LoadTrainingConfig(path string) (TrainingConfig, error) {
	cfg := DefaultTrainingConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc configFile
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if fc.Training != nil {
		overlay(&cfg, *fc.Training)
	}
	return cfg, cfg.Validate()
}

func overlay(dst *TrainingConfig, src TrainingConfig) {
	if src.Iterations != 0 {
		dst.Iterations = src.Iterations
	}
	if src.Workers != 0 {
		dst.Workers = src.Workers
	}
	if src.PairIterations != 0 {
		dst.PairIterations = src.PairIterations
	}
	if src.QueueReserve != 0 {
		dst.QueueReserve = src.QueueReserve
	}
	if src.BlueprintDir != "" {
		dst.BlueprintDir = src.BlueprintDir
	}
	if src.Seed != 0 {
		dst.Seed = src.Seed
	}
	if src.ProgressSeconds != 0 {
		dst.ProgressSeconds = src.ProgressSeconds
	}
}
