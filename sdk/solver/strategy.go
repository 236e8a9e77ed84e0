// Package solver implements the external-sampling Discounted CFR training
// core: per-information-set regret tracking, the sharded strategy store that
// worker threads circulate through the hub, and the recursive traverser that
// walks the betting tree with undo-based backtracking.
package solver

import "math"

// DefaultActionCount is the widest action alphabet at any decision node.
// Records always carry three slots; nodes with two legal actions simply
// leave the third at zero.
const DefaultActionCount = 3

// Discounted CFR decay exponents (Brown & Sandholm): positive regrets decay
// by t^alpha/(t^alpha+1), negative by t^beta/(t^beta+1), and average-strategy
// contributions are weighted by (t/(t+1))^gamma.
const (
	alpha = 1.5
	beta  = 0.85
	gamma = 4.0
)

const (
	// MinSamplingIterationCutoff is the warmup horizon: before it, the
	// sampler enforces MinSamplingCutoff so every plausible action keeps
	// being explored, and strategy sums are not accumulated at all.
	MinSamplingIterationCutoff = 5000

	// MinSamplingCutoff is the per-action probability floor applied during
	// warmup to actions carrying positive regret mass.
	MinSamplingCutoff = 0.01
)

// Strategy is the narrow capability shared by the training and play-time
// views: produce an action distribution for the given iteration.
type Strategy interface {
	CurrentStrategy(iteration int) [DefaultActionCount]float64
	ActionCount() int
}

var (
	_ Strategy = (*TrainingStrategy)(nil)
	_ Strategy = PlayStrategy{}
)

// TrainingStrategy holds one information set's accumulators while training.
// It is only ever touched by the single worker holding the owning branch, so
// it carries no synchronization.
type TrainingStrategy struct {
	Actions     int
	RegretsSum  [DefaultActionCount]float64
	StrategySum [DefaultActionCount]float64
}

// NewTrainingStrategy creates an empty record for a node with the given
// number of legal actions (2 or 3).
func NewTrainingStrategy(actions int) *TrainingStrategy {
	return &TrainingStrategy{Actions: actions}
}

// ActionCount returns the number of legal actions at this record's node.
func (s *TrainingStrategy) ActionCount() int { return s.Actions }

// CurrentStrategy derives the acting distribution from accumulated regrets.
// During warmup it floors every positive-regret action at MinSamplingCutoff;
// afterwards it is plain regret matching.
func (s *TrainingStrategy) CurrentStrategy(iteration int) [DefaultActionCount]float64 {
	if iteration < MinSamplingIterationCutoff {
		return s.thresholdStrategy()
	}
	return s.matchedStrategy()
}

func (s *TrainingStrategy) matchedStrategy() [DefaultActionCount]float64 {
	var out [DefaultActionCount]float64
	sum := 0.0
	for a := 0; a < s.Actions; a++ {
		sum += math.Max(s.RegretsSum[a], 0)
	}
	if sum <= 0 {
		return s.uniform()
	}
	for a := 0; a < s.Actions; a++ {
		out[a] = math.Max(s.RegretsSum[a], 0) / sum
	}
	return out
}

// thresholdStrategy redistributes probability so that no action with
// positive regret mass falls below the sampling floor: with n0 actions at or
// below zero regret and S the positive regret mass, each floored action gets
// m = S/(1/cutoff - n0) and the normalizer becomes S + n0*m.
func (s *TrainingStrategy) thresholdStrategy() [DefaultActionCount]float64 {
	var out [DefaultActionCount]float64
	numZero := 0
	sum := 0.0
	for a := 0; a < s.Actions; a++ {
		if s.RegretsSum[a] <= 0 {
			numZero++
		} else {
			sum += s.RegretsSum[a]
		}
	}

	floor := sum / (1.0/MinSamplingCutoff - float64(numZero))
	sum += float64(numZero) * floor

	if sum <= 0 {
		return s.uniform()
	}
	for a := 0; a < s.Actions; a++ {
		out[a] = math.Max(s.RegretsSum[a], floor) / sum
	}
	return out
}

func (s *TrainingStrategy) uniform() [DefaultActionCount]float64 {
	var out [DefaultActionCount]float64
	for a := 0; a < s.Actions; a++ {
		out[a] = 1.0 / float64(s.Actions)
	}
	return out
}

// Update applies one DCFR step after the traverser measured every action's
// counterfactual utility at this node: accumulate the regret deltas, decay
// positive and negative totals at their respective rates, and (after warmup)
// fold the resulting strategy into the average with the gamma weight.
func (s *TrainingStrategy) Update(strategyUtility float64, actionUtilities [DefaultActionCount]float64, iteration int) {
	t := float64(iteration)

	posCoeff := math.Pow(t, alpha)
	posMultiplier := posCoeff / (posCoeff + 1)
	negCoeff := math.Pow(t, beta)
	negMultiplier := negCoeff / (negCoeff + 1)

	for a := 0; a < s.Actions; a++ {
		s.RegretsSum[a] += actionUtilities[a] - strategyUtility
		if s.RegretsSum[a] > 0 {
			s.RegretsSum[a] *= posMultiplier
		} else {
			s.RegretsSum[a] *= negMultiplier
		}
	}

	if iteration > MinSamplingIterationCutoff {
		s.accumulateStrategySum(t)
	}
}

func (s *TrainingStrategy) accumulateStrategySum(t float64) {
	current := s.CurrentStrategy(int(t))
	weight := math.Pow(t/(t+1), gamma)
	for a := 0; a < s.Actions; a++ {
		s.StrategySum[a] += current[a] * weight
	}
}

// PlayStrategy is the play-time view: the average strategy normalized into a
// probability vector, frozen after training.
type PlayStrategy struct {
	Actions       int
	Probabilities [DefaultActionCount]float64
}

// PlayFromTraining normalizes a training record's strategy sum. An all-zero
// sum (an information set never updated after warmup) falls back to uniform
// over its legal actions.
func PlayFromTraining(t *TrainingStrategy) PlayStrategy {
	p := PlayStrategy{Actions: t.Actions}
	sum := 0.0
	for a := 0; a < t.Actions; a++ {
		sum += t.StrategySum[a]
	}
	if sum > 0 {
		for a := 0; a < t.Actions; a++ {
			p.Probabilities[a] = t.StrategySum[a] / sum
		}
		return p
	}
	for a := 0; a < t.Actions; a++ {
		p.Probabilities[a] = 1.0 / float64(t.Actions)
	}
	return p
}

// ActionCount returns the number of legal actions at this record's node.
func (p PlayStrategy) ActionCount() int { return p.Actions }

// CurrentStrategy returns the frozen distribution; the iteration is ignored.
func (p PlayStrategy) CurrentStrategy(int) [DefaultActionCount]float64 {
	return p.Probabilities
}

// SampleAction picks an action index from the distribution using the uniform
// variate u in [0,1). The last action absorbs any floating-point remainder.
func SampleAction(strategy [DefaultActionCount]float64, actions int, u float64) int {
	for a := 0; a < actions; a++ {
		u -= strategy[a]
		if u <= 0 {
			return a
		}
	}
	return actions - 1
}
