// Package runtime is the play-time view of a trained blueprint: average
// strategies normalized into probability vectors with uniform fallbacks for
// information sets training never reached, plus the counterfactual
// best-response solver that measures the blueprint at an observed history.
package runtime

import (
	"github.com/lox/limitcfr/sdk/solver"
)

// Policy exposes read-only access to a blueprint's normalized strategies.
type Policy struct {
	branches map[solver.HubKey]map[string]solver.PlayStrategy
}

// LoadPolicy reads a blueprint directory and normalizes every record.
// Missing files load as empty branches; those information sets answer with
// uniform distributions.
func LoadPolicy(dir string) (*Policy, error) {
	branches, err := solver.LoadBranches(dir)
	if err != nil {
		return nil, err
	}
	return PolicyFromBranches(branches), nil
}

// PolicyFromBranches derives the play-time view from trained branches.
func PolicyFromBranches(branches []*solver.Branch) *Policy {
	p := &Policy{branches: make(map[solver.HubKey]map[string]solver.PlayStrategy, len(branches))}
	for _, b := range branches {
		plays := make(map[string]solver.PlayStrategy, b.Len())
		b.Each(func(key string, s *solver.TrainingStrategy) {
			plays[key] = solver.PlayFromTraining(s)
		})
		p.branches[b.Key] = plays
	}
	return p
}

// Strategy returns the stored distribution for the information set, if
// training ever visited it.
func (p *Policy) Strategy(hubKey solver.HubKey, abstractionKey []byte) (solver.PlayStrategy, bool) {
	branch, ok := p.branches[hubKey]
	if !ok {
		return solver.PlayStrategy{}, false
	}
	s, ok := branch[string(abstractionKey)]
	return s, ok
}

// Weights returns the acting distribution for the information set, falling
// back to uniform over the legal actions when the blueprint never visited
// it. found reports whether the blueprint had a trained record.
func (p *Policy) Weights(hubKey solver.HubKey, abstractionKey []byte, actions int) (weights [solver.DefaultActionCount]float64, found bool) {
	if s, ok := p.Strategy(hubKey, abstractionKey); ok {
		return s.Probabilities, true
	}
	for a := 0; a < actions; a++ {
		weights[a] = 1.0 / float64(actions)
	}
	return weights, false
}
