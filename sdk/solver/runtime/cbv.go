package runtime

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/lox/limitcfr/poker"
	"github.com/lox/limitcfr/poker/eval"
	"github.com/lox/limitcfr/poker/table"
	"github.com/lox/limitcfr/sdk/abstraction"
	"github.com/lox/limitcfr/sdk/solver"
)

// Request describes one counterfactual best-response computation: the
// traverser's known hole cards, which blind they hold, and the observed
// action history up to the decision node being measured.
type Request struct {
	Hand          [2]poker.Card
	TraverserIsSB bool
	History       []string
}

// Result is the computed CBV plus coverage diagnostics: how often the
// traverser's and the opponent's abstraction keys had trained records versus
// falling back to uniform.
type Result struct {
	Value float64
	Deals int

	TraverserSeen    int
	TraverserMissing int
	OpponentSeen     int
	OpponentMissing  int
}

// candidate is one deal consistent with the observed history: a concrete
// opponent hole pair and a completion of the board, with its showdown winner
// and abstraction features precomputed.
type candidate struct {
	enc       *abstraction.Encoder
	hubKey    solver.HubKey
	winner    table.Player
	winnerSet bool
}

// SolveCBV computes the counterfactual best-response value of the traverser
// against the blueprint at the history's final decision node. The candidate
// deal set is the full enumeration of opponent holes and board completions,
// so the history must have reached the flop — a preflop node's candidate
// space (every flop, turn and river) is out of reach by design.
func SolveCBV(policy *Policy, req Request, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := eval.Init(); err != nil {
		return Result{}, err
	}
	if req.Hand[0] == req.Hand[1] {
		return Result{}, fmt.Errorf("%w: duplicate hole card %s", poker.ErrInvalidDeal, req.Hand[0])
	}

	steps, board, state, err := parseHistory(req.History, req.Hand, req.TraverserIsSB)
	if err != nil {
		return Result{}, err
	}
	if state.CardsDealt() == 0 {
		return Result{}, fmt.Errorf("%w: the history must reach the flop", solver.ErrInvalidHistory)
	}

	candidates := enumerateCandidates(req.Hand, board, !req.TraverserIsSB)
	logger.Debug("solving cbv", "deals", len(candidates), "board", fmt.Sprint(board))

	s := &cbvSolver{
		policy:     policy,
		state:      state,
		candidates: candidates,
		traverserKey: solver.HubKeyFor(req.Hand[0], req.Hand[1], req.TraverserIsSB),
	}

	reaches := s.initialReaches(steps, req.TraverserIsSB)
	utilities := s.traverse(reaches)

	result := Result{
		Value:            weightedValue(reaches, utilities),
		Deals:            len(candidates),
		TraverserSeen:    s.travSeen,
		TraverserMissing: s.travMissing,
		OpponentSeen:     s.oppSeen,
		OpponentMissing:  s.oppMissing,
	}
	logger.Debug("cbv blueprint coverage",
		"traverser_seen", result.TraverserSeen,
		"traverser_missing", result.TraverserMissing,
		"opponent_seen", result.OpponentSeen,
		"opponent_missing", result.OpponentMissing)
	return result, nil
}

// enumerateCandidates builds every deal consistent with the observed cards:
// all opponent hole pairs from the unseen deck, crossed with every ordered
// completion of the remaining streets.
func enumerateCandidates(hand [2]poker.Card, board []poker.Card, opponentIsSB bool) []candidate {
	used := map[poker.Card]bool{hand[0]: true, hand[1]: true}
	for _, c := range board {
		used[c] = true
	}
	var remaining []poker.Card
	for c := poker.Card(0); c < 52; c++ {
		if !used[c] {
			remaining = append(remaining, c)
		}
	}

	missing := 5 - len(board)
	var out []candidate

	addDeal := func(opp [2]poker.Card, completion []poker.Card) {
		var deal poker.Deal
		deal[poker.DealTraverserHole0] = hand[0]
		deal[poker.DealTraverserHole1] = hand[1]
		deal[poker.DealOpponentHole0] = opp[0]
		deal[poker.DealOpponentHole1] = opp[1]
		copy(deal[poker.DealFlop0:], board)
		copy(deal[poker.DealFlop0+len(board):], completion)

		cand := candidate{
			enc:    abstraction.NewEncoder(deal),
			hubKey: solver.HubKeyFor(opp[0], opp[1], opponentIsSB),
		}
		if winner, ok := eval.Evaluate9(deal); ok {
			cand.winner = table.Player(winner)
			cand.winnerSet = true
		}
		out = append(out, cand)
	}

	for i := 0; i < len(remaining); i++ {
		for j := i + 1; j < len(remaining); j++ {
			opp := [2]poker.Card{remaining[i], remaining[j]}
			rest := make([]poker.Card, 0, len(remaining)-2)
			for k, c := range remaining {
				if k != i && k != j {
					rest = append(rest, c)
				}
			}
			switch missing {
			case 0:
				addDeal(opp, nil)
			case 1:
				for _, river := range rest {
					addDeal(opp, []poker.Card{river})
				}
			case 2:
				for _, turn := range rest {
					for _, river := range rest {
						if river != turn {
							addDeal(opp, []poker.Card{turn, river})
						}
					}
				}
			}
		}
	}
	return out
}

type cbvSolver struct {
	policy       *Policy
	state        *table.GameState
	candidates   []candidate
	traverserKey solver.HubKey

	travSeen    int
	travMissing int
	oppSeen     int
	oppMissing  int
}

// initialReaches replays the observed path once per candidate, multiplying
// in the blueprint's probability for every decision along it. The
// traverser's contribution is the same constant across candidates (their
// cards are known), so it scales but never reorders the distribution.
func (s *cbvSolver) initialReaches(steps []historyStep, traverserIsSB bool) []float64 {
	reaches := make([]float64, len(s.candidates))
	for i := range reaches {
		reaches[i] = 1.0
	}

	sbPlayer := table.Traverser
	if !traverserIsSB {
		sbPlayer = table.Opponent
	}
	var deal poker.Deal
	state := table.NewPartial(deal, sbPlayer)

	for _, step := range steps {
		if step.deal != nil {
			if state.CardsDealt() == 0 {
				state.DealFlop()
			} else {
				state.DealNext()
			}
			continue
		}

		idx := actionIndex(state, step.action)
		actions := len(state.AvailableActions())
		round := abstraction.RoundIndex(state.CardsDealt())
		pot := state.PotFor(state.CurrentPlayer())
		bets := state.BetsThisRound()

		if state.CurrentPlayer() == table.Traverser {
			// Identical across candidates along the observed path: any
			// candidate's encoder sees the same hole and board here.
			weights := s.traverserWeights(0, round, pot, bets, traverserIsSB, actions)
			for d := range reaches {
				reaches[d] *= weights[idx]
			}
		} else {
			isSB := state.CurrentPlayer() == state.SmallBlindPlayer()
			for d := range reaches {
				weights := s.opponentWeights(d, round, pot, bets, isSB, actions)
				reaches[d] *= weights[idx]
			}
		}
		applyAction(state, step.action)
	}
	return reaches
}

// traverse computes the per-deal utility vector for the current node, from
// the traverser's perspective in chips.
func (s *cbvSolver) traverse(reaches []float64) []float64 {
	switch s.state.CheckRoundTerminal() {
	case table.Showdown:
		return s.showdownUtilities()
	case table.Folded:
		return s.foldUtilities()
	case table.RoundOver:
		var snap table.Snapshot
		if s.state.CardsDealt() == 0 {
			snap = s.state.DealFlop()
		} else {
			snap = s.state.DealNext()
		}
		utilities := s.traverse(reaches)
		s.state.Undo(snap)
		return utilities
	}

	actions := s.state.AvailableActions()
	if s.state.CurrentPlayer() == table.Traverser {
		return s.bestResponse(reaches, actions)
	}
	return s.opponentResponse(reaches, actions)
}

// bestResponse picks the action maximizing the reach-weighted utility across
// the candidate set; exact ties contribute the average of their per-deal
// vectors. The traverser's own choices don't reweight the candidate
// distribution — the opponent cannot condition on cards they can't see.
func (s *cbvSolver) bestResponse(reaches []float64, actions []table.Action) []float64 {
	totalReach := 0.0
	for _, r := range reaches {
		totalReach += r
	}

	bestValue := math.Inf(-1)
	var best []float64
	bestCount := 0

	for _, action := range actions {
		snap := applyAction(s.state, action)
		utilities := s.traverse(reaches)
		s.state.Undo(snap)

		var value float64
		if totalReach > 0 {
			for d, u := range utilities {
				value += reaches[d] * u
			}
			value /= totalReach
		} else {
			for _, u := range utilities {
				value += u
			}
			value /= float64(len(utilities))
		}

		switch {
		case value > bestValue:
			bestValue = value
			best = append(best[:0], utilities...)
			bestCount = 1
		case value == bestValue:
			for d, u := range utilities {
				best[d] += u
			}
			bestCount++
		}
	}

	if bestCount > 1 {
		for d := range best {
			best[d] /= float64(bestCount)
		}
	}
	return best
}

// opponentResponse mixes the children by each candidate's own blueprint
// distribution, scaling the reaches handed down by the action probability.
func (s *cbvSolver) opponentResponse(reaches []float64, actions []table.Action) []float64 {
	round := abstraction.RoundIndex(s.state.CardsDealt())
	pot := s.state.PotFor(s.state.CurrentPlayer())
	bets := s.state.BetsThisRound()
	isSB := s.state.CurrentPlayer() == s.state.SmallBlindPlayer()

	probabilities := make([][solver.DefaultActionCount]float64, len(s.candidates))
	for d := range s.candidates {
		probabilities[d] = s.opponentWeights(d, round, pot, bets, isSB, len(actions))
	}

	result := make([]float64, len(s.candidates))
	next := make([]float64, len(s.candidates))
	for i, action := range actions {
		for d := range next {
			next[d] = reaches[d] * probabilities[d][i]
		}
		snap := applyAction(s.state, action)
		utilities := s.traverse(next)
		s.state.Undo(snap)

		for d, u := range utilities {
			result[d] += probabilities[d][i] * u
		}
	}
	return result
}

func (s *cbvSolver) showdownUtilities() []float64 {
	travPot := float64(s.state.PotFor(table.Traverser))
	oppPot := float64(s.state.PotFor(table.Opponent))

	out := make([]float64, len(s.candidates))
	for d, cand := range s.candidates {
		switch {
		case !cand.winnerSet:
			out[d] = 0
		case cand.winner == table.Traverser:
			out[d] = oppPot
		default:
			out[d] = -travPot
		}
	}
	return out
}

// foldUtilities is constant across candidates: whoever is on the move after
// the fold collects, whatever the opponent was holding.
func (s *cbvSolver) foldUtilities() []float64 {
	utility := -float64(s.state.PotFor(table.Traverser))
	if s.state.CurrentPlayer() == table.Traverser {
		utility = float64(s.state.PotFor(table.Opponent))
	}
	out := make([]float64, len(s.candidates))
	for d := range out {
		out[d] = utility
	}
	return out
}

func (s *cbvSolver) traverserWeights(d, round, pot, bets int, isSB bool, actions int) [solver.DefaultActionCount]float64 {
	key := s.candidates[d].enc.Key(abstraction.SeatTraverser, round, pot, bets, isSB)
	weights, found := s.policy.Weights(s.traverserKey, key, actions)
	if found {
		s.travSeen++
	} else {
		s.travMissing++
	}
	return weights
}

func (s *cbvSolver) opponentWeights(d, round, pot, bets int, isSB bool, actions int) [solver.DefaultActionCount]float64 {
	key := s.candidates[d].enc.Key(abstraction.SeatOpponent, round, pot, bets, isSB)
	weights, found := s.policy.Weights(s.candidates[d].hubKey, key, actions)
	if found {
		s.oppSeen++
	} else {
		s.oppMissing++
	}
	return weights
}

func weightedValue(reaches, utilities []float64) float64 {
	totalReach := 0.0
	value := 0.0
	for d, r := range reaches {
		totalReach += r
		value += r * utilities[d]
	}
	if totalReach <= 0 {
		return 0
	}
	return value / totalReach
}
