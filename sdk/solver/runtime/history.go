package runtime

import (
	"fmt"

	"github.com/lox/limitcfr/poker"
	"github.com/lox/limitcfr/poker/table"
	"github.com/lox/limitcfr/sdk/solver"
)

// historyStep is one replayable element of an observed history: either a
// betting action or a deal transition carrying the cards it revealed.
type historyStep struct {
	deal   []poker.Card // non-nil for a deal transition
	action table.Action
}

// parseHistory validates an observed token sequence against the state
// machine and returns the replay steps, the observed board, and the state at
// the solve node. Tokens are "f" (fold/check), "c" (call), "r" (raise), or
// cards in two-character notation ("7h"); the flop arrives as three card
// tokens in a row.
//
// The returned state carries only pot/turn/round bookkeeping — its deal is
// partial, and consumers resolve card-dependent questions per candidate
// deal.
func parseHistory(tokens []string, hand [2]poker.Card, traverserIsSB bool) ([]historyStep, []poker.Card, *table.GameState, error) {
	sbPlayer := table.Traverser
	if !traverserIsSB {
		sbPlayer = table.Opponent
	}

	var deal poker.Deal
	deal[poker.DealTraverserHole0] = hand[0]
	deal[poker.DealTraverserHole1] = hand[1]
	state := table.NewPartial(deal, sbPlayer)

	seen := map[poker.Card]bool{hand[0]: true, hand[1]: true}
	var steps []historyStep
	var board []poker.Card

	i := 0
	for i < len(tokens) {
		switch state.CheckRoundTerminal() {
		case table.NotTerminal:
			action, err := parseActionToken(tokens[i])
			if err != nil {
				return nil, nil, nil, err
			}
			if !actionLegal(state, action) {
				return nil, nil, nil, fmt.Errorf("%w: %q is not legal here", solver.ErrInvalidHistory, tokens[i])
			}
			applyAction(state, action)
			steps = append(steps, historyStep{action: action})
			i++

		case table.RoundOver:
			need := 1
			if state.CardsDealt() == 0 {
				need = 3
			}
			if i+need > len(tokens) {
				return nil, nil, nil, fmt.Errorf("%w: expected %d board cards, history ended", solver.ErrInvalidHistory, need)
			}
			dealt := make([]poker.Card, 0, need)
			for n := 0; n < need; n++ {
				card, err := poker.ParseCard(tokens[i+n])
				if err != nil {
					return nil, nil, nil, fmt.Errorf("%w: %v", solver.ErrInvalidHistory, err)
				}
				if seen[card] {
					return nil, nil, nil, fmt.Errorf("%w: duplicate card %s", solver.ErrInvalidHistory, card)
				}
				seen[card] = true
				dealt = append(dealt, card)
			}
			board = append(board, dealt...)
			steps = append(steps, historyStep{deal: dealt})
			if need == 3 {
				state.DealFlop()
			} else {
				state.DealNext()
			}
			i += need

		default:
			return nil, nil, nil, fmt.Errorf("%w: history continues past a terminal state", solver.ErrInvalidHistory)
		}
	}

	if state.CheckRoundTerminal() != table.NotTerminal {
		return nil, nil, nil, fmt.Errorf("%w: history must end at a decision node", solver.ErrInvalidHistory)
	}
	return steps, board, state, nil
}

func parseActionToken(token string) (table.Action, error) {
	switch token {
	case "f", "x":
		return table.ActionFoldCheck, nil
	case "c":
		return table.ActionCall, nil
	case "r", "b":
		return table.ActionRaise, nil
	default:
		return 0, fmt.Errorf("%w: unknown action %q", solver.ErrInvalidHistory, token)
	}
}

func actionLegal(state *table.GameState, action table.Action) bool {
	for _, a := range state.AvailableActions() {
		if a == action {
			return true
		}
	}
	return false
}

// actionIndex positions an action within the acting node's legal set — the
// index under which the blueprint stores its probability.
func actionIndex(state *table.GameState, action table.Action) int {
	for i, a := range state.AvailableActions() {
		if a == action {
			return i
		}
	}
	return -1
}

func applyAction(state *table.GameState, action table.Action) table.Snapshot {
	switch action {
	case table.ActionCall:
		return state.Call()
	case table.ActionRaise:
		return state.Raise()
	default:
		return state.FoldOrCheck()
	}
}
