package solver

import (
	"github.com/lox/limitcfr/poker/table"
	"github.com/lox/limitcfr/sdk/abstraction"
)

// traversal is one external-sampling DCFR pass over a single deal. The
// traverser explores every action at its own decision nodes and samples a
// single action at the opponent's; regrets update only at traverser nodes.
// The game state mutates in place and every descent is unwound through the
// matching snapshot, so a pass never clones the state.
type traversal struct {
	state     *table.GameState
	enc       *abstraction.Encoder
	sb        *Branch
	bb        *Branch
	iteration int
	rng       *PCG32
}

// runTraversal walks the deal from the current state and returns the
// traverser's expected utility in chips.
func runTraversal(state *table.GameState, enc *abstraction.Encoder, pair Pair, iteration int, rng *PCG32) float64 {
	t := traversal{state: state, enc: enc, sb: pair.SB, bb: pair.BB, iteration: iteration, rng: rng}
	return t.traverse()
}

func (t *traversal) traverse() float64 {
	switch t.state.CheckRoundTerminal() {
	case table.Showdown:
		return t.showdownUtility()
	case table.Folded:
		return t.foldUtility()
	case table.RoundOver:
		return t.traverseDeal()
	}

	actions := t.state.AvailableActions()
	record, strategy := t.actingRecord(len(actions))

	if t.state.CurrentPlayer() == table.Opponent {
		sampled := SampleAction(strategy, len(actions), t.rng.Float64())
		snap := t.apply(actions[sampled])
		utility := t.traverse()
		t.state.Undo(snap)
		return utility
	}

	var utilities [DefaultActionCount]float64
	utility := 0.0
	for i, action := range actions {
		snap := t.apply(action)
		utilities[i] = t.traverse()
		t.state.Undo(snap)
		utility += strategy[i] * utilities[i]
	}
	record.Update(utility, utilities, t.iteration)
	return utility
}

// actingRecord builds the acting seat's abstraction key and fetches (or
// creates) its strategy record in whichever branch that seat owns.
func (t *traversal) actingRecord(actions int) (*TrainingStrategy, [DefaultActionCount]float64) {
	current := t.state.CurrentPlayer()
	seat := abstraction.SeatTraverser
	if current == table.Opponent {
		seat = abstraction.SeatOpponent
	}
	isSB := current == t.state.SmallBlindPlayer()

	branch := t.bb
	if isSB {
		branch = t.sb
	}

	key := t.enc.Key(seat,
		abstraction.RoundIndex(t.state.CardsDealt()),
		t.state.PotFor(current),
		t.state.BetsThisRound(),
		isSB)
	record := branch.GetOrCreate(key, actions)
	return record, record.CurrentStrategy(t.iteration)
}

func (t *traversal) apply(action table.Action) table.Snapshot {
	switch action {
	case table.ActionCall:
		return t.state.Call()
	case table.ActionRaise:
		return t.state.Raise()
	default:
		return t.state.FoldOrCheck()
	}
}

func (t *traversal) traverseDeal() float64 {
	var snap table.Snapshot
	if t.state.CardsDealt() == 0 {
		snap = t.state.DealFlop()
	} else {
		snap = t.state.DealNext()
	}
	utility := t.traverse()
	t.state.Undo(snap)
	return utility
}

func (t *traversal) showdownUtility() float64 {
	winner, ok := t.state.Winner()
	switch {
	case !ok:
		return 0
	case winner == table.Traverser:
		return float64(t.state.PotFor(table.Opponent))
	default:
		return -float64(t.state.PotFor(table.Traverser))
	}
}

// foldUtility resolves a fold: the player on the move after the fold is the
// winner and collects the folder's committed chips.
func (t *traversal) foldUtility() float64 {
	if t.state.CurrentPlayer() == table.Traverser {
		return float64(t.state.PotFor(table.Opponent))
	}
	return -float64(t.state.PotFor(table.Traverser))
}
