// Package table implements the capped-raise fixed-limit heads-up betting
// lattice on top of the card and evaluator packages: pot and turn tracking,
// deal transitions, and the reversible (snapshot/undo) mutation that lets
// the CFR traverser recurse without cloning state.
package table

import (
	"github.com/lox/limitcfr/poker"
	"github.com/lox/limitcfr/poker/eval"
)

// Game rules. A raise costs one big blind preflop and two postflop, and each
// betting round is capped at MaxRaises raises.
const (
	SmallBlind = 1
	BigBlind   = 2
	MaxRaises  = 4
)

// Player names one of the two seats. It mirrors eval.Player; kept as a
// distinct type because the state machine's notion of "who acts" is a
// property of the table, not of a single showdown comparison.
type Player int

const (
	Traverser Player = iota
	Opponent
)

// Other returns the seat that is not p.
func (p Player) Other() Player {
	if p == Traverser {
		return Opponent
	}
	return Traverser
}

// Round is the betting stage, derived from how many community cards have
// been revealed.
type Round int

const (
	Preflop Round = iota
	Flop
	Turn
	River
)

// RoundForCardsDealt maps the authoritative cards_dealt counter (0, 3, 4, 5)
// to its Round.
func RoundForCardsDealt(cardsDealt int) Round {
	switch cardsDealt {
	case 0:
		return Preflop
	case 3:
		return Flop
	case 4:
		return Turn
	case 5:
		return River
	default:
		panic("table: invalid cards_dealt")
	}
}

// Action is one of the three members of the action alphabet. Which subset is
// legal at a given node is determined by AvailableActions.
type Action int

const (
	ActionFoldCheck Action = iota
	ActionCall
	ActionRaise
)

// Outcome classifies what happened after CheckRoundTerminal observes the
// state following an action.
type Outcome int

const (
	NotTerminal Outcome = iota
	RoundOver
	Showdown
	Folded
)

// GameState is the reversible fixed-limit heads-up table. Every transition
// method returns a Snapshot that Undo restores exactly, so the CFR
// traverser can recurse without ever cloning the state.
type GameState struct {
	potTraverser     int
	potOpponent      int
	betsThisRound    int
	checksThisRound  int
	currentPlayer    Player
	cardsDealt       int
	smallBlindPlayer Player
	deal             poker.Deal

	// winner is computed once at construction: Some(Traverser), Some(Opponent),
	// or neither set for a split pot. It never changes afterward.
	winnerSet bool
	winner    Player
}

// New constructs the initial state for a hand: blinds posted, current_player
// the small blind (who acts first preflop), and the eventual showdown winner
// cached for O(1) resolution at a terminal node.
func New(deal poker.Deal, smallBlindPlayer Player) (*GameState, error) {
	if err := deal.Validate(); err != nil {
		return nil, err
	}
	s := &GameState{
		currentPlayer:    smallBlindPlayer,
		smallBlindPlayer: smallBlindPlayer,
		deal:             deal,
	}
	if smallBlindPlayer == Traverser {
		s.potTraverser = SmallBlind
		s.potOpponent = BigBlind
	} else {
		s.potTraverser = BigBlind
		s.potOpponent = SmallBlind
	}
	if winner, ok := eval.Evaluate9(deal); ok {
		s.winnerSet = true
		s.winner = Player(winner)
	}
	return s, nil
}

// NewPartial constructs a state for replaying an observed action history
// where the full deal is unknown: the deal is taken as-is without the
// distinctness check and no showdown winner is cached. Consumers that replay
// histories resolve showdowns externally, per candidate deal.
func NewPartial(deal poker.Deal, smallBlindPlayer Player) *GameState {
	s := &GameState{
		currentPlayer:    smallBlindPlayer,
		smallBlindPlayer: smallBlindPlayer,
		deal:             deal,
	}
	if smallBlindPlayer == Traverser {
		s.potTraverser = SmallBlind
		s.potOpponent = BigBlind
	} else {
		s.potTraverser = BigBlind
		s.potOpponent = SmallBlind
	}
	return s
}

func (s *GameState) potFor(p Player) int {
	if p == Traverser {
		return s.potTraverser
	}
	return s.potOpponent
}

func (s *GameState) setPotFor(p Player, v int) {
	if p == Traverser {
		s.potTraverser = v
	} else {
		s.potOpponent = v
	}
}

// CurrentPlayer returns the seat on the move.
func (s *GameState) CurrentPlayer() Player { return s.currentPlayer }

// BigBlindPlayer returns the seat holding the big blind for this deal.
func (s *GameState) BigBlindPlayer() Player { return s.smallBlindPlayer.Other() }

// SmallBlindPlayer returns the seat holding the small blind for this deal.
func (s *GameState) SmallBlindPlayer() Player { return s.smallBlindPlayer }

// BetsThisRound returns the number of raises taken this round.
func (s *GameState) BetsThisRound() int { return s.betsThisRound }

// ChecksThisRound returns the number of checks taken this round.
func (s *GameState) ChecksThisRound() int { return s.checksThisRound }

// CardsDealt returns the authoritative community-card count (0, 3, 4, 5).
func (s *GameState) CardsDealt() int { return s.cardsDealt }

// Round returns the current betting stage.
func (s *GameState) Round() Round { return RoundForCardsDealt(s.cardsDealt) }

// PotFor returns the given seat's committed chips this hand.
func (s *GameState) PotFor(p Player) int { return s.potFor(p) }

// Deal returns the nine-card deal this state was constructed from.
func (s *GameState) Deal() poker.Deal { return s.deal }

// Winner returns the cached showdown winner, or ok=false for a split pot.
func (s *GameState) Winner() (Player, bool) { return s.winner, s.winnerSet }

// Board returns the community cards revealed so far.
func (s *GameState) Board() []poker.Card { return s.deal.Board(s.cardsDealt) }

// AvailableActions returns the legal action set at the current node,
// following the availability rule: the small blind's first preflop action
// always sees all three actions (posting the big blind is itself a call),
// a round with no bets offers {Check, Raise}, a capped round offers
// {Fold, Call}, and otherwise all three are legal.
func (s *GameState) AvailableActions() []Action {
	if s.isSmallBlindFirstAction() {
		return []Action{ActionFoldCheck, ActionCall, ActionRaise}
	}
	if s.betsThisRound == 0 {
		return []Action{ActionFoldCheck, ActionRaise}
	}
	if s.betsThisRound == MaxRaises {
		return []Action{ActionFoldCheck, ActionCall}
	}
	return []Action{ActionFoldCheck, ActionCall, ActionRaise}
}

func (s *GameState) isSmallBlindFirstAction() bool {
	return s.cardsDealt == 0 && s.betsThisRound == 0 && s.checksThisRound == 0 &&
		s.currentPlayer == s.smallBlindPlayer && s.potFor(s.currentPlayer) == SmallBlind
}

func (s *GameState) raiseUnit() int {
	if s.cardsDealt == 0 {
		return BigBlind
	}
	return 2 * BigBlind
}

// Snapshot captures every field a transition can change, so Undo can restore
// the prior state byte-for-byte without cloning the whole GameState.
type Snapshot struct {
	player          Player
	pot             int
	betsThisRound   int
	checksThisRound int
	cardsDealt      int
}

// Raise applies a raise: the acting side's pot becomes the opponent's pot
// plus the round's raise unit (one big blind preflop, two postflop), and
// bets_this_round increments. Turn passes to the other seat.
func (s *GameState) Raise() Snapshot {
	snap := s.snapshot()
	actor := s.currentPlayer
	opp := actor.Other()
	s.setPotFor(actor, s.potFor(opp)+s.raiseUnit())
	s.betsThisRound++
	s.currentPlayer = opp
	return snap
}

// Call equalises the acting side's pot to the opponent's. If the pots were
// already equal with no bets this round, a Call is really a Check and
// increments checks_this_round instead.
func (s *GameState) Call() Snapshot {
	snap := s.snapshot()
	actor := s.currentPlayer
	opp := actor.Other()
	if s.betsThisRound == 0 && s.potFor(actor) == s.potFor(opp) {
		s.checksThisRound++
	} else {
		s.setPotFor(actor, s.potFor(opp))
	}
	s.currentPlayer = opp
	return snap
}

// FoldOrCheck applies action index 0. With no bets outstanding this round it
// is a Check (increments checks_this_round); otherwise it is a Fold, which
// the caller must detect as terminal via CheckRoundTerminal before acting
// again.
func (s *GameState) FoldOrCheck() Snapshot {
	snap := s.snapshot()
	if s.betsThisRound == 0 {
		s.checksThisRound++
	}
	s.currentPlayer = s.currentPlayer.Other()
	return snap
}

func (s *GameState) snapshot() Snapshot {
	return Snapshot{
		player:          s.currentPlayer,
		pot:             s.potFor(s.currentPlayer),
		betsThisRound:   s.betsThisRound,
		checksThisRound: s.checksThisRound,
		cardsDealt:      s.cardsDealt,
	}
}

// Undo restores the fields captured by snap. Callers must undo transitions
// in strict LIFO order, matching the traverser's recursion.
func (s *GameState) Undo(snap Snapshot) {
	s.setPotFor(snap.player, snap.pot)
	s.currentPlayer = snap.player
	s.betsThisRound = snap.betsThisRound
	s.checksThisRound = snap.checksThisRound
	s.cardsDealt = snap.cardsDealt
}

// CheckRoundTerminal evaluates the state immediately after an action was
// applied: two checks always closes the round; equal pots with at least one
// bet also closes it; unequal pots with the acting side now holding the
// lower pot means play continues; unequal pots with the acting side holding
// the higher pot means the other side just folded.
func (s *GameState) CheckRoundTerminal() Outcome {
	if s.checksThisRound == 2 {
		return s.roundCompleteOutcome()
	}
	actor := s.currentPlayer
	actorPot, oppPot := s.potFor(actor), s.potFor(actor.Other())
	if actorPot == oppPot {
		if s.betsThisRound > 0 {
			return s.roundCompleteOutcome()
		}
		return NotTerminal
	}
	if actorPot < oppPot {
		return NotTerminal
	}
	return Folded
}

func (s *GameState) roundCompleteOutcome() Outcome {
	if s.cardsDealt == 5 {
		return Showdown
	}
	return RoundOver
}

// DealFlop reveals the flop (cards_dealt: 0 -> 3), resets the per-round
// counters, and hands the action to the big blind.
func (s *GameState) DealFlop() Snapshot {
	return s.dealTransition(3)
}

// DealNext reveals the turn or river (cards_dealt += 1), resets the
// per-round counters, and hands the action to the big blind.
func (s *GameState) DealNext() Snapshot {
	return s.dealTransition(s.cardsDealt + 1)
}

func (s *GameState) dealTransition(next int) Snapshot {
	snap := s.snapshot()
	s.cardsDealt = next
	s.betsThisRound = 0
	s.checksThisRound = 0
	s.currentPlayer = s.BigBlindPlayer()
	return snap
}
