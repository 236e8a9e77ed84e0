package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/limitcfr/poker"
	"github.com/lox/limitcfr/sdk/solver"
	"github.com/lox/limitcfr/sdk/solver/runtime"
)

type SolveCbvCmd struct {
	Hand      string   `help:"The traverser's hole cards, e.g. \"Ks Kc\"" required:""`
	BigBlind  bool     `help:"The traverser holds the big blind instead of the small blind"`
	Blueprint string   `help:"Blueprint directory (defaults to the training default)"`
	History   []string `arg:"" help:"Observed history: f/c/r actions and board cards, e.g. r c 2c 3s 4c"`
}

func (cmd *SolveCbvCmd) Run(logger *log.Logger) error {
	cards, err := poker.ParseCards(cmd.Hand)
	if err != nil {
		return err
	}
	if len(cards) != 2 {
		return fmt.Errorf("%w: a hand is two cards, got %d", poker.ErrInvalidDeal, len(cards))
	}

	dir := cmd.Blueprint
	if dir == "" {
		dir = solver.DefaultTrainingConfig().BlueprintDir
	}
	policy, err := runtime.LoadPolicy(dir)
	if err != nil {
		return err
	}

	result, err := runtime.SolveCBV(policy, runtime.Request{
		Hand:          [2]poker.Card{cards[0], cards[1]},
		TraverserIsSB: !cmd.BigBlind,
		History:       cmd.History,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("counterfactual best response",
		"value", result.Value,
		"deals", result.Deals,
		"opponent_seen", result.OpponentSeen,
		"opponent_missing", result.OpponentMissing)
	fmt.Printf("CBV: %.4f chips over %d deals\n", result.Value, result.Deals)
	return nil
}
