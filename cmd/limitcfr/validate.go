package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/limitcfr/sdk/solver"
	"github.com/lox/limitcfr/sdk/solver/runtime"
)

type ValidateCmd struct {
	Blueprint string `help:"Blueprint directory (defaults to the training default)"`
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	handStyle     = lipgloss.NewStyle().Bold(true)
	untrainedCell = lipgloss.NewStyle().Faint(true)
	foldStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	callStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	raiseStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)

func (cmd *ValidateCmd) Run(logger *log.Logger) error {
	dir := cmd.Blueprint
	if dir == "" {
		dir = solver.DefaultTrainingConfig().BlueprintDir
	}
	policy, err := runtime.LoadPolicy(dir)
	if err != nil {
		return err
	}

	entries := runtime.PreflopStrategies(policy)

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-6s %-8s %6s  %-30s", "Hand", "Class", "Combos", "Small blind opening")))
	trained := 0
	for _, e := range entries {
		hand := fmt.Sprintf("%s%s%s", e.Bucket.Low, e.Bucket.High, suffix(e.Bucket.Suited, e.Bucket.Low == e.Bucket.High))
		row := fmt.Sprintf("%-6s %-8s %6d  %s",
			handStyle.Render(hand), e.Category, e.Combinations, renderWeights(e.Weights))
		if !e.Found {
			row = untrainedCell.Render(fmt.Sprintf("%-6s %-8s %6d  untrained (uniform)", hand, e.Category, e.Combinations))
		} else {
			trained++
		}
		fmt.Println(row)
	}

	logger.Info("preflop summary", "buckets", len(entries), "trained", trained)
	return nil
}

func suffix(suited, pair bool) string {
	switch {
	case pair:
		return ""
	case suited:
		return "s"
	default:
		return "o"
	}
}

func renderWeights(w [solver.DefaultActionCount]float64) string {
	var b strings.Builder
	b.WriteString(foldStyle.Render(fmt.Sprintf("fold %5.1f%%", w[0]*100)))
	b.WriteString("  ")
	b.WriteString(callStyle.Render(fmt.Sprintf("call %5.1f%%", w[1]*100)))
	b.WriteString("  ")
	b.WriteString(raiseStyle.Render(fmt.Sprintf("raise %5.1f%%", w[2]*100)))
	return b.String()
}
