package eval

import "github.com/lox/limitcfr/poker"

// Player names one of the two seats at a heads-up table, used by Evaluate9
// to report a showdown winner.
type Player int

const (
	Traverser Player = iota
	Opponent
)

// Evaluate5 scores a single five-card hand. Higher is better; the result
// always falls in [HighCardLo, MaxRank]. Panics via ErrTableCorruption if
// the tables somehow produced no entry for a legal hand, which can only mean
// a bug in table construction (fatal, not caller-recoverable).
func Evaluate5(cards [5]poker.Card) int {
	mustInit()

	mask := rankMask(cards)
	if isFlush(cards) {
		if v := tFlush[mask]; v != 0 {
			return int(v)
		}
		panic(ErrTableCorruption)
	}
	if v := tUnique[mask]; v != 0 {
		return int(v)
	}
	product := primeProduct(cards)
	if v := tRemaining[product]; v != 0 {
		return int(v)
	}
	panic(ErrTableCorruption)
}

// Evaluate7 returns the best five-card score obtainable from seven cards,
// the standard "hole + board" showdown evaluation. If threshold is
// non-negative, Evaluate7 returns as soon as it finds a five-card subset
// strictly exceeding it, short-circuiting the remaining subsets — used by
// Evaluate9 to cut opponent evaluation short once the opponent has already
// beaten the traverser's known score.
func Evaluate7(cards [7]poker.Card, threshold int) int {
	best := -1
	for _, combo := range sevenChooseFive {
		hand := [5]poker.Card{
			cards[combo[0]], cards[combo[1]], cards[combo[2]], cards[combo[3]], cards[combo[4]],
		}
		score := Evaluate5(hand)
		if score > best {
			best = score
		}
		if threshold >= 0 && best > threshold {
			return best
		}
	}
	return best
}

// sevenChooseFive enumerates all 21 five-card subsets of seven positions,
// computed once at init time rather than per call.
var sevenChooseFive = combinationsOfSeven()

func combinationsOfSeven() [][5]int {
	var out [][5]int
	var combo [5]int
	var recurse func(start, depth int)
	recurse = func(start, depth int) {
		if depth == 5 {
			out = append(out, combo)
			return
		}
		for i := start; i < 7; i++ {
			combo[depth] = i
			recurse(i+1, depth+1)
		}
	}
	recurse(0, 0)
	return out
}

// Evaluate9 scores a full nine-card deal at showdown: the traverser's two
// hole cards and the opponent's two hole cards against a five-card board. It
// evaluates the traverser's best seven-card hand first, then the opponent's,
// using the traverser's score as Evaluate7's short-circuit threshold. It
// returns the winning Player, or (_, false) on an exact tie (split pot).
func Evaluate9(d poker.Deal) (Player, bool) {
	board := d.Board(5)
	traverserHole := d.TraverserHole()
	opponentHole := d.OpponentHole()

	traverserScore := Evaluate7(sevenCardsOf(traverserHole, board), -1)
	opponentScore := Evaluate7(sevenCardsOf(opponentHole, board), traverserScore)

	switch {
	case traverserScore > opponentScore:
		return Traverser, true
	case opponentScore > traverserScore:
		return Opponent, true
	default:
		return 0, false
	}
}

func sevenCardsOf(hole [2]poker.Card, board []poker.Card) [7]poker.Card {
	var out [7]poker.Card
	out[0], out[1] = hole[0], hole[1]
	copy(out[2:], board)
	return out
}
