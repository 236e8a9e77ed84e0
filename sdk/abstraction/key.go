package abstraction

import "github.com/lox/limitcfr/poker"

// KeyMagic is the leading version byte of every serialised key. Bump it when
// the layout changes; a blueprint trained under one magic is unreadable (and
// must be retrained) under another.
const KeyMagic = 0x01

// KeySize is the fixed length of a serialised key:
// [magic][hole_low][hole_high][packed][6 round-feature bytes][game_pot][bets].
const KeySize = 12

// Seat selects which side of a deal the key describes.
type Seat uint8

const (
	SeatTraverser Seat = iota
	SeatOpponent
)

// RoundIndex maps the table's cards_dealt counter (0, 3, 4, 5) to the round
// index (0..3) used when selecting per-round features.
func RoundIndex(cardsDealt int) int {
	if cardsDealt == 0 {
		return 0
	}
	return cardsDealt - 2
}

// Encoder precomputes, once per deal, the per-round feature bytes for both
// seats, so that the traverser can emit a key at every decision node with a
// couple of appends instead of re-deriving board texture each visit.
//
// The encoder is a pure function of the deal: hole pairs are canonicalized
// (low rank first) before any feature extraction, so two deals that differ
// only in hole-card order produce identical keys.
type Encoder struct {
	holeLow  [2]poker.Rank
	holeHigh [2]poker.Rank
	suited   [2]bool
	rounds   [2][4][]byte
}

// NewEncoder builds the per-round features for every seat of a deal.
func NewEncoder(deal poker.Deal) *Encoder {
	e := &Encoder{}
	holes := [2][2]poker.Card{deal.TraverserHole(), deal.OpponentHole()}
	for seat, pair := range holes {
		lo, hi := poker.SortedHole(pair[0], pair[1])
		e.holeLow[seat] = lo.Rank()
		e.holeHigh[seat] = hi.Rank()
		e.suited[seat] = lo.Suit() == hi.Suit()

		hole := [2]poker.Card{lo, hi}
		for round, dealt := range [4]int{0, 3, 4, 5} {
			e.rounds[seat][round] = roundFeatures(hole, deal.Board(dealt))
		}
	}
	return e
}

// HoleBucket returns the seat's (low, high, suited) summary, the outer-key
// half of where this seat's records live.
func (e *Encoder) HoleBucket(seat Seat) (low, high poker.Rank, suited bool) {
	return e.holeLow[seat], e.holeHigh[seat], e.suited[seat]
}

// Key serialises the abstraction for one decision node. gamePot is the
// acting seat's committed chips; round is the RoundIndex of the current
// street. The layout is load-bearing for blueprint compatibility — see
// KeyMagic.
func (e *Encoder) Key(seat Seat, round int, gamePot, betsThisRound int, isSB bool) []byte {
	key := make([]byte, 0, KeySize)
	key = append(key, KeyMagic)
	key = append(key, uint8(e.holeLow[seat]), uint8(e.holeHigh[seat]))
	key = append(key, packedByte(betsThisRound, e.suited[seat], isSB))
	key = append(key, e.rounds[seat][round]...)
	key = append(key, uint8(gamePot), uint8(betsThisRound))
	return key
}

// packedByte holds the raise counter in the high nibble and the suited / sb
// flags in the low bits.
func packedByte(betsThisRound int, suited, isSB bool) uint8 {
	b := uint8(betsThisRound) << 4
	if suited {
		b |= 1 << 1
	}
	if isSB {
		b |= 1
	}
	return b
}

// roundFeatures serialises one seat's view of one street into six bytes:
// the three board-texture bytes, then the connection, straight and flush
// bytes (zero when the feature is absent).
func roundFeatures(hole [2]poker.Card, board []poker.Card) []byte {
	b := AnalyzeBoard(board)
	out := make([]byte, 0, 6)
	out = append(out, uint8(b.MaxConsecutiveCards), uint8(b.SuitCountAbstraction), uint8(b.HandType))
	out = append(out, connectedByte(AnalyzeConnection(hole, board)))

	var straight uint8
	if s, ok := AnalyzeStraight(hole, board); ok {
		straight = uint8(s.TopRankBucket)<<2 | uint8(s.CardsToDraw)
	}
	out = append(out, straight)

	var flush uint8
	if f, ok := AnalyzeFlush(hole, board); ok {
		flush = uint8(f.TopSuitTopRank) << 3
		if f.MatchesPlayerHighCard {
			flush |= 1 << 2
		}
		flush |= uint8(f.CardsToDraw)
	}
	out = append(out, flush)

	return out
}

// connectedByte packs the pattern into the high nibble and the pattern's
// detail (order score, or the high-card-is-house bit) into the low nibble.
func connectedByte(c ConnectedCards) uint8 {
	detail := c.OrderScore
	if c.Pattern == PatternFullHouse && c.HighCardIsHouse {
		detail = 1
	}
	return uint8(c.Pattern)<<4 | detail
}
