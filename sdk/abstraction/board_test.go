package abstraction

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/limitcfr/poker"
)

func cards(t *testing.T, s string) []poker.Card {
	t.Helper()
	out, err := poker.ParseCards(s)
	require.NoError(t, err)
	return out
}

func hole(t *testing.T, s string) [2]poker.Card {
	t.Helper()
	cs := cards(t, s)
	require.Len(t, cs, 2)
	return [2]poker.Card{cs[0], cs[1]}
}

func TestAnalyzeBoard(t *testing.T) {
	tests := []struct {
		name  string
		board string
		want  BoardAbstraction
	}{
		{
			name:  "rainbow disconnected flop collapses suits",
			board: "2s 7h Qd",
			want:  BoardAbstraction{MaxConsecutiveCards: 1, SuitCountAbstraction: 0, HandType: PatternNone},
		},
		{
			name:  "two tone flop keeps its suit count",
			board: "2s 7s Qd",
			want:  BoardAbstraction{MaxConsecutiveCards: 1, SuitCountAbstraction: 2, HandType: PatternNone},
		},
		{
			name:  "five card board with max two suits is rainbow-ish",
			board: "2s 7s Qd 9h Jc",
			want:  BoardAbstraction{MaxConsecutiveCards: 2, SuitCountAbstraction: 0, HandType: PatternNone},
		},
		{
			name:  "paired board",
			board: "9s 9h 2d",
			want:  BoardAbstraction{MaxConsecutiveCards: 1, SuitCountAbstraction: 0, HandType: PatternPair},
		},
		{
			name:  "wheel texture counts ace low",
			board: "As 2h 3d",
			want:  BoardAbstraction{MaxConsecutiveCards: 3, SuitCountAbstraction: 0, HandType: PatternNone},
		},
		{
			name:  "broadway texture counts ace high",
			board: "Qs Kh Ad",
			want:  BoardAbstraction{MaxConsecutiveCards: 3, SuitCountAbstraction: 0, HandType: PatternNone},
		},
		{
			name:  "king ace two does not wrap",
			board: "Ks Ah 2d",
			want:  BoardAbstraction{MaxConsecutiveCards: 2, SuitCountAbstraction: 0, HandType: PatternNone},
		},
		{
			name:  "monotone flop",
			board: "2h 7h Jh",
			want:  BoardAbstraction{MaxConsecutiveCards: 1, SuitCountAbstraction: 3, HandType: PatternNone},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AnalyzeBoard(cards(t, tt.board)))
		})
	}
}

func TestAnalyzeConnection(t *testing.T) {
	tests := []struct {
		name  string
		hole  string
		board string
		want  ConnectedCards
	}{
		{
			name:  "top pair",
			hole:  "Qs 7h",
			board: "Qd 9c 2s",
			want:  ConnectedCards{Pattern: PatternPair, OrderScore: 0},
		},
		{
			name:  "second pair",
			hole:  "9s 7h",
			board: "Qd 9c 2s",
			want:  ConnectedCards{Pattern: PatternPair, OrderScore: 1},
		},
		{
			name:  "bottom pair on five card board caps at two",
			hole:  "2d 7h",
			board: "Qd 9c 2s Kh 5s",
			want:  ConnectedCards{Pattern: PatternPair, OrderScore: 2},
		},
		{
			name:  "board pair alone is not connection",
			hole:  "As 7h",
			board: "Qd Qc 2s",
			want:  ConnectedCards{Pattern: PatternNone},
		},
		{
			name:  "pocket pair preflop",
			hole:  "8s 8h",
			board: "",
			want:  ConnectedCards{Pattern: PatternPair, OrderScore: 0},
		},
		{
			name:  "set below the top card",
			hole:  "9s 9h",
			board: "Qd 9c 2s",
			want:  ConnectedCards{Pattern: PatternThreeOfAKind, OrderScore: 1},
		},
		{
			name:  "two pair ordered by its higher pair",
			hole:  "Qs 9h",
			board: "Qd 9c 2s",
			want:  ConnectedCards{Pattern: PatternTwoPair, OrderScore: 0},
		},
		{
			name:  "full house where the pair outranks the trips",
			hole:  "2d Qs",
			board: "2s 2h Qd",
			want:  ConnectedCards{Pattern: PatternFullHouse, HighCardIsHouse: true},
		},
		{
			name:  "full house where the trips outrank the pair",
			hole:  "Qs 2d",
			board: "Qd Qh 2s",
			want:  ConnectedCards{Pattern: PatternFullHouse, HighCardIsHouse: false},
		},
		{
			name:  "quads",
			hole:  "9s 9h",
			board: "9d 9c 2s",
			want:  ConnectedCards{Pattern: PatternFourOfAKind},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var board []poker.Card
			if tt.board != "" {
				board = cards(t, tt.board)
			}
			require.Equal(t, tt.want, AnalyzeConnection(hole(t, tt.hole), board))
		})
	}
}

func TestAnalyzeStraight(t *testing.T) {
	t.Run("no potential below three in a row", func(t *testing.T) {
		_, ok := AnalyzeStraight(hole(t, "2s 7h"), cards(t, "Qd 9c Kh"))
		require.False(t, ok)
	})

	t.Run("made straight needs no draws", func(t *testing.T) {
		s, ok := AnalyzeStraight(hole(t, "5s 6h"), cards(t, "7d 8c 9h"))
		require.True(t, ok)
		require.Equal(t, 0, s.CardsToDraw)
	})

	t.Run("open ended draw needs one", func(t *testing.T) {
		s, ok := AnalyzeStraight(hole(t, "5s 6h"), cards(t, "7d 8c Kh"))
		require.True(t, ok)
		require.Equal(t, 1, s.CardsToDraw)
	})

	t.Run("higher runs land in higher buckets", func(t *testing.T) {
		low, ok := AnalyzeStraight(hole(t, "As 2h"), cards(t, "3d 9c Kh"))
		require.True(t, ok)
		high, ok2 := AnalyzeStraight(hole(t, "Qs Kh"), cards(t, "Ad 9c 2h"))
		require.True(t, ok2)
		require.Greater(t, high.TopRankBucket, low.TopRankBucket)
	})
}

func TestAnalyzeFlush(t *testing.T) {
	t.Run("two of a suit is not a draw", func(t *testing.T) {
		_, ok := AnalyzeFlush(hole(t, "2s 7s"), cards(t, "Qd 9c Kh"))
		require.False(t, ok)
	})

	t.Run("suited hole on a two tone board", func(t *testing.T) {
		f, ok := AnalyzeFlush(hole(t, "As 7s"), cards(t, "Qs 9c Kh"))
		require.True(t, ok)
		require.Equal(t, poker.Ace, f.TopSuitTopRank)
		require.True(t, f.MatchesPlayerHighCard)
		require.Equal(t, 2, f.CardsToDraw)
	})

	t.Run("board high card beats the hole", func(t *testing.T) {
		f, ok := AnalyzeFlush(hole(t, "2s 7s"), cards(t, "Qs 9s Kh"))
		require.True(t, ok)
		require.Equal(t, poker.Queen, f.TopSuitTopRank)
		require.False(t, f.MatchesPlayerHighCard)
		require.Equal(t, 1, f.CardsToDraw)
	})

	t.Run("made flush", func(t *testing.T) {
		f, ok := AnalyzeFlush(hole(t, "2s 7s"), cards(t, "Qs 9s Ks"))
		require.True(t, ok)
		require.Equal(t, 0, f.CardsToDraw)
	})
}
