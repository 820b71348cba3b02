package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ovalle/stockpile/internal/network/protocol"
)

func tieState(roundID int) *protocol.TieBreakerState {
	return &protocol.TieBreakerState{
		Player1ID: "p_me",
		Player2ID: "p_opp",
		RoundID:   roundID,
	}
}

func TestNewRoundClearsLocalChoice(t *testing.T) {
	tb := NewTieBreaker("p_me")

	tb.Sync(tieState(5))
	assert.True(t, tb.Choose(protocol.RpsRock))
	assert.Equal(t, protocol.RpsRock, tb.LocalChoice())

	// Same round: choosing again is a no-op.
	assert.False(t, tb.Choose(protocol.RpsPaper))

	// Round 6 with both choices null again: choice must be cleared and
	// Choose callable again.
	tb.Sync(tieState(6))
	assert.Empty(t, tb.LocalChoice())
	assert.True(t, tb.Choose(protocol.RpsScissors))
}

func TestChooseBlockedByServerEcho(t *testing.T) {
	tb := NewTieBreaker("p_me")

	// The server already recorded our choice for this round; a late
	// echo must not allow re-choosing.
	st := tieState(3)
	st.P1Choice = protocol.RpsRock
	tb.Sync(st)

	assert.False(t, tb.Choose(protocol.RpsPaper))
}

func TestChooseRequiresState(t *testing.T) {
	tb := NewTieBreaker("p_me")
	assert.False(t, tb.Choose(protocol.RpsRock))
}

func TestAmPlayer1(t *testing.T) {
	tb := NewTieBreaker("p_me")
	tb.Sync(tieState(1))
	assert.True(t, tb.AmPlayer1())

	tb2 := NewTieBreaker("p_opp")
	tb2.Sync(tieState(1))
	assert.False(t, tb2.AmPlayer1())
}

func TestStatusMessagePriority(t *testing.T) {
	tests := []struct {
		name     string
		myID     string
		mutate   func(*protocol.TieBreakerState)
		choose   protocol.RpsChoice
		expected string
	}{
		{
			name:     "nothing chosen",
			myID:     "p_me",
			mutate:   func(*protocol.TieBreakerState) {},
			expected: "CHOOSE YOUR WEAPON",
		},
		{
			name: "opponent ready",
			myID: "p_me",
			mutate: func(st *protocol.TieBreakerState) {
				st.P2Choice = protocol.RpsRock
			},
			expected: "OPPONENT IS READY!",
		},
		{
			name:     "waiting for opponent",
			myID:     "p_me",
			mutate:   func(*protocol.TieBreakerState) {},
			choose:   protocol.RpsRock,
			expected: "WAITING OPPONENT...",
		},
		{
			name: "both chosen",
			myID: "p_me",
			mutate: func(st *protocol.TieBreakerState) {
				st.P2Choice = protocol.RpsPaper
			},
			choose:   protocol.RpsRock,
			expected: "CALCULATING...",
		},
		{
			name: "draw overrides everything",
			myID: "p_me",
			mutate: func(st *protocol.TieBreakerState) {
				st.LastResult = protocol.RpsDraw
			},
			choose:   protocol.RpsRock,
			expected: "IT'S A TIE!",
		},
		{
			name: "p1 win as p1",
			myID: "p_me",
			mutate: func(st *protocol.TieBreakerState) {
				st.LastResult = protocol.RpsP1Wins
			},
			expected: "WIN! YOU START",
		},
		{
			name: "p1 win as p2",
			myID: "p_opp",
			mutate: func(st *protocol.TieBreakerState) {
				st.LastResult = protocol.RpsP1Wins
			},
			expected: "LOSE! RIVAL STARTS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := NewTieBreaker(tt.myID)
			st := tieState(1)
			tt.mutate(st)
			tb.Sync(st)
			if tt.choose != "" {
				tb.Choose(tt.choose)
			}
			assert.Equal(t, tt.expected, tb.StatusMessage())
		})
	}
}

func TestStatusMessageWithoutState(t *testing.T) {
	tb := NewTieBreaker("p_me")
	assert.Equal(t, "LOADING...", tb.StatusMessage())
}
