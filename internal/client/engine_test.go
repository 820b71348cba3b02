package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovalle/stockpile/internal/network/protocol"
)

func card(id string, value int) Card {
	return Card{ID: id, Value: value, IsWild: value == protocol.WildValue}
}

// playingSnapshot returns a snapshot where it is the local player's
// turn, with a known hand, goal and discard layout.
func playingSnapshot() *protocol.GameSnapshot {
	return &protocol.GameSnapshot{
		GameID:          "g_1",
		Status:          protocol.StatusPlaying,
		CurrentPlayerID: "p_me",
		CommonPiles: [][]Card{
			{card("cp1", 1), card("cp2", 2)}, // next accepts 3
			{},                               // next accepts 1
			{card("cp3", 1)},                 // next accepts 2
			{},
		},
		Me: protocol.PlayerView{
			ID:   "p_me",
			Name: "Alice",
			Hand: []Card{card("h1", 3), card("h2", 7), card("h3", 0)},
			GoalPile: []Card{
				card("gBottom", 9),
				card("gTop", 1),
			},
			GoalRemaining: 2,
			Discards: [][]Card{
				{card("d1", 4), card("d2", 3)},
				{},
				{card("d3", 2)},
				{},
			},
		},
		Opponent: &protocol.PlayerView{ID: "p_opp", Name: "Bob"},
	}
}

func TestSelectionToggle(t *testing.T) {
	e := NewEngine()
	s := playingSnapshot()

	e.SelectHand(s, 0)
	require.NotNil(t, e.Selection())
	assert.Equal(t, "h1", e.Selection().CardID)
	assert.Equal(t, protocol.SourceHand, e.Selection().Source)

	// Re-selecting the identical card clears (idempotent toggle).
	e.SelectHand(s, 0)
	assert.Nil(t, e.Selection())

	// Selecting a different card replaces.
	e.SelectHand(s, 0)
	e.SelectHand(s, 1)
	require.NotNil(t, e.Selection())
	assert.Equal(t, "h2", e.Selection().CardID)
}

func TestSelectionGuards(t *testing.T) {
	e := NewEngine()

	notMyTurn := playingSnapshot()
	notMyTurn.CurrentPlayerID = "p_opp"
	e.SelectHand(notMyTurn, 0)
	assert.Nil(t, e.Selection(), "off-turn select is a silent no-op")

	finished := playingSnapshot()
	finished.Status = protocol.StatusFinished
	e.SelectHand(finished, 0)
	assert.Nil(t, e.Selection(), "select after game end is a silent no-op")

	e.SelectHand(nil, 0)
	assert.Nil(t, e.Selection())
}

func TestSelectGoalAndDiscardTakeTopOnly(t *testing.T) {
	e := NewEngine()
	s := playingSnapshot()

	e.SelectGoal(s)
	require.NotNil(t, e.Selection())
	assert.Equal(t, "gTop", e.Selection().CardID, "only the top goal card is selectable")

	e.ClearSelection()
	e.SelectDiscard(s, 0)
	require.NotNil(t, e.Selection())
	assert.Equal(t, "d2", e.Selection().CardID)
	assert.Equal(t, 0, e.Selection().Index)

	// Empty slot selects nothing.
	e.ClearSelection()
	e.SelectDiscard(s, 1)
	assert.Nil(t, e.Selection())
}

func TestClickPileEmitsIntentAndClearsSelection(t *testing.T) {
	e := NewEngine()
	s := playingSnapshot()

	e.SelectHand(s, 0)
	intent := e.ClickPile(s, 0)
	require.NotNil(t, intent)
	assert.Equal(t, "h1", intent.CardID)
	assert.Equal(t, protocol.SourceHand, intent.Source)
	assert.Equal(t, 0, intent.TargetIndex)
	assert.Nil(t, intent.SourceIndex, "hand origin carries no sourceIndex")
	assert.Nil(t, e.Selection(), "selection clears immediately on submit")

	// No selection, no intent.
	assert.Nil(t, e.ClickPile(s, 0))
}

func TestClickPileFromDiscardCarriesSourceIndex(t *testing.T) {
	e := NewEngine()
	s := playingSnapshot()

	e.SelectDiscard(s, 2)
	intent := e.ClickPile(s, 1)
	require.NotNil(t, intent)
	require.NotNil(t, intent.SourceIndex)
	assert.Equal(t, 2, *intent.SourceIndex)
}

func TestClickDiscardSlot(t *testing.T) {
	e := NewEngine()
	s := playingSnapshot()

	// With a hand selection: a discard intent.
	e.SelectHand(s, 1)
	intent := e.ClickDiscardSlot(s, 3)
	require.NotNil(t, intent)
	assert.Equal(t, "h2", intent.CardID)
	assert.Equal(t, 3, intent.TargetIndex)
	assert.Nil(t, e.Selection())

	// Without one: selects the slot's top card instead.
	assert.Nil(t, e.ClickDiscardSlot(s, 0))
	require.NotNil(t, e.Selection())
	assert.Equal(t, "d2", e.Selection().CardID)

	// A goal selection does not discard.
	e.ClearSelection()
	e.SelectGoal(s)
	assert.Nil(t, e.ClickDiscardSlot(s, 1))
}

func TestDropPreCheck(t *testing.T) {
	tests := []struct {
		name   string
		drop   DropEvent
		target int
		want   bool
	}{
		{"wild on non-empty pile", DropEvent{Source: protocol.SourceHand, CardID: "h3", CardValue: 0}, 0, true},
		{"wild on empty pile", DropEvent{Source: protocol.SourceHand, CardID: "h3", CardValue: 0}, 1, true},
		{"exact next value", DropEvent{Source: protocol.SourceHand, CardID: "h1", CardValue: 3}, 0, true},
		{"value too high", DropEvent{Source: protocol.SourceHand, CardID: "h2", CardValue: 7}, 0, false},
		{"value too low", DropEvent{Source: protocol.SourceGoal, CardID: "gTop", CardValue: 1}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			s := playingSnapshot()

			intent, ok := e.DropOnPile(s, tt.drop, tt.target)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				require.NotNil(t, intent)
				assert.Equal(t, tt.drop.CardID, intent.CardID)
			} else {
				assert.Nil(t, intent, "rejected drop produces no network emission")
				assert.True(t, e.overlay.Empty(), "rejected drop never transfers visually")
			}
		})
	}
}

func TestDropAppliesSpeculativeTransfer(t *testing.T) {
	e := NewEngine()
	s := playingSnapshot()

	intent, ok := e.DropOnPile(s, DropEvent{Source: protocol.SourceHand, CardID: "h1", CardValue: 3}, 0)
	require.True(t, ok)
	require.NotNil(t, intent)

	display := e.Display(s)
	assert.Len(t, display.CommonPiles[0], 3, "display shows the card moved")
	assert.Equal(t, "h1", display.CommonPiles[0][2].ID)
	assert.Len(t, display.Me.Hand, 2)

	// The authoritative snapshot is untouched.
	assert.Len(t, s.CommonPiles[0], 2)
	assert.Len(t, s.Me.Hand, 3)

	// The next authoritative snapshot fully supersedes the overlay.
	next := playingSnapshot()
	e.Sync(next)
	assert.Same(t, next, e.Display(next))
}

func TestDropFromDiscardCarriesSourceIndex(t *testing.T) {
	e := NewEngine()
	s := playingSnapshot()

	intent, ok := e.DropOnPile(s, DropEvent{
		Source: protocol.SourceDiscard, CardID: "d3", SourceIndex: 2, CardValue: 2,
	}, 2)
	require.True(t, ok)
	require.NotNil(t, intent.SourceIndex)
	assert.Equal(t, 2, *intent.SourceIndex)

	display := e.Display(s)
	assert.Empty(t, display.Me.Discards[2])
	assert.Equal(t, "d3", display.CommonPiles[2][1].ID)
}

func TestDropOnDiscardHandOnly(t *testing.T) {
	e := NewEngine()
	s := playingSnapshot()

	// Goal → discard is rejected unconditionally.
	intent, ok := e.DropOnDiscard(s, DropEvent{Source: protocol.SourceGoal, CardID: "gTop", CardValue: 1}, 1)
	assert.False(t, ok)
	assert.Nil(t, intent)

	intent, ok = e.DropOnDiscard(s, DropEvent{Source: protocol.SourceHand, CardID: "h2", CardValue: 7}, 1)
	require.True(t, ok)
	assert.Equal(t, "h2", intent.CardID)

	display := e.Display(s)
	assert.Equal(t, "h2", display.Me.Discards[1][0].ID)
	assert.Len(t, display.Me.Hand, 2)
}

func TestDropGuards(t *testing.T) {
	e := NewEngine()
	s := playingSnapshot()
	s.CurrentPlayerID = "p_opp"

	_, ok := e.DropOnPile(s, DropEvent{Source: protocol.SourceHand, CardID: "h3", CardValue: 0}, 0)
	assert.False(t, ok, "off-turn drop is a silent no-op")

	_, ok = e.DropOnDiscard(s, DropEvent{Source: protocol.SourceHand, CardID: "h1", CardValue: 3}, 0)
	assert.False(t, ok)
}

func TestSyncClearsSelectionWhenTurnEnds(t *testing.T) {
	e := NewEngine()
	s := playingSnapshot()

	e.SelectHand(s, 0)
	require.NotNil(t, e.Selection())

	next := playingSnapshot()
	next.CurrentPlayerID = "p_opp"
	e.Sync(next)
	assert.Nil(t, e.Selection(), "selection never survives losing the turn")

	e.SelectHand(s, 0)
	tie := playingSnapshot()
	tie.Status = protocol.StatusResolvingTie
	e.Sync(tie)
	assert.Nil(t, e.Selection(), "phase change clears the selection")
}
