package client

import (
	"github.com/ovalle/stockpile/internal/network/protocol"
)

// Card aliases the wire card; the engine never reshapes it.
type Card = protocol.Card

// Selection is the ephemeral, client-only origin of a pending move.
// It is cleared on submit, on re-click of the same card, and on any
// snapshot where it is not the local player's turn.
type Selection struct {
	Source protocol.Source
	Index  int
	CardID string
}

// MoveIntent is sent to the server and never applied permanently to
// local state; the next snapshot is the only durable record.
type MoveIntent struct {
	CardID      string
	Source      protocol.Source
	TargetIndex int
	SourceIndex *int
}

// DiscardIntent moves a hand card onto a discard slot.
type DiscardIntent struct {
	CardID      string
	TargetIndex int
}

// DropEvent is the payload the drag layer produces. The drag gesture
// itself is a black box; only the drop matters here.
type DropEvent struct {
	Source      protocol.Source
	CardID      string
	SourceIndex int // discard slot of origin; ignored otherwise
	CardValue   int
}

// Engine validates selection and move events against the current
// snapshot and keeps the optimistic overlay. All methods are no-ops
// when it is not the local player's turn or the game has ended;
// violations are silent, never user-visible errors.
type Engine struct {
	sel     *Selection
	overlay Overlay
}

// NewEngine creates an engine with no selection and an empty overlay.
func NewEngine() *Engine {
	return &Engine{}
}

// Sync observes a new authoritative snapshot: the overlay is always
// discarded, and the selection is cleared unless the player can still
// act.
func (e *Engine) Sync(s *protocol.GameSnapshot) {
	e.overlay.Reset()

	if s == nil || !s.IsMyTurn() || s.Status != protocol.StatusPlaying {
		e.sel = nil
	}
}

// Selection returns the active selection, or nil.
func (e *Engine) Selection() *Selection {
	return e.sel
}

// ClearSelection drops the active selection.
func (e *Engine) ClearSelection() {
	e.sel = nil
}

// Display returns the snapshot with pending speculative moves applied.
func (e *Engine) Display(s *protocol.GameSnapshot) *protocol.GameSnapshot {
	return e.overlay.Display(s)
}

// canAct is the guard every entry point runs first.
func canAct(s *protocol.GameSnapshot) bool {
	return s != nil && s.IsMyTurn() && !s.IsFinished()
}

// SelectHand selects the i-th hand card as a move origin.
func (e *Engine) SelectHand(s *protocol.GameSnapshot, i int) {
	if !canAct(s) || i < 0 || i >= len(s.Me.Hand) {
		return
	}
	e.toggle(protocol.SourceHand, i, s.Me.Hand[i].ID)
}

// SelectGoal selects the top card of the goal pile. Cards beneath are
// inaccessible.
func (e *Engine) SelectGoal(s *protocol.GameSnapshot) {
	if !canAct(s) {
		return
	}
	top := protocol.TopCard(s.Me.GoalPile)
	if top == nil {
		return
	}
	e.toggle(protocol.SourceGoal, 0, top.ID)
}

// SelectDiscard selects the top card of a discard slot.
func (e *Engine) SelectDiscard(s *protocol.GameSnapshot, slot int) {
	if !canAct(s) || slot < 0 || slot >= len(s.Me.Discards) {
		return
	}
	top := protocol.TopCard(s.Me.Discards[slot])
	if top == nil {
		return
	}
	e.toggle(protocol.SourceDiscard, slot, top.ID)
}

// toggle records a selection, or clears it when the same card is
// selected again.
func (e *Engine) toggle(source protocol.Source, index int, cardID string) {
	if e.sel != nil && e.sel.CardID == cardID {
		e.sel = nil
		return
	}
	e.sel = &Selection{Source: source, Index: index, CardID: cardID}
}

// ClickPile turns an active selection plus a common-pile click into a
// move intent. The selection clears immediately; the UI does not wait
// for the server, but it does not mutate the snapshot either.
func (e *Engine) ClickPile(s *protocol.GameSnapshot, targetIndex int) *MoveIntent {
	if !canAct(s) || e.sel == nil {
		return nil
	}
	if targetIndex < 0 || targetIndex >= len(s.CommonPiles) {
		return nil
	}

	intent := &MoveIntent{
		CardID:      e.sel.CardID,
		Source:      e.sel.Source,
		TargetIndex: targetIndex,
	}
	// Hand and goal have no ambiguous origin index.
	if e.sel.Source == protocol.SourceDiscard {
		idx := e.sel.Index
		intent.SourceIndex = &idx
	}

	e.sel = nil
	return intent
}

// ClickDiscardSlot either discards the selected hand card onto the slot
// or, with no hand selection, selects the slot's top card.
func (e *Engine) ClickDiscardSlot(s *protocol.GameSnapshot, slot int) *DiscardIntent {
	if !canAct(s) || slot < 0 || slot >= len(s.Me.Discards) {
		return nil
	}

	if e.sel != nil && e.sel.Source == protocol.SourceHand {
		intent := &DiscardIntent{CardID: e.sel.CardID, TargetIndex: slot}
		e.sel = nil
		return intent
	}

	e.SelectDiscard(s, slot)
	return nil
}

// DropOnPile runs the local pre-check mirroring the server's placement
// rule. A failed check rejects the drop outright: no visual transfer,
// no network message. A passed check applies the speculative transfer
// and returns the intent to emit.
func (e *Engine) DropOnPile(s *protocol.GameSnapshot, drop DropEvent, targetIndex int) (*MoveIntent, bool) {
	if !canAct(s) || targetIndex < 0 || targetIndex >= len(s.CommonPiles) {
		return nil, false
	}

	if !protocol.Playable(drop.CardValue, len(s.CommonPiles[targetIndex])) {
		return nil, false
	}

	move := specMove{
		cardID:      drop.CardID,
		source:      drop.Source,
		target:      targetCommonPile,
		targetIndex: targetIndex,
	}

	intent := &MoveIntent{
		CardID:      drop.CardID,
		Source:      drop.Source,
		TargetIndex: targetIndex,
	}
	if drop.Source == protocol.SourceDiscard {
		idx := drop.SourceIndex
		move.sourceIndex = idx
		intent.SourceIndex = &idx
	}

	e.overlay.Add(move)
	e.sel = nil
	return intent, true
}

// DropOnDiscard accepts hand-origin drops only; discard is not
// reachable from goal or another discard slot.
func (e *Engine) DropOnDiscard(s *protocol.GameSnapshot, drop DropEvent, slot int) (*DiscardIntent, bool) {
	if !canAct(s) || slot < 0 || slot >= len(s.Me.Discards) {
		return nil, false
	}
	if drop.Source != protocol.SourceHand {
		return nil, false
	}

	e.overlay.Add(specMove{
		cardID:      drop.CardID,
		source:      protocol.SourceHand,
		target:      targetDiscardSlot,
		targetIndex: slot,
	})
	e.sel = nil

	return &DiscardIntent{CardID: drop.CardID, TargetIndex: slot}, true
}
