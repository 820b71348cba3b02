package client

import (
	"github.com/ovalle/stockpile/internal/network/protocol"
)

// targetKind says where a speculative move lands.
type targetKind int

const (
	targetCommonPile targetKind = iota
	targetDiscardSlot
)

// specMove is one speculative, non-authoritative card transfer applied
// for immediate feedback while the real move is in flight.
type specMove struct {
	cardID      string
	source      protocol.Source
	sourceIndex int // discard slot when source is discard
	target      targetKind
	targetIndex int
}

// Overlay keeps the authoritative snapshot immutable and computes a
// derived display snapshot with pending speculative moves applied. It
// is discarded whenever a new authoritative snapshot supersedes it.
type Overlay struct {
	moves []specMove
}

// Add records a speculative move.
func (o *Overlay) Add(m specMove) {
	o.moves = append(o.moves, m)
}

// Reset drops all pending moves. Called on every authoritative apply:
// whichever arrives first wins visually until the real snapshot lands.
func (o *Overlay) Reset() {
	o.moves = nil
}

// Empty reports whether any speculative move is pending.
func (o *Overlay) Empty() bool {
	return len(o.moves) == 0
}

// Display returns the authoritative snapshot with the overlay applied.
// The input is never mutated. With an empty overlay the input is
// returned as-is.
func (o *Overlay) Display(s *protocol.GameSnapshot) *protocol.GameSnapshot {
	if s == nil || len(o.moves) == 0 {
		return s
	}

	out := cloneForDisplay(s)
	for _, m := range o.moves {
		applyMove(out, m)
	}
	return out
}

// cloneForDisplay copies the parts a local move can touch: the common
// piles and the local player's piles. The opponent view is shared.
func cloneForDisplay(s *protocol.GameSnapshot) *protocol.GameSnapshot {
	out := *s

	out.CommonPiles = clonePiles(s.CommonPiles)
	out.Me.Hand = cloneCards(s.Me.Hand)
	out.Me.GoalPile = cloneCards(s.Me.GoalPile)
	out.Me.Discards = clonePiles(s.Me.Discards)

	return &out
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

func clonePiles(piles [][]Card) [][]Card {
	if piles == nil {
		return nil
	}
	out := make([][]Card, len(piles))
	for i, pile := range piles {
		out[i] = cloneCards(pile)
	}
	return out
}

// applyMove transfers one card inside the display copy. A card that is
// no longer where the move expects it is skipped; the next snapshot is
// about to correct everything anyway.
func applyMove(s *protocol.GameSnapshot, m specMove) {
	card, ok := takeCard(s, m)
	if !ok {
		return
	}

	switch m.target {
	case targetCommonPile:
		if m.targetIndex >= 0 && m.targetIndex < len(s.CommonPiles) {
			s.CommonPiles[m.targetIndex] = append(s.CommonPiles[m.targetIndex], card)
		}
	case targetDiscardSlot:
		if m.targetIndex >= 0 && m.targetIndex < len(s.Me.Discards) {
			s.Me.Discards[m.targetIndex] = append(s.Me.Discards[m.targetIndex], card)
		}
	}
}

func takeCard(s *protocol.GameSnapshot, m specMove) (Card, bool) {
	switch m.source {
	case protocol.SourceHand:
		for i, c := range s.Me.Hand {
			if c.ID == m.cardID {
				s.Me.Hand = append(s.Me.Hand[:i], s.Me.Hand[i+1:]...)
				return c, true
			}
		}

	case protocol.SourceGoal:
		if top := protocol.TopCard(s.Me.GoalPile); top != nil && top.ID == m.cardID {
			c := *top
			s.Me.GoalPile = s.Me.GoalPile[:len(s.Me.GoalPile)-1]
			return c, true
		}

	case protocol.SourceDiscard:
		if m.sourceIndex < 0 || m.sourceIndex >= len(s.Me.Discards) {
			break
		}
		slot := s.Me.Discards[m.sourceIndex]
		if top := protocol.TopCard(slot); top != nil && top.ID == m.cardID {
			c := *top
			s.Me.Discards[m.sourceIndex] = slot[:len(slot)-1]
			return c, true
		}
	}

	return Card{}, false
}
