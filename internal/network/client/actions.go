package client

import (
	"github.com/ovalle/stockpile/internal/network/protocol"
)

// --- Convenience senders ---

// CreateGame asks the server to open a new game.
func (c *Client) CreateGame(playerID, playerName string, goalSize int) error {
	return c.Send(protocol.MustNewMessage(protocol.MsgCreateGame, protocol.CreateGamePayload{
		PlayerID:   playerID,
		PlayerName: playerName,
		GoalSize:   goalSize,
	}))
}

// JoinGame joins (or re-joins, which doubles as a state re-request) a
// game. At most one join is in flight per game context; callers must
// release the latch with FinishJoin once the server answers.
func (c *Client) JoinGame(gameID, playerID, playerName string) error {
	if !c.joinInFlight.CompareAndSwap(false, true) {
		return ErrJoinInFlight
	}

	err := c.Send(protocol.MustNewMessage(protocol.MsgJoinGame, protocol.JoinGamePayload{
		GameID:     gameID,
		PlayerID:   playerID,
		PlayerName: playerName,
	}))
	if err != nil {
		c.joinInFlight.Store(false)
	}
	return err
}

// FinishJoin releases the single-in-flight join latch. Called when any
// snapshot or error arrives for the pending handshake.
func (c *Client) FinishJoin() {
	c.joinInFlight.Store(false)
}

// PlayCard submits a move intent. sourceIndex travels only for discard
// origins.
func (c *Client) PlayCard(gameID, playerID, cardID string, source protocol.Source, targetIndex int, sourceIndex *int) error {
	return c.Send(protocol.MustNewMessage(protocol.MsgPlayCard, protocol.PlayCardPayload{
		GameID:      gameID,
		PlayerID:    playerID,
		CardID:      cardID,
		Source:      source,
		TargetIndex: targetIndex,
		SourceIndex: sourceIndex,
	}))
}

// Discard moves a hand card to a discard slot.
func (c *Client) Discard(gameID, playerID, cardID string, targetIndex int) error {
	return c.Send(protocol.MustNewMessage(protocol.MsgDiscardCard, protocol.DiscardCardPayload{
		GameID:      gameID,
		PlayerID:    playerID,
		CardID:      cardID,
		TargetIndex: targetIndex,
	}))
}

// ChooseRps submits a tie-breaker choice.
func (c *Client) ChooseRps(gameID, playerID string, choice protocol.RpsChoice) error {
	return c.Send(protocol.MustNewMessage(protocol.MsgRpsChoice, protocol.RpsChoicePayload{
		GameID:   gameID,
		PlayerID: playerID,
		Choice:   choice,
	}))
}
