package protocol

import "encoding/json"

// --- Client request payloads ---

// CreateGamePayload opens a new game.
type CreateGamePayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	GoalSize   int    `json:"goalSize"`
}

// JoinGamePayload joins an existing game. Also doubles as the resync
// request: re-joining a game the player is already in makes the server
// push a fresh snapshot.
type JoinGamePayload struct {
	GameID     string `json:"gameId"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// PlayCardPayload plays a card onto a common pile. SourceIndex is set
// only when the card comes from a discard slot; hand and goal have no
// ambiguous origin.
type PlayCardPayload struct {
	GameID      string `json:"gameId"`
	PlayerID    string `json:"playerId"`
	CardID      string `json:"cardId"`
	Source      Source `json:"source"`
	TargetIndex int    `json:"targetIndex"`
	SourceIndex *int   `json:"sourceIndex,omitempty"`
}

// DiscardCardPayload moves a hand card onto a discard slot, ending the
// turn.
type DiscardCardPayload struct {
	GameID      string `json:"gameId"`
	PlayerID    string `json:"playerId"`
	CardID      string `json:"cardId"`
	TargetIndex int    `json:"targetIndex"`
}

// RpsChoicePayload submits a tie-breaker choice.
type RpsChoicePayload struct {
	GameID   string    `json:"gameId"`
	PlayerID string    `json:"playerId"`
	Choice   RpsChoice `json:"choice"`
}

// --- Server payloads ---

// errorObject is the structured form of an error event.
type errorObject struct {
	Message string `json:"message"`
}

// ParseErrorPayload extracts the message from an error event. The server
// emits either a bare string or {"message": "..."}.
func ParseErrorPayload(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj errorObject
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Message
	}

	return string(raw)
}
