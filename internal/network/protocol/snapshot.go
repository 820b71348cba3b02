package protocol

// GameStatus is the coarse game-flow stage carried in every snapshot.
type GameStatus string

const (
	StatusWaiting      GameStatus = "waiting"
	StatusResolvingTie GameStatus = "resolving_tie"
	StatusPlaying      GameStatus = "playing"
	StatusFinished     GameStatus = "finished"
)

// Source identifies where a played card came from.
type Source string

const (
	SourceHand    Source = "hand"
	SourceGoal    Source = "goal"
	SourceDiscard Source = "discard"
)

// WildValue is the card value the server uses for the wild card.
const WildValue = 0

// Card is immutable once dealt. Identity is by ID, not value; the deck
// holds duplicate values.
type Card struct {
	ID           string `json:"id"`
	Value        int    `json:"value"`
	IsWild       bool   `json:"isWild"`
	DisplayColor string `json:"displayColor"`
}

// PlayerView is one player's visible state. Piles are stacks, top = last.
type PlayerView struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Hand          []Card   `json:"hand"`
	GoalPile      []Card   `json:"goalPile"`
	GoalRemaining int      `json:"goalRemaining"`
	Discards      [][]Card `json:"discards"`
}

// GameSnapshot is the complete game state at one instant. The server
// produces it atomically; each one fully replaces the previous.
type GameSnapshot struct {
	GameID              string           `json:"gameId"`
	Status              GameStatus       `json:"status"`
	CurrentPlayerID     string           `json:"currentPlayerId"`
	DrawPileCount       int              `json:"drawPileCount"`
	CommonPiles         [][]Card         `json:"commonPiles"`
	Me                  PlayerView       `json:"me"`
	Opponent            *PlayerView      `json:"opponent"`
	PilesToRecycleCount int              `json:"pilesToRecycleCount"`
	WinnerID            string           `json:"winnerId,omitempty"`
	TieBreaker          *TieBreakerState `json:"tieBreaker,omitempty"`
}

// RpsChoice is a tie-breaker option. Empty means not chosen yet.
type RpsChoice string

const (
	RpsRock     RpsChoice = "rock"
	RpsPaper    RpsChoice = "paper"
	RpsScissors RpsChoice = "scissors"
)

// RpsResult is the outcome of one tie-breaker round.
type RpsResult string

const (
	RpsDraw    RpsResult = "draw"
	RpsP1Wins  RpsResult = "p1_wins"
	RpsP2Wins  RpsResult = "p2_wins"
	RpsPending RpsResult = ""
)

// TieBreakerState is embedded in the snapshot while status is
// resolving_tie. RoundID strictly increases within one episode; a new
// RoundID invalidates any locally cached choice.
type TieBreakerState struct {
	Player1ID  string    `json:"player1Id"`
	Player2ID  string    `json:"player2Id"`
	P1Choice   RpsChoice `json:"p1Choice"`
	P2Choice   RpsChoice `json:"p2Choice"`
	LastResult RpsResult `json:"lastResult"`
	RoundID    int       `json:"roundId"`
}

// TopCard returns the top of a stack, or nil when empty.
func TopCard(pile []Card) *Card {
	if len(pile) == 0 {
		return nil
	}
	return &pile[len(pile)-1]
}

// IsMyTurn reports whether the local player may act on this snapshot.
func (s *GameSnapshot) IsMyTurn() bool {
	return s.CurrentPlayerID != "" && s.CurrentPlayerID == s.Me.ID
}

// IsFinished reports whether the game has ended.
func (s *GameSnapshot) IsFinished() bool {
	return s.Status == StatusFinished
}

// Playable reports whether a card value may land on a common pile: wild
// always, otherwise the value must extend the ascending run by one.
func Playable(value int, pileLen int) bool {
	return value == WildValue || value == pileLen+1
}
