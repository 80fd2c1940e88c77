package protocol

import (
	"encoding/json"

	"counterpoint-game/internal/game"
	"counterpoint-game/internal/shared"
)

// Message represents a generic WebSocket message structure.
type Message struct {
	Type    string          `json:"type"`              // Type of the message (e.g., "join_game", "play_card")
	Payload json.RawMessage `json:"payload,omitempty"` // Raw JSON payload, allows flexible structures
}

// CardRef identifies a card by suit and rank in client messages.
type CardRef struct {
	Suit shared.Suit `json:"suit"`
	Rank string      `json:"rank"`
}

// Card converts the reference into a full card value.
func (r CardRef) Card() shared.Card {
	return shared.NewCard(r.Suit, r.Rank)
}

// --- Client -> Server Payload Structs ---

type CreateGamePayload struct {
	Name         string            `json:"name"`
	WinCondition game.WinCondition `json:"win_condition"`
}

type JoinGamePayload struct {
	Name     string `json:"name"`
	GameCode string `json:"game_code"`
}

type SubmitBidPayload struct {
	Cards []CardRef `json:"cards"` // Exactly 3 distinct cards to discard
}

type PlayCardPayload struct {
	Suit shared.Suit `json:"suit"`
	Rank string      `json:"rank"`
}

// --- Server -> Client Payload Structs ---

type GameCreatedPayload struct {
	GameCode string `json:"game_code"`
}

type LobbyUpdatePayload struct {
	Players []PlayerInfo `json:"players"`
}

type JoinErrorPayload struct {
	Message string `json:"message"`
}

type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seat int    `json:"seat"`
}

type GameStartPayload struct {
	GameID       string            `json:"game_id"`
	Players      []PlayerInfo      `json:"players"`
	WinCondition game.WinCondition `json:"win_condition"`
}

type DealHandPayload struct {
	Round int           `json:"round"`
	Hand  []shared.Card `json:"hand"`
}

type TrumpRevealPayload struct {
	Round int         `json:"round"`
	Card  shared.Card `json:"card"`
	// Active is false when the trump card is a Nine or the Joker, in which
	// case the round is played without a trump suit.
	Active bool `json:"active"`
}

type BidPromptPayload struct {
	PlayerID string        `json:"player_id"`
	Hand     []shared.Card `json:"hand"`
}

type BidAcceptedPayload struct {
	PlayerID string `json:"player_id"`
	Bid      int    `json:"bid"`
	// Discards are only sent back to the bidding player themselves.
	Discards []shared.Card `json:"discards,omitempty"`
}

type YourTurnPayload struct {
	PlayerID   string        `json:"player_id"`
	Trick      int           `json:"trick"`
	ValidMoves []shared.Card `json:"valid_moves,omitempty"`
}

type CardPlayedPayload struct {
	PlayerID string      `json:"player_id"`
	Seat     int         `json:"seat"`
	Card     shared.Card `json:"card"`
}

type TrickEndPayload struct {
	Trick    int           `json:"trick"`
	WinnerID string        `json:"winner_id"`
	Cards    []shared.Card `json:"cards"`
}

type RoundEndPayload struct {
	Summary game.RoundSummary `json:"summary"`
}

type GameOverPayload struct {
	WinnerIDs   []string           `json:"winner_ids"`
	FinalScores []game.PlayerScore `json:"final_scores"`
	Rounds      int                `json:"rounds"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
}

// NewMessage builds a JSON message envelope around the payload.
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	if payload == nil {
		msg := Message{
			Type:    msgType,
			Payload: nil,
		}
		return json.Marshal(msg)
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	msg := Message{
		Type:    msgType,
		Payload: payloadBytes,
	}
	return json.Marshal(msg)
}
