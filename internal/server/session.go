package server

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"counterpoint-game/internal/database"
	"counterpoint-game/internal/game"
	"counterpoint-game/internal/protocol"
	"counterpoint-game/internal/shared"
)

// GameSession drives one engine instance over the hub: it maps engine
// player identities to connected clients, relays every engine prompt as a
// message to the acting client, and persists the final result. The engine
// itself knows nothing about clients or messages.
type GameSession struct {
	Code string

	mu     sync.Mutex
	game   *game.Game
	db     *database.Service
	sender MessageSender
	closed bool

	clientByPlayer map[string]string // engine player ID -> client ID
	playerByClient map[string]string // client ID -> engine player ID
}

// NewGameSession creates the engine for three seated clients. Seat order is
// the lobby join order.
func NewGameSession(code string, clients []*Client, win game.WinCondition, db *database.Service, sender MessageSender) (*GameSession, error) {
	names := [3]string{clients[0].Name, clients[1].Name, clients[2].Name}
	g, err := game.NewGame(names, win)
	if err != nil {
		return nil, err
	}

	s := &GameSession{
		Code:           code,
		game:           g,
		db:             db,
		sender:         sender,
		clientByPlayer: make(map[string]string),
		playerByClient: make(map[string]string),
	}
	for i, seat := range g.Seating() {
		s.clientByPlayer[seat.PlayerID] = clients[i].ID
		s.playerByClient[clients[i].ID] = seat.PlayerID
	}
	return s, nil
}

// Start announces the game and relays the first round's deal and prompt.
func (s *GameSession) Start(win game.WinCondition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var infos []protocol.PlayerInfo
	for _, seat := range s.game.Seating() {
		infos = append(infos, protocol.PlayerInfo{ID: seat.PlayerID, Name: seat.Name, Seat: seat.Seat})
	}
	s.broadcast("game_start", protocol.GameStartPayload{
		GameID:       s.game.ID,
		Players:      infos,
		WinCondition: win,
	})

	s.sendRoundOpening()
	s.sendPrompt()
}

// sendRoundOpening sends each player their hand and broadcasts the trump.
func (s *GameSession) sendRoundOpening() {
	round := s.game.Round()
	for _, seat := range s.game.Seating() {
		hand, err := s.game.HandOf(seat.PlayerID)
		if err != nil {
			slog.Error("hand lookup failed", "session", s.Code, "player", seat.PlayerID, "err", err)
			continue
		}
		s.sendToPlayer(seat.PlayerID, "deal_hand", protocol.DealHandPayload{Round: round, Hand: hand})
	}

	trump, active := s.game.TrumpCard()
	s.broadcast("trump_reveal", protocol.TrumpRevealPayload{Round: round, Card: trump, Active: active})
}

// sendPrompt relays the engine's pending prompt to the acting client.
func (s *GameSession) sendPrompt() {
	prompt := s.game.CurrentPrompt()
	switch prompt.Phase {
	case game.Bidding:
		s.sendToPlayer(prompt.PlayerID, "bid_prompt", protocol.BidPromptPayload{
			PlayerID: prompt.PlayerID,
			Hand:     prompt.LegalCards,
		})
	case game.TrickPlay:
		s.sendToPlayer(prompt.PlayerID, "your_turn", protocol.YourTurnPayload{
			PlayerID:   prompt.PlayerID,
			Trick:      prompt.Trick,
			ValidMoves: prompt.LegalCards,
		})
	}
}

// HandleSubmitBid processes a submit_bid message from a client.
func (s *GameSession) HandleSubmitBid(clientID string, msg protocol.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	playerID, ok := s.playerByClient[clientID]
	if !ok {
		return
	}

	var payload protocol.SubmitBidPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.sendError(playerID, "Invalid submit_bid message.")
		return
	}

	discards := make([]shared.Card, len(payload.Cards))
	for i, ref := range payload.Cards {
		discards[i] = ref.Card()
	}

	outcome, err := s.game.SubmitBid(playerID, discards)
	if err != nil {
		s.sendError(playerID, err.Error())
		return
	}

	// The bid value is public; the discarded cards go only to the bidder.
	s.broadcastExcept(playerID, "bid_accepted", protocol.BidAcceptedPayload{PlayerID: playerID, Bid: outcome.Bid})
	s.sendToPlayer(playerID, "bid_accepted", protocol.BidAcceptedPayload{
		PlayerID: playerID,
		Bid:      outcome.Bid,
		Discards: discards,
	})

	s.sendPrompt()
}

// HandlePlayCard processes a play_card message from a client.
func (s *GameSession) HandlePlayCard(clientID string, msg protocol.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	playerID, ok := s.playerByClient[clientID]
	if !ok {
		return
	}

	var payload protocol.PlayCardPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.sendError(playerID, "Invalid play_card message.")
		return
	}

	outcome, err := s.game.SubmitPlay(playerID, shared.NewCard(payload.Suit, payload.Rank))
	if err != nil {
		s.sendError(playerID, err.Error())
		return
	}

	s.broadcast("card_played", protocol.CardPlayedPayload{
		PlayerID: outcome.PlayerID,
		Seat:     outcome.Seat,
		Card:     outcome.Card,
	})

	if outcome.TrickComplete {
		s.broadcastTrickEnd(outcome)
	}
	if outcome.RoundComplete {
		s.broadcast("round_end", protocol.RoundEndPayload{Summary: *outcome.RoundSummary})
	}

	if outcome.GameOver {
		s.finish()
		return
	}
	if outcome.RoundComplete {
		// The engine has already rotated seats and dealt the next round.
		s.sendRoundOpening()
	}
	s.sendPrompt()
}

func (s *GameSession) broadcastTrickEnd(outcome *game.PlayOutcome) {
	history := s.game.TrickHistory()
	last := history[len(history)-1]
	cards := make([]shared.Card, len(last.Plays))
	for i, play := range last.Plays {
		cards[i] = play.Card
	}
	s.broadcast("trick_end", protocol.TrickEndPayload{
		Trick:    outcome.TrickNumber,
		WinnerID: outcome.WinnerID,
		Cards:    cards,
	})
}

// finish persists the result and closes the session.
func (s *GameSession) finish() {
	s.closed = true

	board := s.game.Scoreboard()
	winners := s.game.Winners()

	s.broadcast("game_over", protocol.GameOverPayload{
		WinnerIDs:   winners,
		FinalScores: board,
		Rounds:      s.game.Round(),
	})

	winnerNames := make([]string, 0, len(winners))
	for _, id := range winners {
		for _, p := range board {
			if p.PlayerID == id {
				winnerNames = append(winnerNames, p.Name)
			}
		}
	}
	result := database.GameResult{
		ID:        s.game.ID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Player1:   board[0].Name,
		Player2:   board[1].Name,
		Player3:   board[2].Name,
		Score1:    board[0].Score,
		Score2:    board[1].Score,
		Score3:    board[2].Score,
		Rounds:    s.game.Round(),
		Winners:   strings.Join(winnerNames, ","),
	}
	if err := s.db.Insert(result); err != nil {
		slog.Error("failed to store game result", "session", s.Code, "err", err)
	}
	slog.Info("game finished", "session", s.Code, "winners", winnerNames)
}

// HandleDisconnect aborts the game when any of the three players leaves.
func (s *GameSession) HandleDisconnect(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	playerID, ok := s.playerByClient[clientID]
	if !ok {
		return
	}
	s.closed = true
	s.broadcast("player_left", protocol.PlayerLeftPayload{PlayerID: playerID})
	slog.Info("game aborted on disconnect", "session", s.Code, "player", playerID)
}

// Closed reports whether the session has finished or been aborted.
func (s *GameSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// --- messaging helpers ---

func (s *GameSession) broadcast(msgType string, payload interface{}) {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		slog.Error("failed to encode message", "type", msgType, "err", err)
		return
	}
	for _, clientID := range s.clientByPlayer {
		s.sender(clientID, msg)
	}
}

func (s *GameSession) broadcastExcept(exceptPlayerID, msgType string, payload interface{}) {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		slog.Error("failed to encode message", "type", msgType, "err", err)
		return
	}
	for playerID, clientID := range s.clientByPlayer {
		if playerID != exceptPlayerID {
			s.sender(clientID, msg)
		}
	}
}

func (s *GameSession) sendToPlayer(playerID, msgType string, payload interface{}) {
	clientID, ok := s.clientByPlayer[playerID]
	if !ok {
		return
	}
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		slog.Error("failed to encode message", "type", msgType, "err", err)
		return
	}
	s.sender(clientID, msg)
}

func (s *GameSession) sendError(playerID, errorMsg string) {
	s.sendToPlayer(playerID, "error", protocol.ErrorPayload{Message: errorMsg})
}
