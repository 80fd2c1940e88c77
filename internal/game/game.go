package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"counterpoint-game/internal/shared"

	"github.com/google/uuid"
)

// Phase represents the current suspension point of the game state machine.
// Dealing, trump reveal, scoring and the win check run synchronously inside
// transitions; the game only waits for input while bidding or playing.
type Phase string

const (
	Bidding   Phase = "Bidding"   // Waiting for a seat to discard 3 cards
	TrickPlay Phase = "TrickPlay" // Waiting for a seat to play a card
	GameOver  Phase = "GameOver"  // Win condition reached
)

// WinMode selects how the game ends.
type WinMode string

const (
	TargetScore WinMode = "target_score" // First round where a score reaches Value
	FixedRounds WinMode = "fixed_rounds" // Exactly Value rounds are played
)

// WinCondition configures the end of the game.
type WinCondition struct {
	Mode  WinMode `json:"mode"`
	Value int     `json:"value"`
}

// Validate checks the configuration. The 1-or-multiple-of-3 rule for fixed
// rounds is a front-end concern and deliberately not enforced here.
func (w WinCondition) Validate() error {
	switch w.Mode {
	case TargetScore, FixedRounds:
		if w.Value <= 0 {
			return fmt.Errorf("win condition value must be positive, got %d", w.Value)
		}
		return nil
	default:
		return fmt.Errorf("unknown win mode %q", w.Mode)
	}
}

// Game is the CounterPoint engine state machine. It is independent of any
// presentation: callers read CurrentPrompt for the acting seat and its legal
// actions, then advance the game with SubmitBid or SubmitPlay. The mutex
// doubles as the turn guard a multi-client host needs.
type Game struct {
	ID string

	mu      sync.Mutex
	players []*shared.Player // seat order; rotated left after each round
	win     WinCondition
	rng     *rand.Rand

	phase        Phase
	round        int
	trumpCard    shared.Card
	trumpActive  bool
	biddingSeat  int
	trickNumber  int // 1..TricksPerRound within a round
	currentTrick *shared.Trick
	turnSeat     int

	rounds  []RoundSummary
	tricks  []TrickRecord
	winners []string // player IDs, set when the game ends
}

// Option customizes a new game.
type Option func(*Game)

// WithSeed makes shuffles reproducible: the same seed and action sequence
// yields an identical game.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// NewGame initializes a game with exactly three named players and a win
// condition, deals the first round and leaves the game awaiting seat 0's bid.
func NewGame(names [3]string, win WinCondition, opts ...Option) (*Game, error) {
	if err := win.Validate(); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("player name cannot be empty")
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate player name %q", name)
		}
		seen[name] = true
	}

	g := &Game{
		ID:  uuid.NewString(),
		win: win,
	}
	for _, name := range names {
		g.players = append(g.players, shared.NewPlayer(uuid.NewString(), name))
	}
	for _, opt := range opts {
		opt(g)
	}

	g.startRound()
	slog.Info("game created", "game", g.ID, "mode", win.Mode, "value", win.Value)
	return g, nil
}

// startRound runs Setup, Dealing and TrumpReveal, then suspends in Bidding.
func (g *Game) startRound() {
	g.round++
	for _, p := range g.players {
		p.ResetForRound()
	}

	deck := shared.NewDeck()
	deck.Shuffle(g.rng)
	hands := deck.Deal(shared.NumPlayers, shared.CardsPerPlayer)
	if hands == nil {
		panic("game: deal from a full deck failed")
	}
	for i, hand := range hands {
		g.players[i].Hand = hand
	}

	trump, ok := deck.RevealTrump()
	if !ok {
		panic("game: no trump card left after dealing")
	}
	g.trumpCard = trump
	g.trumpActive = !trump.IsJoker() && trump.Rank != shared.Nine

	g.phase = Bidding
	g.biddingSeat = 0
	g.trickNumber = 0
	g.currentTrick = nil
	g.turnSeat = 0

	slog.Debug("round started", "game", g.ID, "round", g.round,
		"trump", g.trumpCard.String(), "trump_active", g.trumpActive)
}

// rotateSeats moves the dealer left: the front player goes to the back.
func (g *Game) rotateSeats() {
	g.players = append(g.players[1:], g.players[0])
}

func (g *Game) seatOf(playerID string) int {
	for i, p := range g.players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// Prompt identifies the acting seat and its legal actions at the current
// suspension point. It is a read-only projection for any front end.
type Prompt struct {
	Phase      Phase         `json:"phase"`
	Round      int           `json:"round"`
	Trick      int           `json:"trick,omitempty"`
	Seat       int           `json:"seat"`
	PlayerID   string        `json:"player_id,omitempty"`
	LegalCards []shared.Card `json:"legal_cards,omitempty"`
}

// CurrentPrompt returns the pending prompt. During bidding the legal cards
// are the full hand (any 3 may be discarded); during trick play they are
// follow-suit filtered.
func (g *Game) CurrentPrompt() Prompt {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.phase {
	case Bidding:
		p := g.players[g.biddingSeat]
		return Prompt{
			Phase:      Bidding,
			Round:      g.round,
			Seat:       g.biddingSeat,
			PlayerID:   p.ID,
			LegalCards: append([]shared.Card(nil), p.Hand...),
		}
	case TrickPlay:
		p := g.players[g.turnSeat]
		return Prompt{
			Phase:      TrickPlay,
			Round:      g.round,
			Trick:      g.trickNumber,
			Seat:       g.turnSeat,
			PlayerID:   p.ID,
			LegalCards: g.legalPlaysLocked(p),
		}
	default:
		return Prompt{Phase: GameOver, Round: g.round, Seat: -1}
	}
}

// SeatInfo pairs a stable player identity with its current seat.
type SeatInfo struct {
	Seat     int    `json:"seat"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// Seating returns the players in current seat order.
func (g *Game) Seating() []SeatInfo {
	g.mu.Lock()
	defer g.mu.Unlock()

	seats := make([]SeatInfo, len(g.players))
	for i, p := range g.players {
		seats[i] = SeatInfo{Seat: i, PlayerID: p.ID, Name: p.Name}
	}
	return seats
}

// PlayerScore is a scoreboard entry.
type PlayerScore struct {
	PlayerID string       `json:"player_id"`
	Name     string       `json:"name"`
	Score    int          `json:"score"`
	Stats    shared.Stats `json:"stats"`
}

// Scoreboard returns cumulative scores and stats in current seat order.
func (g *Game) Scoreboard() []PlayerScore {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scoreboardLocked()
}

func (g *Game) scoreboardLocked() []PlayerScore {
	board := make([]PlayerScore, len(g.players))
	for i, p := range g.players {
		board[i] = PlayerScore{PlayerID: p.ID, Name: p.Name, Score: p.Score, Stats: p.Stats}
	}
	return board
}

// HandOf returns a copy of the named player's current hand.
func (g *Game) HandOf(playerID string) ([]shared.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat := g.seatOf(playerID)
	if seat == -1 {
		return nil, ErrUnknownPlayer
	}
	return append([]shared.Card(nil), g.players[seat].Hand...), nil
}

// TrumpCard returns the revealed trump card and whether a trump suit is
// active this round (it is not when the card is a Nine or the Joker).
func (g *Game) TrumpCard() (shared.Card, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.trumpCard, g.trumpActive
}

// Round returns the 1-based current round number.
func (g *Game) Round() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.round
}

// RoundSummaries returns the score breakdown of every completed round.
func (g *Game) RoundSummaries() []RoundSummary {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]RoundSummary(nil), g.rounds...)
}

// TrickHistory returns every resolved trick of the game so far.
func (g *Game) TrickHistory() []TrickRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]TrickRecord(nil), g.tricks...)
}

// Winners returns the co-winner IDs once the game is over. All players tied
// for the maximum cumulative score share the win.
func (g *Game) Winners() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.winners...)
}
