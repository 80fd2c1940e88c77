package game

import (
	"log/slog"

	"counterpoint-game/internal/shared"
)

// TrickRecord is the audit trail of one resolved trick.
type TrickRecord struct {
	Round      int                 `json:"round"`
	Number     int                 `json:"number"`
	Plays      []shared.PlayedCard `json:"plays"`
	WinnerSeat int                 `json:"winner_seat"`
	WinnerID   string              `json:"winner_id"`
}

// PlayOutcome reports what an accepted play caused: at most one trick
// resolution, which may in turn complete the round and end the game. When
// RoundComplete is set and GameOver is not, the next round has already been
// dealt and the game is awaiting the first bid.
type PlayOutcome struct {
	PlayerID string      `json:"player_id"`
	Seat     int         `json:"seat"`
	Card     shared.Card `json:"card"`

	TrickComplete bool   `json:"trick_complete"`
	TrickNumber   int    `json:"trick_number,omitempty"`
	WinnerSeat    int    `json:"winner_seat,omitempty"`
	WinnerID      string `json:"winner_id,omitempty"`

	RoundComplete bool          `json:"round_complete"`
	RoundSummary  *RoundSummary `json:"round_summary,omitempty"`

	GameOver bool `json:"game_over"`
}

// LegalPlays returns the cards the named player may play right now, with
// the follow-suit rule applied. Empty unless it is the player's turn.
func (g *Game) LegalPlays(playerID string) []shared.Card {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != TrickPlay {
		return nil
	}
	seat := g.seatOf(playerID)
	if seat != g.turnSeat {
		return nil
	}
	return g.legalPlaysLocked(g.players[seat])
}

// legalPlaysLocked applies the follow-suit rule: if a suit was led and the
// player holds it, only that suit is playable; otherwise the whole hand is.
// A Joker lead has no suit and imposes no constraint.
func (g *Game) legalPlaysLocked(p *shared.Player) []shared.Card {
	led := shared.NoSuit
	if g.currentTrick != nil {
		led = g.currentTrick.LedSuit()
	}
	if led == shared.NoSuit || !p.HasSuit(led) {
		return append([]shared.Card(nil), p.Hand...)
	}
	var legal []shared.Card
	for _, c := range p.Hand {
		if c.Suit == led {
			legal = append(legal, c)
		}
	}
	return legal
}

// SubmitPlay plays a single card for the acting seat. The card is matched
// by suit and rank against the player's hand. A completed trick is resolved
// immediately: the winner collects the cards and leads the next trick; the
// ninth trick triggers scoring, the win check and, if the game continues,
// the dealer rotation and next deal.
func (g *Game) SubmitPlay(playerID string, card shared.Card) (*PlayOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != TrickPlay {
		return nil, ErrWrongPhase
	}
	seat := g.seatOf(playerID)
	if seat == -1 {
		return nil, ErrUnknownPlayer
	}
	if seat != g.turnSeat {
		return nil, ErrNotPlayersTurn
	}
	player := g.players[seat]
	played, ok := player.FindCard(card.Suit, card.Rank)
	if !ok {
		return nil, ErrCardNotInHand
	}

	led := g.currentTrick.LedSuit()
	if len(g.currentTrick.Cards) > 0 && led != shared.NoSuit &&
		played.Suit != led && player.HasSuit(led) {
		return nil, ErrIllegalSuit
	}

	player.RemoveCard(played)
	g.currentTrick.AddCard(played, seat, player.ID)
	slog.Debug("card played", "game", g.ID, "round", g.round,
		"trick", g.trickNumber, "seat", seat, "card", played.String())

	outcome := &PlayOutcome{PlayerID: player.ID, Seat: seat, Card: played}

	if len(g.currentTrick.Cards) < shared.NumPlayers {
		g.turnSeat = (g.turnSeat + 1) % shared.NumPlayers
		return outcome, nil
	}

	g.resolveTrick(outcome)
	return outcome, nil
}

// resolveTrick concludes the current trick and drives the round forward.
func (g *Game) resolveTrick(outcome *PlayOutcome) {
	winnerSeat := g.currentTrick.DetermineWinner(g.trumpCard.Suit, g.trumpActive)
	winner := g.players[winnerSeat]
	for _, play := range g.currentTrick.Cards {
		winner.CardsWon = append(winner.CardsWon, play.Card)
	}
	winner.TricksWon++

	g.tricks = append(g.tricks, TrickRecord{
		Round:      g.round,
		Number:     g.trickNumber,
		Plays:      append([]shared.PlayedCard(nil), g.currentTrick.Cards...),
		WinnerSeat: winnerSeat,
		WinnerID:   winner.ID,
	})

	outcome.TrickComplete = true
	outcome.TrickNumber = g.trickNumber
	outcome.WinnerSeat = winnerSeat
	outcome.WinnerID = winner.ID

	slog.Debug("trick resolved", "game", g.ID, "round", g.round,
		"trick", g.trickNumber, "winner", winner.Name)

	if g.trickNumber < shared.TricksPerRound {
		g.trickNumber++
		g.turnSeat = winnerSeat
		g.currentTrick = shared.NewTrick()
		return
	}

	summary := g.scoreRound()
	g.rounds = append(g.rounds, summary)
	outcome.RoundComplete = true
	outcome.RoundSummary = &summary

	if g.winReached() {
		g.phase = GameOver
		g.winners = g.topScorers()
		outcome.GameOver = true
		slog.Info("game over", "game", g.ID, "rounds", g.round, "winners", g.winners)
		return
	}

	g.rotateSeats()
	g.startRound()
}

// winReached evaluates the configured win condition after scoring.
func (g *Game) winReached() bool {
	switch g.win.Mode {
	case TargetScore:
		for _, p := range g.players {
			if p.Score >= g.win.Value {
				return true
			}
		}
		return false
	case FixedRounds:
		return g.round >= g.win.Value
	default:
		panic("game: invalid win mode " + string(g.win.Mode))
	}
}

// topScorers returns the IDs of every player tied for the maximum
// cumulative score. Ties produce co-winners in both win modes.
func (g *Game) topScorers() []string {
	max := g.players[0].Score
	for _, p := range g.players[1:] {
		if p.Score > max {
			max = p.Score
		}
	}
	var ids []string
	for _, p := range g.players {
		if p.Score == max {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
