package game

import (
	"log/slog"

	"counterpoint-game/internal/shared"
)

// BidOutcome reports the result of an accepted bid.
type BidOutcome struct {
	PlayerID        string `json:"player_id"`
	Seat            int    `json:"seat"`
	Bid             int    `json:"bid"`
	BiddingComplete bool   `json:"bidding_complete"`
}

// LegalDiscards returns the cards the named player may include in their
// discard selection: the whole hand, but only while it is their turn to bid.
func (g *Game) LegalDiscards(playerID string) []shared.Card {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != Bidding {
		return nil
	}
	seat := g.seatOf(playerID)
	if seat != g.biddingSeat {
		return nil
	}
	return append([]shared.Card(nil), g.players[seat].Hand...)
}

// SubmitBid removes exactly 3 distinct cards from the acting player's hand
// and derives their bid from the discarded suits: Spades 10, Hearts 20,
// Clubs 30, Diamonds 0, and 0 for the suitless Joker. The discards are
// retained on the player for later display. On any validation error the
// game state is unchanged.
func (g *Game) SubmitBid(playerID string, discards []shared.Card) (*BidOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != Bidding {
		return nil, ErrWrongPhase
	}
	seat := g.seatOf(playerID)
	if seat == -1 {
		return nil, ErrUnknownPlayer
	}
	if seat != g.biddingSeat {
		return nil, ErrNotPlayersTurn
	}
	if len(discards) != 3 {
		return nil, ErrNotThreeCards
	}
	for i := range discards {
		for j := i + 1; j < len(discards); j++ {
			if discards[i].Equal(discards[j]) {
				return nil, ErrNotThreeCards
			}
		}
	}

	// Validate ownership before mutating anything.
	player := g.players[seat]
	selected := make([]shared.Card, 0, 3)
	for _, c := range discards {
		card, ok := player.FindCard(c.Suit, c.Rank)
		if !ok {
			return nil, ErrCardNotInHand
		}
		selected = append(selected, card)
	}

	bid := 0
	for _, card := range selected {
		player.RemoveCard(card)
		bid += card.BidValue()
	}
	player.Bid = bid
	player.BidPlaced = true
	player.Discards = selected

	slog.Debug("bid placed", "game", g.ID, "round", g.round,
		"seat", seat, "player", player.Name, "bid", bid)

	outcome := &BidOutcome{PlayerID: player.ID, Seat: seat, Bid: bid}

	g.biddingSeat++
	if g.biddingSeat == shared.NumPlayers {
		outcome.BiddingComplete = true
		g.phase = TrickPlay
		g.trickNumber = 1
		g.turnSeat = 0
		g.currentTrick = shared.NewTrick()
	}
	return outcome, nil
}
