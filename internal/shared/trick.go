package shared

import "log/slog"

// PlayedCard stores a card along with the seat that played it.
type PlayedCard struct {
	Card     Card   `json:"card"`
	Seat     int    `json:"seat"`
	PlayerID string `json:"player_id"`
}

// Trick represents a single trick: up to NumPlayers plays in order.
type Trick struct {
	Cards      []PlayedCard // Cards played so far, in play order
	WinnerSeat int          // Seat that won the trick (-1 until resolved)
}

// NewTrick creates a new empty trick.
func NewTrick() *Trick {
	return &Trick{
		Cards:      []PlayedCard{},
		WinnerSeat: -1,
	}
}

// AddCard adds a play to the trick.
func (t *Trick) AddCard(card Card, seat int, playerID string) {
	t.Cards = append(t.Cards, PlayedCard{Card: card, Seat: seat, PlayerID: playerID})
}

// LedSuit returns the suit of the first card played, which governs the
// follow-suit obligation. A Joker lead returns NoSuit and imposes none.
func (t *Trick) LedSuit() Suit {
	if len(t.Cards) == 0 {
		return NoSuit
	}
	return t.Cards[0].Card.Suit
}

// DetermineWinner resolves a completed trick to the winning seat. Each play
// gets a priority: 2 for the active trump suit, 1 for the led suit, 0 for
// the Joker or an off-suit discard. The greatest (priority, strength) pair
// wins; an earlier play keeps the lead on an equal pair, which can only
// occur after a Joker lead.
func (t *Trick) DetermineWinner(trump Suit, trumpActive bool) int {
	if len(t.Cards) != NumPlayers {
		slog.Error("trick resolved before all plays", "plays", len(t.Cards))
		panic("shared: trick resolved with incomplete plays")
	}

	led := t.LedSuit()
	best := 0
	for i := 1; i < len(t.Cards); i++ {
		if beats(t.Cards[i].Card, t.Cards[best].Card, led, trump, trumpActive) {
			best = i
		}
	}
	t.WinnerSeat = t.Cards[best].Seat
	return t.WinnerSeat
}

// beats reports whether card a strictly outranks card b in the trick.
func beats(a, b Card, led, trump Suit, trumpActive bool) bool {
	pa := playPriority(a, led, trump, trumpActive)
	pb := playPriority(b, led, trump, trumpActive)
	if pa != pb {
		return pa > pb
	}
	return a.Strength > b.Strength
}

func playPriority(c Card, led, trump Suit, trumpActive bool) int {
	if c.IsJoker() {
		return 0
	}
	if trumpActive && c.Suit == trump {
		return 2
	}
	if led != NoSuit && c.Suit == led {
		return 1
	}
	return 0
}
