package shared

// Suit represents the suit of a card. The Joker has no suit.
type Suit string

const (
	Hearts   Suit = "Hearts"
	Diamonds Suit = "Diamonds"
	Clubs    Suit = "Clubs"
	Spades   Suit = "Spades"
	NoSuit   Suit = "" // Joker only
)

// Rank names of the CounterPoint deck (no Two through Five).
const (
	Ace   = "Ace"
	Ten   = "Ten"
	King  = "King"
	Queen = "Queen"
	Jack  = "Jack"
	Nine  = "Nine"
	Eight = "Eight"
	Seven = "Seven"
	Six   = "Six"
	Joker = "Joker"
)

// Card represents a single card in the CounterPoint deck.
type Card struct {
	Suit     Suit   `json:"suit"`
	Rank     string `json:"rank"`
	Value    int    `json:"value"`    // Card points when captured in a trick
	Strength int    `json:"strength"` // Rank order for trick comparison (higher wins)
}

// Card point values for scoring. Distinct from trick strength below.
var pointValues = map[string]int{
	Ace:   11,
	Ten:   10,
	King:  4,
	Queen: 3,
	Jack:  2,
	Nine:  0,
	Eight: 0,
	Seven: 0,
	Six:   0,
	Joker: 0,
}

// Rank strength within a suit for trick resolution. Ten outranks King,
// Queen and Jack here; this ordering is intentionally not the point-value
// ordering and the two must not be unified.
var strengthOrder = map[string]int{
	Six:   1,
	Seven: 2,
	Eight: 3,
	Nine:  4,
	Jack:  5,
	Queen: 6,
	King:  7,
	Ten:   8,
	Ace:   9,
	Joker: 0,
}

// Suit values used to compute a bid from discarded cards.
var bidValues = map[Suit]int{
	Spades:   10,
	Hearts:   20,
	Clubs:    30,
	Diamonds: 0,
	NoSuit:   0,
}

// NewCard creates a card with its point value and trick strength filled in.
func NewCard(suit Suit, rank string) Card {
	return Card{
		Suit:     suit,
		Rank:     rank,
		Value:    pointValues[rank],
		Strength: strengthOrder[rank],
	}
}

// NewJoker creates the single suitless Joker card.
func NewJoker() Card {
	return NewCard(NoSuit, Joker)
}

// IsJoker reports whether the card is the Joker.
func (c Card) IsJoker() bool {
	return c.Rank == Joker
}

// BidValue returns the bid contribution of this card when discarded.
// The Joker contributes 0 regardless of any suit association.
func (c Card) BidValue() int {
	if c.IsJoker() {
		return 0
	}
	return bidValues[c.Suit]
}

// Equal compares cards by identity (suit and rank).
func (c Card) Equal(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}

func (c Card) String() string {
	if c.IsJoker() {
		return Joker
	}
	return c.Rank + " of " + string(c.Suit)
}
