package shared

import (
	"log/slog"
	"math/rand/v2"
)

const (
	// DeckSize is the full CounterPoint deck: 4 suits x 9 ranks + 1 Joker.
	DeckSize = 37
	// NumPlayers is fixed at three.
	NumPlayers = 3
	// CardsPerPlayer dealt each round, leaving one card as trump.
	CardsPerPlayer = 12
	// TricksPerRound played out of each 12-card hand after 3 discards.
	TricksPerRound = 9
)

// Suits in construction order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Ranks in construction order within a suit.
var Ranks = []string{Ace, Ten, King, Queen, Jack, Nine, Eight, Seven, Six}

// Deck represents a collection of cards.
type Deck struct {
	Cards []Card
}

// NewDeck creates the full 37-card deck in fixed suit-major, rank-major
// order with the Joker last.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	cards = append(cards, NewJoker())
	return &Deck{Cards: cards}
}

// Shuffle randomizes the order of cards in the deck. A nil rng uses the
// process-wide source; passing a seeded rng makes the shuffle reproducible.
func (d *Deck) Shuffle(rng *rand.Rand) {
	swap := func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
	if rng != nil {
		rng.Shuffle(len(d.Cards), swap)
	} else {
		rand.Shuffle(len(d.Cards), swap)
	}
}

// Deal distributes cards round-robin from the front of the deck: player i
// receives the cards at positions i, i+numPlayers, i+2*numPlayers, ...
// Returns nil unless called on a full deck, since every round must be dealt
// from a freshly shuffled 37 cards.
func (d *Deck) Deal(numPlayers, cardsPerPlayer int) [][]Card {
	if len(d.Cards) != DeckSize {
		slog.Error("deal requires a full deck", "have", len(d.Cards), "want", DeckSize)
		return nil
	}
	if numPlayers*cardsPerPlayer > len(d.Cards) {
		slog.Error("not enough cards to deal", "players", numPlayers, "each", cardsPerPlayer)
		return nil
	}

	hands := make([][]Card, numPlayers)
	for i := range hands {
		hands[i] = make([]Card, 0, cardsPerPlayer)
	}
	for round := 0; round < cardsPerPlayer; round++ {
		for p := 0; p < numPlayers; p++ {
			hands[p] = append(hands[p], d.Cards[round*numPlayers+p])
		}
	}
	d.Cards = d.Cards[numPlayers*cardsPerPlayer:]
	return hands
}

// RevealTrump removes and returns the single card left after dealing. The
// second return is false if the deck is empty, guarding a double reveal.
func (d *Deck) RevealTrump() (Card, bool) {
	if len(d.Cards) == 0 {
		return Card{}, false
	}
	trump := d.Cards[0]
	d.Cards = d.Cards[1:]
	return trump, true
}
