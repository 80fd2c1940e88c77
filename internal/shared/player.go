package shared

// Stats aggregates per-player counters across rounds for reporting.
type Stats struct {
	RoundsPlayed int `json:"rounds_played"`
	TricksTaken  int `json:"tricks_taken"`
	ExactBids    int `json:"exact_bids"`
	RoundsWon    int `json:"rounds_won"`
}

// Player represents a player in the CounterPoint game. The ID is stable
// for the whole game; seat position is the player's index in the game's
// rotation and changes between rounds.
type Player struct {
	ID         string // Unique identifier for the player
	Name       string // Player's chosen name, unique per game
	Hand       []Card // Cards currently held
	Bid        int    // Bid committed this round, valid only when BidPlaced
	BidPlaced  bool
	Discards   []Card // The 3 cards discarded to form the bid, kept for audit
	RoundScore int    // Score earned this round
	Score      int    // Cumulative score across rounds
	TricksWon  int    // Tricks taken this round
	CardsWon   []Card // Cards captured in won tricks this round
	Stats      Stats
}

// NewPlayer creates a new player with the given ID and name.
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:   id,
		Name: name,
	}
}

// ResetForRound clears all per-round state before a new deal.
func (p *Player) ResetForRound() {
	p.Hand = nil
	p.Bid = 0
	p.BidPlaced = false
	p.Discards = nil
	p.RoundScore = 0
	p.TricksWon = 0
	p.CardsWon = nil
}

// AddCard adds a card to the player's hand.
func (p *Player) AddCard(card Card) {
	p.Hand = append(p.Hand, card)
}

// RemoveCard removes a card from the player's hand.
func (p *Player) RemoveCard(card Card) bool {
	for i, c := range p.Hand {
		if c.Equal(card) {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// FindCard looks up a card in the player's hand by suit and rank.
func (p *Player) FindCard(suit Suit, rank string) (Card, bool) {
	for _, card := range p.Hand {
		if card.Suit == suit && card.Rank == rank {
			return card, true
		}
	}
	return Card{}, false
}

// HasSuit reports whether the player holds at least one card of the suit.
// The Joker's NoSuit never counts.
func (p *Player) HasSuit(suit Suit) bool {
	if suit == NoSuit {
		return false
	}
	for _, card := range p.Hand {
		if card.Suit == suit {
			return true
		}
	}
	return false
}

// PointsWon sums the point values of all cards captured this round.
func (p *Player) PointsWon() int {
	points := 0
	for _, card := range p.CardsWon {
		points += card.Value
	}
	return points
}
