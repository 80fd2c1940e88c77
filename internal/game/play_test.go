package game

import (
	"errors"
	"testing"

	"counterpoint-game/internal/shared"
)

// craftTrick puts the game directly into trick play with a chosen trump,
// bypassing bidding. Hands are set separately via setHand.
func craftTrick(g *Game, trump shared.Card, active bool, trickNum int) {
	g.phase = TrickPlay
	g.trumpCard = trump
	g.trumpActive = active
	g.trickNumber = trickNum
	g.turnSeat = 0
	g.currentTrick = shared.NewTrick()
}

func TestFollowSuitEnforced(t *testing.T) {
	g := mustGame(t, WinCondition{Mode: FixedRounds, Value: 3}, 1)
	seats := g.Seating()
	craftTrick(g, shared.NewCard(shared.Spades, shared.Six), true, 1)
	setHand(g, 0, shared.NewCard(shared.Hearts, shared.Ace), shared.NewCard(shared.Clubs, shared.Six))
	setHand(g, 1, shared.NewCard(shared.Hearts, shared.Six), shared.NewCard(shared.Clubs, shared.King))
	setHand(g, 2, shared.NewCard(shared.Clubs, shared.Ace), shared.NewCard(shared.Spades, shared.King))

	if _, err := g.SubmitPlay(seats[0].PlayerID, shared.NewCard(shared.Hearts, shared.Ace)); err != nil {
		t.Fatalf("lead failed: %v", err)
	}

	// Seat 1 holds the led suit and may only follow it.
	legal := g.LegalPlays(seats[1].PlayerID)
	if len(legal) != 1 || legal[0].Suit != shared.Hearts {
		t.Fatalf("legal plays for seat 1 = %v, want only the Six of Hearts", legal)
	}
	if _, err := g.SubmitPlay(seats[1].PlayerID, shared.NewCard(shared.Clubs, shared.King)); !errors.Is(err, ErrIllegalSuit) {
		t.Fatalf("off-suit play with led suit in hand: err = %v, want ErrIllegalSuit", err)
	}
	if len(g.players[1].Hand) != 2 {
		t.Fatal("rejected play mutated the hand")
	}
	if _, err := g.SubmitPlay(seats[1].PlayerID, shared.NewCard(shared.Hearts, shared.Six)); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	// Seat 2 is void in hearts and may play anything, including trump.
	if legal := g.LegalPlays(seats[2].PlayerID); len(legal) != 2 {
		t.Fatalf("void seat offered %d plays, want full hand of 2", len(legal))
	}
	outcome, err := g.SubmitPlay(seats[2].PlayerID, shared.NewCard(shared.Spades, shared.King))
	if err != nil {
		t.Fatalf("trump play failed: %v", err)
	}
	if !outcome.TrickComplete || outcome.WinnerSeat != 2 {
		t.Fatalf("outcome = %+v, want trick won by the trump at seat 2", outcome)
	}
}

func TestTrickWinnerLeadsNext(t *testing.T) {
	g := mustGame(t, WinCondition{Mode: FixedRounds, Value: 3}, 1)
	seats := g.Seating()
	craftTrick(g, shared.NewCard(shared.Diamonds, shared.Nine), false, 1)
	setHand(g, 0, shared.NewCard(shared.Hearts, shared.Six), shared.NewCard(shared.Clubs, shared.Six))
	setHand(g, 1, shared.NewCard(shared.Hearts, shared.Ten), shared.NewCard(shared.Clubs, shared.Seven))
	setHand(g, 2, shared.NewCard(shared.Hearts, shared.King), shared.NewCard(shared.Clubs, shared.Eight))

	for seat := 0; seat < shared.NumPlayers; seat++ {
		if _, err := g.SubmitPlay(seats[seat].PlayerID, g.players[seat].Hand[0]); err != nil {
			t.Fatalf("seat %d play failed: %v", seat, err)
		}
	}

	// Ten outranks King within the led suit, so seat 1 takes the trick.
	if g.players[1].TricksWon != 1 {
		t.Fatalf("winner TricksWon = %d, want 1", g.players[1].TricksWon)
	}
	if len(g.players[1].CardsWon) != 3 {
		t.Fatalf("winner collected %d cards, want 3", len(g.players[1].CardsWon))
	}
	prompt := g.CurrentPrompt()
	if prompt.Trick != 2 || prompt.Seat != 1 {
		t.Fatalf("next prompt = %+v, want trick 2 led by seat 1", prompt)
	}

	history := g.TrickHistory()
	last := history[len(history)-1]
	if last.WinnerSeat != 1 || last.WinnerID != seats[1].PlayerID || len(last.Plays) != 3 {
		t.Fatalf("trick record = %+v", last)
	}
}

func TestJokerLeadImposesNoConstraint(t *testing.T) {
	g := mustGame(t, WinCondition{Mode: FixedRounds, Value: 3}, 1)
	seats := g.Seating()
	craftTrick(g, shared.NewCard(shared.Diamonds, shared.Nine), false, 1)
	setHand(g, 0, shared.NewJoker(), shared.NewCard(shared.Diamonds, shared.Six))
	setHand(g, 1, shared.NewCard(shared.Hearts, shared.Six), shared.NewCard(shared.Clubs, shared.Six))
	setHand(g, 2, shared.NewCard(shared.Clubs, shared.Seven), shared.NewCard(shared.Spades, shared.Six))

	if _, err := g.SubmitPlay(seats[0].PlayerID, shared.NewJoker()); err != nil {
		t.Fatalf("joker lead failed: %v", err)
	}
	if legal := g.LegalPlays(seats[1].PlayerID); len(legal) != 2 {
		t.Fatalf("joker lead restricted seat 1 to %v", legal)
	}
	if _, err := g.SubmitPlay(seats[1].PlayerID, shared.NewCard(shared.Hearts, shared.Six)); err != nil {
		t.Fatalf("play after joker lead failed: %v", err)
	}
	outcome, err := g.SubmitPlay(seats[2].PlayerID, shared.NewCard(shared.Clubs, shared.Seven))
	if err != nil {
		t.Fatalf("third play failed: %v", err)
	}
	// No led suit and no trump: the strongest rank wins, never the Joker.
	if !outcome.TrickComplete || outcome.WinnerSeat != 2 {
		t.Fatalf("outcome = %+v, want seat 2 winning on rank strength", outcome)
	}
}

func TestSubmitPlayValidation(t *testing.T) {
	g := mustGame(t, WinCondition{Mode: FixedRounds, Value: 3}, 1)
	seats := g.Seating()

	// Playing during bidding is a phase error.
	if _, err := g.SubmitPlay(seats[0].PlayerID, g.players[0].Hand[0]); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("play during bidding: err = %v, want ErrWrongPhase", err)
	}

	craftTrick(g, shared.NewCard(shared.Spades, shared.Six), true, 1)
	setHand(g, 0, shared.NewCard(shared.Hearts, shared.Ace))
	setHand(g, 1, shared.NewCard(shared.Hearts, shared.Six))
	setHand(g, 2, shared.NewCard(shared.Hearts, shared.Seven))

	if _, err := g.SubmitPlay(seats[1].PlayerID, g.players[1].Hand[0]); !errors.Is(err, ErrNotPlayersTurn) {
		t.Fatalf("out-of-turn play: err = %v, want ErrNotPlayersTurn", err)
	}
	if _, err := g.SubmitPlay("nobody", g.players[0].Hand[0]); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("unknown player: err = %v, want ErrUnknownPlayer", err)
	}
	if _, err := g.SubmitPlay(seats[0].PlayerID, shared.NewCard(shared.Clubs, shared.Ace)); !errors.Is(err, ErrCardNotInHand) {
		t.Fatalf("card not in hand: err = %v, want ErrCardNotInHand", err)
	}
	if g.LegalPlays(seats[1].PlayerID) != nil {
		t.Fatal("LegalPlays returned cards for a non-acting seat")
	}
}

func TestNinthTrickScoresAndContinues(t *testing.T) {
	g := mustGame(t, WinCondition{Mode: FixedRounds, Value: 2}, 1)
	seats := g.Seating()
	craftTrick(g, shared.NewCard(shared.Diamonds, shared.Nine), false, shared.TricksPerRound)
	setHand(g, 0, shared.NewCard(shared.Hearts, shared.Six))
	setHand(g, 1, shared.NewCard(shared.Hearts, shared.Seven))
	setHand(g, 2, shared.NewCard(shared.Hearts, shared.Eight))
	g.players[0].TricksWon = 4
	g.players[1].TricksWon = 4
	g.players[2].TricksWon = 0

	var outcome *PlayOutcome
	for seat := 0; seat < shared.NumPlayers; seat++ {
		var err error
		outcome, err = g.SubmitPlay(seats[seat].PlayerID, g.players[seat].Hand[0])
		if err != nil {
			t.Fatalf("seat %d play failed: %v", seat, err)
		}
	}

	if !outcome.TrickComplete || !outcome.RoundComplete || outcome.GameOver {
		t.Fatalf("outcome = %+v, want round complete without game over", outcome)
	}
	if outcome.RoundSummary == nil || len(outcome.RoundSummary.Results) != 3 {
		t.Fatalf("round summary = %+v", outcome.RoundSummary)
	}
	// Round 2 is already dealt and awaiting the first bid.
	if g.Round() != 2 {
		t.Fatalf("round = %d after round completion, want 2", g.Round())
	}
	prompt := g.CurrentPrompt()
	if prompt.Phase != Bidding || prompt.Seat != 0 {
		t.Fatalf("prompt after round completion = %+v, want bidding at seat 0", prompt)
	}
	for seat := 0; seat < shared.NumPlayers; seat++ {
		if len(g.players[seat].Hand) != shared.CardsPerPlayer {
			t.Fatalf("seat %d has %d cards in the new round", seat, len(g.players[seat].Hand))
		}
	}
}

func TestNinthTrickEndsGame(t *testing.T) {
	g := mustGame(t, WinCondition{Mode: FixedRounds, Value: 1}, 1)
	seats := g.Seating()
	craftTrick(g, shared.NewCard(shared.Diamonds, shared.Nine), false, shared.TricksPerRound)
	setHand(g, 0, shared.NewCard(shared.Hearts, shared.Six))
	setHand(g, 1, shared.NewCard(shared.Hearts, shared.Seven))
	setHand(g, 2, shared.NewCard(shared.Hearts, shared.Eight))
	g.players[0].TricksWon = 4
	g.players[1].TricksWon = 4
	g.players[2].TricksWon = 0

	var outcome *PlayOutcome
	for seat := 0; seat < shared.NumPlayers; seat++ {
		var err error
		outcome, err = g.SubmitPlay(seats[seat].PlayerID, g.players[seat].Hand[0])
		if err != nil {
			t.Fatalf("seat %d play failed: %v", seat, err)
		}
	}

	if !outcome.GameOver {
		t.Fatalf("outcome = %+v, want game over after the final round", outcome)
	}
	if got := g.CurrentPrompt().Phase; got != GameOver {
		t.Fatalf("phase = %s, want GameOver", got)
	}
	// All bids were 0 and nobody captured points, so everyone is exact
	// and the win is shared three ways.
	if len(g.Winners()) != 3 {
		t.Fatalf("winners = %v, want all three players", g.Winners())
	}
}
