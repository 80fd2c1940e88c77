package game

import (
	"testing"

	"counterpoint-game/internal/shared"
)

func TestBonusTiers(t *testing.T) {
	tests := []struct {
		difference int
		want       int
	}{
		{0, 30},
		{1, 20},
		{2, 20},
		{3, 20},
		{4, 10},
		{5, 10},
		{6, 0},
		{25, 0},
	}
	for _, tt := range tests {
		if got := bonusFor(tt.difference); got != tt.want {
			t.Errorf("bonusFor(%d) = %d, want %d", tt.difference, got, tt.want)
		}
	}
}

func TestScoreRoundAccuracyFormula(t *testing.T) {
	g := mustGame(t, WinCondition{Mode: FixedRounds, Value: 3}, 1)

	// Differences 0, 3 and 7: base scores are the sums of the opponents'
	// differences, so the exact bidder profits the most.
	g.players[0].Bid = 21
	g.players[0].CardsWon = []shared.Card{
		shared.NewCard(shared.Hearts, shared.Ace),
		shared.NewCard(shared.Hearts, shared.Ten),
	}
	g.players[1].Bid = 10
	g.players[1].CardsWon = []shared.Card{
		shared.NewCard(shared.Diamonds, shared.Ace),
		shared.NewCard(shared.Diamonds, shared.Jack),
	}
	g.players[2].Bid = 30
	g.players[2].CardsWon = []shared.Card{
		shared.NewCard(shared.Clubs, shared.Ace),
		shared.NewCard(shared.Clubs, shared.Ten),
		shared.NewCard(shared.Clubs, shared.Jack),
	}
	for _, p := range g.players {
		p.TricksWon = 3
	}

	summary := g.scoreRound()

	want := []struct {
		difference, base, bonus, roundScore int
	}{
		{0, 10, 30, 40},
		{3, 7, 20, 27},
		{7, 3, 0, 3},
	}
	for i, w := range want {
		r := summary.Results[i]
		if r.Difference != w.difference || r.BaseScore != w.base || r.Bonus != w.bonus || r.RoundScore != w.roundScore {
			t.Fatalf("seat %d result = %+v, want diff=%d base=%d bonus=%d score=%d",
				i, r, w.difference, w.base, w.bonus, w.roundScore)
		}
		if g.players[i].Score != w.roundScore {
			t.Fatalf("seat %d cumulative score = %d, want %d", i, g.players[i].Score, w.roundScore)
		}
	}

	if len(summary.WinnerIDs) != 1 || summary.WinnerIDs[0] != g.players[0].ID {
		t.Fatalf("round winners = %v, want only the exact bidder", summary.WinnerIDs)
	}
	if g.players[0].Stats.ExactBids != 1 || g.players[0].Stats.RoundsWon != 1 {
		t.Fatalf("exact bidder stats = %+v", g.players[0].Stats)
	}
	if g.players[1].Stats.ExactBids != 0 || g.players[1].Stats.RoundsWon != 0 {
		t.Fatalf("seat 1 stats = %+v", g.players[1].Stats)
	}
	for i, p := range g.players {
		if p.Stats.RoundsPlayed != 1 || p.Stats.TricksTaken != 3 {
			t.Fatalf("seat %d stats = %+v", i, p.Stats)
		}
	}
}

func TestScoreRoundSharedRoundWin(t *testing.T) {
	g := mustGame(t, WinCondition{Mode: FixedRounds, Value: 3}, 1)

	// Identical differences produce identical round scores: all three
	// players share the round win.
	for _, p := range g.players {
		p.Bid = 0
		p.CardsWon = nil
		p.TricksWon = 3
	}
	summary := g.scoreRound()

	if len(summary.WinnerIDs) != 3 {
		t.Fatalf("round winners = %v, want all three", summary.WinnerIDs)
	}
	for i, r := range summary.Results {
		if r.RoundScore != 30 {
			t.Fatalf("seat %d round score = %d, want 30", i, r.RoundScore)
		}
	}
}

func TestScoreRoundPanicsMidRound(t *testing.T) {
	g := mustGame(t, WinCondition{Mode: FixedRounds, Value: 3}, 1)
	g.players[0].TricksWon = 2

	defer func() {
		if recover() == nil {
			t.Fatal("scoreRound did not panic with unresolved tricks")
		}
	}()
	g.scoreRound()
}
