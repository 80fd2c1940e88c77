package game

import "counterpoint-game/internal/shared"

// PlayerRoundResult is the per-player score breakdown of one round. All
// intermediate quantities are retained for reporting.
type PlayerRoundResult struct {
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	Seat       int    `json:"seat"`
	Bid        int    `json:"bid"`
	PointsWon  int    `json:"points_won"`
	TricksWon  int    `json:"tricks_won"`
	Difference int    `json:"difference"`
	BaseScore  int    `json:"base_score"`
	Bonus      int    `json:"bonus"`
	RoundScore int    `json:"round_score"`
	TotalScore int    `json:"total_score"`
}

// RoundSummary is the complete record of one scored round.
type RoundSummary struct {
	Round       int                 `json:"round"`
	TrumpCard   shared.Card         `json:"trump_card"`
	TrumpActive bool                `json:"trump_active"`
	Results     []PlayerRoundResult `json:"results"`
	WinnerIDs   []string            `json:"winner_ids"` // round winners, display only
}

// bonusFor maps a bid-accuracy difference to its bonus tier.
func bonusFor(difference int) int {
	switch {
	case difference == 0:
		return 30
	case difference <= 3:
		return 20
	case difference <= 5:
		return 10
	default:
		return 0
	}
}

// scoreRound applies the round-accuracy formula to all three players: each
// player's base score is the sum of the other two players' differences, so
// a player profits from opponents' inaccurate bidding; the bonus rewards
// their own accuracy. Caller holds the lock; all tricks must be resolved.
func (g *Game) scoreRound() RoundSummary {
	total := 0
	for _, p := range g.players {
		total += p.TricksWon
	}
	if total != shared.TricksPerRound {
		panic("game: scoring invoked mid-round")
	}

	diffs := make([]int, len(g.players))
	for i, p := range g.players {
		d := p.Bid - p.PointsWon()
		if d < 0 {
			d = -d
		}
		diffs[i] = d
	}

	summary := RoundSummary{
		Round:       g.round,
		TrumpCard:   g.trumpCard,
		TrumpActive: g.trumpActive,
	}

	bestRound := 0
	for i, p := range g.players {
		base := 0
		for j, d := range diffs {
			if j != i {
				base += d
			}
		}
		bonus := bonusFor(diffs[i])
		p.RoundScore = base + bonus
		p.Score += p.RoundScore

		p.Stats.RoundsPlayed++
		p.Stats.TricksTaken += p.TricksWon
		if diffs[i] == 0 {
			p.Stats.ExactBids++
		}
		if p.RoundScore > bestRound {
			bestRound = p.RoundScore
		}

		summary.Results = append(summary.Results, PlayerRoundResult{
			PlayerID:   p.ID,
			Name:       p.Name,
			Seat:       i,
			Bid:        p.Bid,
			PointsWon:  p.PointsWon(),
			TricksWon:  p.TricksWon,
			Difference: diffs[i],
			BaseScore:  base,
			Bonus:      bonus,
			RoundScore: p.RoundScore,
			TotalScore: p.Score,
		})
	}

	for _, p := range g.players {
		if p.RoundScore == bestRound {
			p.Stats.RoundsWon++
			summary.WinnerIDs = append(summary.WinnerIDs, p.ID)
		}
	}
	return summary
}
