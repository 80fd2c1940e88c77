package database

// GameResult is one finished CounterPoint game as stored in the results
// table: the three players in final seat order with their cumulative scores.
type GameResult struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Player1   string `json:"player1"`
	Player2   string `json:"player2"`
	Player3   string `json:"player3"`
	Score1    int    `json:"score1"`
	Score2    int    `json:"score2"`
	Score3    int    `json:"score3"`
	Rounds    int    `json:"rounds"`
	Winners   string `json:"winners"` // comma-separated winner names (co-winners on a tie)
}
