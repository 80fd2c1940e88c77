package database

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"
	_ "github.com/mattn/go-sqlite3"
)

// Service stores finished game results. The driver is chosen through the
// environment: DB_DRIVER is "sqlite3" (default) or "pgx", DB_DSN the
// matching data source name.
type Service struct {
	db        *sql.DB
	m         *sync.Mutex
	driver    string
	tableName string
}

const tableName = "counterpoint"

const createStmt = `
	create table if not exists counterpoint (
		id text not null primary key,
		created_at text,
		player1 text,
		player2 text,
		player3 text,
		score1 integer,
		score2 integer,
		score3 integer,
		rounds integer,
		winners text
	);
	`

// New opens the results database and ensures the table exists.
func New() Service {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "sqlite3"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "./counterpoint.db"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		panic(err)
	}
	if _, err = db.Exec(createStmt); err != nil {
		panic(err)
	}

	return Service{
		db:        db,
		m:         &sync.Mutex{},
		driver:    driver,
		tableName: tableName,
	}
}

func (s *Service) Close() error {
	return s.db.Close()
}

func (s *Service) TableName() string {
	return s.tableName
}

// rebind rewrites ? placeholders to $n for the pgx driver.
func (s *Service) rebind(query string) string {
	if s.driver != "pgx" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&sb, "$%d", n)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func scanResult(scan func(dest ...any) error) (GameResult, error) {
	var result GameResult
	err := scan(
		&result.ID,
		&result.CreatedAt,
		&result.Player1,
		&result.Player2,
		&result.Player3,
		&result.Score1,
		&result.Score2,
		&result.Score3,
		&result.Rounds,
		&result.Winners)
	return result, err
}

func (s *Service) GetAll() ([]GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query("SELECT * FROM " + s.tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		result, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func (s *Service) GetByID(id string) (GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	row := s.db.QueryRow(s.rebind("SELECT * FROM "+s.tableName+" WHERE id = ?"), id)
	return scanResult(row.Scan)
}

func (s *Service) Insert(result GameResult) error {
	s.m.Lock()
	defer s.m.Unlock()
	_, err := s.db.Exec(s.rebind("INSERT INTO "+s.tableName+
		" (id, created_at, player1, player2, player3, score1, score2, score3, rounds, winners)"+
		" VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		result.ID,
		result.CreatedAt,
		result.Player1,
		result.Player2,
		result.Player3,
		result.Score1,
		result.Score2,
		result.Score3,
		result.Rounds,
		result.Winners)
	return err
}

func (s *Service) GetByPlayer(playerName string) ([]GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query(s.rebind("SELECT * FROM "+s.tableName+
		" WHERE player1 = ? OR player2 = ? OR player3 = ?"),
		playerName,
		playerName,
		playerName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		result, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, sql.ErrNoRows
	}
	return results, nil
}
