package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"counterpoint-game/internal/database"
)

// HandleRoutes registers the REST endpoints for stored game results.
func HandleRoutes(db *database.Service) {
	http.HandleFunc("/api/results/player/{name}", func(w http.ResponseWriter, r *http.Request) {
		GetResultsByPlayerHandler(db, w, r)
	})
	slog.Info("registered route", "path", "/api/results/player/{name}")

	http.HandleFunc("/api/results", func(w http.ResponseWriter, r *http.Request) {
		GetResultsHandler(db, w, r)
	})
	slog.Info("registered route", "path", "/api/results")
}

// GetResultsByPlayerHandler returns all stored results a player took part in.
func GetResultsByPlayerHandler(db *database.Service, w http.ResponseWriter, r *http.Request) {
	player := r.PathValue("name")
	if player == "" {
		http.Error(w, "Player name is required", http.StatusBadRequest)
		return
	}

	results, err := db.GetByPlayer(player)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "No results found for player", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

// GetResultsHandler returns all stored game results.
func GetResultsHandler(db *database.Service, w http.ResponseWriter, r *http.Request) {
	results, err := db.GetAll()
	if err != nil {
		http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
