package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"counterpoint-game/internal/database"
	"counterpoint-game/internal/server"

	"github.com/lmittmann/tint"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))

	slog.Info("starting CounterPoint server")

	db := database.New()
	defer db.Close()

	hub := server.NewHub(&db)
	go hub.Run()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		server.ServeWs(hub, w, r)
	})

	fs := http.FileServer(http.Dir("web/static"))
	http.Handle("/", fs)

	server.HandleRoutes(&db)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	slog.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
