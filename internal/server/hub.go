package server

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"counterpoint-game/internal/database"
	"counterpoint-game/internal/game"
	"counterpoint-game/internal/protocol"
	"counterpoint-game/internal/shared"

	"github.com/google/uuid"
)

// clientMessage is a helper struct to pass messages along with the client reference.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

const gameCodeLength = 5 // Length of the unique game code

// MessageSender defines the function signature for sending messages back to
// clients. Game sessions receive an implementation from the Hub.
type MessageSender func(clientID string, message []byte)

// lobby is a pending game waiting for three players.
type lobby struct {
	clients []*Client
	win     game.WinCondition
}

// Hub manages active WebSocket connections, lobbies, and game sessions.
type Hub struct {
	clients        map[*Client]bool
	lobbies        map[string]*lobby       // Map game code to waiting lobby
	sessions       map[string]*GameSession // Map game code to running session
	clientToGame   map[*Client]string      // Map client to game code (lobby or active game)
	db             *database.Service
	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client
	clientMu       sync.RWMutex
	lobbyMu        sync.RWMutex
	sessionMu      sync.RWMutex
	rng            *rand.Rand
}

// NewHub creates a new Hub instance.
func NewHub(db *database.Service) *Hub {
	source := rand.NewSource(time.Now().UnixNano())

	return &Hub{
		clients:        make(map[*Client]bool),
		lobbies:        make(map[string]*lobby),
		sessions:       make(map[string]*GameSession),
		clientToGame:   make(map[*Client]string),
		db:             db,
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		rng:            rand.New(source),
	}
}

// generateGameCode creates a unique alphanumeric game code.
func (h *Hub) generateGameCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	for {
		var sb strings.Builder
		for i := 0; i < gameCodeLength; i++ {
			sb.WriteByte(letters[h.rng.Intn(len(letters))])
		}
		code := sb.String()

		h.lobbyMu.RLock()
		_, lobbyExists := h.lobbies[code]
		h.lobbyMu.RUnlock()

		h.sessionMu.RLock()
		_, sessionExists := h.sessions[code]
		h.sessionMu.RUnlock()

		if !lobbyExists && !sessionExists {
			return code
		}
	}
}

// Run starts the Hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			client.ID = uuid.NewString()
			slog.Info("client connected", "client", client.ID, "addr", client.conn.RemoteAddr())
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()

		case client := <-h.unregister:
			h.removeClient(client)

		case clientMsg := <-h.processMessage:
			h.handleMessage(clientMsg.client, clientMsg.message)
		}
	}
}

// removeClient drops a disconnected client from its lobby or session.
func (h *Hub) removeClient(client *Client) {
	h.clientMu.Lock()
	gameCode, inGameOrLobby := h.clientToGame[client]
	_, clientExists := h.clients[client]
	if clientExists {
		delete(h.clients, client)
		delete(h.clientToGame, client)
		close(client.send)
		slog.Info("client disconnected", "client", client.ID, "name", client.Name)
	}
	h.clientMu.Unlock()

	if !inGameOrLobby {
		return
	}

	h.lobbyMu.Lock()
	l, lobbyExists := h.lobbies[gameCode]
	if lobbyExists {
		remaining := make([]*Client, 0, len(l.clients))
		for _, c := range l.clients {
			if c != client {
				remaining = append(remaining, c)
			}
		}
		if len(remaining) > 0 {
			l.clients = remaining
			h.lobbyMu.Unlock()
			h.broadcastLobbyUpdate(gameCode, remaining)
		} else {
			delete(h.lobbies, gameCode)
			h.lobbyMu.Unlock()
			slog.Info("lobby deleted", "code", gameCode)
		}
		return
	}
	h.lobbyMu.Unlock()

	h.sessionMu.Lock()
	session, sessionExists := h.sessions[gameCode]
	if sessionExists {
		delete(h.sessions, gameCode)
	}
	h.sessionMu.Unlock()
	if sessionExists {
		go session.HandleDisconnect(client.ID)
	}
}

// handleMessage processes a message received from a client.
func (h *Hub) handleMessage(client *Client, msg protocol.Message) {
	switch msg.Type {
	case "create_game":
		h.handleCreateGame(client, msg)
	case "join_game":
		h.handleJoinGame(client, msg)
	case "submit_bid", "play_card":
		h.handleGameAction(client, msg)
	case "ping":
		pongMsg, _ := protocol.NewMessage("pong", nil)
		client.send <- pongMsg
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", client.ID)
		h.sendErrorToClient(client, "Unknown message type.")
	}
}

// validWinCondition applies the front-end configuration rules: a positive
// target score, or a round count of 1 or a positive multiple of 3.
func validWinCondition(win game.WinCondition) bool {
	if win.Validate() != nil {
		return false
	}
	if win.Mode == game.FixedRounds && win.Value != 1 && win.Value%shared.NumPlayers != 0 {
		return false
	}
	return true
}

// handleCreateGame handles a request to create a new game lobby.
func (h *Hub) handleCreateGame(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	_, alreadyInGame := h.clientToGame[client]
	h.clientMu.RUnlock()
	if alreadyInGame {
		h.sendErrorToClient(client, "Already in a game or lobby.")
		return
	}

	var payload protocol.CreateGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendErrorToClient(client, "Invalid create_game message format.")
		return
	}
	if payload.Name == "" {
		h.sendErrorToClient(client, "Name cannot be empty.")
		return
	}
	if !validWinCondition(payload.WinCondition) {
		h.sendErrorToClient(client, "Win condition must be a positive target score, or 1 or a multiple of 3 rounds.")
		return
	}

	gameCode := h.generateGameCode()

	h.clientMu.Lock()
	client.Name = payload.Name
	h.clientToGame[client] = gameCode
	h.clientMu.Unlock()

	h.lobbyMu.Lock()
	h.lobbies[gameCode] = &lobby{clients: []*Client{client}, win: payload.WinCondition}
	h.lobbyMu.Unlock()

	slog.Info("lobby created", "code", gameCode, "client", client.ID, "name", client.Name,
		"mode", payload.WinCondition.Mode, "value", payload.WinCondition.Value)

	createdMsg, _ := protocol.NewMessage("game_created", protocol.GameCreatedPayload{GameCode: gameCode})
	h.sendMessageToClient(client.ID, createdMsg)

	h.broadcastLobbyUpdate(gameCode, []*Client{client})
}

// handleJoinGame handles a request to join an existing game lobby.
func (h *Hub) handleJoinGame(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	_, alreadyInGame := h.clientToGame[client]
	h.clientMu.RUnlock()
	if alreadyInGame {
		h.sendJoinError(client, "Already in a game or lobby.")
		return
	}

	var payload protocol.JoinGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendJoinError(client, "Invalid join_game message format.")
		return
	}
	if payload.Name == "" {
		h.sendJoinError(client, "Name cannot be empty.")
		return
	}
	if payload.GameCode == "" {
		h.sendJoinError(client, "Game code cannot be empty.")
		return
	}
	gameCode := strings.ToUpper(payload.GameCode)

	h.lobbyMu.Lock()
	l, lobbyExists := h.lobbies[gameCode]
	if !lobbyExists {
		h.lobbyMu.Unlock()
		h.sendJoinError(client, "Game code not found.")
		return
	}
	if len(l.clients) >= shared.NumPlayers {
		h.lobbyMu.Unlock()
		h.sendJoinError(client, "Game lobby is full.")
		return
	}
	for _, existing := range l.clients {
		if existing.Name == payload.Name {
			h.lobbyMu.Unlock()
			h.sendJoinError(client, "Name already taken in this lobby.")
			return
		}
	}

	client.Name = payload.Name
	l.clients = append(l.clients, client)
	members := append([]*Client(nil), l.clients...)
	full := len(l.clients) == shared.NumPlayers
	win := l.win
	if full {
		delete(h.lobbies, gameCode)
	}
	h.lobbyMu.Unlock()

	h.clientMu.Lock()
	h.clientToGame[client] = gameCode
	h.clientMu.Unlock()

	slog.Info("client joined lobby", "code", gameCode, "client", client.ID,
		"name", client.Name, "size", len(members))

	h.broadcastLobbyUpdate(gameCode, members)

	if !full {
		return
	}

	session, err := NewGameSession(gameCode, members, win, h.db, h.sendMessageToClient)
	if err != nil {
		slog.Error("failed to start game", "code", gameCode, "err", err)
		errMsg, _ := protocol.NewMessage("error", protocol.ErrorPayload{Message: "Failed to start game."})
		for _, c := range members {
			h.sendMessageToClient(c.ID, errMsg)
		}
		return
	}

	h.sessionMu.Lock()
	h.sessions[gameCode] = session
	h.sessionMu.Unlock()

	slog.Info("game starting", "code", gameCode, "players", clientNames(members))
	go session.Start(win)
}

// handleGameAction forwards bid and play actions to the correct session.
func (h *Hub) handleGameAction(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	gameCode, inGame := h.clientToGame[client]
	h.clientMu.RUnlock()

	if !inGame {
		h.sendErrorToClient(client, "You are not in an active game.")
		return
	}

	h.sessionMu.RLock()
	session, sessionExists := h.sessions[gameCode]
	h.sessionMu.RUnlock()

	if !sessionExists {
		h.sendErrorToClient(client, "Game not found or not active.")
		return
	}

	switch msg.Type {
	case "submit_bid":
		session.HandleSubmitBid(client.ID, msg)
	case "play_card":
		session.HandlePlayCard(client.ID, msg)
	}

	if session.Closed() {
		h.sessionMu.Lock()
		delete(h.sessions, gameCode)
		h.sessionMu.Unlock()
	}
}

// clientNames is a logging helper.
func clientNames(clients []*Client) []string {
	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.Name
	}
	return names
}

// sendMessageToClient allows game sessions to send messages back through
// the hub. Passed as the MessageSender callback.
func (h *Hub) sendMessageToClient(clientID string, message []byte) {
	h.clientMu.RLock()
	var targetClient *Client
	for client := range h.clients {
		if client.ID == clientID {
			targetClient = client
			break
		}
	}
	h.clientMu.RUnlock()

	if targetClient == nil {
		slog.Debug("message for unknown client dropped", "client", clientID)
		return
	}

	select {
	case targetClient.send <- message:
	default:
		// Channel blocked or closed, assume the client is gone.
		slog.Warn("send channel blocked, cleaning up client", "client", clientID)
		go func() {
			h.clientMu.RLock()
			_, stillConnected := h.clients[targetClient]
			h.clientMu.RUnlock()
			if stillConnected {
				h.unregister <- targetClient
			}
		}()
	}
}

// broadcastLobbyUpdate sends the current list of players in the lobby.
func (h *Hub) broadcastLobbyUpdate(gameCode string, members []*Client) {
	playerInfos := make([]protocol.PlayerInfo, len(members))
	for i, c := range members {
		playerInfos[i] = protocol.PlayerInfo{ID: c.ID, Name: c.Name, Seat: i}
	}
	msgBytes, err := protocol.NewMessage("lobby_update", protocol.LobbyUpdatePayload{Players: playerInfos})
	if err != nil {
		slog.Error("failed to encode lobby update", "code", gameCode, "err", err)
		return
	}
	for _, c := range members {
		h.sendMessageToClient(c.ID, msgBytes)
	}
}

// sendErrorToClient sends a generic error message to a specific client.
func (h *Hub) sendErrorToClient(client *Client, errorMsg string) {
	msgBytes, err := protocol.NewMessage("error", protocol.ErrorPayload{Message: errorMsg})
	if err != nil {
		slog.Error("failed to encode error message", "client", client.ID, "err", err)
		return
	}
	h.sendMessageToClient(client.ID, msgBytes)
}

// sendJoinError sends a specific join error message to a client.
func (h *Hub) sendJoinError(client *Client, errorMsg string) {
	msgBytes, err := protocol.NewMessage("join_error", protocol.JoinErrorPayload{Message: errorMsg})
	if err != nil {
		slog.Error("failed to encode join error", "client", client.ID, "err", err)
		return
	}
	h.sendMessageToClient(client.ID, msgBytes)
}
