package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/engine"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

var (
	ErrGameFull    = errors.New("game is full")
	ErrNotInGame   = errors.New("player not in game")
	ErrNotYourTurn = errors.New("not your turn")
	ErrOutOfBounds = errors.New("invalid move, out of bounds")
	ErrIllegalMove = errors.New("invalid move, not legal")
	ErrNotAllowed  = errors.New("not authorized to join this game")
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*peer // playerID -> connection
	mu          sync.RWMutex
}

// Game owns the turn: it holds the current position and the move set derived
// from it, and replaces both on every accepted move.
type Game struct {
	ID          string
	mu          sync.Mutex
	position    engine.Position
	legal       engine.MoveSet
	version     uint64 // bumped on every accepted move
	state       GameState
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
}

type GameState struct {
	Sound          string           `json:"sound"`
	Board          [][]*ClientPiece `json:"board"`
	FEN            string           `json:"fen"`
	ToMove         engine.Color     `json:"toMove"`
	LegalMoves     []engine.Move    `json:"legalMoves"`
	LastMove       *engine.Move     `json:"lastMove"`
	CapturedPieces CapturedPieces   `json:"capturedPieces"`
	Players        GamePlayers      `json:"players"`

	version uint64
}

type GamePlayers struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func NewGame(id string, clock time.Duration) *Game {
	return NewGameFromPosition(id, engine.InitialPosition(), clock)
}

func NewGameFromPosition(id string, pos engine.Position, clock time.Duration) *Game {
	g := &Game{
		ID:          id,
		position:    pos,
		legal:       engine.GenerateLegalMoves(pos),
		version:     1,
		connections: NewGameConnections(),
		whiteClock:  NewClock(clock),
		blackClock:  NewClock(clock),
	}
	g.state = GameState{
		CapturedPieces: newCapturedPieces(),
		Players: GamePlayers{
			White: ClientPlayer{Color: string(PlayerColorWhite), TimeLeft: clock.Milliseconds()},
			Black: ClientPlayer{Color: string(PlayerColorBlack), TimeLeft: clock.Milliseconds()},
		},
	}
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*peer),
	}
}

func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.colorOf(playerID); ok {
		return color, nil
	}
	if g.state.Players.White.ID == "" {
		g.state.Players.White.ID = playerID
		log.Infof("game %s: %s joined as white", g.ID, playerID)
		return PlayerColorWhite, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black.ID = playerID
		log.Infof("game %s: %s joined as black", g.ID, playerID)
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

// GetState returns a snapshot of the client view.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) Position() engine.Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.position
}

// LegalMovesFrom lists the destinations of the piece on from, empty when the
// square is empty or holds a piece of the side not to move.
func (g *Game) LegalMovesFrom(from engine.Square) []engine.Square {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.legal.Destinations(from)
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.colorOf(playerID)
	return ok
}

func (g *Game) colorOf(playerID string) (PlayerColor, bool) {
	switch {
	case playerID == "":
		return "", false
	case g.state.Players.White.ID == playerID:
		return PlayerColorWhite, true
	case g.state.Players.Black.ID == playerID:
		return PlayerColorBlack, true
	}
	return "", false
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// MakeMove validates move against the cached legal set and applies it.
// Rejected moves leave the game untouched and are reported to the caller.
func (g *Game) MakeMove(playerID string, move engine.Move) error {
	g.mu.Lock()

	color, ok := g.colorOf(playerID)
	if !ok {
		g.mu.Unlock()
		return ErrNotInGame
	}
	if color.Side() != g.position.SideToMove {
		g.mu.Unlock()
		return ErrNotYourTurn
	}
	if !move.From.InBounds() || !move.To.InBounds() {
		g.mu.Unlock()
		return ErrOutOfBounds
	}
	if !engine.IsLegal(g.position, move, g.legal) {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrIllegalMove, move)
	}

	g.executeMove(move)
	state := g.snapshot()
	g.mu.Unlock()

	go g.broadcastState(state)
	return nil
}

func (g *Game) executeMove(move engine.Move) {
	mover := g.position.SideToMove
	g.clockFor(mover).Stop()

	captured := engine.Captured(g.position, move)
	g.state.Sound = "move"
	if !captured.IsEmpty() {
		g.state.Sound = "capture"
		switch mover {
		case engine.White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, clientPiece(captured))
		case engine.Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, clientPiece(captured))
		}
	}

	g.position = engine.ApplyMove(g.position, move)
	// the cached set always belongs to the current position
	g.legal = engine.GenerateLegalMoves(g.position)
	g.version++
	g.state.LastMove = &move

	g.clockFor(g.position.SideToMove).Start()
	log.Debugf("game %s: %s played %s, %d replies", g.ID, mover, move, g.legal.Len())
}

func (g *Game) clockFor(side engine.Color) *Clock {
	if side == engine.White {
		return g.whiteClock
	}
	return g.blackClock
}

func (g *Game) snapshot() GameState {
	s := g.state
	s.version = g.version
	s.Board = boardView(g.position)
	s.FEN = g.position.FEN()
	s.ToMove = g.position.SideToMove
	s.LegalMoves = g.legal.Moves()
	s.Players.White.TimeLeft = g.whiteClock.TimeLeft().Milliseconds()
	s.Players.Black.TimeLeft = g.blackClock.TimeLeft().Milliseconds()
	s.CapturedPieces = CapturedPieces{
		White: append([]ClientPiece{}, g.state.CapturedPieces.White...),
		Black: append([]ClientPiece{}, g.state.CapturedPieces.Black...),
	}
	if g.state.LastMove != nil {
		last := *g.state.LastMove
		s.LastMove = &last
	}
	return s
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGameLocked(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotAllowed
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the healthy connection, reject the duplicate
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}

	g.connections.connections[playerID] = &peer{conn: conn}
	g.connections.mu.Unlock()
	log.Infof("game %s: registered connection for %s", g.ID, playerID)

	// snapshot after the peer is visible, so a move racing this call is
	// either in the snapshot or broadcast to the new peer afterwards
	go g.broadcastState(g.GetState())
	return nil
}

func (g *Game) isPlayerInGameLocked(playerID string) bool {
	_, ok := g.colorOf(playerID)
	return ok
}

func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	// only drop the entry if it is still this connection
	if current, exists := g.connections.connections[playerID]; exists && current.conn == conn {
		log.Infof("game %s: unregistering connection for %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

// broadcastState sends state to every registered connection that has not
// already seen it or a newer one.
func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorf("game %s: marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*peer, len(g.connections.connections))
	for playerID, p := range g.connections.connections {
		active[playerID] = p
	}
	g.connections.mu.RUnlock()

	msg := ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	}
	for playerID, p := range active {
		if err := p.send(state.version, msg); err != nil {
			log.Warnf("game %s: failed to send state to %s: %v", g.ID, playerID, err)
			g.connections.mu.Lock()
			if g.connections.connections[playerID] == p {
				delete(g.connections.connections, playerID)
			}
			g.connections.mu.Unlock()
		}
	}
}
