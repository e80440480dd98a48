package store

import (
	"errors"
	"sync"
)

// Tic-tac-toe markers
const (
	MarkerX = "X"
	MarkerO = "O"
)

// Game state errors, mapped to user-facing messages by the command layer
var (
	ErrGameActive     = errors.New("a game is already active in this chat")
	ErrNoGame         = errors.New("no active game in this chat")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrBadCell        = errors.New("cell index must be between 0 and 8")
	ErrCellTaken      = errors.New("cell occupied or game ended")
	ErrNotParticipant = errors.New("only a participant may cancel the game")
)

// winLines are the 8 three-in-a-row lines of the board
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// Game is one tic-tac-toe session. Empty cells hold their own index digit
// so the rendered board doubles as a move guide.
type Game struct {
	Board         [9]string
	CurrentMarker string
	Player1       string
	Player2       string // empty in an open game until someone takes the O side
	IsOpen        bool
	CurrentTurn   string // JID whose turn it is; empty when any non-starter may move
	Ended         bool
}

// MoveOutcome describes the result of a successful move
type MoveOutcome struct {
	Cell         int
	Marker       string
	Board        [9]string
	Winner       string // JID of the winner, empty if the game continues
	WinnerMarker string
	Draw         bool
	NextTurn     string // JID of the next mover, empty means anyone
	NextMarker   string
	BoundPlayer2 bool // true when this move bound the open seat
}

// GameRegistry holds at most one Game per chat. All transitions are atomic
// per chat: two near-simultaneous moves can never both mutate the board.
type GameRegistry struct {
	mu    sync.Mutex
	games map[string]*Game
}

// NewGameRegistry creates an empty game registry
func NewGameRegistry() *GameRegistry {
	return &GameRegistry{
		games: make(map[string]*Game),
	}
}

// Start creates a game for the chat. player2 is empty for open games.
// Fails with ErrGameActive if the chat already has a game.
func (r *GameRegistry) Start(chat, player1, player2 string, open bool) (Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[chat]; exists {
		return Game{}, ErrGameActive
	}

	g := &Game{
		CurrentMarker: MarkerX,
		Player1:       player1,
		Player2:       player2,
		IsOpen:        open,
		CurrentTurn:   player1,
	}
	for i := range g.Board {
		g.Board[i] = cellDigit(i)
	}

	r.games[chat] = g
	return *g, nil
}

// Move applies one move for the sender. On win or draw the game is
// destroyed before returning.
func (r *GameRegistry) Move(chat, sender string, cell int) (*MoveOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, exists := r.games[chat]
	if !exists {
		return nil, ErrNoGame
	}

	binding := g.IsOpen && g.Player2 == "" && sender != g.Player1

	switch {
	case binding:
		// A non-starter claims the open O seat with this move
	case g.CurrentTurn != "" && sender == g.CurrentTurn:
		// Normal in-turn move
	default:
		return nil, ErrNotYourTurn
	}

	if cell < 0 || cell > 8 {
		return nil, ErrBadCell
	}
	if g.Ended || g.Board[cell] == MarkerX || g.Board[cell] == MarkerO {
		return nil, ErrCellTaken
	}

	outcome := &MoveOutcome{Cell: cell}

	if binding {
		g.Player2 = sender
		outcome.BoundPlayer2 = true
		outcome.Marker = MarkerO
	} else {
		outcome.Marker = g.CurrentMarker
	}

	g.Board[cell] = outcome.Marker

	if outcome.Marker == MarkerX {
		g.CurrentMarker = MarkerO
		g.CurrentTurn = g.Player2 // empty keeps the O seat open to anyone
	} else {
		g.CurrentMarker = MarkerX
		g.CurrentTurn = g.Player1
	}

	outcome.Board = g.Board
	outcome.NextTurn = g.CurrentTurn
	outcome.NextMarker = g.CurrentMarker

	if winner := checkWin(g.Board); winner != "" {
		g.Ended = true
		outcome.WinnerMarker = winner
		if winner == MarkerX {
			outcome.Winner = g.Player1
		} else {
			outcome.Winner = g.Player2
		}
		delete(r.games, chat)
		return outcome, nil
	}

	if boardFull(g.Board) {
		g.Ended = true
		outcome.Draw = true
		delete(r.games, chat)
		return outcome, nil
	}

	return outcome, nil
}

// Cancel destroys the chat's game. Only a participant may cancel, except in
// group chats where anyone may (groupOverride).
func (r *GameRegistry) Cancel(chat, sender string, groupOverride bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, exists := r.games[chat]
	if !exists {
		return ErrNoGame
	}

	if !groupOverride && sender != g.Player1 && sender != g.Player2 {
		return ErrNotParticipant
	}

	delete(r.games, chat)
	return nil
}

// Active reports whether the chat has a game
func (r *GameRegistry) Active(chat string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.games[chat]
	return exists
}

// Snapshot returns a copy of the chat's game for rendering
func (r *GameRegistry) Snapshot(chat string) (Game, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, exists := r.games[chat]
	if !exists {
		return Game{}, false
	}
	return *g, true
}

// checkWin returns the winning marker if one of the 8 lines is uniform,
// empty string otherwise
func checkWin(board [9]string) string {
	for _, line := range winLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if (a == MarkerX || a == MarkerO) && a == b && b == c {
			return a
		}
	}
	return ""
}

// boardFull reports whether no unmarked cell remains
func boardFull(board [9]string) bool {
	for _, cell := range board {
		if cell != MarkerX && cell != MarkerO {
			return false
		}
	}
	return true
}

// cellDigit returns the placeholder digit for an empty cell
func cellDigit(i int) string {
	return string(rune('0' + i))
}
