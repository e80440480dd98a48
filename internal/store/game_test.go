package store

import (
	"errors"
	"testing"
)

func TestGameRegistry_StartRejectsSecondGame(t *testing.T) {
	r := NewGameRegistry()

	if _, err := r.Start("c1", "u1", "u2", false); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if _, err := r.Start("c1", "u3", "u4", false); !errors.Is(err, ErrGameActive) {
		t.Errorf("Start() with active game = %v, want ErrGameActive", err)
	}

	// Another chat is unaffected
	if _, err := r.Start("c2", "u1", "u2", false); err != nil {
		t.Errorf("Start() in other chat failed: %v", err)
	}
}

func TestGameRegistry_StartInitialState(t *testing.T) {
	r := NewGameRegistry()

	g, err := r.Start("c1", "u1", "", true)
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if g.CurrentMarker != MarkerX {
		t.Errorf("CurrentMarker = %q, want %q", g.CurrentMarker, MarkerX)
	}
	if g.Player1 != "u1" || g.Player2 != "" || !g.IsOpen {
		t.Errorf("players = (%q, %q, open=%v), want (u1, empty, true)", g.Player1, g.Player2, g.IsOpen)
	}
	for i, cell := range g.Board {
		if cell == MarkerX || cell == MarkerO {
			t.Errorf("Board[%d] = %q, want empty placeholder", i, cell)
		}
	}
}

func TestGameRegistry_OpenGameBindsSecondPlayer(t *testing.T) {
	r := NewGameRegistry()

	if _, err := r.Start("c1", "u1", "", true); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// First move from a non-starter takes the O seat
	outcome, err := r.Move("c1", "u2", 4)
	if err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if outcome.Marker != MarkerO {
		t.Errorf("Marker = %q, want %q", outcome.Marker, MarkerO)
	}
	if !outcome.BoundPlayer2 {
		t.Error("BoundPlayer2 = false, want true")
	}
	if outcome.Board[4] != MarkerO {
		t.Errorf("Board[4] = %q, want %q", outcome.Board[4], MarkerO)
	}
	if outcome.NextTurn != "u1" || outcome.NextMarker != MarkerX {
		t.Errorf("next = (%q, %q), want (u1, X)", outcome.NextTurn, outcome.NextMarker)
	}

	// The seat is bound permanently: a third participant is rejected
	if _, err := r.Move("c1", "u3", 0); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("Move() by third participant = %v, want ErrNotYourTurn", err)
	}
}

func TestGameRegistry_MoveErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(r *GameRegistry)
		chat    string
		sender  string
		cell    int
		wantErr error
	}{
		{
			name:    "no game",
			setup:   func(r *GameRegistry) {},
			chat:    "c1",
			sender:  "u1",
			cell:    0,
			wantErr: ErrNoGame,
		},
		{
			name: "out of turn in closed game",
			setup: func(r *GameRegistry) {
				_, _ = r.Start("c1", "u1", "u2", false)
			},
			chat:    "c1",
			sender:  "u2",
			cell:    0,
			wantErr: ErrNotYourTurn,
		},
		{
			name: "outsider in closed game",
			setup: func(r *GameRegistry) {
				_, _ = r.Start("c1", "u1", "u2", false)
			},
			chat:    "c1",
			sender:  "u9",
			cell:    0,
			wantErr: ErrNotYourTurn,
		},
		{
			name: "cell out of range",
			setup: func(r *GameRegistry) {
				_, _ = r.Start("c1", "u1", "u2", false)
			},
			chat:    "c1",
			sender:  "u1",
			cell:    9,
			wantErr: ErrBadCell,
		},
		{
			name: "occupied cell",
			setup: func(r *GameRegistry) {
				_, _ = r.Start("c1", "u1", "u2", false)
				_, _ = r.Move("c1", "u1", 4)
			},
			chat:    "c1",
			sender:  "u2",
			cell:    4,
			wantErr: ErrCellTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewGameRegistry()
			tt.setup(r)

			_, err := r.Move(tt.chat, tt.sender, tt.cell)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Move() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGameRegistry_WinEndsAndDestroysGame(t *testing.T) {
	r := NewGameRegistry()

	if _, err := r.Start("c1", "u1", "u2", false); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// X takes the top row: 0, 1, 2; O answers at 3 and 4
	moves := []struct {
		sender string
		cell   int
	}{
		{"u1", 0}, {"u2", 3}, {"u1", 1}, {"u2", 4},
	}
	for _, m := range moves {
		if _, err := r.Move("c1", m.sender, m.cell); err != nil {
			t.Fatalf("Move(%s, %d) failed: %v", m.sender, m.cell, err)
		}
	}

	outcome, err := r.Move("c1", "u1", 2)
	if err != nil {
		t.Fatalf("winning Move() failed: %v", err)
	}
	if outcome.Winner != "u1" || outcome.WinnerMarker != MarkerX {
		t.Errorf("winner = (%q, %q), want (u1, X)", outcome.Winner, outcome.WinnerMarker)
	}

	// The game is destroyed, so a new one can start
	if r.Active("c1") {
		t.Error("Active() after win = true, want false")
	}
	if _, err := r.Start("c1", "u3", "u4", false); err != nil {
		t.Errorf("Start() after win failed: %v", err)
	}
}

func TestGameRegistry_DrawEndsGame(t *testing.T) {
	r := NewGameRegistry()

	if _, err := r.Start("c1", "u1", "u2", false); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// X O X / X O O / O X X — full board, no uniform line
	moves := []struct {
		sender string
		cell   int
	}{
		{"u1", 0}, {"u2", 1}, {"u1", 2},
		{"u2", 4}, {"u1", 3}, {"u2", 5},
		{"u1", 7}, {"u2", 6},
	}
	for _, m := range moves {
		outcome, err := r.Move("c1", m.sender, m.cell)
		if err != nil {
			t.Fatalf("Move(%s, %d) failed: %v", m.sender, m.cell, err)
		}
		if outcome.Winner != "" || outcome.Draw {
			t.Fatalf("Move(%s, %d) ended the game early: %+v", m.sender, m.cell, outcome)
		}
	}

	outcome, err := r.Move("c1", "u1", 8)
	if err != nil {
		t.Fatalf("final Move() failed: %v", err)
	}
	if !outcome.Draw {
		t.Errorf("Draw = false, want true; board %v", outcome.Board)
	}
	if r.Active("c1") {
		t.Error("Active() after draw = true, want false")
	}
}

func TestGameRegistry_Cancel(t *testing.T) {
	tests := []struct {
		name          string
		sender        string
		groupOverride bool
		wantErr       error
	}{
		{name: "participant cancels", sender: "u2", wantErr: nil},
		{name: "outsider rejected", sender: "u9", wantErr: ErrNotParticipant},
		{name: "outsider allowed with group override", sender: "u9", groupOverride: true, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewGameRegistry()
			if _, err := r.Start("c1", "u1", "u2", false); err != nil {
				t.Fatalf("Start() failed: %v", err)
			}

			err := r.Cancel("c1", tt.sender, tt.groupOverride)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Cancel() = %v, want %v", err, tt.wantErr)
			}

			wantActive := tt.wantErr != nil
			if r.Active("c1") != wantActive {
				t.Errorf("Active() = %v, want %v", r.Active("c1"), wantActive)
			}
		})
	}

	t.Run("no game", func(t *testing.T) {
		r := NewGameRegistry()
		if err := r.Cancel("c1", "u1", false); !errors.Is(err, ErrNoGame) {
			t.Errorf("Cancel() = %v, want ErrNoGame", err)
		}
	})
}
