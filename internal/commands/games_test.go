package commands

import (
	"context"
	"strings"
	"testing"

	"github.com/yourusername/wabot/internal/store"
)

func gameContext(sender string, mentions []string, args ...string) *Context {
	msg := &Message{
		Chat:     "group@g.us",
		Sender:   sender,
		IsGroup:  true,
		Mentions: mentions,
	}
	return NewContext(context.Background(), msg, args, LevelNormal, "test-dispatch", nil)
}

func TestXOCommandStart(t *testing.T) {
	t.Run("no args shows help", func(t *testing.T) {
		cmd := NewXOCommand(store.NewGameRegistry())
		resp, err := cmd.Execute(gameContext("p1@s.whatsapp.net", nil))
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(resp.Message, "لعبة إكس-أو") {
			t.Errorf("Execute() = %q, want help box", resp.Message)
		}
	})

	t.Run("open start invites anyone", func(t *testing.T) {
		cmd := NewXOCommand(store.NewGameRegistry())
		resp, err := cmd.Execute(gameContext("p1@s.whatsapp.net", nil, "عام"))
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(resp.Message, "اللعبة مفتوحة للجميع") {
			t.Errorf("Execute() = %q, want open-game banner", resp.Message)
		}
		if !strings.Contains(resp.Message, "أي شخص") {
			t.Errorf("Execute() = %q, want open seat", resp.Message)
		}
	})

	t.Run("paired start binds the mentioned player", func(t *testing.T) {
		cmd := NewXOCommand(store.NewGameRegistry())
		resp, err := cmd.Execute(gameContext("p1@s.whatsapp.net", []string{"p2@s.whatsapp.net"}, "@p2"))
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(resp.Message, "اللعبة محددة للاعبين فقط") {
			t.Errorf("Execute() = %q, want paired banner", resp.Message)
		}
		if len(resp.Mentions) != 2 {
			t.Errorf("len(Mentions) = %d, want 2", len(resp.Mentions))
		}
	})

	t.Run("mention flag without mentions fails", func(t *testing.T) {
		cmd := NewXOCommand(store.NewGameRegistry())
		if _, err := cmd.Execute(gameContext("p1@s.whatsapp.net", nil, "@p2")); err == nil {
			t.Error("Execute() error = nil, want validation error")
		}
	})

	t.Run("second start conflicts", func(t *testing.T) {
		cmd := NewXOCommand(store.NewGameRegistry())
		if _, err := cmd.Execute(gameContext("p1@s.whatsapp.net", nil, "عام")); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if _, err := cmd.Execute(gameContext("p3@s.whatsapp.net", nil, "عام")); err == nil {
			t.Error("Execute() error = nil, want active-game conflict")
		}
	})
}

func TestXOCommandPlayThrough(t *testing.T) {
	cmd := NewXOCommand(store.NewGameRegistry())
	p1 := "p1@s.whatsapp.net"
	p2 := "p2@s.whatsapp.net"

	if _, err := cmd.Execute(gameContext(p1, []string{p2}, "@p2")); err != nil {
		t.Fatalf("start error = %v", err)
	}

	// X: 0 4 8 wins the diagonal; O: 1 2
	moves := []struct {
		sender string
		cell   string
	}{
		{p1, "0"}, {p2, "1"}, {p1, "4"}, {p2, "2"},
	}
	for _, m := range moves {
		resp, err := cmd.Execute(gameContext(m.sender, nil, m.cell))
		if err != nil {
			t.Fatalf("move %s by %s error = %v", m.cell, m.sender, err)
		}
		if !strings.Contains(resp.Message, "اللعبة مستمرة") {
			t.Fatalf("move %s = %q, want continue box", m.cell, resp.Message)
		}
	}

	resp, err := cmd.Execute(gameContext(p1, nil, "8"))
	if err != nil {
		t.Fatalf("winning move error = %v", err)
	}
	if !strings.Contains(resp.Message, "🏆 *الفائز:*") {
		t.Errorf("winning move = %q, want winner box", resp.Message)
	}
	if !strings.Contains(resp.Message, "@p1") {
		t.Errorf("winning move = %q, want winner tag", resp.Message)
	}

	// The finished game is gone
	if _, err := cmd.Execute(gameContext(p1, nil, "3")); err == nil {
		t.Error("move after win error = nil, want no-game error")
	}
}

func TestXOCommandMoveErrors(t *testing.T) {
	cmd := NewXOCommand(store.NewGameRegistry())
	p1 := "p1@s.whatsapp.net"
	p2 := "p2@s.whatsapp.net"

	if _, err := cmd.Execute(gameContext(p1, []string{p2}, "@p2")); err != nil {
		t.Fatalf("start error = %v", err)
	}

	tests := []struct {
		name    string
		sender  string
		cell    string
		wantErr string
	}{
		{name: "out of turn names the current player", sender: p2, cell: "0", wantErr: "الدور الحالي لـ @p1"},
		{name: "cell out of range", sender: p1, cell: "9", wantErr: "⚠️ استخدم رقم بين 0 و 8."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cmd.Execute(gameContext(tt.sender, nil, tt.cell))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Execute() error = %v, want %q", err, tt.wantErr)
			}
		})
	}

	if _, err := cmd.Execute(gameContext(p1, nil, "0")); err != nil {
		t.Fatalf("move error = %v", err)
	}
	if _, err := cmd.Execute(gameContext(p2, nil, "0")); err == nil ||
		!strings.Contains(err.Error(), "هذه الخانة مشغولة") {
		t.Errorf("occupied cell error = %v, want taken-cell error", err)
	}
}

func TestXOCommandOpenSeatBinding(t *testing.T) {
	cmd := NewXOCommand(store.NewGameRegistry())
	p1 := "p1@s.whatsapp.net"
	joiner := "p9@s.whatsapp.net"

	if _, err := cmd.Execute(gameContext(p1, nil, "عام")); err != nil {
		t.Fatalf("start error = %v", err)
	}
	if _, err := cmd.Execute(gameContext(p1, nil, "0")); err != nil {
		t.Fatalf("first move error = %v", err)
	}

	// Any non-starter's first move takes the O seat
	resp, err := cmd.Execute(gameContext(joiner, nil, "4"))
	if err != nil {
		t.Fatalf("binding move error = %v", err)
	}
	if !strings.Contains(resp.Message, "@p1") {
		t.Errorf("binding move = %q, want turn handed back to starter", resp.Message)
	}

	// A third party can no longer move
	if _, err := cmd.Execute(gameContext("p5@s.whatsapp.net", nil, "1")); err == nil {
		t.Error("third-party move error = nil, want out-of-turn error")
	}
}

func TestCancelGameCommand(t *testing.T) {
	p1 := "p1@s.whatsapp.net"
	p2 := "p2@s.whatsapp.net"

	newGame := func(t *testing.T) (*XOCommand, *CancelGameCommand) {
		t.Helper()
		games := store.NewGameRegistry()
		xo := NewXOCommand(games)
		if _, err := xo.Execute(gameContext(p1, []string{p2}, "@p2")); err != nil {
			t.Fatalf("start error = %v", err)
		}
		return xo, NewCancelGameCommand(games)
	}

	t.Run("participant cancels", func(t *testing.T) {
		_, cancel := newGame(t)
		resp, err := cancel.Execute(gameContext(p2, nil))
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if want := "✅ تم إلغاء اللعبة الحالية."; resp.Message != want {
			t.Errorf("Execute() = %q, want %q", resp.Message, want)
		}
	})

	t.Run("bystander cannot cancel", func(t *testing.T) {
		_, cancel := newGame(t)
		_, err := cancel.Execute(gameContext("other@s.whatsapp.net", nil))
		if err == nil || !strings.Contains(err.Error(), "فقط اللاعبين المشاركين") {
			t.Errorf("Execute() error = %v, want participant-only error", err)
		}
	})

	t.Run("group admin overrides", func(t *testing.T) {
		_, cancel := newGame(t)
		msg := &Message{Chat: "group@g.us", Sender: "other@s.whatsapp.net", IsGroup: true}
		ctx := NewContext(context.Background(), msg, nil, LevelAdmin, "test-dispatch", nil)
		if _, err := cancel.Execute(ctx); err != nil {
			t.Errorf("Execute() error = %v, want admin override to succeed", err)
		}
	})

	t.Run("no game to cancel", func(t *testing.T) {
		cancel := NewCancelGameCommand(store.NewGameRegistry())
		_, err := cancel.Execute(gameContext(p1, nil))
		if err == nil || !strings.Contains(err.Error(), "لا يوجد لعبة جارية") {
			t.Errorf("Execute() error = %v, want no-game error", err)
		}
	})
}
