package commands

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/wabot/internal/store"
)

func flowContext(sessions store.SessionStore) *Context {
	msg := &Message{Chat: "group@g.us", Sender: "user@s.whatsapp.net", IsGroup: true}
	return NewContext(context.Background(), msg, nil, LevelNormal, "test-dispatch", nil)
}

func TestCultureFlow(t *testing.T) {
	sessions := store.NewSessionStore(5 * time.Minute)
	cmd := NewCultureCommand(sessions)
	ctx := flowContext(sessions)

	t.Run("start shows categories and arms the state", func(t *testing.T) {
		resp, err := cmd.Execute(ctx)
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(resp.Message, "الدول العربية") {
			t.Errorf("Execute() = %q, missing category list", resp.Message)
		}
		state, ok := sessions.Get("user@s.whatsapp.net", "group@g.us")
		if !ok || state != store.StateCategory {
			t.Errorf("session state = %q, %v, want %q", state, ok, store.StateCategory)
		}
	})

	t.Run("category choice advances to countries", func(t *testing.T) {
		resp, err := cmd.HandleCategory(ctx, 1)
		if err != nil {
			t.Fatalf("HandleCategory() error = %v", err)
		}
		if !strings.Contains(resp.Message, "🇪🇬 مصر") {
			t.Errorf("HandleCategory() = %q, missing country list", resp.Message)
		}
		state, ok := sessions.Get("user@s.whatsapp.net", "group@g.us")
		if !ok || state != store.StateCulture {
			t.Errorf("session state = %q, %v, want %q", state, ok, store.StateCulture)
		}
	})

	t.Run("country choice ends the flow", func(t *testing.T) {
		resp, err := cmd.HandleCountry(ctx, 1)
		if err != nil {
			t.Fatalf("HandleCountry() error = %v", err)
		}
		if !strings.Contains(resp.Message, "جمهورية مصر العربية") {
			t.Errorf("HandleCountry() = %q, want country profile", resp.Message)
		}
		if _, ok := sessions.Get("user@s.whatsapp.net", "group@g.us"); ok {
			t.Error("session state survives the flow end, want cleared")
		}
	})

	t.Run("out of range category clears the state", func(t *testing.T) {
		if _, err := cmd.Execute(ctx); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		resp, err := cmd.HandleCategory(ctx, 9)
		if err != nil {
			t.Fatalf("HandleCategory() error = %v", err)
		}
		if resp.Message != InvalidSelectionReply {
			t.Errorf("HandleCategory() = %q, want %q", resp.Message, InvalidSelectionReply)
		}
		if _, ok := sessions.Get("user@s.whatsapp.net", "group@g.us"); ok {
			t.Error("session state survives an invalid selection, want cleared")
		}
	})
}

type fixedPrayers struct {
	timings *PrayerTimings
	err     error
	city    string
}

func (f *fixedPrayers) TimingsByCity(ctx context.Context, city string) (*PrayerTimings, error) {
	f.city = city
	return f.timings, f.err
}

func TestPrayerFlow(t *testing.T) {
	timings := &PrayerTimings{
		Fajr:    "04:30",
		Sunrise: "06:05",
		Dhuhr:   "12:01",
		Asr:     "15:30",
		Maghrib: "18:10",
		Isha:    "19:40",
	}

	t.Run("start shows cities and arms the state", func(t *testing.T) {
		sessions := store.NewSessionStore(5 * time.Minute)
		cmd := NewPrayerCommand(sessions, &fixedPrayers{timings: timings}, time.UTC)
		ctx := flowContext(sessions)

		resp, err := cmd.Execute(ctx)
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(resp.Message, "القاهرة") {
			t.Errorf("Execute() = %q, missing city menu", resp.Message)
		}
		state, ok := sessions.Get("user@s.whatsapp.net", "group@g.us")
		if !ok || state != store.StatePrayer {
			t.Errorf("session state = %q, %v, want %q", state, ok, store.StatePrayer)
		}
	})

	t.Run("city choice renders 12-hour timings", func(t *testing.T) {
		sessions := store.NewSessionStore(5 * time.Minute)
		prayers := &fixedPrayers{timings: timings}
		cmd := NewPrayerCommand(sessions, prayers, time.UTC)
		ctx := flowContext(sessions)

		if _, err := cmd.Execute(ctx); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		resp, err := cmd.HandleCity(ctx, 1)
		if err != nil {
			t.Fatalf("HandleCity() error = %v", err)
		}
		if prayers.city != "Cairo" {
			t.Errorf("TimingsByCity() city = %q, want %q", prayers.city, "Cairo")
		}
		for _, want := range []string{"4:30 ص", "12:01 م", "7:40 م"} {
			if !strings.Contains(resp.Message, want) {
				t.Errorf("HandleCity() = %q, missing timing %q", resp.Message, want)
			}
		}
		if _, ok := sessions.Get("user@s.whatsapp.net", "group@g.us"); ok {
			t.Error("session state survives the flow end, want cleared")
		}
	})

	t.Run("fetch failure still clears the state", func(t *testing.T) {
		sessions := store.NewSessionStore(5 * time.Minute)
		cmd := NewPrayerCommand(sessions, &fixedPrayers{err: fmt.Errorf("provider down")}, time.UTC)
		ctx := flowContext(sessions)

		if _, err := cmd.Execute(ctx); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if _, err := cmd.HandleCity(ctx, 1); err == nil {
			t.Fatal("HandleCity() error = nil, want error")
		}
		if _, ok := sessions.Get("user@s.whatsapp.net", "group@g.us"); ok {
			t.Error("session state survives a failed fetch, want cleared")
		}
	})

	t.Run("out of range city is an invalid selection", func(t *testing.T) {
		sessions := store.NewSessionStore(5 * time.Minute)
		cmd := NewPrayerCommand(sessions, &fixedPrayers{timings: timings}, time.UTC)
		ctx := flowContext(sessions)

		resp, err := cmd.HandleCity(ctx, 7)
		if err != nil {
			t.Fatalf("HandleCity() error = %v", err)
		}
		if resp.Message != InvalidSelectionReply {
			t.Errorf("HandleCity() = %q, want %q", resp.Message, InvalidSelectionReply)
		}
	})
}

func TestFormat12Hour(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"04:30", "4:30 ص"},
		{"00:05", "12:05 ص"},
		{"12:00", "12:00 م"},
		{"19:40 (EET)", "7:40 م"},
		{"not-a-time", "not-a-time"},
	}
	for _, tt := range tests {
		if got := format12Hour(tt.in); got != tt.want {
			t.Errorf("format12Hour(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMenuCommands(t *testing.T) {
	registry := NewRegistry()
	if err := RegisterMenus(registry); err != nil {
		t.Fatalf("RegisterMenus() error = %v", err)
	}

	names := []string{"اوامر", "اوامر_تنزيل", "اوامر_ادمن", "اوامر_حوار", "اوامر_وسائط", "اوامر_عامة", "اوامر_العاب"}
	for _, name := range names {
		if !registry.Has(name) {
			t.Errorf("Has(%q) = false, want registered menu", name)
		}
	}
	if !registry.Has("ادمنز") {
		t.Error("Has(ادمنز) = false, want alias for the admin menu")
	}

	cmd, _ := registry.Get("اوامر")
	var notified []string
	msg := &Message{Chat: "group@g.us", Sender: "user@s.whatsapp.net"}
	ctx := NewContext(context.Background(), msg, nil, LevelNormal, "test-dispatch", func(text string) {
		notified = append(notified, text)
	})

	resp, err := cmd.Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(notified) != 1 {
		t.Errorf("len(notified) = %d, want 1 wait message", len(notified))
	}
	if !strings.Contains(resp.Message, "اوامر") {
		t.Errorf("Execute() = %q, want menu body", resp.Message)
	}
}
