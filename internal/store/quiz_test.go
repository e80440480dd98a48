package store

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// manualTimer captures timeout callbacks so tests can fire them on demand
type manualTimer struct {
	mu       sync.Mutex
	pending  []func()
	stopped  int
	armCount int
}

func (m *manualTimer) factory(d time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.armCount++
	m.pending = append(m.pending, f)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.stopped++
		return true
	}
}

func (m *manualTimer) fire(i int) {
	m.mu.Lock()
	f := m.pending[i]
	m.mu.Unlock()
	f()
}

func testQuestion() Question {
	return Question{
		Text:         "ما هي عاصمة مصر؟",
		Options:      []string{"القاهرة", "الرياض", "بغداد", "عمان"},
		CorrectIndex: 0,
	}
}

func TestQuizRegistry_StartRejectsSecondQuiz(t *testing.T) {
	r := NewQuizRegistry(time.Minute)
	timer := &manualTimer{}
	r.SetTimerFactory(timer.factory)

	noop := func(string, Question) {}

	if err := r.Start("c1", testQuestion(), noop); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := r.Start("c1", testQuestion(), noop); !errors.Is(err, ErrQuizActive) {
		t.Errorf("Start() with active quiz = %v, want ErrQuizActive", err)
	}
	if err := r.Start("c2", testQuestion(), noop); err != nil {
		t.Errorf("Start() in other chat failed: %v", err)
	}
}

func TestQuizRegistry_AnswerOutcomes(t *testing.T) {
	r := NewQuizRegistry(time.Minute)
	timer := &manualTimer{}
	r.SetTimerFactory(timer.factory)

	if err := r.Start("c1", testQuestion(), func(string, Question) {}); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// Out-of-range answers do not consume the attempt
	if _, err := r.Answer("c1", "u1", 7); !errors.Is(err, ErrAnswerRange) {
		t.Fatalf("Answer() out of range = %v, want ErrAnswerRange", err)
	}

	// First valid answer is recorded even when wrong
	outcome, err := r.Answer("c1", "u1", 2)
	if err != nil {
		t.Fatalf("Answer() failed: %v", err)
	}
	if outcome.Correct {
		t.Error("Correct = true for a wrong answer")
	}
	if !r.Active("c1") {
		t.Error("quiz should stay active after a wrong answer")
	}

	// A second attempt from the same participant is rejected
	if _, err := r.Answer("c1", "u1", 0); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("Answer() second attempt = %v, want ErrAlreadyAnswered", err)
	}

	// A correct answer from another participant resolves the session
	outcome, err = r.Answer("c1", "u2", 0)
	if err != nil {
		t.Fatalf("Answer() failed: %v", err)
	}
	if !outcome.Correct {
		t.Error("Correct = false for the right answer")
	}
	if r.Active("c1") {
		t.Error("quiz should be destroyed after a correct answer")
	}
	if timer.stopped != 1 {
		t.Errorf("timeout stopped %d times, want 1", timer.stopped)
	}

	if _, err := r.Answer("c1", "u3", 0); !errors.Is(err, ErrNoQuiz) {
		t.Errorf("Answer() after resolution = %v, want ErrNoQuiz", err)
	}
}

func TestQuizRegistry_TimeoutAnnouncesOnce(t *testing.T) {
	r := NewQuizRegistry(time.Minute)
	timer := &manualTimer{}
	r.SetTimerFactory(timer.factory)

	var mu sync.Mutex
	timeouts := 0
	onTimeout := func(chat string, q Question) {
		mu.Lock()
		defer mu.Unlock()
		timeouts++
		if chat != "c1" {
			t.Errorf("onTimeout chat = %q, want c1", chat)
		}
		if q.CorrectIndex != 0 {
			t.Errorf("onTimeout question = %+v, want the started question", q)
		}
	}

	if err := r.Start("c1", testQuestion(), onTimeout); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	timer.fire(0)
	// A late duplicate fire is a no-op
	timer.fire(0)

	mu.Lock()
	got := timeouts
	mu.Unlock()
	if got != 1 {
		t.Errorf("timeout announced %d times, want 1", got)
	}
	if r.Active("c1") {
		t.Error("quiz should be destroyed by the timeout")
	}
}

func TestQuizRegistry_TimeoutAfterResolutionIsNoop(t *testing.T) {
	r := NewQuizRegistry(time.Minute)
	timer := &manualTimer{}
	r.SetTimerFactory(timer.factory)

	timeouts := 0
	if err := r.Start("c1", testQuestion(), func(string, Question) { timeouts++ }); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if _, err := r.Answer("c1", "u1", 0); err != nil {
		t.Fatalf("Answer() failed: %v", err)
	}

	// The timer lost the race; firing it now must not announce
	timer.fire(0)
	if timeouts != 0 {
		t.Errorf("timeout announced %d times after resolution, want 0", timeouts)
	}
}

func TestQuizRegistry_StaleTimeoutCannotKillNewQuiz(t *testing.T) {
	r := NewQuizRegistry(time.Minute)
	timer := &manualTimer{}
	r.SetTimerFactory(timer.factory)

	noop := func(string, Question) {}

	if err := r.Start("c1", testQuestion(), noop); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if _, err := r.Cancel("c1"); err != nil {
		t.Fatalf("Cancel() failed: %v", err)
	}

	// A new quiz for the same chat gets a new generation
	if err := r.Start("c1", testQuestion(), noop); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// Firing the first quiz's timer must not destroy the second quiz
	timer.fire(0)
	if !r.Active("c1") {
		t.Error("stale timeout destroyed the new quiz")
	}
}

func TestQuizRegistry_Cancel(t *testing.T) {
	r := NewQuizRegistry(time.Minute)
	timer := &manualTimer{}
	r.SetTimerFactory(timer.factory)

	if _, err := r.Cancel("c1"); !errors.Is(err, ErrNoQuiz) {
		t.Errorf("Cancel() with no quiz = %v, want ErrNoQuiz", err)
	}

	if err := r.Start("c1", testQuestion(), func(string, Question) {}); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	q, err := r.Cancel("c1")
	if err != nil {
		t.Fatalf("Cancel() failed: %v", err)
	}
	if q.Text != testQuestion().Text {
		t.Errorf("Cancel() question = %q, want the started question", q.Text)
	}
	if r.Active("c1") {
		t.Error("quiz should be destroyed by Cancel")
	}
	if timer.stopped != 1 {
		t.Errorf("timeout stopped %d times, want 1", timer.stopped)
	}
}
