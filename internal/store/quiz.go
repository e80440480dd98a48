package store

import (
	"errors"
	"sync"
	"time"
)

// Quiz state errors, mapped to user-facing messages by the command layer
var (
	ErrQuizActive      = errors.New("a quiz is already active in this chat")
	ErrNoQuiz          = errors.New("no active quiz in this chat")
	ErrAlreadyAnswered = errors.New("participant already used their attempt")
	ErrAnswerRange     = errors.New("answer index out of range")
)

// Question is one entry of the quiz question bank
type Question struct {
	Text         string
	Options      []string
	CorrectIndex int // 0-based
}

// AnswerOutcome describes a recorded quiz answer
type AnswerOutcome struct {
	Correct  bool
	Chosen   int
	Question Question
}

type quizSession struct {
	question  Question
	answers   map[string]int
	startedAt time.Time
	gen       uint64
	stopTimer func() bool
}

// QuizRegistry holds at most one quiz per chat with a cancellable timeout.
// Exactly one terminal outcome ever fires for a session: a correct answer,
// an explicit cancel, or the timeout. The loser of any race observes the
// session gone (or superseded by generation) and becomes a no-op.
type QuizRegistry struct {
	mu       sync.Mutex
	quizzes  map[string]*quizSession
	gen      uint64
	timeout  time.Duration
	now      func() time.Time
	newTimer func(d time.Duration, f func()) func() bool
}

// NewQuizRegistry creates a quiz registry with the given timeout
func NewQuizRegistry(timeout time.Duration) *QuizRegistry {
	return &QuizRegistry{
		quizzes: make(map[string]*quizSession),
		timeout: timeout,
		now:     time.Now,
		newTimer: func(d time.Duration, f func()) func() bool {
			t := time.AfterFunc(d, f)
			return t.Stop
		},
	}
}

// SetTimerFactory replaces the timeout timer source, for tests
func (r *QuizRegistry) SetTimerFactory(newTimer func(d time.Duration, f func()) func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.newTimer = newTimer
}

// Start creates a quiz for the chat and arms its timeout. When the timeout
// fires first, onTimeout is invoked with the question so the caller can
// announce the correct answer. Fails with ErrQuizActive if a quiz exists.
func (r *QuizRegistry) Start(chat string, q Question, onTimeout func(chat string, q Question)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.quizzes[chat]; exists {
		return ErrQuizActive
	}

	r.gen++
	gen := r.gen

	s := &quizSession{
		question:  q,
		answers:   make(map[string]int),
		startedAt: r.now(),
		gen:       gen,
	}
	s.stopTimer = r.newTimer(r.timeout, func() {
		r.expire(chat, gen, onTimeout)
	})

	r.quizzes[chat] = s
	return nil
}

// expire is the timeout path. The generation check makes a timer that lost
// the race against a correct answer or cancel a no-op, even if a new quiz
// has already been started for the same chat.
func (r *QuizRegistry) expire(chat string, gen uint64, onTimeout func(chat string, q Question)) {
	r.mu.Lock()
	s, exists := r.quizzes[chat]
	if !exists || s.gen != gen {
		r.mu.Unlock()
		return
	}
	delete(r.quizzes, chat)
	q := s.question
	r.mu.Unlock()

	// Announce outside the lock; onTimeout may send messages
	onTimeout(chat, q)
}

// Answer records a participant's answer (0-based choice). Out-of-range
// answers fail without consuming the participant's attempt. A correct
// answer resolves the session: the timeout is cancelled and the session
// destroyed before returning.
func (r *QuizRegistry) Answer(chat, participant string, choice int) (*AnswerOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.quizzes[chat]
	if !exists {
		return nil, ErrNoQuiz
	}

	if choice < 0 || choice >= len(s.question.Options) {
		return nil, ErrAnswerRange
	}

	if _, answered := s.answers[participant]; answered {
		return nil, ErrAlreadyAnswered
	}

	s.answers[participant] = choice

	outcome := &AnswerOutcome{
		Chosen:   choice,
		Question: s.question,
	}

	if choice == s.question.CorrectIndex {
		outcome.Correct = true
		s.stopTimer()
		delete(r.quizzes, chat)
	}

	return outcome, nil
}

// Cancel destroys the chat's quiz and cancels its timeout, returning the
// question so the caller can announce the correct answer
func (r *QuizRegistry) Cancel(chat string) (Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.quizzes[chat]
	if !exists {
		return Question{}, ErrNoQuiz
	}

	s.stopTimer()
	delete(r.quizzes, chat)
	return s.question, nil
}

// ActiveQuestion returns the chat's live question for rendering
func (r *QuizRegistry) ActiveQuestion(chat string) (Question, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.quizzes[chat]
	if !exists {
		return Question{}, false
	}
	return s.question, true
}

// Active reports whether the chat has a quiz
func (r *QuizRegistry) Active(chat string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.quizzes[chat]
	return exists
}
