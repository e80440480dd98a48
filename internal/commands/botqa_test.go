package commands

import (
	"context"
	"strings"
	"testing"
)

type fakeKnowledge struct {
	answer string
	ok     bool
	err    error
	asked  string
}

func (f *fakeKnowledge) Lookup(ctx context.Context, question string) (string, bool, error) {
	f.asked = question
	return f.answer, f.ok, f.err
}

func TestQuestionAnswerer(t *testing.T) {
	tests := []struct {
		name     string
		question string
		wantSub  string
	}{
		{
			name:     "exact predefined match",
			question: "ما هي عاصمة مصر",
			wantSub:  "القاهرة",
		},
		{
			name:     "question containing a known question",
			question: "من فضلك ما هي عاصمة مصر يا صديقي",
			wantSub:  "القاهرة",
		},
		{
			name:     "keyword overlap with a known question",
			question: "حدثني عن البرمجة",
			wantSub:  "برمجة",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answerer := NewQuestionAnswerer(nil)
			got := answerer.Answer(context.Background(), tt.question)
			if !strings.Contains(got, tt.wantSub) {
				t.Errorf("Answer(%q) = %q, want it to mention %q", tt.question, got, tt.wantSub)
			}
		})
	}
}

func TestQuestionAnswererKnowledgeFallback(t *testing.T) {
	t.Run("knowledge base answers unknown questions", func(t *testing.T) {
		kg := &fakeKnowledge{answer: "📚 إجابة من قاعدة المعرفة", ok: true}
		answerer := NewQuestionAnswerer(kg)

		got := answerer.Answer(context.Background(), "زنقلحة شنقلحة")
		if got != kg.answer {
			t.Errorf("Answer() = %q, want knowledge answer %q", got, kg.answer)
		}
		if kg.asked != "زنقلحة شنقلحة" {
			t.Errorf("Lookup() asked %q, want the raw question", kg.asked)
		}
	})

	t.Run("knowledge miss falls back to canned answers", func(t *testing.T) {
		answerer := NewQuestionAnswerer(&fakeKnowledge{ok: false})
		answerer.pick = func(n int) int { return 0 }

		got := answerer.Answer(context.Background(), "زنقلحة شنقلحة")
		if got != fallbackAnswers[0] {
			t.Errorf("Answer() = %q, want fallback %q", got, fallbackAnswers[0])
		}
	})

	t.Run("knowledge error degrades to canned answers", func(t *testing.T) {
		answerer := NewQuestionAnswerer(&fakeKnowledge{err: context.DeadlineExceeded})
		answerer.pick = func(n int) int { return 3 }

		got := answerer.Answer(context.Background(), "زنقلحة شنقلحة")
		if got != fallbackAnswers[3] {
			t.Errorf("Answer() = %q, want fallback %q", got, fallbackAnswers[3])
		}
	})

	t.Run("nil knowledge goes straight to canned answers", func(t *testing.T) {
		answerer := NewQuestionAnswerer(nil)
		answerer.pick = func(n int) int { return 0 }

		got := answerer.Answer(context.Background(), "زنقلحة شنقلحة")
		if got != fallbackAnswers[0] {
			t.Errorf("Answer() = %q, want fallback %q", got, fallbackAnswers[0])
		}
	})
}
