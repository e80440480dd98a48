package commands

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	boterrors "github.com/yourusername/wabot/internal/errors"
	"github.com/yourusername/wabot/internal/store"
)

var quizBank = []store.Question{
	{
		Text:         "ما هي عاصمة مصر؟",
		Options:      []string{"القاهرة", "الإسكندرية", "الجيزة", "أسوان"},
		CorrectIndex: 0,
	},
	{
		Text:         "ما هي أطول نهر في العالم؟",
		Options:      []string{"الأمازون", "النيل", "المسيسيبي", "اليانغتسي"},
		CorrectIndex: 1,
	},
	{
		Text:         "كم عدد أضلاع المسدس؟",
		Options:      []string{"4", "5", "6", "7"},
		CorrectIndex: 2,
	},
	{
		Text:         "ما هو العنصر الكيميائي الذي رمزه O؟",
		Options:      []string{"الذهب", "الفضة", "الأكسجين", "الأوزون"},
		CorrectIndex: 2,
	},
	{
		Text:         "من مؤلف كتاب مقدمة ابن خلدون؟",
		Options:      []string{"الفارابي", "ابن سينا", "ابن رشد", "ابن خلدون"},
		CorrectIndex: 3,
	},
}

// QuizCommand posts a random timed question to the chat. The timeout
// announcement goes through the client directly because it fires outside
// any dispatch cycle.
type QuizCommand struct {
	quizzes *store.QuizRegistry
	client  ChatClient
	pick    func(n int) int
}

// NewQuizCommand creates the quiz command
func NewQuizCommand(quizzes *store.QuizRegistry, client ChatClient) *QuizCommand {
	return &QuizCommand{
		quizzes: quizzes,
		client:  client,
		pick:    rand.Intn,
	}
}

func (c *QuizCommand) Name() string                        { return "سؤال" }
func (c *QuizCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *QuizCommand) Help() string                        { return "طرح سؤال ثقافي للمشاركين" }

func (c *QuizCommand) Execute(ctx *Context) (*Response, error) {
	question := quizBank[c.pick(len(quizBank))]

	err := c.quizzes.Start(ctx.Msg.Chat, question, c.announceTimeout)
	if errors.Is(err, store.ErrQuizActive) {
		return nil, boterrors.NewStateConflictError(
			"⚠️ هناك سؤال نشط بالفعل في هذه المجموعة. انتظر حتى تنتهي أو استخدم .الغاء_سؤال لإلغائه.",
			"quiz already active",
		)
	}
	if err != nil {
		return nil, boterrors.NewUnexpectedError(err)
	}

	options := make([]string, len(question.Options))
	for i, option := range question.Options {
		options[i] = fmt.Sprintf("%d. %s", i+1, option)
	}

	text := fmt.Sprintf(`
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃         🧠 *سؤال ثقافي* 🧠         ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

❓ *السؤال:* %s

%s

⏱️ *لديك دقيقة واحدة للإجابة*
📝 *للإجابة اكتب رقم الإجابة وقم بعمل منشن للبوت*
مثال: @بوت 2
`, question.Text, strings.Join(options, "\n"))

	return NewResponse(text), nil
}

// announceTimeout is called by the quiz registry when the timer wins the
// race; it reveals the correct answer
func (c *QuizCommand) announceTimeout(chat string, q store.Question) {
	text := fmt.Sprintf("⏱️ انتهى الوقت! الإجابة الصحيحة هي: *%s*", q.Options[q.CorrectIndex])
	_ = c.client.SendText(context.Background(), chat, text)
}

// AnswerQuiz records a participant's 1-based answer and reports the outcome
func (c *QuizCommand) AnswerQuiz(ctx *Context, number int) (*Response, error) {
	outcome, err := c.quizzes.Answer(ctx.Msg.Chat, ctx.Msg.Sender, number-1)
	sender := jidDigits(ctx.Msg.Sender)

	switch {
	case errors.Is(err, store.ErrNoQuiz):
		// The quiz resolved between classification and execution
		return nil, boterrors.NewStateConflictError("❌ لا يوجد سؤال نشط حاليًا.", "no quiz")
	case errors.Is(err, store.ErrAnswerRange):
		q, ok := c.quizzes.ActiveQuestion(ctx.Msg.Chat)
		if !ok {
			return nil, boterrors.NewStateConflictError("❌ لا يوجد سؤال نشط حاليًا.", "no quiz")
		}
		return nil, boterrors.NewValidationError(
			fmt.Sprintf("⚠️ رقم الإجابة غير صالح. يرجى إدخال رقم بين 1 و %d", len(q.Options)))
	case errors.Is(err, store.ErrAlreadyAnswered):
		return nil, boterrors.NewStateConflictError(
			fmt.Sprintf("⚠️ لقد قمت بالإجابة بالفعل يا @%s!", sender),
			"already answered",
		)
	case err != nil:
		return nil, boterrors.NewUnexpectedError(err)
	}

	if !outcome.Correct {
		return NewMentionResponse(
			fmt.Sprintf("❌ إجابة خاطئة يا @%s، حاول مرة أخرى!", sender),
			[]string{ctx.Msg.Sender},
		), nil
	}

	text := fmt.Sprintf(`
🎉 *إجابة صحيحة!*

👏 *الفائز:* @%s
✅ *الإجابة:* %s

🔄 استخدم *.سؤال* للحصول على سؤال جديد
`, sender, outcome.Question.Options[outcome.Question.CorrectIndex])

	return NewMentionResponse(text, []string{ctx.Msg.Sender}), nil
}

// CancelQuizCommand cancels the chat's running quiz, revealing the answer
type CancelQuizCommand struct {
	quizzes *store.QuizRegistry
}

// NewCancelQuizCommand creates the quiz cancel command
func NewCancelQuizCommand(quizzes *store.QuizRegistry) *CancelQuizCommand {
	return &CancelQuizCommand{quizzes: quizzes}
}

func (c *CancelQuizCommand) Name() string                        { return "الغاء_سؤال" }
func (c *CancelQuizCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *CancelQuizCommand) Help() string                        { return "إلغاء السؤال الحالي" }

func (c *CancelQuizCommand) Execute(ctx *Context) (*Response, error) {
	q, err := c.quizzes.Cancel(ctx.Msg.Chat)
	if errors.Is(err, store.ErrNoQuiz) {
		return nil, boterrors.NewStateConflictError("❌ لا يوجد سؤال نشط حاليًا.", "no quiz")
	}
	if err != nil {
		return nil, boterrors.NewUnexpectedError(err)
	}
	return NewResponse(fmt.Sprintf("🛑 تم إلغاء السؤال. الإجابة الصحيحة هي: *%s*", q.Options[q.CorrectIndex])), nil
}
