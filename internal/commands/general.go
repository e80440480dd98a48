package commands

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/wabot/internal/database"
	"github.com/yourusername/wabot/internal/errors"
)

// QuoteService fetches a random quote from an external provider
type QuoteService interface {
	Random(ctx context.Context) (content, author string, err error)
}

// TimeCommand reports the current time in the configured timezone
type TimeCommand struct {
	loc *time.Location
	now func() time.Time
}

// NewTimeCommand creates the time command
func NewTimeCommand(loc *time.Location) *TimeCommand {
	return &TimeCommand{loc: loc, now: time.Now}
}

func (c *TimeCommand) Name() string                        { return "وقت" }
func (c *TimeCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *TimeCommand) Help() string                        { return "معرفة الوقت الحالي" }

func (c *TimeCommand) Execute(ctx *Context) (*Response, error) {
	now := c.now().In(c.loc)
	hour := now.Hour()
	period := "ص"
	if hour >= 12 {
		period = "م"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return NewResponse(fmt.Sprintf("🕒 الوقت الحالي: %02d:%02d:%02d %s",
		hour12, now.Minute(), now.Second(), period)), nil
}

var wisdoms = []string{
	"💡 المال هو زينة الحياة الدنيا.",
	"🦉 العلم نور والجهل ظلام.",
	"🎯 لا تؤجل عمل اليوم إلى الغد.",
	"🎯 من أنجز سريعًا أخذ تاسكات كثيرة.",
	"🎯 استيقظ على الواقع، لا شيء يسير كما هو مخطط له في هذا العالم.",
	"🌱 من جد وجد، ومن زرع حصد.",
	"💡 الحكمة هي خلاصة الفكر.",
	"🦉 الحكيم هو من يعرف متى يتحدث ومتى يصمت.",
	"🎯 النجاح يأتي لمن يسعى إليه.",
	"🌱 الثقة بالنفس أساس النجاح.",
	"💡 الصبر مفتاح الفرج.",
	"🦉 التعلم من الأخطاء هو طريق النجاح.",
	"💡 لا تسأل عن شيء لا تريد سماع إجابته.",
	"🦉 النجاح ليس نهاية الطريق، بل هو بداية رحلة جديدة.",
	"🎯 افعل ما تستطيع بما لديك، حيثما كنت.",
	"🌱 الحياة ليست عن انتظار العاصفة لتمر، بل عن تعلم الرقص تحت المطر.",
}

// WisdomCommand sends a random wisdom line
type WisdomCommand struct {
	pick func(n int) int
}

// NewWisdomCommand creates the wisdom command
func NewWisdomCommand() *WisdomCommand {
	return &WisdomCommand{pick: rand.Intn}
}

func (c *WisdomCommand) Name() string                        { return "حكمه" }
func (c *WisdomCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *WisdomCommand) Help() string                        { return "إرسال حكمة عشوائية" }

func (c *WisdomCommand) Execute(ctx *Context) (*Response, error) {
	return NewResponse(wisdoms[c.pick(len(wisdoms))]), nil
}

// QuoteCommand fetches a random quote
type QuoteCommand struct {
	quotes QuoteService
}

// NewQuoteCommand creates the quote command
func NewQuoteCommand(quotes QuoteService) *QuoteCommand {
	return &QuoteCommand{quotes: quotes}
}

func (c *QuoteCommand) Name() string                        { return "اقتباس" }
func (c *QuoteCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *QuoteCommand) Help() string                        { return "اقتباس عشوائي" }

func (c *QuoteCommand) Execute(ctx *Context) (*Response, error) {
	content, author, err := c.quotes.Random(ctx.Ctx)
	if err != nil {
		return nil, &errors.BotError{
			Type:          errors.ErrorTypeAPI,
			UserMessage:   "❌ لم أتمكن من جلب الاقتباس.",
			InternalError: err,
		}
	}
	return NewResponse(fmt.Sprintf("📜 اقتباس: %s\n\n- *%s*", content, author)), nil
}

// MyMessagesCommand reports the sender's tracked message count
type MyMessagesCommand struct {
	db *database.DB
}

// NewMyMessagesCommand creates the message counter command
func NewMyMessagesCommand(db *database.DB) *MyMessagesCommand {
	return &MyMessagesCommand{db: db}
}

func (c *MyMessagesCommand) Name() string                        { return "رسائلي" }
func (c *MyMessagesCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *MyMessagesCommand) Help() string                        { return "عرض عدد رسائلك" }

func (c *MyMessagesCommand) Execute(ctx *Context) (*Response, error) {
	count, err := c.db.GetCounter(ctx.Msg.Sender)
	if err != nil {
		return nil, errors.NewDatabaseError("get counter", err)
	}
	return NewResponse(fmt.Sprintf("📊 عدد رسائلك: %d", count)), nil
}

// RepeatCommand repeats a text as separate messages, capped
type RepeatCommand struct {
	cap int
}

// NewRepeatCommand creates the repeat command with the given message cap
func NewRepeatCommand(cap int) *RepeatCommand {
	return &RepeatCommand{cap: cap}
}

func (c *RepeatCommand) Name() string                        { return "كرر" }
func (c *RepeatCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *RepeatCommand) Help() string                        { return "تكرار رسائل منفصلة" }

func (c *RepeatCommand) Execute(ctx *Context) (*Response, error) {
	count, text, err := parseRepeatArgs(ctx.Args)
	if err != nil {
		return nil, errors.NewValidationError("⚠️ استخدم الأمر بهذا الشكل: .كرر [عدد] [نص]")
	}
	if count > c.cap {
		count = c.cap
	}
	messages := make([]string, count)
	for i := range messages {
		messages[i] = text
	}
	return &Response{Messages: messages}, nil
}

// RepeatLineCommand repeats a text as lines of one message, capped
type RepeatLineCommand struct {
	cap int
}

// NewRepeatLineCommand creates the line-repeat command with the given line cap
func NewRepeatLineCommand(cap int) *RepeatLineCommand {
	return &RepeatLineCommand{cap: cap}
}

func (c *RepeatLineCommand) Name() string                        { return "كرر_سطر" }
func (c *RepeatLineCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *RepeatLineCommand) Help() string                        { return "تكرار في رسالة واحدة" }

func (c *RepeatLineCommand) Execute(ctx *Context) (*Response, error) {
	count, text, err := parseRepeatArgs(ctx.Args)
	if err != nil {
		return nil, errors.NewValidationError("⚠️ استخدم الأمر بهذا الشكل: .كرر_سطر [عدد] [نص]")
	}
	if count > c.cap {
		count = c.cap
	}
	lines := make([]string, count)
	for i := range lines {
		lines[i] = text
	}
	return NewResponse(strings.Join(lines, "\n")), nil
}

func parseRepeatArgs(args []string) (int, string, error) {
	if len(args) < 2 {
		return 0, "", fmt.Errorf("repeat needs a count and a text")
	}
	count, err := strconv.Atoi(args[0])
	if err != nil || count <= 0 {
		return 0, "", fmt.Errorf("repeat count %q is not a positive number", args[0])
	}
	return count, strings.Join(args[1:], " "), nil
}

var arabicRe = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)

var fancyLatin = map[rune][2]rune{
	'a': {'𝒂', '𝓪'}, 'b': {'𝒃', '𝓫'}, 'c': {'𝒄', '𝓬'}, 'd': {'𝒅', '𝓭'},
	'e': {'𝒆', '𝓮'}, 'f': {'𝒇', '𝓯'}, 'g': {'𝒈', '𝓰'}, 'h': {'𝒉', '𝓱'},
	'i': {'𝒊', '𝓲'}, 'j': {'𝒋', '𝓳'}, 'k': {'𝒌', '𝓴'}, 'l': {'𝒍', '𝓵'},
	'm': {'𝒎', '𝓶'}, 'n': {'𝒏', '𝓷'}, 'o': {'𝒐', '𝓸'}, 'p': {'𝒑', '𝓹'},
	'q': {'𝒒', '𝓺'}, 'r': {'𝒓', '𝓻'}, 's': {'𝒔', '𝓼'}, 't': {'𝒕', '𝓽'},
	'u': {'𝒖', '𝓾'}, 'v': {'𝒗', '𝓿'}, 'w': {'𝒘', '𝔀'}, 'x': {'𝒙', '𝔁'},
	'y': {'𝒚', '𝔂'}, 'z': {'𝒛', '𝔃'},
}

// DecorateCommand renders a text in a set of decorative styles
type DecorateCommand struct{}

// NewDecorateCommand creates the decorate command
func NewDecorateCommand() *DecorateCommand {
	return &DecorateCommand{}
}

func (c *DecorateCommand) Name() string                        { return "زخرفه" }
func (c *DecorateCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *DecorateCommand) Help() string                        { return "زخرفة النصوص" }

func (c *DecorateCommand) Execute(ctx *Context) (*Response, error) {
	text := strings.TrimSpace(strings.Join(ctx.Args, " "))
	if text == "" {
		return nil, errors.NewValidationError("⚠️ استخدم: .زخرفه [النص المراد زخرفته]")
	}

	var styles []string
	if arabicRe.MatchString(text) {
		styles = decorateArabic(text)
	} else {
		styles = decorateLatin(text)
	}

	result := fmt.Sprintf(`
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃     ✨ *أشكال الزخرفة* ✨     ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

%s

💡 *اختر النمط الذي يعجبك ونسخه*
`, strings.Join(styles, "\n\n"))

	return NewResponse(result), nil
}

func decorateArabic(text string) []string {
	runes := []rune(text)
	spaced := make([]string, len(runes))
	reversed := make([]string, len(runes))
	for i, r := range runes {
		spaced[i] = string(r)
		reversed[len(runes)-1-i] = string(r)
	}
	return []string{
		"🌟 " + strings.Join(spaced, " "),
		"✨ " + strings.Join(reversed, " "),
		"⭐️ " + strings.Join(spaced, "⭐️"),
		"〖 " + text + " 〗",
		"✧" + text + "✧",
		"◄" + text + "►",
		".⋆｡⋆☂˚" + text + "｡⋆｡˚☽˚｡⋆",
		"๑" + text + "๑",
		"⌯ " + text + " ⌯",
		"ᯓ " + text + " ᯓ",
		"≪ " + text + " ≫",
		"⊶ " + text + " ⊷",
		"❨ " + text + " ❩",
		"๛" + text + "๛",
		"⌘ " + text + " ⌘",
		"⊹" + text + "⊹",
		"⚡️" + text + "⚡️",
		"✿" + text + "✿",
		"⚜️" + text + "⚜️",
		"❀" + text + "❀",
	}
}

func decorateLatin(text string) []string {
	lower := strings.ToLower(text)
	mapStyle := func(idx int) string {
		var b strings.Builder
		for _, r := range lower {
			if fancy, ok := fancyLatin[r]; ok {
				b.WriteRune(fancy[idx])
			} else {
				b.WriteRune(r)
			}
		}
		return b.String()
	}
	return []string{
		"✧ " + strings.ToUpper(text) + " ✧",
		"✰ " + lower + " ✰",
		mapStyle(0),
		mapStyle(1),
		"⟦ " + text + " ⟧",
		"【 " + text + " 】",
		"『 " + text + " 』",
		"☆ " + text + " ☆",
		"✵ " + text + " ✵",
		"⚔️ " + text + " ⚔️",
	}
}
