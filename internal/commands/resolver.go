package commands

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/wabot/internal/store"
)

// MatchKind classifies an inbound message
type MatchKind int

const (
	// MatchNone means the message triggers nothing
	MatchNone MatchKind = iota

	// MatchBlocked means the message hit a reserved keyword and must be refused
	MatchBlocked

	// MatchLiteral means the full message equals a canned-reply trigger
	MatchLiteral

	// MatchImageToSticker means an image captioned with the sticker keyword
	MatchImageToSticker

	// MatchStickerToImage means a sticker forwarded with the image keyword
	MatchStickerToImage

	// MatchCommand means a registered prefix command
	MatchCommand

	// MatchBotQuestion means a free-form question addressed to the bot
	MatchBotQuestion

	// MatchNumericState means a bare number continuing a menu flow
	MatchNumericState

	// MatchQuizAnswer means a quiz answer tagging the bot
	MatchQuizAnswer
)

// Resolution is the outcome of classifying one message
type Resolution struct {
	Kind MatchKind

	// Reply is the canned text for MatchLiteral and MatchBlocked
	Reply string

	// Command and Args are set for MatchCommand
	Command Command
	Args    []string

	// Number is the parsed selection for MatchNumericState and MatchQuizAnswer
	Number int

	// State is the sender's live session state for MatchNumericState
	State string

	// Question is the extracted question text for MatchBotQuestion
	Question string
}

// BlockedReply is sent when a reserved keyword is refused
const BlockedReply = "⛔ لا يمكنك استخدام هذا الأمر. هذه الأوامر محجوزة لإدارة البوت فقط."

// reservedKeywords refuse the whole message whenever one appears anywhere
// in it, before any other classification
var reservedKeywords = []string{"2025", "٢٠٢٥", "العشرين"}

// literalReplies maps exact full-message triggers (lowercased) to canned
// replies. Matching is whole-string only: a trigger inside a longer message
// does not fire.
var literalReplies = map[string]string{
	"اهلا":     "👋 أهلاً وسهلاً!",
	"مين":      "👋 انا بوت ذكاء اصطناعي لمساعده صاحب الرقم اذا كنت تريده ارسل كلمه خاص ",
	"مرحبا":    "😊 مرحبًا! كيف يمكنني مساعدتك؟",
	"كيف حالك": "أنا بخير، شكرًا لسؤالك! 😊 وأنت؟",
	"من انتم":  "نحن فريق one Team هنا لدعمك في اي وقت 😊 وأنت؟",
	"one team": "نحن شركه او مؤسسه لدعم المتعلمين او الخريجين لايجاد الطريق الذي يحتاجه الشخص لسلوك مسعاه او مبتغاه 😊 وأنت؟",
	"خاص":      "سيتم التواصل معك في اقرب وقت الرجاء الأنتظار😊",
	"بوت": `👋 مرحباً! أنا بوت واتساب ذكي متعدد المهام 🤖

💡 يمكنني مساعدتك في:
• تنزيل الفيديوهات من مواقع التواصل
• إنشاء ملصقات من الصور وتحويل الملصقات إلى صور
• تحويل النص إلى صوت
• الإجابة على أسئلتك باستخدام ".بوت + سؤالك"
• إدارة المجموعات ومساعدة المشرفين
• وأكثر من ذلك بكثير!

📋 اكتب ".اوامر" لمعرفة كل ما يمكنني فعله

🔰 تم تطويري بواسطة فريق One Team
`,
	".بوت بحبك": "وأنا كمان بحبك كتير! 💚 دائماً جاهز لمساعدتك في أي وقت",
	"اسمك": `✨ 𝕃𝕆𝕃 ✨ أنا بوت متعدد المهام طُورت بواسطة فريق One Team 🤖💫

أستطيع مساعدتك في العديد من الأمور مثل:
🌟 تحميل الفيديوهات
🌟 إنشاء الملصقات
🌟 الإجابة على استفساراتك
🌟 وأكثر!

يمكنك معرفة ما يمكنني فعله بكتابة ".اوامر" 📋`,
}

var (
	menuNumberRe = regexp.MustCompile(`^(1[0-5]|[1-9])$`)
	anyDigitRe   = regexp.MustCompile(`\d+`)
)

// Resolver classifies inbound messages in a fixed order: reserved keywords,
// literal replies, media conversions, registered commands, bot questions,
// menu-flow numbers, then quiz answers. The first match wins.
type Resolver struct {
	registry *Registry
	sessions store.SessionStore
	quizzes  *store.QuizRegistry
	prefix   string
	botJID   func() string
}

// NewResolver creates a resolver over the given registry and state stores.
// botJID is consulted lazily because the bot's own JID is only known after
// the transport connects.
func NewResolver(registry *Registry, sessions store.SessionStore, quizzes *store.QuizRegistry, prefix string, botJID func() string) *Resolver {
	return &Resolver{
		registry: registry,
		sessions: sessions,
		quizzes:  quizzes,
		prefix:   prefix,
		botJID:   botJID,
	}
}

// Resolve classifies one message
func (r *Resolver) Resolve(msg *Message) Resolution {
	text := strings.TrimSpace(msg.Text)
	lower := strings.ToLower(text)

	// Reserved keywords refuse the message no matter where they appear,
	// even inside an otherwise valid command
	for _, keyword := range reservedKeywords {
		if strings.Contains(lower, keyword) {
			return Resolution{Kind: MatchBlocked, Reply: BlockedReply}
		}
	}

	if reply, ok := literalReplies[lower]; ok {
		return Resolution{Kind: MatchLiteral, Reply: reply}
	}

	// Media conversions trigger on the keyword anywhere in the caption,
	// but only when the matching media kind is attached
	if msg.HasImage && strings.Contains(lower, r.prefix+"ملصق") {
		return Resolution{Kind: MatchImageToSticker}
	}
	if msg.HasSticker && strings.Contains(lower, r.prefix+"صورة") {
		return Resolution{Kind: MatchStickerToImage}
	}

	if strings.HasPrefix(lower, r.prefix) {
		fields := strings.Fields(lower)
		name := strings.TrimPrefix(fields[0], r.prefix)
		if cmd, ok := r.registry.Get(name); ok {
			// Args keep the original casing; only the name is normalized
			args := strings.Fields(strings.TrimSpace(text))[1:]
			return Resolution{Kind: MatchCommand, Command: cmd, Args: args}
		}
	}

	if question, ok := r.botQuestion(text, lower); ok {
		return Resolution{Kind: MatchBotQuestion, Question: question}
	}

	if menuNumberRe.MatchString(lower) {
		if state, ok := r.sessions.Get(msg.Sender, msg.Chat); ok {
			n, _ := strconv.Atoi(lower)
			return Resolution{Kind: MatchNumericState, Number: n, State: state}
		}
	}

	if r.quizzes.Active(msg.Chat) && r.mentionsBot(msg) {
		if digits := anyDigitRe.FindString(text); digits != "" {
			n, err := strconv.Atoi(digits)
			if err == nil {
				return Resolution{Kind: MatchQuizAnswer, Number: n}
			}
		}
	}

	return Resolution{Kind: MatchNone}
}

// botQuestion detects a free-form question addressed to the bot: either the
// explicit question command, or the bot's name together with a question mark
func (r *Resolver) botQuestion(text, lower string) (string, bool) {
	questionPrefix := r.prefix + "بوت "
	if strings.HasPrefix(lower, questionPrefix) {
		return strings.TrimSpace(text[len(questionPrefix):]), true
	}
	if strings.Contains(lower, "بوت") && (strings.Contains(text, "؟") || strings.HasSuffix(text, "?")) {
		question := strings.ReplaceAll(text, "بوت", "")
		return strings.TrimSpace(question), true
	}
	return "", false
}

// mentionsBot reports whether the message tags the bot's own JID
func (r *Resolver) mentionsBot(msg *Message) bool {
	jid := r.botJID()
	if jid == "" {
		return false
	}
	for _, mention := range msg.Mentions {
		if mention == jid {
			return true
		}
	}
	// Fallback for clients that inline the tag without mention metadata
	digits := jid
	if i := strings.IndexByte(jid, '@'); i > 0 {
		digits = jid[:i]
	}
	return strings.Contains(msg.Text, "@"+digits)
}
