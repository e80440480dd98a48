package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	boterrors "github.com/yourusername/wabot/internal/errors"
	"github.com/yourusername/wabot/internal/store"
)

var cellEmoji = map[string]string{
	store.MarkerX: "❌",
	store.MarkerO: "⭕",
}

// renderBoard draws the board with marker emoji; empty cells show their own
// number so the board doubles as a move guide
func renderBoard(board [9]string) string {
	cells := make([]string, 9)
	for i, cell := range board {
		if emoji, ok := cellEmoji[cell]; ok {
			cells[i] = emoji
		} else {
			cells[i] = cell + "️⃣"
		}
	}
	return fmt.Sprintf(`
┏━━━━━━┳━━━━━━┳━━━━━━┓
┃   %s   ┃   %s   ┃   %s   ┃
┣━━━━━━╋━━━━━━╋━━━━━━┫
┃   %s   ┃   %s   ┃   %s   ┃
┣━━━━━━╋━━━━━━╋━━━━━━┫
┃   %s   ┃   %s   ┃   %s   ┃
┗━━━━━━┻━━━━━━┻━━━━━━┛
  `,
		cells[0], cells[1], cells[2],
		cells[3], cells[4], cells[5],
		cells[6], cells[7], cells[8])
}

const xoHelp = `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃    🎮 *لعبة إكس-أو* 🎮    ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

👥 *للعب مع شخص محدد، استخدم:*
.xo @[اسم_الشخص]

🔄 *للعب بشكل عام بدون تحديد:*
.xo عام

📝 *ملاحظة:* عند تحديد الشخص، سيتمكن فقط أنت وذلك الشخص من اللعب
`

// XOCommand drives the tic-tac-toe game: starting open or paired games
// and playing moves
type XOCommand struct {
	games *store.GameRegistry
}

// NewXOCommand creates the tic-tac-toe command
func NewXOCommand(games *store.GameRegistry) *XOCommand {
	return &XOCommand{games: games}
}

func (c *XOCommand) Name() string                        { return "xo" }
func (c *XOCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *XOCommand) Help() string                        { return "لعبة إكس أو" }

func (c *XOCommand) Execute(ctx *Context) (*Response, error) {
	if len(ctx.Args) == 0 {
		if c.games.Active(ctx.Msg.Chat) {
			return nil, activeGameError()
		}
		return NewResponse(xoHelp), nil
	}

	arg := ctx.Args[0]

	if cell, err := strconv.Atoi(arg); err == nil {
		return c.move(ctx, cell)
	}

	if arg == "عام" {
		return c.start(ctx, "", true)
	}

	if strings.HasPrefix(arg, "@") {
		if len(ctx.Msg.Mentions) == 0 {
			return nil, boterrors.NewValidationError("⚠️ يرجى التأكد من الإشارة إلى المستخدم بشكل صحيح باستخدام @.")
		}
		return c.start(ctx, ctx.Msg.Mentions[0], false)
	}

	return nil, boterrors.NewValidationError("⚠️ لم يتم تحديد مستخدم صالح. حاول مرة أخرى بالشكل: .xo @[اسم_الشخص]")
}

func (c *XOCommand) start(ctx *Context, player2 string, open bool) (*Response, error) {
	game, err := c.games.Start(ctx.Msg.Chat, ctx.Msg.Sender, player2, open)
	if err != nil {
		return nil, activeGameError()
	}

	var seats string
	mentions := []string{game.Player1}
	if open {
		seats = fmt.Sprintf(`
🔓 *اللعبة مفتوحة للجميع*

🔹 اللاعب الأول (❌): @%s
🔸 اللاعب الثاني (⭕): أي شخص`, jidDigits(game.Player1))
	} else {
		seats = fmt.Sprintf(`
🔒 *اللعبة محددة للاعبين فقط*

🔹 اللاعب الأول (❌): @%s
🔸 اللاعب الثاني (⭕): @%s`, jidDigits(game.Player1), jidDigits(game.Player2))
		mentions = append(mentions, game.Player2)
	}

	text := fmt.Sprintf(`
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃    🎮 *لعبة إكس-أو* 🎮    ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

%s

اللعبة بدأت! استخدم *.xo [رقم]* للعب

%s

💡 *مثال:* .xo 4 للعب في المربع رقم 4

🎯 *الدور الحالي:* ❌ @%s
`, seats, renderBoard(game.Board), jidDigits(game.Player1))

	return NewMentionResponse(text, mentions), nil
}

func (c *XOCommand) move(ctx *Context, cell int) (*Response, error) {
	outcome, err := c.games.Move(ctx.Msg.Chat, ctx.Msg.Sender, cell)
	if err != nil {
		return nil, c.moveError(ctx, err)
	}

	if outcome.Winner != "" {
		text := fmt.Sprintf(`
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃      🎉 *نهاية اللعبة* 🎉      ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

🏆 *الفائز:* %s @%s

%s

🔄 *ابدأ لعبة جديدة بكتابة* .xo
`, cellEmoji[outcome.WinnerMarker], jidDigits(outcome.Winner), renderBoard(outcome.Board))
		return NewMentionResponse(text, []string{outcome.Winner}), nil
	}

	if outcome.Draw {
		text := fmt.Sprintf(`
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃      🎮 *نهاية اللعبة* 🎮      ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

🏳️ *تعادل! لا يوجد فائز*

%s

🔄 *ابدأ لعبة جديدة بكتابة* .xo
`, renderBoard(outcome.Board))
		return NewResponse(text), nil
	}

	nextText := cellEmoji[outcome.NextMarker] + " أي شخص"
	var mentions []string
	if outcome.NextTurn != "" {
		nextText = fmt.Sprintf("%s @%s", cellEmoji[outcome.NextMarker], jidDigits(outcome.NextTurn))
		mentions = []string{outcome.NextTurn}
	}

	text := fmt.Sprintf(`
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃      🎮 *اللعبة مستمرة* 🎮     ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

🎯 *دور اللاعب:* %s

%s

💡 استخدم *.xo [رقم]* للعب
`, nextText, renderBoard(outcome.Board))

	return NewMentionResponse(text, mentions), nil
}

func (c *XOCommand) moveError(ctx *Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNoGame):
		return boterrors.NewStateConflictError("❌ لا يوجد لعبة جارية، ابدأ واحدة بـ .xo", "no game")
	case errors.Is(err, store.ErrNotYourTurn):
		message := "⚠️ ليس دورك للعب!"
		if game, ok := c.games.Snapshot(ctx.Msg.Chat); ok && game.CurrentTurn != "" {
			message = fmt.Sprintf("⚠️ ليس دورك للعب! الدور الحالي لـ @%s", jidDigits(game.CurrentTurn))
		}
		return boterrors.NewStateConflictError(message, "out of turn")
	case errors.Is(err, store.ErrBadCell):
		return boterrors.NewValidationError("⚠️ استخدم رقم بين 0 و 8.")
	case errors.Is(err, store.ErrCellTaken):
		return boterrors.NewStateConflictError("⚠️ هذه الخانة مشغولة أو اللعبة انتهت!", "cell taken")
	default:
		return boterrors.NewUnexpectedError(err)
	}
}

func activeGameError() error {
	return boterrors.NewStateConflictError(
		"⚠️ هناك لعبة جارية بالفعل! أكملها أولًا أو استخدم .الغاء لإلغاء اللعبة الحالية.",
		"game already active",
	)
}

// CancelGameCommand cancels the chat's running game
type CancelGameCommand struct {
	games *store.GameRegistry
}

// NewCancelGameCommand creates the game cancel command
func NewCancelGameCommand(games *store.GameRegistry) *CancelGameCommand {
	return &CancelGameCommand{games: games}
}

func (c *CancelGameCommand) Name() string                        { return "الغاء" }
func (c *CancelGameCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *CancelGameCommand) Help() string                        { return "إلغاء اللعبة الحالية" }

func (c *CancelGameCommand) Execute(ctx *Context) (*Response, error) {
	// Group admins may cancel anyone's game; in direct chats only players may
	override := ctx.Msg.IsGroup && HasPermission(ctx.UserLevel, LevelAdmin)
	err := c.games.Cancel(ctx.Msg.Chat, ctx.Msg.Sender, override)
	switch {
	case errors.Is(err, store.ErrNoGame):
		return nil, boterrors.NewStateConflictError("❌ لا يوجد لعبة جارية لإلغائها.", "no game")
	case errors.Is(err, store.ErrNotParticipant):
		return nil, boterrors.NewStateConflictError("⚠️ فقط اللاعبين المشاركين في اللعبة يمكنهم إلغاءها.", "not a participant")
	case err != nil:
		return nil, boterrors.NewUnexpectedError(err)
	}
	return NewResponse("✅ تم إلغاء اللعبة الحالية."), nil
}
