package commands

import (
	"fmt"
	"strings"

	"github.com/yourusername/wabot/internal/database"
	"github.com/yourusername/wabot/internal/errors"
)

// GroupOnlyReply is sent when a group command runs in a direct chat
const GroupOnlyReply = "⚠️ هذا الأمر يعمل في المجموعات فقط!"

const userServerSuffix = "@s.whatsapp.net"

// jidDigits strips the server part of a JID for display as an @tag
func jidDigits(jid string) string {
	if i := strings.IndexByte(jid, '@'); i > 0 {
		return jid[:i]
	}
	return jid
}

func adminOnly(message string) *errors.BotError {
	return &errors.BotError{
		Type:        errors.ErrorTypePermission,
		UserMessage: message,
	}
}

// GroupInfoCommand sends the group information card with the group picture
type GroupInfoCommand struct {
	db     *database.DB
	client ChatClient
}

// NewGroupInfoCommand creates the group info command
func NewGroupInfoCommand(db *database.DB, client ChatClient) *GroupInfoCommand {
	return &GroupInfoCommand{db: db, client: client}
}

func (c *GroupInfoCommand) Name() string                        { return "المجموعة" }
func (c *GroupInfoCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *GroupInfoCommand) Help() string                        { return "عرض معلومات المجموعة" }

func (c *GroupInfoCommand) Execute(ctx *Context) (*Response, error) {
	if !ctx.Msg.IsGroup {
		return nil, errors.NewValidationError(GroupOnlyReply)
	}
	if !HasPermission(ctx.UserLevel, LevelAdmin) {
		return nil, adminOnly("⛔ هذا الأمر متاح للمشرفين فقط.")
	}

	info, err := c.client.GroupInfo(ctx.Ctx, ctx.Msg.Chat)
	if err != nil {
		return nil, &errors.BotError{
			Type:          errors.ErrorTypeAPI,
			UserMessage:   "⚠️ حدث خطأ أثناء جلب معلومات المجموعة. الرجاء المحاولة مرة أخرى.",
			InternalError: err,
		}
	}

	jids := make([]string, len(info.Participants))
	for i, p := range info.Participants {
		jids[i] = p.JID
	}
	totalMessages, err := c.db.SumCounters(jids)
	if err != nil {
		return nil, errors.NewDatabaseError("sum counters", err)
	}

	card := fmt.Sprintf(`
┏━━━❮ 🏷️ *معلومات المجموعة* ❯━━━┓
┃ 📌 *الاسم:* %s
┃ 👥 *عدد الأعضاء:* %d
┃ 👑 *عدد المشرفين:* %d
┃ ✉️ *إجمالي الرسائل:* %d
┃ 📅 *تاريخ الإنشاء:* %s
┗━━━━━━━━━━━━━━━━━━━━┛
`,
		info.Name,
		len(info.Participants),
		len(info.AdminJIDs()),
		totalMessages,
		info.Created.Format("2006/1/2"),
	)

	// A missing group picture degrades to a text-only card
	picture, err := c.client.ProfilePicture(ctx.Ctx, ctx.Msg.Chat)
	if err != nil || len(picture) == 0 {
		return NewResponse(card), nil
	}
	return &Response{Image: picture, ImageCaption: card}, nil
}

// TopParticipantsCommand lists the five most active group members
type TopParticipantsCommand struct {
	db     *database.DB
	client ChatClient
}

// NewTopParticipantsCommand creates the top participants command
func NewTopParticipantsCommand(db *database.DB, client ChatClient) *TopParticipantsCommand {
	return &TopParticipantsCommand{db: db, client: client}
}

func (c *TopParticipantsCommand) Name() string                        { return "المتفاعلين" }
func (c *TopParticipantsCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *TopParticipantsCommand) Help() string                        { return "عرض قائمة الأعضاء الأكثر تفاعلاً" }

func (c *TopParticipantsCommand) Execute(ctx *Context) (*Response, error) {
	if !ctx.Msg.IsGroup {
		return nil, errors.NewValidationError(GroupOnlyReply)
	}
	if !HasPermission(ctx.UserLevel, LevelAdmin) {
		return nil, adminOnly("⛔ هذا الأمر متاح فقط للمشرفين.")
	}

	info, err := c.client.GroupInfo(ctx.Ctx, ctx.Msg.Chat)
	if err != nil {
		return nil, &errors.BotError{
			Type:          errors.ErrorTypeAPI,
			UserMessage:   "❌ حدث خطأ أثناء جلب المتفاعلين.",
			InternalError: err,
		}
	}

	// Only current members appear on the board, even if others have counts
	jids := make([]string, len(info.Participants))
	for i, p := range info.Participants {
		jids[i] = p.JID
	}
	top, err := c.db.TopCounters(5, jids)
	if err != nil {
		return nil, errors.NewDatabaseError("top counters", err)
	}
	if len(top) == 0 {
		return nil, &errors.BotError{
			Type:        errors.ErrorTypeNotFound,
			UserMessage: "❌ لا يوجد بيانات تفاعل حتى الآن.",
		}
	}

	lines := make([]string, len(top))
	mentions := make([]string, len(top))
	for i, entry := range top {
		lines[i] = fmt.Sprintf("@%s: %d رسالة", jidDigits(entry.Sender), entry.Count)
		mentions[i] = entry.Sender
	}

	board := fmt.Sprintf(`
┏━━━━❮ 📊 *أكثر المتفاعلين* 📊 ❯━━━━┓
%s
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛`, strings.Join(lines, "\n"))

	return NewMentionResponse(board, mentions), nil
}

// MentionAllCommand tags every member of the group
type MentionAllCommand struct {
	client ChatClient
}

// NewMentionAllCommand creates the mention-all command
func NewMentionAllCommand(client ChatClient) *MentionAllCommand {
	return &MentionAllCommand{client: client}
}

func (c *MentionAllCommand) Name() string                        { return "منشن" }
func (c *MentionAllCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *MentionAllCommand) Help() string                        { return "منشن لجميع أعضاء المجموعة" }

func (c *MentionAllCommand) Execute(ctx *Context) (*Response, error) {
	if !ctx.Msg.IsGroup {
		return nil, errors.NewValidationError(GroupOnlyReply)
	}
	if !HasPermission(ctx.UserLevel, LevelAdmin) {
		return nil, adminOnly("⛔ هذا الأمر متاح للمشرفين فقط!")
	}

	info, err := c.client.GroupInfo(ctx.Ctx, ctx.Msg.Chat)
	if err != nil {
		return nil, &errors.BotError{
			Type:          errors.ErrorTypeAPI,
			UserMessage:   "❌ حدث خطأ أثناء تنفيذ الأمر.",
			InternalError: err,
		}
	}

	tags := make([]string, len(info.Participants))
	mentions := make([]string, len(info.Participants))
	for i, p := range info.Participants {
		tags[i] = "@" + jidDigits(p.JID)
		mentions[i] = p.JID
	}

	text := fmt.Sprintf(`
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃       📢 *منشن جماعي* 📢      ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

%s`, strings.Join(tags, "\n"))

	return NewMentionResponse(text, mentions), nil
}

// AddMemberCommand adds a phone number to the group
type AddMemberCommand struct {
	client ChatClient
}

// NewAddMemberCommand creates the add member command
func NewAddMemberCommand(client ChatClient) *AddMemberCommand {
	return &AddMemberCommand{client: client}
}

func (c *AddMemberCommand) Name() string                        { return "ضيف" }
func (c *AddMemberCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *AddMemberCommand) Help() string                        { return "إضافة عضو للمجموعة" }

func (c *AddMemberCommand) Execute(ctx *Context) (*Response, error) {
	if len(ctx.Args) == 0 {
		return nil, errors.NewValidationError("⚠️ استخدم: .ضيف [رقم الهاتف]")
	}
	number := ctx.Args[0]

	if err := c.guard(ctx); err != nil {
		return nil, err
	}

	if err := c.client.AddParticipant(ctx.Ctx, ctx.Msg.Chat, number+userServerSuffix); err != nil {
		return nil, &errors.BotError{
			Type:          errors.ErrorTypeAPI,
			UserMessage:   "❌ لم أتمكن من إضافة الرقم. تأكد أن البوت مشرف والرقم صحيح.",
			InternalError: err,
		}
	}
	return NewResponse(fmt.Sprintf("✅ تم إضافة الرقم: %s", number)), nil
}

func (c *AddMemberCommand) guard(ctx *Context) error {
	return guardRosterChange(ctx, c.client, "❌ يجب أن يكون البوت مشرفًا في المجموعة لإضافة الأعضاء.")
}

// KickMemberCommand removes a phone number from the group
type KickMemberCommand struct {
	client ChatClient
}

// NewKickMemberCommand creates the kick member command
func NewKickMemberCommand(client ChatClient) *KickMemberCommand {
	return &KickMemberCommand{client: client}
}

func (c *KickMemberCommand) Name() string                        { return "طرد" }
func (c *KickMemberCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *KickMemberCommand) Help() string                        { return "طرد عضو من المجموعة" }

func (c *KickMemberCommand) Execute(ctx *Context) (*Response, error) {
	if len(ctx.Args) == 0 {
		return nil, errors.NewValidationError("⚠️ استخدم: .طرد [رقم الهاتف]")
	}
	number := ctx.Args[0]

	if err := guardRosterChange(ctx, c.client, "❌ يجب أن يكون البوت مشرفًا لطرد الأعضاء."); err != nil {
		return nil, err
	}

	if err := c.client.RemoveParticipant(ctx.Ctx, ctx.Msg.Chat, number+userServerSuffix); err != nil {
		return nil, &errors.BotError{
			Type:          errors.ErrorTypeAPI,
			UserMessage:   "❌ لم أتمكن من طرد الرقم. تأكد أن البوت مشرف والرقم موجود في الجروب.",
			InternalError: err,
		}
	}
	return NewResponse(fmt.Sprintf("✅ تم طرد الرقم: %s", number)), nil
}

// guardRosterChange enforces the roster-change preconditions: a group chat,
// an admin or owner sender, and the bot itself holding admin rights
func guardRosterChange(ctx *Context, client ChatClient, botAdminMessage string) error {
	if !ctx.Msg.IsGroup {
		return errors.NewValidationError(GroupOnlyReply)
	}
	if !HasPermission(ctx.UserLevel, LevelAdmin) {
		return adminOnly("⛔ هذا الأمر متاح فقط للمشرفين.")
	}

	info, err := client.GroupInfo(ctx.Ctx, ctx.Msg.Chat)
	if err != nil {
		return &errors.BotError{
			Type:          errors.ErrorTypeAPI,
			UserMessage:   "❌ حدث خطأ أثناء تنفيذ الأمر.",
			InternalError: err,
		}
	}
	if !info.IsAdmin(client.BotJID()) {
		return errors.NewValidationError(botAdminMessage)
	}
	return nil
}
