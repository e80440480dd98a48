package wa

import (
	"context"
	"strings"

	waE2E "go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types/events"

	"github.com/yourusername/wabot/internal/commands"
)

// handleMessage converts one wire message event into the normalized form
// and hands it to the dispatcher on its own goroutine
func (c *Client) handleMessage(evt *events.Message) {
	if c.handler == nil {
		return
	}
	if evt.Info.IsFromMe {
		return
	}
	if evt.Info.Chat.Server == "broadcast" {
		return
	}

	msg := &commands.Message{
		ID:        string(evt.Info.ID),
		Chat:      evt.Info.Chat.String(),
		Sender:    evt.Info.Sender.ToNonAD().String(),
		PushName:  evt.Info.PushName,
		IsGroup:   evt.Info.IsGroup,
		Timestamp: evt.Info.Timestamp,
		Text:      extractText(evt.Message),
		Mentions:  extractMentions(evt.Message),
	}

	if img := evt.Message.GetImageMessage(); img != nil {
		msg.HasImage = true
		msg.DownloadMedia = func(ctx context.Context) ([]byte, error) {
			return c.client.Download(ctx, img)
		}
	}
	if sticker := evt.Message.GetStickerMessage(); sticker != nil {
		msg.HasSticker = true
		msg.DownloadMedia = func(ctx context.Context) ([]byte, error) {
			return c.client.Download(ctx, sticker)
		}
	}

	go c.handler.Handle(c.ctx, msg)
}

// extractText pulls the visible text from whichever field carries it:
// plain conversation, extended text, or a media caption
func extractText(waMsg *waE2E.Message) string {
	if waMsg == nil {
		return ""
	}
	if waMsg.Conversation != nil {
		return waMsg.GetConversation()
	}
	if ext := waMsg.ExtendedTextMessage; ext != nil {
		return ext.GetText()
	}
	if img := waMsg.ImageMessage; img != nil {
		return img.GetCaption()
	}
	if video := waMsg.VideoMessage; video != nil {
		return video.GetCaption()
	}
	return ""
}

// extractMentions collects the JIDs tagged in the message
func extractMentions(waMsg *waE2E.Message) []string {
	var ctxInfo *waE2E.ContextInfo
	switch {
	case waMsg == nil:
		return nil
	case waMsg.ExtendedTextMessage != nil:
		ctxInfo = waMsg.ExtendedTextMessage.GetContextInfo()
	case waMsg.ImageMessage != nil:
		ctxInfo = waMsg.ImageMessage.GetContextInfo()
	case waMsg.StickerMessage != nil:
		ctxInfo = waMsg.StickerMessage.GetContextInfo()
	}
	if ctxInfo == nil {
		return nil
	}

	raw := ctxInfo.GetMentionedJID()
	if len(raw) == 0 {
		return nil
	}
	mentions := make([]string, 0, len(raw))
	for _, jid := range raw {
		mentions = append(mentions, strings.TrimSpace(jid))
	}
	return mentions
}
