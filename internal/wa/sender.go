package wa

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/protobuf/proto"

	"go.mau.fi/whatsmeow"
	waE2E "go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"

	"github.com/yourusername/wabot/internal/commands"
)

// The Client's outbound half implements commands.ChatClient.

// SendText sends a plain text message, splitting texts that exceed the
// render limit into sequential parts
func (c *Client) SendText(ctx context.Context, chat, text string) error {
	jid, err := types.ParseJID(chat)
	if err != nil {
		return fmt.Errorf("invalid chat JID %q: %w", chat, err)
	}
	for _, part := range c.splitter.Split(text) {
		if err := c.limiter.Take(ctx); err != nil {
			return fmt.Errorf("send rate limit wait aborted: %w", err)
		}
		_, err = c.client.SendMessage(ctx, jid, &waE2E.Message{
			Conversation: proto.String(part),
		})
		if err != nil {
			return fmt.Errorf("failed to send text: %w", err)
		}
	}
	return nil
}

// SendTextWithMentions sends a text message tagging the given JIDs
func (c *Client) SendTextWithMentions(ctx context.Context, chat, text string, mentions []string) error {
	jid, err := types.ParseJID(chat)
	if err != nil {
		return fmt.Errorf("invalid chat JID %q: %w", chat, err)
	}
	if err := c.limiter.Take(ctx); err != nil {
		return fmt.Errorf("send rate limit wait aborted: %w", err)
	}
	_, err = c.client.SendMessage(ctx, jid, &waE2E.Message{
		ExtendedTextMessage: &waE2E.ExtendedTextMessage{
			Text: proto.String(text),
			ContextInfo: &waE2E.ContextInfo{
				MentionedJID: mentions,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send mention text: %w", err)
	}
	return nil
}

// SendImage uploads and sends a JPEG/PNG image with an optional caption
func (c *Client) SendImage(ctx context.Context, chat string, image []byte, caption string) error {
	jid, err := types.ParseJID(chat)
	if err != nil {
		return fmt.Errorf("invalid chat JID %q: %w", chat, err)
	}

	uploaded, err := c.client.Upload(ctx, image, whatsmeow.MediaImage)
	if err != nil {
		return fmt.Errorf("failed to upload image: %w", err)
	}

	if err := c.limiter.Take(ctx); err != nil {
		return fmt.Errorf("send rate limit wait aborted: %w", err)
	}

	_, err = c.client.SendMessage(ctx, jid, &waE2E.Message{
		ImageMessage: &waE2E.ImageMessage{
			Caption:       proto.String(caption),
			Mimetype:      proto.String(http.DetectContentType(image)),
			URL:           proto.String(uploaded.URL),
			DirectPath:    proto.String(uploaded.DirectPath),
			MediaKey:      uploaded.MediaKey,
			FileEncSHA256: uploaded.FileEncSHA256,
			FileSHA256:    uploaded.FileSHA256,
			FileLength:    proto.Uint64(uploaded.FileLength),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send image: %w", err)
	}
	return nil
}

// SendSticker uploads and sends a webp sticker
func (c *Client) SendSticker(ctx context.Context, chat string, sticker []byte) error {
	jid, err := types.ParseJID(chat)
	if err != nil {
		return fmt.Errorf("invalid chat JID %q: %w", chat, err)
	}

	uploaded, err := c.client.Upload(ctx, sticker, whatsmeow.MediaImage)
	if err != nil {
		return fmt.Errorf("failed to upload sticker: %w", err)
	}

	if err := c.limiter.Take(ctx); err != nil {
		return fmt.Errorf("send rate limit wait aborted: %w", err)
	}

	_, err = c.client.SendMessage(ctx, jid, &waE2E.Message{
		StickerMessage: &waE2E.StickerMessage{
			Mimetype:      proto.String("image/webp"),
			URL:           proto.String(uploaded.URL),
			DirectPath:    proto.String(uploaded.DirectPath),
			MediaKey:      uploaded.MediaKey,
			FileEncSHA256: uploaded.FileEncSHA256,
			FileSHA256:    uploaded.FileSHA256,
			FileLength:    proto.Uint64(uploaded.FileLength),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send sticker: %w", err)
	}
	return nil
}

// SendVoice uploads and sends an audio clip as a push-to-talk voice note
func (c *Client) SendVoice(ctx context.Context, chat string, audio []byte) error {
	jid, err := types.ParseJID(chat)
	if err != nil {
		return fmt.Errorf("invalid chat JID %q: %w", chat, err)
	}

	uploaded, err := c.client.Upload(ctx, audio, whatsmeow.MediaAudio)
	if err != nil {
		return fmt.Errorf("failed to upload voice note: %w", err)
	}

	if err := c.limiter.Take(ctx); err != nil {
		return fmt.Errorf("send rate limit wait aborted: %w", err)
	}

	_, err = c.client.SendMessage(ctx, jid, &waE2E.Message{
		AudioMessage: &waE2E.AudioMessage{
			PTT:           proto.Bool(true),
			Mimetype:      proto.String("audio/mpeg"),
			URL:           proto.String(uploaded.URL),
			DirectPath:    proto.String(uploaded.DirectPath),
			MediaKey:      uploaded.MediaKey,
			FileEncSHA256: uploaded.FileEncSHA256,
			FileSHA256:    uploaded.FileSHA256,
			FileLength:    proto.Uint64(uploaded.FileLength),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send voice note: %w", err)
	}
	return nil
}

// React attaches an emoji reaction to the sender's message
func (c *Client) React(ctx context.Context, chat, sender, messageID, emoji string) error {
	chatJID, err := types.ParseJID(chat)
	if err != nil {
		return fmt.Errorf("invalid chat JID %q: %w", chat, err)
	}
	senderJID, err := types.ParseJID(sender)
	if err != nil {
		return fmt.Errorf("invalid sender JID %q: %w", sender, err)
	}

	_, err = c.client.SendMessage(ctx, chatJID,
		c.client.BuildReaction(chatJID, senderJID, types.MessageID(messageID), emoji))
	if err != nil {
		return fmt.Errorf("failed to send reaction: %w", err)
	}
	return nil
}

// GroupInfo fetches a group's roster and metadata
func (c *Client) GroupInfo(ctx context.Context, chat string) (*commands.GroupInfo, error) {
	jid, err := types.ParseJID(chat)
	if err != nil {
		return nil, fmt.Errorf("invalid group JID %q: %w", chat, err)
	}

	info, err := c.client.GetGroupInfo(ctx, jid)
	if err != nil {
		return nil, fmt.Errorf("failed to get group info: %w", err)
	}

	participants := make([]commands.GroupParticipant, 0, len(info.Participants))
	for _, p := range info.Participants {
		participants = append(participants, commands.GroupParticipant{
			JID:     p.JID.ToNonAD().String(),
			IsAdmin: p.IsAdmin || p.IsSuperAdmin,
		})
	}

	return &commands.GroupInfo{
		JID:          info.JID.String(),
		Name:         info.Name,
		Topic:        info.Topic,
		OwnerJID:     info.OwnerJID.ToNonAD().String(),
		Created:      info.GroupCreated,
		Participants: participants,
	}, nil
}

// AddParticipant adds a user to the group
func (c *Client) AddParticipant(ctx context.Context, chat, participant string) error {
	return c.updateParticipant(ctx, chat, participant, whatsmeow.ParticipantChangeAdd)
}

// RemoveParticipant removes a user from the group
func (c *Client) RemoveParticipant(ctx context.Context, chat, participant string) error {
	return c.updateParticipant(ctx, chat, participant, whatsmeow.ParticipantChangeRemove)
}

func (c *Client) updateParticipant(ctx context.Context, chat, participant string, change whatsmeow.ParticipantChange) error {
	chatJID, err := types.ParseJID(chat)
	if err != nil {
		return fmt.Errorf("invalid group JID %q: %w", chat, err)
	}
	userJID, err := types.ParseJID(participant)
	if err != nil {
		return fmt.Errorf("invalid participant JID %q: %w", participant, err)
	}

	result, err := c.client.UpdateGroupParticipants(ctx, chatJID, []types.JID{userJID}, change)
	if err != nil {
		return fmt.Errorf("failed to update group participants: %w", err)
	}
	for _, r := range result {
		if r.Error != 0 {
			return fmt.Errorf("group participant change rejected with code %d", r.Error)
		}
	}
	return nil
}

// ProfilePicture fetches the full-size profile picture bytes for a JID.
// Works for both users and groups.
func (c *Client) ProfilePicture(ctx context.Context, jid string) ([]byte, error) {
	target, err := types.ParseJID(jid)
	if err != nil {
		return nil, fmt.Errorf("invalid JID %q: %w", jid, err)
	}

	info, err := c.client.GetProfilePictureInfo(ctx, target, &whatsmeow.GetProfilePictureParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to get profile picture info: %w", err)
	}
	if info == nil || info.URL == "" {
		return nil, fmt.Errorf("no profile picture set")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, info.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build picture request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile picture: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile picture fetch returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
