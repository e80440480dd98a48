package commands

import (
	"context"
	"time"
)

// PermissionLevel represents a sender's authority in the current chat
type PermissionLevel int

const (
	// LevelNormal is any participant
	LevelNormal PermissionLevel = iota

	// LevelAdmin is a group admin (or any sender in a direct chat)
	LevelAdmin

	// LevelOwner is the configured bot owner
	LevelOwner
)

// Command represents a bot command that can be executed
type Command interface {
	// Name returns the command name (without prefix)
	Name() string

	// Execute runs the command with the given context
	Execute(ctx *Context) (*Response, error)

	// RequiredPermission returns the minimum permission level needed to run this command
	RequiredPermission() PermissionLevel

	// Help returns help text for this command
	Help() string
}

// Message is one inbound chat message, normalized from the wire event
type Message struct {
	// ID is the protocol-level message identifier used for deduplication
	// and for attaching reactions
	ID        string
	Chat      string
	Sender    string
	PushName  string
	Text      string
	IsGroup   bool
	HasImage  bool
	HasSticker bool

	// Mentions holds the JIDs tagged in the message, if any
	Mentions []string

	Timestamp time.Time

	// DownloadMedia fetches the attached media bytes. Set by the transport
	// layer only when the message carries downloadable media.
	DownloadMedia func(ctx context.Context) ([]byte, error)
}

// Context contains all information needed to execute a command
type Context struct {
	// Ctx bounds the command's outbound calls
	Ctx context.Context

	// Msg is the triggering message
	Msg *Message

	// Args holds the whitespace-split arguments after the command name
	Args []string

	// UserLevel is the sender's permission level in this chat
	UserLevel PermissionLevel

	// DispatchID correlates log lines for one message's processing
	DispatchID string

	// notify sends an intermediate progress message before slow work.
	// Wired by the dispatch loop; nil in tests that don't care.
	notify func(text string)
}

// Notify sends a progress message to the chat before slow work starts
func (c *Context) Notify(text string) {
	if c.notify != nil {
		c.notify(text)
	}
}

// NewContext creates a new command context
func NewContext(ctx context.Context, msg *Message, args []string, level PermissionLevel, dispatchID string, notify func(string)) *Context {
	return &Context{
		Ctx:        ctx,
		Msg:        msg,
		Args:       args,
		UserLevel:  level,
		DispatchID: dispatchID,
		notify:     notify,
	}
}

// Response represents a command response. The dispatch loop performs the
// actual sends so commands stay free of transport concerns.
type Response struct {
	// Message to send back to the chat
	Message string

	// Messages to send as separate messages, in order (repeat command)
	Messages []string

	// Mentions to tag in the message
	Mentions []string

	// Image to send, with optional caption
	Image        []byte
	ImageCaption string

	// Sticker to send as a webp sticker
	Sticker []byte

	// Voice to send as a voice note
	Voice []byte
}

// NewResponse creates a new text response
func NewResponse(message string) *Response {
	return &Response{Message: message}
}

// NewMentionResponse creates a text response tagging the given JIDs
func NewMentionResponse(message string, mentions []string) *Response {
	return &Response{Message: message, Mentions: mentions}
}

// GroupParticipant is one member of a group roster
type GroupParticipant struct {
	JID     string
	IsAdmin bool
}

// GroupInfo describes a group chat
type GroupInfo struct {
	JID          string
	Name         string
	Topic        string
	OwnerJID     string
	Created      time.Time
	Participants []GroupParticipant
}

// AdminJIDs returns the JIDs of the group's admins
func (g *GroupInfo) AdminJIDs() []string {
	admins := make([]string, 0, len(g.Participants))
	for _, p := range g.Participants {
		if p.IsAdmin {
			admins = append(admins, p.JID)
		}
	}
	return admins
}

// IsAdmin reports whether the given JID is an admin of the group
func (g *GroupInfo) IsAdmin(jid string) bool {
	for _, p := range g.Participants {
		if p.JID == jid && p.IsAdmin {
			return true
		}
	}
	return false
}

// ChatClient is the outbound surface commands and the dispatch loop use.
// Implemented by the WhatsApp transport layer; faked in tests.
type ChatClient interface {
	SendText(ctx context.Context, chat, text string) error
	SendTextWithMentions(ctx context.Context, chat, text string, mentions []string) error
	SendImage(ctx context.Context, chat string, image []byte, caption string) error
	SendSticker(ctx context.Context, chat string, sticker []byte) error
	SendVoice(ctx context.Context, chat string, audio []byte) error

	// React attaches an emoji reaction to the sender's message
	React(ctx context.Context, chat, sender, messageID, emoji string) error

	GroupInfo(ctx context.Context, chat string) (*GroupInfo, error)
	AddParticipant(ctx context.Context, chat, participant string) error
	RemoveParticipant(ctx context.Context, chat, participant string) error

	// ProfilePicture returns the full-size profile picture bytes for a JID
	ProfilePicture(ctx context.Context, jid string) ([]byte, error)

	// BotJID returns the bot's own user JID once connected
	BotJID() string
}

// HasPermission checks if a user's permission level meets the required level
func HasPermission(userLevel, required PermissionLevel) bool {
	return userLevel >= required
}

// PermissionLevelName returns a human-readable name for a permission level
func PermissionLevelName(level PermissionLevel) string {
	switch level {
	case LevelNormal:
		return "normal"
	case LevelAdmin:
		return "admin"
	case LevelOwner:
		return "owner"
	default:
		return "unknown"
	}
}
