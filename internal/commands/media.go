package commands

import (
	"context"
	"regexp"
	"strings"

	"github.com/yourusername/wabot/internal/errors"
)

// Synthesizer turns Arabic text into spoken audio
type Synthesizer interface {
	Speak(ctx context.Context, text string) ([]byte, error)
}

// ImageSearcher fetches a random image matching a query
type ImageSearcher interface {
	RandomImage(ctx context.Context, query string) ([]byte, error)
}

// Transcoder converts between image and sticker formats
type Transcoder interface {
	ImageToSticker(data []byte) ([]byte, error)
	StickerToImage(data []byte) ([]byte, error)
}

// ttsCleanRe strips everything but Arabic script, digits, whitespace and
// basic punctuation before synthesis
var ttsCleanRe = regexp.MustCompile(`[^\x{0600}-\x{06FF}\x{0750}-\x{077F}\x{08A0}-\x{08FF}0-9\s.,-]`)

// VoiceCommand converts text to a voice note
type VoiceCommand struct {
	tts      Synthesizer
	maxChars int
}

// NewVoiceCommand creates the text-to-speech command
func NewVoiceCommand(tts Synthesizer, maxChars int) *VoiceCommand {
	return &VoiceCommand{tts: tts, maxChars: maxChars}
}

func (c *VoiceCommand) Name() string                        { return "صوت" }
func (c *VoiceCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *VoiceCommand) Help() string                        { return "تحويل النص إلى صوت" }

func (c *VoiceCommand) Execute(ctx *Context) (*Response, error) {
	text := strings.TrimSpace(strings.Join(ctx.Args, " "))
	if text == "" {
		return nil, errors.NewValidationError("⚠️ استخدم: .صوت [النص المراد تحويله لصوت]")
	}

	ctx.Notify("⏳ جاري تحويل النص إلى صوت...")

	clean := ttsCleanRe.ReplaceAllString(text, " ")
	runes := []rune(clean)
	if len(runes) > c.maxChars {
		runes = runes[:c.maxChars]
	}

	audio, err := c.tts.Speak(ctx.Ctx, string(runes))
	if err != nil {
		return nil, &errors.BotError{
			Type:          errors.ErrorTypeMedia,
			UserMessage:   "❌ تعذر تحويل النص إلى صوت. يرجى تبسيط النص أو المحاولة مرة أخرى لاحقاً.",
			InternalError: err,
		}
	}

	return &Response{Voice: audio}, nil
}

// ImageSearchCommand fetches a random image for a search term
type ImageSearchCommand struct {
	images ImageSearcher
}

// NewImageSearchCommand creates the image search command
func NewImageSearchCommand(images ImageSearcher) *ImageSearchCommand {
	return &ImageSearchCommand{images: images}
}

func (c *ImageSearchCommand) Name() string                        { return "صورة" }
func (c *ImageSearchCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *ImageSearchCommand) Help() string                        { return "البحث عن صور" }

func (c *ImageSearchCommand) Execute(ctx *Context) (*Response, error) {
	query := strings.TrimSpace(strings.Join(ctx.Args, " "))
	if query == "" {
		return nil, errors.NewValidationError("⚠️ استخدم: .صورة [كلمة البحث]")
	}

	image, err := c.images.RandomImage(ctx.Ctx, query)
	if err != nil {
		return nil, &errors.BotError{
			Type:          errors.ErrorTypeAPI,
			UserMessage:   "❌ حدث خطأ أثناء جلب الصورة. حاول البحث بكلمة أخرى.",
			InternalError: err,
		}
	}

	return &Response{Image: image, ImageCaption: "📷 صورة لـ: *" + query + "*"}, nil
}

// StickerConverter handles the two media conversions that trigger on an
// attachment plus keyword rather than on a prefix command
type StickerConverter struct {
	transcoder Transcoder
}

// NewStickerConverter creates the sticker/image converter
func NewStickerConverter(transcoder Transcoder) *StickerConverter {
	return &StickerConverter{transcoder: transcoder}
}

// ToSticker converts the message's attached image into a sticker
func (c *StickerConverter) ToSticker(ctx *Context) (*Response, error) {
	data, err := c.download(ctx)
	if err != nil {
		return nil, stickerError("image download", err)
	}
	sticker, err := c.transcoder.ImageToSticker(data)
	if err != nil {
		return nil, stickerError("image to sticker", err)
	}
	return &Response{Sticker: sticker}, nil
}

// ToImage converts the message's attached sticker back into an image
func (c *StickerConverter) ToImage(ctx *Context) (*Response, error) {
	data, err := c.download(ctx)
	if err != nil {
		return nil, imageError("sticker download", err)
	}
	image, err := c.transcoder.StickerToImage(data)
	if err != nil {
		return nil, imageError("sticker to image", err)
	}
	return &Response{Image: image, ImageCaption: "🖼️ تم تحويل الملصق إلى صورة بنجاح"}, nil
}

func (c *StickerConverter) download(ctx *Context) ([]byte, error) {
	if ctx.Msg.DownloadMedia == nil {
		return nil, errors.NewValidationError("message carries no downloadable media")
	}
	return ctx.Msg.DownloadMedia(ctx.Ctx)
}

func stickerError(operation string, err error) error {
	return &errors.BotError{
		Type:           errors.ErrorTypeMedia,
		UserMessage:    "❌ حدث خطأ أثناء تحويل الصورة إلى ملصق. حاول مرة أخرى.",
		InternalError:  err,
		InternalDetail: "operation=" + operation,
	}
}

func imageError(operation string, err error) error {
	return &errors.BotError{
		Type:           errors.ErrorTypeMedia,
		UserMessage:    "❌ حدث خطأ أثناء تحويل الملصق إلى صورة. حاول مرة أخرى.",
		InternalError:  err,
		InternalDetail: "operation=" + operation,
	}
}
