package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// ttsMaxChars is the per-request limit of the translate TTS endpoint
const ttsMaxChars = 200

// TTSClient synthesizes Arabic speech through the Google Translate
// text-to-speech endpoint
type TTSClient struct {
	http     *HTTPClient
	endpoint string
}

// NewTTSClient creates a speech client. endpoint defaults to the public
// translate host when empty.
func NewTTSClient(http *HTTPClient) *TTSClient {
	return &TTSClient{http: http, endpoint: "https://translate.google.com"}
}

// Speak converts text to MP3 audio bytes
func (c *TTSClient) Speak(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("no text to speak")
	}
	if utf8.RuneCountInString(text) > ttsMaxChars {
		runes := []rune(text)
		text = string(runes[:ttsMaxChars])
	}

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "ar")
	params.Set("client", "tw-ob")

	audio, err := c.http.Get(ctx, c.endpoint+"/translate_tts?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("speech synthesis returned no audio")
	}
	return audio, nil
}
