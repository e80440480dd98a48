package media

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/chai2010/webp"
	"github.com/nfnt/resize"
)

// stickerSide is the square canvas WhatsApp expects for stickers
const stickerSide = 512

// Transcoder converts chat images to webp stickers and back
type Transcoder struct {
	quality float32
}

// NewTranscoder creates a transcoder with the default webp quality
func NewTranscoder() *Transcoder {
	return &Transcoder{quality: 80}
}

// ImageToSticker decodes a photo, fits it onto a transparent 512x512
// canvas and encodes it as webp
func (t *Transcoder) ImageToSticker(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	fitted := fitSquare(src, stickerSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, fitted, &webp.Options{Lossless: false, Quality: t.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// StickerToImage decodes a webp sticker and re-encodes it as png so the
// transparency survives
func (t *Transcoder) StickerToImage(data []byte) ([]byte, error) {
	src, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode webp: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// fitSquare scales src to fit inside a side x side square, preserving
// aspect ratio, and centers it on a transparent canvas
func fitSquare(src image.Image, side int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var scaled image.Image
	if w >= h {
		scaled = resize.Resize(uint(side), 0, src, resize.Lanczos3)
	} else {
		scaled = resize.Resize(0, uint(side), src, resize.Lanczos3)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, side, side))
	sb := scaled.Bounds()
	offset := image.Pt((side-sb.Dx())/2, (side-sb.Dy())/2)
	draw.Draw(canvas, sb.Add(offset), scaled, sb.Min, draw.Over)
	return canvas
}
