// Package splitter breaks long outbound texts into chunks WhatsApp
// renders without truncation.
package splitter

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxLength keeps each part comfortably below the point where
// clients collapse the bubble behind a "read more" fold
const DefaultMaxLength = 4000

// Splitter handles splitting long messages into sendable chunks
type Splitter struct {
	maxLength int // maximum part length in bytes
}

// New creates a message splitter with the specified max byte length
func New(maxLength int) *Splitter {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Splitter{maxLength: maxLength}
}

// Split breaks a message into parts no longer than the limit. It prefers
// newline boundaries, then word boundaries, and never cuts a UTF-8
// sequence in the middle.
func (s *Splitter) Split(message string) []string {
	if len(message) <= s.maxLength {
		return []string{message}
	}

	var parts []string
	remaining := message
	for len(remaining) > 0 {
		if len(remaining) <= s.maxLength {
			parts = append(parts, remaining)
			break
		}

		splitPoint := s.findSplitPoint(remaining)
		part := strings.TrimRight(remaining[:splitPoint], " \t\n\r")
		if part != "" {
			parts = append(parts, part)
		}
		remaining = strings.TrimLeft(remaining[splitPoint:], " \t\n\r")
	}
	return parts
}

// findSplitPoint finds the best position to cut at or before maxLength
func (s *Splitter) findSplitPoint(message string) int {
	// Walk back from the limit to a valid UTF-8 boundary
	splitPoint := s.maxLength
	for splitPoint > 0 && !utf8.RuneStart(message[splitPoint]) {
		splitPoint--
	}

	// A newline keeps list-style replies intact across parts
	if idx := strings.LastIndexByte(message[:splitPoint], '\n'); idx > 0 {
		return idx
	}
	if idx := strings.LastIndexAny(message[:splitPoint], " \t"); idx > 0 {
		return idx
	}

	// Very long single word, cut at the UTF-8 boundary
	return splitPoint
}

// NeedsSplit returns true if the message exceeds the limit
func (s *Splitter) NeedsSplit(message string) bool {
	return len(message) > s.maxLength
}

// MaxLength returns the configured maximum part length
func (s *Splitter) MaxLength() int {
	return s.maxLength
}
