/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf16"
)

const (
	// MaxMessageLength is the Telegram limit for a single text message.
	MaxMessageLength = 4096

	// MaxCallbackAnswerLength is the Telegram limit for a callback query answer.
	MaxCallbackAnswerLength = 200

	preOpen  = "<pre>"
	preClose = "</pre>"
	ellipsis = "…"
)

var spaceRegex = regexp.MustCompile(`\s+`)

// UTF16Len is the length of s as Telegram counts it, in UTF-16 code units.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// Truncate shortens s to at most limit UTF-16 code units, ending it with "…" when cut.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if UTF16Len(s) <= limit {
		return s
	}

	var sb strings.Builder
	n := 0
	for _, r := range s {
		w := utf16.RuneLen(r)
		if n+w > limit-1 {
			break
		}
		sb.WriteRune(r)
		n += w
	}
	sb.WriteString(ellipsis)
	return sb.String()
}

// SplitMessage cuts text into chunks of at most limit UTF-16 code units,
// never inside a character.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 || text == "" {
		return nil
	}
	return splitEscaped(text, limit, func(r rune) string { return string(r) })
}

// PreChunks splits raw text and HTML-escapes each piece, so that every chunk,
// once wrapped in <pre>, fits in one message and no entity is cut in half.
func PreChunks(text string) []string {
	if text == "" {
		return nil
	}

	chunks := splitEscaped(text, MaxMessageLength-len(preOpen)-len(preClose), func(r rune) string {
		return html.EscapeString(string(r))
	})
	for i, chunk := range chunks {
		chunks[i] = preOpen + chunk + preClose
	}
	return chunks
}

// splitEscaped renders text rune by rune through render and starts a new chunk
// whenever the next rendered rune would push the current one past limit.
func splitEscaped(text string, limit int, render func(rune) string) []string {
	var (
		chunks []string
		sb     strings.Builder
		n      int
	)
	for _, r := range text {
		piece := render(r)
		w := UTF16Len(piece)
		if n > 0 && n+w > limit {
			chunks = append(chunks, sb.String())
			sb.Reset()
			n = 0
		}
		sb.WriteString(piece)
		n += w
	}
	return append(chunks, sb.String())
}

// CollapseSpaces replaces every whitespace run with an underscore.
func CollapseSpaces(s string) string {
	return spaceRegex.ReplaceAllString(s, "_")
}
