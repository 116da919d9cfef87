/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"strings"

	tg "github.com/amarnathcjd/gogram/telegram"
)

// TokenPrefix marks the hidden anchor carrying the requested URL.
const TokenPrefix = "tg://btn/"

var (
	ErrNoToken      = errors.New("no callback token in message")
	ErrInvalidToken = errors.New("invalid callback token")
)

// EncodeToken wraps rawURL into the href used by the hidden anchor.
func EncodeToken(rawURL string) string {
	return TokenPrefix + base64.URLEncoding.EncodeToString([]byte(rawURL))
}

// DecodeToken recovers the URL from an anchor href produced by EncodeToken.
func DecodeToken(href string) (string, error) {
	encoded, ok := strings.CutPrefix(href, TokenPrefix)
	if !ok || encoded == "" {
		return "", ErrInvalidToken
	}

	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		// Tolerate clients that strip padding.
		raw, err = base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}
	return string(raw), nil
}

// TokenAnchor renders the zero-width HTML anchor that hides the token in a message.
func TokenAnchor(rawURL string) string {
	return fmt.Sprintf("<a href=\"%s\">\u200b</a>", html.EscapeString(EncodeToken(rawURL)))
}

// FindToken scans message entities for the hidden anchor and decodes it.
func FindToken(entities []tg.MessageEntity) (string, error) {
	for _, entity := range entities {
		textURL, ok := entity.(*tg.MessageEntityTextURL)
		if !ok || !strings.HasPrefix(textURL.URL, TokenPrefix) {
			continue
		}
		return DecodeToken(textURL.URL)
	}
	return "", ErrNoToken
}
