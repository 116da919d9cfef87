/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package handlers

import (
	"context"
	"fmt"
	"path/filepath"

	"ashokshau/tgdownloader/src/utils"

	tg "github.com/amarnathcjd/gogram/telegram"
	"golang.org/x/time/rate"
)

// ChatTransport sends delivery messages through the bot client, throttled by limiter.
type ChatTransport struct {
	client  *tg.Client
	limiter *rate.Limiter
}

// NewTransport wraps the bot client so it can be used by the delivery service.
// limit is in messages per second.
func NewTransport(c *tg.Client, limit float64, burst int) *ChatTransport {
	if burst < 1 {
		burst = 1
	}
	return &ChatTransport{client: c, limiter: rate.NewLimiter(rate.Limit(limit), burst)}
}

func (t *ChatTransport) SendText(ctx context.Context, chatID int64, text string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := t.client.SendMessage(chatID, text, &tg.SendOptions{LinkPreview: true})
	return err
}

func (t *ChatTransport) SendFile(ctx context.Context, chatID int64, path string, mode utils.Mode) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := t.client.SendMedia(chatID, path, &tg.MediaOptions{
		Caption: mediaCaption(path, utils.GetMediaDuration(ctx, path), mode),
	})
	return err
}

func mediaCaption(path string, seconds int, mode utils.Mode) string {
	icon := "🎬"
	if mode.IsAudio() {
		icon = "🎧"
	}

	name := filepath.Base(path)
	if seconds <= 0 {
		return fmt.Sprintf("%s %s", icon, name)
	}
	return fmt.Sprintf("%s %s\n🕒 %s", icon, name, utils.SecToMin(seconds))
}
