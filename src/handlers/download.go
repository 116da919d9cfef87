/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package handlers

import (
	"strings"

	"ashokshau/tgdownloader/src/core"
	"ashokshau/tgdownloader/src/core/db"
	"ashokshau/tgdownloader/src/core/metrics"
	"ashokshau/tgdownloader/src/lang"
	"ashokshau/tgdownloader/src/utils"

	"github.com/amarnathcjd/gogram/telegram"
)

// promptURL returns the cleaned URL to offer for download, or false when the text
// carries no supported link.
func promptURL(text string) (string, bool) {
	url, ok := utils.ExtractFirstURL(text)
	if !ok || !utils.IsWellFormedURL(url) || !utils.IsSupported(url) {
		return "", false
	}
	return utils.CleanURL(url), true
}

func sendPrompt(m *telegram.NewMessage, url string) error {
	langCode := langOf(m.Sender)
	_, err := m.Reply(core.PromptText(langCode, url), &telegram.SendOptions{
		ReplyMarkup: core.ModeKeyboard(langCode),
		ParseMode:   "HTML",
		LinkPreview: false,
	})
	if err != nil {
		return err
	}

	metrics.PromptsTotal.Inc()
	go registerChat(m.IsPrivate(), m.ChannelID())
	return nil
}

func registerChat(private bool, chatID int64) {
	ctx, cancel := db.Ctx()
	defer cancel()

	var err error
	if private {
		err = db.Instance.AddUser(ctx, chatID)
	} else {
		err = db.Instance.AddChat(ctx, chatID)
	}
	if err != nil {
		logger.Warn("Failed to store chat %d: %v", chatID, err)
	}
}

// chatCheckHandler answers plain messages that contain a supported URL. Anything else is ignored.
func chatCheckHandler(m *telegram.NewMessage) error {
	if m.IsCommand() {
		return nil
	}

	text := m.Text()
	url, ok := promptURL(text)
	if !ok {
		return nil
	}

	logEvent("chat_check", m.Sender, text)
	return sendPrompt(m, url)
}

// downloadCommandHandler handles /download <url>.
func downloadCommandHandler(m *telegram.NewMessage) error {
	args := strings.TrimSpace(m.Args())
	logEvent("download", m.Sender, m.Text())

	url, ok := promptURL(args)
	if !ok {
		_, err := m.Reply(lang.GetString(langOf(m.Sender), "cant_download"))
		return err
	}
	return sendPrompt(m, url)
}
