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
	"errors"
	"fmt"
	"time"

	"ashokshau/tgdownloader/config"
	"ashokshau/tgdownloader/src/core/cache"
	"ashokshau/tgdownloader/src/core/db"
	"ashokshau/tgdownloader/src/core/delivery"
	"ashokshau/tgdownloader/src/lang"
	"ashokshau/tgdownloader/src/utils"

	"github.com/amarnathcjd/gogram/telegram"
)

// downloadCallbackHandler handles the audio/video buttons of the confirmation prompt.
// The URL is read back from the hidden anchor of the prompt message.
func downloadCallbackHandler(cb *telegram.CallbackQuery) error {
	langCode := langOf(cb.Sender)
	opts := &telegram.CallbackOptions{Alert: true}

	mode, ok := utils.ParseMode(cb.DataString())
	if !ok {
		_, _ = cb.Answer("Unknown option.", opts)
		return nil
	}

	msg, err := cb.GetMessage()
	if err != nil {
		_, _ = cb.Answer(lang.GetString(langCode, "link_expired"), opts)
		return fmt.Errorf("get prompt message: %w", err)
	}

	url, err := utils.FindToken(msg.Message.Entities)
	if err != nil {
		_, _ = cb.Answer(lang.GetString(langCode, "link_expired"), opts)
		if errors.Is(err, utils.ErrNoToken) {
			return nil
		}
		return err
	}

	logEvent("button", cb.Sender, "")

	chatID := cb.ChannelID()
	if !cache.TryStart(chatID, url, mode) {
		if started, ok := cache.StartedAt(chatID, url, mode); ok {
			logger.Info("Download of %s for %d already running for %s", url, chatID, time.Since(started).Round(time.Second))
		}
		_, _ = cb.Answer(lang.GetString(langCode, "already_downloading"), opts)
		return nil
	}
	defer cache.Finish(chatID, url, mode)

	if _, err := cb.Answer(selectedAnswer(langCode, url)); err != nil {
		logger.Warn("Failed to answer callback: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.Conf.HandleTimeout)
	defer cancel()

	res, err := dispatcher.Download(ctx, url, mode)
	if err != nil {
		recordDownload(url, mode, "", delivery.Failed, chatID, userID(cb.Sender), err)
		_, _ = cb.Client.SendMessage(chatID, lang.GetString(langCode, "download_failed"))
		return err
	}
	defer dispatcher.Cleanup(res)

	outcome, err := deliverer.Deliver(ctx, delivery.Job{
		ChatID:   chatID,
		Path:     res.Path,
		Mode:     mode,
		LangCode: langCode,
	})
	recordDownload(url, mode, res.Method, outcome, chatID, userID(cb.Sender), err)
	if err != nil {
		return fmt.Errorf("deliver %s: %w", res.Path, err)
	}
	return nil
}

// selectedAnswer is the callback answer naming url, shortened to fit Telegram's limit.
func selectedAnswer(langCode, url string) string {
	room := utils.MaxCallbackAnswerLength - utils.UTF16Len(lang.Sprintf(langCode, "selected", ""))
	return lang.Sprintf(langCode, "selected", utils.Truncate(url, room))
}

func recordDownload(url string, mode utils.Mode, method string, outcome delivery.Outcome, chatID, userID int64, err error) {
	ctx, cancel := db.Ctx()
	defer cancel()

	rec := db.NewDownloadRecord(url, string(mode), method, string(outcome), chatID, userID, err)
	if dbErr := db.Instance.RecordDownload(ctx, rec); dbErr != nil {
		logger.Warn("Failed to record download: %v", dbErr)
	}
}
