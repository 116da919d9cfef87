/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package handlers

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"

	"ashokshau/tgdownloader/config"
	"ashokshau/tgdownloader/src/lang"
	"ashokshau/tgdownloader/src/utils"

	tg "github.com/amarnathcjd/gogram/telegram"
)

// withReport logs and reports the error returned by a message handler.
func withReport(fn func(*tg.NewMessage) error) func(*tg.NewMessage) error {
	return func(m *tg.NewMessage) error {
		err := fn(m)
		if err != nil && !errors.Is(err, tg.EndGroup) {
			reportError(m.Client, m.ChannelID(), err)
		}
		return err
	}
}

// withReportCB is withReport for callback queries.
func withReportCB(fn func(*tg.CallbackQuery) error) func(*tg.CallbackQuery) error {
	return func(cb *tg.CallbackQuery) error {
		err := fn(cb)
		if err != nil && !errors.Is(err, tg.EndGroup) {
			reportError(cb.Client, cb.ChannelID(), err)
		}
		return err
	}
}

// isNetworkError reports errors caused by a flaky connection to Telegram.
// Those are only logged.
func isNetworkError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE)
}

// errorReport renders err as <pre> chunks that each fit in one message.
func errorReport(err error) []string {
	text := fmt.Sprintf("%s\n\n%s", lang.GetString("", "error_notice"), err.Error())
	return utils.PreChunks(text)
}

func reportError(c *tg.Client, chatID int64, err error) {
	logger.Error("Exception while handling an update: %v", err)
	if isNetworkError(err) {
		return
	}

	var targets []int64
	if config.Conf.SendErrorToDev && config.Conf.DevChatId != 0 {
		targets = append(targets, config.Conf.DevChatId)
	}
	if config.Conf.SendErrorToUser && chatID != 0 && chatID != config.Conf.DevChatId {
		targets = append(targets, chatID)
	}

	chunks := errorReport(err)
	for _, target := range targets {
		for _, chunk := range chunks {
			if _, sendErr := c.SendMessage(target, chunk, &tg.SendOptions{ParseMode: "HTML"}); sendErr != nil {
				logger.Warn("Failed to send error report to %d: %v", target, sendErr)
				break
			}
		}
	}
}
