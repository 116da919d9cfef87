/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package handlers

import (
	"ashokshau/tgdownloader/config"

	"github.com/amarnathcjd/gogram/telegram"
)

// isDev checks if the user is a developer.
func isDev(m *telegram.NewMessage) bool {
	return config.Conf.IsDev(m.SenderID())
}

// langOf returns the Telegram language code of user, or "" when unknown.
func langOf(user *telegram.UserObj) string {
	if user == nil {
		return ""
	}
	return user.LangCode
}

func firstName(user *telegram.UserObj) string {
	if user == nil {
		return "unknown"
	}
	return user.FirstName
}

func userID(user *telegram.UserObj) int64 {
	if user == nil {
		return 0
	}
	return user.ID
}
