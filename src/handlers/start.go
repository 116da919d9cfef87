/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package handlers

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"ashokshau/tgdownloader/config"
	"ashokshau/tgdownloader/src/lang"

	"github.com/amarnathcjd/gogram/telegram"
)

// pingHandler handles the /ping command.
func pingHandler(m *telegram.NewMessage) error {
	start := time.Now()
	updateLag := time.Since(time.Unix(int64(m.Date()), 0)).Milliseconds()

	msg, err := m.Reply("⏱️ Pinging...")
	if err != nil {
		return err
	}

	latency := time.Since(start).Milliseconds()
	uptime := time.Since(startTime).Truncate(time.Second)
	response := fmt.Sprintf(
		"<b>📊 System Performance Metrics</b>\n\n"+
			"⏱️ <b>Bot Latency:</b> <code>%d ms</code>\n"+
			"🕒 <b>Uptime:</b> <code>%s</code>\n"+
			"📩 <b>Update Lag:</b> <code>%d ms</code>\n"+
			"⚙️ <b>Go Routines:</b> <code>%d</code>\n",
		latency, uptime, updateLag, runtime.NumGoroutine(),
	)

	_, err = msg.Edit(response)
	return err
}

// startHandler handles the /start and /help commands.
func startHandler(m *telegram.NewMessage) error {
	bot := m.Client.Me()
	go registerChat(m.IsPrivate(), m.ChannelID())
	logEvent("start", m.Sender, m.Text())

	response := lang.Sprintf(langOf(m.Sender), "start", firstName(m.Sender), bot.FirstName)
	_, err := m.Reply(response)
	return err
}

// VersionLine returns the first line of the changelog, or "unknown".
func VersionLine(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "unknown"
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line
		}
	}
	return "unknown"
}

// versionHandler handles the /version command.
func versionHandler(m *telegram.NewMessage) error {
	logEvent("version", m.Sender, m.Text())
	text := VersionLine(config.Conf.ChangelogPath) + lang.GetString(langOf(m.Sender), "version_footer")
	_, err := m.Reply(text)
	return err
}

// shutdownHandler stops the bot. Only developers may use it.
func shutdownHandler(m *telegram.NewMessage) error {
	logEvent("shutdown", m.Sender, m.Text())
	if !isDev(m) {
		_, err := m.Reply(lang.GetString(langOf(m.Sender), "no_grant_shutdown"))
		return err
	}

	_, _ = m.Reply(lang.GetString(langOf(m.Sender), "shutdown"))

	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return err
	}
	return p.Signal(os.Interrupt)
}
