/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package handlers

import (
	"time"

	"ashokshau/tgdownloader/src/core/delivery"
	"ashokshau/tgdownloader/src/core/dl"

	tg "github.com/amarnathcjd/gogram/telegram"
)

var startTime = time.Now()
var logger tg.Logger

var (
	dispatcher *dl.Dispatcher
	deliverer  *delivery.Service
)

// LoadModules registers every handler on the client.
// d runs the downloads and s hands the files back to the chat.
func LoadModules(c *tg.Client, d *dl.Dispatcher, s *delivery.Service) {
	_, _ = c.UpdatesGetState()
	logger = c.Log
	dispatcher = d
	deliverer = s

	c.On("command:ping", withReport(pingHandler))
	c.On("command:start", withReport(startHandler))
	c.On("command:help", withReport(startHandler))
	c.On("command:version", withReport(versionHandler))
	c.On("command:download", withReport(downloadCommandHandler))
	c.On("command:shutdown", withReport(shutdownHandler))

	c.On("command:stats", withReport(sysStatsHandler), tg.FilterFunc(isDev))

	c.On("callback:dl_\\w+", withReportCB(downloadCallbackHandler))

	c.AddMessageHandler(tg.OnNewMessage, withReport(chatCheckHandler))
	logger.Debug("Handlers loaded successfully.")
}
