/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package main

import (
	"log"
	"strings"
	"sync/atomic"
	"time"

	"ashokshau/tgdownloader/config"
	"ashokshau/tgdownloader/src"
	"ashokshau/tgdownloader/src/core/db"
	"ashokshau/tgdownloader/src/core/server"
	"ashokshau/tgdownloader/src/handlers"
	"ashokshau/tgdownloader/src/lang"

	tg "github.com/amarnathcjd/gogram/telegram"
)

// main loads the configuration, logs the bot in and serves updates until SIGINT or SIGTERM.
func main() {
	if err := config.LoadConfig(); err != nil {
		panic(err)
	}

	if _, err := lang.LoadTranslations(); err != nil {
		panic(err)
	}

	clientConfig := tg.ClientConfig{
		AppID:        config.Conf.ApiId,
		AppHash:      config.Conf.ApiHash,
		FloodHandler: handleFlood,
		SessionName:  "bot",
		LogLevel:     logLevel(config.Conf.LogLevel),
	}

	client, err := tg.NewClient(clientConfig)
	if err != nil {
		log.Fatalf("failed to create client: %v", err)
	}

	_, err = client.Conn()
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}

	err = client.LoginBot(config.Conf.Token)
	if err != nil {
		log.Fatalf("failed to login: %v", err)
	}

	err = src.Init(client)
	if err != nil {
		log.Fatalf("failed to init: %v", err)
	}

	var ready atomic.Bool
	var metricsServer *server.Server
	if config.Conf.MetricsAddr != "" {
		metricsServer = server.Start(config.Conf.MetricsAddr, ready.Load)
	}
	ready.Store(true)

	client.Log.Info("The bot is running as @%s.", client.Me().Username)
	notify(client, lang.GetString("", "startup")+handlers.VersionLine(config.Conf.ChangelogPath))

	client.Idle()
	log.Println("The bot is shutting down...")
	ready.Store(false)
	notify(client, lang.GetString("", "shutdown"))

	if err := metricsServer.Shutdown(); err != nil {
		log.Printf("metrics server shutdown: %v", err)
	}

	ctx, cancel := db.Ctx()
	if err := db.Instance.Close(ctx); err != nil {
		log.Printf("database close: %v", err)
	}
	cancel()
	_ = client.Stop()
}

// notify sends a start/stop notice to the log group and the developer chat when enabled.
func notify(client *tg.Client, text string) {
	if !config.Conf.SendStartStopMessage {
		return
	}

	for _, chatID := range []int64{config.Conf.LoggerId, config.Conf.DevChatId} {
		if chatID == 0 {
			continue
		}
		if _, err := client.SendMessage(chatID, text, &tg.SendOptions{ParseMode: "HTML"}); err != nil {
			client.Log.Warn("failed to notify %d: %v", chatID, err)
		}
	}
}

func logLevel(level string) tg.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return tg.LogDebug
	case "warn", "warning":
		return tg.LogWarn
	case "error":
		return tg.LogError
	default:
		return tg.LogInfo
	}
}

// handleFlood manages flood wait errors by pausing execution for the specified duration.
// Waits longer than MAX_FLOOD_WAIT are not retried.
func handleFlood(err error) bool {
	wait := tg.GetFloodWait(err)
	if wait <= 0 {
		return false
	}

	d := time.Duration(wait) * time.Second
	if config.Conf.MaxFloodWait > 0 && d > config.Conf.MaxFloodWait {
		log.Printf("A flood wait of %ds exceeds the limit, giving up.", wait)
		return false
	}

	log.Printf("A flood wait has been detected. Sleeping for %ds.", wait)
	time.Sleep(d)
	return true
}
