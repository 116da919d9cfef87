/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package src

import (
	"context"

	"ashokshau/tgdownloader/config"
	"ashokshau/tgdownloader/src/core/db"
	"ashokshau/tgdownloader/src/core/delivery"
	"ashokshau/tgdownloader/src/core/dl"
	"ashokshau/tgdownloader/src/core/upload"
	"ashokshau/tgdownloader/src/handlers"

	tg "github.com/amarnathcjd/gogram/telegram"
)

// Init connects the database and registers the handlers with their download and delivery services.
func Init(client *tg.Client) error {
	if err := db.InitDatabase(context.Background()); err != nil {
		return err
	}

	dispatcher := dl.NewDefaultDispatcher(config.Conf)

	var uploader delivery.Uploader
	if config.Conf.FTP.Enabled() {
		uploader = upload.NewUploader(config.Conf.FTP, config.Conf.DownloadsDir)
	}

	transport := handlers.NewTransport(client, config.Conf.RateLimit, config.Conf.RateBurst)
	handlers.LoadModules(client, dispatcher, delivery.NewService(transport, uploader))

	client.Log.Info("Download methods: %v", dispatcher.Methods())
	return nil
}
