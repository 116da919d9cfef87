/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DownloadRecord is one finished download request.
type DownloadRecord struct {
	URL       string    `bson:"url"`
	Mode      string    `bson:"mode"`
	Method    string    `bson:"method,omitempty"`
	Channel   string    `bson:"channel"`
	ChatID    int64     `bson:"chat_id"`
	UserID    int64     `bson:"user_id"`
	Error     string    `bson:"error,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

// NewDownloadRecord fills a record; err may be nil.
func NewDownloadRecord(url, mode, method, channel string, chatID, userID int64, err error) DownloadRecord {
	rec := DownloadRecord{
		URL:       url,
		Mode:      mode,
		Method:    method,
		Channel:   channel,
		ChatID:    chatID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	return rec
}

// RecordDownload stores rec in the download history.
func (db *Database) RecordDownload(ctx context.Context, rec DownloadRecord) error {
	if db == nil {
		return nil
	}
	_, err := db.downloads.InsertOne(ctx, rec)
	return err
}

// DownloadsByMethod counts stored downloads grouped by the extractor that served them.
// Failed requests are counted under "failed".
func (db *Database) DownloadsByMethod(ctx context.Context) (map[string]int64, error) {
	if db == nil {
		return map[string]int64{}, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$method", "failed"}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := db.downloads.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Method string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Method] = row.Count
	}
	return counts, nil
}
