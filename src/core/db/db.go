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
	"fmt"
	"time"

	"ashokshau/tgdownloader/config"

	"github.com/Laky-64/gologging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Instance is nil when MONGO_URI is not set. Every method is safe to call on a nil *Database.
var Instance *Database

type Database struct {
	client    *mongo.Client
	users     *mongo.Collection
	chats     *mongo.Collection
	downloads *mongo.Collection
}

// Ctx returns the context used for a single database round-trip.
func Ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// InitDatabase connects to MongoDB and sets Instance. It is a no-op without MONGO_URI.
func InitDatabase(ctx context.Context) error {
	if config.Conf.MongoUri == "" {
		gologging.WarnF("MONGO_URI is not set, users and download history will not be stored")
		return nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.Conf.MongoUri))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("ping mongo: %w", err)
	}

	database := client.Database(config.Conf.DbName)
	Instance = &Database{
		client:    client,
		users:     database.Collection("users"),
		chats:     database.Collection("chats"),
		downloads: database.Collection("downloads"),
	}

	_, err = Instance.downloads.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "chat_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		gologging.WarnF("create downloads index: %v", err)
	}

	gologging.Info("Database connected successfully")
	return nil
}

// Close disconnects from MongoDB.
func (db *Database) Close(ctx context.Context) error {
	if db == nil {
		return nil
	}
	return db.client.Disconnect(ctx)
}

func (db *Database) addID(ctx context.Context, coll *mongo.Collection, id int64) error {
	_, err := coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$setOnInsert": bson.M{"added_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

// AddUser records a private-chat user.
func (db *Database) AddUser(ctx context.Context, userID int64) error {
	if db == nil {
		return nil
	}
	return db.addID(ctx, db.users, userID)
}

// AddChat records a group or channel.
func (db *Database) AddChat(ctx context.Context, chatID int64) error {
	if db == nil {
		return nil
	}
	return db.addID(ctx, db.chats, chatID)
}

func (db *Database) allIDs(ctx context.Context, coll *mongo.Collection) ([]int64, error) {
	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID int64 `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

// GetAllUsers returns every stored user id.
func (db *Database) GetAllUsers(ctx context.Context) ([]int64, error) {
	if db == nil {
		return nil, nil
	}
	return db.allIDs(ctx, db.users)
}

// GetAllChats returns every stored chat id.
func (db *Database) GetAllChats(ctx context.Context) ([]int64, error) {
	if db == nil {
		return nil, nil
	}
	return db.allIDs(ctx, db.chats)
}
