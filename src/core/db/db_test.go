package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilDatabaseIsNoop(t *testing.T) {
	var d *Database
	ctx, cancel := Ctx()
	defer cancel()

	assert.NoError(t, d.AddUser(ctx, 1))
	assert.NoError(t, d.AddChat(ctx, -100))
	assert.NoError(t, d.RecordDownload(ctx, DownloadRecord{}))
	assert.NoError(t, d.Close(context.Background()))

	users, err := d.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	counts, err := d.DownloadsByMethod(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestNewDownloadRecord(t *testing.T) {
	ok := NewDownloadRecord("https://youtu.be/x", "mp3", "primary", "chat", 5, 6, nil)
	assert.Equal(t, "primary", ok.Method)
	assert.Empty(t, ok.Error)
	assert.False(t, ok.CreatedAt.IsZero())

	failed := NewDownloadRecord("https://youtu.be/x", "mp4", "", "failed", 5, 6, errors.New("boom"))
	assert.Equal(t, "boom", failed.Error)
	assert.Empty(t, failed.Method)
}
