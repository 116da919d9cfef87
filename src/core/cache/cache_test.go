package cache

import (
	"testing"
	"time"

	"ashokshau/tgdownloader/src/utils"

	"github.com/stretchr/testify/assert"
)

func TestCacheExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := NewCache[string](time.Minute)
	c.now = func() time.Time { return now }

	assert.True(t, c.SetIfAbsent("a", "1"))
	now = now.Add(30 * time.Second)
	assert.True(t, c.SetIfAbsent("b", "2"))

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, 2, c.Len())

	now = now.Add(45 * time.Second)

	_, ok = c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Delete("b")
	assert.Equal(t, 0, c.Len())
}

func TestCacheSetIfAbsent(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := NewCache[int](time.Minute)
	c.now = func() time.Time { return now }

	assert.True(t, c.SetIfAbsent("k", 1))
	assert.False(t, c.SetIfAbsent("k", 2))

	now = now.Add(time.Hour)
	assert.True(t, c.SetIfAbsent("k", 3))

	v, _ := c.Get("k")
	assert.Equal(t, 3, v)
}

func TestTryStart(t *testing.T) {
	const url = "https://youtu.be/dQw4w9WgXcQ"
	t.Cleanup(func() {
		for _, chatID := range []int64{1, 2} {
			Finish(chatID, url, utils.Audio)
			Finish(chatID, url, utils.Video)
		}
	})

	assert.True(t, TryStart(1, url, utils.Audio))
	assert.False(t, TryStart(1, url, utils.Audio))
	assert.True(t, TryStart(1, url, utils.Video))
	assert.True(t, TryStart(2, url, utils.Audio))
	assert.Equal(t, 3, Running())

	started, ok := StartedAt(1, url, utils.Audio)
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now(), started, time.Minute)

	Finish(1, url, utils.Audio)
	_, ok = StartedAt(1, url, utils.Audio)
	assert.False(t, ok)
	assert.True(t, TryStart(1, url, utils.Audio))
}
