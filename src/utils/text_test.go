package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitMessage(t *testing.T) {
	assert.Nil(t, SplitMessage("", 10))
	assert.Equal(t, []string{"abc"}, SplitMessage("abc", 10))
	assert.Equal(t, []string{"abc", "def", "g"}, SplitMessage("abcdefg", 3))
	assert.Equal(t, []string{"èè", "è"}, SplitMessage("èèè", 2))
	// Emoji outside the BMP take two UTF-16 units and are never split.
	assert.Equal(t, []string{"a", "😀", "b"}, SplitMessage("a😀b", 2))
}

func TestUTF16Len(t *testing.T) {
	assert.Equal(t, 0, UTF16Len(""))
	assert.Equal(t, 3, UTF16Len("èèè"))
	assert.Equal(t, 4, UTF16Len("a😀b"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "a…", Truncate("a😀b", 3))
	assert.Equal(t, "", Truncate("abc", 0))

	long := "https://www.facebook.com/watch/?v=" + strings.Repeat("9", 300)
	assert.LessOrEqual(t, UTF16Len(Truncate(long, MaxCallbackAnswerLength)), MaxCallbackAnswerLength)
}

func TestPreChunks(t *testing.T) {
	assert.Nil(t, PreChunks(""))

	text := strings.Repeat("x", MaxMessageLength*2)

	chunks := PreChunks(text)
	assert.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, UTF16Len(chunk), MaxMessageLength)
		assert.True(t, strings.HasPrefix(chunk, "<pre>"))
		assert.True(t, strings.HasSuffix(chunk, "</pre>"))
	}
}

func TestPreChunksEscapesWholeEntities(t *testing.T) {
	limit := MaxMessageLength - len("<pre>") - len("</pre>")
	// The ampersand lands right at the chunk boundary.
	text := strings.Repeat("x", limit-2) + "&y"

	chunks := PreChunks(text)
	assert.Len(t, chunks, 2)
	assert.Equal(t, "<pre>"+strings.Repeat("x", limit-2)+"</pre>", chunks[0])
	assert.Equal(t, "<pre>&amp;y</pre>", chunks[1])
	for _, chunk := range chunks {
		assert.LessOrEqual(t, UTF16Len(chunk), MaxMessageLength)
	}
}

func TestPreChunksCountsUTF16(t *testing.T) {
	chunks := PreChunks(strings.Repeat("😀", MaxMessageLength))
	assert.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, UTF16Len(chunk), MaxMessageLength)
	}
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "my_video_file.mp4", CollapseSpaces("my video\t file.mp4"))
}

func TestSecToMin(t *testing.T) {
	assert.Equal(t, "0:00", SecToMin(0))
	assert.Equal(t, "1:05", SecToMin(65))
	assert.Equal(t, "1:01:01", SecToMin(3661))
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", HumanBytes(512))
	assert.Equal(t, "1.50 KiB", HumanBytes(1536))
	assert.Equal(t, "2.00 MiB", HumanBytes(2*1024*1024))
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("dl_mp3")
	assert.True(t, ok)
	assert.Equal(t, Audio, m)

	m, ok = ParseMode("mp4")
	assert.True(t, ok)
	assert.Equal(t, Video, m)

	_, ok = ParseMode("dl_flac")
	assert.False(t, ok)

	assert.Equal(t, "dl_mp4", Video.CallbackData())
	assert.True(t, Audio.IsAudio())
}
