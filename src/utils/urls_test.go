package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFirstURL(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOk bool
	}{
		{name: "bare url", text: "https://youtu.be/dQw4w9WgXcQ", want: "https://youtu.be/dQw4w9WgXcQ", wantOk: true},
		{name: "inside sentence", text: "look at this https://x.com/user/status/1 lol", want: "https://x.com/user/status/1", wantOk: true},
		{name: "first of two", text: "http://a.com/1 https://b.com/2", want: "http://a.com/1", wantOk: true},
		{name: "no url", text: "hello there", wantOk: false},
		{name: "empty", text: "", wantOk: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractFirstURL(tc.text)
			assert.Equal(t, tc.wantOk, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://www.youtube.it/watch?v=dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/abcdefghijk", true},
		{"https://youtube.com/shorts/abcdefghijk", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"https://www.facebook.com/watch/?v=1", true},
		{"https://m.facebook.com/story.php", true},
		{"https://fb.watch/abc/", true},
		{"https://www.instagram.com/reel/xyz/", true},
		{"https://www.tiktok.com/@u/video/1", true},
		{"https://vm.tiktok.com/ZM123/", true},
		{"https://twitter.com/u/status/1", true},
		{"https://x.com/u/status/1", true},
		{"https://www.youtube.com/channel/UC123", false},
		{"https://vimeo.com/123", false},
		{"https://instagram.com/reel/xyz/", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			assert.Equal(t, tc.want, IsSupported(tc.url))
		})
	}
}

func TestIsFromYouTube(t *testing.T) {
	assert.True(t, IsFromYouTube("https://youtu.be/dQw4w9WgXcQ"))
	assert.True(t, IsFromYouTube("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.False(t, IsFromYouTube("https://x.com/u/status/1"))
	assert.False(t, IsFromYouTube("https://www.youtube.com/feed/trending"))
}

func TestIsWellFormedURL(t *testing.T) {
	assert.True(t, IsWellFormedURL("https://x.com/u/status/1"))
	assert.True(t, IsWellFormedURL("http://fb.watch/abc"))
	assert.False(t, IsWellFormedURL("ftp://example.com/file"))
	assert.False(t, IsWellFormedURL("https://localhost/abc"))
	assert.False(t, IsWellFormedURL("not a url"))
	assert.False(t, IsWellFormedURL(""))
}

func TestCleanURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123&index=2", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"  https://www.youtube.com/watch?v=dQw4w9WgXcQ  ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"https://x.com/u/status/1?list=keep&list=keep", "https://x.com/u/status/1?list=keep&list=keep"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, CleanURL(tc.in))
	}
}
