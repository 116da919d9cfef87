package dl

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"ashokshau/tgdownloader/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFor(t *testing.T) {
	audio := ProfileFor(utils.Audio)
	assert.Equal(t, "m4a/bestaudio/best", audio.Format)
	assert.True(t, audio.ExtractAudio)
	assert.Equal(t, "m4a", audio.AudioFormat)

	assert.Equal(t, Profile{}, ProfileFor(utils.Video))
}

func TestDegradedProfileOverridesFormat(t *testing.T) {
	degraded := NewDegradedYtDlp(YtDlpOptions{})
	assert.Equal(t, MethodDegraded, degraded.Name())

	p := degraded.profile(utils.Audio)
	assert.Equal(t, degradedFormat, p.Format)
	assert.True(t, p.ExtractAudio)

	assert.Equal(t, degradedFormat, degraded.profile(utils.Video).Format)
	assert.Empty(t, NewYtDlp(YtDlpOptions{}).profile(utils.Video).Format)
}

// flagValue reports whether flag is present in args and the value that follows it.
func flagValue(args []string, flag string) (string, bool) {
	for i, arg := range args {
		if value, ok := strings.CutPrefix(arg, flag+"="); ok {
			return value, true
		}
		if arg == flag {
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "--") {
				return args[i+1], true
			}
			return "", true
		}
	}
	return "", false
}

func TestYtDlpCommandArgs(t *testing.T) {
	opts := YtDlpOptions{
		YouTubeUser:    "user@example.com",
		YouTubePass:    "hunter2",
		CookiesBrowser: "firefox",
	}

	tests := []struct {
		name        string
		extractor   *YtDlp
		url         string
		mode        utils.Mode
		format      string
		audio       bool
		credentials bool
	}{
		{name: "youtube audio", extractor: NewYtDlp(opts), url: "https://youtu.be/abc", mode: utils.Audio, format: "m4a/bestaudio/best", audio: true, credentials: true},
		{name: "youtube video", extractor: NewYtDlp(opts), url: "https://www.youtube.com/watch?v=abc", mode: utils.Video, credentials: true},
		{name: "tiktok audio", extractor: NewYtDlp(opts), url: "https://www.tiktok.com/@u/video/1", mode: utils.Audio, format: "m4a/bestaudio/best", audio: true},
		{name: "tiktok video", extractor: NewYtDlp(opts), url: "https://www.tiktok.com/@u/video/1", mode: utils.Video},
		{name: "degraded youtube video", extractor: NewDegradedYtDlp(opts), url: "https://youtu.be/abc", mode: utils.Video, format: degradedFormat, credentials: true},
		{name: "degraded instagram audio", extractor: NewDegradedYtDlp(opts), url: "https://www.instagram.com/reel/x/", mode: utils.Audio, format: degradedFormat, audio: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			req := Request{URL: tc.url, Mode: tc.mode, Dir: dir}
			args := tc.extractor.command(req).BuildCommand(context.Background(), tc.url).Args

			for _, flag := range []string{"--no-playlist", "--restrict-filenames", "--windows-filenames"} {
				_, ok := flagValue(args, flag)
				assert.True(t, ok, "missing %s", flag)
			}

			trim, ok := flagValue(args, "--trim-filenames")
			assert.True(t, ok)
			assert.Equal(t, "16", trim)

			printed, ok := flagValue(args, "--print")
			assert.True(t, ok)
			assert.Equal(t, printFilepath, printed)

			paths, ok := flagValue(args, "--paths")
			assert.True(t, ok)
			assert.Equal(t, dir, paths)

			format, ok := flagValue(args, "--format")
			assert.Equal(t, tc.format != "", ok)
			assert.Equal(t, tc.format, format)

			_, ok = flagValue(args, "--extract-audio")
			assert.Equal(t, tc.audio, ok)
			if tc.audio {
				audioFormat, _ := flagValue(args, "--audio-format")
				assert.Equal(t, "m4a", audioFormat)
			}

			user, ok := flagValue(args, "--username")
			assert.Equal(t, tc.credentials, ok)
			_, passOK := flagValue(args, "--password")
			assert.Equal(t, tc.credentials, passOK)
			browser, cookiesOK := flagValue(args, "--cookies-from-browser")
			assert.Equal(t, tc.credentials, cookiesOK)
			if tc.credentials {
				assert.Equal(t, "user@example.com", user)
				assert.Equal(t, "firefox", browser)
			}

			assert.Equal(t, tc.url, args[len(args)-1])
		})
	}
}

func TestYtDlpCommandProxy(t *testing.T) {
	y := NewYtDlp(YtDlpOptions{Proxy: "socks5://127.0.0.1:1080"})
	url := "https://x.com/u/status/1"
	args := y.command(Request{URL: url, Mode: utils.Video, Dir: t.TempDir()}).BuildCommand(context.Background(), url).Args

	proxy, ok := flagValue(args, "--proxy")
	assert.True(t, ok)
	assert.Equal(t, "socks5://127.0.0.1:1080", proxy)

	_, ok = flagValue(args, "--username")
	assert.False(t, ok)
}

func TestYouGetArgs(t *testing.T) {
	y := NewYouGet("")
	assert.Equal(t, MethodSecondary, y.Name())
	assert.Equal(t,
		[]string{"-k", "-f", "-o", "/tmp/job/o", "-O", "__o", "https://fb.watch/x/"},
		y.args("/tmp/job/o", "https://fb.watch/x/"),
	)
}

func fakeYouGet(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub")
	}
	path := filepath.Join(t.TempDir(), "you-get")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestYouGetDownload(t *testing.T) {
	// $4 is the output directory, $6 the output name.
	bin := fakeYouGet(t, `touch "$4/$6.mp4"`+"\n")

	job := t.TempDir()
	got, err := NewYouGet(bin).Download(context.Background(), Request{URL: "https://fb.watch/x/", Dir: job})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(job, "o", "__o.mp4"), got)
}

func TestYouGetFailure(t *testing.T) {
	bin := fakeYouGet(t, "echo 'unsupported url' >&2\nexit 1\n")

	_, err := NewYouGet(bin).Download(context.Background(), Request{URL: "https://fb.watch/x/", Dir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported url")
}

func TestYouGetNoOutput(t *testing.T) {
	bin := fakeYouGet(t, "exit 0\n")

	_, err := NewYouGet(bin).Download(context.Background(), Request{URL: "https://fb.watch/x/", Dir: t.TempDir()})
	assert.ErrorIs(t, err, errNoOutputFile)
}
