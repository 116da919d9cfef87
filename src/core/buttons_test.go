package core

import (
	"testing"

	"ashokshau/tgdownloader/src/lang"
	"ashokshau/tgdownloader/src/utils"

	"github.com/amarnathcjd/gogram/telegram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeKeyboard(t *testing.T) {
	_, err := lang.LoadTranslations()
	require.NoError(t, err)

	kb := ModeKeyboard("en")
	require.Len(t, kb.Rows, 1)
	require.Len(t, kb.Rows[0].Buttons, 2)

	audio, ok := kb.Rows[0].Buttons[0].(*telegram.KeyboardButtonCallback)
	require.True(t, ok)
	assert.Equal(t, "Download Audio", audio.Text)
	assert.Equal(t, []byte("dl_mp3"), audio.Data)

	video, ok := kb.Rows[0].Buttons[1].(*telegram.KeyboardButtonCallback)
	require.True(t, ok)
	assert.Equal(t, "Download Video", video.Text)
	assert.Equal(t, []byte("dl_mp4"), video.Data)
}

func TestPromptTextCarriesToken(t *testing.T) {
	_, err := lang.LoadTranslations()
	require.NoError(t, err)

	text := PromptText("en", "https://youtu.be/abc")
	assert.Contains(t, text, lang.GetString("en", "valid_link"))
	assert.Contains(t, text, utils.EncodeToken("https://youtu.be/abc"))
}
