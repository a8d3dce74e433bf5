package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"

	"lyricbot/internal/music"
)

func TestDefaultMetaFromAudioTags(t *testing.T) {
	title, artist := defaultMeta(&tele.Audio{Title: "Song", Performer: "Band"})
	assert.Equal(t, "Song", title)
	assert.Equal(t, "Band", artist)
}

func TestDefaultMetaFileNameFallback(t *testing.T) {
	title, artist := defaultMeta(&tele.Audio{FileName: "demo.mp3", Performer: ""})
	assert.Equal(t, "demo.mp3", title)
	assert.Equal(t, music.DefaultArtist, artist)
}

func TestDefaultMetaPlaceholders(t *testing.T) {
	title, artist := defaultMeta(&tele.Audio{})
	assert.Equal(t, music.DefaultTitle, title)
	assert.Equal(t, music.DefaultArtist, artist)
}

func TestDefaultMetaTrimsWhitespace(t *testing.T) {
	title, artist := defaultMeta(&tele.Audio{Title: "  ", Performer: "  X  "})
	assert.Equal(t, music.DefaultTitle, title)
	assert.Equal(t, "X", artist)
}
