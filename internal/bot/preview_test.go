package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"lyricbot/internal/music"
)

func TestBuildPreviewCaptionFull(t *testing.T) {
	lyrics := "first line\nsecond line"
	track := &music.Track{ID: 1, Title: "Song", Artist: "Band", Lyrics: &lyrics}
	caption := buildPreviewCaption(track)
	assert.Contains(t, caption, "Song")
	assert.Contains(t, caption, "Band")
	assert.Contains(t, caption, "first line second line")
}

func TestBuildPreviewCaptionSkipsPlaceholderArtist(t *testing.T) {
	track := &music.Track{Title: "Song", Artist: music.DefaultArtist}
	caption := buildPreviewCaption(track)
	assert.NotContains(t, caption, music.DefaultArtist)
	assert.Contains(t, caption, "(no lyrics yet)")
}

func TestSummarizeLyricsShort(t *testing.T) {
	assert.Equal(t, "la la", summarizeLyrics("la la", 150))
}

func TestSummarizeLyricsTruncates(t *testing.T) {
	long := strings.Repeat("word ", 60)
	got := summarizeLyrics(long, 150)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), 151)
}

func TestSummarizeLyricsFlattensNewlines(t *testing.T) {
	got := summarizeLyrics("a\nb\n\nc", 150)
	assert.Equal(t, "a b c", got)
}

func TestTrackKeyboardLayout(t *testing.T) {
	kb := trackKeyboard(7)
	rows := kb.InlineKeyboard
	assert.Len(t, rows, 4)
	assert.Equal(t, "edit_file_7", rows[0][0].Data)
	assert.Equal(t, "edit_lyrics_7", rows[0][1].Data)
	assert.Equal(t, "delete_music_7", rows[1][0].Data)
	assert.Equal(t, "edit_artist_7", rows[2][0].Data)
	assert.Equal(t, "edit_title_7", rows[2][1].Data)
	assert.Equal(t, "request_chcaption_7", rows[3][0].Data)
}
