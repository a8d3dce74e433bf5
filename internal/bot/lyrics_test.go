package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyricbot/internal/music"
)

func TestChannelPostLinkPrefersPublicUsername(t *testing.T) {
	link := channelPostLink("mychannel", "@other", -1001234567890, 55)
	assert.Equal(t, "https://t.me/mychannel/55", link)
}

func TestChannelPostLinkFromAtTarget(t *testing.T) {
	link := channelPostLink("", "@mychannel", -1001234567890, 55)
	assert.Equal(t, "https://t.me/mychannel/55", link)
}

func TestChannelPostLinkPrivate(t *testing.T) {
	link := channelPostLink("", "-1001234567890", -1001234567890, 55)
	assert.Equal(t, "https://t.me/c/1234567890/55", link)
}

func TestChannelPostLinkUnderivable(t *testing.T) {
	// A plain group id without the -100 prefix yields no link, silently.
	assert.Empty(t, channelPostLink("", "-987654", -987654, 55))
}

func TestRenderLyricsSkipsPlaceholders(t *testing.T) {
	lyrics := "la la la"
	track := &music.Track{Title: music.DefaultTitle, Artist: music.DefaultArtist, Lyrics: &lyrics}
	out := renderLyrics(track)
	assert.NotContains(t, out, music.DefaultTitle)
	assert.NotContains(t, out, music.DefaultArtist)
	assert.Contains(t, out, "la la la")
}

func TestRenderLyricsWithMeta(t *testing.T) {
	lyrics := "verse one"
	track := &music.Track{Title: "Song", Artist: "Band", Lyrics: &lyrics}
	out := renderLyrics(track)
	assert.Contains(t, out, "Song")
	assert.Contains(t, out, "Band")
	assert.True(t, strings.HasSuffix(out, "verse one"))
}

func TestRenderLyricsEscapesMarkdown(t *testing.T) {
	lyrics := "stars *and* under_scores"
	track := &music.Track{Title: "T", Artist: "A", Lyrics: &lyrics}
	out := renderLyrics(track)
	assert.Contains(t, out, `\*and\*`)
	assert.Contains(t, out, `under\_scores`)
}

func TestSplitMessageShortTextSingleChunk(t *testing.T) {
	chunks := splitMessage("short", 4096)
	assert.Equal(t, []string{"short"}, chunks)
}

func TestSplitMessagePrefersParagraphs(t *testing.T) {
	p1 := strings.Repeat("a", 60)
	p2 := strings.Repeat("b", 60)
	p3 := strings.Repeat("c", 60)
	text := p1 + "\n\n" + p2 + "\n\n" + p3

	chunks := splitMessage(text, 130)
	require.Len(t, chunks, 2)
	assert.Equal(t, p1+"\n\n"+p2, chunks[0])
	assert.Equal(t, p3, chunks[1])
}

func TestSplitMessageFallsBackToSentences(t *testing.T) {
	sentence := strings.Repeat("x", 40) + "."
	paragraph := sentence + " " + sentence + " " + sentence
	chunks := splitMessage(paragraph, 90)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 90)
	}
}

func TestSplitMessageHardCut(t *testing.T) {
	text := strings.Repeat("y", 250)
	chunks := splitMessage(text, 100)
	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 100)
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestSplitMessageRespectsRuneLimit(t *testing.T) {
	// Multi-byte runes must count as one character each.
	text := strings.Repeat("é", 150)
	chunks := splitMessage(text, 100)
	require.Len(t, chunks, 2)
	assert.Equal(t, 100, len([]rune(chunks[0])))
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("One. Two! Three? Four")
	assert.Equal(t, []string{"One.", "Two!", "Three?", "Four"}, got)
}

func TestSplitSentencesOnLineBreaks(t *testing.T) {
	got := splitSentences("line one\nline two")
	assert.Equal(t, []string{"line one", "line two"}, got)
}
