package bot

import (
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"lyricbot/core/telegram/format"
	tghelpers "lyricbot/core/telegram/helpers"
	"lyricbot/core/telegram/keyboard"
	"lyricbot/internal/music"
)

const lyricSummaryLimit = 150

// trackKeyboard builds the 4-row management keyboard for a track preview.
func trackKeyboard(musicID int64) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "🎼 Edit file", Data: fmt.Sprintf("edit_file_%d", musicID)},
			{Text: "📝 Edit lyrics", Data: fmt.Sprintf("edit_lyrics_%d", musicID)},
		},
		[]keyboard.InlineBtn{
			{Text: "🗑 Delete track", Data: fmt.Sprintf("delete_music_%d", musicID)},
		},
		[]keyboard.InlineBtn{
			{Text: "🎤 Edit artist", Data: fmt.Sprintf("edit_artist_%d", musicID)},
			{Text: "🎶 Edit title", Data: fmt.Sprintf("edit_title_%d", musicID)},
		},
		[]keyboard.InlineBtn{
			{Text: "📲 Send to channel", Data: fmt.Sprintf("request_chcaption_%d", musicID)},
		},
	)
}

// buildPreviewCaption renders the management caption: title, artist (skipped
// when placeholder), and a flattened lyric summary.
func buildPreviewCaption(t *music.Track) string {
	var b strings.Builder
	b.WriteString("🎶 " + t.Title + "\n")
	if t.Artist != "" && t.Artist != music.DefaultArtist {
		b.WriteString("🎤 " + t.Artist + "\n")
	}
	b.WriteString("\n")
	if t.HasLyrics() {
		b.WriteString(summarizeLyrics(format.DerefString(t.Lyrics, ""), lyricSummaryLimit))
	} else {
		b.WriteString("(no lyrics yet)")
	}
	return b.String()
}

func summarizeLyrics(lyrics string, limit int) string {
	flat := strings.Join(strings.Fields(lyrics), " ")
	runes := []rune(flat)
	if len(runes) <= limit {
		return flat
	}
	return string(runes[:limit]) + "…"
}

// sendTrackPreview re-sends the track's audio with the management caption and
// keyboard, returning the id of the sent message.
func (h *Handlers) sendTrackPreview(c tele.Context, t *music.Track) (int, error) {
	audio := &tele.Audio{File: tele.File{FileID: t.FileID}, Caption: buildPreviewCaption(t)}
	msg, err := c.Bot().Send(c.Chat(), audio, trackKeyboard(t.ID))
	if err != nil {
		return 0, fmt.Errorf("send track preview: %w", err)
	}
	return msg.ID, nil
}

// openTrackByCode opens the management preview via a /music_<code> shortcut.
func (h *Handlers) openTrackByCode(c tele.Context, code string) error {
	code = strings.TrimSpace(code)
	if !music.ValidShortCode(code) {
		return c.Send("That track code doesn't look right.", mainMenu())
	}
	ctx := tghelpers.BuildContext(c)
	track, err := h.repo.GetByShortCode(ctx, code)
	if err != nil {
		if isNotFound(err) {
			return c.Send("No track found for that code.", mainMenu())
		}
		return c.Send("Couldn't load the track: " + err.Error())
	}
	_, err = h.sendTrackPreview(c, track)
	return err
}

// refreshPreview re-renders a track preview after a terminal mutation and
// resets the admin to idle.
func (h *Handlers) refreshPreview(c tele.Context, musicID int64) error {
	ctx := tghelpers.BuildContext(c)
	h.clearState(ctx, c.Sender().ID)

	track, err := h.repo.GetByID(ctx, musicID)
	if err != nil {
		if isNotFound(err) {
			return c.Send("The track no longer exists.", mainMenu())
		}
		return c.Send("Couldn't reload the track: "+err.Error(), mainMenu())
	}
	_, err = h.sendTrackPreview(c, track)
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, music.ErrNotFound)
}
