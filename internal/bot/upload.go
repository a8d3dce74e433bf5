package bot

import (
	"strings"

	tele "gopkg.in/telebot.v4"
	"log/slog"

	"lyricbot/core/logger"
	tghelpers "lyricbot/core/telegram/helpers"
	"lyricbot/internal/conversation"
	"lyricbot/internal/music"
)

// startUpload enters the upload flow from the menu button.
func (h *Handlers) startUpload(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := h.setState(ctx, c.Sender().ID, conversation.StateWaitingForMusicFile, conversation.Data{}); err != nil {
		return c.Send("Couldn't start the upload, try again.", mainMenu())
	}
	return c.Send("Send me the audio file. 🎵")
}

// handleMusicFile consumes the audio for StateWaitingForMusicFile: creates
// the track with metadata defaults, then asks for lyrics.
func (h *Handlers) handleMusicFile(c tele.Context) error {
	audio := c.Message().Audio
	ctx := tghelpers.BuildContext(c)
	title, artist := defaultMeta(audio)
	track := &music.Track{
		FileID:       audio.FileID,
		FileUniqueID: audio.UniqueID,
		Title:        title,
		Artist:       artist,
	}
	if err := h.repo.Create(ctx, track); err != nil {
		logger.Error(ctx, "service.tracks", "track.create",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return h.resetToMenu(c, "Saving the track failed: "+err.Error())
	}
	logger.Info(ctx, "service.tracks", "track.create",
		slog.String("status", "ok"),
		slog.Int64("music_id", track.ID),
		slog.String("short_code", track.ShortCode),
	)

	if err := h.setState(ctx, c.Sender().ID, conversation.StateWaitingForLyrics, conversation.Data{MusicID: track.ID}); err != nil {
		return h.resetToMenu(c, "Track saved, but the flow broke. Find it via /list.")
	}
	return c.Send("Saved! Now send the lyrics for this track. 📝")
}

// defaultMeta derives title/artist from audio metadata with the upload
// fallbacks: title <- audio title, else file name, else placeholder;
// artist <- performer, else placeholder.
func defaultMeta(audio *tele.Audio) (title, artist string) {
	title = strings.TrimSpace(audio.Title)
	if title == "" {
		title = strings.TrimSpace(audio.FileName)
	}
	if title == "" {
		title = music.DefaultTitle
	}
	artist = strings.TrimSpace(audio.Performer)
	if artist == "" {
		artist = music.DefaultArtist
	}
	return title, artist
}

// handleLyrics consumes lyric text for both the initial upload flow and the
// edit-lyrics flow; the two differ only in how they entered the state.
func (h *Handlers) handleLyrics(c tele.Context, data conversation.Data, isEdit bool) error {
	musicID, ok := h.requireMusicID(c, data)
	if !ok {
		return nil
	}
	text := strings.TrimSpace(c.Text())
	ctx := tghelpers.BuildContext(c)
	if err := h.repo.UpdateLyrics(ctx, musicID, text); err != nil {
		if isNotFound(err) {
			return h.resetToMenu(c, "The track disappeared before the lyrics were saved.")
		}
		return h.resetToMenu(c, "Saving the lyrics failed: "+err.Error())
	}
	if isEdit && data.PromptMessageID != 0 {
		h.disarmPrompt(c, data.PromptMessageID, "Lyrics updated. ✅")
	}
	return h.refreshPreview(c, musicID)
}

// handleNewFile consumes the replacement audio for StateWaitingForNewFile.
// Metadata carried by the new file overwrites the stored title/artist.
func (h *Handlers) handleNewFile(c tele.Context, data conversation.Data) error {
	musicID, ok := h.requireMusicID(c, data)
	if !ok {
		return nil
	}
	audio := c.Message().Audio
	ctx := tghelpers.BuildContext(c)
	err := h.repo.UpdateFile(ctx, musicID, audio.FileID, audio.UniqueID,
		strings.TrimSpace(audio.Title), strings.TrimSpace(audio.Performer))
	if err != nil {
		if isNotFound(err) {
			return h.resetToMenu(c, "The track disappeared before the file was replaced.")
		}
		return h.resetToMenu(c, "Replacing the file failed: "+err.Error())
	}
	if data.PromptMessageID != 0 {
		h.disarmPrompt(c, data.PromptMessageID, "File replaced. ✅")
	}
	return h.refreshPreview(c, musicID)
}

// handleArtistName consumes the new artist for StateWaitingForArtistName.
func (h *Handlers) handleArtistName(c tele.Context, data conversation.Data) error {
	return h.applyTextEdit(c, data, "artist", h.repo.UpdateArtist)
}

// handleTitleName consumes the new title for StateWaitingForTitleName.
func (h *Handlers) handleTitleName(c tele.Context, data conversation.Data) error {
	return h.applyTextEdit(c, data, "title", h.repo.UpdateTitle)
}
