package bot

import (
	"fmt"

	tele "gopkg.in/telebot.v4"
	"log/slog"

	"lyricbot/core/logger"
	"lyricbot/core/telegram/callbacks"
	tghelpers "lyricbot/core/telegram/helpers"
	"lyricbot/core/telegram/keyboard"
)

// cbDeleteMusic swaps the preview keyboard for a yes/no confirmation.
func (h *Handlers) cbDeleteMusic(c tele.Context) error {
	musicID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return alert(c, "Unknown operation.")
	}

	confirm := keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "Yes, delete it", Data: fmt.Sprintf("confirmdelete_music_%d", musicID)},
		{Text: "No, keep it", Data: fmt.Sprintf("canceldelete_music_%d", musicID)},
	})
	if err := c.Edit(confirm); err != nil {
		return alert(c, "Couldn't show the confirmation: "+err.Error())
	}
	return ackCallback(c)
}

// cbConfirmDeleteMusic deletes the track and marks the preview message.
func (h *Handlers) cbConfirmDeleteMusic(c tele.Context) error {
	musicID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return alert(c, "Unknown operation.")
	}

	ctx := tghelpers.BuildContext(c)
	if err := h.repo.Delete(ctx, musicID); err != nil {
		if isNotFound(err) {
			_ = c.Edit(&tele.ReplyMarkup{})
			return alert(c, "This track was already gone.")
		}
		// Restore the management keyboard so the admin can retry.
		_ = c.Edit(trackKeyboard(musicID))
		return alert(c, "Delete failed: "+err.Error())
	}

	logger.Info(ctx, "service.tracks", "track.delete",
		slog.String("status", "ok"),
		slog.Int64("music_id", musicID),
	)
	_ = c.EditCaption("Track deleted. 🗑")
	return ackCallback(c, "Deleted")
}

// cbCancelDeleteMusic restores the management keyboard.
func (h *Handlers) cbCancelDeleteMusic(c tele.Context) error {
	musicID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return alert(c, "Unknown operation.")
	}
	if err := c.Edit(trackKeyboard(musicID)); err != nil {
		// The original message may be too old to edit; fall back to a fresh preview.
		ctx := tghelpers.BuildContext(c)
		if track, lookupErr := h.repo.GetByID(ctx, musicID); lookupErr == nil {
			_, _ = h.sendTrackPreview(c, track)
		}
	}
	return ackCallback(c, "Kept")
}
