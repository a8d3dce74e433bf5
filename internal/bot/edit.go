package bot

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"lyricbot/core/telegram/callbacks"
	tghelpers "lyricbot/core/telegram/helpers"
	"lyricbot/core/telegram/keyboard"
	"lyricbot/internal/conversation"
)

// disarmPrompt rewrites an earlier prompt message so its cancel button
// disappears once the flow has moved on. Failures are tolerated: the prompt
// may have been deleted by the admin.
func (h *Handlers) disarmPrompt(c tele.Context, messageID int, text string) {
	_, _ = c.Bot().Edit(editable{chatID: c.Chat().ID, messageID: messageID}, text)
}

// ackCallback answers the callback so the client clears its spinner.
func ackCallback(c tele.Context, text ...string) error {
	resp := &tele.CallbackResponse{}
	if len(text) > 0 {
		resp.Text = text[0]
	}
	return c.Respond(resp)
}

func alert(c tele.Context, text string) error {
	return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
}

// beginFieldEdit is the shared entry for the four edit flows: verify the
// track, prompt for input with a cancel button, and store the waiting state.
func (h *Handlers) beginFieldEdit(c tele.Context, state conversation.State, prompt, cancelAction string) error {
	musicID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return alert(c, "Unknown operation.")
	}

	ctx := tghelpers.BuildContext(c)
	if _, err := h.repo.GetByID(ctx, musicID); err != nil {
		if isNotFound(err) {
			return alert(c, "This track no longer exists.")
		}
		return alert(c, "Couldn't load the track: "+err.Error())
	}

	markup := keyboard.SingleCancelMarkup(fmt.Sprintf("%s_%d", cancelAction, musicID))
	msg, err := c.Bot().Send(c.Chat(), prompt, markup)
	if err != nil {
		return alert(c, "Couldn't send the prompt: "+err.Error())
	}

	data := conversation.Data{MusicID: musicID, PromptMessageID: msg.ID}
	if err := h.setState(ctx, c.Sender().ID, state, data); err != nil {
		h.disarmPrompt(c, msg.ID, "Something went wrong, try again.")
		return alert(c, "Couldn't start the edit, try again.")
	}
	return ackCallback(c)
}

func (h *Handlers) cbEditLyrics(c tele.Context) error {
	return h.beginFieldEdit(c, conversation.StateWaitingForNewLyrics,
		"Send the new lyrics. 📝", ActionCancelEditLyrics)
}

func (h *Handlers) cbEditFile(c tele.Context) error {
	return h.beginFieldEdit(c, conversation.StateWaitingForNewFile,
		"Send the new audio file. 🎼", ActionCancelEditFile)
}

func (h *Handlers) cbEditArtist(c tele.Context) error {
	return h.beginFieldEdit(c, conversation.StateWaitingForArtistName,
		"Send the artist name. 🎤", ActionCancelEditArtist)
}

func (h *Handlers) cbEditTitle(c tele.Context) error {
	return h.beginFieldEdit(c, conversation.StateWaitingForTitleName,
		"Send the track title. 🎶", ActionCancelEditTitle)
}

// cbCancelEdit serves every canceledit_* action: clear state and mark the
// prompt message (the one carrying the cancel button) as cancelled.
func (h *Handlers) cbCancelEdit(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	h.clearState(ctx, c.Sender().ID)
	_ = c.Edit("Edit cancelled. ❌")
	return ackCallback(c, "Cancelled")
}

// applyTextEdit performs a terminal single-field text mutation and
// re-renders the preview.
func (h *Handlers) applyTextEdit(c tele.Context, data conversation.Data, field string, update func(context.Context, int64, string) error) error {
	musicID, ok := h.requireMusicID(c, data)
	if !ok {
		return nil
	}
	text := strings.TrimSpace(c.Text())
	ctx := tghelpers.BuildContext(c)
	if err := update(ctx, musicID, text); err != nil {
		if isNotFound(err) {
			return h.resetToMenu(c, "The track disappeared before the "+field+" was saved.")
		}
		return h.resetToMenu(c, "Saving the "+field+" failed: "+err.Error())
	}
	if data.PromptMessageID != 0 {
		h.disarmPrompt(c, data.PromptMessageID, "Updated. ✅")
	}
	return h.refreshPreview(c, musicID)
}
