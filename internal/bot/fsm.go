package bot

import (
	"context"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"lyricbot/core/logger"
	tghelpers "lyricbot/core/telegram/helpers"
	"lyricbot/internal/conversation"
)

const resetNotice = "That step can't continue here. Back to the main menu."

// Handle consumes a message for the admin's pending conversation step.
// A mismatched input kind re-prompts and leaves the step pending; a state no
// handler claims (or one whose payload lost its track id) resets to idle
// with an explanatory notice.
func (h *Handlers) Handle(c tele.Context) error {
	adminID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)
	state, data := h.stateOf(ctx, adminID)

	logger.Debug(ctx, "tg", "fsm.dispatch",
		slog.String("status", "ok"),
		slog.Int64("user_id", adminID),
		slog.String("state", string(state)),
	)

	if !state.Known() {
		return h.resetToMenu(c, resetNotice)
	}
	if kind := state.ExpectedInput(); kind != conversation.InputNone && !matchesInput(c, kind) {
		return c.Send(inputHint(state))
	}

	switch state {
	case conversation.StateWaitingForMusicFile:
		return h.handleMusicFile(c)
	case conversation.StateWaitingForLyrics:
		return h.handleLyrics(c, data, false)
	case conversation.StateWaitingForNewLyrics:
		return h.handleLyrics(c, data, true)
	case conversation.StateWaitingForNewFile:
		return h.handleNewFile(c, data)
	case conversation.StateWaitingForArtistName:
		return h.handleArtistName(c, data)
	case conversation.StateWaitingForTitleName:
		return h.handleTitleName(c, data)
	case conversation.StateWaitingForChannelCaption:
		return h.handleChannelCaption(c, data)
	}

	// StateConfirmChannelPost: only callbacks may exit it.
	return h.resetToMenu(c, resetNotice)
}

// matchesInput reports whether the message carries the content the state
// consumes. Text states refuse audio and blank text alike.
func matchesInput(c tele.Context, kind conversation.InputKind) bool {
	msg := c.Message()
	switch kind {
	case conversation.InputAudio:
		return msg != nil && msg.Audio != nil
	case conversation.InputText:
		return msg != nil && msg.Audio == nil && strings.TrimSpace(c.Text()) != ""
	}
	return true
}

// inputHint is the re-prompt shown when the input kind doesn't fit the
// pending step.
func inputHint(state conversation.State) string {
	switch state {
	case conversation.StateWaitingForMusicFile:
		return "I need an audio file here. Send the track as audio."
	case conversation.StateWaitingForNewFile:
		return "I need an audio file here. Send the new version as audio."
	case conversation.StateWaitingForLyrics, conversation.StateWaitingForNewLyrics:
		return "Send the lyrics as plain text."
	case conversation.StateWaitingForArtistName:
		return "Send the new artist as plain text."
	case conversation.StateWaitingForTitleName:
		return "Send the new title as plain text."
	case conversation.StateWaitingForChannelCaption:
		return "Send the caption as plain text, or " + emptyCaptionCommand + " to post without one."
	}
	return "That input doesn't fit the current step."
}

// resetToMenu clears state and shows the main menu with a notice.
func (h *Handlers) resetToMenu(c tele.Context, notice string) error {
	ctx := tghelpers.BuildContext(c)
	h.clearState(ctx, c.Sender().ID)
	return c.Send(notice, mainMenu())
}

// requireMusicID validates the payload carries a track reference; a missing
// id means the stored step is unusable, so reset.
func (h *Handlers) requireMusicID(c tele.Context, data conversation.Data) (int64, bool) {
	if data.MusicID == 0 {
		_ = h.resetToMenu(c, "Lost track of what we were doing. Back to the main menu.")
		return 0, false
	}
	return data.MusicID, true
}

func (h *Handlers) setState(ctx context.Context, adminID int64, state conversation.State, data conversation.Data) error {
	return h.store.Set(ctx, adminID, state, data)
}

func logStateError(ctx context.Context, adminID int64, err error) {
	logger.Error(ctx, "service.state", "state.error",
		slog.String("status", "fail"),
		slog.Int64("user_id", adminID),
		slog.String("err", err.Error()),
	)
}
