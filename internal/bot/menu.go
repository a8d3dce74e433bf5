package bot

import (
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"lyricbot/core/logger"
	"lyricbot/core/telegram/callbacks"
	tghelpers "lyricbot/core/telegram/helpers"
	"lyricbot/core/telegram/keyboard"
)

const (
	menuButtonUpload = "🎵 Upload track"
	menuButtonList   = "📋 List tracks"
)

func mainMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{menuButtonUpload, menuButtonList})
}

// cmdStart handles /start. With a payload it resolves a deep link for any
// user; without one it opens the admin menu, or tells outsiders to use a
// shared link.
func (h *Handlers) cmdStart(c tele.Context) error {
	payload := strings.TrimSpace(c.Message().Payload)
	if payload != "" {
		return h.resolveDeepLink(c, payload)
	}

	if c.Sender() == nil || !h.cfg.Core.Telegram.IsAdmin(c.Sender().ID) {
		// Strip any stale admin menu the chat may still show.
		return c.Send("Hi! This bot serves lyrics for published tracks. Open one through a link from the channel.",
			keyboard.RemoveKeyboard())
	}

	ctx := tghelpers.BuildContext(c)
	h.clearState(ctx, c.Sender().ID)
	return c.Send("What would you like to do?", mainMenu())
}

// UnknownText handles text that is neither a pending conversation step nor a
// registered command: the menu buttons, /music_<code> shortcuts, and noise.
func (h *Handlers) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Sender() == nil || !h.cfg.Core.Telegram.IsAdmin(c.Sender().ID) {
			return c.Send("Please use a valid track link to view lyrics.")
		}

		text := strings.TrimSpace(c.Text())
		switch {
		case text == menuButtonUpload:
			return h.startUpload(c)
		case text == menuButtonList:
			return h.cmdList(c)
		case strings.HasPrefix(text, "/music_"):
			return h.openTrackByCode(c, strings.TrimPrefix(text, "/music_"))
		}
		return c.Send("I didn't get that. Pick an option below.", mainMenu())
	}
}

// UnknownAudio handles audio sent while no flow expects a file.
func (h *Handlers) UnknownAudio() tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Sender() == nil || !h.cfg.Core.Telegram.IsAdmin(c.Sender().ID) {
			return c.Send("Please use a valid track link to view lyrics.")
		}
		return c.Send("To add this track, press \""+menuButtonUpload+"\" first.", mainMenu())
	}
}

// UnknownCallback answers unroutable button presses with an alert.
func (h *Handlers) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.BuildContext(c)
		logger.Warn(ctx, "tg", "callback.unknown",
			slog.String("status", "fail"),
			slog.String("cb_key", callbacks.CallbackKey(c)),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Unknown operation.", ShowAlert: true})
	}
}
