package router

import (
	"time"

	tg "lyricbot/core/telegram"
	"lyricbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// FSM is the minimal interface the message routes need from the
// conversation engine: whether a user has a pending flow step, and the
// handler that consumes the message for that step.
type FSM interface {
	Pending(c tele.Context, userID int64) bool
	Handle(c tele.Context) error
}

// TextOptions controls fallback behaviour for text/audio updates.
type TextOptions struct {
	UnknownText  tele.HandlerFunc
	UnknownAudio tele.HandlerFunc
}

// TextRoutes builds handlers for text and audio routing. Text messages from a
// user with a pending conversation step go to the engine; otherwise commands
// are resolved via the registry and everything else falls through to the
// fallbacks. Audio messages follow the same pending-first rule.
func TextRoutes(fsmMgr FSM, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if fsmMgr != nil && c.Sender() != nil && fsmMgr.Pending(c, c.Sender().ID) {
			return handleWithSummary(c, "fsm", start, "", "", func() error {
				return fsmMgr.Handle(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	audioHandler := func(c tele.Context) error {
		start := time.Now()
		if fsmMgr != nil && c.Sender() != nil && fsmMgr.Pending(c, c.Sender().ID) {
			return handleWithSummary(c, "fsm_audio", start, "", "", func() error {
				return fsmMgr.Handle(c)
			})
		}
		if reg != nil {
			if fb := reg.AudioFallback(); fb != nil {
				return handleWithSummary(c, "unexpected_audio", start, "", "", func() error {
					return fb(c)
				})
			}
		}
		if opts.UnknownAudio != nil {
			return handleWithSummary(c, "unexpected_audio", start, "", "", func() error {
				return opts.UnknownAudio(c)
			})
		}
		logHandlerSummary(c, "unexpected_audio", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
		{
			Endpoint: tele.OnAudio,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(audioHandler)),
		},
	}
}
