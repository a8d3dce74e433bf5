package ui

import tele "gopkg.in/telebot.v4"

// FallbackProvider exposes handlers used when incoming updates
// cannot be mapped to commands, callbacks, or an expected audio upload.
type FallbackProvider interface {
	UnknownText() tele.HandlerFunc
	UnknownAudio() tele.HandlerFunc
	UnknownCallback() tele.HandlerFunc
}
