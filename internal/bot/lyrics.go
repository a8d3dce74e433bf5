package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
	"log/slog"

	"lyricbot/core/logger"
	"lyricbot/core/telegram/format"
	tghelpers "lyricbot/core/telegram/helpers"
	"lyricbot/core/telegram/keyboard"
	"lyricbot/internal/music"
)

const (
	// messageLimit is Telegram's ceiling for one text message, in runes.
	messageLimit = 4096
	// chunkDelay throttles successive chunk sends of long lyric bodies.
	chunkDelay = 500 * time.Millisecond
)

// resolveDeepLink serves /start <shortCode>: looks up the track and sends
// its rendered lyrics, attaching a channel back-link when one can be built.
func (h *Handlers) resolveDeepLink(c tele.Context, code string) error {
	ctx := tghelpers.BuildContext(c)
	track, err := h.repo.GetByShortCode(ctx, code)
	if err != nil {
		if isNotFound(err) {
			return c.Send("Sorry, no track was found for this link.")
		}
		logger.Error(ctx, "service.tracks", "deeplink.lookup",
			slog.String("status", "fail"),
			slog.String("short_code", code),
			slog.String("err", err.Error()),
		)
		return c.Send("Something went wrong, try the link again later.")
	}
	if !track.HasLyrics() {
		return c.Send("This track has no lyrics yet.")
	}

	var markup *tele.ReplyMarkup
	if post, err := h.repo.LatestPost(ctx, track.ID); err == nil {
		if link := channelPostLink(h.cfg.Channel.PublicUsername, h.cfg.Channel.Target, post.ChannelID, post.MessageID); link != "" {
			markup = keyboard.InlineButtons([]keyboard.InlineBtn{{Text: "📣 View in channel", URL: link}})
		}
	}

	chunks := splitMessage(renderLyrics(track), messageLimit)
	for i, chunk := range chunks {
		if i > 0 {
			time.Sleep(chunkDelay)
		}
		var err error
		if i == len(chunks)-1 && markup != nil {
			err = tghelpers.SendMD(c, chunk, markup)
		} else {
			err = tghelpers.SendMD(c, chunk)
		}
		if err != nil {
			return fmt.Errorf("send lyrics chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return nil
}

// renderLyrics produces the Markdown lyric message: title and artist lines
// (placeholders are skipped) followed by the full body, all escaped.
func renderLyrics(t *music.Track) string {
	var b strings.Builder
	if t.Title != "" && t.Title != music.DefaultTitle {
		b.WriteString("🎵 *" + format.EscapeV1(t.Title) + "*\n")
	}
	if t.Artist != "" && t.Artist != music.DefaultArtist {
		b.WriteString("🎤 " + format.EscapeV1(t.Artist) + "\n")
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(format.EscapeV1(*t.Lyrics))
	return b.String()
}

// channelPostLink derives a clickable link to a channel post. Preference
// order: configured public username, @-prefixed channel identifier, private
// /c/ link for -100-prefixed numeric ids. Empty result means no link.
func channelPostLink(publicUsername, target string, channelID int64, messageID int) string {
	if publicUsername != "" {
		return fmt.Sprintf("https://t.me/%s/%d", publicUsername, messageID)
	}
	if strings.HasPrefix(target, "@") {
		return fmt.Sprintf("https://t.me/%s/%d", strings.TrimPrefix(target, "@"), messageID)
	}
	id := strconv.FormatInt(channelID, 10)
	if strings.HasPrefix(id, "-100") {
		return fmt.Sprintf("https://t.me/c/%s/%d", id[4:], messageID)
	}
	return ""
}

// splitMessage breaks text into chunks of at most limit runes, preferring
// paragraph boundaries, then sentence boundaries, then a hard cut.
func splitMessage(text string, limit int) []string {
	if len([]rune(text)) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, strings.TrimRight(current.String(), "\n"))
			current.Reset()
			currentLen = 0
		}
	}

	appendPiece := func(piece string, sep string) {
		pieceLen := len([]rune(piece))
		sepLen := len([]rune(sep))
		if currentLen > 0 && currentLen+sepLen+pieceLen > limit {
			flush()
		}
		if currentLen > 0 {
			current.WriteString(sep)
			currentLen += sepLen
		}
		current.WriteString(piece)
		currentLen += pieceLen
	}

	for _, paragraph := range strings.Split(text, "\n\n") {
		if len([]rune(paragraph)) <= limit {
			appendPiece(paragraph, "\n\n")
			continue
		}
		for _, sentence := range splitSentences(paragraph) {
			if len([]rune(sentence)) <= limit {
				appendPiece(sentence, " ")
				continue
			}
			// Hard cut a sentence that alone exceeds the limit.
			runes := []rune(sentence)
			for len(runes) > 0 {
				n := limit
				if n > len(runes) {
					n = len(runes)
				}
				appendPiece(string(runes[:n]), " ")
				runes = runes[n:]
			}
		}
	}
	flush()
	return chunks
}

// splitSentences cuts a paragraph after sentence-final punctuation or line
// breaks.
func splitSentences(paragraph string) []string {
	var out []string
	var b strings.Builder
	runes := []rune(paragraph)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		b.WriteRune(r)
		boundary := r == '\n' ||
			((r == '.' || r == '!' || r == '?') && (i+1 == len(runes) || runes[i+1] == ' '))
		if boundary {
			s := strings.TrimSpace(b.String())
			if s != "" {
				out = append(out, s)
			}
			b.Reset()
			if i+1 < len(runes) && runes[i+1] == ' ' {
				i++
			}
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}
