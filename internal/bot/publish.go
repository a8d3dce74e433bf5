package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"
	"log/slog"

	"lyricbot/core/logger"
	"lyricbot/core/telegram/callbacks"
	tghelpers "lyricbot/core/telegram/helpers"
	"lyricbot/core/telegram/keyboard"
	"lyricbot/internal/conversation"
	"lyricbot/internal/music"
)

// emptyCaptionCommand posts without a caption when sent (any case) while a
// caption is awaited.
const emptyCaptionCommand = "/emptycaption"

// normalizeCaption maps the sentinel command (any case, surrounding
// whitespace) to an empty caption; everything else is taken literally.
func normalizeCaption(text string) string {
	if strings.EqualFold(strings.TrimSpace(text), emptyCaptionCommand) {
		return ""
	}
	return text
}

// cbRequestChannelCaption starts the publish pipeline: prompt for a caption
// and remember which preview message triggered it.
func (h *Handlers) cbRequestChannelCaption(c tele.Context) error {
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

	originalPreviewID := 0
	if c.Callback().Message != nil {
		originalPreviewID = c.Callback().Message.ID
	}

	promptText := "Send the caption for the channel post.\n" +
		"To post without a caption, send " + emptyCaptionCommand + "."
	markup := keyboard.SingleCancelMarkup(
		fmt.Sprintf("cancel_chcaption_%d_%d", musicID, originalPreviewID),
		"❌ Cancel sending")
	msg, err := c.Bot().Send(c.Chat(), promptText, markup)
	if err != nil {
		return alert(c, "Couldn't send the caption prompt: "+err.Error())
	}

	data := conversation.Data{
		MusicID:                  musicID,
		OriginalPreviewMessageID: originalPreviewID,
		CaptionPromptMessageID:   msg.ID,
	}
	if err := h.setState(ctx, c.Sender().ID, conversation.StateWaitingForChannelCaption, data); err != nil {
		h.disarmPrompt(c, msg.ID, "Something went wrong, try again.")
		return alert(c, "Couldn't start the publish flow, try again.")
	}
	return ackCallback(c)
}

// handleChannelCaption consumes the caption text, renders the confirm
// preview, and advances to StateConfirmChannelPost.
func (h *Handlers) handleChannelCaption(c tele.Context, data conversation.Data) error {
	musicID, ok := h.requireMusicID(c, data)
	if !ok {
		return nil
	}

	caption := normalizeCaption(c.Text())

	ctx := tghelpers.BuildContext(c)
	track, err := h.repo.GetByID(ctx, musicID)
	if err != nil {
		if isNotFound(err) {
			return h.resetToMenu(c, "The track disappeared before it could be posted.")
		}
		return h.resetToMenu(c, "Couldn't load the track: "+err.Error())
	}

	if data.CaptionPromptMessageID != 0 {
		h.disarmPrompt(c, data.CaptionPromptMessageID, "Caption received. 👍")
	}

	confirmKB := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "✅ Send to channel", Data: fmt.Sprintf("finalsend_tocanal_%d", musicID)},
			{Text: "✏️ Edit caption", Data: fmt.Sprintf("retry_chcaption_%d_%d", musicID, data.OriginalPreviewMessageID)},
		},
		[]keyboard.InlineBtn{
			{Text: "❌ Cancel everything", Data: fmt.Sprintf("cancel_sendprocess_%d_%d_%d", musicID, data.OriginalPreviewMessageID, data.CaptionPromptMessageID)},
		},
	)
	audio := &tele.Audio{File: tele.File{FileID: track.FileID}, Caption: caption}
	msg, err := c.Bot().Send(c.Chat(), audio, confirmKB)
	if err != nil {
		// Without a valid preview message id the confirm state is unusable.
		return h.resetToMenu(c, "Couldn't render the caption preview: "+err.Error())
	}

	next := conversation.Data{
		MusicID:                        musicID,
		OriginalPreviewMessageID:       data.OriginalPreviewMessageID,
		CaptionPromptMessageID:         data.CaptionPromptMessageID,
		ChannelCaption:                 &caption,
		CaptionConfirmPreviewMessageID: msg.ID,
	}
	if err := h.setState(ctx, c.Sender().ID, conversation.StateConfirmChannelPost, next); err != nil {
		return h.resetToMenu(c, "Couldn't store the publish step, try again.")
	}
	return nil
}

// cbFinalSendToChannel publishes the track: audio + caption + deep-link
// button to the configured channel, then records the post.
func (h *Handlers) cbFinalSendToChannel(c tele.Context) error {
	musicID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return alert(c, "Unknown operation.")
	}

	ctx := tghelpers.BuildContext(c)
	state, data := h.stateOf(ctx, c.Sender().ID)
	if state != conversation.StateConfirmChannelPost || data.ChannelCaption == nil || data.MusicID != musicID {
		return alert(c, "Invalid state or caption not found.")
	}

	if h.cfg.Channel.Target == "" {
		return alert(c, "No target channel is configured.")
	}
	if h.cfg.Core.Telegram.Username == "" {
		return alert(c, "The bot username is not configured, deep links can't be built.")
	}

	track, err := h.repo.GetByID(ctx, musicID)
	if err != nil {
		if isNotFound(err) {
			h.clearState(ctx, c.Sender().ID)
			return alert(c, "This track no longer exists.")
		}
		return alert(c, "Couldn't load the track: "+err.Error())
	}

	deepLink := fmt.Sprintf("https://t.me/%s?start=%s", h.cfg.Core.Telegram.Username, track.ShortCode)
	linkKB := keyboard.InlineButtons([]keyboard.InlineBtn{{Text: "🎧 View lyrics", URL: deepLink}})
	audio := &tele.Audio{File: tele.File{FileID: track.FileID}, Caption: *data.ChannelCaption}

	sent, err := c.Bot().Send(channelRecipient(h.cfg.Channel.Target), audio, linkKB)
	if err != nil {
		// State stays intact so the admin can confirm again.
		logger.Error(ctx, "service.posts", "post.send",
			slog.String("status", "fail"),
			slog.Int64("music_id", musicID),
			slog.String("err", err.Error()),
		)
		return alert(c, "Publishing failed: "+err.Error())
	}

	post := &music.ChannelPost{MusicID: musicID, ChannelID: sent.Chat.ID, MessageID: sent.ID}
	if err := h.repo.AddPost(ctx, post); err != nil {
		logger.Error(ctx, "service.posts", "post.record",
			slog.String("status", "fail"),
			slog.Int64("music_id", musicID),
			slog.String("err", err.Error()),
		)
		h.clearState(ctx, c.Sender().ID)
		_ = c.EditCaption("Posted, but recording the post failed. Links may miss this post.")
		return ackCallback(c)
	}

	logger.Info(ctx, "service.posts", "post.published",
		slog.String("status", "ok"),
		slog.Int64("music_id", musicID),
		slog.Int64("channel_id", post.ChannelID),
		slog.Int("message_id", post.MessageID),
	)

	h.clearState(ctx, c.Sender().ID)
	_ = c.EditCaption("Posted to the channel. ✅")
	return ackCallback(c, "Published")
}

// cbRetryChannelCaption restarts caption entry from the confirm stage,
// reusing the original preview reference.
func (h *Handlers) cbRetryChannelCaption(c tele.Context) error {
	action, err := ParseAction(c.Callback().Data)
	if err != nil || len(action.Args) < 2 {
		return alert(c, "Unknown operation.")
	}
	musicID, originalPreviewID := action.Arg(0), int(action.Arg(1))

	ctx := tghelpers.BuildContext(c)
	promptText := "Send the new caption for the channel post.\n" +
		"To post without a caption, send " + emptyCaptionCommand + "."
	markup := keyboard.SingleCancelMarkup(
		fmt.Sprintf("cancel_chcaption_%d_%d", musicID, originalPreviewID),
		"❌ Cancel sending")
	msg, err := c.Bot().Send(c.Chat(), promptText, markup)
	if err != nil {
		return alert(c, "Couldn't send the caption prompt: "+err.Error())
	}

	data := conversation.Data{
		MusicID:                  musicID,
		OriginalPreviewMessageID: originalPreviewID,
		CaptionPromptMessageID:   msg.ID,
	}
	if err := h.setState(ctx, c.Sender().ID, conversation.StateWaitingForChannelCaption, data); err != nil {
		h.disarmPrompt(c, msg.ID, "Something went wrong, try again.")
		return alert(c, "Couldn't restart caption entry, try again.")
	}

	_ = c.EditCaption("Send a new caption below. ✏️")
	return ackCallback(c)
}

// cbCancelChannelCaption aborts the publish flow from the caption prompt.
func (h *Handlers) cbCancelChannelCaption(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	h.clearState(ctx, c.Sender().ID)
	_ = c.Edit("Sending to the channel was cancelled. ❌")
	return ackCallback(c, "Cancelled")
}

// cbCancelSendProcess aborts from the confirm stage and cleans up both the
// confirm preview and the earlier caption prompt.
func (h *Handlers) cbCancelSendProcess(c tele.Context) error {
	action, err := ParseAction(c.Callback().Data)
	if err != nil {
		return alert(c, "Unknown operation.")
	}

	ctx := tghelpers.BuildContext(c)
	h.clearState(ctx, c.Sender().ID)

	if promptID := int(action.Arg(2)); promptID != 0 {
		h.disarmPrompt(c, promptID, "Sending to the channel was cancelled. ❌")
	}
	_ = c.EditCaption("Sending to the channel was cancelled. ❌")
	return ackCallback(c, "Cancelled")
}
