package bot

import (
	"context"
	"errors"
	"strconv"

	tele "gopkg.in/telebot.v4"

	appconfig "lyricbot/config"
	tg "lyricbot/core/telegram"
	"lyricbot/core/telegram/commands"
	tghelpers "lyricbot/core/telegram/helpers"
	"lyricbot/core/telegram/ui"
	"lyricbot/internal/conversation"
	"lyricbot/internal/music"
)

// Handlers wires every admin workflow: upload, metadata edits, delete,
// channel publishing, deep-link lyrics resolution, and listing.
type Handlers struct {
	cfg   *appconfig.Config
	repo  *music.Repository
	store conversation.Store
}

// New builds the handler set over its collaborators.
func New(cfg *appconfig.Config, repo *music.Repository, store conversation.Store) *Handlers {
	return &Handlers{cfg: cfg, repo: repo, store: store}
}

// Register wires commands, callbacks, and fallbacks into the registry.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.cmdStart,
		Description: "Open the main menu or follow a track link",
	})
	reg.RegisterCommand("/list", commands.Command{
		Handler:     h.cmdList,
		Description: "List uploaded tracks",
		AdminOnly:   true,
	})

	callbacksByKey := map[string]tele.HandlerFunc{
		ActionDeleteMusic:        h.cbDeleteMusic,
		ActionConfirmDeleteMusic: h.cbConfirmDeleteMusic,
		ActionCancelDeleteMusic:  h.cbCancelDeleteMusic,

		ActionEditFile:         h.cbEditFile,
		ActionCancelEditFile:   h.cbCancelEdit,
		ActionEditLyrics:       h.cbEditLyrics,
		ActionCancelEditLyrics: h.cbCancelEdit,
		ActionEditArtist:       h.cbEditArtist,
		ActionCancelEditArtist: h.cbCancelEdit,
		ActionEditTitle:        h.cbEditTitle,
		ActionCancelEditTitle:  h.cbCancelEdit,

		ActionRequestChannelCaption: h.cbRequestChannelCaption,
		ActionCancelChannelCaption:  h.cbCancelChannelCaption,
		ActionRetryChannelCaption:   h.cbRetryChannelCaption,
		ActionFinalSendToChannel:    h.cbFinalSendToChannel,
		ActionCancelSendProcess:     h.cbCancelSendProcess,

		ActionListPage:     h.cbListPage,
		ActionListSetCount: h.cbListSetCount,
	}
	for key, handler := range callbacksByKey {
		_ = reg.RegisterCallback(key, h.adminCallback(handler))
	}

	reg.SetFallbacks(h)
}

var _ ui.FallbackProvider = (*Handlers)(nil)

// adminCallback gates a callback handler to configured admins.
func (h *Handlers) adminCallback(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Sender() == nil || !h.cfg.Core.Telegram.IsAdmin(c.Sender().ID) {
			return c.Respond(&tele.CallbackResponse{Text: "Not allowed.", ShowAlert: true})
		}
		return next(c)
	}
}

// Pending reports whether the admin has a non-idle conversation step.
// Non-admin traffic never has one.
func (h *Handlers) Pending(c tele.Context, userID int64) bool {
	if !h.cfg.Core.Telegram.IsAdmin(userID) {
		return false
	}
	ctx := tghelpers.BuildContext(c)
	state, _, err := h.store.Get(ctx, userID)
	if err != nil {
		return false
	}
	return state != conversation.StateIdle
}

func (h *Handlers) stateOf(ctx context.Context, adminID int64) (conversation.State, conversation.Data) {
	state, data, err := h.store.Get(ctx, adminID)
	if err != nil {
		if !errors.Is(err, conversation.ErrNoState) {
			logStateError(ctx, adminID, err)
		}
		return conversation.StateIdle, conversation.Data{}
	}
	return state, data
}

func (h *Handlers) clearState(ctx context.Context, adminID int64) {
	if err := h.store.Clear(ctx, adminID); err != nil {
		logStateError(ctx, adminID, err)
	}
}

// editable identifies an existing message for edit calls outside the
// triggering update's own message.
type editable struct {
	chatID    int64
	messageID int
}

func (e editable) MessageSig() (string, int64) {
	return strconv.Itoa(e.messageID), e.chatID
}

// channelRecipient lets a configured channel identifier (numeric id or
// @username) be used directly as a send target.
type channelRecipient string

func (r channelRecipient) Recipient() string { return string(r) }
