package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	appconfig "lyricbot/config"
	"lyricbot/internal/conversation"
)

const testAdminID int64 = 7

// fakeContext stubs the tele.Context surface the engine and callback
// handlers touch. Unstubbed methods panic via the nil embedded interface.
type fakeContext struct {
	tele.Context

	message  *tele.Message
	callback *tele.Callback
	values   map[string]interface{}

	sent      []interface{}
	responses []*tele.CallbackResponse
}

func newFakeContext(msg *tele.Message, cb *tele.Callback) *fakeContext {
	return &fakeContext{message: msg, callback: cb, values: map[string]interface{}{}}
}

func (f *fakeContext) Message() *tele.Message   { return f.message }
func (f *fakeContext) Callback() *tele.Callback { return f.callback }

func (f *fakeContext) Sender() *tele.User {
	if f.callback != nil {
		return f.callback.Sender
	}
	if f.message != nil {
		return f.message.Sender
	}
	return nil
}

func (f *fakeContext) Chat() *tele.Chat {
	if f.message != nil {
		return f.message.Chat
	}
	if f.callback != nil && f.callback.Message != nil {
		return f.callback.Message.Chat
	}
	return nil
}

func (f *fakeContext) Text() string {
	if f.message != nil {
		return f.message.Text
	}
	return ""
}

func (f *fakeContext) Update() tele.Update {
	return tele.Update{ID: 1, Message: f.message, Callback: f.callback}
}

func (f *fakeContext) Get(key string) interface{} { return f.values[key] }

func (f *fakeContext) Set(key string, v interface{}) { f.values[key] = v }

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	r := &tele.CallbackResponse{}
	if len(resp) > 0 {
		r = resp[0]
	}
	f.responses = append(f.responses, r)
	return nil
}

func newTestHandlers(store conversation.Store) *Handlers {
	cfg := &appconfig.Config{}
	cfg.Core.Telegram.AdminIDs = []int64{testAdminID}
	return New(cfg, nil, store)
}

func adminMessage(text string, audio *tele.Audio) *tele.Message {
	return &tele.Message{
		ID:     50,
		Sender: &tele.User{ID: testAdminID},
		Chat:   &tele.Chat{ID: testAdminID},
		Text:   text,
		Audio:  audio,
	}
}

func TestHandleKeepsCaptionStateOnAudio(t *testing.T) {
	ctx := context.Background()
	store := conversation.NewMemoryStore()
	before := conversation.Data{MusicID: 1, OriginalPreviewMessageID: 30, CaptionPromptMessageID: 40}
	require.NoError(t, store.Set(ctx, testAdminID, conversation.StateWaitingForChannelCaption, before))

	h := newTestHandlers(store)
	c := newFakeContext(adminMessage("", &tele.Audio{File: tele.File{FileID: "f"}}), nil)
	require.NoError(t, h.Handle(c))

	state, data, err := store.Get(ctx, testAdminID)
	require.NoError(t, err)
	assert.Equal(t, conversation.StateWaitingForChannelCaption, state)
	assert.Equal(t, before, data)
	assert.Nil(t, data.ChannelCaption)

	require.Len(t, c.sent, 1)
	hint, ok := c.sent[0].(string)
	require.True(t, ok, "re-prompt should be plain text, got %T", c.sent[0])
	assert.Contains(t, hint, emptyCaptionCommand)
}

func TestHandleKeepsFileStateOnText(t *testing.T) {
	ctx := context.Background()
	store := conversation.NewMemoryStore()
	require.NoError(t, store.Set(ctx, testAdminID, conversation.StateWaitingForMusicFile, conversation.Data{}))

	h := newTestHandlers(store)
	c := newFakeContext(adminMessage("this is not an audio file", nil), nil)
	require.NoError(t, h.Handle(c))

	state, _, err := store.Get(ctx, testAdminID)
	require.NoError(t, err)
	assert.Equal(t, conversation.StateWaitingForMusicFile, state)

	require.Len(t, c.sent, 1)
	hint, ok := c.sent[0].(string)
	require.True(t, ok)
	assert.Contains(t, hint, "audio")
}

func TestHandleRepromptsOnBlankText(t *testing.T) {
	ctx := context.Background()
	store := conversation.NewMemoryStore()
	require.NoError(t, store.Set(ctx, testAdminID, conversation.StateWaitingForLyrics, conversation.Data{MusicID: 3}))

	h := newTestHandlers(store)
	c := newFakeContext(adminMessage("   ", nil), nil)
	require.NoError(t, h.Handle(c))

	state, data, err := store.Get(ctx, testAdminID)
	require.NoError(t, err)
	assert.Equal(t, conversation.StateWaitingForLyrics, state)
	assert.Equal(t, int64(3), data.MusicID)
	require.Len(t, c.sent, 1)
}

func finalSendContext(payload string) *fakeContext {
	cb := &tele.Callback{
		Sender:  &tele.User{ID: testAdminID},
		Message: &tele.Message{ID: 60, Chat: &tele.Chat{ID: testAdminID}},
		Data:    "finalsend_tocanal_" + payload,
	}
	c := newFakeContext(nil, cb)
	c.Set("cb_args", payload)
	return c
}

func TestFinalSendWithoutConfirmStateAlerts(t *testing.T) {
	store := conversation.NewMemoryStore()
	h := newTestHandlers(store)

	c := finalSendContext("1")
	require.NoError(t, h.cbFinalSendToChannel(c))

	require.Len(t, c.responses, 1)
	assert.Equal(t, "Invalid state or caption not found.", c.responses[0].Text)
	assert.True(t, c.responses[0].ShowAlert)
	assert.Empty(t, c.sent)
}

func TestFinalSendWithoutCaptionAlerts(t *testing.T) {
	ctx := context.Background()
	store := conversation.NewMemoryStore()
	require.NoError(t, store.Set(ctx, testAdminID, conversation.StateConfirmChannelPost,
		conversation.Data{MusicID: 1}))

	h := newTestHandlers(store)
	c := finalSendContext("1")
	require.NoError(t, h.cbFinalSendToChannel(c))

	require.Len(t, c.responses, 1)
	assert.Equal(t, "Invalid state or caption not found.", c.responses[0].Text)
	assert.True(t, c.responses[0].ShowAlert)
	assert.Empty(t, c.sent)

	// The pending confirm step survives the rejected attempt.
	state, _, err := store.Get(ctx, testAdminID)
	require.NoError(t, err)
	assert.Equal(t, conversation.StateConfirmChannelPost, state)
}

func TestFinalSendMismatchedTrackAlerts(t *testing.T) {
	ctx := context.Background()
	store := conversation.NewMemoryStore()
	caption := "out now"
	require.NoError(t, store.Set(ctx, testAdminID, conversation.StateConfirmChannelPost,
		conversation.Data{MusicID: 2, ChannelCaption: &caption}))

	h := newTestHandlers(store)
	c := finalSendContext("1")
	require.NoError(t, h.cbFinalSendToChannel(c))

	require.Len(t, c.responses, 1)
	assert.Equal(t, "Invalid state or caption not found.", c.responses[0].Text)
	assert.Empty(t, c.sent)
}
