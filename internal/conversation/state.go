package conversation

import "errors"

// State identifies a pending conversation step for an admin.
type State string

const (
	// StateIdle indicates there is no active conversation with the admin.
	StateIdle State = "idle"

	StateWaitingForMusicFile      State = "waitingForMusicFile"
	StateWaitingForLyrics         State = "waitingForLyrics"
	StateWaitingForNewLyrics      State = "waitingForNewLyrics"
	StateWaitingForNewFile        State = "waitingForNewFile"
	StateWaitingForArtistName     State = "waitingForArtistName"
	StateWaitingForTitleName      State = "waitingForTitleName"
	StateWaitingForChannelCaption State = "waitingForChannelCaption"
	StateConfirmChannelPost       State = "confirmChannelPost"
)

// InputKind describes what message content a state consumes.
type InputKind int

const (
	// InputNone marks states that consume no message (callback driven).
	InputNone InputKind = iota
	// InputText marks states fed by a plain text message.
	InputText
	// InputAudio marks states fed by an audio upload.
	InputAudio
)

var expectedInput = map[State]InputKind{
	StateWaitingForMusicFile:      InputAudio,
	StateWaitingForNewFile:        InputAudio,
	StateWaitingForLyrics:         InputText,
	StateWaitingForNewLyrics:      InputText,
	StateWaitingForArtistName:     InputText,
	StateWaitingForTitleName:      InputText,
	StateWaitingForChannelCaption: InputText,
	StateConfirmChannelPost:       InputNone,
}

// ExpectedInput returns the input kind a state consumes. Unknown states
// report InputNone so the engine falls through to its reset branch.
func (s State) ExpectedInput() InputKind {
	return expectedInput[s]
}

// Known reports whether s is one of the defined conversation states.
func (s State) Known() bool {
	if s == StateIdle {
		return true
	}
	_, ok := expectedInput[s]
	return ok
}

// Data is the payload carried across conversation steps. Handlers read the
// fields their state requires and treat zero values as absent.
type Data struct {
	MusicID                        int64   `json:"music_id,omitempty"`
	PromptMessageID                int     `json:"prompt_message_id,omitempty"`
	OriginalPreviewMessageID       int     `json:"original_preview_message_id,omitempty"`
	CaptionPromptMessageID         int     `json:"caption_prompt_message_id,omitempty"`
	ChannelCaption                 *string `json:"channel_caption,omitempty"`
	CaptionConfirmPreviewMessageID int     `json:"caption_confirm_preview_message_id,omitempty"`
}

// ErrNoState is returned by Store.Get when the admin has no stored state.
var ErrNoState = errors.New("conversation: no state for admin")
