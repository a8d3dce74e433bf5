package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback action keys. The wire format is verb_noun[_arg...] with decimal
// integer arguments, so the key is always the first two underscore tokens.
const (
	ActionDeleteMusic        = "delete_music"
	ActionConfirmDeleteMusic = "confirmdelete_music"
	ActionCancelDeleteMusic  = "canceldelete_music"

	ActionEditFile         = "edit_file"
	ActionCancelEditFile   = "canceledit_file"
	ActionEditLyrics       = "edit_lyrics"
	ActionCancelEditLyrics = "canceledit_lyrics"
	ActionEditArtist       = "edit_artist"
	ActionCancelEditArtist = "canceledit_artist"
	ActionEditTitle        = "edit_title"
	ActionCancelEditTitle  = "canceledit_title"

	ActionRequestChannelCaption = "request_chcaption"
	ActionCancelChannelCaption  = "cancel_chcaption"
	ActionRetryChannelCaption   = "retry_chcaption"
	ActionFinalSendToChannel    = "finalsend_tocanal"
	ActionCancelSendProcess     = "cancel_sendprocess"

	ActionListPage     = "listmusic_page"
	ActionListSetCount = "listmusic_setcount"
)

// Action is a decoded callback token.
type Action struct {
	Key  string
	Args []int64
}

// Arg returns the i-th positional argument, or 0 when absent.
func (a Action) Arg(i int) int64 {
	if i < 0 || i >= len(a.Args) {
		return 0
	}
	return a.Args[i]
}

// ParseAction decodes underscore-grammar callback data into an Action.
// Tokens after the verb_noun key must be decimal integers.
func ParseAction(data string) (Action, error) {
	tokens := strings.Split(strings.TrimSpace(data), "_")
	if len(tokens) < 2 || tokens[0] == "" || tokens[1] == "" {
		return Action{}, fmt.Errorf("malformed callback data %q", data)
	}
	action := Action{Key: tokens[0] + "_" + tokens[1]}
	for _, tok := range tokens[2:] {
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return Action{}, fmt.Errorf("non-numeric callback argument %q in %q", tok, data)
		}
		action.Args = append(action.Args, n)
	}
	return action, nil
}
