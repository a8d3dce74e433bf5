package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionKeyOnly(t *testing.T) {
	a, err := ParseAction("request_chcaption")
	require.NoError(t, err)
	assert.Equal(t, ActionRequestChannelCaption, a.Key)
	assert.Empty(t, a.Args)
}

func TestParseActionSingleArg(t *testing.T) {
	a, err := ParseAction("delete_music_42")
	require.NoError(t, err)
	assert.Equal(t, ActionDeleteMusic, a.Key)
	assert.Equal(t, []int64{42}, a.Args)
}

func TestParseActionThreeArgs(t *testing.T) {
	a, err := ParseAction("cancel_sendprocess_7_100_101")
	require.NoError(t, err)
	assert.Equal(t, ActionCancelSendProcess, a.Key)
	assert.Equal(t, []int64{7, 100, 101}, a.Args)
	assert.Equal(t, int64(100), a.Arg(1))
}

func TestParseActionArgOutOfRange(t *testing.T) {
	a, err := ParseAction("edit_lyrics_9")
	require.NoError(t, err)
	assert.Equal(t, int64(0), a.Arg(5))
	assert.Equal(t, int64(0), a.Arg(-1))
}

func TestParseActionRejectsMalformed(t *testing.T) {
	for _, data := range []string{"", "delete", "_music", "delete_", "delete_music_abc", "listmusic_page_1_x"} {
		_, err := ParseAction(data)
		assert.Error(t, err, "data=%q", data)
	}
}
