package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	cases := []struct {
		data    string
		key     string
		payload string
	}{
		{"delete_music_42", "delete_music", "42"},
		{"listmusic_page_2_10", "listmusic_page", "2_10"},
		{"cancel_sendprocess_7_100_101", "cancel_sendprocess", "7_100_101"},
		{"request_chcaption", "request_chcaption", ""},
		{"menu", "menu", ""},
		{"  edit_title_5 ", "edit_title", "5"},
	}
	for _, tc := range cases {
		key, payload := ParseCallbackData(&tele.Callback{Data: tc.data})
		if key != tc.key || payload != tc.payload {
			t.Fatalf("ParseCallbackData(%q) = (%q, %q), want (%q, %q)", tc.data, key, payload, tc.key, tc.payload)
		}
	}
}

func TestParseCallbackDataNil(t *testing.T) {
	key, payload := ParseCallbackData(nil)
	if key != "" || payload != "" {
		t.Fatalf("expected empty results for nil callback")
	}
}
