package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// ParseCallbackData splits underscore-grammar data verb_noun[_arg...] into
// the two-token action key and the raw argument payload.
func ParseCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	raw := strings.TrimSpace(cb.Data)
	parts := strings.SplitN(raw, "_", 3)
	if len(parts) < 2 {
		return raw, ""
	}
	payload := ""
	if len(parts) == 3 {
		payload = parts[2]
	}
	return parts[0] + "_" + parts[1], payload
}

// CallbackKey returns the action key parsed from callback data.
func CallbackKey(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	k, _ := ParseCallbackData(cb)
	return k
}

// CallbackPayload returns the argument payload following the action key.
// The callback route stores it under "cb_args"; parsing from raw data is
// the fallback for handlers invoked outside the route.
func CallbackPayload(c tele.Context) string {
	if v := c.Get("cb_args"); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	_, payload := ParseCallbackData(cb)
	return payload
}
