package keyboard

import tele "gopkg.in/telebot.v4"

// InlineBtn describes an inline button carrying raw callback data or a URL.
// Data is attached verbatim, without telebot's unique-prefix encoding, so
// callback payloads keep the plain underscore grammar on the wire.
type InlineBtn struct {
	Text string
	Data string
	URL  string
}

const defaultCancelButtonText = "❌ Cancel"

// RemoveKeyboard returns a markup that hides the keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// ReplyButtons builds a reply keyboard from rows of text.
func ReplyButtons(rows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	var keyboard []tele.Row
	for _, row := range rows {
		var buttons []tele.Btn
		for _, label := range row {
			buttons = append(buttons, markup.Text(label))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}

func toInline(btn InlineBtn) tele.InlineButton {
	return tele.InlineButton{Text: btn.Text, Data: btn.Data, URL: btn.URL}
}

// InlineButtons builds an inline keyboard where each provided button is placed on its own row.
func InlineButtons(buttons []InlineBtn) *tele.ReplyMarkup {
	rows := make([][]InlineBtn, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []InlineBtn{b})
	}
	return InlineButtonsRows(rows...)
}

// InlineButtonsRows builds an inline keyboard from rows of InlineBtn.
func InlineButtonsRows(rows ...[]InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			r[j] = toInline(btn)
		}
		inline[i] = r
	}
	markup.InlineKeyboard = inline
	return markup
}

// CancelButton returns a reusable cancel inline button with raw callback data.
// The optional second argument overrides the button label.
func CancelButton(data string, label ...string) InlineBtn {
	text := defaultCancelButtonText
	if len(label) > 0 && label[0] != "" {
		text = label[0]
	}
	return InlineBtn{Text: text, Data: data}
}

// SingleCancelMarkup creates an inline keyboard with a single cancel button.
func SingleCancelMarkup(data string, label ...string) *tele.ReplyMarkup {
	return InlineButtons([]InlineBtn{CancelButton(data, label...)})
}
