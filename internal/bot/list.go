package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"lyricbot/core/telegram/callbacks"
	tghelpers "lyricbot/core/telegram/helpers"
	"lyricbot/core/telegram/keyboard"
)

const defaultPerPage = 10

var allowedPerPage = []int{5, 10, 15, 20}

// clampPaging normalizes a (page, perPage) pair against the collection size.
func clampPaging(page, perPage, total int) (int, int, int) {
	valid := false
	for _, n := range allowedPerPage {
		if perPage == n {
			valid = true
			break
		}
	}
	if !valid {
		perPage = defaultPerPage
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, perPage, totalPages
}

// cmdList renders the first page of the track list.
func (h *Handlers) cmdList(c tele.Context) error {
	return h.renderList(c, 1, defaultPerPage, false)
}

// cbListPage serves listmusic_page_<page>_<perPage>.
func (h *Handlers) cbListPage(c tele.Context) error {
	page, perPage, err := callbacks.PayloadTwoInt(c)
	if err != nil {
		return alert(c, "Unknown operation.")
	}
	if err := h.renderList(c, page, perPage, true); err != nil {
		return alert(c, "Couldn't refresh the list: "+err.Error())
	}
	return ackCallback(c)
}

// cbListSetCount serves listmusic_setcount_<perPage>_<page>.
func (h *Handlers) cbListSetCount(c tele.Context) error {
	perPage, page, err := callbacks.PayloadTwoInt(c)
	if err != nil {
		return alert(c, "Unknown operation.")
	}
	if err := h.renderList(c, page, perPage, true); err != nil {
		return alert(c, "Couldn't refresh the list: "+err.Error())
	}
	return ackCallback(c)
}

// renderList recomputes and shows one page. Callback-triggered renders edit
// the list message in place, falling back to a fresh send.
func (h *Handlers) renderList(c tele.Context, page, perPage int, edit bool) error {
	ctx := tghelpers.BuildContext(c)

	total, err := h.repo.Count(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		if edit {
			if err := c.Edit("No tracks uploaded yet."); err != nil {
				return c.Send("No tracks uploaded yet.", mainMenu())
			}
			return nil
		}
		return c.Send("No tracks uploaded yet.", mainMenu())
	}

	page, perPage, totalPages := clampPaging(page, perPage, total)
	tracks, err := h.repo.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎵 Tracks — page %d of %d (%d total)\n\n", page, totalPages, total)
	for i, t := range tracks {
		fmt.Fprintf(&b, "%d. %s — %s\n/music_%s\n\n", (page-1)*perPage+i+1, t.Title, t.Artist, t.ShortCode)
	}

	markup := listKeyboard(page, perPage, totalPages)
	if edit {
		if err := c.Edit(b.String(), markup); err != nil {
			return c.Send(b.String(), markup)
		}
		return nil
	}
	return c.Send(b.String(), markup)
}

func listKeyboard(page, perPage, totalPages int) *tele.ReplyMarkup {
	var nav []keyboard.InlineBtn
	if page > 1 {
		nav = append(nav, keyboard.InlineBtn{
			Text: "⬅️ Prev",
			Data: fmt.Sprintf("listmusic_page_%d_%d", page-1, perPage),
		})
	}
	if page < totalPages {
		nav = append(nav, keyboard.InlineBtn{
			Text: "Next ➡️",
			Data: fmt.Sprintf("listmusic_page_%d_%d", page+1, perPage),
		})
	}

	counts := make([]keyboard.InlineBtn, 0, len(allowedPerPage))
	for _, n := range allowedPerPage {
		label := fmt.Sprintf("%d", n)
		if n == perPage {
			label = fmt.Sprintf("· %d ·", n)
		}
		counts = append(counts, keyboard.InlineBtn{
			Text: label,
			Data: fmt.Sprintf("listmusic_setcount_%d_%d", n, page),
		})
	}

	if len(nav) > 0 {
		return keyboard.InlineButtonsRows(nav, counts)
	}
	return keyboard.InlineButtonsRows(counts)
}
