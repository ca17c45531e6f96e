package bot

import (
	"errors"

	tele "gopkg.in/telebot.v3"

	"github.com/hdcinema/linkstream/preview"
	"github.com/hdcinema/linkstream/types"
)

// handleText routes an inbound private text message. The flow's own state
// lookup decides whether the message is a pending edit payload; unclaimed
// messages are left alone.
func (b *Bot) handleText(c tele.Context) error {
	if c.Chat() == nil || c.Chat().Type != tele.ChatPrivate {
		return nil
	}
	sender := senderID(c)
	st, claimed := b.flow.ClaimsText(sender)
	if !claimed {
		return nil
	}

	_, warning, err := b.flow.ApplyEdit(sender, c.Text())
	switch {
	case errors.Is(err, preview.ErrBadPoster):
		return c.Reply("That doesn't look like an image URL. Send an http(s) link ending in .jpg/.jpeg/.png/.webp, or from a known image host.")
	case errors.Is(err, preview.ErrBadDetails):
		return c.Reply("Wrong format. Send exactly five pipe-separated fields:\n<code>Title | Year | Rating | Genre | Runtime</code>", tele.ModeHTML)
	case errors.Is(err, preview.ErrExpired):
		return c.Reply("This draft is expired or invalid.")
	case errors.Is(err, preview.ErrNoEdit):
		return nil
	case err != nil:
		return c.Reply("Something went wrong while applying the edit.")
	}

	reply := "Updated."
	if st.Field == types.EditDetails && warning != "" {
		reply = "Updated, but " + warning + "."
	}
	return c.Reply(reply)
}
