package bot

import (
	"context"
	"errors"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/hdcinema/linkstream/preview"
	"github.com/hdcinema/linkstream/tool"
)

// handleLink starts the preview/confirm flow for a free-text query.
// Admin-only; others are ignored without a reply.
func (b *Bot) handleLink(c tele.Context) error {
	sender := c.Sender()
	if sender == nil || !b.isAdmin(sender.ID) {
		tool.DefaultLogger.Debugf("[Bot] /link from non-admin %d ignored", senderID(c))
		return nil
	}

	query := strings.TrimSpace(c.Message().Payload)
	if query == "" {
		return c.Reply("<b>Please provide a name for the movie!</b>\n\nExample: <code>/link game of thrones</code>", tele.ModeHTML)
	}

	ctx, cancel := context.WithTimeout(context.Background(), tool.DefaultTimeout)
	defer cancel()

	s, err := b.flow.CreateDraft(ctx, sender.ID, query)
	if err != nil {
		if errors.Is(err, preview.ErrNoFiles) {
			return c.Reply("No files found for that query. Nothing to link.")
		}
		tool.DefaultLogger.Errorf("[Bot] CreateDraft failed for %q: %v", query, err)
		return c.Reply("Something went wrong while creating the draft. Try again later.")
	}

	tool.DefaultLogger.Infof("[Bot] Draft %s created by admin %d for %q", s.ID, sender.ID, query)
	return nil
}

func senderID(c tele.Context) int64 {
	if s := c.Sender(); s != nil {
		return s.ID
	}
	return 0
}
