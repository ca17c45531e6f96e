package bot

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/hdcinema/linkstream/stream"
	"github.com/hdcinema/linkstream/tool"
)

const searchResultLimit = 10

// handleStart answers /start. A payload carrying the permanent-link prefix
// replays the stored query; anything else gets the greeting.
func (b *Bot) handleStart(c tele.Context) error {
	payload := strings.TrimSpace(c.Message().Payload)
	if !strings.HasPrefix(payload, deepLinkPrefix) {
		return c.Reply("Hi! Open a shared link to get your files, or search in the channel.")
	}

	linkID := strings.TrimPrefix(payload, deepLinkPrefix)
	query, ok := b.links.Lookup(linkID)
	if !ok {
		return c.Reply("This link is expired or invalid.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), tool.DefaultTimeout)
	defer cancel()

	records, err := b.idx.Search(ctx, query, searchResultLimit)
	if err != nil {
		tool.DefaultLogger.Errorf("[Bot] Replay search for link %s failed: %v", linkID, err)
		return c.Reply("Something went wrong. Try again later.")
	}
	if len(records) == 0 {
		return c.Reply("No files are currently available for this link.")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎬 <b>Results for %s</b>\n\n", query)
	for i, rec := range records {
		token := stream.EncodeToken(rec.ID)
		fmt.Fprintf(&sb, "%d. <a href=\"%swatch/%s\">%s</a> — %s\n",
			i+1, b.cfg.BaseURL, token, rec.FileName, tool.HumanSize(rec.FileSize))
	}
	return c.Reply(sb.String(), tele.ModeHTML, tele.NoPreview)
}
