package bot

import (
	"errors"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/hdcinema/linkstream/preview"
	"github.com/hdcinema/linkstream/tool"
	"github.com/hdcinema/linkstream/types"
)

// Callback actions are "#"-delimited: confirm_post#<id>, cancel_post#<id>,
// edit_post#<field>#<id>.
const (
	actionConfirm = "confirm_post"
	actionCancel  = "cancel_post"
	actionEdit    = "edit_post"
)

func (b *Bot) handleCallback(c tele.Context) error {
	cb := c.Callback()
	if cb == nil {
		return nil
	}
	data := strings.TrimPrefix(cb.Data, "\f")
	parts := strings.Split(data, "#")

	switch parts[0] {
	case actionConfirm:
		if len(parts) != 2 {
			return nil
		}
		return b.onConfirm(c, parts[1])
	case actionCancel:
		if len(parts) != 2 {
			return nil
		}
		return b.onCancel(c, parts[1])
	case actionEdit:
		if len(parts) != 3 {
			return nil
		}
		return b.onEdit(c, types.EditField(parts[1]), parts[2])
	default:
		// Not one of ours; some other integration may claim it.
		return nil
	}
}

func (b *Bot) onConfirm(c tele.Context, sessionID string) error {
	s, postURL, err := b.flow.Confirm(sessionID, senderID(c))
	switch {
	case errors.Is(err, preview.ErrExpired):
		return c.Respond(&tele.CallbackResponse{Text: "This draft is expired or invalid.", ShowAlert: true})
	case errors.Is(err, preview.ErrForbidden):
		return c.Respond(&tele.CallbackResponse{Text: "This is not your draft.", ShowAlert: true})
	case errors.Is(err, preview.ErrPublish):
		tool.DefaultLogger.Errorf("[Bot] Publish failed for session %s: %v", sessionID, err)
		b.editPreview(s, "❌ Publishing failed. The draft has been discarded, re-run /link to retry.")
		return c.Respond(&tele.CallbackResponse{Text: "Publish failed."})
	case err != nil:
		tool.DefaultLogger.Errorf("[Bot] Confirm failed for session %s: %v", sessionID, err)
		return c.Respond(&tele.CallbackResponse{Text: "Something went wrong."})
	}

	b.editPreview(s, "✅ Posted!\n\n"+postURL)
	return c.Respond(&tele.CallbackResponse{Text: "Posted to channel."})
}

func (b *Bot) onCancel(c tele.Context, sessionID string) error {
	_, err := b.flow.Cancel(sessionID, senderID(c))
	switch {
	case errors.Is(err, preview.ErrExpired):
		return c.Respond(&tele.CallbackResponse{Text: "This draft is expired or invalid.", ShowAlert: true})
	case errors.Is(err, preview.ErrForbidden):
		return c.Respond(&tele.CallbackResponse{Text: "This is not your draft.", ShowAlert: true})
	case err != nil:
		return c.Respond(&tele.CallbackResponse{Text: "Something went wrong."})
	}
	return c.Respond(&tele.CallbackResponse{Text: "Draft discarded."})
}

func (b *Bot) onEdit(c tele.Context, field types.EditField, sessionID string) error {
	err := b.flow.BeginEdit(sessionID, senderID(c), field)
	switch {
	case errors.Is(err, preview.ErrExpired):
		return c.Respond(&tele.CallbackResponse{Text: "This draft is expired or invalid.", ShowAlert: true})
	case errors.Is(err, preview.ErrForbidden):
		return c.Respond(&tele.CallbackResponse{Text: "This is not your draft.", ShowAlert: true})
	case err != nil:
		return c.Respond(&tele.CallbackResponse{Text: "Something went wrong."})
	}

	var prompt string
	switch field {
	case types.EditPoster:
		prompt = "Send the new poster image URL."
	case types.EditDetails:
		prompt = "Send the new details as:\n<code>Title | Year | Rating | Genre | Runtime</code>"
	case types.EditCaption:
		prompt = "Send the new caption text."
	}
	if err := c.Send(prompt, tele.ModeHTML); err != nil {
		tool.DefaultLogger.Warnf("[Bot] Failed to send edit prompt: %v", err)
	}
	return c.Respond(&tele.CallbackResponse{})
}
