package bot

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/hdcinema/linkstream/preview"
	"github.com/hdcinema/linkstream/tool"
	"github.com/hdcinema/linkstream/types"
)

func previewKeyboard(sessionID string) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{
		InlineKeyboard: [][]tele.InlineButton{
			{
				{Text: "✅ Confirm", Data: actionConfirm + "#" + sessionID},
				{Text: "❌ Cancel", Data: actionCancel + "#" + sessionID},
			},
			{
				{Text: "🖼 Poster", Data: actionEdit + "#" + string(types.EditPoster) + "#" + sessionID},
				{Text: "📝 Details", Data: actionEdit + "#" + string(types.EditDetails) + "#" + sessionID},
				{Text: "✏️ Caption", Data: actionEdit + "#" + string(types.EditCaption) + "#" + sessionID},
			},
		},
	}
}

func storedMessage(s *types.PreviewSession) tele.StoredMessage {
	return tele.StoredMessage{
		MessageID: strconv.Itoa(s.PreviewMsgID),
		ChatID:    s.PreviewChatID,
	}
}

// RenderPreview (re)sends the draft to its owning admin, replacing any prior
// preview message so exactly one exists per session.
func (b *Bot) RenderPreview(s *types.PreviewSession) error {
	if s.PreviewMsgID != 0 {
		if err := b.tb.Delete(storedMessage(s)); err != nil {
			tool.DefaultLogger.Debugf("[Bot] Could not delete old preview %d: %v", s.PreviewMsgID, err)
		}
		s.PreviewMsgID = 0
	}

	to := tele.ChatID(s.AdminID)
	markup := previewKeyboard(s.ID)
	text := s.Caption + "\n\n🔗 " + s.DeepLink

	var msg *tele.Message
	var err error
	isPhoto := false
	if preview.ValidPosterURL(s.Poster) {
		photo := &tele.Photo{File: tele.FromURL(s.Poster), Caption: text}
		msg, err = b.tb.Send(to, photo, markup, tele.ModeHTML)
		isPhoto = err == nil
		if err != nil {
			tool.DefaultLogger.Warnf("[Bot] Photo preview failed for session %s, falling back to text: %v", s.ID, err)
		}
	}
	if msg == nil {
		msg, err = b.tb.Send(to, text, markup, tele.ModeHTML)
		if err != nil {
			return fmt.Errorf("sending preview: %w", err)
		}
	}

	s.PreviewMsgID = msg.ID
	s.PreviewChatID = msg.Chat.ID
	s.PreviewIsPhoto = isPhoto
	return nil
}

// DeletePreview removes the draft's preview message, if it still exists.
func (b *Bot) DeletePreview(s *types.PreviewSession) {
	if s.PreviewMsgID == 0 {
		return
	}
	if err := b.tb.Delete(storedMessage(s)); err != nil {
		tool.DefaultLogger.Debugf("[Bot] Could not delete preview %d: %v", s.PreviewMsgID, err)
	}
	s.PreviewMsgID = 0
}

// editPreview rewrites the preview message in place, dropping the action
// keyboard. Used for the posted / publish-failed terminal states.
func (b *Bot) editPreview(s *types.PreviewSession, text string) {
	if s == nil || s.PreviewMsgID == 0 {
		return
	}
	var err error
	if s.PreviewIsPhoto {
		_, err = b.tb.EditCaption(storedMessage(s), text, tele.ModeHTML)
	} else {
		_, err = b.tb.Edit(storedMessage(s), text, tele.ModeHTML)
	}
	if err != nil {
		tool.DefaultLogger.Warnf("[Bot] Could not edit preview %d: %v", s.PreviewMsgID, err)
	}
}

// Publish posts the draft to the redirect channel with a single deep-link
// button and returns the public URL of the new post.
func (b *Bot) Publish(s *types.PreviewSession) (string, error) {
	markup := &tele.ReplyMarkup{
		InlineKeyboard: [][]tele.InlineButton{
			{{Text: "📂 Get Files", URL: s.DeepLink}},
		},
	}
	to := tele.ChatID(b.cfg.RedirectChannel)

	var msg *tele.Message
	var err error
	if preview.ValidPosterURL(s.Poster) {
		photo := &tele.Photo{File: tele.FromURL(s.Poster), Caption: s.Caption}
		msg, err = b.tb.Send(to, photo, markup, tele.ModeHTML)
		if err != nil {
			tool.DefaultLogger.Warnf("[Bot] Photo publish failed for session %s, trying text: %v", s.ID, err)
		}
	}
	if msg == nil {
		msg, err = b.tb.Send(to, s.Caption, markup, tele.ModeHTML)
		if err != nil {
			return "", fmt.Errorf("sending channel post: %w", err)
		}
	}
	return messageURL(msg), nil
}

// messageURL builds the t.me link for a channel post.
func messageURL(m *tele.Message) string {
	if m.Chat.Username != "" {
		return fmt.Sprintf("https://t.me/%s/%d", m.Chat.Username, m.ID)
	}
	// Private channel: t.me/c/<internal id>/<message id>.
	internal := strings.TrimPrefix(strconv.FormatInt(m.Chat.ID, 10), "-100")
	return fmt.Sprintf("https://t.me/c/%s/%d", internal, m.ID)
}
