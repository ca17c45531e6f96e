// Package bot is the Telegram transport: admin commands, callback routing,
// preview rendering, channel publishing and remote media retrieval.
package bot

import (
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/hdcinema/linkstream/index"
	"github.com/hdcinema/linkstream/linkstore"
	"github.com/hdcinema/linkstream/preview"
	"github.com/hdcinema/linkstream/tool"
	"github.com/hdcinema/linkstream/types"
)

// deepLinkPrefix tags /start payloads that replay a stored query.
const deepLinkPrefix = "getfile-"

type Bot struct {
	tb    *tele.Bot
	cfg   *types.AppConfig
	idx   index.Index
	links *linkstore.Store
	flow  *preview.Flow
}

func New(cfg *types.AppConfig, idx index.Index, links *linkstore.Store) (*Bot, error) {
	tb, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			tool.DefaultLogger.Errorf("[Bot] Handler error: %v", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to Telegram: %w", err)
	}
	return &Bot{tb: tb, cfg: cfg, idx: idx, links: links}, nil
}

// AttachFlow wires the preview flow and registers all handlers. Separate from
// New because the flow itself needs the bot as renderer and publisher.
func (b *Bot) AttachFlow(flow *preview.Flow) {
	b.flow = flow

	b.tb.Handle("/start", b.handleStart)
	b.tb.Handle("/link", b.handleLink)
	b.tb.Handle(tele.OnCallback, b.handleCallback)
	b.tb.Handle(tele.OnText, b.handleText)
}

// Start blocks on long polling.
func (b *Bot) Start() {
	tool.DefaultLogger.Infof("[Bot] Started as @%s", b.tb.Me.Username)
	b.tb.Start()
}

func (b *Bot) Stop() {
	b.tb.Stop()
}

// Username returns the bot's own username, used for deep-link construction.
func (b *Bot) Username() string {
	return b.tb.Me.Username
}

// DeepLink builds the public bot-entry URL for a permanent link id.
func (b *Bot) DeepLink(linkID string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s%s", b.tb.Me.Username, deepLinkPrefix, linkID)
}

func (b *Bot) isAdmin(id int64) bool {
	for _, admin := range b.cfg.Admins {
		if admin == id {
			return true
		}
	}
	return false
}

// AnnounceStartup posts a restart notice to the log channel. Best effort.
func (b *Bot) AnnounceStartup() {
	if b.cfg.LogChannel == 0 {
		return
	}
	text := fmt.Sprintf("<b>@%s is now online! 🤖</b>\n%s", b.tb.Me.Username, time.Now().Format("2006-01-02 15:04:05"))
	if _, err := b.tb.Send(tele.ChatID(b.cfg.LogChannel), text, tele.ModeHTML); err != nil {
		tool.DefaultLogger.Warnf("[Bot] Could not send startup message to log channel: %v", err)
	}
}
