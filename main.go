package main

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hdcinema/linkstream/api"
	"github.com/hdcinema/linkstream/bot"
	"github.com/hdcinema/linkstream/index"
	"github.com/hdcinema/linkstream/linkstore"
	"github.com/hdcinema/linkstream/meta"
	"github.com/hdcinema/linkstream/preview"
	"github.com/hdcinema/linkstream/stream"
	"github.com/hdcinema/linkstream/tool"
)

const sweepInterval = 5 * time.Minute

func main() {
	cfg := tool.SetFlags()
	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
	if cfg.UsePort > 0 {
		appCfg.Port = cfg.UsePort
	}
	if cfg.UseBaseURL != "" {
		appCfg.BaseURL = cfg.UseBaseURL
		if !strings.HasSuffix(appCfg.BaseURL, "/") {
			appCfg.BaseURL += "/"
		}
	}
	if cfg.UseLinkFile != "" {
		appCfg.LinkFile = cfg.UseLinkFile
	}

	tool.InitLogger()
	switch strings.ToLower(cfg.Log) {
	case "", "dev":
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	case "prod":
		tool.DefaultLogger.SetLevel(log.InfoLevel)
	case "none":
		tool.DefaultLogger.SetLevel(log.FatalLevel)
	default:
		tool.DefaultLogger.Warnf("Unknown log mode %q, using debug level", cfg.Log)
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	}

	if appCfg.BotToken == "" {
		tool.DefaultLogger.Fatalf("botToken is empty, fill in %s first", tool.ConfigPath)
	}

	// Permanent link table.
	links, err := linkstore.Open(appCfg.LinkFile)
	if err != nil {
		tool.DefaultLogger.Fatalf("Failed to open link store: %v", err)
	}
	defer links.Close()
	tool.DefaultLogger.Infof("Loaded %d permanent links from %s", links.Len(), appCfg.LinkFile)

	// File index database.
	db, err := index.Open(appCfg.DatabaseDSN)
	if err != nil {
		tool.DefaultLogger.Fatalf("Failed to connect to file database: %v", err)
	}
	defer db.Close()
	idx := index.NewPostgres(db)
	if err := idx.EnsureSchema(context.Background()); err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}

	// Metadata enrichment is optional: without an API key drafts stay minimal.
	var enricher preview.Enricher
	if appCfg.OMDbAPIKey != "" {
		enricher = meta.NewClient(appCfg.OMDbAPIKey)
	} else {
		tool.DefaultLogger.Warn("No OMDb API key configured, drafts will not be enriched")
	}

	// Telegram bot and preview flow.
	tgBot, err := bot.New(&appCfg, idx, links)
	if err != nil {
		tool.DefaultLogger.Fatalf("Bot startup failed: %v", err)
	}

	store := preview.NewMemoryStore()
	flow := preview.NewFlow(store, idx, enricher, links, tgBot, tgBot, tgBot.DeepLink)
	tgBot.AttachFlow(flow)

	stopSweeper := make(chan struct{})
	defer close(stopSweeper)
	go preview.RunSweeper(store,
		sweepInterval,
		time.Duration(appCfg.SessionTTLMin)*time.Minute,
		time.Duration(appCfg.EditTTLMin)*time.Minute,
		stopSweeper)

	// Streaming gateway over the bot's media transport.
	gateway := stream.NewGateway(idx, tgBot.ChunkSource())

	apiServer := api.NewServer(&appCfg, gateway, links, tgBot.Username())
	go func() {
		if err := apiServer.Start(); err != nil {
			tool.DefaultLogger.Fatalf("API server startup failed: %v", err)
		}
	}()

	tgBot.AnnounceStartup()
	tgBot.Start()
}
