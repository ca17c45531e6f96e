package api

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hdcinema/linkstream/api/controllers"
	"github.com/hdcinema/linkstream/api/middlewares"
	"github.com/hdcinema/linkstream/linkstore"
	"github.com/hdcinema/linkstream/stream"
	"github.com/hdcinema/linkstream/tool"
	"github.com/hdcinema/linkstream/types"
)

// Server is the public HTTP surface: liveness, watch pages, media streaming,
// QR codes and metrics.
type Server struct {
	cfg         *types.AppConfig
	gateway     *stream.Gateway
	links       *linkstore.Store
	botUsername string

	engine *gin.Engine
	server *http.Server
	mu     sync.RWMutex
}

func NewServer(cfg *types.AppConfig, gateway *stream.Gateway, links *linkstore.Store, botUsername string) *Server {
	return &Server{
		cfg:         cfg,
		gateway:     gateway,
		links:       links,
		botUsername: botUsername,
	}
}

func (s *Server) setupRoutes() *gin.Engine {
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()
	engine.Use(gin.Recovery())

	root := controllers.NewRootController()
	watch := controllers.NewWatchController(s.gateway, s.cfg.BaseURL)
	download := controllers.NewStreamController(s.gateway)
	qr := controllers.NewQRController(s.links, s.botUsername)

	engine.GET("/", root.HandleRoot)
	engine.GET("/health", root.HandleHealth)
	engine.GET("/watch/:token", watch.HandleWatch)
	engine.GET("/dl/:token", middlewares.PerIPRateLimit(s.cfg.DownloadRPS, s.cfg.DownloadBurst), download.HandleStream)
	engine.GET("/qr/:id", qr.HandleQRCode)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return engine
}

// Start starts the HTTP server and blocks.
func (s *Server) Start() error {
	engine := s.setupRoutes()

	s.mu.Lock()
	s.engine = engine
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: engine,
	}
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Starting API server on http://0.0.0.0:%d", s.cfg.Port)
	return s.server.ListenAndServe()
}
