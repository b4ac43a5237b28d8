package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/killianmoore/web/common"
	"github.com/killianmoore/web/config"
	"github.com/killianmoore/web/contact"
	"github.com/killianmoore/web/directory"
	"github.com/killianmoore/web/exports"
	"github.com/killianmoore/web/frontpages"
	"github.com/killianmoore/web/imports"
	"github.com/killianmoore/web/nfts"
	"github.com/killianmoore/web/photos"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds everything the router needs
type app struct {
	cfg    *config.Config
	db     *gorm.DB
	log    *zap.Logger
	pages  frontpages.Pages
	gate   *common.LabGate
	sender contact.Sender
}

func newApp(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *app {
	content := cfg.Content

	var sender contact.Sender
	if cfg.Contact.APIKey != "" {
		sender = &contact.ResendClient{
			Endpoint:   cfg.Contact.Endpoint,
			APIKey:     cfg.Contact.APIKey,
			HTTPClient: &http.Client{Timeout: cfg.Contact.Timeout},
		}
	}

	return &app{
		cfg:    cfg,
		db:     db,
		log:    logger,
		pages:  frontpages.Load(content.Resolve(content.FrontPages), logger),
		gate:   common.NewLabGate(cfg.Lab.Key, cfg.Lab.KeyHash, cfg.Lab.TokenSecret, cfg.Lab.TokenTTL),
		sender: sender,
	}
}

func (a *app) router() *gin.Engine {
	content := a.cfg.Content

	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(gin.Recovery(), common.MetricsMiddleware(a.db, a.log))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	source := &directory.Source{
		MembersPath: content.Resolve(content.MembersCSV),
		VendorsPath: content.Resolve(content.VendorsCSV),
		Strict:      a.cfg.Lab.StrictHeaders,
		Log:         a.log,
	}

	// Directory lab, behind the shared key
	r.POST("/api/pd/session", a.gate.CreateSession)
	lab := r.Group("/api/pd", a.gate.Middleware())
	(&directory.Handler{Source: source, Log: a.log}).RegisterRoutes(lab)
	(&exports.Handler{Source: source, Pages: a.pages, DB: a.db, Log: a.log}).RegisterRoutes(lab)
	lab.GET("/front-pages", frontpages.ListPages(a.pages))
	imports.RegisterRoutes(lab)

	curated := content.CuratedOrder
	if len(curated) == 0 {
		curated = photos.DefaultCuratedOrder
	}
	gallery := &photos.Gallery{
		PublicDir:  content.Resolve(content.PublicDir),
		SeriesPath: content.Resolve(content.PhotoSeries),
		Curated:    curated,
		Log:        a.log,
	}
	(&photos.Handler{Gallery: gallery, Log: a.log}).RegisterRoutes(r.Group("/api/photos"))

	contactHandler := &contact.Handler{
		Sender:    a.sender,
		ToEmail:   a.cfg.Contact.ToEmail,
		FromEmail: a.cfg.Contact.FromEmail,
		Timeout:   a.cfg.Contact.Timeout,
		Log:       a.log,
	}
	r.POST("/api/contact", contactHandler.Submit)

	nftHandler := &nfts.Handler{
		Fetcher: &nfts.Client{
			BaseURL:         a.cfg.NFT.BaseURL,
			APIKey:          a.cfg.NFT.APIKey,
			Networks:        a.cfg.NFT.Networks,
			ContractTimeout: a.cfg.NFT.ContractTimeout,
			TokenURITimeout: a.cfg.NFT.TokenURITimeout,
			Log:             a.log,
		},
		Contracts:       a.cfg.NFT.Contracts,
		CollectionsPath: content.Resolve(content.NFTs),
		Timeout:         a.cfg.NFT.FeedTimeout,
		Log:             a.log,
	}
	r.GET("/api/nfts", nftHandler.ListNFTs)

	return r
}

func openDatabase(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	return common.Init(path)
}

func main() {
	cfg, source, err := config.LoadWithSource()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := common.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("configuration loaded", zap.String("source", source))

	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := openDatabase(cfg.Database.Path)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}

	// Ensure database connection is closed on exit
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("get sql.DB", zap.Error(err))
	} else {
		defer sqlDB.Close()
	}

	a := newApp(cfg, db, logger)
	if !a.gate.Enabled() {
		logger.Warn("PD_LAB_KEY is not set, the directory lab is locked")
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      a.router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
