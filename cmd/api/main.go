package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/auth"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/cache"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/cart"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/config"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/database"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/handlers"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/likes"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/logger"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/repository"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/routes"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/session"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/site"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	appLog, err := logger.Init(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	if appLog.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	mainLog := logger.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var backend repository.DocumentStore
	switch cfg.StoreMode {
	case config.StoreMongo:
		client, err := database.Connect(ctx, cfg.MongoURI)
		if err != nil {
			mainLog.WithError(err).Fatal("database")
		}
		defer database.Close(client)

		mongoStore := repository.NewMongoStore(client.Database(cfg.MongoDB), cfg.BackendTimeout)
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			mainLog.WithError(err).Warn("could not create indexes")
		}
		backend = mongoStore
	default:
		mainLog.Warn("using the in-memory store, data is lost on restart")
		backend = repository.NewMemoryStore()
	}

	siteCache := cache.New(cfg.SiteCacheTTL, 0)
	defer siteCache.Close()
	tabs := cache.New(cfg.SessionTTL, time.Minute)
	defer tabs.Close()

	loader := site.NewLoader(backend, siteCache, cfg.SiteCacheTTL, logger.WithComponent("site"))
	registry := session.NewRegistry(tabs, session.Shared{
		Loader:  loader,
		Backend: backend,
		Auth:    auth.NewService(backend, cfg.JWTSecret, cfg.TokenTTL, logger.WithComponent("auth")),
		Cart:    cart.NewService(backend, logger.WithComponent("cart")),
		Likes:   likes.NewTracker(backend, logger.WithComponent("likes")),
		Log:     logger.WithComponent("session"),
	})

	router := routes.SetupRouter(handlers.New(registry, loader, logger.WithComponent("http")), cfg.CORSOrigins)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		mainLog.WithField("port", cfg.Port).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			mainLog.WithError(err).Fatal("server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		mainLog.WithError(err).Error("shutdown")
	}
	mainLog.Info("server stopped")
}
