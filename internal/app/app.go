package app

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/cache"
	transport "github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/http"
	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/http/handlers"
	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/repository"
	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/service"
)

type Config struct {
	SchedulerBaseURL     string
	IdentityBaseURL      string
	SlotCacheTTL         time.Duration
	SnapshotRefreshAfter time.Duration
}

type App struct {
	handler     http.Handler
	viewService *service.ViewService
}

func New(db *sql.DB, redisClient *redis.Client, cfg Config, logger *log.Logger) *App {
	txManager := repository.NewPostgresTxManager(db)
	schedulerClient := service.NewSchedulerHTTPClient(cfg.SchedulerBaseURL, service.DefaultSchedulerHTTPClient())
	identityClient := service.NewIdentityHTTPClient(cfg.IdentityBaseURL, service.DefaultIdentityHTTPClient())

	var slotCache service.SlotCache
	if redisClient != nil {
		slotCache = cache.NewRedisSlotCache(redisClient, cfg.SlotCacheTTL, logger)
	}

	viewService := service.NewViewService(txManager, schedulerClient, identityClient, slotCache, cfg.SnapshotRefreshAfter, logger)

	viewHandler := handlers.NewViewHandler(viewService)
	router := transport.NewRouter(viewHandler)

	return &App{handler: router.Handler(), viewService: viewService}
}

func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) RefreshStaleSnapshots(ctx context.Context, now time.Time) error {
	return a.viewService.RefreshStaleSnapshots(ctx, now)
}
