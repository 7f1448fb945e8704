package router

import (
	"time"

	"github.com/bhushanhacker007/solar-burji-app/internal/config"
	"github.com/bhushanhacker007/solar-burji-app/internal/handler"
	"github.com/bhushanhacker007/solar-burji-app/internal/middleware"
	"github.com/bhushanhacker007/solar-burji-app/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRouter wires middleware, the three ledger endpoints and the public index.
func SetupRouter(cfg *config.Config, db *gorm.DB, log *zap.Logger) (*gin.Engine, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	now := func() time.Time { return time.Now().In(loc) }

	r := gin.New()
	r.Use(
		middleware.RequestLogger(log),
		gin.Recovery(),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	ledgers := store.NewLedgers(db, store.WithStrictNotFound(cfg.App.StrictNotFound))
	sales := handler.NewLedgerHandler(ledgers.Sales, handler.SalesEntity{}, now, log)
	borrowings := handler.NewLedgerHandler(ledgers.Borrowings, handler.BorrowingsEntity{}, now, log)
	solar := handler.NewLedgerHandler(ledgers.Solar, handler.SolarEntity{}, now, log)

	endpoints := []string{"/api/solar", "/api/sales", "/api/borrowings"}

	// 公开接口
	r.GET("/", handler.Index(endpoints))
	r.GET("/healthz", handler.Health(db))

	// 需要 API Key 的接口；每个账本一个路径，方法在 handler 内分发
	api := r.Group("/api", middleware.APIKeyMiddleware(cfg.Auth))
	api.Any("/sales", sales.Handle)
	api.Any("/borrowings", borrowings.Handle)
	api.Any("/solar", solar.Handle)

	// 兼容旧前端的 .php 路径
	legacy := r.Group("/backend/api", middleware.APIKeyMiddleware(cfg.Auth))
	legacy.Any("/sales.php", sales.Handle)
	legacy.Any("/borrowings.php", borrowings.Handle)
	legacy.Any("/solar.php", solar.Handle)

	return r, nil
}
