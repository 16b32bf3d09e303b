package app

import (
	"context"
	"fmt"
	"time"

	"Gin_postgres_redis_lend_tool/config"
	"Gin_postgres_redis_lend_tool/db"
	"Gin_postgres_redis_lend_tool/service"
	"Gin_postgres_redis_lend_tool/session"
	"Gin_postgres_redis_lend_tool/templates"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Short aliases for handlers.
type Ctx = gin.Context
type H = gin.H

// App holds every dependency. Nothing here is global; tests build their own.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config *config.Config
	Log    zerolog.Logger

	Repo      *db.Repo
	Inventory *service.InventoryService
	Loans     *service.LoanService
	Auth      *service.AuthService

	appSess *session.AppSessionStore
	flash   *session.FlashStore
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

// New wires services over an open database and redis client.
func New(cfg *config.Config, conn *gorm.DB, rdb *redis.Client, log zerolog.Logger) (*App, error) {
	tmpl, err := templates.Parse()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))
	useCORS(r, cfg.WebOrigin)
	r.SetHTMLTemplate(tmpl)

	repo := db.NewRepo(conn)
	a := &App{
		Router: r, DB: conn, RDB: rdb, Config: cfg, Log: log,
		Repo:      repo,
		Inventory: service.NewInventoryService(repo),
		Loans:     service.NewLoanService(repo, !cfg.Anonymous()),
		Auth:      service.NewAuthService(repo, cfg.AdminUsernames, log),
		appSess:   session.NewAppSessionStore(rdb, cfg.SessionTTL),
		flash:     session.NewFlashStore(rdb, cfg.FlashTTL),
	}
	return a, nil
}

// MustNew connects to the configured database and redis, exiting on failure.
func MustNew(cfg *config.Config, log zerolog.Logger) *App {
	conn, err := db.Connect(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis")
	}

	a, err := New(cfg, conn, rdb, log)
	if err != nil {
		log.Fatal().Err(err).Msg("app")
	}
	return a
}

func (a *App) Close() {
	_ = a.RDB.Close()
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
