package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	tele "gopkg.in/telebot.v4"

	appconfig "lyricbot/config"
	"lyricbot/core/bootstrap"
	corecmd "lyricbot/core/cmd"
	tg "lyricbot/core/telegram"
	"lyricbot/core/telegram/router"
	"lyricbot/internal/bot"
	"lyricbot/internal/conversation"
	"lyricbot/internal/music"
)

// redisStateTTL bounds how long an abandoned conversation survives in Redis.
const redisStateTTL = 24 * time.Hour

// App carries the bot's wired components through the runtime lifecycle.
type App struct {
	cfg      *appconfig.Config
	db       *sqlx.DB
	rdb      *redis.Client
	registry *tg.Registry
	handlers *bot.Handlers
}

// Bootstrap initializes infrastructure (logger, database, migrations),
// builds the state store and repositories, and wires all handlers.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*appconfig.Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, db: res.DB}

	store, err := a.buildStateStore()
	if err != nil {
		_ = res.DB.Close()
		return nil, err
	}

	repo := music.NewRepository(res.DB)
	a.handlers = bot.New(cfg, repo, store)

	a.registry = tg.NewRegistry()
	a.handlers.Register(a.registry)

	return a, nil
}

func (a *App) buildStateStore() (conversation.Store, error) {
	switch a.cfg.State.Backend {
	case appconfig.StateBackendMemory:
		return conversation.NewMemoryStore(), nil
	case appconfig.StateBackendRedis:
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     a.cfg.State.Redis.Addr,
			Password: a.cfg.State.Redis.Password,
			DB:       a.cfg.State.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("app: redis ping failed: %w", err)
		}
		return conversation.NewRedisStore(a.rdb, redisStateTTL), nil
	default:
		return conversation.NewPostgresStore(a.db), nil
	}
}

// TelegramRunOptions assembles the bot runtime: middleware chain, command
// routes, the callback route, and the FSM-aware message routes.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminIDs: a.cfg.Core.Telegram.AdminIDs,
		OnAdminReject: func(c tele.Context) error {
			return c.Send("Please use a valid track link to view lyrics.")
		},
	})
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(a.handlers, a.registry, router.TextOptions{})...)

	return tg.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			if a.rdb != nil {
				_ = a.rdb.Close()
			}
			return a.db.Close()
		},
	}, nil
}
