// Command pagebridge runs a small demo app served through the page bridge:
// a login form, a dashboard with lazy props and a logout endpoint, backed by
// the session store selected with SESSION_STORE.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/dmitrymomot/pagebridge/bridge"
	"github.com/dmitrymomot/pagebridge/pkg/config"
	"github.com/dmitrymomot/pagebridge/pkg/cookie"
	"github.com/dmitrymomot/pagebridge/pkg/environment"
	"github.com/dmitrymomot/pagebridge/pkg/httpserver"
	"github.com/dmitrymomot/pagebridge/pkg/logger"
	"github.com/dmitrymomot/pagebridge/pkg/pg"
	"github.com/dmitrymomot/pagebridge/pkg/redis"
	"github.com/dmitrymomot/pagebridge/pkg/requestid"
	"github.com/dmitrymomot/pagebridge/pkg/session"
)

type appConfig struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	Name      string `env:"APP_NAME" envDefault:"pagebridge"`
	LogFormat string `env:"LOG_FORMAT" envDefault:""`

	Bridge  bridge.Config
	Session session.Config
	Cookie  cookie.Config
	HTTP    httpserver.Config
	Redis   redis.Config
	PG      pg.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("pagebridge stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	env := environment.Parse(cfg.Env)
	logOpts := []logger.Option{
		logger.WithEnvironment(env, cfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogFormat != "" {
		logOpts = append(logOpts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	log := logger.New(logOpts...)

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}

	store, checks, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions := session.NewFromConfig(cfg.Session,
		session.WithStore(store),
		session.WithCookieManager(cookies),
	)

	b, err := bridge.NewFromConfig(cfg.Bridge,
		bridge.WithSessionStore(sessions),
		bridge.WithFlash(bridge.CookieFlash(cookies, "success", "error")),
		bridge.WithLogger(log.With(logger.Component("bridge"))),
	)
	if err != nil {
		return err
	}

	a := &app{
		bridge:   b,
		sessions: sessions,
		cookies:  cookies,
		log:      log,
		env:      env,
		checks:   checks,
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	log.InfoContext(ctx, "starting pagebridge",
		slog.String("addr", cfg.HTTP.Addr),
		slog.String("session_store", cfg.Session.Store),
	)
	return srv.Run(ctx, a.routes())
}

// openStore builds the session store named by cfg.Session.Store together
// with the readiness checks of the backend it talks to.
func openStore(ctx context.Context, cfg appConfig, log *slog.Logger) (session.Store, []httpserver.Check, func(), error) {
	switch cfg.Session.Store {
	case "", "memory":
		store := session.NewMemoryStore(cfg.Session.CleanupInterval)
		return store, nil, func() { _ = store.Close() }, nil

	case "redis":
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		checks := []httpserver.Check{{Name: "redis", Fn: redis.Healthcheck(client)}}
		return session.NewRedisStore(client, "session:"), checks, func() { _ = client.Close() }, nil

	case "postgres":
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, session.Migrations, session.MigrationsDir, cfg.PG, log); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		checks := []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}}
		return session.NewPostgresStore(pool), checks, pool.Close, nil

	default:
		return nil, nil, nil, errors.Join(errUnknownStore, errors.New(cfg.Session.Store))
	}
}
