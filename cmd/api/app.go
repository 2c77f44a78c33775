package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/progenglish/db/migrations"
	"github.com/dmitrymomot/progenglish/handler"
	authmod "github.com/dmitrymomot/progenglish/modules/auth"
	"github.com/dmitrymomot/progenglish/modules/system"
	"github.com/dmitrymomot/progenglish/modules/words"
	"github.com/dmitrymomot/progenglish/pkg/audit"
	"github.com/dmitrymomot/progenglish/pkg/clientip"
	"github.com/dmitrymomot/progenglish/pkg/environment"
	"github.com/dmitrymomot/progenglish/pkg/httpserver"
	"github.com/dmitrymomot/progenglish/pkg/jwt"
	"github.com/dmitrymomot/progenglish/pkg/logger"
	"github.com/dmitrymomot/progenglish/pkg/pg"
	"github.com/dmitrymomot/progenglish/pkg/ratelimiter"
	"github.com/dmitrymomot/progenglish/pkg/redis"
	"github.com/dmitrymomot/progenglish/pkg/requestid"
	"github.com/dmitrymomot/progenglish/svc/auth"
	"github.com/dmitrymomot/progenglish/svc/user"
	"github.com/dmitrymomot/progenglish/svc/word"
)

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	env := environment.Parse(cfg.App.Env)
	log := logger.New(
		logger.WithEnvironment(env, cfg.App.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, migrations.FS, cfg.Database, log); err != nil {
		return err
	}

	throttle, err := newThrottle(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer throttle.close()

	limiter, err := ratelimiter.NewBucket(throttle.store, cfg.Throttle)
	if err != nil {
		return fmt.Errorf("invalid login throttle config: %w", err)
	}

	signer, err := jwt.NewFromConfig(cfg.Auth.Config)
	if err != nil {
		return fmt.Errorf("failed to create token signer: %w", err)
	}

	auditLog := audit.NewLogger(audit.NewPostgresStorage(pool),
		audit.WithRequestIDExtractor(requestid.FromContext),
		audit.WithIPExtractor(clientip.FromContext),
		audit.WithUserAgentExtractor(clientip.UserAgentFromContext),
	)

	users := user.NewService(user.NewPostgresStorage(pool), user.WithLogger(log))
	vocabulary := word.NewService(word.NewPostgresStorage(pool), word.WithLogger(log))
	authn := auth.NewAuthenticator(users, auth.NewTokenIssuer(signer, cfg.Auth.AccessTTL()),
		auth.WithLogger(log),
		auth.WithAudit(auditLog),
	)

	if _, err := users.Bootstrap(ctx, cfg.Superuser); err != nil {
		return err
	}

	translator := handler.NewErrorTranslator(log, handler.ErrorHandlerConfig{Debug: cfg.App.Debug})
	requireToken := authmod.RequireToken(authn, translator)

	healthChecks := []system.Option{
		system.WithLogger(log),
		system.WithCheck("database", pg.Healthcheck(pool)),
	}
	if throttle.check != nil {
		healthChecks = append(healthChecks, system.WithCheck("redis", throttle.check))
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		environment.Middleware(env),
		translator.Recoverer,
	)
	r.NotFound(translator.NotFoundHandler())
	r.MethodNotAllowed(translator.MethodNotAllowedHandler())

	vocab := words.NewModule(vocabulary, requireToken, translator)
	r.Mount("/", system.NewModule(system.Info{Name: cfg.App.Name, Version: cfg.App.Version}, healthChecks...).Handle())
	r.Mount("/auth", authmod.NewModule(authn, users, limiter, translator).Handle())
	r.Mount("/api/v1/words", vocab.Handle())
	r.Mount("/api", vocab.Legacy())

	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
}

type throttle struct {
	store ratelimiter.Store
	check system.CheckFunc
	close func()
}

// newThrottle returns the Redis-backed store when enabled, so every instance
// shares one bucket per client, and the in-process store otherwise.
func newThrottle(ctx context.Context, cfg CacheConfig, log *slog.Logger) (*throttle, error) {
	if !cfg.Enabled {
		ms := ratelimiter.NewMemoryStore()
		return &throttle{store: ms, close: ms.Close}, nil
	}

	client, err := redis.Connect(ctx, cfg.Config)
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "login throttle uses redis", logger.Component("ratelimiter"))

	return &throttle{
		store: ratelimiter.NewRedisStore(client),
		check: redis.Healthcheck(client),
		close: func() {
			if err := client.Close(); err != nil {
				log.ErrorContext(ctx, "failed to close redis client", logger.Error(err))
			}
		},
	}, nil
}
