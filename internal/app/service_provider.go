package app

import (
	"context"

	reelAPI "reel_engine/internal/api/reel"
	"reel_engine/internal/config"
	"reel_engine/internal/config/env"
	"reel_engine/internal/logger"
	"reel_engine/internal/middleware"
	"reel_engine/internal/model"
	"reel_engine/internal/repository"
	"reel_engine/internal/repository/journal_repo"
	"reel_engine/internal/repository/memory_journal_repo"
	"reel_engine/internal/repository/stats_repo"
	"reel_engine/internal/service/journal"
	"reel_engine/internal/service/outcome"
	"reel_engine/internal/service/session"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ServiceProvider struct {
	// Logger
	logCfg config.LogConfig
	log    *zap.Logger

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Reel bits
	reelCfg    config.ReelConfig
	generator  *outcome.Generator
	churn      *outcome.Generator
	statsRepo  repository.StatsRepository
	controller *session.Controller
	reelHand   *reelAPI.Handler

	// Journal bits
	journalRepo repository.JournalRepository
	journalServ journal.Service

	// Router and HTTP config
	httpCfg      config.HTTPConfig
	jwtCfg       config.JWTConfig
	rateLimitCfg config.RateLimitConfig
	router       chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		l, err := logger.New(sp.LogCfg().Env())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.log = l
	}
	return sp.log
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

// DBClient пул соединений. Без PG_DSN возвращает nil
func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil && sp.PgConfig().DSN() != "" {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		dbc := sp.DBClient(ctx)
		if dbc == nil {
			sp.txManager = journal.NopManager{}
			return sp.txManager
		}

		m, err := manager.New(trmpgx.NewDefaultFactory(dbc))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) ReelCfg() config.ReelConfig {
	if sp.reelCfg == nil {
		cfg, err := env.NewReelConfigFromYAML(env.ReelConfigPath())
		if err != nil {
			panic("failed to get reel config: " + err.Error())
		}
		sp.reelCfg = cfg
	}
	return sp.reelCfg
}

func (sp *ServiceProvider) alphabet() outcome.Alphabet {
	a, err := outcome.NewAlphabet(sp.ReelCfg().Symbols())
	if err != nil {
		panic("invalid symbol alphabet: " + err.Error())
	}
	return a
}

// Generator авторитетный генератор исхода
func (sp *ServiceProvider) Generator() *outcome.Generator {
	if sp.generator == nil {
		sp.generator = outcome.NewGenerator(sp.alphabet(), outcome.NewSecureSource()).
			WithMultiplier(sp.ReelCfg().PayoutMultiplier())
	}
	return sp.generator
}

// Churn генератор кадров прокрутки со своим источником случайности
func (sp *ServiceProvider) Churn() *outcome.Generator {
	if sp.churn == nil {
		sp.churn = outcome.NewGenerator(sp.alphabet(), outcome.NewSecureSource())
	}
	return sp.churn
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository(sp.ReelCfg().StatsWindow())
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) JournalRepository(ctx context.Context) repository.JournalRepository {
	if sp.journalRepo == nil {
		dbc := sp.DBClient(ctx)
		if dbc == nil {
			sp.Logger().Info("PG_DSN is not set, spin journal is kept in memory")
			sp.journalRepo = memory_journal_repo.NewJournalRepository(sp.ReelCfg().HistoryLimit())
		} else {
			sp.journalRepo = journal_repo.NewJournalRepository(dbc)
		}
	}
	return sp.journalRepo
}

func (sp *ServiceProvider) JournalService(ctx context.Context) journal.Service {
	if sp.journalServ == nil {
		sp.journalServ = journal.NewJournalService(
			sp.JournalRepository(ctx),
			sp.TXManager(ctx),
			sp.Logger().Named("journal"),
			0,
		)
	}
	return sp.journalServ
}

func (sp *ServiceProvider) Controller(ctx context.Context) *session.Controller {
	if sp.controller == nil {
		cfg := sp.ReelCfg()
		fast, slow := cfg.FastChurn(), cfg.SlowChurn()

		c, err := session.NewController(
			sp.Generator(),
			sp.Churn(),
			model.Ledger{Balance: cfg.StartingBalance(), Bet: cfg.Bet()},
			sp.Generator().DrawGrid(),
			session.WithLogger(sp.Logger().Named("session")),
			session.WithPhases(session.PhaseTable{
				model.PhaseFastChurn: {TickInterval: fast.TickInterval, Duration: fast.Duration},
				model.PhaseSlowChurn: {TickInterval: slow.TickInterval, Duration: slow.Duration},
			}),
			session.WithCommitSink(sp.StatsRepository().Record),
			session.WithCommitSink(sp.JournalService(ctx).Commit),
		)
		if err != nil {
			panic("failed to create spin session: " + err.Error())
		}
		sp.controller = c
	}
	return sp.controller
}

func (sp *ServiceProvider) ReelHandler(ctx context.Context) *reelAPI.Handler {
	if sp.reelHand == nil {
		sp.reelHand = reelAPI.NewHandler(reelAPI.HandlerDeps{
			Reel:         sp.Controller(ctx),
			Stats:        sp.StatsRepository(),
			Journal:      sp.JournalService(ctx),
			Log:          sp.Logger().Named("http"),
			HistoryLimit: sp.ReelCfg().HistoryLimit(),
		})
	}
	return sp.reelHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) RateLimitCfg() config.RateLimitConfig {
	if sp.rateLimitCfg == nil {
		cfg, err := env.NewRateLimitConfig()
		if err != nil {
			panic("failed to get rate limit config: " + err.Error())
		}
		sp.rateLimitCfg = cfg
	}
	return sp.rateLimitCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimw.RealIP)
		r.Use(middleware.RequestID)
		r.Use(middleware.Logger(sp.Logger().Named("http")))
		r.Use(chimw.Recoverer)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Get("/healthz", reelAPI.Health)

		if !sp.JWTCfg().Enabled() {
			sp.Logger().Warn("ACCESS_TOKEN is not set, spin endpoints are open")
		}
		limiter := middleware.NewRateLimiter(sp.RateLimitCfg().RPS(), sp.RateLimitCfg().Burst())
		auth := middleware.Auth(sp.JWTCfg().AccessTokenSecretKey(), sp.Logger().Named("auth"))

		// Reel endpoints
		reelHandler := sp.ReelHandler(ctx)
		r.Route("/reel", func(rr chi.Router) {
			rr.Group(func(g chi.Router) {
				g.Use(limiter.Handler, auth)
				g.Post("/spin", reelHandler.Spin)
				g.Post("/bet", reelHandler.SetBet)
			})
			rr.Get("/snapshot", reelHandler.Snapshot)
			rr.Get("/events", reelHandler.Events)
			rr.Get("/stats", reelHandler.Stats)
			rr.Get("/history", reelHandler.History)
		})

		sp.router = r
	}

	return sp.router
}
