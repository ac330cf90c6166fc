package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"consentd/internal/approval/adapters"
	approvalhandler "consentd/internal/approval/handler"
	approvalmetrics "consentd/internal/approval/metrics"
	"consentd/internal/approval/service"
	"consentd/internal/approval/store/approvedsite"
	"consentd/internal/approval/store/whitelist"
	jwttoken "consentd/internal/jwt_token"
	"consentd/internal/platform/config"
	"consentd/internal/platform/httpserver"
	"consentd/internal/platform/logger"
	platformmetrics "consentd/internal/platform/metrics"
	"consentd/internal/platform/postgres"
	redisclient "consentd/internal/platform/redis"
	tenantstore "consentd/internal/tenant/store"
	clientstore "consentd/internal/tenant/store/client"
	migrations "consentd/migrations/postgres"
	"consentd/pkg/platform/httputil"
	adminmw "consentd/pkg/platform/middleware/admin"
	authmw "consentd/pkg/platform/middleware/auth"
	request "consentd/pkg/platform/middleware/request"
	"consentd/pkg/platform/middleware/requesttime"
)

const shutdownTimeout = 10 * time.Second

type siteStore interface {
	service.ApprovedSiteStore
	service.SiteRegistry
}

type clientStore interface {
	tenantstore.ClientCreator
	adapters.ClientLookup
}

type infra struct {
	db    *sql.DB
	redis *redisclient.Client
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("consentd stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	var (
		deps    infra
		sites   siteStore
		wlStore whitelist.Store
		clients clientStore
	)

	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, postgres.Config{
			URL:             cfg.Database.URL,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return err
		}
		defer db.Close()
		applied, err := postgres.Migrate(ctx, db, migrations.FS, migrations.Dir)
		if err != nil {
			return err
		}
		log.Info("postgres ready", "migrations_applied", applied)
		deps.db = db
		sites = approvedsite.NewPostgres(db)
		wlStore = whitelist.NewPostgres(db)
		clients = clientstore.NewPostgres(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		sites = approvedsite.NewInMemory()
		wlStore = whitelist.NewInMemory()
		clients = clientstore.NewInMemory()
	}

	rc, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rc != nil {
		defer rc.Close()
		deps.redis = rc
		wlStore = whitelist.NewRedisCache(wlStore, rc.Client,
			whitelist.WithCacheTTL(cfg.WhitelistCacheTTL),
			whitelist.WithCacheLogger(log),
		)
		log.Info("whitelist cache enabled", "ttl", cfg.WhitelistCacheTTL.String())
	}

	if cfg.SeedBootstrap {
		if err := tenantstore.SeedBootstrap(ctx, clients, wlStore, time.Now()); err != nil {
			return err
		}
		log.Info("bootstrap clients seeded",
			"client_id", tenantstore.BootstrapClientID,
			"trusted_client_id", tenantstore.BootstrapTrustedClientID,
		)
	}

	engine := service.New(sites, wlStore, adapters.NewRegistryAdapter(clients),
		service.WithLogger(log),
		service.WithMetrics(approvalmetrics.New()),
	)
	manager := service.NewManager(sites, wlStore, log)
	handler := approvalhandler.New(engine, manager, log)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	router := newRouter(log, handler, jwttoken.NewJWTServiceAdapter(jwtService), cfg.AdminToken, platformmetrics.New(), deps)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting consentd", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down consentd")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newRouter(
	log *slog.Logger,
	h *approvalhandler.Handler,
	validator authmw.JWTValidator,
	adminToken string,
	httpMetrics *platformmetrics.Metrics,
	deps infra,
) chi.Router {
	r := chi.NewRouter()
	r.Use(request.Recovery(log))
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(log))
	r.Use(httpMetrics.Middleware)

	r.Get("/health", healthHandler(deps))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(validator, log))
		h.Register(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(adminmw.RequireAdminToken(adminToken, log))
		h.RegisterAdmin(r)
	})
	return r
}

func healthHandler(deps infra) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "ok"}
		code := http.StatusOK
		if deps.db != nil {
			status["postgres"] = "ok"
			if err := deps.db.PingContext(ctx); err != nil {
				status["postgres"] = "unavailable"
				status["status"] = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		if deps.redis != nil {
			status["redis"] = "ok"
			// The cache falls back to the backing store, so Redis alone never fails health.
			if err := deps.redis.Health(ctx); err != nil {
				status["redis"] = "unavailable"
				status["status"] = "degraded"
			}
		}
		httputil.WriteJSON(w, code, status)
	}
}
