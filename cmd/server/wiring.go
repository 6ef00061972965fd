package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pewpola/dao-condominium/internal/facade"
	facadehandler "github.com/pewpola/dao-condominium/internal/facade/handler"
	facademetrics "github.com/pewpola/dao-condominium/internal/facade/metrics"
	govhandler "github.com/pewpola/dao-condominium/internal/governance/handler"
	govmetrics "github.com/pewpola/dao-condominium/internal/governance/metrics"
	"github.com/pewpola/dao-condominium/internal/governance/models"
	"github.com/pewpola/dao-condominium/internal/governance/service"
	"github.com/pewpola/dao-condominium/internal/governance/store"
	jwttoken "github.com/pewpola/dao-condominium/internal/jwt_token"
	"github.com/pewpola/dao-condominium/internal/platform/config"
	platformkafka "github.com/pewpola/dao-condominium/internal/platform/kafka"
	httpmetrics "github.com/pewpola/dao-condominium/internal/platform/metrics"
	"github.com/pewpola/dao-condominium/internal/platform/middleware"
	"github.com/pewpola/dao-condominium/internal/platform/postgres"
	platformredis "github.com/pewpola/dao-condominium/internal/platform/redis"
	id "github.com/pewpola/dao-condominium/pkg/domain"
	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
	"github.com/pewpola/dao-condominium/pkg/platform/audit"
	"github.com/pewpola/dao-condominium/pkg/platform/audit/publisher"
	kafkasink "github.com/pewpola/dao-condominium/pkg/platform/audit/sink/kafka"
	auditmemory "github.com/pewpola/dao-condominium/pkg/platform/audit/store/memory"
	auditpostgres "github.com/pewpola/dao-condominium/pkg/platform/audit/store/postgres"
	"github.com/pewpola/dao-condominium/pkg/platform/httputil"
	"github.com/pewpola/dao-condominium/pkg/platform/middleware/requesttime"
)

type app struct {
	router    http.Handler
	storeKind string
	auditKind string
	closers   []func()
	// checks back /readyz, keyed by dependency name.
	checks map[string]func(context.Context) error
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func build(ctx context.Context, cfg config.Config, log *slog.Logger) (*app, error) {
	a := &app{checks: map[string]func(context.Context) error{}}
	ok := false
	defer func() {
		if !ok {
			a.close()
		}
	}()

	layout, err := models.NewLayout(cfg.Governance.Blocks, cfg.Governance.Floors, cfg.Governance.UnitsPerFloor)
	if err != nil {
		return nil, fmt.Errorf("community layout: %w", err)
	}
	manager, err := id.ParseIdentity(cfg.Governance.Manager)
	if err != nil {
		return nil, fmt.Errorf("CONDO_MANAGER: %w", err)
	}
	authority, err := id.ParseIdentity(cfg.Governance.FacadeAuthority)
	if err != nil {
		return nil, fmt.Errorf("CONDO_FACADE_AUTHORITY: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if db != nil {
		a.closers = append(a.closers, func() { _ = db.Close() })
		a.checks["postgres"] = db.PingContext
	}

	auditStore, err := buildAuditStore(ctx, a, cfg, db, reg)
	if err != nil {
		return nil, err
	}
	auditPublisher := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(cfg.AuditQueue),
		publisher.WithLogger(log),
	)
	a.closers = append(a.closers, auditPublisher.Close)

	engineOpts := []service.Option{
		service.WithLogger(log),
		service.WithAuditPublisher(auditPublisher),
		service.WithMetrics(govmetrics.New(reg)),
	}
	var engine *service.Engine
	if db != nil {
		engine, err = buildPostgresEngine(ctx, cfg, db, layout, manager, engineOpts)
		a.storeKind = "postgres"
	} else {
		engine, err = service.NewInMemory(layout, manager, engineOpts...)
		a.storeKind = "memory"
	}
	if err != nil {
		return nil, fmt.Errorf("governance engine: %w", err)
	}

	gatewayMetrics := facademetrics.New(reg)
	pointer, err := buildPointer(ctx, a, cfg, log, gatewayMetrics)
	if err != nil {
		return nil, err
	}
	registry := facade.NewRegistry()
	if err := registry.Register(cfg.Governance.Implementation, engine); err != nil {
		return nil, fmt.Errorf("register implementation: %w", err)
	}
	gateway, err := facade.New(authority, pointer, registry,
		facade.WithLogger(log),
		facade.WithAuditPublisher(auditPublisher),
		facade.WithMetrics(gatewayMetrics),
	)
	if err != nil {
		return nil, fmt.Errorf("facade: %w", err)
	}
	if err := seedPointer(ctx, gateway, pointer, cfg.Governance.Implementation); err != nil {
		return nil, err
	}

	jwtService := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.AccessLog(log, httpmetrics.New(reg)))
	r.Use(requesttime.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", a.ready)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwttoken.NewJWTServiceAdapter(jwtService), log))
		govhandler.New(gateway, log).Register(r)
		facadehandler.New(gateway, log).Register(r)
	})

	a.router = r
	ok = true
	return a, nil
}

func buildPostgresEngine(ctx context.Context, cfg config.Config, db *sql.DB, layout models.Layout, manager id.Identity, opts []service.Option) (*service.Engine, error) {
	if err := store.Migrate(ctx, db); err != nil {
		return nil, err
	}
	roles := store.NewPostgresRoles(db)
	if err := roles.EnsureManager(ctx, manager); err != nil {
		return nil, err
	}
	opts = append(opts, service.WithTx(store.NewPostgresTx(db, store.WithLockTimeout(cfg.Database.LockTimeout))))
	return service.New(layout, service.Stores{
		Residents: store.NewPostgresResidents(db),
		Roles:     roles,
		Topics:    store.NewPostgresTopics(db),
	}, opts...)
}

// buildAuditStore picks Kafka when brokers are configured, then Postgres,
// then memory.
func buildAuditStore(ctx context.Context, a *app, cfg config.Config, db *sql.DB, reg prometheus.Registerer) (audit.Store, error) {
	client, err := platformkafka.New(ctx, cfg.Kafka)
	if err != nil {
		return nil, err
	}
	if client != nil {
		a.closers = append(a.closers, client.Close)
		if err := kafkasink.EnsureTopic(ctx, client, cfg.Kafka.AuditTopic, -1, -1); err != nil {
			return nil, err
		}
		a.auditKind = "kafka"
		return kafkasink.NewSink(client, cfg.Kafka.AuditTopic,
			kafkasink.WithMetrics(kafkasink.NewMetrics(reg)),
			kafkasink.WithCircuitBreaker(cfg.Kafka.BreakerThreshold, cfg.Kafka.BreakerCooldown),
		), nil
	}
	if db != nil {
		if err := auditpostgres.Migrate(ctx, db); err != nil {
			return nil, err
		}
		a.auditKind = "postgres"
		return auditpostgres.New(db), nil
	}
	a.auditKind = "memory"
	return auditmemory.NewInMemoryStore(), nil
}

func buildPointer(ctx context.Context, a *app, cfg config.Config, log *slog.Logger, m *facademetrics.Metrics) (facade.PointerStore, error) {
	client, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return facade.NewInMemoryPointer(), nil
	}
	a.closers = append(a.closers, func() { _ = client.Close() })
	a.checks["redis"] = client.Health
	shared := facade.NewRedisPointer(client.Client, facade.WithPointerKey(cfg.Redis.PointerKey))
	return facade.NewResilientPointer(shared,
		facade.WithResilientLogger(log),
		facade.WithDegradedObserver(m),
	), nil
}

// ready reports 503 naming the first unhealthy dependency.
func (a *app) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	for name, check := range a.checks {
		if err := check(ctx); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "dependency": name})
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// seedPointer points a fresh deployment at its own engine. Only a pointer that
// was never set is written; any other load failure aborts startup so a booting
// replica cannot overwrite an upgrade made by the facade authority.
func seedPointer(ctx context.Context, gateway *facade.Facade, pointer facade.PointerStore, handle string) error {
	_, err := gateway.ImplementationAddress(ctx)
	if err == nil {
		return nil
	}
	if !dErrors.HasCode(err, dErrors.CodeNoImplementation) {
		return fmt.Errorf("read implementation pointer: %w", err)
	}
	if err := pointer.Store(ctx, handle); err != nil {
		return fmt.Errorf("initialize implementation pointer: %w", err)
	}
	return nil
}
