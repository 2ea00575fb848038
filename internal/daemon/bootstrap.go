// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ManuGH/readerpulse/internal/api"
	"github.com/ManuGH/readerpulse/internal/cache"
	"github.com/ManuGH/readerpulse/internal/config"
	"github.com/ManuGH/readerpulse/internal/content"
	"github.com/ManuGH/readerpulse/internal/delivery"
	"github.com/ManuGH/readerpulse/internal/health"
	"github.com/ManuGH/readerpulse/internal/ingest"
	xglog "github.com/ManuGH/readerpulse/internal/log"
	"github.com/ManuGH/readerpulse/internal/metrics"
	"github.com/ManuGH/readerpulse/internal/platform/redisx"
	"github.com/ManuGH/readerpulse/internal/telemetry"
)

const cacheKeyPrefix = "readerpulse:cache:"

// Runtime is a fully wired daemon ready to Run.
type Runtime struct {
	App     *App
	Manager Manager
	Handler http.Handler
}

// builder accumulates cleanup hooks so a failed Build releases what it opened.
type builder struct {
	cfg    config.AppConfig
	logger zerolog.Logger
	hooks  []namedHook
	tasks  []Task
	health *health.Manager
}

func (b *builder) onShutdown(name string, hook ShutdownHook) {
	b.hooks = append(b.hooks, namedHook{name: name, hook: hook})
}

func (b *builder) unwind(ctx context.Context) {
	for i := len(b.hooks) - 1; i >= 0; i-- {
		if err := b.hooks[i].hook(ctx); err != nil {
			b.logger.Warn().Err(err).Str("hook", b.hooks[i].name).Msg("cleanup after failed build")
		}
	}
}

// Build wires every component described by cfg.
func Build(ctx context.Context, cfg config.AppConfig) (rt *Runtime, err error) {
	b := &builder{
		cfg:    cfg,
		logger: xglog.WithComponent("daemon"),
		health: health.NewManager(cfg.Version),
	}
	defer func() {
		if err != nil {
			cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
			defer cancel()
			b.unwind(cleanupCtx)
		}
	}()

	if err := b.initTelemetry(ctx); err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.Content.Cache == config.CacheRedis || cfg.Ingest.Sink == config.SinkRedis {
		rdb, err = redisx.Open(ctx, redisx.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		b.onShutdown("redis", func(context.Context) error { return rdb.Close() })
		b.health.RegisterChecker(health.NewRedisChecker(rdb, cfg.Ingest.Sink == config.SinkRedis))
	}

	contentHandler, err := b.buildContent(ctx, rdb)
	if err != nil {
		return nil, err
	}
	sink, err := b.buildSink(rdb)
	if err != nil {
		return nil, err
	}

	handler := api.NewRouter(api.Deps{
		Content:          contentHandler,
		Ingest:           ingest.NewHandler(sink, cfg.Ingest.MaxBodyBytes, xglog.WithComponent("ingest")),
		Health:           b.health,
		CORSOrigins:      cfg.Server.CORSOrigins,
		IngestRateLimit:  cfg.Ingest.RateLimit,
		IngestRateWindow: cfg.Ingest.RateWindow,
		TracingService:   tracingService(cfg),
	})

	var metricsHandler http.Handler
	if cfg.Server.MetricsAddr != "" {
		metricsHandler = promhttp.Handler()
	}
	mgr, err := NewManager(cfg.Server, Deps{
		Logger:         xglog.WithComponent("daemon"),
		APIHandler:     handler,
		MetricsHandler: metricsHandler,
	})
	if err != nil {
		return nil, err
	}
	for _, h := range b.hooks {
		mgr.RegisterShutdownHook(h.name, h.hook)
	}

	return &Runtime{
		App:     NewApp(b.logger, mgr, b.tasks...),
		Manager: mgr,
		Handler: handler,
	}, nil
}

func tracingService(cfg config.AppConfig) string {
	if !cfg.Telemetry.Enabled {
		return ""
	}
	return cfg.Telemetry.ServiceName
}

func (b *builder) initTelemetry(ctx context.Context) error {
	tc := b.cfg.Telemetry
	if !tc.Enabled {
		return nil
	}
	provider, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        true,
		ServiceName:    tc.ServiceName,
		ServiceVersion: b.cfg.Version,
		ExporterType:   tc.Exporter,
		Endpoint:       tc.Endpoint,
		SamplingRate:   tc.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("telemetry init failed: %w", err)
	}
	b.onShutdown("telemetry", provider.Shutdown)
	b.logger.Info().
		Str("service", tc.ServiceName).
		Str("endpoint", tc.Endpoint).
		Float64("sampling_rate", tc.SamplingRate).
		Msg("telemetry initialized")
	return nil
}

func (b *builder) buildContent(ctx context.Context, rdb *redis.Client) (http.Handler, error) {
	cc := b.cfg.Content
	location := cc.SQLitePath
	if cc.Backend == config.BackendBadger {
		location = cc.BadgerDir
	}
	store, err := content.OpenStore(ctx, cc.Backend, location, xglog.WithComponent("content"))
	if err != nil {
		return nil, fmt.Errorf("open content store: %w", err)
	}
	b.onShutdown("content-store", func(context.Context) error { return store.Close() })
	b.health.RegisterChecker(health.NewPingChecker("content_store", store.Ping, true))

	if cc.SeedFile != "" {
		n, err := content.Seed(ctx, store, cc.SeedFile, time.Now())
		if err != nil {
			return nil, fmt.Errorf("seed content: %w", err)
		}
		b.logger.Info().Str("event", "seed.loaded").Int("items", n).Str("path", cc.SeedFile).Msg("content seeded")
	}

	var c cache.Cache
	switch cc.Cache {
	case config.CacheMemory:
		mem := cache.NewMemoryCache(time.Minute)
		b.onShutdown("content-cache", func(context.Context) error { mem.Stop(); return nil })
		c = mem
	case config.CacheRedis:
		c = cache.NewRedisCache(rdb, cacheKeyPrefix, xglog.WithComponent("cache"))
	default:
		c = cache.NewNoOpCache()
	}
	cached := content.NewCachedStore(store, c, cc.CacheTTL, xglog.WithComponent("content"))

	if cc.WatchSeed && cc.SeedFile != "" {
		w := content.NewWatcher(cc.SeedFile, store, cached, content.DefaultDebounce, xglog.WithComponent("seed-watcher"))
		b.tasks = append(b.tasks, Task{Name: "seed-watcher", Run: w.Run})
	}

	policy, err := b.cfg.Policy()
	if err != nil {
		return nil, err
	}
	svc := content.NewService(cached, policy, xglog.WithComponent("content"))
	return content.NewHandler(svc, content.HeaderResolver{Header: b.cfg.Access.EntitlementHeader}), nil
}

func (b *builder) buildSink(rdb *redis.Client) (ingest.Sink, error) {
	ic := b.cfg.Ingest
	switch ic.Sink {
	case config.SinkRedis:
		return ingest.NewRedisStreamSink(rdb, ic.Stream, ic.StreamMaxLen), nil
	case config.SinkForward:
		return b.buildForwardSink()
	case config.SinkLog, "":
		return ingest.NewLogSink(xglog.WithComponent("ingest-sink")), nil
	default:
		return nil, errors.New("unknown ingest sink: " + ic.Sink)
	}
}

func (b *builder) buildForwardSink() (ingest.Sink, error) {
	dc := b.cfg.Delivery
	observer := metrics.DeliveryObserver{}

	keepalive, err := delivery.NewKeepaliveClient(dc.Endpoint, dc.Timeout, nil, observer)
	if err != nil {
		return nil, err
	}
	dcfg := delivery.DefaultDispatcherConfig(dc.Endpoint)
	dcfg.QueueSize = dc.QueueSize
	dcfg.Rate = rate.Limit(dc.Rate)
	dcfg.Burst = dc.Burst
	dcfg.Timeout = dc.Timeout
	dcfg.Observer = observer
	dispatcher := delivery.NewDispatcher(dcfg)

	// Hooks run LIFO: the dispatcher drains before in-flight keepalives are awaited.
	b.onShutdown("keepalive", keepalive.Wait)
	b.onShutdown("dispatcher", dispatcher.Close)

	ch := delivery.NewChannel(dispatcher, keepalive,
		delivery.WithObserver(observer),
		delivery.WithLogger(xglog.WithComponent("delivery")))
	return ingest.NewForwardSink(ch), nil
}
