// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"rollcall/internal/account"
	accounthandler "rollcall/internal/account/handler"
	attendancehandler "rollcall/internal/attendance/handler"
	attendancemetrics "rollcall/internal/attendance/metrics"
	attendanceservice "rollcall/internal/attendance/service"
	attendancestore "rollcall/internal/attendance/store"
	"rollcall/internal/jwttoken"
	"rollcall/internal/platform/config"
	"rollcall/internal/platform/httpserver"
	"rollcall/internal/platform/logger"
	"rollcall/internal/platform/metrics"
	"rollcall/internal/platform/postgres"
	platformredis "rollcall/internal/platform/redis"
	httptransport "rollcall/internal/transport/http"
	"rollcall/internal/verify"
	"rollcall/pkg/platform/audit"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores: postgres when configured, memory otherwise. Attendance and
	// accounts share the pool.
	var store attendancestore.Store
	var accountStore account.Store
	var storeHealth httptransport.HealthChecker
	if cfg.PostgresDSN != "" {
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		pg := attendancestore.NewPostgres(pool)
		store = pg
		accountStore = account.NewPostgres(pool)
		storeHealth = pg.Health
	} else {
		mem := attendancestore.NewInMemoryStore()
		store = mem
		accountStore = account.NewInMemoryStore()
		storeHealth = mem.Health
		log.Warn("POSTGRES_DSN not set, using in-memory stores")
	}

	// Optional redis read-through cache for the query views.
	if redisClient, err := platformredis.New(cfg.RedisURL); err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	} else if redisClient != nil {
		defer redisClient.Close()
		cache := attendancestore.NewRedisCache(store, redisClient.Client, cfg.RedisCacheTTL, log)
		store = cache
		storeHealth = cache.Health
	}

	// Audit pipeline: async channel in front of the configured sink.
	var sink audit.Store = audit.NewInMemoryStore()
	var kafkaSink *audit.KafkaStore
	if len(cfg.KafkaBrokers) > 0 {
		ks, err := audit.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		sink = ks
		kafkaSink = ks
	} else if cfg.PostgresDSN != "" {
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to open postgres for audit outbox", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		sink = audit.NewPostgres(db)
	}
	channel := audit.NewChannelStore(1024, log)
	auditor := audit.NewPublisher(channel, log)
	worker := audit.NewWorker(sink, channel.Inbox())

	// Verification collaborator: real client when configured, stub otherwise.
	var verifier verify.Verifier
	if cfg.VerifierURL != "" {
		verifier = verify.NewClient(cfg.VerifierURL, cfg.VerifierTimeout)
	} else {
		verifier = verify.StubVerifier{}
		log.Warn("VERIFIER_URL not set, using deterministic stub verifier")
	}

	tokens := jwttoken.NewService(cfg.JWTSigningKey, "rollcall", cfg.TokenTTL)
	accounts := account.NewService(accountStore, tokens)

	attendance := attendanceservice.New(store, accounts, verifier, log,
		attendanceservice.WithMetrics(attendancemetrics.New()),
		attendanceservice.WithAuditor(auditor),
		attendanceservice.WithMatchThreshold(cfg.MatchThreshold),
		attendanceservice.WithWorkday(cfg.WorkdayDuration),
		attendanceservice.WithVerifyTimeout(cfg.VerifierTimeout),
	)

	router := httptransport.NewRouter(log, metrics.New(), storeHealth,
		attendancehandler.New(attendance, tokens, log),
		accounthandler.New(accounts, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting rollcall", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if kafkaSink != nil {
			if err := kafkaSink.Close(shutdownCtx); err != nil {
				log.Error("kafka flush failed", "error", err)
			}
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
