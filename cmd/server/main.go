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

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"tokengate/internal/audit"
	"tokengate/internal/bot"
	"tokengate/internal/invite"
	issuancehandler "tokengate/internal/issuance/handler"
	issuancemetrics "tokengate/internal/issuance/metrics"
	issuanceservice "tokengate/internal/issuance/service"
	issuancestore "tokengate/internal/issuance/store"
	"tokengate/internal/ledger"
	"tokengate/internal/platform/config"
	"tokengate/internal/platform/httpserver"
	"tokengate/internal/platform/logger"
	platformredis "tokengate/internal/platform/redis"
	policymetrics "tokengate/internal/policy/metrics"
	policyservice "tokengate/internal/policy/service"
	policystore "tokengate/internal/policy/store"
	"tokengate/internal/telegram"
	httptransport "tokengate/internal/transport/http"
)

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal service packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Policy storage: Postgres when configured, in-memory otherwise.
	var policies policyservice.PolicyStore
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		policies = policystore.NewPostgres(db)
		log.Info("policy store ready", "backend", "postgres")
	} else {
		policies = policystore.NewInMemory()
		log.Warn("DATABASE_URL not set, policies will not survive restarts")
	}

	// Issued-invite dedup: Redis when configured, in-memory otherwise.
	var issued issuanceservice.IssuedStore
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		issued = issuancestore.NewRedis(redisClient.Client, cfg.InviteTTL)
		log.Info("issued-invite store ready", "backend", "redis")
	} else {
		issued = issuancestore.NewInMemory(cfg.InviteTTL)
	}

	// Audit trail: Kafka sink when brokers are configured, in-memory
	// otherwise. Publishing is async so request latency never depends
	// on the broker.
	var auditStore audit.Store
	if len(cfg.Audit.Brokers) > 0 {
		kafkaStore, err := audit.NewKafkaStore(cfg.Audit.Brokers, cfg.Audit.Topic)
		if err != nil {
			return err
		}
		defer kafkaStore.Close()
		auditStore = kafkaStore
		log.Info("audit sink ready", "backend", "kafka", "topic", cfg.Audit.Topic)
	} else {
		auditStore = audit.NewInMemoryStore()
	}
	auditPublisher := audit.NewPublisher(auditStore, audit.WithAsyncBuffer(256))
	defer auditPublisher.Close()

	// Telegram client; getMe both validates the token and yields the
	// bot's own ID for the webhook's self-recognition.
	tg := telegram.New(cfg.Telegram.BotToken, telegram.WithBaseURL(cfg.Telegram.APIBaseURL))
	me, err := tg.GetMe(ctx)
	if err != nil {
		return err
	}
	log.Info("telegram bot ready", "username", me.Username, "bot_id", me.ID)

	resolver := ledger.NewResolver(
		ledger.NewSolanaOracle(cfg.Solana.RPCURL, cfg.Solana.Timeout),
		ledger.NewEVMOracle(cfg.EVM.RPCURL, cfg.EVM.Timeout),
		ledger.WithResolverLogger(log),
		ledger.WithDefaultEVMDecimals(cfg.EVM.DefaultDecimals),
	)

	issuer := invite.NewIssuer(tg,
		invite.WithTTL(cfg.InviteTTL),
		invite.WithLogger(log),
	)

	issuanceSvc := issuanceservice.New(policies, resolver, issuer, issued,
		issuanceservice.WithLogger(log),
		issuanceservice.WithAuditPublisher(auditPublisher),
		issuanceservice.WithMetrics(issuancemetrics.New()),
	)

	policySvc := policyservice.New(policies,
		policyservice.WithLogger(log),
		policyservice.WithAuditPublisher(auditPublisher),
		policyservice.WithMetrics(policymetrics.New()),
	)

	webhook := bot.NewWebhook(tg, policySvc, me.ID,
		cfg.Telegram.WebhookSecret, cfg.BaseURL,
		bot.WithLogger(log),
	)

	router := httptransport.NewRouter(log,
		issuancehandler.New(issuanceSvc, log),
		webhook,
	)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting tokengate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
