package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/app"
	"github.com/goodnatureofminers/fiatramps-backend/internal/bank"
	"github.com/goodnatureofminers/fiatramps-backend/internal/kvstore"
	"github.com/goodnatureofminers/fiatramps-backend/internal/metrics"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
	"github.com/goodnatureofminers/fiatramps-backend/internal/ramps"
	"github.com/goodnatureofminers/fiatramps-backend/internal/schedule"
	"github.com/goodnatureofminers/fiatramps-backend/internal/statement"
	"github.com/goodnatureofminers/fiatramps-backend/internal/unpeg"
	"github.com/goodnatureofminers/fiatramps-backend/internal/verify"
	"github.com/goodnatureofminers/fiatramps-backend/pkg/batcher"
)

type config struct {
	Account     string `long:"account" env:"RAMPS_WORKER_ACCOUNT" description:"ledger account the worker submits statements as" required:"true"`
	GenesisPath string `long:"genesis" env:"RAMPS_WORKER_GENESIS" description:"genesis file (yaml, toml or json)"`
	EscrowSeed  string `long:"escrow-seed" env:"RAMPS_WORKER_ESCROW_SEED" description:"seed of the escrow system account" default:"fiat-ramps/escrow"`
	LogJSON     bool   `long:"log-json" env:"RAMPS_WORKER_LOG_JSON" description:"production json logging"`

	Store         string        `long:"store" env:"RAMPS_WORKER_STORE" description:"state backend" choice:"memory" choice:"redis" choice:"etcd" default:"memory"`
	RedisURL      string        `long:"redis-url" env:"RAMPS_WORKER_REDIS_URL" description:"redis url (redis://host:6379/0)"`
	EtcdEndpoints []string      `long:"etcd-endpoint" env:"RAMPS_WORKER_ETCD_ENDPOINTS" env-delim:"," description:"etcd endpoint, repeatable"`
	StoreTimeout  time.Duration `long:"store-dial-timeout" env:"RAMPS_WORKER_STORE_DIAL_TIMEOUT" description:"etcd dial timeout" default:"5s"`
	Namespace     string        `long:"namespace" env:"RAMPS_WORKER_NAMESPACE" description:"key prefix inside the shared store" default:"fiatramps/"`

	APIURL          string        `long:"api-url" env:"RAMPS_WORKER_API_URL" description:"default bank API base url, a persisted value takes precedence" default:"http://localhost:8081"`
	HTTPTimeout     time.Duration `long:"http-timeout" env:"RAMPS_WORKER_HTTP_TIMEOUT" description:"timeout of bank API requests" default:"30s"`
	MinSyncInterval time.Duration `long:"min-sync-interval" env:"RAMPS_WORKER_MIN_SYNC_INTERVAL" description:"minimum time between two worker slots across replicas" default:"10s"`
	TickInterval    time.Duration `long:"tick-interval" env:"RAMPS_WORKER_TICK_INTERVAL" description:"how often a slot is requested" default:"2s"`
	MaxBackoff      time.Duration `long:"max-backoff" env:"RAMPS_WORKER_MAX_BACKOFF" description:"cap of the wait after consecutive failed ticks" default:"1m"`
	UnpegRPS        int           `long:"unpeg-rps" env:"RAMPS_WORKER_UNPEG_RPS" description:"max unpeg posts per second, 0 is unlimited" default:"5"`

	MaxIBANLength   int  `long:"max-iban-length" env:"RAMPS_WORKER_MAX_IBAN_LENGTH" default:"34" description:"max IBAN length"`
	MaxStringLength int  `long:"max-string-length" env:"RAMPS_WORKER_MAX_STRING_LENGTH" default:"256" description:"max length of free text fields"`
	MaxStatements   int  `long:"max-statements" env:"RAMPS_WORKER_MAX_STATEMENTS" default:"64" description:"max statements per fetch"`
	MaxTransactions int  `long:"max-transactions" env:"RAMPS_WORKER_MAX_TRANSACTIONS" default:"128" description:"max transactions per statement"`
	StrictParsing   bool `long:"strict-parsing" env:"RAMPS_WORKER_STRICT_PARSING" description:"reject the whole fetch on the first malformed item"`

	PaymentClearingMember string `long:"payment-clearing-member" env:"RAMPS_WORKER_PAYMENT_CLEARING_MEMBER" default:"HYPLCH22" description:"clearing system member id of unpeg payments"`
	PaymentCurrency       string `long:"payment-currency" env:"RAMPS_WORKER_PAYMENT_CURRENCY" default:"EUR" description:"currency of unpeg payments"`

	VerifierURL     string `long:"verifier-url" env:"RAMPS_WORKER_VERIFIER_URL" description:"receipt verifier base url, enables the verification queue"`
	VerifierProgram string `long:"verifier-program-id" env:"RAMPS_WORKER_VERIFIER_PROGRAM_ID" description:"program id receipts are checked against"`
	ReceiptBaseURL  string `long:"receipt-base-url" env:"RAMPS_WORKER_RECEIPT_BASE_URL" description:"base url receipts are fetched from, <base>/<block reference>"`
	QueueMaxBatches int    `long:"queue-max-batches" env:"RAMPS_WORKER_QUEUE_MAX_BATCHES" default:"32" description:"bound of the verification queue"`
	NATSURL         string `long:"nats-url" env:"RAMPS_WORKER_NATS_URL" description:"publish events to nats"`
	NATSPrefix      string `long:"nats-subject-prefix" env:"RAMPS_WORKER_NATS_SUBJECT_PREFIX" default:"fiatramps.events" description:"nats subject prefix"`
	ClickhouseDSN   string `long:"clickhouse-dsn" env:"RAMPS_WORKER_CLICKHOUSE_DSN" description:"write events to the clickhouse event log"`
	MetricsAddr     string `long:"metrics-addr" env:"RAMPS_WORKER_METRICS_ADDR" default:":9102" description:"prometheus metrics listen address, empty disables"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("ramps worker failed", zap.Error(err))
	}
	logger.Info("ramps worker stopped")
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	account := model.AccountID(strings.TrimSpace(cfg.Account))
	stack, err := app.Build(ctx, app.Options{
		Store: kvstore.Options{
			Backend:       cfg.Store,
			RedisURL:      cfg.RedisURL,
			EtcdEndpoints: cfg.EtcdEndpoints,
			DialTimeout:   cfg.StoreTimeout,
			Namespace:     cfg.Namespace,
		},
		GenesisPath:       cfg.GenesisPath,
		EscrowSeed:        cfg.EscrowSeed,
		Workers:           []model.AccountID{account},
		DefaultAPIURL:     cfg.APIURL,
		MaxIBANLength:     cfg.MaxIBANLength,
		MaxStatements:     cfg.MaxStatements,
		MaxTransactions:   cfg.MaxTransactions,
		NATSURL:           cfg.NATSURL,
		NATSSubjectPrefix: cfg.NATSPrefix,
		NATSClientName:    "ramps-worker-" + string(account),
		ClickhouseDSN:     cfg.ClickhouseDSN,
		EventBatch:        batcher.DefaultOptions(),
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := stack.Close(); err != nil {
			logger.Error("close stack", zap.Error(err))
		}
	}()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	bankClient := bank.NewClient(stack.Service, httpClient, metrics.NewBankClient(), logger)

	defaults := unpeg.DefaultPaymentDefaults()
	defaults.ClearingSystemMemberID = cfg.PaymentClearingMember
	defaults.Currency = cfg.PaymentCurrency
	requester := unpeg.NewRequester(stack.Burns, bankClient, defaults, cfg.UnpegRPS, logger)

	parser := statement.NewParser(statement.Limits{
		MaxIBANLength:   cfg.MaxIBANLength,
		MaxStringLength: cfg.MaxStringLength,
		MaxStatements:   cfg.MaxStatements,
		MaxTransactions: cfg.MaxTransactions,
		Strict:          cfg.StrictParsing,
	}, logger)

	worker, err := ramps.NewWorker(
		schedule.NewGate(stack.Store, logger),
		schedule.NewSelector(stack.Store, logger),
		bankClient,
		parser,
		stack.Service,
		requester,
		metrics.NewWorker(),
		ramps.WorkerConfig{
			Account:         account,
			MinSyncInterval: cfg.MinSyncInterval,
			TickInterval:    cfg.TickInterval,
			MaxBackoff:      cfg.MaxBackoff,
		},
		logger,
	)
	if err != nil {
		return fmt.Errorf("init worker: %w", err)
	}

	if cfg.VerifierURL != "" {
		if cfg.ReceiptBaseURL == "" {
			return errors.New("receipt base url is required with a verifier")
		}
		base := strings.TrimRight(cfg.ReceiptBaseURL, "/")
		worker.WithVerification(&ramps.Verification{
			Queue:     verify.NewQueue(stack.Store, cfg.QueueMaxBatches, cfg.MaxTransactions, logger),
			Receipts:  bankClient,
			Verifier:  verify.NewHTTPVerifier(cfg.VerifierURL, httpClient),
			ProgramID: cfg.VerifierProgram,
			ReceiptURL: func(ref uint64) string {
				return base + "/" + strconv.FormatUint(ref, 10)
			},
		})
		logger.Info("receipt verification enabled", zap.String("verifier", cfg.VerifierURL))
	}

	if cfg.MetricsAddr != "" {
		serveMetrics(ctx, cfg.MetricsAddr, logger)
	}

	logger.Info("starting ramps worker",
		zap.String("account", string(account)),
		zap.Duration("min_sync_interval", cfg.MinSyncInterval),
		zap.Duration("tick_interval", cfg.TickInterval))
	return worker.Run(ctx)
}

func serveMetrics(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	s := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown metrics server", zap.Error(err))
		}
	}()
	go func() {
		logger.Info("Starting metrics server", zap.String("addr", addr))
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to listen and serve metrics", zap.Error(err))
		}
	}()
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
