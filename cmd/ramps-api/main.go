package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/app"
	"github.com/goodnatureofminers/fiatramps-backend/internal/kvstore"
	"github.com/goodnatureofminers/fiatramps-backend/internal/metrics"
	"github.com/goodnatureofminers/fiatramps-backend/internal/statement"
	"github.com/goodnatureofminers/fiatramps-backend/internal/transport"
	"github.com/goodnatureofminers/fiatramps-backend/pkg/batcher"
)

type config struct {
	Addr        string `long:"addr" env:"RAMPS_API_ADDR" description:"listen address" default:":8000"`
	JWTSecret   string `long:"jwt-secret" env:"RAMPS_API_JWT_SECRET" description:"HS256 secret bearer tokens are signed with" required:"true"`
	GenesisPath string `long:"genesis" env:"RAMPS_API_GENESIS" description:"genesis file (yaml, toml or json)"`
	EscrowSeed  string `long:"escrow-seed" env:"RAMPS_API_ESCROW_SEED" description:"seed of the escrow system account" default:"fiat-ramps/escrow"`
	LogJSON     bool   `long:"log-json" env:"RAMPS_API_LOG_JSON" description:"production json logging"`

	Store         string        `long:"store" env:"RAMPS_API_STORE" description:"state backend" choice:"memory" choice:"redis" choice:"etcd" default:"memory"`
	RedisURL      string        `long:"redis-url" env:"RAMPS_API_REDIS_URL" description:"redis url (redis://host:6379/0)"`
	EtcdEndpoints []string      `long:"etcd-endpoint" env:"RAMPS_API_ETCD_ENDPOINTS" env-delim:"," description:"etcd endpoint, repeatable"`
	StoreTimeout  time.Duration `long:"store-dial-timeout" env:"RAMPS_API_STORE_DIAL_TIMEOUT" description:"etcd dial timeout" default:"5s"`
	Namespace     string        `long:"namespace" env:"RAMPS_API_NAMESPACE" description:"key prefix inside the shared store" default:"fiatramps/"`

	APIURL          string `long:"api-url" env:"RAMPS_API_API_URL" description:"default bank API base url, a persisted value takes precedence" default:"http://localhost:8081"`
	MaxIBANLength   int    `long:"max-iban-length" env:"RAMPS_API_MAX_IBAN_LENGTH" default:"34" description:"max IBAN length"`
	MaxStringLength int    `long:"max-string-length" env:"RAMPS_API_MAX_STRING_LENGTH" default:"256" description:"max length of free text fields"`
	MaxStatements   int    `long:"max-statements" env:"RAMPS_API_MAX_STATEMENTS" default:"64" description:"max statements per submission"`
	MaxTransactions int    `long:"max-transactions" env:"RAMPS_API_MAX_TRANSACTIONS" default:"128" description:"max transactions per statement"`
	StrictParsing   bool   `long:"strict-parsing" env:"RAMPS_API_STRICT_PARSING" description:"reject a submission on the first malformed item"`

	NATSURL       string `long:"nats-url" env:"RAMPS_API_NATS_URL" description:"publish events to nats"`
	NATSPrefix    string `long:"nats-subject-prefix" env:"RAMPS_API_NATS_SUBJECT_PREFIX" default:"fiatramps.events" description:"nats subject prefix"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"RAMPS_API_CLICKHOUSE_DSN" description:"write events to the clickhouse event log"`
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

	logger, err := zap.NewDevelopment()
	if cfg.LogJSON {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("ramps api failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
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
		DefaultAPIURL:     cfg.APIURL,
		MaxIBANLength:     cfg.MaxIBANLength,
		MaxStatements:     cfg.MaxStatements,
		MaxTransactions:   cfg.MaxTransactions,
		NATSURL:           cfg.NATSURL,
		NATSSubjectPrefix: cfg.NATSPrefix,
		NATSClientName:    "ramps-api",
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

	parser := statement.NewParser(statement.Limits{
		MaxIBANLength:   cfg.MaxIBANLength,
		MaxStringLength: cfg.MaxStringLength,
		MaxStatements:   cfg.MaxStatements,
		MaxTransactions: cfg.MaxTransactions,
		Strict:          cfg.StrictParsing,
	}, logger)

	gin.SetMode(gin.ReleaseMode)
	handler := transport.NewHandler(stack.Service, parser, metrics.NewAPI(), logger)
	router := handler.Router(transport.Auth([]byte(cfg.JWTSecret), stack.Admins()))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	s := &http.Server{
		Addr: cfg.Addr,
		Handler: cors.New(cors.Options{
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}).Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", cfg.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}
