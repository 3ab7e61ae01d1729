// main wires the verification gateway: config, stores, the vendor adapter
// registry, the engine, and the HTTP server lifecycle. Business logic lives
// in internal packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"kycgate/internal/directory"
	"kycgate/internal/entitlement"
	"kycgate/internal/platform/config"
	"kycgate/internal/platform/httpserver"
	"kycgate/internal/platform/logger"
	"kycgate/internal/platform/metrics"
	"kycgate/internal/platform/postgres"
	platformredis "kycgate/internal/platform/redis"
	httptransport "kycgate/internal/transport/http"
	"kycgate/internal/vendors"
	"kycgate/internal/verify/adapters"
	"kycgate/internal/verify/auditlog"
	"kycgate/internal/verify/engine"
	"kycgate/internal/verify/handler"
	"kycgate/internal/verify/models"
	"kycgate/internal/verify/records"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.PostgresDSN != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
	}

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	deps, err := buildStores(db, redisClient, log)
	if err != nil {
		return err
	}

	auditSink, auditWorker, kafkaPub, err := buildAuditSink(cfg, db, log)
	if err != nil {
		return err
	}

	registry, err := adapters.NewDefaultRegistry(&http.Client{}, cfg.VendorTimeout)
	if err != nil {
		return fmt.Errorf("build adapter registry: %w", err)
	}

	resolver, err := entitlement.NewResolver(deps.entitlements)
	if err != nil {
		return err
	}
	descriptors, err := engine.DefaultDescriptors(deps.records)
	if err != nil {
		return err
	}
	eng, err := engine.New(engine.Config{
		Environment: cfg.Environment,
		Services:    descriptors,
		Directory:   deps.clients,
		Entitlement: resolver,
		Priorities:  deps.priorities,
		Adapters:    registry,
		Audit:       auditlog.NewLogger(auditSink, log),
		Metrics:     metrics.New(),
		Logger:      log,
	})
	if err != nil {
		return err
	}

	h, err := handler.New(eng, log)
	if err != nil {
		return err
	}
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(h, log))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting kycgate", "addr", cfg.Addr, "env", string(cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if auditWorker != nil {
		g.Go(func() error {
			if err := auditWorker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("audit worker: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		if kafkaPub != nil {
			if err := kafkaPub.Close(shutdownCtx); err != nil {
				log.Warn("kafka close", "error", err)
			}
		}
		return nil
	})

	return g.Wait()
}

// storeSet groups the per-concern stores so run stays readable.
type storeSet struct {
	clients      directory.Store
	entitlements entitlement.Store
	priorities   vendors.PriorityStore
	records      engine.Stores
}

// buildStores selects postgres-backed stores when a DSN is configured and
// seeded in-memory stores otherwise. Redis, when present, fronts the record
// stores as a look-aside cache.
func buildStores(db *sql.DB, redisClient *platformredis.Client, log *slog.Logger) (storeSet, error) {
	if db == nil {
		log.Warn("no postgres DSN configured, using seeded in-memory stores")
		return devStores(), nil
	}

	set := storeSet{
		clients:      directory.NewPostgres(db),
		entitlements: entitlement.NewPostgres(db),
		priorities:   vendors.NewPostgresPriorityStore(db),
		records: engine.Stores{
			Pan:            records.NewPanPostgres(db),
			Voter:          records.NewVoterPostgres(db),
			Bill:           records.NewBillPostgres(db),
			Rc:             records.NewRcPostgres(db),
			NameMatch:      records.NewNameMatchPostgres(db),
			DrivingLicense: records.NewDrivingLicensePostgres(db),
		},
	}
	if redisClient == nil {
		return set, nil
	}

	wrap := func(inner records.Store, service string, decode func([]byte) (models.Record, error)) (records.Store, error) {
		return records.NewCachedStore(inner, redisClient, service, decode, log)
	}
	var err error
	if set.records.Pan, err = wrap(set.records.Pan, "pan", records.DecodePan); err != nil {
		return storeSet{}, err
	}
	if set.records.Voter, err = wrap(set.records.Voter, "voter", records.DecodeVoter); err != nil {
		return storeSet{}, err
	}
	if set.records.Bill, err = wrap(set.records.Bill, "bill", records.DecodeBill); err != nil {
		return storeSet{}, err
	}
	if set.records.Rc, err = wrap(set.records.Rc, "rc", records.DecodeRc); err != nil {
		return storeSet{}, err
	}
	if set.records.NameMatch, err = wrap(set.records.NameMatch, "name", records.DecodeNameMatch); err != nil {
		return storeSet{}, err
	}
	if set.records.DrivingLicense, err = wrap(set.records.DrivingLicense, "driving", records.DecodeDrivingLicense); err != nil {
		return storeSet{}, err
	}
	return set, nil
}

// buildAuditSink assembles the audit pipeline: postgres (or memory) as the
// system of record, optionally mirrored to Kafka, all behind the async
// worker.
func buildAuditSink(cfg config.Config, db *sql.DB, log *slog.Logger) (auditlog.Store, *auditlog.Worker, *auditlog.KafkaPublisher, error) {
	var base auditlog.Store
	if db != nil {
		base = auditlog.NewPostgres(db)
	} else {
		base = auditlog.NewInMemoryStore()
	}

	var kafkaPub *auditlog.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		var err error
		kafkaPub, err = auditlog.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic, log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("kafka publisher: %w", err)
		}
		base = auditlog.Fanout{base, kafkaPub}
	}

	worker := auditlog.NewWorker(base, cfg.AuditBuffer, log)
	return worker, worker, kafkaPub, nil
}
