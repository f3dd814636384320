package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	appcatalog "stays/internal/app/catalog"
	"stays/internal/app/commands"
	bookingapp "stays/internal/app/handlers/booking"
	listingapp "stays/internal/app/handlers/listings"
	pricingapp "stays/internal/app/handlers/pricing"
	"stays/internal/app/middleware"
	appoutbox "stays/internal/app/outbox"
	"stays/internal/app/queries"
	domainlistings "stays/internal/domain/listings"
	domainpricing "stays/internal/domain/pricing"
	"stays/internal/domain/shared/money"
	"stays/internal/infra/broker/kafka"
	infracatalog "stays/internal/infra/catalog"
	"stays/internal/infra/config"
	mongostore "stays/internal/infra/db/mongo"
	ginserver "stays/internal/infra/http/gin"
	"stays/internal/infra/notify"
	"stays/internal/infra/obs"
	infraoutbox "stays/internal/infra/outbox"
	"stays/internal/infra/storage/memory"
	"stays/internal/infra/storage/s3"
	"stays/internal/infra/view"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application setup failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: app.ready}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "catalog", app.catalogSource)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers      ginserver.Handlers
	ready         []func(ctx context.Context) error
	worker        *infraoutbox.Worker
	catalogSource string
	closers       []func(ctx context.Context) error
}

func (a *application) close(logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Warn("shutdown step failed", "error", err)
		}
	}
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{}

	var mongoClient *mongostore.Client
	if cfg.MongoURI != "" {
		client, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		mongoClient = client
		app.closers = append(app.closers, client.Close)
		app.ready = append(app.ready, client.Ping)
	}

	var producer infraoutbox.Producer = infraoutbox.LogProducer{Logger: logger}
	var notifiers notify.Fanout
	notifiers = append(notifiers, notify.Scoped{}, notify.Logger{Log: logger})
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := kafka.NewProducer(cfg.KafkaBrokers, "stays-"+uuid.NewString()[:8])
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		producer = kp
		app.closers = append(app.closers, func(context.Context) error { return kp.Close() })
		notifiers = append(notifiers, notify.Broker{Publisher: kp, Topic: cfg.KafkaTopicPrefix + cfg.KafkaTopic, Log: logger})
	}

	source, err := catalogSource(ctx, cfg, mongoClient, logger)
	if err != nil {
		return nil, err
	}
	app.catalogSource = source.Name()
	policy := appcatalog.FallbackOnError
	if cfg.CatalogStrict {
		policy = appcatalog.Strict
	}
	loader := &appcatalog.Loader{Source: source, Policy: policy, Notifier: notifiers, Logger: logger}

	pricing := domainpricing.NewCalculator(domainpricing.Policy{
		Currency:       money.DefaultCurrency,
		CleaningFee:    money.Must(cfg.CleaningFee*100, money.DefaultCurrency),
		ServicePercent: cfg.ServiceFeePercent,
	})

	envelope := infraoutbox.Envelope{TopicPrefix: cfg.KafkaTopicPrefix}
	var box appoutbox.Outbox
	var idStore middleware.IdempotencyStore = memory.NewIdempotencyStore(mongostore.DefaultIdempotencyTTL)
	if mongoClient != nil {
		store, err := infraoutbox.NewStore(ctx, mongoClient.DB)
		if err != nil {
			return nil, fmt.Errorf("outbox store: %w", err)
		}
		box = store
		app.worker = &infraoutbox.Worker{
			Store:    store,
			Producer: producer,
			Envelope: envelope,
			Interval: cfg.OutboxPollInterval,
			ID:       "stays-" + uuid.NewString(),
			Backoff:  cfg.RetryBackoff,
			Logger:   logger,
		}
		mongoIdem, err := mongostore.NewIdempotencyStore(ctx, mongoClient.DB, mongostore.DefaultIdempotencyTTL)
		if err != nil {
			return nil, fmt.Errorf("idempotency store: %w", err)
		}
		idStore = mongoIdem
	} else {
		box = infraoutbox.NewRelay(producer, envelope)
	}
	encoder := appoutbox.JSONEventEncoder{}

	queryBus := queries.NewInMemoryBus()
	listingapp.Register(queryBus, loader)
	pricingapp.Register(queryBus, loader, pricing)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus,
		middleware.QueryLogging(logger),
		middleware.QueryValidation(),
	)

	commandBus := commands.NewInMemoryBus()
	bookingapp.Register(commandBus, &bookingapp.AcknowledgeBookingHandler{
		Loader:   loader,
		Pricing:  pricing,
		Notifier: notifiers,
		Outbox:   box,
		Encoder:  encoder,
		Logger:   logger,
	})
	commandBusWithMiddleware := middleware.ChainCommands(commandBus,
		middleware.Logging(logger),
		middleware.Validation(),
		middleware.Idempotency(idStore, nil),
		middleware.OutboxFlush(box, logger),
	)

	renderer, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	live := ginserver.NewLiveHandler(ginserver.LiveHandler{
		Loader:   loader,
		Renderer: renderer,
		Debounce: cfg.FilterDebounce,
		Outbox:   box,
		Encoder:  encoder,
		Logger:   logger,
	})

	app.handlers = ginserver.Handlers{
		Pages: ginserver.PageHandler{
			Loader:   loader,
			Pricing:  pricing,
			Commands: commandBusWithMiddleware,
			Outbox:   box,
			Encoder:  encoder,
			Logger:   logger,
		},
		Live:     live.Serve,
		Listing:  ginserver.ListingHandler{Queries: queryBusWithMiddleware},
		Pricing:  ginserver.PricingHandler{Queries: queryBusWithMiddleware},
		Booking:  ginserver.BookingHandler{Commands: commandBusWithMiddleware},
		Renderer: renderer,
	}
	return app, nil
}

// catalogSource picks the loader's backend from CATALOG_SOURCE.
func catalogSource(ctx context.Context, cfg config.Config, mongoClient *mongostore.Client, logger *slog.Logger) (appcatalog.Source, error) {
	switch cfg.CatalogSource {
	case config.SourceHTTP:
		return &infracatalog.HTTPSource{Client: &http.Client{}, URL: cfg.CatalogURL, Timeout: cfg.CatalogTimeout}, nil
	case config.SourceS3:
		client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, logger)
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		if cfg.CatalogSeed {
			published, err := client.PublishIfMissing(ctx, cfg.CatalogObjectKey, seedListings(ctx, cfg, logger))
			if err != nil {
				logger.Warn("catalog seed failed", "source", config.SourceS3, "error", err)
			} else if published {
				logger.Info("catalog seeded", "source", config.SourceS3, "key", cfg.CatalogObjectKey)
			}
		}
		return client.Source(cfg.CatalogObjectKey), nil
	case config.SourceMongo:
		if mongoClient == nil {
			return nil, errors.New("mongo catalog requires MONGO_URI")
		}
		src := mongostore.NewCatalogSource(mongoClient.DB)
		if cfg.CatalogSeed {
			seeded, err := src.SeedIfEmpty(ctx, seedListings(ctx, cfg, logger))
			if err != nil {
				logger.Warn("catalog seed failed", "source", config.SourceMongo, "error", err)
			} else if seeded {
				logger.Info("catalog seeded", "source", config.SourceMongo)
			}
		}
		return src, nil
	case config.SourceMemory:
		return memory.NewCatalogSource(seedListings(ctx, cfg, logger)), nil
	case config.SourceOffline:
		return infracatalog.OfflineSource{}, nil
	default:
		return infracatalog.FileSource{Path: cfg.CatalogPath}, nil
	}
}

// seedListings reads the catalog file, falling back to the embedded data.
func seedListings(ctx context.Context, cfg config.Config, logger *slog.Logger) []domainlistings.Listing {
	items, err := infracatalog.FileSource{Path: cfg.CatalogPath}.Fetch(ctx)
	if err != nil {
		logger.Info("catalog seeded with embedded data", "reason", err)
		return appcatalog.Fallback()
	}
	return items
}
