package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/studiobooking/config"
	"github.com/Domenick1991/studiobooking/internal/bootstrap"
	"github.com/Domenick1991/studiobooking/internal/cache"
	"github.com/Domenick1991/studiobooking/internal/domain"
	"github.com/Domenick1991/studiobooking/internal/kafka"
	"github.com/Domenick1991/studiobooking/internal/realtime"
	"github.com/Domenick1991/studiobooking/internal/repository"
	"github.com/Domenick1991/studiobooking/internal/service/booking"
	"github.com/Domenick1991/studiobooking/internal/service/export"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	_ = godotenv.Load()
	setupLogger()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	catalog := domain.NewCatalog(cfg.Studios)
	dayCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.CacheTTL())
	defer dayCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	hub := realtime.NewHub()
	defer hub.Close()

	repo := repository.NewBookingRepository(pool)
	bookingService := booking.NewBookingService(
		repo,
		catalog,
		dayCache,
		producer,
		cfg.Kafka.BookingsTopic,
		cfg.Booking.Horizon(),
		booking.WithBroadcaster(hub),
	)
	exportService := export.NewExportService(repo, catalog)

	// Changes committed by other instances arrive over Kafka and fan out to
	// this instance's websocket clients.
	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID+"-app", cfg.Kafka.BookingsTopic)
	defer consumer.Close()

	go func() {
		err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Warn().Err(err).Msg("decode booking event")
				return nil
			}
			_ = dayCache.InvalidateDay(ctx, event.Date)
			hub.Broadcast()
			return nil
		})
		if err != nil && ctx.Err() == nil {
			log.Warn().Err(err).Msg("consumer stopped")
		}
	}()

	if err := bootstrap.Run(ctx, cfg, catalog, bookingService, exportService, hub); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func setupLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("APP_ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
