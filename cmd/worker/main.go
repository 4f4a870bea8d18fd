package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/studiobooking/config"
	"github.com/Domenick1991/studiobooking/internal/cache"
	"github.com/Domenick1991/studiobooking/internal/kafka"
	"github.com/Domenick1991/studiobooking/internal/notify"
	"github.com/Domenick1991/studiobooking/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const dateLayout = "2006-01-02"

func main() {
	_ = godotenv.Load()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("APP_ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	repo := repository.NewBookingRepository(pool)
	dayCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.CacheTTL())
	defer dayCache.Close()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingsTopic)
	defer consumer.Close()

	notifier := notify.NewNotifier()

	go func() {
		err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Warn().Err(err).Msg("decode booking event")
				return nil
			}
			if event.Date != "" {
				_ = dayCache.InvalidateDay(ctx, event.Date)
			}
			return notifier.Notify(ctx, event)
		})
		if err != nil && ctx.Err() == nil {
			log.Warn().Err(err).Msg("consumer stopped")
		}
	}()

	// Periodic refresh keeps today's cached partition honest even when a
	// change signal was dropped.
	sweep := time.NewTicker(cfg.Worker.SweepInterval())
	defer sweep.Stop()

	for {
		select {
		case <-sweep.C:
			today := time.Now().Format(dateLayout)
			bookings, err := repo.ListByDate(ctx, today)
			if err != nil {
				log.Warn().Err(err).Msg("refresh sweep failed")
				continue
			}
			if err := dayCache.SetDay(ctx, today, bookings); err != nil {
				log.Warn().Err(err).Str("date", today).Msg("failed to refresh day cache")
			}
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return
		}
	}
}
