package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/deenworks/qada/internal/cache"
	"github.com/deenworks/qada/internal/db"
	"github.com/deenworks/qada/internal/mail"
	"github.com/deenworks/qada/internal/push"
	"github.com/deenworks/qada/internal/tracker"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("APP_ENV") == "development" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	env := LoadEnvironment()

	// remote sync store
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}
	store := db.NewStore()

	// device-local cache
	localCache := cache.New(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	if err := localCache.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("redis init failed")
	}

	// weekly summary sink
	var sink tracker.Sink = mail.NopSink{}
	if env.MailgunDomain != "" && env.MailgunAPIKey != "" {
		sink = mail.NewMailgunSink(env.MailgunDomain, env.MailgunAPIKey, env.SummarySender, env.SummaryRecipient)
	} else {
		log.Warn().Msg("mailgun not configured, weekly summaries disabled")
	}

	// cross-device update broadcast
	var publisher tracker.Publisher = push.NopPublisher{}
	if env.MQTTBrokerURL != "" {
		p, err := push.NewMQTTPublisher(env.MQTTBrokerURL, "qada-server")
		if err != nil {
			log.Error().Err(err).Msg("MQTT init failed, continuing without update broadcast")
		} else {
			publisher = p
			defer p.Close()
		}
	}

	svc := tracker.NewService(localCache, store, sink, publisher)
	svc.Load(context.Background())

	archive := InitStorage(env)

	if env.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	RegisterRoutes(r, env, store, svc, archive)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}

	svc.Flush()
}
