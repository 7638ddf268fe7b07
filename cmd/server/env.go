package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

type Environment struct {
	Environment   string
	ServerAddress string
	SecretKey     string
	DatabaseURL   string

	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MailgunDomain    string
	MailgunAPIKey    string
	SummarySender    string
	SummaryRecipient string

	MQTTBrokerURL string

	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string
	ExportDir       string
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	env := Environment{
		Environment:   os.Getenv("APP_ENV"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SecretKey:     os.Getenv("JWT_SECRET"),
		ServerAddress: os.Getenv("SERVER_ADDRESS"),

		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MailgunDomain:    os.Getenv("MAILGUN_DOMAIN"),
		MailgunAPIKey:    os.Getenv("MAILGUN_API_KEY"),
		SummarySender:    os.Getenv("SUMMARY_SENDER"),
		SummaryRecipient: os.Getenv("SUMMARY_RECIPIENT"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),

		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),
		ExportDir:       os.Getenv("EXPORT_DIR"),
	}

	if env.ServerAddress == "" {
		env.ServerAddress = ":8080"
	}
	if env.MigrationsPath == "" {
		env.MigrationsPath = "./migrations"
	}
	if env.ExportDir == "" {
		env.ExportDir = "./exports"
	}

	if env.DatabaseURL == "" || env.SecretKey == "" || env.RedisAddress == "" {
		log.Fatal().Msg("missing required environment variables")
	}

	return env
}
