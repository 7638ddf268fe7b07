package main

import (
	"github.com/rs/zerolog/log"

	"github.com/deenworks/qada/internal/storage"
)

// InitStorage selects and returns the configured export archive backend
func InitStorage(env Environment) storage.Storage {
	if env.UseSpaces {
		spacesStorage, err := storage.NewSpacesStorage(
			env.SpacesEndpoint,
			env.SpacesRegion,
			env.SpacesBucket,
			env.SpacesCDNURL,
			env.SpacesAccessKey,
			env.SpacesSecretKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces storage")
		}
		log.Info().Str("cdn", env.SpacesCDNURL).Msg("archiving exports to DigitalOcean Spaces")
		return spacesStorage
	}

	local := storage.NewLocalStorage(env.ExportDir)
	log.Info().Str("dir", env.ExportDir).Msg("archiving exports to local directory")
	return local
}
