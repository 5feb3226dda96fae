package main

import (
	"context"

	"github.com/remotelab/stationhub/pkg/config"
	"github.com/remotelab/stationhub/pkg/logger"
	"github.com/remotelab/stationhub/pkg/os"
	"github.com/remotelab/stationhub/pkg/relay"
)

var Version = "?"

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		logger.Default().Fatal().Err(err).Msg("config load fail")
	}
	conf.ParseFlags()

	log := logger.NewConsole(conf.Hub.Debug, "hub", false)
	log.Info().Msgf("version %s", Version)
	if log.GetLevel() < logger.InfoLevel {
		log.Debug().Msgf("config: %+v", conf)
	}

	r, err := relay.New(conf, log)
	if err != nil {
		log.Fatal().Err(err).Msg("relay init fail")
	}
	r.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		if err := r.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("service shutdown errors")
		}
	}()
	<-os.ExpectTermination()
	cancel()
}
