package main

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/CptQuak/taxi/cleaner"
	"github.com/CptQuak/taxi/cleaner/config"
	"github.com/CptQuak/taxi/communication"
	"github.com/CptQuak/taxi/datasource"
	"github.com/CptQuak/taxi/datasource/tripdata"
	"github.com/CptQuak/taxi/datasource/zones"
	"github.com/CptQuak/taxi/metrics"
	"github.com/CptQuak/taxi/publisher"
	"github.com/CptQuak/taxi/settings"
)

const publishTimeout = 5 * time.Minute

func runClean(cmd *cobra.Command) int {
	cleanerSettings, err := settings.Load()
	if err != nil {
		log.Errorf("[method: runClean][status: error] %s", err.Error())
		return ExitInvalidParams
	}
	applyFlags(cmd, cleanerSettings)

	if err = InitLogger(cleanerSettings.LogLevel); err != nil {
		log.Errorf("[method: runClean][status: error] invalid log level %s: %s", cleanerSettings.LogLevel, err.Error())
		return ExitInvalidParams
	}

	runParams := settings.RunParams{Year: year, Month: month}
	if err = runParams.Validate(); err != nil {
		log.Errorf("[method: runClean][status: error] %s", err.Error())
		return ExitInvalidParams
	}

	cleanerConfig := config.DefaultConfig()
	if cleanerSettings.ConfigFile != "" {
		cleanerConfig, err = config.LoadConfig(cleanerSettings.ConfigFile)
		if err != nil {
			log.Errorf("[method: runClean][status: error] %s", err.Error())
			return ExitInvalidParams
		}
	}

	registry := prometheus.NewRegistry()
	pipelineMetrics := metrics.NewPipelineMetrics(registry)
	defer writeMetrics(cleanerSettings.MetricsFile, registry)

	yellowTaxiCleaner, err := cleaner.NewCleaner(cleanerConfig, tripdata.NewParquetLoader(), zones.NewLoader(), pipelineMetrics)
	if err != nil {
		log.Errorf("[method: runClean][status: error] %s", err.Error())
		return ExitRuntimeError
	}

	result, err := yellowTaxiCleaner.CleanYellowTaxi(cleanerSettings.DataPath, runParams.Year, runParams.Month)
	if err != nil {
		if errors.Is(err, datasource.ErrMissingResource) {
			return ExitMissingResource
		}
		return ExitRuntimeError
	}

	if publish {
		if err = publishTrips(cleanerSettings, result); err != nil {
			log.Errorf("[method: runClean][status: error] %s", err.Error())
			return ExitRuntimeError
		}
	}

	return ExitSuccess
}

// applyFlags overrides the environment settings with the flags set by the user
func applyFlags(cmd *cobra.Command, s *settings.Settings) {
	if cmd.Flags().Changed("data-path") {
		s.DataPath = dataPath
	}
	if cmd.Flags().Changed("config") {
		s.ConfigFile = configFile
	}
	if cmd.Flags().Changed("metrics-file") {
		s.MetricsFile = metricsFile
	}
	if cmd.Flags().Changed("log-level") {
		s.LogLevel = logLevel
	}
}

func publishTrips(s *settings.Settings, result *cleaner.Result) error {
	rabbitMQ, err := communication.NewRabbitMQ(s.RabbitURL)
	if err != nil {
		return err
	}
	defer func() {
		if killErr := rabbitMQ.KillBadBunny(); killErr != nil {
			log.Warnf("[method: publishTrips] %s", killErr.Error())
		}
	}()

	queueConfig := communication.QueueDeclarationConfig{
		Name:    s.QueueName,
		Durable: s.QueueDurable,
	}
	if err = rabbitMQ.DeclareNonAnonymousQueues([]communication.QueueDeclarationConfig{queueConfig}); err != nil {
		return err
	}

	tripPublisher, err := publisher.NewTripPublisher(rabbitMQ, publisher.PublisherConfig{
		Queue:     queueConfig,
		BatchSize: s.BatchSize,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	return tripPublisher.PublishTrips(ctx, result.RunID, result.Window.Start, result.Trips)
}

func writeMetrics(path string, registry *prometheus.Registry) {
	if path == "" {
		return
	}

	if err := metrics.WriteTextfile(path, registry); err != nil {
		log.Warnf("[method: writeMetrics] %s", err.Error())
		return
	}
	log.Debugf("[method: writeMetrics][status: OK] metrics written to %s", path)
}
