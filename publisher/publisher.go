package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/CptQuak/taxi/communication"
	"github.com/CptQuak/taxi/domain/entities"
	"github.com/CptQuak/taxi/domain/entities/eof"
	"github.com/CptQuak/taxi/domain/entities/trip"
)

const (
	publisherStage  = "taxi-cleaner"
	tripsStr        = "trips"
	contentTypeJson = "application/json"
)

// MessagePublisher sends a message to a queue
type MessagePublisher interface {
	PublishMessageInQueue(ctx context.Context, queueName string, message []byte, contentType string) error
}

// TripBatch message with a chunk of cleaned trips
type TripBatch struct {
	Metadata entities.Metadata   `json:"metadata"`
	Trips    []trip.EnrichedTrip `json:"trips"`
}

// PublisherConfig
// + Queue: queue where the cleaned trips are sent
// + BatchSize: max amount of trips per message
type PublisherConfig struct {
	Queue     communication.QueueDeclarationConfig
	BatchSize int
}

// TripPublisher sends the cleaned trips of a run in JSON batches, followed by an EOF message
type TripPublisher struct {
	publisher MessagePublisher
	config    PublisherConfig
}

func NewTripPublisher(publisher MessagePublisher, publisherConfig PublisherConfig) (*TripPublisher, error) {
	if publisherConfig.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidBatchSize, publisherConfig.BatchSize)
	}

	return &TripPublisher{
		publisher: publisher,
		config:    publisherConfig,
	}, nil
}

// PublishTrips sends trips in batches of BatchSize and then the EOF message eof.trips.window.
// The EOF is sent even when there are no trips, so consumers know the run is over.
func (tp *TripPublisher) PublishTrips(ctx context.Context, runID string, window string, trips []trip.EnrichedTrip) error {
	queueName := tp.config.Queue.Name
	batches := 0
	for start := 0; start < len(trips); start += tp.config.BatchSize {
		end := start + tp.config.BatchSize
		if end > len(trips) {
			end = len(trips)
		}

		batch := TripBatch{
			Metadata: entities.NewMetadata(runID, window, tripsStr, publisherStage, ""),
			Trips:    trips[start:end],
		}

		batchBytes, err := json.Marshal(batch)
		if err != nil {
			log.Errorf("[method: PublishTrips][status: error] error marshaling batch: %s", err.Error())
			return fmt.Errorf("error marshaling batch of trips: %w", err)
		}

		err = tp.publisher.PublishMessageInQueue(ctx, queueName, batchBytes, contentTypeJson)
		if err != nil {
			log.Errorf("[method: PublishTrips][status: error] error publishing batch in queue %s: %s", queueName, err.Error())
			return fmt.Errorf("error publishing batch of trips: %w", err)
		}
		batches++
	}

	eofBytes, err := json.Marshal(eof.NewEOF(runID, window, publisherStage, tripsStr))
	if err != nil {
		return fmt.Errorf("error marshaling EOF: %w", err)
	}

	err = tp.publisher.PublishMessageInQueue(ctx, queueName, eofBytes, contentTypeJson)
	if err != nil {
		log.Errorf("[method: PublishTrips][status: error] error publishing EOF in queue %s: %s", queueName, err.Error())
		return fmt.Errorf("error publishing EOF: %w", err)
	}

	log.Infof("[method: PublishTrips][runID: %s][status: OK] %v trips published in %v batches to %s", runID, len(trips), batches, queueName)
	return nil
}
