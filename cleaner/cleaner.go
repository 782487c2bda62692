package cleaner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/CptQuak/taxi/cleaner/config"
	"github.com/CptQuak/taxi/cleaner/stage"
	"github.com/CptQuak/taxi/cleaner/stage/features"
	"github.com/CptQuak/taxi/cleaner/stage/imputation"
	"github.com/CptQuak/taxi/cleaner/stage/inferred"
	"github.com/CptQuak/taxi/cleaner/stage/integrity"
	"github.com/CptQuak/taxi/datasource"
	"github.com/CptQuak/taxi/domain/business/datewindow"
	"github.com/CptQuak/taxi/domain/business/zonemapping"
	"github.com/CptQuak/taxi/domain/entities/trip"
)

// TripLoader reads the rows of a monthly trip file
type TripLoader interface {
	LoadTrips(path string) ([]trip.TripRecord, error)
}

// ZoneLoader builds the zone to borough mapping found under a data directory
type ZoneLoader interface {
	LoadZoneMapping(dataPath string) (*zonemapping.ZoneMapping, error)
}

// StageObserver receives the report of every stage and the outcome of every run
type StageObserver interface {
	ObserveStage(report *stage.Report)
	ObserveRun(duration time.Duration, err error)
}

// Result output of a cleaning run
// + RunID: random identifier of the run
// + Window: month that was cleaned
// + State: last state reached by the trip table
// + Trips: cleaned and enriched trips, in source order
// + Reports: one report per executed stage, in execution order
type Result struct {
	RunID   string
	Window  datewindow.DateWindow
	State   State
	Trips   []trip.EnrichedTrip
	Reports []*stage.Report
}

type Cleaner struct {
	config   *config.CleanerConfig
	trips    TripLoader
	zones    ZoneLoader
	observer StageObserver
}

// NewCleaner returns a Cleaner. observer may be nil.
func NewCleaner(cleanerConfig *config.CleanerConfig, trips TripLoader, zones ZoneLoader, observer StageObserver) (*Cleaner, error) {
	if cleanerConfig == nil {
		return nil, ErrNilConfig
	}

	return &Cleaner{
		config:   cleanerConfig,
		trips:    trips,
		zones:    zones,
		observer: observer,
	}, nil
}

// CleanYellowTaxi loads the trips of the given month under dataPath and runs every cleaning stage over them.
// The first failing step aborts the run, no partial result is returned.
func (c *Cleaner) CleanYellowTaxi(dataPath string, year int, month int) (*Result, error) {
	startTime := time.Now()
	result, err := c.clean(dataPath, year, month)
	if c.observer != nil {
		c.observer.ObserveRun(time.Since(startTime), err)
	}

	if err != nil {
		log.Errorf("[method: CleanYellowTaxi][status: error] cleaning %04d-%02d: %s", year, month, err.Error())
		return nil, err
	}

	log.Infof("[method: CleanYellowTaxi][runID: %s][status: OK] %v trips left for %s", result.RunID, len(result.Trips), result.Window)
	return result, nil
}

func (c *Cleaner) clean(dataPath string, year int, month int) (*Result, error) {
	window := datewindow.Resolve(year, month)
	result := &Result{
		RunID:  uuid.NewString(),
		Window: window,
	}
	log.Infof("[method: CleanYellowTaxi][runID: %s] cleaning window %s", result.RunID, window)

	mapping, err := c.zones.LoadZoneMapping(dataPath)
	if err != nil {
		return nil, err
	}
	log.Debugf("[runID: %s] zone mapping loaded with %v zones and %v boroughs", result.RunID, mapping.Len(), len(mapping.Vocabulary()))

	records, err := c.trips.LoadTrips(datasource.TripDataFilepath(dataPath, window.Start))
	if err != nil {
		return nil, err
	}
	result.State = Loaded
	log.Debugf("[runID: %s][state: %s] %v trips", result.RunID, result.State, len(records))

	records, report, err := imputation.Impute(records, c.config.Imputation)
	if err != nil {
		return nil, fmt.Errorf("error imputing missing values: %w", err)
	}
	c.advance(result, Imputed, report)

	records, report = integrity.Filter(records, window, c.config.Integrity)
	c.advance(result, IntegrityFiltered, report)

	enriched, report := features.Derive(records, mapping)
	c.advance(result, FeatureEnriched, report)

	enriched, report = inferred.Filter(enriched, c.config.Inferred)
	c.advance(result, InferredFiltered, report)

	result.Trips = enriched
	return result, nil
}

func (c *Cleaner) advance(result *Result, state State, report *stage.Report) {
	result.State = state
	result.Reports = append(result.Reports, report)
	if c.observer != nil {
		c.observer.ObserveStage(report)
	}
	log.Infof("[runID: %s][state: %s]%s", result.RunID, state, report)
}
