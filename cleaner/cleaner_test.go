package cleaner

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CptQuak/taxi/cleaner/config"
	"github.com/CptQuak/taxi/cleaner/stage"
	"github.com/CptQuak/taxi/datasource"
	"github.com/CptQuak/taxi/domain/business/zonemapping"
	"github.com/CptQuak/taxi/domain/entities/trip"
)

type fakeTripLoader struct {
	records     []trip.TripRecord
	err         error
	pathsLoaded []string
}

func (f *fakeTripLoader) LoadTrips(path string) ([]trip.TripRecord, error) {
	f.pathsLoaded = append(f.pathsLoaded, path)
	return f.records, f.err
}

type fakeZoneLoader struct {
	mapping *zonemapping.ZoneMapping
	err     error
}

func (f *fakeZoneLoader) LoadZoneMapping(string) (*zonemapping.ZoneMapping, error) {
	return f.mapping, f.err
}

type recordingObserver struct {
	reports []*stage.Report
	runErrs []error
}

func (r *recordingObserver) ObserveStage(report *stage.Report) {
	r.reports = append(r.reports, report)
}

func (r *recordingObserver) ObserveRun(_ time.Duration, err error) {
	r.runErrs = append(r.runErrs, err)
}

func newMapping(t *testing.T) *zonemapping.ZoneMapping {
	t.Helper()
	mapping, err := zonemapping.New([]int{142, 236, 132}, []string{"Manhattan", "Manhattan", "Queens"})
	require.NoError(t, err)
	return mapping
}

func septemberTrip(distance float64, total float64) trip.TripRecord {
	pickup := time.Date(2023, 9, 14, 18, 5, 0, 0, time.UTC)
	return trip.TripRecord{
		VendorID:            2,
		PickupDatetime:      pickup,
		DropoffDatetime:     pickup.Add(14 * time.Minute),
		PassengerCount:      trip.Float64(1),
		TripDistance:        distance,
		RatecodeID:          trip.Float64(1),
		StoreAndFwdFlag:     trip.String("N"),
		PULocationID:        142,
		DOLocationID:        236,
		PaymentType:         1,
		FareAmount:          14.2,
		Extra:               2.5,
		MTATax:              0.5,
		TipAmount:           3.0,
		TotalAmount:         total,
		CongestionSurcharge: trip.Float64(2.5),
		AirportFee:          trip.Float64(0),
	}
}

func TestCleanYellowTaxi(t *testing.T) {
	kept := septemberTrip(2.4, 24.2)

	imputedPassengers := septemberTrip(3.1, 18)
	imputedPassengers.PassengerCount = nil
	imputedPassengers.DOLocationID = 7

	unknownVendor := septemberTrip(1.2, 12)
	unknownVendor.VendorID = 6

	penalty := septemberTrip(1.2, 130)

	trips := &fakeTripLoader{records: []trip.TripRecord{kept, unknownVendor, imputedPassengers, penalty}}
	observer := &recordingObserver{}
	cleaner, err := NewCleaner(config.DefaultConfig(), trips, &fakeZoneLoader{mapping: newMapping(t)}, observer)
	require.NoError(t, err)

	result, err := cleaner.CleanYellowTaxi("data", 2023, 9)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join("data", "yellow_tripdata_2023-09.parquet")}, trips.pathsLoaded)
	assert.Equal(t, "2023-09", result.Window.Start)
	assert.Equal(t, "2023-10", result.Window.End)
	assert.Equal(t, InferredFiltered, result.State)
	_, err = uuid.Parse(result.RunID)
	assert.NoError(t, err)

	require.Len(t, result.Trips, 2)
	assert.Equal(t, 2.4, result.Trips[0].TripDistance)
	assert.Equal(t, 14.0, result.Trips[0].TripTimeMin)
	assert.Equal(t, "Manhattan", result.Trips[0].PUBorough.Name)
	assert.Equal(t, -1.0, *result.Trips[1].PassengerCount)
	assert.False(t, result.Trips[1].DOBorough.IsDefined())

	require.Len(t, result.Reports, 4)
	expectedStages := []stage.Name{stage.Imputation, stage.Integrity, stage.Features, stage.Inferred}
	expectedRowsOut := []int{4, 3, 3, 2}
	for idx, report := range result.Reports {
		assert.Equal(t, expectedStages[idx], report.Stage)
		assert.Equal(t, expectedRowsOut[idx], report.RowsOut)
	}
	assert.Equal(t, 1, result.Reports[0].Reasons[trip.ColumnPassengerCount])

	assert.Equal(t, result.Reports, observer.reports)
	assert.Equal(t, []error{nil}, observer.runErrs)

	// source records are untouched
	assert.Nil(t, imputedPassengers.PassengerCount)
}

func TestCleanYellowTaxiDecemberLoadsDecemberFile(t *testing.T) {
	trips := &fakeTripLoader{}
	cleaner, err := NewCleaner(config.DefaultConfig(), trips, &fakeZoneLoader{mapping: newMapping(t)}, nil)
	require.NoError(t, err)

	result, err := cleaner.CleanYellowTaxi("data", 2023, 12)
	require.NoError(t, err)
	assert.Equal(t, "2024-01", result.Window.End)
	assert.Equal(t, []string{filepath.Join("data", "yellow_tripdata_2023-12.parquet")}, trips.pathsLoaded)
	assert.Empty(t, result.Trips)
	assert.Equal(t, InferredFiltered, result.State)
}

func TestCleanYellowTaxiMissingResources(t *testing.T) {
	missingZones := fmt.Errorf("%w: zone lookup table not found", datasource.ErrMissingResource)
	missingTrips := fmt.Errorf("%w: trip data file not found", datasource.ErrMissingResource)

	t.Run("zone table", func(t *testing.T) {
		trips := &fakeTripLoader{}
		observer := &recordingObserver{}
		cleaner, err := NewCleaner(config.DefaultConfig(), trips, &fakeZoneLoader{err: missingZones}, observer)
		require.NoError(t, err)

		result, err := cleaner.CleanYellowTaxi("data", 2023, 9)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, datasource.ErrMissingResource)
		assert.Empty(t, trips.pathsLoaded)
		require.Len(t, observer.runErrs, 1)
		assert.Error(t, observer.runErrs[0])
	})

	t.Run("trip file", func(t *testing.T) {
		trips := &fakeTripLoader{err: missingTrips}
		cleaner, err := NewCleaner(config.DefaultConfig(), trips, &fakeZoneLoader{mapping: newMapping(t)}, nil)
		require.NoError(t, err)

		result, err := cleaner.CleanYellowTaxi("data", 2023, 9)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, datasource.ErrMissingResource)
	})
}

func TestCleanYellowTaxiAbortsOnNullsLeftAfterImputation(t *testing.T) {
	withoutExtra := septemberTrip(2.4, 24.2)
	withoutExtra.MissingColumns = []string{trip.ColumnExtra}

	observer := &recordingObserver{}
	trips := &fakeTripLoader{records: []trip.TripRecord{septemberTrip(1, 10), withoutExtra}}
	cleaner, err := NewCleaner(config.DefaultConfig(), trips, &fakeZoneLoader{mapping: newMapping(t)}, observer)
	require.NoError(t, err)

	result, err := cleaner.CleanYellowTaxi("data", 2023, 9)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, stage.ErrFatalAssumptionViolation)

	var nullCountErr *stage.NullCountError
	require.True(t, errors.As(err, &nullCountErr))
	assert.Equal(t, map[string]int{trip.ColumnExtra: 1}, nullCountErr.Counts)
	assert.Empty(t, observer.reports)
}

func TestNewCleanerWithoutConfig(t *testing.T) {
	_, err := NewCleaner(nil, &fakeTripLoader{}, &fakeZoneLoader{}, nil)
	assert.ErrorIs(t, err, ErrNilConfig)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "inferred-filtered", InferredFiltered.String())
	assert.Equal(t, "unknown", State(42).String())
}
