package imputation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CptQuak/taxi/cleaner/config"
	"github.com/CptQuak/taxi/cleaner/stage"
	"github.com/CptQuak/taxi/domain/entities/trip"
)

func completeRecord() trip.TripRecord {
	return trip.TripRecord{
		VendorID:            1,
		PassengerCount:      trip.Float64(2),
		RatecodeID:          trip.Float64(1),
		StoreAndFwdFlag:     trip.String("N"),
		CongestionSurcharge: trip.Float64(0),
		AirportFee:          trip.Float64(1.25),
	}
}

func TestImputeFillsEveryNullableColumn(t *testing.T) {
	cfg := config.DefaultConfig().Imputation
	records := []trip.TripRecord{
		completeRecord(),
		{VendorID: 2},
		{VendorID: 1, PassengerCount: trip.Float64(3)},
	}

	imputed, report, err := Impute(records, cfg)
	require.NoError(t, err)
	require.Len(t, imputed, 3)

	assert.Empty(t, CountNulls(imputed))

	second := imputed[1]
	assert.Equal(t, 0.0, *second.RatecodeID)
	assert.Equal(t, "Y", *second.StoreAndFwdFlag)
	assert.Equal(t, 2.5, *second.CongestionSurcharge)
	assert.Equal(t, 0.0, *second.AirportFee)
	assert.Equal(t, -1.0, *second.PassengerCount)

	assert.Equal(t, 3.0, *imputed[2].PassengerCount)
	assert.Equal(t, completeRecord(), imputed[0])

	assert.Equal(t, 3, report.RowsIn)
	assert.Equal(t, 3, report.RowsOut)
	assert.Equal(t, 1, report.Reasons[trip.ColumnPassengerCount])
	assert.Equal(t, 2, report.Reasons[trip.ColumnRatecodeID])
	assert.Equal(t, 2, report.Reasons[trip.ColumnAirportFee])
}

func TestImputeDoesNotMutateInput(t *testing.T) {
	records := []trip.TripRecord{{VendorID: 2}}

	_, _, err := Impute(records, config.DefaultConfig().Imputation)
	require.NoError(t, err)

	assert.Nil(t, records[0].PassengerCount)
	assert.Nil(t, records[0].StoreAndFwdFlag)
}

func TestImputeUsesConfiguredValues(t *testing.T) {
	cfg := config.ImputationConfig{
		RatecodeID:          99,
		StoreAndFwdFlag:     "N",
		CongestionSurcharge: 0,
		AirportFee:          1.25,
		PassengerCount:      -9,
	}

	imputed, _, err := Impute([]trip.TripRecord{{}}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 99.0, *imputed[0].RatecodeID)
	assert.Equal(t, "N", *imputed[0].StoreAndFwdFlag)
	assert.Equal(t, 1.25, *imputed[0].AirportFee)
	assert.Equal(t, -9.0, *imputed[0].PassengerCount)
}

func TestImputeFailsWhenNullsRemain(t *testing.T) {
	records := []trip.TripRecord{
		completeRecord(),
		{VendorID: 1, MissingColumns: []string{trip.ColumnExtra}},
		{VendorID: 1, MissingColumns: []string{trip.ColumnExtra, trip.ColumnTotalAmount}},
	}

	imputed, report, err := Impute(records, config.DefaultConfig().Imputation)
	assert.Nil(t, imputed)
	require.Error(t, err)
	assert.ErrorIs(t, err, stage.ErrFatalAssumptionViolation)

	var nullCountErr *stage.NullCountError
	require.True(t, errors.As(err, &nullCountErr))
	assert.Equal(t, map[string]int{trip.ColumnExtra: 2, trip.ColumnTotalAmount: 1}, nullCountErr.Counts)
	assert.Equal(t, 3, report.RowsIn)
}

func TestImputeEmptyBatch(t *testing.T) {
	imputed, report, err := Impute(nil, config.DefaultConfig().Imputation)
	require.NoError(t, err)
	assert.Empty(t, imputed)
	assert.Equal(t, 0, report.Dropped())
}
