package tripdata

import (
	"time"

	"github.com/CptQuak/taxi/domain/entities/trip"
)

// column values of one column of a row group, valid[i] is false when row i is null
type column struct {
	numbers []float64
	times   []time.Time
	strings []string
	valid   []bool
}

// rowGroupColumns decoded columns of a row group by column name. Absent columns are not in the map.
type rowGroupColumns map[string]*column

// tripAt builds the TripRecord of a row. Nulls in non-nullable columns are recorded in MissingColumns.
func (rc rowGroupColumns) tripAt(row int) trip.TripRecord {
	var missingColumns []string
	number := func(name string) float64 {
		value, ok := rc.number(name, row)
		if !ok {
			missingColumns = append(missingColumns, name)
		}
		return value
	}
	timestamp := func(name string) time.Time {
		col, ok := rc[name]
		if !ok || !col.valid[row] {
			missingColumns = append(missingColumns, name)
			return time.Time{}
		}
		return col.times[row]
	}

	record := trip.TripRecord{
		VendorID:             number(trip.ColumnVendorID),
		PickupDatetime:       timestamp(trip.ColumnPickupDatetime),
		DropoffDatetime:      timestamp(trip.ColumnDropoffDatetime),
		PassengerCount:       rc.nullableNumber(trip.ColumnPassengerCount, row),
		TripDistance:         number(trip.ColumnTripDistance),
		RatecodeID:           rc.nullableNumber(trip.ColumnRatecodeID, row),
		StoreAndFwdFlag:      rc.nullableString(trip.ColumnStoreAndFwdFlag, row),
		PULocationID:         number(trip.ColumnPULocationID),
		DOLocationID:         number(trip.ColumnDOLocationID),
		PaymentType:          number(trip.ColumnPaymentType),
		FareAmount:           number(trip.ColumnFareAmount),
		Extra:                number(trip.ColumnExtra),
		MTATax:               number(trip.ColumnMTATax),
		TipAmount:            number(trip.ColumnTipAmount),
		TollsAmount:          number(trip.ColumnTollsAmount),
		ImprovementSurcharge: number(trip.ColumnImprovementSurcharge),
		TotalAmount:          number(trip.ColumnTotalAmount),
		CongestionSurcharge:  rc.nullableNumber(trip.ColumnCongestionSurcharge, row),
		AirportFee:           rc.nullableNumber(trip.ColumnAirportFee, row),
	}
	record.MissingColumns = missingColumns

	return record
}

// number returns the value of a non-nullable column. Absent optional columns read as zero.
func (rc rowGroupColumns) number(name string, row int) (float64, bool) {
	col, ok := rc[name]
	if !ok {
		return 0, true
	}
	return col.numbers[row], col.valid[row]
}

func (rc rowGroupColumns) nullableNumber(name string, row int) *float64 {
	col, ok := rc[name]
	if !ok || !col.valid[row] {
		return nil
	}
	return trip.Float64(col.numbers[row])
}

func (rc rowGroupColumns) nullableString(name string, row int) *string {
	col, ok := rc[name]
	if !ok || !col.valid[row] {
		return nil
	}
	return trip.String(col.strings[row])
}
