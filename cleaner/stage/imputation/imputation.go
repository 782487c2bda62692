package imputation

import (
	log "github.com/sirupsen/logrus"

	"github.com/CptQuak/taxi/cleaner/config"
	"github.com/CptQuak/taxi/cleaner/stage"
	"github.com/CptQuak/taxi/domain/entities/trip"
)

// Impute returns a copy of records where the nulls of RatecodeID, store_and_fwd_flag, congestion_surcharge,
// airport_fee and passenger_count are filled with the configured values. After filling, no column may have a
// null: if one does, the null counts are logged and a *stage.NullCountError is returned.
func Impute(records []trip.TripRecord, cfg config.ImputationConfig) ([]trip.TripRecord, *stage.Report, error) {
	report := stage.NewReport(stage.Imputation, len(records))
	imputed := make([]trip.TripRecord, len(records))
	copy(imputed, records)

	for idx := range imputed {
		record := &imputed[idx]
		if record.RatecodeID == nil {
			record.RatecodeID = trip.Float64(cfg.RatecodeID)
			report.Add(trip.ColumnRatecodeID)
		}
		if record.StoreAndFwdFlag == nil {
			record.StoreAndFwdFlag = trip.String(cfg.StoreAndFwdFlag)
			report.Add(trip.ColumnStoreAndFwdFlag)
		}
		if record.CongestionSurcharge == nil {
			record.CongestionSurcharge = trip.Float64(cfg.CongestionSurcharge)
			report.Add(trip.ColumnCongestionSurcharge)
		}
		if record.AirportFee == nil {
			record.AirportFee = trip.Float64(cfg.AirportFee)
			report.Add(trip.ColumnAirportFee)
		}
		if record.PassengerCount == nil {
			record.PassengerCount = trip.Float64(cfg.PassengerCount)
			report.Add(trip.ColumnPassengerCount)
		}
	}
	report.RowsOut = len(imputed)

	nullCounts := CountNulls(imputed)
	if len(nullCounts) > 0 {
		for column, count := range nullCounts {
			log.Errorf("[stage: %s][status: error] column %s has %v missing values after value imputation", stage.Imputation, column, count)
		}
		return nil, report, &stage.NullCountError{Counts: nullCounts}
	}

	return imputed, report, nil
}

// CountNulls returns the amount of nulls per column, columns without nulls are not included
func CountNulls(records []trip.TripRecord) map[string]int {
	nullCounts := make(map[string]int)
	for _, record := range records {
		if record.RatecodeID == nil {
			nullCounts[trip.ColumnRatecodeID]++
		}
		if record.StoreAndFwdFlag == nil {
			nullCounts[trip.ColumnStoreAndFwdFlag]++
		}
		if record.CongestionSurcharge == nil {
			nullCounts[trip.ColumnCongestionSurcharge]++
		}
		if record.AirportFee == nil {
			nullCounts[trip.ColumnAirportFee]++
		}
		if record.PassengerCount == nil {
			nullCounts[trip.ColumnPassengerCount]++
		}
		for _, column := range record.MissingColumns {
			nullCounts[column]++
		}
	}
	return nullCounts
}
