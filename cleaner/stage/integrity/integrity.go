package integrity

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/CptQuak/taxi/cleaner/config"
	"github.com/CptQuak/taxi/cleaner/stage"
	"github.com/CptQuak/taxi/domain/business/datewindow"
	"github.com/CptQuak/taxi/domain/entities/trip"
	"github.com/CptQuak/taxi/utils"
)

// Reasons reported when a trip is invalid
const (
	ReasonVendorID            = "VendorID not valid"
	ReasonLocationID          = "location ID out of range"
	ReasonPassengerCount      = "passenger_count out of range"
	ReasonRatecodeID          = "RatecodeID out of range"
	ReasonStoreAndFwdFlag     = "store_and_fwd_flag not valid"
	ReasonPaymentType         = "payment_type out of range"
	ReasonAirportFee          = "airport_fee not valid"
	ReasonMTATax              = "mta_tax not valid"
	ReasonCongestionSurcharge = "congestion_surcharge not valid"
	ReasonNegativeAmount      = "negative amount"
	ReasonOutsideWindow       = "date outside of window"
	ReasonDropoffNotAfter     = "drop-off not after pickup"
)

// Filter returns the records that hold the documented values in every field, keeping their order.
// Pickup and drop-off must be inside window (both ends inclusive) and drop-off must be strictly after pickup,
// which removes zero second trips.
func Filter(records []trip.TripRecord, window datewindow.DateWindow, cfg config.IntegrityConfig) ([]trip.TripRecord, *stage.Report) {
	report := stage.NewReport(stage.Integrity, len(records))
	var valid []trip.TripRecord

	for idx := range records {
		invalidReasons := Violations(records[idx], window, cfg)
		if len(invalidReasons) > 0 {
			for _, reason := range invalidReasons {
				report.Add(reason)
			}
			log.Tracef("[stage: %s] invalid trip at row %v, reasons: %v", stage.Integrity, idx, invalidReasons)
			continue
		}
		valid = append(valid, records[idx])
	}

	report.RowsOut = len(valid)
	return valid, report
}

// Violations returns the constraints that the record does not satisfy. Nulls never satisfy a constraint.
func Violations(record trip.TripRecord, window datewindow.DateWindow, cfg config.IntegrityConfig) []string {
	var invalidReasons []string

	if !isCode(record.VendorID) || !utils.ContainsInt(int(record.VendorID), cfg.VendorIDs) {
		invalidReasons = append(invalidReasons, ReasonVendorID)
	}

	if !cfg.LocationIDRange.Contains(record.DOLocationID) || !cfg.LocationIDRange.Contains(record.PULocationID) {
		invalidReasons = append(invalidReasons, ReasonLocationID)
	}

	// imputed passengers are kept with the sentinel value
	passengerCount, ok := value(record.PassengerCount)
	if !ok || !(cfg.PassengerCountRange.Contains(passengerCount) || passengerCount == cfg.PassengerCountSentinel) {
		invalidReasons = append(invalidReasons, ReasonPassengerCount)
	}

	ratecodeID, ok := value(record.RatecodeID)
	if !ok || !cfg.RatecodeIDRange.Contains(ratecodeID) {
		invalidReasons = append(invalidReasons, ReasonRatecodeID)
	}

	if record.StoreAndFwdFlag == nil || !utils.ContainsString(*record.StoreAndFwdFlag, cfg.StoreAndFwdFlags) {
		invalidReasons = append(invalidReasons, ReasonStoreAndFwdFlag)
	}

	if !cfg.PaymentTypeRange.Contains(record.PaymentType) {
		invalidReasons = append(invalidReasons, ReasonPaymentType)
	}

	airportFee, ok := value(record.AirportFee)
	if !ok || !utils.ContainsFloat(airportFee, cfg.AirportFees) {
		invalidReasons = append(invalidReasons, ReasonAirportFee)
	}

	if !utils.ContainsFloat(record.MTATax, cfg.MTATaxes) {
		invalidReasons = append(invalidReasons, ReasonMTATax)
	}

	congestionSurcharge, ok := value(record.CongestionSurcharge)
	if !ok || !utils.ContainsFloat(congestionSurcharge, cfg.CongestionSurcharges) {
		invalidReasons = append(invalidReasons, ReasonCongestionSurcharge)
	}

	if record.FareAmount < 0 || record.Extra < 0 || record.TipAmount < 0 || record.TollsAmount < 0 || record.TotalAmount < 0 {
		invalidReasons = append(invalidReasons, ReasonNegativeAmount)
	}

	if !window.Contains(record.PickupDatetime) || !window.Contains(record.DropoffDatetime) {
		invalidReasons = append(invalidReasons, ReasonOutsideWindow)
	}

	if !record.DropoffDatetime.After(record.PickupDatetime) {
		invalidReasons = append(invalidReasons, ReasonDropoffNotAfter)
	}

	return invalidReasons
}

// isCode returns true if v has no fractional part
func isCode(v float64) bool {
	return v == math.Trunc(v)
}

func value(nullable *float64) (float64, bool) {
	if nullable == nil {
		return 0, false
	}
	return *nullable, true
}
