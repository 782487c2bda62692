package inferred

import (
	log "github.com/sirupsen/logrus"

	"github.com/CptQuak/taxi/cleaner/config"
	"github.com/CptQuak/taxi/cleaner/stage"
	"github.com/CptQuak/taxi/domain/entities/trip"
)

// Reasons reported when a trip is implausible
const (
	ReasonTooFar              = "trip_distance too long"
	ReasonTooLong             = "trip_time_min too long"
	ReasonTooFarForShortTime  = "too far for a short trip"
	ReasonTooLongForShortDist = "too long for a short distance"
	ReasonTotalAmount         = "total_amount too high"
)

// Filter returns the trips inside the bounds inferred from the data, keeping their order.
// The short trip bounds overlap at their thresholds: a trip of exactly ShortTripTimeMin minutes
// or ShortDistance miles satisfies both sides of its condition.
func Filter(trips []trip.EnrichedTrip, cfg config.InferredConfig) ([]trip.EnrichedTrip, *stage.Report) {
	report := stage.NewReport(stage.Inferred, len(trips))
	var plausible []trip.EnrichedTrip

	for idx := range trips {
		reasons := Violations(trips[idx], cfg)
		if len(reasons) > 0 {
			for _, reason := range reasons {
				report.Add(reason)
			}
			log.Tracef("[stage: %s] implausible trip at row %v, reasons: %v", stage.Inferred, idx, reasons)
			continue
		}
		plausible = append(plausible, trips[idx])
	}

	report.RowsOut = len(plausible)
	return plausible, report
}

// Violations returns the inferred bounds that the trip does not satisfy
func Violations(enriched trip.EnrichedTrip, cfg config.InferredConfig) []string {
	var reasons []string
	distance := enriched.TripDistance
	minutes := enriched.TripTimeMin

	if distance > cfg.MaxTripDistance {
		reasons = append(reasons, ReasonTooFar)
	}

	if minutes > cfg.MaxTripTimeMin {
		reasons = append(reasons, ReasonTooLong)
	}

	// short trips cannot cover long distances
	if !(minutes >= cfg.ShortTripTimeMin || (minutes <= cfg.ShortTripTimeMin && distance <= cfg.ShortTripMaxDistance)) {
		reasons = append(reasons, ReasonTooFarForShortTime)
	}

	// short distances cannot take long
	if !(distance >= cfg.ShortDistance || (distance <= cfg.ShortDistance && minutes <= cfg.ShortDistanceMaxTimeMin)) {
		reasons = append(reasons, ReasonTooLongForShortDist)
	}

	if !(enriched.TotalAmount < cfg.MaxTotalAmount) {
		reasons = append(reasons, ReasonTotalAmount)
	}

	return reasons
}
