package features

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/CptQuak/taxi/cleaner/stage"
	"github.com/CptQuak/taxi/domain/business/zonemapping"
	"github.com/CptQuak/taxi/domain/entities/trip"
)

const (
	ReasonUndefinedPickupBorough  = "PU_Borough undefined"
	ReasonUndefinedDropoffBorough = "DO_Borough undefined"
)

// Derive adds the trip time in minutes and the pickup and drop-off boroughs to each record.
// Location IDs absent from the mapping get the undefined borough, the report counts them.
func Derive(records []trip.TripRecord, mapping *zonemapping.ZoneMapping) ([]trip.EnrichedTrip, *stage.Report) {
	report := stage.NewReport(stage.Features, len(records))
	enriched := make([]trip.EnrichedTrip, len(records))

	for idx, record := range records {
		derived := trip.DerivedFields{
			TripTimeMin: record.DropoffDatetime.Sub(record.PickupDatetime).Minutes(),
			PUBorough:   categorize(mapping, record.PULocationID),
			DOBorough:   categorize(mapping, record.DOLocationID),
		}

		if !derived.PUBorough.IsDefined() {
			report.Add(ReasonUndefinedPickupBorough)
			log.Tracef("[stage: %s] row %v: pickup zone %v has no borough", stage.Features, idx, record.PULocationID)
		}
		if !derived.DOBorough.IsDefined() {
			report.Add(ReasonUndefinedDropoffBorough)
			log.Tracef("[stage: %s] row %v: drop-off zone %v has no borough", stage.Features, idx, record.DOLocationID)
		}

		enriched[idx] = trip.EnrichedTrip{
			TripRecord:    record,
			DerivedFields: derived,
		}
	}

	report.RowsOut = len(enriched)
	return enriched, report
}

// categorize looks up a location ID read from the trip file, fractional IDs match no zone
func categorize(mapping *zonemapping.ZoneMapping, locationID float64) trip.Borough {
	if locationID != math.Trunc(locationID) {
		return trip.UndefinedBorough
	}
	return mapping.Categorize(int(locationID))
}
