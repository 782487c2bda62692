package trip

import (
	"encoding/json"
	"time"
)

// Column names as they appear in the monthly yellow taxi files
const (
	ColumnVendorID             = "VendorID"
	ColumnPickupDatetime       = "tpep_pickup_datetime"
	ColumnDropoffDatetime      = "tpep_dropoff_datetime"
	ColumnPassengerCount       = "passenger_count"
	ColumnTripDistance         = "trip_distance"
	ColumnRatecodeID           = "RatecodeID"
	ColumnStoreAndFwdFlag      = "store_and_fwd_flag"
	ColumnPULocationID         = "PULocationID"
	ColumnDOLocationID         = "DOLocationID"
	ColumnPaymentType          = "payment_type"
	ColumnFareAmount           = "fare_amount"
	ColumnExtra                = "extra"
	ColumnMTATax               = "mta_tax"
	ColumnTipAmount            = "tip_amount"
	ColumnTollsAmount          = "tolls_amount"
	ColumnImprovementSurcharge = "improvement_surcharge"
	ColumnTotalAmount          = "total_amount"
	ColumnCongestionSurcharge  = "congestion_surcharge"
	ColumnAirportFee           = "airport_fee"
)

// TripRecord struct that contains one row of a monthly yellow taxi file.
// Nullable columns are pointers: nil means that the value was missing in the source file.
// Codes such as VendorID or the location IDs keep the float value of the file, a fractional code is never valid.
// + MissingColumns: names of the non-nullable columns that came empty for this row
type TripRecord struct {
	VendorID             float64   `json:"VendorID"`
	PickupDatetime       time.Time `json:"tpep_pickup_datetime"`
	DropoffDatetime      time.Time `json:"tpep_dropoff_datetime"`
	PassengerCount       *float64  `json:"passenger_count"`
	TripDistance         float64   `json:"trip_distance"`
	RatecodeID           *float64  `json:"RatecodeID"`
	StoreAndFwdFlag      *string   `json:"store_and_fwd_flag"`
	PULocationID         float64   `json:"PULocationID"`
	DOLocationID         float64   `json:"DOLocationID"`
	PaymentType          float64   `json:"payment_type"`
	FareAmount           float64   `json:"fare_amount"`
	Extra                float64   `json:"extra"`
	MTATax               float64   `json:"mta_tax"`
	TipAmount            float64   `json:"tip_amount"`
	TollsAmount          float64   `json:"tolls_amount"`
	ImprovementSurcharge float64   `json:"improvement_surcharge"`
	TotalAmount          float64   `json:"total_amount"`
	CongestionSurcharge  *float64  `json:"congestion_surcharge"`
	AirportFee           *float64  `json:"airport_fee"`
	MissingColumns       []string  `json:"-"`
}

// Borough categorical value of a pickup or drop-off zone.
// Code is the position of Name in the borough vocabulary, -1 when the zone is unknown.
type Borough struct {
	Code int
	Name string
}

// UndefinedBorough is the category assigned to location IDs absent from the zone mapping
var UndefinedBorough = Borough{Code: -1}

// IsDefined returns true if the borough belongs to the vocabulary
func (b Borough) IsDefined() bool {
	return b.Code >= 0
}

func (b Borough) MarshalJSON() ([]byte, error) {
	if !b.IsDefined() {
		return []byte("null"), nil
	}
	return json.Marshal(b.Name)
}

// DerivedFields features computed from a TripRecord
// + TripTimeMin: drop-off minus pickup, in minutes
// + PUBorough: borough of the pickup zone
// + DOBorough: borough of the drop-off zone
type DerivedFields struct {
	TripTimeMin float64 `json:"trip_time_min"`
	PUBorough   Borough `json:"PU_Borough"`
	DOBorough   Borough `json:"DO_Borough"`
}

// EnrichedTrip a TripRecord with its derived fields
type EnrichedTrip struct {
	TripRecord
	DerivedFields
}

// Float64 returns a pointer to v
func Float64(v float64) *float64 {
	return &v
}

// String returns a pointer to s
func String(s string) *string {
	return &s
}
