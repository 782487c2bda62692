package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/CptQuak/taxi/utils"
)

// Range closed interval [Min, Max]
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max" validate:"gtefield=Min"`
}

// Contains returns true if Min <= value <= Max
func (r Range) Contains(value float64) bool {
	return r.Min <= value && value <= r.Max
}

// ImputationConfig values used to fill each nullable column
type ImputationConfig struct {
	RatecodeID          float64 `yaml:"ratecode_id"`
	StoreAndFwdFlag     string  `yaml:"store_and_fwd_flag" validate:"required"`
	CongestionSurcharge float64 `yaml:"congestion_surcharge"`
	AirportFee          float64 `yaml:"airport_fee"`
	PassengerCount      float64 `yaml:"passenger_count"`
}

// IntegrityConfig values documented as valid for each field of a trip
type IntegrityConfig struct {
	VendorIDs              []int     `yaml:"vendor_ids" validate:"required,min=1"`
	LocationIDRange        Range     `yaml:"location_id_range"`
	PassengerCountRange    Range     `yaml:"passenger_count_range"`
	PassengerCountSentinel float64   `yaml:"passenger_count_sentinel"`
	RatecodeIDRange        Range     `yaml:"ratecode_id_range"`
	StoreAndFwdFlags       []string  `yaml:"store_and_fwd_flags" validate:"required,min=1"`
	PaymentTypeRange       Range     `yaml:"payment_type_range"`
	AirportFees            []float64 `yaml:"airport_fees" validate:"required,min=1"`
	MTATaxes               []float64 `yaml:"mta_taxes" validate:"required,min=1"`
	CongestionSurcharges   []float64 `yaml:"congestion_surcharges" validate:"required,min=1"`
}

// InferredConfig bounds inferred from the exploratory analysis of the trips
// + MaxTripDistance: 99.8% of the trips are below it, miles
// + MaxTripTimeMin: 99.8% of the trips are below it, minutes
// + ShortTripTimeMin, ShortTripMaxDistance: trips shorter than ShortTripTimeMin cannot go further than ShortTripMaxDistance
// + ShortDistance, ShortDistanceMaxTimeMin: trips shorter than ShortDistance cannot take longer than ShortDistanceMaxTimeMin
// + MaxTotalAmount: exclusive ceiling that separates fares from penalties
type InferredConfig struct {
	MaxTripDistance         float64 `yaml:"max_trip_distance" validate:"gt=0"`
	MaxTripTimeMin          float64 `yaml:"max_trip_time_min" validate:"gt=0"`
	ShortTripTimeMin        float64 `yaml:"short_trip_time_min" validate:"gt=0"`
	ShortTripMaxDistance    float64 `yaml:"short_trip_max_distance" validate:"gt=0"`
	ShortDistance           float64 `yaml:"short_distance" validate:"gt=0"`
	ShortDistanceMaxTimeMin float64 `yaml:"short_distance_max_time_min" validate:"gt=0"`
	MaxTotalAmount          float64 `yaml:"max_total_amount" validate:"gt=0"`
}

type CleanerConfig struct {
	Imputation ImputationConfig `yaml:"imputation"`
	Integrity  IntegrityConfig  `yaml:"integrity"`
	Inferred   InferredConfig   `yaml:"inferred"`
}

// DefaultConfig returns the values chosen after the exploratory analysis of the yellow taxi data
func DefaultConfig() *CleanerConfig {
	return &CleanerConfig{
		Imputation: ImputationConfig{
			// out of range, so it can be recognized later
			RatecodeID: 0,
			// a problem with the server connection means the trip was stored in the car
			StoreAndFwdFlag:     "Y",
			CongestionSurcharge: 2.5,
			AirportFee:          0,
			PassengerCount:      -1,
		},
		Integrity: IntegrityConfig{
			VendorIDs:       []int{1, 2},
			LocationIDRange: Range{Min: 1, Max: 263},
			// up to 5 passengers and a child
			PassengerCountRange:    Range{Min: 1, Max: 6},
			PassengerCountSentinel: -1,
			RatecodeIDRange:        Range{Min: 0, Max: 6},
			StoreAndFwdFlags:       []string{"Y", "N"},
			PaymentTypeRange:       Range{Min: 1, Max: 6},
			AirportFees:            []float64{0, 1.25},
			MTATaxes:               []float64{0, 0.5},
			CongestionSurcharges:   []float64{0, 2.5},
		},
		Inferred: InferredConfig{
			MaxTripDistance:         25,
			MaxTripTimeMin:          80,
			ShortTripTimeMin:        2,
			ShortTripMaxDistance:    3,
			ShortDistance:           0.5,
			ShortDistanceMaxTimeMin: 30,
			MaxTotalAmount:          125,
		},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. Fields absent from the file keep their default value.
func LoadConfig(filepath string) (*CleanerConfig, error) {
	configFile, err := utils.GetConfigFile(filepath)
	if err != nil {
		return nil, err
	}

	cleanerConfig := DefaultConfig()
	err = yaml.Unmarshal(configFile, cleanerConfig)
	if err != nil {
		return nil, fmt.Errorf("error parsing cleaner config file: %w", err)
	}

	if err = cleanerConfig.Validate(); err != nil {
		return nil, err
	}

	return cleanerConfig, nil
}

// Validate checks the ranges and thresholds, and that the integrity stage accepts the passenger count
// that the imputation stage fills in
func (c *CleanerConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}

	if c.Integrity.PassengerCountSentinel != c.Imputation.PassengerCount {
		return fmt.Errorf("%w: passenger count sentinel %v differs from imputed value %v",
			ErrInconsistentSentinel, c.Integrity.PassengerCountSentinel, c.Imputation.PassengerCount)
	}

	return nil
}
