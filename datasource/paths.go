package datasource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	tripDataFilePattern = "yellow_tripdata_%s.parquet"
	zonesDirectory      = "taxi_zones"
	zoneLookupFilename  = "taxi+_zone_lookup.csv"
)

// TripDataFilepath returns the path of the trip file of a month. startDate has the YYYY-MM format.
func TripDataFilepath(dataPath string, startDate string) string {
	return filepath.Join(dataPath, fmt.Sprintf(tripDataFilePattern, startDate))
}

// ZoneLookupFilepath returns the path of the taxi zone lookup table
func ZoneLookupFilepath(dataPath string) string {
	return filepath.Join(dataPath, zonesDirectory, zoneLookupFilename)
}

// OpenResource opens a file. If the file does not exist the error wraps ErrMissingResource.
func OpenResource(path string, description string) (*os.File, error) {
	resource, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found at %s", ErrMissingResource, description, path)
		}
		return nil, fmt.Errorf("error opening %s %s: %w", description, path, err)
	}

	return resource, nil
}
