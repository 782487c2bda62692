package datasource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripDataFilepath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("data", "yellow_tripdata_2023-09.parquet"),
		TripDataFilepath("data", "2023-09"),
	)
}

func TestZoneLookupFilepath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("data", "taxi_zones", "taxi+_zone_lookup.csv"),
		ZoneLookupFilepath("data"),
	)
}

func TestOpenResource(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenResource(filepath.Join(dir, "absent.csv"), "zone lookup table")
	assert.ErrorIs(t, err, ErrMissingResource)

	path := filepath.Join(dir, "present.csv")
	require.NoError(t, os.WriteFile(path, []byte("LocationID,Borough\n"), 0o644))
	resource, err := OpenResource(path, "zone lookup table")
	require.NoError(t, err)
	assert.NoError(t, resource.Close())
}
