package zones

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	log "github.com/sirupsen/logrus"

	"github.com/CptQuak/taxi/datasource"
	"github.com/CptQuak/taxi/domain/business/zonemapping"
)

const (
	locationIDColumn = "LocationID"
	boroughColumn    = "Borough"
	// the lookup table ends with the "Unknown" and "Outside of NYC" zones, they are not real zones
	trailerRows = 2
)

var nanValues = []string{"", "NA", "N/A", "NaN", "<nil>"}

// Loader reads the taxi zone lookup table from a data directory
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// LoadZoneMapping reads {dataPath}/taxi_zones/taxi+_zone_lookup.csv and builds the LocationID -> Borough mapping
func (l *Loader) LoadZoneMapping(dataPath string) (*zonemapping.ZoneMapping, error) {
	lookupPath := datasource.ZoneLookupFilepath(dataPath)
	lookupFile, err := datasource.OpenResource(lookupPath, "zone lookup table")
	if err != nil {
		return nil, err
	}
	defer lookupFile.Close()

	mapping, err := ReadZoneMapping(lookupFile)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", lookupPath, err)
	}

	log.Debugf("[method: LoadZoneMapping][status: OK] %v zones mapped into %v boroughs", mapping.Len(), len(mapping.Vocabulary()))
	return mapping, nil
}

// ReadZoneMapping builds the mapping from a lookup table in CSV format. The last two rows of the table are
// dropped. Rows without borough are skipped, so their zones resolve to the undefined borough.
func ReadZoneMapping(reader io.Reader) (*zonemapping.ZoneMapping, error) {
	zonesDF := dataframe.ReadCSV(reader,
		dataframe.WithTypes(map[string]series.Type{
			locationIDColumn: series.Int,
			boroughColumn:    series.String,
		}),
		dataframe.NaNValues(nanValues),
	)
	if zonesDF.Err != nil {
		return nil, fmt.Errorf("error parsing zone lookup table: %w", zonesDF.Err)
	}

	dataRows := zonesDF.Nrow() - trailerRows
	if dataRows <= 0 {
		return zonemapping.New(nil, nil)
	}

	rowIndexes := make([]int, dataRows)
	for idx := range rowIndexes {
		rowIndexes[idx] = idx
	}

	zonesDF = zonesDF.Subset(rowIndexes).Select([]string{locationIDColumn, boroughColumn})
	if zonesDF.Err != nil {
		return nil, fmt.Errorf("%w: %s", datasource.ErrMissingColumn, zonesDF.Err)
	}

	locationIDs, err := zonesDF.Col(locationIDColumn).Int()
	if err != nil {
		return nil, fmt.Errorf("error reading %s column: %w", locationIDColumn, err)
	}

	boroughSeries := zonesDF.Col(boroughColumn)
	boroughNames := boroughSeries.Records()
	missingBorough := boroughSeries.IsNaN()

	var ids []int
	var boroughs []string
	for idx := range locationIDs {
		if missingBorough[idx] {
			log.Tracef("[method: ReadZoneMapping] skipping zone %v without borough", locationIDs[idx])
			continue
		}
		ids = append(ids, locationIDs[idx])
		boroughs = append(boroughs, boroughNames[idx])
	}

	return zonemapping.New(ids, boroughs)
}
