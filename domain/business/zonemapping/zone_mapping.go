package zonemapping

import (
	"fmt"
	"sort"

	"github.com/CptQuak/taxi/domain/entities/trip"
)

// ZoneMapping immutable mapping from taxi zone LocationID to borough name.
// The borough vocabulary is the sorted set of mapped borough names, it gives each borough its category code.
type ZoneMapping struct {
	boroughs   map[int]string
	vocabulary []string
	codes      map[string]int
}

// New builds a ZoneMapping from two parallel slices. If a location ID is repeated the last borough wins.
func New(locationIDs []int, boroughs []string) (*ZoneMapping, error) {
	if len(locationIDs) != len(boroughs) {
		return nil, fmt.Errorf("%w: %v location IDs and %v boroughs", ErrMismatchedColumns, len(locationIDs), len(boroughs))
	}

	boroughByID := make(map[int]string, len(locationIDs))
	for idx := range locationIDs {
		boroughByID[locationIDs[idx]] = boroughs[idx]
	}

	var vocabulary []string
	codes := make(map[string]int)
	for _, borough := range boroughByID {
		if _, ok := codes[borough]; ok {
			continue
		}
		codes[borough] = 0
		vocabulary = append(vocabulary, borough)
	}

	sort.Strings(vocabulary)
	for idx, borough := range vocabulary {
		codes[borough] = idx
	}

	return &ZoneMapping{
		boroughs:   boroughByID,
		vocabulary: vocabulary,
		codes:      codes,
	}, nil
}

// Lookup returns the borough of a location ID
func (zm *ZoneMapping) Lookup(locationID int) (string, bool) {
	borough, ok := zm.boroughs[locationID]
	return borough, ok
}

// Len returns the amount of mapped location IDs
func (zm *ZoneMapping) Len() int {
	return len(zm.boroughs)
}

// Vocabulary returns a copy of the sorted borough names
func (zm *ZoneMapping) Vocabulary() []string {
	vocabulary := make([]string, len(zm.vocabulary))
	copy(vocabulary, zm.vocabulary)
	return vocabulary
}

// Categorize returns the borough category of a location ID. Unknown IDs get trip.UndefinedBorough.
func (zm *ZoneMapping) Categorize(locationID int) trip.Borough {
	borough, ok := zm.boroughs[locationID]
	if !ok {
		return trip.UndefinedBorough
	}

	return trip.Borough{
		Code: zm.codes[borough],
		Name: borough,
	}
}
