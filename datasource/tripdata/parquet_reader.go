package tripdata

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/apache/arrow/go/v14/parquet"
	"github.com/apache/arrow/go/v14/parquet/file"
	"github.com/apache/arrow/go/v14/parquet/schema"
	log "github.com/sirupsen/logrus"

	"github.com/CptQuak/taxi/datasource"
	"github.com/CptQuak/taxi/domain/entities/trip"
)

const readBatchSize = 8192

type columnKind int

const (
	numberColumn columnKind = iota
	timestampColumn
	stringColumn
)

// columnDef describes a column that the cleaner reads from the trip file.
// Non required columns may be absent: nullable ones are read as all null, the rest as zero.
type columnDef struct {
	name     string
	kind     columnKind
	required bool
}

var tripColumns = []columnDef{
	{name: trip.ColumnVendorID, kind: numberColumn, required: true},
	{name: trip.ColumnPickupDatetime, kind: timestampColumn, required: true},
	{name: trip.ColumnDropoffDatetime, kind: timestampColumn, required: true},
	{name: trip.ColumnPassengerCount, kind: numberColumn},
	{name: trip.ColumnTripDistance, kind: numberColumn, required: true},
	{name: trip.ColumnRatecodeID, kind: numberColumn},
	{name: trip.ColumnStoreAndFwdFlag, kind: stringColumn},
	{name: trip.ColumnPULocationID, kind: numberColumn, required: true},
	{name: trip.ColumnDOLocationID, kind: numberColumn, required: true},
	{name: trip.ColumnPaymentType, kind: numberColumn, required: true},
	{name: trip.ColumnFareAmount, kind: numberColumn, required: true},
	{name: trip.ColumnExtra, kind: numberColumn, required: true},
	{name: trip.ColumnMTATax, kind: numberColumn, required: true},
	{name: trip.ColumnTipAmount, kind: numberColumn, required: true},
	{name: trip.ColumnTollsAmount, kind: numberColumn, required: true},
	{name: trip.ColumnImprovementSurcharge, kind: numberColumn},
	{name: trip.ColumnTotalAmount, kind: numberColumn, required: true},
	{name: trip.ColumnCongestionSurcharge, kind: numberColumn},
	{name: trip.ColumnAirportFee, kind: numberColumn},
}

// ParquetLoader reads monthly yellow taxi files in parquet format
type ParquetLoader struct{}

func NewParquetLoader() *ParquetLoader {
	return &ParquetLoader{}
}

// LoadTrips reads every row of the parquet file at path
func (pl *ParquetLoader) LoadTrips(path string) ([]trip.TripRecord, error) {
	tripFile, err := datasource.OpenResource(path, "trip data file")
	if err != nil {
		return nil, err
	}
	defer tripFile.Close()

	parquetReader, err := file.NewParquetReader(tripFile)
	if err != nil {
		return nil, fmt.Errorf("error opening parquet file %s: %w", path, err)
	}
	defer parquetReader.Close()

	trips, err := readTrips(parquetReader)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	log.Debugf("[method: LoadTrips][status: OK] %v trips read from %s", len(trips), path)
	return trips, nil
}

// ReadTrips reads every row of a parquet file held by r
func ReadTrips(r parquet.ReaderAtSeeker) ([]trip.TripRecord, error) {
	parquetReader, err := file.NewParquetReader(r)
	if err != nil {
		return nil, fmt.Errorf("error opening parquet data: %w", err)
	}
	defer parquetReader.Close()

	return readTrips(parquetReader)
}

func readTrips(parquetReader *file.Reader) ([]trip.TripRecord, error) {
	columnIndexes, err := resolveColumnIndexes(parquetReader.MetaData().Schema)
	if err != nil {
		return nil, err
	}

	totalRows := 0
	for rgIdx := 0; rgIdx < parquetReader.NumRowGroups(); rgIdx++ {
		totalRows += int(parquetReader.RowGroup(rgIdx).NumRows())
	}

	trips := make([]trip.TripRecord, 0, totalRows)
	for rgIdx := 0; rgIdx < parquetReader.NumRowGroups(); rgIdx++ {
		rowGroupTrips, err := readRowGroup(parquetReader.RowGroup(rgIdx), columnIndexes)
		if err != nil {
			return nil, fmt.Errorf("error reading row group %v: %w", rgIdx, err)
		}
		trips = append(trips, rowGroupTrips...)
	}

	return trips, nil
}

// resolveColumnIndexes matches column names case-insensitively, some months spell airport_fee as Airport_fee
func resolveColumnIndexes(fileSchema *schema.Schema) (map[string]int, error) {
	indexByName := make(map[string]int, fileSchema.NumColumns())
	for idx := 0; idx < fileSchema.NumColumns(); idx++ {
		indexByName[strings.ToLower(fileSchema.Column(idx).Name())] = idx
	}

	columnIndexes := make(map[string]int, len(tripColumns))
	var missingColumns []string
	for _, colDef := range tripColumns {
		idx, ok := indexByName[strings.ToLower(colDef.name)]
		if !ok {
			if colDef.required {
				missingColumns = append(missingColumns, colDef.name)
			}
			continue
		}
		columnIndexes[colDef.name] = idx
	}

	if len(missingColumns) > 0 {
		return nil, fmt.Errorf("%w: %s", datasource.ErrMissingColumn, strings.Join(missingColumns, ", "))
	}

	return columnIndexes, nil
}

func readRowGroup(rowGroup *file.RowGroupReader, columnIndexes map[string]int) ([]trip.TripRecord, error) {
	numRows := int(rowGroup.NumRows())
	if numRows == 0 {
		return nil, nil
	}

	columns := make(rowGroupColumns, len(columnIndexes))
	for _, colDef := range tripColumns {
		idx, ok := columnIndexes[colDef.name]
		if !ok {
			continue
		}

		chunkReader, err := rowGroup.Column(idx)
		if err != nil {
			return nil, fmt.Errorf("error opening column %s: %w", colDef.name, err)
		}

		decoded, err := decodeColumn(chunkReader, colDef, numRows)
		if err != nil {
			return nil, err
		}

		if len(decoded.valid) != numRows {
			return nil, fmt.Errorf("column %s has %v values, expected %v", colDef.name, len(decoded.valid), numRows)
		}
		columns[colDef.name] = decoded
	}

	trips := make([]trip.TripRecord, numRows)
	for row := 0; row < numRows; row++ {
		trips[row] = columns.tripAt(row)
	}

	return trips, nil
}

func decodeColumn(chunkReader file.ColumnChunkReader, colDef columnDef, numRows int) (*column, error) {
	descriptor := chunkReader.Descriptor()
	maxDefLevel := descriptor.MaxDefinitionLevel()
	decoded := &column{}
	var err error

	switch colDef.kind {
	case timestampColumn:
		reader, ok := chunkReader.(*file.Int64ColumnChunkReader)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %s, expected timestamp", datasource.ErrUnsupportedType, colDef.name, chunkReader.Type())
		}
		decoded.times, decoded.valid, err = readValues(reader, maxDefLevel, numRows, timestampConverter(descriptor))

	case stringColumn:
		reader, ok := chunkReader.(*file.ByteArrayColumnChunkReader)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %s, expected string", datasource.ErrUnsupportedType, colDef.name, chunkReader.Type())
		}
		decoded.strings, decoded.valid, err = readValues(reader, maxDefLevel, numRows, func(v parquet.ByteArray) string { return string(v) })

	default:
		switch reader := chunkReader.(type) {
		case *file.Int32ColumnChunkReader:
			decoded.numbers, decoded.valid, err = readValues(reader, maxDefLevel, numRows, func(v int32) float64 { return float64(v) })
		case *file.Int64ColumnChunkReader:
			decoded.numbers, decoded.valid, err = readValues(reader, maxDefLevel, numRows, func(v int64) float64 { return float64(v) })
		case *file.Float32ColumnChunkReader:
			decoded.numbers, decoded.valid, err = readValues(reader, maxDefLevel, numRows, func(v float32) float64 { return float64(v) })
		case *file.Float64ColumnChunkReader:
			decoded.numbers, decoded.valid, err = readValues(reader, maxDefLevel, numRows, func(v float64) float64 { return v })
		default:
			return nil, fmt.Errorf("%w: %s is %s, expected number", datasource.ErrUnsupportedType, colDef.name, chunkReader.Type())
		}
	}

	if err != nil {
		return nil, fmt.Errorf("error decoding column %s: %w", colDef.name, err)
	}

	// NaN is a missing value, the same as a null
	for idx, number := range decoded.numbers {
		if math.IsNaN(number) {
			decoded.valid[idx] = false
		}
	}
	return decoded, nil
}

// timestampConverter returns a converter for the time unit of the column, files without a
// timestamp logical type are assumed to hold microseconds
func timestampConverter(descriptor *schema.Column) func(int64) time.Time {
	unit := schema.TimeUnitMicros
	if timestampType, ok := descriptor.LogicalType().(*schema.TimestampLogicalType); ok {
		unit = timestampType.TimeUnit()
	}

	switch unit {
	case schema.TimeUnitMillis:
		return func(v int64) time.Time { return time.UnixMilli(v).UTC() }
	case schema.TimeUnitNanos:
		return func(v int64) time.Time { return time.Unix(0, v).UTC() }
	default:
		return func(v int64) time.Time { return time.UnixMicro(v).UTC() }
	}
}

type batchReader[T any] interface {
	HasNext() bool
	ReadBatch(batchSize int64, values []T, defLvls, repLvls []int16) (int64, int, error)
}

// readValues reads a whole column chunk. Values of nullable columns come packed, so a value is taken from the
// batch only when its definition level is the maximum one. Conversion happens before the next batch reuses the buffers.
func readValues[T any, V any](reader batchReader[T], maxDefLevel int16, numRows int, convert func(T) V) ([]V, []bool, error) {
	values := make([]V, 0, numRows)
	valid := make([]bool, 0, numRows)
	batch := make([]T, readBatchSize)
	defLevels := make([]int16, readBatchSize)
	var zero V

	for reader.HasNext() {
		levelsRead, valuesRead, err := reader.ReadBatch(readBatchSize, batch, defLevels, nil)
		if err != nil {
			return nil, nil, err
		}

		if maxDefLevel == 0 {
			for idx := 0; idx < valuesRead; idx++ {
				values = append(values, convert(batch[idx]))
				valid = append(valid, true)
			}
			continue
		}

		valueIdx := 0
		for idx := 0; idx < int(levelsRead); idx++ {
			if defLevels[idx] == maxDefLevel {
				values = append(values, convert(batch[valueIdx]))
				valid = append(valid, true)
				valueIdx++
				continue
			}
			values = append(values, zero)
			valid = append(valid, false)
		}
	}

	return values, valid, nil
}
