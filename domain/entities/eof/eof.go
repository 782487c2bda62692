package eof

import (
	"fmt"

	"github.com/CptQuak/taxi/domain/entities"
)

const eofType = "EOF"

// EOFData struct that closes the stream of cleaned data of a run
// + Metadata: metadata added to the structure, Message holds the EOF string
type EOFData struct {
	Metadata entities.Metadata `json:"metadata"`
}

func NewEOF(runID string, window string, stage string, dataType string) *EOFData {
	return &EOFData{
		Metadata: entities.NewMetadata(runID, window, eofType, stage, EOFString(dataType, window)),
	}
}

// EOFString returns the EOF string of a data type and window: eof.dataType.window
func EOFString(dataType string, window string) string {
	return fmt.Sprintf("eof.%s.%s", dataType, window)
}

// IsEOF returns true if the metadata belongs to an EOF message
func IsEOF(metadata entities.Metadata) bool {
	return metadata.GetType() == eofType
}

func (eof EOFData) GetMetadata() entities.Metadata {
	return eof.Metadata
}
