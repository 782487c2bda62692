package eof

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEOF(t *testing.T) {
	eofData := NewEOF("run-1", "2023-09", "taxi-cleaner", "trips")

	metadata := eofData.GetMetadata()
	assert.True(t, IsEOF(metadata))
	assert.Equal(t, "eof.trips.2023-09", metadata.GetMessage())
	assert.Equal(t, "2023-09", metadata.GetWindow())
	assert.Equal(t, "taxi-cleaner", metadata.GetStage())

	data, err := json.Marshal(eofData)
	require.NoError(t, err)
	assert.JSONEq(t, `{"metadata": {"run_id": "run-1", "window": "2023-09", "type": "EOF", "stage": "taxi-cleaner", "message": "eof.trips.2023-09"}}`, string(data))
}
