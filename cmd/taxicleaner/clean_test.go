package main

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CptQuak/taxi/settings"
)

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger("DEBUG"))
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	assert.Error(t, InitLogger("LOUD"))
}

func TestApplyFlagsOnlyOverridesChangedFlags(t *testing.T) {
	require.NoError(t, cleanCmd.Flags().Set("data-path", "/srv/nyc"))
	require.NoError(t, cleanCmd.Flags().Set("log-level", "TRACE"))

	s := &settings.Settings{DataPath: "data", LogLevel: "INFO", ConfigFile: "cleaner.yaml"}
	applyFlags(cleanCmd, s)

	assert.Equal(t, "/srv/nyc", s.DataPath)
	assert.Equal(t, "TRACE", s.LogLevel)
	assert.Equal(t, "cleaner.yaml", s.ConfigFile)
}

func TestCleanCommandRequiresMonth(t *testing.T) {
	rootCmd.SetArgs([]string{"clean", "--year", "2023"})
	assert.Error(t, rootCmd.Execute())
}
