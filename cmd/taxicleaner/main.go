package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitInvalidParams   = 1
	ExitMissingResource = 2
	ExitRuntimeError    = 3
)

var (
	year        int
	month       int
	dataPath    string
	configFile  string
	metricsFile string
	logLevel    string
	publish     bool
)

// InitLogger Receives the log level to be set in logrus as a string. This method
// parses the string and set the level to the logger. If the level string is not
// valid an error is returned
func InitLogger(logLevel string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	customFormatter := &log.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   false,
	}
	log.SetFormatter(customFormatter)
	log.SetLevel(level)
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "taxicleaner",
	Short: "Cleans the monthly NYC yellow taxi trip files",
	Long: `taxicleaner loads one month of NYC yellow taxi trips, fills missing values,
drops rows with undocumented values, derives trip time and boroughs, and drops
implausible trips.

Settings are read from TAXI_* environment variables, flags take precedence.`,
	SilenceUsage: true,
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the trips of a month",
	Long: `Clean the trips of a month found under the data path:
  {data-path}/yellow_tripdata_YYYY-MM.parquet
  {data-path}/taxi_zones/taxi+_zone_lookup.csv

Exit codes:
  0 - Month cleaned
  1 - Invalid parameters, settings or config file
  2 - Trip file or zone lookup table not found
  3 - Runtime errors

Examples:
  taxicleaner clean --year 2023 --month 9
  taxicleaner clean --year 2023 --month 12 --data-path /srv/nyc --publish`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		os.Exit(runClean(cmd))
	},
}

func init() {
	cleanCmd.Flags().IntVar(&year, "year", 0, "year of the trips to clean")
	cleanCmd.Flags().IntVar(&month, "month", 0, "month of the trips to clean, 1 to 12")
	cleanCmd.Flags().StringVar(&dataPath, "data-path", "", "directory with the trip files and the zone lookup table (TAXI_DATA_PATH)")
	cleanCmd.Flags().StringVar(&configFile, "config", "", "YAML file with thresholds and fill values (TAXI_CONFIG_FILE)")
	cleanCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "textfile where run metrics are written (TAXI_METRICS_FILE)")
	cleanCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (TAXI_LOG_LEVEL)")
	cleanCmd.Flags().BoolVar(&publish, "publish", false, "publish the cleaned trips to RabbitMQ")
	_ = cleanCmd.MarkFlagRequired("year")
	_ = cleanCmd.MarkFlagRequired("month")

	rootCmd.AddCommand(cleanCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitInvalidParams)
	}
}
