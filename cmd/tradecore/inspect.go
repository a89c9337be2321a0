package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridianhft/tradecore/clock"
	"github.com/meridianhft/tradecore/recording"
)

var (
	inspectDB    string
	inspectLimit int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List recorded time events and log records from a recording database",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectDB, "db", "",
		"Path to the recording database")
	inspectCmd.Flags().IntVar(&inspectLimit, "limit", 50,
		"Maximum number of rows to print per table")
	_ = inspectCmd.MarkFlagRequired("db")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(inspectDB); err != nil {
		return fmt.Errorf("recording database: %w", err)
	}

	reader := recording.NewReader(inspectDB)
	defer reader.Close()

	reader.MapTable(recording.TimeEventTable, recording.TimeEventEntry{})
	reader.MapTable(recording.LogRecordTable, recording.LogEntry{})

	printTimeEvents(cmd, reader)
	printLogRecords(cmd, reader)

	return nil
}

func printTimeEvents(cmd *cobra.Command, reader recording.Reader) {
	results, total, err := reader.Query(
		cmd.Context(),
		recording.TimeEventTable,
		recording.QueryParams{
			OrderBy: "TsEvent ASC",
			Limit:   inspectLimit,
		})
	if err != nil {
		// The table may simply be absent from this recording.
		cmd.Printf("no time events: %v\n", err)
		return
	}

	cmd.Printf("time events (%d total):\n", total)
	for _, r := range results {
		entry := r.(*recording.TimeEventEntry)
		cmd.Printf("  %s  %s  ts_event=%s\n",
			entry.ID, entry.TimerName,
			clock.UnixNanos(entry.TsEvent).Time().Format("2006-01-02T15:04:05.000000000Z"))
	}
}

func printLogRecords(cmd *cobra.Command, reader recording.Reader) {
	results, total, err := reader.Query(
		cmd.Context(),
		recording.LogRecordTable,
		recording.QueryParams{
			OrderBy: "Timestamp ASC",
			Limit:   inspectLimit,
		})
	if err != nil {
		cmd.Printf("no log records: %v\n", err)
		return
	}

	cmd.Printf("log records (%d total):\n", total)
	for _, r := range results {
		entry := r.(*recording.LogEntry)
		cmd.Printf("  %s [%s] %s: %s\n",
			clock.UnixNanos(entry.Timestamp).Time().Format("2006-01-02T15:04:05.000000000Z"),
			entry.Level, entry.Component, entry.Message)
	}
}
