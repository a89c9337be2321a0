package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridianhft/tradecore/clock"
	"github.com/meridianhft/tradecore/recording"
)

var (
	benchTimers   int
	benchInterval time.Duration
	benchSpan     time.Duration
	benchRecordDB string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the simulated clock's timer scheduling throughput",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchTimers, "timers", 100,
		"Number of repeating timers to register")
	benchCmd.Flags().DurationVar(&benchInterval, "interval", time.Millisecond,
		"Interval of each timer")
	benchCmd.Flags().DurationVar(&benchSpan, "span", time.Minute,
		"Simulated span to advance over")
	benchCmd.Flags().StringVar(&benchRecordDB, "record", "",
		"Record fired events into this database")

	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, _ []string) error {
	testClock := clock.NewTestClock()
	testClock.RegisterDefaultHandler(func(clock.TimeEvent) {})

	var recorder recording.Recorder
	if benchRecordDB != "" {
		recorder = recording.New(benchRecordDB)
		defer recorder.Close()

		testClock.AcceptHook(recording.NewClockRecorder(recorder))
	}

	for i := 0; i < benchTimers; i++ {
		name := fmt.Sprintf("bench-timer-%04d", i)
		err := testClock.SetTimer(name, benchInterval, 0, 0, nil)
		if err != nil {
			return err
		}
	}

	start := time.Now()
	batch, err := testClock.AdvanceTime(clock.UnixNanos(benchSpan), true)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	rate := float64(len(batch)) / elapsed.Seconds()
	cmd.Printf("timers: %d, span: %s, events: %d\n",
		benchTimers, benchSpan, len(batch))
	cmd.Printf("elapsed: %s, rate: %.0f events/s\n", elapsed, rate)

	return nil
}
