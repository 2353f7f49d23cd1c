package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/bisect"
	"github.com/hupe1980/bisect/executor"
	"github.com/hupe1980/bisect/resource"
)

var (
	execName string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "bisect",
	Short: "Batched ordered-search dispatch from the command line",
	Long:  `Run lower-bound, upper-bound and membership queries against sorted data using the bisect dispatch backends.`,
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <file> <value>...",
	Short: "Query values against a sorted numeric file (one int64 per line)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readSorted(args[0])
		if err != nil {
			return err
		}

		values := make([]int64, 0, len(args)-1)
		for _, arg := range args[1:] {
			v, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", arg, err)
			}
			values = append(values, v)
		}

		ex, err := pickExecutor()
		if err != nil {
			return err
		}

		ctx := context.Background()
		lo := make([]int, len(values))
		hi := make([]int, len(values))
		hits := make([]bool, len(values))

		if err := bisect.EqualRangeBatch(ctx, ex, data, values, lo, hi); err != nil {
			return err
		}
		if err := bisect.ContainsBatch(ctx, ex, data, values, hits); err != nil {
			return err
		}

		for i, v := range values {
			fmt.Printf("%d\tlower=%d\tupper=%d\tcontains=%t\n", v, lo[i], hi[i], hits[i])
		}

		return nil
	},
}

var (
	benchN       int
	benchQueries int
	benchQPS     int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare dispatch backends on synthetic sorted data",
	RunE: func(cmd *cobra.Command, args []string) error {
		rng := rand.New(rand.NewSource(1))

		data := make([]int64, benchN)
		for i := range data {
			data[i] = rng.Int63n(int64(benchN) * 4)
		}
		slices.Sort(data)

		values := make([]int64, benchQueries)
		for i := range values {
			values[i] = rng.Int63n(int64(benchN) * 4)
		}

		var ctrl *resource.Controller
		if benchQPS > 0 {
			ctrl = resource.NewController(resource.Config{QueriesPerSec: benchQPS})
		}

		pool := executor.NewPool(executor.WithController(ctrl))
		defer pool.Close()

		backends := []executor.Executor{
			executor.Serial{},
			executor.Parallel{},
			pool,
		}

		ctx := context.Background()
		out := make([]int, len(values))

		for _, ex := range backends {
			metrics := &bisect.BasicMetricsCollector{}
			wrapped := ex
			if verbose {
				wrapped = bisect.Instrument(ex, metrics, bisect.NewTextLogger(slog.LevelDebug))
			} else {
				wrapped = bisect.Instrument(ex, metrics, nil)
			}

			start := time.Now()
			if err := bisect.LowerBoundBatch(ctx, wrapped, data, values, out); err != nil {
				return fmt.Errorf("%v: %w", ex, err)
			}
			elapsed := time.Since(start)

			fmt.Printf("%-10v %d queries over %d elements in %v (%.0f q/s)\n",
				ex, len(values), len(data), elapsed,
				float64(len(values))/elapsed.Seconds())
		}

		return nil
	},
}

func pickExecutor() (executor.Executor, error) {
	if execName == "" {
		return executor.Default(), nil
	}
	ex, ok := executor.Parse(execName)
	if !ok {
		return nil, fmt.Errorf("unknown executor %q", execName)
	}
	return ex, nil
}

func readSorted(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var data []int64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid line %q: %w", line, err)
		}
		data = append(data, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if !slices.IsSorted(data) {
		return nil, fmt.Errorf("%s is not sorted", path)
	}

	return data, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&execName, "exec", "", "execution backend (serial|parallel); default auto-selects")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	benchCmd.Flags().IntVar(&benchN, "n", 1_000_000, "number of elements in the sorted range")
	benchCmd.Flags().IntVar(&benchQueries, "q", 100_000, "number of queries per batch")
	benchCmd.Flags().IntVar(&benchQPS, "qps", 0, "rate limit for the pool backend (0 = unlimited)")

	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
