package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"prdashboard/internal/domain/assignment"
	"prdashboard/internal/domain/chart"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prchart",
		Short: "Render PR assignment charts from an exported assignee table",
		Long: `prchart reads a table in the cache format
({"columns":[...],"rows":[[...]]}) and prints either the bucketed
counts or the chart spec the dashboard would serve.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newBucketsCmd(), newRenderCmd())
	return root
}

type tableFlags struct {
	interval string
	input    string
}

func (f *tableFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.interval, "interval", "i", "W", "bucket granularity: D, W, M or Y")
	cmd.Flags().StringVar(&f.input, "input", "-", "table JSON file, - for stdin")
}

// load reads the table and buckets it. ErrNoData is passed through so the
// caller can decide how to present an empty table.
func (f *tableFlags) load(in io.Reader) ([]assignment.Bucket, assignment.Granularity, error) {
	g, err := assignment.ParseGranularity(f.interval)
	if err != nil {
		return nil, "", err
	}

	r := in
	if f.input != "-" {
		file, err := os.Open(f.input)
		if err != nil {
			return nil, "", fmt.Errorf("open input: %w", err)
		}
		defer file.Close()
		r = file
	}

	var table assignment.Table
	if err := json.NewDecoder(r).Decode(&table); err != nil {
		return nil, "", fmt.Errorf("decode table: %w", err)
	}

	events, err := assignment.DecodeTable(table)
	if err != nil {
		return nil, "", err
	}

	buckets, err := assignment.Bucketize(events, g)
	if err != nil {
		return nil, g, fmt.Errorf("bucketize: %w", err)
	}
	return buckets, g, nil
}

func newBucketsCmd() *cobra.Command {
	var flags tableFlags
	cmd := &cobra.Command{
		Use:   "buckets",
		Short: "Print assigned/unassigned counts per time bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			buckets, _, err := flags.load(cmd.InOrStdin())
			if err != nil && !errors.Is(err, assignment.ErrNoData) {
				return err
			}
			if buckets == nil {
				buckets = []assignment.Bucket{}
			}
			return writeJSON(cmd.OutOrStdout(), buckets)
		},
	}
	flags.bind(cmd)
	return cmd
}

func newRenderCmd() *cobra.Command {
	var flags tableFlags
	var now string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the chart spec for the table",
		RunE: func(cmd *cobra.Command, args []string) error {
			at := time.Now().UTC()
			if now != "" {
				t, err := time.Parse(time.RFC3339, now)
				if err != nil {
					return fmt.Errorf("parse --now: %w", err)
				}
				at = t
			}

			buckets, g, err := flags.load(cmd.InOrStdin())
			if errors.Is(err, assignment.ErrNoData) {
				return writeJSON(cmd.OutOrStdout(), chart.NoData())
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), chart.Build(buckets, g, at))
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&now, "now", "", "reference time for the default axis range (RFC 3339)")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
