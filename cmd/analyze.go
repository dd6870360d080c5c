package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"finanspanel/config"
	"finanspanel/ingest"
	"finanspanel/service"
)

// Analyze prints the JSON brief of a ledger file.
// Usage: analyze <file> [--member ID] [--cycle N] [--cycles]
func Analyze(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	member := fs.String("member", "", "account id to analyze (default: first account in the file)")
	cycle := fs.Int("cycle", -1, "cycle index (default: last cycle)")
	list := fs.Bool("cycles", false, "list cycles instead of printing a brief")

	// Allow the file before or after the flags
	var path string
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		path, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if path == "" {
		path = fs.Arg(0)
	}
	if path == "" {
		return fmt.Errorf("usage: finanspanel analyze <file> [--member ID] [--cycle N] [--cycles]")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := ingest.Decode(path, f)
	if err != nil {
		return err
	}

	svc := service.NewCycleService(reportOptions(config.Get()), nil)

	var result any
	if *list {
		result, err = svc.ListCycles(ctx, table, *member)
	} else {
		req := service.AnalysisRequest{AccountID: *member}
		if *cycle >= 0 {
			req.CycleFrom = cycle
		}
		result, err = svc.ComputeReport(ctx, table, req)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
