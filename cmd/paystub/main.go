// Command paystub renders earnings statements without running the server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"paystub/internal/domain/export"
	"paystub/internal/domain/paystub"
	"paystub/internal/platform/logging"
	"paystub/internal/transport/http/shared"
)

type options struct {
	configPath string
	count      int
	out        string
	asJSON     bool
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, time.Now); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("paystub failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) error {
	fs := flag.NewFlagSet("paystub", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.configPath, "config", "", "pay configuration JSON file (default: sample configuration)")
	fs.IntVar(&opts.count, "count", 1, "number of consecutive statements, most recent first")
	fs.StringVar(&opts.out, "out", "", "PDF output path (default: Earnings_Statement_<name>.pdf)")
	fs.BoolVar(&opts.asJSON, "json", false, "print computed statements as JSON instead of writing a PDF")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	slog.SetDefault(logging.New(stderr, "text", opts.logLevel))

	cfg, err := loadConfiguration(opts.configPath, now)
	if err != nil {
		return err
	}
	if err := export.CheckCount(opts.count, 0); err != nil {
		return err
	}

	if opts.asJSON {
		stubs, err := export.ComputeBatch(ctx, cfg, opts.count)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stubs)
	}

	path := opts.out
	if path == "" {
		path = export.Filename(cfg.EmployeeName)
	}
	doc, err := export.NewExporter().WriteFile(ctx, path, cfg, opts.count)
	if err != nil {
		return err
	}
	slog.Info("statements written", "path", path, "pages", doc.Pages, "bytes", len(doc.Bytes))
	return nil
}

// loadConfiguration reads and validates a configuration file the same way
// the API validates request bodies.
func loadConfiguration(path string, now func() time.Time) (paystub.PayConfiguration, error) {
	if path == "" {
		return paystub.SampleConfiguration(now()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return paystub.PayConfiguration{}, err
	}
	defer f.Close()

	var payload shared.PayConfigPayload
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return paystub.PayConfiguration{}, fmt.Errorf("decode %s: %w", path, err)
	}
	v := shared.NewValidator()
	v.Struct(payload)
	cfg := payload.ToConfiguration(v, "")
	if v.HasIssues() {
		issues := v.Issues()
		for _, issue := range issues {
			slog.Error("invalid configuration", "field", issue.Field, "reason", issue.Reason)
		}
		return paystub.PayConfiguration{}, fmt.Errorf("%s: %d invalid field(s)", path, len(issues))
	}
	return cfg, nil
}
