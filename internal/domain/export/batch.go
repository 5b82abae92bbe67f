package export

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"runtime"

	"golang.org/x/sync/errgroup"

	"paystub/internal/domain/paystub"
)

var (
	ErrInvalidCount = errors.New("statement count must be at least 1")
	ErrTooManyPages = errors.New("statement count exceeds the page limit")
)

// CheckCount validates a requested page count against maxPages. A
// non-positive maxPages disables the upper bound.
func CheckCount(count, maxPages int) error {
	if count < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	if maxPages > 0 && count > maxPages {
		return fmt.Errorf("%w: %d > %d", ErrTooManyPages, count, maxPages)
	}
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Filename is the download name for an employee's statements.
func Filename(employeeName string) string {
	return "Earnings_Statement_" + unsafeFilenameChars.ReplaceAllString(employeeName, "_") + ".pdf"
}

// ComputeBatch computes offsets 0..count-1 concurrently. Result i is the
// statement for periodsBack = i, so index 0 is the most recent period.
func ComputeBatch(ctx context.Context, cfg paystub.PayConfiguration, count int) ([]paystub.ComputedStatement, error) {
	if err := CheckCount(count, 0); err != nil {
		return nil, err
	}
	cfg = paystub.Normalize(cfg)

	stubs := make([]paystub.ComputedStatement, count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range count {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			stubs[i] = paystub.Compute(cfg, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stubs, nil
}
