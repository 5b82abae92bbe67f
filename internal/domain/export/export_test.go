package export

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paystub/internal/domain/paystub"
)

func testConfig() paystub.PayConfiguration {
	cfg := paystub.SampleConfiguration(time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC))
	cfg.Deductions = []paystub.Deduction{{ID: "1", Name: "Medical Insurance", Amount: 45, IsPreTax: true}}
	return cfg
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Earnings_Statement_Jessika_Cabrera.pdf", Filename("Jessika Cabrera"))
	assert.Equal(t, "Earnings_Statement_O_Neil__Jr_.pdf", Filename("O'Neil, Jr."))
	assert.Equal(t, "Earnings_Statement_.pdf", Filename(""))
}

func TestComputeBatchKeepsOffsetOrder(t *testing.T) {
	cfg := testConfig()
	stubs, err := ComputeBatch(context.Background(), cfg, 12)
	require.NoError(t, err)
	require.Len(t, stubs, 12)

	for i, stub := range stubs {
		assert.Equal(t, paystub.Compute(cfg, i), stub, "offset %d", i)
	}
	assert.Equal(t, 1011, stubs[0].CheckNumber)
	assert.Equal(t, 1010, stubs[1].CheckNumber)
}

func TestComputeBatchRejectsInvalidCount(t *testing.T) {
	for _, count := range []int{0, -1} {
		_, err := ComputeBatch(context.Background(), testConfig(), count)
		assert.True(t, errors.Is(err, ErrInvalidCount), count)
	}
}

func TestComputeBatchHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ComputeBatch(ctx, testConfig(), 4)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^S00[1-9]\d{5}$`)
	e := NewExporter()
	for range 50 {
		assert.Regexp(t, pattern, e.BatchNumber())
	}

	a := NewExporter(WithRand(rand.NewPCG(1, 2)))
	b := NewExporter(WithRand(rand.NewPCG(1, 2)))
	assert.Equal(t, a.BatchNumber(), b.BatchNumber())
}

func TestRenderDocument(t *testing.T) {
	e := NewExporter(WithRand(rand.NewPCG(7, 7)), WithCompression(false))

	doc, err := e.Render(context.Background(), testConfig(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, doc.Pages)
	assert.Equal(t, "Earnings_Statement_Jessika_Cabrera.pdf", doc.Filename)
	require.True(t, bytes.HasPrefix(doc.Bytes, []byte("%PDF-")))

	body := string(doc.Bytes)
	assert.Contains(t, body, "/Title (Paystub - Jessika Cabrera)")
	assert.Contains(t, body, "/Author (ProPayStub Generator)")
	assert.Contains(t, body, "/Creator (ProPayStub App)")
	assert.Contains(t, body, "Date: 06/13/2025")
	assert.Contains(t, body, "(Statement of Earnings and Deductions) Tj")
	for _, check := range []string{"(1011) Tj", "(1010) Tj", "(1009) Tj"} {
		assert.Contains(t, body, check)
	}
	assert.Contains(t, body, "(PRE-TAX) Tj")
	assert.NotContains(t, body, "POST-TAX")
	assert.Contains(t, body, "Misuse or misrepresentation is prohibited.")
}

func TestRenderRejectsInvalidCount(t *testing.T) {
	_, err := NewExporter().Render(context.Background(), testConfig(), 0)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stub.pdf")

	doc, err := NewExporter().WriteFile(context.Background(), path, testConfig(), 2)
	require.NoError(t, err)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Bytes, written)
	assert.Equal(t, 2, doc.Pages)
}

func TestCheckCount(t *testing.T) {
	assert.NoError(t, CheckCount(1, 52))
	assert.NoError(t, CheckCount(52, 52))
	assert.NoError(t, CheckCount(1000, 0))
	assert.ErrorIs(t, CheckCount(0, 52), ErrInvalidCount)
	assert.ErrorIs(t, CheckCount(53, 52), ErrTooManyPages)
}
