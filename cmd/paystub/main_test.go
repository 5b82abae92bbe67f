package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paystub/internal/domain/paystub"
)

func fixedNow() time.Time {
	return time.Date(2025, time.June, 13, 12, 0, 0, 0, time.UTC)
}

func TestRunJSONUsesSample(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-json", "-count", "3"}, &stdout, &stderr, fixedNow))

	var stubs []paystub.ComputedStatement
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &stubs))
	require.Len(t, stubs, 3)
	assert.Equal(t, "2025-06-13", stubs[0].CheckDate.String())
	assert.Equal(t, stubs[0].CheckNumber-2, stubs[2].CheckNumber)
}

func TestRunWritesPDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stubs.pdf")
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-count", "2", "-out", out}, &stdout, &stderr, fixedNow))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, stderr.String(), "statements written")
}

func TestRunReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	body := `{
		"employeeName": "Ana Ruiz",
		"employeeId": "77",
		"payType": "Salary",
		"payFrequency": "Monthly",
		"annualSalary": 60000,
		"federalTaxRate": 10,
		"hireDate": "2024-01-01",
		"checkDate": "2025-06-30",
		"deductions": [{"name": "401k", "amount": 100, "isPreTax": true}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-json", "-config", path}, &stdout, &stderr, fixedNow))

	var stubs []paystub.ComputedStatement
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &stubs))
	require.Len(t, stubs, 1)
	assert.InDelta(t, 5000.0, stubs[0].Current.GrossPay, 0.005)
}

func TestRunRejectsInvalidInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"payType": "Hourly", "payFrequency": "Yearly", "checkDate": "2025-06-13"}`), 0o600))

	var stdout, stderr bytes.Buffer
	assert.Error(t, run(context.Background(), []string{"-config", path}, &stdout, &stderr, fixedNow))
	assert.Contains(t, stderr.String(), "payFrequency")

	assert.Error(t, run(context.Background(), []string{"-json", "-count", "0"}, &stdout, &stderr, fixedNow))
	assert.Error(t, run(context.Background(), []string{"-config", filepath.Join(t.TempDir(), "missing.json")}, &stdout, &stderr, fixedNow))
}
