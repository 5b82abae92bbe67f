package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paystub/internal/domain/paystub"
)

func validPayload() PayConfigPayload {
	return PayloadFromConfiguration(paystub.SampleConfiguration(time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC)))
}

func fields(issues []ValidationIssue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Field)
	}
	return out
}

func TestToConfigurationRoundTrip(t *testing.T) {
	want := paystub.SampleConfiguration(time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC))
	v := NewValidator()
	payload := PayloadFromConfiguration(want)
	v.Struct(payload)
	cfg := payload.ToConfiguration(v, "")

	require.False(t, v.HasIssues(), v.Issues())
	assert.Equal(t, want.CheckDate, cfg.CheckDate)
	assert.Equal(t, want.HireDate, cfg.HireDate)
	assert.Equal(t, want.Deductions, cfg.Deductions)
	assert.Equal(t, want.PayFrequency, cfg.PayFrequency)
}

func TestToConfigurationAssignsMissingIDs(t *testing.T) {
	payload := validPayload()
	payload.Deductions = []DeductionPayload{{Name: "Dental", Amount: 15, IsPreTax: true}}

	v := NewValidator()
	cfg := payload.ToConfiguration(v, "")
	require.False(t, v.HasIssues())
	require.Len(t, cfg.Deductions, 1)
	assert.NotEmpty(t, cfg.Deductions[0].ID)
}

func TestToConfigurationDateIssues(t *testing.T) {
	payload := validPayload()
	payload.CheckDate = "June 13"
	payload.HireDate = "2023-13-40"

	v := NewValidator()
	payload.ToConfiguration(v, "config.")
	assert.ElementsMatch(t, []string{"config.checkDate", "config.hireDate"}, fields(v.Issues()))
}

func TestToConfigurationRequiresCheckDate(t *testing.T) {
	for _, value := range []string{"", "   ", "\t"} {
		payload := validPayload()
		payload.CheckDate = value

		v := NewValidator()
		v.Struct(payload)
		cfg := payload.ToConfiguration(v, "config.")
		assert.Equal(t, []ValidationIssue{{Field: "config.checkDate", Reason: "is required"}}, filterField(v.Issues(), "config.checkDate"), "%q", value)
		assert.True(t, cfg.CheckDate.IsZero())
	}
}

func filterField(issues []ValidationIssue, field string) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range issues {
		if issue.Field == field {
			out = append(out, issue)
		}
	}
	return out
}

func TestToConfigurationAcceptsRFC3339(t *testing.T) {
	payload := validPayload()
	payload.CheckDate = "2025-06-13T08:00:00Z"

	v := NewValidator()
	cfg := payload.ToConfiguration(v, "")
	require.False(t, v.HasIssues())
	assert.Equal(t, paystub.NewDate(2025, time.June, 13), cfg.CheckDate)
}

func TestStructTags(t *testing.T) {
	payload := validPayload()
	payload.PayType = ""
	payload.PayFrequency = "Fortnightly"
	payload.HourlyRate = -1
	payload.HoursPerWeek = 200
	payload.StateTaxRate = -0.5
	payload.AccountLast4 = "123"
	payload.CheckDate = ""

	v := NewValidator()
	v.Struct(payload)
	assert.ElementsMatch(t, []string{
		"payType", "payFrequency", "hourlyRate", "hoursPerWeek",
		"stateTaxRate", "accountLast4", "checkDate",
	}, fields(v.Issues()))

	for _, issue := range v.Issues() {
		if issue.Field == "payFrequency" {
			assert.Equal(t, "must be one of Weekly, Bi-Weekly, Semi-Monthly, Monthly", issue.Reason)
		}
	}
}

func TestStructNestedPaths(t *testing.T) {
	req := struct {
		Config PayConfigPayload `json:"config"`
	}{Config: validPayload()}
	req.Config.Deductions[0].Name = strings.Repeat("n", 121)

	v := NewValidator()
	v.Struct(req)
	assert.Equal(t, []string{"config.deductions[0].name"}, fields(v.Issues()))
}

type namedRequest struct {
	Config PayConfigPayload `json:"config"`
	Count  int              `json:"count" validate:"gte=1"`
}

func TestStructNamedRootPaths(t *testing.T) {
	req := namedRequest{Config: validPayload()}
	req.Config.PayType = "Piecework"

	v := NewValidator()
	v.Struct(&req)
	assert.ElementsMatch(t, []string{"config.payType", "count"}, fields(v.Issues()))
}

func TestAddSkipsDuplicateIssues(t *testing.T) {
	v := NewValidator()
	v.Add("checkDate", "is required")
	v.Add("checkDate", "is required")
	v.Add("checkDate", "must be a valid date")
	assert.Len(t, v.Issues(), 2)
}

func TestValidatorIssuesSorted(t *testing.T) {
	v := NewValidator()
	v.Add("b", "second")
	v.Add("a", "first")
	v.Add("c", "")
	v.Required("d", "  ", "is required")

	assert.Equal(t, []ValidationIssue{
		{Field: "a", Reason: "first"},
		{Field: "b", Reason: "second"},
		{Field: "d", Reason: "is required"},
	}, v.Issues())

	rec := httptest.NewRecorder()
	assert.True(t, v.Reject(rec, "req-1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"validation_error"`)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Count int `json:"count"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"count": 3}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, 3, dst.Count)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"count": 3} {"count": 4}`))
	assert.Error(t, DecodeJSON(req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"pages": 3}`))
	assert.Error(t, DecodeJSON(req, &dst))
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?count=12&bad=x", nil)

	n, ok := QueryInt(req, "count", 1)
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	n, ok = QueryInt(req, "missing", 7)
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = QueryInt(req, "bad", 1)
	assert.False(t, ok)
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=500&offset=20", nil)
	page, issues := ParsePagination(req, 25, 100)
	assert.Empty(t, issues)
	assert.Equal(t, Pagination{Limit: 100, Offset: 20}, page)

	page, issues = ParsePagination(httptest.NewRequest(http.MethodGet, "/", nil), 25, 100)
	assert.Empty(t, issues)
	assert.Equal(t, Pagination{Limit: 25}, page)

	req = httptest.NewRequest(http.MethodGet, "/?limit=0&offset=-5", nil)
	_, issues = ParsePagination(req, 25, 100)
	assert.Equal(t, []string{"limit", "offset"}, fields(issues))
}
