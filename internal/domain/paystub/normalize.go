package paystub

import (
	"strings"

	"github.com/google/uuid"
)

// Normalize resolves optional fields to their defaults and detaches the
// deduction list from the caller's slice. It is idempotent.
func Normalize(cfg PayConfiguration) PayConfiguration {
	out := cfg
	holiday := 0.0
	if cfg.HolidayHours != nil {
		holiday = *cfg.HolidayHours
	}
	out.HolidayHours = &holiday
	out.Deductions = make([]Deduction, len(cfg.Deductions))
	copy(out.Deductions, cfg.Deductions)
	return out
}

// AssignDeductionIDs gives every deduction without an id a fresh one.
// Callers run it when accepting edits; Compute never does, so it stays pure.
func AssignDeductionIDs(cfg PayConfiguration) PayConfiguration {
	out := Normalize(cfg)
	for i := range out.Deductions {
		if strings.TrimSpace(out.Deductions[i].ID) == "" {
			out.Deductions[i].ID = uuid.NewString()
		}
	}
	return out
}

func holidayHours(cfg PayConfiguration) float64 {
	if cfg.HolidayHours == nil {
		return 0
	}
	return *cfg.HolidayHours
}
