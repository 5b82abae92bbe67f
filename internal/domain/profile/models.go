package profile

import (
	"time"

	"paystub/internal/domain/paystub"
	"paystub/internal/domain/statement"
)

const maxNameLength = 120

// Profile is a saved pay configuration.
type Profile struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	Config    paystub.PayConfiguration `json:"config"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

type ListResult struct {
	Items []Profile `json:"items"`
	Total int       `json:"total"`
}

type StatementResult struct {
	Statement paystub.ComputedStatement `json:"statement"`
	View      statement.View            `json:"view"`
}

func cloneConfig(cfg paystub.PayConfiguration) paystub.PayConfiguration {
	if cfg.HolidayHours != nil {
		h := *cfg.HolidayHours
		cfg.HolidayHours = &h
	}
	if cfg.Deductions != nil {
		cfg.Deductions = append([]paystub.Deduction(nil), cfg.Deductions...)
	}
	return cfg
}

func (p Profile) clone() Profile {
	p.Config = cloneConfig(p.Config)
	return p
}
