package shared

import (
	"fmt"
	"strings"

	"paystub/internal/domain/paystub"
)

// PayConfigPayload is the wire form of a pay configuration. Struct tags
// cover ranges and enums; dates and deduction ids are checked in
// ToConfiguration.
type PayConfigPayload struct {
	EmployeeName   string `json:"employeeName" validate:"max=120"`
	EmployeeID     string `json:"employeeId" validate:"max=40"`
	Address        string `json:"address" validate:"max=200"`
	CityStateZip   string `json:"cityStateZip" validate:"max=200"`
	SSNLast4       string `json:"ssnLast4" validate:"omitempty,len=4,numeric"`
	CompanyName    string `json:"companyName" validate:"max=200"`
	CompanyAddress string `json:"companyAddress" validate:"max=300"`
	BankName       string `json:"bankName" validate:"max=120"`
	AccountLast4   string `json:"accountLast4" validate:"omitempty,len=4,numeric"`

	PayType      string   `json:"payType" validate:"required,oneof=Hourly Salary"`
	PayFrequency string   `json:"payFrequency" validate:"required,oneof=Weekly Bi-Weekly Semi-Monthly Monthly"`
	HourlyRate   float64  `json:"hourlyRate" validate:"gte=0"`
	HoursPerWeek float64  `json:"hoursPerWeek" validate:"gte=0,lte=168"`
	HolidayHours *float64 `json:"holidayHours" validate:"omitempty,gte=0"`
	AnnualSalary float64  `json:"annualSalary" validate:"gte=0"`

	HireDate  string `json:"hireDate"`
	CheckDate string `json:"checkDate" validate:"required"`

	FederalTaxRate float64 `json:"federalTaxRate" validate:"gte=0,lte=100"`
	StateTaxRate   float64 `json:"stateTaxRate" validate:"gte=0,lte=100"`

	Deductions []DeductionPayload `json:"deductions" validate:"max=50,dive"`
}

type DeductionPayload struct {
	ID       string  `json:"id" validate:"max=64"`
	Name     string  `json:"name" validate:"max=120"`
	Amount   float64 `json:"amount"`
	IsPreTax bool    `json:"isPreTax"`
}

// PayloadFromConfiguration is the inverse of ToConfiguration.
func PayloadFromConfiguration(cfg paystub.PayConfiguration) PayConfigPayload {
	p := PayConfigPayload{
		EmployeeName:   cfg.EmployeeName,
		EmployeeID:     cfg.EmployeeID,
		Address:        cfg.Address,
		CityStateZip:   cfg.CityStateZip,
		SSNLast4:       cfg.SSNLast4,
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		BankName:       cfg.BankName,
		AccountLast4:   cfg.AccountLast4,
		PayType:        string(cfg.PayType),
		PayFrequency:   string(cfg.PayFrequency),
		HourlyRate:     cfg.HourlyRate,
		HoursPerWeek:   cfg.HoursPerWeek,
		HolidayHours:   cfg.HolidayHours,
		AnnualSalary:   cfg.AnnualSalary,
		HireDate:       cfg.HireDate.String(),
		CheckDate:      cfg.CheckDate.String(),
		FederalTaxRate: cfg.FederalTaxRate,
		StateTaxRate:   cfg.StateTaxRate,
		Deductions:     make([]DeductionPayload, 0, len(cfg.Deductions)),
	}
	for _, d := range cfg.Deductions {
		p.Deductions = append(p.Deductions, DeductionPayload{ID: d.ID, Name: d.Name, Amount: d.Amount, IsPreTax: d.IsPreTax})
	}
	return p
}

// ToConfiguration parses dates and checks deduction ids, recording issues
// under prefix (e.g. "config."). Missing ids are assigned.
func (p PayConfigPayload) ToConfiguration(v *Validator, prefix string) paystub.PayConfiguration {
	cfg := paystub.PayConfiguration{
		EmployeeName:   strings.TrimSpace(p.EmployeeName),
		EmployeeID:     strings.TrimSpace(p.EmployeeID),
		Address:        strings.TrimSpace(p.Address),
		CityStateZip:   strings.TrimSpace(p.CityStateZip),
		SSNLast4:       strings.TrimSpace(p.SSNLast4),
		CompanyName:    strings.TrimSpace(p.CompanyName),
		CompanyAddress: strings.TrimSpace(p.CompanyAddress),
		BankName:       strings.TrimSpace(p.BankName),
		AccountLast4:   strings.TrimSpace(p.AccountLast4),
		PayType:        paystub.PayType(p.PayType),
		PayFrequency:   paystub.PayFrequency(p.PayFrequency),
		HourlyRate:     p.HourlyRate,
		HoursPerWeek:   p.HoursPerWeek,
		HolidayHours:   p.HolidayHours,
		AnnualSalary:   p.AnnualSalary,
		FederalTaxRate: p.FederalTaxRate,
		StateTaxRate:   p.StateTaxRate,
		Deductions:     make([]paystub.Deduction, 0, len(p.Deductions)),
	}

	if strings.TrimSpace(p.CheckDate) == "" {
		v.Add(prefix+"checkDate", "is required")
	} else {
		checkDate, err := paystub.ParseDate(p.CheckDate)
		if err != nil {
			v.Add(prefix+"checkDate", "must be a valid date in YYYY-MM-DD format")
		}
		cfg.CheckDate = checkDate
	}
	hireDate, err := paystub.ParseDate(p.HireDate)
	if err != nil {
		v.Add(prefix+"hireDate", "must be a valid date in YYYY-MM-DD format")
	}
	cfg.HireDate = hireDate

	seen := make(map[string]int, len(p.Deductions))
	for i, d := range p.Deductions {
		v.Required(fmt.Sprintf("%sdeductions[%d].name", prefix, i), d.Name, "is required")
		id := strings.TrimSpace(d.ID)
		if id != "" {
			if first, dup := seen[id]; dup {
				v.Add(fmt.Sprintf("%sdeductions[%d].id", prefix, i), fmt.Sprintf("duplicates deductions[%d].id", first))
			} else {
				seen[id] = i
			}
		}
		cfg.Deductions = append(cfg.Deductions, paystub.Deduction{
			ID:       id,
			Name:     strings.TrimSpace(d.Name),
			Amount:   d.Amount,
			IsPreTax: d.IsPreTax,
		})
	}
	return paystub.AssignDeductionIDs(cfg)
}
