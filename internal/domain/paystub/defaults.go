package paystub

import "time"

// SampleConfiguration is the profile a new editor session starts from,
// with the check date set to the day of now.
func SampleConfiguration(now time.Time) PayConfiguration {
	holiday := 0.0
	return PayConfiguration{
		EmployeeName:   "Jessika Cabrera",
		EmployeeID:     "134824",
		Address:        "1500 Marilla St",
		CityStateZip:   "Dallas, TX 75201",
		SSNLast4:       "9988",
		AccountLast4:   "1950",
		CompanyName:    "City of Dallas",
		CompanyAddress: "1500 Marilla St Dallas, TX 75201",
		BankName:       "Capital One",
		PayType:        PayTypeHourly,
		PayFrequency:   FrequencyBiWeekly,
		HourlyRate:     18.00,
		HoursPerWeek:   40,
		HolidayHours:   &holiday,
		AnnualSalary:   65000,
		FederalTaxRate: 12,
		StateTaxRate:   0,
		HireDate:       NewDate(2023, time.January, 15),
		CheckDate:      DateOf(now),
		Deductions: []Deduction{
			{ID: "1", Name: "Medical Insurance", Amount: 45.00, IsPreTax: true},
			{ID: "2", Name: "401k", Amount: 80.00, IsPreTax: true},
		},
	}
}

// DeductionPresets are the common deductions offered as one-click additions.
// Preset ids are empty; they are assigned when a preset is added to a profile.
func DeductionPresets() []Deduction {
	return []Deduction{
		{Name: "Medical", Amount: 50, IsPreTax: true},
		{Name: "Dental", Amount: 15, IsPreTax: true},
		{Name: "Vision", Amount: 8, IsPreTax: true},
		{Name: "401k", Amount: 100, IsPreTax: true},
		{Name: "Critical Illness", Amount: 12, IsPreTax: false},
		{Name: "Support", Amount: 150, IsPreTax: false},
	}
}
