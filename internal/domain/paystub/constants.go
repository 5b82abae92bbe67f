package paystub

type PayType string

const (
	PayTypeHourly PayType = "Hourly"
	PayTypeSalary PayType = "Salary"
)

// Valid reports whether t is one of the declared pay types.
func (t PayType) Valid() bool {
	switch t {
	case PayTypeHourly, PayTypeSalary:
		return true
	}
	return false
}

type PayFrequency string

const (
	FrequencyWeekly      PayFrequency = "Weekly"
	FrequencyBiWeekly    PayFrequency = "Bi-Weekly"
	FrequencySemiMonthly PayFrequency = "Semi-Monthly"
	FrequencyMonthly     PayFrequency = "Monthly"
)

const (
	SocialSecurityRate = 0.062
	MedicareRate       = 0.0145

	OvertimeMultiplier  = 1.5
	StandardAnnualHours = 2080.0

	// ProcessingLagDays separates the end of a pay period from its check date.
	ProcessingLagDays = 3

	CheckNumberBase = 1000
)

const (
	EarningRegular  = "Regular Pay"
	EarningSalary   = "Salary"
	EarningOvertime = "Overtime Pay"
	EarningHoliday  = "Holiday Pay"

	TaxFederal        = "Federal Withholding"
	TaxSocialSecurity = "Social Security"
	TaxMedicare       = "Medicare"
	TaxState          = "State Withholding"
)
