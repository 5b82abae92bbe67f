package paystub

type Deduction struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	IsPreTax bool    `json:"isPreTax"`
}

// PayConfiguration is the employee/employer profile a statement is computed from.
// Identity and display fields never take part in the arithmetic, with the
// exception of EmployeeName and EmployeeID seeding the employer benefits.
type PayConfiguration struct {
	EmployeeName string `json:"employeeName"`
	EmployeeID   string `json:"employeeId"`
	Address      string `json:"address"`
	CityStateZip string `json:"cityStateZip"`
	SSNLast4     string `json:"ssnLast4"`

	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`

	BankName     string `json:"bankName"`
	AccountLast4 string `json:"accountLast4"`

	PayType      PayType      `json:"payType"`
	PayFrequency PayFrequency `json:"payFrequency"`
	HourlyRate   float64      `json:"hourlyRate"`
	HoursPerWeek float64      `json:"hoursPerWeek"`
	HolidayHours *float64     `json:"holidayHours,omitempty"`
	AnnualSalary float64      `json:"annualSalary"`

	HireDate  Date `json:"hireDate"`
	CheckDate Date `json:"checkDate"`

	// Percentages in [0,100].
	FederalTaxRate float64 `json:"federalTaxRate"`
	StateTaxRate   float64 `json:"stateTaxRate"`

	Deductions []Deduction `json:"deductions"`
}

// Totals is one column of aggregate figures, either current period or YTD.
type Totals struct {
	GrossPay          float64 `json:"grossPay"`
	FederalTaxable    float64 `json:"federalTaxable"`
	FICATaxable       float64 `json:"ficaTaxable"`
	FederalTax        float64 `json:"federalTax"`
	SocialSecurity    float64 `json:"socialSecurity"`
	Medicare          float64 `json:"medicare"`
	StateTax          float64 `json:"stateTax"`
	PreTaxDeductions  float64 `json:"preTaxDeductions"`
	PostTaxDeductions float64 `json:"postTaxDeductions"`
	NetPay            float64 `json:"netPay"`
	Hours             float64 `json:"hours"`
}

func (t Totals) TotalTaxes() float64 {
	return t.FederalTax + t.SocialSecurity + t.Medicare + t.StateTax
}

func (t Totals) times(n float64) Totals {
	return Totals{
		GrossPay:          t.GrossPay * n,
		FederalTaxable:    t.FederalTaxable * n,
		FICATaxable:       t.FICATaxable * n,
		FederalTax:        t.FederalTax * n,
		SocialSecurity:    t.SocialSecurity * n,
		Medicare:          t.Medicare * n,
		StateTax:          t.StateTax * n,
		PreTaxDeductions:  t.PreTaxDeductions * n,
		PostTaxDeductions: t.PostTaxDeductions * n,
		NetPay:            t.NetPay * n,
		Hours:             t.Hours * n,
	}
}

type EarningLine struct {
	Name    string  `json:"name"`
	Rate    float64 `json:"rate"`
	Hours   float64 `json:"hours"`
	Current float64 `json:"current"`
	YTD     float64 `json:"ytd"`
}

type TaxLine struct {
	Name    string  `json:"name"`
	Current float64 `json:"current"`
	YTD     float64 `json:"ytd"`
}

type DeductionLine struct {
	Name     string  `json:"name"`
	Current  float64 `json:"current"`
	YTD      float64 `json:"ytd"`
	IsPreTax bool    `json:"isPreTax"`
}

// BenefitLine is an informational employer contribution; it never affects net pay.
type BenefitLine struct {
	Name    string  `json:"name"`
	Current float64 `json:"current"`
	YTD     float64 `json:"ytd"`
}

type LineItems struct {
	Earnings         []EarningLine   `json:"earnings"`
	Taxes            []TaxLine       `json:"taxes"`
	Deductions       []DeductionLine `json:"deductions"`
	EmployerBenefits []BenefitLine   `json:"employerBenefits"`
}

// ComputedStatement is the itemized result for one pay period.
type ComputedStatement struct {
	PeriodStart    Date      `json:"periodStart"`
	PeriodEnd      Date      `json:"periodEnd"`
	CheckDate      Date      `json:"checkDate"`
	CheckNumber    int       `json:"checkNumber"`
	PeriodsElapsed int       `json:"periodsElapsed"`
	Current        Totals    `json:"current"`
	YTD            Totals    `json:"ytd"`
	LineItems      LineItems `json:"lineItems"`
}

// Earning returns the first earning line with the given name.
func (s ComputedStatement) Earning(name string) (EarningLine, bool) {
	for _, line := range s.LineItems.Earnings {
		if line.Name == name {
			return line, true
		}
	}
	return EarningLine{}, false
}
