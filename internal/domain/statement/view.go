package statement

import (
	"strconv"
	"strings"

	"paystub/internal/domain/paystub"
)

const (
	Title      = "Statement of Earnings and Deductions"
	Watermark  = "PAY STATEMENT"
	Disclaimer = "Generated for internal payroll records. Misuse or misrepresentation is prohibited."
	None       = "None"
)

const (
	GroupTaxes   = "TAXES"
	GroupPreTax  = "PRE-TAX"
	GroupPostTax = "POST-TAX"
)

// CodesLegend is printed in two rows of four.
var CodesLegend = []string{
	"A= Prior Period Adj", "N=Ded Susp/No Mk-up", "D= Ded Suspend/Mk-up", "R= Refund",
	"M=Make-up Included", "O= Add'l Current Pmts", "X= Add'l Nontaxable Pmts",
}

// Row is a labelled line with up to two formatted figures.
type Row struct {
	Label  string `json:"label"`
	First  string `json:"first"`
	Second string `json:"second,omitempty"`
	Bold   bool   `json:"bold,omitempty"`
}

type Group struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
	// Placeholder is set when the group has no lines and the preview shows "None".
	Placeholder bool `json:"placeholder,omitempty"`
}

type TotalsBar struct {
	CurrentWages string `json:"currentWages"`
	CurrentTaxes string `json:"currentTaxes"`
	NetCurrent   string `json:"netCurrent"`
	NetYTD       string `json:"netYtd"`
}

// View is the fully formatted statement shared by the preview and the PDF.
type View struct {
	CheckNumber string `json:"checkNumber"`
	PayPeriod   string `json:"payPeriod"`
	PeriodStart string `json:"periodStart"`
	CheckDate   string `json:"checkDate"`

	EmployeeID    string `json:"employeeId"`
	EmployeeName  string `json:"employeeName"`
	Address       string `json:"address"`
	CityStateZip  string `json:"cityStateZip"`
	MaritalStatus []Row  `json:"maritalStatus"`

	// RegRate is empty for salaried employees.
	RegRate string    `json:"regRate,omitempty"`
	Summary []Row     `json:"summary"`
	TaxInfo []Row     `json:"taxInfo"`
	Totals  TotalsBar `json:"totals"`

	Payments         []Row   `json:"payments"`
	EmployerBenefits []Row   `json:"employerBenefits"`
	Deductions       []Group `json:"deductions"`
	TimeOff          []Row   `json:"timeOff"`

	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
}

// Build formats stub, which must have been computed from cfg.
func Build(cfg paystub.PayConfiguration, stub paystub.ComputedStatement) View {
	cur, ytd := stub.Current, stub.YTD
	totalTax := cur.TotalTaxes()

	v := View{
		CheckNumber:  strconv.Itoa(stub.CheckNumber),
		PayPeriod:    FormatDate(stub.PeriodEnd),
		PeriodStart:  FormatDate(stub.PeriodStart),
		CheckDate:    FormatDate(stub.CheckDate),
		EmployeeID:   cfg.EmployeeID,
		EmployeeName: strings.ToUpper(cfg.EmployeeName),
		Address:      strings.ToUpper(cfg.Address),
		CityStateZip: strings.ToUpper(cfg.CityStateZip),
		MaritalStatus: []Row{
			{Label: "Federal", First: "S 03", Second: "0"},
			{Label: "Work State TX", First: "N/A N/A", Second: "0"},
			{Label: "Res State TX", First: "N/A N/A", Second: "0"},
		},
		TaxInfo: []Row{
			{Label: "Federal Wages", First: FormatMoney(cur.FederalTaxable), Second: FormatMoney(ytd.FederalTaxable)},
			{Label: "FICA Wages", First: FormatMoney(cur.FICATaxable), Second: FormatMoney(ytd.FICATaxable)},
			{Label: "Medicare Wages", First: FormatMoney(cur.FICATaxable), Second: FormatMoney(ytd.FICATaxable)},
		},
		Totals: TotalsBar{
			CurrentWages: FormatMoney(cur.GrossPay),
			CurrentTaxes: FormatMoney(totalTax),
			NetCurrent:   FormatMoney(cur.NetPay),
			NetYTD:       FormatMoney(ytd.NetPay),
		},
		TimeOff: []Row{
			{Label: "Vacation", First: "16.00", Second: "45.50"},
			{Label: "Sick / PTO", First: "8.00", Second: "24.00"},
		},
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
	}
	if cfg.PayType == paystub.PayTypeHourly {
		v.RegRate = strconv.FormatFloat(cfg.HourlyRate, 'f', 2, 64)
	}

	v.Summary = summaryRows(cfg, stub, totalTax)

	v.Payments = make([]Row, 0, len(stub.LineItems.Earnings))
	for _, e := range stub.LineItems.Earnings {
		v.Payments = append(v.Payments, Row{Label: e.Name, First: FormatMoney(e.Current), Second: FormatHours(e.Hours)})
	}

	v.EmployerBenefits = make([]Row, 0, len(stub.LineItems.EmployerBenefits))
	for _, b := range stub.LineItems.EmployerBenefits {
		v.EmployerBenefits = append(v.EmployerBenefits, Row{Label: b.Name, First: FormatMoney(b.Current), Second: FormatMoney(b.YTD)})
	}

	v.Deductions = deductionGroups(stub.LineItems)
	return v
}

func summaryRows(cfg paystub.PayConfiguration, stub paystub.ComputedStatement, totalTax float64) []Row {
	label := paystub.EarningRegular
	if cfg.PayType != paystub.PayTypeHourly {
		label = paystub.EarningSalary
	}

	// Only the first overtime-or-holiday line comes off the regular figure.
	regular := stub.Current.GrossPay
	for _, e := range stub.LineItems.Earnings {
		if strings.Contains(e.Name, "Overtime") || strings.Contains(e.Name, "Holiday") {
			regular -= e.Current
			break
		}
	}

	rows := []Row{{Label: label, First: FormatMoney(regular)}}
	if cfg.HolidayHours != nil && *cfg.HolidayHours != 0 {
		holiday, _ := stub.Earning(paystub.EarningHoliday)
		rows = append(rows, Row{Label: "Holiday", First: FormatMoney(holiday.Current)})
	}
	rows = append(rows,
		Row{Label: "Total Taxes Withheld", First: FormatMoney(totalTax)},
		Row{Label: "Net Amount", First: FormatMoney(stub.Current.NetPay), Bold: true},
	)
	return rows
}

func deductionGroups(items paystub.LineItems) []Group {
	taxes := Group{Title: GroupTaxes, Rows: make([]Row, 0, len(items.Taxes))}
	for _, t := range items.Taxes {
		taxes.Rows = append(taxes.Rows, Row{Label: t.Name, First: FormatMoney(t.Current), Second: FormatMoney(t.YTD)})
	}

	pre := Group{Title: GroupPreTax, Rows: []Row{}}
	post := Group{Title: GroupPostTax, Rows: []Row{}}
	for _, d := range items.Deductions {
		row := Row{Label: d.Name, First: FormatMoney(d.Current), Second: FormatMoney(d.YTD)}
		if d.IsPreTax {
			pre.Rows = append(pre.Rows, row)
		} else {
			post.Rows = append(post.Rows, row)
		}
	}
	pre.Placeholder = len(pre.Rows) == 0
	post.Placeholder = len(post.Rows) == 0

	return []Group{taxes, pre, post}
}
