package paystub

import "math"

type earnings struct {
	regRate, regHours, regAmount float64
	otRate, otHours, otAmount    float64
	holRate, holHours, holAmount float64
}

func (e earnings) gross() float64 { return e.regAmount + e.otAmount + e.holAmount }
func (e earnings) hours() float64 { return e.regHours + e.otHours + e.holHours }

// Compute builds the statement for the period periodsBack pay periods before
// cfg.CheckDate. It never fails: out-of-range inputs produce well-typed but
// meaningless figures, and negative offsets are treated as zero.
//
// YTD figures assume every earlier period of the year equals this one, so
// each of them is the current figure times PeriodsElapsed.
func Compute(cfg PayConfiguration, periodsBack int) ComputedStatement {
	cfg = Normalize(cfg)
	if periodsBack < 0 {
		periodsBack = 0
	}
	freq := cfg.PayFrequency
	periodDays := freq.PeriodDays()

	checkDate := cfg.CheckDate.AddDays(-periodsBack * periodDays)
	periodEnd := checkDate.AddDays(-ProcessingLagDays)
	periodStart := periodEnd.AddDays(-(periodDays - 1))

	earn := computeEarnings(cfg)
	gross := earn.gross()

	var preTax, postTax float64
	for _, d := range cfg.Deductions {
		if d.IsPreTax {
			preTax += d.Amount
		} else {
			postTax += d.Amount
		}
	}

	federalTaxable := math.Max(0, gross-preTax)
	ficaTaxable := gross

	current := Totals{
		GrossPay:          gross,
		FederalTaxable:    federalTaxable,
		FICATaxable:       ficaTaxable,
		FederalTax:        federalTaxable * (cfg.FederalTaxRate / 100),
		SocialSecurity:    ficaTaxable * SocialSecurityRate,
		Medicare:          ficaTaxable * MedicareRate,
		StateTax:          federalTaxable * (cfg.StateTaxRate / 100),
		PreTaxDeductions:  preTax,
		PostTaxDeductions: postTax,
		Hours:             earn.hours(),
	}
	current.NetPay = gross - preTax - current.TotalTaxes() - postTax

	elapsed := PeriodsElapsed(cfg, checkDate)
	mult := float64(elapsed)

	return ComputedStatement{
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		CheckDate:      checkDate,
		CheckNumber:    CheckNumberBase + elapsed,
		PeriodsElapsed: elapsed,
		Current:        current,
		YTD:            current.times(mult),
		LineItems: LineItems{
			Earnings:         earningLines(cfg, earn, mult),
			Taxes:            taxLines(current, mult),
			Deductions:       deductionLines(cfg.Deductions, mult),
			EmployerBenefits: EmployerBenefits(cfg.EmployeeName, cfg.EmployeeID, mult),
		},
	}
}

// PeriodsElapsed is the YTD multiplier for the period paid on checkDate:
// whole periods since Jan 1 of that year, or since the hire date when later,
// never less than one. A hire date after checkDate clamps to one.
func PeriodsElapsed(cfg PayConfiguration, checkDate Date) int {
	start := checkDate.StartOfYear()
	if start.Before(cfg.HireDate) {
		start = cfg.HireDate
	}
	days := checkDate.DaysSince(start)
	elapsed := floorDiv(days, cfg.PayFrequency.PeriodDays())
	return max(1, elapsed)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func computeEarnings(cfg PayConfiguration) earnings {
	e := earnings{holHours: holidayHours(cfg)}
	freq := cfg.PayFrequency

	if cfg.PayType == PayTypeHourly {
		e.regRate = cfg.HourlyRate
		e.otRate = cfg.HourlyRate * OvertimeMultiplier
		e.holRate = cfg.HourlyRate

		periodHours := freq.PeriodHours(cfg.HoursPerWeek)
		threshold := freq.OvertimeThreshold()
		if periodHours > threshold {
			e.regHours = threshold
			e.otHours = periodHours - threshold
		} else {
			e.regHours = periodHours
		}

		e.regAmount = e.regHours * e.regRate
		e.otAmount = e.otHours * e.otRate
		e.holAmount = e.holHours * e.holRate
		return e
	}

	e.regAmount = cfg.AnnualSalary / float64(freq.PeriodsPerYear())
	e.regRate = cfg.AnnualSalary / StandardAnnualHours
	e.regHours = freq.SalariedHours()
	// holiday hours are paid on top of the salary, not carved out of it
	e.holAmount = (cfg.AnnualSalary / StandardAnnualHours) * e.holHours
	return e
}

func earningLines(cfg PayConfiguration, e earnings, mult float64) []EarningLine {
	regular := EarningRegular
	if cfg.PayType != PayTypeHourly {
		regular = EarningSalary
	}
	lines := []EarningLine{{
		Name:    regular,
		Rate:    e.regRate,
		Hours:   e.regHours,
		Current: e.regAmount,
		YTD:     e.regAmount * mult,
	}}

	// Hourly staff past 40 h/week always get an overtime row, even at frequencies
	// whose threshold leaves the period with zero overtime hours.
	if e.otHours > 0 || (cfg.PayType == PayTypeHourly && cfg.HoursPerWeek > 40) {
		lines = append(lines, EarningLine{
			Name:    EarningOvertime,
			Rate:    e.otRate,
			Hours:   e.otHours,
			Current: e.otAmount,
			YTD:     e.otAmount * mult,
		})
	}

	if e.holHours > 0 {
		rate := e.holRate
		if rate == 0 {
			rate = e.regRate
		}
		lines = append(lines, EarningLine{
			Name:    EarningHoliday,
			Rate:    rate,
			Hours:   e.holHours,
			Current: e.holAmount,
			YTD:     e.holAmount * mult,
		})
	}
	return lines
}

func taxLines(current Totals, mult float64) []TaxLine {
	ytd := current.times(mult)
	lines := []TaxLine{
		{Name: TaxFederal, Current: current.FederalTax, YTD: ytd.FederalTax},
		{Name: TaxSocialSecurity, Current: current.SocialSecurity, YTD: ytd.SocialSecurity},
		{Name: TaxMedicare, Current: current.Medicare, YTD: ytd.Medicare},
	}
	if current.StateTax > 0 {
		lines = append(lines, TaxLine{Name: TaxState, Current: current.StateTax, YTD: ytd.StateTax})
	}
	return lines
}

func deductionLines(deductions []Deduction, mult float64) []DeductionLine {
	lines := make([]DeductionLine, 0, len(deductions))
	for _, d := range deductions {
		lines = append(lines, DeductionLine{
			Name:     d.Name,
			Current:  d.Amount,
			YTD:      d.Amount * mult,
			IsPreTax: d.IsPreTax,
		})
	}
	return lines
}
