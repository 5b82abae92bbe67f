package paystub

// schedule holds every constant that depends on the pay frequency. Adding a
// frequency means adding one complete row to schedules.
type schedule struct {
	periodsPerYear    int
	periodDays        int
	overtimeThreshold float64
	// hourly period hours are hoursPerWeek * hoursNum / hoursDen
	hoursNum float64
	hoursDen float64
}

var schedules = map[PayFrequency]schedule{
	FrequencyWeekly:      {periodsPerYear: 52, periodDays: 7, overtimeThreshold: 40, hoursNum: 1, hoursDen: 1},
	FrequencyBiWeekly:    {periodsPerYear: 26, periodDays: 14, overtimeThreshold: 80, hoursNum: 2, hoursDen: 1},
	FrequencySemiMonthly: {periodsPerYear: 24, periodDays: 15, overtimeThreshold: 86.67, hoursNum: 52, hoursDen: 24},
	FrequencyMonthly:     {periodsPerYear: 12, periodDays: 30, overtimeThreshold: 173.33, hoursNum: 52, hoursDen: 12},
}

// Frequencies lists the supported pay frequencies in display order.
func Frequencies() []PayFrequency {
	return []PayFrequency{FrequencyWeekly, FrequencyBiWeekly, FrequencySemiMonthly, FrequencyMonthly}
}

// Valid reports whether f is one of the declared frequencies.
func (f PayFrequency) Valid() bool {
	_, ok := schedules[f]
	return ok
}

// schedule falls back to bi-weekly constants for unknown frequencies.
func (f PayFrequency) schedule() schedule {
	if s, ok := schedules[f]; ok {
		return s
	}
	return schedules[FrequencyBiWeekly]
}

func (f PayFrequency) PeriodsPerYear() int { return f.schedule().periodsPerYear }

// PeriodDays is the nominal period length; semi-monthly and monthly are approximations.
func (f PayFrequency) PeriodDays() int { return f.schedule().periodDays }

func (f PayFrequency) OvertimeThreshold() float64 { return f.schedule().overtimeThreshold }

// PeriodHours scales weekly hours to one pay period.
func (f PayFrequency) PeriodHours(hoursPerWeek float64) float64 {
	s := f.schedule()
	return hoursPerWeek * s.hoursNum / s.hoursDen
}

// SalariedHours is the informational hour count shown on salaried statements.
func (f PayFrequency) SalariedHours() float64 {
	switch f {
	case FrequencyBiWeekly:
		return 80
	case FrequencyWeekly:
		return 40
	}
	return StandardAnnualHours / float64(f.PeriodsPerYear())
}
