package paystub

import "unicode/utf16"

type benefitCategory struct {
	name   string
	tag    string
	lo, hi float64
}

var benefitCategories = []benefitCategory{
	{name: "Medical (ER)", tag: "MED", lo: 400, hi: 600},
	{name: "Dental (ER)", tag: "DEN", lo: 20, hi: 50},
	{name: "Vision (ER)", tag: "VIS", lo: 5, hi: 15},
	{name: "Life Ins (ER)", tag: "LIFE", lo: 5, hi: 12},
	{name: "401k Match", tag: "401K", lo: 50, hi: 150},
}

// EmployerBenefits synthesizes the employer-paid block. The figures depend
// only on employeeName+employeeID, so they are stable for an employee.
func EmployerBenefits(employeeName, employeeID string, mult float64) []BenefitLine {
	seed := employeeName + employeeID
	lines := make([]BenefitLine, 0, len(benefitCategories))
	for _, c := range benefitCategories {
		amount := SeededValue(seed+c.tag, c.lo, c.hi)
		lines = append(lines, BenefitLine{Name: c.name, Current: amount, YTD: amount * mult})
	}
	return lines
}

// SeedHash folds the UTF-16 code units of seed with h = h*31 + unit,
// wrapping at 32 bits signed.
func SeedHash(seed string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(seed)) {
		h = h*31 + int32(unit)
	}
	return h
}

// SeedFraction maps seed to [0,1) in steps of 0.001: |hash| mod 1000 / 1000.
func SeedFraction(seed string) float64 {
	h := int64(SeedHash(seed))
	if h < 0 {
		h = -h
	}
	return float64(h%1000) / 1000
}

// SeededValue maps seed linearly into [lo, hi).
func SeededValue(seed string, lo, hi float64) float64 {
	return lo + SeedFraction(seed)*(hi-lo)
}
