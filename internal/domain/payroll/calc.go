package payroll

import "math"

type InputLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Compute builds the monthly breakdown. The bracket is picked from the
// annualized base salary only; extras are paid out at that same rate.
func Compute(baseSalary float64, extras ...InputLine) Breakdown {
	lines := make([]InputLine, 0, len(extras)+1)
	lines = append(lines, InputLine{Label: LineBaseSalary, Amount: baseSalary})
	gross := baseSalary
	for _, extra := range extras {
		gross += extra.Amount
		lines = append(lines, extra)
	}

	annual := baseSalary * MonthsPerYear
	rate := TaxRate(annual)
	net := NetOfTax(gross, rate)
	return Breakdown{
		Lines:     lines,
		Gross:     gross,
		TaxBasis:  annual,
		TaxRate:   rate,
		Deduction: gross - net,
		Net:       net,
	}
}

func CappedOvertime(hours float64) float64 {
	return math.Min(hours, OvertimeHourCap)
}

func OvertimePay(hours float64) float64 {
	return CappedOvertime(hours) * OvertimeHourlyRate
}
