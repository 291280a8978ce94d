package payroll

// Bracket applies Rate to annual incomes strictly below Below.
type Bracket struct {
	Below float64
	Rate  float64
}

type TaxTable struct {
	Brackets []Bracket
	TopRate  float64
}

var DefaultTaxTable = TaxTable{
	Brackets: []Bracket{
		{Below: 28001, Rate: 0.00},
		{Below: 40001, Rate: 0.12},
		{Below: 50001, Rate: 0.24},
		{Below: 60001, Rate: 0.34},
		{Below: 150001, Rate: 0.38},
	},
	TopRate: 0.40,
}

// Rate returns the marginal rate for an annual income. Brackets must be
// sorted by Below; a bound equal to the income belongs to the next bracket.
func (t TaxTable) Rate(annual float64) float64 {
	for _, bracket := range t.Brackets {
		if annual < bracket.Below {
			return bracket.Rate
		}
	}
	return t.TopRate
}

func TaxRate(annual float64) float64 {
	return DefaultTaxTable.Rate(annual)
}

func NetOfTax(gross, rate float64) float64 {
	return gross * (1 - rate)
}
