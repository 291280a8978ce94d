package payroll

import "time"

type Breakdown struct {
	Lines     []InputLine `json:"lines"`
	Gross     float64     `json:"gross"`
	TaxBasis  float64     `json:"taxBasis"`
	TaxRate   float64     `json:"taxRate"`
	Deduction float64     `json:"deduction"`
	Net       float64     `json:"net"`
}

type PayslipDocument struct {
	EmployeeID int64
	Name       string
	Kind       string
	HireDate   time.Time
	IssuedAt   time.Time
	Breakdown  Breakdown
}
