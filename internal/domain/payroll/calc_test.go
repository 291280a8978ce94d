package payroll

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeWithoutExtras(t *testing.T) {
	got := Compute(1000)
	if got.Gross != 1000 {
		t.Fatalf("expected gross 1000, got %v", got.Gross)
	}
	if got.TaxBasis != 12000 {
		t.Fatalf("expected tax basis 12000, got %v", got.TaxBasis)
	}
	if got.TaxRate != 0 || got.Deduction != 0 || got.Net != 1000 {
		t.Fatalf("unexpected breakdown: %+v", got)
	}
	if len(got.Lines) != 1 || got.Lines[0].Label != LineBaseSalary {
		t.Fatalf("expected a single base salary line, got %+v", got.Lines)
	}
}

func TestComputeTaxesExtrasAtBaseSalaryRate(t *testing.T) {
	// 2400 * 12 = 28800 falls in the 12% bracket even though the bonus
	// would push the annual gross into the next one.
	got := Compute(2400, InputLine{Label: LineResponsibilityBonus, Amount: 2000})
	if got.Gross != 4400 {
		t.Fatalf("expected gross 4400, got %v", got.Gross)
	}
	if got.TaxRate != 0.12 {
		t.Fatalf("expected rate 0.12, got %v", got.TaxRate)
	}
	if !almostEqual(got.Net, 4400*0.88) {
		t.Fatalf("expected net %v, got %v", 4400*0.88, got.Net)
	}
	if !almostEqual(got.Deduction+got.Net, got.Gross) {
		t.Fatalf("deduction and net should add up to gross: %+v", got)
	}
}

func TestOvertimePayIsCapped(t *testing.T) {
	if pay := OvertimePay(10); pay != 700 {
		t.Fatalf("expected 700, got %v", pay)
	}
	if pay := OvertimePay(30); pay != 2100 {
		t.Fatalf("expected 2100, got %v", pay)
	}
	if pay := OvertimePay(50); pay != 2100 {
		t.Fatalf("expected capped 2100, got %v", pay)
	}
}
