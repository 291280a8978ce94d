package employee

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hrpayroll/internal/domain/payroll"
)

type Kind string

func (k Kind) Valid() bool {
	return k == KindAgent || k == KindTrainer
}

// ParseKind accepts the English kind names and the legacy "formateur".
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "agent":
		return KindAgent, nil
	case "trainer", "formateur":
		return KindTrainer, nil
	}
	return "", fmt.Errorf("%w: unknown employee kind %q", ErrValidation, value)
}

// Employee is implemented by *Agent and *Trainer only.
type Employee interface {
	Kind() Kind
	Details() Base
	Payslip() payroll.Breakdown
	AmountPayable() float64
	String() string

	base() *Base
}

type Base struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	BirthDate  time.Time `json:"birthDate"`
	HireDate   time.Time `json:"hireDate"`
	BaseSalary float64   `json:"baseSalary"`
}

func (b Base) Age(now time.Time) int {
	return wholeYears(b.BirthDate, now)
}

func (b Base) Tenure(now time.Time) int {
	return wholeYears(b.HireDate, now)
}

func (b Base) RetirementDate(retirementAge int) time.Time {
	return b.BirthDate.AddDate(retirementAge, 0, 0)
}

func (b Base) String() string {
	return fmt.Sprintf("%d-%s-%s-%s-%s",
		b.ID,
		b.Name,
		b.BirthDate.Format(displayLayout),
		b.HireDate.Format(displayLayout),
		formatAmount(b.BaseSalary),
	)
}

type Agent struct {
	Base
	ResponsibilityBonus float64 `json:"responsibilityBonus"`
}

func (a *Agent) Kind() Kind { return KindAgent }
func (a *Agent) Details() Base { return a.Base }
func (a *Agent) base() *Base { return &a.Base }
func (a *Agent) String() string { return a.Base.String() }

func (a *Agent) Payslip() payroll.Breakdown {
	return payroll.Compute(a.BaseSalary, payroll.InputLine{
		Label:  payroll.LineResponsibilityBonus,
		Amount: a.ResponsibilityBonus,
	})
}

func (a *Agent) AmountPayable() float64 {
	return a.Payslip().Net
}

type Trainer struct {
	Base
	OvertimeHours float64 `json:"overtimeHours"`
}

func (t *Trainer) Kind() Kind { return KindTrainer }
func (t *Trainer) Details() Base { return t.Base }
func (t *Trainer) base() *Base { return &t.Base }

func (t *Trainer) String() string {
	return t.Base.String() + "-" + formatAmount(t.OvertimeHours)
}

// Payslip pays at most payroll.OvertimeHourCap hours; the stored hours are
// left untouched.
func (t *Trainer) Payslip() payroll.Breakdown {
	return payroll.Compute(t.BaseSalary, payroll.InputLine{
		Label:  fmt.Sprintf("%s (%s h x %.2f)", payroll.LineOvertime, formatAmount(payroll.CappedOvertime(t.OvertimeHours)), payroll.OvertimeHourlyRate),
		Amount: payroll.OvertimePay(t.OvertimeHours),
	})
}

func (t *Trainer) AmountPayable() float64 {
	return t.Payslip().Net
}

// Equal reports whether a and b carry the same id.
func Equal(a, b Employee) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Details().ID == b.Details().ID
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
