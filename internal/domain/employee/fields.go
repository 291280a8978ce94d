package employee

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Fields are the typed inputs shared by every employee kind. A zero
// HireDate means "hired now".
type Fields struct {
	Name       string
	BirthDate  time.Time
	HireDate   time.Time
	BaseSalary float64
}

type IDSource interface {
	Next() int64
}

// NewAgent validates the inputs before drawing an id, so a rejected
// construction leaves the sequence untouched.
func NewAgent(ids IDSource, f Fields, responsibilityBonus float64) (*Agent, error) {
	base, err := newBase(f)
	if err != nil {
		return nil, err
	}
	if err := nonNegative("responsibilityBonus", responsibilityBonus); err != nil {
		return nil, err
	}
	base.ID = ids.Next()
	return &Agent{Base: base, ResponsibilityBonus: responsibilityBonus}, nil
}

func NewTrainer(ids IDSource, f Fields, overtimeHours float64) (*Trainer, error) {
	base, err := newBase(f)
	if err != nil {
		return nil, err
	}
	if err := nonNegative("overtimeHours", overtimeHours); err != nil {
		return nil, err
	}
	base.ID = ids.Next()
	return &Trainer{Base: base, OvertimeHours: overtimeHours}, nil
}

func newBase(f Fields) (Base, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return Base{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if f.BirthDate.IsZero() {
		return Base{}, fmt.Errorf("%w: birthDate is required", ErrValidation)
	}
	if err := nonNegative("baseSalary", f.BaseSalary); err != nil {
		return Base{}, err
	}

	hireDate := f.HireDate
	if hireDate.IsZero() {
		hireDate = time.Now()
	}
	birthDate := calendarDate(f.BirthDate)
	if ageAtHire := wholeYears(birthDate, hireDate); ageAtHire < MinimumHireAge {
		return Base{}, fmt.Errorf("%w: age at hire must be at least %d years, got %d", ErrValidation, MinimumHireAge, ageAtHire)
	}

	return Base{
		Name:       name,
		BirthDate:  birthDate,
		HireDate:   hireDate,
		BaseSalary: f.BaseSalary,
	}, nil
}

func nonNegative(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return fmt.Errorf("%w: %s must be a non-negative amount", ErrValidation, field)
	}
	return nil
}
