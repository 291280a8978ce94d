package employee

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hrpayroll/internal/domain/payroll"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type ServiceConfig struct {
	Clock         Clock
	Logger        *slog.Logger
	RetirementAge int
}

// Service is the entry point used by the menu and the HTTP handlers. It
// serializes access to the roster.
type Service struct {
	mu            sync.Mutex
	roster        *Roster
	store         Store
	clock         Clock
	logger        *slog.Logger
	retirementAge int
}

func NewService(roster *Roster, store Store, cfg ServiceConfig) *Service {
	if roster == nil {
		roster = NewRoster()
	}
	if cfg.Clock == nil {
		cfg.Clock = realClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RetirementAge <= 0 {
		cfg.RetirementAge = DefaultRetirementAge
	}
	return &Service{
		roster:        roster,
		store:         store,
		clock:         cfg.Clock,
		logger:        cfg.Logger,
		retirementAge: cfg.RetirementAge,
	}
}

type Summary struct {
	ID                  int64     `json:"id"`
	Kind                Kind      `json:"kind"`
	Name                string    `json:"name"`
	BirthDate           string    `json:"birthDate"`
	HireDate            time.Time `json:"hireDate"`
	BaseSalary          float64   `json:"baseSalary"`
	ResponsibilityBonus *float64  `json:"responsibilityBonus,omitempty"`
	OvertimeHours       *float64  `json:"overtimeHours,omitempty"`
	Age                 int       `json:"age"`
	Tenure              int       `json:"tenure"`
	RetirementDate      string    `json:"retirementDate"`
	AmountPayable       float64   `json:"amountPayable"`
	Line                string    `json:"line"`
}

func (s *Service) HireAgent(ctx context.Context, f Fields, responsibilityBonus float64) (*Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f = s.withHireDate(f)
	agent, err := NewAgent(s.roster.Sequence(), f, responsibilityBonus)
	if err != nil {
		s.logger.DebugContext(ctx, "agent rejected", "name", f.Name, "err", err)
		return nil, err
	}
	s.roster.Add(agent)
	s.logger.InfoContext(ctx, "employee hired", "id", agent.ID, "kind", KindAgent)
	return agent, nil
}

func (s *Service) HireTrainer(ctx context.Context, f Fields, overtimeHours float64) (*Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f = s.withHireDate(f)
	trainer, err := NewTrainer(s.roster.Sequence(), f, overtimeHours)
	if err != nil {
		s.logger.DebugContext(ctx, "trainer rejected", "name", f.Name, "err", err)
		return nil, err
	}
	s.roster.Add(trainer)
	s.logger.InfoContext(ctx, "employee hired", "id", trainer.ID, "kind", KindTrainer)
	return trainer, nil
}

func (s *Service) withHireDate(f Fields) Fields {
	if f.HireDate.IsZero() {
		f.HireDate = s.clock.Now()
	}
	return f
}

func (s *Service) List() []Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.List()
}

func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.Len()
}

func (s *Service) Get(id int64) (Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.roster.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return item, nil
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.roster.Remove(id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "employee removed", "id", id)
	return nil
}

// Load replaces the roster with the stored snapshot. On any error the
// roster is left untouched.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raws, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	scratch := NewSequence(s.roster.Sequence().Last())
	items, err := DecodeAll(raws, scratch)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	if err := s.roster.Replace(items); err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	s.roster.Sequence().Advance(scratch.Last())
	s.logger.InfoContext(ctx, "roster loaded", "count", len(items))
	return nil
}

func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := EncodeAll(s.roster.List())
	if err := s.store.Save(ctx, records); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	s.logger.InfoContext(ctx, "roster saved", "count", len(records))
	return nil
}

func (s *Service) Summaries() []Summary {
	now := s.clock.Now()
	items := s.List()
	out := make([]Summary, 0, len(items))
	for _, item := range items {
		out = append(out, s.summarize(item, now))
	}
	return out
}

func (s *Service) Summary(id int64) (Summary, error) {
	item, err := s.Get(id)
	if err != nil {
		return Summary{}, err
	}
	return s.summarize(item, s.clock.Now()), nil
}

// Describe summarizes an employee value without looking it up, so it also
// works for one that has since been removed.
func (s *Service) Describe(item Employee) Summary {
	return s.summarize(item, s.clock.Now())
}

func (s *Service) summarize(item Employee, now time.Time) Summary {
	details := item.Details()
	summary := Summary{
		ID:             details.ID,
		Kind:           item.Kind(),
		Name:           details.Name,
		BirthDate:      details.BirthDate.Format(dateLayout),
		HireDate:       details.HireDate,
		BaseSalary:     details.BaseSalary,
		Age:            details.Age(now),
		Tenure:         details.Tenure(now),
		RetirementDate: details.RetirementDate(s.retirementAge).Format(dateLayout),
		AmountPayable:  item.AmountPayable(),
		Line:           item.String(),
	}
	switch v := item.(type) {
	case *Agent:
		bonus := v.ResponsibilityBonus
		summary.ResponsibilityBonus = &bonus
	case *Trainer:
		hours := v.OvertimeHours
		summary.OvertimeHours = &hours
	}
	return summary
}

func (s *Service) Payslip(id int64) (payroll.PayslipDocument, error) {
	item, err := s.Get(id)
	if err != nil {
		return payroll.PayslipDocument{}, err
	}
	details := item.Details()
	return payroll.PayslipDocument{
		EmployeeID: details.ID,
		Name:       details.Name,
		Kind:       string(item.Kind()),
		HireDate:   details.HireDate,
		IssuedAt:   s.clock.Now(),
		Breakdown:  item.Payslip(),
	}, nil
}
