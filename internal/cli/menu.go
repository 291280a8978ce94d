package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"hrpayroll/internal/domain/employee"
	"hrpayroll/internal/domain/payroll"
)

const menuText = `
1. List employees
2. Add an employee
3. Remove an employee
4. Quit
5. Export a payslip
`

// Menu is the interactive roster loop. Quitting, reaching the end of the
// input, or cancelling ctx saves the roster.
type Menu struct {
	svc        *employee.Service
	in         io.Reader
	lines      chan string
	out        io.Writer
	payslipDir string
}

func NewMenu(svc *employee.Service, in io.Reader, out io.Writer, payslipDir string) *Menu {
	return &Menu{svc: svc, in: in, out: out, payslipDir: payslipDir}
}

func (m *Menu) Run(ctx context.Context) error {
	m.startReader()
	for {
		if ctx.Err() != nil {
			m.printf("\nInterrupted.\n")
			return m.quit(ctx)
		}
		m.printf("%s", menuText)
		choice, ok := m.prompt(ctx, "Enter your choice: ")
		if !ok {
			return m.quit(ctx)
		}
		switch choice {
		case "1":
			m.list()
		case "2":
			m.add(ctx)
		case "3":
			m.remove(ctx)
		case "4":
			return m.quit(ctx)
		case "5":
			m.payslip(ctx)
		default:
			m.printf("Invalid choice. Please try again.\n")
		}
	}
}

// startReader feeds input lines to a channel so prompts can also wait on
// ctx. The goroutine ends at end of input.
func (m *Menu) startReader() {
	if m.lines != nil {
		return
	}
	m.lines = make(chan string)
	go func() {
		defer close(m.lines)
		scanner := bufio.NewScanner(m.in)
		for scanner.Scan() {
			m.lines <- scanner.Text()
		}
	}()
}

// quit saves even when ctx is already cancelled, so an interrupt does not
// drop the session's changes.
func (m *Menu) quit(ctx context.Context) error {
	if err := m.svc.Save(context.WithoutCancel(ctx)); err != nil {
		m.printf("Could not save employees: %v\n", err)
		return err
	}
	m.printf("Employees saved. Goodbye.\n")
	return nil
}

func (m *Menu) list() {
	items := m.svc.List()
	if len(items) == 0 {
		m.printf("No employees to display.\n")
		return
	}
	m.printf("\nEmployees:\n")
	for _, item := range items {
		m.printf("%s\n", item)
	}
}

func (m *Menu) add(ctx context.Context) {
	m.printf("\nNew employee:\n")
	name, _ := m.prompt(ctx, "Name: ")
	birthRaw, _ := m.prompt(ctx, "Birth date (YYYY-MM-DD): ")
	birthDate, err := employee.ParseDate(birthRaw)
	if err != nil {
		m.printf("Invalid birth date: %v\n", err)
		return
	}
	var hireDate time.Time
	if hireRaw, _ := m.prompt(ctx, "Hire date (YYYY-MM-DD, empty for today): "); hireRaw != "" {
		if hireDate, err = employee.ParseDate(hireRaw); err != nil {
			m.printf("Invalid hire date: %v\n", err)
			return
		}
	}
	baseSalary, ok := m.promptAmount(ctx, "Base salary: ")
	if !ok {
		return
	}
	kindRaw, _ := m.prompt(ctx, "Employee type (Agent/Trainer): ")
	kind, err := employee.ParseKind(kindRaw)
	if err != nil {
		m.printf("Invalid employee type. Choose 'Agent' or 'Trainer'.\n")
		return
	}

	fields := employee.Fields{Name: name, BirthDate: birthDate, HireDate: hireDate, BaseSalary: baseSalary}
	var hired employee.Employee
	switch kind {
	case employee.KindTrainer:
		hours, ok := m.promptAmount(ctx, "Overtime hours: ")
		if !ok {
			return
		}
		hired, err = m.svc.HireTrainer(ctx, fields, hours)
	default:
		bonus, ok := m.promptAmount(ctx, "Responsibility bonus: ")
		if !ok {
			return
		}
		hired, err = m.svc.HireAgent(ctx, fields, bonus)
	}
	if err != nil {
		m.printf("Employee not added: %v\n", err)
		return
	}
	m.printf("Employee %d added.\n", hired.Details().ID)
}

func (m *Menu) remove(ctx context.Context) {
	if m.svc.Count() == 0 {
		m.printf("No employees to remove.\n")
		return
	}
	id, ok := m.promptID(ctx, "Id of the employee to remove: ")
	if !ok {
		return
	}
	if err := m.svc.Remove(ctx, id); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			m.printf("Employee not found.\n")
			return
		}
		m.printf("Could not remove employee: %v\n", err)
		return
	}
	m.printf("Employee removed.\n")
}

func (m *Menu) payslip(ctx context.Context) {
	if m.svc.Count() == 0 {
		m.printf("No employees to display.\n")
		return
	}
	id, ok := m.promptID(ctx, "Employee id: ")
	if !ok {
		return
	}
	doc, err := m.svc.Payslip(id)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			m.printf("Employee not found.\n")
			return
		}
		m.printf("Could not build payslip: %v\n", err)
		return
	}
	path, err := payroll.WritePayslipFile(m.payslipDir, doc)
	if err != nil {
		m.printf("Could not write payslip: %v\n", err)
		return
	}
	m.printf("Net pay %.2f. Payslip written to %s\n", doc.Breakdown.Net, path)
}

// prompt returns false at end of input or once ctx is done.
func (m *Menu) prompt(ctx context.Context, label string) (string, bool) {
	m.printf("%s", label)
	if ctx.Err() != nil {
		return "", false
	}
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-m.lines:
		if !ok {
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

func (m *Menu) promptAmount(ctx context.Context, label string) (float64, bool) {
	raw, _ := m.prompt(ctx, label)
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		m.printf("Invalid amount %q.\n", raw)
		return 0, false
	}
	return value, true
}

func (m *Menu) promptID(ctx context.Context, label string) (int64, bool) {
	raw, _ := m.prompt(ctx, label)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		m.printf("Invalid id %q.\n", raw)
		return 0, false
	}
	return id, true
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
