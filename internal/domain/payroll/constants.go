package payroll

const (
	MonthsPerYear = 12

	OvertimeHourlyRate = 70.00
	OvertimeHourCap    = 30.0

	LineBaseSalary          = "Base salary"
	LineResponsibilityBonus = "Responsibility bonus"
	LineOvertime            = "Overtime"
)
