package employee

const (
	KindAgent   Kind = "agent"
	KindTrainer Kind = "trainer"

	MinimumHireAge       = 16
	DefaultRetirementAge = 60

	dateLayout    = "2006-01-02"
	displayLayout = "02/01/2006"
)
