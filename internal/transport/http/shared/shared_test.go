package shared

import (
	"net/http/httptest"
	"testing"
)

func TestValidatorCollectsSortedIssues(t *testing.T) {
	v := NewValidator()
	negative := -1.0
	v.Required("name", "  ", "is required")
	v.Enum("kind", "manager", []string{"agent", "trainer"}, "must be agent or trainer")
	v.NonNegative("baseSalary", &negative)
	if _, ok := v.Date("birthDate", "15/06/1990"); ok {
		t.Fatal("expected dd/mm/yyyy to be rejected")
	}

	issues := v.Issues()
	if len(issues) != 4 {
		t.Fatalf("expected 4 issues, got %+v", issues)
	}
	if issues[0].Field != "baseSalary" || issues[3].Field != "name" {
		t.Fatalf("expected issues sorted by field, got %+v", issues)
	}
}

func TestValidatorAcceptsISODate(t *testing.T) {
	v := NewValidator()
	parsed, ok := v.Date("hireDate", "2015-09-01")
	if !ok || parsed.Year() != 2015 || v.HasIssues() {
		t.Fatalf("expected valid date, got %v %+v", parsed, v.Issues())
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	req := httptest.NewRequest("GET", "/?limit=2&offset=3", nil)
	got := Page(items, ParsePagination(req, 50, 200))
	if len(got) != 2 || got[0] != 4 || got[1] != 5 {
		t.Fatalf("unexpected page %v", got)
	}
	if got := Page(items, Pagination{Limit: 2, Offset: 9}); len(got) != 0 {
		t.Fatalf("expected empty page past the end, got %v", got)
	}
}
