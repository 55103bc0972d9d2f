package agent

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func testQuickFill(provider *fakeProvider) *QuickFill {
	q := NewQuickFill(provider, slog.New(slog.NewTextHandler(io.Discard, nil)))
	q.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return q
}

func TestQuickFill_DerivedUnderwritingNumbers(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"name":"Acme Construction Co.","address":"100 Main St","city":"Denver","state":"CO","zipCode":"80014","industry":"Construction","employeeCount":18,"annualRevenue":1000000,"yearFounded":2014,"contactName":"Jane Doe","contactEmail":"jane@acme.example.com","contactPhone":"555-0199"}`,
	}}

	form, err := testQuickFill(provider).Generate(context.Background(), map[string]any{"company": map[string]any{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// half of revenue, under the 10M cap, already a 100k multiple
	if form.CoverageLimit != 500000 {
		t.Errorf("coverageLimit = %v, want 500000", form.CoverageLimit)
	}
	// 2.5 percent of the limit rounded to the nearest 1k
	if form.DeductibleAmount != 13000 {
		t.Errorf("deductibleAmount = %v, want 13000", form.DeductibleAmount)
	}
	// 1.5 percent of the limit rounded to the nearest 100
	if form.PremiumAmount != 7500 {
		t.Errorf("premiumAmount = %v, want 7500", form.PremiumAmount)
	}
	if form.EffectiveDate != "2026-08-31" {
		t.Errorf("effectiveDate = %q", form.EffectiveDate)
	}
	if form.ExpirationDate != "2027-08-31" {
		t.Errorf("expirationDate = %q", form.ExpirationDate)
	}
	if !strings.Contains(form.AdditionalNotes, "$500,000") {
		t.Errorf("notes %q missing recommended coverage", form.AdditionalNotes)
	}
	if form.CompanyName != "Acme Construction Co." || form.YearFounded != 2014 {
		t.Errorf("profile fields = %q / %d", form.CompanyName, form.YearFounded)
	}
}

func TestQuickFill_CoverageLimitCap(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"name":"Big Co","annualRevenue":80000000}`,
	}}

	form, err := testQuickFill(provider).Generate(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.CoverageLimit != 10000000 {
		t.Errorf("coverageLimit = %v, want capped 10000000", form.CoverageLimit)
	}
}

func TestQuickFill_MissingProfileDefaults(t *testing.T) {
	provider := &fakeProvider{responses: []string{`{}`}}

	form, err := testQuickFill(provider).Generate(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.CompanyName != "Unknown Company" {
		t.Errorf("companyName = %q", form.CompanyName)
	}
	if form.ZipCode != "00000" || form.ContactPhone != "000-000-0000" {
		t.Errorf("defaults = %q / %q", form.ZipCode, form.ContactPhone)
	}
	if form.YearFounded != 2026 {
		t.Errorf("yearFounded = %d, want current year", form.YearFounded)
	}
	if form.AnnualRevenue != 0 || form.CoverageLimit != 0 {
		t.Errorf("numbers = %v / %v, want zero", form.AnnualRevenue, form.CoverageLimit)
	}
}

func TestQuickFill_ProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model unavailable")}

	if _, err := testQuickFill(provider).Generate(context.Background(), map[string]any{}); err == nil {
		t.Fatal("expected error when the model call fails")
	}
}
