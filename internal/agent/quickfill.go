package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/harperhq/anvil/internal/acord"
	"github.com/harperhq/anvil/internal/llm"
)

// QuickFill generates a pre-filled flat insurance form from raw company
// memory: one model extraction for the company profile, then derived
// underwriting numbers computed from the extracted revenue.
type QuickFill struct {
	llm    llm.Provider
	logger *slog.Logger
	now    func() time.Time
}

func NewQuickFill(provider llm.Provider, logger *slog.Logger) *QuickFill {
	return &QuickFill{llm: provider, logger: logger, now: time.Now}
}

type quickFillExtraction struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	ZipCode       string  `json:"zipCode"`
	Industry      string  `json:"industry"`
	EmployeeCount int     `json:"employeeCount"`
	AnnualRevenue float64 `json:"annualRevenue"`
	YearFounded   int     `json:"yearFounded"`
	ContactName   string  `json:"contactName"`
	ContactEmail  string  `json:"contactEmail"`
	ContactPhone  string  `json:"contactPhone"`
}

// Generate builds the form. The error covers the model call only; a company
// profile the model could not fill comes back with placeholder defaults.
func (q *QuickFill) Generate(ctx context.Context, memory any) (acord.InsuranceForm, error) {
	memoryJSON, err := json.Marshal(memory)
	if err != nil {
		return acord.InsuranceForm{}, fmt.Errorf("marshal memory: %w", err)
	}

	prompt := fmt.Sprintf(quickFillUserPrompt, memoryJSON)
	raw, err := q.llm.Complete(ctx, quickFillSystemPrompt, []llm.Message{{Role: "user", Content: prompt}}, 1024)
	if err != nil {
		return acord.InsuranceForm{}, fmt.Errorf("extract company profile: %w", err)
	}

	var data quickFillExtraction
	if err := json.Unmarshal([]byte(llm.StripFences(raw)), &data); err != nil {
		return acord.InsuranceForm{}, fmt.Errorf("parse company profile: %w", err)
	}

	now := q.now()
	coverageLimit := deriveCoverageLimit(data.AnnualRevenue)
	deductible := roundTo(coverageLimit*0.025, 1000)
	premium := roundTo(coverageLimit*0.015, 100)

	notes := fmt.Sprintf(
		"Based on %s's profile in the %s industry with %d employees and $%s in annual revenue, we recommend a comprehensive business insurance policy with liability coverage of $%s.\n\n"+
			"This coverage includes general liability, professional liability, and property insurance appropriate for your business size and industry risk profile.\n\n"+
			"For questions or customizations, please contact your agent or call our support line.",
		fallback(data.Name, "Unknown Company"),
		fallback(data.Industry, "Unknown"),
		data.EmployeeCount,
		formatNumber(data.AnnualRevenue),
		formatNumber(coverageLimit))

	yearFounded := data.YearFounded
	if yearFounded == 0 {
		yearFounded = now.Year()
	}

	q.logger.Info("quick-fill form generated",
		"company", data.Name,
		"coverage_limit", coverageLimit,
		"deductible", deductible,
		"premium", premium,
	)

	return acord.InsuranceForm{
		CompanyName:      fallback(data.Name, "Unknown Company"),
		Address:          fallback(data.Address, "No address provided"),
		City:             fallback(data.City, "Unknown"),
		State:            fallback(data.State, "Unknown"),
		ZipCode:          fallback(data.ZipCode, "00000"),
		Industry:         fallback(data.Industry, "Unknown"),
		EmployeeCount:    data.EmployeeCount,
		AnnualRevenue:    data.AnnualRevenue,
		YearFounded:      yearFounded,
		DeductibleAmount: deductible,
		CoverageLimit:    coverageLimit,
		EffectiveDate:    now.Format("2006-01-02"),
		ExpirationDate:   now.AddDate(1, 0, 0).Format("2006-01-02"),
		PremiumAmount:    premium,
		ContactName:      fallback(data.ContactName, "No contact provided"),
		ContactEmail:     fallback(data.ContactEmail, "no-email@example.com"),
		ContactPhone:     fallback(data.ContactPhone, "000-000-0000"),
		AdditionalNotes:  notes,
	}, nil
}

// deriveCoverageLimit is half of annual revenue capped at 10M, rounded to
// the nearest 100k.
func deriveCoverageLimit(revenue float64) float64 {
	limit := math.Min(revenue*0.5, 10_000_000)
	return roundTo(limit, 100_000)
}

func roundTo(v, unit float64) float64 {
	return math.Round(v/unit) * unit
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
