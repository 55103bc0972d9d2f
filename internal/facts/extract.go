package facts

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperhq/anvil/internal/memory"
)

// Claim is one extracted loss event.
type Claim struct {
	DateOfOccurrence string
	Description      string
	AmountPaid       float64
	AmountReserved   float64
	Status           string
}

// LossHistory aggregates every claim found across facts and transcripts.
type LossHistory struct {
	HasLosses   bool
	Claims      []Claim
	TotalLosses float64
}

// PriorCarrier is the previous-policy information recovered from call
// transcripts and rate facts.
type PriorCarrier struct {
	CarrierName    string
	PolicyNumber   string
	EffectiveDate  string
	ExpirationDate string
	Premium        float64
}

// Subcontractor captures contractor-questionnaire answers inferred from
// subcontracting facts.
type Subcontractor struct {
	DoesSubcontract      bool
	PercentSubcontracted string
	TypesOfWork          string
	AnnualCost           string
	RequiresCertificates bool
	MinimumLimits        string
	AddedAsInsured       bool
}

// Location is an additional premises parsed out of a location fact.
type Location struct {
	Street string
	City   string
	State  string
	Zip    string
}

var claimFactNames = map[string]bool{
	"HISTORICAL_CLAIM": true,
	"FILED_CLAIM":      true,
	"HAS_CLAIM":        true,
}

// FederalID returns the FEIN from an active HAS_FEDERAL_ID fact, or "".
func FederalID(fs []memory.Fact, now time.Time) string {
	return Scan(Catalogue, fs, nil, now)[RuleFederalID].Value
}

// StartDate derives the business start date from years in business: January 1
// of (current year − years). Empty when the attribute is absent.
func StartDate(company memory.Company, now time.Time) string {
	years := company.Int("company_years_in_business")
	if years <= 0 {
		return ""
	}
	return fmt.Sprintf("%d-01-01", now.Year()-years)
}

// ExtractLossHistory builds the ACORD 125 loss history. Tagged claim facts
// contribute one claim each; transcript claim phrases contribute one claim
// per mention. Amounts sum across every source.
func ExtractLossHistory(fs []memory.Fact, events []memory.PhoneEvent, now time.Time) LossHistory {
	var hist LossHistory
	hasOpenClaim := Scan(Catalogue, fs, nil, now)[RuleOpenClaim].Found

	for _, f := range fs {
		if !claimFactNames[f.Name] || !f.Active(now) || f.Text == "" {
			continue
		}
		hist.HasLosses = true

		amount := firstAmount(f.Text)
		hist.TotalLosses += amount

		status := "Closed"
		if hasOpenClaim || strings.Contains(strings.ToLower(f.Text), "open") {
			status = "Open"
		}
		hist.Claims = append(hist.Claims, Claim{
			DateOfOccurrence: claimDate(f.Text),
			Description:      f.Text,
			AmountPaid:       amount,
			Status:           status,
		})
	}

	for _, ev := range events {
		if ev.Transcript == "" {
			continue
		}
		for _, m := range reClaimSaid.FindAllStringSubmatch(ev.Transcript, -1) {
			hist.HasLosses = true
			desc := m[1]

			amount := firstAmount(desc)
			hist.TotalLosses += amount

			status := "Closed"
			if strings.Contains(strings.ToLower(desc), "open") {
				status = "Open"
			}
			hist.Claims = append(hist.Claims, Claim{
				DateOfOccurrence: claimDate(desc),
				Description:      desc,
				AmountPaid:       amount,
				Status:           status,
			})
		}
	}
	return hist
}

// ClaimMentions scans every active fact and phone-event content for claim
// vocabulary. This is the broader ACORD 126 sweep: any text mentioning a
// claim or loss becomes one entry, with raw (comma-formatted) amounts and a
// status only when the text states one.
func ClaimMentions(fs []memory.Fact, events []memory.PhoneEvent, now time.Time) []Claim {
	var claims []Claim

	scan := func(text string) {
		lower := strings.ToLower(text)
		if !strings.Contains(lower, "claim") && !strings.Contains(lower, "loss") {
			return
		}
		status := ""
		if strings.Contains(lower, "open") {
			status = "Open"
		} else if strings.Contains(lower, "closed") {
			status = "Closed"
		}
		date := ""
		if m := reUSDate.FindStringSubmatch(text); m != nil {
			date = m[1]
		}
		amount := 0.0
		if m := reAmount.FindStringSubmatch(text); m != nil {
			amount = memory.ParseMoney(m[1])
		}
		claims = append(claims, Claim{
			DateOfOccurrence: date,
			Description:      text,
			AmountPaid:       amount,
			Status:           status,
		})
	}

	for _, f := range fs {
		if f.Active(now) && f.Text != "" {
			scan(f.Text)
		}
	}
	for _, ev := range events {
		if ev.Content != "" {
			scan(ev.Content)
		}
	}
	return claims
}

// ExtractPriorCarrier recovers carrier name, expiration date, and premium
// from call transcripts, falling back to an IS_NOW_INSURANCE_RATE fact for
// the premium. The effective date is back-computed as one year before a found
// expiration date. Each signal is independently optional and first-found-wins.
func ExtractPriorCarrier(fs []memory.Fact, events []memory.PhoneEvent, now time.Time) PriorCarrier {
	var pc PriorCarrier

	for _, ev := range events {
		transcript := ev.Transcript
		if transcript == "" {
			continue
		}
		if pc.CarrierName == "" {
			if m := reCarrier.FindStringSubmatch(transcript); m != nil {
				pc.CarrierName = strings.TrimSpace(m[1])
			}
		}
		if pc.ExpirationDate == "" {
			if m := reExpiration.FindStringSubmatch(transcript); m != nil {
				year := m[3]
				if year == "" {
					year = strconv.Itoa(now.Year())
				}
				day, _ := strconv.Atoi(m[2])
				pc.ExpirationDate = fmt.Sprintf("%s-%s-%02d", year, monthNumber(m[1]), day)
			}
		}
		if pc.Premium == 0 {
			if m := rePremium.FindStringSubmatch(transcript); m != nil {
				pc.Premium = memory.ParseMoney(m[1])
			}
		}
	}

	if pc.Premium == 0 {
		for _, f := range fs {
			if f.Name != "IS_NOW_INSURANCE_RATE" || !f.Active(now) {
				continue
			}
			if m := reRateK.FindStringSubmatch(f.Text); m != nil {
				pc.Premium = memory.ParseMoney(m[1]) * 1000
				break
			}
		}
	}

	if pc.ExpirationDate != "" {
		if exp, err := time.Parse("2006-01-02", pc.ExpirationDate); err == nil {
			pc.EffectiveDate = exp.AddDate(-1, 0, 0).Format("2006-01-02")
		}
	}
	return pc
}

// ExtractSubcontractor reads subcontracting facts into the contractor
// questionnaire. The annual cost falls back to the company's subcontractor
// cost attribute when no fact states one.
func ExtractSubcontractor(fs []memory.Fact, company memory.Company, now time.Time) Subcontractor {
	var sub Subcontractor

	for _, f := range fs {
		if !f.Active(now) || f.Text == "" {
			continue
		}
		lower := strings.ToLower(f.Text)
		if !strings.Contains(lower, "subcontract") {
			continue
		}
		sub.DoesSubcontract = true

		if sub.PercentSubcontracted == "" {
			if m := rePercent.FindStringSubmatch(f.Text); m != nil {
				sub.PercentSubcontracted = m[1]
			}
		}
		if sub.AnnualCost == "" {
			if m := reAmount.FindStringSubmatch(f.Text); m != nil {
				sub.AnnualCost = m[1]
			}
		}
		if strings.Contains(lower, "certificate") || strings.Contains(lower, "insurance") {
			sub.RequiresCertificates = strings.Contains(lower, "yes") || strings.Contains(lower, "require")
		}
		if strings.Contains(lower, "additional insured") {
			sub.AddedAsInsured = strings.Contains(lower, "yes") || !strings.Contains(lower, "no")
		}
	}

	if sub.AnnualCost == "" {
		sub.AnnualCost = company.Str("company_sub_contractor_costs_usd")
	}
	return sub
}

// ExtraLocations parses additional premises out of location facts shaped like
// "... address: 12 Oak St, Springfield, IL 62704".
func ExtraLocations(fs []memory.Fact, now time.Time) []Location {
	var locs []Location
	for _, f := range fs {
		if !f.Active(now) || f.Text == "" {
			continue
		}
		lower := strings.ToLower(f.Text)
		if !strings.Contains(lower, "location") || !strings.Contains(lower, "address") {
			continue
		}
		m := reLocation.FindStringSubmatch(f.Text)
		if m == nil {
			continue
		}
		locs = append(locs, Location{
			Street: strings.TrimSpace(m[1]),
			City:   strings.TrimSpace(m[2]),
			State:  strings.ToUpper(m[3]),
			Zip:    m[4],
		})
	}
	return locs
}

// firstAmount returns the first dollar amount in the text, 0 when none.
func firstAmount(text string) float64 {
	if m := reAmount.FindStringSubmatch(text); m != nil {
		return memory.ParseMoney(m[1])
	}
	return 0
}

// claimDate prefers a US-format date, then falls back to a bare year rendered
// as January 1.
func claimDate(text string) string {
	if m := reUSDate.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := reYear.FindStringSubmatch(text); m != nil {
		return m[1] + "-01-01"
	}
	return ""
}

var monthNumbers = map[string]string{
	"january": "01", "february": "02", "march": "03", "april": "04",
	"may": "05", "june": "06", "july": "07", "august": "08",
	"september": "09", "october": "10", "november": "11", "december": "12",
}

func monthNumber(name string) string {
	if n, ok := monthNumbers[strings.ToLower(name)]; ok {
		return n
	}
	return "01"
}
