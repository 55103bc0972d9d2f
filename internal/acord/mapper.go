package acord

import (
	"strconv"
	"strings"
	"time"

	"github.com/harperhq/anvil/internal/facts"
	"github.com/harperhq/anvil/internal/memory"
)

// Mapper projects raw company memory into ACORD forms. It is pure and
// idempotent given identical input; the clock is a field so tests can pin it.
type Mapper struct {
	agencyName string
	now        func() time.Time
}

func NewMapper(agencyName string) *Mapper {
	return &Mapper{agencyName: agencyName, now: time.Now}
}

// MapACORD125 builds a complete Commercial Insurance Application from any
// memory payload shape. It never fails: nil or malformed input yields the
// all-defaults form.
func (m *Mapper) MapACORD125(raw any) ACORD125Form {
	now := m.now()
	today := now.Format("2006-01-02")

	if raw == nil {
		return EmptyACORD125(today, m.agencyName)
	}

	mem := memory.Normalize(raw)
	company := mem.Company
	contact := firstContact(mem.Contacts)

	signals := facts.Scan(facts.Catalogue, mem.Facts, mem.PhoneEvents, now)
	loss := facts.ExtractLossHistory(mem.Facts, mem.PhoneEvents, now)
	carrier := facts.ExtractPriorCarrier(mem.Facts, mem.PhoneEvents, now)

	form := EmptyACORD125(today, m.agencyName)
	form.Agency.AgencyCustomerID = companyID(company, raw)

	form.ApplicantInformation.NamedInsured = NamedInsured125{
		Name: company.Str("company_name"),
		MailingAddress: MailingAddress{
			StreetAddress: joinNonEmpty(", ",
				company.Str("company_street_address_1"),
				company.Str("company_street_address_2")),
			City:  company.Str("company_city"),
			State: company.Str("company_state"),
			Zip:   company.Str("company_postal_code"),
		},
		SIC:            company.Str("company_sic_code"),
		NAICS:          company.Str("company_naics_code"),
		FEINOrSocSec:   signals[facts.RuleFederalID].Value,
		BusinessPhone:  company.Str("company_primary_phone"),
		WebsiteAddress: company.Str("company_website"),
		EntityType:     company.Str("company_legal_entity_type"),
	}

	form.ContactInformation = ContactInformation{
		ContactName:  strings.TrimSpace(contact.FirstName + " " + contact.LastName),
		PrimaryPhone: fallback(contact.Phone, company.Str("company_primary_phone")),
		PrimaryEmail: fallback(contact.Email, company.Str("company_primary_email")),
	}

	form.PremisesInformation.Location = PremisesLocation{
		Street:                  company.Str("company_street_address_1"),
		City:                    company.Str("company_city"),
		State:                   company.Str("company_state"),
		Zip:                     company.Str("company_postal_code"),
		FullTimeEmployees:       company.Int("company_full_time_employees"),
		PartTimeEmployees:       company.Int("company_part_time_employees"),
		AnnualRevenues:          company.Money("company_annual_revenue_usd"),
		DescriptionOfOperations: company.Str("company_description"),
	}

	form.GeneralInformation = GeneralInformation{
		SafetyProgram: SafetyProgram{
			HasProgram:      signals[facts.RuleSafetyProgram].Found,
			MonthlyMeetings: signals[facts.RuleSafetyMonthly].Found,
		},
		Exposures: Exposures{
			HasExposureToHazards: signals[facts.RuleHazardExposure].Found,
		},
		PriorCancellations: PriorCancellations{
			HasPriorCancellations: signals[facts.RulePriorCancellations].Found,
		},
		Bankruptcy: Bankruptcy{
			HasBankruptcy: signals[facts.RuleBankruptcy].Found,
		},
	}

	form.NatureOfBusiness = NatureOfBusiness{
		BusinessType:        company.Str("company_industry"),
		DateBusinessStarted: facts.StartDate(company, now),
		DescriptionPrimaryOperations: joinNonEmpty(" - ",
			company.Str("company_description"),
			company.Str("company_sub_industry")),
	}

	form.PriorCarrierInformation = PriorCarrierInformation{
		CarrierName:    carrier.CarrierName,
		PolicyNumber:   carrier.PolicyNumber,
		EffectiveDate:  carrier.EffectiveDate,
		ExpirationDate: carrier.ExpirationDate,
		Premium:        carrier.Premium,
	}

	form.LossHistory = LossHistory125{
		HasLosses:   loss.HasLosses,
		Claims:      claims125(loss.Claims),
		TotalLosses: loss.TotalLosses,
	}
	return form
}

// MapACORD126 builds a complete General Liability Section. The 126 variant
// shares the normalizer and extraction vocabulary with the 125 but populates
// a structurally different schema; the two are independent configurations.
func (m *Mapper) MapACORD126(raw any) ACORD126Form {
	now := m.now()

	if raw == nil {
		return EmptyACORD126("")
	}

	mem := memory.Normalize(raw)
	company := mem.Company

	signals := facts.Scan(facts.Catalogue, mem.Facts, mem.PhoneEvents, now)
	mentions := facts.ClaimMentions(mem.Facts, mem.PhoneEvents, now)
	sub := facts.ExtractSubcontractor(mem.Facts, company, now)

	form := EmptyACORD126(now.Format("2006-01-02"))
	form.StatusOfTransaction.TransactionType = "New Business"

	form.ApplicantInformation.NamedInsured = NamedInsured126{
		Name: company.Str("company_name"),
		MailingAddress: MailingAddress{
			StreetAddress: company.Str("company_street_address_1"),
			City:          company.Str("company_city"),
			State:         company.Str("company_state"),
			Zip:           company.Str("company_postal_code"),
		},
		BusinessPhone:  company.Str("company_primary_phone"),
		WebsiteAddress: company.Str("company_website"),
	}

	form.PolicyInformation.LimitsOfLiability = LimitsOfLiability{
		EachOccurrence:                       signals[facts.RuleEachOccurrence].Value,
		DamageToRentedPremises:               signals[facts.RuleRentedPremises].Value,
		MedicalExpense:                       signals[facts.RuleMedicalExpense].Value,
		PersonalAndAdvertisingInjury:         signals[facts.RulePersonalInjury].Value,
		GeneralAggregate:                     signals[facts.RuleGeneralAggregate].Value,
		ProductsCompletedOperationsAggregate: signals[facts.RuleProductsCompleted].Value,
	}

	form.Locations = locations126(company, facts.ExtraLocations(mem.Facts, now))

	form.Classifications = []Classification{{
		LocationNumber:            "1",
		ClassificationDescription: company.Str("company_description"),
	}}

	form.CoverageInformation = CoverageInformation{
		OccurrenceClaimsMade: "Occurrence",
		NumberOfEmployees:    strconv.Itoa(company.Int("company_full_time_employees")),
		OtherCoverages:       []string{},
	}

	form.ContractorInformation = ContractorInformation{
		DoesApplicantSubcontractWork:        sub.DoesSubcontract,
		PercentageSubcontracted:             sub.PercentSubcontracted,
		TypesOfWorkSubcontracted:            sub.TypesOfWork,
		AnnualCostOfSubcontractors:          sub.AnnualCost,
		AreCertificatesOfInsuranceRequired:  sub.RequiresCertificates,
		MinimumLimitRequirements:            sub.MinimumLimits,
		IsApplicantAddedAsAdditionalInsured: sub.AddedAsInsured,
	}

	form.LossHistory = LossHistory126{
		HasLosses: len(mentions) > 0,
		Claims:    claims126(mentions),
	}
	return form
}

func firstContact(contacts []memory.Contact) memory.Contact {
	if len(contacts) == 0 {
		return memory.Contact{}
	}
	return contacts[0]
}

// companyID prefers the company record's id, then falls back to top-level
// id / company_id keys on the raw payload.
func companyID(company memory.Company, raw any) string {
	if id := company.Str("id"); id != "" {
		return id
	}
	if m, ok := raw.(map[string]any); ok {
		c := memory.Company(m)
		if id := c.Str("id"); id != "" {
			return id
		}
		return c.Str("company_id")
	}
	return ""
}

func locations126(company memory.Company, extra []facts.Location) []Location126 {
	locs := []Location126{{
		LocationNumber:      "1",
		StreetAddress:       company.Str("company_street_address_1"),
		City:                company.Str("company_city"),
		State:               company.Str("company_state"),
		Zip:                 company.Str("company_postal_code"),
		Interest:            "Owned",
		AdditionalInterests: []string{},
	}}
	for _, loc := range extra {
		locs = append(locs, Location126{
			LocationNumber:      strconv.Itoa(len(locs) + 1),
			StreetAddress:       loc.Street,
			City:                loc.City,
			State:               loc.State,
			Zip:                 loc.Zip,
			Interest:            "Owned",
			AdditionalInterests: []string{},
		})
	}
	return locs
}

func claims125(in []facts.Claim) []Claim125 {
	out := make([]Claim125, 0, len(in))
	for _, c := range in {
		out = append(out, Claim125{
			DateOfOccurrence: c.DateOfOccurrence,
			Description:      c.Description,
			AmountPaid:       c.AmountPaid,
			AmountReserved:   c.AmountReserved,
			Status:           c.Status,
		})
	}
	return out
}

func claims126(in []facts.Claim) []Claim126 {
	out := make([]Claim126, 0, len(in))
	for _, c := range in {
		amount := ""
		if c.AmountPaid > 0 {
			amount = strconv.FormatFloat(c.AmountPaid, 'f', -1, 64)
		}
		out = append(out, Claim126{
			DateOfOccurrence: c.DateOfOccurrence,
			Description:      c.Description,
			AmountPaid:       amount,
			Status:           c.Status,
		})
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func fallback(v, alt string) string {
	if v != "" {
		return v
	}
	return alt
}
