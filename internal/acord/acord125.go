// Package acord defines the ACORD 125/126 form schemas and the mappers that
// project canonical company memory into them. Forms are total: every field
// has a defined default, and mapping never fails, whatever the input shape.
package acord

// ACORD125Form is the Commercial Insurance Application.
type ACORD125Form struct {
	Date                    string                  `json:"date"`
	Agency                  Agency                  `json:"agency"`
	Carrier                 Carrier                 `json:"carrier"`
	StatusOfTransaction     StatusOfTransaction     `json:"status_of_transaction"`
	PolicyInformation       PolicyInformation125    `json:"policy_information"`
	ApplicantInformation    ApplicantInformation125 `json:"applicant_information"`
	ContactInformation      ContactInformation      `json:"contact_information"`
	PremisesInformation     PremisesInformation     `json:"premises_information"`
	GeneralInformation      GeneralInformation      `json:"general_information"`
	NatureOfBusiness        NatureOfBusiness        `json:"nature_of_business"`
	PriorCarrierInformation PriorCarrierInformation `json:"prior_carrier_information"`
	LossHistory             LossHistory125          `json:"loss_history"`
}

type Agency struct {
	Name             string `json:"name"`
	ContactName      string `json:"contact_name"`
	Phone            string `json:"phone"`
	Fax              string `json:"fax"`
	Email            string `json:"email"`
	AgencyCustomerID string `json:"agency_customer_id"`
}

type Carrier struct {
	Name         string `json:"name"`
	NAICCode     string `json:"naic_code"`
	PolicyNumber string `json:"policy_number"`
}

type StatusOfTransaction struct {
	TransactionType string `json:"transaction_type"`
}

type PolicyInformation125 struct {
	ProposedEffDate string  `json:"proposed_eff_date"`
	ProposedExpDate string  `json:"proposed_exp_date"`
	BillingPlan     string  `json:"billing_plan"`
	PaymentPlan     string  `json:"payment_plan"`
	PolicyPremium   float64 `json:"policy_premium"`
}

type ApplicantInformation125 struct {
	NamedInsured NamedInsured125 `json:"named_insured"`
}

type NamedInsured125 struct {
	Name           string         `json:"name"`
	MailingAddress MailingAddress `json:"mailing_address"`
	GLCode         string         `json:"gl_code"`
	SIC            string         `json:"sic"`
	NAICS          string         `json:"naics"`
	FEINOrSocSec   string         `json:"fein_or_soc_sec"`
	BusinessPhone  string         `json:"business_phone"`
	WebsiteAddress string         `json:"website_address"`
	EntityType     string         `json:"entity_type"`
}

type MailingAddress struct {
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
}

type ContactInformation struct {
	ContactName  string `json:"contact_name"`
	PrimaryPhone string `json:"primary_phone"`
	PrimaryEmail string `json:"primary_email"`
}

type PremisesInformation struct {
	Location PremisesLocation `json:"location"`
}

type PremisesLocation struct {
	Street                  string  `json:"street"`
	City                    string  `json:"city"`
	State                   string  `json:"state"`
	Zip                     string  `json:"zip"`
	Interest                string  `json:"interest"`
	FullTimeEmployees       int     `json:"full_time_employees"`
	PartTimeEmployees       int     `json:"part_time_employees"`
	AnnualRevenues          float64 `json:"annual_revenues"`
	DescriptionOfOperations string  `json:"description_of_operations"`
}

type GeneralInformation struct {
	HasSubsidiaries    bool               `json:"has_subsidiaries"`
	SafetyProgram      SafetyProgram      `json:"safety_program"`
	Exposures          Exposures          `json:"exposures"`
	PriorCancellations PriorCancellations `json:"prior_cancellations"`
	Bankruptcy         Bankruptcy         `json:"bankruptcy"`
}

type SafetyProgram struct {
	HasProgram      bool `json:"has_program"`
	SafetyManual    bool `json:"safety_manual"`
	MonthlyMeetings bool `json:"monthly_meetings"`
}

type Exposures struct {
	HasExposureToHazards bool   `json:"has_exposure_to_hazards"`
	Details              string `json:"details"`
}

type PriorCancellations struct {
	HasPriorCancellations bool   `json:"has_prior_cancellations"`
	Reason                string `json:"reason"`
}

type Bankruptcy struct {
	HasBankruptcy bool   `json:"has_bankruptcy"`
	Details       string `json:"details"`
}

type NatureOfBusiness struct {
	BusinessType                 string `json:"business_type"`
	DateBusinessStarted          string `json:"date_business_started"`
	DescriptionPrimaryOperations string `json:"description_primary_operations"`
}

type PriorCarrierInformation struct {
	CarrierName    string  `json:"carrier_name"`
	PolicyNumber   string  `json:"policy_number"`
	EffectiveDate  string  `json:"effective_date"`
	ExpirationDate string  `json:"expiration_date"`
	Premium        float64 `json:"premium"`
}

type LossHistory125 struct {
	HasLosses   bool       `json:"has_losses"`
	Claims      []Claim125 `json:"claims"`
	TotalLosses float64    `json:"total_losses"`
}

type Claim125 struct {
	DateOfOccurrence string  `json:"date_of_occurrence"`
	Description      string  `json:"description"`
	AmountPaid       float64 `json:"amount_paid"`
	AmountReserved   float64 `json:"amount_reserved"`
	Status           string  `json:"status"`
}

// EmptyACORD125 returns the all-defaults form: empty strings, zeros, false
// booleans, empty lists. Date and agency name are the only pre-filled fields.
func EmptyACORD125(date, agencyName string) ACORD125Form {
	return ACORD125Form{
		Date:                date,
		Agency:              Agency{Name: agencyName},
		StatusOfTransaction: StatusOfTransaction{TransactionType: "New Business"},
		LossHistory:         LossHistory125{Claims: []Claim125{}},
	}
}
