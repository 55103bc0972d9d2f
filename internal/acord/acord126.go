package acord

// ACORD126Form is the Commercial General Liability Section.
type ACORD126Form struct {
	Date                  string                  `json:"date"`
	Agency                Agency                  `json:"agency"`
	Carrier               Carrier                 `json:"carrier"`
	StatusOfTransaction   StatusOfTransaction     `json:"status_of_transaction"`
	ApplicantInformation  ApplicantInformation126 `json:"applicant_information"`
	PolicyInformation     PolicyInformation126    `json:"policy_information"`
	Locations             []Location126           `json:"locations"`
	Classifications       []Classification        `json:"classifications"`
	CoverageInformation   CoverageInformation     `json:"coverage_information"`
	ContractorInformation ContractorInformation   `json:"contractor_information"`
	AdditionalQuestions   AdditionalQuestions     `json:"additional_questions"`
	LossHistory           LossHistory126          `json:"loss_history"`
	Remarks               string                  `json:"remarks"`
}

type ApplicantInformation126 struct {
	NamedInsured NamedInsured126 `json:"named_insured"`
}

type NamedInsured126 struct {
	Name           string         `json:"name"`
	MailingAddress MailingAddress `json:"mailing_address"`
	BusinessPhone  string         `json:"business_phone"`
	WebsiteAddress string         `json:"website_address"`
}

type PolicyInformation126 struct {
	ProposedEffDate   string            `json:"proposed_eff_date"`
	ProposedExpDate   string            `json:"proposed_exp_date"`
	LimitsOfLiability LimitsOfLiability `json:"limits_of_liability"`
	Deductible        Deductible        `json:"deductible"`
}

type LimitsOfLiability struct {
	EachOccurrence                       string `json:"each_occurrence"`
	DamageToRentedPremises               string `json:"damage_to_rented_premises"`
	MedicalExpense                       string `json:"medical_expense"`
	PersonalAndAdvertisingInjury         string `json:"personal_and_advertising_injury"`
	GeneralAggregate                     string `json:"general_aggregate"`
	ProductsCompletedOperationsAggregate string `json:"products_completed_operations_aggregate"`
}

type Deductible struct {
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

type Location126 struct {
	LocationNumber      string   `json:"location_number"`
	StreetAddress       string   `json:"street_address"`
	City                string   `json:"city"`
	State               string   `json:"state"`
	Zip                 string   `json:"zip"`
	Interest            string   `json:"interest"`
	AdditionalInterests []string `json:"additional_interests"`
}

type Classification struct {
	LocationNumber            string `json:"location_number"`
	ClassificationDescription string `json:"classification_description"`
	ClassCode                 string `json:"class_code"`
	PremiumBasis              string `json:"premium_basis"`
	Exposure                  string `json:"exposure"`
	Territory                 string `json:"territory"`
	Rate                      string `json:"rate"`
	Premium                   string `json:"premium"`
}

type CoverageInformation struct {
	OccurrenceClaimsMade      string   `json:"occurrence_claims_made"`
	ClaimsMadeRetroactiveDate string   `json:"claims_made_retroactive_date"`
	EmployeeBenefitsLiability bool     `json:"employee_benefits_liability"`
	NumberOfEmployees         string   `json:"number_of_employees"`
	Deductible                string   `json:"deductible"`
	RetroactiveDate           string   `json:"retroactive_date"`
	OtherCoverages            []string `json:"other_coverages"`
}

type ContractorInformation struct {
	DoesApplicantSubcontractWork        bool   `json:"does_applicant_subcontract_work"`
	PercentageSubcontracted             string `json:"percentage_subcontracted"`
	TypesOfWorkSubcontracted            string `json:"types_of_work_subcontracted"`
	AnnualCostOfSubcontractors          string `json:"annual_cost_of_subcontractors"`
	AreCertificatesOfInsuranceRequired  bool   `json:"are_certificates_of_insurance_required"`
	MinimumLimitRequirements            string `json:"minimum_limit_requirements"`
	IsApplicantAddedAsAdditionalInsured bool   `json:"is_applicant_added_as_additional_insured"`
}

type AdditionalQuestions struct {
	HasDiscontinuedProducts       bool   `json:"has_discontinued_products"`
	DetailsDiscontinuedProducts   string `json:"details_discontinued_products"`
	HasForeignOperations          bool   `json:"has_foreign_operations"`
	DetailsForeignOperations      string `json:"details_foreign_operations"`
	HasHoldHarmlessAgreements     bool   `json:"has_hold_harmless_agreements"`
	DetailsHoldHarmlessAgreements string `json:"details_hold_harmless_agreements"`
	HasDemolitionExposure         bool   `json:"has_demolition_exposure"`
	DetailsDemolitionExposure     string `json:"details_demolition_exposure"`
	HasIndependentContractors     bool   `json:"has_independent_contractors"`
	DetailsIndependentContractors string `json:"details_independent_contractors"`
}

type LossHistory126 struct {
	HasLosses   bool       `json:"has_losses"`
	Claims      []Claim126 `json:"claims"`
	TotalLosses string     `json:"total_losses"`
}

// Claim126 keeps amounts as strings: the 126 section reproduces the source
// text's comma formatting instead of parsing to numbers.
type Claim126 struct {
	DateOfOccurrence string `json:"date_of_occurrence"`
	Description      string `json:"description"`
	AmountPaid       string `json:"amount_paid"`
	AmountReserved   string `json:"amount_reserved"`
	Status           string `json:"status"`
}

// EmptyACORD126 returns the all-defaults form.
func EmptyACORD126(date string) ACORD126Form {
	return ACORD126Form{
		Date:            date,
		Locations:       []Location126{},
		Classifications: []Classification{},
		CoverageInformation: CoverageInformation{
			OtherCoverages: []string{},
		},
		LossHistory: LossHistory126{Claims: []Claim126{}},
	}
}
