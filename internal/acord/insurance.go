package acord

// InsuranceForm is the flat quick-fill application the conversational agent
// edits. Unlike the full ACORD sections this is a single-level field map, so
// a patch from the agent applies by field name.
type InsuranceForm struct {
	CompanyName      string  `json:"companyName"`
	Address          string  `json:"address"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	ZipCode          string  `json:"zipCode"`
	Industry         string  `json:"industry"`
	EmployeeCount    int     `json:"employeeCount"`
	AnnualRevenue    float64 `json:"annualRevenue"`
	YearFounded      int     `json:"yearFounded"`
	DeductibleAmount float64 `json:"deductibleAmount"`
	CoverageLimit    float64 `json:"coverageLimit"`
	EffectiveDate    string  `json:"effectiveDate"`
	ExpirationDate   string  `json:"expirationDate"`
	PremiumAmount    float64 `json:"premiumAmount"`
	ContactName      string  `json:"contactName"`
	ContactEmail     string  `json:"contactEmail"`
	ContactPhone     string  `json:"contactPhone"`
	AdditionalNotes  string  `json:"additionalNotes"`
}
