package agent

// FieldMeta describes one updatable form field: what it means, how it is
// validated, and which section owns it. The catalogue drives field questions
// and ambiguity resolution.
type FieldMeta struct {
	Description     string
	Examples        []string
	ValidationRules string
	RelatedFields   []string
	Section         string
	AmbiguityHints  []string
}

var fieldMetadata = map[string]FieldMeta{
	"companyName": {
		Description: "is the legal name of the company applying for insurance coverage",
		Examples:    []string{"Acme Corporation", "Smith & Sons LLC"},
		Section:     "company",
	},
	"address": {
		Description:    "is the street address of the company's primary location",
		Examples:       []string{"123 Main Street", "456 Business Ave, Suite 100"},
		Section:        "premises",
		AmbiguityHints: []string{"location", "building", "property", "office", "premises"},
	},
	"city": {
		Description:    "is the city where the company's primary location is situated",
		Examples:       []string{"San Francisco", "New York"},
		Section:        "premises",
		AmbiguityHints: []string{"location", "property", "premises"},
	},
	"state": {
		Description:    "is the state where the company's primary location is situated",
		Examples:       []string{"CA", "NY", "TX"},
		Section:        "premises",
		AmbiguityHints: []string{"location", "property", "premises"},
	},
	"zipCode": {
		Description:     "is the ZIP code of the company's primary location",
		Examples:        []string{"94105", "10001"},
		ValidationRules: "5-digit or 9-digit ZIP code (XXXXX or XXXXX-XXXX)",
		Section:         "premises",
		AmbiguityHints:  []string{"location", "property", "premises"},
	},
	"industry": {
		Description: "is the primary industry in which the company operates",
		Examples:    []string{"Technology", "Manufacturing", "Healthcare"},
		Section:     "company",
	},
	"employeeCount": {
		Description: "is the total number of employees working for the company",
		Examples:    []string{"15", "250", "1000+"},
		Section:     "company",
	},
	"annualRevenue": {
		Description: "is the company's annual revenue in USD",
		Examples:    []string{"$500,000", "$2,500,000", "$10,000,000+"},
		Section:     "financial",
	},
	"yearFounded": {
		Description: "is the year the company was established",
		Examples:    []string{"1995", "2010", "2023"},
		Section:     "company",
	},
	"deductibleAmount": {
		Description: "is the amount the policyholder must pay out-of-pocket before insurance coverage begins",
		Examples:    []string{"$1,000", "$5,000", "$10,000"},
		Section:     "coverage",
	},
	"coverageLimit": {
		Description: "is the maximum amount the insurance will pay for covered losses",
		Examples:    []string{"$1,000,000", "$5,000,000"},
		Section:     "coverage",
	},
	"effectiveDate": {
		Description:     "is the date when the insurance coverage begins",
		Examples:        []string{"2023-01-01", "2024-07-15"},
		ValidationRules: "YYYY-MM-DD format",
		Section:         "coverage",
	},
	"expirationDate": {
		Description:     "is the date when the insurance coverage ends",
		Examples:        []string{"2024-01-01", "2025-07-15"},
		ValidationRules: "YYYY-MM-DD format",
		Section:         "coverage",
		RelatedFields:   []string{"effectiveDate"},
	},
	"premiumAmount": {
		Description: "is the amount paid for the insurance coverage",
		Examples:    []string{"$2,500", "$10,000"},
		Section:     "financial",
	},
	"contactName": {
		Description: "is the name of the primary contact person for the insurance policy",
		Examples:    []string{"John Smith", "Jane Doe"},
		Section:     "contact",
	},
	"contactEmail": {
		Description:     "is the email address of the primary contact person",
		Examples:        []string{"john.smith@acme.com", "jane.doe@example.com"},
		ValidationRules: "Valid email format (example@domain.com)",
		Section:         "contact",
	},
	"contactPhone": {
		Description:     "is the phone number of the primary contact person",
		Examples:        []string{"(555) 123-4567", "555-123-4567"},
		ValidationRules: "10-digit US phone number, various formats accepted",
		Section:         "contact",
	},
	"additionalNotes": {
		Description: "holds any additional information relevant to the insurance application",
		Examples:    []string{"Building has sprinkler system installed", "Business operates 24/7"},
		Section:     "other",
	},
}

var fieldsBySection = map[string][]string{
	"company":   {"companyName", "industry", "employeeCount", "yearFounded"},
	"premises":  {"address", "city", "state", "zipCode"},
	"contact":   {"contactName", "contactEmail", "contactPhone"},
	"coverage":  {"deductibleAmount", "coverageLimit", "effectiveDate", "expirationDate"},
	"financial": {"annualRevenue", "premiumAmount"},
	"other":     {"additionalNotes"},
}

var numericFields = map[string]bool{
	"employeeCount":    true,
	"annualRevenue":    true,
	"yearFounded":      true,
	"deductibleAmount": true,
	"coverageLimit":    true,
	"premiumAmount":    true,
}

var currencyFields = map[string]bool{
	"annualRevenue":    true,
	"deductibleAmount": true,
	"coverageLimit":    true,
	"premiumAmount":    true,
}

var dateFields = map[string]bool{
	"effectiveDate":  true,
	"expirationDate": true,
}

// sectionsForField lists every section that carries a field with this name.
func sectionsForField(field string) []string {
	var sections []string
	for _, section := range sectionOrder {
		for _, f := range fieldsBySection[section] {
			if f == field {
				sections = append(sections, section)
			}
		}
	}
	return sections
}

// sectionOrder keeps section iteration deterministic.
var sectionOrder = []string{"company", "premises", "contact", "coverage", "financial", "other"}
