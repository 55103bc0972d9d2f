// Package facts turns loosely-structured company facts and call transcripts
// into typed insurance-form values. Single-signal lookups are driven by a
// declarative rule catalogue consumed by one generic scan loop; multi-field
// assemblies (claims, prior carrier, locations) have dedicated extractors in
// extract.go that share the same regex vocabulary.
package facts

import (
	"regexp"
	"strings"
	"time"

	"github.com/harperhq/anvil/internal/memory"
)

// Aggregation selects how multiple matches for one rule combine.
type Aggregation string

const (
	// First keeps the first matched value; later matches never overwrite it.
	First Aggregation = "first"
	// Sum adds every matched dollar value together.
	Sum Aggregation = "sum"
	// Append collects every matched value in source order.
	Append Aggregation = "append"
)

// Rule is one row of the extraction catalogue.
type Rule struct {
	ID string

	// FactNames restricts matching to facts with one of these category tags.
	// Empty means any fact.
	FactNames []string
	// TextAny requires at least one of these lowercase substrings in the
	// fact text (or transcript, when Transcripts is set).
	TextAny []string
	// TargetAny requires at least one of these lowercase substrings in the
	// fact's target_node_name.
	TargetAny []string
	// Pattern captures the value in group 1. Nil rules are presence checks.
	Pattern *regexp.Regexp
	// Transcripts additionally scans phone-event transcripts and content.
	Transcripts bool

	Aggregate Aggregation
}

// Result is the outcome of scanning one rule.
type Result struct {
	Found  bool
	Value  string   // first-wins value for First rules
	Values []string // every value, for Append rules
	Sum    float64  // dollar total, for Sum rules
}

// Shared regex vocabulary. The catalogue and the bespoke extractors draw from
// the same set so the two stay consistent.
var (
	reAmount     = regexp.MustCompile(`\$([0-9,]+)`)
	reMoney      = regexp.MustCompile(`\$([0-9,.]+)`)
	reYear       = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	reUSDate     = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})`)
	reFederalID  = regexp.MustCompile(`(\d{2}[-\s]?\d{7})`)
	rePercent    = regexp.MustCompile(`(\d+)%`)
	reRateK      = regexp.MustCompile(`\$([0-9,.]+)[kK]`)
	reCarrier    = regexp.MustCompile(`(?i)(?:insur(?:ance|er)|carrier|policy)(?:\s+is|\s+with)?\s+([A-Za-z& ]+)`)
	rePremium    = regexp.MustCompile(`(?i)(?:premium|cost|pay(?:ing)?|rate)\s+(?:is\s+)?(?:about\s+)?(?:approximately\s+)?\$([0-9,.]+)`)
	reExpiration = regexp.MustCompile(`(?i)(?:expires?|expiration)\s+(?:date\s+)?(?:is\s+)?(?:on\s+)?([A-Za-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?`)
	reClaimSaid  = regexp.MustCompile(`(?i)(?:had|filed|made)(?:\s+a)?\s+claim(?:\s+for)?\s+([^.]+)`)
	reLocation   = regexp.MustCompile(`(?i)address:\s*([^,]+),\s*([^,]+),\s*([A-Za-z]{2})\s*(\d{5})`)
)

// Rule IDs referenced by the mappers.
const (
	RuleFederalID          = "federal_id"
	RuleSafetyProgram      = "safety_program"
	RuleSafetyMonthly      = "safety_monthly_meetings"
	RuleHazardExposure     = "hazard_exposure"
	RulePriorCancellations = "prior_cancellations"
	RuleBankruptcy         = "bankruptcy"
	RuleOpenClaim          = "open_claim"
	RuleEachOccurrence     = "limit_each_occurrence"
	RuleGeneralAggregate   = "limit_general_aggregate"
	RuleMedicalExpense     = "limit_medical_expense"
	RulePersonalInjury     = "limit_personal_adv_injury"
	RuleRentedPremises     = "limit_rented_premises"
	RuleProductsCompleted  = "limit_products_completed_ops"
)

// Catalogue is the default rule set. Keeping the signal patterns here as data
// means adding a new signal is one row, unit-testable on its own.
var Catalogue = []Rule{
	{ID: RuleFederalID, FactNames: []string{"HAS_FEDERAL_ID"}, Pattern: reFederalID, Aggregate: First},
	{ID: RuleSafetyProgram, FactNames: []string{"SAFETY_MEETINGS_FREQUENCY"}},
	{ID: RuleSafetyMonthly, FactNames: []string{"SAFETY_MEETINGS_FREQUENCY"}, TargetAny: []string{"monthly"}},
	{ID: RuleHazardExposure, FactNames: []string{"USES"}, TargetAny: []string{"chemical", "hazard", "explosive"}},
	{ID: RulePriorCancellations, FactNames: []string{"POLICY_CANCELLED"}},
	{ID: RuleBankruptcy, FactNames: []string{"HAS_BANKRUPTCIES"}, TextAny: []string{"yes"}},
	{ID: RuleOpenClaim, FactNames: []string{"HAS_OPEN_CLAIM"}},

	{ID: RuleEachOccurrence, TextAny: []string{"each occurrence"}, Pattern: reAmount, Aggregate: First},
	{ID: RuleGeneralAggregate, TextAny: []string{"general aggregate"}, Pattern: reAmount, Aggregate: First},
	{ID: RuleMedicalExpense, TextAny: []string{"medical expense"}, Pattern: reAmount, Aggregate: First},
	{ID: RulePersonalInjury, TextAny: []string{"personal and advertising injury"}, Pattern: reAmount, Aggregate: First},
	{ID: RuleRentedPremises, TextAny: []string{"damage to rented premises", "rented premises"}, Pattern: reAmount, Aggregate: First},
	{ID: RuleProductsCompleted, TextAny: []string{"products-completed", "products completed"}, Pattern: reAmount, Aggregate: First},
}

// Scan evaluates every rule against the active facts (and transcripts, where
// the rule opts in) and returns results keyed by rule ID. Extraction misses
// are silent: a rule that matches nothing yields a zero Result.
func Scan(rules []Rule, fs []memory.Fact, events []memory.PhoneEvent, now time.Time) map[string]Result {
	out := make(map[string]Result, len(rules))
	for _, rule := range rules {
		res := Result{}
		for _, f := range fs {
			if !f.Active(now) {
				continue
			}
			if !rule.matchesFact(f) {
				continue
			}
			applyText(&res, rule, f.Text)
		}
		if rule.Transcripts {
			for _, ev := range events {
				for _, text := range []string{ev.Transcript, ev.Content} {
					if text == "" {
						continue
					}
					if !rule.matchesText(text) {
						continue
					}
					applyText(&res, rule, text)
				}
			}
		}
		out[rule.ID] = res
	}
	return out
}

func (r Rule) matchesFact(f memory.Fact) bool {
	if len(r.FactNames) > 0 {
		ok := false
		for _, name := range r.FactNames {
			if f.Name == name {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(r.TargetAny) > 0 && !containsAny(f.TargetNodeName, r.TargetAny) {
		return false
	}
	if len(r.TextAny) > 0 && !containsAny(f.Text, r.TextAny) {
		return false
	}
	return true
}

func (r Rule) matchesText(text string) bool {
	if len(r.TextAny) > 0 && !containsAny(text, r.TextAny) {
		return false
	}
	return true
}

func applyText(res *Result, rule Rule, text string) {
	if rule.Pattern == nil {
		res.Found = true
		return
	}
	m := rule.Pattern.FindStringSubmatch(text)
	if m == nil {
		return
	}
	res.Found = true
	switch rule.Aggregate {
	case Sum:
		for _, all := range rule.Pattern.FindAllStringSubmatch(text, -1) {
			res.Sum += memory.ParseMoney(all[1])
		}
	case Append:
		for _, all := range rule.Pattern.FindAllStringSubmatch(text, -1) {
			res.Values = append(res.Values, all[1])
		}
	default: // First
		if res.Value == "" {
			res.Value = m[1]
		}
	}
}

func containsAny(s string, subs []string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
