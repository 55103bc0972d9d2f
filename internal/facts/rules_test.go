package facts

import (
	"testing"
	"time"

	"github.com/harperhq/anvil/internal/memory"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestScan_PresenceRules(t *testing.T) {
	fs := []memory.Fact{
		{Name: "SAFETY_MEETINGS_FREQUENCY", Text: "Safety meetings held regularly", TargetNodeName: "Monthly Safety Meeting"},
		{Name: "POLICY_CANCELLED", Text: "Policy was cancelled in 2021"},
		{Name: "HAS_BANKRUPTCIES", Text: "Yes, filed chapter 11"},
	}

	res := Scan(Catalogue, fs, nil, testNow)

	for _, id := range []string{RuleSafetyProgram, RuleSafetyMonthly, RulePriorCancellations, RuleBankruptcy} {
		if !res[id].Found {
			t.Errorf("rule %s not found, want found", id)
		}
	}
	if res[RuleHazardExposure].Found {
		t.Error("hazard exposure should not match")
	}
}

func TestScan_InactiveFactsIgnored(t *testing.T) {
	fs := []memory.Fact{
		{Name: "POLICY_CANCELLED", Text: "cancelled", InvalidAt: "2020-01-01T00:00:00Z"},
	}
	res := Scan(Catalogue, fs, nil, testNow)
	if res[RulePriorCancellations].Found {
		t.Error("expired fact must not influence boolean derivation")
	}

	fs[0].InvalidAt = "2030-01-01T00:00:00Z"
	res = Scan(Catalogue, fs, nil, testNow)
	if !res[RulePriorCancellations].Found {
		t.Error("future invalid_at fact must still count")
	}
}

func TestScan_TargetNodeMatching(t *testing.T) {
	fs := []memory.Fact{
		{Name: "USES", Text: "Company uses industrial solvents", TargetNodeName: "Chemical Solvents"},
	}
	res := Scan(Catalogue, fs, nil, testNow)
	if !res[RuleHazardExposure].Found {
		t.Error("chemical target should flag hazard exposure")
	}

	fs[0].TargetNodeName = "Hand Tools"
	res = Scan(Catalogue, fs, nil, testNow)
	if res[RuleHazardExposure].Found {
		t.Error("benign target should not flag hazard exposure")
	}
}

func TestScan_ValueExtractionFirstWins(t *testing.T) {
	fs := []memory.Fact{
		{Name: "HAS_FEDERAL_ID", Text: "The company federal ID is 12-3456789"},
		{Name: "HAS_FEDERAL_ID", Text: "Old record says 98-7654321"},
	}
	res := Scan(Catalogue, fs, nil, testNow)
	if got := res[RuleFederalID].Value; got != "12-3456789" {
		t.Errorf("federal id = %q, want first-found 12-3456789", got)
	}
}

func TestScan_LimitRulesKeepCommaFormat(t *testing.T) {
	fs := []memory.Fact{
		{Name: "COVERAGE", Text: "They want each occurrence coverage of $1,000,000"},
		{Name: "COVERAGE", Text: "General aggregate should be $2,000,000"},
	}
	res := Scan(Catalogue, fs, nil, testNow)
	if got := res[RuleEachOccurrence].Value; got != "1,000,000" {
		t.Errorf("each occurrence = %q", got)
	}
	if got := res[RuleGeneralAggregate].Value; got != "2,000,000" {
		t.Errorf("general aggregate = %q", got)
	}
}

func TestScan_SumAggregation(t *testing.T) {
	rules := []Rule{{ID: "losses", TextAny: []string{"claim"}, Pattern: reAmount, Aggregate: Sum}}
	fs := []memory.Fact{
		{Name: "HISTORICAL_CLAIM", Text: "claim for $10,000 and another for $5,000"},
		{Name: "HISTORICAL_CLAIM", Text: "claim paid $2,500"},
	}
	res := Scan(rules, fs, nil, testNow)
	if got := res["losses"].Sum; got != 17500 {
		t.Errorf("sum = %v, want 17500", got)
	}
}

func TestScan_TranscriptOptIn(t *testing.T) {
	rules := []Rule{
		{ID: "with", TextAny: []string{"deductible"}, Pattern: reAmount, Transcripts: true, Aggregate: First},
		{ID: "without", TextAny: []string{"deductible"}, Pattern: reAmount, Aggregate: First},
	}
	events := []memory.PhoneEvent{{Transcript: "our deductible is $5,000 today"}}

	res := Scan(rules, nil, events, testNow)
	if got := res["with"].Value; got != "5,000" {
		t.Errorf("transcript rule value = %q", got)
	}
	if res["without"].Found {
		t.Error("rule without transcript opt-in must not scan events")
	}
}
