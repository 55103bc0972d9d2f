package agent

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/harperhq/anvil/internal/acord"
	"github.com/harperhq/anvil/internal/llm"
)

// fakeProvider returns canned completions in order. An empty queue or a set
// error simulates provider failure.
type fakeProvider struct {
	responses []string
	err       error
	calls     int
}

func (f *fakeProvider) Complete(_ context.Context, _ string, _ []llm.Message, _ int) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("no canned response left")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func testPipeline(provider llm.Provider) *Pipeline {
	return New(provider, 0.7, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testForm() acord.InsuranceForm {
	return acord.InsuranceForm{
		CompanyName:      "Acme Construction Co.",
		DeductibleAmount: 1000,
	}
}

func TestRun_DeductibleUpdate(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"primaryIntent":"UPDATE_FORM","targetFields":["deductibleAmount"],"ambiguousFields":[],"values":{"deductibleAmount":"$5,000"},"confidenceScore":0.95,"reasoning":"explicit update request"}`,
		`{"updates":{"deductibleAmount":"$5,000"},"reasoning":"user stated the new deductible"}`,
	}}

	reply := testPipeline(provider).Run(context.Background(), "Update the deductible amount to $5,000", testForm(), "c-1", "conv-1")

	if got, ok := reply.Updates["deductibleAmount"].(float64); !ok || got != 5000 {
		t.Errorf("updates[deductibleAmount] = %v, want 5000", reply.Updates["deductibleAmount"])
	}
	if !strings.Contains(reply.Explanation, "$5,000") {
		t.Errorf("explanation %q missing formatted value", reply.Explanation)
	}
	if !strings.Contains(reply.Explanation, "Deductible Amount") {
		t.Errorf("explanation %q missing field name", reply.Explanation)
	}
	if reply.CurrentSection != "coverage" {
		t.Errorf("currentSection = %q, want coverage", reply.CurrentSection)
	}
}

func TestRun_MultiFieldUpdateConfirmation(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"primaryIntent":"UPDATE_FORM","targetFields":["city","state"],"ambiguousFields":[],"values":{},"confidenceScore":0.9,"reasoning":"two premises fields"}`,
		`{"updates":{"city":"Denver","state":"CO","effectiveDate":"07/15/2026"},"reasoning":"address change"}`,
	}}

	reply := testPipeline(provider).Run(context.Background(), "We moved to Denver, CO, coverage starts 07/15/2026", testForm(), "", "")

	if reply.Updates["city"] != "Denver" || reply.Updates["state"] != "CO" {
		t.Errorf("updates = %v", reply.Updates)
	}
	if reply.Updates["effectiveDate"] != "2026-07-15" {
		t.Errorf("effectiveDate = %v, want normalized 2026-07-15", reply.Updates["effectiveDate"])
	}
	if !strings.Contains(reply.Explanation, "City: Denver") {
		t.Errorf("explanation %q missing city line", reply.Explanation)
	}
	if !strings.Contains(reply.Explanation, "July 15, 2026") {
		t.Errorf("explanation %q missing long-form date", reply.Explanation)
	}
}

func TestRun_ClassifierFailureFallsBackToOther(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model unavailable")}

	reply := testPipeline(provider).Run(context.Background(), "hello?", testForm(), "", "")

	if len(reply.Updates) != 0 {
		t.Errorf("updates = %v, want empty", reply.Updates)
	}
	// classification degrades to OTHER, then the conversational node also
	// fails and uses its fixed fallback
	if reply.Explanation != "I'd be happy to help with your insurance form. What would you like to know or update?" {
		t.Errorf("explanation = %q", reply.Explanation)
	}
}

func TestRun_UnknownExtractedFieldsDropped(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"primaryIntent":"UPDATE_FORM","targetFields":["companyName"],"ambiguousFields":[],"values":{},"confidenceScore":0.9,"reasoning":""}`,
		`{"updates":{"companyName":"New Name","ssn":"123-45-6789"},"reasoning":""}`,
	}}

	reply := testPipeline(provider).Run(context.Background(), "Rename us", testForm(), "", "")

	if _, ok := reply.Updates["ssn"]; ok {
		t.Error("field outside the catalogue must be dropped")
	}
	if reply.Updates["companyName"] != "New Name" {
		t.Errorf("updates = %v", reply.Updates)
	}
}

func TestRun_SingleSectionAmbiguityResolvedWithoutModel(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"primaryIntent":"UPDATE_FORM","targetFields":[],"ambiguousFields":["deductibleAmount"],"values":{},"confidenceScore":0.8,"reasoning":""}`,
		`{"updates":{"deductibleAmount":2500},"reasoning":""}`,
	}}

	reply := testPipeline(provider).Run(context.Background(), "set the deductible to 2500", testForm(), "", "")

	if got := reply.Updates["deductibleAmount"]; got != float64(2500) {
		t.Errorf("updates = %v", reply.Updates)
	}
	// classify + extract only; trivial resolution must not call the model
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2", provider.calls)
	}
}

// twoSectionField registers a field under a second section for the duration
// of the test, making it genuinely ambiguous.
func twoSectionField(t *testing.T, field, extraSection string) {
	t.Helper()
	original := fieldsBySection[extraSection]
	fieldsBySection[extraSection] = append(append([]string{}, original...), field)
	t.Cleanup(func() { fieldsBySection[extraSection] = original })
}

func TestResolveAmbiguities_ConfidenceGate(t *testing.T) {
	twoSectionField(t, "zipCode", "contact")

	tests := []struct {
		name         string
		confidence   float64
		wantResolved bool
	}{
		{"above threshold", 0.9, true},
		{"at threshold", 0.7, false},
		{"below threshold", 0.4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{responses: []string{
				`{"resolvedSection":"premises","confidence":` + strconv.FormatFloat(tt.confidence, 'f', -1, 64) + `,"reasoning":"mentions the building"}`,
			}}
			p := testPipeline(provider)
			state := &State{
				Message:  "update the zip code to 94105",
				FormData: testForm(),
				Intent:   &Intent{PrimaryIntent: IntentUpdateForm, AmbiguousFields: []string{"zipCode"}},
			}
			if err := p.resolveAmbiguities(context.Background(), state); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if state.Ambiguity.Resolved != tt.wantResolved {
				t.Errorf("resolved = %v, want %v", state.Ambiguity.Resolved, tt.wantResolved)
			}
			if tt.wantResolved && state.CurrentSection != "premises" {
				t.Errorf("currentSection = %q, want premises", state.CurrentSection)
			}
		})
	}
}

func TestRun_UnresolvedAmbiguityAsksForClarification(t *testing.T) {
	twoSectionField(t, "zipCode", "contact")

	provider := &fakeProvider{responses: []string{
		`{"primaryIntent":"UPDATE_FORM","targetFields":[],"ambiguousFields":["zipCode"],"values":{},"confidenceScore":0.8,"reasoning":""}`,
		`{"resolvedSection":"premises","confidence":0.3,"reasoning":"unclear"}`,
	}}

	reply := testPipeline(provider).Run(context.Background(), "change the zip code", testForm(), "", "")

	if len(reply.Updates) != 0 {
		t.Errorf("updates = %v, want none on unresolved ambiguity", reply.Updates)
	}
	if !strings.Contains(reply.Explanation, "premises or contact") {
		t.Errorf("explanation %q should list candidate sections", reply.Explanation)
	}
	if !strings.Contains(reply.Explanation, "clarify") {
		t.Errorf("explanation %q should ask for clarification", reply.Explanation)
	}
}

func TestRun_FieldQuestion(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"primaryIntent":"FIELD_QUESTION","targetFields":["zipCode"],"ambiguousFields":[],"values":{},"confidenceScore":0.9,"reasoning":""}`,
	}}

	reply := testPipeline(provider).Run(context.Background(), "what is the zip code field for?", testForm(), "", "")

	if !strings.Contains(reply.Explanation, "Zip Code") {
		t.Errorf("explanation %q missing field name", reply.Explanation)
	}
	if !strings.Contains(reply.Explanation, "94105") {
		t.Errorf("explanation %q missing examples", reply.Explanation)
	}
	if !strings.Contains(reply.Explanation, "location risk factors") {
		t.Errorf("explanation %q missing field tip", reply.Explanation)
	}
	if reply.CurrentSection != "premises" {
		t.Errorf("currentSection = %q", reply.CurrentSection)
	}
}

func TestRun_UnknownFieldQuestion(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"primaryIntent":"FIELD_QUESTION","targetFields":["policyColor"],"ambiguousFields":[],"values":{},"confidenceScore":0.9,"reasoning":""}`,
	}}

	reply := testPipeline(provider).Run(context.Background(), "what does the policy color mean?", testForm(), "", "")

	if !strings.Contains(reply.Explanation, `"policyColor"`) || !strings.Contains(reply.Explanation, "specify") {
		t.Errorf("explanation = %q, want clarifying question", reply.Explanation)
	}
}

func TestRun_EveryIntentProducesExplanation(t *testing.T) {
	intents := []string{
		IntentUpdateForm, IntentFieldQuestion, IntentGeneralQuestion,
		IntentFormNavigation, IntentGuidance, IntentConfirmation,
		IntentGreeting, IntentOther,
	}
	for _, intent := range intents {
		t.Run(intent, func(t *testing.T) {
			provider := &fakeProvider{responses: []string{
				`{"primaryIntent":"` + intent + `","targetFields":[],"ambiguousFields":[],"values":{},"confidenceScore":0.9,"reasoning":""}`,
				`{"updates":{},"reasoning":""}`,
				`Happy to help with that.`,
			}}

			reply := testPipeline(provider).Run(context.Background(), "hi", testForm(), "", "")
			if reply.Explanation == "" {
				t.Error("explanation must never be empty")
			}
		})
	}
}

func TestRoute_Exhaustive(t *testing.T) {
	// a nil intent after classification is the only fatal path
	if got := route(nodeClassifyIntent, &State{}); got != nodeError {
		t.Errorf("route with nil intent = %q, want error node", got)
	}
	if got := route(nodeError, &State{}); got != nodeEnd {
		t.Errorf("route from error = %q, want end", got)
	}

	withIntent := func(name string, ambiguous []string) *State {
		return &State{Intent: &Intent{PrimaryIntent: name, AmbiguousFields: ambiguous}}
	}
	tests := []struct {
		intent    string
		ambiguous []string
		want      node
	}{
		{IntentUpdateForm, nil, nodeExtractUpdates},
		{IntentUpdateForm, []string{"zipCode"}, nodeResolveAmbiguities},
		{IntentFieldQuestion, nil, nodeFieldInfo},
		{IntentGeneralQuestion, nil, nodeGenerateResponse},
		{IntentFormNavigation, nil, nodeGenerateResponse},
		{IntentGuidance, nil, nodeGenerateResponse},
		{IntentConfirmation, nil, nodeGenerateResponse},
		{IntentGreeting, nil, nodeGenerateResponse},
		{IntentOther, nil, nodeGenerateResponse},
	}
	for _, tt := range tests {
		if got := route(nodeClassifyIntent, withIntent(tt.intent, tt.ambiguous)); got != tt.want {
			t.Errorf("route(%s) = %q, want %q", tt.intent, got, tt.want)
		}
	}

	// no branch re-enters an earlier node
	if got := route(nodeResolveAmbiguities, withIntent(IntentUpdateForm, nil)); got != nodeExtractUpdates {
		t.Errorf("route from resolve = %q", got)
	}
	if got := route(nodeExtractUpdates, withIntent(IntentUpdateForm, nil)); got != nodeGenerateResponse {
		t.Errorf("route from extract = %q", got)
	}
	if got := route(nodeFieldInfo, withIntent(IntentFieldQuestion, nil)); got != nodeGenerateResponse {
		t.Errorf("route from field info = %q", got)
	}
	if got := route(nodeGenerateResponse, withIntent(IntentOther, nil)); got != nodeEnd {
		t.Errorf("route from generate = %q", got)
	}
}

func TestRun_FencedClassifierOutputAccepted(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		"```json\n{\"primaryIntent\":\"GREETING\",\"targetFields\":[],\"ambiguousFields\":[],\"values\":{},\"confidenceScore\":0.9,\"reasoning\":\"\"}\n```",
		`Hello! How can I help with your form today?`,
	}}

	reply := testPipeline(provider).Run(context.Background(), "hey", testForm(), "", "")

	if reply.Explanation != "Hello! How can I help with your form today?" {
		t.Errorf("explanation = %q", reply.Explanation)
	}
}
