// Package agent implements the conversational form-edit pipeline: a fixed
// five-node state machine that classifies a user message against an insurance
// form, resolves ambiguous field references, extracts validated field updates,
// and produces a reply. Every node has a deterministic fallback so a run
// always ends with an explanation, never an error surfaced to the caller.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/harperhq/anvil/internal/acord"
	"github.com/harperhq/anvil/internal/llm"
)

const errorApology = "Sorry, I encountered an error processing your request. Please try again."

// Pipeline runs the form-edit state machine over an injected model provider.
type Pipeline struct {
	llm       llm.Provider
	logger    *slog.Logger
	threshold float64
	now       func() time.Time
}

// New builds a pipeline. ambiguityThreshold is the confidence a model-based
// section resolution must exceed to be accepted.
func New(provider llm.Provider, ambiguityThreshold float64, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		llm:       provider,
		logger:    logger,
		threshold: ambiguityThreshold,
		now:       time.Now,
	}
}

// Run processes one user message against the current form. It never returns
// an error: every failure path degrades to a valid Reply with a non-empty
// explanation and no form mutation.
func (p *Pipeline) Run(ctx context.Context, message string, form acord.InsuranceForm, companyID, conversationID string) Reply {
	state := &State{
		Message:        message,
		FormData:       form,
		CompanyID:      companyID,
		ConversationID: conversationID,
	}

	current := nodeClassifyIntent
	for current != nodeEnd {
		var err error
		switch current {
		case nodeClassifyIntent:
			err = p.classifyIntent(ctx, state)
		case nodeResolveAmbiguities:
			err = p.resolveAmbiguities(ctx, state)
		case nodeExtractUpdates:
			err = p.extractUpdates(ctx, state)
		case nodeFieldInfo:
			p.fieldInfo(state)
		case nodeGenerateResponse:
			p.generateResponse(ctx, state)
		case nodeError:
			state.Explanation = errorApology
			state.FieldUpdates = nil
		}
		if err != nil {
			p.logger.Error("pipeline node failed", "node", string(current), "error", err)
			current = nodeError
			continue
		}
		current = route(current, state)
	}

	if state.Explanation == "" {
		state.Explanation = "I processed your request."
	}
	updates := state.FieldUpdates
	if updates == nil {
		updates = map[string]any{}
	}
	return Reply{
		Updates:        updates,
		Explanation:    state.Explanation,
		CurrentSection: state.CurrentSection,
	}
}

// classifyIntent asks the model for the message's primary intent. A failed
// call or unparseable answer degrades to OTHER at confidence 0.5; the error
// return is reserved for request construction failures.
func (p *Pipeline) classifyIntent(ctx context.Context, s *State) error {
	formJSON, err := json.MarshalIndent(s.FormData, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal form data: %w", err)
	}

	prompt := fmt.Sprintf(classifyUserPrompt, formJSON, s.Message)
	raw, err := p.llm.Complete(ctx, classifySystemPrompt, []llm.Message{{Role: "user", Content: prompt}}, 1024)

	var intent Intent
	if err == nil {
		err = json.Unmarshal([]byte(llm.StripFences(raw)), &intent)
	}
	if err != nil {
		p.logger.Warn("intent classification failed, falling back to OTHER", "error", err)
		s.Intent = &Intent{
			PrimaryIntent:   IntentOther,
			TargetFields:    []string{},
			AmbiguousFields: []string{},
			Values:          map[string]any{},
			ConfidenceScore: 0.5,
			Reasoning:       "Failed to classify intent due to an error",
		}
		return nil
	}

	s.Intent = &intent
	s.FocusedFields = intent.TargetFields
	if len(intent.TargetFields) > 0 {
		if meta, ok := fieldMetadata[intent.TargetFields[0]]; ok {
			s.CurrentSection = meta.Section
		}
	}
	return nil
}

type sectionResolution struct {
	ResolvedSection string  `json:"resolvedSection"`
	Confidence      float64 `json:"confidence"`
	Reasoning       string  `json:"reasoning"`
}

// resolveAmbiguities settles which section the first ambiguous field refers
// to. A field owned by at most one section is trivially resolved without a
// model call; otherwise the model's pick is accepted only above the
// confidence threshold.
func (p *Pipeline) resolveAmbiguities(ctx context.Context, s *State) error {
	field := s.Intent.AmbiguousFields[0]
	possible := sectionsForField(field)

	if len(possible) <= 1 {
		amb := &Ambiguity{Field: field, PossibleSections: possible, Resolved: true}
		if len(possible) == 1 {
			amb.ResolvedSection = possible[0]
		}
		s.Ambiguity = amb
		return nil
	}

	formJSON, err := json.MarshalIndent(s.FormData, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal form data: %w", err)
	}

	var lines []string
	for _, section := range possible {
		lines = append(lines, section+": "+strings.Join(fieldsBySection[section], ", "))
	}
	prompt := fmt.Sprintf(resolveUserPrompt, formJSON, s.Message, field,
		strings.Join(lines, "\n"), fallbackSection(s.CurrentSection))

	raw, err := p.llm.Complete(ctx, resolveSystemPrompt, []llm.Message{{Role: "user", Content: prompt}}, 512)

	var res sectionResolution
	if err == nil {
		err = json.Unmarshal([]byte(llm.StripFences(raw)), &res)
	}
	if err != nil {
		p.logger.Warn("ambiguity resolution failed, leaving unresolved", "field", field, "error", err)
		s.Ambiguity = &Ambiguity{Field: field, PossibleSections: possible}
		return nil
	}

	resolved := res.Confidence > p.threshold
	s.Ambiguity = &Ambiguity{
		Field:            field,
		PossibleSections: possible,
		Resolved:         resolved,
		ResolvedSection:  res.ResolvedSection,
	}
	if resolved {
		s.CurrentSection = res.ResolvedSection
	}
	return nil
}

type extractionResult struct {
	Updates   map[string]any `json:"updates"`
	Reasoning string         `json:"reasoning"`
}

// extractUpdates pulls a field patch out of an UPDATE_FORM message. An
// unresolved ambiguity short-circuits to a clarification question instead of
// guessing; extracted keys are restricted to the known field catalogue.
func (p *Pipeline) extractUpdates(ctx context.Context, s *State) error {
	if s.Intent.PrimaryIntent != IntentUpdateForm {
		s.FieldUpdates = map[string]any{}
		return nil
	}

	if s.Ambiguity != nil && !s.Ambiguity.Resolved {
		s.FieldUpdates = map[string]any{}
		s.Explanation = fmt.Sprintf(
			"I noticed you're updating a field, but I'm not sure if you're referring to the %s section. Could you please clarify?",
			strings.Join(s.Ambiguity.PossibleSections, " or "))
		return nil
	}

	formJSON, err := json.MarshalIndent(s.FormData, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal form data: %w", err)
	}
	intentJSON, err := json.MarshalIndent(s.Intent, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal intent: %w", err)
	}

	ambiguityInfo := ""
	if s.Ambiguity != nil && s.Ambiguity.Resolved {
		ambiguityInfo = fmt.Sprintf(
			`The user referred to an ambiguous field "%s" which has been resolved to the "%s" section.`,
			s.Ambiguity.Field, s.Ambiguity.ResolvedSection)
	}

	prompt := fmt.Sprintf(extractUserPrompt, formJSON, s.Message, intentJSON,
		fallbackSection(s.CurrentSection), ambiguityInfo)

	raw, err := p.llm.Complete(ctx, extractSystemPrompt, []llm.Message{{Role: "user", Content: prompt}}, 1024)

	var result extractionResult
	if err == nil {
		err = json.Unmarshal([]byte(llm.StripFences(raw)), &result)
	}
	if err != nil {
		p.logger.Warn("field extraction failed, returning no updates", "error", err)
		s.FieldUpdates = map[string]any{}
		s.ExtractionReasoning = "Failed to extract updates due to an error"
		return nil
	}

	s.FieldUpdates = normalizeUpdates(result.Updates)
	s.ExtractionReasoning = result.Reasoning
	return nil
}

// normalizeUpdates drops unknown fields, coerces numeric-looking strings for
// numeric fields, and reparses date values to YYYY-MM-DD.
func normalizeUpdates(raw map[string]any) map[string]any {
	updates := make(map[string]any, len(raw))
	for field, value := range raw {
		if _, known := fieldMetadata[field]; !known {
			continue
		}
		if numericFields[field] {
			if str, ok := value.(string); ok {
				cleaned := strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(str), "$"), ",", "")
				if n, err := strconv.ParseFloat(cleaned, 64); err == nil {
					value = n
				}
			}
		}
		if dateFields[field] {
			if str, ok := value.(string); ok {
				value = normalizeDate(str)
			}
		}
		updates[field] = value
	}
	return updates
}

// fieldInfo answers a FIELD_QUESTION from the static metadata catalogue.
// Unknown fields get a clarifying question rather than an invented answer.
func (p *Pipeline) fieldInfo(s *State) {
	if len(s.Intent.TargetFields) == 0 {
		s.Explanation = "I'd be happy to provide information about any field in the form. Which specific field would you like to know more about?"
		return
	}

	field := s.Intent.TargetFields[0]
	meta, ok := fieldMetadata[field]
	if !ok {
		s.Explanation = fmt.Sprintf(
			`I don't have information about a field called "%s". Could you please specify which field you're asking about?`, field)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The %q field %s.\n", formatFieldName(field), meta.Description)
	if meta.ValidationRules != "" {
		fmt.Fprintf(&b, "\nThis field should be in the format: %s.\n", meta.ValidationRules)
	}
	fmt.Fprintf(&b, "\nExamples: %s\n", strings.Join(meta.Examples, ", "))
	if len(meta.RelatedFields) > 0 {
		related := make([]string, len(meta.RelatedFields))
		for i, f := range meta.RelatedFields {
			related[i] = formatFieldName(f)
		}
		fmt.Fprintf(&b, "\nThis field is related to: %s.\n", strings.Join(related, ", "))
	}
	if tip := fieldTips[field]; tip != "" {
		fmt.Fprintf(&b, "\n%s\n", tip)
	}

	s.Explanation = strings.TrimSpace(b.String())
	s.CurrentSection = meta.Section
}

var fieldTips = map[string]string{
	"zipCode":       "The ZIP code helps determine insurance rates based on location risk factors.",
	"industry":      "Your industry classification affects the risk assessment and premium calculation.",
	"employeeCount": "The number of employees impacts liability coverage requirements.",
}

// generateResponse is the terminal node. Upstream explanations pass through
// unchanged; confirmed updates get a formatted confirmation; everything else
// gets a short conversational reply with a fixed fallback.
func (p *Pipeline) generateResponse(ctx context.Context, s *State) {
	if s.Explanation != "" {
		return
	}

	if s.Intent.PrimaryIntent == IntentUpdateForm && len(s.FieldUpdates) > 0 {
		s.Explanation = updateExplanation(s.FieldUpdates)
		return
	}

	formJSON, err := json.MarshalIndent(s.FormData, "", "  ")
	if err != nil {
		s.Explanation = "I'd be happy to help with your insurance form. What would you like to know or update?"
		return
	}
	intentJSON, _ := json.MarshalIndent(s.Intent, "", "  ")

	prompt := fmt.Sprintf(converseUserPrompt, formJSON, s.Message, intentJSON, fallbackSection(s.CurrentSection))
	raw, err := p.llm.Complete(ctx, converseSystemPrompt, []llm.Message{{Role: "user", Content: prompt}}, 512)
	if err != nil || strings.TrimSpace(raw) == "" {
		p.logger.Warn("conversational response failed, using fallback", "error", err)
		s.Explanation = "I'd be happy to help with your insurance form. What would you like to know or update?"
		return
	}
	s.Explanation = strings.TrimSpace(raw)
}

// updateExplanation confirms the applied patch, naming each field with its
// display-formatted value.
func updateExplanation(updates map[string]any) string {
	fields := make([]string, 0, len(updates))
	for field := range updates {
		fields = append(fields, field)
	}
	sortFields(fields)

	if len(fields) == 1 {
		field := fields[0]
		return fmt.Sprintf("Perfect! I've updated the %s to %s. Is there anything else you'd like to change?",
			formatFieldName(field), formatValue(field, updates[field]))
	}

	lines := make([]string, len(fields))
	for i, field := range fields {
		lines[i] = fmt.Sprintf("%s: %s", formatFieldName(field), formatValue(field, updates[field]))
	}
	return fmt.Sprintf("Great! I've updated the following information:\n- %s\n\nIs there anything else you'd like to update?",
		strings.Join(lines, "\n- "))
}

// sortFields orders field names by their catalogue section, then name, so
// confirmations are deterministic.
func sortFields(fields []string) {
	order := make(map[string]int, len(fieldMetadata))
	i := 0
	for _, section := range sectionOrder {
		for _, f := range fieldsBySection[section] {
			order[f] = i
			i++
		}
	}
	for a := 1; a < len(fields); a++ {
		for b := a; b > 0 && order[fields[b]] < order[fields[b-1]]; b-- {
			fields[b], fields[b-1] = fields[b-1], fields[b]
		}
	}
}

func fallbackSection(section string) string {
	if section == "" {
		return "unknown"
	}
	return section
}
