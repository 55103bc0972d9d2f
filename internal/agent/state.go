package agent

import "github.com/harperhq/anvil/internal/acord"

// Intent is the classifier's view of one user message.
type Intent struct {
	PrimaryIntent   string         `json:"primaryIntent"`
	TargetFields    []string       `json:"targetFields"`
	AmbiguousFields []string       `json:"ambiguousFields"`
	Values          map[string]any `json:"values"`
	ConfidenceScore float64        `json:"confidenceScore"`
	Reasoning       string         `json:"reasoning"`
}

// The closed intent set. The classifier prompt enumerates exactly these.
const (
	IntentUpdateForm      = "UPDATE_FORM"
	IntentFieldQuestion   = "FIELD_QUESTION"
	IntentGeneralQuestion = "GENERAL_QUESTION"
	IntentFormNavigation  = "FORM_NAVIGATION"
	IntentGuidance        = "GUIDANCE"
	IntentConfirmation    = "CONFIRMATION"
	IntentGreeting        = "GREETING"
	IntentOther           = "OTHER"
)

// Ambiguity records the resolution attempt for one ambiguous field reference.
type Ambiguity struct {
	Field            string
	PossibleSections []string
	Resolved         bool
	ResolvedSection  string
}

// State is threaded through the pipeline nodes. It is constructed fresh per
// message and discarded when the run completes.
type State struct {
	Message  string
	FormData acord.InsuranceForm

	Intent              *Intent
	FieldUpdates        map[string]any
	ExtractionReasoning string
	Ambiguity           *Ambiguity

	CurrentSection string
	FocusedFields  []string
	Explanation    string

	CompanyID      string
	ConversationID string
}

// Reply is the pipeline's output contract: updates may be empty but the
// explanation never is.
type Reply struct {
	Updates        map[string]any `json:"updates"`
	Explanation    string         `json:"explanation"`
	CurrentSection string         `json:"currentSection,omitempty"`
}
