package agent

// node names the pipeline's states.
type node string

const (
	nodeClassifyIntent     node = "classify_intent"
	nodeResolveAmbiguities node = "resolve_ambiguities"
	nodeExtractUpdates     node = "extract_field_updates"
	nodeFieldInfo          node = "provide_field_information"
	nodeGenerateResponse   node = "generate_response"
	nodeError              node = "error"
	nodeEnd                node = "end"
)

// route is the pure transition function. It inspects only the state, never
// performs I/O, and no branch re-enters an earlier node.
func route(current node, s *State) node {
	switch current {
	case nodeClassifyIntent:
		if s.Intent == nil {
			return nodeError
		}
		switch s.Intent.PrimaryIntent {
		case IntentUpdateForm:
			if len(s.Intent.AmbiguousFields) > 0 {
				return nodeResolveAmbiguities
			}
			return nodeExtractUpdates
		case IntentFieldQuestion:
			return nodeFieldInfo
		default:
			return nodeGenerateResponse
		}
	case nodeResolveAmbiguities:
		return nodeExtractUpdates
	case nodeExtractUpdates, nodeFieldInfo:
		return nodeGenerateResponse
	case nodeGenerateResponse, nodeError:
		return nodeEnd
	default:
		return nodeError
	}
}
