package memory

// Normalization is an ordered table of envelope shapes. Each shape pairs a
// predicate with an extractor; the first shape whose predicate matches is
// terminal. Adding support for a new payload shape means adding one row.

type shape struct {
	name    string
	match   func(m map[string]any) bool
	extract func(m map[string]any) Memory
}

var shapes = []shape{
	{
		// New nested shape: {company:{json:{company,contacts,facts}, phone_events:{json:[...]}}}
		name: "company.json",
		match: func(m map[string]any) bool {
			return childMap(childMap(m, "company"), "json") != nil
		},
		extract: func(m map[string]any) Memory {
			company := childMap(m, "company")
			js := childMap(company, "json")
			return Memory{
				Company:     toCompany(js["company"]),
				Contacts:    toContacts(js["contacts"]),
				Facts:       toFacts(js["facts"]),
				PhoneEvents: toPhoneEvents(childMap(company, "phone_events")["json"]),
			}
		},
	},
	{
		// Legacy flat shape: {company_json:{company,contacts}, facts:[...], phone_events:[...]}
		name: "company_json",
		match: func(m map[string]any) bool {
			return childMap(m, "company_json") != nil
		},
		extract: func(m map[string]any) Memory {
			cj := childMap(m, "company_json")
			return Memory{
				Company:     toCompany(cj["company"]),
				Contacts:    toContacts(cj["contacts"]),
				Facts:       toFacts(m["facts"]),
				PhoneEvents: toPhoneEvents(m["phone_events"]),
			}
		},
	},
	{
		// Bare company object without a .json child.
		name: "company",
		match: func(m map[string]any) bool {
			return childMap(m, "company") != nil
		},
		extract: func(m map[string]any) Memory {
			return Memory{
				Company:     toCompany(m["company"]),
				Contacts:    toContacts(m["contacts"]),
				Facts:       toFacts(m["facts"]),
				PhoneEvents: toPhoneEvents(m["phone_events"]),
			}
		},
	},
	{
		// Facts or phone events without any usable company record: synthesize
		// a minimal company carrying only an id.
		name: "facts-only",
		match: func(m map[string]any) bool {
			return m["facts"] != nil || m["phone_events"] != nil ||
				childMap(childMap(m, "company"), "phone_events") != nil
		},
		extract: func(m map[string]any) Memory {
			id := anyString(m["id"])
			if id == "" {
				id = anyString(m["company_id"])
			}
			if id == "" {
				id = "unknown"
			}
			events := toPhoneEvents(m["phone_events"])
			if len(events) == 0 {
				events = toPhoneEvents(childMap(childMap(m, "company"), "phone_events")["json"])
			}
			return Memory{
				Company:     Company{"id": id},
				Contacts:    []Contact{},
				Facts:       toFacts(m["facts"]),
				PhoneEvents: events,
			}
		},
	},
}

// Normalize reduces any of the recognized payload shapes to the canonical
// Memory. Malformed or empty input degrades to an empty-but-valid Memory;
// Normalize never fails.
func Normalize(raw any) Memory {
	m, ok := raw.(map[string]any)
	if !ok || m == nil {
		return empty()
	}

	// Unwrap API envelopes before shape matching.
	if inner := childMap(m, "data"); inner != nil {
		return Normalize(inner)
	}
	if inner := childMap(m, "memory"); inner != nil {
		return Normalize(inner)
	}

	for _, s := range shapes {
		if s.match(m) {
			return s.extract(m)
		}
	}
	return empty()
}

func empty() Memory {
	return Memory{
		Company:     Company{},
		Contacts:    []Contact{},
		Facts:       []Fact{},
		PhoneEvents: []PhoneEvent{},
	}
}

// childMap returns m[key] when it is itself an object, else nil. Nil-safe on m.
func childMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	child, _ := m[key].(map[string]any)
	return child
}

func anyString(v any) string {
	return Company{"v": v}.Str("v")
}

func toCompany(v any) Company {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return Company{}
	}
	return Company(m)
}

func toContacts(v any) []Contact {
	items, ok := v.([]any)
	if !ok {
		return []Contact{}
	}
	contacts := make([]Contact, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		c := Company(m)
		contacts = append(contacts, Contact{
			FirstName: c.Str("contact_first_name"),
			LastName:  c.Str("contact_last_name"),
			Phone:     c.Str("contact_primary_phone"),
			Email:     c.Str("contact_primary_email"),
		})
	}
	return contacts
}

func toFacts(v any) []Fact {
	items, ok := v.([]any)
	if !ok {
		return []Fact{}
	}
	facts := make([]Fact, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		c := Company(m)
		text := c.Str("fact")
		if text == "" {
			text = c.Str("content")
		}
		facts = append(facts, Fact{
			Name:           c.Str("name"),
			Text:           text,
			TargetNodeName: c.Str("target_node_name"),
			ValidAt:        c.Str("valid_at"),
			InvalidAt:      c.Str("invalid_at"),
			ExpiredAt:      c.Str("expired_at"),
		})
	}
	return facts
}

func toPhoneEvents(v any) []PhoneEvent {
	items, ok := v.([]any)
	if !ok {
		return []PhoneEvent{}
	}
	events := make([]PhoneEvent, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		c := Company(m)
		ev := PhoneEvent{
			Event:     c.Str("event"),
			Direction: c.Str("direction"),
			Content:   c.Str("content"),
			CreatedAt: c.Str("created_at"),
		}
		if meta := childMap(m, "metadata"); meta != nil {
			mc := Company(meta)
			ev.Transcript = mc.Str("call_transcript")
			ev.Summary = mc.Str("call_summary")
		}
		// Some payloads carry the transcript at the top level of the event.
		if ev.Transcript == "" {
			ev.Transcript = c.Str("call_transcript")
		}
		if ev.Transcript == "" {
			ev.Transcript = c.Str("transcript")
		}
		events = append(events, ev)
	}
	return events
}
