package nlp

type Intent string

const (
	IntentGreeting      Intent = "greeting"
	IntentListSlots     Intent = "list_slots"
	IntentListServices  Intent = "list_services"
	IntentContactInfo   Intent = "contact_info"
	IntentBookSlot      Intent = "book_slot"
	IntentCancelBooking Intent = "cancel_booking"
	IntentListEvents    Intent = "list_events"
	IntentHelp          Intent = "help"
	IntentUnknown       Intent = "unknown"
)

func (i Intent) String() string {
	return string(i)
}

// Intents lists every recognised intent, unknown excluded, in tie-break order.
func Intents() []Intent {
	return []Intent{
		IntentGreeting,
		IntentHelp,
		IntentBookSlot,
		IntentCancelBooking,
		IntentListSlots,
		IntentListServices,
		IntentContactInfo,
		IntentListEvents,
	}
}

func ParseIntent(s string) Intent {
	for _, intent := range Intents() {
		if string(intent) == s {
			return intent
		}
	}
	return IntentUnknown
}

type IntentResult struct {
	Intent     Intent        `json:"intent"`
	Confidence float64       `json:"confidence"`
	Score      float64       `json:"score"`
	Forced     bool          `json:"forced,omitempty"`
	Matches    []MatchResult `json:"matches"`
}

type MatchResult struct {
	Intent  Intent  `json:"intent"`
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
	Type    string  `json:"type"`
}

const (
	MatchTypePhrase = "phrase"
	MatchTypeEntity = "entity"
)

type EntityKind string

const (
	EntitySlotID     EntityKind = "slot_id"
	EntityBookingID  EntityKind = "booking_id"
	EntityPhone      EntityKind = "phone"
	EntityPersonName EntityKind = "person_name"
	EntityDate       EntityKind = "date"
)

type Entity struct {
	Kind  EntityKind `json:"kind"`
	Value string     `json:"value"`
	Raw   string     `json:"raw"`
	Start int        `json:"start"`
	End   int        `json:"end"`
	Score float64    `json:"score"`
}

// InvalidEntity is a span that looked like an entity but failed its format rule.
type InvalidEntity struct {
	Kind   EntityKind `json:"kind"`
	Raw    string     `json:"raw"`
	Reason string     `json:"reason"`
}

type Entities struct {
	Items   []Entity        `json:"items"`
	Invalid []InvalidEntity `json:"invalid,omitempty"`
}

func (e Entities) First(kind EntityKind) (Entity, bool) {
	for _, item := range e.Items {
		if item.Kind == kind {
			return item, true
		}
	}
	return Entity{}, false
}

func (e Entities) All(kind EntityKind) []Entity {
	var out []Entity
	for _, item := range e.Items {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out
}

func (e Entities) Has(kind EntityKind) bool {
	_, ok := e.First(kind)
	return ok
}

func (e Entities) InvalidOf(kind EntityKind) (InvalidEntity, bool) {
	for _, item := range e.Invalid {
		if item.Kind == kind {
			return item, true
		}
	}
	return InvalidEntity{}, false
}

// Values flattens the first value of each entity kind.
func (e Entities) Values() map[string]string {
	out := make(map[string]string, len(e.Items))
	for _, item := range e.Items {
		if _, ok := out[string(item.Kind)]; !ok {
			out[string(item.Kind)] = item.Value
		}
	}
	return out
}

type Analysis struct {
	Raw        string   `json:"raw"`
	Normalized string   `json:"normalized"`
	Tokens     []string `json:"tokens"`
	IsQuestion bool     `json:"is_question"`
	Entities   Entities `json:"entities"`
}

type IProcessor interface {
	Analyze(text string) Analysis
	Classify(analysis Analysis) IntentResult
	Process(text string) (Analysis, IntentResult)
}
