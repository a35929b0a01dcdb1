package nlp

import (
	"regexp"
	"sort"
	"strings"
)

const (
	slotIDBonus    = 1.0
	bookingIDBonus = 1.0
)

var (
	bareSlotIDPattern        = regexp.MustCompile(`^sl\d{2,}$`)
	normalizedSlotPattern    = regexp.MustCompile(`\bsl\d{2,}\b`)
	normalizedBookingPattern = regexp.MustCompile(`\bbk[0-9a-z]*\d[0-9a-z]*\b`)
)

// defaultTriggers maps each intent to the phrases that vote for it. A phrase
// scores its word count once per message, so longer phrases are more specific.
var defaultTriggers = map[Intent][]string{
	IntentGreeting: {
		"hello", "hi", "hey", "hiya", "howdy", "greetings", "namaste", "welcome",
		"good morning", "good afternoon", "good evening", "what's up",
		"start", "begin", "start over", "restart", "reset",
	},
	IntentHelp: {
		"help", "assistance", "support", "guide", "guide me", "instructions",
		"how to use", "what can you do", "what can you help", "capabilities",
		"features", "how does this work", "guidance", "menu", "commands",
	},
	IntentBookSlot: {
		"book", "booking", "appointment", "reserve", "reservation",
		"book slot", "book a slot", "book appointment", "book an appointment",
		"make booking", "make a booking", "make reservation", "reserve slot",
		"i want to book", "book me", "reserve time", "schedule appointment",
	},
	IntentCancelBooking: {
		"cancel", "cancellation", "cancel booking", "cancel my booking",
		"cancel appointment", "cancel my appointment", "cancel reservation",
		"cancel slot", "cancel my slot", "remove booking", "delete booking",
		"i need to cancel", "can't make it", "call off", "reschedule",
	},
	IntentListSlots: {
		"slot", "slots", "available", "availability", "available slots", "free slots",
		"open slots", "available times", "slot availability", "show slots",
		"what slots", "available appointments", "free times", "open times",
		"when available", "when can i book", "timings",
	},
	IntentListServices: {
		"service", "services", "what services", "available services",
		"what do you offer", "offer", "offerings", "service list", "service menu",
		"treatments", "procedures", "types of service", "price list", "prices",
		"pricing", "what can i book",
	},
	IntentContactInfo: {
		"contact", "phone", "phone number", "email", "address", "location",
		"reach you", "contact information", "contact details", "how to contact",
		"office address", "business hours", "opening hours", "hours",
		"where are you located", "how to reach", "call you", "website",
		"instagram", "facebook",
	},
	IntentListEvents: {
		"event", "events", "upcoming", "upcoming events", "what's happening",
		"special events", "workshop", "workshops", "events calendar",
		"scheduled events", "what events", "event schedule", "activities",
		"calendar", "my bookings", "my appointments", "upcoming bookings",
		"show my bookings", "future appointments", "my schedule",
	},
}

type trigger struct {
	phrase string
	weight float64
}

type Classifier struct {
	normalizer *Normalizer
	triggers   map[Intent][]trigger
	order      []Intent
}

func NewClassifier(normalizer *Normalizer) *Classifier {
	c := &Classifier{
		normalizer: normalizer,
		triggers:   make(map[Intent][]trigger, len(defaultTriggers)),
		order:      Intents(),
	}

	for intent, phrases := range defaultTriggers {
		seen := make(map[string]bool, len(phrases))
		for _, phrase := range phrases {
			normalized := normalizer.Normalize(phrase)
			if normalized == "" || seen[normalized] {
				continue
			}
			seen[normalized] = true
			c.triggers[intent] = append(c.triggers[intent], trigger{
				phrase: normalized,
				weight: float64(len(strings.Fields(normalized))),
			})
		}
	}

	return c
}

// Vocabulary returns every word used by any trigger phrase.
func (c *Classifier) Vocabulary() []string {
	seen := make(map[string]bool)
	var words []string
	for _, intent := range c.order {
		for _, t := range c.triggers[intent] {
			for _, word := range strings.Fields(t.phrase) {
				if !seen[word] {
					seen[word] = true
					words = append(words, word)
				}
			}
		}
	}
	return words
}

// Classify scores normalized text against every intent. Ties at the top are
// broken by the fixed intent order; confidence is the winner's share of the
// top two scores.
func (c *Classifier) Classify(normalized string) IntentResult {
	if normalized == "" {
		return IntentResult{Intent: IntentUnknown}
	}

	padded := " " + normalized + " "
	scores := make(map[Intent]float64, len(c.order))
	var matches []MatchResult

	for _, intent := range c.order {
		for _, t := range c.triggers[intent] {
			if strings.Contains(padded, " "+t.phrase+" ") {
				scores[intent] += t.weight
				matches = append(matches, MatchResult{
					Intent:  intent,
					Keyword: t.phrase,
					Score:   t.weight,
					Type:    MatchTypePhrase,
				})
			}
		}
	}

	if id := normalizedSlotPattern.FindString(normalized); id != "" {
		scores[IntentBookSlot] += slotIDBonus
		matches = append(matches, MatchResult{Intent: IntentBookSlot, Keyword: id, Score: slotIDBonus, Type: MatchTypeEntity})
	}
	if id := normalizedBookingPattern.FindString(normalized); id != "" {
		scores[IntentCancelBooking] += bookingIDBonus
		matches = append(matches, MatchResult{Intent: IntentCancelBooking, Keyword: id, Score: bookingIDBonus, Type: MatchTypeEntity})
	}

	if bareSlotIDPattern.MatchString(normalized) {
		return IntentResult{
			Intent:     IntentBookSlot,
			Confidence: 1.0,
			Score:      scores[IntentBookSlot],
			Forced:     true,
			Matches:    matches,
		}
	}

	ranked := make([]Intent, 0, len(scores))
	for _, intent := range c.order {
		if scores[intent] > 0 {
			ranked = append(ranked, intent)
		}
	}
	if len(ranked) == 0 {
		return IntentResult{Intent: IntentUnknown}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	best := scores[ranked[0]]
	runnerUp := 0.0
	if len(ranked) > 1 {
		runnerUp = scores[ranked[1]]
	}

	return IntentResult{
		Intent:     ranked[0],
		Confidence: best / (best + runnerUp),
		Score:      best,
		Matches:    matches,
	}
}
