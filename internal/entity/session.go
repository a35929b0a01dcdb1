package entity

import (
	"time"

	"jusbook/pkg/nlp"
)

type DialogueState string

const (
	DialogueStateIdle           DialogueState = "idle"
	DialogueStateAwaitingFields DialogueState = "awaiting_fields"
)

// Slot-filling field names shared by the dialogue engine and its replies.
const (
	FieldSlotID       = "slot_id"
	FieldCustomerName = "customer_name"
	FieldContact      = "contact"
	FieldBookingID    = "booking_id"
	FieldService      = "service"
)

type PendingFlow struct {
	Intent    nlp.Intent        `json:"intent"`
	Collected map[string]string `json:"collected"`
	Missing   []string          `json:"missing"`
	Prompts   int               `json:"prompts"`
	StartedAt time.Time         `json:"started_at"`
}

type ConversationSession struct {
	Key              string            `json:"key"`
	Pending          *PendingFlow      `json:"pending,omitempty"`
	LastIntent       nlp.Intent        `json:"last_intent,omitempty"`
	LastBookingID    string            `json:"last_booking_id,omitempty"`
	LastContact      string            `json:"last_contact,omitempty"`
	LastCustomerName string            `json:"last_customer_name,omitempty"`
	LastEntities     map[string]string `json:"last_entities,omitempty"`
	TurnCount        int               `json:"turn_count"`
	CreatedAt        time.Time         `json:"created_at"`
	LastActiveAt     time.Time         `json:"last_active_at"`
}

func NewConversationSession(key string, now time.Time) ConversationSession {
	return ConversationSession{
		Key:          key,
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

func (s ConversationSession) State() DialogueState {
	if s.Pending == nil {
		return DialogueStateIdle
	}
	return DialogueStateAwaitingFields
}

func (s *ConversationSession) ClearPending() {
	s.Pending = nil
}

// Clone deep-copies the session so stored values never alias caller state.
func (s ConversationSession) Clone() ConversationSession {
	out := s
	if s.Pending != nil {
		pending := *s.Pending
		pending.Collected = make(map[string]string, len(s.Pending.Collected))
		for k, v := range s.Pending.Collected {
			pending.Collected[k] = v
		}
		pending.Missing = append([]string(nil), s.Pending.Missing...)
		out.Pending = &pending
	}
	if s.LastEntities != nil {
		out.LastEntities = make(map[string]string, len(s.LastEntities))
		for k, v := range s.LastEntities {
			out.LastEntities[k] = v
		}
	}
	return out
}
