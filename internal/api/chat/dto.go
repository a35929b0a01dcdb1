package chat

import (
	"time"

	"jusbook/internal/entity"
	"jusbook/pkg/nlp"
)

// ChatRequest.Message must be present but may be empty; presence is checked by
// the transport since "required" would also reject "".
type ChatRequest struct {
	Message   *string `json:"message" validate:"omitempty,max=1000"`
	SessionID string  `json:"session_id" validate:"omitempty,max=128"`
}

type ChatResponse struct {
	Reply         string          `json:"reply"`
	SessionID     string          `json:"session_id"`
	Intent        string          `json:"intent"`
	Confidence    float64         `json:"confidence"`
	State         string          `json:"state"`
	PendingIntent string          `json:"pending_intent,omitempty"`
	MissingFields []string        `json:"missing_fields,omitempty"`
	ErrorCode     string          `json:"error_code,omitempty"`
	Booking       *entity.Booking `json:"booking,omitempty"`
	Slots         []entity.Slot   `json:"slots,omitempty"`
}

type ClassifyRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

type ClassifyResponse struct {
	Normalized string              `json:"normalized"`
	Intent     string              `json:"intent"`
	Confidence float64             `json:"confidence"`
	Forced     bool                `json:"forced,omitempty"`
	IsQuestion bool                `json:"is_question"`
	Matches    []nlp.MatchResult   `json:"matches"`
	Entities   []nlp.Entity        `json:"entities"`
	Invalid    []nlp.InvalidEntity `json:"invalid_entities,omitempty"`
}

type SessionResponse struct {
	SessionID     string            `json:"session_id"`
	State         string            `json:"state"`
	PendingIntent string            `json:"pending_intent,omitempty"`
	Collected     map[string]string `json:"collected,omitempty"`
	MissingFields []string          `json:"missing_fields,omitempty"`
	LastIntent    string            `json:"last_intent,omitempty"`
	LastBookingID string            `json:"last_booking_id,omitempty"`
	CustomerName  string            `json:"customer_name,omitempty"`
	TurnCount     int               `json:"turn_count"`
	CreatedAt     time.Time         `json:"created_at"`
	LastActiveAt  time.Time         `json:"last_active_at"`
}
