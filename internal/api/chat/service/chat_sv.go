package chatService

import (
	"context"
	"strings"

	"jusbook/internal/api/chat"
	"jusbook/internal/entity"
	contextPkg "jusbook/pkg/context"
	"jusbook/pkg/nlp"

	"github.com/sirupsen/logrus"
)

// turn carries one message through the dialogue engine.
type turn struct {
	session  *entity.ConversationSession
	analysis nlp.Analysis
	result   nlp.IntentResult
	resp     *chat.ChatResponse
}

// ProcessMessage runs one conversational turn. Turns on the same session are
// serialised; the session is only written back when the turn succeeds.
func (s *chatService) ProcessMessage(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = s.utils.NewSessionID()
	}
	ctx = contextPkg.WithSessionID(ctx, sessionID)
	requestID := contextPkg.GetRequestID(ctx)

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to load conversation session")
		return nil, err
	}

	message := ""
	if req.Message != nil {
		message = *req.Message
	}
	analysis, result := s.processor.Process(message)

	t := &turn{
		session:  &session,
		analysis: analysis,
		result:   result,
		resp: &chat.ChatResponse{
			SessionID:  sessionID,
			Intent:     result.Intent.String(),
			Confidence: result.Confidence,
		},
	}

	previous := session.State()
	if session.Pending != nil {
		err = s.continueFlow(ctx, t)
	} else {
		err = s.dispatch(ctx, t)
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"intent":     t.resp.Intent,
			"error":      err.Error(),
		}).Error("Failed to process chat message")
		return nil, err
	}

	session.TurnCount++
	session.LastActiveAt = s.now()
	session.LastIntent = nlp.ParseIntent(t.resp.Intent)
	session.LastEntities = analysis.Entities.Values()

	t.resp.State = string(session.State())
	if session.Pending != nil {
		t.resp.PendingIntent = session.Pending.Intent.String()
		t.resp.MissingFields = append([]string(nil), session.Pending.Missing...)
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to save conversation session")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"session_id":  sessionID,
		"intent":      t.resp.Intent,
		"confidence":  result.Confidence,
		"from_state":  previous,
		"to_state":    t.resp.State,
		"error_code":  t.resp.ErrorCode,
		"turn_number": session.TurnCount,
	}).Info("Chat turn processed")

	return t.resp, nil
}

func (s *chatService) Classify(ctx context.Context, req chat.ClassifyRequest) (*chat.ClassifyResponse, error) {
	analysis, result := s.processor.Process(req.Message)

	entities := analysis.Entities.Items
	if entities == nil {
		entities = []nlp.Entity{}
	}
	matches := result.Matches
	if matches == nil {
		matches = []nlp.MatchResult{}
	}

	return &chat.ClassifyResponse{
		Normalized: analysis.Normalized,
		Intent:     result.Intent.String(),
		Confidence: result.Confidence,
		Forced:     result.Forced,
		IsQuestion: analysis.IsQuestion,
		Matches:    matches,
		Entities:   entities,
		Invalid:    analysis.Entities.Invalid,
	}, nil
}

func (s *chatService) GetSession(ctx context.Context, sessionID string) (*chat.SessionResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, chat.ErrEmptySessionID
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	resp := &chat.SessionResponse{
		SessionID:     session.Key,
		State:         string(session.State()),
		LastIntent:    session.LastIntent.String(),
		LastBookingID: session.LastBookingID,
		CustomerName:  session.LastCustomerName,
		TurnCount:     session.TurnCount,
		CreatedAt:     session.CreatedAt,
		LastActiveAt:  session.LastActiveAt,
	}
	if session.Pending != nil {
		resp.PendingIntent = session.Pending.Intent.String()
		resp.Collected = session.Pending.Collected
		resp.MissingFields = session.Pending.Missing
	}

	return resp, nil
}

func (s *chatService) ResetSession(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return chat.ErrEmptySessionID
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"session_id": sessionID,
	}).Info("Conversation session reset")

	return nil
}
