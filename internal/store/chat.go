package store

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/plant-decor/internal/domain/chat"
	"github.com/BruksfildServices01/plant-decor/internal/domain/state"
	"github.com/BruksfildServices01/plant-decor/internal/events"
	"github.com/BruksfildServices01/plant-decor/internal/models"
)

type NewChatMessage struct {
	Sender     models.ChatSender
	SenderName string
	Message    string
}

// ChatStore owns support chat sessions. A customer has at most one open session.
type ChatStore struct {
	mu       sync.Mutex
	sessions []models.ChatSession
	opts     Options
	snap     snapshot
}

func NewChatStore(ctx context.Context, opts Options) (*ChatStore, error) {
	opts = opts.withDefaults()
	s := &ChatStore{
		opts: opts,
		snap: snapshot{repo: opts.Repo, key: state.KeyChat, log: opts.Log},
	}
	if _, err := s.snap.restore(ctx, &s.sessions); err != nil {
		return nil, err
	}
	return s, nil
}

// GetOrCreateSession returns the customer's open session, or starts an
// ai-only one greeted by the assistant.
func (s *ChatStore) GetOrCreateSession(
	ctx context.Context,
	customerID string,
	customerName string,
	customerEmail string,
) (models.ChatSession, error) {

	s.mu.Lock()
	if cur := s.openFor(customerID); cur != nil {
		out := cur.Clone()
		s.mu.Unlock()
		return out, nil
	}

	now := s.opts.Clock.Now()
	sess := models.ChatSession{
		ID:            newID("chat"),
		CustomerID:    customerID,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		Status:        string(domain.InitialStatus()),
		CreatedAt:     now,
		Messages: []models.ChatMessage{{
			ID:         newID("msg"),
			Sender:     models.SenderAI,
			SenderName: domain.AIName,
			Message:    domain.WelcomeMessage,
			Timestamp:  now,
		}},
	}
	s.sessions = append(s.sessions, sess)
	s.snap.persist(ctx, s.sessions)
	s.mu.Unlock()

	s.publish(ctx, "session_created", sess.ID, now, nil)
	return sess.Clone(), nil
}

func (s *ChatStore) AddMessage(
	ctx context.Context,
	sessionID string,
	in NewChatMessage,
) (models.ChatSession, error) {

	meta := map[string]any{"sender": string(in.Sender)}
	return s.update(ctx, sessionID, func(sess *models.ChatSession, now time.Time) ([]string, error) {
		err := domain.Post(sess, models.ChatMessage{
			ID:         newID("msg"),
			Sender:     in.Sender,
			SenderName: in.SenderName,
			Message:    in.Message,
			Timestamp:  now,
		})
		return []string{"message_added"}, err
	}, meta)
}

// AddCustomerMessage posts a customer message. Until staff joins, the
// assistant answers in the same update.
func (s *ChatStore) AddCustomerMessage(
	ctx context.Context,
	sessionID string,
	customerName string,
	message string,
) (models.ChatSession, error) {

	meta := map[string]any{"sender": string(models.SenderCustomer)}
	return s.update(ctx, sessionID, func(sess *models.ChatSession, now time.Time) ([]string, error) {
		err := domain.Post(sess, models.ChatMessage{
			ID:         newID("msg"),
			Sender:     models.SenderCustomer,
			SenderName: customerName,
			Message:    message,
			Timestamp:  now,
		})
		if err != nil {
			return nil, err
		}
		if domain.AutoReply(sess, newID("msg"), now) {
			meta["auto_reply"] = true
			return []string{"message_added", "message_added"}, nil
		}
		return []string{"message_added"}, nil
	}, meta)
}

func (s *ChatStore) RequestHumanSupport(ctx context.Context, sessionID string) (models.ChatSession, error) {
	return s.update(ctx, sessionID, func(sess *models.ChatSession, now time.Time) ([]string, error) {
		return []string{"human_requested"}, domain.RequestHuman(sess, newID("msg"), now)
	}, nil)
}

func (s *ChatStore) JoinSession(
	ctx context.Context,
	sessionID string,
	staffID string,
	staffName string,
) (models.ChatSession, error) {

	meta := map[string]any{"staff_id": staffID}
	return s.update(ctx, sessionID, func(sess *models.ChatSession, now time.Time) ([]string, error) {
		return []string{"support_joined"}, domain.Join(sess, staffID, staffName, newID("msg"), now)
	}, meta)
}

// CloseSession appends the closing notice, then closes. Observers see the
// message event before the close event.
func (s *ChatStore) CloseSession(ctx context.Context, sessionID string) (models.ChatSession, error) {
	return s.update(ctx, sessionID, func(sess *models.ChatSession, now time.Time) ([]string, error) {
		return []string{"message_added", "session_closed"}, domain.Close(sess, newID("msg"), now)
	}, nil)
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (s *ChatStore) GetSession(id string) (models.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.ChatSession{}, domain.ErrSessionNotFound
	}
	return s.sessions[i].Clone(), nil
}

func (s *ChatStore) GetOpenSession(customerID string) (models.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.openFor(customerID)
	if cur == nil {
		return models.ChatSession{}, domain.ErrSessionNotFound
	}
	return cur.Clone(), nil
}

func (s *ChatStore) GetWaitingSessions() []models.ChatSession {
	return s.byStatus(domain.StatusWaiting)
}

func (s *ChatStore) GetActiveSessions() []models.ChatSession {
	return s.byStatus(domain.StatusActive)
}

func (s *ChatStore) GetClosedSessions() []models.ChatSession {
	return s.byStatus(domain.StatusClosed)
}

func (s *ChatStore) byStatus(status domain.Status) []models.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.ChatSession{}
	for _, sess := range s.sessions {
		if domain.Status(sess.Status) == status {
			out = append(out, sess.Clone())
		}
	}
	return out
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (s *ChatStore) update(
	ctx context.Context,
	id string,
	fn func(sess *models.ChatSession, now time.Time) ([]string, error),
	meta map[string]any,
) (models.ChatSession, error) {

	now := s.opts.Clock.Now()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return models.ChatSession{}, domain.ErrSessionNotFound
	}
	sess := s.sessions[i].Clone()
	actions, err := fn(&sess, now)
	if err != nil {
		s.mu.Unlock()
		return models.ChatSession{}, err
	}
	s.sessions[i] = sess
	s.snap.persist(ctx, s.sessions)
	s.mu.Unlock()

	for _, action := range actions {
		s.publish(ctx, action, id, now, meta)
	}
	return sess.Clone(), nil
}

func (s *ChatStore) publish(ctx context.Context, action, sessionID string, at time.Time, meta map[string]any) {
	s.opts.Bus.Publish(events.Event{
		Store:    events.StoreChat,
		Action:   action,
		EntityID: sessionID,
		ActorID:  events.ActorFrom(ctx),
		Metadata: meta,
		At:       at,
	})
}

func (s *ChatStore) indexOf(id string) int {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *ChatStore) openFor(customerID string) *models.ChatSession {
	for i := range s.sessions {
		if s.sessions[i].CustomerID == customerID && domain.Status(s.sessions[i].Status).Open() {
			return &s.sessions[i]
		}
	}
	return nil
}
