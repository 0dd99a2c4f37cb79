package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/plant-decor/internal/models"
)

const (
	AIName     = "AI Assistant"
	SystemName = "System"

	WelcomeMessage   = "Hello! 🌱 I'm your Plant Care AI Assistant. How can I help you today?"
	HandoffMessage   = "I've notified our support team. A staff member will join this conversation shortly. Please wait... 🔔"
	ClosingMessage   = "✅ This chat session has been closed. Thank you for contacting Plant Decor Support!"
	greetingTemplate = "👋 Hi! I'm %s from Support Team. I've reviewed your conversation. How can I help you today?"
)

// AutoReplies are the canned assistant answers used until staff joins.
var AutoReplies = []string{
	"I'd be happy to help you with that! For plant care, make sure to check the watering schedule and light requirements specific to your plant type.",
	"Great question! Our care packages include regular watering, pruning, pest control, and health monitoring. Would you like more details?",
	"Based on your plant's symptoms, it might need more indirect sunlight. Try moving it near a window with filtered light.",
	"I recommend our Premium Care Package for multiple plants. It includes weekly visits and comprehensive care.",
	"For new plant parents, I suggest starting with hardy plants like Snake Plant or Pothos. They're very forgiving!",
	"Our delivery typically takes 2-3 business days. You can track your order in the 'My Orders' section.",
	"Yes, we offer plant replacement if your plant arrives damaged. Please contact support within 48 hours with photos.",
}

func Greeting(staffName string) string {
	return fmt.Sprintf(greetingTemplate, staffName)
}

func Post(s *models.ChatSession, msg models.ChatMessage) error {
	if err := CanPost(Status(s.Status)); err != nil {
		return err
	}
	if strings.TrimSpace(msg.Message) == "" {
		return ErrEmptyMessage
	}

	s.Messages = append(s.Messages, msg)
	return nil
}

// AutoReply appends an assistant answer while no staff member has joined.
// Replies rotate with the number of customer messages.
func AutoReply(s *models.ChatSession, replyID string, now time.Time) bool {
	if !Status(s.Status).AwaitingStaff() {
		return false
	}

	asked := 0
	for _, m := range s.Messages {
		if m.Sender == models.SenderCustomer {
			asked++
		}
	}
	s.Messages = append(s.Messages, models.ChatMessage{
		ID:         replyID,
		Sender:     models.SenderAI,
		SenderName: AIName,
		Message:    AutoReplies[(asked+len(AutoReplies)-1)%len(AutoReplies)],
		Timestamp:  now,
	})
	return true
}

func RequestHuman(s *models.ChatSession, noticeID string, now time.Time) error {
	if err := CanRequestHuman(Status(s.Status)); err != nil {
		return err
	}

	s.Status = string(StatusWaiting)
	s.RequestedHumanAt = &now
	s.Messages = append(s.Messages, models.ChatMessage{
		ID:         noticeID,
		Sender:     models.SenderAI,
		SenderName: AIName,
		Message:    HandoffMessage,
		Timestamp:  now,
	})
	return nil
}

func Join(s *models.ChatSession, staffID, staffName, greetingID string, now time.Time) error {
	if err := CanJoin(Status(s.Status)); err != nil {
		return err
	}

	s.Status = string(StatusActive)
	s.SupportJoinedAt = &now
	s.SupportStaffID = staffID
	s.SupportStaffName = staffName
	s.Messages = append(s.Messages, models.ChatMessage{
		ID:         greetingID,
		Sender:     models.SenderSupport,
		SenderName: staffName,
		Message:    Greeting(staffName),
		Timestamp:  now,
	})
	return nil
}

// Close appends the closing notice first, then flips the session to closed.
func Close(s *models.ChatSession, noticeID string, now time.Time) error {
	if err := CanClose(Status(s.Status)); err != nil {
		return err
	}

	s.Messages = append(s.Messages, models.ChatMessage{
		ID:         noticeID,
		Sender:     models.SenderSupport,
		SenderName: SystemName,
		Message:    ClosingMessage,
		Timestamp:  now,
	})
	s.Status = string(StatusClosed)
	return nil
}
