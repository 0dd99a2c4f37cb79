package models

import "time"

type ChatSender string

const (
	SenderCustomer ChatSender = "customer"
	SenderAI       ChatSender = "ai"
	SenderSupport  ChatSender = "support"
)

type ChatMessage struct {
	ID         string     `json:"id"`
	Sender     ChatSender `json:"sender"`
	SenderName string     `json:"sender_name"`
	Message    string     `json:"message"`
	Timestamp  time.Time  `json:"timestamp"`
}

type ChatSession struct {
	ID               string        `json:"id"`
	CustomerID       string        `json:"customer_id"`
	CustomerName     string        `json:"customer_name"`
	CustomerEmail    string        `json:"customer_email"`
	Status           string        `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	RequestedHumanAt *time.Time    `json:"requested_human_at,omitempty"`
	SupportJoinedAt  *time.Time    `json:"support_joined_at,omitempty"`
	SupportStaffID   string        `json:"support_staff_id,omitempty"`
	SupportStaffName string        `json:"support_staff_name,omitempty"`
	Messages         []ChatMessage `json:"messages"`
}

func (s ChatSession) Clone() ChatSession {
	out := s
	out.Messages = append([]ChatMessage{}, s.Messages...)
	return out
}
