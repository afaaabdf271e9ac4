package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinicare-portal/internal/adapters/persistence/models"
	"clinicare-portal/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Chat errors
var (
	ErrEmptyMessage = errors.New("message body is empty")
)

// ChatService handles the patient support conversation log
type ChatService struct {
	chatRepo    repositories.ChatRepository
	patientRepo repositories.PatientRepository
}

// NewChatService creates a new chat service
func NewChatService(chatRepo repositories.ChatRepository, patientRepo repositories.PatientRepository) *ChatService {
	return &ChatService{
		chatRepo:    chatRepo,
		patientRepo: patientRepo,
	}
}

// SendMessageInput represents send message input
type SendMessageInput struct {
	Message     string  `json:"message"`
	MessageType string  `json:"message_type"`
	FileURL     *string `json:"file_url"`
}

// ChatPage represents one page of a conversation, oldest first
type ChatPage struct {
	Messages []*models.ChatMessage `json:"messages"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	Limit    int                   `json:"limit"`
	Pages    int                   `json:"pages"`
}

// Send appends a message to the patient's conversation.
// Empty or whitespace-only bodies are rejected.
func (s *ChatService) Send(ctx context.Context, patientID, senderID uint, senderType string, input *SendMessageInput) (*models.ChatMessage, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, ErrEmptyMessage
	}

	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	messageType := input.MessageType
	if messageType == "" {
		messageType = models.ChatMessageText
	}
	if senderType != models.ChatSenderStaff {
		senderType = models.ChatSenderPatient
	}

	msg := &models.ChatMessage{
		PatientID:   patientID,
		SenderID:    senderID,
		SenderType:  senderType,
		Message:     input.Message,
		MessageType: messageType,
		FileURL:     input.FileURL,
	}

	if err := s.chatRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// MarkRead flags staff replies in the patient's conversation as read;
// patient-authored messages are never receipt-stamped
func (s *ChatService) MarkRead(ctx context.Context, messageIDs []uint, patientID uint) error {
	return s.chatRepo.MarkRead(ctx, messageIDs, patientID, time.Now())
}

// List returns one page of the conversation. Messages are fetched newest
// first and reversed so each page reads oldest first.
func (s *ChatService) List(ctx context.Context, patientID uint, page, limit int) (*ChatPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	messages, total, err := s.chatRepo.ListByPatient(ctx, patientID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	// Reverse to oldest-first for display
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}

	return &ChatPage{
		Messages: messages,
		Total:    total,
		Page:     page,
		Limit:    limit,
		Pages:    pages,
	}, nil
}

// UnreadCount counts unread staff replies for the patient
func (s *ChatService) UnreadCount(ctx context.Context, patientID uint) (int64, error) {
	return s.chatRepo.CountUnread(ctx, patientID)
}
