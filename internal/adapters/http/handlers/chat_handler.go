package handlers

import (
	"errors"
	"strconv"

	"clinicare-portal/internal/core/services"
	"clinicare-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler handles patient support chat endpoints
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// SendMessageRequest represents send message request body
type SendMessageRequest struct {
	Message     string  `json:"message"`
	MessageType string  `json:"message_type"`
	FileURL     *string `json:"file_url"`
	SenderType  string  `json:"sender_type"`
}

// SendMessage handles sending a chat message in a patient's thread
// @Summary Send chat message
// @Description Send a message in a patient's support thread
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param body body SendMessageRequest true "Message data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /chat/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	patientID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	senderID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Staff accounts send as staff; everything else is treated as the patient
	senderType := req.SenderType
	if role, ok := c.Locals("role").(string); ok && (role == "ADMIN" || role == "STAFF" || role == "DOCTOR") {
		senderType = "staff"
	}

	msg, err := h.chatService.Send(c.Context(), uint(patientID), senderID, senderType, &services.SendMessageInput{
		Message:     req.Message,
		MessageType: req.MessageType,
		FileURL:     req.FileURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyMessage):
			return response.BadRequest(c, "Message body is empty")
		case errors.Is(err, services.ErrPatientNotFound):
			return response.NotFound(c, "Patient not found")
		default:
			return response.InternalServerError(c, "Failed to send message")
		}
	}

	return response.Created(c, "Message sent", fiber.Map{
		"message": msg,
	})
}

// ListMessages handles listing a patient's chat history
// @Summary List chat messages
// @Description Get a page of a patient's chat history in chronological order
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Messages per page" default(50)
// @Success 200 {object} response.Response
// @Router /chat/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	patientID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	result, err := h.chatService.List(c.Context(), uint(patientID), page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list messages")
	}

	return response.Success(c, "Messages retrieved successfully", result)
}

// MarkReadRequest represents mark-read request body
type MarkReadRequest struct {
	MessageIDs []uint `json:"message_ids"`
}

// MarkRead handles marking staff messages as read by the patient
// @Summary Mark messages read
// @Description Mark staff messages in a patient's thread as read
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param body body MarkReadRequest true "Message IDs"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /chat/{id}/read [post]
func (h *ChatHandler) MarkRead(c *fiber.Ctx) error {
	patientID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	var req MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if len(req.MessageIDs) == 0 {
		return response.BadRequest(c, "Message IDs are required")
	}

	if err := h.chatService.MarkRead(c.Context(), req.MessageIDs, uint(patientID)); err != nil {
		return response.InternalServerError(c, "Failed to mark messages as read")
	}

	return response.Success(c, "Messages marked as read", nil)
}

// UnreadCount handles the patient's unread message count
// @Summary Unread message count
// @Description Get the number of unread staff messages in a patient's thread
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Router /chat/{id}/unread [get]
func (h *ChatHandler) UnreadCount(c *fiber.Ctx) error {
	patientID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	count, err := h.chatService.UnreadCount(c.Context(), uint(patientID))
	if err != nil {
		return response.InternalServerError(c, "Failed to get unread count")
	}

	return response.Success(c, "Unread count retrieved", fiber.Map{
		"unread": count,
	})
}
