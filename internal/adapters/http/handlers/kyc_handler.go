package handlers

import (
	"errors"
	"strconv"

	"clinicare-portal/internal/core/services"
	"clinicare-portal/internal/pkg/pagination"
	"clinicare-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// KYCHandler handles patient identity verification endpoints
type KYCHandler struct {
	kycService *services.KYCService
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(kycService *services.KYCService) *KYCHandler {
	return &KYCHandler{
		kycService: kycService,
	}
}

// SubmitKYCRequest represents KYC submission request body
type SubmitKYCRequest struct {
	IDDocumentURL      string `json:"id_document_url"`
	AddressDocumentURL string `json:"address_document_url"`
	PhotoURL           string `json:"photo_url"`
}

// SubmitKYC handles a patient's document submission
// @Summary Submit KYC documents
// @Description Submit or resubmit identity documents for a patient; resets any previous review
// @Tags KYC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param body body SubmitKYCRequest true "Document URLs"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /kyc/{id}/submit [post]
func (h *KYCHandler) SubmitKYC(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	var req SubmitKYCRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.IDDocumentURL == "" {
		return response.BadRequest(c, "ID document is required")
	}

	doc, err := h.kycService.Submit(c.Context(), uint(id), &services.SubmitKYCInput{
		IDDocumentURL:      req.IDDocumentURL,
		AddressDocumentURL: req.AddressDocumentURL,
		PhotoURL:           req.PhotoURL,
	})
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return response.NotFound(c, "Patient not found")
		}
		return response.InternalServerError(c, "Failed to submit documents")
	}

	return response.Success(c, "Documents submitted successfully", fiber.Map{
		"kyc": doc,
	})
}

// GetKYC handles getting a patient's KYC document
// @Summary Get KYC document
// @Description Get a patient's KYC document and review state
// @Tags KYC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /kyc/{id} [get]
func (h *KYCHandler) GetKYC(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	doc, err := h.kycService.GetByPatientID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrKYCNotFound) {
			return response.NotFound(c, "KYC document not found")
		}
		return response.InternalServerError(c, "Failed to get KYC document")
	}

	return response.Success(c, "KYC document retrieved", fiber.Map{
		"kyc": doc,
	})
}

// ListKYC handles listing KYC documents by status (review queue)
// @Summary List KYC documents
// @Description Get a paginated list of KYC documents, optionally filtered by status
// @Tags KYC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Filter by status (submitted, under_review, approved, rejected)"
// @Success 200 {object} response.Response
// @Router /kyc [get]
func (h *KYCHandler) ListKYC(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	docs, total, err := h.kycService.ListByStatus(c.Context(), c.Query("status"), params.Page, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list KYC documents")
	}

	return response.Success(c, "KYC documents retrieved", fiber.Map{
		"documents": docs,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	})
}

// ReviewKYC handles starting a review
// @Summary Start KYC review
// @Description Mark a submitted KYC document as under review
// @Tags KYC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /kyc/{id}/review [post]
func (h *KYCHandler) ReviewKYC(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	reviewerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	doc, err := h.kycService.MarkUnderReview(c.Context(), uint(id), reviewerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrKYCNotFound):
			return response.NotFound(c, "KYC document not found")
		case errors.Is(err, services.ErrKYCNotSubmitted):
			return response.Conflict(c, "KYC document has not been submitted")
		default:
			return response.InternalServerError(c, "Failed to start review")
		}
	}

	return response.Success(c, "KYC review started", fiber.Map{
		"kyc": doc,
	})
}

// ApproveKYC handles approving a patient's documents
// @Summary Approve KYC
// @Description Approve a patient's documents; the patient record mirrors the approved status
// @Tags KYC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /kyc/{id}/approve [post]
func (h *KYCHandler) ApproveKYC(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	reviewerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	doc, err := h.kycService.Approve(c.Context(), uint(id), reviewerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrKYCNotFound):
			return response.NotFound(c, "KYC document not found")
		case errors.Is(err, services.ErrKYCNotSubmitted):
			return response.Conflict(c, "KYC document has not been submitted")
		default:
			return response.InternalServerError(c, "Failed to approve documents")
		}
	}

	return response.Success(c, "KYC approved", fiber.Map{
		"kyc": doc,
	})
}

// RejectKYCRequest represents rejection request body
type RejectKYCRequest struct {
	Remarks             string `json:"remarks"`
	RequestResubmission bool   `json:"request_resubmission"`
}

// RejectKYC handles rejecting a patient's documents
// @Summary Reject KYC
// @Description Reject a patient's documents with remarks, optionally requesting resubmission
// @Tags KYC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param body body RejectKYCRequest true "Rejection remarks"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /kyc/{id}/reject [post]
func (h *KYCHandler) RejectKYC(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	reviewerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RejectKYCRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Remarks == "" {
		return response.BadRequest(c, "Rejection remarks are required")
	}

	doc, err := h.kycService.Reject(c.Context(), uint(id), reviewerID, req.Remarks, req.RequestResubmission)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrKYCNotFound):
			return response.NotFound(c, "KYC document not found")
		case errors.Is(err, services.ErrKYCNotSubmitted):
			return response.Conflict(c, "KYC document has not been submitted")
		default:
			return response.InternalServerError(c, "Failed to reject documents")
		}
	}

	return response.Success(c, "KYC rejected", fiber.Map{
		"kyc": doc,
	})
}
