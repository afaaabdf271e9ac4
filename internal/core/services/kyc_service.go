package services

import (
	"context"
	"errors"
	"log"
	"time"

	"clinicare-portal/internal/adapters/persistence/models"
	"clinicare-portal/internal/adapters/persistence/repositories"
	"clinicare-portal/internal/pkg/pagination"

	"gorm.io/gorm"
)

// KYC service errors
var (
	ErrKYCNotFound     = errors.New("kyc document not found")
	ErrKYCNotSubmitted = errors.New("kyc document has not been submitted")
)

// KYCService drives the patient document review workflow.
// Every transition writes the document and the patient's mirrored status in
// one transaction.
type KYCService struct {
	kycRepo     repositories.KYCRepository
	patientRepo repositories.PatientRepository
}

// NewKYCService creates a new KYC service
func NewKYCService(kycRepo repositories.KYCRepository, patientRepo repositories.PatientRepository) *KYCService {
	return &KYCService{
		kycRepo:     kycRepo,
		patientRepo: patientRepo,
	}
}

// SubmitKYCInput represents document submission input
type SubmitKYCInput struct {
	IDDocumentURL      string `json:"id_document_url"`
	AddressDocumentURL string `json:"address_document_url"`
	PhotoURL           string `json:"photo_url"`
}

// Submit upserts the patient's single document set, forcing status to
// submitted and clearing any resubmission request
func (s *KYCService) Submit(ctx context.Context, patientID uint, input *SubmitKYCInput) (*models.KYCDocument, error) {
	// 1. Validate patient
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	// 2. Update in place if a document set exists, else create
	doc, err := s.kycRepo.GetByPatientID(ctx, patientID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		doc = &models.KYCDocument{PatientID: patientID}
	}

	now := time.Now()
	doc.Status = models.KYCStatusSubmitted
	doc.IDDocumentURL = input.IDDocumentURL
	doc.AddressDocumentURL = input.AddressDocumentURL
	doc.PhotoURL = input.PhotoURL
	doc.ResubmissionRequested = false
	doc.RejectionRemarks = ""
	doc.ReviewedBy = nil
	doc.ReviewedAt = nil
	doc.SubmittedAt = &now

	// 3. Persist document and patient mirror atomically
	if err := s.kycRepo.SaveWithPatientStatus(ctx, doc); err != nil {
		return nil, err
	}

	log.Printf("✅ KYC submitted for patient %d", patientID)
	return doc, nil
}

// MarkUnderReview moves a submitted document into review
func (s *KYCService) MarkUnderReview(ctx context.Context, patientID, reviewerID uint) (*models.KYCDocument, error) {
	doc, err := s.getReviewable(ctx, patientID)
	if err != nil {
		return nil, err
	}

	s.stampReview(doc, reviewerID, models.KYCStatusUnderReview)
	if err := s.kycRepo.SaveWithPatientStatus(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Approve approves the patient's documents
func (s *KYCService) Approve(ctx context.Context, patientID, reviewerID uint) (*models.KYCDocument, error) {
	doc, err := s.getReviewable(ctx, patientID)
	if err != nil {
		return nil, err
	}

	s.stampReview(doc, reviewerID, models.KYCStatusApproved)
	if err := s.kycRepo.SaveWithPatientStatus(ctx, doc); err != nil {
		return nil, err
	}

	log.Printf("✅ KYC approved for patient %d by reviewer %d", patientID, reviewerID)
	return doc, nil
}

// Reject rejects the documents, optionally inviting resubmission
func (s *KYCService) Reject(ctx context.Context, patientID, reviewerID uint, remarks string, requestResubmission bool) (*models.KYCDocument, error) {
	doc, err := s.getReviewable(ctx, patientID)
	if err != nil {
		return nil, err
	}

	s.stampReview(doc, reviewerID, models.KYCStatusRejected)
	doc.RejectionRemarks = remarks
	doc.ResubmissionRequested = requestResubmission

	if err := s.kycRepo.SaveWithPatientStatus(ctx, doc); err != nil {
		return nil, err
	}

	log.Printf("⚠️ KYC rejected for patient %d (resubmission: %t)", patientID, requestResubmission)
	return doc, nil
}

// GetByPatientID returns the patient's document set
func (s *KYCService) GetByPatientID(ctx context.Context, patientID uint) (*models.KYCDocument, error) {
	return s.getDocument(ctx, patientID)
}

// ListByStatus lists document sets in a review status
func (s *KYCService) ListByStatus(ctx context.Context, status string, page, limit int) ([]*models.KYCDocument, int64, error) {
	p := pagination.Normalize(page, limit)
	return s.kycRepo.ListByStatus(ctx, status, p.Offset, p.Limit)
}

func (s *KYCService) getDocument(ctx context.Context, patientID uint) (*models.KYCDocument, error) {
	doc, err := s.kycRepo.GetByPatientID(ctx, patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKYCNotFound
		}
		return nil, err
	}
	return doc, nil
}

// getReviewable returns the document only once the patient has submitted it
func (s *KYCService) getReviewable(ctx context.Context, patientID uint) (*models.KYCDocument, error) {
	doc, err := s.getDocument(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if doc.SubmittedAt == nil || doc.Status == models.KYCStatusPending {
		return nil, ErrKYCNotSubmitted
	}
	return doc, nil
}

func (s *KYCService) stampReview(doc *models.KYCDocument, reviewerID uint, status string) {
	now := time.Now()
	doc.Status = status
	doc.ReviewedBy = &reviewerID
	doc.ReviewedAt = &now
}
