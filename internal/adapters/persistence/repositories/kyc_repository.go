package repositories

import (
	"context"

	"clinicare-portal/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// kycRepository implements KYCRepository interface
type kycRepository struct {
	db *gorm.DB
}

// NewKYCRepository creates a new KYC repository
func NewKYCRepository(db *gorm.DB) KYCRepository {
	return &kycRepository{db: db}
}

// GetByPatientID gets the patient's document set
func (r *kycRepository) GetByPatientID(ctx context.Context, patientID uint) (*models.KYCDocument, error) {
	var doc models.KYCDocument
	err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveWithPatientStatus upserts the document and mirrors its status onto the
// patient record in the same transaction, so the two can never drift apart
// on a crash between writes.
func (r *kycRepository) SaveWithPatientStatus(ctx context.Context, doc *models.KYCDocument) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(doc).Error; err != nil {
			return err
		}
		return tx.Model(&models.Patient{}).
			Where("id = ?", doc.PatientID).
			Update("kyc_status", doc.Status).Error
	})
}

// ListByStatus lists documents in a given review status
func (r *kycRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.KYCDocument, int64, error) {
	var docs []*models.KYCDocument
	var total int64

	query := r.db.WithContext(ctx).Model(&models.KYCDocument{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Patient").
		Order("updated_at DESC").
		Offset(offset).Limit(limit).
		Find(&docs).Error; err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}
