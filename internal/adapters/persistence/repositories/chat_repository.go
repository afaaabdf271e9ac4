package repositories

import (
	"context"
	"time"

	"clinicare-portal/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// chatRepository implements ChatRepository interface
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// Create appends a message to the conversation
func (r *chatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListByPatient returns messages newest-first with the total count
func (r *chatRepository) ListByPatient(ctx context.Context, patientID uint, offset, limit int) ([]*models.ChatMessage, int64, error) {
	var messages []*models.ChatMessage
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ChatMessage{}).Where("patient_id = ?", patientID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// MarkRead flags staff-authored messages as read within one patient's
// conversation; patient-authored messages never receive read receipts
func (r *chatRepository) MarkRead(ctx context.Context, messageIDs []uint, patientID uint, readAt time.Time) error {
	if len(messageIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("id IN ? AND patient_id = ? AND sender_type <> ?",
			messageIDs, patientID, models.ChatSenderPatient).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
		}).Error
}

// CountUnread counts unread staff messages in the patient's conversation
func (r *chatRepository) CountUnread(ctx context.Context, patientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("patient_id = ? AND sender_type <> ? AND is_read = ?",
			patientID, models.ChatSenderPatient, false).
		Count(&count).Error
	return count, err
}
