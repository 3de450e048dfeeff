package messages

import (
	"context"

	"whatsapp-bridge/internal/models"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, msg *models.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(msg).Error
}

func (s *GormStore) List(ctx context.Context, waID string, limit int) ([]models.Message, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if waID != "" {
		q = q.Where("wa_id = ?", waID)
	}
	var out []models.Message
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
