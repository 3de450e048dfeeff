package calls

import (
	"context"
	"errors"

	"whatsapp-bridge/internal/models"

	"gorm.io/gorm"
)

// GormStore is the gorm-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, call *models.Call) error {
	return s.db.WithContext(ctx).Create(call).Error
}

func (s *GormStore) Get(ctx context.Context, id string) (*models.Call, error) {
	var call models.Call
	err := s.db.WithContext(ctx).First(&call, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrCallNotFound
	}
	if err != nil {
		return nil, err
	}
	return &call, nil
}

func (s *GormStore) GetByProviderID(ctx context.Context, providerCallID string) (*models.Call, error) {
	if providerCallID == "" {
		return nil, models.ErrCallNotFound
	}
	var call models.Call
	err := s.db.WithContext(ctx).First(&call, "provider_call_id = ?", providerCallID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrCallNotFound
	}
	if err != nil {
		return nil, err
	}
	return &call, nil
}

func (s *GormStore) Save(ctx context.Context, call *models.Call) error {
	return s.db.WithContext(ctx).Save(call).Error
}

func (s *GormStore) History(ctx context.Context, fromNumber string, limit int) ([]models.Call, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if fromNumber != "" {
		q = q.Where("from_number = ?", fromNumber)
	}
	var out []models.Call
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) Active(ctx context.Context) ([]models.Call, error) {
	var out []models.Call
	err := s.db.WithContext(ctx).
		Where("status IN ?", ActiveStatusStrings()).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func ActiveStatusStrings() []string {
	statuses := models.ActiveStatuses()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
