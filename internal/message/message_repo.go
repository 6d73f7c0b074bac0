package message

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=message_repo.go -destination=mock/message_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, m *Message) error
	FindByID(ctx context.Context, id string) (*Message, error)
	FindByRecipient(ctx context.Context, userID string) ([]Message, error)
	FindBySender(ctx context.Context, userID string) ([]Message, error)
	FindUnreadByRecipient(ctx context.Context, userID string) ([]Message, error)
	CountUnreadByRecipient(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, m *Message) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, m *Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Message, error) {
	var m Message
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&m).Error
	return &m, err
}

func (r *repository) FindByRecipient(ctx context.Context, userID string) ([]Message, error) {
	var messages []Message
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

func (r *repository) FindBySender(ctx context.Context, userID string) ([]Message, error) {
	var messages []Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

func (r *repository) FindUnreadByRecipient(ctx context.Context, userID string) ([]Message, error) {
	var messages []Message
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND is_read = false", userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

func (r *repository) CountUnreadByRecipient(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Message{}).
		Where("recipient_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, m *Message) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Message{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
