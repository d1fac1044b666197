package notification

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsulates database access for the notification queue.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Enqueue inserts a queue entry. A unique-index violation on
// (deal, destination) surfaces as gorm.ErrDuplicatedKey.
func (r *Repository) Enqueue(e *QueueEntry) error {
	return r.DB.Create(e).Error
}

// FetchPending returns unsent, unclaimed entries under the retry cap for one
// channel, oldest first. limit <= 0 means no limit.
func (r *Repository) FetchPending(channel string, limit int) ([]QueueEntry, error) {
	q := r.DB.
		Where("channel = ? AND sent = ? AND retry_count < ? AND claim_token IS NULL", channel, false, MaxRetries).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []QueueEntry
	err := q.Find(&list).Error
	return list, err
}

// MarkProcessing atomically claims an entry for delivery. The conditional
// update only matches an unsent, unclaimed row under the retry cap; a second
// claimer sees zero rows affected and must skip the entry.
func (r *Repository) MarkProcessing(id uint, token string) (bool, error) {
	res := r.DB.Model(&QueueEntry{}).
		Where("id = ? AND sent = ? AND retry_count < ? AND claim_token IS NULL", id, false, MaxRetries).
		Update("claim_token", token)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// MarkSent records a successful delivery for the holder of the claim.
func (r *Repository) MarkSent(id uint, token string) error {
	now := time.Now()
	return r.DB.Model(&QueueEntry{}).
		Where("id = ? AND claim_token = ?", id, token).
		Updates(map[string]interface{}{
			"sent":        true,
			"sent_at":     &now,
			"error":       "",
			"claim_token": nil,
		}).Error
}

// MarkFailed records a failed attempt: the retry counter moves up, the error
// text is stored and the claim is released so a later pass can retry.
func (r *Repository) MarkFailed(id uint, token string, errMsg string) error {
	return r.DB.Model(&QueueEntry{}).
		Where("id = ? AND claim_token = ?", id, token).
		Updates(map[string]interface{}{
			"retry_count": gorm.Expr("retry_count + 1"),
			"error":       errMsg,
			"claim_token": nil,
		}).Error
}

// ListByDeal returns the queue entries for a deal, for operator inspection.
func (r *Repository) ListByDeal(dealID uint) ([]QueueEntry, error) {
	var list []QueueEntry
	err := r.DB.Where("deal_id = ?", dealID).Order("created_at ASC").Find(&list).Error
	return list, err
}
