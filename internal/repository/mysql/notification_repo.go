package mysql

import (
	"context"
	"encoding/json"
	"time"

	"Orbit_Community/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) WithTx(tx *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: tx}
}

// Insert 通知与 outbox 同事务写入：通知表是事实来源，outbox 负责异步推送
func (r *NotificationRepository) Insert(n *model.Notification) error {
	if err := r.DB.Create(n).Error; err != nil {
		return err
	}
	payload, err := json.Marshal(map[string]any{
		"notification_id": n.ID,
		"recipient_id":    n.RecipientID,
		"type":            n.Type,
		"actor_id":        n.ActorID,
	})
	if err != nil {
		return err
	}
	ob := model.NotificationOutbox{
		NotificationID: n.ID,
		Payload:        string(payload),
	}
	return r.DB.Create(&ob).Error
}

func (r *NotificationRepository) ListByRecipient(recipientID uint64, limit int) ([]model.Notification, error) {
	var list []model.Notification
	err := r.DB.Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// MarkRead 只允许本人标记自己的通知
func (r *NotificationRepository) MarkRead(recipientID, notificationID uint64) (int64, error) {
	res := r.DB.Model(&model.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("read", true)
	return res.RowsAffected, res.Error
}

type OutboxRepository struct {
	DB *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{DB: db}
}

// ListPending 按批量取 pending 事件
func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]model.NotificationOutbox, error) {
	var rows []model.NotificationOutbox
	err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.NotificationOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": 1, "updated_at": time.Now()}).Error
}

// MarkRetry 投递失败累计重试次数，超限置为 failed
func (r *OutboxRepository) MarkRetry(ctx context.Context, id uint64, maxRetry int) error {
	return r.DB.WithContext(ctx).Model(&model.NotificationOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"retry":  gorm.Expr("retry + 1"),
			"status": gorm.Expr("CASE WHEN retry + 1 >= ? THEN 2 ELSE 0 END", maxRetry),
		}).Error
}
