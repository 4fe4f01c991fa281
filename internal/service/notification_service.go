package service

import (
	"context"
	"log"
	"time"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/model"
	"Orbit_Community/internal/permission"
	"Orbit_Community/internal/pkg"
	"Orbit_Community/internal/repository/mysql"

	"gorm.io/gorm"
)

type NotificationService struct {
	profiles *mysql.ProfileRepository
	notifs   *mysql.NotificationRepository
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		profiles: mysql.NewProfileRepository(db),
		notifs:   mysql.NewNotificationRepository(db),
	}
}

func (s *NotificationService) List(viewerID uint64, limit int) ([]model.Notification, error) {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return nil, err
	}
	if err = permission.RequireAuth(viewer); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPage
	}
	return s.notifs.ListByRecipient(viewer.ID, limit)
}

func (s *NotificationService) MarkRead(viewerID, notificationID uint64) error {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return err
	}
	if err = permission.RequireAuth(viewer); err != nil {
		return err
	}
	affected, err := s.notifs.MarkRead(viewer.ID, notificationID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("notification", notificationID)
	}
	return nil
}

// Sender outbox 事件投递函数
type Sender func(ctx context.Context, ob *model.NotificationOutbox) error

// OutboxRelayer 定时把 pending 的通知事件推到 Kafka；
// 事件生产与业务写同事务（见 NotificationRepository.Insert），投递失败可重试
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	maxRetry  int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      mysql.NewOutboxRepository(db),
		batchSize: 200,
		maxRetry:  5,
		interval:  time.Second,
		sender:    sender,
	}
}

// Run outbox 启动器
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.MarkRetry(ctx, ob.ID, r.maxRetry)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// KafkaSender 生产 Sender：按通知 ID 做 key 投递到通知 topic
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.NotificationOutbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.NotificationID), []byte(ob.Payload))
	}
}

// LogSender 占位 sender，本地联调用
func LogSender(ctx context.Context, ob *model.NotificationOutbox) error {
	log.Printf("OUTBOX SEND notification=%d payload=%s", ob.NotificationID, ob.Payload)
	return nil
}
