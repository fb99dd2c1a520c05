package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/craftmarket/compliance-service/models"
	"github.com/craftmarket/compliance-service/monitoring"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StreamPublisher publishes one notification event to the delivery stream.
// Implemented by the redis client wrapper; delivery itself is owned by the
// downstream consumer.
type StreamPublisher interface {
	Publish(ctx context.Context, streamName string, data map[string]interface{}) (string, error)
}

// NotificationStream is the Redis stream the dispatcher publishes to
const NotificationStream = "compliance-notifications"

// notificationSpec describes one notification before it is written to the
// outbox
type notificationSpec struct {
	Type     models.NotificationType
	Title    string
	Content  string
	Metadata map[string]string
}

// enqueueInTx writes the notification outbox row inside the caller's
// transaction, so the row commits or rolls back with the transition that
// caused it. Delivery happens asynchronously through the dispatcher.
func enqueueInTx(tx *gorm.DB, userID string, spec notificationSpec) error {
	n := models.Notification{
		UserID:  userID,
		Type:    spec.Type,
		Title:   spec.Title,
		Content: spec.Content,
	}
	if len(spec.Metadata) > 0 {
		data, err := json.Marshal(spec.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal notification metadata: %w", err)
		}
		n.Metadata = string(data)
	}

	if err := tx.Create(&n).Error; err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}

// NotificationDispatcher drains pending notification outbox rows to the
// delivery stream. Stream unavailability marks the row for retry and never
// affects the transition that produced it.
type NotificationDispatcher struct {
	db           *gorm.DB
	publisher    StreamPublisher
	pollInterval time.Duration
	batchSize    int
}

// NewNotificationDispatcher creates a new notification dispatcher
func NewNotificationDispatcher(db *gorm.DB, publisher StreamPublisher) *NotificationDispatcher {
	return &NotificationDispatcher{
		db:           db,
		publisher:    publisher,
		pollInterval: 10 * time.Second,
		batchSize:    20,
	}
}

// Start starts the background worker that drains the notification outbox
func (d *NotificationDispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	slog.Info("Notification dispatcher started", "pollInterval", d.pollInterval, "batchSize", d.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Notification dispatcher stopped")
			return
		case <-ticker.C:
			if _, err := d.DispatchPending(ctx); err != nil {
				slog.Error("Notification dispatch pass failed", "error", err)
			}
		}
	}
}

// DispatchPending claims and publishes one batch of pending notifications.
// Returns the number successfully published. Exported so the scheduler
// endpoint and tests can run a pass directly.
func (d *NotificationDispatcher) DispatchPending(ctx context.Context) (int, error) {
	now := time.Now().UTC()

	// Recover rows stuck in processing from a crashed dispatcher run
	stuckThreshold := now.Add(-5 * time.Minute)
	if err := d.db.WithContext(ctx).Model(&models.Notification{}).
		Where("status = ?", models.NotificationStatusProcessing).
		Where("updated_at < ?", stuckThreshold).
		Update("status", models.NotificationStatusPending).Error; err != nil {
		slog.Warn("Failed to recover stuck processing notifications", "error", err)
	}

	var batch []models.Notification

	// SELECT FOR UPDATE with SKIP LOCKED so concurrent dispatcher instances
	// never claim the same rows; the batch is marked processing inside the
	// same transaction. SQLite has no row locks; its single-writer model
	// makes the plain claim safe there.
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("status = ?", models.NotificationStatusPending).
			Where("retry_count < max_retries").
			Order("created_at ASC").
			Limit(d.batchSize)
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		}
		if err := query.Find(&batch).Error; err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		ids := make([]string, len(batch))
		for i := range batch {
			ids[i] = batch[i].NotificationID
		}
		return tx.Model(&models.Notification{}).
			Where("notification_id IN ?", ids).
			Update("status", models.NotificationStatusProcessing).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to claim pending notifications: %w", err)
	}
	if len(batch) == 0 {
		return 0, nil
	}

	sent := 0
	for i := range batch {
		n := &batch[i]
		if err := d.publish(ctx, n); err != nil {
			slog.Warn("Failed to publish notification, will retry",
				"notificationId", n.NotificationID, "retryCount", n.RetryCount+1, "error", err)
			d.markFailure(ctx, n)
			monitoring.RecordNotificationDispatch("failed")
			continue
		}
		d.markSent(ctx, n)
		monitoring.RecordNotificationDispatch("sent")
		sent++
	}

	slog.Debug("Notification dispatch pass complete", "claimed", len(batch), "sent", sent)
	return sent, nil
}

func (d *NotificationDispatcher) publish(ctx context.Context, n *models.Notification) error {
	_, err := d.publisher.Publish(ctx, NotificationStream, map[string]interface{}{
		"notification_id": n.NotificationID,
		"user_id":         n.UserID,
		"type":            string(n.Type),
		"title":           n.Title,
		"content":         n.Content,
		"metadata":        n.Metadata,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	return nil
}

func (d *NotificationDispatcher) markSent(ctx context.Context, n *models.Notification) {
	now := time.Now().UTC()
	if err := d.db.WithContext(ctx).Model(n).Updates(map[string]interface{}{
		"status":  models.NotificationStatusSent,
		"sent_at": now,
	}).Error; err != nil {
		slog.Error("Failed to mark notification sent", "notificationId", n.NotificationID, "error", err)
	}
}

func (d *NotificationDispatcher) markFailure(ctx context.Context, n *models.Notification) {
	updates := map[string]interface{}{
		"retry_count": n.RetryCount + 1,
		"status":      models.NotificationStatusPending,
	}
	if n.RetryCount+1 >= n.MaxRetries {
		updates["status"] = models.NotificationStatusFailed
	}
	if err := d.db.WithContext(ctx).Model(n).Updates(updates).Error; err != nil {
		slog.Error("Failed to record notification failure", "notificationId", n.NotificationID, "error", err)
	}
}
