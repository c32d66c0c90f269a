package services

import (
	"fmt"

	"github.com/picshare/picshare/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// NotificationStore is the append-only delivery event log, one ordered
// sequence per recipient. Like the feed cache it does not deduplicate.
type NotificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func (v *NotificationStore) Append(recipientID, sourceID, sourceName string) error {
	notification := models.Notification{
		RecipientID: recipientID,
		SourceID:    sourceID,
		SourceName:  sourceName,
	}
	if err := v.db.Create(&notification).Error; err != nil {
		return fmt.Errorf("unable to append notification: %v", err)
	}
	return nil
}

func (v *NotificationStore) ListAll(recipientID string) ([]models.Notification, error) {
	var items []models.Notification
	if err := v.db.Where("recipient_id = ?", recipientID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("unable to list notifications: %v", err)
	}
	return items, nil
}

// ListRendered returns human readable lines, oldest first. An empty log is
// reported as ErrNoNotifications so callers can tell "no notifications" apart
// from an uninitialized list.
func (v *NotificationStore) ListRendered(recipientID string) ([]string, error) {
	items, err := v.ListAll(recipientID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoNotifications
	}

	return lo.Map(items, func(item models.Notification, _ int) string {
		return fmt.Sprintf("%s shared a post", item.SourceName)
	}), nil
}
