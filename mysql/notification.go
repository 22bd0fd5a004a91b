package mysql

import (
	"time"

	"github.com/jinzhu/gorm"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
)

type NotificationRepository struct {
	driver *Driver
}

func NewNotificationRepository(driver *Driver) *NotificationRepository {
	return &NotificationRepository{driver: driver}
}

func (r *NotificationRepository) Get(id int) (*researchhub.Notification, error) {
	var dbNotification Notification
	err := r.driver.db.Where("id = ?", id).First(&dbNotification).Error
	if err == gorm.ErrRecordNotFound {
		return nil, errors.New("notification not found", errors.NotFound())
	} else if err != nil {
		return nil, err
	}
	return dbNotification.format(), nil
}

func (r *NotificationRepository) Insert(notification *researchhub.Notification) error {
	dbNotification := newNotification(*notification)
	if err := r.driver.db.Create(&dbNotification).Error; err != nil {
		return err
	}
	notification.ID = dbNotification.ID
	return nil
}

func (r *NotificationRepository) Update(notification *researchhub.Notification) error {
	dbNotification := newNotification(*notification)
	return r.driver.db.Save(&dbNotification).Error
}

func (r *NotificationRepository) Delete(id int) error {
	return r.driver.db.Delete(Notification{ID: id}).Error
}

func (r *NotificationRepository) ByRecipient(userID int, offset, limit uint64) ([]*researchhub.Notification, uint64, error) {
	query := r.driver.db.Model(&Notification{}).Where("user_id = ?", userID)

	var total uint64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dbNotifications []Notification
	err := query.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&dbNotifications).
		Error
	if err != nil {
		return nil, 0, err
	}

	return formatNotifications(dbNotifications), total, nil
}

func (r *NotificationRepository) UnreadByRecipient(userID int) ([]*researchhub.Notification, error) {
	var dbNotifications []Notification
	err := r.driver.db.
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC, id DESC").
		Find(&dbNotifications).
		Error
	if err != nil {
		return nil, err
	}
	return formatNotifications(dbNotifications), nil
}

func (r *NotificationRepository) CountUnread(userID int) (uint64, error) {
	var count uint64
	err := r.driver.db.
		Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).
		Error
	return count, err
}

func (r *NotificationRepository) MarkAllRead(userID int, at time.Time) error {
	return r.driver.db.
		Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": &at}).
		Error
}

func (r *NotificationRepository) CountUnreadAdmin(adminIDs []int) (uint64, error) {
	if len(adminIDs) == 0 {
		return 0, nil
	}

	var count uint64
	err := r.driver.db.
		Model(&Notification{}).
		Where("user_id IN (?) AND is_read = ?", adminIDs, false).
		Count(&count).
		Error
	return count, err
}

func formatNotifications(dbNotifications []Notification) []*researchhub.Notification {
	notifications := make([]*researchhub.Notification, len(dbNotifications))
	for i, dbNotification := range dbNotifications {
		notifications[i] = dbNotification.format()
	}
	return notifications
}
