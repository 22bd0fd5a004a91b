package inmem

import (
	"sort"
	"sync"
	"time"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
)

type NotificationRepository struct {
	mu            sync.Locker
	notifications []researchhub.Notification
	maxID         int

	// InsertErr makes every Insert fail, to exercise fan-out error paths.
	InsertErr error
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{
		mu:            &sync.Mutex{},
		notifications: make([]researchhub.Notification, 0),
	}
}

func (r *NotificationRepository) Get(id int) (*researchhub.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, notification := range r.notifications {
		if notification.ID == id {
			n := notification
			return &n, nil
		}
	}
	return nil, errors.New("notification not found", errors.NotFound())
}

func (r *NotificationRepository) Insert(notification *researchhub.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.InsertErr != nil {
		return r.InsertErr
	}

	if notification.ID == 0 {
		r.maxID++
		notification.ID = r.maxID
	} else if notification.ID > r.maxID {
		r.maxID = notification.ID
	}

	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *NotificationRepository) Update(notification *researchhub.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, n := range r.notifications {
		if n.ID == notification.ID {
			r.notifications[i] = *notification
			return nil
		}
	}
	return errors.New("notification not found", errors.NotFound())
}

func (r *NotificationRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, notification := range r.notifications {
		if notification.ID == id {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *NotificationRepository) ByRecipient(userID int, offset, limit uint64) ([]*researchhub.Notification, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notifications := r.filter(func(n researchhub.Notification) bool {
		return n.UserID == userID
	})

	total := uint64(len(notifications))
	if offset >= total {
		return nil, total, nil
	}
	notifications = notifications[offset:]
	if limit > 0 && uint64(len(notifications)) > limit {
		notifications = notifications[:limit]
	}
	return notifications, total, nil
}

func (r *NotificationRepository) UnreadByRecipient(userID int) ([]*researchhub.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.filter(func(n researchhub.Notification) bool {
		return n.UserID == userID && !n.Read
	}), nil
}

func (r *NotificationRepository) CountUnread(userID int) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return uint64(len(r.filter(func(n researchhub.Notification) bool {
		return n.UserID == userID && !n.Read
	}))), nil
}

func (r *NotificationRepository) MarkAllRead(userID int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].UserID == userID && !r.notifications[i].Read {
			r.notifications[i].Read = true
			readAt := at
			r.notifications[i].ReadAt = &readAt
		}
	}
	return nil
}

func (r *NotificationRepository) CountUnreadAdmin(adminIDs []int) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return uint64(len(r.filter(func(n researchhub.Notification) bool {
		if n.Read {
			return false
		}
		for _, id := range adminIDs {
			if n.UserID == id {
				return true
			}
		}
		return false
	}))), nil
}

func (r *NotificationRepository) filter(keep func(researchhub.Notification) bool) []*researchhub.Notification {
	notifications := make([]*researchhub.Notification, 0)
	for i := range r.notifications {
		if keep(r.notifications[i]) {
			n := r.notifications[i]
			notifications = append(notifications, &n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].ID > notifications[j].ID
	})
	return notifications
}
