package notifications

import (
	"fmt"
	"time"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/log"
)

type Service struct {
	repository researchhub.NotificationRepository
	users      researchhub.UserRepository
	logger     log.Logger
}

func NewService(repository researchhub.NotificationRepository, users researchhub.UserRepository, logger log.Logger) *Service {
	return &Service{
		repository: repository,
		users:      users,
		logger:     logger,
	}
}

// List is the paged notification feed of a user, newest first.
type List struct {
	Notifications []*researchhub.Notification `json:"notifications"`
	Pagination    researchhub.Pagination      `json:"pagination"`
}

// Create dispatches a notification to a single recipient. The recipient
// must exist.
func (s *Service) Create(userID int, typ researchhub.NotificationType, title, message string, relatedID int, relatedType researchhub.RelatedType) (*researchhub.Notification, error) {
	if _, err := s.users.Get(userID); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.New(fmt.Sprintf("no user for id %d", userID), errors.NotFound())
		}
		return nil, err
	}

	notification := researchhub.Notification{
		UserID:      userID,
		Title:       title,
		Message:     message,
		Type:        typ,
		RelatedID:   relatedID,
		RelatedType: relatedType,
		CreatedAt:   time.Now(),
	}
	if err := s.repository.Insert(&notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// CreateAdmin fans a notification out to every admin. Each insert is
// its own unit of work: a failure for one recipient is logged and the
// fan-out moves on to the next.
func (s *Service) CreateAdmin(typ researchhub.NotificationType, title, message string, relatedID int, relatedType researchhub.RelatedType) error {
	admins, err := s.users.Admins()
	if err != nil {
		return err
	}

	for _, admin := range admins {
		notification := researchhub.Notification{
			UserID:      admin.ID,
			Title:       title,
			Message:     message,
			Type:        typ,
			RelatedID:   relatedID,
			RelatedType: relatedType,
			CreatedAt:   time.Now(),
		}
		if err := s.repository.Insert(&notification); err != nil {
			s.logger.Errorf("could not notify admin %d: %v", admin.ID, err)
		}
	}
	return nil
}

func (s *Service) ByRecipient(userID int, offset, limit uint64) (List, error) {
	notifications, total, err := s.repository.ByRecipient(userID, offset, limit)
	if err != nil {
		return List{}, err
	}

	return List{
		Notifications: notifications,
		Pagination: researchhub.Pagination{
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	}, nil
}

func (s *Service) Unread(userID int) ([]*researchhub.Notification, error) {
	return s.repository.UnreadByRecipient(userID)
}

func (s *Service) CountUnread(userID int) (uint64, error) {
	return s.repository.CountUnread(userID)
}

// MarkRead flips a notification to read. Only the recipient can touch
// it.
func (s *Service) MarkRead(notificationID, callerID int) (*researchhub.Notification, error) {
	notification, err := s.get(notificationID, callerID)
	if err != nil {
		return nil, err
	}

	if notification.Read {
		return notification, nil
	}

	now := time.Now()
	notification.Read = true
	notification.ReadAt = &now
	if err := s.repository.Update(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *Service) MarkAllRead(callerID int) error {
	return s.repository.MarkAllRead(callerID, time.Now())
}

func (s *Service) Delete(notificationID, callerID int) error {
	if _, err := s.get(notificationID, callerID); err != nil {
		return err
	}
	return s.repository.Delete(notificationID)
}

func (s *Service) get(notificationID, callerID int) (*researchhub.Notification, error) {
	notification, err := s.repository.Get(notificationID)
	if err != nil {
		return nil, err
	}

	if notification.UserID != callerID {
		return nil, errors.New("not your notification", errors.Forbidden())
	}
	return notification, nil
}
