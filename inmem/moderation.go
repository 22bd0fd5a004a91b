package inmem

import (
	"github.com/researchhub/researchhub"
)

// ModerationStore mimics the transactional review store: when Err is
// set the whole save fails and neither write happens.
type ModerationStore struct {
	Papers        *PaperRepository
	Comments      *CommentRepository
	Notifications *NotificationRepository

	Err error
}

func NewModerationStore(papers *PaperRepository, comments *CommentRepository, notifications *NotificationRepository) *ModerationStore {
	return &ModerationStore{
		Papers:        papers,
		Comments:      comments,
		Notifications: notifications,
	}
}

func (s *ModerationStore) SavePaperReview(paper *researchhub.Paper, notification *researchhub.Notification) error {
	if s.Err != nil {
		return s.Err
	}

	if err := s.Papers.Upsert(paper); err != nil {
		return err
	}
	if notification != nil {
		return s.Notifications.Insert(notification)
	}
	return nil
}

func (s *ModerationStore) SaveCommentReview(comment *researchhub.Comment, notification *researchhub.Notification) error {
	if s.Err != nil {
		return s.Err
	}

	if err := s.Comments.Update(comment); err != nil {
		return err
	}
	if notification != nil {
		return s.Notifications.Insert(notification)
	}
	return nil
}
