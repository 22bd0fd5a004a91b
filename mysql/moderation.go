package mysql

import "github.com/researchhub/researchhub"

// ModerationStore commits a review decision and its notification in one
// transaction: a decision must never be visible without its notification,
// nor the other way around. A nil notification commits the entity alone,
// which is the anonymous-uploader case.
type ModerationStore struct {
	driver *Driver
}

func NewModerationStore(driver *Driver) *ModerationStore {
	return &ModerationStore{driver: driver}
}

func (s *ModerationStore) SavePaperReview(paper *researchhub.Paper, notification *researchhub.Notification) error {
	tx := s.driver.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	dbPaper := newPaper(*paper)
	if err := tx.Save(&dbPaper).Error; err != nil {
		tx.Rollback()
		return err
	}

	if notification != nil {
		dbNotification := newNotification(*notification)
		if err := tx.Create(&dbNotification).Error; err != nil {
			tx.Rollback()
			return err
		}
		notification.ID = dbNotification.ID
	}

	return tx.Commit().Error
}

func (s *ModerationStore) SaveCommentReview(comment *researchhub.Comment, notification *researchhub.Notification) error {
	tx := s.driver.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	dbComment := newComment(*comment)
	if err := tx.Save(&dbComment).Error; err != nil {
		tx.Rollback()
		return err
	}

	if notification != nil {
		dbNotification := newNotification(*notification)
		if err := tx.Create(&dbNotification).Error; err != nil {
			tx.Rollback()
			return err
		}
		notification.ID = dbNotification.ID
	}

	return tx.Commit().Error
}
