package researchhub

import (
	"time"
)

type NotificationType string

const (
	NotifPaperSubmitted  NotificationType = "PAPER_SUBMITTED"
	NotifPaperApproved   NotificationType = "PAPER_APPROVED"
	NotifPaperRejected   NotificationType = "PAPER_REJECTED"
	NotifCommentRejected NotificationType = "COMMENT_REJECTED"
	NotifUserSuspended   NotificationType = "USER_SUSPENDED"
	NotifUserActivated   NotificationType = "USER_ACTIVATED"
)

type RelatedType string

const (
	RelatedPaper   RelatedType = "PAPER"
	RelatedComment RelatedType = "COMMENT"
	RelatedUser    RelatedType = "USER"
)

type Notification struct {
	ID      int              `json:"id"`
	UserID  int              `json:"userID"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`

	Read   bool       `json:"read"`
	ReadAt *time.Time `json:"readAt,omitempty"`

	RelatedID   int         `json:"relatedID,omitempty"`
	RelatedType RelatedType `json:"relatedType,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type NotificationRepository interface {
	Get(int) (*Notification, error)
	Insert(*Notification) error
	Update(*Notification) error
	Delete(int) error

	ByRecipient(userID int, offset, limit uint64) ([]*Notification, uint64, error)
	UnreadByRecipient(userID int) ([]*Notification, error)
	CountUnread(userID int) (uint64, error)
	MarkAllRead(userID int, at time.Time) error
	CountUnreadAdmin(adminIDs []int) (uint64, error)
}

// ModerationStore persists a moderation transition and its notification
// side-effect as one unit of work. A nil notification commits the entity
// alone (unknown uploader).
type ModerationStore interface {
	SavePaperReview(*Paper, *Notification) error
	SaveCommentReview(*Comment, *Notification) error
}
