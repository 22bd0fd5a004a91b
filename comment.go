package researchhub

import (
	"time"
)

type CommentStatus string

const (
	CommentApproved CommentStatus = "APPROVED"
	CommentPending  CommentStatus = "PENDING"
	CommentRejected CommentStatus = "REJECTED"
)

type Comment struct {
	ID       int    `json:"id"`
	Content  string `json:"content"`
	AuthorID int    `json:"authorID"`
	PaperID  int    `json:"paperID"`

	Status           CommentStatus `json:"status"`
	ModerationReason string        `json:"moderationReason,omitempty"`
	ModeratedAt      *time.Time    `json:"moderatedAt,omitempty"`
	ModeratedBy      int           `json:"moderatedBy,omitempty"`

	Edited    bool      `json:"edited"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CommentRepository interface {
	Get(int) (*Comment, error)
	Insert(*Comment) error
	Update(*Comment) error
	Delete(int) error

	ByPaper(paperID int) ([]*Comment, error)
	ByStatus(status CommentStatus, offset, limit uint64) ([]*Comment, uint64, error)
	CountByPaper(paperID int) (uint64, error)
	Count() (uint64, error)
	DeleteByPaper(paperID int) error
	ByAuthor(authorID int) ([]*Comment, error)
	DeleteByAuthor(authorID int) error
}
