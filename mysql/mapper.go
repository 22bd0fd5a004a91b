package mysql

import (
	"time"

	"github.com/researchhub/researchhub"
)

type Paper struct {
	ID       int `gorm:"primary_key"`
	Title    string
	Author   string
	Abstract string `gorm:"type:text"`
	Year     int
	FileKey  string

	UploaderID int `gorm:"index"`

	Status          string `gorm:"index"`
	RejectionReason string
	ReviewedAt      *time.Time
	ReviewedBy      int

	ViewCount int
	CreatedAt time.Time
}

// PaperCategory is the explicit join relation between papers and
// categories, addressed by id pairs.
type PaperCategory struct {
	PaperID    int `gorm:"primary_key;auto_increment:false"`
	CategoryID int `gorm:"primary_key;auto_increment:false"`
}

type Category struct {
	ID          int    `gorm:"primary_key"`
	Name        string `gorm:"unique_index"`
	Description string
}

type Comment struct {
	ID       int    `gorm:"primary_key"`
	Content  string `gorm:"type:text"`
	AuthorID int    `gorm:"index"`
	PaperID  int    `gorm:"index"`

	Status           string `gorm:"index"`
	ModerationReason string
	ModeratedAt      *time.Time
	ModeratedBy      int

	Edited    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Notification struct {
	ID      int `gorm:"primary_key"`
	UserID  int `gorm:"index"`
	Title   string
	Message string `gorm:"type:text"`
	Type    string

	IsRead bool
	ReadAt *time.Time

	RelatedID   int
	RelatedType string

	CreatedAt time.Time
}

type LibraryItem struct {
	ID        int `gorm:"primary_key"`
	UserID    int
	PaperID   int
	CreatedAt time.Time
}

func newPaper(p researchhub.Paper) Paper {
	return Paper{
		ID:              p.ID,
		Title:           p.Title,
		Author:          p.Author,
		Abstract:        p.Abstract,
		Year:            p.Year,
		FileKey:         p.FileKey,
		UploaderID:      p.UploaderID,
		Status:          string(p.Status),
		RejectionReason: p.RejectionReason,
		ReviewedAt:      p.ReviewedAt,
		ReviewedBy:      p.ReviewedBy,
		ViewCount:       p.ViewCount,
		CreatedAt:       p.CreatedAt,
	}
}

func (p Paper) format(categoryIDs []int) *researchhub.Paper {
	return &researchhub.Paper{
		ID:              p.ID,
		Title:           p.Title,
		Author:          p.Author,
		Abstract:        p.Abstract,
		Year:            p.Year,
		FileKey:         p.FileKey,
		UploaderID:      p.UploaderID,
		CategoryIDs:     categoryIDs,
		Status:          researchhub.PaperStatus(p.Status),
		RejectionReason: p.RejectionReason,
		ReviewedAt:      p.ReviewedAt,
		ReviewedBy:      p.ReviewedBy,
		ViewCount:       p.ViewCount,
		CreatedAt:       p.CreatedAt,
	}
}

func newCategory(c researchhub.Category) Category {
	return Category{ID: c.ID, Name: c.Name, Description: c.Description}
}

func (c Category) format() *researchhub.Category {
	return &researchhub.Category{ID: c.ID, Name: c.Name, Description: c.Description}
}

func newComment(c researchhub.Comment) Comment {
	return Comment{
		ID:               c.ID,
		Content:          c.Content,
		AuthorID:         c.AuthorID,
		PaperID:          c.PaperID,
		Status:           string(c.Status),
		ModerationReason: c.ModerationReason,
		ModeratedAt:      c.ModeratedAt,
		ModeratedBy:      c.ModeratedBy,
		Edited:           c.Edited,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (c Comment) format() *researchhub.Comment {
	return &researchhub.Comment{
		ID:               c.ID,
		Content:          c.Content,
		AuthorID:         c.AuthorID,
		PaperID:          c.PaperID,
		Status:           researchhub.CommentStatus(c.Status),
		ModerationReason: c.ModerationReason,
		ModeratedAt:      c.ModeratedAt,
		ModeratedBy:      c.ModeratedBy,
		Edited:           c.Edited,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func newNotification(n researchhub.Notification) Notification {
	return Notification{
		ID:          n.ID,
		UserID:      n.UserID,
		Title:       n.Title,
		Message:     n.Message,
		Type:        string(n.Type),
		IsRead:      n.Read,
		ReadAt:      n.ReadAt,
		RelatedID:   n.RelatedID,
		RelatedType: string(n.RelatedType),
		CreatedAt:   n.CreatedAt,
	}
}

func (n Notification) format() *researchhub.Notification {
	return &researchhub.Notification{
		ID:          n.ID,
		UserID:      n.UserID,
		Title:       n.Title,
		Message:     n.Message,
		Type:        researchhub.NotificationType(n.Type),
		Read:        n.IsRead,
		ReadAt:      n.ReadAt,
		RelatedID:   n.RelatedID,
		RelatedType: researchhub.RelatedType(n.RelatedType),
		CreatedAt:   n.CreatedAt,
	}
}

func newLibraryItem(item researchhub.LibraryItem) LibraryItem {
	return LibraryItem{
		ID:        item.ID,
		UserID:    item.UserID,
		PaperID:   item.PaperID,
		CreatedAt: item.CreatedAt,
	}
}

func (item LibraryItem) format() *researchhub.LibraryItem {
	return &researchhub.LibraryItem{
		ID:        item.ID,
		UserID:    item.UserID,
		PaperID:   item.PaperID,
		CreatedAt: item.CreatedAt,
	}
}
