package researchhub

import (
	"time"
)

// LibraryItem is a bookmark: a pointer from a user to a paper. At most
// one row exists per (user, paper) pair.
type LibraryItem struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userID"`
	PaperID   int       `json:"paperID"`
	CreatedAt time.Time `json:"createdAt"`
}

type LibraryRepository interface {
	Find(userID, paperID int) (*LibraryItem, error)
	Exists(userID, paperID int) (bool, error)

	// Insert fails with a Conflict-coded error when a row for the same
	// (user, paper) pair already exists; the uniqueness constraint is
	// the authoritative guard against racing writers.
	Insert(*LibraryItem) error

	Delete(userID, paperID int) error
	ByUser(userID int, offset, limit uint64) ([]*LibraryItem, uint64, error)
	DeleteByPaper(paperID int) error
}
