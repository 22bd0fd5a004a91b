package researchhub

import (
	"time"
)

type PaperStatus string

const (
	PaperPending  PaperStatus = "PENDING"
	PaperApproved PaperStatus = "APPROVED"
	PaperRejected PaperStatus = "REJECTED"
)

type Paper struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Abstract string `json:"abstract"`
	Year     int    `json:"year"`

	// FileKey is the blob storage key of the uploaded document.
	FileKey string `json:"fileKey"`

	// UploaderID is 0 for anonymous or legacy uploads.
	UploaderID  int   `json:"uploaderID"`
	CategoryIDs []int `json:"categoryIDs"`

	Status          PaperStatus `json:"status"`
	RejectionReason string      `json:"rejectionReason,omitempty"`
	ReviewedAt      *time.Time  `json:"reviewedAt,omitempty"`
	ReviewedBy      int         `json:"reviewedBy,omitempty"`

	ViewCount int       `json:"viewCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Pagination struct {
	Total  uint64 `json:"total"`
	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
}

// SearchParams carries the criteria of a paper search. All filters are
// optional and conjunctive.
type SearchParams struct {
	Q           string `json:"q"`
	CategoryIDs []int  `json:"categoryIDs"`
	Year        int    `json:"year"`
	Author      string `json:"author"`

	Statuses []PaperStatus `json:"statuses"`

	// OrderBy is empty for the default newest-first ordering. The only
	// other supported value is "-viewCount".
	OrderBy string `json:"orderBy"`

	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
}

// HasFilters reports whether any search criterion is set. A request
// without filters is served from the repository, not the index.
func (p SearchParams) HasFilters() bool {
	return p.Q != "" || len(p.CategoryIDs) > 0 || p.Year != 0 || p.Author != ""
}

type SearchResults struct {
	IDs        []int
	Pagination Pagination
}

type PaperRepository interface {
	Get(ids ...int) ([]*Paper, error)
	Upsert(*Paper) error
	Delete(int) error

	ByStatus(status PaperStatus, offset, limit uint64) ([]*Paper, uint64, error)
	ByCategories(categoryIDs []int, offset, limit uint64) ([]*Paper, uint64, error)
	NewestFirst(offset, limit uint64) ([]*Paper, uint64, error)
	MostViewed(offset, limit uint64) ([]*Paper, uint64, error)
	ByUploader(userID int, offset, limit uint64) ([]*Paper, uint64, error)
	CountByUploader(userID int) (uint64, error)
	Count() (uint64, error)
	CountByStatus(PaperStatus) (uint64, error)
}

type PaperIndex interface {
	Index(*Paper) error
	Delete(int) error
	Search(SearchParams) (SearchResults, error)
}

type CategoryRepository interface {
	Get(int) (*Category, error)
	GetByName(string) (*Category, error)
	GetMany([]int) ([]*Category, error)
	List() ([]*Category, error)
	Insert(*Category) error
}
