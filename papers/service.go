package papers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/log"
)

// AdminNotifier is the slice of the notification dispatcher the paper
// lifecycle needs: fanning a submission notice out to the admins.
type AdminNotifier interface {
	CreateAdmin(typ researchhub.NotificationType, title, message string, relatedID int, relatedType researchhub.RelatedType) error
}

type Service struct {
	repository researchhub.PaperRepository
	index      researchhub.PaperIndex
	categories researchhub.CategoryRepository
	users      researchhub.UserRepository
	profiles   researchhub.ProfileRepository
	comments   researchhub.CommentRepository
	library    researchhub.LibraryRepository
	files      researchhub.FileStore
	notifier   AdminNotifier
	logger     log.Logger
}

func NewService(
	repository researchhub.PaperRepository,
	index researchhub.PaperIndex,
	categories researchhub.CategoryRepository,
	users researchhub.UserRepository,
	profiles researchhub.ProfileRepository,
	comments researchhub.CommentRepository,
	library researchhub.LibraryRepository,
	files researchhub.FileStore,
	notifier AdminNotifier,
	logger log.Logger,
) *Service {
	return &Service{
		repository: repository,
		index:      index,
		categories: categories,
		users:      users,
		profiles:   profiles,
		comments:   comments,
		library:    library,
		files:      files,
		notifier:   notifier,
		logger:     logger,
	}
}

type UploadMeta struct {
	Title       string
	Author      string
	Abstract    string
	Year        int
	CategoryIDs []int
	Extension   string
}

// Upload stores the blob, creates the paper PENDING and notifies the
// admins that a submission awaits review. uploaderID 0 records an
// anonymous upload.
func (s *Service) Upload(uploaderID int, meta UploadMeta, file io.Reader) (*researchhub.Paper, error) {
	if file == nil {
		return nil, errors.New("file must not be empty", errors.BadRequest())
	}

	categoryIDs, err := s.categorySnapshot(meta.CategoryIDs)
	if err != nil {
		return nil, err
	}

	key, err := s.files.Store(file, meta.Extension)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = "Untitled"
	}

	paper := &researchhub.Paper{
		Title:       title,
		Author:      meta.Author,
		Abstract:    strings.TrimSpace(meta.Abstract),
		Year:        sanitizeYear(meta.Year, now),
		FileKey:     key,
		UploaderID:  uploaderID,
		CategoryIDs: categoryIDs,
		Status:      researchhub.PaperPending,
		CreatedAt:   now,
	}
	if err := s.repository.Upsert(paper); err != nil {
		return nil, err
	}

	s.indexPaper(paper)

	err = s.notifier.CreateAdmin(
		researchhub.NotifPaperSubmitted,
		"New paper submitted",
		fmt.Sprintf("%q awaits review", paper.Title),
		paper.ID, researchhub.RelatedPaper,
	)
	if err != nil {
		s.logger.Errorf("could not notify admins about paper %d: %v", paper.ID, err)
	}

	return paper, nil
}

// A year outside 1900..now+1 is silently replaced by the current year.
func sanitizeYear(year int, now time.Time) int {
	if year < 1900 || year > now.Year()+1 {
		return now.Year()
	}
	return year
}

func (s *Service) Get(id int) (*researchhub.Paper, error) {
	papers, err := s.repository.Get(id)
	if err != nil {
		return nil, err
	}
	if len(papers) == 0 {
		return nil, errors.New(fmt.Sprintf("no paper for id %d", id), errors.NotFound())
	}
	return papers[0], nil
}

func (s *Service) IncrementViews(id int) (*researchhub.Paper, error) {
	paper, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	paper.ViewCount++
	if err := s.repository.Upsert(paper); err != nil {
		return nil, err
	}
	s.indexPaper(paper)
	return paper, nil
}

// AssignCategories replaces the paper's category snapshot.
func (s *Service) AssignCategories(paperID int, categoryIDs []int) (*researchhub.Paper, error) {
	paper, err := s.Get(paperID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.categorySnapshot(categoryIDs)
	if err != nil {
		return nil, err
	}

	paper.CategoryIDs = snapshot
	if err := s.repository.Upsert(paper); err != nil {
		return nil, err
	}
	s.indexPaper(paper)
	return paper, nil
}

// Delete removes a paper and everything hanging off it: comments,
// library rows, the index entry and the stored blob. Only the uploader
// or an admin can delete; anonymous uploads only an admin.
func (s *Service) Delete(paperID, callerID int, isAdmin bool) error {
	paper, err := s.Get(paperID)
	if err != nil {
		return err
	}

	if !isAdmin && (paper.UploaderID == 0 || paper.UploaderID != callerID) {
		return errors.New("not your paper", errors.Forbidden())
	}

	if err := s.comments.DeleteByPaper(paperID); err != nil {
		return err
	}
	if err := s.library.DeleteByPaper(paperID); err != nil {
		return err
	}
	if err := s.repository.Delete(paperID); err != nil {
		return err
	}

	if err := s.index.Delete(paperID); err != nil {
		s.logger.Errorf("could not remove paper %d from index: %v", paperID, err)
	}
	if paper.FileKey != "" {
		if err := s.files.Delete(paper.FileKey); err != nil {
			s.logger.Errorf("could not remove file %s: %v", paper.FileKey, err)
		}
	}
	return nil
}

func (s *Service) ByUploader(userID, viewerID int, offset, limit uint64) (Page, error) {
	papers, total, err := s.repository.ByUploader(userID, offset, limit)
	if err != nil {
		return Page{}, err
	}

	views, err := s.assemble(papers, viewerID)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Papers: views,
		Pagination: researchhub.Pagination{
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	}, nil
}

func (s *Service) CountByUploader(userID int) (uint64, error) {
	return s.repository.CountByUploader(userID)
}

// categorySnapshot validates the ids against the catalog and returns a
// materialized copy, never the caller's slice.
func (s *Service) categorySnapshot(categoryIDs []int) ([]int, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	snapshot := make([]int, 0, len(categoryIDs))
	seen := make(map[int]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		if _, err := s.categories.Get(id); err != nil {
			if errors.IsNotFound(err) {
				return nil, errors.New(fmt.Sprintf("unknown category %d", id), errors.BadRequest())
			}
			return nil, err
		}
		snapshot = append(snapshot, id)
	}
	return snapshot, nil
}

func (s *Service) indexPaper(paper *researchhub.Paper) {
	if err := s.index.Index(paper); err != nil {
		s.logger.Errorf("could not index paper %d: %v", paper.ID, err)
	}
}
