package library

import (
	"fmt"
	"time"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/log"
	"github.com/researchhub/researchhub/papers"
)

// PaperViewer assembles display views for papers, preserving id order.
type PaperViewer interface {
	Views(ids []int, viewerID int) ([]papers.View, error)
}

type Service struct {
	repository researchhub.LibraryRepository
	papers     researchhub.PaperRepository
	viewer     PaperViewer
	logger     log.Logger
}

func NewService(repository researchhub.LibraryRepository, paperRepo researchhub.PaperRepository, viewer PaperViewer, logger log.Logger) *Service {
	return &Service{
		repository: repository,
		papers:     paperRepo,
		viewer:     viewer,
		logger:     logger,
	}
}

// Entry is a bookmarked paper joined with the moment it was saved.
type Entry struct {
	Paper   papers.View `json:"paper"`
	AddedAt string      `json:"addedAt"`
}

type Page struct {
	Items      []Entry                `json:"items"`
	Pagination researchhub.Pagination `json:"pagination"`
}

// Add bookmarks a paper. Adding a paper that is already in the library
// is not an error: the existing row comes back with created false, and
// no duplicate is written.
func (s *Service) Add(userID, paperID int) (*researchhub.LibraryItem, bool, error) {
	found, err := s.papers.Get(paperID)
	if err != nil {
		return nil, false, err
	}
	if len(found) == 0 {
		return nil, false, errors.New(fmt.Sprintf("no paper for id %d", paperID), errors.NotFound())
	}

	existing, err := s.repository.Find(userID, paperID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	item := researchhub.LibraryItem{
		UserID:    userID,
		PaperID:   paperID,
		CreatedAt: time.Now(),
	}
	err = s.repository.Insert(&item)
	if errors.IsConflict(err) {
		// A concurrent Add won the race. The row it wrote is the answer.
		existing, err = s.repository.Find(userID, paperID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
		return nil, false, errors.New(fmt.Sprintf("library row vanished for user %d paper %d", userID, paperID))
	}
	if err != nil {
		return nil, false, err
	}
	return &item, true, nil
}

// Remove deletes a bookmark. Removing a paper that is not in the
// library is a no-op.
func (s *Service) Remove(userID, paperID int) error {
	return s.repository.Delete(userID, paperID)
}

func (s *Service) Contains(userID, paperID int) (bool, error) {
	return s.repository.Exists(userID, paperID)
}

// List returns the user's bookmarks, most recently saved first, each
// joined with the paper's display view.
func (s *Service) List(userID int, offset, limit uint64) (Page, error) {
	items, total, err := s.repository.ByUser(userID, offset, limit)
	if err != nil {
		return Page{}, err
	}

	ids := make([]int, len(items))
	for i, item := range items {
		ids[i] = item.PaperID
	}
	views, err := s.viewer.Views(ids, userID)
	if err != nil {
		return Page{}, err
	}
	viewsByID := make(map[int]papers.View, len(views))
	for _, view := range views {
		viewsByID[view.ID] = view
	}

	// Bookmarks whose paper was deleted but not yet cascaded out of the
	// library are skipped. Total stays the raw bookmark count, so it can
	// briefly exceed len(Items) until the cascade catches up.
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		view, ok := viewsByID[item.PaperID]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Paper:   view,
			AddedAt: item.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return Page{
		Items: entries,
		Pagination: researchhub.Pagination{
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	}, nil
}
