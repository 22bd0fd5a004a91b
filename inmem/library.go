package inmem

import (
	"sort"
	"sync"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
)

type LibraryRepository struct {
	mu    sync.Locker
	items []researchhub.LibraryItem
	maxID int
}

func NewLibraryRepository() *LibraryRepository {
	return &LibraryRepository{
		mu:    &sync.Mutex{},
		items: make([]researchhub.LibraryItem, 0),
	}
}

func (r *LibraryRepository) Find(userID, paperID int) (*researchhub.LibraryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.UserID == userID && item.PaperID == paperID {
			i := item
			return &i, nil
		}
	}
	return nil, nil
}

func (r *LibraryRepository) Exists(userID, paperID int) (bool, error) {
	item, err := r.Find(userID, paperID)
	return item != nil, err
}

func (r *LibraryRepository) Insert(item *researchhub.LibraryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.UserID == item.UserID && existing.PaperID == item.PaperID {
			return errors.New("paper already in library", errors.Conflict())
		}
	}

	if item.ID == 0 {
		r.maxID++
		item.ID = r.maxID
	} else if item.ID > r.maxID {
		r.maxID = item.ID
	}

	r.items = append(r.items, *item)
	return nil
}

func (r *LibraryRepository) Delete(userID, paperID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.UserID == userID && item.PaperID == paperID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *LibraryRepository) ByUser(userID int, offset, limit uint64) ([]*researchhub.LibraryItem, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]*researchhub.LibraryItem, 0)
	for i := range r.items {
		if r.items[i].UserID == userID {
			item := r.items[i]
			items = append(items, &item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})

	total := uint64(len(items))
	if offset >= total {
		return nil, total, nil
	}
	items = items[offset:]
	if limit > 0 && uint64(len(items)) > limit {
		items = items[:limit]
	}
	return items, total, nil
}

func (r *LibraryRepository) DeleteByPaper(paperID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, item := range r.items {
		if item.PaperID != paperID {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}
