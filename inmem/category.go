package inmem

import (
	"sort"
	"sync"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
)

type CategoryRepository struct {
	mu         sync.Locker
	categories []researchhub.Category
	maxID      int
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{
		mu:         &sync.Mutex{},
		categories: make([]researchhub.Category, 0),
	}
}

func (r *CategoryRepository) Get(id int) (*researchhub.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, category := range r.categories {
		if category.ID == id {
			c := category
			return &c, nil
		}
	}
	return nil, errors.New("category not found", errors.NotFound())
}

func (r *CategoryRepository) GetByName(name string) (*researchhub.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, category := range r.categories {
		if category.Name == name {
			c := category
			return &c, nil
		}
	}
	return nil, errors.New("category not found", errors.NotFound())
}

func (r *CategoryRepository) GetMany(ids []int) ([]*researchhub.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories := make([]*researchhub.Category, 0, len(ids))
	for _, id := range ids {
		for _, category := range r.categories {
			if category.ID == id {
				c := category
				categories = append(categories, &c)
				break
			}
		}
	}
	return categories, nil
}

func (r *CategoryRepository) List() ([]*researchhub.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories := make([]*researchhub.Category, len(r.categories))
	for i := range r.categories {
		c := r.categories[i]
		categories[i] = &c
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (r *CategoryRepository) Insert(category *researchhub.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Name == category.Name {
			return errors.New("category already exists", errors.Conflict())
		}
	}

	if category.ID == 0 {
		r.maxID++
		category.ID = r.maxID
	} else if category.ID > r.maxID {
		r.maxID = category.ID
	}

	r.categories = append(r.categories, *category)
	return nil
}
