package inmem

import (
	"sort"
	"strings"
	"sync"

	"github.com/researchhub/researchhub"
)

type PaperRepository struct {
	mu     sync.Locker
	papers []researchhub.Paper
	maxID  int
}

func NewPaperRepository() *PaperRepository {
	return &PaperRepository{
		mu:     &sync.Mutex{},
		papers: make([]researchhub.Paper, 0),
	}
}

func (r *PaperRepository) Get(ids ...int) ([]*researchhub.Paper, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	papers := make([]*researchhub.Paper, 0, len(ids))
	for _, id := range ids {
		for _, paper := range r.papers {
			if paper.ID == id {
				p := paper
				papers = append(papers, &p)
				break
			}
		}
	}
	return papers, nil
}

func (r *PaperRepository) Upsert(paper *researchhub.Paper) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if paper.ID == 0 {
		r.maxID++
		paper.ID = r.maxID
	} else if paper.ID > r.maxID {
		r.maxID = paper.ID
	}

	for i, p := range r.papers {
		if p.ID == paper.ID {
			r.papers[i] = *paper
			return nil
		}
	}
	r.papers = append(r.papers, *paper)
	return nil
}

func (r *PaperRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, paper := range r.papers {
		if paper.ID == id {
			r.papers = append(r.papers[:i], r.papers[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *PaperRepository) ByStatus(status researchhub.PaperStatus, offset, limit uint64) ([]*researchhub.Paper, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return page(r.filter(func(p researchhub.Paper) bool {
		return p.Status == status
	}), offset, limit)
}

func (r *PaperRepository) ByCategories(categoryIDs []int, offset, limit uint64) ([]*researchhub.Paper, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return page(r.filter(func(p researchhub.Paper) bool {
		if p.Status != researchhub.PaperApproved {
			return false
		}
		for _, want := range categoryIDs {
			for _, id := range p.CategoryIDs {
				if id == want {
					return true
				}
			}
		}
		return false
	}), offset, limit)
}

func (r *PaperRepository) NewestFirst(offset, limit uint64) ([]*researchhub.Paper, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return page(r.filter(func(p researchhub.Paper) bool {
		return p.Status == researchhub.PaperApproved
	}), offset, limit)
}

func (r *PaperRepository) MostViewed(offset, limit uint64) ([]*researchhub.Paper, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	papers := r.filter(func(p researchhub.Paper) bool {
		return p.Status == researchhub.PaperApproved
	})
	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].ViewCount > papers[j].ViewCount
	})
	return page(papers, offset, limit)
}

func (r *PaperRepository) ByUploader(userID int, offset, limit uint64) ([]*researchhub.Paper, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return page(r.filter(func(p researchhub.Paper) bool {
		return p.UploaderID == userID
	}), offset, limit)
}

func (r *PaperRepository) CountByUploader(userID int) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return uint64(len(r.filter(func(p researchhub.Paper) bool {
		return p.UploaderID == userID
	}))), nil
}

func (r *PaperRepository) Count() (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return uint64(len(r.papers)), nil
}

func (r *PaperRepository) CountByStatus(status researchhub.PaperStatus) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return uint64(len(r.filter(func(p researchhub.Paper) bool {
		return p.Status == status
	}))), nil
}

// filter returns matching papers ordered newest first, id breaking ties.
func (r *PaperRepository) filter(keep func(researchhub.Paper) bool) []*researchhub.Paper {
	papers := make([]*researchhub.Paper, 0)
	for i := range r.papers {
		if keep(r.papers[i]) {
			p := r.papers[i]
			papers = append(papers, &p)
		}
	}
	sort.Slice(papers, func(i, j int) bool {
		if !papers[i].CreatedAt.Equal(papers[j].CreatedAt) {
			return papers[i].CreatedAt.After(papers[j].CreatedAt)
		}
		return papers[i].ID > papers[j].ID
	})
	return papers
}

func page(papers []*researchhub.Paper, offset, limit uint64) ([]*researchhub.Paper, uint64, error) {
	total := uint64(len(papers))
	if offset >= total {
		return nil, total, nil
	}
	papers = papers[offset:]
	if limit > 0 && uint64(len(papers)) > limit {
		papers = papers[:limit]
	}
	return papers, total, nil
}

// PaperIndex is a naive scan over indexed papers, good enough to stand
// in for the real index in service tests.
type PaperIndex struct {
	mu     sync.Locker
	papers map[int]researchhub.Paper
}

func NewPaperIndex() *PaperIndex {
	return &PaperIndex{
		mu:     &sync.Mutex{},
		papers: make(map[int]researchhub.Paper),
	}
}

func (s *PaperIndex) Index(paper *researchhub.Paper) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.papers[paper.ID] = *paper
	return nil
}

func (s *PaperIndex) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.papers, id)
	return nil
}

func (s *PaperIndex) Search(search researchhub.SearchParams) (researchhub.SearchResults, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]researchhub.Paper, 0)
	for _, paper := range s.papers {
		if matchesSearch(paper, search) {
			matches = append(matches, paper)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if search.OrderBy == "-viewCount" && matches[i].ViewCount != matches[j].ViewCount {
			return matches[i].ViewCount > matches[j].ViewCount
		}
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID > matches[j].ID
	})

	total := uint64(len(matches))
	if search.Offset < total {
		matches = matches[search.Offset:]
	} else {
		matches = nil
	}
	if search.Limit > 0 && uint64(len(matches)) > search.Limit {
		matches = matches[:search.Limit]
	}

	ids := make([]int, len(matches))
	for i, paper := range matches {
		ids[i] = paper.ID
	}

	return researchhub.SearchResults{
		IDs: ids,
		Pagination: researchhub.Pagination{
			Total:  total,
			Limit:  search.Limit,
			Offset: search.Offset,
		},
	}, nil
}

func matchesSearch(paper researchhub.Paper, search researchhub.SearchParams) bool {
	if search.Q != "" {
		text := strings.ToLower(paper.Title + " " + paper.Abstract)
		for _, word := range strings.Fields(strings.ToLower(search.Q)) {
			if !strings.Contains(text, word) {
				return false
			}
		}
	}
	if search.Author != "" && !strings.Contains(strings.ToLower(paper.Author), strings.ToLower(search.Author)) {
		return false
	}
	if search.Year != 0 && paper.Year != search.Year {
		return false
	}
	if len(search.CategoryIDs) > 0 {
		found := false
		for _, want := range search.CategoryIDs {
			for _, id := range paper.CategoryIDs {
				if id == want {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	if len(search.Statuses) > 0 {
		found := false
		for _, status := range search.Statuses {
			if paper.Status == status {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}
