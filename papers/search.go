package papers

import (
	"github.com/researchhub/researchhub"
)

// Search runs a filtered paper query. A request with no criteria at
// all is served straight from the repository's newest-first listing:
// it is the canonical "all papers" path and must stay identical to the
// recommendation fallback, so it never goes through the index.
func (s *Service) Search(params researchhub.SearchParams, viewerID int) (Page, error) {
	if !params.HasFilters() {
		return s.newestFirst(viewerID, params.Offset, params.Limit)
	}

	// Public search only ever surfaces approved papers.
	params.Statuses = []researchhub.PaperStatus{researchhub.PaperApproved}

	results, err := s.index.Search(params)
	if err != nil {
		return Page{}, err
	}

	papers, err := s.repository.Get(results.IDs...)
	if err != nil {
		return Page{}, err
	}

	views, err := s.assemble(papers, viewerID)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Papers:     views,
		Pagination: results.Pagination,
	}, nil
}

func (s *Service) newestFirst(viewerID int, offset, limit uint64) (Page, error) {
	papers, total, err := s.repository.NewestFirst(offset, limit)
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
