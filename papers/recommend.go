package papers

import (
	"github.com/researchhub/researchhub"
)

// Recommend selects papers matching the user's declared interests.
// Recommendation is best-effort: empty or unknown interests, and any
// internal failure, degrade to the newest-first listing instead of
// surfacing an error.
func (s *Service) Recommend(userID int, offset, limit uint64) (Page, error) {
	page, err := s.recommend(userID, offset, limit)
	if err != nil {
		s.logger.Errorf("recommendation failed for user %d, falling back: %v", userID, err)
		return s.newestFirst(userID, offset, limit)
	}
	return page, nil
}

func (s *Service) recommend(userID int, offset, limit uint64) (Page, error) {
	profile, err := s.profiles.Get(userID)
	if err != nil || profile == nil || len(profile.InterestIDs) == 0 {
		return s.newestFirst(userID, offset, limit)
	}

	papers, total, err := s.repository.ByCategories(profile.InterestIDs, offset, limit)
	if err != nil {
		return Page{}, err
	}

	views, err := s.assemble(papers, userID)
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

// Trending orders by view count, newest upload breaking ties.
func (s *Service) Trending(viewerID int, offset, limit uint64) (Page, error) {
	papers, total, err := s.repository.MostViewed(offset, limit)
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
