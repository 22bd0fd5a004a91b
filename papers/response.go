package papers

import (
	"strings"

	"github.com/researchhub/researchhub"
)

const snippetLength = 200

// View is the presentation shape of a paper: the entity joined with its
// categories and the uploader's public identity.
type View struct {
	ID        int                      `json:"id"`
	Title     string                   `json:"title"`
	Author    string                   `json:"author"`
	Snippet   string                   `json:"snippet"`
	Year      int                      `json:"year"`
	Status    researchhub.PaperStatus  `json:"status"`
	ViewCount int                      `json:"viewCount"`
	FileKey   string                   `json:"fileKey"`
	CreatedAt string                   `json:"createdAt"`
	Categories []*researchhub.Category `json:"categories"`

	UploaderName  string `json:"uploaderName,omitempty"`
	UploaderEmail string `json:"uploaderEmail,omitempty"`
	CanEdit       bool   `json:"canEdit"`
}

type Page struct {
	Papers     []View                 `json:"papers"`
	Pagination researchhub.Pagination `json:"pagination"`
}

// assemble converts papers to views with batched lookups: one users
// fetch, one profiles fetch and one categories fetch for the whole
// list, never a query per item.
func (s *Service) assemble(papers []*researchhub.Paper, viewerID int) ([]View, error) {
	uploaderIDs := make([]int, 0, len(papers))
	seenUploader := make(map[int]bool)
	categoryIDs := make([]int, 0)
	seenCategory := make(map[int]bool)
	for _, paper := range papers {
		if paper.UploaderID != 0 && !seenUploader[paper.UploaderID] {
			seenUploader[paper.UploaderID] = true
			uploaderIDs = append(uploaderIDs, paper.UploaderID)
		}
		for _, id := range paper.CategoryIDs {
			if !seenCategory[id] {
				seenCategory[id] = true
				categoryIDs = append(categoryIDs, id)
			}
		}
	}

	uploaders, err := s.users.GetMany(uploaderIDs)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.GetMany(uploaderIDs)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.GetMany(categoryIDs)
	if err != nil {
		return nil, err
	}
	categoriesByID := make(map[int]*researchhub.Category, len(categories))
	for _, category := range categories {
		categoriesByID[category.ID] = category
	}

	views := make([]View, len(papers))
	for i, paper := range papers {
		view := View{
			ID:         paper.ID,
			Title:      paper.Title,
			Author:     paper.Author,
			Snippet:    snippet(paper.Abstract),
			Year:       paper.Year,
			Status:     paper.Status,
			ViewCount:  paper.ViewCount,
			FileKey:    paper.FileKey,
			CreatedAt:  paper.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			Categories: make([]*researchhub.Category, 0, len(paper.CategoryIDs)),
		}
		for _, id := range paper.CategoryIDs {
			if category, ok := categoriesByID[id]; ok {
				view.Categories = append(view.Categories, category)
			}
		}

		if uploader, ok := uploaders[paper.UploaderID]; ok {
			view.UploaderName = displayName(uploader, profiles[paper.UploaderID])
			view.UploaderEmail = maskEmail(uploader.Email)
			view.CanEdit = viewerID != 0 && viewerID == paper.UploaderID
		}

		views[i] = view
	}
	return views, nil
}

// Views hydrates papers by id and assembles them for display. The
// order of ids is preserved; ids with no paper behind them are
// silently dropped.
func (s *Service) Views(ids []int, viewerID int) ([]View, error) {
	if len(ids) == 0 {
		return []View{}, nil
	}

	papers, err := s.repository.Get(ids...)
	if err != nil {
		return nil, err
	}
	return s.assemble(papers, viewerID)
}

func (s *Service) view(paper *researchhub.Paper, viewerID int) (View, error) {
	views, err := s.assemble([]*researchhub.Paper{paper}, viewerID)
	if err != nil {
		return View{}, err
	}
	return views[0], nil
}

// snippet truncates an abstract to its first 200 characters, with an
// ellipsis when something was cut.
func snippet(abstract string) string {
	runes := []rune(abstract)
	if len(runes) <= snippetLength {
		return abstract
	}
	return string(runes[:snippetLength]) + "..."
}

// displayName prefers the profile full name and falls back to the
// local part of the email.
func displayName(user *researchhub.User, profile *researchhub.Profile) string {
	if profile != nil && strings.TrimSpace(profile.FullName) != "" {
		return profile.FullName
	}
	if i := strings.Index(user.Email, "@"); i > 0 {
		return user.Email[:i]
	}
	return user.Email
}

// maskEmail hides the local part: "alice@x.com" becomes "a***e@x.com",
// "ab@x.com" becomes "a*@x.com".
func maskEmail(email string) string {
	i := strings.Index(email, "@")
	if i <= 0 {
		return email
	}

	local, domain := email[:i], email[i:]
	if len(local) <= 2 {
		return local[:1] + "*" + domain
	}
	return local[:1] + "***" + local[len(local)-1:] + domain
}
