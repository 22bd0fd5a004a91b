package bleve

import (
	"io/ioutil"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/blevesearch/bleve"

	"github.com/researchhub/researchhub"
)

func createIndex(t *testing.T) (*PaperIndex, func()) {
	dir, err := ioutil.TempDir("", "")
	if err != nil {
		t.Fatal("could not create tmp dir:", err)
	}

	m, err := PaperMapping()
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal("error building mapping", err)
	}

	index, err := bleve.New(dir, m)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal("error creating index", err)
	}

	return &PaperIndex{index: index}, func() {
		if err := index.Close(); err != nil {
			t.Log(err)
		}
		if err := os.RemoveAll(dir); err != nil {
			t.Log(err)
		}
	}
}

func TestSearch(t *testing.T) {
	index, f := createIndex(t)
	defer f()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	papers := []*researchhub.Paper{
		&researchhub.Paper{
			ID: 1, Title: "Deep learning for vision", Author: "Alice Chen",
			Year: 2020, CategoryIDs: []int{1}, ViewCount: 5,
			Status: researchhub.PaperApproved, CreatedAt: base.Add(1 * time.Minute),
		},
		&researchhub.Paper{
			ID: 2, Title: "Reinforcement learning agents", Author: "Bob Diaz",
			Year: 2021, CategoryIDs: []int{1, 2}, ViewCount: 50,
			Status: researchhub.PaperApproved, CreatedAt: base.Add(2 * time.Minute),
		},
		&researchhub.Paper{
			ID: 3, Title: "Graph databases survey", Author: "Carol Evans",
			Year: 2021, CategoryIDs: []int{2}, ViewCount: 10,
			Status: researchhub.PaperApproved, CreatedAt: base.Add(3 * time.Minute),
		},
		&researchhub.Paper{
			ID: 4, Title: "Quantum computing primer", Author: "Alice Chen",
			Year: 2022, CategoryIDs: []int{3}, ViewCount: 2,
			Status: researchhub.PaperPending, CreatedAt: base.Add(4 * time.Minute),
		},
		&researchhub.Paper{
			ID: 5, Title: "Learning quantum systems", Author: "Dan Fox",
			Year: 2022, CategoryIDs: []int{1, 3}, ViewCount: 30,
			Status: researchhub.PaperApproved, CreatedAt: base.Add(5 * time.Minute),
		},
	}
	for _, paper := range papers {
		if err := index.Index(paper); err != nil {
			t.Fatal("error indexing", paper.ID, err)
		}
	}

	approved := []researchhub.PaperStatus{researchhub.PaperApproved}

	var tts = map[string]struct {
		Search   researchhub.SearchParams
		Expected researchhub.SearchResults
	}{
		"match all newest first": {
			Search: researchhub.SearchParams{
				Statuses: approved,
				Limit:    10,
			},
			Expected: researchhub.SearchResults{
				IDs: []int{5, 3, 2, 1},
				Pagination: researchhub.Pagination{
					Total: 4,
					Limit: 10,
				},
			},
		},
		"one word": {
			Search: researchhub.SearchParams{
				Q:        "learning",
				Statuses: approved,
				Limit:    10,
			},
			Expected: researchhub.SearchResults{
				IDs: []int{5, 2, 1},
				Pagination: researchhub.Pagination{
					Total: 3,
					Limit: 10,
				},
			},
		},
		"partial word": {
			Search: researchhub.SearchParams{
				Q:        "quant",
				Statuses: approved,
				Limit:    10,
			},
			Expected: researchhub.SearchResults{
				IDs: []int{5},
				Pagination: researchhub.Pagination{
					Total: 1,
					Limit: 10,
				},
			},
		},
		"by author": {
			Search: researchhub.SearchParams{
				Author:   "alice",
				Statuses: approved,
				Limit:    10,
			},
			Expected: researchhub.SearchResults{
				IDs: []int{1},
				Pagination: researchhub.Pagination{
					Total: 1,
					Limit: 10,
				},
			},
		},
		"by category": {
			Search: researchhub.SearchParams{
				CategoryIDs: []int{2},
				Statuses:    approved,
				Limit:       10,
			},
			Expected: researchhub.SearchResults{
				IDs: []int{3, 2},
				Pagination: researchhub.Pagination{
					Total: 2,
					Limit: 10,
				},
			},
		},
		"by year": {
			Search: researchhub.SearchParams{
				Year:     2021,
				Statuses: approved,
				Limit:    10,
			},
			Expected: researchhub.SearchResults{
				IDs: []int{3, 2},
				Pagination: researchhub.Pagination{
					Total: 2,
					Limit: 10,
				},
			},
		},
		"conjunctive filters": {
			Search: researchhub.SearchParams{
				Q:           "learning",
				CategoryIDs: []int{1},
				Year:        2021,
				Statuses:    approved,
				Limit:       10,
			},
			Expected: researchhub.SearchResults{
				IDs: []int{2},
				Pagination: researchhub.Pagination{
					Total: 1,
					Limit: 10,
				},
			},
		},
		"most viewed order": {
			Search: researchhub.SearchParams{
				Statuses: approved,
				OrderBy:  "-viewCount",
				Limit:    10,
			},
			Expected: researchhub.SearchResults{
				IDs: []int{2, 5, 3, 1},
				Pagination: researchhub.Pagination{
					Total: 4,
					Limit: 10,
				},
			},
		},
		"pending only": {
			Search: researchhub.SearchParams{
				Statuses: []researchhub.PaperStatus{researchhub.PaperPending},
				Limit:    10,
			},
			Expected: researchhub.SearchResults{
				IDs: []int{4},
				Pagination: researchhub.Pagination{
					Total: 1,
					Limit: 10,
				},
			},
		},
		"no match": {
			Search: researchhub.SearchParams{
				Q:        "astrophysics",
				Statuses: approved,
				Limit:    10,
			},
			Expected: researchhub.SearchResults{
				IDs:        []int{},
				Pagination: researchhub.Pagination{Limit: 10},
			},
		},
		"paging": {
			Search: researchhub.SearchParams{
				Statuses: approved,
				Limit:    2,
				Offset:   1,
			},
			Expected: researchhub.SearchResults{
				IDs: []int{3, 2},
				Pagination: researchhub.Pagination{
					Total:  4,
					Limit:  2,
					Offset: 1,
				},
			},
		},
	}

	for name, tt := range tts {
		res, err := index.Search(tt.Search)
		if err != nil {
			t.Errorf("%s - search failed: %v", name, err)
			continue
		}
		if !reflect.DeepEqual(tt.Expected, res) {
			t.Errorf("%s - expected %+v got %+v", name, tt.Expected, res)
		}
	}
}

func TestDelete(t *testing.T) {
	index, f := createIndex(t)
	defer f()

	paper := &researchhub.Paper{
		ID: 1, Title: "Deep learning for vision",
		Status: researchhub.PaperApproved, CreatedAt: time.Now(),
	}
	if err := index.Index(paper); err != nil {
		t.Fatal("error indexing", err)
	}
	if err := index.Delete(paper.ID); err != nil {
		t.Fatal("error deleting", err)
	}

	res, err := index.Search(researchhub.SearchParams{Q: "learning", Limit: 10})
	if err != nil {
		t.Fatal("search failed:", err)
	}
	if len(res.IDs) != 0 {
		t.Errorf("expected no hits, got %v", res.IDs)
	}
}
