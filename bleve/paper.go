package bleve

import (
	"strconv"
	"strings"
	"time"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/analysis/token/lowercase"
	"github.com/blevesearch/bleve/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search/query"

	"github.com/researchhub/researchhub"
)

const lowercaseKeyword = "lowercase_keyword"

type PaperIndex struct {
	index bleve.Index
}

// Open opens the index at path, creating it with the paper mapping when
// it does not exist yet.
func (s *PaperIndex) Open(path string) error {
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		m, merr := PaperMapping()
		if merr != nil {
			return merr
		}
		index, err = bleve.New(path, m)
	}
	if err != nil {
		return err
	}

	s.index = index
	return nil
}

func (s *PaperIndex) Close() error {
	if s.index == nil {
		return nil
	}

	return s.index.Close()
}

// PaperMapping defines the index mapping for papers. The text fields
// are indexed as single lowercased terms so substring matching can be
// done with wildcard queries; the exact-match fields are raw keywords.
func PaperMapping() (mapping.IndexMapping, error) {
	m := bleve.NewIndexMapping()
	err := m.AddCustomAnalyzer(lowercaseKeyword, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     single.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}

	text := func(analyzer string) *mapping.FieldMapping {
		field := bleve.NewTextFieldMapping()
		field.Analyzer = analyzer
		return field
	}

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("title", text(lowercaseKeyword))
	doc.AddFieldMappingsAt("abstract", text(lowercaseKeyword))
	doc.AddFieldMappingsAt("author", text(lowercaseKeyword))
	doc.AddFieldMappingsAt("categories", text(keyword.Name))
	doc.AddFieldMappingsAt("year", text(keyword.Name))
	doc.AddFieldMappingsAt("status", text(keyword.Name))
	doc.AddFieldMappingsAt("createdAt", bleve.NewNumericFieldMapping())
	doc.AddFieldMappingsAt("viewCount", bleve.NewNumericFieldMapping())

	m.DefaultMapping = doc
	return m, nil
}

func (s *PaperIndex) Index(paper *researchhub.Paper) error {
	categories := make([]string, len(paper.CategoryIDs))
	for i, id := range paper.CategoryIDs {
		categories[i] = strconv.Itoa(id)
	}

	data := map[string]interface{}{
		"title":      paper.Title,
		"abstract":   paper.Abstract,
		"author":     paper.Author,
		"categories": categories,
		"year":       strconv.Itoa(paper.Year),
		"status":     string(paper.Status),
		"createdAt":  float64(paper.CreatedAt.UnixNano() / int64(time.Millisecond)),
		"viewCount":  float64(paper.ViewCount),
	}

	return s.index.Index(strconv.Itoa(paper.ID), data)
}

func (s *PaperIndex) Delete(id int) error {
	return s.index.Delete(strconv.Itoa(id))
}

func (s *PaperIndex) Search(search researchhub.SearchParams) (researchhub.SearchResults, error) {
	q := andQ(
		query.NewMatchAllQuery(),
		searchTitleOrAbstract(search.Q),
		searchAuthor(search.Author),
		categoriesQuery(search.CategoryIDs),
		yearQuery(search.Year),
		statusQuery(search.Statuses),
	)

	searchRequest := bleve.NewSearchRequest(q)
	if search.OrderBy == "-viewCount" {
		searchRequest.SortBy([]string{"-viewCount", "-createdAt", "-_id"})
	} else {
		searchRequest.SortBy([]string{"-createdAt", "-_id"})
	}

	if search.Limit > 0 {
		searchRequest.Size = int(search.Limit)
	}
	searchRequest.From = int(search.Offset)

	searchResults, err := s.index.Search(searchRequest)
	if err != nil {
		return researchhub.SearchResults{}, err
	}

	ids := make([]int, len(searchResults.Hits))
	for i, hit := range searchResults.Hits {
		ids[i], err = strconv.Atoi(hit.ID)
		if err != nil {
			return researchhub.SearchResults{}, err
		}
	}

	return researchhub.SearchResults{
		IDs: ids,
		Pagination: researchhub.Pagination{
			Total:  searchResults.Total,
			Limit:  search.Limit,
			Offset: search.Offset,
		},
	}, nil
}

func andQ(qs ...query.Query) query.Query {
	ands := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ands = append(ands, q)
		}
	}

	if len(ands) == 0 {
		return nil
	}
	return query.NewConjunctionQuery(ands)
}

func orQ(qs ...query.Query) query.Query {
	ors := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ors = append(ors, q)
		}
	}

	if len(ors) == 0 {
		return nil
	}
	return query.NewDisjunctionQuery(ors)
}

// Every word of the query has to appear in the title or the abstract.
func searchTitleOrAbstract(queryString string) query.Query {
	words := strings.Fields(queryString)

	ands := make([]query.Query, 0, len(words))
	for _, word := range words {
		ands = append(ands, orQ(
			substringQuery(word, "title"),
			substringQuery(word, "abstract"),
		))
	}

	return andQ(ands...)
}

func searchAuthor(queryString string) query.Query {
	words := strings.Fields(queryString)

	ands := make([]query.Query, 0, len(words))
	for _, word := range words {
		ands = append(ands, substringQuery(word, "author"))
	}

	return andQ(ands...)
}

func substringQuery(word, field string) query.Query {
	q := query.NewWildcardQuery("*" + strings.ToLower(word) + "*")
	q.SetField(field)
	return q
}

// A paper matches when it carries any of the given categories.
func categoriesQuery(ids []int) query.Query {
	if len(ids) == 0 {
		return nil
	}

	ors := make([]query.Query, len(ids))
	for i, id := range ids {
		ors[i] = &query.TermQuery{
			Term:     strconv.Itoa(id),
			FieldVal: "categories",
		}
	}

	return orQ(ors...)
}

func yearQuery(year int) query.Query {
	if year == 0 {
		return nil
	}

	return &query.TermQuery{
		Term:     strconv.Itoa(year),
		FieldVal: "year",
	}
}

func statusQuery(statuses []researchhub.PaperStatus) query.Query {
	if len(statuses) == 0 {
		return nil
	}

	ors := make([]query.Query, len(statuses))
	for i, status := range statuses {
		ors[i] = &query.TermQuery{
			Term:     string(status),
			FieldVal: "status",
		}
	}

	return orQ(ors...)
}
