package papers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchhub/researchhub"
)

func titles(page Page) []string {
	names := make([]string, len(page.Papers))
	for i, view := range page.Papers {
		names[i] = view.Title
	}
	return names
}

func TestSearch(t *testing.T) {
	f := createFixture(t)
	ml := f.addCategory(t, "Machine Learning")
	cv := f.addCategory(t, "Computer Vision")

	now := time.Now()
	f.addApprovedPaper(t, "oldest", 0, now.Add(-3*time.Hour), ml.ID)
	f.addApprovedPaper(t, "middle", 0, now.Add(-2*time.Hour), cv.ID)
	f.addApprovedPaper(t, "newest", 0, now.Add(-time.Hour), ml.ID, cv.ID)

	// No criteria: the repository listing, newest first.
	page, err := f.service.Search(researchhub.SearchParams{Limit: 10}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"newest", "middle", "oldest"}, titles(page))
	assert.Equal(t, uint64(3), page.Pagination.Total)

	// With criteria: the index answers, hydrated in ranked order.
	page, err = f.service.Search(researchhub.SearchParams{CategoryIDs: []int{cv.ID}, Limit: 10}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"newest", "middle"}, titles(page))

	page, err = f.service.Search(researchhub.SearchParams{Q: "ddl", Limit: 10}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"middle"}, titles(page))
}

func TestSearch_pendingNeverListed(t *testing.T) {
	f := createFixture(t)
	category := f.addCategory(t, "Machine Learning")
	f.addApprovedPaper(t, "approved", 0, time.Now(), category.ID)

	pending := researchhub.Paper{
		Title:       "pending",
		CategoryIDs: []int{category.ID},
		Status:      researchhub.PaperPending,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, f.papers.Upsert(&pending))
	require.NoError(t, f.index.Index(&pending))

	page, err := f.service.Search(researchhub.SearchParams{CategoryIDs: []int{category.ID}, Limit: 10}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"approved"}, titles(page))
}

func TestRecommend(t *testing.T) {
	f := createFixture(t)
	user := f.addUser(t, "ada", "ada@research.hub", false)
	ml := f.addCategory(t, "Machine Learning")
	cv := f.addCategory(t, "Computer Vision")

	now := time.Now()
	f.addApprovedPaper(t, "vision", 0, now.Add(-3*time.Hour), cv.ID)
	f.addApprovedPaper(t, "learning", 0, now.Add(-2*time.Hour), ml.ID)
	f.addApprovedPaper(t, "uncategorized", 0, now.Add(-time.Hour))

	// Declared interests drive the selection.
	require.NoError(t, f.profiles.Upsert(&researchhub.Profile{UserID: user.ID, InterestIDs: []int{ml.ID}}))
	page, err := f.service.Recommend(user.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"learning"}, titles(page))
}

func TestRecommend_multiInterestPaperCountsOnce(t *testing.T) {
	f := createFixture(t)
	user := f.addUser(t, "ada", "ada@research.hub", false)
	ml := f.addCategory(t, "Machine Learning")
	cv := f.addCategory(t, "Computer Vision")

	now := time.Now()
	f.addApprovedPaper(t, "both", 0, now.Add(-2*time.Hour), ml.ID, cv.ID)
	f.addApprovedPaper(t, "vision only", 0, now.Add(-time.Hour), cv.ID)

	// A paper matching several interests is one paper, not one row per
	// matching category.
	require.NoError(t, f.profiles.Upsert(&researchhub.Profile{UserID: user.ID, InterestIDs: []int{ml.ID, cv.ID}}))
	page, err := f.service.Recommend(user.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"vision only", "both"}, titles(page))
	assert.Equal(t, uint64(2), page.Pagination.Total)
}

func TestRecommend_fallsBackToNewestFirst(t *testing.T) {
	f := createFixture(t)
	user := f.addUser(t, "ada", "ada@research.hub", false)

	now := time.Now()
	f.addApprovedPaper(t, "oldest", 0, now.Add(-2*time.Hour))
	f.addApprovedPaper(t, "newest", 0, now.Add(-time.Hour))

	// No profile at all.
	page, err := f.service.Recommend(user.ID, 0, 10)
	require.NoError(t, err)

	listing, err := f.service.Search(researchhub.SearchParams{Limit: 10}, user.ID)
	require.NoError(t, err)
	assert.Equal(t, titles(listing), titles(page), "fallback must match the unfiltered listing")

	// Empty interests degrade the same way.
	require.NoError(t, f.profiles.Upsert(&researchhub.Profile{UserID: user.ID}))
	page, err = f.service.Recommend(user.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, titles(listing), titles(page))
}

func TestTrending(t *testing.T) {
	f := createFixture(t)
	now := time.Now()

	quiet := f.addApprovedPaper(t, "quiet", 0, now.Add(-3*time.Hour))
	older := f.addApprovedPaper(t, "older hit", 0, now.Add(-2*time.Hour))
	newer := f.addApprovedPaper(t, "newer hit", 0, now.Add(-time.Hour))

	quiet.ViewCount = 1
	older.ViewCount = 5
	newer.ViewCount = 5
	for _, paper := range []*researchhub.Paper{quiet, older, newer} {
		require.NoError(t, f.papers.Upsert(paper))
	}

	page, err := f.service.Trending(0, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"newer hit", "older hit", "quiet"}, titles(page))
}
