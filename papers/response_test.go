package papers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchhub/researchhub"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a***e@x.com", maskEmail("alice@x.com"))
	assert.Equal(t, "a*@x.com", maskEmail("ab@x.com"))
	assert.Equal(t, "a*@x.com", maskEmail("a@x.com"))
	assert.Equal(t, "not-an-email", maskEmail("not-an-email"))
	assert.Equal(t, "@x.com", maskEmail("@x.com"))
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet("short"))

	long := strings.Repeat("a", 250)
	got := snippet(long)
	assert.Equal(t, strings.Repeat("a", 200)+"...", got)

	exact := strings.Repeat("b", 200)
	assert.Equal(t, exact, snippet(exact))
}

func TestDisplayName(t *testing.T) {
	user := &researchhub.User{Email: "alice@x.com"}

	assert.Equal(t, "alice", displayName(user, nil))
	assert.Equal(t, "alice", displayName(user, &researchhub.Profile{FullName: "  "}))
	assert.Equal(t, "Alice Liddell", displayName(user, &researchhub.Profile{FullName: "Alice Liddell"}))
}

func TestAssemble(t *testing.T) {
	f := createFixture(t)
	uploader := f.addUser(t, "alice", "alice@x.com", false)
	require.NoError(t, f.profiles.Upsert(&researchhub.Profile{UserID: uploader.ID, FullName: "Alice Liddell"}))
	category := f.addCategory(t, "Machine Learning")

	paper := f.addApprovedPaper(t, "owned", uploader.ID, time.Now(), category.ID)
	anonymous := f.addApprovedPaper(t, "anonymous", 0, time.Now())

	views, err := f.service.assemble([]*researchhub.Paper{paper, anonymous}, uploader.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "Alice Liddell", views[0].UploaderName)
	assert.Equal(t, "a***e@x.com", views[0].UploaderEmail)
	assert.True(t, views[0].CanEdit, "uploader viewing their own paper")
	require.Len(t, views[0].Categories, 1)
	assert.Equal(t, category.Name, views[0].Categories[0].Name)

	assert.Empty(t, views[1].UploaderName)
	assert.Empty(t, views[1].UploaderEmail)
	assert.False(t, views[1].CanEdit, "anonymous papers have no owner")

	// Another viewer cannot edit, an anonymous viewer even less.
	views, err = f.service.assemble([]*researchhub.Paper{paper}, uploader.ID+1)
	require.NoError(t, err)
	assert.False(t, views[0].CanEdit)

	views, err = f.service.assemble([]*researchhub.Paper{paper}, 0)
	require.NoError(t, err)
	assert.False(t, views[0].CanEdit)
}
