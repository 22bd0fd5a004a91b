package papers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/inmem"
	"github.com/researchhub/researchhub/log"
	"github.com/researchhub/researchhub/notifications"
)

type fixture struct {
	service       *Service
	papers        *inmem.PaperRepository
	index         *inmem.PaperIndex
	categories    *inmem.CategoryRepository
	users         *inmem.UserRepository
	profiles      *inmem.ProfileRepository
	comments      *inmem.CommentRepository
	library       *inmem.LibraryRepository
	files         *inmem.FileStore
	notifications *inmem.NotificationRepository
}

func createFixture(t *testing.T) fixture {
	papers := inmem.NewPaperRepository()
	index := inmem.NewPaperIndex()
	categories := inmem.NewCategoryRepository()
	users := inmem.NewUserRepository()
	profiles := inmem.NewProfileRepository()
	comments := inmem.NewCommentRepository()
	library := inmem.NewLibraryRepository()
	files := inmem.NewFileStore()
	notificationRepo := inmem.NewNotificationRepository()
	notifier := notifications.NewService(notificationRepo, users, log.Nop())

	return fixture{
		service:       NewService(papers, index, categories, users, profiles, comments, library, files, notifier, log.Nop()),
		papers:        papers,
		index:         index,
		categories:    categories,
		users:         users,
		profiles:      profiles,
		comments:      comments,
		library:       library,
		files:         files,
		notifications: notificationRepo,
	}
}

func (f fixture) addUser(t *testing.T, name, email string, admin bool) *researchhub.User {
	user := researchhub.User{Name: name, Email: email, IsAdmin: admin, Active: true}
	require.NoError(t, f.users.Upsert(&user))
	return &user
}

func (f fixture) addCategory(t *testing.T, name string) *researchhub.Category {
	category := researchhub.Category{Name: name}
	require.NoError(t, f.categories.Insert(&category))
	return &category
}

func (f fixture) addApprovedPaper(t *testing.T, title string, uploaderID int, createdAt time.Time, categoryIDs ...int) *researchhub.Paper {
	paper := researchhub.Paper{
		Title:       title,
		UploaderID:  uploaderID,
		CategoryIDs: categoryIDs,
		Status:      researchhub.PaperApproved,
		CreatedAt:   createdAt,
	}
	require.NoError(t, f.papers.Upsert(&paper))
	require.NoError(t, f.index.Index(&paper))
	return &paper
}

func TestUpload(t *testing.T) {
	f := createFixture(t)
	uploader := f.addUser(t, "ada", "ada@research.hub", false)
	admin := f.addUser(t, "root", "root@research.hub", true)
	category := f.addCategory(t, "Machine Learning")

	meta := UploadMeta{
		Title:       "Deep learning for vision",
		Author:      "Ada Lovelace",
		Abstract:    "  A study.  ",
		Year:        2024,
		CategoryIDs: []int{category.ID},
		Extension:   ".pdf",
	}
	paper, err := f.service.Upload(uploader.ID, meta, strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	assert.NotZero(t, paper.ID)
	assert.Equal(t, researchhub.PaperPending, paper.Status)
	assert.Equal(t, "A study.", paper.Abstract)
	assert.Equal(t, []int{category.ID}, paper.CategoryIDs)
	assert.NotEmpty(t, paper.FileKey)

	_, ok := f.files.Get(paper.FileKey)
	assert.True(t, ok, "file should be stored")

	// The admins are told a submission awaits review.
	unread, err := f.notifications.UnreadByRecipient(admin.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, researchhub.NotifPaperSubmitted, unread[0].Type)

	// The uploader is not.
	unread, err = f.notifications.UnreadByRecipient(uploader.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestUpload_sanitizesInput(t *testing.T) {
	f := createFixture(t)

	paper, err := f.service.Upload(0, UploadMeta{Year: 1492}, strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "Untitled", paper.Title)
	assert.Equal(t, time.Now().Year(), paper.Year)
	assert.Zero(t, paper.UploaderID)

	paper, err = f.service.Upload(0, UploadMeta{Year: time.Now().Year() + 5}, strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, time.Now().Year(), paper.Year)

	paper, err = f.service.Upload(0, UploadMeta{Year: 1995}, strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, 1995, paper.Year)

	_, err = f.service.Upload(0, UploadMeta{CategoryIDs: []int{99}}, strings.NewReader("x"))
	assert.True(t, errors.IsBadRequest(err), "unknown category should be rejected")

	_, err = f.service.Upload(0, UploadMeta{}, nil)
	assert.True(t, errors.IsBadRequest(err), "missing file should be rejected")
}

func TestIncrementViews(t *testing.T) {
	f := createFixture(t)
	paper := f.addApprovedPaper(t, "Deep learning", 0, time.Now())

	for i := 0; i < 3; i++ {
		_, err := f.service.IncrementViews(paper.ID)
		require.NoError(t, err)
	}

	got, err := f.service.Get(paper.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ViewCount)
}

func TestDelete(t *testing.T) {
	f := createFixture(t)
	uploader := f.addUser(t, "ada", "ada@research.hub", false)
	other := f.addUser(t, "joe", "joe@research.hub", false)
	admin := f.addUser(t, "root", "root@research.hub", true)

	paper, err := f.service.Upload(uploader.ID, UploadMeta{Title: "t"}, strings.NewReader("x"))
	require.NoError(t, err)

	_, err = f.service.Comment(paper.ID, other.ID, "nice")
	require.NoError(t, err)
	require.NoError(t, f.library.Insert(&researchhub.LibraryItem{UserID: other.ID, PaperID: paper.ID}))

	err = f.service.Delete(paper.ID, other.ID, false)
	assert.True(t, errors.IsForbidden(err))

	require.NoError(t, f.service.Delete(paper.ID, uploader.ID, false))

	_, err = f.service.Get(paper.ID)
	assert.True(t, errors.IsNotFound(err))

	// Cascade: comments and library rows are gone, the blob too.
	count, err := f.comments.CountByPaper(paper.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	exists, err := f.library.Exists(other.ID, paper.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, ok := f.files.Get(paper.FileKey)
	assert.False(t, ok)

	// Anonymous papers can only be deleted by an admin.
	anonymous, err := f.service.Upload(0, UploadMeta{Title: "anon"}, strings.NewReader("x"))
	require.NoError(t, err)
	err = f.service.Delete(anonymous.ID, uploader.ID, false)
	assert.True(t, errors.IsForbidden(err))
	require.NoError(t, f.service.Delete(anonymous.ID, admin.ID, true))
}

func TestComments(t *testing.T) {
	f := createFixture(t)
	author := f.addUser(t, "ada", "ada@research.hub", false)
	other := f.addUser(t, "joe", "joe@research.hub", false)
	paper := f.addApprovedPaper(t, "Deep learning", 0, time.Now())

	_, err := f.service.Comment(paper.ID, author.ID, "   ")
	assert.True(t, errors.IsBadRequest(err), "blank content should be rejected")

	_, err = f.service.Comment(paper.ID, author.ID, strings.Repeat("x", 1001))
	assert.True(t, errors.IsBadRequest(err), "too long content should be rejected")

	comment, err := f.service.Comment(paper.ID, author.ID, "interesting result")
	require.NoError(t, err)
	assert.Equal(t, researchhub.CommentApproved, comment.Status)
	assert.False(t, comment.Edited)

	_, err = f.service.EditComment(comment.ID, other.ID, "hijacked")
	assert.True(t, errors.IsForbidden(err))

	edited, err := f.service.EditComment(comment.ID, author.ID, "clarified result")
	require.NoError(t, err)
	assert.True(t, edited.Edited)
	assert.Equal(t, "clarified result", edited.Content)

	comments, err := f.service.CommentsOn(paper.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	err = f.service.DeleteComment(comment.ID, other.ID, false)
	assert.True(t, errors.IsForbidden(err))
	require.NoError(t, f.service.DeleteComment(comment.ID, author.ID, false))
}
