package auth

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
	"github.com/researchhub/researchhub/papers"
)

type fixture struct {
	service       *Service
	users         *inmem.UserRepository
	profiles      *inmem.ProfileRepository
	categories    *inmem.CategoryRepository
	papers        *inmem.PaperRepository
	comments      *inmem.CommentRepository
	library       *inmem.LibraryRepository
	notifications *inmem.NotificationRepository
	paperService  *papers.Service
}

func createFixture(t *testing.T) fixture {
	users := inmem.NewUserRepository()
	profiles := inmem.NewProfileRepository()
	categories := inmem.NewCategoryRepository()
	paperRepo := inmem.NewPaperRepository()
	comments := inmem.NewCommentRepository()
	library := inmem.NewLibraryRepository()
	notificationRepo := inmem.NewNotificationRepository()
	notifier := notifications.NewService(notificationRepo, users, log.Nop())
	paperService := papers.NewService(
		paperRepo,
		inmem.NewPaperIndex(),
		categories,
		users,
		profiles,
		comments,
		library,
		inmem.NewFileStore(),
		notifier,
		log.Nop(),
	)

	return fixture{
		service:       NewService(users, profiles, categories, paperRepo, comments, notificationRepo, paperService, notifier, log.Nop()),
		users:         users,
		profiles:      profiles,
		categories:    categories,
		papers:        paperRepo,
		comments:      comments,
		library:       library,
		notifications: notificationRepo,
		paperService:  paperService,
	}
}

func (f fixture) addUser(t *testing.T, name string, admin bool) *researchhub.User {
	user := researchhub.User{Name: name, Email: name + "@research.hub", IsAdmin: admin, Active: true}
	require.NoError(t, f.users.Upsert(&user))
	return &user
}

func TestSuspendAndActivate(t *testing.T) {
	f := createFixture(t)
	user := f.addUser(t, "mallory", true)

	suspended, err := f.service.Suspend(user.ID, "spam uploads")
	require.NoError(t, err)
	assert.False(t, suspended.Active)
	assert.False(t, suspended.IsAdmin, "suspension strips the admin flag")

	unread, err := f.notifications.UnreadByRecipient(user.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, researchhub.NotifUserSuspended, unread[0].Type)
	assert.Contains(t, unread[0].Message, "spam uploads")

	// Suspending twice does not notify twice.
	_, err = f.service.Suspend(user.ID, "again")
	require.NoError(t, err)
	unread, err = f.notifications.UnreadByRecipient(user.ID)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	activated, err := f.service.Activate(user.ID)
	require.NoError(t, err)
	assert.True(t, activated.Active)
	assert.False(t, activated.IsAdmin, "reactivation does not restore the admin flag")

	unread, err = f.notifications.UnreadByRecipient(user.ID)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	_, err = f.service.Suspend(999, "")
	assert.True(t, errors.IsNotFound(err))
}

func TestUpdateProfile(t *testing.T) {
	f := createFixture(t)
	user := f.addUser(t, "ada", false)
	category := researchhub.Category{Name: "Machine Learning"}
	require.NoError(t, f.categories.Insert(&category))

	profile, err := f.service.UpdateProfile(user.ID, ProfileUpdate{
		FullName:    "  Ada Lovelace  ",
		Bio:         "analyst",
		InterestIDs: []int{category.ID, category.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", profile.FullName)
	assert.Equal(t, []int{category.ID}, profile.InterestIDs, "interests are deduplicated")

	_, err = f.service.UpdateProfile(user.ID, ProfileUpdate{InterestIDs: []int{999}})
	assert.True(t, errors.IsBadRequest(err), "unknown interests fail the update")

	// The failed update did not overwrite the profile.
	stored, err := f.profiles.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", stored.FullName)

	_, err = f.service.UpdateProfile(999, ProfileUpdate{})
	assert.True(t, errors.IsNotFound(err))
}

func TestDashboardStats(t *testing.T) {
	f := createFixture(t)
	f.addUser(t, "ada", false)
	admin := f.addUser(t, "root", true)

	approved := researchhub.Paper{Title: "a", Status: researchhub.PaperApproved, CreatedAt: time.Now()}
	pending := researchhub.Paper{Title: "p", Status: researchhub.PaperPending, CreatedAt: time.Now()}
	require.NoError(t, f.papers.Upsert(&approved))
	require.NoError(t, f.papers.Upsert(&pending))

	require.NoError(t, f.comments.Insert(&researchhub.Comment{PaperID: approved.ID, Content: "hi", Status: researchhub.CommentApproved}))

	require.NoError(t, f.notifications.Insert(&researchhub.Notification{UserID: admin.ID, Type: researchhub.NotifPaperSubmitted}))

	stats, err := f.service.DashboardStats()
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{
		Users:         2,
		Papers:        2,
		PendingPapers: 1,
		Comments:      1,
		UnreadAlerts:  1,
	}, stats)
}

func TestDeleteUser(t *testing.T) {
	f := createFixture(t)
	user := f.addUser(t, "ada", false)
	other := f.addUser(t, "joe", false)

	paper, err := f.paperService.Upload(user.ID, papers.UploadMeta{Title: "mine"}, strings.NewReader("x"))
	require.NoError(t, err)
	kept := researchhub.Paper{Title: "theirs", UploaderID: other.ID, Status: researchhub.PaperApproved, CreatedAt: time.Now()}
	require.NoError(t, f.papers.Upsert(&kept))

	// A comment by the deleted user on someone else's paper.
	require.NoError(t, f.comments.Insert(&researchhub.Comment{PaperID: kept.ID, AuthorID: user.ID, Content: "nice", Status: researchhub.CommentApproved}))

	require.NoError(t, f.service.DeleteUser(user.ID))

	_, err = f.users.Get(user.ID)
	assert.True(t, errors.IsNotFound(err))

	found, err := f.papers.Get(paper.ID)
	require.NoError(t, err)
	assert.Empty(t, found, "the user's papers are gone")

	found, err = f.papers.Get(kept.ID)
	require.NoError(t, err)
	assert.Len(t, found, 1, "other papers survive")

	comments, err := f.comments.ByAuthor(user.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	require.NoError(t, f.service.DeleteUser(other.ID))
	err = f.service.DeleteUser(999)
	assert.True(t, errors.IsNotFound(err))
}

func TestGet(t *testing.T) {
	f := createFixture(t)
	user := f.addUser(t, "ada", false)

	// Without a profile.
	account, err := f.service.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, account.User.ID)
	assert.Nil(t, account.Profile)

	require.NoError(t, f.profiles.Upsert(&researchhub.Profile{UserID: user.ID, FullName: "Ada"}))
	account, err = f.service.Get(user.ID)
	require.NoError(t, err)
	require.NotNil(t, account.Profile)
	assert.Equal(t, "Ada", account.Profile.FullName)
}
