package notifications

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/inmem"
	"github.com/researchhub/researchhub/log"
)

func createService(t *testing.T) (*Service, *inmem.NotificationRepository, *inmem.UserRepository) {
	notifications := inmem.NewNotificationRepository()
	users := inmem.NewUserRepository()
	return NewService(notifications, users, log.Nop()), notifications, users
}

func addUser(t *testing.T, users *inmem.UserRepository, name string, admin bool) *researchhub.User {
	user := researchhub.User{
		Name:    name,
		Email:   fmt.Sprintf("%s@research.hub", name),
		IsAdmin: admin,
		Active:  true,
	}
	require.NoError(t, users.Upsert(&user))
	return &user
}

func TestService_Create(t *testing.T) {
	service, _, users := createService(t)
	user := addUser(t, users, "ada", false)

	notification, err := service.Create(
		user.ID,
		researchhub.NotifPaperApproved,
		"Paper approved",
		"Your paper has been approved",
		42,
		researchhub.RelatedPaper,
	)
	require.NoError(t, err)
	assert.NotZero(t, notification.ID)
	assert.Equal(t, user.ID, notification.UserID)
	assert.False(t, notification.Read)

	count, err := service.CountUnread(user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestService_Create_unknownRecipient(t *testing.T) {
	service, _, _ := createService(t)

	_, err := service.Create(7, researchhub.NotifPaperApproved, "t", "m", 0, "")
	assert.True(t, errors.IsNotFound(err))
}

func TestService_CreateAdmin(t *testing.T) {
	service, _, users := createService(t)
	admin1 := addUser(t, users, "ada", true)
	admin2 := addUser(t, users, "grace", true)
	addUser(t, users, "joe", false)

	err := service.CreateAdmin(researchhub.NotifPaperSubmitted, "New paper", "A paper awaits review", 1, researchhub.RelatedPaper)
	require.NoError(t, err)

	for _, admin := range []*researchhub.User{admin1, admin2} {
		count, err := service.CountUnread(admin.ID)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), count, "admin %d should be notified", admin.ID)
	}

	// CreateAdmin with a failing store must not return an error, only log.
	service, notifications, users := createService(t)
	addUser(t, users, "ada", true)
	notifications.InsertErr = errors.New("insert failed")
	err = service.CreateAdmin(researchhub.NotifPaperSubmitted, "New paper", "m", 1, researchhub.RelatedPaper)
	assert.NoError(t, err)
}

func TestService_MarkRead(t *testing.T) {
	service, _, users := createService(t)
	owner := addUser(t, users, "ada", false)
	other := addUser(t, users, "joe", false)

	notification, err := service.Create(owner.ID, researchhub.NotifPaperApproved, "t", "m", 0, "")
	require.NoError(t, err)

	_, err = service.MarkRead(notification.ID, other.ID)
	assert.True(t, errors.IsForbidden(err))

	read, err := service.MarkRead(notification.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)
	assert.NotNil(t, read.ReadAt)

	count, err := service.CountUnread(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestService_MarkAllRead(t *testing.T) {
	service, _, users := createService(t)
	owner := addUser(t, users, "ada", false)

	for i := 0; i < 3; i++ {
		_, err := service.Create(owner.ID, researchhub.NotifPaperApproved, "t", "m", 0, "")
		require.NoError(t, err)
	}

	require.NoError(t, service.MarkAllRead(owner.ID))

	unread, err := service.Unread(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestService_Delete(t *testing.T) {
	service, _, users := createService(t)
	owner := addUser(t, users, "ada", false)
	other := addUser(t, users, "joe", false)

	notification, err := service.Create(owner.ID, researchhub.NotifPaperApproved, "t", "m", 0, "")
	require.NoError(t, err)

	err = service.Delete(notification.ID, other.ID)
	assert.True(t, errors.IsForbidden(err))

	require.NoError(t, service.Delete(notification.ID, owner.ID))

	list, err := service.ByRecipient(owner.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, list.Notifications)
}

func TestService_ByRecipient_paged(t *testing.T) {
	service, _, users := createService(t)
	owner := addUser(t, users, "ada", false)

	for i := 0; i < 5; i++ {
		_, err := service.Create(owner.ID, researchhub.NotifPaperApproved, "t", "m", 0, "")
		require.NoError(t, err)
	}

	list, err := service.ByRecipient(owner.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.Equal(t, uint64(5), list.Pagination.Total)
	assert.Equal(t, uint64(1), list.Pagination.Offset)
	assert.Equal(t, uint64(2), list.Pagination.Limit)
}
