package auth

import (
	"fmt"
	"strings"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/log"
)

// Notifier is the slice of the notification dispatcher account
// management needs: telling a user their account changed state.
type Notifier interface {
	Create(userID int, typ researchhub.NotificationType, title, message string, relatedID int, relatedType researchhub.RelatedType) (*researchhub.Notification, error)
}

// PaperDeleter removes a paper with all of its attachments. Satisfied
// by the paper service so account deletion reuses its cascade.
type PaperDeleter interface {
	Delete(paperID, callerID int, isAdmin bool) error
}

type Service struct {
	users         researchhub.UserRepository
	profiles      researchhub.ProfileRepository
	categories    researchhub.CategoryRepository
	papers        researchhub.PaperRepository
	comments      researchhub.CommentRepository
	notifications researchhub.NotificationRepository
	paperDeleter  PaperDeleter
	notifier      Notifier
	logger        log.Logger
}

func NewService(
	users researchhub.UserRepository,
	profiles researchhub.ProfileRepository,
	categories researchhub.CategoryRepository,
	papers researchhub.PaperRepository,
	comments researchhub.CommentRepository,
	notifications researchhub.NotificationRepository,
	paperDeleter PaperDeleter,
	notifier Notifier,
	logger log.Logger,
) *Service {
	return &Service{
		users:         users,
		profiles:      profiles,
		categories:    categories,
		papers:        papers,
		comments:      comments,
		notifications: notifications,
		paperDeleter:  paperDeleter,
		notifier:      notifier,
		logger:        logger,
	}
}

// Account is a user joined with their profile.
type Account struct {
	User    *researchhub.User    `json:"user"`
	Profile *researchhub.Profile `json:"profile,omitempty"`
}

func (s *Service) Get(userID int) (Account, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return Account{}, err
	}

	profile, err := s.profiles.Get(userID)
	if err != nil && !errors.IsNotFound(err) {
		return Account{}, err
	}
	return Account{User: user, Profile: profile}, nil
}

func (s *Service) List() ([]*researchhub.User, error) {
	return s.users.List()
}

// Suspend deactivates an account. A suspended admin loses the admin
// flag as well, so a compromised account cannot keep moderating.
func (s *Service) Suspend(userID int, reason string) (*researchhub.User, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return user, nil
	}

	user.Active = false
	user.IsAdmin = false
	if err := s.users.Upsert(user); err != nil {
		return nil, err
	}

	message := "Your account has been suspended"
	if strings.TrimSpace(reason) != "" {
		message = fmt.Sprintf("Your account has been suspended: %s", reason)
	}
	s.notify(user.ID, researchhub.NotifUserSuspended, "Account suspended", message)
	return user, nil
}

// Activate reinstates a suspended account. The admin flag is not
// restored; it has to be granted again explicitly.
func (s *Service) Activate(userID int) (*researchhub.User, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}
	if user.Active {
		return user, nil
	}

	user.Active = true
	if err := s.users.Upsert(user); err != nil {
		return nil, err
	}

	s.notify(user.ID, researchhub.NotifUserActivated, "Account reactivated", "Your account has been reactivated")
	return user, nil
}

type ProfileUpdate struct {
	FullName    string `json:"fullName"`
	Bio         string `json:"bio"`
	InterestIDs []int  `json:"interestIDs"`
}

// UpdateProfile replaces the caller's profile. Interests must reference
// existing categories; unknown ids fail the whole update.
func (s *Service) UpdateProfile(userID int, update ProfileUpdate) (*researchhub.Profile, error) {
	if _, err := s.users.Get(userID); err != nil {
		return nil, err
	}

	interests := make([]int, 0, len(update.InterestIDs))
	seen := make(map[int]bool)
	for _, id := range update.InterestIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := s.categories.Get(id); err != nil {
			if errors.IsNotFound(err) {
				return nil, errors.New(fmt.Sprintf("unknown category %d", id), errors.BadRequest())
			}
			return nil, err
		}
		interests = append(interests, id)
	}

	profile := researchhub.Profile{
		UserID:      userID,
		FullName:    strings.TrimSpace(update.FullName),
		Bio:         strings.TrimSpace(update.Bio),
		InterestIDs: interests,
	}
	if err := s.profiles.Upsert(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

type DashboardStats struct {
	Users         uint64 `json:"users"`
	Papers        uint64 `json:"papers"`
	PendingPapers uint64 `json:"pendingPapers"`
	Comments      uint64 `json:"comments"`
	UnreadAlerts  uint64 `json:"unreadAlerts"`
}

func (s *Service) DashboardStats() (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.Users, err = s.users.Count(); err != nil {
		return stats, err
	}
	if stats.Papers, err = s.papers.Count(); err != nil {
		return stats, err
	}
	if stats.PendingPapers, err = s.papers.CountByStatus(researchhub.PaperPending); err != nil {
		return stats, err
	}
	if stats.Comments, err = s.comments.Count(); err != nil {
		return stats, err
	}

	admins, err := s.users.Admins()
	if err != nil {
		return stats, err
	}
	adminIDs := make([]int, len(admins))
	for i, admin := range admins {
		adminIDs[i] = admin.ID
	}
	if stats.UnreadAlerts, err = s.notifications.CountUnreadAdmin(adminIDs); err != nil {
		return stats, err
	}
	return stats, nil
}

// DeleteUser removes an account with everything it produced: papers go
// through the paper cascade, then comments on other papers, the
// profile, and finally the account itself.
func (s *Service) DeleteUser(userID int) error {
	user, err := s.users.Get(userID)
	if err != nil {
		return err
	}

	for {
		papers, _, err := s.papers.ByUploader(user.ID, 0, 50)
		if err != nil {
			return err
		}
		if len(papers) == 0 {
			break
		}
		for _, paper := range papers {
			if err := s.paperDeleter.Delete(paper.ID, user.ID, true); err != nil {
				return err
			}
		}
	}

	if err := s.comments.DeleteByAuthor(user.ID); err != nil {
		return err
	}
	if err := s.profiles.Delete(user.ID); err != nil && !errors.IsNotFound(err) {
		return err
	}
	return s.users.Delete(user.ID)
}

func (s *Service) notify(userID int, typ researchhub.NotificationType, title, message string) {
	if _, err := s.notifier.Create(userID, typ, title, message, userID, researchhub.RelatedUser); err != nil {
		s.logger.Errorf("could not notify user %d: %v", userID, err)
	}
}
