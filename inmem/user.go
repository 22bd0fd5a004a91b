package inmem

import (
	"sort"
	"sync"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
)

type UserRepository struct {
	mu    sync.Locker
	users []researchhub.User
	maxID int
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		mu:    &sync.Mutex{},
		users: make([]researchhub.User, 0),
	}
}

func (r *UserRepository) Get(id int) (*researchhub.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID == id {
			u := user
			return &u, nil
		}
	}
	return nil, errors.New("user not found", errors.NotFound())
}

func (r *UserRepository) GetMany(ids []int) (map[int]*researchhub.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make(map[int]*researchhub.User, len(ids))
	for _, id := range ids {
		for _, user := range r.users {
			if user.ID == id {
				u := user
				users[id] = &u
				break
			}
		}
	}
	return users, nil
}

func (r *UserRepository) Upsert(user *researchhub.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == 0 {
		r.maxID++
		user.ID = r.maxID
	} else if user.ID > r.maxID {
		r.maxID = user.ID
	}

	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *UserRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *UserRepository) List() ([]*researchhub.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*researchhub.User, len(r.users))
	for i := range r.users {
		u := r.users[i]
		users[i] = &u
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *UserRepository) Admins() ([]*researchhub.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admins := make([]*researchhub.User, 0)
	for i := range r.users {
		if r.users[i].IsAdmin {
			u := r.users[i]
			admins = append(admins, &u)
		}
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].ID < admins[j].ID })
	return admins, nil
}

func (r *UserRepository) Count() (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return uint64(len(r.users)), nil
}

type ProfileRepository struct {
	mu       sync.Locker
	profiles map[int]researchhub.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		mu:       &sync.Mutex{},
		profiles: make(map[int]researchhub.Profile),
	}
}

func (r *ProfileRepository) Get(userID int) (*researchhub.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, errors.New("profile not found", errors.NotFound())
	}
	return &profile, nil
}

func (r *ProfileRepository) GetMany(userIDs []int) (map[int]*researchhub.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profiles := make(map[int]*researchhub.Profile, len(userIDs))
	for _, id := range userIDs {
		if profile, ok := r.profiles[id]; ok {
			p := profile
			profiles[id] = &p
		}
	}
	return profiles, nil
}

func (r *ProfileRepository) Upsert(profile *researchhub.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[profile.UserID] = *profile
	return nil
}

func (r *ProfileRepository) Delete(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.profiles, userID)
	return nil
}
