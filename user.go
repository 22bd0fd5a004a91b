package researchhub

import (
	"time"
)

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	IsAdmin bool `json:"isAdmin"`
	Active  bool `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
}

// Profile holds the presentation and personalization data of a user.
// InterestIDs reference categories and only feed the recommendation
// engine; they grant no access.
type Profile struct {
	UserID      int    `json:"userID"`
	FullName    string `json:"fullName"`
	Bio         string `json:"bio"`
	InterestIDs []int  `json:"interestIDs"`
}

type UserRepository interface {
	Get(int) (*User, error)
	GetMany([]int) (map[int]*User, error)
	Upsert(*User) error
	Delete(int) error
	List() ([]*User, error)
	Admins() ([]*User, error)
	Count() (uint64, error)
}

type ProfileRepository interface {
	Get(userID int) (*Profile, error)
	GetMany([]int) (map[int]*Profile, error)
	Upsert(*Profile) error
	Delete(userID int) error
}
