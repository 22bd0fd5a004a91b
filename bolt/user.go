package bolt

import (
	"encoding/binary"
	"encoding/json"

	"github.com/boltdb/bolt"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
)

var userBucket = []byte("users")

type UserStore struct {
	Driver *Driver
}

func (s *UserStore) Get(id int) (*researchhub.User, error) {
	var user *researchhub.User
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		data := bucket.Get(itob(id))
		if data == nil {
			return errors.New("user not found", errors.NotFound())
		}

		user = &researchhub.User{}
		return json.Unmarshal(data, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserStore) GetMany(ids []int) (map[int]*researchhub.User, error) {
	users := make(map[int]*researchhub.User, len(ids))
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		for _, id := range ids {
			data := bucket.Get(itob(id))
			if data == nil {
				continue
			}

			var user researchhub.User
			if err := json.Unmarshal(data, &user); err != nil {
				return err
			}
			users[user.ID] = &user
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (s *UserStore) Upsert(user *researchhub.User) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		if user.ID == 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return err
			}
			user.ID = int(id)
		}

		data, err := json.Marshal(user)
		if err != nil {
			return err
		}

		return bucket.Put(itob(user.ID), data)
	})
}

func (s *UserStore) Delete(id int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(userBucket).Delete(itob(id))
	})
}

func (s *UserStore) List() ([]*researchhub.User, error) {
	var users []*researchhub.User

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(userBucket).Cursor()

		for id, data := c.First(); id != nil; id, data = c.Next() {
			var user researchhub.User
			if err := json.Unmarshal(data, &user); err != nil {
				return err
			}
			users = append(users, &user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (s *UserStore) Admins() ([]*researchhub.User, error) {
	users, err := s.List()
	if err != nil {
		return nil, err
	}

	admins := make([]*researchhub.User, 0, len(users))
	for _, user := range users {
		if user.IsAdmin {
			admins = append(admins, user)
		}
	}
	return admins, nil
}

func (s *UserStore) Count() (uint64, error) {
	var count uint64
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		count = uint64(tx.Bucket(userBucket).Stats().KeyN)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// itob returns an 8-byte big endian representation of v.
func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
