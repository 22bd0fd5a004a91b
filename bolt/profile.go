package bolt

import (
	"encoding/json"

	"github.com/boltdb/bolt"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
)

var profileBucket = []byte("profiles")

// ProfileStore keys profiles by user id.
type ProfileStore struct {
	Driver *Driver
}

func (s *ProfileStore) Get(userID int) (*researchhub.Profile, error) {
	var profile *researchhub.Profile
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(profileBucket).Get(itob(userID))
		if data == nil {
			return errors.New("profile not found", errors.NotFound())
		}

		profile = &researchhub.Profile{}
		return json.Unmarshal(data, profile)
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *ProfileStore) GetMany(userIDs []int) (map[int]*researchhub.Profile, error) {
	profiles := make(map[int]*researchhub.Profile, len(userIDs))
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(profileBucket)

		for _, id := range userIDs {
			data := bucket.Get(itob(id))
			if data == nil {
				continue
			}

			var profile researchhub.Profile
			if err := json.Unmarshal(data, &profile); err != nil {
				return err
			}
			profiles[profile.UserID] = &profile
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

func (s *ProfileStore) Upsert(profile *researchhub.Profile) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(profile)
		if err != nil {
			return err
		}

		return tx.Bucket(profileBucket).Put(itob(profile.UserID), data)
	})
}

func (s *ProfileStore) Delete(userID int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(profileBucket).Delete(itob(userID))
	})
}
