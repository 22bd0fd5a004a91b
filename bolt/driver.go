package bolt

import (
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

var buckets = [][]byte{
	userBucket,
	profileBucket,
}

type Driver struct {
	store *bolt.DB
}

func (d *Driver) Open(path string) error {
	store, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return err
	}

	err = store.Update(func(tx *bolt.Tx) error {
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("error creating bucket %s: %v", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	d.store = store
	return nil
}

func (d *Driver) Close() error {
	if d.store == nil {
		return nil
	}
	return d.store.Close()
}
