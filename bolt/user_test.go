package bolt

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
)

func createDriver(t *testing.T) (*Driver, func()) {
	tmpFile, err := ioutil.TempFile("", "")
	if err != nil {
		t.Fatal("could not create tmp file:", err)
	}

	filename := tmpFile.Name()
	driver := &Driver{}
	if err := driver.Open(filename); err != nil {
		os.Remove(filename)
		t.Fatalf("could not open bolt on file %s: %v", filename, err)
	}

	return driver, func() {
		driver.Close()
		os.Remove(filename)
	}
}

func TestUserStore_UpsertGet(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	store := &UserStore{Driver: driver}

	user := researchhub.User{Name: "Alice", Email: "alice@x.com", Active: true}
	if err := store.Upsert(&user); err != nil {
		t.Fatal("error inserting:", err)
	}
	if user.ID == 0 {
		t.Fatal("expected id to be assigned")
	}

	retrieved, err := store.Get(user.ID)
	if err != nil {
		t.Fatal("error getting:", err)
	} else if retrieved == nil {
		t.Fatal("expected user, got nil")
	} else if retrieved.Email != user.Email {
		t.Fatalf("incorrect user retrieved: expected %+v got %+v", user, *retrieved)
	}

	if _, err = store.Get(user.ID + 1); !errors.IsNotFound(err) {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}

func TestUserStore_GetMany(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	store := &UserStore{Driver: driver}

	alice := researchhub.User{Name: "Alice", Email: "alice@x.com"}
	bob := researchhub.User{Name: "Bob", Email: "bob@x.com"}
	for _, u := range []*researchhub.User{&alice, &bob} {
		if err := store.Upsert(u); err != nil {
			t.Fatal("error inserting:", err)
		}
	}

	users, err := store.GetMany([]int{alice.ID, bob.ID, bob.ID + 10})
	if err != nil {
		t.Fatal("error getting many:", err)
	}
	if len(users) != 2 {
		t.Fatalf("incorrect number of users: expected 2 got %d", len(users))
	}
	if users[alice.ID].Name != "Alice" || users[bob.ID].Name != "Bob" {
		t.Fatalf("incorrect users retrieved: %+v", users)
	}
}

func TestUserStore_Admins(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	store := &UserStore{Driver: driver}

	for _, u := range []*researchhub.User{
		{Name: "Alice", IsAdmin: true},
		{Name: "Bob"},
		{Name: "Carol", IsAdmin: true},
	} {
		if err := store.Upsert(u); err != nil {
			t.Fatal("error inserting:", err)
		}
	}

	admins, err := store.Admins()
	if err != nil {
		t.Fatal("error listing admins:", err)
	}
	if len(admins) != 2 {
		t.Fatalf("incorrect number of admins: expected 2 got %d", len(admins))
	}
}

func TestProfileStore(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	store := &ProfileStore{Driver: driver}

	profile := researchhub.Profile{UserID: 7, FullName: "Alice Smith", InterestIDs: []int{1, 3}}
	if err := store.Upsert(&profile); err != nil {
		t.Fatal("error inserting:", err)
	}

	retrieved, err := store.Get(7)
	if err != nil {
		t.Fatal("error getting:", err)
	} else if retrieved == nil {
		t.Fatal("expected profile, got nil")
	} else if retrieved.FullName != "Alice Smith" || len(retrieved.InterestIDs) != 2 {
		t.Fatalf("incorrect profile retrieved: %+v", *retrieved)
	}

	if _, err = store.Get(8); !errors.IsNotFound(err) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
}
