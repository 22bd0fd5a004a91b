package mysql

import (
	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/gorm"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
)

const mysqlDuplicateEntry = 1062

// The (user_id, paper_id) unique index is the authoritative guard
// against double inserts. Insert surfaces a violation as a
// Conflict-coded error for the service layer to resolve.
type LibraryRepository struct {
	driver *Driver
}

func NewLibraryRepository(driver *Driver) *LibraryRepository {
	return &LibraryRepository{driver: driver}
}

func (r *LibraryRepository) Find(userID, paperID int) (*researchhub.LibraryItem, error) {
	var dbItem LibraryItem
	err := r.driver.db.
		Where("user_id = ? AND paper_id = ?", userID, paperID).
		First(&dbItem).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return dbItem.format(), nil
}

func (r *LibraryRepository) Exists(userID, paperID int) (bool, error) {
	var count uint64
	err := r.driver.db.
		Model(&LibraryItem{}).
		Where("user_id = ? AND paper_id = ?", userID, paperID).
		Count(&count).
		Error
	return count > 0, err
}

func (r *LibraryRepository) Insert(item *researchhub.LibraryItem) error {
	dbItem := newLibraryItem(*item)
	if err := r.driver.db.Create(&dbItem).Error; err != nil {
		if isDuplicateEntry(err) {
			return errors.New("paper already in library", errors.Conflict())
		}
		return err
	}
	item.ID = dbItem.ID
	return nil
}

func (r *LibraryRepository) Delete(userID, paperID int) error {
	return r.driver.db.
		Where("user_id = ? AND paper_id = ?", userID, paperID).
		Delete(LibraryItem{}).
		Error
}

func (r *LibraryRepository) ByUser(userID int, offset, limit uint64) ([]*researchhub.LibraryItem, uint64, error) {
	query := r.driver.db.Model(&LibraryItem{}).Where("user_id = ?", userID)

	var total uint64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dbItems []LibraryItem
	err := query.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&dbItems).
		Error
	if err != nil {
		return nil, 0, err
	}

	items := make([]*researchhub.LibraryItem, len(dbItems))
	for i, dbItem := range dbItems {
		items[i] = dbItem.format()
	}
	return items, total, nil
}

func (r *LibraryRepository) DeleteByPaper(paperID int) error {
	return r.driver.db.Where("paper_id = ?", paperID).Delete(LibraryItem{}).Error
}

func isDuplicateEntry(err error) bool {
	mysqlErr, ok := err.(*mysql.MySQLError)
	return ok && mysqlErr.Number == mysqlDuplicateEntry
}
