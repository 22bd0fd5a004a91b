package mysql

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql" // run init method
)

type Driver struct {
	db *gorm.DB
}

func connectionString(host, port, username, password, database string) string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8&parseTime=True&loc=Local",
		username, password, host, port, database,
	)
}

func NewDriver(host, port, username, password, database string) (*Driver, error) {
	db, err := gorm.Open("mysql", connectionString(host, port, username, password, database))
	if err != nil {
		return nil, err
	}
	db.DB().SetConnMaxLifetime(1 * time.Minute)

	driver := &Driver{
		db: db,
	}
	return driver, nil
}

// Migrate creates the tables and the composite unique index guarding
// the library relation.
func (d *Driver) Migrate() error {
	err := d.db.AutoMigrate(
		&Paper{},
		&PaperCategory{},
		&Category{},
		&Comment{},
		&Notification{},
		&LibraryItem{},
	).Error
	if err != nil {
		return err
	}

	return d.db.Model(&LibraryItem{}).
		AddUniqueIndex("idx_library_user_paper", "user_id", "paper_id").
		Error
}

func (d *Driver) Close() error {
	return d.db.Close()
}
