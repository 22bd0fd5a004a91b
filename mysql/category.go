package mysql

import (
	"github.com/jinzhu/gorm"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
)

type CategoryRepository struct {
	driver *Driver
}

func NewCategoryRepository(driver *Driver) *CategoryRepository {
	return &CategoryRepository{driver: driver}
}

func (r *CategoryRepository) Get(id int) (*researchhub.Category, error) {
	var dbCategory Category
	err := r.driver.db.Where("id = ?", id).First(&dbCategory).Error
	if err == gorm.ErrRecordNotFound {
		return nil, errors.New("category not found", errors.NotFound())
	} else if err != nil {
		return nil, err
	}
	return dbCategory.format(), nil
}

func (r *CategoryRepository) GetByName(name string) (*researchhub.Category, error) {
	var dbCategory Category
	err := r.driver.db.Where("name = ?", name).First(&dbCategory).Error
	if err == gorm.ErrRecordNotFound {
		return nil, errors.New("category not found", errors.NotFound())
	} else if err != nil {
		return nil, err
	}
	return dbCategory.format(), nil
}

func (r *CategoryRepository) GetMany(ids []int) ([]*researchhub.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var dbCategories []Category
	err := r.driver.db.Where("id IN (?)", ids).Find(&dbCategories).Error
	if err != nil {
		return nil, err
	}

	categories := make([]*researchhub.Category, len(dbCategories))
	for i, dbCategory := range dbCategories {
		categories[i] = dbCategory.format()
	}
	return categories, nil
}

func (r *CategoryRepository) List() ([]*researchhub.Category, error) {
	var dbCategories []Category
	err := r.driver.db.Order("name ASC").Find(&dbCategories).Error
	if err != nil {
		return nil, err
	}

	categories := make([]*researchhub.Category, len(dbCategories))
	for i, dbCategory := range dbCategories {
		categories[i] = dbCategory.format()
	}
	return categories, nil
}

func (r *CategoryRepository) Insert(category *researchhub.Category) error {
	dbCategory := newCategory(*category)
	if err := r.driver.db.Create(&dbCategory).Error; err != nil {
		if isDuplicateEntry(err) {
			return errors.New("category already exists", errors.Conflict())
		}
		return err
	}
	category.ID = dbCategory.ID
	return nil
}
