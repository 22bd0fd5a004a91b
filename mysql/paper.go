package mysql

import (
	"github.com/jinzhu/gorm"

	"github.com/researchhub/researchhub"
)

// Listing queries (NewestFirst, ByCategories, MostViewed) only surface
// approved papers: they feed public exploration and recommendation.
// ByStatus and ByUploader are the moderation/owner surfaces.
type PaperRepository struct {
	driver *Driver
}

func NewPaperRepository(driver *Driver) *PaperRepository {
	return &PaperRepository{driver: driver}
}

func (r *PaperRepository) Get(ids ...int) ([]*researchhub.Paper, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var dbPapers []Paper
	err := r.driver.db.
		Where("id IN (?)", ids).
		Find(&dbPapers).
		Error
	if err != nil {
		return nil, err
	}

	categories, err := r.categoriesFor(paperIDs(dbPapers))
	if err != nil {
		return nil, err
	}

	byID := make(map[int]Paper, len(dbPapers))
	for _, dbPaper := range dbPapers {
		byID[dbPaper.ID] = dbPaper
	}

	// Results follow the order the caller asked for, so ranked ids
	// coming from the search index keep their ranking.
	papers := make([]*researchhub.Paper, 0, len(dbPapers))
	for _, id := range ids {
		dbPaper, ok := byID[id]
		if !ok {
			continue
		}
		papers = append(papers, dbPaper.format(categories[id]))
	}

	return papers, nil
}

func (r *PaperRepository) Upsert(paper *researchhub.Paper) error {
	tx := r.driver.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	dbPaper := newPaper(*paper)
	if err := tx.Save(&dbPaper).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("paper_id = ?", dbPaper.ID).Delete(PaperCategory{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	for _, categoryID := range paper.CategoryIDs {
		join := PaperCategory{PaperID: dbPaper.ID, CategoryID: categoryID}
		if err := tx.Create(&join).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	paper.ID = dbPaper.ID
	return nil
}

func (r *PaperRepository) Delete(id int) error {
	tx := r.driver.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("paper_id = ?", id).Delete(PaperCategory{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(Paper{ID: id}).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (r *PaperRepository) ByStatus(status researchhub.PaperStatus, offset, limit uint64) ([]*researchhub.Paper, uint64, error) {
	query := r.driver.db.Model(&Paper{}).Where("status = ?", string(status))
	return r.page(query, offset, limit, "created_at DESC, id DESC")
}

func (r *PaperRepository) ByCategories(categoryIDs []int, offset, limit uint64) ([]*researchhub.Paper, uint64, error) {
	if len(categoryIDs) == 0 {
		return nil, 0, nil
	}

	query := r.driver.db.Model(&Paper{}).
		Joins("JOIN paper_categories ON paper_categories.paper_id = papers.id").
		Where("paper_categories.category_id IN (?)", categoryIDs).
		Where("papers.status = ?", string(researchhub.PaperApproved))

	// Counting on the grouped query would keep the GROUP BY and scan a
	// single per-paper join-row count. Count distinct papers instead.
	var total uint64
	err := query.Select("count(distinct(papers.id))").Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	papers, err := r.fetch(query.Group("papers.id"), offset, limit, "created_at DESC, id DESC")
	return papers, total, err
}

func (r *PaperRepository) NewestFirst(offset, limit uint64) ([]*researchhub.Paper, uint64, error) {
	query := r.driver.db.Model(&Paper{}).Where("status = ?", string(researchhub.PaperApproved))
	return r.page(query, offset, limit, "created_at DESC, id DESC")
}

func (r *PaperRepository) MostViewed(offset, limit uint64) ([]*researchhub.Paper, uint64, error) {
	query := r.driver.db.Model(&Paper{}).Where("status = ?", string(researchhub.PaperApproved))
	return r.page(query, offset, limit, "view_count DESC, created_at DESC, id DESC")
}

func (r *PaperRepository) ByUploader(userID int, offset, limit uint64) ([]*researchhub.Paper, uint64, error) {
	query := r.driver.db.Model(&Paper{}).Where("uploader_id = ?", userID)
	return r.page(query, offset, limit, "created_at DESC, id DESC")
}

func (r *PaperRepository) CountByUploader(userID int) (uint64, error) {
	var count uint64
	err := r.driver.db.Model(&Paper{}).Where("uploader_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PaperRepository) Count() (uint64, error) {
	var count uint64
	err := r.driver.db.Model(&Paper{}).Count(&count).Error
	return count, err
}

func (r *PaperRepository) CountByStatus(status researchhub.PaperStatus) (uint64, error) {
	var count uint64
	err := r.driver.db.Model(&Paper{}).Where("status = ?", string(status)).Count(&count).Error
	return count, err
}

func (r *PaperRepository) page(query *gorm.DB, offset, limit uint64, order string) ([]*researchhub.Paper, uint64, error) {
	var total uint64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	papers, err := r.fetch(query, offset, limit, order)
	return papers, total, err
}

func (r *PaperRepository) fetch(query *gorm.DB, offset, limit uint64, order string) ([]*researchhub.Paper, error) {
	var dbPapers []Paper
	err := query.
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&dbPapers).
		Error
	if err != nil {
		return nil, err
	}

	categories, err := r.categoriesFor(paperIDs(dbPapers))
	if err != nil {
		return nil, err
	}

	papers := make([]*researchhub.Paper, len(dbPapers))
	for i, dbPaper := range dbPapers {
		papers[i] = dbPaper.format(categories[dbPaper.ID])
	}
	return papers, nil
}

func (r *PaperRepository) categoriesFor(ids []int) (map[int][]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var joins []PaperCategory
	err := r.driver.db.
		Where("paper_id IN (?)", ids).
		Find(&joins).
		Error
	if err != nil {
		return nil, err
	}

	categories := make(map[int][]int, len(ids))
	for _, join := range joins {
		categories[join.PaperID] = append(categories[join.PaperID], join.CategoryID)
	}
	return categories, nil
}

func paperIDs(papers []Paper) []int {
	ids := make([]int, len(papers))
	for i, paper := range papers {
		ids[i] = paper.ID
	}
	return ids
}
