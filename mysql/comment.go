package mysql

import (
	"github.com/jinzhu/gorm"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
)

type CommentRepository struct {
	driver *Driver
}

func NewCommentRepository(driver *Driver) *CommentRepository {
	return &CommentRepository{driver: driver}
}

func (r *CommentRepository) Get(id int) (*researchhub.Comment, error) {
	var dbComment Comment
	err := r.driver.db.Where("id = ?", id).First(&dbComment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, errors.New("comment not found", errors.NotFound())
	} else if err != nil {
		return nil, err
	}
	return dbComment.format(), nil
}

func (r *CommentRepository) Insert(comment *researchhub.Comment) error {
	dbComment := newComment(*comment)
	if err := r.driver.db.Create(&dbComment).Error; err != nil {
		return err
	}
	comment.ID = dbComment.ID
	return nil
}

func (r *CommentRepository) Update(comment *researchhub.Comment) error {
	dbComment := newComment(*comment)
	return r.driver.db.Save(&dbComment).Error
}

func (r *CommentRepository) Delete(id int) error {
	return r.driver.db.Delete(Comment{ID: id}).Error
}

func (r *CommentRepository) ByPaper(paperID int) ([]*researchhub.Comment, error) {
	var dbComments []Comment
	err := r.driver.db.
		Where("paper_id = ? AND status = ?", paperID, string(researchhub.CommentApproved)).
		Order("created_at DESC, id DESC").
		Find(&dbComments).
		Error
	if err != nil {
		return nil, err
	}
	return formatComments(dbComments), nil
}

func (r *CommentRepository) ByStatus(status researchhub.CommentStatus, offset, limit uint64) ([]*researchhub.Comment, uint64, error) {
	query := r.driver.db.Model(&Comment{}).Where("status = ?", string(status))
	return r.page(query, offset, limit)
}

func (r *CommentRepository) ByAuthor(authorID int) ([]*researchhub.Comment, error) {
	var dbComments []Comment
	err := r.driver.db.
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&dbComments).
		Error
	if err != nil {
		return nil, err
	}
	return formatComments(dbComments), nil
}

func (r *CommentRepository) CountByPaper(paperID int) (uint64, error) {
	var count uint64
	err := r.driver.db.
		Model(&Comment{}).
		Where("paper_id = ? AND status = ?", paperID, string(researchhub.CommentApproved)).
		Count(&count).
		Error
	return count, err
}

func (r *CommentRepository) Count() (uint64, error) {
	var count uint64
	err := r.driver.db.Model(&Comment{}).Count(&count).Error
	return count, err
}

func (r *CommentRepository) DeleteByPaper(paperID int) error {
	return r.driver.db.Where("paper_id = ?", paperID).Delete(Comment{}).Error
}

func (r *CommentRepository) DeleteByAuthor(userID int) error {
	return r.driver.db.Where("author_id = ?", userID).Delete(Comment{}).Error
}

func (r *CommentRepository) page(query *gorm.DB, offset, limit uint64) ([]*researchhub.Comment, uint64, error) {
	var total uint64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dbComments []Comment
	err := query.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&dbComments).
		Error
	if err != nil {
		return nil, 0, err
	}

	return formatComments(dbComments), total, nil
}

func formatComments(dbComments []Comment) []*researchhub.Comment {
	comments := make([]*researchhub.Comment, len(dbComments))
	for i, dbComment := range dbComments {
		comments[i] = dbComment.format()
	}
	return comments
}
