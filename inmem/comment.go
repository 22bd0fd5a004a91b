package inmem

import (
	"sort"
	"sync"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
)

type CommentRepository struct {
	mu       sync.Locker
	comments []researchhub.Comment
	maxID    int
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		mu:       &sync.Mutex{},
		comments: make([]researchhub.Comment, 0),
	}
}

func (r *CommentRepository) Get(id int) (*researchhub.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, comment := range r.comments {
		if comment.ID == id {
			c := comment
			return &c, nil
		}
	}
	return nil, errors.New("comment not found", errors.NotFound())
}

func (r *CommentRepository) Insert(comment *researchhub.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment.ID == 0 {
		r.maxID++
		comment.ID = r.maxID
	} else if comment.ID > r.maxID {
		r.maxID = comment.ID
	}

	r.comments = append(r.comments, *comment)
	return nil
}

func (r *CommentRepository) Update(comment *researchhub.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.comments {
		if c.ID == comment.ID {
			r.comments[i] = *comment
			return nil
		}
	}
	return errors.New("comment not found", errors.NotFound())
}

func (r *CommentRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, comment := range r.comments {
		if comment.ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *CommentRepository) ByPaper(paperID int) ([]*researchhub.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.filter(func(c researchhub.Comment) bool {
		return c.PaperID == paperID && c.Status == researchhub.CommentApproved
	}), nil
}

func (r *CommentRepository) ByStatus(status researchhub.CommentStatus, offset, limit uint64) ([]*researchhub.Comment, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comments := r.filter(func(c researchhub.Comment) bool {
		return c.Status == status
	})

	total := uint64(len(comments))
	if offset >= total {
		return nil, total, nil
	}
	comments = comments[offset:]
	if limit > 0 && uint64(len(comments)) > limit {
		comments = comments[:limit]
	}
	return comments, total, nil
}

func (r *CommentRepository) ByAuthor(authorID int) ([]*researchhub.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.filter(func(c researchhub.Comment) bool {
		return c.AuthorID == authorID
	}), nil
}

func (r *CommentRepository) CountByPaper(paperID int) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return uint64(len(r.filter(func(c researchhub.Comment) bool {
		return c.PaperID == paperID && c.Status == researchhub.CommentApproved
	}))), nil
}

func (r *CommentRepository) Count() (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return uint64(len(r.comments)), nil
}

func (r *CommentRepository) DeleteByPaper(paperID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.comments[:0]
	for _, comment := range r.comments {
		if comment.PaperID != paperID {
			kept = append(kept, comment)
		}
	}
	r.comments = kept
	return nil
}

func (r *CommentRepository) DeleteByAuthor(authorID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.comments[:0]
	for _, comment := range r.comments {
		if comment.AuthorID != authorID {
			kept = append(kept, comment)
		}
	}
	r.comments = kept
	return nil
}

func (r *CommentRepository) filter(keep func(researchhub.Comment) bool) []*researchhub.Comment {
	comments := make([]*researchhub.Comment, 0)
	for i := range r.comments {
		if keep(r.comments[i]) {
			c := r.comments[i]
			comments = append(comments, &c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return comments
}
