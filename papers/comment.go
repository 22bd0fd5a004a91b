package papers

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
)

const maxCommentLength = 1000

// Comment adds a comment on a paper. New comments are approved right
// away; pre-moderation is the admin's job after the fact.
func (s *Service) Comment(paperID, authorID int, content string) (*researchhub.Comment, error) {
	if _, err := s.Get(paperID); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := researchhub.Comment{
		Content:   strings.TrimSpace(content),
		AuthorID:  authorID,
		PaperID:   paperID,
		Status:    researchhub.CommentApproved,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Insert(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// EditComment updates the content. Only the author can edit; any edit
// flags the comment as edited.
func (s *Service) EditComment(commentID, callerID int, content string) (*researchhub.Comment, error) {
	comment, err := s.comments.Get(commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != callerID {
		return nil, errors.New("not your comment", errors.Forbidden())
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	comment.Content = strings.TrimSpace(content)
	comment.Edited = true
	comment.UpdatedAt = time.Now()
	if err := s.comments.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) DeleteComment(commentID, callerID int, isAdmin bool) error {
	comment, err := s.comments.Get(commentID)
	if err != nil {
		return err
	}
	if !isAdmin && comment.AuthorID != callerID {
		return errors.New("not your comment", errors.Forbidden())
	}

	return s.comments.Delete(commentID)
}

// CommentsOn lists the approved comments of a paper, newest first.
func (s *Service) CommentsOn(paperID int) ([]*researchhub.Comment, error) {
	if _, err := s.Get(paperID); err != nil {
		return nil, err
	}
	return s.comments.ByPaper(paperID)
}

func validateContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return errors.New("comment content must not be blank", errors.BadRequest())
	}
	if utf8.RuneCountInString(trimmed) > maxCommentLength {
		return errors.New("comment content is limited to 1000 characters", errors.BadRequest())
	}
	return nil
}
