package moderation

import (
	"fmt"
	"strings"
	"time"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/log"
)

type Service struct {
	papers   researchhub.PaperRepository
	comments researchhub.CommentRepository
	users    researchhub.UserRepository
	store    researchhub.ModerationStore
	index    researchhub.PaperIndex
	logger   log.Logger
}

func NewService(
	papers researchhub.PaperRepository,
	comments researchhub.CommentRepository,
	users researchhub.UserRepository,
	store researchhub.ModerationStore,
	index researchhub.PaperIndex,
	logger log.Logger,
) *Service {
	return &Service{
		papers:   papers,
		comments: comments,
		users:    users,
		store:    store,
		index:    index,
		logger:   logger,
	}
}

type PaperList struct {
	Papers     []*researchhub.Paper   `json:"papers"`
	Pagination researchhub.Pagination `json:"pagination"`
}

type CommentList struct {
	Comments   []*researchhub.Comment `json:"comments"`
	Pagination researchhub.Pagination `json:"pagination"`
}

// ApprovePaper moves a paper to APPROVED. Re-approving a rejected paper
// is allowed and clears the rejection reason. The transition and the
// uploader notification commit as one unit.
func (s *Service) ApprovePaper(paperID, moderatorID int) (*researchhub.Paper, error) {
	if _, err := s.users.Get(moderatorID); err != nil {
		return nil, err
	}
	paper, err := s.paper(paperID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	paper.Status = researchhub.PaperApproved
	paper.RejectionReason = ""
	paper.ReviewedAt = &now
	paper.ReviewedBy = moderatorID

	err = s.transition(
		func(n *researchhub.Notification) error { return s.store.SavePaperReview(paper, n) },
		paper.UploaderID,
		researchhub.NotifPaperApproved,
		"Paper approved",
		fmt.Sprintf("Your paper %q has been approved", paper.Title),
		paper.ID, researchhub.RelatedPaper,
	)
	if err != nil {
		return nil, err
	}

	s.reindex(paper)
	return paper, nil
}

// RejectPaper moves a paper to REJECTED. The reason is required: the
// uploader is owed an explanation.
func (s *Service) RejectPaper(paperID int, reason string, moderatorID int) (*researchhub.Paper, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, errors.New("rejection reason is required", errors.BadRequest())
	}
	if _, err := s.users.Get(moderatorID); err != nil {
		return nil, err
	}
	paper, err := s.paper(paperID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	paper.Status = researchhub.PaperRejected
	paper.RejectionReason = reason
	paper.ReviewedAt = &now
	paper.ReviewedBy = moderatorID

	err = s.transition(
		func(n *researchhub.Notification) error { return s.store.SavePaperReview(paper, n) },
		paper.UploaderID,
		researchhub.NotifPaperRejected,
		"Paper rejected",
		fmt.Sprintf("Your paper %q has been rejected: %s", paper.Title, reason),
		paper.ID, researchhub.RelatedPaper,
	)
	if err != nil {
		return nil, err
	}

	s.reindex(paper)
	return paper, nil
}

// ApproveComment is silent: only a rejection requires explaining why.
func (s *Service) ApproveComment(commentID, moderatorID int) (*researchhub.Comment, error) {
	if _, err := s.users.Get(moderatorID); err != nil {
		return nil, err
	}
	comment, err := s.comments.Get(commentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment.Status = researchhub.CommentApproved
	comment.ModerationReason = ""
	comment.ModeratedAt = &now
	comment.ModeratedBy = moderatorID

	err = s.transition(
		func(n *researchhub.Notification) error { return s.store.SaveCommentReview(comment, n) },
		0, "", "", "", 0, "",
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) RejectComment(commentID int, reason string, moderatorID int) (*researchhub.Comment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, errors.New("rejection reason is required", errors.BadRequest())
	}
	if _, err := s.users.Get(moderatorID); err != nil {
		return nil, err
	}
	comment, err := s.comments.Get(commentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment.Status = researchhub.CommentRejected
	comment.ModerationReason = reason
	comment.ModeratedAt = &now
	comment.ModeratedBy = moderatorID

	err = s.transition(
		func(n *researchhub.Notification) error { return s.store.SaveCommentReview(comment, n) },
		comment.AuthorID,
		researchhub.NotifCommentRejected,
		"Comment rejected",
		fmt.Sprintf("Your comment has been rejected: %s", reason),
		comment.ID, researchhub.RelatedComment,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) PendingPapers(offset, limit uint64) (PaperList, error) {
	papers, total, err := s.papers.ByStatus(researchhub.PaperPending, offset, limit)
	if err != nil {
		return PaperList{}, err
	}

	return PaperList{
		Papers: papers,
		Pagination: researchhub.Pagination{
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	}, nil
}

func (s *Service) CommentsByStatus(status researchhub.CommentStatus, offset, limit uint64) (CommentList, error) {
	comments, total, err := s.comments.ByStatus(status, offset, limit)
	if err != nil {
		return CommentList{}, err
	}

	return CommentList{
		Comments: comments,
		Pagination: researchhub.Pagination{
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	}, nil
}

// transition commits a moderation decision together with its
// notification side effect. A zero recipient (anonymous upload) or an
// empty type (silent transition) skips the notification but still
// commits the decision.
func (s *Service) transition(
	save func(*researchhub.Notification) error,
	recipientID int,
	typ researchhub.NotificationType,
	title, message string,
	relatedID int,
	relatedType researchhub.RelatedType,
) error {
	var notification *researchhub.Notification
	if typ != "" && recipientID != 0 {
		notification = &researchhub.Notification{
			UserID:      recipientID,
			Title:       title,
			Message:     message,
			Type:        typ,
			RelatedID:   relatedID,
			RelatedType: relatedType,
			CreatedAt:   time.Now(),
		}
	} else if typ != "" {
		s.logger.Printf("skipping %s notification, no uploader on record", typ)
	}

	return save(notification)
}

// Search visibility is gated by status, so the index entry has to be
// refreshed after every committed paper transition. A stale index is
// recoverable; the commit is not rolled back for it.
func (s *Service) reindex(paper *researchhub.Paper) {
	if err := s.index.Index(paper); err != nil {
		s.logger.Errorf("could not reindex paper %d: %v", paper.ID, err)
	}
}

func (s *Service) paper(id int) (*researchhub.Paper, error) {
	papers, err := s.papers.Get(id)
	if err != nil {
		return nil, err
	}
	if len(papers) == 0 {
		return nil, errors.New(fmt.Sprintf("no paper for id %d", id), errors.NotFound())
	}
	return papers[0], nil
}
