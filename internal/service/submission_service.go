package service

import (
	"context"
	"time"

	"medeval/internal/model"
	"medeval/internal/repository"

	"go.uber.org/zap"
)

// SubmissionService stores rating records
type SubmissionService struct {
	submissionRepo repository.SubmissionRepo
	broadcaster    Broadcaster
	logger         *zap.Logger
	now            func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(submissionRepo repository.SubmissionRepo, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		broadcaster:    nopBroadcaster{},
		logger:         logger,
		now:            time.Now,
	}
}

// SetBroadcaster sets the live feed used for submission events
func (s *SubmissionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Record stores sub with a server-assigned timestamp. Any client
// timestamp is discarded; the contents are not validated.
func (s *SubmissionService) Record(ctx context.Context, sub *model.Submission) (*model.SubmissionReceipt, error) {
	sub.Timestamp = model.FormatTimestamp(s.now())

	id, err := s.submissionRepo.Create(ctx, sub)
	if err != nil {
		return nil, NewStoreError("insert submission", err)
	}

	s.logger.Info("submission recorded",
		zap.String("id", id),
		zap.String("annotator_id", sub.PersonalInfo.AnnotatorID),
		zap.String("question_id", sub.QuestionID))
	s.broadcaster.Broadcast(model.EventSubmissionRecorded, model.SubmissionEvent{
		ID:          id,
		AnnotatorID: sub.PersonalInfo.AnnotatorID,
		QuestionID:  sub.QuestionID,
		Timestamp:   sub.Timestamp,
	})

	return &model.SubmissionReceipt{ID: id, Timestamp: sub.Timestamp}, nil
}

// ListAll returns every submission, newest first
func (s *SubmissionService) ListAll(ctx context.Context) ([]*model.Submission, error) {
	subs, err := s.submissionRepo.ListNewestFirst(ctx)
	if err != nil {
		return nil, NewStoreError("list submissions", err)
	}
	if subs == nil {
		subs = []*model.Submission{}
	}
	return subs, nil
}
