package service

import (
	"context"
	"strconv"
	"strings"

	"medeval/internal/model"
	"medeval/internal/repository"

	"go.uber.org/zap"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// QuestionService selects question batches and keeps attempt counters
type QuestionService struct {
	questionRepo repository.QuestionRepo
	broadcaster  Broadcaster
	logger       *zap.Logger
}

// NewQuestionService creates a new question service
func NewQuestionService(questionRepo repository.QuestionRepo, logger *zap.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		broadcaster:  nopBroadcaster{},
		logger:       logger,
	}
}

// SetBroadcaster sets the live feed used for attempt events
func (s *QuestionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ParseLimit turns the raw limit query value into a batch size.
// Absent or unparseable values select a full batch.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return model.MaxBatchSize
	}
	return clamp(n, 0, model.MaxBatchSize)
}

// SelectBatch returns up to limit eligible questions chosen uniformly at
// random without replacement, plus the eligible total at query time.
func (s *QuestionService) SelectBatch(ctx context.Context, limit int) (*model.QuestionsResponse, error) {
	limit = clamp(limit, 0, model.MaxBatchSize)

	total, err := s.questionRepo.CountEligible(ctx)
	if err != nil {
		return nil, NewStoreError("count eligible questions", err)
	}

	size := limit
	if int64(size) > total {
		size = int(total)
	}

	questions := []*model.Question{}
	if size > 0 {
		questions, err = s.questionRepo.SampleEligible(ctx, size)
		if err != nil {
			return nil, NewStoreError("sample questions", err)
		}
	}

	return &model.QuestionsResponse{
		Questions:  questions,
		Pagination: model.SinglePage(total),
	}, nil
}

// RecordAttempt adds one to the question's counter. Numeric counters are
// incremented atomically; legacy counters are rewritten as numbers.
// Calling it twice counts twice.
func (s *QuestionService) RecordAttempt(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return NewValidationError("questionId is required")
	}

	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return NewStoreError("find question", err)
	}
	if question == nil {
		return NewNotFoundError("Question not found")
	}

	matched, err := s.bump(ctx, id, question.AnsweredTimes)
	if err != nil {
		return NewStoreError("update question", err)
	}
	if !matched {
		return NewNotFoundError("Question not found")
	}

	s.logger.Debug("attempt recorded",
		zap.String("question_id", id),
		zap.Stringer("previous", question.AnsweredTimes))
	s.broadcaster.Broadcast(model.EventAttemptRecorded, model.AttemptEvent{QuestionID: id})
	return nil
}

func (s *QuestionService) bump(ctx context.Context, id string, prev model.AttemptCount) (bool, error) {
	if prev.Kind() == model.CountNumeric {
		return s.questionRepo.IncrementAttempts(ctx, id)
	}

	matched, err := s.questionRepo.ReplaceAttempts(ctx, id, prev, prev.Next().Value())
	if err != nil || matched {
		return matched, err
	}
	// Someone else normalized the counter first
	return s.questionRepo.IncrementAttempts(ctx, id)
}

// ParsePage reads page and limit query values for the admin listing
func ParsePage(rawPage, rawLimit string) (int, int) {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < 1 {
		limit = DefaultPageSize
	}
	return page, clamp(limit, 1, MaxPageSize)
}

// ListPage returns one page of every question, eligible or not
func (s *QuestionService) ListPage(ctx context.Context, page, limit int) (*model.QuestionsResponse, error) {
	if page < 1 {
		page = 1
	}
	limit = clamp(limit, 1, MaxPageSize)

	total, err := s.questionRepo.Count(ctx)
	if err != nil {
		return nil, NewStoreError("count questions", err)
	}

	questions, err := s.questionRepo.List(ctx, int64(page-1)*int64(limit), int64(limit))
	if err != nil {
		return nil, NewStoreError("list questions", err)
	}

	return &model.QuestionsResponse{
		Questions:  questions,
		Pagination: model.NewPagination(page, limit, total),
	}, nil
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
