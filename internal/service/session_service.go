package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medeval/internal/cache"
	"medeval/internal/model"
	"medeval/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService walks one annotator through a batch of questions.
// Progress lives in the session cache so a client can reload and resume.
type SessionService struct {
	sessionCache    cache.SessionCache
	questionRepo    repository.QuestionRepo
	questionService *QuestionService
	submissions     *SubmissionService
	logger          *zap.Logger
	now             func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionCache cache.SessionCache,
	questionRepo repository.QuestionRepo,
	questionService *QuestionService,
	submissions *SubmissionService,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		sessionCache:    sessionCache,
		questionRepo:    questionRepo,
		questionService: questionService,
		submissions:     submissions,
		logger:          logger,
		now:             time.Now,
	}
}

// Start registers the annotator's details and selects their batch
func (s *SessionService) Start(ctx context.Context, info model.PersonalInfo) (*model.SessionView, error) {
	info.AnnotatorID = strings.TrimSpace(info.AnnotatorID)
	if info.AnnotatorID == "" {
		return nil, NewValidationError("annotatorId is required")
	}

	batch, err := s.questionService.SelectBatch(ctx, model.MaxBatchSize)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := &model.AnnotationSession{
		ID:           uuid.New().String(),
		PersonalInfo: info,
		QuestionIDs:  make([]string, 0, len(batch.Questions)),
		Attempted:    []string{},
		Answered:     []string{},
		StartedAt:    now,
		UpdatedAt:    now,
	}
	for _, q := range batch.Questions {
		session.QuestionIDs = append(session.QuestionIDs, q.ID)
	}

	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, NewStoreError("save session", err)
	}

	s.logger.Info("annotation session started",
		zap.String("session_id", session.ID),
		zap.String("annotator_id", info.AnnotatorID),
		zap.Int("questions", len(session.QuestionIDs)))

	return s.view(session, batch.Questions), nil
}

// Get returns the session with its questions
func (s *SessionService) Get(ctx context.Context, id string) (*model.SessionView, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.GetByIDs(ctx, session.QuestionIDs)
	if err != nil {
		return nil, NewStoreError("find session questions", err)
	}
	return s.view(session, questions), nil
}

// Answer records the ratings for one question of the session. The
// attempt counter is bumped at most once per question, so retrying
// after a failed insert does not count the question twice.
func (s *SessionService) Answer(ctx context.Context, id string, req model.AnswerRequest) (*model.AnswerResult, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	questionID := strings.TrimSpace(req.QuestionID)
	switch {
	case questionID == "":
		return nil, NewValidationError("questionId is required")
	case !session.HasQuestion(questionID):
		return nil, NewValidationError("question is not part of this session")
	case session.HasAnswered(questionID):
		return nil, NewValidationError("question was already answered")
	}
	if err := checkEvaluations(req.Evaluation); err != nil {
		return nil, err
	}

	if !session.HasAttempted(questionID) {
		if err := s.questionService.RecordAttempt(ctx, questionID); err != nil {
			return nil, err
		}
		session.MarkAttempted(questionID)
		if err := s.save(ctx, session); err != nil {
			return nil, err
		}
	}

	receipt, err := s.submissions.Record(ctx, &model.Submission{
		PersonalInfo: session.PersonalInfo,
		Evaluation:   req.Evaluation,
		QuestionID:   questionID,
	})
	if err != nil {
		return nil, err
	}

	session.MarkAnswered(questionID)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return &model.AnswerResult{
		SubmissionID: receipt.ID,
		Timestamp:    receipt.Timestamp,
		Done:         session.Done(),
		CurrentIndex: session.CurrentIndex,
	}, nil
}

func (s *SessionService) load(ctx context.Context, id string) (*model.AnnotationSession, error) {
	session, err := s.sessionCache.Get(ctx, id)
	if err != nil {
		return nil, NewStoreError("load session", err)
	}
	if session == nil {
		return nil, NewNotFoundError("Session not found or expired")
	}
	return session, nil
}

func (s *SessionService) save(ctx context.Context, session *model.AnnotationSession) error {
	session.UpdatedAt = s.now().UTC()
	if err := s.sessionCache.Set(ctx, session); err != nil {
		return NewStoreError("save session", err)
	}
	return nil
}

func (s *SessionService) view(session *model.AnnotationSession, questions []*model.Question) *model.SessionView {
	if questions == nil {
		questions = []*model.Question{}
	}
	return &model.SessionView{
		Session:        session,
		Questions:      questions,
		ElapsedSeconds: int64(session.Elapsed(s.now()) / time.Second),
		Done:           session.Done(),
	}
}

func checkEvaluations(e model.ResponseEvaluations) error {
	var problems []string
	if missing := e.Response1.MissingCriteria(); len(missing) > 0 {
		problems = append(problems, "response1: "+strings.Join(missing, ", "))
	}
	if missing := e.Response2.MissingCriteria(); len(missing) > 0 {
		problems = append(problems, "response2: "+strings.Join(missing, ", "))
	}
	if len(problems) > 0 {
		return NewValidationError(fmt.Sprintf("scores between %d and %d are required (%s)",
			model.MinScore, model.MaxScore, strings.Join(problems, "; ")))
	}
	return nil
}
