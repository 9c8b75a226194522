package rest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"medeval/internal/model"
)

type memQuestionRepo struct {
	mu        sync.Mutex
	questions []*model.Question
}

func (r *memQuestionRepo) find(id string) *model.Question {
	for _, q := range r.questions {
		if q.ID == id {
			return q
		}
	}
	return nil
}

func (r *memQuestionRepo) eligible() []*model.Question {
	var out []*model.Question
	for _, q := range r.questions {
		if q.Eligible() {
			out = append(out, q)
		}
	}
	return out
}

func (r *memQuestionRepo) CountEligible(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.eligible())), nil
}

func (r *memQuestionRepo) SampleEligible(ctx context.Context, size int) ([]*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pool := r.eligible()
	if size > len(pool) {
		size = len(pool)
	}
	out := []*model.Question{}
	for _, q := range pool[:size] {
		cp := *q
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memQuestionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := r.find(id)
	if q == nil {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (r *memQuestionRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Question, error) {
	out := []*model.Question{}
	for _, id := range ids {
		if q, _ := r.GetByID(ctx, id); q != nil {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *memQuestionRepo) IncrementAttempts(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := r.find(id)
	if q == nil || q.AnsweredTimes.Kind() != model.CountNumeric {
		return false, nil
	}
	q.AnsweredTimes = q.AnsweredTimes.Next()
	return true, nil
}

func (r *memQuestionRepo) ReplaceAttempts(ctx context.Context, id string, prev model.AttemptCount, next int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := r.find(id)
	if q == nil || q.AnsweredTimes != prev {
		return false, nil
	}
	q.AnsweredTimes = model.NumericCount(next)
	return true, nil
}

func (r *memQuestionRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.questions)), nil
}

func (r *memQuestionRepo) List(ctx context.Context, skip, limit int64) ([]*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Question{}
	for i := skip; i < int64(len(r.questions)) && i < skip+limit; i++ {
		out = append(out, r.questions[i])
	}
	return out, nil
}

func (r *memQuestionRepo) InsertMany(ctx context.Context, questions []*model.Question) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, q := range questions {
		r.questions = append(r.questions, q)
		ids = append(ids, q.ID)
	}
	return ids, nil
}

func (r *memQuestionRepo) attempts(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(id).AnsweredTimes.Value()
}

type memSubmissionRepo struct {
	mu          sync.Mutex
	submissions []*model.Submission
	fail        bool
}

func (r *memSubmissionRepo) Create(ctx context.Context, s *model.Submission) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return "", errors.New("connection refused")
	}
	s.ID = fmt.Sprintf("%024x", len(r.submissions)+1)
	cp := *s
	r.submissions = append(r.submissions, &cp)
	return s.ID, nil
}

func (r *memSubmissionRepo) ListNewestFirst(ctx context.Context) ([]*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errors.New("connection refused")
	}
	out := append([]*model.Submission{}, r.submissions...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }
