package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"medeval/internal/model"
)

var errStoreDown = errors.New("store unavailable")

// fakeQuestionRepo keeps questions in memory and applies the same
// counter rules as the Mongo filters.
type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[string]*model.Question
	order     []string
	err       error

	increments int
	replaces   int
	// beforeReplace runs inside ReplaceAttempts to simulate a concurrent writer
	beforeReplace func(q *model.Question)
}

func newFakeQuestionRepo(questions ...*model.Question) *fakeQuestionRepo {
	r := &fakeQuestionRepo{questions: map[string]*model.Question{}}
	for _, q := range questions {
		r.questions[q.ID] = q
		r.order = append(r.order, q.ID)
	}
	return r
}

func (r *fakeQuestionRepo) eligible() []*model.Question {
	var out []*model.Question
	for _, id := range r.order {
		if q := r.questions[id]; q.Eligible() {
			out = append(out, q)
		}
	}
	return out
}

func (r *fakeQuestionRepo) CountEligible(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.eligible())), nil
}

func (r *fakeQuestionRepo) SampleEligible(ctx context.Context, size int) ([]*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	pool := r.eligible()
	if size > len(pool) {
		size = len(pool)
	}
	out := make([]*model.Question, size)
	for i := 0; i < size; i++ {
		cp := *pool[i]
		out[i] = &cp
	}
	return out, nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	q, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuestionRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Question, error) {
	var out []*model.Question
	for _, id := range ids {
		q, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if q != nil {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) IncrementAttempts(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	q, ok := r.questions[id]
	if !ok || q.AnsweredTimes.Kind() != model.CountNumeric {
		return false, nil
	}
	r.increments++
	q.AnsweredTimes = q.AnsweredTimes.Next()
	return true, nil
}

func (r *fakeQuestionRepo) ReplaceAttempts(ctx context.Context, id string, prev model.AttemptCount, next int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	q, ok := r.questions[id]
	if !ok {
		return false, nil
	}
	if r.beforeReplace != nil {
		r.beforeReplace(q)
	}
	if q.AnsweredTimes != prev {
		return false, nil
	}
	r.replaces++
	q.AnsweredTimes = model.NumericCount(next)
	return true, nil
}

func (r *fakeQuestionRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.order)), nil
}

func (r *fakeQuestionRepo) List(ctx context.Context, skip, limit int64) ([]*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	ids := append([]string(nil), r.order...)
	sort.Strings(ids)
	out := []*model.Question{}
	for i := skip; i < int64(len(ids)) && i < skip+limit; i++ {
		out = append(out, r.questions[ids[i]])
	}
	return out, nil
}

func (r *fakeQuestionRepo) InsertMany(ctx context.Context, questions []*model.Question) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, q := range questions {
		if q.ID == "" {
			q.ID = fmt.Sprintf("q%d", len(r.order)+1)
		}
		r.questions[q.ID] = q
		r.order = append(r.order, q.ID)
		ids = append(ids, q.ID)
	}
	return ids, nil
}

func (r *fakeQuestionRepo) count(id string) model.AttemptCount {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.questions[id].AnsweredTimes
}

type fakeSubmissionRepo struct {
	mu          sync.Mutex
	submissions []*model.Submission
	err         error
}

func (r *fakeSubmissionRepo) Create(ctx context.Context, submission *model.Submission) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	submission.ID = fmt.Sprintf("%024x", len(r.submissions)+1)
	cp := *submission
	r.submissions = append(r.submissions, &cp)
	return submission.ID, nil
}

func (r *fakeSubmissionRepo) ListNewestFirst(ctx context.Context) ([]*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := append([]*model.Submission(nil), r.submissions...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

type recordedEvent struct {
	eventType string
	payload   interface{}
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *fakeBroadcaster) Broadcast(eventType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{eventType, payload})
}

func (b *fakeBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, e := range b.events {
		out = append(out, e.eventType)
	}
	return out
}

func textQuestion(id, count string) *model.Question {
	return &model.Question{ID: id, AnsweredTimes: model.TextCount(count)}
}

func numericQuestion(id string, count int) *model.Question {
	return &model.Question{ID: id, AnsweredTimes: model.NumericCount(count)}
}

type fakeSessionCache struct {
	mu       sync.Mutex
	sessions map[string][]byte
	err      error
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{sessions: map[string][]byte{}}
}

func (c *fakeSessionCache) Set(ctx context.Context, session *model.AnnotationSession) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	c.sessions[session.ID] = data
	return nil
}

func (c *fakeSessionCache) Get(ctx context.Context, id string) (*model.AnnotationSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	data, ok := c.sessions[id]
	if !ok {
		return nil, nil
	}
	var session model.AnnotationSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *fakeSessionCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, id)
	return nil
}
