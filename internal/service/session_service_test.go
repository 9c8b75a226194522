package service

import (
	"context"
	"testing"
	"time"

	"medeval/internal/model"

	"go.uber.org/zap/zaptest"
)

type sessionFixture struct {
	svc         *SessionService
	questions   *fakeQuestionRepo
	submissions *fakeSubmissionRepo
	cache       *fakeSessionCache
	clock       time.Time
}

func newSessionFixture(t *testing.T, questions ...*model.Question) *sessionFixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	f := &sessionFixture{
		questions:   newFakeQuestionRepo(questions...),
		submissions: &fakeSubmissionRepo{},
		cache:       newFakeSessionCache(),
		clock:       time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC),
	}
	qs := NewQuestionService(f.questions, logger)
	subs := NewSubmissionService(f.submissions, logger)
	subs.now = func() time.Time { return f.clock }
	f.svc = NewSessionService(f.cache, f.questions, qs, subs, logger)
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func fullScores(v int) model.ResponseEvaluations {
	e := model.Evaluation{Helpfulness: v, Clarity: v, Reassurance: v, Feasibility: v, MedicalAccuracy: v}
	return model.ResponseEvaluations{Response1: e, Response2: e}
}

func TestSessionStartRequiresAnnotator(t *testing.T) {
	f := newSessionFixture(t, numericQuestion("a", 0))
	if _, err := f.svc.Start(context.Background(), model.PersonalInfo{AnnotatorID: "  "}); CodeOf(err) != ErrorValidation {
		t.Fatalf("err = %v", err)
	}
}

func TestSessionFlow(t *testing.T) {
	f := newSessionFixture(t, numericQuestion("a", 0), textQuestion("b", "1"), numericQuestion("c", 3))
	ctx := context.Background()

	view, err := f.svc.Start(ctx, model.PersonalInfo{AnnotatorID: "ann-7", Gender: model.GenderOther})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(view.Questions) != 2 || len(view.Session.QuestionIDs) != 2 || view.Done {
		t.Fatalf("view = %+v", view)
	}
	id := view.Session.ID

	f.clock = f.clock.Add(45 * time.Second)
	got, err := f.svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ElapsedSeconds != 45 || len(got.Questions) != 2 {
		t.Fatalf("resumed view = %+v", got)
	}

	for i, qid := range view.Session.QuestionIDs {
		res, err := f.svc.Answer(ctx, id, model.AnswerRequest{QuestionID: qid, Evaluation: fullScores(4)})
		if err != nil {
			t.Fatalf("Answer %s: %v", qid, err)
		}
		if res.CurrentIndex != i+1 || res.Done != (i == 1) {
			t.Fatalf("result after %s = %+v", qid, res)
		}
	}

	if f.questions.count("a").Value() != 1 || f.questions.count("b").Value() != 2 {
		t.Fatalf("counters a=%s b=%s", f.questions.count("a"), f.questions.count("b"))
	}
	if len(f.submissions.submissions) != 2 {
		t.Fatalf("submissions = %d", len(f.submissions.submissions))
	}
	stored := f.submissions.submissions[0]
	if stored.PersonalInfo.AnnotatorID != "ann-7" || stored.QuestionID == "" {
		t.Fatalf("stored submission = %+v", stored)
	}

	_, err = f.svc.Answer(ctx, id, model.AnswerRequest{QuestionID: "a", Evaluation: fullScores(4)})
	if CodeOf(err) != ErrorValidation {
		t.Fatalf("second answer err = %v", err)
	}
}

func TestSessionAnswerValidation(t *testing.T) {
	f := newSessionFixture(t, numericQuestion("a", 0))
	ctx := context.Background()
	view, err := f.svc.Start(ctx, model.PersonalInfo{AnnotatorID: "ann"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	id := view.Session.ID

	incomplete := fullScores(3)
	incomplete.Response2.Feasibility = 0
	cases := []model.AnswerRequest{
		{QuestionID: "", Evaluation: fullScores(3)},
		{QuestionID: "zzz", Evaluation: fullScores(3)},
		{QuestionID: "a", Evaluation: incomplete},
		{QuestionID: "a", Evaluation: fullScores(6)},
	}
	for _, req := range cases {
		if _, err := f.svc.Answer(ctx, id, req); CodeOf(err) != ErrorValidation {
			t.Fatalf("Answer(%+v) err = %v", req, err)
		}
	}
	if f.questions.count("a").Value() != 0 || len(f.submissions.submissions) != 0 {
		t.Fatalf("rejected answers must not touch the store")
	}
}

func TestSessionRetryAfterRecorderFailureCountsOnce(t *testing.T) {
	f := newSessionFixture(t, numericQuestion("a", 0))
	ctx := context.Background()
	view, err := f.svc.Start(ctx, model.PersonalInfo{AnnotatorID: "ann"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	id := view.Session.ID

	f.submissions.err = errStoreDown
	if _, err := f.svc.Answer(ctx, id, model.AnswerRequest{QuestionID: "a", Evaluation: fullScores(2)}); CodeOf(err) != ErrorStore {
		t.Fatalf("err = %v", err)
	}

	f.submissions.err = nil
	res, err := f.svc.Answer(ctx, id, model.AnswerRequest{QuestionID: "a", Evaluation: fullScores(2)})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !res.Done {
		t.Fatalf("session not done after only question")
	}
	if got := f.questions.count("a").Value(); got != 1 {
		t.Fatalf("counter = %d, want 1", got)
	}
}

func TestSessionNotFound(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Get(ctx, "missing"); CodeOf(err) != ErrorNotFound {
		t.Fatalf("Get err = %v", err)
	}
	if _, err := f.svc.Answer(ctx, "missing", model.AnswerRequest{QuestionID: "a"}); CodeOf(err) != ErrorNotFound {
		t.Fatalf("Answer err = %v", err)
	}
}

func TestSessionEmptyPool(t *testing.T) {
	f := newSessionFixture(t, numericQuestion("a", 3))
	view, err := f.svc.Start(context.Background(), model.PersonalInfo{AnnotatorID: "ann"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !view.Done || view.Questions == nil || len(view.Questions) != 0 {
		t.Fatalf("view = %+v", view)
	}
}

func TestSessionCacheFailure(t *testing.T) {
	f := newSessionFixture(t, numericQuestion("a", 0))
	f.cache.err = errStoreDown
	if _, err := f.svc.Start(context.Background(), model.PersonalInfo{AnnotatorID: "ann"}); CodeOf(err) != ErrorStore {
		t.Fatalf("err = %v", err)
	}
}
