package model

import "time"

// AnnotationSession is the progress of one annotator through a batch
type AnnotationSession struct {
	ID           string       `json:"id"`
	PersonalInfo PersonalInfo `json:"personalInfo"`
	QuestionIDs  []string     `json:"questionIds"`
	CurrentIndex int          `json:"currentIndex"`
	Attempted    []string     `json:"attempted"`
	Answered     []string     `json:"answered"`
	StartedAt    time.Time    `json:"startedAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// HasQuestion reports whether id belongs to the session's batch
func (s *AnnotationSession) HasQuestion(id string) bool {
	return contains(s.QuestionIDs, id)
}

// HasAttempted reports whether the attempt counter was already bumped for id
func (s *AnnotationSession) HasAttempted(id string) bool {
	return contains(s.Attempted, id)
}

// HasAnswered reports whether a submission was recorded for id
func (s *AnnotationSession) HasAnswered(id string) bool {
	return contains(s.Answered, id)
}

// MarkAttempted records a counter increment for id
func (s *AnnotationSession) MarkAttempted(id string) {
	if !s.HasAttempted(id) {
		s.Attempted = append(s.Attempted, id)
	}
}

// MarkAnswered records a submission for id and moves past it
func (s *AnnotationSession) MarkAnswered(id string) {
	if s.HasAnswered(id) {
		return
	}
	s.Answered = append(s.Answered, id)
	for s.CurrentIndex < len(s.QuestionIDs) && s.HasAnswered(s.QuestionIDs[s.CurrentIndex]) {
		s.CurrentIndex++
	}
}

// Done reports whether every question in the batch was answered
func (s *AnnotationSession) Done() bool {
	return len(s.Answered) >= len(s.QuestionIDs)
}

// Elapsed returns how long the session has been running at now
func (s *AnnotationSession) Elapsed(now time.Time) time.Duration {
	if now.Before(s.StartedAt) {
		return 0
	}
	return now.Sub(s.StartedAt)
}

// SessionView is what the session endpoints return
type SessionView struct {
	Session        *AnnotationSession `json:"session"`
	Questions      []*Question        `json:"questions"`
	ElapsedSeconds int64              `json:"elapsedSeconds"`
	Done           bool               `json:"done"`
}

// StartSessionRequest is the body for starting an annotation session
type StartSessionRequest struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
}

// AnswerRequest is the body for rating one question inside a session
type AnswerRequest struct {
	QuestionID string              `json:"questionId"`
	Evaluation ResponseEvaluations `json:"evaluation"`
}

// AnswerResult is returned after a rating was recorded
type AnswerResult struct {
	SubmissionID string `json:"submissionId"`
	Timestamp    string `json:"timestamp"`
	Done         bool   `json:"done"`
	CurrentIndex int    `json:"currentIndex"`
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
