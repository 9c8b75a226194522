package model

// Live feed event types
const (
	EventSubmissionRecorded = "submission_recorded"
	EventAttemptRecorded    = "attempt_recorded"
)

// AttemptEvent is sent after a question's counter was bumped
type AttemptEvent struct {
	QuestionID string `json:"questionId"`
}

// SubmissionEvent is sent after a rating was stored
type SubmissionEvent struct {
	ID          string `json:"id"`
	AnnotatorID string `json:"annotatorId"`
	QuestionID  string `json:"questionId,omitempty"`
	Timestamp   string `json:"timestamp"`
}
