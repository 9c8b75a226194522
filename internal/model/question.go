package model

import "strconv"

// MaxAttempts is the number of times a question may be served before it
// drops out of the eligible pool.
const MaxAttempts = 3

// MaxBatchSize caps how many questions a single selection returns.
const MaxBatchSize = 3

// DialogueTurn is one utterance in the dialogue snippet
type DialogueTurn struct {
	Speaker string `json:"speaker" bson:"speaker"`
	Text    string `json:"text" bson:"text"`
}

// Question is a dialogue snippet with two candidate doctor responses
type Question struct {
	ID                string         `json:"_id" bson:"_id,omitempty"`
	SummarizedContext string         `json:"summarizedContext" bson:"summarizedContext"`
	DialogueChunk     []DialogueTurn `json:"dialogueChunk" bson:"dialogueChunk"`
	ConcernType       string         `json:"concernType" bson:"concernType"`
	DoctorResponse1   string         `json:"doctorResponse1" bson:"doctorResponse1"`
	DoctorResponse2   string         `json:"doctorResponse2" bson:"doctorResponse2"`
	AnsweredTimes     AttemptCount   `json:"answeredTimes" bson:"answeredTimes"`
}

// Eligible reports whether the question may still be served. Text
// counters only qualify when they spell a number below MaxAttempts
// exactly, matching the store query.
func (q *Question) Eligible() bool {
	c := q.AnsweredTimes
	switch c.Kind() {
	case CountMissing:
		return true
	case CountNumeric:
		return c.Value() < MaxAttempts
	case CountText:
		n, err := strconv.Atoi(c.Text())
		return err == nil && n >= 0 && n < MaxAttempts && strconv.Itoa(n) == c.Text()
	default:
		return false
	}
}

// Pagination mirrors the paged listing envelope
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// SinglePage is the envelope used for sampled batches, which are never paged
func SinglePage(total int64) Pagination {
	return Pagination{CurrentPage: 1, TotalPages: 1, TotalCount: total}
}

// NewPagination builds the envelope for a page of the full listing
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// QuestionsResponse is returned by the question listing endpoints
type QuestionsResponse struct {
	Questions  []*Question `json:"questions"`
	Pagination Pagination  `json:"pagination"`
}
