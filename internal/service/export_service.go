package service

import (
	"context"
	"strconv"
	"strings"

	"medeval/internal/model"
	"medeval/internal/repository"
)

// RecentLimit is how many submissions the admin overview lists
const RecentLimit = 10

// Cell is one named value in an export row
type Cell struct {
	Key   string
	Value string
}

// Row is an ordered list of cells
type Row []Cell

// Get returns the value stored under key
func (r Row) Get(key string) (string, bool) {
	for _, c := range r {
		if c.Key == key {
			return c.Value, true
		}
	}
	return "", false
}

// Keys returns the cell keys in order
func (r Row) Keys() []string {
	keys := make([]string, len(r))
	for i, c := range r {
		keys[i] = c.Key
	}
	return keys
}

// ExportResult is a rendered file ready to be sent to the client
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders collected submissions for administrators
type ExportService struct {
	submissionRepo repository.SubmissionRepo
}

// NewExportService creates a new export service
func NewExportService(submissionRepo repository.SubmissionRepo) *ExportService {
	return &ExportService{submissionRepo: submissionRepo}
}

func (s *ExportService) load(ctx context.Context) ([]*model.Submission, error) {
	subs, err := s.submissionRepo.ListNewestFirst(ctx)
	if err != nil {
		return nil, NewStoreError("list submissions", err)
	}
	return subs, nil
}

// AnnotatorsCSV renders one row per distinct annotator
func (s *ExportService) AnnotatorsCSV(ctx context.Context) (*ExportResult, error) {
	subs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return csvResult("annotators.csv", BuildAnnotatorTable(subs)), nil
}

// ResultsCSV renders one row per submission
func (s *ExportService) ResultsCSV(ctx context.Context) (*ExportResult, error) {
	subs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return csvResult("evaluation_results.csv", BuildResultsTable(subs)), nil
}

// Stats summarizes the stored submissions
func (s *ExportService) Stats(ctx context.Context) (*model.AdminStats, error) {
	subs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return BuildStats(subs), nil
}

func csvResult(filename string, rows []Row) *ExportResult {
	return &ExportResult{
		Filename:    filename,
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte(ToDelimitedText(rows)),
	}
}

// BuildAnnotatorTable returns one row per distinct annotatorId. When an
// annotator appears more than once the first snapshot is kept.
func BuildAnnotatorTable(subs []*model.Submission) []Row {
	seen := make(map[string]bool)
	rows := []Row{}
	for _, sub := range subs {
		info := sub.PersonalInfo
		if seen[info.AnnotatorID] {
			continue
		}
		seen[info.AnnotatorID] = true
		rows = append(rows, Row{
			{"annotatorId", info.AnnotatorID},
			{"gender", string(info.Gender)},
			{"ageGroup", string(info.AgeGroup)},
			{"educationLevel", string(info.EducationLevel)},
		})
	}
	return rows
}

// BuildResultsTable returns one row per submission. formId is the
// 1-based position in subs.
func BuildResultsTable(subs []*model.Submission) []Row {
	rows := make([]Row, 0, len(subs))
	for i, sub := range subs {
		row := Row{
			{"annotatorId", sub.PersonalInfo.AnnotatorID},
			{"formId", strconv.Itoa(i + 1)},
			{"timestamp", sub.Timestamp},
		}
		row = appendScores(row, "response1_", sub.Evaluation.Response1)
		row = appendScores(row, "response2_", sub.Evaluation.Response2)
		row = append(row, Cell{"questionId", sub.QuestionID})
		rows = append(rows, row)
	}
	return rows
}

// appendScores adds the five criteria under prefix. Unset scores are
// left empty.
func appendScores(row Row, prefix string, e model.Evaluation) Row {
	for i, v := range e.Scores() {
		value := ""
		if v != 0 {
			value = strconv.Itoa(v)
		}
		row = append(row, Cell{prefix + model.Criteria[i], value})
	}
	return row
}

// ToDelimitedText renders rows as comma separated text. The header is
// the first row's keys, unquoted. Every value is quoted with embedded
// quotes doubled; rows are joined by "\n" with no trailing newline.
func ToDelimitedText(rows []Row) string {
	if len(rows) == 0 {
		return ""
	}

	headers := rows[0].Keys()
	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		for i, key := range headers {
			if i > 0 {
				b.WriteByte(',')
			}
			value, _ := row.Get(key)
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(value, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String()
}

// BuildStats counts submissions and distinct annotators and lists the
// most recent entries. subs must be newest first.
func BuildStats(subs []*model.Submission) *model.AdminStats {
	annotators := make(map[string]struct{})
	for _, sub := range subs {
		annotators[sub.PersonalInfo.AnnotatorID] = struct{}{}
	}

	recent := []model.RecentSubmission{}
	for i := 0; i < len(subs) && i < RecentLimit; i++ {
		recent = append(recent, model.RecentSubmission{
			AnnotatorID: subs[i].PersonalInfo.AnnotatorID,
			Timestamp:   subs[i].Timestamp,
		})
	}

	return &model.AdminStats{
		TotalSubmissions: len(subs),
		AnnotatorCount:   len(annotators),
		Recent:           recent,
	}
}
