package model

import "time"

// TimestampLayout is the ISO-8601 form used for submission timestamps.
// Fixed width keeps lexicographic order equal to chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type AgeGroup string

// AgeGroups lists the selectable age brackets in display order
var AgeGroups = []AgeGroup{"10-19", "20-29", "30-39", "40-49", "50-59", "60-69", "70-79"}

type EducationLevel string

const (
	EducationHighSchool EducationLevel = "High School"
	EducationBachelor   EducationLevel = "Bachelor's"
	EducationMaster     EducationLevel = "Master's"
	EducationPhD        EducationLevel = "PhD"
	EducationOther      EducationLevel = "Other"
)

// PersonalInfo is the demographic snapshot an annotator enters once per session
type PersonalInfo struct {
	AnnotatorID    string         `json:"annotatorId" bson:"annotatorId"`
	Gender         Gender         `json:"gender" bson:"gender"`
	AgeGroup       AgeGroup       `json:"ageGroup" bson:"ageGroup"`
	EducationLevel EducationLevel `json:"educationLevel" bson:"educationLevel"`
}

// Evaluation holds the five criterion scores for one doctor response
type Evaluation struct {
	Helpfulness     int `json:"helpfulness" bson:"helpfulness"`
	Clarity         int `json:"clarity" bson:"clarity"`
	Reassurance     int `json:"reassurance" bson:"reassurance"`
	Feasibility     int `json:"feasibility" bson:"feasibility"`
	MedicalAccuracy int `json:"medicalAccuracy" bson:"medicalAccuracy"`
}

const (
	MinScore = 1
	MaxScore = 5
)

// Criteria names the scores in export order
var Criteria = []string{"helpfulness", "clarity", "reassurance", "feasibility", "medicalAccuracy"}

// Scores returns the criterion values in Criteria order
func (e Evaluation) Scores() []int {
	return []int{e.Helpfulness, e.Clarity, e.Reassurance, e.Feasibility, e.MedicalAccuracy}
}

// MissingCriteria returns the names of scores that are unset or out of range
func (e Evaluation) MissingCriteria() []string {
	var missing []string
	for i, v := range e.Scores() {
		if v < MinScore || v > MaxScore {
			missing = append(missing, Criteria[i])
		}
	}
	return missing
}

// Complete reports whether every criterion has a score in range
func (e Evaluation) Complete() bool {
	return len(e.MissingCriteria()) == 0
}

// ResponseEvaluations pairs the ratings for both candidate responses
type ResponseEvaluations struct {
	Response1 Evaluation `json:"response1" bson:"response1"`
	Response2 Evaluation `json:"response2" bson:"response2"`
}

// Submission is one stored rating record
type Submission struct {
	ID           string              `json:"id" bson:"_id,omitempty"`
	PersonalInfo PersonalInfo        `json:"personalInfo" bson:"personalInfo"`
	Evaluation   ResponseEvaluations `json:"evaluation" bson:"evaluation"`
	Timestamp    string              `json:"timestamp" bson:"timestamp"`
	QuestionID   string              `json:"questionId,omitempty" bson:"questionId,omitempty"`
}

// SubmissionReceipt is what the recorder returns after an insert
type SubmissionReceipt struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
}
