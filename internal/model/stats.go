package model

// RecentSubmission is a row in the admin overview
type RecentSubmission struct {
	AnnotatorID string `json:"annotatorId"`
	Timestamp   string `json:"timestamp"`
}

// AdminStats summarizes collected data for the admin overview
type AdminStats struct {
	TotalSubmissions int                `json:"totalSubmissions"`
	AnnotatorCount   int                `json:"annotatorCount"`
	Recent           []RecentSubmission `json:"recent"`
}
