package dto

import "time"

// ProfileStats aggregates every attempt of the user. AvgResult has one
// decimal.
type ProfileStats struct {
	TestsCompleted int     `json:"testsCompleted"`
	AvgResult      float64 `json:"avgResult"`
	TotalCorrect   int     `json:"totalCorrect"`
	TotalQuestions int     `json:"totalQuestions"`
}

type DateParts struct {
	Day   int    `json:"day"`
	Month string `json:"month"`
	Year  int    `json:"year"`
}

// TestHistoryEntry is one of the recent attempts on the profile page.
type TestHistoryEntry struct {
	ID         int64     `json:"id"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
	Date       string    `json:"date"`
	DateParts  DateParts `json:"dateParts"`
}

type BestCompetence struct {
	Competence    string  `json:"competence"`
	AvgPercentage float64 `json:"avg_percentage"`
	TimesTested   int     `json:"times_tested"`
}

// ProfileSummary is the digest shown in the profile header.
type ProfileSummary struct {
	TotalTests     int     `json:"totalTests"`
	AvgPercentage  float64 `json:"avgPercentage"`
	SuccessRate    float64 `json:"successRate"`
	BestCompetence string  `json:"bestCompetence,omitempty"`
	LastTestDate   string  `json:"lastTestDate,omitempty"`
}

// ProfileResponse is returned by GET /api/profile.
// @Description User profile with statistics
type ProfileResponse struct {
	Success         bool               `json:"success"`
	User            UserResponse       `json:"user"`
	Stats           ProfileStats       `json:"stats"`
	TestHistory     []TestHistoryEntry `json:"testHistory"`
	BestCompetences []BestCompetence   `json:"bestCompetences"`
	Summary         ProfileSummary     `json:"summary"`
}

type ProfileTestInfo struct {
	TestID      int64     `json:"testId"`
	Date        string    `json:"date"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Percentage  float64   `json:"percentage"`
	CompletedAt time.Time `json:"completedAt"`
}

// ProfileTestResponse is returned by GET /api/profile/test/:id.
type ProfileTestResponse struct {
	Success           bool                       `json:"success"`
	TestInfo          ProfileTestInfo            `json:"testInfo"`
	CompetenceResults []CompetenceResultResponse `json:"competenceResults"`
	Summary           AttemptStats               `json:"summary"`
}
