package dto

import "github.com/google/uuid"

type JobRecommendationResponse struct {
	JobID       uuid.UUID `json:"jobId"`
	Title       string    `json:"title"`
	CompanyName string    `json:"companyName"`
	Location    string    `json:"location"`
	Score       float64   `json:"score"`
	Reasons     []string  `json:"reasons"`
}

type CandidateRecommendationResponse struct {
	CandidateID uuid.UUID `json:"candidateId"`
	Name        string    `json:"name"`
	Score       float64   `json:"score"`
	Reasons     []string  `json:"reasons"`
}
