// PlantDiseaseDetector | 2026
// dto.go

package disease

import (
	"time"
)

type CreateRequest struct {
	Name           string `json:"name"           validate:"required,min=1,max=255"`
	Reason         string `json:"reason"`
	Recommendation string `json:"recommendation"`
}

type DiseaseResponse struct {
	Name           string `json:"name"`
	Reason         string `json:"reason"`
	Recommendation string `json:"recommendation"`
}

// DetectionResponse is the upload pipeline's answer: the resolved
// catalog entry (predicted or sentinel) plus where the image landed.
type DetectionResponse struct {
	DiseasesName   string    `json:"diseases_name"`
	Reason         string    `json:"reason"`
	Recommendation string    `json:"recommendation"`
	Time           time.Time `json:"time"`
	ImageURL       string    `json:"image_url"`
}

type SeedResponse struct {
	Status         string `json:"status"`
	Created        int    `json:"created"`
	Duplicates     int    `json:"duplicates"`
	TotalProcessed int    `json:"total_processed"`
}

func ToDiseaseResponse(d *Disease) DiseaseResponse {
	return DiseaseResponse{
		Name:           d.Name,
		Reason:         d.Reason,
		Recommendation: d.Recommendations,
	}
}

func ToDiseaseResponseList(diseases []Disease) []DiseaseResponse {
	responses := make([]DiseaseResponse, 0, len(diseases))
	for _, d := range diseases {
		responses = append(responses, ToDiseaseResponse(&d))
	}
	return responses
}
