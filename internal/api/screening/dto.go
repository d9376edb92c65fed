package screening

import "time"

type ScanUpload struct {
	Data        []byte
	FileName    string
	ContentType string
}

type PredictResponse struct {
	Diagnosis     string             `json:"diagnosis"`
	DiagnosisName string             `json:"diagnosis_name"`
	RiskLevel     string             `json:"risk_level"`
	Confidence    float64            `json:"confidence"`
	AllScores     map[string]float64 `json:"all_scores"`
	ImageURL      *string            `json:"image_url"`
}

type ScanHistoryItem struct {
	ID               string    `json:"id"`
	PredictedLabel   string    `json:"predicted_label"`
	ConfidenceScore  float64   `json:"confidence_score"`
	RiskLevel        string    `json:"risk_level"`
	DiagnosisName    string    `json:"diagnosis_name"`
	ImageURL         string    `json:"image_url"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	CreatedAt        time.Time `json:"created_at"`
}

// ScanMetadata is the derived prediction metadata persisted as an opaque
// blob and read back verbatim by the history endpoint.
type ScanMetadata struct {
	RiskLevel     string `json:"risk_level"`
	DiagnosisName string `json:"diagnosis_name"`
	ImageURL      string `json:"image_url"`
}
