package entity

import "time"

type Image struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	ImageName   string    `db:"image_name"`
	ImagePath   string    `db:"image_path"`
	ImageFormat string    `db:"image_format"`
	ImageSizeKB int       `db:"image_size_kb"`
	UploadedAt  time.Time `db:"uploaded_at"`
}

type Prediction struct {
	ID               string    `db:"id"`
	UserID           string    `db:"user_id"`
	ImageID          string    `db:"image_id"`
	PredictedLabel   string    `db:"predicted_label"`
	ConfidenceScore  float64   `db:"confidence_score"`
	ModelVersion     string    `db:"model_version"`
	ProcessingTimeMs int64     `db:"processing_time_ms"`
	RawOutput        string    `db:"raw_output"`
	ExtraMetadata    string    `db:"extra_metadata"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
}
