package screeningRepository

import (
	"DermAssist/internal/entity"
	contextPkg "DermAssist/pkg/context"
	"context"
	"database/sql"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type PredictionDB struct {
	ID               sql.NullString  `db:"id"`
	UserID           sql.NullString  `db:"user_id"`
	ImageID          sql.NullString  `db:"image_id"`
	PredictedLabel   sql.NullString  `db:"predicted_label"`
	ConfidenceScore  sql.NullFloat64 `db:"confidence_score"`
	ModelVersion     sql.NullString  `db:"model_version"`
	ProcessingTimeMs sql.NullInt64   `db:"processing_time_ms"`
	RawOutput        sql.NullString  `db:"raw_output"`
	ExtraMetadata    sql.NullString  `db:"extra_metadata"`
	Status           sql.NullString  `db:"status"`
	CreatedAt        sql.NullTime    `db:"created_at"`
}

func (r *imageRepository) CreateImage(c context.Context, image entity.Image) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":            image.ID,
		"user_id":       image.UserID,
		"image_name":    image.ImageName,
		"image_path":    image.ImagePath,
		"image_format":  image.ImageFormat,
		"image_size_kb": image.ImageSizeKB,
		"uploaded_at":   image.UploadedAt,
	}

	query, args, err := sqlx.Named(queryCreateImage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateImage")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating image record")
		return err
	}

	return nil
}

func (r *predictionRepository) CreatePrediction(c context.Context, prediction entity.Prediction) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":                 prediction.ID,
		"user_id":            prediction.UserID,
		"image_id":           prediction.ImageID,
		"predicted_label":    prediction.PredictedLabel,
		"confidence_score":   prediction.ConfidenceScore,
		"model_version":      prediction.ModelVersion,
		"processing_time_ms": prediction.ProcessingTimeMs,
		"raw_output":         prediction.RawOutput,
		"extra_metadata":     prediction.ExtraMetadata,
		"status":             prediction.Status,
		"created_at":         prediction.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreatePrediction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreatePrediction")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating prediction record")
		return err
	}

	return nil
}

func (r *predictionRepository) GetByUserID(c context.Context, userID string) ([]entity.Prediction, error) {
	requestID := contextPkg.GetRequestID(c)
	var predictions []PredictionDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetPredictionsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByUserID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := sqlx.SelectContext(c, r.q, &predictions, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByUserID execution err")
		return nil, err
	}

	result := make([]entity.Prediction, 0, len(predictions))
	for _, prediction := range predictions {
		result = append(result, r.makePrediction(prediction))
	}

	return result, nil
}

func (r *predictionRepository) CountByUserID(c context.Context, userID string) (int, error) {
	requestID := contextPkg.GetRequestID(c)
	var total int

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryCountPredictionsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountByUserID named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountByUserID execution err")
		return 0, err
	}

	return total, nil
}

func (r *predictionRepository) makePrediction(row PredictionDB) entity.Prediction {
	return entity.Prediction{
		ID:               row.ID.String,
		UserID:           row.UserID.String,
		ImageID:          row.ImageID.String,
		PredictedLabel:   row.PredictedLabel.String,
		ConfidenceScore:  row.ConfidenceScore.Float64,
		ModelVersion:     row.ModelVersion.String,
		ProcessingTimeMs: row.ProcessingTimeMs.Int64,
		RawOutput:        row.RawOutput.String,
		ExtraMetadata:    row.ExtraMetadata.String,
		Status:           row.Status.String,
		CreatedAt:        row.CreatedAt.Time,
	}
}
