package screeningService

import (
	"DermAssist/internal/api/screening"
	"DermAssist/internal/entity"
	contextPkg "DermAssist/pkg/context"
	"DermAssist/pkg/classifier"
	"DermAssist/pkg/preprocess"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *screeningService) Predict(c context.Context, upload screening.ScanUpload, user *entity.UserLoginData) (screening.PredictResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	if !s.model.Ready() {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"model_state": s.model.State(),
		}).Warn("Prediction requested while model is unavailable")
		return screening.PredictResponse{}, screening.ErrModelUnavailable
	}

	if !screening.IsSupportedMime(upload.ContentType) {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"content_type": upload.ContentType,
		}).Warn("Unsupported upload content type")
		return screening.PredictResponse{}, screening.ErrUnsupportedMediaType
	}

	start := time.Now()

	input, err := preprocess.Normalize(upload.Data)
	if err != nil {
		if errors.Is(err, preprocess.ErrInvalidImage) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Uploaded bytes did not decode as an image")
			return screening.PredictResponse{}, screening.ErrInvalidImage
		}
		return screening.PredictResponse{}, err
	}

	scores, err := s.model.Classify(input)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Model invocation failed")
		if errors.Is(err, classifier.ErrModelUnavailable) {
			return screening.PredictResponse{}, screening.ErrModelUnavailable
		}
		return screening.PredictResponse{}, screening.ErrInferenceFailed
	}

	processingTime := time.Since(start).Milliseconds()

	if len(scores) != screening.LabelCount {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"width":      len(scores),
		}).Error("Model output width does not match taxonomy")
		return screening.PredictResponse{}, screening.ErrInferenceFailed
	}

	idx := argmax(scores)
	label, err := screening.Describe(idx)
	if err != nil {
		return screening.PredictResponse{}, screening.ErrInferenceFailed
	}

	allScores := make(map[string]float64, screening.LabelCount)
	for i, entry := range screening.Labels() {
		allScores[entry.Code] = round4(float64(scores[i]))
	}

	resp := screening.PredictResponse{
		Diagnosis:     label.Code,
		DiagnosisName: label.Name,
		RiskLevel:     string(label.Risk),
		Confidence:    round4(float64(scores[idx])),
		AllScores:     allScores,
		ImageURL:      nil,
	}

	// Persistence is best-effort: a storage or database failure must never
	// fail a classification that already succeeded.
	if user != nil {
		imageURL, err := s.persistScan(c, upload, user.ID, resp, processingTime)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    user.ID,
				"error":      err.Error(),
			}).Error("Failed to persist scan, returning classification anyway")
		} else {
			resp.ImageURL = &imageURL
		}
	}

	s.log.WithFields(logrus.Fields{
		"request_id":         requestID,
		"diagnosis":          resp.Diagnosis,
		"confidence":         resp.Confidence,
		"processing_time_ms": processingTime,
	}).Info("Classification completed")

	return resp, nil
}

// persistScan writes the upload to durable storage first, then creates the
// image and prediction rows in one transaction. On rollback the stored file
// is left behind unreferenced.
func (s *screeningService) persistScan(c context.Context, upload screening.ScanUpload, userID string, result screening.PredictResponse, processingTime int64) (string, error) {
	now := time.Now()

	imageID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return "", err
	}

	ext := s.utils.FileExtension(upload.FileName)
	storedName := fmt.Sprintf("%s.%s", imageID, ext)

	imageURL, err := s.uploadStore.Save(storedName, upload.Data)
	if err != nil {
		return "", err
	}

	rawOutput, err := json.Marshal(result.AllScores)
	if err != nil {
		return "", err
	}

	extraMetadata, err := json.Marshal(screening.ScanMetadata{
		RiskLevel:     result.RiskLevel,
		DiagnosisName: result.DiagnosisName,
		ImageURL:      imageURL,
	})
	if err != nil {
		return "", err
	}

	predictionID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return "", err
	}

	repo, err := s.repo.NewClient(true)
	if err != nil {
		return "", err
	}

	if err := repo.Images.CreateImage(c, entity.Image{
		ID:          imageID,
		UserID:      userID,
		ImageName:   upload.FileName,
		ImagePath:   storedName,
		ImageFormat: ext,
		ImageSizeKB: len(upload.Data) / 1024,
		UploadedAt:  now,
	}); err != nil {
		_ = repo.Rollback()
		return "", err
	}

	if err := repo.Predictions.CreatePrediction(c, entity.Prediction{
		ID:               predictionID,
		UserID:           userID,
		ImageID:          imageID,
		PredictedLabel:   result.Diagnosis,
		ConfidenceScore:  result.Confidence,
		ModelVersion:     s.model.Version(),
		ProcessingTimeMs: processingTime,
		RawOutput:        string(rawOutput),
		ExtraMetadata:    string(extraMetadata),
		Status:           "completed",
		CreatedAt:        now,
	}); err != nil {
		_ = repo.Rollback()
		return "", err
	}

	if err := repo.Commit(); err != nil {
		_ = repo.Rollback()
		return "", err
	}

	return imageURL, nil
}

func (s *screeningService) GetUserScans(c context.Context, userID string) ([]screening.ScanHistoryItem, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	predictions, err := repo.Predictions.GetByUserID(c, userID)
	if err != nil {
		return nil, err
	}

	scans := make([]screening.ScanHistoryItem, 0, len(predictions))
	for _, prediction := range predictions {
		// Derived metadata is read back verbatim from the stored blob, not
		// recomputed against the current taxonomy.
		var meta screening.ScanMetadata
		if err := json.Unmarshal([]byte(prediction.ExtraMetadata), &meta); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id":    requestID,
				"prediction_id": prediction.ID,
				"error":         err.Error(),
			}).Warn("Unparseable scan metadata blob")
		}

		scans = append(scans, screening.ScanHistoryItem{
			ID:               prediction.ID,
			PredictedLabel:   prediction.PredictedLabel,
			ConfidenceScore:  prediction.ConfidenceScore,
			RiskLevel:        meta.RiskLevel,
			DiagnosisName:    meta.DiagnosisName,
			ImageURL:         meta.ImageURL,
			ProcessingTimeMs: prediction.ProcessingTimeMs,
			CreatedAt:        prediction.CreatedAt,
		})
	}

	return scans, nil
}

// argmax returns the index of the highest score, keeping the lowest index on
// ties.
func argmax(scores []float32) int {
	maxIdx := 0
	for i, v := range scores {
		if v > scores[maxIdx] {
			maxIdx = i
		}
	}
	return maxIdx
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
