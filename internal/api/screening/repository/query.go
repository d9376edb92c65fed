package screeningRepository

const (
	queryCreateImage = `
		INSERT INTO images (
			id,
			user_id,
			image_name,
			image_path,
			image_format,
			image_size_kb,
			uploaded_at
		) VALUES (
			:id,
			:user_id,
			:image_name,
			:image_path,
			:image_format,
			:image_size_kb,
			:uploaded_at
		)
	`

	queryCreatePrediction = `
		INSERT INTO predictions (
			id,
			user_id,
			image_id,
			predicted_label,
			confidence_score,
			model_version,
			processing_time_ms,
			raw_output,
			extra_metadata,
			status,
			created_at
		) VALUES (
			:id,
			:user_id,
			:image_id,
			:predicted_label,
			:confidence_score,
			:model_version,
			:processing_time_ms,
			:raw_output,
			:extra_metadata,
			:status,
			:created_at
		)
	`

	queryGetPredictionsByUserID = `
		SELECT
			id,
			user_id,
			image_id,
			predicted_label,
			confidence_score,
			model_version,
			processing_time_ms,
			raw_output,
			extra_metadata,
			status,
			created_at
		FROM predictions
		WHERE user_id = :user_id
		ORDER BY created_at DESC
	`

	queryCountPredictionsByUserID = `
		SELECT COUNT(id) AS total
		FROM predictions
		WHERE user_id = :user_id
	`
)
