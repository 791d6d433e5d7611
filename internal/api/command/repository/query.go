package commandRepository

const (
	queryCreateCommandLog = `
		INSERT INTO command_logs (
			id, user_id, raw_text, transcript, audio_url, action, item_name,
			quantity, unit_name, status, error, result_message, created_at
		) VALUES (
			:id, :user_id, :raw_text, :transcript, :audio_url, :action, :item_name,
			:quantity, :unit_name, :status, :error, :result_message, :created_at
		)
	`

	queryGetCommandLogsByUserID = `
		SELECT
			id, user_id, raw_text, transcript, audio_url, action, item_name,
			quantity, unit_name, status, error, result_message, created_at
		FROM command_logs
		WHERE user_id = :user_id
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountCommandLogsByUserID = `
		SELECT COUNT(*) FROM command_logs WHERE user_id = :user_id
	`
)
