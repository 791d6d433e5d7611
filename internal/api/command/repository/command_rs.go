package commandRepository

import (
	"context"
	"database/sql"
	"time"

	"CafeInventory/internal/entity"
	contextPkg "CafeInventory/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type CommandLogDB struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	RawText       string         `db:"raw_text"`
	Transcript    sql.NullString `db:"transcript"`
	AudioURL      sql.NullString `db:"audio_url"`
	Action        sql.NullString `db:"action"`
	ItemName      sql.NullString `db:"item_name"`
	Quantity      float64        `db:"quantity"`
	UnitName      sql.NullString `db:"unit_name"`
	Status        string         `db:"status"`
	Error         sql.NullString `db:"error"`
	ResultMessage sql.NullString `db:"result_message"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (d CommandLogDB) toEntity() entity.CommandLog {
	return entity.CommandLog{
		ID:            d.ID,
		UserID:        d.UserID,
		RawText:       d.RawText,
		Transcript:    d.Transcript.String,
		AudioURL:      d.AudioURL.String,
		Action:        d.Action.String,
		ItemName:      d.ItemName.String,
		Quantity:      d.Quantity,
		UnitName:      d.UnitName.String,
		Status:        d.Status,
		Error:         d.Error.String,
		ResultMessage: d.ResultMessage.String,
		CreatedAt:     d.CreatedAt,
	}
}

func (r *commandLogRepository) CreateCommandLog(ctx context.Context, commandLog entity.CommandLog) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":             commandLog.ID,
		"user_id":        commandLog.UserID,
		"raw_text":       commandLog.RawText,
		"transcript":     commandLog.Transcript,
		"audio_url":      commandLog.AudioURL,
		"action":         commandLog.Action,
		"item_name":      commandLog.ItemName,
		"quantity":       commandLog.Quantity,
		"unit_name":      commandLog.UnitName,
		"status":         commandLog.Status,
		"error":          commandLog.Error,
		"result_message": commandLog.ResultMessage,
		"created_at":     commandLog.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateCommandLog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateCommandLog")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating command log")
		return err
	}

	return nil
}

func (r *commandLogRepository) GetCommandLogsByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.CommandLog, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var logsDB []CommandLogDB

	argsKV := map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
		"offset":  offset,
	}

	query, args, err := sqlx.Named(queryGetCommandLogsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for GetCommandLogsByUserID")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &logsDB, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing command logs")
		return nil, err
	}

	logs := make([]entity.CommandLog, 0, len(logsDB))
	for _, d := range logsDB {
		logs = append(logs, d.toEntity())
	}

	return logs, nil
}

func (r *commandLogRepository) CountCommandLogsByUserID(ctx context.Context, userID string) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	query, args, err := sqlx.Named(queryCountCommandLogsByUserID, map[string]interface{}{"user_id": userID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CountCommandLogsByUserID")
		return 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when counting command logs")
		return 0, err
	}

	return total, nil
}
