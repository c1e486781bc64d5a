package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"formguard/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ValidationRecord is one persisted verdict.
type ValidationRecord struct {
	ID                uuid.UUID `db:"id"`
	UserID            uuid.UUID `db:"user_id"`
	FormType          string    `db:"form_type"`
	Status            string    `db:"status"`
	CompletenessScore int       `db:"completeness_score"`
	ComplianceScore   int       `db:"compliance_score"`
	PoliciesChecked   int       `db:"policies_checked"`
	Result            string    `db:"result"`
	CreatedAt         time.Time `db:"created_at"`
}

// ValidationRepository stores the validation history for audit and review.
type ValidationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewValidationRepository(db *pgxpool.Pool, logger *zap.Logger) *ValidationRepository {
	return &ValidationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ValidationRepository) Save(ctx context.Context, userID uuid.UUID, result *models.ValidationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal validation result: %w", err)
	}

	query := squirrel.Insert("validations").
		Columns("id", "user_id", "form_type", "status", "completeness_score", "compliance_score", "policies_checked", "result", "created_at").
		Values(uuid.New(), userID, result.FormType, string(result.Status),
			result.CompletenessScore, result.ComplianceScore, result.PoliciesChecked,
			string(payload), time.Now()).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ValidationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*ValidationRecord, error) {
	query := squirrel.Select("id", "user_id", "form_type", "status", "completeness_score", "compliance_score", "policies_checked", "result", "created_at").
		From("validations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*ValidationRecord
	for rows.Next() {
		var rec ValidationRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.FormType, &rec.Status,
			&rec.CompletenessScore, &rec.ComplianceScore, &rec.PoliciesChecked,
			&rec.Result, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}
