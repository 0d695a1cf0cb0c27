package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumigen/lumigen/application/port/outbound"
	"github.com/lumigen/lumigen/domain/entity"
)

type GenerationRepositoryAdapter struct {
	db *sql.DB
}

func NewGenerationRepositoryAdapter(db *sql.DB) outbound.GenerationRepository {
	return &GenerationRepositoryAdapter{db: db}
}

func (r *GenerationRepositoryAdapter) Create(ctx context.Context, record *entity.GenerationRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if record.ID == "" || record.UserID == "" || record.Prompt == "" {
		return fmt.Errorf("record ID, user ID, and prompt are required")
	}

	query := `
		INSERT INTO generations (id, user_id, prompt, asset_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.Prompt,
		record.AssetID,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create generation record: %w", err)
	}
	return nil
}

func (r *GenerationRepositoryAdapter) FindByUser(ctx context.Context, userID string, limit int) ([]*entity.GenerationRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, user_id, prompt, asset_id, created_at
		FROM generations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generation records: %w", err)
	}
	defer rows.Close()

	var records []*entity.GenerationRecord
	for rows.Next() {
		var record entity.GenerationRecord
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Prompt,
			&record.AssetID,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan generation record: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate generation records: %w", err)
	}
	return records, nil
}
