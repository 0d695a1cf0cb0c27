package entity

import (
	"database/sql"
	"time"
)

// GenerationRecord is the immutable outcome of one generation request.
// AssetID is empty when generation failed.
type GenerationRecord struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Prompt    string         `json:"prompt"`
	AssetID   sql.NullString `json:"asset_id"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewGenerationRecord(id, userID, prompt, assetID string) *GenerationRecord {
	rec := &GenerationRecord{
		ID:        id,
		UserID:    userID,
		Prompt:    prompt,
		CreatedAt: time.Now(),
	}
	if assetID != "" {
		rec.AssetID = sql.NullString{String: assetID, Valid: true}
	}
	return rec
}
