package outbound

import (
	"context"

	"github.com/lumigen/lumigen/domain/entity"
)

type GenerationRepository interface {
	Create(ctx context.Context, record *entity.GenerationRecord) error
	FindByUser(ctx context.Context, userID string, limit int) ([]*entity.GenerationRecord, error)
}
