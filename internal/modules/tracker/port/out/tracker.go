package out

import (
	"context"

	"unitrack/internal/modules/tracker/domain"
)

// RecordStore persists one record set per account email. A missing or
// unreadable set loads as empty; SaveSet always writes the whole set.
type RecordStore interface {
	LoadSet(ctx context.Context, email string) ([]domain.Application, error)
	SaveSet(ctx context.Context, email string, records []domain.Application) error
}
