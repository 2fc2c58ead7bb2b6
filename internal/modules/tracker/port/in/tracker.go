package in

import (
	"context"

	"unitrack/internal/modules/tracker/dto"
)

// Usecase operates on the record set of the currently signed-in account.
// Every call re-checks the active session; all methods return
// apperrors.ErrNotSignedIn when no account is authenticated.
type Usecase interface {
	List(ctx context.Context) ([]dto.Record, error)
	Get(ctx context.Context, id string) (dto.Record, error)
	Upsert(ctx context.Context, record dto.Record) (dto.Record, error)
	Remove(ctx context.Context, id string) error
	Stats(ctx context.Context) (dto.StatsOutput, error)
}
