package service

import (
	"context"
	"fmt"

	apperrors "unitrack/internal/platform/errors"
	"unitrack/internal/platform/id"

	"unitrack/internal/modules/tracker/domain"
	"unitrack/internal/modules/tracker/port/out"
)

// RecordService owns the record-set mutations. Every mutation validates,
// rewrites the in-memory set and persists the whole set in one write.
type RecordService struct {
	store out.RecordStore
	idGen id.Generator
}

func NewRecordService(store out.RecordStore, idGen id.Generator) *RecordService {
	return &RecordService{store: store, idGen: idGen}
}

func (s *RecordService) Load(ctx context.Context, email string) ([]domain.Application, error) {
	return s.store.LoadSet(ctx, email)
}

// Upsert replaces a record in place when its id is already present,
// otherwise assigns a fresh id and prepends. Returns the new set and the
// stored record.
func (s *RecordService) Upsert(ctx context.Context, email string, records []domain.Application, record domain.Application) ([]domain.Application, domain.Application, error) {
	if err := record.Validate(); err != nil {
		return records, domain.Application{}, fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, err)
	}

	next := make([]domain.Application, 0, len(records)+1)
	replaced := false
	if record.ID != "" {
		for _, existing := range records {
			if existing.ID == record.ID {
				next = append(next, record)
				replaced = true
				continue
			}
			next = append(next, existing)
		}
	}
	if !replaced {
		record.ID = s.idGen.New()
		next = append([]domain.Application{record}, records...)
	}

	if err := s.store.SaveSet(ctx, email, next); err != nil {
		return records, domain.Application{}, fmt.Errorf("save records: %w", err)
	}
	return next, record, nil
}

// Remove drops the record with the given id. An absent id is a no-op and
// nothing is written.
func (s *RecordService) Remove(ctx context.Context, email string, records []domain.Application, recordID string) ([]domain.Application, error) {
	next := make([]domain.Application, 0, len(records))
	found := false
	for _, existing := range records {
		if existing.ID == recordID {
			found = true
			continue
		}
		next = append(next, existing)
	}
	if !found {
		return records, nil
	}
	if err := s.store.SaveSet(ctx, email, next); err != nil {
		return records, fmt.Errorf("save records: %w", err)
	}
	return next, nil
}
