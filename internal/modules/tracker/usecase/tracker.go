package usecase

import (
	"context"
	"fmt"
	"sync"

	apperrors "unitrack/internal/platform/errors"

	accountin "unitrack/internal/modules/account/port/in"
	"unitrack/internal/modules/tracker/domain"
	"unitrack/internal/modules/tracker/dto"
	"unitrack/internal/modules/tracker/port/in"
	"unitrack/internal/modules/tracker/service"
)

// Interactor caches the record set of exactly one account. Every call
// re-checks the active session; when the signed-in email changes, the cache
// is dropped before the new account's set is loaded, so one account's
// records are never visible under another identity.
type Interactor struct {
	svc      *service.RecordService
	accounts accountin.Usecase

	mu      sync.Mutex
	loaded  bool
	email   string
	records []domain.Application
}

func NewInteractor(svc *service.RecordService, accounts accountin.Usecase) in.Usecase {
	return &Interactor{svc: svc, accounts: accounts}
}

func (i *Interactor) List(ctx context.Context) ([]dto.Record, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureLocked(ctx); err != nil {
		return nil, err
	}
	out := make([]dto.Record, 0, len(i.records))
	for _, record := range i.records {
		out = append(out, toRecord(record))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, recordID string) (dto.Record, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureLocked(ctx); err != nil {
		return dto.Record{}, err
	}
	for _, record := range i.records {
		if record.ID == recordID {
			return toRecord(record), nil
		}
	}
	return dto.Record{}, fmt.Errorf("%w: record %q", apperrors.ErrNotFound, recordID)
}

func (i *Interactor) Upsert(ctx context.Context, record dto.Record) (dto.Record, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureLocked(ctx); err != nil {
		return dto.Record{}, err
	}
	next, stored, err := i.svc.Upsert(ctx, i.email, i.records, fromRecord(record))
	if err != nil {
		return dto.Record{}, err
	}
	i.records = next
	return toRecord(stored), nil
}

func (i *Interactor) Remove(ctx context.Context, recordID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureLocked(ctx); err != nil {
		return err
	}
	next, err := i.svc.Remove(ctx, i.email, i.records, recordID)
	if err != nil {
		return err
	}
	i.records = next
	return nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureLocked(ctx); err != nil {
		return dto.StatsOutput{}, err
	}
	stats := domain.ComputeStats(i.records)
	return dto.StatsOutput{
		Total:    stats.Total,
		Applied:  stats.Applied,
		Accepted: stats.Accepted,
		Pending:  stats.Pending,
	}, nil
}

// ensureLocked resolves the active session and (re)loads the record set when
// the account changed since the last call. Nothing is ever saved before this
// load has happened, so a save can never clobber unseen stored data.
func (i *Interactor) ensureLocked(ctx context.Context) error {
	session, err := i.accounts.Current(ctx)
	if err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}
	if !session.Authenticated {
		i.loaded = false
		i.email = ""
		i.records = nil
		return apperrors.ErrNotSignedIn
	}
	if i.loaded && i.email == session.Email {
		return nil
	}
	i.loaded = false
	i.records = nil
	records, err := i.svc.Load(ctx, session.Email)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	i.records = records
	i.email = session.Email
	i.loaded = true
	return nil
}

func toRecord(record domain.Application) dto.Record {
	record = record.Clone()
	return dto.Record{
		ID:          record.ID,
		University:  record.University,
		Course:      record.Course,
		Deadline:    record.Deadline,
		Status:      string(record.Status),
		UniAssist:   record.UniAssist,
		VPDRequired: record.VPDRequired,
		Documents:   record.Documents,
		Notes:       record.Notes,
	}
}

func fromRecord(record dto.Record) domain.Application {
	return domain.Application{
		ID:          record.ID,
		University:  record.University,
		Course:      record.Course,
		Deadline:    record.Deadline,
		Status:      domain.Status(record.Status),
		UniAssist:   record.UniAssist,
		VPDRequired: record.VPDRequired,
		Documents:   record.Documents.Clone(),
		Notes:       record.Notes,
	}
}
