package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"unitrack/internal/platform/checklist"
	apperrors "unitrack/internal/platform/errors"
	"unitrack/internal/platform/id"
	"unitrack/internal/platform/kv"
	"unitrack/internal/platform/logging"

	accountout "unitrack/internal/modules/account/adapter/out"
	accountdto "unitrack/internal/modules/account/dto"
	accountin "unitrack/internal/modules/account/port/in"
	accountservice "unitrack/internal/modules/account/service"
	accountusecase "unitrack/internal/modules/account/usecase"
	trackerout "unitrack/internal/modules/tracker/adapter/out"
	"unitrack/internal/modules/tracker/dto"
	"unitrack/internal/modules/tracker/port/in"
	"unitrack/internal/modules/tracker/service"
)

type fixture struct {
	store    *kv.Store
	accounts accountin.Usecase
	tracker  in.Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := kv.Open(filepath.Join(t.TempDir(), "unitrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return newFixtureOver(store)
}

// newFixtureOver builds fresh usecases over an existing store, modelling a
// process restart against the same data dir.
func newFixtureOver(store *kv.Store) *fixture {
	log := logging.Nop{}
	accounts := accountusecase.NewInteractor(
		accountservice.NewAccountService(accountout.NewKVRegistryStore(store, log)),
		accountout.NewKVSessionStore(store, log),
		0,
	)
	tracker := NewInteractor(
		service.NewRecordService(trackerout.NewKVRecordStore(store, log), id.UUID{}),
		accounts,
	)
	return &fixture{store: store, accounts: accounts, tracker: tracker}
}

func (f *fixture) signUp(t *testing.T, name, email string) {
	t.Helper()
	_, err := f.accounts.SignUp(context.Background(), accountdto.SignUpInput{
		Name:     name,
		Email:    email,
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("sign up %s: %v", email, err)
	}
}

func (f *fixture) signIn(t *testing.T, email string) {
	t.Helper()
	_, err := f.accounts.SignIn(context.Background(), accountdto.SignInInput{
		Email:    email,
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("sign in %s: %v", email, err)
	}
}

func munichRecord() dto.Record {
	return dto.Record{
		University: "TU Munich",
		Course:     "Informatics",
		Deadline:   "2026-05-31",
		Status:     "Interested",
		UniAssist:  true,
		Documents:  checklist.New("sop", "transcript"),
		Notes:      "ask Prof. Weber for the second letter",
	}
}

func TestOperationsRequireSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.tracker.List(context.Background())
	if !errors.Is(err, apperrors.ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	_, err = f.tracker.Upsert(context.Background(), munichRecord())
	if !errors.Is(err, apperrors.ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
}

func TestUpsertAssignsIDAndPrepends(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.signUp(t, "Ana", "ana@example.com")
	ctx := context.Background()

	first, err := f.tracker.Upsert(ctx, munichRecord())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("expected a generated id")
	}

	second := munichRecord()
	second.University = "RWTH Aachen"
	stored, err := f.tracker.Upsert(ctx, second)
	if err != nil {
		t.Fatalf("upsert second: %v", err)
	}
	if stored.ID == first.ID {
		t.Fatalf("new records must get distinct ids")
	}

	records, err := f.tracker.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || records[0].University != "RWTH Aachen" || records[1].University != "TU Munich" {
		t.Fatalf("expected newest record first, got %+v", records)
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.signUp(t, "Ana", "ana@example.com")
	ctx := context.Background()

	older, err := f.tracker.Upsert(ctx, munichRecord())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	newest := munichRecord()
	newest.University = "RWTH Aachen"
	if _, err := f.tracker.Upsert(ctx, newest); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	older.Status = "Applied"
	if _, err := f.tracker.Upsert(ctx, older); err != nil {
		t.Fatalf("upsert edit: %v", err)
	}

	records, err := f.tracker.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("replacing must not grow the set, got %d records", len(records))
	}
	// Position is preserved on edit.
	if records[1].ID != older.ID || records[1].Status != "Applied" {
		t.Fatalf("expected edited record in place, got %+v", records)
	}
}

func TestUpsertUnchangedIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.signUp(t, "Ana", "ana@example.com")
	ctx := context.Background()

	stored, err := f.tracker.Upsert(ctx, munichRecord())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	before, err := f.tracker.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := f.tracker.Upsert(ctx, stored); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	after, err := f.tracker.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("re-saving an unchanged record must change nothing:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestUpsertRejectsInvalidRecord(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.signUp(t, "Ana", "ana@example.com")

	record := munichRecord()
	record.Course = "   "
	_, err := f.tracker.Upsert(context.Background(), record)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestRemoveMissingIDIsNoop(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.signUp(t, "Ana", "ana@example.com")
	ctx := context.Background()

	if _, err := f.tracker.Upsert(ctx, munichRecord()); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := f.tracker.Remove(ctx, "no-such-id"); err != nil {
		t.Fatalf("remove missing id: %v", err)
	}
	records, err := f.tracker.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("no-op remove must keep the set intact, got %d records", len(records))
	}
}

func TestRecordSetsAreIsolatedPerAccount(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	f.signUp(t, "Ana", "ana@example.com")
	if _, err := f.tracker.Upsert(ctx, munichRecord()); err != nil {
		t.Fatalf("upsert as ana: %v", err)
	}

	f.signUp(t, "Ben", "ben@example.com")
	records, err := f.tracker.List(ctx)
	if err != nil {
		t.Fatalf("list as ben: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("ben must start with an empty set, got %+v", records)
	}
	benRecord := munichRecord()
	benRecord.University = "Heidelberg"
	if _, err := f.tracker.Upsert(ctx, benRecord); err != nil {
		t.Fatalf("upsert as ben: %v", err)
	}

	f.signIn(t, "ana@example.com")
	records, err = f.tracker.List(ctx)
	if err != nil {
		t.Fatalf("list as ana: %v", err)
	}
	if len(records) != 1 || records[0].University != "TU Munich" {
		t.Fatalf("ana must see only her own set, got %+v", records)
	}
}

func TestRecordsRoundTripAcrossRestart(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.signUp(t, "Ana", "ana@example.com")

	record := munichRecord()
	record.Documents.Toggle("sop")
	record.Documents.Add("visa")
	stored, err := f.tracker.Upsert(ctx, record)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	restarted := newFixtureOver(f.store)
	reloaded, err := restarted.tracker.Get(ctx, stored.ID)
	if err != nil {
		t.Fatalf("get after restart: %v", err)
	}
	if !reloaded.Documents.Equal(stored.Documents) {
		t.Fatalf("checklist order and flags must survive persistence:\nwant %v\ngot  %v",
			stored.Documents.Names(), reloaded.Documents.Names())
	}
	if reloaded.Notes != stored.Notes || reloaded.Deadline != stored.Deadline {
		t.Fatalf("record fields must survive persistence, got %+v", reloaded)
	}
}

func TestCorruptRecordSetLoadsEmpty(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.signUp(t, "Ana", "ana@example.com")

	if err := f.store.Put(ctx, "applications:ana@example.com", []byte("{{nonsense")); err != nil {
		t.Fatalf("seed corrupt set: %v", err)
	}

	restarted := newFixtureOver(f.store)
	records, err := restarted.tracker.List(ctx)
	if err != nil {
		t.Fatalf("list over corrupt set: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("corrupt set must load as empty, got %+v", records)
	}
}

func TestStats(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.signUp(t, "Ana", "ana@example.com")

	for _, status := range []string{"Interested", "Applied", "Interview", "Accepted", "Rejected", "Enrolled"} {
		record := munichRecord()
		record.University = "University of " + status
		record.Status = status
		if _, err := f.tracker.Upsert(ctx, record); err != nil {
			t.Fatalf("upsert %s: %v", status, err)
		}
	}

	stats, err := f.tracker.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := dto.StatsOutput{Total: 6, Applied: 5, Accepted: 2, Pending: 3}
	if stats != want {
		t.Fatalf("stats mismatch: want %+v, got %+v", want, stats)
	}
}
