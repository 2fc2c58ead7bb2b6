package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	apperrors "unitrack/internal/platform/errors"
	"unitrack/internal/platform/id"
	"unitrack/internal/platform/kv"
	"unitrack/internal/platform/logging"

	accountout "unitrack/internal/modules/account/adapter/out"
	accountdto "unitrack/internal/modules/account/dto"
	accountservice "unitrack/internal/modules/account/service"
	accountusecase "unitrack/internal/modules/account/usecase"
	"unitrack/internal/modules/editor/port/in"
	"unitrack/internal/modules/editor/service"
	trackerout "unitrack/internal/modules/tracker/adapter/out"
	trackerin "unitrack/internal/modules/tracker/port/in"
	trackerservice "unitrack/internal/modules/tracker/service"
	trackerusecase "unitrack/internal/modules/tracker/usecase"
)

var defaultDocuments = []string{"sop", "lor1", "lor2", "transcript", "cv", "languageCert"}

type fixture struct {
	editor  in.Usecase
	tracker trackerin.Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := kv.Open(filepath.Join(t.TempDir(), "unitrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	log := logging.Nop{}
	accounts := accountusecase.NewInteractor(
		accountservice.NewAccountService(accountout.NewKVRegistryStore(store, log)),
		accountout.NewKVSessionStore(store, log),
		0,
	)
	if _, err := accounts.SignUp(context.Background(), accountdto.SignUpInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret",
	}); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	tracker := trackerusecase.NewInteractor(
		trackerservice.NewRecordService(trackerout.NewKVRecordStore(store, log), id.UUID{}),
		accounts,
	)
	editor := NewInteractor(service.NewEditorService(defaultDocuments), tracker)
	return &fixture{editor: editor, tracker: tracker}
}

func TestStartCreateSeedsDefaults(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	draft, err := f.editor.StartCreate(context.Background())
	if err != nil {
		t.Fatalf("start create: %v", err)
	}
	if draft.ID != "" || draft.Status != "Interested" {
		t.Fatalf("unexpected blank draft: %+v", draft)
	}
	if !reflect.DeepEqual(draft.Documents.Names(), defaultDocuments) {
		t.Fatalf("expected default checklist %v, got %v", defaultDocuments, draft.Documents.Names())
	}
	for _, name := range draft.Documents.Names() {
		if done, _ := draft.Documents.Get(name); done {
			t.Fatalf("default checklist items must start unchecked, %q is checked", name)
		}
	}
}

func TestStartEditIsDetached(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	committedID := commitBlankDraft(t, f, "TU Munich", "Informatics")

	draft, err := f.editor.StartEdit(ctx, committedID)
	if err != nil {
		t.Fatalf("start edit: %v", err)
	}
	draft = f.editor.ToggleItem(draft, "sop")
	draft = f.editor.RemoveItem(draft, "cv")

	// The stored record is untouched until the draft is committed.
	stored, err := f.tracker.Get(ctx, committedID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if done, _ := stored.Documents.Get("sop"); done {
		t.Fatalf("editing a draft must not leak into the stored record")
	}
	if _, exists := stored.Documents.Get("cv"); !exists {
		t.Fatalf("removed draft item must still exist in the stored record")
	}
}

func TestCommitGateRequiresUniversityAndCourse(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	draft, err := f.editor.StartCreate(ctx)
	if err != nil {
		t.Fatalf("start create: %v", err)
	}
	draft.University = "TU Munich"
	draft.Course = "   "
	_, err = f.editor.Commit(ctx, draft)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}

	// The record set stayed empty.
	records, err := f.tracker.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("rejected draft must not be stored, got %+v", records)
	}
}

func TestCommitStoresNewRecordWithChecklist(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	draft, err := f.editor.StartCreate(ctx)
	if err != nil {
		t.Fatalf("start create: %v", err)
	}
	draft.University = "TU Munich"
	draft.Course = "Informatics"
	draft = f.editor.ToggleItem(draft, "transcript")
	draft = f.editor.AddItem(draft, "visa")

	committed, err := f.editor.Commit(ctx, draft)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if committed.ID == "" {
		t.Fatalf("commit must assign an id")
	}

	stored, err := f.tracker.Get(ctx, committed.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if done, _ := stored.Documents.Get("transcript"); !done {
		t.Fatalf("toggled item must be stored checked")
	}
	names := stored.Documents.Names()
	if names[len(names)-1] != "visa" {
		t.Fatalf("added item must append at the end, got %v", names)
	}
}

func TestRenamePreservesFlagAndPosition(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	draft, err := f.editor.StartCreate(ctx)
	if err != nil {
		t.Fatalf("start create: %v", err)
	}
	draft = f.editor.ToggleItem(draft, "lor1")
	draft = f.editor.RenameItem(draft, "lor1", "letterWeber")

	if done, exists := draft.Documents.Get("letterWeber"); !exists || !done {
		t.Fatalf("rename must carry the completion flag, got done=%v exists=%v", done, exists)
	}
	if _, exists := draft.Documents.Get("lor1"); exists {
		t.Fatalf("old name must be gone after rename")
	}
	names := draft.Documents.Names()
	if len(names) < 2 || names[1] != "letterWeber" {
		t.Fatalf("rename must keep the item's position, got %v", names)
	}
}

func TestChecklistEdgeCases(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	draft, err := f.editor.StartCreate(ctx)
	if err != nil {
		t.Fatalf("start create: %v", err)
	}
	before := draft.Documents.Names()

	draft = f.editor.AddItem(draft, "   ")
	draft = f.editor.RenameItem(draft, "sop", "")
	draft = f.editor.RemoveItem(draft, "not-there")
	draft = f.editor.ToggleItem(draft, "not-there")
	if !reflect.DeepEqual(draft.Documents.Names(), before) {
		t.Fatalf("blank or missing names must be no-ops, got %v", draft.Documents.Names())
	}

	// Renaming onto an existing name keeps the renamed item and drops the
	// other entry.
	draft = f.editor.ToggleItem(draft, "lor2")
	draft = f.editor.RenameItem(draft, "lor2", "lor1")
	if draft.Documents.Len() != len(before)-1 {
		t.Fatalf("rename collision must not duplicate items, got %v", draft.Documents.Names())
	}
	if done, _ := draft.Documents.Get("lor1"); !done {
		t.Fatalf("rename collision must keep the renamed item's flag")
	}
}

func TestCommitEditReplacesInPlace(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	firstID := commitBlankDraft(t, f, "TU Munich", "Informatics")
	commitBlankDraft(t, f, "RWTH Aachen", "SSE")

	draft, err := f.editor.StartEdit(ctx, firstID)
	if err != nil {
		t.Fatalf("start edit: %v", err)
	}
	draft.Status = "Applied"
	committed, err := f.editor.Commit(ctx, draft)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if committed.ID != firstID {
		t.Fatalf("editing must keep the record id, got %q want %q", committed.ID, firstID)
	}

	records, err := f.tracker.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || records[1].ID != firstID || records[1].Status != "Applied" {
		t.Fatalf("edited record must stay in place, got %+v", records)
	}
}

func commitBlankDraft(t *testing.T, f *fixture, university, course string) string {
	t.Helper()
	draft, err := f.editor.StartCreate(context.Background())
	if err != nil {
		t.Fatalf("start create: %v", err)
	}
	draft.University = university
	draft.Course = course
	committed, err := f.editor.Commit(context.Background(), draft)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return committed.ID
}
