package usecase

import (
	"context"
	"fmt"

	"unitrack/internal/modules/editor/domain"
	"unitrack/internal/modules/editor/dto"
	"unitrack/internal/modules/editor/port/in"
	"unitrack/internal/modules/editor/service"
	trackerdto "unitrack/internal/modules/tracker/dto"
	trackerin "unitrack/internal/modules/tracker/port/in"
)

// Interactor builds drafts from the tracker's records and commits them back
// through the tracker. Checklist edits happen on the draft value only.
type Interactor struct {
	svc     *service.EditorService
	tracker trackerin.Usecase
}

func NewInteractor(svc *service.EditorService, tracker trackerin.Usecase) in.Usecase {
	return &Interactor{svc: svc, tracker: tracker}
}

func (i *Interactor) StartCreate(ctx context.Context) (dto.Draft, error) {
	// Creating needs a signed-in account even though the blank draft itself
	// is session-independent; probing via Stats keeps the gate in one place.
	if _, err := i.tracker.Stats(ctx); err != nil {
		return dto.Draft{}, err
	}
	return toDraft(i.svc.Blank()), nil
}

func (i *Interactor) StartEdit(ctx context.Context, recordID string) (dto.Draft, error) {
	record, err := i.tracker.Get(ctx, recordID)
	if err != nil {
		return dto.Draft{}, fmt.Errorf("load record for editing: %w", err)
	}
	return dto.Draft{
		ID:          record.ID,
		University:  record.University,
		Course:      record.Course,
		Deadline:    record.Deadline,
		Status:      record.Status,
		UniAssist:   record.UniAssist,
		VPDRequired: record.VPDRequired,
		Documents:   record.Documents.Clone(),
		Notes:       record.Notes,
	}, nil
}

func (i *Interactor) AddItem(draft dto.Draft, name string) dto.Draft {
	draft.Documents = draft.Documents.Clone()
	draft.Documents.Add(name)
	return draft
}

func (i *Interactor) RenameItem(draft dto.Draft, oldName, newName string) dto.Draft {
	draft.Documents = draft.Documents.Clone()
	draft.Documents.Rename(oldName, newName)
	return draft
}

func (i *Interactor) RemoveItem(draft dto.Draft, name string) dto.Draft {
	draft.Documents = draft.Documents.Clone()
	draft.Documents.Remove(name)
	return draft
}

func (i *Interactor) ToggleItem(draft dto.Draft, name string) dto.Draft {
	draft.Documents = draft.Documents.Clone()
	draft.Documents.Toggle(name)
	return draft
}

func (i *Interactor) Commit(ctx context.Context, draft dto.Draft) (dto.CommitOutput, error) {
	if err := i.svc.CheckCommit(fromDraft(draft)); err != nil {
		return dto.CommitOutput{}, err
	}
	stored, err := i.tracker.Upsert(ctx, trackerdto.Record{
		ID:          draft.ID,
		University:  draft.University,
		Course:      draft.Course,
		Deadline:    draft.Deadline,
		Status:      draft.Status,
		UniAssist:   draft.UniAssist,
		VPDRequired: draft.VPDRequired,
		Documents:   draft.Documents,
		Notes:       draft.Notes,
	})
	if err != nil {
		return dto.CommitOutput{}, err
	}
	return dto.CommitOutput{ID: stored.ID, University: stored.University, Course: stored.Course}, nil
}

func toDraft(draft domain.Draft) dto.Draft {
	return dto.Draft{
		ID:          draft.ID,
		University:  draft.University,
		Course:      draft.Course,
		Deadline:    draft.Deadline,
		Status:      draft.Status,
		UniAssist:   draft.UniAssist,
		VPDRequired: draft.VPDRequired,
		Documents:   draft.Documents,
		Notes:       draft.Notes,
	}
}

func fromDraft(draft dto.Draft) domain.Draft {
	return domain.Draft{
		ID:          draft.ID,
		University:  draft.University,
		Course:      draft.Course,
		Deadline:    draft.Deadline,
		Status:      draft.Status,
		UniAssist:   draft.UniAssist,
		VPDRequired: draft.VPDRequired,
		Documents:   draft.Documents,
		Notes:       draft.Notes,
	}
}
