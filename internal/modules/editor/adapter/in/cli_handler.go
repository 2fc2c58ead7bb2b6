package in

import (
	"context"

	"unitrack/internal/modules/editor/dto"
	"unitrack/internal/modules/editor/port/in"
)

// CLIHandler runs one-shot draft edits for the command line: load, apply a
// single checklist operation, commit.
type CLIHandler struct {
	usecase in.Usecase
}

func NewCLIHandler(usecase in.Usecase) *CLIHandler {
	return &CLIHandler{usecase: usecase}
}

func (h *CLIHandler) Create(ctx context.Context, draft dto.Draft) (dto.CommitOutput, error) {
	blank, err := h.usecase.StartCreate(ctx)
	if err != nil {
		return dto.CommitOutput{}, err
	}
	blank.University = draft.University
	blank.Course = draft.Course
	blank.Deadline = draft.Deadline
	if draft.Status != "" {
		blank.Status = draft.Status
	}
	blank.UniAssist = draft.UniAssist
	blank.VPDRequired = draft.VPDRequired
	blank.Notes = draft.Notes
	return h.usecase.Commit(ctx, blank)
}

// Edit loads a record, applies mutate to the draft, and commits the result.
func (h *CLIHandler) Edit(ctx context.Context, recordID string, mutate func(dto.Draft) dto.Draft) (dto.CommitOutput, error) {
	return h.apply(ctx, recordID, mutate)
}

func (h *CLIHandler) AddItem(ctx context.Context, recordID, name string) (dto.CommitOutput, error) {
	return h.apply(ctx, recordID, func(draft dto.Draft) dto.Draft {
		return h.usecase.AddItem(draft, name)
	})
}

func (h *CLIHandler) RenameItem(ctx context.Context, recordID, oldName, newName string) (dto.CommitOutput, error) {
	return h.apply(ctx, recordID, func(draft dto.Draft) dto.Draft {
		return h.usecase.RenameItem(draft, oldName, newName)
	})
}

func (h *CLIHandler) RemoveItem(ctx context.Context, recordID, name string) (dto.CommitOutput, error) {
	return h.apply(ctx, recordID, func(draft dto.Draft) dto.Draft {
		return h.usecase.RemoveItem(draft, name)
	})
}

func (h *CLIHandler) ToggleItem(ctx context.Context, recordID, name string) (dto.CommitOutput, error) {
	return h.apply(ctx, recordID, func(draft dto.Draft) dto.Draft {
		return h.usecase.ToggleItem(draft, name)
	})
}

func (h *CLIHandler) apply(ctx context.Context, recordID string, op func(dto.Draft) dto.Draft) (dto.CommitOutput, error) {
	draft, err := h.usecase.StartEdit(ctx, recordID)
	if err != nil {
		return dto.CommitOutput{}, err
	}
	return h.usecase.Commit(ctx, op(draft))
}
