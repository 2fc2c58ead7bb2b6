package in

import (
	"context"

	"unitrack/internal/modules/editor/dto"
	"unitrack/internal/modules/editor/port/in"
)

// TUIHandler exposes the full draft surface to the terminal UI, which keeps
// a live draft open while the user edits.
type TUIHandler struct {
	usecase in.Usecase
}

func NewTUIHandler(usecase in.Usecase) *TUIHandler {
	return &TUIHandler{usecase: usecase}
}

func (h *TUIHandler) StartCreate(ctx context.Context) (dto.Draft, error) {
	return h.usecase.StartCreate(ctx)
}

func (h *TUIHandler) StartEdit(ctx context.Context, recordID string) (dto.Draft, error) {
	return h.usecase.StartEdit(ctx, recordID)
}

func (h *TUIHandler) AddItem(draft dto.Draft, name string) dto.Draft {
	return h.usecase.AddItem(draft, name)
}

func (h *TUIHandler) RenameItem(draft dto.Draft, oldName, newName string) dto.Draft {
	return h.usecase.RenameItem(draft, oldName, newName)
}

func (h *TUIHandler) RemoveItem(draft dto.Draft, name string) dto.Draft {
	return h.usecase.RemoveItem(draft, name)
}

func (h *TUIHandler) ToggleItem(draft dto.Draft, name string) dto.Draft {
	return h.usecase.ToggleItem(draft, name)
}

func (h *TUIHandler) Commit(ctx context.Context, draft dto.Draft) (dto.CommitOutput, error) {
	return h.usecase.Commit(ctx, draft)
}
