package in

import (
	"context"

	"unitrack/internal/modules/editor/dto"
)

// Usecase manages detached drafts. StartCreate/StartEdit need the active
// session (the latter reads the stored record); the checklist operations are
// pure functions over the draft value.
type Usecase interface {
	StartCreate(ctx context.Context) (dto.Draft, error)
	StartEdit(ctx context.Context, recordID string) (dto.Draft, error)

	AddItem(draft dto.Draft, name string) dto.Draft
	RenameItem(draft dto.Draft, oldName, newName string) dto.Draft
	RemoveItem(draft dto.Draft, name string) dto.Draft
	ToggleItem(draft dto.Draft, name string) dto.Draft

	Commit(ctx context.Context, draft dto.Draft) (dto.CommitOutput, error)
}
