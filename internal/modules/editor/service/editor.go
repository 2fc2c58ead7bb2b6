package service

import (
	"fmt"

	apperrors "unitrack/internal/platform/errors"

	"unitrack/internal/modules/editor/domain"
)

// EditorService holds the draft rules. It is stateless; drafts travel as
// values.
type EditorService struct {
	defaultDocuments []string
}

func NewEditorService(defaultDocuments []string) *EditorService {
	return &EditorService{defaultDocuments: defaultDocuments}
}

func (s *EditorService) Blank() domain.Draft {
	return domain.NewDraft(s.defaultDocuments)
}

// CheckCommit gates a draft before it may be stored.
func (s *EditorService) CheckCommit(draft domain.Draft) error {
	if err := draft.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, err)
	}
	return nil
}
