package in

import (
	"context"

	"unitrack/internal/modules/tracker/dto"
	"unitrack/internal/modules/tracker/port/in"
)

// CLIHandler adapts command-line invocations to the tracker usecase.
type CLIHandler struct {
	usecase in.Usecase
}

func NewCLIHandler(usecase in.Usecase) *CLIHandler {
	return &CLIHandler{usecase: usecase}
}

func (h *CLIHandler) List(ctx context.Context) ([]dto.Record, error) {
	return h.usecase.List(ctx)
}

func (h *CLIHandler) Get(ctx context.Context, id string) (dto.Record, error) {
	return h.usecase.Get(ctx, id)
}

func (h *CLIHandler) Remove(ctx context.Context, id string) error {
	return h.usecase.Remove(ctx, id)
}

func (h *CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}
