package in

import (
	"context"

	"unitrack/internal/modules/export/dto"
	"unitrack/internal/modules/export/port/in"
)

// CLIHandler adapts command-line invocations to the export usecase.
type CLIHandler struct {
	usecase in.Usecase
}

func NewCLIHandler(usecase in.Usecase) *CLIHandler {
	return &CLIHandler{usecase: usecase}
}

func (h *CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h *CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h *CLIHandler) ListFormats(ctx context.Context, pluginName string) ([]dto.FormatInfo, error) {
	return h.usecase.ListFormats(ctx, pluginName)
}

func (h *CLIHandler) Export(ctx context.Context, pluginName, formatID string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.ExportInput{PluginName: pluginName, FormatID: formatID})
}
