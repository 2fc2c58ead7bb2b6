package in

import (
	"context"

	"unitrack/internal/modules/export/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	ListFormats(ctx context.Context, pluginName string) ([]dto.FormatInfo, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
